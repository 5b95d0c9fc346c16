package scoring_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/pplp-engine/internal/domain"
	"github.com/feral-file/pplp-engine/internal/scoring"
)

func testPolicy() *domain.Policy {
	return &domain.Policy{
		Version: "1.0.0",
		Weights: domain.PillarValues{S: 0.2, T: 0.2, H: 0.2, C: 0.2, U: 0.2},
		Thresholds: domain.Thresholds{
			MinLightScore:   50,
			MinIntegrityK:   0.5,
			KillSwitchBelow: 0.3,
		},
		BaseReward: decimal.NewFromInt(100),
		Caps: domain.Caps{
			EpochKey:             "global",
			EpochDurationSeconds: 86400,
			EpochCap:             decimal.NewFromInt(1_000_000),
			UserEpochCap:         decimal.NewFromInt(10_000),
			MinMint:              decimal.NewFromInt(1),
			MaxMint:              decimal.NewFromInt(1_000),
			IssuanceDecimals:     2,
			LedgerDecimals:       18,
		},
		RewardFormula:      domain.RewardFormulaPPLPv1,
		SignatureThreshold: 2,
	}
}

func mustMetadata(t *testing.T, actionType domain.ActionType, raw string) *domain.Metadata {
	t.Helper()
	v, err := scoring.NewMetadataValidator()
	require.NoError(t, err)
	md, err := v.Parse(actionType, []byte(raw))
	require.NoError(t, err)
	return md
}

// donationInput is the reference DONATION action: 120 chars of content, evidence, three beneficiaries
func donationInput(t *testing.T) scoring.Input {
	return scoring.Input{
		ActionType:       domain.ActionTypeDonation,
		Metadata:         mustMetadata(t, domain.ActionTypeDonation, `{"content_length":120,"has_evidence":true}`),
		Impact:           domain.Impact{Beneficiaries: 3, Outcome: domain.OutcomePositive},
		Integrity:        domain.Integrity{SourceVerified: true, AntiSybilScore: 0.9},
		VerifiedEvidence: 1,
	}
}

func TestScore_ReferenceDonation(t *testing.T) {
	policy := testPolicy()
	result, err := scoring.NewEngine().Score(policy, policy.Thresholds, donationInput(t))
	require.NoError(t, err)

	assert.Equal(t, domain.PillarValues{S: 60, T: 56, H: 40, C: 70, U: 45}, result.Pillars)
	assert.InDelta(t, 54.2, result.LightScore, 1e-9)
	assert.Equal(t, "1.74", result.Quality.String())
	assert.Equal(t, "2.25", result.Impact.String())
	assert.Equal(t, "0.9", result.Integrity.String())
	assert.Equal(t, domain.DecisionPass, result.Decision)
	assert.Empty(t, result.FailedGates)
	assert.Equal(t, "352.35", result.Reward.String())
	assert.Equal(t, "1.0.0", result.PolicyVersion)
	assert.Equal(t, domain.RewardFormulaPPLPv1, result.Formula)

	// Strictly between the base reward and its Q·I·K upper bound
	assert.True(t, result.Reward.GreaterThan(policy.BaseReward))
	assert.True(t, result.Reward.LessThan(policy.BaseReward.Mul(decimal.NewFromInt(15))))
}

func TestScore_Deterministic(t *testing.T) {
	policy := testPolicy()
	engine := scoring.NewEngine()

	first, err := engine.Score(policy, policy.Thresholds, donationInput(t))
	require.NoError(t, err)
	second, err := scoring.NewEngine().Score(policy, policy.Thresholds, donationInput(t))
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestComputePillars_PerActionType(t *testing.T) {
	neutral := domain.Impact{Outcome: domain.OutcomeNeutral}

	tests := []struct {
		name       string
		actionType domain.ActionType
		metadata   string
		impact     domain.Impact
		expected   domain.PillarValues
	}{
		{
			name:       "donation with capped amount bonus",
			actionType: domain.ActionTypeDonation,
			metadata:   `{"amount":2500}`,
			impact:     neutral,
			expected:   domain.PillarValues{S: 50, T: 40, H: 40, C: 80, U: 45},
		},
		{
			name:       "donation with negative outcome",
			actionType: domain.ActionTypeDonation,
			metadata:   `{"amount":150}`,
			impact:     domain.Impact{Outcome: domain.OutcomeNegative},
			expected:   domain.PillarValues{S: 40, T: 40, H: 30, C: 71.5, U: 45},
		},
		{
			name:       "education with learners",
			actionType: domain.ActionTypeEducation,
			metadata:   `{"learners":3,"hours":2}`,
			impact:     neutral,
			expected:   domain.PillarValues{S: 50, T: 63, H: 40, C: 40, U: 40},
		},
		{
			name:       "volunteer with fractional hours",
			actionType: domain.ActionTypeVolunteer,
			metadata:   `{"hours":4.5}`,
			impact:     neutral,
			expected:   domain.PillarValues{S: 69.5, T: 40, H: 40, C: 40, U: 45},
		},
		{
			name:       "original content",
			actionType: domain.ActionTypeContent,
			metadata:   `{"content_length":45,"original":true,"word_count":9}`,
			impact:     neutral,
			expected:   domain.PillarValues{S: 40, T: 62, H: 40, C: 40, U: 45},
		},
		{
			name:       "non original content",
			actionType: domain.ActionTypeContent,
			metadata:   `{"original":false}`,
			impact:     neutral,
			expected:   domain.PillarValues{S: 40, T: 55, H: 40, C: 40, U: 45},
		},
		{
			name:       "mentorship with sessions",
			actionType: domain.ActionTypeMentorship,
			metadata:   `{"sessions":3}`,
			impact:     neutral,
			expected:   domain.PillarValues{S: 40, T: 50, H: 66, C: 40, U: 40},
		},
		{
			name:       "community with capped participants bonus",
			actionType: domain.ActionTypeCommunity,
			metadata:   `{"participants":250}`,
			impact:     neutral,
			expected:   domain.PillarValues{S: 40, T: 40, H: 45, C: 40, U: 75},
		},
		{
			name:       "community participants use integer division",
			actionType: domain.ActionTypeCommunity,
			metadata:   `{"participants":19}`,
			impact:     domain.Impact{Outcome: domain.OutcomePositive},
			expected:   domain.PillarValues{S: 50, T: 40, H: 45, C: 40, U: 66},
		},
		{
			name:       "content length bonus is capped",
			actionType: domain.ActionTypeEducation,
			metadata:   `{"content_length":100000,"has_evidence":true,"learners":50}`,
			impact:     neutral,
			expected:   domain.PillarValues{S: 50, T: 90, H: 40, C: 40, U: 40},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := mustMetadata(t, tt.actionType, tt.metadata)
			got, err := scoring.ComputePillars(tt.actionType, md, tt.impact)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMultipliers(t *testing.T) {
	t.Run("quality", func(t *testing.T) {
		assert.Equal(t, "1", scoring.QualityMultiplier(&domain.Metadata{}).String())
		assert.Equal(t, "3", scoring.QualityMultiplier(&domain.Metadata{
			ContentLength: 5000, HasEvidence: true, HasMedia: true,
		}).String())
		assert.Equal(t, "1.5", scoring.QualityMultiplier(&domain.Metadata{ContentLength: 250}).String())
	})

	t.Run("impact", func(t *testing.T) {
		assert.Equal(t, "1", scoring.ImpactMultiplier(domain.Impact{}).String())
		assert.Equal(t, "5", scoring.ImpactMultiplier(domain.Impact{
			Beneficiaries: 100, Outcome: domain.OutcomePositive, Scope: domain.ScopeGlobal,
		}).String())
		assert.Equal(t, "3.25", scoring.ImpactMultiplier(domain.Impact{
			Beneficiaries: 5, Scope: domain.ScopeRegional, Outcome: domain.OutcomeNeutral,
		}).String())
		assert.Equal(t, "1.5", scoring.ImpactMultiplier(domain.Impact{Scope: domain.ScopeCommunity}).String())
	})

	t.Run("integrity", func(t *testing.T) {
		verified := domain.Integrity{SourceVerified: true, AntiSybilScore: 0.8}
		assert.Equal(t, "0.8", scoring.IntegrityMultiplier(verified, 1, 0.3).String())
		// Caller claims alone never earn K
		assert.True(t, scoring.IntegrityMultiplier(verified, 0, 0.3).IsZero())
		assert.True(t, scoring.IntegrityMultiplier(domain.Integrity{AntiSybilScore: 1}, 2, 0.3).IsZero())
		// Kill switch
		assert.True(t, scoring.IntegrityMultiplier(domain.Integrity{SourceVerified: true, AntiSybilScore: 0.29}, 1, 0.3).IsZero())
		assert.Equal(t, "0.3", scoring.IntegrityMultiplier(domain.Integrity{SourceVerified: true, AntiSybilScore: 0.3}, 1, 0.3).String())
	})
}

func TestScore_Gates(t *testing.T) {
	engine := scoring.NewEngine()

	t.Run("unverified source trips the kill switch", func(t *testing.T) {
		policy := testPolicy()
		in := donationInput(t)
		in.Integrity.SourceVerified = false

		result, err := engine.Score(policy, policy.Thresholds, in)
		require.NoError(t, err)
		assert.Equal(t, domain.DecisionFail, result.Decision)
		assert.Equal(t, []scoring.Gate{scoring.GateKillSwitch}, result.FailedGates)
		assert.True(t, result.Reward.IsZero())
	})

	t.Run("no server-verified evidence trips the kill switch", func(t *testing.T) {
		policy := testPolicy()
		in := donationInput(t)
		in.VerifiedEvidence = 0

		result, err := engine.Score(policy, policy.Thresholds, in)
		require.NoError(t, err)
		assert.Equal(t, domain.DecisionFail, result.Decision)
		assert.Contains(t, result.FailedGates, scoring.GateKillSwitch)
	})

	t.Run("integrity below minimum", func(t *testing.T) {
		policy := testPolicy()
		in := donationInput(t)
		in.Integrity.AntiSybilScore = 0.4

		result, err := engine.Score(policy, policy.Thresholds, in)
		require.NoError(t, err)
		assert.Equal(t, domain.DecisionFail, result.Decision)
		assert.Equal(t, []scoring.Gate{scoring.GateIntegrity}, result.FailedGates)
		assert.Equal(t, "0.4", result.Integrity.String())
		assert.True(t, result.Reward.IsZero())
	})

	t.Run("light score below minimum", func(t *testing.T) {
		policy := testPolicy()
		policy.Thresholds.MinLightScore = 60

		result, err := engine.Score(policy, policy.Thresholds, donationInput(t))
		require.NoError(t, err)
		assert.Equal(t, domain.DecisionFail, result.Decision)
		assert.Equal(t, []scoring.Gate{scoring.GateLightScore}, result.FailedGates)
	})

	t.Run("platform pillar minimum", func(t *testing.T) {
		policy := testPolicy()
		policy.PlatformOverrides = map[string]domain.ThresholdOverride{
			"strict-platform": {PillarMinimums: map[domain.Pillar]float64{domain.PillarHealing: 50}},
		}

		result, err := engine.Score(policy, policy.PlatformThresholds("strict-platform"), donationInput(t))
		require.NoError(t, err)
		assert.Equal(t, domain.DecisionFail, result.Decision)
		assert.Equal(t, []scoring.Gate{scoring.PillarGate(domain.PillarHealing)}, result.FailedGates)

		// Other platforms use the policy thresholds
		result, err = engine.Score(policy, policy.PlatformThresholds("other"), donationInput(t))
		require.NoError(t, err)
		assert.Equal(t, domain.DecisionPass, result.Decision)
	})

	t.Run("scored even when failing", func(t *testing.T) {
		policy := testPolicy()
		in := donationInput(t)
		in.Integrity.AntiSybilScore = 0

		result, err := engine.Score(policy, policy.Thresholds, in)
		require.NoError(t, err)
		assert.InDelta(t, 54.2, result.LightScore, 1e-9)
		assert.Equal(t, domain.PillarValues{S: 60, T: 56, H: 40, C: 70, U: 45}, result.Pillars)
	})
}

func TestScore_RewardBounds(t *testing.T) {
	engine := scoring.NewEngine()

	t.Run("clamped to max mint", func(t *testing.T) {
		policy := testPolicy()
		policy.Caps.MaxMint = decimal.NewFromInt(300)

		result, err := engine.Score(policy, policy.Thresholds, donationInput(t))
		require.NoError(t, err)
		assert.Equal(t, "300", result.Reward.String())
	})

	t.Run("raised to min mint", func(t *testing.T) {
		policy := testPolicy()
		policy.Caps.MinMint = decimal.NewFromInt(400)

		result, err := engine.Score(policy, policy.Thresholds, donationInput(t))
		require.NoError(t, err)
		assert.Equal(t, "400", result.Reward.String())
	})

	t.Run("truncated to issuance decimals", func(t *testing.T) {
		policy := testPolicy()
		policy.BaseReward = decimal.RequireFromString("10.123")

		result, err := engine.Score(policy, policy.Thresholds, donationInput(t))
		require.NoError(t, err)
		// 10.123 × 1.74 × 2.25 × 0.9 = 35.6683905
		assert.Equal(t, "35.66", result.Reward.String())
	})

	t.Run("min mint not applied on fail", func(t *testing.T) {
		policy := testPolicy()
		policy.Caps.MinMint = decimal.NewFromInt(400)
		in := donationInput(t)
		in.Integrity.SourceVerified = false

		result, err := engine.Score(policy, policy.Thresholds, in)
		require.NoError(t, err)
		assert.True(t, result.Reward.IsZero())
	})
}

func TestScore_CELFormula(t *testing.T) {
	engine := scoring.NewEngine()

	policy := testPolicy()
	policy.RewardFormula = domain.RewardFormulaCEL
	policy.RewardExpression = "base * k + pillars['C']"

	result, err := engine.Score(policy, policy.Thresholds, donationInput(t))
	require.NoError(t, err)
	assert.Equal(t, domain.DecisionPass, result.Decision)
	assert.Equal(t, "160", result.Reward.String())
	assert.Equal(t, domain.RewardFormulaCEL, result.Formula)

	t.Run("negative results floor at min mint", func(t *testing.T) {
		policy := testPolicy()
		policy.RewardFormula = domain.RewardFormulaCEL
		policy.RewardExpression = "0.0 - base"

		result, err := engine.Score(policy, policy.Thresholds, donationInput(t))
		require.NoError(t, err)
		assert.Equal(t, "1", result.Reward.String())
	})

	t.Run("invalid expression is a policy error", func(t *testing.T) {
		policy := testPolicy()
		policy.RewardFormula = domain.RewardFormulaCEL
		policy.RewardExpression = "base * 'x'"

		_, err := engine.Score(policy, policy.Thresholds, donationInput(t))
		var policyErr *domain.PolicyError
		assert.True(t, errors.As(err, &policyErr))
	})

	t.Run("unknown formula is a policy error", func(t *testing.T) {
		policy := testPolicy()
		policy.RewardFormula = "pplp-v9"

		_, err := engine.Score(policy, policy.Thresholds, donationInput(t))
		var policyErr *domain.PolicyError
		assert.True(t, errors.As(err, &policyErr))
	})
}

func TestCompileRewardExpression(t *testing.T) {
	_, err := scoring.CompileRewardExpression("base * q * i * k")
	assert.NoError(t, err)

	_, err = scoring.CompileRewardExpression("light > 50.0 ? base * q : base")
	assert.NoError(t, err)

	_, err = scoring.CompileRewardExpression("base > 1.0")
	assert.Error(t, err, "boolean result")

	_, err = scoring.CompileRewardExpression("unknown_var * 2.0")
	assert.Error(t, err)

	_, err = scoring.CompileRewardExpression("base *")
	assert.Error(t, err)
}

func TestScore_InvalidInput(t *testing.T) {
	engine := scoring.NewEngine()
	policy := testPolicy()

	_, err := engine.Score(nil, policy.Thresholds, donationInput(t))
	assert.ErrorIs(t, err, domain.ErrNoActivePolicy)

	in := donationInput(t)
	in.ActionType = "PRAYER"
	_, err = engine.Score(policy, policy.Thresholds, in)
	assert.ErrorIs(t, err, domain.ErrUnknownActionType)

	in = donationInput(t)
	in.Metadata = nil
	_, err = engine.Score(policy, policy.Thresholds, in)
	var ve *domain.ValidationError
	assert.True(t, errors.As(err, &ve))
}
