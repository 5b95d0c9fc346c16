package policy_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/pplp-engine/internal/audit"
	"github.com/feral-file/pplp-engine/internal/canonical"
	"github.com/feral-file/pplp-engine/internal/domain"
	"github.com/feral-file/pplp-engine/internal/logger"
	"github.com/feral-file/pplp-engine/internal/mocks"
	"github.com/feral-file/pplp-engine/internal/policy"
	"github.com/feral-file/pplp-engine/internal/store"
	"github.com/feral-file/pplp-engine/internal/store/schema"
)

const (
	signerA = "0xAAaAaAaaAaAaAaaAaAAAAAAAAaaaAaAaAaaAaaAa"
	signerB = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func validPolicy() domain.Policy {
	return domain.Policy{
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
		Attesters:          []string{signerA, signerB},
	}
}

func policyRow(t *testing.T, p domain.Policy, active bool) *schema.Policy {
	t.Helper()
	doc, err := canonical.Marshal(p)
	require.NoError(t, err)
	return &schema.Policy{
		ID:                 1,
		Version:            p.Version,
		ContentHash:        canonical.Keccak256Hex(doc),
		Document:           doc,
		SignatureThreshold: p.SignatureThreshold,
		IsActive:           active,
		CreatedBy:          "ops",
		CreatedAt:          now,
	}
}

type testServiceMocks struct {
	ctrl    *gomock.Controller
	store   *mocks.MockStore
	clock   *mocks.MockClock
	service policy.Service
}

func setupTestService(t *testing.T) *testServiceMocks {
	ctrl := gomock.NewController(t)
	tm := &testServiceMocks{
		ctrl:  ctrl,
		store: mocks.NewMockStore(ctrl),
		clock: mocks.NewMockClock(ctrl),
	}
	tm.clock.EXPECT().Now().Return(now).AnyTimes()
	tm.service = policy.NewService(tm.store, tm.clock)
	return tm
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *domain.Policy)
		wantErr string
	}{
		{name: "valid", mutate: func(p *domain.Policy) {}},
		{
			name:    "non semver version",
			mutate:  func(p *domain.Policy) { p.Version = "v1" },
			wantErr: "semantic version",
		},
		{
			name:    "weights do not sum to one",
			mutate:  func(p *domain.Policy) { p.Weights.U = 0.3 },
			wantErr: "sum to 1",
		},
		{
			name: "weight out of range",
			mutate: func(p *domain.Policy) {
				p.Weights = domain.PillarValues{S: 1.2, T: -0.2}
			},
			wantErr: "weights.S",
		},
		{
			name: "weights sum within tolerance",
			mutate: func(p *domain.Policy) {
				p.Weights = domain.PillarValues{S: 0.1, T: 0.2, H: 0.3, C: 0.15, U: 0.25}
			},
		},
		{
			name:    "light score out of range",
			mutate:  func(p *domain.Policy) { p.Thresholds.MinLightScore = 101 },
			wantErr: "min_light_score",
		},
		{
			name: "unknown pillar minimum",
			mutate: func(p *domain.Policy) {
				p.Thresholds.PillarMinimums = map[domain.Pillar]float64{"X": 10}
			},
			wantErr: "unknown pillar",
		},
		{
			name: "platform override out of range",
			mutate: func(p *domain.Policy) {
				k := 1.5
				p.PlatformOverrides = map[string]domain.ThresholdOverride{"angel": {MinIntegrityK: &k}}
			},
			wantErr: "platform_overrides.angel.min_integrity_k",
		},
		{
			name:    "user cap above epoch cap",
			mutate:  func(p *domain.Policy) { p.Caps.UserEpochCap = decimal.NewFromInt(2_000_000) },
			wantErr: "user_epoch_cap",
		},
		{
			name:    "max mint below min mint",
			mutate:  func(p *domain.Policy) { p.Caps.MaxMint = decimal.RequireFromString("0.5") },
			wantErr: "max_mint",
		},
		{
			name:    "min mint finer than issuance unit",
			mutate:  func(p *domain.Policy) { p.Caps.MinMint = decimal.RequireFromString("0.001") },
			wantErr: "decimals",
		},
		{
			name:    "ledger decimals below issuance decimals",
			mutate:  func(p *domain.Policy) { p.Caps.LedgerDecimals = 1 },
			wantErr: "ledger_decimals",
		},
		{
			name:    "zero base reward",
			mutate:  func(p *domain.Policy) { p.BaseReward = decimal.Zero },
			wantErr: "base_reward",
		},
		{
			name:    "unknown formula",
			mutate:  func(p *domain.Policy) { p.RewardFormula = "quadratic" },
			wantErr: "reward_formula",
		},
		{
			name:    "cel without expression",
			mutate:  func(p *domain.Policy) { p.RewardFormula = domain.RewardFormulaCEL },
			wantErr: "reward_expression is required",
		},
		{
			name: "cel that does not compile",
			mutate: func(p *domain.Policy) {
				p.RewardFormula = domain.RewardFormulaCEL
				p.RewardExpression = "base > 1.0"
			},
			wantErr: "must return double",
		},
		{
			name: "cel expression",
			mutate: func(p *domain.Policy) {
				p.RewardFormula = domain.RewardFormulaCEL
				p.RewardExpression = "base * q * i * k * (light / 100.0)"
			},
		},
		{
			name:    "zero threshold",
			mutate:  func(p *domain.Policy) { p.SignatureThreshold = 0 },
			wantErr: "signature_threshold",
		},
		{
			name:    "malformed attester",
			mutate:  func(p *domain.Policy) { p.Attesters = []string{"alice"} },
			wantErr: "not an address",
		},
		{
			name: "duplicate attester in different case",
			mutate: func(p *domain.Policy) {
				p.Attesters = []string{signerB, "0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB"}
			},
			wantErr: "listed twice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPolicy()
			tt.mutate(&p)
			err := policy.Validate(&p)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var policyErr *domain.PolicyError
			require.True(t, errors.As(err, &policyErr), "expected policy error, got %v", err)
			assert.Contains(t, policyErr.Reason, tt.wantErr)
		})
	}
}

func TestParseYAML(t *testing.T) {
	f, err := os.Open("testdata/policy.yaml")
	require.NoError(t, err)
	defer f.Close()

	doc, err := policy.ParseYAML(f)
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", doc.Version)
	assert.Equal(t, 0.2, doc.Weights.H)
	assert.Equal(t, 45.0, doc.Thresholds.PillarMinimums[domain.PillarTruth])
	assert.Equal(t, "100", doc.BaseReward.String())
	assert.Equal(t, "1000000", doc.Caps.EpochCap.String())
	assert.Equal(t, int32(2), doc.Caps.IssuanceDecimals)
	require.Contains(t, doc.PlatformOverrides, "angel-app")
	require.NotNil(t, doc.PlatformOverrides["angel-app"].MinLightScore)
	assert.Equal(t, 55.0, *doc.PlatformOverrides["angel-app"].MinLightScore)
	assert.Len(t, doc.Attesters, 2)
	assert.Equal(t, "guardian-1", doc.Labels["0x1111111111111111111111111111111111111111"])
	assert.NoError(t, policy.Validate(&doc.Policy))
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("stores canonical document with normalized attesters", func(t *testing.T) {
		tm := setupTestService(t)
		p := validPolicy()

		tm.store.EXPECT().ListPolicies(ctx).Return(nil, nil)
		tm.store.EXPECT().
			CreatePolicy(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, input store.CreatePolicyInput) (*schema.Policy, error) {
				assert.Equal(t, "1.0.0", input.Version)
				assert.Equal(t, canonical.Keccak256Hex(input.Document), input.ContentHash)
				assert.Equal(t, 2, input.SignatureThreshold)
				assert.Equal(t, "ops", input.Actor)
				assert.Equal(t, now, input.CreatedAt)
				require.Len(t, input.Attesters, 2)
				assert.Equal(t, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", input.Attesters[0].SignerID)
				assert.Equal(t, "alpha", input.Attesters[0].Label)
				return &schema.Policy{
					ID:                 7,
					Version:            input.Version,
					ContentHash:        input.ContentHash,
					Document:           input.Document,
					SignatureThreshold: input.SignatureThreshold,
					CreatedBy:          input.Actor,
					CreatedAt:          input.CreatedAt,
				}, nil
			})

		record, err := tm.service.Create(ctx, policy.CreateRequest{
			Policy: p,
			Labels: map[string]string{signerA: "alpha"},
			Actor:  "ops",
			Reason: "launch",
		})
		require.NoError(t, err)
		assert.Equal(t, "1.0.0", record.Version)
		assert.Equal(t, []string{
			"0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			"0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		}, record.Attesters)
		// The caller's document is left untouched
		assert.Equal(t, signerA, p.Attesters[0])
	})

	t.Run("same document hashes the same", func(t *testing.T) {
		a, err := canonical.HashHex(validPolicy())
		require.NoError(t, err)
		b, err := canonical.HashHex(validPolicy())
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("rejects a version not greater than existing", func(t *testing.T) {
		tm := setupTestService(t)
		existing := validPolicy()
		existing.Version = "1.2.0"

		tm.store.EXPECT().ListPolicies(ctx).Return([]schema.Policy{*policyRow(t, existing, true)}, nil)

		p := validPolicy()
		p.Version = "1.1.9"
		_, err := tm.service.Create(ctx, policy.CreateRequest{Policy: p, Actor: "ops"})
		var policyErr *domain.PolicyError
		require.True(t, errors.As(err, &policyErr))
		assert.Contains(t, policyErr.Reason, "greater than existing version 1.2.0")
	})

	t.Run("rejects a taken version", func(t *testing.T) {
		tm := setupTestService(t)
		tm.store.EXPECT().ListPolicies(ctx).Return([]schema.Policy{*policyRow(t, validPolicy(), false)}, nil)

		_, err := tm.service.Create(ctx, policy.CreateRequest{Policy: validPolicy(), Actor: "ops"})
		assert.ErrorIs(t, err, domain.ErrPolicyExists)
	})

	t.Run("invalid document never reaches the store", func(t *testing.T) {
		tm := setupTestService(t)
		p := validPolicy()
		p.Weights.S = 0.5

		_, err := tm.service.Create(ctx, policy.CreateRequest{Policy: p, Actor: "ops"})
		var policyErr *domain.PolicyError
		assert.True(t, errors.As(err, &policyErr))
	})
}

func TestService_Activate(t *testing.T) {
	ctx := context.Background()

	t.Run("requires enough active attesters", func(t *testing.T) {
		tm := setupTestService(t)
		tm.store.EXPECT().GetPolicyByVersion(ctx, "1.0.0").Return(policyRow(t, validPolicy(), false), nil)
		tm.store.EXPECT().ListAttesters(ctx, "1.0.0", true).Return([]schema.Attester{{SignerID: "0xaa"}}, nil)

		_, err := tm.service.Activate(ctx, "1.0.0", "ops", "go live")
		var policyErr *domain.PolicyError
		require.True(t, errors.As(err, &policyErr))
		assert.Contains(t, policyErr.Reason, "signature threshold 2")
	})

	t.Run("activates", func(t *testing.T) {
		tm := setupTestService(t)
		row := policyRow(t, validPolicy(), false)
		tm.store.EXPECT().GetPolicyByVersion(ctx, "1.0.0").Return(row, nil)
		tm.store.EXPECT().ListAttesters(ctx, "1.0.0", true).
			Return([]schema.Attester{{SignerID: "0xaa"}, {SignerID: "0xbb"}}, nil)
		tm.store.EXPECT().ActivatePolicy(ctx, store.ActivatePolicyInput{
			Version:     "1.0.0",
			Actor:       "ops",
			Reason:      "go live",
			ActivatedAt: now,
		}).DoAndReturn(func(_ context.Context, _ store.ActivatePolicyInput) (*schema.Policy, error) {
			active := *row
			active.IsActive = true
			active.ActivatedAt = &now
			return &active, nil
		})

		record, err := tm.service.Activate(ctx, "1.0.0", "ops", "go live")
		require.NoError(t, err)
		assert.True(t, record.IsActive)
	})

	t.Run("unknown version", func(t *testing.T) {
		tm := setupTestService(t)
		tm.store.EXPECT().GetPolicyByVersion(ctx, "9.9.9").Return(nil, nil)

		_, err := tm.service.Activate(ctx, "9.9.9", "ops", "")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("stored document with bad weights is never activated", func(t *testing.T) {
		tm := setupTestService(t)
		p := validPolicy()
		p.Weights.C = 0.9
		tm.store.EXPECT().GetPolicyByVersion(ctx, "1.0.0").Return(policyRow(t, p, false), nil)

		_, err := tm.service.Activate(ctx, "1.0.0", "ops", "")
		var policyErr *domain.PolicyError
		assert.True(t, errors.As(err, &policyErr))
	})
}

func TestService_Attesters(t *testing.T) {
	ctx := context.Background()

	t.Run("add normalizes the signer", func(t *testing.T) {
		tm := setupTestService(t)
		tm.store.EXPECT().AddAttester(ctx, store.AddAttesterInput{
			PolicyVersion: "1.0.0",
			SignerID:      "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			Label:         "alpha",
			Actor:         "ops",
			Reason:        "rotation",
			AddedAt:       now,
		}).Return(&schema.Attester{PolicyVersion: "1.0.0", SignerID: "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"}, nil)

		a, err := tm.service.AddAttester(ctx, policy.AttesterRequest{
			PolicyVersion: "1.0.0",
			SignerID:      signerA,
			Label:         "alpha",
			Actor:         "ops",
			Reason:        "rotation",
		})
		require.NoError(t, err)
		assert.True(t, a.Active())
	})

	t.Run("add rejects a malformed signer", func(t *testing.T) {
		tm := setupTestService(t)
		_, err := tm.service.AddAttester(ctx, policy.AttesterRequest{PolicyVersion: "1.0.0", SignerID: "0x12"})
		var ve *domain.ValidationError
		assert.True(t, errors.As(err, &ve))
	})

	t.Run("remove", func(t *testing.T) {
		tm := setupTestService(t)
		tm.store.EXPECT().RevokeAttester(ctx, store.RevokeAttesterInput{
			PolicyVersion: "1.0.0",
			SignerID:      "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
			Actor:         "ops",
			Reason:        "compromised",
			RevokedAt:     now,
		}).Return(nil)

		assert.NoError(t, tm.service.RemoveAttester(ctx, "1.0.0", signerB, "ops", "compromised"))
	})

	t.Run("threshold above active attesters of the active policy", func(t *testing.T) {
		tm := setupTestService(t)
		tm.store.EXPECT().GetPolicyByVersion(ctx, "1.0.0").Return(policyRow(t, validPolicy(), true), nil)
		tm.store.EXPECT().ListAttesters(ctx, "1.0.0", true).
			Return([]schema.Attester{{SignerID: "0xaa"}, {SignerID: "0xbb"}}, nil)

		err := tm.service.SetThreshold(ctx, "1.0.0", 3, "ops", "")
		var policyErr *domain.PolicyError
		assert.True(t, errors.As(err, &policyErr))
	})

	t.Run("threshold of an inactive policy", func(t *testing.T) {
		tm := setupTestService(t)
		tm.store.EXPECT().GetPolicyByVersion(ctx, "1.0.0").Return(policyRow(t, validPolicy(), false), nil)
		tm.store.EXPECT().SetSignatureThreshold(ctx, store.SetSignatureThresholdInput{
			PolicyVersion: "1.0.0",
			Threshold:     3,
			Actor:         "ops",
			ChangedAt:     now,
		}).Return(nil)

		assert.NoError(t, tm.service.SetThreshold(ctx, "1.0.0", 3, "ops", ""))
	})

	t.Run("zero threshold", func(t *testing.T) {
		tm := setupTestService(t)
		err := tm.service.SetThreshold(ctx, "1.0.0", 0, "ops", "")
		var ve *domain.ValidationError
		assert.True(t, errors.As(err, &ve))
	})
}

func TestService_VerifyAuditChain(t *testing.T) {
	ctx := context.Background()

	chain := func(t *testing.T) []schema.PolicyChange {
		changes := []schema.PolicyChange{
			{ID: 1, PolicyVersion: "1.0.0", ChangeType: domain.PolicyChangeCreate, Field: "content_hash", NewValue: "0x01", Actor: "ops", ChangedAt: now},
			{ID: 2, PolicyVersion: "1.0.0", ChangeType: domain.PolicyChangeActivate, Field: "is_active", OldValue: "false", NewValue: "true", Actor: "ops", ChangedAt: now.Add(time.Minute)},
		}
		prev := ""
		for i := range changes {
			require.NoError(t, audit.Seal(prev, &changes[i]))
			prev = changes[i].EntryHash
		}
		return changes
	}

	t.Run("intact", func(t *testing.T) {
		tm := setupTestService(t)
		changes := chain(t)
		tm.store.EXPECT().ListPolicyChanges(ctx, store.PolicyChangesFilter{}).Return(changes, uint64(2), nil)

		result, err := tm.service.VerifyAuditChain(ctx)
		require.NoError(t, err)
		assert.True(t, result.Valid)
		assert.Equal(t, 2, result.Checked)
		assert.Equal(t, changes[1].EntryHash, result.HeadHash)
	})

	t.Run("tampered", func(t *testing.T) {
		tm := setupTestService(t)
		changes := chain(t)
		changes[0].Actor = "mallory"
		tm.store.EXPECT().ListPolicyChanges(ctx, store.PolicyChangesFilter{}).Return(changes, uint64(2), nil)

		result, err := tm.service.VerifyAuditChain(ctx)
		require.NoError(t, err)
		assert.False(t, result.Valid)
		require.NotNil(t, result.Violation)
		assert.Equal(t, int64(1), result.Violation.ChangeID)
	})
}

func TestResolver(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	resolver := policy.NewResolver(st)

	t.Run("no active policy fails closed", func(t *testing.T) {
		st.EXPECT().GetActivePolicy(ctx).Return(nil, nil)
		_, err := resolver.GetActivePolicy(ctx)
		assert.ErrorIs(t, err, domain.ErrNoActivePolicy)
	})

	t.Run("row threshold wins over the document", func(t *testing.T) {
		row := policyRow(t, validPolicy(), true)
		row.SignatureThreshold = 3
		st.EXPECT().GetActivePolicy(ctx).Return(row, nil)

		record, err := resolver.GetActivePolicy(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, record.SignatureThreshold)
		assert.Equal(t, row.ContentHash, record.ContentHash)
	})

	t.Run("platform thresholds merge per field", func(t *testing.T) {
		p := validPolicy()
		p.Thresholds.PillarMinimums = map[domain.Pillar]float64{domain.PillarTruth: 45}
		light := 60.0
		p.PlatformOverrides = map[string]domain.ThresholdOverride{
			"angel": {
				MinLightScore:  &light,
				PillarMinimums: map[domain.Pillar]float64{domain.PillarUnity: 50},
			},
		}
		st.EXPECT().GetActivePolicy(ctx).Return(policyRow(t, p, true), nil).Times(2)

		got, err := resolver.GetPlatformThresholds(ctx, "angel")
		require.NoError(t, err)
		assert.Equal(t, "1.0.0", got.PolicyVersion)
		assert.Equal(t, 60.0, got.Thresholds.MinLightScore)
		assert.Equal(t, 0.5, got.Thresholds.MinIntegrityK)
		assert.Equal(t, map[domain.Pillar]float64{domain.PillarTruth: 45, domain.PillarUnity: 50}, got.Thresholds.PillarMinimums)

		got, err = resolver.GetPlatformThresholds(ctx, "other")
		require.NoError(t, err)
		assert.Equal(t, 50.0, got.Thresholds.MinLightScore)
	})

	t.Run("defaults are valid display values", func(t *testing.T) {
		d := resolver.Defaults()
		assert.Equal(t, domain.RewardFormulaPPLPv1, d.RewardFormula)
		assert.True(t, d.Caps.UserEpochCap.LessThanOrEqual(d.Caps.EpochCap))
	})
}
