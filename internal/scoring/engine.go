// Package scoring turns an action and a policy into a Score. Scoring is a pure function: the same
// action inputs under the same policy always produce the same result.
package scoring

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/feral-file/pplp-engine/internal/domain"
)

// Input is everything the engine reads from an action
type Input struct {
	ActionType domain.ActionType
	Metadata   *domain.Metadata
	Impact     domain.Impact
	Integrity  domain.Integrity
	// VerifiedEvidence is the number of evidence records whose payload the engine hashed itself
	VerifiedEvidence int
}

// Gate names a pass condition that an action failed
type Gate string

const (
	GateLightScore Gate = "light_score"
	GateIntegrity  Gate = "integrity"
	GateKillSwitch Gate = "kill_switch"
)

// PillarGate names a failed per-pillar minimum
func PillarGate(p domain.Pillar) Gate {
	return Gate("pillar_" + string(p))
}

// Result is the outcome of scoring one action
type Result struct {
	Pillars       domain.PillarValues `json:"pillars"`
	LightScore    float64             `json:"light_score"`
	Quality       decimal.Decimal     `json:"quality"`
	Impact        decimal.Decimal     `json:"impact"`
	Integrity     decimal.Decimal     `json:"integrity"`
	Decision      domain.Decision     `json:"decision"`
	FailedGates   []Gate              `json:"failed_gates,omitempty"`
	Reward        decimal.Decimal     `json:"reward"`
	PolicyVersion string              `json:"policy_version"`
	Formula       string              `json:"formula"`
}

// Engine scores actions
//
//go:generate mockgen -source=engine.go -destination=../mocks/scoring_engine.go -package=mocks -mock_names=Engine=MockScoringEngine
type Engine interface {
	// Score scores an action under policy with thresholds already resolved for the action's platform
	Score(policy *domain.Policy, thresholds domain.Thresholds, in Input) (*Result, error)
}

type engine struct {
	formulas formulas
}

// NewEngine creates a scoring engine
func NewEngine() Engine {
	return &engine{}
}

func (e *engine) Score(policy *domain.Policy, thresholds domain.Thresholds, in Input) (*Result, error) {
	if policy == nil {
		return nil, domain.ErrNoActivePolicy
	}
	if in.Metadata == nil {
		return nil, domain.NewValidationError("metadata", "metadata is required")
	}
	if !in.ActionType.Valid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownActionType, in.ActionType)
	}

	pillarValues, err := ComputePillars(in.ActionType, in.Metadata, in.Impact)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Pillars:       pillarValues,
		LightScore:    LightScore(policy.Weights, pillarValues),
		Quality:       QualityMultiplier(in.Metadata),
		Impact:        ImpactMultiplier(in.Impact),
		Integrity:     IntegrityMultiplier(in.Integrity, in.VerifiedEvidence, thresholds.KillSwitchBelow),
		PolicyVersion: policy.Version,
		Formula:       policy.RewardFormula,
	}

	result.FailedGates = evaluateGates(result, thresholds)
	if len(result.FailedGates) > 0 {
		result.Decision = domain.DecisionFail
		result.Reward = decimal.Zero
		return result, nil
	}
	result.Decision = domain.DecisionPass

	raw, err := e.formulas.rawReward(policy, RewardInputs{
		Base:    policy.BaseReward,
		Q:       result.Quality,
		I:       result.Impact,
		K:       result.Integrity,
		Light:   result.LightScore,
		Pillars: pillarValues,
	})
	if err != nil {
		return nil, err
	}
	result.Reward = FinalizeReward(raw, policy.Caps)

	return result, nil
}

// evaluateGates returns the gates the result fails, in a fixed order
func evaluateGates(r *Result, t domain.Thresholds) []Gate {
	var failed []Gate
	if r.LightScore < t.MinLightScore {
		failed = append(failed, GateLightScore)
	}
	if r.Integrity.IsZero() {
		failed = append(failed, GateKillSwitch)
	} else if r.Integrity.LessThan(decimal.NewFromFloat(t.MinIntegrityK)) {
		failed = append(failed, GateIntegrity)
	}
	for _, p := range domain.Pillars {
		if minimum, ok := t.PillarMinimums[p]; ok && r.Pillars.Get(p) < minimum {
			failed = append(failed, PillarGate(p))
		}
	}
	return failed
}

// FinalizeReward truncates a passing reward to the issuance unit and clamps it to the mint bounds
func FinalizeReward(raw decimal.Decimal, caps domain.Caps) decimal.Decimal {
	reward := raw.Truncate(caps.IssuanceDecimals)
	if reward.LessThan(caps.MinMint) {
		reward = caps.MinMint
	}
	if caps.MaxMint.IsPositive() && reward.GreaterThan(caps.MaxMint) {
		reward = caps.MaxMint
	}
	return reward
}
