package policy

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/pplp-engine/internal/domain"
	"github.com/feral-file/pplp-engine/internal/scoring"
)

const (
	weightSumTolerance  = 1e-6
	maxIssuanceDecimals = 18
	maxLedgerDecimals   = 36
)

func invalid(p *domain.Policy, format string, args ...any) error {
	return &domain.PolicyError{Version: p.Version, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks a policy document. Every failure is a *domain.PolicyError.
func Validate(p *domain.Policy) error {
	if _, err := semver.StrictNewVersion(p.Version); err != nil {
		return invalid(p, "version must be a semantic version: %v", err)
	}
	if err := ValidateWeights(p); err != nil {
		return err
	}
	if reason := thresholdsProblem(p.Thresholds); reason != "" {
		return invalid(p, "thresholds.%s", reason)
	}
	if p.Thresholds.KillSwitchBelow < 0 || p.Thresholds.KillSwitchBelow > 1 {
		return invalid(p, "thresholds.kill_switch_below must be within [0,1]")
	}
	platforms := make([]string, 0, len(p.PlatformOverrides))
	for platformID := range p.PlatformOverrides {
		platforms = append(platforms, platformID)
	}
	slices.Sort(platforms)
	for _, platformID := range platforms {
		o := p.PlatformOverrides[platformID]
		if platformID == "" {
			return invalid(p, "platform_overrides has an empty platform id")
		}
		if reason := thresholdsProblem(p.Thresholds.Merge(&o)); reason != "" {
			return invalid(p, "platform_overrides.%s.%s", platformID, reason)
		}
	}
	if !p.BaseReward.IsPositive() {
		return invalid(p, "base_reward must be positive")
	}
	if err := validateCaps(p); err != nil {
		return err
	}

	switch p.RewardFormula {
	case domain.RewardFormulaPPLPv1:
	case domain.RewardFormulaCEL:
		if strings.TrimSpace(p.RewardExpression) == "" {
			return invalid(p, "reward_expression is required for the cel formula")
		}
		if _, err := scoring.CompileRewardExpression(p.RewardExpression); err != nil {
			return invalid(p, "reward_expression: %v", err)
		}
	default:
		return invalid(p, "unknown reward_formula %q", p.RewardFormula)
	}

	if p.SignatureThreshold < 1 {
		return invalid(p, "signature_threshold must be at least 1")
	}
	seen := make(map[string]bool, len(p.Attesters))
	for _, a := range p.Attesters {
		if !common.IsHexAddress(a) {
			return invalid(p, "attester %q is not an address", a)
		}
		key := strings.ToLower(a)
		if seen[key] {
			return invalid(p, "attester %s is listed twice", a)
		}
		seen[key] = true
	}
	return nil
}

// ValidateWeights checks that each weight is within [0,1] and that they sum to 1
func ValidateWeights(p *domain.Policy) error {
	for _, pillar := range domain.Pillars {
		if w := p.Weights.Get(pillar); w < 0 || w > 1 || math.IsNaN(w) {
			return invalid(p, "weights.%s must be within [0,1]", pillar)
		}
	}
	if sum := p.Weights.Sum(); math.Abs(sum-1) > weightSumTolerance {
		return invalid(p, "weights must sum to 1, got %v", sum)
	}
	return nil
}

// thresholdsProblem describes the first out-of-range threshold, or returns ""
func thresholdsProblem(t domain.Thresholds) string {
	if t.MinLightScore < 0 || t.MinLightScore > 100 {
		return "min_light_score must be within [0,100]"
	}
	if t.MinIntegrityK < 0 || t.MinIntegrityK > 1 {
		return "min_integrity_k must be within [0,1]"
	}
	for _, pillar := range sortedPillars(t.PillarMinimums) {
		if !knownPillar(pillar) {
			return fmt.Sprintf("pillar_minimums has unknown pillar %q", pillar)
		}
		if v := t.PillarMinimums[pillar]; v < 0 || v > 100 {
			return fmt.Sprintf("pillar_minimums.%s must be within [0,100]", pillar)
		}
	}
	return ""
}

func sortedPillars(m map[domain.Pillar]float64) []domain.Pillar {
	keys := make([]domain.Pillar, 0, len(m))
	for p := range m {
		keys = append(keys, p)
	}
	slices.Sort(keys)
	return keys
}

func validateCaps(p *domain.Policy) error {
	c := p.Caps
	switch {
	case c.EpochKey == "":
		return invalid(p, "caps.epoch_key is required")
	case c.EpochDurationSeconds <= 0:
		return invalid(p, "caps.epoch_duration_seconds must be positive")
	case !c.EpochCap.IsPositive():
		return invalid(p, "caps.epoch_cap must be positive")
	case !c.UserEpochCap.IsPositive():
		return invalid(p, "caps.user_epoch_cap must be positive")
	case c.UserEpochCap.GreaterThan(c.EpochCap):
		return invalid(p, "caps.user_epoch_cap must not exceed caps.epoch_cap")
	case c.MinMint.IsNegative():
		return invalid(p, "caps.min_mint must not be negative")
	case c.MaxMint.IsNegative():
		return invalid(p, "caps.max_mint must not be negative")
	case c.MaxMint.IsPositive() && c.MaxMint.LessThan(c.MinMint):
		return invalid(p, "caps.max_mint must not be below caps.min_mint")
	case c.MinMint.GreaterThan(c.UserEpochCap):
		return invalid(p, "caps.min_mint must not exceed caps.user_epoch_cap")
	case c.IssuanceDecimals < 0 || c.IssuanceDecimals > maxIssuanceDecimals:
		return invalid(p, "caps.issuance_decimals must be within [0,%d]", maxIssuanceDecimals)
	case c.LedgerDecimals < c.IssuanceDecimals || c.LedgerDecimals > maxLedgerDecimals:
		return invalid(p, "caps.ledger_decimals must be within [issuance_decimals,%d]", maxLedgerDecimals)
	case !c.MinMint.Equal(c.MinMint.Truncate(c.IssuanceDecimals)):
		return invalid(p, "caps.min_mint has more than %d decimals", c.IssuanceDecimals)
	}
	return nil
}

func knownPillar(p domain.Pillar) bool {
	for _, known := range domain.Pillars {
		if p == known {
			return true
		}
	}
	return false
}
