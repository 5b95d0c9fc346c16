package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pillar is one of the five scoring dimensions
type Pillar string

const (
	PillarService      Pillar = "S"
	PillarTruth        Pillar = "T"
	PillarHealing      Pillar = "H"
	PillarContribution Pillar = "C"
	PillarUnity        Pillar = "U"
)

// Pillars lists the pillars in canonical order
var Pillars = []Pillar{PillarService, PillarTruth, PillarHealing, PillarContribution, PillarUnity}

// PillarValues holds one number per pillar. Used for both weights and scores.
type PillarValues struct {
	S float64 `json:"S"`
	T float64 `json:"T"`
	H float64 `json:"H"`
	C float64 `json:"C"`
	U float64 `json:"U"`
}

// Get returns the value for a pillar
func (v PillarValues) Get(p Pillar) float64 {
	switch p {
	case PillarService:
		return v.S
	case PillarTruth:
		return v.T
	case PillarHealing:
		return v.H
	case PillarContribution:
		return v.C
	case PillarUnity:
		return v.U
	}
	return 0
}

// Sum returns the sum of all five values
func (v PillarValues) Sum() float64 {
	return v.S + v.T + v.H + v.C + v.U
}

// Thresholds are the pass/fail gates applied to a score
type Thresholds struct {
	MinLightScore   float64            `json:"min_light_score"`
	MinIntegrityK   float64            `json:"min_integrity_k"`
	KillSwitchBelow float64            `json:"kill_switch_below"`
	PillarMinimums  map[Pillar]float64 `json:"pillar_minimums,omitempty"`
}

// ThresholdOverride is a per-platform partial override of Thresholds
type ThresholdOverride struct {
	MinLightScore  *float64           `json:"min_light_score,omitempty"`
	MinIntegrityK  *float64           `json:"min_integrity_k,omitempty"`
	PillarMinimums map[Pillar]float64 `json:"pillar_minimums,omitempty"`
}

// Merge applies an override on top of t. Set override fields win; pillar minimums merge per pillar.
func (t Thresholds) Merge(o *ThresholdOverride) Thresholds {
	merged := Thresholds{
		MinLightScore:   t.MinLightScore,
		MinIntegrityK:   t.MinIntegrityK,
		KillSwitchBelow: t.KillSwitchBelow,
		PillarMinimums:  make(map[Pillar]float64, len(t.PillarMinimums)),
	}
	for p, v := range t.PillarMinimums {
		merged.PillarMinimums[p] = v
	}
	if o == nil {
		return merged
	}
	if o.MinLightScore != nil {
		merged.MinLightScore = *o.MinLightScore
	}
	if o.MinIntegrityK != nil {
		merged.MinIntegrityK = *o.MinIntegrityK
	}
	for p, v := range o.PillarMinimums {
		merged.PillarMinimums[p] = v
	}
	return merged
}

// Caps bound issuance
type Caps struct {
	EpochKey             string          `json:"epoch_key"`
	EpochDurationSeconds int64           `json:"epoch_duration_seconds"`
	EpochCap             decimal.Decimal `json:"epoch_cap"`
	UserEpochCap         decimal.Decimal `json:"user_epoch_cap"`
	MinMint              decimal.Decimal `json:"min_mint"`
	MaxMint              decimal.Decimal `json:"max_mint"`
	IssuanceDecimals     int32           `json:"issuance_decimals"`
	LedgerDecimals       int32           `json:"ledger_decimals"`
}

// EpochDuration returns the epoch length
func (c Caps) EpochDuration() time.Duration {
	return time.Duration(c.EpochDurationSeconds) * time.Second
}

// ToLedgerUnits converts an amount to the ledger's integer base units
func (c Caps) ToLedgerUnits(amount decimal.Decimal) decimal.Decimal {
	return amount.Shift(c.LedgerDecimals).Truncate(0)
}

const (
	// RewardFormulaPPLPv1 is base_reward × Q × I × K
	RewardFormulaPPLPv1 = "pplp-v1"
	// RewardFormulaCEL evaluates the policy's reward expression
	RewardFormulaCEL = "cel"
)

// Policy is the versioned scoring and issuance configuration. Once stored it is never mutated;
// only its activation state and attester registry change, and both are audited.
type Policy struct {
	Version            string                       `json:"version"`
	Weights            PillarValues                 `json:"weights"`
	Thresholds         Thresholds                   `json:"thresholds"`
	BaseReward         decimal.Decimal              `json:"base_reward"`
	PlatformOverrides  map[string]ThresholdOverride `json:"platform_overrides,omitempty"`
	Caps               Caps                         `json:"caps"`
	RewardFormula      string                       `json:"reward_formula"`
	RewardExpression   string                       `json:"reward_expression,omitempty"`
	SignatureThreshold int                          `json:"signature_threshold"`
	Attesters          []string                     `json:"attesters,omitempty"`
}

// PlatformThresholds resolves the thresholds for a platform, override winning per field
func (p *Policy) PlatformThresholds(platformID string) Thresholds {
	if o, ok := p.PlatformOverrides[platformID]; ok {
		return p.Thresholds.Merge(&o)
	}
	return p.Thresholds.Merge(nil)
}

// PolicyChangeType names an audited policy mutation
type PolicyChangeType string

const (
	PolicyChangeCreate          PolicyChangeType = "create"
	PolicyChangeActivate        PolicyChangeType = "activate"
	PolicyChangeDeactivate      PolicyChangeType = "deactivate"
	PolicyChangeRegister        PolicyChangeType = "register"
	PolicyChangeAttesterAdd     PolicyChangeType = "attester_add"
	PolicyChangeAttesterRemove  PolicyChangeType = "attester_remove"
	PolicyChangeThresholdChange PolicyChangeType = "threshold_change"
)
