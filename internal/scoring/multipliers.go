package scoring

import (
	"github.com/shopspring/decimal"

	"github.com/feral-file/pplp-engine/internal/domain"
)

var (
	one            = decimal.NewFromInt(1)
	half           = decimal.NewFromFloat(0.5)
	quarter        = decimal.NewFromFloat(0.25)
	two            = decimal.NewFromInt(2)
	contentDivisor = decimal.NewFromInt(500)

	scopeBonus = map[domain.Scope]decimal.Decimal{
		domain.ScopeIndividual: decimal.Zero,
		domain.ScopeCommunity:  half,
		domain.ScopeRegional:   one,
		domain.ScopeGlobal:     decimal.NewFromFloat(1.5),
	}
)

// QualityMultiplier returns Q in [1,3]
func QualityMultiplier(md *domain.Metadata) decimal.Decimal {
	q := one.Add(decimal.Min(decimal.NewFromInt(int64(md.ContentLength)).Div(contentDivisor), one))
	if md.HasEvidence {
		q = q.Add(half)
	}
	if md.HasMedia {
		q = q.Add(half)
	}
	return q
}

// ImpactMultiplier returns I in [1,5]. An empty scope counts as individual.
func ImpactMultiplier(impact domain.Impact) decimal.Decimal {
	i := one.Add(scopeBonus[impact.Scope])
	i = i.Add(decimal.Min(quarter.Mul(decimal.NewFromInt(int64(impact.Beneficiaries))), two))
	if impact.Outcome == domain.OutcomePositive {
		i = i.Add(half)
	}
	return i
}

// IntegrityMultiplier returns K in [0,1]. Caller-supplied signals only count when at least one piece of
// evidence was verified by the engine; otherwise, and below the kill switch, K is zero.
func IntegrityMultiplier(integrity domain.Integrity, verifiedEvidence int, killSwitchBelow float64) decimal.Decimal {
	if !integrity.SourceVerified || verifiedEvidence == 0 {
		return decimal.Zero
	}
	if integrity.AntiSybilScore < killSwitchBelow {
		return decimal.Zero
	}
	return decimal.NewFromFloat(integrity.AntiSybilScore)
}
