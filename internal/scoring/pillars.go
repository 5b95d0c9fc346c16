package scoring

import (
	"math"

	"github.com/feral-file/pplp-engine/internal/domain"
)

const (
	pillarBase = 40.0
	pillarMin  = 0.0
	pillarMax  = 100.0

	// bonusCap bounds every quantity-driven bonus
	bonusCap = 10.0
)

// pillars accumulates adjustments; values are clamped once at the end
type pillars struct {
	s, t, h, c, u float64
}

// ComputePillars derives the five pillar scores of an action. It depends only on the action type,
// metadata and impact, never on the policy.
func ComputePillars(t domain.ActionType, md *domain.Metadata, impact domain.Impact) (domain.PillarValues, error) {
	p := pillars{s: pillarBase, t: pillarBase, h: pillarBase, c: pillarBase, u: pillarBase}

	if md.HasEvidence {
		p.t += 10
	}
	// Integer division: every 20 units of content length earn one point
	p.t += math.Min(float64(md.ContentLength/20), bonusCap)

	switch impact.Outcome {
	case domain.OutcomePositive:
		p.s += 10
	case domain.OutcomeNegative:
		p.h -= 10
		p.s -= 10
	}

	switch t {
	case domain.ActionTypeDonation:
		p.s += 10
		p.c += 30
		p.u += 5
		if d, ok := md.Details.(*domain.DonationDetails); ok && d.Amount != nil {
			p.c += math.Min(*d.Amount/100, bonusCap)
		}
	case domain.ActionTypeEducation:
		p.t += 20
		p.s += 10
		if d, ok := md.Details.(*domain.EducationDetails); ok && d.Learners != nil {
			p.t += math.Min(float64(*d.Learners), bonusCap)
		}
	case domain.ActionTypeVolunteer:
		p.s += 25
		p.u += 5
		if d, ok := md.Details.(*domain.VolunteerDetails); ok && d.Hours != nil {
			p.s += math.Min(*d.Hours, bonusCap)
		}
	case domain.ActionTypeContent:
		p.t += 15
		p.u += 5
		if d, ok := md.Details.(*domain.ContentDetails); ok && d.Original != nil && *d.Original {
			p.t += 5
		}
	case domain.ActionTypeMentorship:
		p.h += 20
		p.t += 10
		if d, ok := md.Details.(*domain.MentorshipDetails); ok && d.Sessions != nil {
			p.h += math.Min(float64(*d.Sessions*2), bonusCap)
		}
	case domain.ActionTypeCommunity:
		p.u += 25
		p.h += 5
		if d, ok := md.Details.(*domain.CommunityDetails); ok && d.Participants != nil {
			p.u += math.Min(float64(*d.Participants/10), bonusCap)
		}
	default:
		return domain.PillarValues{}, domain.ErrUnknownActionType
	}

	return domain.PillarValues{
		S: clamp(p.s, pillarMin, pillarMax),
		T: clamp(p.t, pillarMin, pillarMax),
		H: clamp(p.h, pillarMin, pillarMax),
		C: clamp(p.c, pillarMin, pillarMax),
		U: clamp(p.u, pillarMin, pillarMax),
	}, nil
}

// LightScore is the weighted pillar sum rounded to 6 decimals
func LightScore(weights, values domain.PillarValues) float64 {
	var sum float64
	for _, p := range domain.Pillars {
		sum += weights.Get(p) * values.Get(p)
	}
	return roundTo(sum, 6)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow10(places)
	return math.Round(v*scale) / scale
}
