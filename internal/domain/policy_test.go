package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPillarValues(t *testing.T) {
	v := PillarValues{S: 0.1, T: 0.2, H: 0.3, C: 0.15, U: 0.25}

	assert.Equal(t, 0.1, v.Get(PillarService))
	assert.Equal(t, 0.2, v.Get(PillarTruth))
	assert.Equal(t, 0.3, v.Get(PillarHealing))
	assert.Equal(t, 0.15, v.Get(PillarContribution))
	assert.Equal(t, 0.25, v.Get(PillarUnity))
	assert.Zero(t, v.Get(Pillar("X")))
	assert.InDelta(t, 1.0, v.Sum(), 1e-9)
}

func TestThresholds_Merge(t *testing.T) {
	base := Thresholds{
		MinLightScore:   50,
		MinIntegrityK:   0.6,
		KillSwitchBelow: 0.2,
		PillarMinimums:  map[Pillar]float64{PillarTruth: 10},
	}

	t.Run("nil override copies", func(t *testing.T) {
		merged := base.Merge(nil)
		assert.Equal(t, base, merged)

		merged.PillarMinimums[PillarTruth] = 99
		assert.Equal(t, 10.0, base.PillarMinimums[PillarTruth])
	})

	t.Run("override wins per field", func(t *testing.T) {
		score := 70.0
		merged := base.Merge(&ThresholdOverride{
			MinLightScore:  &score,
			PillarMinimums: map[Pillar]float64{PillarUnity: 5},
		})

		assert.Equal(t, 70.0, merged.MinLightScore)
		assert.Equal(t, 0.6, merged.MinIntegrityK)
		assert.Equal(t, 0.2, merged.KillSwitchBelow)
		assert.Equal(t, map[Pillar]float64{PillarTruth: 10, PillarUnity: 5}, merged.PillarMinimums)
	})
}

func TestPolicy_PlatformThresholds(t *testing.T) {
	k := 0.8
	p := &Policy{
		Thresholds: Thresholds{MinLightScore: 50, MinIntegrityK: 0.6},
		PlatformOverrides: map[string]ThresholdOverride{
			"angel-ai": {MinIntegrityK: &k},
		},
	}

	assert.Equal(t, 0.8, p.PlatformThresholds("angel-ai").MinIntegrityK)
	assert.Equal(t, 50.0, p.PlatformThresholds("angel-ai").MinLightScore)
	assert.Equal(t, 0.6, p.PlatformThresholds("fun-play").MinIntegrityK)
}

func TestCaps(t *testing.T) {
	caps := Caps{EpochDurationSeconds: 86400, LedgerDecimals: 18}

	assert.Equal(t, 24*time.Hour, caps.EpochDuration())
	assert.Equal(t, "1500000000000000000", caps.ToLedgerUnits(decimal.RequireFromString("1.5")).String())

	caps.LedgerDecimals = 2
	assert.Equal(t, "123", caps.ToLedgerUnits(decimal.RequireFromString("1.239")).String())
}
