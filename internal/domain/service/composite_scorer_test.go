package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/okralabs/okra/internal/domain/policy"
	"github.com/okralabs/okra/internal/domain/service"
)

func TestCombineBNPL(t *testing.T) {
	params := policy.Default()
	scorer := service.NewCompositeScorer(params)

	t.Run("reference composite", func(t *testing.T) {
		set := bnplSignals(t, 1500, 6, 0.95, 0.3)
		assert.InDelta(t, 0.780, scorer.CombineBNPL(set), 1e-9)
	})

	t.Run("score is rounded to three decimals", func(t *testing.T) {
		set := bnplSignals(t, 1234, 5, 0.876, 0.345)
		score := scorer.CombineBNPL(set)
		assert.InDelta(t, score, float64(int(score*1000+0.5))/1000, 1e-9)
	})

	t.Run("better payment history never lowers the score", func(t *testing.T) {
		prev := -1.0
		for _, onTime := range []float64{0, 0.25, 0.5, 0.75, 0.9, 1.0} {
			set := bnplSignals(t, 1500, 6, onTime, 0.3)
			score := scorer.CombineBNPL(set)
			assert.GreaterOrEqual(t, score, prev, "on_time=%v", onTime)
			prev = score
		}
	})

	t.Run("higher utilization never raises the score", func(t *testing.T) {
		prev := 2.0
		for _, u := range []float64{0, 0.2, 0.4, 0.6, 0.8, 1.0} {
			set := bnplSignals(t, 1500, 6, 0.9, u)
			score := scorer.CombineBNPL(set)
			assert.LessOrEqual(t, score, prev, "utilization=%v", u)
			prev = score
		}
	})

	t.Run("score stays within the unit interval at the extremes", func(t *testing.T) {
		worst := scorer.CombineBNPL(bnplSignals(t, 100, 12, 0, 1))
		best := scorer.CombineBNPL(bnplSignals(t, 2550, 1, 1, 0))
		assert.GreaterOrEqual(t, worst, 0.0)
		assert.LessOrEqual(t, best, 1.0)
	})
}

func TestCombineInstallment(t *testing.T) {
	params := policy.Default()
	scorer := service.NewCompositeScorer(params)

	t.Run("reference composite", func(t *testing.T) {
		set := installmentSignals(t, 15_000, 36, profileWith(750, 85_000, 0.28))
		// 0.2*0.7 + 0.2*0.4 + 0.35*(450/550) + 0.25*0.72
		assert.InDelta(t, 0.686, scorer.CombineInstallment(set), 1e-9)
	})

	t.Run("missing credit data weighs the score down, not up", func(t *testing.T) {
		with := scorer.CombineInstallment(
			installmentSignals(t, 15_000, 36, profileWith(750, 85_000, 0.28)))
		without := scorer.CombineInstallment(installmentSignals(t, 15_000, 36, nil))
		assert.Greater(t, with, without)
	})
}

func TestRiskLabel(t *testing.T) {
	scorer := service.NewCompositeScorer(policy.Default())

	assert.Equal(t, "low_risk", scorer.RiskLabel(0.85))
	assert.Equal(t, "low_risk", scorer.RiskLabel(0.80))
	assert.Equal(t, "medium_risk", scorer.RiskLabel(0.79))
	assert.Equal(t, "medium_risk", scorer.RiskLabel(0.60))
	assert.Equal(t, "high_risk", scorer.RiskLabel(0.59))
}
