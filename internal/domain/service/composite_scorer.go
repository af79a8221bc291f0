package service

import (
	"math"

	"github.com/okralabs/okra/internal/domain/policy"
	"github.com/okralabs/okra/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// CompositeScorer - weighted sum of sub-scores, clamped to [0, 1]
// ---------------------------------------------------------------------------

// CompositeScorer combines per-signal sub-scores into the single score that
// feeds policy thresholds. The combination is a pure weighted sum; nothing
// stochastic touches the score path.
type CompositeScorer struct {
	params *policy.Parameters
}

// NewCompositeScorer wires the scorer to a policy snapshot.
func NewCompositeScorer(params *policy.Parameters) CompositeScorer {
	return CompositeScorer{params: params}
}

// CombineBNPL computes the BNPL composite score, rounded to 3 decimal places.
func (c CompositeScorer) CombineBNPL(set valueobject.SignalSet) float64 {
	w := c.params.BNPL.Weights
	weights := map[string]float64{
		valueobject.SignalAmount:      w.Amount,
		valueobject.SignalTenor:       w.Tenor,
		valueobject.SignalOnTime:      w.OnTimeRate,
		valueobject.SignalUtilization: w.Utilization,
	}
	return combine(set, weights)
}

// CombineInstallment computes the reported installment composite score,
// rounded to 3 decimal places.
func (c CompositeScorer) CombineInstallment(set valueobject.SignalSet) float64 {
	w := c.params.Installment.Weights
	weights := map[string]float64{
		valueobject.SignalAmount: w.Amount,
		valueobject.SignalTenor:  w.Tenor,
		valueobject.SignalCredit: w.Credit,
		valueobject.SignalDTI:    w.DTI,
	}
	return combine(set, weights)
}

// RiskLabel maps a composite score onto the overall risk vocabulary.
func (c CompositeScorer) RiskLabel(score float64) string {
	bands := c.params.BNPL.SignalBands
	switch {
	case score >= bands.RiskLow:
		return "low_risk"
	case score >= bands.RiskMedium:
		return "medium_risk"
	default:
		return "high_risk"
	}
}

func combine(set valueobject.SignalSet, weights map[string]float64) float64 {
	total := 0.0
	for _, sig := range set.Signals() {
		total += sig.SubScore * weights[sig.Name]
	}
	if total < 0 {
		total = 0
	}
	if total > 1 {
		total = 1
	}
	return RoundScore(total)
}

// RoundScore rounds a composite or component score to 3 decimal places for
// reporting.
func RoundScore(s float64) float64 {
	return math.Round(s*1000) / 1000
}
