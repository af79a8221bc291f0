package service

import (
	"math"

	"github.com/okralabs/okra/internal/domain/policy"
	"github.com/okralabs/okra/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// SignalScorer - sub-scores and qualitative labels per normalized feature
// ---------------------------------------------------------------------------

// SignalScorer maps each normalized feature to a sub-score in [0, 1] and a
// label from that feature's fixed vocabulary. Identical input always yields
// identical output: no randomness, no external calls.
type SignalScorer struct {
	params *policy.Parameters
}

// NewSignalScorer wires the scorer to a policy snapshot.
func NewSignalScorer(params *policy.Parameters) SignalScorer {
	return SignalScorer{params: params}
}

// ScoreBNPL produces the ordered BNPL signal set: amount, tenor, on_time,
// utilization.
func (s SignalScorer) ScoreBNPL(f BNPLFeatures) valueobject.SignalSet {
	p := s.params.BNPL
	bands := p.SignalBands

	return valueobject.NewSignalSet([]valueobject.Signal{
		{
			Name:       valueobject.SignalAmount,
			Normalized: f.NormAmount,
			SubScore:   amountCurveScore(f.NormAmount, p.AmountCurve),
			Label:      amountLabel(f.Amount, bands),
		},
		{
			Name:       valueobject.SignalTenor,
			Normalized: f.NormTenor,
			SubScore:   1.0 - math.Pow(f.NormTenor, p.TenorExponent),
			Label:      tenorLabel(f.Tenor, bands),
		},
		{
			Name:       valueobject.SignalOnTime,
			Normalized: f.OnTimeRate,
			SubScore:   f.OnTimeRate,
			Label:      paymentLabel(f.OnTimeRate, bands),
		},
		{
			Name:       valueobject.SignalUtilization,
			Normalized: f.InvUtilization,
			SubScore:   f.InvUtilization,
			Label:      utilizationLabel(f.Utilization, bands),
		},
	})
}

// ScoreInstallment produces the ordered installment signal set: amount,
// tenor, credit, dti. Smaller amounts and shorter terms relative to the
// product caps score higher.
func (s SignalScorer) ScoreInstallment(f InstallmentFeatures) valueobject.SignalSet {
	bands := s.params.Installment.SignalBands

	creditSub := f.NormCredit
	creditLabel := "not_provided"
	dtiLabel := "not_provided"
	if f.Profile != nil {
		if f.Profile.HasScore() {
			creditLabel = creditScoreLabel(f.Profile.Score(), bands)
		}
		dtiLabel = dtiRatioLabel(f.Profile.DebtToIncomeRatio.InexactFloat64(), bands)
	}

	return valueobject.NewSignalSet([]valueobject.Signal{
		{
			Name:       valueobject.SignalAmount,
			Normalized: f.NormAmount,
			SubScore:   1.0 - f.NormAmount,
			Label:      relativeAmountLabel(f.NormAmount, bands),
		},
		{
			Name:       valueobject.SignalTenor,
			Normalized: f.NormTenor,
			SubScore:   1.0 - f.NormTenor,
			Label:      termLabel(f.TermMonths, bands),
		},
		{
			Name:       valueobject.SignalCredit,
			Normalized: f.NormCredit,
			SubScore:   creditSub,
			Label:      creditLabel,
		},
		{
			Name:       valueobject.SignalDTI,
			Normalized: f.InvDTI,
			SubScore:   f.InvDTI,
			Label:      dtiLabel,
		},
	})
}

// amountCurveScore rewards amounts inside the optimal band of the normalized
// range and decays linearly outside it, floored at the configured minimum.
func amountCurveScore(norm float64, c policy.AmountCurve) float64 {
	if norm >= c.OptimalLow && norm <= c.OptimalHigh {
		mid := (c.OptimalLow + c.OptimalHigh) / 2
		halfWidth := (c.OptimalHigh - c.OptimalLow) / 2
		return c.PeakBase + (1.0-c.PeakBase)*(1.0-math.Abs(norm-mid)/halfWidth)
	}
	dist := math.Min(math.Abs(norm-c.OptimalLow), math.Abs(norm-c.OptimalHigh))
	return math.Max(c.FloorScore, c.PeakBase-dist*c.Slope)
}

func amountLabel(amount float64, b policy.SignalBands) string {
	switch {
	case amount < b.AmountLow:
		return "low_amount"
	case amount > b.AmountHigh:
		return "high_amount"
	default:
		return "moderate_amount"
	}
}

func tenorLabel(tenor int, b policy.SignalBands) string {
	switch {
	case tenor <= b.TenorShort:
		return "short_term"
	case tenor >= b.TenorLong:
		return "long_term"
	default:
		return "medium_term"
	}
}

func paymentLabel(rate float64, b policy.SignalBands) string {
	switch {
	case rate >= b.PaymentExcellent:
		return "excellent_history"
	case rate >= b.PaymentGood:
		return "good_history"
	case rate >= b.PaymentFair:
		return "fair_history"
	default:
		return "poor_history"
	}
}

func utilizationLabel(utilization float64, b policy.SignalBands) string {
	switch {
	case utilization <= b.UtilizationLow:
		return "low_utilization"
	case utilization >= b.UtilizationHigh:
		return "high_utilization"
	default:
		return "moderate_utilization"
	}
}

func relativeAmountLabel(norm float64, b policy.InstallmentSignalBands) string {
	switch {
	case norm <= b.AmountLow:
		return "low_amount"
	case norm >= b.AmountHigh:
		return "high_amount"
	default:
		return "moderate_amount"
	}
}

func termLabel(months int, b policy.InstallmentSignalBands) string {
	switch {
	case months <= b.TermShort:
		return "short_term"
	case months >= b.TermLong:
		return "long_term"
	default:
		return "medium_term"
	}
}

func creditScoreLabel(score int, b policy.InstallmentSignalBands) string {
	switch {
	case score >= b.CreditExcellent:
		return "excellent_credit"
	case score >= b.CreditGood:
		return "good_credit"
	case score >= b.CreditFair:
		return "fair_credit"
	default:
		return "poor_credit"
	}
}

func dtiRatioLabel(dti float64, b policy.InstallmentSignalBands) string {
	switch {
	case dti <= b.DTILow:
		return "low_dti"
	case dti <= b.DTIModerate:
		return "moderate_dti"
	case dti <= b.DTIElevated:
		return "elevated_dti"
	default:
		return "high_dti"
	}
}
