package service

import (
	"github.com/shopspring/decimal"

	"github.com/okralabs/okra/internal/domain/model"
	"github.com/okralabs/okra/internal/domain/policy"
	"github.com/okralabs/okra/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// FeatureNormalizer - maps validated request fields into bounded signals
// ---------------------------------------------------------------------------

// BNPLFeatures are the bounded inputs of the BNPL scoring pipeline. Amount
// and tenor are clamped to the configured product bounds; rates pass through
// unchanged apart from the documented utilization inversion.
type BNPLFeatures struct {
	Amount         float64
	Tenor          int
	OnTimeRate     float64
	Utilization    float64
	NormAmount     float64
	NormTenor      float64
	InvUtilization float64
}

// InstallmentFeatures are the bounded inputs of the installment pipeline.
// NormCredit is zero when no credit score was supplied.
type InstallmentFeatures struct {
	Amount     decimal.Decimal
	TermMonths int
	Profile    *valueobject.CreditProfile
	NormAmount float64
	NormTenor  float64
	NormCredit float64
	InvDTI     float64
}

// FeatureNormalizer turns a validated CreditRequest into bounded features.
// Request validation happens at construction time; by the time a request
// reaches the normalizer no field can be out of its documented range.
type FeatureNormalizer struct {
	params *policy.Parameters
}

// NewFeatureNormalizer wires the normalizer to a policy snapshot.
func NewFeatureNormalizer(params *policy.Parameters) FeatureNormalizer {
	return FeatureNormalizer{params: params}
}

// NormalizeBNPL clamps amount and tenor into the product bounds and derives
// the normalized signal values.
func (n FeatureNormalizer) NormalizeBNPL(req model.CreditRequest) BNPLFeatures {
	p := n.params.BNPL
	signals := req.BNPLSignals()

	amount := clampFloat(req.Amount().InexactFloat64(), p.MinAmount, p.MaxAmount)
	tenor := clampInt(req.TermMonths(), p.MinTenor, p.MaxTenor)

	return BNPLFeatures{
		Amount:         amount,
		Tenor:          tenor,
		OnTimeRate:     signals.OnTimeRate,
		Utilization:    signals.Utilization,
		NormAmount:     (amount - p.MinAmount) / (p.MaxAmount - p.MinAmount),
		NormTenor:      float64(tenor-p.MinTenor) / float64(p.MaxTenor-p.MinTenor),
		InvUtilization: 1.0 - signals.Utilization,
	}
}

// NormalizeInstallment derives the normalized signal values for an
// installment request. Credit scores map linearly from [300, 850] onto
// [0, 1]; DTI is inverted since lower is better.
func (n FeatureNormalizer) NormalizeInstallment(req model.CreditRequest) InstallmentFeatures {
	p := n.params.Installment

	normAmount := clampFloat(
		req.Amount().InexactFloat64()/p.MaxAmount.InexactFloat64(), 0, 1)
	normTenor := clampFloat(
		float64(req.TermMonths())/float64(p.MaxTermMonths), 0, 1)

	f := InstallmentFeatures{
		Amount:     req.Amount(),
		TermMonths: req.TermMonths(),
		Profile:    req.Profile(),
		NormAmount: normAmount,
		NormTenor:  normTenor,
		InvDTI:     1.0,
	}
	if profile := req.Profile(); profile != nil {
		if profile.HasScore() {
			f.NormCredit = float64(profile.Score()-300) / 550.0
		}
		f.InvDTI = 1.0 - profile.DebtToIncomeRatio.InexactFloat64()
	}
	return f
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
