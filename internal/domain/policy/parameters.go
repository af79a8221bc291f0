package policy

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Version is attached to every decision so a quote can always be traced back
// to the parameter set that produced it.
const DefaultVersion = "v1.0.0"

// RateTier maps a minimum credit score to the APR offered at that score.
// Tiers are kept in descending MinScore order; the first tier whose MinScore
// the applicant meets wins.
type RateTier struct {
	MinScore int             `yaml:"min_score" json:"min_score"`
	APR      decimal.Decimal `yaml:"apr" json:"apr"`
}

// LimitBand maps a minimum credit score to the fractional reduction applied
// to the requested amount when computing the credit limit.
type LimitBand struct {
	MinScore  int             `yaml:"min_score" json:"min_score"`
	Reduction decimal.Decimal `yaml:"reduction" json:"reduction"`
}

// InstallmentParams are the policy thresholds for installment credit.
type InstallmentParams struct {
	AutoApproveScore int             `yaml:"auto_approve_score" json:"auto_approve_score"`
	ReviewScore      int             `yaml:"review_score" json:"review_score"`
	MaxDTI           decimal.Decimal `yaml:"max_dti" json:"max_dti"`
	MinAnnualIncome  decimal.Decimal `yaml:"min_annual_income" json:"min_annual_income"`
	MinAmount        decimal.Decimal `yaml:"min_amount" json:"min_amount"`
	MaxAmount        decimal.Decimal `yaml:"max_amount" json:"max_amount"`
	MaxTermMonths    int             `yaml:"max_term_months" json:"max_term_months"`
	IncomeLimitRatio decimal.Decimal `yaml:"income_limit_ratio" json:"income_limit_ratio"`
	MinLimit         decimal.Decimal `yaml:"min_limit" json:"min_limit"`
	RateTiers        []RateTier      `yaml:"rate_tiers" json:"rate_tiers"`
	LimitBands       []LimitBand     `yaml:"limit_bands" json:"limit_bands"`

	// Estimated terms attached to review-required quotes.
	ReviewLimitFraction decimal.Decimal `yaml:"review_limit_fraction" json:"review_limit_fraction"`

	// Reported composite score weights (amount, tenor, credit, dti).
	Weights ScoreWeights `yaml:"weights" json:"weights"`

	SignalBands InstallmentSignalBands `yaml:"signal_bands" json:"signal_bands"`
}

// InstallmentSignalBands holds the label thresholds for the installment
// signal vocabulary.
type InstallmentSignalBands struct {
	AmountLow       float64 `yaml:"amount_low" json:"amount_low"`
	AmountHigh      float64 `yaml:"amount_high" json:"amount_high"`
	TermShort       int     `yaml:"term_short" json:"term_short"`
	TermLong        int     `yaml:"term_long" json:"term_long"`
	CreditExcellent int     `yaml:"credit_excellent" json:"credit_excellent"`
	CreditGood      int     `yaml:"credit_good" json:"credit_good"`
	CreditFair      int     `yaml:"credit_fair" json:"credit_fair"`
	DTILow          float64 `yaml:"dti_low" json:"dti_low"`
	DTIModerate     float64 `yaml:"dti_moderate" json:"dti_moderate"`
	DTIElevated     float64 `yaml:"dti_elevated" json:"dti_elevated"`
}

// ScoreWeights holds the composite score weighting for installment requests.
type ScoreWeights struct {
	Amount float64 `yaml:"amount" json:"amount"`
	Tenor  float64 `yaml:"tenor" json:"tenor"`
	Credit float64 `yaml:"credit" json:"credit"`
	DTI    float64 `yaml:"dti" json:"dti"`
}

// BNPLWeights holds the composite score weighting for BNPL requests.
type BNPLWeights struct {
	Amount      float64 `yaml:"amount" json:"amount"`
	Tenor       float64 `yaml:"tenor" json:"tenor"`
	OnTimeRate  float64 `yaml:"on_time_rate" json:"on_time_rate"`
	Utilization float64 `yaml:"utilization" json:"utilization"`
}

// AmountCurve shapes the BNPL amount sub-score: amounts inside the optimal
// band of the normalized range peak near PeakBase, amounts outside decay by
// Slope per unit of distance, floored at FloorScore.
type AmountCurve struct {
	OptimalLow  float64 `yaml:"optimal_low" json:"optimal_low"`
	OptimalHigh float64 `yaml:"optimal_high" json:"optimal_high"`
	PeakBase    float64 `yaml:"peak_base" json:"peak_base"`
	FloorScore  float64 `yaml:"floor_score" json:"floor_score"`
	Slope       float64 `yaml:"slope" json:"slope"`
}

// SignalBands holds the label thresholds for the BNPL signal vocabulary.
type SignalBands struct {
	AmountLow        float64 `yaml:"amount_low" json:"amount_low"`
	AmountHigh       float64 `yaml:"amount_high" json:"amount_high"`
	TenorShort       int     `yaml:"tenor_short" json:"tenor_short"`
	TenorLong        int     `yaml:"tenor_long" json:"tenor_long"`
	PaymentExcellent float64 `yaml:"payment_excellent" json:"payment_excellent"`
	PaymentGood      float64 `yaml:"payment_good" json:"payment_good"`
	PaymentFair      float64 `yaml:"payment_fair" json:"payment_fair"`
	UtilizationLow   float64 `yaml:"utilization_low" json:"utilization_low"`
	UtilizationHigh  float64 `yaml:"utilization_high" json:"utilization_high"`
	RiskLow          float64 `yaml:"risk_low" json:"risk_low"`
	RiskMedium       float64 `yaml:"risk_medium" json:"risk_medium"`
}

// BNPLParams are the scoring and quoting parameters for BNPL credit.
type BNPLParams struct {
	MinAmount     float64     `yaml:"min_amount" json:"min_amount"`
	MaxAmount     float64     `yaml:"max_amount" json:"max_amount"`
	MinTenor      int         `yaml:"min_tenor" json:"min_tenor"`
	MaxTenor      int         `yaml:"max_tenor" json:"max_tenor"`
	MinScore      float64     `yaml:"min_score" json:"min_score"`
	ReviewScore   float64     `yaml:"review_score" json:"review_score"`
	BaseAPR       float64     `yaml:"base_apr" json:"base_apr"`
	RiskAPRSpread float64     `yaml:"risk_apr_spread" json:"risk_apr_spread"`
	TenorExponent float64     `yaml:"tenor_exponent" json:"tenor_exponent"`
	Weights       BNPLWeights `yaml:"weights" json:"weights"`
	AmountCurve   AmountCurve `yaml:"amount_curve" json:"amount_curve"`
	SignalBands   SignalBands `yaml:"signal_bands" json:"signal_bands"`
}

// Parameters is the complete, immutable policy parameter set consulted by the
// engine. It is loaded once at startup and swapped atomically on reload; a
// request in flight keeps the snapshot it started with.
type Parameters struct {
	Version     string            `yaml:"version" json:"version"`
	Installment InstallmentParams `yaml:"installment" json:"installment"`
	BNPL        BNPLParams        `yaml:"bnpl" json:"bnpl"`
}

// Default returns the built-in parameter set.
func Default() *Parameters {
	return &Parameters{
		Version: DefaultVersion,
		Installment: InstallmentParams{
			AutoApproveScore: 720,
			ReviewScore:      650,
			MaxDTI:           decimal.NewFromFloat(0.45),
			MinAnnualIncome:  decimal.NewFromInt(25_000),
			MinAmount:        decimal.NewFromInt(1_000),
			MaxAmount:        decimal.NewFromInt(50_000),
			MaxTermMonths:    60,
			IncomeLimitRatio: decimal.NewFromFloat(0.30),
			MinLimit:         decimal.NewFromInt(1_000),
			RateTiers: []RateTier{
				{MinScore: 720, APR: decimal.NewFromFloat(8.99)},
				{MinScore: 680, APR: decimal.NewFromFloat(12.99)},
				{MinScore: 650, APR: decimal.NewFromFloat(18.99)},
				{MinScore: 600, APR: decimal.NewFromFloat(24.99)},
				{MinScore: 0, APR: decimal.NewFromFloat(29.99)},
			},
			LimitBands: []LimitBand{
				{MinScore: 750, Reduction: decimal.Zero},
				{MinScore: 700, Reduction: decimal.NewFromFloat(0.10)},
				{MinScore: 650, Reduction: decimal.NewFromFloat(0.20)},
				{MinScore: 0, Reduction: decimal.NewFromFloat(0.30)},
			},
			ReviewLimitFraction: decimal.NewFromFloat(0.80),
			Weights:             ScoreWeights{Amount: 0.20, Tenor: 0.20, Credit: 0.35, DTI: 0.25},
			SignalBands: InstallmentSignalBands{
				AmountLow:       0.25,
				AmountHigh:      0.75,
				TermShort:       12,
				TermLong:        48,
				CreditExcellent: 750,
				CreditGood:      700,
				CreditFair:      650,
				DTILow:          0.20,
				DTIModerate:     0.35,
				DTIElevated:     0.45,
			},
		},
		BNPL: BNPLParams{
			MinAmount:     100,
			MaxAmount:     5_000,
			MinTenor:      1,
			MaxTenor:      12,
			MinScore:      0.60,
			ReviewScore:   0.50,
			BaseAPR:       15.0,
			RiskAPRSpread: 10.0,
			TenorExponent: 1.5,
			Weights:       BNPLWeights{Amount: 0.20, Tenor: 0.30, OnTimeRate: 0.35, Utilization: 0.15},
			AmountCurve: AmountCurve{
				OptimalLow:  0.40,
				OptimalHigh: 0.60,
				PeakBase:    0.90,
				FloorScore:  0.30,
				Slope:       2.0,
			},
			SignalBands: SignalBands{
				AmountLow:        500,
				AmountHigh:       3_000,
				TenorShort:       3,
				TenorLong:        9,
				PaymentExcellent: 0.95,
				PaymentGood:      0.85,
				PaymentFair:      0.70,
				UtilizationLow:   0.30,
				UtilizationHigh:  0.80,
				RiskLow:          0.80,
				RiskMedium:       0.60,
			},
		},
	}
}

// Validate checks internal consistency of the parameter set. Any failure is a
// ConfigurationError condition: fatal at load, never per-request.
func (p *Parameters) Validate() error {
	if p.Version == "" {
		return fmt.Errorf("policy version is required")
	}
	inst := p.Installment
	if inst.MinAmount.LessThanOrEqual(decimal.Zero) || inst.MaxAmount.LessThanOrEqual(inst.MinAmount) {
		return fmt.Errorf("installment amount bounds are inconsistent")
	}
	if inst.ReviewScore > inst.AutoApproveScore {
		return fmt.Errorf("installment review threshold %d exceeds auto-approve threshold %d",
			inst.ReviewScore, inst.AutoApproveScore)
	}
	if len(inst.RateTiers) == 0 {
		return fmt.Errorf("at least one rate tier is required")
	}
	if last := inst.RateTiers[len(inst.RateTiers)-1]; last.MinScore != 0 {
		return fmt.Errorf("rate tier table must end with a zero-floor tier")
	}
	for i := 1; i < len(inst.RateTiers); i++ {
		if inst.RateTiers[i].MinScore >= inst.RateTiers[i-1].MinScore {
			return fmt.Errorf("rate tiers must be in descending min_score order")
		}
	}
	if len(inst.LimitBands) == 0 || inst.LimitBands[len(inst.LimitBands)-1].MinScore != 0 {
		return fmt.Errorf("limit band table must end with a zero-floor band")
	}
	if err := validateWeightSum("installment",
		inst.Weights.Amount, inst.Weights.Tenor, inst.Weights.Credit, inst.Weights.DTI); err != nil {
		return err
	}

	b := p.BNPL
	if b.MinAmount <= 0 || b.MaxAmount <= b.MinAmount {
		return fmt.Errorf("bnpl amount bounds are inconsistent")
	}
	if b.MinTenor < 1 || b.MaxTenor <= b.MinTenor {
		return fmt.Errorf("bnpl tenor bounds are inconsistent")
	}
	if b.ReviewScore > b.MinScore {
		return fmt.Errorf("bnpl review threshold %.2f exceeds approval threshold %.2f",
			b.ReviewScore, b.MinScore)
	}
	return validateWeightSum("bnpl",
		b.Weights.Amount, b.Weights.Tenor, b.Weights.OnTimeRate, b.Weights.Utilization)
}

func validateWeightSum(kind string, weights ...float64) error {
	sum := 0.0
	for _, w := range weights {
		if w < 0 {
			return fmt.Errorf("%s weights must not be negative", kind)
		}
		sum += w
	}
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("%s weights must sum to 1.0, got %.3f", kind, sum)
	}
	return nil
}
