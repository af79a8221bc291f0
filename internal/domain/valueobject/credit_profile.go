package valueobject

import (
	"github.com/shopspring/decimal"
)

// RequestKind distinguishes the two request shapes the engine accepts.
type RequestKind string

const (
	KindInstallment RequestKind = "installment"
	KindBNPL        RequestKind = "bnpl"
)

// CreditProfile carries the traditional credit bureau view of an installment
// applicant. CreditScore is a pointer because an absent score is meaningful:
// it routes the request to manual review rather than declining it.
type CreditProfile struct {
	CreditScore         *int
	AnnualIncome        decimal.Decimal
	DebtToIncomeRatio   decimal.Decimal
	EmploymentStatus    string
	CreditHistoryMonths int
}

// Validate checks profile fields against their documented ranges.
func (p CreditProfile) Validate() error {
	if p.CreditScore != nil && (*p.CreditScore < 300 || *p.CreditScore > 850) {
		return NewValidationError("credit_score", CodeScoreOutOfRange,
			"credit score must be between 300 and 850")
	}
	if p.AnnualIncome.IsNegative() {
		return NewValidationError("annual_income", CodeNegativeValue,
			"annual income must not be negative")
	}
	if p.DebtToIncomeRatio.IsNegative() || p.DebtToIncomeRatio.GreaterThan(decimal.NewFromInt(1)) {
		return NewValidationError("debt_to_income_ratio", CodeRatioOutOfRange,
			"debt-to-income ratio must be between 0 and 1")
	}
	if p.CreditHistoryMonths < 0 {
		return NewValidationError("credit_history_months", CodeNegativeValue,
			"credit history months must not be negative")
	}
	return nil
}

// HasScore reports whether a credit score was supplied.
func (p CreditProfile) HasScore() bool { return p.CreditScore != nil }

// Score returns the credit score, or 0 when absent.
func (p CreditProfile) Score() int {
	if p.CreditScore == nil {
		return 0
	}
	return *p.CreditScore
}

// BNPLSignals carries the behavioral view of a BNPL applicant.
type BNPLSignals struct {
	OnTimeRate  float64
	Utilization float64
}

// Validate checks that both rates sit inside [0, 1].
func (s BNPLSignals) Validate() error {
	if s.OnTimeRate < 0 || s.OnTimeRate > 1 {
		return NewValidationError("on_time_rate", CodeRatioOutOfRange,
			"on-time rate must be between 0 and 1")
	}
	if s.Utilization < 0 || s.Utilization > 1 {
		return NewValidationError("utilization", CodeRatioOutOfRange,
			"utilization must be between 0 and 1")
	}
	return nil
}
