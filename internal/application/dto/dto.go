package dto

import (
	"github.com/shopspring/decimal"

	"github.com/okralabs/okra/pkg/events"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// CreditProfileDTO is the optional applicant profile attached to an
// installment quote request. All fields mirror the external API names.
type CreditProfileDTO struct {
	CreditScore         *int            `json:"credit_score,omitempty"`
	AnnualIncome        decimal.Decimal `json:"annual_income"`
	DebtToIncomeRatio   decimal.Decimal `json:"debt_to_income_ratio"`
	EmploymentStatus    string          `json:"employment_status,omitempty"`
	CreditHistoryMonths int             `json:"credit_history_months,omitempty"`
}

// CreditQuoteRequest carries the data for an installment credit quote.
type CreditQuoteRequest struct {
	ActorID         string            `json:"actor_id"`
	RequestedAmount decimal.Decimal   `json:"requested_amount"`
	TermMonths      int               `json:"term_months"`
	Purpose         string            `json:"purpose,omitempty"`
	CreditProfile   *CreditProfileDTO `json:"credit_profile,omitempty"`
}

// BNPLQuoteRequest carries the data for a pay-in-installments quote.
type BNPLQuoteRequest struct {
	ActorID     string          `json:"actor_id"`
	Amount      decimal.Decimal `json:"amount"`
	Tenor       int             `json:"tenor"`
	OnTimeRate  float64         `json:"on_time_rate"`
	Utilization float64         `json:"utilization"`
	EmitEvent   bool            `json:"emit_ce,omitempty"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// CreditQuoteResponse is the external representation of an installment quote.
type CreditQuoteResponse struct {
	QuoteID        string            `json:"quote_id"`
	Approved       bool              `json:"approved"`
	CreditLimit    decimal.Decimal   `json:"credit_limit"`
	APR            decimal.Decimal   `json:"apr"`
	TermMonths     int               `json:"term_months"`
	MonthlyPayment decimal.Decimal   `json:"monthly_payment"`
	Score          float64           `json:"score"`
	Reasons        []string          `json:"reasons"`
	ReviewRequired bool              `json:"review_required"`
	PolicyVersion  string            `json:"policy_version"`
	KeySignals     map[string]string `json:"key_signals,omitempty"`
	Explanation    string            `json:"explanation,omitempty"`
}

// BNPLQuoteResponse is the external representation of a BNPL quote. When the
// caller asked for event emission the envelope and its trace id ride along.
type BNPLQuoteResponse struct {
	QuoteID        string             `json:"quote_id"`
	Approved       bool               `json:"approved"`
	Limit          decimal.Decimal    `json:"limit"`
	APR            decimal.Decimal    `json:"apr"`
	TermMonths     int                `json:"term_months"`
	MonthlyPayment decimal.Decimal    `json:"monthly_payment"`
	Score          float64            `json:"score"`
	Reasons        []string           `json:"reasons"`
	ReviewRequired bool               `json:"review_required"`
	PolicyVersion  string             `json:"policy_version"`
	KeySignals     map[string]string  `json:"key_signals"`
	Components     map[string]float64 `json:"components"`
	Weights        map[string]float64 `json:"weights"`
	Explanation    string             `json:"explanation,omitempty"`
	CloudEvent     *events.CloudEvent `json:"cloud_event,omitempty"`
	TraceID        string             `json:"trace_id,omitempty"`
}

// PolicyListing exposes the active policy parameters for inspection.
type PolicyListing struct {
	Version     string             `json:"version"`
	Installment map[string]any     `json:"installment"`
	BNPL        map[string]any     `json:"bnpl"`
	Weights     map[string]float64 `json:"weights"`
}
