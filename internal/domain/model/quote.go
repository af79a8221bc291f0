package model

import (
	"github.com/shopspring/decimal"

	"github.com/okralabs/okra/internal/domain/valueobject"
)

// OutcomeState is the terminal classification of a request. The three states
// are mutually exclusive and collectively exhaustive.
type OutcomeState string

const (
	OutcomeApproved       OutcomeState = "approved"
	OutcomeReviewRequired OutcomeState = "review_required"
	OutcomeDeclined       OutcomeState = "declined"
)

// PolicyOutcome is the result of the policy evaluation step: the terminal
// state, the APR tier selected for it, the limit-reduction factor, and the
// reasons in rule evaluation order. Selected once per request, never mutated.
type PolicyOutcome struct {
	State          OutcomeState
	APR            decimal.Decimal
	LimitReduction decimal.Decimal
	Reasons        []string

	// EstimatedTerms marks review outcomes produced without a usable
	// profile: the quote carries estimated terms instead of banded ones.
	EstimatedTerms bool
}

// Approved reports whether the outcome is a full approval.
func (o PolicyOutcome) Approved() bool { return o.State == OutcomeApproved }

// ReviewRequired reports whether the outcome needs manual review.
func (o PolicyOutcome) ReviewRequired() bool { return o.State == OutcomeReviewRequired }

// Declined reports whether the outcome is a decline.
func (o PolicyOutcome) Declined() bool { return o.State == OutcomeDeclined }

// Quote is the unit returned to callers: decision, terms, score, and the
// ordered human-readable reasons behind them. Constructed once from
// PolicyOutcome + Score + request; never mutated afterwards.
type Quote struct {
	QuoteID        string
	Kind           valueobject.RequestKind
	Approved       bool
	Limit          decimal.Decimal
	APR            decimal.Decimal
	TermMonths     int
	MonthlyPayment decimal.Decimal
	Score          float64
	Reasons        []string
	ReviewRequired bool
	PolicyVersion  string
}
