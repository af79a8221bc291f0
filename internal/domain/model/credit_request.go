package model

import (
	"github.com/shopspring/decimal"

	"github.com/okralabs/okra/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// CreditRequest - validated entry point of the decision pipeline
// ---------------------------------------------------------------------------

// CreditRequest is the tagged request variant accepted by the engine. Exactly
// one profile shape applies per kind: installment requests carry a bureau
// profile, BNPL requests carry behavioral signals. A request that fails
// construction never reaches scoring.
type CreditRequest struct {
	kind        valueobject.RequestKind
	actorID     string
	amount      decimal.Decimal
	termMonths  int
	purpose     string
	profile     *valueobject.CreditProfile
	bnplSignals valueobject.BNPLSignals
}

const (
	minTermMonths = 1
	maxTermMonths = 60
)

// NewInstallmentRequest validates and builds an installment credit request.
// The profile may be nil: policy routes profile-less requests to manual
// review rather than rejecting them.
func NewInstallmentRequest(
	actorID string,
	amount decimal.Decimal,
	termMonths int,
	purpose string,
	profile *valueobject.CreditProfile,
) (CreditRequest, error) {
	if err := validateCommon(amount, termMonths); err != nil {
		return CreditRequest{}, err
	}
	if profile != nil {
		if err := profile.Validate(); err != nil {
			return CreditRequest{}, err
		}
	}
	if actorID == "" {
		actorID = "unknown"
	}
	if purpose == "" {
		purpose = "general"
	}
	return CreditRequest{
		kind:       valueobject.KindInstallment,
		actorID:    actorID,
		amount:     amount,
		termMonths: termMonths,
		purpose:    purpose,
		profile:    profile,
	}, nil
}

// NewBNPLRequest validates and builds a BNPL credit request.
func NewBNPLRequest(
	actorID string,
	amount decimal.Decimal,
	tenorMonths int,
	signals valueobject.BNPLSignals,
) (CreditRequest, error) {
	if err := validateCommon(amount, tenorMonths); err != nil {
		return CreditRequest{}, err
	}
	if err := signals.Validate(); err != nil {
		return CreditRequest{}, err
	}
	if actorID == "" {
		actorID = "anonymous"
	}
	return CreditRequest{
		kind:        valueobject.KindBNPL,
		actorID:     actorID,
		amount:      amount,
		termMonths:  tenorMonths,
		purpose:     "bnpl",
		bnplSignals: signals,
	}, nil
}

func validateCommon(amount decimal.Decimal, termMonths int) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return valueobject.NewValidationError("amount", valueobject.CodeAmountNotPositive,
			"amount must be positive")
	}
	if termMonths < minTermMonths || termMonths > maxTermMonths {
		return valueobject.NewValidationError("term_months", valueobject.CodeTermOutOfRange,
			"term must be between 1 and 60 months")
	}
	return nil
}

// Kind returns the request variant tag.
func (r CreditRequest) Kind() valueobject.RequestKind { return r.kind }

// ActorID returns the requestor identifier.
func (r CreditRequest) ActorID() string { return r.actorID }

// Amount returns the requested amount.
func (r CreditRequest) Amount() decimal.Decimal { return r.amount }

// TermMonths returns the requested term (tenor for BNPL).
func (r CreditRequest) TermMonths() int { return r.termMonths }

// Purpose returns the stated loan purpose.
func (r CreditRequest) Purpose() string { return r.purpose }

// Profile returns the installment credit profile, nil when absent or when the
// request is BNPL.
func (r CreditRequest) Profile() *valueobject.CreditProfile { return r.profile }

// BNPLSignals returns the behavioral signals of a BNPL request.
func (r CreditRequest) BNPLSignals() valueobject.BNPLSignals { return r.bnplSignals }
