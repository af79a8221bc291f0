package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/okralabs/okra/internal/domain/model"
	"github.com/okralabs/okra/internal/domain/policy"
)

// ---------------------------------------------------------------------------
// QuoteBuilder - limit, APR, payment arithmetic and quote identity
// ---------------------------------------------------------------------------

// QuoteBuilder turns a policy outcome and composite score into the final
// Quote. It is a pure function of its inputs: the caller supplies the
// timestamp, and the quote identifier is a stable hash so identical inputs
// within the same day bucket reproduce the same quote.
type QuoteBuilder struct {
	params *policy.Parameters
}

// NewQuoteBuilder wires the builder to a policy snapshot.
func NewQuoteBuilder(params *policy.Parameters) QuoteBuilder {
	return QuoteBuilder{params: params}
}

// BuildInstallment assembles an installment Quote.
func (b QuoteBuilder) BuildInstallment(
	req model.CreditRequest,
	score float64,
	outcome model.PolicyOutcome,
	now time.Time,
) model.Quote {
	p := b.params.Installment
	quote := model.Quote{
		QuoteID:        QuoteID(req, now),
		Kind:           req.Kind(),
		Approved:       outcome.Approved(),
		TermMonths:     req.TermMonths(),
		Score:          score,
		Reasons:        outcome.Reasons,
		ReviewRequired: outcome.ReviewRequired(),
		PolicyVersion:  b.params.Version,
		Limit:          decimal.Zero,
		APR:            decimal.Zero,
		MonthlyPayment: decimal.Zero,
	}
	if outcome.Declined() {
		return quote
	}

	var limit decimal.Decimal
	switch {
	case outcome.EstimatedTerms:
		limit = decimal.Min(req.Amount(), p.MaxAmount.Mul(p.ReviewLimitFraction))
	default:
		limit = req.Amount()
		if profile := req.Profile(); profile != nil && profile.AnnualIncome.IsPositive() {
			maxByIncome := profile.AnnualIncome.Mul(p.IncomeLimitRatio)
			limit = decimal.Min(limit, maxByIncome)
		}
		limit = limit.Mul(decimal.NewFromInt(1).Sub(outcome.LimitReduction))
		limit = decimal.Max(limit, p.MinLimit)
	}
	limit = limit.Round(2)

	quote.Limit = limit
	quote.APR = outcome.APR
	quote.MonthlyPayment = MonthlyPayment(limit, outcome.APR, req.TermMonths())
	if outcome.Approved() {
		quote.Reasons = append(quote.Reasons,
			fmt.Sprintf("Approved for $%s at %s%% APR", limit, outcome.APR))
	}
	return quote
}

// BuildBNPL assembles a BNPL Quote. Approved terms may be stretched beyond
// the requested tenor for riskier scores.
func (b QuoteBuilder) BuildBNPL(
	req model.CreditRequest,
	features BNPLFeatures,
	score float64,
	outcome model.PolicyOutcome,
	now time.Time,
) model.Quote {
	p := b.params.BNPL
	quote := model.Quote{
		QuoteID:        QuoteID(req, now),
		Kind:           req.Kind(),
		Approved:       outcome.Approved(),
		TermMonths:     features.Tenor,
		Score:          score,
		Reasons:        outcome.Reasons,
		ReviewRequired: outcome.ReviewRequired(),
		PolicyVersion:  b.params.Version,
		Limit:          decimal.Zero,
		APR:            decimal.Zero,
		MonthlyPayment: decimal.Zero,
	}
	if outcome.Declined() {
		return quote
	}

	limitMultiplier := 0.5 + score*0.5
	limit := decimal.NewFromFloat(
		math.Min(features.Amount*limitMultiplier, p.MaxAmount)).Round(2)

	term := features.Tenor
	bands := p.SignalBands
	switch {
	case score >= bands.RiskLow:
		// Requested tenor stands.
	case score >= bands.RiskMedium:
		term = min(term+1, p.MaxTenor)
	default:
		term = min(term+2, p.MaxTenor)
	}

	quote.Limit = limit
	quote.APR = outcome.APR
	quote.TermMonths = term
	quote.MonthlyPayment = limit.Div(decimal.NewFromInt(int64(term))).Round(2)
	if outcome.Approved() {
		quote.Reasons = append(quote.Reasons,
			fmt.Sprintf("Approved for $%s at %s%% APR over %d months", limit, outcome.APR, term))
	}
	return quote
}

// MonthlyPayment computes the standard amortizing-loan payment
//
//	payment = P * r * (1+r)^n / ((1+r)^n - 1)
//
// with r the monthly rate derived from the APR. The power term uses float64,
// monetary arithmetic stays decimal, matching the schedule generator.
func MonthlyPayment(principal, apr decimal.Decimal, termMonths int) decimal.Decimal {
	if termMonths <= 0 || principal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	monthlyRate := apr.InexactFloat64() / 100.0 / 12.0
	if monthlyRate == 0 {
		return principal.Div(decimal.NewFromInt(int64(termMonths))).Round(2)
	}
	factor := math.Pow(1+monthlyRate, float64(termMonths))
	payment := principal.InexactFloat64() * monthlyRate * factor / (factor - 1)
	return decimal.NewFromFloat(payment).Round(2)
}

// QuoteID derives the deterministic quote identifier from the requestor, the
// request shape, and the UTC day bucket of the processing time. Identical
// inputs within the same bucket reproduce the same identifier, which is what
// makes retries idempotent and quotes auditable.
func QuoteID(req model.CreditRequest, now time.Time) string {
	bucket := now.UTC().Format("2006-01-02")
	material := strings.Join([]string{
		req.ActorID(),
		string(req.Kind()),
		req.Amount().String(),
		fmt.Sprintf("%d", req.TermMonths()),
		bucket,
	}, "|")
	sum := sha256.Sum256([]byte(material))
	return fmt.Sprintf("quote_%s_%s", req.ActorID(), hex.EncodeToString(sum[:8]))
}
