package event

import (
	"time"

	"github.com/okralabs/okra/internal/domain/model"
	"github.com/okralabs/okra/internal/domain/valueobject"
	"github.com/okralabs/okra/pkg/events"
)

// ---------------------------------------------------------------------------
// Decision events - DecisionRecord to CloudEvents envelope mapping
// ---------------------------------------------------------------------------

// QuotePayload renders a quote in its wire shape. Installment quotes carry
// `credit_limit` alongside the product-neutral `limit` that event consumers
// key on; BNPL quotes carry `limit` only.
func QuotePayload(q model.Quote) map[string]any {
	payload := map[string]any{
		"quote_id":        q.QuoteID,
		"limit":           q.Limit.InexactFloat64(),
		"apr":             q.APR.InexactFloat64(),
		"term_months":     q.TermMonths,
		"monthly_payment": q.MonthlyPayment.InexactFloat64(),
		"score":           q.Score,
		"approved":        q.Approved,
		"reasons":         q.Reasons,
		"review_required": q.ReviewRequired,
		"policy_version":  q.PolicyVersion,
	}
	if q.Kind == valueobject.KindInstallment {
		payload["credit_limit"] = q.Limit.InexactFloat64()
	}
	return payload
}

// NewBNPLQuoteEvent maps a BNPL decision record one-to-one onto the
// ocn.okra.bnpl_quote.v1 envelope.
func NewBNPLQuoteEvent(record model.DecisionRecord, keySignals map[string]string, source string) events.CloudEvent {
	data := map[string]any{
		"quote":       QuotePayload(record.Quote),
		"features":    record.Features,
		"key_signals": keySignals,
		"timestamp":   record.Timestamp.Format(time.RFC3339),
		"metadata": map[string]any{
			"service": events.MetadataService,
			"version": events.MetadataVersion,
			"feature": "bnpl_scoring",
		},
	}
	return events.New(events.TypeBNPLQuote, source, record.Subject, data, record.Timestamp)
}

// NewCreditQuoteEvent maps an installment decision record onto the
// ocn.okra.credit_quote.v1 envelope, subject keyed by the actor.
func NewCreditQuoteEvent(record model.DecisionRecord, source string) events.CloudEvent {
	data := map[string]any{
		"quote_id":       record.Quote.QuoteID,
		"actor_id":       record.Subject,
		"quote":          QuotePayload(record.Quote),
		"features":       record.Features,
		"key_signals":    record.Signals.Labels(),
		"policy_version": record.PolicyVersion,
		"timestamp":      record.Timestamp.Format(time.RFC3339),
		"metadata": map[string]any{
			"service": events.MetadataService,
			"version": events.MetadataVersion,
			"feature": "credit_policies",
		},
	}
	return events.New(events.TypeCreditQuote, source, record.Subject, data, record.Timestamp)
}
