package event_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okralabs/okra/internal/domain/event"
	"github.com/okralabs/okra/internal/domain/model"
	"github.com/okralabs/okra/internal/domain/valueobject"
	"github.com/okralabs/okra/pkg/events"
)

func bnplRecord() model.DecisionRecord {
	return model.DecisionRecord{
		Quote: model.Quote{
			QuoteID:        "quote_actor-042_9f2c4a1b7d3e8f60",
			Kind:           valueobject.KindBNPL,
			Approved:       true,
			Limit:          decimal.NewFromInt(1335),
			APR:            decimal.NewFromFloat(17.2),
			TermMonths:     7,
			MonthlyPayment: decimal.NewFromFloat(190.71),
			Score:          0.78,
			Reasons:        []string{"score 0.78 meets the approval threshold"},
			PolicyVersion:  "v1.0.0",
		},
		Signals: valueobject.NewSignalSet([]valueobject.Signal{
			{Name: valueobject.SignalOnTime, SubScore: 0.95, Label: "excellent_history"},
			{Name: valueobject.SignalUtilization, SubScore: 0.70, Label: "low_utilization"},
		}),
		Features:      map[string]any{"amount": 1500.0, "tenor_months": 6},
		Subject:       "actor-042",
		Timestamp:     time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC),
		PolicyVersion: "v1.0.0",
	}
}

func installmentRecord() model.DecisionRecord {
	record := bnplRecord()
	record.Quote.Kind = valueobject.KindInstallment
	record.Subject = "actor-001"
	return record
}

func TestQuotePayload(t *testing.T) {
	t.Run("bnpl quote carries the neutral limit only", func(t *testing.T) {
		payload := event.QuotePayload(bnplRecord().Quote)

		assert.Equal(t, "quote_actor-042_9f2c4a1b7d3e8f60", payload["quote_id"])
		assert.Equal(t, 1335.0, payload["limit"])
		assert.Equal(t, 17.2, payload["apr"])
		assert.Equal(t, 7, payload["term_months"])
		assert.Equal(t, 190.71, payload["monthly_payment"])
		assert.Equal(t, 0.78, payload["score"])
		assert.Equal(t, true, payload["approved"])
		assert.Equal(t, false, payload["review_required"])
		assert.NotContains(t, payload, "credit_limit")
	})

	t.Run("installment quote also carries credit_limit", func(t *testing.T) {
		payload := event.QuotePayload(installmentRecord().Quote)
		assert.Equal(t, 1335.0, payload["credit_limit"])
		assert.Equal(t, 1335.0, payload["limit"])
	})
}

func TestNewBNPLQuoteEvent(t *testing.T) {
	record := bnplRecord()
	ce := event.NewBNPLQuoteEvent(record, record.Signals.Labels(), "https://okra.ocn.ai/v1")

	assert.Equal(t, events.TypeBNPLQuote, ce.Type)
	assert.Equal(t, "https://okra.ocn.ai/v1", ce.Source)
	assert.Equal(t, "actor-042", ce.Subject)
	assert.Equal(t, "2025-03-15T10:30:00Z", ce.Time)
	require.NoError(t, events.Validate(ce))

	assert.Equal(t, "2025-03-15T10:30:00Z", ce.Data["timestamp"])
	assert.Equal(t, record.Features, ce.Data["features"])

	signals, ok := ce.Data["key_signals"].(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "excellent_history", signals["payment_signal"])

	meta, ok := ce.Data["metadata"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "okra", meta["service"])
	assert.Equal(t, "bnpl_scoring", meta["feature"])
}

func TestNewCreditQuoteEvent(t *testing.T) {
	record := installmentRecord()
	ce := event.NewCreditQuoteEvent(record, "")

	assert.Equal(t, events.TypeCreditQuote, ce.Type)
	assert.Equal(t, events.DefaultSource, ce.Source)
	assert.Equal(t, "actor-001", ce.Subject)
	require.NoError(t, events.Validate(ce))

	assert.Equal(t, record.Quote.QuoteID, ce.Data["quote_id"])
	assert.Equal(t, "actor-001", ce.Data["actor_id"])
	assert.Equal(t, "v1.0.0", ce.Data["policy_version"])

	meta, ok := ce.Data["metadata"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "credit_policies", meta["feature"])
}
