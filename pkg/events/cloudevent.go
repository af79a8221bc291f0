// Package events implements the CloudEvents v1.0 envelope used for credit
// decision events, plus validation of serialized envelopes against the quote
// event schemas.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Event type identifiers for the two quote event kinds.
const (
	SpecVersion     = "1.0"
	TypeCreditQuote = "ocn.okra.credit_quote.v1"
	TypeBNPLQuote   = "ocn.okra.bnpl_quote.v1"
	ContentTypeJSON = "application/json"
	DefaultSource   = "https://okra.ocn.ai/v1"
	MetadataService = "okra"
	MetadataVersion = "1.0.0"
)

// CloudEvent is the envelope handed to the event transport. The engine's only
// obligation is to populate it completely; delivery is the transport's
// problem.
type CloudEvent struct {
	SpecVersion     string         `json:"specversion"`
	ID              string         `json:"id"`
	Source          string         `json:"source"`
	Type            string         `json:"type"`
	Subject         string         `json:"subject"`
	Time            string         `json:"time"`
	DataContentType string         `json:"datacontenttype"`
	Data            map[string]any `json:"data"`
}

// New builds a fully-populated envelope. The event ID is freshly generated;
// everything else is caller-supplied.
func New(eventType, source, subject string, data map[string]any, now time.Time) CloudEvent {
	if source == "" {
		source = DefaultSource
	}
	return CloudEvent{
		SpecVersion:     SpecVersion,
		ID:              uuid.NewString(),
		Source:          source,
		Type:            eventType,
		Subject:         subject,
		Time:            now.UTC().Format(time.RFC3339),
		DataContentType: ContentTypeJSON,
		Data:            data,
	}
}

// NewTraceID generates a subject identifier for quote events that have no
// caller-supplied correlation id.
func NewTraceID() string {
	return uuid.NewString()
}
