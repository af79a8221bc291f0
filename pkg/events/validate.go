package events

import (
	"fmt"
)

var envelopeFields = []string{
	"specversion", "type", "source", "id", "time", "subject", "datacontenttype", "data",
}

var quoteFields = []string{
	"limit", "apr", "term_months", "monthly_payment", "score", "approved",
}

// Validate checks a quote event envelope against the BNPL quote schema:
// required envelope attributes, fixed spec version and content type, and a
// complete quote payload with a bounded score.
func Validate(e CloudEvent) error {
	if e.SpecVersion != SpecVersion {
		return fmt.Errorf("specversion must be %q, got %q", SpecVersion, e.SpecVersion)
	}
	if e.Type != TypeBNPLQuote && e.Type != TypeCreditQuote {
		return fmt.Errorf("unknown event type %q", e.Type)
	}
	if e.ID == "" || e.Source == "" || e.Subject == "" || e.Time == "" {
		return fmt.Errorf("envelope is missing required attributes")
	}
	if e.DataContentType != ContentTypeJSON {
		return fmt.Errorf("datacontenttype must be %q, got %q", ContentTypeJSON, e.DataContentType)
	}
	if e.Data == nil {
		return fmt.Errorf("data payload is required")
	}

	quote, ok := e.Data["quote"].(map[string]any)
	if !ok {
		return fmt.Errorf("data payload must embed a quote object")
	}
	for _, field := range quoteFields {
		if _, present := quote[field]; !present {
			return fmt.Errorf("quote payload is missing %q", field)
		}
	}
	score, ok := toFloat(quote["score"])
	if !ok || score < 0 || score > 1 {
		return fmt.Errorf("quote score must be a number in [0, 1]")
	}
	if _, ok := quote["approved"].(bool); !ok {
		return fmt.Errorf("quote approved must be a boolean")
	}
	return nil
}

// EnvelopeFields lists the required CloudEvents attributes, in schema order.
func EnvelopeFields() []string {
	fields := make([]string, len(envelopeFields))
	copy(fields, envelopeFields)
	return fields
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
