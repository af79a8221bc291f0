package adapter

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/okralabs/okra/internal/domain/model"
)

// TemplateExplainer renders a short plain-language explanation of a decision
// record. It implements port.ExplanationGenerator deterministically: the same
// record always produces the same sentence, so quotes stay reproducible.
type TemplateExplainer struct{}

// NewTemplateExplainer creates a template-based explainer.
func NewTemplateExplainer() *TemplateExplainer {
	return &TemplateExplainer{}
}

// Explain summarises the decision in one or two sentences built from the
// terminal state, the headline terms, and the strongest signals.
func (e *TemplateExplainer) Explain(_ context.Context, record model.DecisionRecord) (string, error) {
	q := record.Quote

	var b strings.Builder
	switch {
	case q.Approved:
		fmt.Fprintf(&b, "Your request was approved for $%s at %s%% APR over %d months",
			q.Limit, q.APR, q.TermMonths)
		if !q.MonthlyPayment.IsZero() {
			fmt.Fprintf(&b, " (about $%s per month)", q.MonthlyPayment)
		}
		b.WriteString(".")
	case q.ReviewRequired:
		b.WriteString("Your request needs a manual review before a final decision")
		if !q.APR.IsZero() {
			fmt.Fprintf(&b, "; if approved, terms are estimated at $%s at %s%% APR", q.Limit, q.APR)
		}
		b.WriteString(".")
	default:
		b.WriteString("Your request was declined.")
	}

	if highlights := signalHighlights(record); highlights != "" {
		b.WriteString(" Key factors: ")
		b.WriteString(highlights)
		b.WriteString(".")
	}
	return b.String(), nil
}

// signalHighlights turns the signal labels into a stable, human-readable
// enumeration. Labels are sorted so the sentence never depends on map order.
func signalHighlights(record model.DecisionRecord) string {
	labels := record.Signals.Labels()
	if len(labels) == 0 {
		return ""
	}

	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		label := labels[k]
		if label == "not_provided" {
			continue
		}
		parts = append(parts, strings.ReplaceAll(label, "_", " "))
	}
	return strings.Join(parts, ", ")
}
