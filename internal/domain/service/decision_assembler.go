package service

import (
	"time"

	"github.com/okralabs/okra/internal/domain/model"
	"github.com/okralabs/okra/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// DecisionRecordAssembler - pure packaging, no business logic
// ---------------------------------------------------------------------------

// DecisionRecordAssembler packages a quote, its signals, and the normalized
// input features into the immutable audit record handed to the explanation
// and eventing collaborators. Its contract is stability of shape, not
// computation.
type DecisionRecordAssembler struct{}

// NewDecisionRecordAssembler returns an assembler.
func NewDecisionRecordAssembler() DecisionRecordAssembler {
	return DecisionRecordAssembler{}
}

// Assemble builds the decision record.
func (DecisionRecordAssembler) Assemble(
	quote model.Quote,
	signals valueobject.SignalSet,
	features map[string]any,
	subject string,
	now time.Time,
) model.DecisionRecord {
	return model.DecisionRecord{
		Quote:         quote,
		Signals:       signals,
		Features:      features,
		Subject:       subject,
		Timestamp:     now.UTC(),
		PolicyVersion: quote.PolicyVersion,
	}
}

// BNPLFeatureMap renders the bounded BNPL features in their wire shape.
func BNPLFeatureMap(f BNPLFeatures) map[string]any {
	return map[string]any{
		"amount":       f.Amount,
		"tenor":        f.Tenor,
		"on_time_rate": f.OnTimeRate,
		"utilization":  f.Utilization,
	}
}

// InstallmentFeatureMap renders the installment request features in their
// wire shape.
func InstallmentFeatureMap(f InstallmentFeatures) map[string]any {
	features := map[string]any{
		"amount":      f.Amount.InexactFloat64(),
		"term_months": f.TermMonths,
	}
	if p := f.Profile; p != nil {
		if p.HasScore() {
			features["credit_score"] = p.Score()
		}
		features["annual_income"] = p.AnnualIncome.InexactFloat64()
		features["debt_to_income_ratio"] = p.DebtToIncomeRatio.InexactFloat64()
		if p.EmploymentStatus != "" {
			features["employment_status"] = p.EmploymentStatus
		}
		features["credit_history_months"] = p.CreditHistoryMonths
	}
	return features
}
