package usecase

import (
	"context"

	"github.com/okralabs/okra/internal/application/dto"
	"github.com/okralabs/okra/internal/domain/policy"
	"github.com/okralabs/okra/internal/domain/valueobject"
)

// ListPoliciesUseCase exposes the active policy parameters for inspection.
type ListPoliciesUseCase struct {
	store *policy.Store
}

// NewListPoliciesUseCase wires the use case to the policy store.
func NewListPoliciesUseCase(store *policy.Store) *ListPoliciesUseCase {
	return &ListPoliciesUseCase{store: store}
}

// Execute returns the currently active parameter set. The listing reflects
// the snapshot at the time of the call; a concurrent reload is not mixed in.
func (uc *ListPoliciesUseCase) Execute(_ context.Context) (dto.PolicyListing, error) {
	p := uc.store.Current()

	tiers := make([]map[string]any, 0, len(p.Installment.RateTiers))
	for _, t := range p.Installment.RateTiers {
		tiers = append(tiers, map[string]any{
			"min_score": t.MinScore,
			"apr":       t.APR,
		})
	}
	bands := make([]map[string]any, 0, len(p.Installment.LimitBands))
	for _, b := range p.Installment.LimitBands {
		bands = append(bands, map[string]any{
			"min_score": b.MinScore,
			"reduction": b.Reduction,
		})
	}

	w := p.BNPL.Weights
	return dto.PolicyListing{
		Version: p.Version,
		Installment: map[string]any{
			"min_credit_score_auto_approve": p.Installment.AutoApproveScore,
			"min_credit_score_review":       p.Installment.ReviewScore,
			"max_dti_ratio":                 p.Installment.MaxDTI,
			"min_annual_income":             p.Installment.MinAnnualIncome,
			"min_loan_amount":               p.Installment.MinAmount,
			"max_loan_amount":               p.Installment.MaxAmount,
			"max_term_months":               p.Installment.MaxTermMonths,
			"rate_tiers":                    tiers,
			"limit_bands":                   bands,
		},
		BNPL: map[string]any{
			"min_amount":   p.BNPL.MinAmount,
			"max_amount":   p.BNPL.MaxAmount,
			"min_tenor":    p.BNPL.MinTenor,
			"max_tenor":    p.BNPL.MaxTenor,
			"min_score":    p.BNPL.MinScore,
			"review_score": p.BNPL.ReviewScore,
			"base_apr":     p.BNPL.BaseAPR,
		},
		Weights: map[string]float64{
			valueobject.SignalAmount:      w.Amount,
			valueobject.SignalTenor:       w.Tenor,
			valueobject.SignalOnTime:      w.OnTimeRate,
			valueobject.SignalUtilization: w.Utilization,
		},
	}, nil
}
