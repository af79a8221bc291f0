package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/okralabs/okra/internal/domain/model"
	"github.com/okralabs/okra/internal/domain/policy"
	"github.com/okralabs/okra/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// PolicyEvaluator - ordered threshold rules over three terminal states
// ---------------------------------------------------------------------------

// PolicyEvaluator classifies a request as Approved, ReviewRequired, or
// Declined and selects the APR tier and limit-reduction band for it. Hard
// disqualifiers (amount bounds, income, DTI) are evaluated before the
// score-based tier lookup and always override a qualifying score; the reasons
// list mirrors the evaluation order.
type PolicyEvaluator struct {
	params *policy.Parameters
}

// NewPolicyEvaluator wires the evaluator to a policy snapshot.
func NewPolicyEvaluator(params *policy.Parameters) PolicyEvaluator {
	return PolicyEvaluator{params: params}
}

// EvaluateInstallment applies the installment rule chain.
func (e PolicyEvaluator) EvaluateInstallment(req model.CreditRequest) (model.PolicyOutcome, error) {
	p := e.params.Installment
	var reasons []string

	if req.Amount().LessThan(p.MinAmount) {
		reasons = append(reasons, fmt.Sprintf("Requested amount $%s below minimum $%s",
			req.Amount(), p.MinAmount))
		return declinedOutcome(reasons), nil
	}
	if req.Amount().GreaterThan(p.MaxAmount) {
		reasons = append(reasons, fmt.Sprintf("Requested amount $%s exceeds maximum $%s",
			req.Amount(), p.MaxAmount))
		return declinedOutcome(reasons), nil
	}

	profile := req.Profile()
	if profile == nil {
		reasons = append(reasons, "No credit profile provided - manual review required")
		return e.estimatedReviewOutcome(reasons)
	}

	if profile.AnnualIncome.IsPositive() && profile.AnnualIncome.LessThan(p.MinAnnualIncome) {
		reasons = append(reasons, fmt.Sprintf("Income $%s below minimum $%s",
			profile.AnnualIncome, p.MinAnnualIncome))
		return declinedOutcome(reasons), nil
	}
	if profile.DebtToIncomeRatio.IsPositive() && profile.DebtToIncomeRatio.GreaterThan(p.MaxDTI) {
		reasons = append(reasons, fmt.Sprintf("DTI ratio %s%% exceeds maximum %s%%",
			profile.DebtToIncomeRatio.Mul(decimal.NewFromInt(100)).StringFixed(2),
			p.MaxDTI.Mul(decimal.NewFromInt(100)).StringFixed(2)))
		return declinedOutcome(reasons), nil
	}

	if !profile.HasScore() {
		reasons = append(reasons, "No credit score provided - manual review required")
		return e.estimatedReviewOutcome(reasons)
	}

	creditScore := profile.Score()
	var state model.OutcomeState
	switch {
	case creditScore >= p.AutoApproveScore:
		state = model.OutcomeApproved
		reasons = append(reasons, fmt.Sprintf("Excellent credit score %d - auto-approved", creditScore))
	case creditScore >= p.ReviewScore:
		state = model.OutcomeReviewRequired
		reasons = append(reasons, fmt.Sprintf("Good credit score %d - review required", creditScore))
	default:
		reasons = append(reasons, fmt.Sprintf("Credit score %d below minimum threshold", creditScore))
		return declinedOutcome(reasons), nil
	}

	apr, err := e.aprForScore(creditScore)
	if err != nil {
		return model.PolicyOutcome{}, err
	}
	reduction, err := e.reductionForScore(creditScore)
	if err != nil {
		return model.PolicyOutcome{}, err
	}

	return model.PolicyOutcome{
		State:          state,
		APR:            apr,
		LimitReduction: reduction,
		Reasons:        reasons,
	}, nil
}

// EvaluateBNPL partitions the composite score into the three terminal states.
func (e PolicyEvaluator) EvaluateBNPL(score float64) model.PolicyOutcome {
	p := e.params.BNPL
	apr := decimal.NewFromFloat(p.BaseAPR + (1.0-score)*p.RiskAPRSpread).Round(2)

	switch {
	case score >= p.MinScore:
		return model.PolicyOutcome{
			State: model.OutcomeApproved,
			APR:   apr,
			Reasons: []string{fmt.Sprintf("BNPL score %.3f meets approval threshold %.2f",
				score, p.MinScore)},
		}
	case score >= p.ReviewScore:
		return model.PolicyOutcome{
			State: model.OutcomeReviewRequired,
			APR:   apr,
			Reasons: []string{fmt.Sprintf(
				"BNPL score %.3f within review band [%.2f, %.2f) - manual review required",
				score, p.ReviewScore, p.MinScore)},
		}
	default:
		return model.PolicyOutcome{
			State: model.OutcomeDeclined,
			Reasons: []string{fmt.Sprintf("BNPL score %.3f below minimum threshold %.2f",
				score, p.ReviewScore)},
		}
	}
}

// estimatedReviewOutcome builds the review outcome used when no profile or
// score is available: the second rate tier serves as the APR estimate.
func (e PolicyEvaluator) estimatedReviewOutcome(reasons []string) (model.PolicyOutcome, error) {
	tiers := e.params.Installment.RateTiers
	if len(tiers) == 0 {
		return model.PolicyOutcome{}, valueobject.NewPolicyEvaluationError(
			"estimated_review", "rate tier table is empty")
	}
	apr := tiers[0].APR
	if len(tiers) > 1 {
		apr = tiers[1].APR
	}
	return model.PolicyOutcome{
		State:          model.OutcomeReviewRequired,
		APR:            apr,
		EstimatedTerms: true,
		Reasons:        reasons,
	}, nil
}

func (e PolicyEvaluator) aprForScore(creditScore int) (decimal.Decimal, error) {
	for _, tier := range e.params.Installment.RateTiers {
		if creditScore >= tier.MinScore {
			return tier.APR, nil
		}
	}
	return decimal.Zero, valueobject.NewPolicyEvaluationError(
		"apr_lookup", fmt.Sprintf("no rate tier matches credit score %d", creditScore))
}

func (e PolicyEvaluator) reductionForScore(creditScore int) (decimal.Decimal, error) {
	for _, band := range e.params.Installment.LimitBands {
		if creditScore >= band.MinScore {
			return band.Reduction, nil
		}
	}
	return decimal.Zero, valueobject.NewPolicyEvaluationError(
		"limit_band_lookup", fmt.Sprintf("no limit band matches credit score %d", creditScore))
}

func declinedOutcome(reasons []string) model.PolicyOutcome {
	return model.PolicyOutcome{State: model.OutcomeDeclined, Reasons: reasons}
}
