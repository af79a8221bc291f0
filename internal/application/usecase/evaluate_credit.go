package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/okralabs/okra/internal/application/dto"
	"github.com/okralabs/okra/internal/domain/event"
	"github.com/okralabs/okra/internal/domain/model"
	"github.com/okralabs/okra/internal/domain/policy"
	"github.com/okralabs/okra/internal/domain/port"
	"github.com/okralabs/okra/internal/domain/service"
	"github.com/okralabs/okra/internal/domain/valueobject"
	"github.com/okralabs/okra/pkg/observability"
)

// EvaluateCreditUseCase orchestrates installment quote evaluation: normalize,
// score, apply policy rules, assemble the quote and its decision record, and
// emit the credit_quote event.
type EvaluateCreditUseCase struct {
	store     *policy.Store
	publisher port.EventPublisher
	explainer port.ExplanationGenerator
	clock     port.Clock
	source    string
	logger    *slog.Logger
}

// NewEvaluateCreditUseCase wires dependencies. publisher and explainer may be
// nil; both are best-effort collaborators.
func NewEvaluateCreditUseCase(
	store *policy.Store,
	publisher port.EventPublisher,
	explainer port.ExplanationGenerator,
	clock port.Clock,
	source string,
	logger *slog.Logger,
) *EvaluateCreditUseCase {
	return &EvaluateCreditUseCase{
		store:     store,
		publisher: publisher,
		explainer: explainer,
		clock:     clock,
		source:    source,
		logger:    logger,
	}
}

// Execute evaluates one installment credit request. The active policy
// snapshot is read once up front so a mid-flight reload cannot mix versions.
func (uc *EvaluateCreditUseCase) Execute(
	ctx context.Context,
	req dto.CreditQuoteRequest,
) (dto.CreditQuoteResponse, error) {
	started := time.Now()
	defer func() {
		observability.DecisionDuration.WithLabelValues("installment").
			Observe(time.Since(started).Seconds())
	}()

	params := uc.store.Current()
	now := uc.clock.Now()

	// 1. Validate and build the request aggregate.
	request, err := model.NewInstallmentRequest(
		req.ActorID, req.RequestedAmount, req.TermMonths, req.Purpose,
		toProfile(req.CreditProfile),
	)
	if err != nil {
		return dto.CreditQuoteResponse{}, err
	}

	// 2. Normalize and score.
	features := service.NewFeatureNormalizer(params).NormalizeInstallment(request)
	signals := service.NewSignalScorer(params).ScoreInstallment(features)
	score := service.NewCompositeScorer(params).CombineInstallment(signals)

	// 3. Apply policy rules.
	outcome, err := service.NewPolicyEvaluator(params).EvaluateInstallment(request)
	if err != nil {
		return dto.CreditQuoteResponse{}, err
	}

	// 4. Assemble the quote and its decision record.
	quote := service.NewQuoteBuilder(params).BuildInstallment(request, score, outcome, now)
	record := service.NewDecisionRecordAssembler().Assemble(
		quote, signals, service.InstallmentFeatureMap(features), request.ActorID(), now)

	observability.DecisionsTotal.WithLabelValues("installment", string(outcome.State)).Inc()
	uc.logger.Info("credit quote evaluated",
		"quote_id", quote.QuoteID,
		"actor_id", request.ActorID(),
		"outcome", string(outcome.State),
		"score", score,
	)

	// 5. Emit the decision event, best-effort.
	if uc.publisher != nil {
		ce := event.NewCreditQuoteEvent(record, uc.source)
		if err := uc.publisher.Publish(ctx, ce); err != nil {
			observability.EventPublishFailures.Inc()
			uc.logger.Warn("credit quote event dropped",
				"quote_id", quote.QuoteID, "error", err)
		}
	}

	resp := toCreditResponse(quote, signals)
	if uc.explainer != nil {
		if explanation, err := uc.explainer.Explain(ctx, record); err == nil {
			resp.Explanation = explanation
		} else {
			uc.logger.Warn("explanation unavailable",
				"quote_id", quote.QuoteID, "error", err)
		}
	}
	return resp, nil
}

func toProfile(p *dto.CreditProfileDTO) *valueobject.CreditProfile {
	if p == nil {
		return nil
	}
	return &valueobject.CreditProfile{
		CreditScore:         p.CreditScore,
		AnnualIncome:        p.AnnualIncome,
		DebtToIncomeRatio:   p.DebtToIncomeRatio,
		EmploymentStatus:    p.EmploymentStatus,
		CreditHistoryMonths: p.CreditHistoryMonths,
	}
}

func toCreditResponse(q model.Quote, signals valueobject.SignalSet) dto.CreditQuoteResponse {
	return dto.CreditQuoteResponse{
		QuoteID:        q.QuoteID,
		Approved:       q.Approved,
		CreditLimit:    q.Limit,
		APR:            q.APR,
		TermMonths:     q.TermMonths,
		MonthlyPayment: q.MonthlyPayment,
		Score:          q.Score,
		Reasons:        q.Reasons,
		ReviewRequired: q.ReviewRequired,
		PolicyVersion:  q.PolicyVersion,
		KeySignals:     signals.Labels(),
	}
}
