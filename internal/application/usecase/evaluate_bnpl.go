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
	"github.com/okralabs/okra/pkg/events"
	"github.com/okralabs/okra/pkg/observability"
)

// EvaluateBNPLUseCase orchestrates BNPL quote evaluation. Unlike the
// installment path the decision is driven entirely by the composite score.
type EvaluateBNPLUseCase struct {
	store     *policy.Store
	publisher port.EventPublisher
	explainer port.ExplanationGenerator
	clock     port.Clock
	source    string
	logger    *slog.Logger
}

// NewEvaluateBNPLUseCase wires dependencies. publisher and explainer may be
// nil; both are best-effort collaborators.
func NewEvaluateBNPLUseCase(
	store *policy.Store,
	publisher port.EventPublisher,
	explainer port.ExplanationGenerator,
	clock port.Clock,
	source string,
	logger *slog.Logger,
) *EvaluateBNPLUseCase {
	return &EvaluateBNPLUseCase{
		store:     store,
		publisher: publisher,
		explainer: explainer,
		clock:     clock,
		source:    source,
		logger:    logger,
	}
}

// Execute evaluates one BNPL request against the active policy snapshot.
func (uc *EvaluateBNPLUseCase) Execute(
	ctx context.Context,
	req dto.BNPLQuoteRequest,
) (dto.BNPLQuoteResponse, error) {
	started := time.Now()
	defer func() {
		observability.DecisionDuration.WithLabelValues("bnpl").
			Observe(time.Since(started).Seconds())
	}()

	params := uc.store.Current()
	now := uc.clock.Now()

	// 1. Validate and build the request aggregate.
	request, err := model.NewBNPLRequest(req.ActorID, req.Amount, req.Tenor,
		valueobject.BNPLSignals{
			OnTimeRate:  req.OnTimeRate,
			Utilization: req.Utilization,
		})
	if err != nil {
		return dto.BNPLQuoteResponse{}, err
	}

	// 2. Normalize, score per-signal, combine.
	features := service.NewFeatureNormalizer(params).NormalizeBNPL(request)
	signals := service.NewSignalScorer(params).ScoreBNPL(features)
	scorer := service.NewCompositeScorer(params)
	score := scorer.CombineBNPL(signals)

	// The published key-signal set is the per-signal labels plus the overall
	// risk band derived from the composite.
	keySignals := signals.Labels()
	keySignals["risk_signal"] = scorer.RiskLabel(score)

	// 3. Partition by score and assemble the quote.
	outcome := service.NewPolicyEvaluator(params).EvaluateBNPL(score)
	quote := service.NewQuoteBuilder(params).BuildBNPL(request, features, score, outcome, now)
	record := service.NewDecisionRecordAssembler().Assemble(
		quote, signals, service.BNPLFeatureMap(features), request.ActorID(), now)

	observability.DecisionsTotal.WithLabelValues("bnpl", string(outcome.State)).Inc()
	uc.logger.Info("bnpl quote evaluated",
		"quote_id", quote.QuoteID,
		"actor_id", request.ActorID(),
		"outcome", string(outcome.State),
		"score", score,
	)

	resp := toBNPLResponse(quote, signals, keySignals, params)

	// 4. Emit the decision event on request, best-effort; the envelope rides
	// back on the response and shares its subject with the returned trace id,
	// so callers can correlate without a bus consumer.
	if req.EmitEvent && uc.publisher != nil {
		traceID := events.NewTraceID()
		eventRecord := record
		eventRecord.Subject = traceID
		ce := event.NewBNPLQuoteEvent(eventRecord, keySignals, uc.source)
		if err := uc.publisher.Publish(ctx, ce); err != nil {
			observability.EventPublishFailures.Inc()
			uc.logger.Warn("bnpl quote event dropped",
				"quote_id", quote.QuoteID, "error", err)
		} else {
			resp.CloudEvent = &ce
			resp.TraceID = traceID
		}
	}

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

func toBNPLResponse(
	q model.Quote,
	signals valueobject.SignalSet,
	keySignals map[string]string,
	params *policy.Parameters,
) dto.BNPLQuoteResponse {
	w := params.BNPL.Weights
	return dto.BNPLQuoteResponse{
		QuoteID:        q.QuoteID,
		Approved:       q.Approved,
		Limit:          q.Limit,
		APR:            q.APR,
		TermMonths:     q.TermMonths,
		MonthlyPayment: q.MonthlyPayment,
		Score:          q.Score,
		Reasons:        q.Reasons,
		ReviewRequired: q.ReviewRequired,
		PolicyVersion:  q.PolicyVersion,
		KeySignals:     keySignals,
		Components:     signals.Components(),
		Weights: map[string]float64{
			valueobject.SignalAmount:      w.Amount,
			valueobject.SignalTenor:       w.Tenor,
			valueobject.SignalOnTime:      w.OnTimeRate,
			valueobject.SignalUtilization: w.Utilization,
		},
	}
}
