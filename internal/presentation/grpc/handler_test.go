package grpc_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/okralabs/okra/internal/application/dto"
	"github.com/okralabs/okra/internal/application/usecase"
	"github.com/okralabs/okra/internal/domain/policy"
	"github.com/okralabs/okra/internal/domain/port"
	grpcpresentation "github.com/okralabs/okra/internal/presentation/grpc"
)

func newTestHandler(t *testing.T) *grpcpresentation.CreditHandler {
	t.Helper()
	store, err := policy.NewStore(policy.Default())
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := port.FixedClock(time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC))

	return grpcpresentation.NewCreditHandler(
		usecase.NewEvaluateCreditUseCase(store, nil, nil, clock, "", logger),
		usecase.NewEvaluateBNPLUseCase(store, nil, nil, clock, "", logger),
		usecase.NewListPoliciesUseCase(store),
	)
}

func intPtr(v int) *int { return &v }

func TestCreditHandler_GetCreditQuote(t *testing.T) {
	handler := newTestHandler(t)

	t.Run("returns the evaluated quote", func(t *testing.T) {
		resp, err := handler.GetCreditQuote(context.Background(), &dto.CreditQuoteRequest{
			ActorID:         "actor-001",
			RequestedAmount: decimal.NewFromInt(15_000),
			TermMonths:      36,
			CreditProfile: &dto.CreditProfileDTO{
				CreditScore:       intPtr(750),
				AnnualIncome:      decimal.NewFromInt(85_000),
				DebtToIncomeRatio: decimal.NewFromFloat(0.28),
			},
		})
		require.NoError(t, err)
		assert.True(t, resp.Approved)
		assert.Equal(t, "15000", resp.CreditLimit.String())
		assert.Equal(t, "8.99", resp.APR.String())
	})

	t.Run("maps validation failures to InvalidArgument", func(t *testing.T) {
		_, err := handler.GetCreditQuote(context.Background(), &dto.CreditQuoteRequest{
			ActorID:         "actor-001",
			RequestedAmount: decimal.NewFromInt(15_000),
			TermMonths:      61,
		})
		require.Error(t, err)
		st, ok := status.FromError(err)
		require.True(t, ok)
		assert.Equal(t, codes.InvalidArgument, st.Code())
		assert.Contains(t, st.Message(), "term")
	})
}

func TestCreditHandler_GetBNPLQuote(t *testing.T) {
	handler := newTestHandler(t)

	t.Run("returns the evaluated quote", func(t *testing.T) {
		resp, err := handler.GetBNPLQuote(context.Background(), &dto.BNPLQuoteRequest{
			ActorID:     "actor-042",
			Amount:      decimal.NewFromInt(1_500),
			Tenor:       6,
			OnTimeRate:  0.95,
			Utilization: 0.30,
		})
		require.NoError(t, err)
		assert.True(t, resp.Approved)
		assert.Equal(t, "1335", resp.Limit.String())
		assert.Equal(t, 7, resp.TermMonths)
	})

	t.Run("maps validation failures to InvalidArgument", func(t *testing.T) {
		_, err := handler.GetBNPLQuote(context.Background(), &dto.BNPLQuoteRequest{
			Amount:      decimal.NewFromInt(1_500),
			Tenor:       6,
			OnTimeRate:  -0.5,
			Utilization: 0.30,
		})
		require.Error(t, err)
		st, ok := status.FromError(err)
		require.True(t, ok)
		assert.Equal(t, codes.InvalidArgument, st.Code())
	})
}

func TestCreditHandler_ListPolicies(t *testing.T) {
	handler := newTestHandler(t)
	resp, err := handler.ListPolicies(context.Background(), &grpcpresentation.ListPoliciesRequest{})
	require.NoError(t, err)
	assert.Equal(t, policy.DefaultVersion, resp.Version)
	assert.Contains(t, resp.Installment, "rate_tiers")
	assert.InDelta(t, 1.0, sumWeights(resp.Weights), 0.001)
}

func sumWeights(weights map[string]float64) float64 {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	return total
}
