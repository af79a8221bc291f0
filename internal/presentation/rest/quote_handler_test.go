package rest_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okralabs/okra/internal/application/usecase"
	"github.com/okralabs/okra/internal/domain/policy"
	"github.com/okralabs/okra/internal/domain/port"
	"github.com/okralabs/okra/internal/presentation/rest"
)

func newTestMux(t *testing.T, ready func() bool) *http.ServeMux {
	t.Helper()
	store, err := policy.NewStore(policy.Default())
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := port.FixedClock(time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC))

	credit := usecase.NewEvaluateCreditUseCase(store, nil, nil, clock, "", logger)
	bnpl := usecase.NewEvaluateBNPLUseCase(store, nil, nil, clock, "", logger)
	policies := usecase.NewListPoliciesUseCase(store)

	mux := http.NewServeMux()
	rest.NewQuoteHandler("okra", credit, bnpl, policies, logger).RegisterRoutes(mux)
	rest.NewHealthHandler("okra", logger, ready).RegisterRoutes(mux)
	return mux
}

func doJSON(t *testing.T, mux *http.ServeMux, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded),
		"response body: %s", rec.Body.String())
	return rec, decoded
}

func TestQuoteHandler_CreditQuote(t *testing.T) {
	mux := newTestMux(t, nil)

	t.Run("approves a strong applicant", func(t *testing.T) {
		rec, body := doJSON(t, mux, http.MethodPost, "/credit/quote", `{
			"actor_id": "actor-001",
			"requested_amount": "15000",
			"term_months": 36,
			"credit_profile": {
				"credit_score": 750,
				"annual_income": "85000",
				"debt_to_income_ratio": "0.28"
			}
		}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Equal(t, true, body["approved"])
		assert.Equal(t, "15000", body["credit_limit"])
		assert.Equal(t, "8.99", body["apr"])
		assert.Equal(t, "476.93", body["monthly_payment"])
		assert.NotEmpty(t, body["quote_id"])
	})

	t.Run("validation failure maps to 400 with field and code", func(t *testing.T) {
		rec, body := doJSON(t, mux, http.MethodPost, "/credit/quote", `{
			"actor_id": "actor-001",
			"requested_amount": "0",
			"term_months": 36
		}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		errObj, ok := body["error"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "amount_not_positive", errObj["code"])
		assert.Equal(t, "amount", errObj["field"])
	})

	t.Run("malformed body maps to 400", func(t *testing.T) {
		rec, body := doJSON(t, mux, http.MethodPost, "/credit/quote", `{"actor_id": `)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		errObj, ok := body["error"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "malformed_body", errObj["code"])
	})
}

func TestQuoteHandler_BNPLQuote(t *testing.T) {
	mux := newTestMux(t, nil)

	t.Run("approves a reliable shopper", func(t *testing.T) {
		rec, body := doJSON(t, mux, http.MethodPost, "/bnpl/quote", `{
			"actor_id": "actor-042",
			"amount": "1500",
			"tenor": 6,
			"on_time_rate": 0.95,
			"utilization": 0.30
		}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["approved"])
		assert.Equal(t, "1335", body["limit"])
		assert.Equal(t, "17.2", body["apr"])
		assert.Equal(t, float64(7), body["term_months"])
		assert.Equal(t, "190.71", body["monthly_payment"])
	})

	t.Run("out-of-range rate maps to 400", func(t *testing.T) {
		rec, body := doJSON(t, mux, http.MethodPost, "/bnpl/quote", `{
			"amount": "800",
			"tenor": 4,
			"on_time_rate": 1.5,
			"utilization": 0.2
		}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		errObj, ok := body["error"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "ratio_out_of_range", errObj["code"])
		assert.Equal(t, "on_time_rate", errObj["field"])
	})
}

func TestQuoteHandler_ListPolicies(t *testing.T) {
	mux := newTestMux(t, nil)
	rec, body := doJSON(t, mux, http.MethodGet, "/policies", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, policy.DefaultVersion, body["version"])
	assert.Contains(t, body, "installment")
	assert.Contains(t, body, "bnpl")
	assert.Contains(t, body, "weights")
}

func TestQuoteHandler_Index(t *testing.T) {
	mux := newTestMux(t, nil)

	t.Run("root lists endpoints", func(t *testing.T) {
		rec, body := doJSON(t, mux, http.MethodGet, "/", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "okra", body["service"])
		assert.NotEmpty(t, body["endpoints"])
	})

	t.Run("unknown path is 404", func(t *testing.T) {
		rec, body := doJSON(t, mux, http.MethodGet, "/nope", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
		errObj, ok := body["error"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "not_found", errObj["code"])
	})
}

func TestHealthHandler(t *testing.T) {
	t.Run("liveness is unconditional", func(t *testing.T) {
		rec, body := doJSON(t, newTestMux(t, func() bool { return false }), http.MethodGet, "/healthz", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", body["status"])
	})

	t.Run("readiness follows the probe", func(t *testing.T) {
		rec, body := doJSON(t, newTestMux(t, func() bool { return true }), http.MethodGet, "/readyz", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ready", body["status"])

		rec, body = doJSON(t, newTestMux(t, func() bool { return false }), http.MethodGet, "/readyz", "")
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "not_ready", body["status"])
	})
}
