package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/okralabs/okra/internal/application/dto"
	"github.com/okralabs/okra/internal/application/usecase"
	"github.com/okralabs/okra/internal/domain/valueobject"
)

// QuoteHandler exposes the quote and policy operations over HTTP.
type QuoteHandler struct {
	serviceName string
	credit      *usecase.EvaluateCreditUseCase
	bnpl        *usecase.EvaluateBNPLUseCase
	policies    *usecase.ListPoliciesUseCase
	logger      *slog.Logger
}

// NewQuoteHandler creates a handler with all use-case dependencies.
func NewQuoteHandler(
	serviceName string,
	credit *usecase.EvaluateCreditUseCase,
	bnpl *usecase.EvaluateBNPLUseCase,
	policies *usecase.ListPoliciesUseCase,
	logger *slog.Logger,
) *QuoteHandler {
	return &QuoteHandler{
		serviceName: serviceName,
		credit:      credit,
		bnpl:        bnpl,
		policies:    policies,
		logger:      logger,
	}
}

// RegisterRoutes attaches the API routes to the given mux.
func (h *QuoteHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /", h.index)
	mux.HandleFunc("GET /policies", h.listPolicies)
	mux.HandleFunc("POST /credit/quote", h.creditQuote)
	mux.HandleFunc("POST /bnpl/quote", h.bnplQuote)
}

func (h *QuoteHandler) index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not_found", "no such route", "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"service": h.serviceName,
		"endpoints": []string{
			"POST /credit/quote",
			"POST /bnpl/quote",
			"GET /policies",
			"GET /healthz",
			"GET /readyz",
		},
	})
}

func (h *QuoteHandler) listPolicies(w http.ResponseWriter, r *http.Request) {
	listing, err := h.policies.Execute(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

func (h *QuoteHandler) creditQuote(w http.ResponseWriter, r *http.Request) {
	var req dto.CreditQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed_body", err.Error(), "")
		return
	}

	resp, err := h.credit.Execute(r.Context(), req)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *QuoteHandler) bnplQuote(w http.ResponseWriter, r *http.Request) {
	var req dto.BNPLQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed_body", err.Error(), "")
		return
	}
	// Event emission can also be requested per call via query string.
	if r.URL.Query().Get("emit_ce") == "true" {
		req.EmitEvent = true
	}

	resp, err := h.bnpl.Execute(r.Context(), req)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeDomainError maps domain errors onto HTTP status codes: rejected input
// is 400 with the machine-readable code, anything else 500.
func (h *QuoteHandler) writeDomainError(w http.ResponseWriter, err error) {
	var verr *valueobject.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, verr.Code, verr.Message, verr.Field)
		return
	}
	h.logger.Error("quote evaluation failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error", "")
}

func writeError(w http.ResponseWriter, status int, code, message, field string) {
	body := map[string]string{
		"code":    code,
		"message": message,
	}
	if field != "" {
		body["field"] = field
	}
	writeJSON(w, status, map[string]any{"error": body})
}
