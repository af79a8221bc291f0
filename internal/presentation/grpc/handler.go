package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/okralabs/okra/internal/application/usecase"
	"github.com/okralabs/okra/internal/domain/valueobject"
)

// CreditHandler implements CreditServiceServer over the application use cases.
type CreditHandler struct {
	UnimplementedCreditServiceServer

	credit   *usecase.EvaluateCreditUseCase
	bnpl     *usecase.EvaluateBNPLUseCase
	policies *usecase.ListPoliciesUseCase
}

// NewCreditHandler creates a handler with all use-case dependencies.
func NewCreditHandler(
	credit *usecase.EvaluateCreditUseCase,
	bnpl *usecase.EvaluateBNPLUseCase,
	policies *usecase.ListPoliciesUseCase,
) *CreditHandler {
	return &CreditHandler{
		credit:   credit,
		bnpl:     bnpl,
		policies: policies,
	}
}

// GetCreditQuote evaluates an installment credit request.
func (h *CreditHandler) GetCreditQuote(
	ctx context.Context,
	req *GetCreditQuoteRequest,
) (*GetCreditQuoteResponse, error) {
	resp, err := h.credit.Execute(ctx, *req)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &resp, nil
}

// GetBNPLQuote evaluates a pay-in-installments request.
func (h *CreditHandler) GetBNPLQuote(
	ctx context.Context,
	req *GetBNPLQuoteRequest,
) (*GetBNPLQuoteResponse, error) {
	resp, err := h.bnpl.Execute(ctx, *req)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &resp, nil
}

// ListPolicies returns the active policy parameters.
func (h *CreditHandler) ListPolicies(
	ctx context.Context,
	_ *ListPoliciesRequest,
) (*ListPoliciesResponse, error) {
	listing, err := h.policies.Execute(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &listing, nil
}

// toStatusError maps domain errors onto gRPC status codes. Malformed input
// is the caller's fault; anything else is internal.
func toStatusError(err error) error {
	var verr *valueobject.ValidationError
	if errors.As(err, &verr) {
		return status.Error(codes.InvalidArgument, verr.Error())
	}
	return status.Error(codes.Internal, err.Error())
}
