package mcp

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/okralabs/okra/internal/application/dto"
	"github.com/okralabs/okra/internal/application/usecase"
)

const (
	serverName    = "okra"
	serverVersion = "1.0.0"
)

// Server exposes the quote operations as MCP tools over stdio, so agent
// runtimes can request credit decisions without an HTTP client.
type Server struct {
	mcpServer *mcp.Server
	logger    *slog.Logger
}

// NewServer creates the MCP server and registers the quote tools.
func NewServer(
	credit *usecase.EvaluateCreditUseCase,
	bnpl *usecase.EvaluateBNPLUseCase,
	policies *usecase.ListPoliciesUseCase,
	logger *slog.Logger,
) *Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: serverName, Version: serverVersion},
		&mcp.ServerOptions{},
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "getCreditQuote",
		Description: "Evaluates an installment credit request and returns the quote with terms and reasons",
	}, creditQuoteHandler(credit))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "getBNPLQuote",
		Description: "Scores a pay-in-installments request and returns the quote with per-signal breakdown",
	}, bnplQuoteHandler(bnpl))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "listPolicies",
		Description: "Returns the active policy parameter set",
	}, listPoliciesHandler(policies))

	return &Server{mcpServer: server, logger: logger}
}

// Run serves MCP over stdio until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("mcp server serving", "transport", "stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// creditQuoteHandler binds the installment use case to the MCP tool contract.
func creditQuoteHandler(uc *usecase.EvaluateCreditUseCase) mcp.ToolHandlerFor[dto.CreditQuoteRequest, dto.CreditQuoteResponse] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input dto.CreditQuoteRequest) (*mcp.CallToolResult, dto.CreditQuoteResponse, error) {
		resp, err := uc.Execute(ctx, input)
		if err != nil {
			return nil, dto.CreditQuoteResponse{}, err
		}
		return nil, resp, nil
	}
}

// bnplQuoteHandler binds the BNPL use case to the MCP tool contract.
func bnplQuoteHandler(uc *usecase.EvaluateBNPLUseCase) mcp.ToolHandlerFor[dto.BNPLQuoteRequest, dto.BNPLQuoteResponse] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input dto.BNPLQuoteRequest) (*mcp.CallToolResult, dto.BNPLQuoteResponse, error) {
		resp, err := uc.Execute(ctx, input)
		if err != nil {
			return nil, dto.BNPLQuoteResponse{}, err
		}
		return nil, resp, nil
	}
}

type listPoliciesInput struct{}

// listPoliciesHandler binds the policy listing to the MCP tool contract.
func listPoliciesHandler(uc *usecase.ListPoliciesUseCase) mcp.ToolHandlerFor[listPoliciesInput, dto.PolicyListing] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ listPoliciesInput) (*mcp.CallToolResult, dto.PolicyListing, error) {
		listing, err := uc.Execute(ctx)
		if err != nil {
			return nil, dto.PolicyListing{}, err
		}
		return nil, listing, nil
	}
}
