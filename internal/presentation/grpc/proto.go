package grpc

// proto.go defines the gRPC server interface derived from
// okra/credit/v1/credit.proto. This file serves as a stand-in for
// buf-generated code; the wire messages share their JSON shapes with the
// REST surface and travel over the registered json codec.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/okralabs/okra/internal/application/dto"
)

// Wire messages. Aliased to the application DTOs so both surfaces stay in
// lockstep; a schema change lands in one place.
type (
	GetCreditQuoteRequest  = dto.CreditQuoteRequest
	GetCreditQuoteResponse = dto.CreditQuoteResponse
	GetBNPLQuoteRequest    = dto.BNPLQuoteRequest
	GetBNPLQuoteResponse   = dto.BNPLQuoteResponse
	ListPoliciesResponse   = dto.PolicyListing
)

// ListPoliciesRequest carries no fields.
type ListPoliciesRequest struct{}

// CreditServiceServer is the server API for CreditService.
// It mirrors the proto-generated interface from okra.credit.v1.CreditService.
type CreditServiceServer interface {
	GetCreditQuote(context.Context, *GetCreditQuoteRequest) (*GetCreditQuoteResponse, error)
	GetBNPLQuote(context.Context, *GetBNPLQuoteRequest) (*GetBNPLQuoteResponse, error)
	ListPolicies(context.Context, *ListPoliciesRequest) (*ListPoliciesResponse, error)
	mustEmbedUnimplementedCreditServiceServer()
}

// UnimplementedCreditServiceServer provides forward-compatible default implementations.
type UnimplementedCreditServiceServer struct{}

func (UnimplementedCreditServiceServer) GetCreditQuote(context.Context, *GetCreditQuoteRequest) (*GetCreditQuoteResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetCreditQuote not implemented")
}
func (UnimplementedCreditServiceServer) GetBNPLQuote(context.Context, *GetBNPLQuoteRequest) (*GetBNPLQuoteResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetBNPLQuote not implemented")
}
func (UnimplementedCreditServiceServer) ListPolicies(context.Context, *ListPoliciesRequest) (*ListPoliciesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListPolicies not implemented")
}
func (UnimplementedCreditServiceServer) mustEmbedUnimplementedCreditServiceServer() {}

// RegisterCreditServiceServer registers the CreditServiceServer with the gRPC server.
func RegisterCreditServiceServer(s *grpclib.Server, srv CreditServiceServer) {
	s.RegisterService(&_CreditService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _CreditService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "okra.credit.v1.CreditService",
	HandlerType: (*CreditServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "GetCreditQuote", Handler: _CreditService_GetCreditQuote_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "GetBNPLQuote", Handler: _CreditService_GetBNPLQuote_Handler},     //nolint:revive // gRPC handler registration
		{MethodName: "ListPolicies", Handler: _CreditService_ListPolicies_Handler},     //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_GetCreditQuote_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetCreditQuoteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).GetCreditQuote(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/okra.credit.v1.CreditService/GetCreditQuote",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditServiceServer).GetCreditQuote(ctx, req.(*GetCreditQuoteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_GetBNPLQuote_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetBNPLQuoteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).GetBNPLQuote(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/okra.credit.v1.CreditService/GetBNPLQuote",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditServiceServer).GetBNPLQuote(ctx, req.(*GetBNPLQuoteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_ListPolicies_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListPoliciesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).ListPolicies(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/okra.credit.v1.CreditService/ListPolicies",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditServiceServer).ListPolicies(ctx, req.(*ListPoliciesRequest))
	}
	return interceptor(ctx, in, info, handler)
}
