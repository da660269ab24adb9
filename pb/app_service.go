package pb

import (
	"context"

	"google.golang.org/grpc"
)

// AppServer is the interface package service implements for the App
// RPC surface: GetRating, GetBulkRatings.
type AppServer interface {
	GetRating(context.Context, *GetRatingRequest) (*GetRatingResponse, error)
	GetBulkRatings(context.Context, *GetBulkRatingsRequest) (*GetBulkRatingsResponse, error)
}

type UnimplementedAppServer struct{}

func (UnimplementedAppServer) GetRating(context.Context, *GetRatingRequest) (*GetRatingResponse, error) {
	return nil, errUnimplemented("App.GetRating")
}
func (UnimplementedAppServer) GetBulkRatings(context.Context, *GetBulkRatingsRequest) (*GetBulkRatingsResponse, error) {
	return nil, errUnimplemented("App.GetBulkRatings")
}

func _App_GetRating_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetRatingRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AppServer).GetRating(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ratings.App/GetRating"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AppServer).GetRating(ctx, req.(*GetRatingRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _App_GetBulkRatings_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetBulkRatingsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AppServer).GetBulkRatings(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ratings.App/GetBulkRatings"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AppServer).GetBulkRatings(ctx, req.(*GetBulkRatingsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// App_ServiceDesc is the grpc.ServiceDesc for the App service.
var App_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "ratings.App",
	HandlerType: (*AppServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetRating", Handler: _App_GetRating_Handler},
		{MethodName: "GetBulkRatings", Handler: _App_GetBulkRatings_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ratings.proto",
}

// RegisterAppServer registers srv to handle the App service on s.
func RegisterAppServer(s grpc.ServiceRegistrar, srv AppServer) {
	s.RegisterService(&App_ServiceDesc, srv)
}
