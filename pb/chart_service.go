package pb

import (
	"context"

	"google.golang.org/grpc"
)

// ChartServer is the interface package service implements for the
// Chart RPC surface: GetChart.
type ChartServer interface {
	GetChart(context.Context, *GetChartRequest) (*GetChartResponse, error)
}

type UnimplementedChartServer struct{}

func (UnimplementedChartServer) GetChart(context.Context, *GetChartRequest) (*GetChartResponse, error) {
	return nil, errUnimplemented("Chart.GetChart")
}

func _Chart_GetChart_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetChartRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChartServer).GetChart(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ratings.Chart/GetChart"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ChartServer).GetChart(ctx, req.(*GetChartRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// Chart_ServiceDesc is the grpc.ServiceDesc for the Chart service.
var Chart_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "ratings.Chart",
	HandlerType: (*ChartServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetChart", Handler: _Chart_GetChart_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ratings.proto",
}

// RegisterChartServer registers srv to handle the Chart service on s.
func RegisterChartServer(s grpc.ServiceRegistrar, srv ChartServer) {
	s.RegisterService(&Chart_ServiceDesc, srv)
}
