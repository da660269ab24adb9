package pb

import (
	"context"

	"google.golang.org/grpc"
)

// UserServer is the interface package service implements for the User
// RPC surface: Authenticate, Vote, GetSnapVotes, Delete.
type UserServer interface {
	Authenticate(context.Context, *AuthenticateRequest) (*AuthenticateResponse, error)
	Delete(context.Context, *DeleteRequest) (*DeleteResponse, error)
	Vote(context.Context, *VoteRequest) (*VoteResponse, error)
	GetSnapVotes(context.Context, *GetSnapVotesRequest) (*GetSnapVotesResponse, error)
}

// UnimplementedUserServer can be embedded to satisfy UserServer during
// incremental development, mirroring the forward-compatibility
// convention protoc-gen-go-grpc emits.
type UnimplementedUserServer struct{}

func (UnimplementedUserServer) Authenticate(context.Context, *AuthenticateRequest) (*AuthenticateResponse, error) {
	return nil, errUnimplemented("User.Authenticate")
}
func (UnimplementedUserServer) Delete(context.Context, *DeleteRequest) (*DeleteResponse, error) {
	return nil, errUnimplemented("User.Delete")
}
func (UnimplementedUserServer) Vote(context.Context, *VoteRequest) (*VoteResponse, error) {
	return nil, errUnimplemented("User.Vote")
}
func (UnimplementedUserServer) GetSnapVotes(context.Context, *GetSnapVotesRequest) (*GetSnapVotesResponse, error) {
	return nil, errUnimplemented("User.GetSnapVotes")
}

func _User_Authenticate_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(AuthenticateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UserServer).Authenticate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ratings.User/Authenticate"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UserServer).Authenticate(ctx, req.(*AuthenticateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _User_Delete_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(DeleteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UserServer).Delete(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ratings.User/Delete"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UserServer).Delete(ctx, req.(*DeleteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _User_Vote_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(VoteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UserServer).Vote(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ratings.User/Vote"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UserServer).Vote(ctx, req.(*VoteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _User_GetSnapVotes_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetSnapVotesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UserServer).GetSnapVotes(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ratings.User/GetSnapVotes"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UserServer).GetSnapVotes(ctx, req.(*GetSnapVotesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// User_ServiceDesc is the grpc.ServiceDesc for the User service.
var User_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "ratings.User",
	HandlerType: (*UserServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Authenticate", Handler: _User_Authenticate_Handler},
		{MethodName: "Delete", Handler: _User_Delete_Handler},
		{MethodName: "Vote", Handler: _User_Vote_Handler},
		{MethodName: "GetSnapVotes", Handler: _User_GetSnapVotes_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ratings.proto",
}

// RegisterUserServer registers srv to handle the User service on s.
func RegisterUserServer(s grpc.ServiceRegistrar, srv UserServer) {
	s.RegisterService(&User_ServiceDesc, srv)
}
