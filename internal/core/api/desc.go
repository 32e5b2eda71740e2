package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// The service is described by hand; its messages are google.protobuf.Struct
// documents, so no generated code is needed on either side.
const (
	ServiceName        = "fontfilter.v1.FilterService"
	FilterMethod       = "/" + ServiceName + "/Filter"
	ListProfilesMethod = "/" + ServiceName + "/ListProfiles"
)

// FilterServer is the server API for FilterService.
type FilterServer interface {
	Filter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListProfiles(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc describes FilterService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FilterServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Filter", Handler: filterHandler},
		{MethodName: "ListProfiles", Handler: listProfilesHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "fontfilter/v1/filter.proto",
}

// RegisterFilterServer registers srv with s.
func RegisterFilterServer(s grpc.ServiceRegistrar, srv FilterServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func filterHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FilterServer).Filter(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FilterMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FilterServer).Filter(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func listProfilesHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FilterServer).ListProfiles(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ListProfilesMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FilterServer).ListProfiles(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// Client calls FilterService over a client connection.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Filter invokes FilterService/Filter.
func (c *Client) Filter(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FilterMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// ListProfiles invokes FilterService/ListProfiles.
func (c *Client) ListProfiles(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ListProfilesMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
