package themed

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "vibeui.v1.ThemeService"

// Full method names, as seen by interceptors.
const (
	ListDesignsMethod = "/" + ServiceName + "/ListDesigns"
	GetByNameMethod   = "/" + ServiceName + "/GetByName"
	GetByIntentMethod = "/" + ServiceName + "/GetByIntent"
	HelpMethod        = "/" + ServiceName + "/Help"
	PingMethod        = "/" + ServiceName + "/Ping"
)

// ThemeServiceServer is the server API for ThemeService. Requests and
// responses are google.protobuf.Struct messages.
type ThemeServiceServer interface {
	ListDesigns(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetByName(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetByIntent(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Help(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Ping(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterThemeServiceServer registers srv with a gRPC server.
func RegisterThemeServiceServer(s grpc.ServiceRegistrar, srv ThemeServiceServer) {
	s.RegisterService(&ThemeServiceDesc, srv)
}

type unaryCall func(ThemeServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryCall) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ThemeServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ThemeServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ThemeServiceDesc describes ThemeService for grpc.Server.RegisterService.
var ThemeServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ThemeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListDesigns", Handler: unaryHandler(ListDesignsMethod, ThemeServiceServer.ListDesigns)},
		{MethodName: "GetByName", Handler: unaryHandler(GetByNameMethod, ThemeServiceServer.GetByName)},
		{MethodName: "GetByIntent", Handler: unaryHandler(GetByIntentMethod, ThemeServiceServer.GetByIntent)},
		{MethodName: "Help", Handler: unaryHandler(HelpMethod, ThemeServiceServer.Help)},
		{MethodName: "Ping", Handler: unaryHandler(PingMethod, ThemeServiceServer.Ping)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "vibeui/v1/theme.proto",
}
