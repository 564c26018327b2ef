package evalsvc

import (
	"context"
	"encoding/json"

	mdwerror "github.com/msto63/vmel/foundation/core/error"
	"github.com/msto63/vmel/internal/journal"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "vmel.v1.Evaluator"

const (
	runMethod      = "/" + ServiceName + "/Run"
	tokenizeMethod = "/" + ServiceName + "/Tokenize"
)

// EvaluatorServer is the server API of the Evaluator service. Requests
// carry the source as a StringValue; responses are the JSON form of
// Response or TokenResponse as a Struct.
type EvaluatorServer interface {
	Run(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error)
	Tokenize(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error)
}

// EvaluatorServiceDesc describes the Evaluator service for grpc.Server
var EvaluatorServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EvaluatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Run", Handler: runHandler},
		{MethodName: "Tokenize", Handler: tokenizeHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "vmel/v1/evaluator.proto",
}

// RegisterEvaluatorServer registers srv with s
func RegisterEvaluatorServer(s grpc.ServiceRegistrar, srv EvaluatorServer) {
	s.RegisterService(&EvaluatorServiceDesc, srv)
}

func runHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EvaluatorServer).Run(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: runMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EvaluatorServer).Run(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func tokenizeHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EvaluatorServer).Tokenize(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: tokenizeMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EvaluatorServer).Tokenize(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// GRPCServer adapts a Service to EvaluatorServer
type GRPCServer struct {
	service *Service
}

// Ensure GRPCServer implements EvaluatorServer
var _ EvaluatorServer = (*GRPCServer)(nil)

// NewGRPCServer creates the gRPC adapter for svc
func NewGRPCServer(svc *Service) *GRPCServer {
	return &GRPCServer{service: svc}
}

// Run implements EvaluatorServer.Run
func (s *GRPCServer) Run(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	resp, err := s.service.Run(ctx, journal.OriginGRPC, req.GetValue())
	if err != nil {
		return nil, err
	}
	return toStruct(resp)
}

// Tokenize implements EvaluatorServer.Tokenize
func (s *GRPCServer) Tokenize(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	resp, err := s.service.Tokenize(req.GetValue())
	if err != nil {
		return nil, err
	}
	return toStruct(resp)
}

// toStruct converts a JSON-tagged value into a Struct
func toStruct(v interface{}) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to encode response").
			WithCode(mdwerror.CodeInternal).
			WithOperation("evalsvc.toStruct")
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, mdwerror.Wrap(err, "failed to convert response").
			WithCode(mdwerror.CodeInternal).
			WithOperation("evalsvc.toStruct")
	}
	return out, nil
}

// fromStruct decodes a Struct produced by toStruct into v
func fromStruct(st *structpb.Struct, v interface{}) error {
	raw, err := protojson.Marshal(st)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// Client calls a remote Evaluator service
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a client on an established connection
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Run evaluates src remotely
func (c *Client) Run(ctx context.Context, src string, opts ...grpc.CallOption) (*Response, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, runMethod, wrapperspb.String(src), out, opts...); err != nil {
		return nil, err
	}
	var resp Response
	if err := fromStruct(out, &resp); err != nil {
		return nil, mdwerror.Wrap(err, "failed to decode run response").
			WithCode(mdwerror.CodeInternal).
			WithOperation("evalsvc.Client.Run")
	}
	return &resp, nil
}

// Tokenize tokenizes src remotely
func (c *Client) Tokenize(ctx context.Context, src string, opts ...grpc.CallOption) (*TokenResponse, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, tokenizeMethod, wrapperspb.String(src), out, opts...); err != nil {
		return nil, err
	}
	var resp TokenResponse
	if err := fromStruct(out, &resp); err != nil {
		return nil, mdwerror.Wrap(err, "failed to decode tokenize response").
			WithCode(mdwerror.CodeInternal).
			WithOperation("evalsvc.Client.Tokenize")
	}
	return &resp, nil
}
