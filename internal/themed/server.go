package themed

import (
	"context"
	"os"
	"time"

	"github.com/opencode-ai/vibeui/internal/service"
	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Server implements ThemeServiceServer on top of the service facade.
type Server struct {
	svc       *service.Service
	logger    zerolog.Logger
	startedAt time.Time
	hostname  string
	version   string
}

var _ ThemeServiceServer = (*Server)(nil)

// ServerOption configures the Server.
type ServerOption func(*Server)

// WithVersion sets the daemon version.
func WithVersion(version string) ServerOption {
	return func(s *Server) {
		s.version = version
	}
}

// NewServer creates a gRPC server for the theme service.
func NewServer(svc *service.Service, logger zerolog.Logger, opts ...ServerOption) *Server {
	hostname, _ := os.Hostname()

	s := &Server{
		svc:       svc,
		logger:    logger,
		startedAt: time.Now(),
		hostname:  hostname,
		version:   "dev",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListDesigns returns the catalog listing. Request fields: format.
func (s *Server) ListDesigns(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return envelopeResponse(s.svc.List(ctx, stringField(req, "format")))
}

// GetByName resolves a theme exactly. Request fields: name, format.
func (s *Server) GetByName(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	name := stringField(req, "name")
	if name == "" {
		return nil, status.Error(codes.InvalidArgument, "name is required")
	}
	return envelopeResponse(s.svc.GetByName(ctx, name, stringField(req, "format")))
}

// GetByIntent resolves a theme from free text. Request fields: intent, format.
func (s *Server) GetByIntent(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	intent := stringField(req, "intent")
	if intent == "" {
		return nil, status.Error(codes.InvalidArgument, "intent is required")
	}
	return envelopeResponse(s.svc.GetByIntent(ctx, intent, stringField(req, "format")))
}

// Help returns the usage guide.
func (s *Server) Help(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return envelopeResponse(s.svc.Help())
}

// Ping reports liveness and basic daemon facts.
func (s *Server) Ping(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	resp, err := structpb.NewStruct(map[string]any{
		"version":   s.version,
		"hostname":  s.hostname,
		"profile":   string(s.svc.Profile()),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).Round(time.Second).String(),
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to build ping response: %v", err)
	}
	return resp, nil
}

func envelopeResponse(env service.Envelope) (*structpb.Struct, error) {
	resp, err := structpb.NewStruct(map[string]any{
		"text":    env.Text,
		"isError": env.IsError,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return resp, nil
}

func stringField(req *structpb.Struct, key string) string {
	if req == nil {
		return ""
	}
	v, ok := req.GetFields()[key]
	if !ok {
		return ""
	}
	return v.GetStringValue()
}
