// Package themed serves the theme facade over gRPC.
package themed

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/opencode-ai/vibeui/internal/config"
	"github.com/opencode-ai/vibeui/internal/service"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// DefaultPort is used when neither options nor config set a port.
const DefaultPort = 50151

// Options configure the daemon runtime.
type Options struct {
	Hostname string
	Port     int
	Version  string
}

// Daemon is the long-running process serving theme lookups.
type Daemon struct {
	cfg    *config.Config
	logger zerolog.Logger
	opts   Options

	server      *Server
	rateLimiter *RateLimiter
	grpcServer  *grpc.Server
}

// New constructs a daemon. Unset options fall back to cfg.Daemon.
func New(cfg *config.Config, svc *service.Service, logger zerolog.Logger, opts Options) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if svc == nil {
		return nil, errors.New("service is required")
	}
	if opts.Hostname == "" {
		opts.Hostname = cfg.Daemon.Host
	}
	if opts.Hostname == "" {
		opts.Hostname = "127.0.0.1"
	}
	if opts.Port == 0 {
		opts.Port = cfg.Daemon.Port
	}
	if opts.Port == 0 {
		opts.Port = DefaultPort
	}

	limiterOpts := []RateLimiterOption{WithEnabled(cfg.Daemon.RateLimit.RPS > 0)}
	if cfg.Daemon.RateLimit.RPS > 0 {
		limiterOpts = append(limiterOpts, WithGlobalLimit(RateLimitConfig{
			RequestsPerSecond: cfg.Daemon.RateLimit.RPS,
			BurstSize:         cfg.Daemon.RateLimit.Burst,
		}))
	}
	rateLimiter := NewRateLimiter(limiterOpts...)

	server := NewServer(svc, logger, WithVersion(opts.Version))

	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(
		loggingInterceptor(logger),
		rateLimiter.UnaryServerInterceptor(),
	))
	RegisterThemeServiceServer(grpcServer, server)

	return &Daemon{
		cfg:         cfg,
		logger:      logger,
		opts:        opts,
		server:      server,
		rateLimiter: rateLimiter,
		grpcServer:  grpcServer,
	}, nil
}

// Run listens on the configured address and blocks until ctx is canceled.
func (d *Daemon) Run(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}

	bindAddr := d.bindAddr()
	listener, err := net.Listen("tcp", bindAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", bindAddr, err)
	}
	return d.Serve(ctx, listener)
}

// Serve serves on an existing listener until ctx is canceled.
func (d *Daemon) Serve(ctx context.Context, listener net.Listener) error {
	d.logger.Info().
		Str("bind", listener.Addr().String()).
		Str("version", d.opts.Version).
		Str("profile", string(d.server.svc.Profile())).
		Msg("vibeui gRPC server starting")

	errCh := make(chan error, 1)
	go func() {
		if err := d.grpcServer.Serve(listener); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		d.logger.Info().Msg("vibeui server shutting down...")
		d.grpcServer.GracefulStop()
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("gRPC server error: %w", err)
		}
	}

	d.logger.Info().Msg("vibeui server shutdown complete")
	return nil
}

func (d *Daemon) bindAddr() string {
	return net.JoinHostPort(d.opts.Hostname, strconv.Itoa(d.opts.Port))
}

// Server returns the underlying gRPC service implementation.
func (d *Daemon) Server() *Server {
	return d.server
}

// RateLimiter returns the limiter guarding every RPC.
func (d *Daemon) RateLimiter() *RateLimiter {
	return d.rateLimiter
}

func loggingInterceptor(logger zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		event := logger.Debug()
		if err != nil {
			event = logger.Warn().Str("code", status.Code(err).String()).Err(err)
		}
		event.Str("method", info.FullMethod).Dur("elapsed", time.Since(start)).Msg("rpc")
		return resp, err
	}
}
