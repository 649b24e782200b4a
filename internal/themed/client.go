package themed

import (
	"context"
	"fmt"

	"github.com/opencode-ai/vibeui/internal/service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client calls a running theme daemon.
type Client struct {
	conn grpc.ClientConnInterface
	// closer is set when the client owns the connection.
	closer func() error
}

// Dial connects to a daemon at addr (host:port) without TLS.
func Dial(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	return &Client{conn: conn, closer: conn.Close}, nil
}

// NewClient wraps an existing connection. Close is then a no-op.
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// Close releases the connection if the client opened it.
func (c *Client) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer()
}

// ListDesigns calls ListDesigns.
func (c *Client) ListDesigns(ctx context.Context, format string) (service.Envelope, error) {
	return c.envelope(ctx, ListDesignsMethod, map[string]any{"format": format})
}

// GetByName calls GetByName.
func (c *Client) GetByName(ctx context.Context, name, format string) (service.Envelope, error) {
	return c.envelope(ctx, GetByNameMethod, map[string]any{"name": name, "format": format})
}

// GetByIntent calls GetByIntent.
func (c *Client) GetByIntent(ctx context.Context, intent, format string) (service.Envelope, error) {
	return c.envelope(ctx, GetByIntentMethod, map[string]any{"intent": intent, "format": format})
}

// Help calls Help.
func (c *Client) Help(ctx context.Context) (service.Envelope, error) {
	return c.envelope(ctx, HelpMethod, nil)
}

// Ping calls Ping and returns the raw response fields.
func (c *Client) Ping(ctx context.Context) (map[string]any, error) {
	out, err := c.invoke(ctx, PingMethod, nil)
	if err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}

func (c *Client) envelope(ctx context.Context, method string, args map[string]any) (service.Envelope, error) {
	out, err := c.invoke(ctx, method, args)
	if err != nil {
		return service.Envelope{}, err
	}
	fields := out.GetFields()
	return service.Envelope{
		Text:    fields["text"].GetStringValue(),
		IsError: fields["isError"].GetBoolValue(),
	}, nil
}

func (c *Client) invoke(ctx context.Context, method string, args map[string]any) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(args)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, method, in, out); err != nil {
		return nil, err
	}
	return out, nil
}
