package ipc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Client talks to a daemon's control service.
type Client struct {
	conn *grpc.ClientConn
}

// Dial connects to the daemon socket. The connection is established lazily,
// so a missing daemon surfaces on the first call as codes.Unavailable.
func Dial() (*Client, error) {
	return newClient("unix:" + SocketPath())
}

func newClient(target string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(codecName)),
	}, opts...)
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", target, err)
	}
	return &Client{conn: conn}, nil
}

// Close releases the connection.
func (c *Client) Close() error { return c.conn.Close() }

// Status fetches the daemon's snapshot.
func (c *Client) Status(ctx context.Context) (*StatusReply, error) {
	out := new(StatusReply)
	if err := c.conn.Invoke(ctx, "/"+serviceName+"/Status", &StatusRequest{}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Clear empties the daemon's history.
func (c *Client) Clear(ctx context.Context) error {
	return c.conn.Invoke(ctx, "/"+serviceName+"/Clear", &ClearRequest{}, new(ClearReply))
}
