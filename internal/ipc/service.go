package ipc

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go.klb.dev/clipstash/internal/capture"
)

const serviceName = "clipstash.v1.Control"

// StatusRequest asks the daemon for a snapshot.
type StatusRequest struct{}

// StatusReply is the daemon's snapshot.
type StatusReply struct {
	Version     string    `json:"version"`
	Backend     string    `json:"backend"`
	HistoryPath string    `json:"history_path"`
	Entries     int       `json:"entries"`
	MaxItems    int       `json:"max_items"`
	Newest      time.Time `json:"newest,omitzero"`
	StartedAt   time.Time `json:"started_at"`
	LastCapture time.Time `json:"last_capture,omitzero"`
	Captured    int       `json:"captured"`
	ReadErrors  int       `json:"read_errors"`
	SaveErrors  int       `json:"save_errors"`
	Reloads     int       `json:"reloads"`
}

// ClearRequest asks the daemon to empty the history.
type ClearRequest struct{}

// ClearReply acknowledges a clear.
type ClearReply struct{}

// Controller is what the service needs from the capture loop.
type Controller interface {
	Status(ctx context.Context) (capture.Status, error)
	Clear(ctx context.Context) error
}

// ControlServer is the server side of the control service.
type ControlServer interface {
	Status(context.Context, *StatusRequest) (*StatusReply, error)
	Clear(context.Context, *ClearRequest) (*ClearReply, error)
}

// Service implements ControlServer on top of a Controller.
type Service struct {
	ctrl    Controller
	version string
}

// NewService returns a Service forwarding to ctrl.
func NewService(ctrl Controller, version string) *Service {
	return &Service{ctrl: ctrl, version: version}
}

// Status implements ControlServer.Status.
func (s *Service) Status(ctx context.Context, _ *StatusRequest) (*StatusReply, error) {
	st, err := s.ctrl.Status(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &StatusReply{
		Version:     s.version,
		Backend:     st.Backend,
		HistoryPath: st.HistoryPath,
		Entries:     st.Entries,
		MaxItems:    st.MaxItems,
		Newest:      st.Newest,
		StartedAt:   st.StartedAt,
		LastCapture: st.LastCapture,
		Captured:    st.Captured,
		ReadErrors:  st.ReadErrors,
		SaveErrors:  st.SaveErrors,
		Reloads:     st.Reloads,
	}, nil
}

// Clear implements ControlServer.Clear.
func (s *Service) Clear(ctx context.Context, _ *ClearRequest) (*ClearReply, error) {
	if err := s.ctrl.Clear(ctx); err != nil {
		return nil, toStatus(err)
	}
	slog.Info("history cleared via IPC")
	return &ClearReply{}, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// RegisterControlServer registers srv on s.
func RegisterControlServer(s grpc.ServiceRegistrar, srv ControlServer) {
	s.RegisterService(&controlServiceDesc, srv)
}

var controlServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*ControlServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Status", Handler: statusHandler},
		{MethodName: "Clear", Handler: clearHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "clipstash/v1/control",
}

func statusHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(StatusRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ControlServer).Status(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Status"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ControlServer).Status(ctx, req.(*StatusRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func clearHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ClearRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ControlServer).Clear(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Clear"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ControlServer).Clear(ctx, req.(*ClearRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// Serve runs the control service on lis until ctx is cancelled, then stops
// gracefully. It returns nil after a cancellation.
func Serve(ctx context.Context, lis net.Listener, srv ControlServer) error {
	gs := grpc.NewServer()
	RegisterControlServer(gs, srv)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		gs.GracefulStop()
	}()

	err := gs.Serve(lis)
	cancelled := ctx.Err() != nil
	cancel()
	<-stopped
	if cancelled {
		return nil
	}
	return err
}
