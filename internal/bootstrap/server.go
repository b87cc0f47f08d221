package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/airline/config"
	"google.golang.org/grpc"
)

const shutdownTimeout = 10 * time.Second

type Servers struct {
	grpcServer *grpc.Server
	httpServer *http.Server
	log        *slog.Logger
}

func NewServers(cfg *config.Config, handler http.Handler, grpcServer *grpc.Server, log *slog.Logger) *Servers {
	return &Servers{
		grpcServer: grpcServer,
		httpServer: &http.Server{
			Addr:              cfg.HTTP.Address,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		log: log,
	}
}

// Run starts the gRPC and HTTP servers and blocks until ctx is canceled or a
// server fails. Both are stopped gracefully on the way out.
func (s *Servers) Run(ctx context.Context, grpcAddress string) error {
	lis, err := net.Listen("tcp", grpcAddress)
	if err != nil {
		return fmt.Errorf("listen gRPC %s: %w", grpcAddress, err)
	}
	return s.serve(ctx, lis)
}

func (s *Servers) serve(ctx context.Context, grpcListener net.Listener) error {
	errCh := make(chan error, 2)

	go func() {
		s.log.Info("grpc server started", "address", grpcListener.Addr().String())
		errCh <- s.grpcServer.Serve(grpcListener)
	}()

	go func() {
		s.log.Info("http server started", "address", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case runErr = <-errCh:
		s.log.Error("server failed", "error", runErr)
	case <-ctx.Done():
		s.log.Info("shutting down servers")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("shutdown http server: %w", err))
	}
	select {
	case <-stopped:
	case <-shutdownCtx.Done():
		s.grpcServer.Stop()
	}
	return runErr
}
