package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"
)

// Serve runs the front end on addr until ctx is cancelled, then shuts the
// server down gracefully.
func (webapp *WebApp) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return webapp.serve(ctx, ln)
}

func (webapp *WebApp) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           webapp.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	webapp.Logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	webapp.Logger.Info("shutdown complete")
	return nil
}
