package metrics

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the default Prometheus registry on /metrics.
type Server struct {
	server *http.Server
	closed bool
	mux    sync.Mutex
}

// Shutdown stops the server. A server shut down before ListenAndServe is
// called never starts.
func (m *Server) Shutdown(ctx context.Context) error {
	m.mux.Lock()
	defer m.mux.Unlock()

	m.closed = true
	if m.server == nil {
		return nil
	}

	return m.server.Shutdown(ctx)
}

// ListenAndServe blocks until the server fails or is shut down. A shutdown
// is not reported as an error.
func (m *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	m.mux.Lock()
	if m.closed {
		m.mux.Unlock()
		return nil
	}
	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	m.server = srv
	m.mux.Unlock()

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
