package impl

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"nearbasket/config"
	"nearbasket/internal/infra/gateway"
	"nearbasket/internal/infra/session"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSession(t *testing.T) *session.Session {
	t.Helper()

	return session.New(session.NewFileStore(filepath.Join(t.TempDir(), "session.json")))
}

// countingHandler wraps a handler and counts the requests that reach it, so
// tests can assert local validation failures never touch the wire.
type countingHandler struct {
	calls   atomic.Int64
	handler http.Handler
}

func (h *countingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.calls.Add(1)
	h.handler.ServeHTTP(w, r)
}

func newGatewayClient(t *testing.T, tokens gateway.TokenProvider, handler http.Handler) (*gateway.Client, *countingHandler, *httptest.Server) {
	t.Helper()

	counting := &countingHandler{handler: handler}
	server := httptest.NewServer(counting)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Gateway = &config.GatewayConfig{BaseURL: server.URL, Timeout: 5 * time.Second}

	return gateway.New(cfg, tokens, newDiscardLogger()), counting, server
}
