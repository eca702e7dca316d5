package gateway

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nearbasket/config"
	domainerrors "nearbasket/internal/domain/errors"
	"nearbasket/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens string

func (s staticTokens) AccessToken() string { return string(s) }

func newTestClient(t *testing.T, handler http.Handler, token string) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Gateway = &config.GatewayConfig{BaseURL: server.URL, Timeout: 5 * time.Second}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return New(cfg, staticTokens(token), logger), server
}

func TestClient_AttachesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get(HeaderXRequestID)
		w.Write([]byte(`{"ok":true}`))
	}), "token-123")

	var out map[string]bool
	require.NoError(t, client.Get(context.Background(), "/users/me/", &out))
	assert.Equal(t, "Bearer token-123", gotAuth)
	assert.NotEmpty(t, gotRequestID)
	assert.True(t, out["ok"])
}

func TestClient_PostPublicSkipsBearer(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}), "token-123")

	require.NoError(t, client.PostPublic(context.Background(), "/users/send-otp/", map[string]string{"mobile_number": "5550001"}, nil))
	assert.Empty(t, gotAuth)
}

func TestClient_MapsUnauthorizedToAuthRequired(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"code":401,"message":"token expired"}`))
	}), "stale")

	err := client.Get(context.Background(), "/users/me/", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAuthRequired))
}

func TestClient_MapsServerErrorWithMessageAndBody(t *testing.T) {
	body := `{"success":false,"code":422,"message":"stock too low","error":{"code":"INSUFFICIENT_STOCK","message":"stock too low"}}`
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(body))
	}), "token")

	err := client.Post(context.Background(), "/orders/shops/1/orders/", map[string]any{}, nil)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.HTTPCode())
	assert.Equal(t, "stock too low", appErr.Message())
	assert.Equal(t, body, appErr.Details())
}

func TestClient_MapsInvalidTransitionCode(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"success":false,"code":409,"message":"order already delivered","error":{"code":"INVALID_TRANSITION","message":"order already delivered"}}`))
	}), "token")

	err := client.Put(context.Background(), "/orders/42/status/", map[string]string{"status": "REJECTED"}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidTransition))
}

func TestClient_MalformedErrorBodyDegradesToStatusText(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>upstream broke</html>"))
	}), "token")

	err := client.Get(context.Background(), "/shops/my-shop/", nil)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusBadGateway, appErr.HTTPCode())
	assert.Equal(t, http.StatusText(http.StatusBadGateway), appErr.Message())
}

func TestClient_TransportFailureIsNetworkUnreachable(t *testing.T) {
	client, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), "token")
	server.Close()

	err := client.Get(context.Background(), "/users/me/", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNetworkUnreachable))

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 0, appErr.HTTPCode())
}

func TestClient_ContextCancellationIsNotNetworkError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}), "token")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := client.Get(ctx, "/users/me/", nil)
	require.Error(t, err)
	assert.False(t, errors.Is(err, domainerrors.ErrNetworkUnreachable))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
