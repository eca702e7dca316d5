// Package gateway implements the REST client for the remote NearBasket API
// gateway. Every call is a single attempt: no retry, no backoff. Retry policy
// belongs to the caller, and placing an order has no idempotency key, so a
// timed-out placement must not be resubmitted blindly.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"nearbasket/config"
	domainerrors "nearbasket/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// HeaderXRequestID is the HTTP header name for request ID.
const HeaderXRequestID = "X-Request-Id"

// TokenProvider supplies the current bearer token, or "" when signed out.
type TokenProvider interface {
	AccessToken() string
}

// Client is the HTTP client for the remote gateway. It attaches the bearer
// token (unless the call is explicitly unauthenticated), encodes and decodes
// JSON, and maps failures to the AppError taxonomy.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenProvider
	logger  *slog.Logger
}

// New creates a gateway client from config. tokens may be nil for a client
// that only performs unauthenticated calls.
func New(cfg *config.Config, tokens TokenProvider, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.Gateway.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Gateway.Timeout},
		tokens:  tokens,
		logger:  logger,
	}
}

// Get performs an authenticated GET and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, true)
}

// Post performs an authenticated POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out, true)
}

// PostPublic performs an unauthenticated POST. Needed for the pre-auth calls
// (send-otp, verify-otp, register) where no token exists yet.
func (c *Client) PostPublic(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out, false)
}

// Put performs an authenticated PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPut, path, in, out, true)
}

// Delete performs an authenticated DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out, true)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, authenticated bool) error {
	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "encode request body")
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Wrap(err, "build request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderXRequestID, uuid.New().String())
	if authenticated && c.tokens != nil {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Context cancellation is the caller's doing, not a connectivity problem.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return errors.WithStack(ctxErr)
		}

		c.logger.Warn("gateway unreachable",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err),
		)

		return errors.WithStack(domainerrors.ErrNetworkUnreachable)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WithStack(domainerrors.ErrNetworkUnreachable)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return mapError(resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrap(err, "decode response body")
	}

	return nil
}

// mapError turns a non-success gateway response into a typed error. The body
// is parsed best-effort: a malformed body degrades to an empty envelope and
// the status text becomes the message.
func mapError(status int, raw []byte) error {
	var envelope domainerrors.Response
	_ = json.Unmarshal(raw, &envelope)

	message := envelope.Message
	code := ""
	if envelope.Error != nil {
		code = envelope.Error.Code
		if message == "" {
			message = envelope.Error.Message
		}
	}

	switch {
	case code == "INVALID_TRANSITION":
		return errors.WithStack(domainerrors.ErrInvalidTransition.WithDetails(message))
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return errors.WithStack(domainerrors.ErrAuthRequired.WithDetails(message))
	default:
		return errors.WithStack(domainerrors.NewApplicationError(status, message, string(raw)))
	}
}
