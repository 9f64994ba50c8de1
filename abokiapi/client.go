// Package abokiapi is the HTTP client for the remote Aboki B2B API. All
// business logic (exchange rates, order processing, verification decisions,
// credential issuance) lives behind that API; this package only issues
// requests, attaches bearer tokens, and classifies the outcomes.
package abokiapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	apperrors "github.com/Svector-anu/Aboki-Business/internal/errors"
)

const defaultTimeout = 30 * time.Second

// Client talks to the remote Aboki B2B API.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     zerolog.Logger
}

// Option modifies a Client instance.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (primarily for testing).
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New creates a Client for the given API base URL.
func New(baseURL string, options ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("[abokiapi.New] baseURL is required")
	}

	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultTimeout},
		log:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// do issues a request and decodes the standard {success, message, data}
// envelope into out. Outcomes are classified per the dashboard's error
// taxonomy: network failure, 401, other non-2xx, unsuccessful envelope.
func (c *Client) do(ctx context.Context, method, path, token string, body any, out any) error {
	resp, raw, err := c.roundTrip(ctx, method, path, token, body)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return apperrors.Wrapf(apperrors.ErrUnauthorized, "%s %s", method, path)
	}

	var env envelope
	if jsonErr := json.Unmarshal(raw, &env); jsonErr != nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return errors.Wrapf(jsonErr, "[abokiapi] %s %s: decoding response", method, path)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}
	if !env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return errors.Wrapf(err, "[abokiapi] %s %s: decoding data", method, path)
		}
	}
	return nil
}

// roundTrip sends the request and reads the full body. A transport-level
// failure maps to ErrNetwork so callers can degrade gracefully.
func (c *Client) roundTrip(ctx context.Context, method, path, token string, body any) (*http.Response, []byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "[abokiapi] %s %s: encoding request", method, path)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "[abokiapi] %s %s: building request", method, path)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Err(err).Str("method", method).Str("path", path).Msg("Remote API unreachable")
		return nil, nil, apperrors.Wrapf(apperrors.ErrNetwork, "%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, apperrors.Wrapf(apperrors.ErrNetwork, "%s %s: reading body: %v", method, path, err)
	}
	return resp, raw, nil
}
