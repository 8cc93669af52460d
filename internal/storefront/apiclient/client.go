package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"coilworks/internal/config"
	"coilworks/internal/dto"
	apperrors "coilworks/internal/errors"
	"coilworks/internal/infrastructure/logger"
)

const errorBodyReadLimit int64 = 4096

// Client calls the coilworks API on behalf of the storefront. Calls that need
// an identity take its bearer token explicitly.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

func New(cfg config.ClientConfig, logger *zap.Logger, opts ...Option) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.APIBaseURL, "/"),
		logger:     logger,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// do sends body as JSON and decodes the envelope's data into dest. Any
// network failure, non-2xx status or unsuccessful envelope comes back as a
// TransportError.
func (c *Client) do(ctx context.Context, op, method, path, token string, body, dest interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if traceID := logger.TraceID(ctx); traceID != "" {
		req.Header.Set(logger.TraceHeader, traceID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewTransportError(op, 0, "", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		message := strings.TrimSpace(string(raw))
		var env dto.RawEnvelope
		if json.Unmarshal(raw, &env) == nil && env.Error != "" {
			message = env.Error
		}
		c.logger.Debug("api call failed",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
			zap.String("message", message),
		)
		return apperrors.NewTransportError(op, resp.StatusCode, message, nil)
	}

	var env dto.RawEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return apperrors.NewTransportError(op, resp.StatusCode, "malformed response", err)
	}
	if !env.Success {
		return apperrors.NewTransportError(op, resp.StatusCode, env.Error, nil)
	}
	if dest == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, dest); err != nil {
		return apperrors.NewTransportError(op, resp.StatusCode, "malformed data", err)
	}
	return nil
}

func escape(segment string) string {
	return url.PathEscape(segment)
}
