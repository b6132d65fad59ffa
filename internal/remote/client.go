// Package remote implements the client for the Bookmarket resource API.
//
// The API is a conventional resource interface over an authenticated
// transport: success envelopes are {"data": ...}, error envelopes are
// {"error": {"message": ...}}. The client never interprets HTTP status
// codes beyond success/failure; the error message from the envelope is
// surfaced verbatim to the caller.
package remote

import (
	"bytes"
	"context"
	"encoding/json/jsontext"
	"encoding/json/v2"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	domainerrors "github.com/bookmarketapp/bookmarket-client/internal/errors"
	"github.com/bookmarketapp/bookmarket-client/internal/ratelimit"
)

const defaultTimeout = 30 * time.Second

// Config holds client construction parameters.
type Config struct {
	BaseURL string
	Timeout time.Duration
	RPS     float64 // outbound requests per second per host
	Burst   int
}

// Client is a rate-limited resource API client. The cookie jar carries the
// session credentials established by the surrounding application, so every
// request is sent with credentials attached.
type Client struct {
	base    *url.URL
	http    *http.Client
	limiter *ratelimit.KeyedLimiter
	logger  *slog.Logger
}

// New creates a new resource API client.
func New(cfg Config, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rps := cfg.RPS
	if rps <= 0 {
		rps = 10
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 20
	}

	return &Client{
		base: base,
		http: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		limiter: ratelimit.New(rps, burst),
		logger:  logger,
	}, nil
}

// HTTPClient exposes the underlying client so the session layer can seed
// authentication cookies into the shared jar.
func (c *Client) HTTPClient() *http.Client {
	return c.http
}

// do executes a JSON request and returns the raw data payload from the
// success envelope. failCode decides how a failure is classified: reads
// produce fetch errors, everything else mutation errors.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, failCode domainerrors.Code) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "encode request body")
		}
		reader = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.execute(req, failCode)
}

// upload executes a multipart request with a single "file" part.
func (c *Client) upload(ctx context.Context, path, filename string, file io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "create multipart body")
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "read upload file")
	}
	if err := mw.Close(); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "finish multipart body")
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.execute(req, domainerrors.CodeMutation)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := *c.base
	u.Path += path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "create request")
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

func (c *Client) execute(req *http.Request, failCode domainerrors.Code) ([]byte, error) {
	if err := c.limiter.Wait(req.Context(), req.URL.Host); err != nil {
		return nil, domainerrors.Wrap(err, failCode, "rate limit wait")
	}

	c.logger.Debug("api request",
		"method", req.Method,
		"path", req.URL.Path,
		"request_id", req.Header.Get("X-Request-ID"),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, domainerrors.Wrapf(err, failCode, "%s %s failed", req.Method, req.URL.Path)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domainerrors.Wrap(err, failCode, "read response")
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if len(raw) == 0 {
			return nil, nil
		}
		var env struct {
			Data jsontext.Value `json:"data"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, domainerrors.Wrap(err, failCode, "decode response envelope")
		}
		return env.Data, nil
	}

	return nil, &domainerrors.Error{Code: failCode, Message: errorMessage(raw, resp.StatusCode)}
}

// errorMessage extracts the message from an error envelope. When the body
// is not the expected envelope, a generic status-based message is used so
// something human-readable always reaches the user.
func errorMessage(raw []byte, status int) string {
	var env struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &env); err == nil && env.Error.Message != "" {
		return env.Error.Message
	}
	return fmt.Sprintf("request failed with status %d", status)
}

// decode unmarshals a data payload into T.
func decode[T any](data []byte, failCode domainerrors.Code) (T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return v, domainerrors.Wrap(err, failCode, "decode response data")
	}
	return v, nil
}
