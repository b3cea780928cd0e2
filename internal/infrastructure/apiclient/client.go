// Package apiclient is the REST client for the pet-care backend. Every request
// goes through Client.do, which attaches the "Authorization: Token <token>"
// header, decodes backend error bodies into *domain.Error and reports 401
// answers on session-scoped calls to the unauthorized hook.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/petcare/petcare-client/internal/core/domain"
	"github.com/petcare/petcare-client/internal/pkg/metrics"
)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 64 << 10
	authScheme     = "Token"
)

// TokenSource supplies the token of the current session.
type TokenSource interface {
	Token() string
}

// Config captures the settings of the backend client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the default client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client talks to the backend REST API.
type Client struct {
	base *url.URL
	http *http.Client
	log  zerolog.Logger

	mu             sync.RWMutex
	tokens         TokenSource
	onUnauthorized func(context.Context)
}

// New returns a Client rooted at cfg.BaseURL.
func New(cfg Config, log zerolog.Logger) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return nil, errors.New("apiclient: base URL is required")
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("apiclient: parse base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("apiclient: unsupported scheme %q", base.Scheme)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		base: base,
		http: hc,
		log:  log.With().Str("component", "apiclient").Logger(),
	}, nil
}

// SetTokenSource sets where session-scoped calls read their token from.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = ts
}

// OnUnauthorized registers fn to run when the backend rejects the session
// token on a session-scoped call.
func (c *Client) OnUnauthorized(fn func(context.Context)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

// Ping checks that the backend answers at all; any HTTP response counts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.base.String(), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()
	return nil
}

// request describes one backend call.
type request struct {
	method string
	// endpoint is the path template used as the metrics label.
	endpoint string
	path     string
	body     any
	// token is sent as is when set. Otherwise session-scoped calls read the
	// token source.
	token   string
	session bool
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	u := c.base.ResolveReference(&url.URL{Path: r.path})

	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return domain.NewNetworkError(fmt.Errorf("encode %s body: %w", r.endpoint, err))
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), body)
	if err != nil {
		return domain.NewNetworkError(fmt.Errorf("build %s request: %w", r.endpoint, err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token := r.token
	if token == "" && r.session {
		token = c.sessionToken()
	}
	if token != "" {
		req.Header.Set("Authorization", authScheme+" "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.BackendRequestDuration.WithLabelValues(r.method, r.endpoint, "error").Observe(time.Since(start).Seconds())
		c.log.Warn().Err(err).Str("method", r.method).Str("endpoint", r.endpoint).Msg("backend request failed")
		return domain.NewNetworkError(fmt.Errorf("%s %s: %w", r.method, r.endpoint, err))
	}
	defer resp.Body.Close()
	metrics.BackendRequestDuration.WithLabelValues(r.method, r.endpoint, statusClass(resp.StatusCode)).Observe(time.Since(start).Seconds())

	if resp.StatusCode >= http.StatusBadRequest {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		de := decodeError(resp.StatusCode, raw)
		if resp.StatusCode == http.StatusUnauthorized && r.session && token != "" {
			de.Err = domain.ErrSessionExpired
			c.unauthorized(ctx)
		}
		c.log.Debug().
			Str("method", r.method).
			Str("endpoint", r.endpoint).
			Int("status", resp.StatusCode).
			Str("message", de.Message).
			Msg("backend rejected request")
		return de
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.NewNetworkError(fmt.Errorf("decode %s response: %w", r.endpoint, err))
	}
	return nil
}

func (c *Client) sessionToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

func (c *Client) unauthorized(ctx context.Context) {
	c.mu.RLock()
	fn := c.onUnauthorized
	c.mu.RUnlock()
	if fn != nil {
		fn(ctx)
	}
}

func statusClass(code int) string {
	return strconv.Itoa(code/100) + "xx"
}
