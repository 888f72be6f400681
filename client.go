package vestaboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultBaseURL is the Vestaboard platform API host.
	DefaultBaseURL = "https://platform.vestaboard.com"

	subscriptionsEndpoint = "/subscriptions"
	headerAPIKey          = "X-Vestaboard-Api-Key"
	headerAPISecret       = "X-Vestaboard-Api-Secret"
	userAgentProduct      = "vestaboard-go-sdk"
	userAgentVersion      = "1.0"
	tracerName            = "github.com/1set/vestaboard"
	defaultHTTPTimeout    = 30 * time.Second
	maxResponseBodySize   = 4 << 20 // 4 MiB guard
)

// Client posts messages to a board on behalf of an installable. All fields are
// fixed by NewClient, so one Client may be shared by concurrent callers.
type Client struct {
	baseURL      string
	apiKey       string
	apiSecret    string
	subscription string
	http         *http.Client
	limiter      RateLimiter
	userAgent    string
	logger       *slog.Logger
	metrics      *Metrics
	tracer       trace.Tracer
}

// ClientOption mutates the client during construction.
type ClientOption func(*Client)

// NewClient builds a client for the installable's API key pair. Create keys at
// https://web.vestaboard.com.
func NewClient(apiKey, apiSecret string, opts ...ClientOption) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	apiSecret = strings.TrimSpace(apiSecret)
	if apiKey == "" || apiSecret == "" {
		return nil, ErrCredentialsMissing
	}
	c := &Client{
		baseURL:   DefaultBaseURL,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		userAgent: buildDefaultUserAgent(),
		http:      newDefaultHTTPClient(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.http == nil {
		c.http = newDefaultHTTPClient()
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	c.tracer = otel.Tracer(tracerName)
	c.baseURL = sanitizeBaseURL(c.baseURL)
	return c, nil
}

// WithBaseURL overrides the API host (useful for staging/tests). No trailing slash required.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient installs a custom http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithRateLimiter paces message posts through l. Subscription lookups are
// never held back. No limiter is installed by default.
func WithRateLimiter(l RateLimiter) ClientOption {
	return func(c *Client) { c.limiter = l }
}

// WithUserAgent sets a custom User-Agent string.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) { c.userAgent = ua }
}

// WithSubscription fixes the subscription messages are posted to. Without it
// every send first lists the installable's subscriptions and uses the first one.
func WithSubscription(subscriptionID string) ClientOption {
	return func(c *Client) { c.subscription = strings.TrimSpace(subscriptionID) }
}

// WithLogger sets the logger for request diagnostics. API credentials are never logged.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// WithMetrics records request counts and latency into m.
func WithMetrics(m *Metrics) ClientOption {
	return func(c *Client) { c.metrics = m }
}

// Subscription returns the fixed subscription ID, or "" when it is discovered per call.
func (c *Client) Subscription() string {
	return c.subscription
}

func newDefaultHTTPClient() *http.Client {
	return &http.Client{
		Timeout:   defaultHTTPTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

func sanitizeBaseURL(baseURL string) string {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(baseURL, "/")
}

// doJSON executes one authenticated request and decodes a 2xx JSON body into out.
// Returned errors are raw causes; callers wrap them in a TransportError.
func (c *Client) doJSON(ctx context.Context, method, endpoint string, payload, out interface{}) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	url := c.baseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set(headerAPIKey, c.apiKey)
	req.Header.Set(headerAPISecret, c.apiSecret)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if ua := strings.TrimSpace(c.userAgent); ua != "" {
		req.Header.Set("User-Agent", ua)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	limited := io.LimitReader(resp.Body, maxResponseBodySize)
	raw, err := io.ReadAll(limited)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	c.logger.DebugContext(ctx, "vestaboard response",
		slog.String("method", method),
		slog.String("endpoint", endpoint),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(started)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return buildAPIError(resp.StatusCode, raw)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func buildDefaultUserAgent() string {
	goVer := strings.TrimPrefix(runtime.Version(), "go")
	if goVer == "" {
		goVer = runtime.Version()
	}
	return fmt.Sprintf("%s/%s (+https://github.com/1set/vestaboard; Go%s; %s/%s)",
		userAgentProduct, userAgentVersion, goVer, runtime.GOOS, runtime.GOARCH)
}
