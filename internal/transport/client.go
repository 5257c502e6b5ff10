// Package transport is the HTTP layer shared by remote catalog clients.
// It wraps a resty client with a politeness rate limiter, per-request IDs
// and structured logging, and maps failures onto pkg/errors types.
package transport

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/agentstation/bookmap/pkg/constants"
	"github.com/agentstation/bookmap/pkg/errors"
	"github.com/agentstation/bookmap/pkg/logging"
)

// Client performs rate-limited GET requests against one base URL.
// It never retries.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
	logger  *zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds each HTTP round trip.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// WithRateLimit sets the sustained requests per second and burst.
// A non-positive limit disables limiting.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithHTTPClient uses hc for the underlying transport, e.g. an httptest client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http.SetTransport(hc.Transport)
		}
	}
}

// WithLogger sets the logger used for request logs.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.http.SetHeader("User-Agent", ua)
	}
}

// New creates a client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	hc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(constants.DefaultHTTPTimeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", constants.UserAgent).
		SetRetryCount(0)

	c := &Client{
		http:    hc,
		limiter: rate.NewLimiter(rate.Limit(constants.DefaultRateLimit), constants.DefaultRateBurst),
		logger:  logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http.SetLogger(restyLogger{c.logger})
	return c
}

// BaseURL returns the base URL requests are resolved against.
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

// Response is a completed HTTP exchange.
type Response struct {
	RequestID  string
	URL        string
	StatusCode int
	Body       []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Get sends GET path?params. Only transport failures are returned as
// errors here; status handling is left to the caller (see Decode).
func (c *Client) Get(ctx context.Context, path string, params url.Values) (*Response, error) {
	requestID := uuid.NewString()
	ctx = logging.WithLogger(ctx, c.logger)
	ctx = logging.WithRequestID(ctx, requestID)
	log := logging.Ctx(ctx)

	target := c.http.BaseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.WrapNetwork(http.MethodGet, target, err)
	}

	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(constants.RequestIDHeader, requestID).
		SetQueryParamsFromValues(params).
		Get(path)
	elapsed := time.Since(start)

	if err != nil {
		log.Debug().Err(err).Str("url", target).Dur("duration", elapsed).Msg("Request failed")
		return nil, errors.WrapNetwork(http.MethodGet, target, err)
	}

	log.Debug().
		Str("url", target).
		Int("status", resp.StatusCode()).
		Dur("duration", elapsed).
		Msg("Request completed")

	return &Response{
		RequestID:  requestID,
		URL:        target,
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
	}, nil
}

// Decode maps a non-2xx status to a NetworkError and otherwise decodes the
// JSON body into target, reporting malformed bodies as ParseError.
func Decode(resp *Response, target any) error {
	if !resp.OK() {
		return errors.NewNetworkError(http.MethodGet, resp.URL, resp.StatusCode, statusMessage(resp))
	}
	if err := decodeJSON(resp.Body, target); err != nil {
		return errors.WrapParse("json", resp.URL, err)
	}
	return nil
}

func statusMessage(resp *Response) string {
	msg := http.StatusText(resp.StatusCode)
	body := strings.TrimSpace(string(resp.Body))
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	if body != "" {
		msg = fmt.Sprintf("%s: %s", msg, body)
	}
	return msg
}

// restyLogger routes resty's internal warnings into zerolog.
type restyLogger struct {
	logger *zerolog.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.logger.Error().Msgf(strings.TrimSpace(format), v...)
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.logger.Warn().Msgf(strings.TrimSpace(format), v...)
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.logger.Debug().Msgf(strings.TrimSpace(format), v...)
}
