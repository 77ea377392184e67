// Package client is the single point of outbound HTTP to the medreq API.
//
// Every call reads the bearer token from a TokenSource immediately before the
// request is sent, so a session cleared between two calls takes effect on the
// next one. Calls are never retried and responses are never cached.
package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kart-io/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	errno "github.com/kart-io/medreq/pkg/errors"
	"github.com/kart-io/medreq/pkg/id"
	"github.com/kart-io/medreq/pkg/infra/tracing"
	clientopts "github.com/kart-io/medreq/pkg/options/client"
	"github.com/kart-io/medreq/pkg/utils/httpclient"
	"github.com/kart-io/medreq/pkg/utils/json"
)

const (
	tracerName = "github.com/kart-io/medreq/pkg/client"

	// HeaderRequestID carries the per-call correlation id.
	HeaderRequestID = "X-Request-ID"
)

// TokenSource yields the current bearer token, "" when logged out.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(ctx context.Context) (string, error)

// Token implements TokenSource.
func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// Client talks to the medreq API.
type Client struct {
	baseURL        string
	userAgent      string
	timeout        time.Duration
	httpClient     *http.Client
	tokens         TokenSource
	ids            id.Generator
	onUnauthorized func(ctx context.Context)

	hc *httpclient.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTokenSource sets where the bearer token comes from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithTimeout sets the per-call timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithIDGenerator sets the X-Request-ID generator.
func WithIDGenerator(g id.Generator) Option {
	return func(c *Client) { c.ids = g }
}

// WithOnUnauthorized registers a hook invoked after any 401 answer. The error
// is still returned to the caller.
func WithOnUnauthorized(fn func(ctx context.Context)) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: "medreq",
		timeout:   30 * time.Second,
		ids:       id.NewULIDGenerator(),
	}
	for _, opt := range opts {
		opt(c)
	}

	hopts := []httpclient.Option{
		httpclient.WithRequestEditor(c.editHeaders),
		httpclient.WithRequestEditor(c.editAuth),
	}
	if c.httpClient != nil {
		hopts = append(hopts, httpclient.WithHTTPClient(c.httpClient))
	}
	c.hc = httpclient.NewClient(c.timeout, hopts...)
	return c
}

// NewFromOptions creates a client from command-line options.
func NewFromOptions(o *clientopts.Options, opts ...Option) *Client {
	base := []Option{WithUserAgent(o.UserAgent), WithTimeout(o.Timeout)}
	return New(o.BaseURL, append(base, opts...)...)
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) editHeaders(_ context.Context, req *http.Request) error {
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if req.Header.Get(HeaderRequestID) == "" {
		req.Header.Set(HeaderRequestID, c.ids.Generate())
	}
	return nil
}

func (c *Client) editAuth(ctx context.Context, req *http.Request) error {
	if c.tokens == nil {
		return nil
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}

// Get issues a GET and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with a JSON body and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT with a JSON body and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

// Do performs exactly one round trip. Non-2xx answers yield *ResponseError.
// body and out may be nil.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out interface{}) (err error) {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	ctx, span := tracing.StartSpanWithKind(ctx, tracerName, method+" "+path, trace.SpanKindClient,
		attribute.String(tracing.HTTPMethod, method),
		attribute.String(tracing.HTTPURL, target),
	)
	defer func() {
		tracing.RecordError(ctx, err)
		span.End()
	}()

	var reader io.Reader
	if body != nil {
		b, merr := json.Marshal(body)
		if merr != nil {
			return errno.ErrBadRequest.WithCause(merr)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return errno.ErrBadRequest.WithCause(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := c.ids.Generate()
	req.Header.Set(HeaderRequestID, requestID)
	span.SetAttributes(attribute.String(tracing.HTTPRequestID, requestID))

	start := time.Now()
	err = c.hc.DoJSON(req, out)

	status := http.StatusOK
	var (
		se *httpclient.StatusError
		de *httpclient.DecodeError
	)
	switch {
	case err == nil:
	case errors.As(err, &se):
		status = se.StatusCode
		err = newResponseError(se.StatusCode, se.Body)
	case errors.As(err, &de):
		err = errno.ErrDecode.WithCause(de.Err)
	case errors.Is(err, errno.ErrSessionStore), ctx.Err() != nil:
		status = 0
	default:
		status = 0
		err = errno.ErrTransport.WithCause(err)
	}
	span.SetAttributes(attribute.Int(tracing.HTTPStatusCode, status))

	logger.Debugw("api call",
		"method", method,
		"path", path,
		"status", status,
		"request_id", requestID,
		"latency", time.Since(start).String(),
	)

	if status == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized(ctx)
	}
	return err
}
