// Package httpclient provides a thin wrapper around http.Client that applies
// request editors and W3C trace propagation to every outbound request.
//
// Requests are sent exactly once. Retrying is left to the caller.
package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/kart-io/medreq/pkg/utils/json"
)

// RequestEditorFn mutates an outbound request right before it is sent.
// Returning an error aborts the request.
type RequestEditorFn func(ctx context.Context, req *http.Request) error

// Client is a wrapper around http.Client with additional functionality.
type Client struct {
	httpClient *http.Client
	editors    []RequestEditorFn
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithRequestEditor appends an editor applied to every request in order.
func WithRequestEditor(fn RequestEditorFn) Option {
	return func(c *Client) {
		if fn != nil {
			c.editors = append(c.editors, fn)
		}
	}
}

// NewClient creates a new HTTP client wrapper.
func NewClient(timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StatusError is returned by DoJSON for non-2xx responses.
type StatusError struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status code %d: %s", e.StatusCode, string(e.Body))
}

// DecodeError is returned by DoJSON when a 2xx body cannot be decoded.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "failed to decode response: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Do sends the request once after running the editors and injecting trace headers.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	c.injectTraceContext(req)

	for _, edit := range c.editors {
		if err := edit(req.Context(), req); err != nil {
			return nil, err
		}
	}

	return c.httpClient.Do(req)
}

// DoJSON sends the request, decodes a 2xx body into v and always closes the body.
// Non-2xx responses yield *StatusError with the raw body.
func (c *Client) DoJSON(req *http.Request, v interface{}) error {
	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			StatusCode: resp.StatusCode,
			Header:     resp.Header.Clone(),
			Body:       body,
		}
	}

	if v != nil && len(body) > 0 {
		if err := json.Unmarshal(body, v); err != nil {
			return &DecodeError{Err: err}
		}
	}
	return nil
}

// injectTraceContext 将当前 Span 的 W3C Trace Context 注入到请求头。
// 没有活跃 Span 或未设置传播器时不做任何事。
func (c *Client) injectTraceContext(req *http.Request) {
	if req == nil || req.Context() == nil {
		return
	}

	propagator := otel.GetTextMapPropagator()
	if propagator == nil {
		return
	}

	propagator.Inject(req.Context(), propagation.HeaderCarrier(req.Header))
}
