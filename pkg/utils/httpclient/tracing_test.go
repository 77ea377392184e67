package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// version-traceid-spanid-flags
var traceparentRE = regexp.MustCompile(`^00-[0-9a-f]{32}-[0-9a-f]{16}-0[01]$`)

func withTracer(t *testing.T) *sdktrace.TracerProvider {
	t.Helper()

	prevTP, prevProp := otel.GetTracerProvider(), otel.GetTextMapPropagator()
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
	})
	return tp
}

func TestInjectTraceContext(t *testing.T) {
	tp := withTracer(t)
	c := NewClient(time.Second)

	t.Run("active span", func(t *testing.T) {
		ctx, span := tp.Tracer("medreq").Start(context.Background(), "list-medicines")
		defer span.End()

		req := httptest.NewRequest(http.MethodGet, "http://medreq.test/api/medicines", nil).WithContext(ctx)
		c.injectTraceContext(req)

		hdr := req.Header.Get("traceparent")
		assert.Regexp(t, traceparentRE, hdr)
		assert.Contains(t, hdr, span.SpanContext().TraceID().String())
	})

	t.Run("no span", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://medreq.test/api/medicines", nil)
		c.injectTraceContext(req)
		assert.Empty(t, req.Header.Get("traceparent"))
	})

	t.Run("nil request", func(t *testing.T) {
		assert.NotPanics(t, func() { c.injectTraceContext(nil) })
	})
}

func TestDo_PropagatesTraceparent(t *testing.T) {
	tp := withTracer(t)

	got := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got <- r.Header.Get("traceparent")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	ctx, span := tp.Tracer("medreq").Start(context.Background(), "create-request")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, srv.URL+"/api/requests", nil)
	require.NoError(t, err)

	resp, err := NewClient(5 * time.Second).Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Regexp(t, traceparentRE, <-got)
}
