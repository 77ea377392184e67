// Package tracing installs the OpenTelemetry tracer provider and offers the
// span helpers used by the API client and the server middleware.
package tracing

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc/credentials/insecure"

	options "github.com/kart-io/medreq/pkg/options/tracing"
)

// Provider owns the sdk tracer provider for the lifetime of a command or server.
type Provider struct {
	tp      *sdktrace.TracerProvider
	enabled bool
}

// ProviderOption tweaks NewProvider.
type ProviderOption func(*providerConfig)

type providerConfig struct {
	stdout   io.Writer
	exporter sdktrace.SpanExporter
}

// WithStdoutWriter redirects the stdout exporter, which writes to stderr by
// default so spans never interleave with tables.
func WithStdoutWriter(w io.Writer) ProviderOption {
	return func(c *providerConfig) { c.stdout = w }
}

// WithExporter replaces the configured exporter and exports synchronously.
func WithExporter(exp sdktrace.SpanExporter) ProviderOption {
	return func(c *providerConfig) { c.exporter = exp }
}

// NewProvider validates opts and, when tracing is enabled, installs the
// provider and the W3C trace-context plus baggage propagator as otel globals.
// A disabled provider records nothing and leaves the globals alone.
func NewProvider(ctx context.Context, opts *options.Options, popts ...ProviderOption) (*Provider, error) {
	if opts == nil {
		opts = options.NewOptions()
	}
	if err := opts.Complete(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if !opts.Enabled {
		return &Provider{tp: sdktrace.NewTracerProvider()}, nil
	}

	cfg := providerConfig{stdout: os.Stderr}
	for _, o := range popts {
		o(&cfg)
	}

	res, err := newResource(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("tracing: resource: %w", err)
	}
	processor, err := newProcessor(ctx, opts, cfg)
	if err != nil {
		return nil, fmt.Errorf("tracing: exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(newSampler(opts)),
		sdktrace.WithSpanProcessor(processor),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return &Provider{tp: tp, enabled: true}, nil
}

// Tracer returns a named tracer of this provider.
func (p *Provider) Tracer(name string, opts ...trace.TracerOption) trace.Tracer {
	return p.tp.Tracer(name, opts...)
}

// Enabled reports whether spans leave the process.
func (p *Provider) Enabled() bool { return p.enabled }

// Shutdown flushes buffered spans.
func (p *Provider) Shutdown(ctx context.Context) error { return p.tp.Shutdown(ctx) }

func newResource(ctx context.Context, opts *options.Options) (*resource.Resource, error) {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(opts.ServiceName),
		semconv.ServiceVersion(opts.ServiceVersion),
	}
	if opts.Environment != "" {
		attrs = append(attrs, semconv.DeploymentEnvironment(opts.Environment))
	}
	for k, v := range opts.ResourceAttributes {
		attrs = append(attrs, attribute.String(k, v))
	}
	return resource.New(ctx,
		resource.WithAttributes(attrs...),
		resource.WithFromEnv(),
		resource.WithTelemetrySDK(),
		resource.WithHost(),
	)
}

func newProcessor(ctx context.Context, opts *options.Options, cfg providerConfig) (sdktrace.SpanProcessor, error) {
	if cfg.exporter != nil {
		return sdktrace.NewSimpleSpanProcessor(cfg.exporter), nil
	}
	exp, err := newExporter(ctx, opts, cfg.stdout)
	if err != nil {
		return nil, err
	}
	return sdktrace.NewBatchSpanProcessor(exp,
		sdktrace.WithBatchTimeout(opts.BatchTimeout),
		sdktrace.WithMaxExportBatchSize(opts.BatchMaxSize),
		sdktrace.WithExportTimeout(opts.ExportTimeout),
		sdktrace.WithMaxQueueSize(opts.MaxQueueSize),
	), nil
}

func newExporter(ctx context.Context, opts *options.Options, stdout io.Writer) (sdktrace.SpanExporter, error) {
	switch opts.ExporterType {
	case options.ExporterOTLPGRPC:
		o := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(opts.Endpoint), otlptracegrpc.WithHeaders(opts.Headers)}
		if opts.Insecure {
			o = append(o, otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()))
		}
		return otlptrace.New(ctx, otlptracegrpc.NewClient(o...))
	case options.ExporterOTLPHTTP:
		o := []otlptracehttp.Option{otlptracehttp.WithHeaders(opts.Headers)}
		if strings.Contains(opts.Endpoint, "://") {
			o = append(o, otlptracehttp.WithEndpointURL(opts.Endpoint))
		} else {
			o = append(o, otlptracehttp.WithEndpoint(opts.Endpoint))
		}
		if opts.Insecure {
			o = append(o, otlptracehttp.WithInsecure())
		}
		return otlptrace.New(ctx, otlptracehttp.NewClient(o...))
	case options.ExporterStdout:
		return stdouttrace.New(stdouttrace.WithPrettyPrint(), stdouttrace.WithWriter(stdout))
	case options.ExporterNoop:
		return discard{}, nil
	}
	return nil, fmt.Errorf("unsupported exporter type %q", opts.ExporterType)
}

// discard is the noop exporter.
type discard struct{}

func (discard) ExportSpans(context.Context, []sdktrace.ReadOnlySpan) error { return nil }
func (discard) Shutdown(context.Context) error                             { return nil }

func newSampler(opts *options.Options) sdktrace.Sampler {
	switch opts.SamplerType {
	case options.SamplerAlwaysOn:
		return sdktrace.AlwaysSample()
	case options.SamplerAlwaysOff:
		return sdktrace.NeverSample()
	case options.SamplerRatio:
		return sdktrace.TraceIDRatioBased(opts.SamplerRatio)
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(opts.SamplerRatio))
}
