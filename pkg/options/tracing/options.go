// Package tracing holds the OpenTelemetry exporter and sampler options of
// medreq-server.
package tracing

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// SamplerType selects how spans are sampled.
type SamplerType string

// Sampler types.
const (
	SamplerAlwaysOn    SamplerType = "always_on"
	SamplerAlwaysOff   SamplerType = "always_off"
	SamplerRatio       SamplerType = "ratio"
	SamplerParentBased SamplerType = "parent_based"
)

// ExporterType selects where finished spans go.
type ExporterType string

// Exporter types. stdout pretty-prints to stderr and is meant for local runs.
const (
	ExporterOTLPGRPC ExporterType = "otlp_grpc"
	ExporterOTLPHTTP ExporterType = "otlp_http"
	ExporterStdout   ExporterType = "stdout"
	ExporterNoop     ExporterType = "noop"
)

var (
	validSamplers  = map[SamplerType]bool{SamplerAlwaysOn: true, SamplerAlwaysOff: true, SamplerRatio: true, SamplerParentBased: true}
	validExporters = map[ExporterType]bool{ExporterOTLPGRPC: true, ExporterOTLPHTTP: true, ExporterStdout: true, ExporterNoop: true}
)

// Options configures the tracer provider. Tracing is off unless Enabled.
type Options struct {
	Enabled        bool   `json:"enabled" mapstructure:"enabled"`
	ServiceName    string `json:"service-name" mapstructure:"service-name"`
	ServiceVersion string `json:"service-version" mapstructure:"service-version"`
	Environment    string `json:"environment" mapstructure:"environment"`

	ExporterType ExporterType `json:"exporter-type" mapstructure:"exporter-type"`
	// Endpoint is host:port for otlp_grpc and a full URL for otlp_http.
	Endpoint string            `json:"endpoint" mapstructure:"endpoint"`
	Insecure bool              `json:"insecure" mapstructure:"insecure"`
	Headers  map[string]string `json:"headers" mapstructure:"headers"`

	SamplerType  SamplerType `json:"sampler-type" mapstructure:"sampler-type"`
	SamplerRatio float64     `json:"sampler-ratio" mapstructure:"sampler-ratio"`

	BatchTimeout  time.Duration `json:"batch-timeout" mapstructure:"batch-timeout"`
	BatchMaxSize  int           `json:"batch-max-size" mapstructure:"batch-max-size"`
	ExportTimeout time.Duration `json:"export-timeout" mapstructure:"export-timeout"`
	MaxQueueSize  int           `json:"max-queue-size" mapstructure:"max-queue-size"`

	// ResourceAttributes are attached to every span, e.g. deployment.region.
	ResourceAttributes map[string]string `json:"resource-attributes" mapstructure:"resource-attributes"`
}

// NewOptions returns disabled tracing with OTLP/gRPC defaults.
func NewOptions() *Options {
	return &Options{
		ServiceName:        "medreq",
		ServiceVersion:     "dev",
		Environment:        "development",
		ExporterType:       ExporterOTLPGRPC,
		Endpoint:           "localhost:4317",
		Insecure:           true,
		Headers:            map[string]string{},
		SamplerType:        SamplerParentBased,
		SamplerRatio:       1,
		BatchTimeout:       time.Second,
		BatchMaxSize:       128,
		ExportTimeout:      5 * time.Second,
		MaxQueueSize:       512,
		ResourceAttributes: map[string]string{},
	}
}

// AddFlags binds the tracing.* flags.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&o.Enabled, "tracing.enabled", o.Enabled, "Export request spans via OpenTelemetry.")
	fs.StringVar(&o.ServiceName, "tracing.service-name", o.ServiceName, "service.name resource attribute.")
	fs.StringVar(&o.ServiceVersion, "tracing.service-version", o.ServiceVersion, "service.version resource attribute.")
	fs.StringVar(&o.Environment, "tracing.environment", o.Environment, "deployment.environment resource attribute.")
	fs.StringVar((*string)(&o.ExporterType), "tracing.exporter-type", string(o.ExporterType), "One of otlp_grpc, otlp_http, stdout or noop.")
	fs.StringVar(&o.Endpoint, "tracing.endpoint", o.Endpoint, "OTLP collector endpoint.")
	fs.BoolVar(&o.Insecure, "tracing.insecure", o.Insecure, "Talk to the collector without TLS.")
	fs.StringToStringVar(&o.Headers, "tracing.headers", o.Headers, "Extra OTLP headers, e.g. authorization=Bearer xyz.")
	fs.StringVar((*string)(&o.SamplerType), "tracing.sampler-type", string(o.SamplerType), "One of always_on, always_off, ratio or parent_based.")
	fs.Float64Var(&o.SamplerRatio, "tracing.sampler-ratio", o.SamplerRatio, "Fraction of traces kept by the ratio sampler.")
	fs.DurationVar(&o.BatchTimeout, "tracing.batch-timeout", o.BatchTimeout, "Flush interval of the span batcher.")
	fs.IntVar(&o.BatchMaxSize, "tracing.batch-max-size", o.BatchMaxSize, "Spans per export batch.")
	fs.DurationVar(&o.ExportTimeout, "tracing.export-timeout", o.ExportTimeout, "Deadline of a single export.")
	fs.IntVar(&o.MaxQueueSize, "tracing.max-queue-size", o.MaxQueueSize, "Spans buffered before new ones are dropped.")
}

// Complete replaces nil maps left behind by config decoding.
func (o *Options) Complete() error {
	if o.Headers == nil {
		o.Headers = map[string]string{}
	}
	if o.ResourceAttributes == nil {
		o.ResourceAttributes = map[string]string{}
	}
	return nil
}

// Validate checks the options only when tracing is enabled.
func (o *Options) Validate() error {
	if !o.Enabled {
		return nil
	}
	if o.ServiceName == "" {
		return fmt.Errorf("tracing: service name is required when tracing is enabled")
	}
	if !validExporters[o.ExporterType] {
		return fmt.Errorf("tracing: invalid exporter type: %s", o.ExporterType)
	}
	if !validSamplers[o.SamplerType] {
		return fmt.Errorf("tracing: invalid sampler type: %s", o.SamplerType)
	}
	needsEndpoint := o.ExporterType == ExporterOTLPGRPC || o.ExporterType == ExporterOTLPHTTP
	if needsEndpoint && o.Endpoint == "" {
		return fmt.Errorf("tracing: endpoint is required for exporter type %s", o.ExporterType)
	}
	if o.SamplerType == SamplerRatio && (o.SamplerRatio < 0 || o.SamplerRatio > 1) {
		return fmt.Errorf("tracing: sampler ratio must be between 0 and 1, got %g", o.SamplerRatio)
	}

	positive := []struct {
		name string
		ok   bool
	}{
		{"batch timeout", o.BatchTimeout > 0},
		{"batch max size", o.BatchMaxSize > 0},
		{"export timeout", o.ExportTimeout > 0},
		{"max queue size", o.MaxQueueSize > 0},
	}
	for _, p := range positive {
		if !p.ok {
			return fmt.Errorf("tracing: %s must be positive", p.name)
		}
	}
	return nil
}
