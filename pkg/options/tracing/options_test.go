package tracing

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOptions(t *testing.T) {
	o := NewOptions()
	assert.False(t, o.Enabled)
	assert.Equal(t, "medreq", o.ServiceName)
	assert.NoError(t, o.Validate())
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(o *Options)
		wantErr string
	}{
		{"disabled skips checks", func(o *Options) { o.ExporterType = "bogus" }, ""},
		{"bad exporter", func(o *Options) { o.Enabled = true; o.ExporterType = "bogus" }, "invalid exporter type"},
		{"bad sampler", func(o *Options) { o.Enabled = true; o.SamplerType = "sometimes" }, "invalid sampler type"},
		{"missing endpoint", func(o *Options) { o.Enabled = true; o.Endpoint = "" }, "endpoint is required"},
		{"stdout needs no endpoint", func(o *Options) { o.Enabled = true; o.ExporterType = ExporterStdout; o.Endpoint = "" }, ""},
		{"bad ratio", func(o *Options) { o.Enabled = true; o.SamplerType = SamplerRatio; o.SamplerRatio = 2 }, "between 0 and 1"},
		{"missing service", func(o *Options) { o.Enabled = true; o.ServiceName = "" }, "service name"},
		{"zero queue", func(o *Options) { o.Enabled = true; o.MaxQueueSize = 0 }, "max queue size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOptions()
			tt.mutate(o)
			err := o.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOptions_FlagsAndComplete(t *testing.T) {
	o := &Options{}
	require.NoError(t, o.Complete())
	assert.NotNil(t, o.Headers)
	assert.NotNil(t, o.ResourceAttributes)

	o = NewOptions()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	o.AddFlags(fs)
	require.NoError(t, fs.Parse([]string{
		"--tracing.enabled",
		"--tracing.exporter-type=otlp_http",
		"--tracing.endpoint=http://collector:4318/v1/traces",
		"--tracing.headers=authorization=Bearer x",
	}))
	assert.True(t, o.Enabled)
	assert.Equal(t, ExporterOTLPHTTP, o.ExporterType)
	assert.Equal(t, "Bearer x", o.Headers["authorization"])
	assert.NoError(t, o.Validate())
}
