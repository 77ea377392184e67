// Package logger holds the log.* options of both binaries and installs the
// process-wide kart-io logger from them.
package logger

import (
	"fmt"
	"strings"

	"github.com/kart-io/logger"
	"github.com/kart-io/logger/core"
	"github.com/kart-io/logger/option"
	"github.com/spf13/pflag"
)

// Options embeds option.LogOption so config files use its keys unprefixed
// under "log".
type Options struct {
	*option.LogOption `json:",inline" mapstructure:",squash"`
}

// NewOptions returns the server defaults: INFO, json, stdout.
func NewOptions() *Options {
	return &Options{LogOption: option.DefaultLogOption()}
}

// NewCLIOptions 返回命令行默认值：只有 WARN 以上写到 stderr，避免污染 stdout 的表格输出
func NewCLIOptions() *Options {
	o := NewOptions()
	o.Level, o.Format = "WARN", "console"
	o.OutputPaths = []string{"stderr"}
	o.DisableStacktrace = true
	return o
}

// AddFlags binds the log.* flags.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	if o.Rotation == nil {
		o.Rotation = &option.RotationOption{}
	}

	fs.StringVar(&o.Engine, "log.engine", o.Engine, "Backend: zap or slog.")
	fs.StringVar(&o.Level, "log.level", o.Level, "Minimum level: DEBUG, INFO, WARN, ERROR or FATAL.")
	fs.StringVar(&o.Format, "log.format", o.Format, "Encoding: json or console.")
	fs.StringSliceVar(&o.OutputPaths, "log.output-paths", o.OutputPaths, "stdout, stderr or file paths.")
	fs.BoolVar(&o.Development, "log.development", o.Development, "Development mode (human friendly, panics on DPanic).")
	fs.BoolVar(&o.DisableCaller, "log.disable-caller", o.DisableCaller, "Omit the caller field.")
	fs.BoolVar(&o.DisableStacktrace, "log.disable-stacktrace", o.DisableStacktrace, "Omit stack traces on errors.")
	// 仅对文件输出生效
	fs.IntVar(&o.Rotation.MaxSize, "log.rotation.max-size", o.Rotation.MaxSize, "Rotate log files at this size in MB.")
	fs.IntVar(&o.Rotation.MaxBackups, "log.rotation.max-backups", o.Rotation.MaxBackups, "Rotated files to keep.")
}

// Complete upper-cases the level and defaults the output to stderr.
func (o *Options) Complete() error {
	o.Level = strings.ToUpper(strings.TrimSpace(o.Level))
	if len(o.OutputPaths) == 0 {
		o.OutputPaths = []string{"stderr"}
	}
	return nil
}

// Validate rejects unknown levels and formats before the logger is built.
func (o *Options) Validate() error {
	if _, err := core.ParseLevel(o.Level); err != nil {
		return fmt.Errorf("invalid log.level %q: %w", o.Level, err)
	}
	if o.Format != "json" && o.Format != "console" {
		return fmt.Errorf("invalid log.format %q: must be json or console", o.Format)
	}
	return o.LogOption.Validate()
}

// Init builds the logger and makes it the global one.
func (o *Options) Init() error {
	l, err := logger.New(o.LogOption)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetGlobal(l)
	return nil
}
