package medreq

import (
	"github.com/spf13/pflag"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	clientopts "github.com/kart-io/medreq/pkg/options/client"
	logopts "github.com/kart-io/medreq/pkg/options/logger"
	redisopts "github.com/kart-io/medreq/pkg/options/redis"
	sessionopts "github.com/kart-io/medreq/pkg/options/session"
	tracingopts "github.com/kart-io/medreq/pkg/options/tracing"
)

// Options contains the configuration of the medreq command line.
type Options struct {
	// Client configures how the API is reached.
	Client *clientopts.Options `json:"client" mapstructure:"client"`

	// Session selects where token and user are persisted.
	Session *sessionopts.Options `json:"session" mapstructure:"session"`

	// Redis is only used by the redis session backend.
	Redis *redisopts.Options `json:"redis" mapstructure:"redis"`

	// Log configures the logger. Logs go to stderr so tables on stdout stay clean.
	Log *logopts.Options `json:"log" mapstructure:"log"`

	// Tracing configures client spans.
	Tracing *tracingopts.Options `json:"tracing" mapstructure:"tracing"`
}

// NewOptions creates Options with default values.
func NewOptions() *Options {
	return &Options{
		Client:  clientopts.NewOptions(),
		Session: sessionopts.NewOptions(),
		Redis:   redisopts.NewOptions(),
		Log:     logopts.NewCLIOptions(),
		Tracing: tracingopts.NewOptions(),
	}
}

// AddFlags adds all option groups to fs.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	o.Client.AddFlags(fs)
	o.Session.AddFlags(fs)
	o.Redis.AddFlags(fs)
	o.Log.AddFlags(fs)
	o.Tracing.AddFlags(fs)
}

// Complete completes all option groups.
func (o *Options) Complete() error {
	return utilerrors.NewAggregate([]error{
		o.Client.Complete(),
		o.Session.Complete(),
		o.Redis.Complete(),
		o.Log.Complete(),
		o.Tracing.Complete(),
	})
}

// Validate checks every option group and reports all problems at once.
func (o *Options) Validate() error {
	errs := []error{
		o.Client.Validate(),
		o.Session.Validate(),
		o.Log.Validate(),
		o.Tracing.Validate(),
	}
	// redis 参数只在 redis 会话后端下才需要合法
	if o.Session.Backend == sessionopts.BackendRedis {
		errs = append(errs, o.Redis.Validate())
	}
	return utilerrors.NewAggregate(errs)
}
