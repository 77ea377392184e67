package apiserver

import (
	"github.com/spf13/pflag"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	dbopts "github.com/kart-io/medreq/pkg/options/db"
	httpopts "github.com/kart-io/medreq/pkg/options/http"
	jwtopts "github.com/kart-io/medreq/pkg/options/jwt"
	logopts "github.com/kart-io/medreq/pkg/options/logger"
	tracingopts "github.com/kart-io/medreq/pkg/options/tracing"
)

// Options contains the configuration of the reference server.
type Options struct {
	HTTP    *httpopts.Options    `json:"http" mapstructure:"http"`
	DB      *dbopts.Options      `json:"db" mapstructure:"db"`
	JWT     *jwtopts.Options     `json:"jwt" mapstructure:"jwt"`
	Log     *logopts.Options     `json:"log" mapstructure:"log"`
	Tracing *tracingopts.Options `json:"tracing" mapstructure:"tracing"`
}

// NewOptions creates Options with default values.
func NewOptions() *Options {
	o := &Options{
		HTTP:    httpopts.NewOptions(),
		DB:      dbopts.NewOptions(),
		JWT:     jwtopts.NewOptions(),
		Log:     logopts.NewOptions(),
		Tracing: tracingopts.NewOptions(),
	}
	o.Tracing.ServiceName = Name
	return o
}

// AddFlags adds all option groups to fs.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	o.HTTP.AddFlags(fs)
	o.DB.AddFlags(fs)
	o.JWT.AddFlags(fs)
	o.Log.AddFlags(fs)
	o.Tracing.AddFlags(fs)
}

// Complete completes all option groups.
func (o *Options) Complete() error {
	return utilerrors.NewAggregate([]error{
		o.HTTP.Complete(),
		o.DB.Complete(),
		o.JWT.Complete(),
		o.Log.Complete(),
		o.Tracing.Complete(),
	})
}

// Validate checks every option group and reports all problems at once.
func (o *Options) Validate() error {
	return utilerrors.NewAggregate([]error{
		o.HTTP.Validate(),
		o.DB.Validate(),
		o.JWT.Validate(),
		o.Log.Validate(),
		o.Tracing.Validate(),
	})
}
