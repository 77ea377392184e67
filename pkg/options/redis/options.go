// Package redis holds the redis.* options used when sessions are kept in redis.
package redis

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/kart-io/medreq/pkg/utils/json"
)

// PasswordEnv is read when no password was given on the command line.
const PasswordEnv = "MEDREQ_REDIS_PASSWORD"

const redactedPassword = "[REDACTED]"

// Options describes one redis endpoint. A CLI holds a single session, so
// the pool stays small.
type Options struct {
	Host         string        `json:"host" mapstructure:"host"`
	Port         int           `json:"port" mapstructure:"port"`
	Password     string        `json:"-" mapstructure:"password"`
	Database     int           `json:"database" mapstructure:"database"`
	MaxRetries   int           `json:"max-retries" mapstructure:"max-retries"`
	PoolSize     int           `json:"pool-size" mapstructure:"pool-size"`
	DialTimeout  time.Duration `json:"dial-timeout" mapstructure:"dial-timeout"`
	ReadTimeout  time.Duration `json:"read-timeout" mapstructure:"read-timeout"`
	WriteTimeout time.Duration `json:"write-timeout" mapstructure:"write-timeout"`
}

// NewOptions targets a local redis on 6379, database 0.
func NewOptions() *Options {
	return &Options{
		Host:         "127.0.0.1",
		Port:         6379,
		PoolSize:     2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// Addr returns host:port.
func (o *Options) Addr() string {
	return net.JoinHostPort(o.Host, strconv.Itoa(o.Port))
}

// MarshalJSON prints a placeholder instead of the password.
func (o *Options) MarshalJSON() ([]byte, error) {
	type alias Options
	var pw string
	if o.Password != "" {
		pw = redactedPassword
	}
	return json.Marshal(struct {
		*alias
		Password string `json:"password"`
	}{(*alias)(o), pw})
}

// AddFlags binds the redis.* flags.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Host, "redis.host", o.Host, "Redis host.")
	fs.IntVar(&o.Port, "redis.port", o.Port, "Redis port.")
	fs.StringVar(&o.Password, "redis.password", o.Password, "Redis password; prefer "+PasswordEnv+".")
	fs.IntVar(&o.Database, "redis.database", o.Database, "Redis logical database.")
	fs.IntVar(&o.MaxRetries, "redis.max-retries", o.MaxRetries, "Retries per command; -1 disables.")
	fs.IntVar(&o.PoolSize, "redis.pool-size", o.PoolSize, "Connection pool size.")
	fs.DurationVar(&o.DialTimeout, "redis.dial-timeout", o.DialTimeout, "Connect timeout.")
	fs.DurationVar(&o.ReadTimeout, "redis.read-timeout", o.ReadTimeout, "Read timeout.")
	fs.DurationVar(&o.WriteTimeout, "redis.write-timeout", o.WriteTimeout, "Write timeout.")
}

// Complete fills the password from PasswordEnv.
func (o *Options) Complete() error {
	if o.Password == "" {
		o.Password = os.Getenv(PasswordEnv)
	}
	return nil
}

// Validate reports every invalid field at once.
func (o *Options) Validate() error {
	var errs []error
	if o.Host == "" {
		errs = append(errs, fmt.Errorf("redis.host must not be empty"))
	}
	if o.Port <= 0 || o.Port > 65535 {
		errs = append(errs, fmt.Errorf("redis.port %d out of range", o.Port))
	}
	if o.Database < 0 {
		errs = append(errs, fmt.Errorf("redis.database must be >= 0"))
	}
	return utilerrors.NewAggregate(errs)
}
