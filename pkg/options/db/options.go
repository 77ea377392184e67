// Package db holds the database options of the reference server. One option
// set covers the three supported drivers; fields that do not apply to the
// selected driver are ignored.
package db

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// PasswordEnv is read when no password was given.
const PasswordEnv = "MEDREQ_DB_PASSWORD"

// MemoryPath selects a private in-memory sqlite database.
const MemoryPath = ":memory:"

// Options defines configuration options for the database.
type Options struct {
	Driver                string        `json:"driver" mapstructure:"driver"`
	Path                  string        `json:"path" mapstructure:"path"`
	Host                  string        `json:"host" mapstructure:"host"`
	Port                  int           `json:"port" mapstructure:"port"`
	Username              string        `json:"username" mapstructure:"username"`
	Password              string        `json:"-" mapstructure:"password"`
	Database              string        `json:"database" mapstructure:"database"`
	SSLMode               string        `json:"ssl-mode" mapstructure:"ssl-mode"`
	MaxIdleConnections    int           `json:"max-idle-connections" mapstructure:"max-idle-connections"`
	MaxOpenConnections    int           `json:"max-open-connections" mapstructure:"max-open-connections"`
	MaxConnectionLifeTime time.Duration `json:"max-connection-life-time" mapstructure:"max-connection-life-time"`
	SlowThreshold         time.Duration `json:"slow-threshold" mapstructure:"slow-threshold"`
	LogLevel              int           `json:"log-level" mapstructure:"log-level"`
	Seed                  bool          `json:"seed" mapstructure:"seed"`
}

// NewOptions creates a new Options object with default values: a sqlite file
// next to the binary.
func NewOptions() *Options {
	return &Options{
		Driver:                DriverSQLite,
		Path:                  "medreq.db",
		Host:                  "127.0.0.1",
		Database:              "medreq",
		SSLMode:               "disable",
		MaxIdleConnections:    10,
		MaxOpenConnections:    100,
		MaxConnectionLifeTime: 10 * time.Second,
		SlowThreshold:         200 * time.Millisecond,
		LogLevel:              1, // Silent
		Seed:                  true,
	}
}

// Complete fills the default port of the driver and the password from the
// environment.
func (o *Options) Complete() error {
	o.Driver = strings.ToLower(strings.TrimSpace(o.Driver))
	if o.Port == 0 {
		switch o.Driver {
		case DriverMySQL:
			o.Port = 3306
		case DriverPostgres:
			o.Port = 5432
		}
	}
	if o.Username == "" {
		switch o.Driver {
		case DriverMySQL:
			o.Username = "root"
		case DriverPostgres:
			o.Username = "postgres"
		}
	}
	if o.Password == "" {
		o.Password = os.Getenv(PasswordEnv)
	}
	return nil
}

// Validate checks if the options are valid.
func (o *Options) Validate() error {
	switch o.Driver {
	case DriverSQLite:
		if o.Path == "" {
			return fmt.Errorf("db.path must not be empty for sqlite")
		}
	case DriverMySQL, DriverPostgres:
		if o.Host == "" || o.Database == "" {
			return fmt.Errorf("db.host and db.database are required for %s", o.Driver)
		}
	default:
		return fmt.Errorf("unsupported db.driver %q (want sqlite, mysql or postgres)", o.Driver)
	}
	if o.LogLevel < 1 || o.LogLevel > 4 {
		return fmt.Errorf("db.log-level must be between 1 (silent) and 4 (info)")
	}
	return nil
}

// InMemory reports whether the sqlite database lives in memory only.
func (o *Options) InMemory() bool {
	return o.Driver == DriverSQLite && (o.Path == MemoryPath || strings.Contains(o.Path, "mode=memory"))
}

// AddFlags adds flags for database options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Driver, "db.driver", o.Driver, "Database driver: sqlite, mysql or postgres.")
	fs.StringVar(&o.Path, "db.path", o.Path, "sqlite database file, or :memory:.")
	fs.StringVar(&o.Host, "db.host", o.Host, "Database host (mysql, postgres).")
	fs.IntVar(&o.Port, "db.port", o.Port, "Database port (default per driver).")
	fs.StringVar(&o.Username, "db.username", o.Username, "Database username.")
	fs.StringVar(&o.Password, "db.password", o.Password, "Database password (prefer the "+PasswordEnv+" env var).")
	fs.StringVar(&o.Database, "db.database", o.Database, "Database name.")
	fs.StringVar(&o.SSLMode, "db.ssl-mode", o.SSLMode, "PostgreSQL SSL mode.")
	fs.IntVar(&o.MaxIdleConnections, "db.max-idle-connections", o.MaxIdleConnections, "Max idle connections.")
	fs.IntVar(&o.MaxOpenConnections, "db.max-open-connections", o.MaxOpenConnections, "Max open connections.")
	fs.DurationVar(&o.MaxConnectionLifeTime, "db.max-connection-life-time", o.MaxConnectionLifeTime, "Max connection life time.")
	fs.DurationVar(&o.SlowThreshold, "db.slow-threshold", o.SlowThreshold, "Queries slower than this are logged as warnings.")
	fs.IntVar(&o.LogLevel, "db.log-level", o.LogLevel, "SQL log level: 1 silent, 2 error, 3 warn, 4 info.")
	fs.BoolVar(&o.Seed, "db.seed", o.Seed, "Insert the medicine catalogue when the table is empty.")
}
