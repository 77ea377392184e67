// Package component defines the contracts shared by the infrastructure
// clients (database, redis) and their option groups.
package component

import "github.com/spf13/pflag"

// ConfigOptions defines the standard interface for all component options.
// Every option group (db, redis, http, jwt, log, session, tracing) follows
// it so the application shell can complete, validate and bind them the same
// way.
type ConfigOptions interface {
	// Complete fills in defaults and derived fields.
	Complete() error

	// Validate should be called after Complete.
	Validate() error

	// AddFlags adds flags for the options to the specified FlagSet.
	AddFlags(fs *pflag.FlagSet)
}

// Component is an opened infrastructure client.
type Component interface {
	// Name identifies the backend in logs, e.g. "sqlite" or "redis".
	Name() string

	// Close releases the underlying connections.
	Close() error
}
