// Package db opens the gorm connection of the reference server for the
// configured driver (sqlite, mysql or postgres).
package db

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	options "github.com/kart-io/medreq/pkg/options/db"
)

// Client wraps gorm.DB.
type Client struct {
	db   *gorm.DB
	opts *options.Options
}

// Dialector returns the gorm dialector for opts.Driver.
func Dialector(opts *options.Options) (gorm.Dialector, error) {
	switch opts.Driver {
	case options.DriverSQLite:
		return sqlite.Open(opts.Path), nil
	case options.DriverMySQL:
		return mysql.Open(MySQLDSN(opts)), nil
	case options.DriverPostgres:
		return postgres.Open(PostgresDSN(opts)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}
}

// New opens the database, applies the pool settings and pings it.
func New(ctx context.Context, opts *options.Options) (*Client, error) {
	if opts == nil {
		return nil, fmt.Errorf("db options cannot be nil")
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid db options: %w", err)
	}

	dialector, err := Dialector(opts)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: NewGormLogger(gormlogger.LogLevel(opts.LogLevel), opts.SlowThreshold),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", opts.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// 每个 sqlite 内存连接都是独立的数据库，只能保留一个连接
	if opts.InMemory() {
		sqlDB.SetMaxOpenConns(1)
	} else {
		if opts.MaxIdleConnections > 0 {
			sqlDB.SetMaxIdleConns(opts.MaxIdleConnections)
		}
		if opts.MaxOpenConnections > 0 {
			sqlDB.SetMaxOpenConns(opts.MaxOpenConnections)
		}
		if opts.MaxConnectionLifeTime > 0 {
			sqlDB.SetConnMaxLifetime(opts.MaxConnectionLifeTime)
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", opts.Driver, err)
	}

	return &Client{db: db, opts: opts}, nil
}

// DB returns the gorm handle.
func (c *Client) DB() *gorm.DB {
	return c.db
}

// Name returns the driver name.
func (c *Client) Name() string {
	return c.opts.Driver
}

// Close closes the underlying connection pool.
func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
