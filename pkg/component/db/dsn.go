package db

import (
	"fmt"
	"net/url"
	"strings"

	options "github.com/kart-io/medreq/pkg/options/db"
)

// MySQLDSN builds username:password@tcp(host:port)/database?params.
// The password is escaped so characters such as @ or / do not break parsing.
func MySQLDSN(opts *options.Options) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		opts.Username,
		url.QueryEscape(opts.Password),
		opts.Host,
		opts.Port,
		opts.Database,
	)
}

// PostgresDSN builds the key=value form understood by pgx.
func PostgresDSN(opts *options.Options) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		opts.Host,
		opts.Port,
		opts.Username,
		escapePostgresValue(opts.Password),
		opts.Database,
		opts.SSLMode,
	)
}

// escapePostgresValue quotes values containing spaces, quotes or backslashes.
func escapePostgresValue(value string) string {
	if value == "" {
		return "''"
	}
	if !strings.ContainsAny(value, " '\\") {
		return value
	}
	escaped := strings.ReplaceAll(value, "\\", "\\\\")
	escaped = strings.ReplaceAll(escaped, "'", "''")
	return "'" + escaped + "'"
}
