// Package dbmanager opens the PostgreSQL connection pool used by the store.
package dbmanager

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/rs/zerolog/log"
)

type Options struct {
	// StatementTimeout is applied to every session as statement_timeout and
	// lock_timeout. Zero leaves the server defaults.
	StatementTimeout time.Duration
	// PingAttempts is the number of connection attempts at startup.
	PingAttempts uint
	MaxOpenConns int
	MaxIdleConns int
}

const (
	defaultPingAttempts = 5
	defaultMaxOpenConns = 10
	defaultMaxIdleConns = 5
)

// NewPostgresqlDb opens a pool over the pgx driver and waits for the
// database to answer, retrying with backoff.
func NewPostgresqlDb(ctx context.Context, dsn string, opts Options) (*sql.DB, error) {
	if opts.PingAttempts == 0 {
		opts.PingAttempts = defaultPingAttempts
	}
	if opts.MaxOpenConns == 0 {
		opts.MaxOpenConns = defaultMaxOpenConns
	}
	if opts.MaxIdleConns == 0 {
		opts.MaxIdleConns = defaultMaxIdleConns
	}

	// Open a new database connection using the "pgx" driver.
	sqlDB, err := sql.Open("pgx", SessionDSN(dsn, opts.StatementTimeout))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to open db")
		return nil, err
	}
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	// Ping the database to see if the connection is valid.
	err = retry.Do(
		func() error { return sqlDB.PingContext(ctx) },
		retry.Context(ctx),
		retry.Attempts(opts.PingAttempts),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Warn().Err(err).Uint("attempt", n+1).Msg("db not reachable, retrying")
		}),
	)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to ping db")
		sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}

// SessionDSN appends the session timeouts to a key/value dsn. The pgx driver
// sends unknown keys to the server as runtime parameters.
func SessionDSN(dsn string, timeout time.Duration) string {
	if timeout <= 0 {
		return dsn
	}
	ms := timeout.Milliseconds()
	return fmt.Sprintf("%s statement_timeout=%d lock_timeout=%d", dsn, ms, ms)
}
