// Package postgresql implements the catalog store on PostgreSQL through the
// pgx database/sql driver.
package postgresql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/gpucatalog/gpucatalog/internal/catalogsrv/db/dberror"
	"github.com/gpucatalog/gpucatalog/internal/common/apperrors"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS manufacturers (
	id SERIAL PRIMARY KEY,
	name VARCHAR(50) NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS gpu_models (
	id SERIAL PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	manufacturer_id INTEGER NOT NULL REFERENCES manufacturers(id),
	release_year INTEGER
);
CREATE TABLE IF NOT EXISTS specifications (
	id SERIAL PRIMARY KEY,
	gpu_id INTEGER NOT NULL REFERENCES gpu_models(id) ON DELETE CASCADE,
	memory_size INTEGER,
	memory_type VARCHAR(20),
	bus_width INTEGER,
	base_clock INTEGER,
	max_resolution VARCHAR(50),
	psu_power_requirement INTEGER
);
CREATE TABLE IF NOT EXISTS prices (
	id SERIAL PRIMARY KEY,
	gpu_id INTEGER NOT NULL REFERENCES gpu_models(id) ON DELETE CASCADE,
	price NUMERIC(10, 2),
	date DATE
);
CREATE INDEX IF NOT EXISTS specifications_gpu_id_idx ON specifications (gpu_id);
CREATE INDEX IF NOT EXISTS prices_gpu_id_idx ON prices (gpu_id);
`

// Migrate creates the tables when they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to create schema")
		return dberror.ErrDatabase.MsgErr("failed to create schema", err)
	}
	return nil
}

// PostgreSQL error codes the store distinguishes.
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeStringTooLong       = "22001"
	codeNumericOutOfRange   = "22003"
	codeQueryCanceled       = "57014"
)

// mapError classifies a driver error. msg is used for the user facing
// message of errors that are not the caller's fault.
func mapError(ctx context.Context, err error, msg string) apperrors.Error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeForeignKeyViolation:
			return dberror.ErrMissingReference.Err(err)
		case codeUniqueViolation:
			return dberror.ErrAlreadyExists.Err(err)
		case codeStringTooLong, codeNumericOutOfRange:
			return dberror.ErrInvalidInput.Msg(pgErr.Message)
		case codeQueryCanceled:
			log.Ctx(ctx).Error().Err(err).Msg("statement timed out")
			return dberror.ErrUnavailable.Err(err)
		}
	}
	log.Ctx(ctx).Error().Err(err).Msg(msg)
	return dberror.ErrDatabase.MsgErr(msg, err)
}
