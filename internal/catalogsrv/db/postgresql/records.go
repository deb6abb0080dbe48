package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgtype"

	"github.com/gpucatalog/gpucatalog/internal/catalogsrv/db/dberror"
	"github.com/gpucatalog/gpucatalog/internal/catalogsrv/db/models"
	"github.com/gpucatalog/gpucatalog/internal/common/apperrors"
)

func (s *Store) CreateSpecification(ctx context.Context, spec *models.Specification) apperrors.Error {
	query := `
		INSERT INTO specifications (gpu_id, memory_size, memory_type, bus_width, base_clock, max_resolution, psu_power_requirement)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id;
	`
	err := s.db.QueryRowContext(ctx, query, spec.GPUID, spec.MemorySize, spec.MemoryType,
		spec.BusWidth, spec.BaseClock, spec.MaxResolution, spec.PSUPowerRequirement).Scan(&spec.ID)
	if err != nil {
		return recordWriteError(ctx, err, "failed to insert specification")
	}
	return nil
}

func (s *Store) UpdateSpecification(ctx context.Context, spec *models.Specification) apperrors.Error {
	query := `
		UPDATE specifications
		SET gpu_id = $2, memory_size = $3, memory_type = $4, bus_width = $5,
			base_clock = $6, max_resolution = $7, psu_power_requirement = $8
		WHERE id = $1;
	`
	res, err := s.db.ExecContext(ctx, query, spec.ID, spec.GPUID, spec.MemorySize, spec.MemoryType,
		spec.BusWidth, spec.BaseClock, spec.MaxResolution, spec.PSUPowerRequirement)
	if err != nil {
		return recordWriteError(ctx, err, "failed to update specification")
	}
	return expectRow(ctx, res, "Specification not found")
}

func (s *Store) CreatePrice(ctx context.Context, price *models.Price) apperrors.Error {
	query := `
		INSERT INTO prices (gpu_id, price, date)
		VALUES ($1, $2, $3)
		RETURNING id;
	`
	err := s.db.QueryRowContext(ctx, query, price.GPUID, price.Price, dateParam(price)).Scan(&price.ID)
	if err != nil {
		return recordWriteError(ctx, err, "failed to insert price")
	}
	return nil
}

func (s *Store) UpdatePrice(ctx context.Context, price *models.Price) apperrors.Error {
	query := `
		UPDATE prices SET gpu_id = $2, price = $3, date = $4
		WHERE id = $1;
	`
	res, err := s.db.ExecContext(ctx, query, price.ID, price.GPUID, price.Price, dateParam(price))
	if err != nil {
		return recordWriteError(ctx, err, "failed to update price")
	}
	return expectRow(ctx, res, "Price not found")
}

// dateParam stores a zero date as NULL.
func dateParam(p *models.Price) pgtype.Date {
	if p.Date.IsZero() {
		return pgtype.Date{Status: pgtype.Null}
	}
	return pgtype.Date{Time: p.Date, Status: pgtype.Present}
}

func recordWriteError(ctx context.Context, err error, msg string) apperrors.Error {
	e := mapError(ctx, err, msg)
	if errors.Is(e, dberror.ErrMissingReference) {
		return dberror.ErrMissingReference.Msg("GPU does not exist")
	}
	return e
}
