package postgresql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgtype"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/gpucatalog/gpucatalog/internal/catalogsrv/db/dberror"
	"github.com/gpucatalog/gpucatalog/internal/catalogsrv/db/models"
	"github.com/gpucatalog/gpucatalog/internal/common/apperrors"
)

func (s *Store) ListManufacturers(ctx context.Context) ([]models.Manufacturer, apperrors.Error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM manufacturers ORDER BY id;`)
	if err != nil {
		return nil, mapError(ctx, err, "failed to list manufacturers")
	}
	defer rows.Close()

	out := []models.Manufacturer{}
	for rows.Next() {
		var m models.Manufacturer
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, mapError(ctx, err, "failed to scan manufacturer")
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(ctx, err, "failed to list manufacturers")
	}
	return out, nil
}

func (s *Store) CreateManufacturer(ctx context.Context, m *models.Manufacturer) apperrors.Error {
	err := s.db.QueryRowContext(ctx, `INSERT INTO manufacturers (name) VALUES ($1) RETURNING id;`, m.Name).Scan(&m.ID)
	if err != nil {
		e := mapError(ctx, err, "failed to insert manufacturer")
		if errors.Is(e, dberror.ErrAlreadyExists) {
			return dberror.ErrAlreadyExists.Msg("manufacturer already exists")
		}
		return e
	}
	return nil
}

const gpuQuery = `
	SELECT g.id, g.name, g.manufacturer_id, g.release_year, m.name
	FROM gpu_models g
	LEFT JOIN manufacturers m ON m.id = g.manufacturer_id
`

func (s *Store) ListGPUs(ctx context.Context) ([]models.GPU, apperrors.Error) {
	gpus, err := s.queryGPUs(ctx, gpuQuery+` ORDER BY g.id;`)
	if err != nil {
		return nil, err
	}
	if err := s.attach(ctx, gpus, nil); err != nil {
		return nil, err
	}
	return gpus, nil
}

func (s *Store) GetGPU(ctx context.Context, id int64) (*models.GPU, apperrors.Error) {
	gpus, err := s.queryGPUs(ctx, gpuQuery+` WHERE g.id = $1;`, id)
	if err != nil {
		return nil, err
	}
	if len(gpus) == 0 {
		log.Ctx(ctx).Info().Int64("gpu_id", id).Msg("gpu not found")
		return nil, dberror.ErrNotFound.Msg("GPU not found")
	}
	if err := s.attach(ctx, gpus, &id); err != nil {
		return nil, err
	}
	return &gpus[0], nil
}

func (s *Store) CreateGPU(ctx context.Context, gpu *models.GPU) apperrors.Error {
	query := `
		INSERT INTO gpu_models (name, manufacturer_id, release_year)
		VALUES ($1, $2, $3)
		RETURNING id;
	`
	if err := s.db.QueryRowContext(ctx, query, gpu.Name, gpu.ManufacturerID, gpu.ReleaseYear).Scan(&gpu.ID); err != nil {
		return gpuWriteError(ctx, err, "failed to insert gpu")
	}
	return s.reload(ctx, gpu)
}

func (s *Store) UpdateGPU(ctx context.Context, gpu *models.GPU) apperrors.Error {
	query := `
		UPDATE gpu_models SET name = $2, manufacturer_id = $3, release_year = $4
		WHERE id = $1;
	`
	res, err := s.db.ExecContext(ctx, query, gpu.ID, gpu.Name, gpu.ManufacturerID, gpu.ReleaseYear)
	if err != nil {
		return gpuWriteError(ctx, err, "failed to update gpu")
	}
	if err := expectRow(ctx, res, "GPU not found"); err != nil {
		return err
	}
	return s.reload(ctx, gpu)
}

// DeleteGPU removes the gpu. Specifications and prices go with it through
// ON DELETE CASCADE.
func (s *Store) DeleteGPU(ctx context.Context, id int64) apperrors.Error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM gpu_models WHERE id = $1;`, id)
	if err != nil {
		return mapError(ctx, err, "failed to delete gpu")
	}
	return expectRow(ctx, res, "GPU not found")
}

func (s *Store) reload(ctx context.Context, gpu *models.GPU) apperrors.Error {
	g, err := s.GetGPU(ctx, gpu.ID)
	if err != nil {
		return err
	}
	*gpu = *g
	return nil
}

func gpuWriteError(ctx context.Context, err error, msg string) apperrors.Error {
	e := mapError(ctx, err, msg)
	if errors.Is(e, dberror.ErrMissingReference) {
		return dberror.ErrMissingReference.Msg("manufacturer does not exist")
	}
	return e
}

func (s *Store) queryGPUs(ctx context.Context, query string, args ...any) ([]models.GPU, apperrors.Error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(ctx, err, "failed to list gpus")
	}
	defer rows.Close()

	gpus := []models.GPU{}
	for rows.Next() {
		var (
			g       models.GPU
			year    pgtype.Int4
			mfrName pgtype.Varchar
		)
		if err := rows.Scan(&g.ID, &g.Name, &g.ManufacturerID, &year, &mfrName); err != nil {
			return nil, mapError(ctx, err, "failed to scan gpu")
		}
		if year.Status == pgtype.Present {
			g.ReleaseYear = int(year.Int)
		}
		if mfrName.Status == pgtype.Present {
			g.Manufacturer = &models.Manufacturer{ID: g.ManufacturerID, Name: mfrName.String}
		}
		gpus = append(gpus, g)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(ctx, err, "failed to list gpus")
	}
	return gpus, nil
}

// attach loads specifications and prices for gpus, restricted to one gpu
// when gpuID is set.
func (s *Store) attach(ctx context.Context, gpus []models.GPU, gpuID *int64) apperrors.Error {
	index := make(map[int64]int, len(gpus))
	for i := range gpus {
		index[gpus[i].ID] = i
	}

	specs, err := s.querySpecifications(ctx, gpuID)
	if err != nil {
		return err
	}
	for _, spec := range specs {
		if i, ok := index[spec.GPUID]; ok {
			gpus[i].Specifications = append(gpus[i].Specifications, spec)
		}
	}

	prices, err := s.queryPrices(ctx, gpuID)
	if err != nil {
		return err
	}
	for _, p := range prices {
		if i, ok := index[p.GPUID]; ok {
			gpus[i].Prices = append(gpus[i].Prices, p)
		}
	}
	return nil
}

func (s *Store) querySpecifications(ctx context.Context, gpuID *int64) ([]models.Specification, apperrors.Error) {
	query := `
		SELECT id, gpu_id, memory_size, memory_type, bus_width, base_clock, max_resolution, psu_power_requirement
		FROM specifications
		WHERE $1::INTEGER IS NULL OR gpu_id = $1
		ORDER BY id;
	`
	rows, err := s.db.QueryContext(ctx, query, gpuID)
	if err != nil {
		return nil, mapError(ctx, err, "failed to list specifications")
	}
	defer rows.Close()

	var out []models.Specification
	for rows.Next() {
		var (
			spec                     models.Specification
			memSize, bus, clock, psu pgtype.Int4
			memType, maxResolution   pgtype.Varchar
		)
		if err := rows.Scan(&spec.ID, &spec.GPUID, &memSize, &memType, &bus, &clock, &maxResolution, &psu); err != nil {
			return nil, mapError(ctx, err, "failed to scan specification")
		}
		spec.MemorySize = intOrZero(memSize)
		spec.BusWidth = intOrZero(bus)
		spec.BaseClock = intOrZero(clock)
		spec.PSUPowerRequirement = intOrZero(psu)
		spec.MemoryType = stringOrEmpty(memType)
		spec.MaxResolution = stringOrEmpty(maxResolution)
		out = append(out, spec)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(ctx, err, "failed to list specifications")
	}
	return out, nil
}

func (s *Store) queryPrices(ctx context.Context, gpuID *int64) ([]models.Price, apperrors.Error) {
	query := `
		SELECT id, gpu_id, price, date
		FROM prices
		WHERE $1::INTEGER IS NULL OR gpu_id = $1
		ORDER BY id;
	`
	rows, err := s.db.QueryContext(ctx, query, gpuID)
	if err != nil {
		return nil, mapError(ctx, err, "failed to list prices")
	}
	defer rows.Close()

	var out []models.Price
	for rows.Next() {
		var (
			p     models.Price
			price decimal.NullDecimal
			date  pgtype.Date
		)
		if err := rows.Scan(&p.ID, &p.GPUID, &price, &date); err != nil {
			return nil, mapError(ctx, err, "failed to scan price")
		}
		if price.Valid {
			p.Price = price.Decimal
		}
		if date.Status == pgtype.Present {
			p.Date = date.Time
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(ctx, err, "failed to list prices")
	}
	return out, nil
}

func expectRow(ctx context.Context, res sql.Result, notFound string) apperrors.Error {
	n, err := res.RowsAffected()
	if err != nil {
		return mapError(ctx, err, "failed to read affected rows")
	}
	if n == 0 {
		return dberror.ErrNotFound.Msg(notFound)
	}
	return nil
}

func intOrZero(v pgtype.Int4) int {
	if v.Status != pgtype.Present {
		return 0
	}
	return int(v.Int)
}

func stringOrEmpty(v pgtype.Varchar) string {
	if v.Status != pgtype.Present {
		return ""
	}
	return v.String
}
