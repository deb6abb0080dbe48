package db

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/gpucatalog/gpucatalog/internal/catalogsrv/config"
	"github.com/gpucatalog/gpucatalog/internal/catalogsrv/db/dbmanager"
	"github.com/gpucatalog/gpucatalog/internal/catalogsrv/db/memory"
	"github.com/gpucatalog/gpucatalog/internal/catalogsrv/db/models"
	"github.com/gpucatalog/gpucatalog/internal/catalogsrv/db/postgresql"
	"github.com/gpucatalog/gpucatalog/internal/common/apperrors"
	"github.com/gpucatalog/gpucatalog/internal/common/httpx"
)

// Store is the persistence layer of the catalog server. Reads of a gpu
// return it joined with its manufacturer, specifications and prices, the
// latter two ordered by id. Deleting a gpu removes its specifications and
// prices.
type Store interface {
	// Manufacturers
	ListManufacturers(ctx context.Context) ([]models.Manufacturer, apperrors.Error)
	CreateManufacturer(ctx context.Context, m *models.Manufacturer) apperrors.Error

	// GPUs
	ListGPUs(ctx context.Context) ([]models.GPU, apperrors.Error)
	GetGPU(ctx context.Context, id int64) (*models.GPU, apperrors.Error)
	CreateGPU(ctx context.Context, gpu *models.GPU) apperrors.Error
	UpdateGPU(ctx context.Context, gpu *models.GPU) apperrors.Error
	DeleteGPU(ctx context.Context, id int64) apperrors.Error

	// Specifications
	CreateSpecification(ctx context.Context, spec *models.Specification) apperrors.Error
	UpdateSpecification(ctx context.Context, spec *models.Specification) apperrors.Error

	// Prices
	CreatePrice(ctx context.Context, price *models.Price) apperrors.Error
	UpdatePrice(ctx context.Context, price *models.Price) apperrors.Error

	Close() error
}

var (
	_ Store = (*memory.Store)(nil)
	_ Store = (*postgresql.Store)(nil)
)

// Open creates the store selected by the configuration.
func Open(ctx context.Context, cfg *config.ConfigParam) (Store, error) {
	switch cfg.Store {
	case config.StoreMemory:
		log.Ctx(ctx).Info().Msg("using in-memory store")
		return memory.New(), nil
	case config.StorePostgresql:
		timeout, err := cfg.DB.Timeout()
		if err != nil {
			return nil, err
		}
		sqlDB, err := dbmanager.NewPostgresqlDb(ctx, cfg.DB.DSN(), dbmanager.Options{StatementTimeout: timeout})
		if err != nil {
			return nil, err
		}
		s := postgresql.New(sqlDB)
		if err := s.Migrate(ctx); err != nil {
			sqlDB.Close()
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown store %q", cfg.Store)
}

type storeContextKey string

const storeKey = storeContextKey("store")

func WithStore(ctx context.Context, s Store) context.Context {
	return context.WithValue(ctx, storeKey, s)
}

// FromContext returns the store loaded by LoadStore, or nil.
func FromContext(ctx context.Context) Store {
	s, _ := ctx.Value(storeKey).(Store)
	return s
}

// LoadStore is a middleware that makes s available to handlers through the
// request context.
func LoadStore(s Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s == nil {
				log.Ctx(r.Context()).Error().Msg("no store configured")
				httpx.ErrApplicationError("unable to service request at this time").Send(w)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithStore(r.Context(), s)))
		})
	}
}
