package admin

import (
	"context"

	"github.com/gpucatalog/gpucatalog/pkg/api"
)

// Backend is the catalog service as seen by the core. catalogapi.Client is
// the production implementation.
type Backend interface {
	ListManufacturers(ctx context.Context) ([]api.Manufacturer, error)
	ListGPUs(ctx context.Context) ([]api.Device, error)
	GetGPU(ctx context.Context, id int64) (*api.Device, error)
	CreateGPU(ctx context.Context, req api.DeviceRequest) (*api.Device, error)
	UpdateGPU(ctx context.Context, id int64, req api.DeviceRequest) (*api.Device, error)
	DeleteGPU(ctx context.Context, id int64) error
	CreateSpecification(ctx context.Context, req api.SpecificationRequest) (*api.Specification, error)
	UpdateSpecification(ctx context.Context, id int64, req api.SpecificationRequest) (*api.Specification, error)
	CreatePrice(ctx context.Context, req api.PriceRequest) (*api.Price, error)
	UpdatePrice(ctx context.Context, id int64, req api.PriceRequest) (*api.Price, error)
}
