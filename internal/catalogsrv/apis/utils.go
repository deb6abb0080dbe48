package apis

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/gpucatalog/gpucatalog/internal/catalogsrv/db"
	"github.com/gpucatalog/gpucatalog/internal/catalogsrv/db/models"
	"github.com/gpucatalog/gpucatalog/internal/common/httpx"
	"github.com/gpucatalog/gpucatalog/pkg/api"
	"github.com/gpucatalog/gpucatalog/pkg/types"
)

// now is the clock used for prices submitted without a date.
var now = time.Now

func getStore(r *http.Request) (db.Store, error) {
	s := db.FromContext(r.Context())
	if s == nil {
		return nil, httpx.ErrApplicationError("unable to service request at this time")
	}
	return s, nil
}

// pathID returns the positive integer {id} path parameter.
func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, httpx.ErrInvalidRequest("invalid id " + strconv.Quote(raw))
	}
	return id, nil
}

func itemLocation(resource string, id int64) string {
	return "/" + resource + "/" + strconv.FormatInt(id, 10)
}

func toManufacturer(m models.Manufacturer) api.Manufacturer {
	return api.Manufacturer{ID: m.ID, Name: m.Name}
}

func toDevice(g models.GPU) api.Device {
	d := api.Device{
		ID:             g.ID,
		Name:           g.Name,
		ManufacturerID: g.ManufacturerID,
		ReleaseYear:    g.ReleaseYear,
	}
	if g.Manufacturer != nil {
		m := toManufacturer(*g.Manufacturer)
		d.Manufacturer = &m
	}
	for _, s := range g.Specifications {
		d.Specifications = append(d.Specifications, toSpecification(s))
	}
	for _, p := range g.Prices {
		d.Prices = append(d.Prices, toPrice(p))
	}
	return d
}

func toSpecification(s models.Specification) api.Specification {
	return api.Specification{
		ID:                  s.ID,
		GPUID:               s.GPUID,
		MemorySize:          s.MemorySize,
		MemoryType:          types.MemoryType(s.MemoryType),
		BusWidth:            s.BusWidth,
		BaseClock:           s.BaseClock,
		MaxResolution:       s.MaxResolution,
		PSUPowerRequirement: s.PSUPowerRequirement,
	}
}

func toPrice(p models.Price) api.Price {
	price := api.Price{
		ID:    p.ID,
		GPUID: p.GPUID,
		Price: p.Price.InexactFloat64(),
	}
	if !p.Date.IsZero() {
		price.Date = api.NewDate(p.Date)
	}
	return price
}

func toModelManufacturer(req api.ManufacturerRequest) *models.Manufacturer {
	return &models.Manufacturer{Name: req.Name}
}

func gpuFromRequest(id int64, req api.DeviceRequest) *models.GPU {
	return &models.GPU{
		ID:             id,
		Name:           req.Name,
		ManufacturerID: req.ManufacturerID,
		ReleaseYear:    req.ReleaseYear,
	}
}

func specificationFromRequest(id int64, req api.SpecificationRequest) *models.Specification {
	return &models.Specification{
		ID:                  id,
		GPUID:               req.GPUID,
		MemorySize:          req.MemorySize,
		MemoryType:          string(req.MemoryType),
		BusWidth:            req.BusWidth,
		BaseClock:           req.BaseClock,
		MaxResolution:       req.MaxResolution,
		PSUPowerRequirement: req.PSUPowerRequirement,
	}
}

// priceFromRequest rounds the price to cents. A missing date is today.
func priceFromRequest(id int64, req api.PriceRequest) *models.Price {
	date := req.Date
	if date.IsZero() {
		date = api.NewDate(now())
	}
	return &models.Price{
		ID:    id,
		GPUID: req.GPUID,
		Price: decimal.NewFromFloat(req.Price).Round(2),
		Date:  date.Time,
	}
}
