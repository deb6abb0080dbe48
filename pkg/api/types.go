package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gpucatalog/gpucatalog/pkg/types"
)

// Manufacturer is a graphics card vendor. Read-only for clients.
type Manufacturer struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Device is a cataloged graphics card, joined server side with its
// manufacturer, specifications and prices.
type Device struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	ManufacturerID int64           `json:"manufacturer_id,omitempty"`
	ReleaseYear    int             `json:"release_year"`
	Manufacturer   *Manufacturer   `json:"manufacturer,omitempty"`
	Specifications []Specification `json:"specifications,omitempty"`
	Prices         []Price         `json:"prices,omitempty"`
}

// PrimarySpecification returns the current specification of the device.
// Only the first entry is considered; an empty collection reports false.
func (d *Device) PrimarySpecification() (Specification, bool) {
	if d == nil || len(d.Specifications) == 0 {
		return Specification{}, false
	}
	return d.Specifications[0], true
}

// PrimaryPrice returns the current price of the device, following the same
// rule as PrimarySpecification.
func (d *Device) PrimaryPrice() (Price, bool) {
	if d == nil || len(d.Prices) == 0 {
		return Price{}, false
	}
	return d.Prices[0], true
}

// ManufacturerName returns the joined manufacturer name or "" when absent.
func (d *Device) ManufacturerName() string {
	if d == nil || d.Manufacturer == nil {
		return ""
	}
	return d.Manufacturer.Name
}

type Specification struct {
	ID                  int64            `json:"id,omitempty"`
	GPUID               int64            `json:"gpu_id"`
	MemorySize          int              `json:"memory_size"`
	MemoryType          types.MemoryType `json:"memory_type"`
	BusWidth            int              `json:"bus_width"`
	BaseClock           int              `json:"base_clock"`
	MaxResolution       string           `json:"max_resolution"`
	PSUPowerRequirement int              `json:"psu_power_requirement"`
}

type Price struct {
	ID    int64   `json:"id,omitempty"`
	GPUID int64   `json:"gpu_id"`
	Price float64 `json:"price"`
	Date  Date    `json:"date"`
}

// DeviceRequest is the body of create and update device calls.
type DeviceRequest struct {
	Name           string `json:"name" validate:"required"`
	ManufacturerID int64  `json:"manufacturer_id" validate:"required,gt=0"`
	ReleaseYear    int    `json:"release_year" validate:"gte=0"`
}

// SpecificationRequest is the body of create and update specification calls.
type SpecificationRequest struct {
	MemorySize          int              `json:"memory_size" validate:"gte=0"`
	MemoryType          types.MemoryType `json:"memory_type" validate:"omitempty,memorytype"`
	BusWidth            int              `json:"bus_width" validate:"gte=0"`
	BaseClock           int              `json:"base_clock" validate:"gte=0"`
	MaxResolution       string           `json:"max_resolution" validate:"max=50"`
	PSUPowerRequirement int              `json:"psu_power_requirement" validate:"gte=0"`
	GPUID               int64            `json:"gpu_id" validate:"required,gt=0"`
}

// PriceRequest is the body of create and update price calls.
type PriceRequest struct {
	Price float64 `json:"price" validate:"gte=0"`
	Date  Date    `json:"date"`
	GPUID int64   `json:"gpu_id" validate:"required,gt=0"`
}

type ManufacturerRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

// Date is a calendar date exchanged as "YYYY-MM-DD".
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(types.DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(types.DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(types.DateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		d.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
