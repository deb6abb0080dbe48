package view

import (
	"github.com/gpucatalog/gpucatalog/pkg/api"
)

// Sort fields understood by Derive.
const (
	FieldPrice      = "price"
	FieldPower      = "power"
	FieldResolution = "resolution"
	FieldClock      = "clock"
	FieldBus        = "bus"
	FieldMemory     = "memory"
	FieldYear       = "year"
)

// extractor reads a sort value from a device. Exactly one of the two
// functions is set.
type extractor struct {
	number func(*api.Device) float64
	text   func(*api.Device) string
}

var extractors = map[string]extractor{
	FieldPrice: {number: func(d *api.Device) float64 {
		p, _ := d.PrimaryPrice()
		return p.Price
	}},
	FieldPower: {number: func(d *api.Device) float64 {
		s, _ := d.PrimarySpecification()
		return float64(s.PSUPowerRequirement)
	}},
	FieldResolution: {text: func(d *api.Device) string {
		s, _ := d.PrimarySpecification()
		return s.MaxResolution
	}},
	FieldClock: {number: func(d *api.Device) float64 {
		s, _ := d.PrimarySpecification()
		return float64(s.BaseClock)
	}},
	FieldBus: {number: func(d *api.Device) float64 {
		s, _ := d.PrimarySpecification()
		return float64(s.BusWidth)
	}},
	FieldMemory: {number: func(d *api.Device) float64 {
		s, _ := d.PrimarySpecification()
		return float64(s.MemorySize)
	}},
	FieldYear: {number: func(d *api.Device) float64 {
		return float64(d.ReleaseYear)
	}},
}

// SortFields lists the supported sort fields.
func SortFields() []string {
	return []string{FieldPrice, FieldPower, FieldResolution, FieldClock, FieldBus, FieldMemory, FieldYear}
}
