// Package models holds the rows stored by the catalog server.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Manufacturer struct {
	ID   int64
	Name string
}

// GPU is a gpu_models row. The joined fields are filled by reads only.
type GPU struct {
	ID             int64
	Name           string
	ManufacturerID int64
	ReleaseYear    int

	Manufacturer   *Manufacturer
	Specifications []Specification
	Prices         []Price
}

type Specification struct {
	ID                  int64
	GPUID               int64
	MemorySize          int
	MemoryType          string
	BusWidth            int
	BaseClock           int
	MaxResolution       string
	PSUPowerRequirement int
}

type Price struct {
	ID    int64
	GPUID int64
	Price decimal.Decimal
	// Date is a calendar date in UTC.
	Date time.Time
}
