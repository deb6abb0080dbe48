package admin

import (
	"time"

	"github.com/gpucatalog/gpucatalog/internal/common/validation"
	"github.com/gpucatalog/gpucatalog/pkg/api"
	"github.com/gpucatalog/gpucatalog/pkg/types"
)

// FormMode selects what Submit does. It is chosen when the form opens and
// is not stored on the device.
type FormMode int

const (
	FormAdd FormMode = iota
	FormEdit
)

func (m FormMode) String() string {
	if m == FormEdit {
		return "edit"
	}
	return "add"
}

// FormInput is the content of the create/edit form.
type FormInput struct {
	Name                string  `validate:"required"`
	ManufacturerID      int64   `validate:"required,gt=0"`
	ReleaseYear         int     `validate:"gte=0,lte=9999"`
	MemorySize          int     `validate:"gte=0"`
	MemoryType          string  `validate:"omitempty,memorytype"`
	BusWidth            int     `validate:"gte=0"`
	BaseClock           int     `validate:"gte=0"`
	MaxResolution       string  `validate:"max=50"`
	PSUPowerRequirement int     `validate:"gte=0"`
	Price               float64 `validate:"gte=0"`
}

// Validate checks the form before any call is made.
func (f FormInput) Validate() error {
	if err := validation.Struct(&f); err != nil {
		return ErrInvalidForm.MsgErr(MsgInvalidForm, err)
	}
	return nil
}

// FormFromDevice prefills the form from a device, using its primary
// specification and price when present.
func FormFromDevice(d *api.Device) FormInput {
	f := FormInput{
		Name:           d.Name,
		ManufacturerID: d.ManufacturerID,
		ReleaseYear:    d.ReleaseYear,
	}
	if d.Manufacturer != nil {
		f.ManufacturerID = d.Manufacturer.ID
	}
	if s, ok := d.PrimarySpecification(); ok {
		f.MemorySize = s.MemorySize
		f.MemoryType = string(s.MemoryType)
		f.BusWidth = s.BusWidth
		f.BaseClock = s.BaseClock
		f.MaxResolution = s.MaxResolution
		f.PSUPowerRequirement = s.PSUPowerRequirement
	}
	if p, ok := d.PrimaryPrice(); ok {
		f.Price = p.Price
	}
	return f
}

func (f FormInput) deviceRequest() api.DeviceRequest {
	return api.DeviceRequest{
		Name:           f.Name,
		ManufacturerID: f.ManufacturerID,
		ReleaseYear:    f.ReleaseYear,
	}
}

func (f FormInput) specificationRequest(gpuID int64) api.SpecificationRequest {
	return api.SpecificationRequest{
		MemorySize:          f.MemorySize,
		MemoryType:          types.MemoryType(f.MemoryType),
		BusWidth:            f.BusWidth,
		BaseClock:           f.BaseClock,
		MaxResolution:       f.MaxResolution,
		PSUPowerRequirement: f.PSUPowerRequirement,
		GPUID:               gpuID,
	}
}

// priceRequest dates the price with the submission day.
func (f FormInput) priceRequest(gpuID int64, now time.Time) api.PriceRequest {
	return api.PriceRequest{
		Price: f.Price,
		Date:  api.NewDate(now),
		GPUID: gpuID,
	}
}

// FormState is the composer state captured when the form opened.
// SpecificationID and PriceID are zero when the device had no such record,
// which makes Submit insert instead of update.
type FormState struct {
	Open            bool
	Mode            FormMode
	GPUID           int64
	SpecificationID int64
	PriceID         int64
}
