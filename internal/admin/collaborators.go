package admin

import (
	"github.com/gpucatalog/gpucatalog/pkg/api"
)

// Notifier surfaces user visible notices. Messages are short and generic;
// technical detail only goes to the log.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Option is one entry of a selector, e.g. a manufacturer in the filter
// control. An empty Value is the "any"/placeholder entry.
type Option struct {
	Value string
	Label string
}

// Presenter renders what the core computes. Calls are made without holding
// any App lock, so a presenter may call back into the App.
type Presenter interface {
	// SetManufacturerOptions receives the create/edit form set and the filter
	// set, built independently from the same manufacturer list.
	SetManufacturerOptions(form, filter []Option)
	SetMemoryTypeOptions(form, filter []Option)
	RenderDevices(devices []api.Device)
	OpenForm(mode FormMode, input FormInput)
	CloseForm()
}

// NopPresenter discards everything.
type NopPresenter struct{}

func (NopPresenter) SetManufacturerOptions(form, filter []Option) {}
func (NopPresenter) SetMemoryTypeOptions(form, filter []Option)   {}
func (NopPresenter) RenderDevices(devices []api.Device)           {}
func (NopPresenter) OpenForm(mode FormMode, input FormInput)      {}
func (NopPresenter) CloseForm()                                   {}

var _ Presenter = NopPresenter{}
