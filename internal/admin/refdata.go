package admin

import (
	"context"
	"strconv"

	"github.com/gpucatalog/gpucatalog/pkg/api"
	"github.com/gpucatalog/gpucatalog/pkg/types"
)

const (
	placeholderManufacturer = "Select manufacturer"
	allManufacturers        = "All manufacturers"
	placeholderMemoryType   = "Select memory type"
	allMemoryTypes          = "All memory types"
)

// LoadManufacturers fetches the manufacturer list. On success the list is
// replaced and both option sets are rebuilt; on failure the previous list is
// kept and a notice is raised.
func (a *App) LoadManufacturers(ctx context.Context) error {
	manufacturers, err := a.backend.ListManufacturers(ctx)
	if err != nil {
		a.logFailure(ctx, err, "failed to load manufacturers")
		a.notifier.Error(MsgManufacturersLoadFailed)
		return ErrLoadFailed.MsgErr(MsgManufacturersLoadFailed, err)
	}
	if manufacturers == nil {
		manufacturers = []api.Manufacturer{}
	}

	a.mu.Lock()
	a.manufacturers = manufacturers
	a.mu.Unlock()

	form := ManufacturerOptions(manufacturers, placeholderManufacturer)
	filter := ManufacturerOptions(manufacturers, allManufacturers)
	a.presenter.SetManufacturerOptions(form, filter)
	return nil
}

// initMemoryTypes seeds both memory type selectors from the static list.
func (a *App) initMemoryTypes() {
	a.presenter.SetMemoryTypeOptions(
		MemoryTypeOptions(placeholderMemoryType),
		MemoryTypeOptions(allMemoryTypes),
	)
}

// ManufacturerOptions builds a selector led by an empty entry with the given
// label.
func ManufacturerOptions(manufacturers []api.Manufacturer, emptyLabel string) []Option {
	opts := make([]Option, 0, len(manufacturers)+1)
	opts = append(opts, Option{Value: "", Label: emptyLabel})
	for _, m := range manufacturers {
		opts = append(opts, Option{Value: strconv.FormatInt(m.ID, 10), Label: m.Name})
	}
	return opts
}

func MemoryTypeOptions(emptyLabel string) []Option {
	memoryTypes := types.MemoryTypes()
	opts := make([]Option, 0, len(memoryTypes)+1)
	opts = append(opts, Option{Value: "", Label: emptyLabel})
	for _, m := range memoryTypes {
		opts = append(opts, Option{Value: m.String(), Label: m.String()})
	}
	return opts
}
