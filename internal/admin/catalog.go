package admin

import (
	"context"

	"github.com/gpucatalog/gpucatalog/internal/admin/view"
	"github.com/gpucatalog/gpucatalog/pkg/api"
)

// LoadGPUs replaces the store with the full device collection and renders
// the derived view. On failure the store is left unchanged.
func (a *App) LoadGPUs(ctx context.Context) error {
	devices, err := a.backend.ListGPUs(ctx)
	if err != nil {
		a.logFailure(ctx, err, "failed to load gpus")
		a.notifier.Error(MsgDataLoadFailed)
		return ErrLoadFailed.MsgErr(MsgDataLoadFailed, err)
	}
	if devices == nil {
		devices = []api.Device{}
	}
	a.mu.Lock()
	a.devices = devices
	a.mu.Unlock()

	a.refresh()
	return nil
}

// View returns the derived view for the current store and criteria.
func (a *App) View() []api.Device {
	a.mu.Lock()
	devices, c := a.devices, a.criteria
	a.mu.Unlock()
	return view.Derive(devices, c)
}

// Criteria returns the active criteria.
func (a *App) Criteria() view.Criteria {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.criteria
}

// SetCriteria replaces all criteria and re-renders.
func (a *App) SetCriteria(c view.Criteria) {
	a.mu.Lock()
	a.criteria = c
	a.mu.Unlock()
	a.refresh()
}

// SetSearch changes only the search term.
func (a *App) SetSearch(term string) {
	a.mu.Lock()
	a.criteria.Search = term
	a.mu.Unlock()
	a.refresh()
}

// ResetSearch clears the search term and keeps filters and sort.
func (a *App) ResetSearch() {
	a.SetSearch("")
}

// ResetCriteria clears every criterion.
func (a *App) ResetCriteria() {
	a.SetCriteria(view.Criteria{})
}

func (a *App) refresh() {
	a.presenter.RenderDevices(a.View())
}
