// Package admin is the state reconciliation core of the GPU catalog admin
// client: reference data, the catalog store, the derived view and the
// record composer. Rendering and user prompts are injected collaborators.
package admin

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gpucatalog/gpucatalog/internal/admin/view"
	"github.com/gpucatalog/gpucatalog/pkg/api"
)

// Options configure an App. Backend and Notifier are required.
type Options struct {
	Backend   Backend
	Notifier  Notifier
	Presenter Presenter
	Confirmer Confirmer
	// Now dates prices at submission. Defaults to time.Now.
	Now func() time.Time
}

// App is the explicit application state. Loaders replace the reference data
// and the store wholesale; the derivation engine only reads them.
type App struct {
	backend   Backend
	notifier  Notifier
	presenter Presenter
	confirmer Confirmer
	now       func() time.Time
	logger    zerolog.Logger

	mu            sync.Mutex
	manufacturers []api.Manufacturer
	devices       []api.Device
	criteria      view.Criteria
	form          FormState

	submitting atomic.Bool
}

func New(opts Options) *App {
	a := &App{
		backend:   opts.Backend,
		notifier:  opts.Notifier,
		presenter: opts.Presenter,
		confirmer: opts.Confirmer,
		now:       opts.Now,
		logger:    log.With().Str("component", "admin").Logger(),
	}
	if a.presenter == nil {
		a.presenter = NopPresenter{}
	}
	if a.now == nil {
		a.now = time.Now
	}
	return a
}

// Start seeds the memory type selectors and performs the initial loads.
// Failures have already been reported through the Notifier; the joined error
// is returned for the caller's information.
func (a *App) Start(ctx context.Context) error {
	a.initMemoryTypes()
	errM := a.LoadManufacturers(ctx)
	errG := a.LoadGPUs(ctx)
	return errors.Join(errM, errG)
}

// Manufacturers returns a copy of the loaded manufacturer list.
func (a *App) Manufacturers() []api.Manufacturer {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.manufacturers)
}

// Devices returns a copy of the unfiltered store.
func (a *App) Devices() []api.Device {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.devices)
}

// Form returns the current composer state.
func (a *App) Form() FormState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.form
}

func (a *App) logFailure(ctx context.Context, err error, msg string) {
	l := a.logger
	if ctxLogger := log.Ctx(ctx); ctxLogger.GetLevel() != zerolog.Disabled {
		l = ctxLogger.With().Str("component", "admin").Logger()
	}
	l.Error().Err(err).Msg(msg)
}
