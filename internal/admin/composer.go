package admin

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// OpenAdd opens an empty form in add mode.
func (a *App) OpenAdd() {
	a.mu.Lock()
	a.form = FormState{Open: true, Mode: FormAdd}
	a.mu.Unlock()
	a.presenter.OpenForm(FormAdd, FormInput{})
}

// CloseForm closes the form without submitting.
func (a *App) CloseForm() {
	a.mu.Lock()
	a.form.Open = false
	a.mu.Unlock()
	a.presenter.CloseForm()
}

// RequestEdit fetches the device and opens the form in edit mode, capturing
// the identities of its primary specification and price. It returns the
// prefilled form.
func (a *App) RequestEdit(ctx context.Context, id int64) (FormInput, error) {
	d, err := a.backend.GetGPU(ctx, id)
	if err != nil {
		a.logFailure(ctx, err, "failed to load gpu for editing")
		a.notifier.Error(MsgEditLoadFailed)
		return FormInput{}, ErrLoadFailed.MsgErr(MsgEditLoadFailed, err)
	}

	state := FormState{Open: true, Mode: FormEdit, GPUID: id}
	if s, ok := d.PrimarySpecification(); ok {
		state.SpecificationID = s.ID
	}
	if p, ok := d.PrimaryPrice(); ok {
		state.PriceID = p.ID
	}
	input := FormFromDevice(d)

	a.mu.Lock()
	a.form = state
	a.mu.Unlock()
	a.presenter.OpenForm(FormEdit, input)
	return input, nil
}

// Submit writes the form according to the mode chosen when it opened. Any
// failure aborts the remaining calls, raises one notice and leaves the store
// and the form as they are; writes already committed are not rolled back.
// On success the form closes and the store is reloaded in full.
func (a *App) Submit(ctx context.Context, input FormInput) error {
	if !a.submitting.CompareAndSwap(false, true) {
		return ErrSubmitInProgress
	}
	defer a.submitting.Store(false)

	if err := input.Validate(); err != nil {
		a.logFailure(ctx, err, "form validation failed")
		a.notifier.Error(MsgInvalidForm)
		return err
	}

	state := a.Form()
	var (
		err error
		msg string
	)
	if state.Mode == FormEdit {
		err = a.submitEdit(ctx, state, input)
		msg = MsgDeviceUpdated
	} else {
		err = a.submitAdd(ctx, input)
		msg = MsgDeviceAdded
	}
	if err != nil {
		a.logFailure(ctx, err, "failed to save gpu")
		a.notifier.Error(MsgSaveFailed)
		return ErrSaveFailed.MsgErr(MsgSaveFailed, err)
	}

	a.CloseForm()
	a.notifier.Success(msg)
	// reload failures are reported by LoadGPUs and do not undo the save
	_ = a.LoadGPUs(ctx)
	return nil
}

// submitAdd creates the device first; the specification and price both
// need its identity and are written concurrently once it exists.
func (a *App) submitAdd(ctx context.Context, input FormInput) error {
	d, err := a.backend.CreateGPU(ctx, input.deviceRequest())
	if err != nil {
		return err
	}
	if d == nil || d.ID == 0 {
		return ErrInvalidResponse.Msg("created gpu has no id")
	}
	now := a.now()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := a.backend.CreateSpecification(gctx, input.specificationRequest(d.ID))
		return err
	})
	g.Go(func() error {
		_, err := a.backend.CreatePrice(gctx, input.priceRequest(d.ID, now))
		return err
	})
	return g.Wait()
}

// submitEdit replaces the device in place, then updates or inserts each
// sub-resource depending on whether an identity was captured for it.
func (a *App) submitEdit(ctx context.Context, state FormState, input FormInput) error {
	if _, err := a.backend.UpdateGPU(ctx, state.GPUID, input.deviceRequest()); err != nil {
		return err
	}
	now := a.now()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		req := input.specificationRequest(state.GPUID)
		var err error
		if state.SpecificationID != 0 {
			_, err = a.backend.UpdateSpecification(gctx, state.SpecificationID, req)
		} else {
			_, err = a.backend.CreateSpecification(gctx, req)
		}
		return err
	})
	g.Go(func() error {
		req := input.priceRequest(state.GPUID, now)
		var err error
		if state.PriceID != 0 {
			_, err = a.backend.UpdatePrice(gctx, state.PriceID, req)
		} else {
			_, err = a.backend.CreatePrice(gctx, req)
		}
		return err
	})
	return g.Wait()
}

// RequestDelete deletes a device after confirmation. Without confirmation no
// call is made. On success the store is reloaded in full.
func (a *App) RequestDelete(ctx context.Context, id int64) error {
	if a.confirmer == nil || !a.confirmer.Confirm(MsgConfirmDelete) {
		return ErrDeleteCancelled
	}
	if err := a.backend.DeleteGPU(ctx, id); err != nil {
		a.logFailure(ctx, err, "failed to delete gpu")
		a.notifier.Error(MsgDeleteFailed)
		return ErrDeleteFailed.MsgErr(MsgDeleteFailed, err)
	}
	a.notifier.Success(MsgDeviceDeleted)
	_ = a.LoadGPUs(ctx)
	return nil
}
