package admin

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/gpucatalog/gpucatalog/pkg/api"
)

type call struct {
	Op   string
	ID   int64
	Body any
}

// fakeBackend records every call. Calls named in fail return an error.
type fakeBackend struct {
	mu    sync.Mutex
	calls []call

	manufacturers []api.Manufacturer
	devices       []api.Device
	device        *api.Device
	nextID        int64
	fail          map[string]bool
	onCreateGPU   func()
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{nextID: 100, fail: map[string]bool{}}
}

func (f *fakeBackend) record(op string, id int64, body any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{Op: op, ID: id, Body: body})
	if f.fail[op] {
		return errors.New(fmt.Sprintf("%s failed", op))
	}
	return nil
}

func (f *fakeBackend) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func (f *fakeBackend) Ops() []string {
	var ops []string
	for _, c := range f.Calls() {
		ops = append(ops, c.Op)
	}
	return ops
}

func (f *fakeBackend) Find(op string) []call {
	var out []call
	for _, c := range f.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeBackend) ListManufacturers(ctx context.Context) ([]api.Manufacturer, error) {
	if err := f.record("ListManufacturers", 0, nil); err != nil {
		return nil, err
	}
	return f.manufacturers, nil
}

func (f *fakeBackend) ListGPUs(ctx context.Context) ([]api.Device, error) {
	if err := f.record("ListGPUs", 0, nil); err != nil {
		return nil, err
	}
	return f.devices, nil
}

func (f *fakeBackend) GetGPU(ctx context.Context, id int64) (*api.Device, error) {
	if err := f.record("GetGPU", id, nil); err != nil {
		return nil, err
	}
	return f.device, nil
}

func (f *fakeBackend) CreateGPU(ctx context.Context, req api.DeviceRequest) (*api.Device, error) {
	if f.onCreateGPU != nil {
		f.onCreateGPU()
	}
	if err := f.record("CreateGPU", 0, req); err != nil {
		return nil, err
	}
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.mu.Unlock()
	return &api.Device{ID: id, Name: req.Name, ManufacturerID: req.ManufacturerID, ReleaseYear: req.ReleaseYear}, nil
}

func (f *fakeBackend) UpdateGPU(ctx context.Context, id int64, req api.DeviceRequest) (*api.Device, error) {
	if err := f.record("UpdateGPU", id, req); err != nil {
		return nil, err
	}
	return &api.Device{ID: id, Name: req.Name}, nil
}

func (f *fakeBackend) DeleteGPU(ctx context.Context, id int64) error {
	return f.record("DeleteGPU", id, nil)
}

func (f *fakeBackend) CreateSpecification(ctx context.Context, req api.SpecificationRequest) (*api.Specification, error) {
	if err := f.record("CreateSpecification", 0, req); err != nil {
		return nil, err
	}
	return &api.Specification{ID: 1, GPUID: req.GPUID}, nil
}

func (f *fakeBackend) UpdateSpecification(ctx context.Context, id int64, req api.SpecificationRequest) (*api.Specification, error) {
	if err := f.record("UpdateSpecification", id, req); err != nil {
		return nil, err
	}
	return &api.Specification{ID: id, GPUID: req.GPUID}, nil
}

func (f *fakeBackend) CreatePrice(ctx context.Context, req api.PriceRequest) (*api.Price, error) {
	if err := f.record("CreatePrice", 0, req); err != nil {
		return nil, err
	}
	return &api.Price{ID: 1, GPUID: req.GPUID}, nil
}

func (f *fakeBackend) UpdatePrice(ctx context.Context, id int64, req api.PriceRequest) (*api.Price, error) {
	if err := f.record("UpdatePrice", id, req); err != nil {
		return nil, err
	}
	return &api.Price{ID: id, GPUID: req.GPUID}, nil
}

var _ Backend = (*fakeBackend)(nil)

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

type fixedConfirmer bool

func (c fixedConfirmer) Confirm(string) bool { return bool(c) }

type recordingPresenter struct {
	formManufacturers   []Option
	filterManufacturers []Option
	formMemoryTypes     []Option
	filterMemoryTypes   []Option
	rendered            [][]api.Device
	opened              []FormMode
	openedInput         []FormInput
	closed              int
}

func (p *recordingPresenter) SetManufacturerOptions(form, filter []Option) {
	p.formManufacturers, p.filterManufacturers = form, filter
}

func (p *recordingPresenter) SetMemoryTypeOptions(form, filter []Option) {
	p.formMemoryTypes, p.filterMemoryTypes = form, filter
}

func (p *recordingPresenter) RenderDevices(devices []api.Device) {
	p.rendered = append(p.rendered, devices)
}

func (p *recordingPresenter) OpenForm(mode FormMode, input FormInput) {
	p.opened = append(p.opened, mode)
	p.openedInput = append(p.openedInput, input)
}

func (p *recordingPresenter) CloseForm() { p.closed++ }
