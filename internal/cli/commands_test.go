package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/gpucatalog/gpucatalog/internal/admin"
	"github.com/gpucatalog/gpucatalog/pkg/api"
	"github.com/gpucatalog/gpucatalog/pkg/types"
)

// memBackend is an in-memory catalog used in place of the HTTP client.
type memBackend struct {
	mu            sync.Mutex
	manufacturers []api.Manufacturer
	devices       []api.Device
	nextID        int64
	ops           []string
}

func newMemBackend() *memBackend {
	return &memBackend{
		nextID: 10,
		manufacturers: []api.Manufacturer{
			{ID: 1, Name: "NVIDIA"},
			{ID: 2, Name: "AMD"},
		},
		devices: []api.Device{
			{
				ID: 1, Name: "GeForce RTX 4070", ReleaseYear: 2023,
				Manufacturer:   &api.Manufacturer{ID: 1, Name: "NVIDIA"},
				Specifications: []api.Specification{{ID: 1, GPUID: 1, MemorySize: 12, MemoryType: types.MemoryTypeGDDR6X, PSUPowerRequirement: 650}},
				Prices:         []api.Price{{ID: 1, GPUID: 1, Price: 599}},
			},
			{
				ID: 2, Name: "Radeon RX 7800 XT", ReleaseYear: 2023,
				Manufacturer:   &api.Manufacturer{ID: 2, Name: "AMD"},
				Specifications: []api.Specification{{ID: 2, GPUID: 2, MemorySize: 16, MemoryType: types.MemoryTypeGDDR6, PSUPowerRequirement: 700}},
				Prices:         []api.Price{{ID: 2, GPUID: 2, Price: 499}},
			},
		},
	}
}

func (m *memBackend) op(name string) {
	m.ops = append(m.ops, name)
}

func (m *memBackend) Ops() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.ops)
}

func (m *memBackend) find(id int64) int {
	return slices.IndexFunc(m.devices, func(d api.Device) bool { return d.ID == id })
}

func (m *memBackend) ListManufacturers(ctx context.Context) ([]api.Manufacturer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.op("ListManufacturers")
	return slices.Clone(m.manufacturers), nil
}

func (m *memBackend) ListGPUs(ctx context.Context) ([]api.Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.op("ListGPUs")
	return slices.Clone(m.devices), nil
}

func (m *memBackend) GetGPU(ctx context.Context, id int64) (*api.Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.op("GetGPU")
	i := m.find(id)
	if i < 0 {
		return nil, errors.New("not found")
	}
	d := m.devices[i]
	return &d, nil
}

func (m *memBackend) CreateGPU(ctx context.Context, req api.DeviceRequest) (*api.Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.op("CreateGPU")
	m.nextID++
	d := api.Device{ID: m.nextID, Name: req.Name, ReleaseYear: req.ReleaseYear, ManufacturerID: req.ManufacturerID}
	for _, mf := range m.manufacturers {
		if mf.ID == req.ManufacturerID {
			d.Manufacturer = &api.Manufacturer{ID: mf.ID, Name: mf.Name}
		}
	}
	m.devices = append(m.devices, d)
	return &d, nil
}

func (m *memBackend) UpdateGPU(ctx context.Context, id int64, req api.DeviceRequest) (*api.Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.op("UpdateGPU")
	i := m.find(id)
	if i < 0 {
		return nil, errors.New("not found")
	}
	m.devices[i].Name = req.Name
	m.devices[i].ReleaseYear = req.ReleaseYear
	return &m.devices[i], nil
}

func (m *memBackend) DeleteGPU(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.op("DeleteGPU")
	i := m.find(id)
	if i < 0 {
		return errors.New("not found")
	}
	m.devices = slices.Delete(m.devices, i, i+1)
	return nil
}

func (m *memBackend) CreateSpecification(ctx context.Context, req api.SpecificationRequest) (*api.Specification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.op("CreateSpecification")
	i := m.find(req.GPUID)
	if i < 0 {
		return nil, errors.New("not found")
	}
	m.nextID++
	s := api.Specification{
		ID: m.nextID, GPUID: req.GPUID, MemorySize: req.MemorySize, MemoryType: req.MemoryType,
		BusWidth: req.BusWidth, BaseClock: req.BaseClock, MaxResolution: req.MaxResolution,
		PSUPowerRequirement: req.PSUPowerRequirement,
	}
	m.devices[i].Specifications = append(m.devices[i].Specifications, s)
	return &s, nil
}

func (m *memBackend) UpdateSpecification(ctx context.Context, id int64, req api.SpecificationRequest) (*api.Specification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.op("UpdateSpecification")
	i := m.find(req.GPUID)
	if i < 0 || len(m.devices[i].Specifications) == 0 {
		return nil, errors.New("not found")
	}
	s := &m.devices[i].Specifications[0]
	s.MemorySize, s.MemoryType = req.MemorySize, req.MemoryType
	return s, nil
}

func (m *memBackend) CreatePrice(ctx context.Context, req api.PriceRequest) (*api.Price, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.op("CreatePrice")
	i := m.find(req.GPUID)
	if i < 0 {
		return nil, errors.New("not found")
	}
	m.nextID++
	p := api.Price{ID: m.nextID, GPUID: req.GPUID, Price: req.Price, Date: req.Date}
	m.devices[i].Prices = append(m.devices[i].Prices, p)
	return &p, nil
}

func (m *memBackend) UpdatePrice(ctx context.Context, id int64, req api.PriceRequest) (*api.Price, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.op("UpdatePrice")
	i := m.find(req.GPUID)
	if i < 0 || len(m.devices[i].Prices) == 0 {
		return nil, errors.New("not found")
	}
	p := &m.devices[i].Prices[0]
	p.Price, p.Date = req.Price, req.Date
	return p, nil
}

var _ admin.Backend = (*memBackend)(nil)

// resetFlags restores every flag of the command tree to its default so that
// runs of the shared root command do not leak into each other.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// runCLI executes the root command against backend with the given stdin.
func runCLI(t *testing.T, backend admin.Backend, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	config = nil

	prev := newBackend
	newBackend = func() admin.Backend { return backend }
	t.Cleanup(func() { newBackend = prev })

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	base := []string{"--config", filepath.Join(t.TempDir(), "absent.yaml"), "--server", "http://catalog.test"}
	rootCmd.SetArgs(append(base, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestListCommand(t *testing.T) {
	b := newMemBackend()

	out, _, err := runCLI(t, b, "", "list", "--json", "--sort", "price_asc")
	require.NoError(t, err)
	assert.Equal(t, int64(1), gjson.Get(out, "result").Int())
	assert.Equal(t, []any{2.0, 1.0}, gjson.Get(out, "value.#.id").Value())

	out, _, err = runCLI(t, b, "", "list", "-j", "--manufacturer", "nvidia")
	require.NoError(t, err)
	assert.Equal(t, []any{1.0}, gjson.Get(out, "value.#.id").Value())

	out, _, err = runCLI(t, b, "", "list", "-j", "--memory-type", "GDDR6", "--search", "radeon")
	require.NoError(t, err)
	assert.Equal(t, []any{2.0}, gjson.Get(out, "value.#.id").Value())

	out, _, err = runCLI(t, b, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "GeForce RTX 4070")
	assert.Contains(t, out, "$499.00")

	out, _, err = runCLI(t, b, "", "list", "--search", "intel")
	require.NoError(t, err)
	assert.Contains(t, out, "No devices")
}

func TestListCommandRejectsBadCriteria(t *testing.T) {
	b := newMemBackend()

	_, _, err := runCLI(t, b, "", "list", "--sort", "weight_asc")
	assert.ErrorContains(t, err, "invalid sort")

	_, _, err = runCLI(t, b, "", "list", "--memory-type", "DDR3")
	assert.ErrorContains(t, err, "unknown memory type")

	_, _, err = runCLI(t, b, "", "list", "--manufacturer", "Matrox")
	assert.ErrorContains(t, err, "unknown manufacturer")

	// only the manufacturer lookup needs the catalog loaded
	assert.Equal(t, []string{"ListManufacturers", "ListGPUs"}, b.Ops())
}

func TestManufacturersCommand(t *testing.T) {
	out, _, err := runCLI(t, newMemBackend(), "", "manufacturers", "--json")
	require.NoError(t, err)
	assert.Equal(t, []any{"NVIDIA", "AMD"}, gjson.Get(out, "value.#.name").Value())
}

func TestMemoryTypesCommand(t *testing.T) {
	out, _, err := runCLI(t, newMemBackend(), "", "memory-types")
	require.NoError(t, err)
	assert.Contains(t, out, "Memory Types:")
	assert.Contains(t, out, "- HBM2E")
}

func TestAddCommand(t *testing.T) {
	b := newMemBackend()
	out, _, err := runCLI(t, b, "", "add",
		"--name", "GeForce RTX 4080", "--manufacturer", "NVIDIA", "--year", "2022",
		"--memory-size", "16", "--memory-type", "GDDR6X", "--price", "1199")
	require.NoError(t, err)
	assert.Contains(t, out, admin.MsgDeviceAdded)

	require.Len(t, b.devices, 3)
	d := b.devices[2]
	assert.Equal(t, "GeForce RTX 4080", d.Name)
	assert.Equal(t, "NVIDIA", d.ManufacturerName())
	require.Len(t, d.Specifications, 1)
	assert.Equal(t, types.MemoryTypeGDDR6X, d.Specifications[0].MemoryType)
	require.Len(t, d.Prices, 1)
	assert.Equal(t, 1199.0, d.Prices[0].Price)
}

func TestAddCommandInvalidForm(t *testing.T) {
	b := newMemBackend()
	_, stderr, err := runCLI(t, b, "", "add", "--name", "Nameless maker")
	assert.ErrorIs(t, err, admin.ErrInvalidForm)
	assert.Contains(t, stderr, admin.MsgInvalidForm)
	assert.NotContains(t, b.Ops(), "CreateGPU")
}

func TestAddCommandInteractive(t *testing.T) {
	b := newMemBackend()
	stdin := strings.Join([]string{
		"Arc A770", // name
		"3",        // manufacturer
		"2022",     // year
		"16",       // memory size
		"GDDR6",    // memory type
		"256",      // bus width
		"2100",     // base clock
		"7680x4320",
		"225",
		"329.99",
	}, "\n") + "\n"
	b.manufacturers = append(b.manufacturers, api.Manufacturer{ID: 3, Name: "Intel"})

	_, _, err := runCLI(t, b, stdin, "add", "-i")
	require.NoError(t, err)
	require.Len(t, b.devices, 3)
	d := b.devices[2]
	assert.Equal(t, "Intel", d.ManufacturerName())
	assert.Equal(t, "7680x4320", d.Specifications[0].MaxResolution)
	assert.Equal(t, 329.99, d.Prices[0].Price)
}

func TestEditCommand(t *testing.T) {
	b := newMemBackend()
	_, _, err := runCLI(t, b, "", "edit", "2", "--price", "449", "--memory-size", "20")
	require.NoError(t, err)

	assert.Equal(t, []string{"ListManufacturers", "GetGPU", "UpdateGPU"}, b.Ops()[:3])
	assert.ElementsMatch(t, []string{"UpdateSpecification", "UpdatePrice"}, b.Ops()[3:5])

	d := b.devices[1]
	assert.Equal(t, "Radeon RX 7800 XT", d.Name)
	assert.Equal(t, 20, d.Specifications[0].MemorySize)
	assert.Equal(t, types.MemoryTypeGDDR6, d.Specifications[0].MemoryType)
	assert.Equal(t, 449.0, d.Prices[0].Price)
}

func TestEditCommandUnknownDevice(t *testing.T) {
	_, stderr, err := runCLI(t, newMemBackend(), "", "edit", "99", "--price", "1")
	assert.ErrorIs(t, err, admin.ErrLoadFailed)
	assert.Contains(t, stderr, admin.MsgEditLoadFailed)

	_, _, err = runCLI(t, newMemBackend(), "", "edit", "abc")
	assert.ErrorContains(t, err, "invalid device id")
}

func TestDeleteCommand(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		b := newMemBackend()
		out, _, err := runCLI(t, b, "n\n", "delete", "1")
		require.NoError(t, err)
		assert.Contains(t, out, admin.MsgConfirmDelete)
		assert.Contains(t, out, "Delete cancelled")
		assert.Empty(t, b.Ops())
	})

	t.Run("confirmed", func(t *testing.T) {
		b := newMemBackend()
		out, _, err := runCLI(t, b, "yes\n", "delete", "1")
		require.NoError(t, err)
		assert.Contains(t, out, admin.MsgDeviceDeleted)
		assert.Equal(t, []string{"DeleteGPU", "ListGPUs"}, b.Ops())
		assert.Len(t, b.devices, 1)
	})

	t.Run("assume yes", func(t *testing.T) {
		b := newMemBackend()
		out, _, err := runCLI(t, b, "", "delete", "2", "--yes", "--json")
		require.NoError(t, err)
		assert.Equal(t, int64(2), gjson.Get(out, "value.id").Int())
		assert.Equal(t, []string{"DeleteGPU", "ListGPUs"}, b.Ops())
	})

	t.Run("failed", func(t *testing.T) {
		_, stderr, err := runCLI(t, newMemBackend(), "", "delete", "42", "-y")
		assert.ErrorIs(t, err, admin.ErrDeleteFailed)
		assert.Contains(t, stderr, admin.MsgDeleteFailed)
	})
}

func TestShell(t *testing.T) {
	b := newMemBackend()
	script := strings.Join([]string{
		"help",
		"sort price_asc",
		"search geforce",
		"reset-search",
		"manufacturer AMD",
		"memory hbm3",
		"memory all",
		"reset",
		"sort bogus_asc",
		"frobnicate",
		"delete 1",
		"n",
		"list",
		"exit",
		"list",
	}, "\n") + "\n"

	out, _, err := runCLI(t, b, script, "shell")
	require.NoError(t, err)

	assert.Contains(t, out, "Commands:")
	assert.Contains(t, out, "No devices")
	assert.Contains(t, out, "invalid sort")
	assert.Contains(t, out, `unknown command "frobnicate"`)
	assert.Contains(t, out, "Delete cancelled")
	assert.NotContains(t, b.Ops(), "DeleteGPU")
	// the final list after exit is never read
	assert.Equal(t, []string{"ListManufacturers", "ListGPUs"}, b.Ops())
}

func TestShellEditFlow(t *testing.T) {
	b := newMemBackend()
	// accept every default except the price
	script := "edit 1\n" + strings.Repeat("\n", 9) + "549\nexit\n"

	_, _, err := runCLI(t, b, script, "shell")
	require.NoError(t, err)
	assert.Equal(t, 549.0, b.devices[0].Prices[0].Price)
	assert.Equal(t, "GeForce RTX 4070", b.devices[0].Name)
	assert.Contains(t, b.Ops(), "UpdatePrice")
}

func TestShellEndsOnEOF(t *testing.T) {
	_, _, err := runCLI(t, newMemBackend(), "list\n", "shell")
	require.NoError(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runCLI(t, newMemBackend(), "", "version", "--json")
	require.NoError(t, err)
	assert.Equal(t, cliVersion, gjson.Get(out, "version").String())
}

func TestConfigCommands(t *testing.T) {
	resetFlags(rootCmd)
	file := filepath.Join(t.TempDir(), "config.yaml")
	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"config", "create", "--server-url", "localhost:8000", "--config", file})
	require.NoError(t, rootCmd.Execute())

	resetFlags(rootCmd)
	stdout.Reset()
	rootCmd.SetArgs([]string{"config", "show", "--config", file, "--json"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "http://localhost:8000", gjson.Get(stdout.String(), "value.server_url").String())
}

func TestResolveManufacturer(t *testing.T) {
	ms := []api.Manufacturer{{ID: 1, Name: "NVIDIA"}, {ID: 2, Name: "AMD"}}
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"", 0, false},
		{"2", 2, false},
		{"amd", 2, false},
		{" Nvidia ", 1, false},
		{"7", 7, false},
		{"Matrox", 0, true},
	}
	for _, tt := range tests {
		got, err := resolveManufacturer(ms, tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestDeviceRow(t *testing.T) {
	d := newMemBackend().devices[0]
	row := deviceRow(d)
	require.Len(t, row, len(deviceHeaders))
	assert.Equal(t, []string{"1", "GeForce RTX 4070", "NVIDIA", "2023", "12 GB", "GDDR6X"}, row[:6])
	assert.Equal(t, "650 W", row[9])
	assert.Equal(t, "$599.00", row[10])

	bare := deviceRow(api.Device{ID: 5, Name: "Prototype"})
	assert.Equal(t, "", bare[2])
	assert.Equal(t, "", bare[4])
	assert.Equal(t, "", bare[10])
}
