package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gpucatalog/gpucatalog/internal/admin"
	"github.com/gpucatalog/gpucatalog/pkg/api"
)

// formFlags are the device form fields as command flags, shared by add and
// edit. Only flags set on the command line are applied.
type formFlags struct {
	name          string
	manufacturer  string
	year          int
	memorySize    int
	memoryType    string
	busWidth      int
	baseClock     int
	maxResolution string
	psu           int
	price         float64
}

func (f *formFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.name, "name", "n", "", "Device name")
	fs.StringVarP(&f.manufacturer, "manufacturer", "m", "", "Manufacturer id or name")
	fs.IntVarP(&f.year, "year", "y", 0, "Release year")
	fs.IntVar(&f.memorySize, "memory-size", 0, "Memory size in GB")
	fs.StringVarP(&f.memoryType, "memory-type", "t", "", "Memory type, e.g. GDDR6X")
	fs.IntVar(&f.busWidth, "bus-width", 0, "Memory bus width in bits")
	fs.IntVar(&f.baseClock, "base-clock", 0, "Base clock in MHz")
	fs.StringVar(&f.maxResolution, "max-resolution", "", "Maximum resolution, e.g. 7680x4320")
	fs.IntVar(&f.psu, "psu", 0, "Recommended PSU power in W")
	fs.Float64VarP(&f.price, "price", "p", 0, "Current price")
}

// apply copies the flags that were set onto in.
func (f *formFlags) apply(cmd *cobra.Command, in *admin.FormInput, manufacturers []api.Manufacturer) error {
	changed := cmd.Flags().Changed
	if changed("name") {
		in.Name = f.name
	}
	if changed("manufacturer") {
		id, err := resolveManufacturer(manufacturers, f.manufacturer)
		if err != nil {
			return err
		}
		in.ManufacturerID = id
	}
	if changed("year") {
		in.ReleaseYear = f.year
	}
	if changed("memory-size") {
		in.MemorySize = f.memorySize
	}
	if changed("memory-type") {
		in.MemoryType = f.memoryType
	}
	if changed("bus-width") {
		in.BusWidth = f.busWidth
	}
	if changed("base-clock") {
		in.BaseClock = f.baseClock
	}
	if changed("max-resolution") {
		in.MaxResolution = f.maxResolution
	}
	if changed("psu") {
		in.PSUPowerRequirement = f.psu
	}
	if changed("price") {
		in.Price = f.price
	}
	return nil
}

// promptForm asks for every field, offering the current value as default.
func promptForm(l *lineReader, in admin.FormInput, manufacturers []api.Manufacturer) (admin.FormInput, error) {
	var err error
	str := func(label string, dst *string) {
		if err != nil {
			return
		}
		*dst, err = l.prompt(label, *dst)
	}
	num := func(label string, dst *int) {
		if err != nil {
			return
		}
		var v string
		if v, err = l.prompt(label, itoaOrEmpty(*dst)); err != nil || v == "" {
			return
		}
		var n int
		if n, err = strconv.Atoi(v); err != nil {
			err = fmt.Errorf("%s: %q is not a number", label, v)
			return
		}
		*dst = n
	}

	str("Name", &in.Name)
	if err == nil {
		fmt.Fprint(l.out, optionLabels(admin.ManufacturerOptions(manufacturers, "")))
		var v string
		if v, err = l.prompt("Manufacturer", itoaOrEmpty64(in.ManufacturerID)); err == nil {
			in.ManufacturerID, err = resolveManufacturer(manufacturers, v)
		}
	}
	num("Release year", &in.ReleaseYear)
	num("Memory size (GB)", &in.MemorySize)
	if err == nil {
		fmt.Fprint(l.out, optionLabels(admin.MemoryTypeOptions("")))
	}
	str("Memory type", &in.MemoryType)
	num("Bus width (bits)", &in.BusWidth)
	num("Base clock (MHz)", &in.BaseClock)
	str("Max resolution", &in.MaxResolution)
	num("PSU power (W)", &in.PSUPowerRequirement)
	if err == nil {
		var v string
		def := ""
		if in.Price != 0 {
			def = strconv.FormatFloat(in.Price, 'f', -1, 64)
		}
		if v, err = l.prompt("Price", def); err == nil && v != "" {
			var p float64
			if p, err = strconv.ParseFloat(v, 64); err != nil {
				err = fmt.Errorf("price: %q is not a number", v)
			}
			in.Price = p
		}
	}
	return in, err
}

func itoaOrEmpty(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func itoaOrEmpty64(n int64) string {
	if n == 0 {
		return ""
	}
	return strconv.FormatInt(n, 10)
}
