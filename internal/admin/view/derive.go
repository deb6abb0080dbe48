// Package view derives the displayed device list from the catalog store and
// the active criteria.
package view

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/gpucatalog/gpucatalog/pkg/api"
)

// Derive returns a new slice with the devices matching c, in the order c
// selects. Stages run in a fixed order: search, manufacturer filter, memory
// type filter, sort. The input slice is never modified.
func Derive(devices []api.Device, c Criteria) []api.Device {
	out := slices.Clone(devices)
	if out == nil {
		out = []api.Device{}
	}
	out = Search(out, c.Search)
	out = FilterManufacturer(out, c.ManufacturerID)
	out = FilterMemoryType(out, c.MemoryType)
	if key, ok := ParseSort(c.Sort); ok {
		Sort(out, key)
	}
	return out
}

// Search keeps devices whose manufacturer name or device name contains term,
// ignoring case. An empty term keeps everything. Like the filters below it
// compacts devices in place and returns the shortened slice.
func Search(devices []api.Device, term string) []api.Device {
	term = strings.ToLower(term)
	if term == "" {
		return devices
	}
	return slices.DeleteFunc(devices, func(d api.Device) bool {
		manufacturer := strings.ToLower(d.ManufacturerName())
		model := strings.ToLower(d.Name)
		return !strings.Contains(manufacturer, term) && !strings.Contains(model, term)
	})
}

// FilterManufacturer keeps devices whose manufacturer id, as text, equals id.
func FilterManufacturer(devices []api.Device, id string) []api.Device {
	if id == "" {
		return devices
	}
	return slices.DeleteFunc(devices, func(d api.Device) bool {
		if d.Manufacturer == nil {
			return true
		}
		return strconv.FormatInt(d.Manufacturer.ID, 10) != id
	})
}

// FilterMemoryType keeps devices whose primary specification has the memory
// type. Devices without a specification never match.
func FilterMemoryType(devices []api.Device, memoryType string) []api.Device {
	if memoryType == "" {
		return devices
	}
	return slices.DeleteFunc(devices, func(d api.Device) bool {
		s, ok := d.PrimarySpecification()
		return !ok || string(s.MemoryType) != memoryType
	})
}

// Sort orders devices in place by key. Unknown fields leave the order
// unchanged; equal elements keep their relative order.
func Sort(devices []api.Device, key SortKey) {
	ex, ok := extractors[key.Field]
	if !ok {
		return
	}
	var compare func(a, b *api.Device) int
	if ex.text != nil {
		col := collate.New(language.English)
		compare = func(a, b *api.Device) int {
			return col.CompareString(ex.text(a), ex.text(b))
		}
	} else {
		compare = func(a, b *api.Device) int {
			return cmp.Compare(ex.number(a), ex.number(b))
		}
	}
	slices.SortStableFunc(devices, func(a, b api.Device) int {
		if key.Direction == Descending {
			return compare(&b, &a)
		}
		return compare(&a, &b)
	})
}
