package view

import "strings"

// Criteria are the transient search, filter and sort parameters of the
// device list. The zero value selects every device in store order.
type Criteria struct {
	Search         string
	ManufacturerID string
	MemoryType     string
	Sort           string
}

// IsZero reports whether no criterion is active.
func (c Criteria) IsZero() bool {
	return c == Criteria{}
}

// Direction of a sort.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// SortKey is a decoded sort token such as "price_asc".
type SortKey struct {
	Field     string
	Direction Direction
}

// ParseSort splits a "<field>_<direction>" token. Only "asc" ascends; any
// other direction, including a missing one, descends. The field is not
// checked here, unknown fields are ignored by Derive.
func ParseSort(token string) (SortKey, bool) {
	if token == "" {
		return SortKey{}, false
	}
	field, dir, _ := strings.Cut(token, "_")
	dir, _, _ = strings.Cut(dir, "_")
	key := SortKey{Field: field, Direction: Descending}
	if dir == "asc" {
		key.Direction = Ascending
	}
	return key, true
}

func (k SortKey) String() string {
	if k.Direction == Ascending {
		return k.Field + "_asc"
	}
	return k.Field + "_desc"
}
