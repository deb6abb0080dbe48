package types

import "slices"

// MemoryType is the memory technology of a graphics card.
type MemoryType string

const (
	MemoryTypeGDDR6  MemoryType = "GDDR6"
	MemoryTypeGDDR6X MemoryType = "GDDR6X"
	MemoryTypeGDDR5  MemoryType = "GDDR5"
	MemoryTypeGDDR5X MemoryType = "GDDR5X"
	MemoryTypeHBM2   MemoryType = "HBM2"
	MemoryTypeHBM2E  MemoryType = "HBM2E"
	MemoryTypeHBM3   MemoryType = "HBM3"
	MemoryTypeLPDDR4 MemoryType = "LPDDR4"
	MemoryTypeLPDDR5 MemoryType = "LPDDR5"
)

var memoryTypes = []MemoryType{
	MemoryTypeGDDR6,
	MemoryTypeGDDR6X,
	MemoryTypeGDDR5,
	MemoryTypeGDDR5X,
	MemoryTypeHBM2,
	MemoryTypeHBM2E,
	MemoryTypeHBM3,
	MemoryTypeLPDDR4,
	MemoryTypeLPDDR5,
}

// MemoryTypes returns the known memory types in display order.
func MemoryTypes() []MemoryType {
	return slices.Clone(memoryTypes)
}

func (m MemoryType) IsValid() bool {
	return slices.Contains(memoryTypes, m)
}

func (m MemoryType) String() string {
	return string(m)
}

// DateLayout is the ISO calendar date format used on the wire.
const DateLayout = "2006-01-02"
