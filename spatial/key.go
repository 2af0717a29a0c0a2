package spatial

import (
	"math"

	"activeindex/geom"
)

// cellSize is the fixed edge length of a spatial cell in world units.
const cellSize = 16

// Key identifies a cell by its integer coordinate. It is comparable and
// usable directly as a Go map key — equality is triplewise over CX/CY/CZ,
// exactly the semantics spec'd for SpatialKey. Hash() additionally exposes
// a deterministic 64-bit mix of the three fields plus explicit zero padding,
// for callers that need a portable hash rather than Go's built-in map
// hashing (e.g. serializing a cell identity, or the property tests in
// key_test.go that pin the padding-zeroing requirement).
type Key struct {
	CX, CY, CZ int16
	pad        uint16
}

// FromWorld computes the cell containing p using round-outward division by
// 16: each axis rounds to the nearest integer, then divides by 16 with an
// arithmetic right shift, biased by ±1 (away from zero) on a non-zero
// remainder. The resulting cell [16*c, 16*c+16) contains the point only when
// the rounded coordinate is an exact multiple of 16; otherwise the bias
// places it one cell further out. Using the same rounding policy
// for insertion and query means a point exactly on a cell boundary is
// discoverable by a query whose box touches that boundary.
func FromWorld(p geom.Vec3f) Key {
	return Key{
		CX: roundOutwardCell(p.X),
		CY: roundOutwardCell(p.Y),
		CZ: roundOutwardCell(p.Z),
	}
}

// FromRaw constructs a Key directly from cell-space coordinates, without
// shifting — used by query code that already works in cell space (e.g. the
// cell-walk loops in query.go).
func FromRaw(cx, cy, cz int16) Key {
	return Key{CX: cx, CY: cy, CZ: cz}
}

// Hash returns a deterministic 64-bit mix of the key's three 16-bit fields
// and its explicitly-zeroed padding. Two logically equal keys always
// produce the same bit pattern because pad is never set to anything but 0.
func (k Key) Hash() uint64 {
	return uint64(uint16(k.CX))<<48 |
		uint64(uint16(k.CY))<<32 |
		uint64(uint16(k.CZ))<<16 |
		uint64(k.pad)
}

func roundOutwardCell(v float32) int16 {
	r := int32(math.Round(float64(v)))
	rem := r%cellSize != 0
	cell := r >> 4
	switch {
	case r < 0 && rem:
		cell--
	case r >= 0 && rem:
		cell++
	}
	return int16(cell)
}
