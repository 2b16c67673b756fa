package volume

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Connectivity selects neighbour topology: faces only (Conn6) or faces,
// edges and corners (Conn26).
type Connectivity int

const (
	// Conn6 links voxels sharing a face.
	Conn6 Connectivity = 6
	// Conn26 links voxels sharing a face, an edge or a corner.
	Conn26 Connectivity = 26
)

// faceOffsets lists the six face neighbours in a fixed order.
var faceOffsets = [][3]int{
	{-1, 0, 0}, {1, 0, 0},
	{0, -1, 0}, {0, 1, 0},
	{0, 0, -1}, {0, 0, 1},
}

// fullOffsets is faceOffsets followed by the 20 edge and corner
// neighbours in (dz, dy, dx) lexicographic order.
var fullOffsets [][3]int

func init() {
	fullOffsets = append(fullOffsets, faceOffsets...)
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if abs(dx)+abs(dy)+abs(dz) < 2 {
					continue // centre or face
				}
				fullOffsets = append(fullOffsets, [3]int{dx, dy, dz})
			}
		}
	}
}

// Valid reports whether c is Conn6 or Conn26.
func (c Connectivity) Valid() bool {
	return c == Conn6 || c == Conn26
}

// String returns "6" or "26".
func (c Connectivity) String() string {
	return fmt.Sprintf("%d", int(c))
}

// Offsets returns a fresh copy of the neighbour offset table for c.
// Face neighbours always come first, so offset position is a stable
// tie-break key. Returns nil for an invalid Connectivity.
func (c Connectivity) Offsets() [][3]int {
	var src [][3]int
	switch c {
	case Conn6:
		src = faceOffsets
	case Conn26:
		src = fullOffsets
	default:
		return nil
	}
	out := make([][3]int, len(src))
	copy(out, src)
	return out
}

// ParseConnectivity accepts "6" or "26".
func ParseConnectivity(s string) (Connectivity, error) {
	switch s {
	case "6":
		return Conn6, nil
	case "26":
		return Conn26, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidConnectivity, s)
}

// StepLength returns the physical length of a single step along offset d.
func StepLength(d [3]int, spacing r3.Vec) float64 {
	return r3.Norm(r3.Vec{
		X: float64(d[0]) * spacing.X,
		Y: float64(d[1]) * spacing.Y,
		Z: float64(d[2]) * spacing.Z,
	})
}

// Adjacent reports whether a and b are distinct neighbours under c.
func Adjacent(a, b Index, c Connectivity) bool {
	di, dj, dk := abs(a.I-b.I), abs(a.J-b.J), abs(a.K-b.K)
	if di > 1 || dj > 1 || dk > 1 {
		return false
	}
	switch c {
	case Conn6:
		return di+dj+dk == 1
	case Conn26:
		return di+dj+dk >= 1
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
