package volume

import (
	"errors"
	"fmt"
)

// Sentinel errors for volume construction.
var (
	// ErrInvalidGrid indicates bad dimensions, spacing or value count.
	ErrInvalidGrid = errors.New("volume: invalid grid")
	// ErrInvalidConnectivity indicates an unknown connectivity selector.
	ErrInvalidConnectivity = errors.New("volume: invalid connectivity")
)

// Index addresses a single voxel by its integer lattice coordinates.
type Index struct {
	I, J, K int
}

// Shift returns the index displaced by offset d.
func (x Index) Shift(d [3]int) Index {
	return Index{x.I + d[0], x.J + d[1], x.K + d[2]}
}

// String renders the index as "(i,j,k)".
func (x Index) String() string {
	return fmt.Sprintf("(%d,%d,%d)", x.I, x.J, x.K)
}

// Predicate reports whether a voxel intensity is admissible.
type Predicate func(v float64) bool

// Above admits intensities greater than or equal to level.
func Above(level float64) Predicate {
	return func(v float64) bool { return v >= level }
}

// Below admits intensities less than or equal to level.
func Below(level float64) Predicate {
	return func(v float64) bool { return v <= level }
}
