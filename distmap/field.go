package distmap

import (
	"math"

	"github.com/katalvlaran/voxpath/volume"
)

// Unreached is the value ToGrid writes for unreachable voxels.
const Unreached = -1.0

// Field is the immutable result of Build: per-voxel distance from the seed
// through the admissible region, or Unreachable.
//
// A Field is owned by the caller that built it. Reads are safe from any
// goroutine as long as nothing mutates it, and nothing in this package does.
type Field struct {
	grid    *volume.Grid
	mask    *volume.Mask
	conn    volume.Connectivity
	cost    Cost
	seed    volume.Index
	dist    []float64
	reached int
	offsets [][3]int
	steps   []float64
	opts    Options
}

// Grid returns the source volume.
func (f *Field) Grid() *volume.Grid { return f.grid }

// Mask returns the admissibility mask computed during Build.
func (f *Field) Mask() *volume.Mask { return f.mask }

// Connectivity returns the topology the field was built with.
func (f *Field) Connectivity() volume.Connectivity { return f.conn }

// Cost returns the step cost model the field was built with.
func (f *Field) Cost() Cost { return f.cost }

// Seed returns the propagation origin.
func (f *Field) Seed() volume.Index { return f.seed }

// At returns the distance of voxel x, or Unreachable when x is out of
// bounds or was never reached.
func (f *Field) At(x volume.Index) float64 {
	if !f.grid.InBounds(x) {
		return math.Inf(1)
	}
	return f.dist[f.grid.Offset(x)]
}

// Reachable reports whether x received a finite distance.
func (f *Field) Reachable(x volume.Index) bool {
	return !math.IsInf(f.At(x), 1)
}

// ReachedCount returns the number of voxels with a finite distance.
func (f *Field) ReachedCount() int { return f.reached }

// Max returns the largest finite distance in the field.
func (f *Field) Max() float64 {
	m := 0.0
	for _, d := range f.dist {
		if d > m && !math.IsInf(d, 1) {
			m = d
		}
	}
	return m
}

// Values returns a copy of the flat, x-fastest distance slice.
func (f *Field) Values() []float64 {
	out := make([]float64, len(f.dist))
	copy(out, f.dist)
	return out
}

// ToGrid exposes the field as a new volume sharing the source geometry.
// Unreachable voxels are written as Unreached so the result can be stored
// by collaborators that do not accept infinities.
func (f *Field) ToGrid() (*volume.Grid, error) {
	vals := f.Values()
	for i, d := range vals {
		if math.IsInf(d, 1) {
			vals[i] = Unreached
		}
	}
	return volume.NewGrid(f.grid.Dims(), f.grid.Spacing(), f.grid.Origin(), vals)
}
