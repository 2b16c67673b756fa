package volume

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Grid is an immutable 3-D scalar volume.
// Dims holds (nx, ny, nz); values are stored x-fastest.
type Grid struct {
	dims    [3]int
	spacing r3.Vec
	origin  r3.Vec
	values  []float64
}

// NewGrid constructs a Grid from a flat, x-fastest value slice.
// It deep-copies values so later changes by the caller are not observed.
// Returns ErrInvalidGrid if any dimension is ≤ 0, any spacing component is
// ≤ 0 or not finite, or len(values) != nx*ny*nz.
// Complexity: O(N) time and memory.
func NewGrid(dims [3]int, spacing, origin r3.Vec, values []float64) (*Grid, error) {
	if err := validateShape(dims, spacing); err != nil {
		return nil, err
	}
	n := dims[0] * dims[1] * dims[2]
	if len(values) != n {
		return nil, fmt.Errorf("%w: %d values for %dx%dx%d grid", ErrInvalidGrid, len(values), dims[0], dims[1], dims[2])
	}
	vals := make([]float64, n)
	copy(vals, values)

	return &Grid{dims: dims, spacing: spacing, origin: origin, values: vals}, nil
}

// FromFunc builds a Grid by sampling fn at every voxel centre.
// fn receives the voxel index and its physical position.
func FromFunc(dims [3]int, spacing, origin r3.Vec, fn func(x Index, p r3.Vec) float64) (*Grid, error) {
	if err := validateShape(dims, spacing); err != nil {
		return nil, err
	}
	g := &Grid{dims: dims, spacing: spacing, origin: origin}
	g.values = make([]float64, dims[0]*dims[1]*dims[2])
	for off := range g.values {
		x := g.IndexOf(off)
		g.values[off] = fn(x, g.Point(x))
	}

	return g, nil
}

func validateShape(dims [3]int, spacing r3.Vec) error {
	for axis, n := range dims {
		if n <= 0 {
			return fmt.Errorf("%w: dimension %d is %d", ErrInvalidGrid, axis, n)
		}
	}
	for axis, s := range [3]float64{spacing.X, spacing.Y, spacing.Z} {
		if !(s > 0) || math.IsInf(s, 0) {
			return fmt.Errorf("%w: spacing %d is %v", ErrInvalidGrid, axis, s)
		}
	}
	// compare per factor; the full product may overflow int
	if dims[0] > math.MaxInt32 || dims[1] > math.MaxInt32/dims[0] || dims[2] > math.MaxInt32/(dims[0]*dims[1]) {
		return fmt.Errorf("%w: %dx%dx%d voxels is too large", ErrInvalidGrid, dims[0], dims[1], dims[2])
	}

	return nil
}

// Dims returns (nx, ny, nz).
func (g *Grid) Dims() [3]int { return g.dims }

// Spacing returns the physical voxel size along each axis.
func (g *Grid) Spacing() r3.Vec { return g.spacing }

// Origin returns the physical position of voxel (0,0,0).
func (g *Grid) Origin() r3.Vec { return g.origin }

// Len returns the number of voxels.
func (g *Grid) Len() int { return len(g.values) }

// InBounds reports whether x lies inside the grid.
// Complexity: O(1).
func (g *Grid) InBounds(x Index) bool {
	return x.I >= 0 && x.I < g.dims[0] &&
		x.J >= 0 && x.J < g.dims[1] &&
		x.K >= 0 && x.K < g.dims[2]
}

// Offset maps x to its position in the flat value slice.
// The caller must ensure InBounds(x).
func (g *Grid) Offset(x Index) int {
	return x.I + g.dims[0]*(x.J+g.dims[1]*x.K)
}

// IndexOf converts a flat offset back to an Index.
func (g *Grid) IndexOf(off int) Index {
	nx, ny := g.dims[0], g.dims[1]
	return Index{off % nx, (off / nx) % ny, off / (nx * ny)}
}

// At returns the intensity of voxel x. The caller must ensure InBounds(x).
func (g *Grid) At(x Index) float64 {
	return g.values[g.Offset(x)]
}

// Values returns a copy of the flat value slice.
func (g *Grid) Values() []float64 {
	out := make([]float64, len(g.values))
	copy(out, g.values)
	return out
}

// Point returns the physical centre of voxel x.
func (g *Grid) Point(x Index) r3.Vec {
	return r3.Vec{
		X: g.origin.X + float64(x.I)*g.spacing.X,
		Y: g.origin.Y + float64(x.J)*g.spacing.Y,
		Z: g.origin.Z + float64(x.K)*g.spacing.Z,
	}
}

// Nearest converts a physical position to the closest voxel index.
// ok is false when the rounded index falls outside the grid.
func (g *Grid) Nearest(p r3.Vec) (x Index, ok bool) {
	rel := r3.Sub(p, g.origin)
	f := [3]float64{
		math.Round(rel.X / g.spacing.X),
		math.Round(rel.Y / g.spacing.Y),
		math.Round(rel.Z / g.spacing.Z),
	}
	for axis, v := range f {
		// NaN fails both comparisons.
		if !(v >= 0 && v < float64(g.dims[axis])) {
			return Index{}, false
		}
	}
	x = Index{int(f[0]), int(f[1]), int(f[2])}
	return x, true
}
