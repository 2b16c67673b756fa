package volume

// Mask is the immutable admissibility field of a Grid under a Predicate.
// It shares the Grid's extents and index layout.
type Mask struct {
	grid  *Grid
	bits  []bool
	count int
}

// NewMask evaluates pred once per voxel of g.
// A nil pred admits nothing.
// Complexity: O(N).
func NewMask(g *Grid, pred Predicate) *Mask {
	m := &Mask{grid: g, bits: make([]bool, len(g.values))}
	if pred == nil {
		return m
	}
	for off, v := range g.values {
		if pred(v) {
			m.bits[off] = true
			m.count++
		}
	}
	return m
}

// Grid returns the grid the mask was computed from.
func (m *Mask) Grid() *Grid { return m.grid }

// Admissible reports whether x is in bounds and passes the predicate.
func (m *Mask) Admissible(x Index) bool {
	return m.grid.InBounds(x) && m.bits[m.grid.Offset(x)]
}

// AdmissibleAt is Admissible for a flat offset the caller knows is valid.
func (m *Mask) AdmissibleAt(off int) bool {
	return m.bits[off]
}

// Count returns the number of admissible voxels.
func (m *Mask) Count() int { return m.count }
