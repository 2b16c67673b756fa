package volume_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/voxpath/volume"
)

// diagonalGrid admits only (0,0,0) and (1,1,0) in a 2×2×1 grid.
func diagonalGrid(t *testing.T) *volume.Mask {
	t.Helper()
	g, err := volume.NewGrid([3]int{2, 2, 1}, unit, r3.Vec{}, []float64{
		1, 0,
		0, 1,
	})
	require.NoError(t, err)
	return volume.NewMask(g, volume.Above(1))
}

// TestReachable_Diagonal verifies corner contact only counts under Conn26.
func TestReachable_Diagonal(t *testing.T) {
	m := diagonalGrid(t)
	g := m.Grid()
	far := g.Offset(volume.Index{I: 1, J: 1})

	r6 := volume.Reachable(m, volume.Index{}, volume.Conn6)
	assert.True(t, r6[0])
	assert.False(t, r6[far])

	r26 := volume.Reachable(m, volume.Index{}, volume.Conn26)
	assert.True(t, r26[far])
}

// TestReachable_InadmissibleSeed yields an empty fill.
func TestReachable_InadmissibleSeed(t *testing.T) {
	m := diagonalGrid(t)
	for _, ok := range volume.Reachable(m, volume.Index{I: 1}, volume.Conn26) {
		assert.False(t, ok)
	}
}

// TestComponents counts islands in a 5×3×2 volume.
func TestComponents(t *testing.T) {
	// z=0:        z=1:
	// 1 1 0 0 1   0 0 0 0 1
	// 0 0 0 0 0   0 0 0 0 0
	// 1 0 0 1 1   0 0 0 0 0
	vals := []float64{
		1, 1, 0, 0, 1,
		0, 0, 0, 0, 0,
		1, 0, 0, 1, 1,

		0, 0, 0, 0, 1,
		0, 0, 0, 0, 0,
		0, 0, 0, 0, 0,
	}
	g, err := volume.NewGrid([3]int{5, 3, 2}, unit, r3.Vec{}, vals)
	require.NoError(t, err)
	m := volume.NewMask(g, volume.Above(1))

	comps := volume.Components(m, volume.Conn6)
	require.Len(t, comps, 4)
	assert.Equal(t, []int{0, 1}, comps[0])
	assert.ElementsMatch(t, []int{4, 19}, comps[1], "stacked voxels join through z")
	assert.Equal(t, []int{10}, comps[2])
	assert.Equal(t, []int{13, 14}, comps[3])

	total := 0
	for _, c := range comps {
		total += len(c)
	}
	assert.Equal(t, m.Count(), total)
}
