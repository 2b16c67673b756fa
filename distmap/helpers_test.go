package distmap_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/voxpath/volume"
)

var unit = r3.Vec{X: 1, Y: 1, Z: 1}

// gridOf builds a grid from rows written top-down per z slice:
// slices[k][j][i] is voxel (i,j,k).
func gridOf(t testing.TB, slices ...[][]float64) *volume.Grid {
	t.Helper()
	nz, ny, nx := len(slices), len(slices[0]), len(slices[0][0])
	vals := make([]float64, 0, nx*ny*nz)
	for _, s := range slices {
		for _, row := range s {
			vals = append(vals, row...)
		}
	}
	g, err := volume.NewGrid([3]int{nx, ny, nz}, unit, r3.Vec{}, vals)
	require.NoError(t, err)
	return g
}

// filled returns an nx×ny×nz grid of ones.
func filled(t testing.TB, nx, ny, nz int) *volume.Grid {
	t.Helper()
	g, err := volume.FromFunc([3]int{nx, ny, nz}, unit, r3.Vec{}, func(volume.Index, r3.Vec) float64 { return 1 })
	require.NoError(t, err)
	return g
}

// randomGrid fills an n³ grid with values in [0,1) from a fixed seed and
// forces the origin voxel to 1 so it can always serve as a seed.
func randomGrid(t testing.TB, n int, seed int64) *volume.Grid {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	g, err := volume.FromFunc([3]int{n, n, n}, unit, r3.Vec{}, func(x volume.Index, _ r3.Vec) float64 {
		if x == (volume.Index{}) {
			return 1
		}
		return rng.Float64()
	})
	require.NoError(t, err)
	return g
}

func row(n, y int) []volume.Index {
	out := make([]volume.Index, n)
	for i := range out {
		out[i] = volume.Index{I: n - 1 - i, J: y}
	}
	return out
}
