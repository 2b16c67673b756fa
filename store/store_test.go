package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/voxpath/store"
	"github.com/katalvlaran/voxpath/volume"
)

func sampleGrid(t *testing.T) *volume.Grid {
	t.Helper()
	g, err := volume.NewGrid([3]int{3, 2, 1}, r3.Vec{X: 1, Y: 0.5, Z: 2}, r3.Vec{X: -1, Y: 2, Z: 0},
		[]float64{0, 1, 2, -3.5, 4e10, 0.125})
	require.NoError(t, err)
	return g
}

// repositories opens every implementation for the shared contract tests.
func repositories(t *testing.T) map[string]store.Repository {
	t.Helper()
	db, err := store.OpenSQLite(filepath.Join(t.TempDir(), "voxpath.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return map[string]store.Repository{
		"memory": store.NewMemory(),
		"sqlite": db,
	}
}

func TestRepository_GridRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			g := sampleGrid(t)
			key, err := repo.PutGrid(ctx, "scan", g)
			require.NoError(t, err)
			require.Equal(t, "scan", key)

			got, err := repo.Grid(ctx, "scan")
			require.NoError(t, err)
			require.Equal(t, g.Dims(), got.Dims())
			require.Equal(t, g.Spacing(), got.Spacing())
			require.Equal(t, g.Origin(), got.Origin())
			if diff := cmp.Diff(g.Values(), got.Values()); diff != "" {
				t.Errorf("voxels mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRepository_PointsRoundTrip(t *testing.T) {
	ctx := context.Background()
	pts := []r3.Vec{{X: 1, Y: 2, Z: 3}, {X: -0.5, Y: 0, Z: 7.25}}
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			_, err := repo.PutPoints(ctx, "path", pts)
			require.NoError(t, err)
			got, err := repo.Points(ctx, "path")
			require.NoError(t, err)
			require.Equal(t, pts, got)

			// returned slices are independent of the stored copy
			got[0].X = 99
			again, err := repo.Points(ctx, "path")
			require.NoError(t, err)
			require.Equal(t, 1.0, again[0].X)
		})
	}
}

func TestRepository_GeneratedName(t *testing.T) {
	ctx := context.Background()
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			a, err := repo.PutGrid(ctx, "", sampleGrid(t))
			require.NoError(t, err)
			b, err := repo.PutPoints(ctx, "", nil)
			require.NoError(t, err)
			require.Len(t, a, 36)
			require.NotEqual(t, a, b)

			_, err = repo.Grid(ctx, a)
			require.NoError(t, err)
			pts, err := repo.Points(ctx, b)
			require.NoError(t, err)
			require.Empty(t, pts)
		})
	}
}

func TestRepository_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			_, err := repo.PutGrid(ctx, "b", sampleGrid(t))
			require.NoError(t, err)
			_, err = repo.PutGrid(ctx, "a", sampleGrid(t))
			require.NoError(t, err)
			_, err = repo.PutPoints(ctx, "a", []r3.Vec{{}, {}})
			require.NoError(t, err)

			list, err := repo.List(ctx)
			require.NoError(t, err)
			want := []store.Entry{
				{Name: "a", Kind: store.KindGrid, Dims: [3]int{3, 2, 1}, Count: 6},
				{Name: "b", Kind: store.KindGrid, Dims: [3]int{3, 2, 1}, Count: 6},
				{Name: "a", Kind: store.KindPoints, Count: 2},
			}
			require.Equal(t, want, list)

			require.NoError(t, repo.Delete(ctx, store.KindGrid, "a"))
			_, err = repo.Grid(ctx, "a")
			require.True(t, errors.Is(err, store.ErrNotFound))
			// the point set sharing the name survives
			_, err = repo.Points(ctx, "a")
			require.NoError(t, err)

			err = repo.Delete(ctx, store.KindGrid, "a")
			require.True(t, errors.Is(err, store.ErrNotFound))
		})
	}
}

func TestRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			_, err := repo.Grid(ctx, "missing")
			require.True(t, errors.Is(err, store.ErrNotFound))
			require.Contains(t, err.Error(), `"missing"`)
			_, err = repo.Points(ctx, "missing")
			require.True(t, errors.Is(err, store.ErrNotFound))
			err = repo.Delete(ctx, store.Kind("mesh"), "missing")
			require.True(t, errors.Is(err, store.ErrNotFound))
		})
	}
}

func TestRepository_NilGrid(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			_, err := repo.PutGrid(context.Background(), "x", nil)
			require.True(t, errors.Is(err, volume.ErrInvalidGrid))
		})
	}
}

func TestSQLite_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reopen.db")

	db, err := store.OpenSQLite(path)
	require.NoError(t, err)
	_, err = db.PutGrid(ctx, "kept", sampleGrid(t))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = store.OpenSQLite(path)
	require.NoError(t, err)
	defer db.Close()
	g, err := db.Grid(ctx, "kept")
	require.NoError(t, err)
	require.Equal(t, 4e10, g.At(volume.Index{I: 1, J: 1}))
}

func TestSQLite_Corrupt(t *testing.T) {
	ctx := context.Background()
	db, err := store.OpenSQLite(filepath.Join(t.TempDir(), "corrupt.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.ExecContext(ctx,
		"INSERT INTO point_sets (name, count, coords) VALUES (?, ?, ?)", "bad", 1, []byte{1, 2, 3})
	require.NoError(t, err)
	_, err = db.Points(ctx, "bad")
	require.True(t, errors.Is(err, store.ErrCorrupt))

	_, err = db.ExecContext(ctx, `
		INSERT INTO grids (name, nx, ny, nz, sx, sy, sz, ox, oy, oz, voxels)
		VALUES ('short', 2, 2, 2, 1, 1, 1, 0, 0, 0, ?)`, make([]byte, 8))
	require.NoError(t, err)
	_, err = db.Grid(ctx, "short")
	require.True(t, errors.Is(err, store.ErrCorrupt))
}

func TestMemory_Closed(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	require.NoError(t, m.Close())
	_, err := m.PutPoints(ctx, "x", nil)
	require.True(t, errors.Is(err, store.ErrClosed))
	_, err = m.List(ctx)
	require.True(t, errors.Is(err, store.ErrClosed))
}
