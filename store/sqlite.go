package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
	_ "modernc.org/sqlite"

	"github.com/katalvlaran/voxpath/volume"
)

const schema = `
	CREATE TABLE IF NOT EXISTS grids (
		name TEXT PRIMARY KEY,
		nx INTEGER NOT NULL,
		ny INTEGER NOT NULL,
		nz INTEGER NOT NULL,
		sx DOUBLE NOT NULL,
		sy DOUBLE NOT NULL,
		sz DOUBLE NOT NULL,
		ox DOUBLE NOT NULL,
		oy DOUBLE NOT NULL,
		oz DOUBLE NOT NULL,
		voxels BLOB NOT NULL,
		created TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS point_sets (
		name TEXT PRIMARY KEY,
		count INTEGER NOT NULL,
		coords BLOB NOT NULL,
		created TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
`

// SQLite is a Repository stored in a single SQLite database file.
type SQLite struct {
	*sql.DB
}

// OpenSQLite opens (or creates) the database at path and ensures the schema.
// Use ":memory:" for a throwaway database.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	// a single connection keeps ":memory:" databases alive and serialises writers
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	return &SQLite{db}, nil
}

// PutGrid upserts g with its geometry and voxels as a float64 blob.
func (s *SQLite) PutGrid(ctx context.Context, name string, g *volume.Grid) (string, error) {
	if g == nil {
		return "", fmt.Errorf("%w: nil grid", volume.ErrInvalidGrid)
	}
	name = nameOrNew(name)
	d, sp, o := g.Dims(), g.Spacing(), g.Origin()
	_, err := s.ExecContext(ctx, `
		INSERT OR REPLACE INTO grids (name, nx, ny, nz, sx, sy, sz, ox, oy, oz, voxels)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		name, d[0], d[1], d[2], sp.X, sp.Y, sp.Z, o.X, o.Y, o.Z, encodeFloats(g.Values()))
	if err != nil {
		return "", fmt.Errorf("store: put grid %q: %w", name, err)
	}
	return name, nil
}

// Grid loads the grid stored under name, or returns ErrNotFound.
// A blob that does not match the stored dimensions is ErrCorrupt.
func (s *SQLite) Grid(ctx context.Context, name string) (*volume.Grid, error) {
	var (
		d    [3]int
		sp   r3.Vec
		o    r3.Vec
		blob []byte
	)
	err := s.QueryRowContext(ctx, `
		SELECT nx, ny, nz, sx, sy, sz, ox, oy, oz, voxels FROM grids WHERE name = ?`, name).
		Scan(&d[0], &d[1], &d[2], &sp.X, &sp.Y, &sp.Z, &o.X, &o.Y, &o.Z, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: grid %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get grid %q: %w", name, err)
	}
	vals, err := decodeFloats(blob)
	if err != nil {
		return nil, fmt.Errorf("grid %q: %w", name, err)
	}
	g, err := volume.NewGrid(d, sp, o, vals)
	if err != nil {
		return nil, fmt.Errorf("%w: grid %q: %v", ErrCorrupt, name, err)
	}
	return g, nil
}

// PutPoints upserts pts as a flat x,y,z float64 blob.
func (s *SQLite) PutPoints(ctx context.Context, name string, pts []r3.Vec) (string, error) {
	name = nameOrNew(name)
	_, err := s.ExecContext(ctx,
		"INSERT OR REPLACE INTO point_sets (name, count, coords) VALUES (?, ?, ?)",
		name, len(pts), encodePoints(pts))
	if err != nil {
		return "", fmt.Errorf("store: put points %q: %w", name, err)
	}
	return name, nil
}

// Points loads the point set stored under name, or returns ErrNotFound.
func (s *SQLite) Points(ctx context.Context, name string) ([]r3.Vec, error) {
	var blob []byte
	err := s.QueryRowContext(ctx, "SELECT coords FROM point_sets WHERE name = ?", name).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: points %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get points %q: %w", name, err)
	}
	pts, err := decodePoints(blob)
	if err != nil {
		return nil, fmt.Errorf("points %q: %w", name, err)
	}
	return pts, nil
}

// List returns grids then point sets, each sorted by name.
func (s *SQLite) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.QueryContext(ctx, `
		SELECT name, 'grid', nx, ny, nz, nx*ny*nz FROM grids
		UNION ALL
		SELECT name, 'points', 0, 0, 0, count FROM point_sets
		ORDER BY 2, 1`)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var kind string
		if err := rows.Scan(&e.Name, &kind, &e.Dims[0], &e.Dims[1], &e.Dims[2], &e.Count); err != nil {
			return nil, err
		}
		e.Kind = Kind(kind)
		if e.Kind == KindPoints {
			e.Dims = [3]int{}
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the object of the given kind, or returns ErrNotFound.
func (s *SQLite) Delete(ctx context.Context, kind Kind, name string) error {
	var table string
	switch kind {
	case KindGrid:
		table = "grids"
	case KindPoints:
		table = "point_sets"
	default:
		return fmt.Errorf("%w: %s %q", ErrNotFound, kind, name)
	}
	res, err := s.ExecContext(ctx, "DELETE FROM "+table+" WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("store: delete %s %q: %w", kind, name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s %q", ErrNotFound, kind, name)
	}
	return nil
}
