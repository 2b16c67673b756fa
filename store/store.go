// Package store keeps named volumes and point sets for the path tools.
//
// It stands in for the application repository that owns grids and surfaces:
// distance fields are saved back as new named grids and extracted paths as
// named point sets. Two implementations share the Repository interface:
// an in-memory map for tests and embedding, and a SQLite file.
package store

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/voxpath/volume"
)

// Sentinel errors.
var (
	// ErrNotFound is returned when no object has the requested name and kind.
	ErrNotFound = errors.New("store: object not found")
	// ErrCorrupt is returned when a stored blob cannot be decoded.
	ErrCorrupt = errors.New("store: corrupt object")
	// ErrClosed is returned by a repository after Close.
	ErrClosed = errors.New("store: repository closed")
)

// Kind distinguishes stored object types.
type Kind string

const (
	KindGrid   Kind = "grid"
	KindPoints Kind = "points"
)

// Entry describes one stored object.
type Entry struct {
	Name string
	Kind Kind
	// Dims is set for grids.
	Dims [3]int
	// Count is the voxel count for grids and the point count for point sets.
	Count int
}

// Repository is a key-value store of named grids and point sets.
// Put methods return the name used; an empty name is replaced by a new UUID.
// Putting an existing name of the same kind replaces it.
type Repository interface {
	PutGrid(ctx context.Context, name string, g *volume.Grid) (string, error)
	Grid(ctx context.Context, name string) (*volume.Grid, error)
	PutPoints(ctx context.Context, name string, pts []r3.Vec) (string, error)
	Points(ctx context.Context, name string) ([]r3.Vec, error)
	List(ctx context.Context) ([]Entry, error)
	Delete(ctx context.Context, kind Kind, name string) error
	Close() error
}

func nameOrNew(name string) string {
	if name == "" {
		return uuid.NewString()
	}
	return name
}

// encodeFloats packs values as little-endian float64.
func encodeFloats(vals []float64) []byte {
	buf := make([]byte, 8*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint64(buf[8*i:], math.Float64bits(v))
	}
	return buf
}

func decodeFloats(buf []byte) ([]float64, error) {
	if len(buf)%8 != 0 {
		return nil, fmt.Errorf("%w: blob length %d is not a multiple of 8", ErrCorrupt, len(buf))
	}
	vals := make([]float64, len(buf)/8)
	for i := range vals {
		vals[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[8*i:]))
	}
	return vals, nil
}

func encodePoints(pts []r3.Vec) []byte {
	flat := make([]float64, 0, 3*len(pts))
	for _, p := range pts {
		flat = append(flat, p.X, p.Y, p.Z)
	}
	return encodeFloats(flat)
}

func decodePoints(buf []byte) ([]r3.Vec, error) {
	flat, err := decodeFloats(buf)
	if err != nil {
		return nil, err
	}
	if len(flat)%3 != 0 {
		return nil, fmt.Errorf("%w: %d coordinates do not form points", ErrCorrupt, len(flat))
	}
	pts := make([]r3.Vec, len(flat)/3)
	for i := range pts {
		pts[i] = r3.Vec{X: flat[3*i], Y: flat[3*i+1], Z: flat[3*i+2]}
	}
	return pts, nil
}
