package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/voxpath/volume"
)

// Memory is a Repository backed by maps. Grids are immutable so they are
// stored by reference; point sets are copied in and out.
// Safe for concurrent use.
type Memory struct {
	mu     sync.RWMutex
	grids  map[string]*volume.Grid
	points map[string][]r3.Vec
	closed bool
}

// NewMemory returns an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{
		grids:  make(map[string]*volume.Grid),
		points: make(map[string][]r3.Vec),
	}
}

// PutGrid stores g under name, replacing any grid with that name.
func (m *Memory) PutGrid(_ context.Context, name string, g *volume.Grid) (string, error) {
	if g == nil {
		return "", fmt.Errorf("%w: nil grid", volume.ErrInvalidGrid)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return "", ErrClosed
	}
	name = nameOrNew(name)
	m.grids[name] = g
	return name, nil
}

// Grid returns the grid stored under name, or ErrNotFound.
func (m *Memory) Grid(_ context.Context, name string) (*volume.Grid, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	g, ok := m.grids[name]
	if !ok {
		return nil, fmt.Errorf("%w: grid %q", ErrNotFound, name)
	}
	return g, nil
}

// PutPoints stores a copy of pts under name.
func (m *Memory) PutPoints(_ context.Context, name string, pts []r3.Vec) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return "", ErrClosed
	}
	name = nameOrNew(name)
	m.points[name] = append([]r3.Vec(nil), pts...)
	return name, nil
}

// Points returns a copy of the point set stored under name, or ErrNotFound.
func (m *Memory) Points(_ context.Context, name string) ([]r3.Vec, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	pts, ok := m.points[name]
	if !ok {
		return nil, fmt.Errorf("%w: points %q", ErrNotFound, name)
	}
	return append([]r3.Vec(nil), pts...), nil
}

// List returns grids then point sets, each sorted by name.
func (m *Memory) List(_ context.Context) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	var grids, pts []Entry
	for name, g := range m.grids {
		grids = append(grids, Entry{Name: name, Kind: KindGrid, Dims: g.Dims(), Count: g.Len()})
	}
	for name, p := range m.points {
		pts = append(pts, Entry{Name: name, Kind: KindPoints, Count: len(p)})
	}
	sort.Slice(grids, func(i, j int) bool { return grids[i].Name < grids[j].Name })
	sort.Slice(pts, func(i, j int) bool { return pts[i].Name < pts[j].Name })
	return append(grids, pts...), nil
}

// Delete removes the object of the given kind, or returns ErrNotFound.
func (m *Memory) Delete(_ context.Context, kind Kind, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	switch kind {
	case KindGrid:
		if _, ok := m.grids[name]; ok {
			delete(m.grids, name)
			return nil
		}
	case KindPoints:
		if _, ok := m.points[name]; ok {
			delete(m.points, name)
			return nil
		}
	}
	return fmt.Errorf("%w: %s %q", ErrNotFound, kind, name)
}

// Close makes every later call fail with ErrClosed.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
