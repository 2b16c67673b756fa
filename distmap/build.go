package distmap

import (
	"container/heap"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/voxpath/volume"
)

// Build propagates a wavefront from seed through the voxels of g admitted
// by pred and returns the resulting distance field.
//
// Steps:
//  1. Apply options; reject invalid ones with ErrOptionViolation.
//  2. Validate seed: ErrInvalidSeed if out of bounds, ErrSeedNotAdmissible
//     if pred rejects it.
//  3. Set every distance to Unreachable, the seed to 0.
//  4. Expand: under CostUnit a FIFO frontier assigns each newly reached
//     voxel its parent's distance + 1; under CostEuclidean a lazy min-heap
//     settles voxels in order of physical path length.
//
// Every admissible voxel connected to seed under the chosen connectivity ends
// with its shortest-path distance; all others stay Unreachable.
//
// Complexity: O(N·d) for CostUnit, O(N·d·log N) for CostEuclidean; O(N) memory.
func Build(g *volume.Grid, pred volume.Predicate, seed volume.Index, opts ...Option) (*Field, error) {
	if g == nil || g.Len() == 0 {
		return nil, fmt.Errorf("%w: build: grid is nil or empty", ErrInvalidGrid)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	if !g.InBounds(seed) {
		d := g.Dims()
		return nil, fmt.Errorf("%w: build: seed %v outside %dx%dx%d grid", ErrInvalidSeed, seed, d[0], d[1], d[2])
	}
	mask := volume.NewMask(g, pred)
	if !mask.Admissible(seed) {
		return nil, fmt.Errorf("%w: build: seed %v has intensity %v", ErrSeedNotAdmissible, seed, g.At(seed))
	}

	f := &Field{
		grid:    g,
		mask:    mask,
		conn:    o.Conn,
		cost:    o.Cost,
		seed:    seed,
		dist:    make([]float64, g.Len()),
		offsets: o.Conn.Offsets(),
		opts:    o,
	}
	f.steps = make([]float64, len(f.offsets))
	for k, d := range f.offsets {
		if o.Cost == CostEuclidean {
			f.steps[k] = volume.StepLength(d, g.Spacing())
		} else {
			f.steps[k] = 1
		}
	}
	for i := range f.dist {
		f.dist[i] = math.Inf(1)
	}

	w := &wavefront{field: f}
	if o.Cost == CostUnit {
		w.fifo()
	} else {
		w.ordered()
	}

	o.Logger.Debug("distance field built",
		zap.Stringer("seed", seed),
		zap.Stringer("connectivity", o.Conn),
		zap.Stringer("cost", o.Cost),
		zap.Int("admissible", mask.Count()),
		zap.Int("reached", f.reached),
		zap.Float64("max", f.Max()),
	)

	return f, nil
}

// wavefront holds the mutable state of one propagation.
type wavefront struct {
	field *Field
}

// fifo is the uniform-cost expansion: each voxel is labelled exactly once,
// the first time the frontier touches it.
func (w *wavefront) fifo() {
	f := w.field
	g := f.grid
	s := g.Offset(f.seed)
	f.dist[s] = 0
	queue := make([]int, 1, 64)
	queue[0] = s

	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		ux := g.IndexOf(u)
		w.settle(ux, u)
		for k, d := range f.offsets {
			vx := ux.Shift(d)
			if !f.mask.Admissible(vx) {
				continue
			}
			v := g.Offset(vx)
			if !math.IsInf(f.dist[v], 1) {
				continue
			}
			f.dist[v] = f.dist[u] + f.steps[k]
			queue = append(queue, v)
		}
	}
}

// ordered settles voxels by increasing distance using lazy decrease-key:
// improved distances are pushed again and stale entries skipped on pop.
func (w *wavefront) ordered() {
	f := w.field
	g := f.grid
	settled := make([]bool, len(f.dist))
	s := g.Offset(f.seed)
	f.dist[s] = 0
	pq := &voxelPQ{{off: s, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(voxelItem)
		u := item.off
		if settled[u] {
			continue
		}
		settled[u] = true
		ux := g.IndexOf(u)
		w.settle(ux, u)

		for k, d := range f.offsets {
			vx := ux.Shift(d)
			if !f.mask.Admissible(vx) {
				continue
			}
			v := g.Offset(vx)
			if settled[v] {
				continue
			}
			nd := f.dist[u] + f.steps[k]
			if nd >= f.dist[v] {
				continue
			}
			f.dist[v] = nd
			heap.Push(pq, voxelItem{off: v, dist: nd})
		}
	}
}

func (w *wavefront) settle(x volume.Index, off int) {
	w.field.reached++
	w.field.opts.OnSettle(x, w.field.dist[off])
}

// voxelItem is a heap entry: flat offset and tentative distance.
type voxelItem struct {
	off  int
	dist float64
}

// voxelPQ is a min-heap of voxelItem ordered by dist, then offset so that
// equal distances pop in a reproducible order.
type voxelPQ []voxelItem

func (pq voxelPQ) Len() int { return len(pq) }

func (pq voxelPQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].off < pq[j].off
}

func (pq voxelPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *voxelPQ) Push(x any) { *pq = append(*pq, x.(voxelItem)) }

func (pq *voxelPQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
