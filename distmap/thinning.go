package distmap

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/voxpath/volume"
)

// ExtractByThinning erodes the part of the admissible region no farther from
// the seed than goal down to a one-voxel-wide strand and traces it from goal
// toward the seed.
//
// Behaviour:
//  1. Validate arguments and goal as Extract does; maxIterations must be ≥ 1.
//  2. Working region: reached voxels with distance ≤ distance(goal).
//  3. Each pass runs six directional sub-passes, one per face direction,
//     followed by a sweep over all boundary voxels under the field's
//     connectivity. A candidate is removed when its region neighbours stay
//     connected inside its 3×3×3 neighbourhood; seed and goal are never removed.
//     A pass that removes nothing ends thinning as converged.
//  4. The strand is traced from goal by stepping to the single unvisited
//     region neighbour. More than one successor is ErrSkeletonBranching.
//  5. Tracing stops at the first voxel whose original distance is ≤
//     minQuotientStop × distance(goal).
//
// If maxIterations passes all removed something, the current strand is still
// returned when it traces cleanly (Path.Converged is false); otherwise the
// result is ErrThinningDidNotConverge.
//
// Complexity: O(maxIterations·N·d) time, O(N) memory.
func (f *Field) ExtractByThinning(goal volume.Index, minQuotientStop float64, maxIterations int) (*Path, error) {
	if f == nil {
		return nil, ErrNilField
	}
	if err := checkQuotient("thinning", minQuotientStop); err != nil {
		return nil, err
	}
	if maxIterations < 1 {
		return nil, fmt.Errorf("%w: thinning: max iterations %d < 1", ErrOptionViolation, maxIterations)
	}
	if err := f.checkGoal("thinning", goal); err != nil {
		return nil, err
	}

	t := newThinner(f, goal)
	log := f.opts.Logger.With(zap.Stringer("goal", goal))

	iterations, converged := 0, false
	for iterations < maxIterations {
		iterations++
		removed := t.pass()
		log.Debug("thinning pass",
			zap.Int("iteration", iterations),
			zap.Int("removed", removed),
			zap.Int("remaining", t.size),
		)
		if removed == 0 {
			converged = true
			break
		}
	}

	p, err := t.trace(goal, minQuotientStop*f.At(goal))
	if err != nil {
		if !converged {
			return nil, fmt.Errorf("%w: thinning: %d iterations left %d voxels: %v",
				ErrThinningDidNotConverge, iterations, t.size, err)
		}
		return nil, err
	}
	p.Iterations = iterations
	p.Converged = converged

	return p, nil
}

// thinner holds the shrinking working region of one extraction.
type thinner struct {
	f      *Field
	region []bool
	size   int
	seed   int
	goal   int
	// nbrCodes are the box codes of f.offsets; links[c] lists the box
	// cells adjacent to cell c under the field's connectivity.
	nbrCodes []int
	links    [27][]int
}

// boxCentre is the code of (0,0,0) in a 3×3×3 neighbourhood.
const boxCentre = 13

func boxCode(d [3]int) int {
	return (d[0] + 1) + 3*(d[1]+1) + 9*(d[2]+1)
}

func boxOffset(c int) [3]int {
	return [3]int{c%3 - 1, (c/3)%3 - 1, c/9 - 1}
}

func newThinner(f *Field, goal volume.Index) *thinner {
	g := f.grid
	limit := f.At(goal)
	t := &thinner{
		f:      f,
		region: make([]bool, len(f.dist)),
		seed:   g.Offset(f.seed),
		goal:   g.Offset(goal),
	}
	for off, d := range f.dist {
		if d <= limit {
			t.region[off] = true
			t.size++
		}
	}

	for _, d := range f.offsets {
		t.nbrCodes = append(t.nbrCodes, boxCode(d))
	}
	for c := 0; c < 27; c++ {
		if c == boxCentre {
			continue
		}
		p := boxOffset(c)
		for _, d := range f.offsets {
			q := [3]int{p[0] + d[0], p[1] + d[1], p[2] + d[2]}
			if q[0] < -1 || q[0] > 1 || q[1] < -1 || q[1] > 1 || q[2] < -1 || q[2] > 1 {
				continue
			}
			if qc := boxCode(q); qc != boxCentre {
				t.links[c] = append(t.links[c], qc)
			}
		}
	}
	return t
}

func (t *thinner) in(x volume.Index) bool {
	return t.f.grid.InBounds(x) && t.region[t.f.grid.Offset(x)]
}

func (t *thinner) anchored(off int) bool {
	return off == t.seed || off == t.goal
}

// pass runs one full thinning iteration and returns the number of removals.
func (t *thinner) pass() int {
	g := t.f.grid
	removed := 0
	for _, dir := range volume.Conn6.Offsets() {
		var cands []int
		for off, ok := range t.region {
			if !ok || t.anchored(off) {
				continue
			}
			if !t.in(g.IndexOf(off).Shift(dir)) {
				cands = append(cands, off)
			}
		}
		for _, off := range cands {
			if t.region[off] && t.removable(g.IndexOf(off)) {
				t.remove(off)
				removed++
			}
		}
	}

	for off, ok := range t.region {
		if !ok || t.anchored(off) {
			continue
		}
		x := g.IndexOf(off)
		if t.boundary(x) && t.removable(x) {
			t.remove(off)
			removed++
		}
	}
	return removed
}

func (t *thinner) remove(off int) {
	t.region[off] = false
	t.size--
}

// boundary reports whether x has a neighbour outside the region.
func (t *thinner) boundary(x volume.Index) bool {
	for _, d := range t.f.offsets {
		if !t.in(x.Shift(d)) {
			return true
		}
	}
	return false
}

// removable reports whether deleting x keeps its region neighbours
// connected to each other within the 3×3×3 box around x. Local
// connectivity implies the whole region stays connected.
func (t *thinner) removable(x volume.Index) bool {
	off := t.f.grid.Offset(x)
	if t.anchored(off) {
		return false
	}
	var inBox [27]bool
	for c := 0; c < 27; c++ {
		if c != boxCentre {
			inBox[c] = t.in(x.Shift(boxOffset(c)))
		}
	}
	var nbrs []int
	for _, c := range t.nbrCodes {
		if inBox[c] {
			nbrs = append(nbrs, c)
		}
	}
	switch len(nbrs) {
	case 0:
		// isolated voxel: removing it would delete a component
		return false
	case 1:
		return true
	}

	var seen [27]bool
	seen[nbrs[0]] = true
	queue := []int{nbrs[0]}
	for qi := 0; qi < len(queue); qi++ {
		for _, c := range t.links[queue[qi]] {
			if inBox[c] && !seen[c] {
				seen[c] = true
				queue = append(queue, c)
			}
		}
	}
	for _, c := range nbrs[1:] {
		if !seen[c] {
			return false
		}
	}
	return true
}

// trace follows the thinned strand from goal until the stop distance.
func (t *thinner) trace(goal volume.Index, dStop float64) (*Path, error) {
	f := t.f
	g := f.grid
	visited := map[int]bool{t.goal: true}
	p := &Path{}
	cur := goal
	p.push(cur, f.At(cur))

	for f.At(cur) > dStop {
		var next []volume.Index
		toSeed := false
		for _, d := range f.offsets {
			n := cur.Shift(d)
			if !t.in(n) || visited[g.Offset(n)] {
				continue
			}
			if n == f.seed {
				toSeed = true
			}
			next = append(next, n)
		}
		switch {
		case toSeed:
			cur = f.seed
		case len(next) == 0:
			return nil, fmt.Errorf("%w: thinning: skeleton dead-ends at %v", ErrPathInconsistent, cur)
		case len(next) > 1:
			return nil, fmt.Errorf("%w: thinning: %d successors at %v", ErrSkeletonBranching, len(next), cur)
		default:
			cur = next[0]
		}
		visited[g.Offset(cur)] = true
		p.push(cur, f.At(cur))
	}
	return p, nil
}
