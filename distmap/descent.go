package distmap

import (
	"fmt"
	"math"

	"github.com/katalvlaran/voxpath/volume"
)

// Extract walks from goal toward the seed by steepest descent over the
// field and returns the visited voxels in goal-to-stop order.
//
// The walk stops at the first voxel whose distance is ≤ minQuotientStop ×
// distance(goal). minQuotientStop must lie in [0,1]: 0 walks all the way to
// the seed, 1 returns the goal alone.
//
// At each step the admissible, reachable neighbour with the strictly smallest
// distance is taken; ties go to the neighbour whose offset comes first in
// Connectivity.Offsets.
//
// Errors:
//   - ErrNilField if f is nil.
//   - ErrOptionViolation if minQuotientStop is outside [0,1] or NaN.
//   - ErrGoalUnreachable if goal is out of bounds, inadmissible or unreached.
//   - ErrPathInconsistent if a voxel above the stop level has no strictly
//     closer neighbour.
//
// Complexity: O(L·d) for a path of L voxels.
func (f *Field) Extract(goal volume.Index, minQuotientStop float64) (*Path, error) {
	if f == nil {
		return nil, ErrNilField
	}
	if err := checkQuotient("extract", minQuotientStop); err != nil {
		return nil, err
	}
	if err := f.checkGoal("extract", goal); err != nil {
		return nil, err
	}

	dStop := minQuotientStop * f.At(goal)
	p := &Path{Converged: true}
	cur := goal
	curD := f.At(goal)
	p.push(cur, curD)

	for curD > dStop {
		next, nextD := cur, curD
		for _, d := range f.offsets {
			n := cur.Shift(d)
			if !f.mask.Admissible(n) {
				continue
			}
			if nd := f.dist[f.grid.Offset(n)]; nd < nextD {
				next, nextD = n, nd
			}
		}
		if next == cur {
			return nil, fmt.Errorf("%w: extract: local minimum at %v (distance %v)", ErrPathInconsistent, cur, curD)
		}
		cur, curD = next, nextD
		p.push(cur, curD)
	}

	return p, nil
}

// checkGoal enforces that goal is in bounds, admissible and reached.
func (f *Field) checkGoal(op string, goal volume.Index) error {
	switch {
	case !f.grid.InBounds(goal):
		return fmt.Errorf("%w: %s: goal %v out of bounds", ErrGoalUnreachable, op, goal)
	case !f.mask.Admissible(goal):
		return fmt.Errorf("%w: %s: goal %v not admissible", ErrGoalUnreachable, op, goal)
	case math.IsInf(f.At(goal), 1):
		return fmt.Errorf("%w: %s: goal %v not connected to seed %v", ErrGoalUnreachable, op, goal, f.seed)
	}
	return nil
}
