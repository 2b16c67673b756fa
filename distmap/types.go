// Package distmap defines options, cost models and sentinel errors for
// distance-field construction and path extraction.
package distmap

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/voxpath/volume"
)

// Sentinel errors. Returned errors wrap one of these with the failing
// operation and voxel; match them with errors.Is.
var (
	// ErrInvalidGrid is returned for a nil or empty grid.
	ErrInvalidGrid = volume.ErrInvalidGrid

	// ErrInvalidSeed is returned when the seed lies outside the grid.
	ErrInvalidSeed = errors.New("distmap: seed out of bounds")

	// ErrSeedNotAdmissible is returned when the seed fails the predicate.
	ErrSeedNotAdmissible = errors.New("distmap: seed not admissible")

	// ErrGoalUnreachable is returned when the goal is out of bounds,
	// not admissible, or not connected to the seed.
	ErrGoalUnreachable = errors.New("distmap: goal unreachable")

	// ErrPathInconsistent reports a broken internal invariant: a reachable
	// voxel with no strictly closer neighbour, or a skeleton that dead-ends.
	ErrPathInconsistent = errors.New("distmap: path inconsistent with distance field")

	// ErrSkeletonBranching is returned when the thinned region forks.
	ErrSkeletonBranching = errors.New("distmap: skeleton branches")

	// ErrThinningDidNotConverge is returned when the iteration bound is hit
	// and the partially thinned region cannot be traced.
	ErrThinningDidNotConverge = errors.New("distmap: thinning did not converge")

	// ErrOptionViolation is returned when an invalid option or argument is supplied.
	ErrOptionViolation = errors.New("distmap: invalid option supplied")

	// ErrNilField is returned when an extractor is called on a nil *Field.
	ErrNilField = errors.New("distmap: field is nil")
)

// Unreachable returns the distance reported for voxels the wavefront never
// reached: positive infinity.
func Unreachable() float64 { return math.Inf(1) }

// Cost selects how a single propagation step is priced.
type Cost int

const (
	// CostUnit charges 1 per step regardless of direction (voxel-count distance).
	CostUnit Cost = iota
	// CostEuclidean charges the physical length of the step offset,
	// taking voxel spacing into account. It changes the numeric scale of
	// distances but never the direction in which they grow.
	CostEuclidean
)

// String returns "unit" or "euclidean".
func (c Cost) String() string {
	switch c {
	case CostUnit:
		return "unit"
	case CostEuclidean:
		return "euclidean"
	}
	return fmt.Sprintf("Cost(%d)", int(c))
}

// ParseCost accepts "unit" or "euclidean".
func ParseCost(s string) (Cost, error) {
	switch s {
	case "unit", "":
		return CostUnit, nil
	case "euclidean":
		return CostEuclidean, nil
	}
	return 0, fmt.Errorf("%w: unknown cost %q", ErrOptionViolation, s)
}

// Option configures Build via functional arguments.
// Invalid values are recorded and surfaced as ErrOptionViolation by Build.
type Option func(*Options)

// Options holds the parameters of a single Build.
type Options struct {
	// Conn is the neighbour topology used for propagation and extraction.
	Conn volume.Connectivity

	// Cost prices each propagation step.
	Cost Cost

	// Logger receives Debug diagnostics. Never nil after DefaultOptions.
	Logger *zap.Logger

	// OnSettle is called once per voxel when its distance becomes final.
	OnSettle func(x volume.Index, dist float64)

	err error
}

// DefaultOptions returns Options with:
//   - Conn6 connectivity
//   - unit step cost
//   - a no-op logger
//   - a no-op OnSettle hook
func DefaultOptions() Options {
	return Options{
		Conn:     volume.Conn6,
		Cost:     CostUnit,
		Logger:   zap.NewNop(),
		OnSettle: func(volume.Index, float64) {},
	}
}

// WithConnectivity selects Conn6 or Conn26.
func WithConnectivity(c volume.Connectivity) Option {
	return func(o *Options) {
		if !c.Valid() {
			o.err = fmt.Errorf("%w: connectivity %d", ErrOptionViolation, int(c))
			return
		}
		o.Conn = c
	}
}

// WithCost selects the step cost model.
func WithCost(c Cost) Option {
	return func(o *Options) {
		if c != CostUnit && c != CostEuclidean {
			o.err = fmt.Errorf("%w: %v", ErrOptionViolation, c)
			return
		}
		o.Cost = c
	}
}

// WithLogger routes diagnostics to l. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithOnSettle registers a hook invoked as each voxel's distance is finalised.
func WithOnSettle(fn func(x volume.Index, dist float64)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnSettle = fn
		}
	}
}

// checkQuotient validates a min_quotient_stop argument.
func checkQuotient(op string, q float64) error {
	if !(q >= 0 && q <= 1) {
		return fmt.Errorf("%w: %s: min quotient stop %v not in [0,1]", ErrOptionViolation, op, q)
	}
	return nil
}
