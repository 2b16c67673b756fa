package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/voxpath/config"
	"github.com/katalvlaran/voxpath/distmap"
	"github.com/katalvlaran/voxpath/store"
	"github.com/katalvlaran/voxpath/volume"
)

func cmdSynth(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("synth", flag.ContinueOnError)
	name := fs.String("name", "", "grid name (generated when empty)")
	shape := fs.String("shape", "slab", "slab, tube or random")
	dimsStr := fs.String("dims", "16,16,1", "grid dimensions nx,ny,nz")
	spacingStr := fs.String("spacing", "1,1,1", "voxel spacing sx,sy,sz")
	seed := fs.Int64("rand", 1, "random seed for the random shape")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dims, err := parseIndex(*dimsStr)
	if err != nil {
		return fmt.Errorf("dims: %w", err)
	}
	spacing, err := parseVec(*spacingStr)
	if err != nil {
		return fmt.Errorf("spacing: %w", err)
	}
	d := [3]int{dims.I, dims.J, dims.K}

	var fn func(volume.Index, r3.Vec) float64
	switch *shape {
	case "slab":
		fn = func(volume.Index, r3.Vec) float64 { return 1 }
	case "tube":
		// 1 on the axis running along x through the yz centre, 0 at the wall
		cy := float64(d[1]-1) / 2 * spacing.Y
		cz := float64(d[2]-1) / 2 * spacing.Z
		radius := math.Max(math.Max(cy, cz), math.Min(spacing.Y, spacing.Z))
		fn = func(_ volume.Index, p r3.Vec) float64 {
			return 1 - math.Hypot(p.Y-cy, p.Z-cz)/radius
		}
	case "random":
		rng := rand.New(rand.NewSource(*seed))
		fn = func(volume.Index, r3.Vec) float64 { return rng.Float64() }
	default:
		return fmt.Errorf("unknown shape %q", *shape)
	}

	g, err := volume.FromFunc(d, spacing, r3.Vec{}, fn)
	if err != nil {
		return err
	}
	stored, err := a.repo.PutGrid(ctx, *name, g)
	if err != nil {
		return err
	}
	a.log.Info("grid stored", zap.String("name", stored), zap.String("shape", *shape), zap.Int("voxels", g.Len()))
	fmt.Fprintln(a.out, stored)
	return nil
}

func cmdStats(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	name := fs.String("grid", "", "grid name")
	var ff fieldFlags
	ff.register(fs, a.cfg, false)
	if err := fs.Parse(args); err != nil {
		return err
	}
	g, err := a.repo.Grid(ctx, *name)
	if err != nil {
		return err
	}
	pred, conn, _, err := ff.resolve()
	if err != nil {
		return err
	}

	mask := volume.NewMask(g, pred)
	comps := volume.Components(mask, conn)
	sizes := make([]int, len(comps))
	for i, c := range comps {
		sizes[i] = len(c)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sizes)))

	d := g.Dims()
	fmt.Fprintf(a.out, "dims: %dx%dx%d\n", d[0], d[1], d[2])
	fmt.Fprintf(a.out, "admissible: %d of %d\n", mask.Count(), g.Len())
	fmt.Fprintf(a.out, "components (conn %v): %d\n", conn, len(comps))
	if len(sizes) > 5 {
		sizes = sizes[:5]
	}
	if len(sizes) > 0 {
		fmt.Fprintf(a.out, "largest: %v\n", sizes)
	}
	return nil
}

func cmdBuild(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	name := fs.String("grid", "", "grid name")
	out := fs.String("out", "", "name for the stored distance grid (default <grid>.dist)")
	var ff fieldFlags
	ff.register(fs, a.cfg, true)
	if err := fs.Parse(args); err != nil {
		return err
	}
	g, err := a.repo.Grid(ctx, *name)
	if err != nil {
		return err
	}
	f, err := ff.build(a, g)
	if err != nil {
		return err
	}
	dg, err := f.ToGrid()
	if err != nil {
		return err
	}
	if *out == "" {
		*out = *name + ".dist"
	}
	stored, err := a.repo.PutGrid(ctx, *out, dg)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "reached %d voxels, max distance %v, stored as %s\n", f.ReachedCount(), f.Max(), stored)
	return nil
}

func cmdPath(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("path", flag.ContinueOnError)
	name := fs.String("grid", "", "grid name")
	goalStr := fs.String("goal", "", "goal voxel i,j,k (or x,y,z with -physical)")
	method := fs.String("method", a.cfg.GetMethod(), "greedy or thinning")
	q := fs.Float64("q", a.cfg.GetMinQuotientStop(), "stop once distance falls to q times the goal distance")
	maxIter := fs.Int("max-iter", a.cfg.GetMaxIterations(), "thinning pass limit")
	out := fs.String("out", "", "name for the stored path points (generated when empty)")
	var ff fieldFlags
	ff.register(fs, a.cfg, true)
	if err := fs.Parse(args); err != nil {
		return err
	}
	g, err := a.repo.Grid(ctx, *name)
	if err != nil {
		return err
	}
	goal, err := ff.locate(g, *goalStr)
	if err != nil {
		return fmt.Errorf("goal: %w", err)
	}
	f, err := ff.build(a, g)
	if err != nil {
		return err
	}

	var p *distmap.Path
	switch *method {
	case config.MethodGreedy:
		p, err = f.Extract(goal, *q)
	case config.MethodThinning:
		p, err = f.ExtractByThinning(goal, *q, *maxIter)
	default:
		return fmt.Errorf("unknown method %q", *method)
	}
	if err != nil {
		return err
	}

	stored, err := a.repo.PutPoints(ctx, *out, p.Points(g))
	if err != nil {
		return err
	}
	a.log.Info("path stored",
		zap.String("name", stored),
		zap.String("method", *method),
		zap.Int("length", p.Len()),
		zap.Bool("converged", p.Converged))
	for i, x := range p.Indices {
		fmt.Fprintf(a.out, "%v\t%v\n", x, p.Distances[i])
	}
	fmt.Fprintf(a.out, "stored %d points as %s\n", p.Len(), stored)
	return nil
}

func cmdList(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	entries, err := a.repo.List(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		switch e.Kind {
		case store.KindGrid:
			fmt.Fprintf(a.out, "%s\t%s\t%dx%dx%d\n", e.Kind, e.Name, e.Dims[0], e.Dims[1], e.Dims[2])
		default:
			fmt.Fprintf(a.out, "%s\t%s\t%d\n", e.Kind, e.Name, e.Count)
		}
	}
	return nil
}

func cmdRemove(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("rm", flag.ContinueOnError)
	kind := fs.String("kind", string(store.KindGrid), "grid or points")
	name := fs.String("name", "", "object name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return a.repo.Delete(ctx, store.Kind(*kind), *name)
}

// fieldFlags are the field construction flags shared by stats, build and path.
type fieldFlags struct {
	conn      string
	cost      string
	threshold float64
	sense     string
	seed      string
	physical  bool
}

func (ff *fieldFlags) register(fs *flag.FlagSet, cfg *config.Config, withSeed bool) {
	fs.StringVar(&ff.conn, "conn", cfg.GetConnectivity().String(), "connectivity: 6 or 26")
	fs.StringVar(&ff.cost, "cost", cfg.GetCost().String(), "step cost: unit or euclidean")
	fs.Float64Var(&ff.threshold, "threshold", cfg.GetThreshold(), "admissibility level")
	fs.StringVar(&ff.sense, "sense", cfg.GetThresholdSense(), "above or below the threshold is admissible")
	if withSeed {
		fs.StringVar(&ff.seed, "seed", "0,0,0", "seed voxel i,j,k (or x,y,z with -physical)")
		fs.BoolVar(&ff.physical, "physical", false, "read seed and goal as physical coordinates")
	}
}

func (ff *fieldFlags) resolve() (volume.Predicate, volume.Connectivity, distmap.Cost, error) {
	conn, err := volume.ParseConnectivity(ff.conn)
	if err != nil {
		return nil, 0, 0, err
	}
	cost, err := distmap.ParseCost(ff.cost)
	if err != nil {
		return nil, 0, 0, err
	}
	switch ff.sense {
	case config.SenseAbove:
		return volume.Above(ff.threshold), conn, cost, nil
	case config.SenseBelow:
		return volume.Below(ff.threshold), conn, cost, nil
	}
	return nil, 0, 0, fmt.Errorf("unknown threshold sense %q", ff.sense)
}

func (ff *fieldFlags) build(a *app, g *volume.Grid) (*distmap.Field, error) {
	pred, conn, cost, err := ff.resolve()
	if err != nil {
		return nil, err
	}
	seed, err := ff.locate(g, ff.seed)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	return distmap.Build(g, pred, seed,
		distmap.WithConnectivity(conn),
		distmap.WithCost(cost),
		distmap.WithLogger(a.log))
}

// locate reads a voxel index, or a physical point snapped to the nearest voxel.
func (ff *fieldFlags) locate(g *volume.Grid, s string) (volume.Index, error) {
	if !ff.physical {
		return parseIndex(s)
	}
	p, err := parseVec(s)
	if err != nil {
		return volume.Index{}, err
	}
	x, ok := g.Nearest(p)
	if !ok {
		return volume.Index{}, fmt.Errorf("point %v lies outside the grid", s)
	}
	return x, nil
}

func splitTriple(s string) ([3]string, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return [3]string{}, fmt.Errorf("want three comma-separated values, got %q", s)
	}
	return [3]string{strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), strings.TrimSpace(parts[2])}, nil
}

func parseIndex(s string) (volume.Index, error) {
	parts, err := splitTriple(s)
	if err != nil {
		return volume.Index{}, err
	}
	var v [3]int
	for i, p := range parts {
		if v[i], err = strconv.Atoi(p); err != nil {
			return volume.Index{}, err
		}
	}
	return volume.Index{I: v[0], J: v[1], K: v[2]}, nil
}

func parseVec(s string) (r3.Vec, error) {
	parts, err := splitTriple(s)
	if err != nil {
		return r3.Vec{}, err
	}
	var v [3]float64
	for i, p := range parts {
		if v[i], err = strconv.ParseFloat(p, 64); err != nil {
			return r3.Vec{}, err
		}
	}
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}, nil
}
