// Package distmap builds seed-centred distance fields over thresholded 3-D
// volumes and extracts voxel paths from them.
//
// What
//
//   - Build: threshold-gated wavefront propagation from a seed voxel under
//     6- or 26-connectivity. Every admissible voxel connected to the seed
//     receives its shortest propagation distance; all others are Unreachable.
//   - Field.Extract: steepest-descent walk from a goal voxel back toward the
//     seed with an optional early stop.
//   - Field.ExtractByThinning: topology-preserving erosion of the region
//     closer to the seed than the goal, traced into a single-voxel strand.
//
// Why
//
//   - Centerline extraction and route planning inside segmented images
//     (vessels, airways, corridors) between a user-picked start and end voxel.
//
// Stop rule
//
//	Both extractors take minQuotientStop q in [0,1] and stop at the first
//	voxel with distance ≤ q·distance(goal). q = 0 walks to the seed.
//
// Cost models
//
//   - CostUnit (default): every step costs 1, distances count voxels.
//   - CostEuclidean: a step costs the physical length of its offset under the
//     grid spacing. Distances change scale, never ordering direction.
//
// Determinism
//
//	Neighbours are scanned in volume.Connectivity.Offsets order and ties go to
//	the earliest offset, so identical inputs give bit-identical fields and
//	identical paths.
//
// Concurrency
//
//	Build and both extractors are synchronous and single-threaded. A Field is
//	never cached or mutated after Build; rebuild whenever seed, threshold,
//	connectivity or grid change. Independent builds may share one Grid.
//
// Usage
//
//	f, err := distmap.Build(g, volume.Above(120), seed,
//	    distmap.WithConnectivity(volume.Conn26),
//	    distmap.WithLogger(logger),
//	)
//	if err != nil {
//	    // ErrInvalidGrid, ErrInvalidSeed, ErrSeedNotAdmissible, ErrOptionViolation
//	}
//	p, err := f.Extract(goal, 0)
//	p, err = f.ExtractByThinning(goal, 0, 50)
//
// Errors
//
//   - ErrInvalidGrid, ErrInvalidSeed, ErrSeedNotAdmissible   (Build)
//   - ErrGoalUnreachable                                     (both extractors)
//   - ErrPathInconsistent                                    (broken invariant)
//   - ErrSkeletonBranching, ErrThinningDidNotConverge        (thinning)
//   - ErrOptionViolation, ErrNilField                        (bad arguments)
//
// Complexity (N = voxels, d = 6 or 26)
//
//   - Build:             O(N·d) unit cost, O(N·d·log N) Euclidean; O(N) memory.
//   - Extract:           O(L·d) for a path of length L.
//   - ExtractByThinning: O(passes·N·d); O(N) memory.
package distmap
