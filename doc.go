// Package voxpath finds paths through scalar volumes.
//
// 🚀 What is voxpath?
//
//	A pure-Go engine that turns a 3-D voxel grid and a threshold into a
//	distance field, then walks that field back from a goal to the seed:
//		• Grid model: dense scalar volumes with spacing and origin (volume)
//		• Admissibility: Above/Below threshold predicates and masks (volume)
//		• Topology: 6- and 26-connectivity with a fixed neighbour order (volume)
//		• Distance fields: FIFO wavefront or heap-ordered Euclidean cost (distmap)
//		• Extraction: steepest descent, or iterative thinning to a skeleton (distmap)
//		• Storage: named grids and point sets in memory or SQLite (store)
//
// ✨ Why voxpath?
//
//   - Deterministic: every tie is broken by the documented offset order
//   - Explicit errors: sentinel errors wrapped with the failing voxel
//   - Quiet by default: libraries log only through an injected zap logger
//
// Layout:
//
//	volume/       Grid, Index, Predicate, Mask, Connectivity, flood fill
//	distmap/      Build, Field, Extract, ExtractByThinning, Path
//	store/        Repository, Memory, SQLite
//	config/       JSON defaults for the command
//	cmd/voxpath/  synth, stats, build, path, list, rm
//
// Quick start:
//
//	g, _ := volume.FromFunc([3]int{32, 32, 8}, r3.Vec{X: 1, Y: 1, Z: 1}, r3.Vec{}, sample)
//	f, err := distmap.Build(g, volume.Above(0.5), volume.Index{},
//		distmap.WithConnectivity(volume.Conn26))
//	if err != nil {
//		// ErrSeedNotAdmissible, ErrInvalidSeed, ...
//	}
//	p, err := f.Extract(volume.Index{I: 31, J: 31, K: 4}, 0)
//	// p.Indices runs from the goal back to the seed.
package voxpath
