// Package volume models a read-only 3-D scalar image as a voxel lattice
// that path-finding algorithms can traverse.
//
// What:
//
//   - Grid wraps a dense nx×ny×nz block of float64 intensities together with
//     its physical voxel spacing and origin (gonum r3 vectors).
//   - Predicate decides which intensities are admissible; Above and Below fix
//     the sign convention shared with callers.
//   - Mask is the immutable admissibility field derived from a Grid and a Predicate.
//   - Connectivity selects the neighbour topology: Conn6 (faces only) or
//     Conn26 (faces, edges and corners).
//   - Reachable is a plain flood fill over a Mask, used as the reference answer
//     for reachability questions.
//
// Why:
//
//   - Centerline and route planning inside thresholded image regions.
//   - One place that owns index arithmetic, bounds checks and index↔physical
//     conversions so the algorithms built on top stay small.
//
// Layout:
//
//	Voxels are stored x-fastest: offset = i + nx*(j + ny*k).
//	The physical centre of voxel (i,j,k) is origin + (i*sx, j*sy, k*sz).
//
// Complexity:
//
//   - NewGrid, FromFunc, NewMask: O(N) time and memory, N = nx·ny·nz.
//   - Reachable:                  O(N·d) time, O(N) memory (d = 6 or 26).
//
// Errors:
//
//   - ErrInvalidGrid: non-positive dimension, non-positive or non-finite
//     spacing, or a value slice whose length does not match the dimensions.
//   - ErrInvalidConnectivity: unknown Connectivity value or string.
//
// A Grid is never mutated after construction and may be shared by any number
// of concurrent readers.
package volume
