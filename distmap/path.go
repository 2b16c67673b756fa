package distmap

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/voxpath/volume"
)

// Path is an ordered voxel route from the goal toward the seed.
// It is produced fresh by every extraction and shares no memory with the Field.
type Path struct {
	// Indices lists voxels from the goal to the stopping voxel.
	Indices []volume.Index
	// Distances holds the field value of each entry in Indices.
	Distances []float64
	// Iterations is the number of thinning passes run (0 for steepest descent).
	Iterations int
	// Converged is true when thinning ended on a pass that removed nothing.
	// Always true for steepest descent.
	Converged bool
}

// Len returns the number of voxels in the path.
func (p *Path) Len() int { return len(p.Indices) }

// Last returns the voxel where extraction stopped, or false for an empty path.
func (p *Path) Last() (volume.Index, bool) {
	if len(p.Indices) == 0 {
		return volume.Index{}, false
	}
	return p.Indices[len(p.Indices)-1], true
}

// Points converts the path to physical voxel centres of g.
func (p *Path) Points(g *volume.Grid) []r3.Vec {
	out := make([]r3.Vec, len(p.Indices))
	for i, x := range p.Indices {
		out[i] = g.Point(x)
	}
	return out
}

func (p *Path) push(x volume.Index, d float64) {
	p.Indices = append(p.Indices, x)
	p.Distances = append(p.Distances, d)
}
