package mesher

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/phil-mansfield/gofluid/grid"
)

// IsotropicMesher reconstructs a surface from a particle snapshot of a
// width x height x depth simulation grid with cell size dx. The scalar field
// can be evaluated on a finer lattice by raising the subdivision level.
type IsotropicMesher struct {
	width, height, depth int
	dx                   float64

	subdivision int
}

// NewIsotropicMesher returns a mesher for the given simulation grid.
func NewIsotropicMesher(width, height, depth int, dx float64) *IsotropicMesher {
	return &IsotropicMesher{
		width: width, height: height, depth: depth, dx: dx,
		subdivision: 1,
	}
}

// SetSubdivisionLevel sets the number of field cells per simulation cell
// along each axis.
func (im *IsotropicMesher) SetSubdivisionLevel(n int) error {
	if n < 1 {
		return fmt.Errorf("subdivision level must be at least 1, got %d", n)
	}
	im.subdivision = n
	return nil
}

// MeshParticles splats the particles into a scalar field masked by the
// material grid and polygonizes the surface. particleRadius is the kernel
// radius of each particle.
func (im *IsotropicMesher) MeshParticles(
	particles []r3.Vec, materials *grid.MaterialGrid, particleRadius float64,
) (*TriangleMesh, error) {
	if materials.Width != im.width || materials.Height != im.height ||
		materials.Depth != im.depth {
		return nil, fmt.Errorf(
			"material grid is %d x %d x %d, mesher expects %d x %d x %d",
			materials.Width, materials.Height, materials.Depth,
			im.width, im.height, im.depth,
		)
	}
	if particleRadius <= 0 {
		return nil, fmt.Errorf("particle radius must be positive, got %g",
			particleRadius)
	}

	subd := im.subdivision
	width := im.width*subd + 1
	height := im.height*subd + 1
	depth := im.depth*subd + 1
	dx := im.dx / float64(subd)

	field := NewScalarField(width, height, depth, dx)
	field.SetPointRadius(particleRadius)
	field.SetMaterialGrid(materials, subd)

	for _, p := range particles {
		field.AddPoint(p)
	}

	return NewPolygonizer(field).Polygonize(), nil
}
