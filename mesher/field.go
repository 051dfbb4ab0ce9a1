/*package mesher reconstructs a renderable surface from a marker particle
snapshot. Particles are splatted into a vertex-centered scalar field with a
compact radial kernel, the field is masked against solid cells, and the 0.5
isosurface is polygonized into a triangle mesh.
*/
package mesher

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/phil-mansfield/gofluid/grid"
)

// surfaceThreshold is the field value at which the surface is extracted.
const surfaceThreshold = 0.5

// ScalarField is a vertex-centered scalar field over a width x height x
// depth vertex lattice with spacing dx. Vertex (i, j, k) sits at world
// position (i*dx, j*dx, k*dx).
type ScalarField struct {
	width, height, depth int
	dx                   float64
	radius               float64

	values *grid.Float3d
	masked []bool
}

// NewScalarField returns a zeroed field over the given vertex lattice.
func NewScalarField(width, height, depth int, dx float64) *ScalarField {
	return &ScalarField{
		width: width, height: height, depth: depth, dx: dx,
		values: grid.NewFloat3d(width, height, depth, 0),
		masked: make([]bool, width*height*depth),
	}
}

// SetPointRadius sets the kernel radius used by AddPoint.
func (f *ScalarField) SetPointRadius(r float64) {
	f.radius = r
}

// AddPoint splats a particle at p into the field. Vertices within the kernel
// radius receive a contribution that falls smoothly from 1 at the particle
// to 0 at the radius.
func (f *ScalarField) AddPoint(p r3.Vec) {
	r := f.radius
	inv := 1.0 / f.dx

	imin := int(math.Ceil((p.X - r) * inv))
	imax := int(math.Floor((p.X + r) * inv))
	jmin := int(math.Ceil((p.Y - r) * inv))
	jmax := int(math.Floor((p.Y + r) * inv))
	kmin := int(math.Ceil((p.Z - r) * inv))
	kmax := int(math.Floor((p.Z + r) * inv))

	if imin < 0 {
		imin = 0
	}
	if jmin < 0 {
		jmin = 0
	}
	if kmin < 0 {
		kmin = 0
	}
	if imax > f.width-1 {
		imax = f.width - 1
	}
	if jmax > f.height-1 {
		jmax = f.height - 1
	}
	if kmax > f.depth-1 {
		kmax = f.depth - 1
	}

	rsq := r * r
	for k := kmin; k <= kmax; k++ {
		for j := jmin; j <= jmax; j++ {
			for i := imin; i <= imax; i++ {
				dx := float64(i)*f.dx - p.X
				dy := float64(j)*f.dx - p.Y
				dz := float64(k)*f.dx - p.Z
				distsq := dx*dx + dy*dy + dz*dz
				if distsq < rsq {
					q := 1 - distsq/rsq
					f.values.Add(i, j, k, q*q*q)
				}
			}
		}
	}
}

// SetMaterialGrid masks out every vertex whose surrounding cells on the
// subdivided lattice are all solid. m is the simulation-resolution material
// grid; subdivision is the number of field cells per simulation cell.
func (f *ScalarField) SetMaterialGrid(m *grid.MaterialGrid, subdivision int) {
	for k := 0; k < f.depth; k++ {
		for j := 0; j < f.height; j++ {
			for i := 0; i < f.width; i++ {
				if f.isVertexEnclosedBySolid(m, subdivision, i, j, k) {
					f.masked[f.values.Idx(i, j, k)] = true
				}
			}
		}
	}
}

// isVertexEnclosedBySolid reports whether every field cell touching vertex
// (i, j, k) lies inside a solid simulation cell.
func (f *ScalarField) isVertexEnclosedBySolid(m *grid.MaterialGrid, subdivision, i, j, k int) bool {
	for dk := -1; dk <= 0; dk++ {
		for dj := -1; dj <= 0; dj++ {
			for di := -1; di <= 0; di++ {
				ci, cj, ck := i+di, j+dj, k+dk
				if ci < 0 || cj < 0 || ck < 0 ||
					ci >= f.width-1 || cj >= f.height-1 || ck >= f.depth-1 {
					continue
				}
				if !m.IsSolid(ci/subdivision, cj/subdivision, ck/subdivision) {
					return false
				}
			}
		}
	}
	return true
}

// Value returns the field value at vertex (i, j, k). Masked vertices read as
// 0.
func (f *ScalarField) Value(i, j, k int) float64 {
	if f.masked[f.values.Idx(i, j, k)] {
		return 0
	}
	return f.values.Get(i, j, k)
}

// VertexPosition returns the world position of vertex (i, j, k).
func (f *ScalarField) VertexPosition(i, j, k int) r3.Vec {
	return r3.Vec{
		X: float64(i) * f.dx,
		Y: float64(j) * f.dx,
		Z: float64(k) * f.dx,
	}
}

// Inside returns true if the vertex value is above the surface threshold.
func (f *ScalarField) Inside(i, j, k int) bool {
	return f.Value(i, j, k) > surfaceThreshold
}
