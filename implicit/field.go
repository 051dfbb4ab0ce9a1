/*package implicit describes the initial fluid region as a union of implicit
primitives. The simulator samples the field at cell centers when seeding
marker particles.
*/
package implicit

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Point is a spherical fluid region.
type Point struct {
	Center r3.Vec
	Radius float64
}

// Cuboid is an axis-aligned box fluid region described by its minimum corner
// and extents.
type Cuboid struct {
	Min                 r3.Vec
	Width, Height, Depth float64
}

// Field is a union of implicit fluid primitives covering part of a
// width x height x depth world volume.
type Field struct {
	width, height, depth float64

	points  []Point
	cuboids []Cuboid
}

// NewField returns an empty field for a world volume of the given extents.
func NewField(width, height, depth float64) *Field {
	return &Field{width: width, height: height, depth: depth}
}

// AddPoint adds a spherical fluid region centered on p.
func (f *Field) AddPoint(p r3.Vec, radius float64) {
	f.points = append(f.points, Point{Center: p, Radius: radius})
}

// AddCuboid adds a box fluid region with minimum corner p.
func (f *Field) AddCuboid(p r3.Vec, w, h, d float64) {
	f.cuboids = append(f.cuboids, Cuboid{Min: p, Width: w, Height: h, Depth: d})
}

// NumPoints returns the number of point primitives in the field.
func (f *Field) NumPoints() int { return len(f.points) }

// NumCuboids returns the number of cuboid primitives in the field.
func (f *Field) NumCuboids() int { return len(f.cuboids) }

// Points returns a copy of the point primitives for replay.
func (f *Field) Points() []Point {
	out := make([]Point, len(f.points))
	copy(out, f.points)
	return out
}

// Cuboids returns a copy of the cuboid primitives for replay.
func (f *Field) Cuboids() []Cuboid {
	out := make([]Cuboid, len(f.cuboids))
	copy(out, f.cuboids)
	return out
}

// IsInside returns true if (x, y, z) lies inside any primitive.
func (f *Field) IsInside(x, y, z float64) bool {
	for _, pt := range f.points {
		dx, dy, dz := x-pt.Center.X, y-pt.Center.Y, z-pt.Center.Z
		if dx*dx+dy*dy+dz*dz < pt.Radius*pt.Radius {
			return true
		}
	}
	for _, c := range f.cuboids {
		if x >= c.Min.X && x < c.Min.X+c.Width &&
			y >= c.Min.Y && y < c.Min.Y+c.Height &&
			z >= c.Min.Z && z < c.Min.Z+c.Depth {
			return true
		}
	}
	return false
}
