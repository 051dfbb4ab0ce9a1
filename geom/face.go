/*package geom contains the cell-face and bounding-box primitives used for
solid-boundary collision handling and meshing.
*/
package geom

import (
	"gonum.org/v1/gonum/spatial/r3"
)

const faceEps = 1e-5

// CellFace is an axis-aligned rectangle covering one face of a grid cell,
// with an outward normal. Min and Max are the corners of the rectangle; the
// component along the normal axis is the same in both.
type CellFace struct {
	Normal   r3.Vec
	Min, Max r3.Vec
}

// Face returns the face of cell (i, j, k) with outward normal n for a grid
// with cell size dx. n must be a signed unit axis vector.
func Face(i, j, k int, n r3.Vec, dx float64) CellFace {
	c := r3.Vec{
		X: (float64(i) + 0.5) * dx,
		Y: (float64(j) + 0.5) * dx,
		Z: (float64(k) + 0.5) * dx,
	}

	var trans r3.Vec
	switch {
	case n.X != 0:
		trans = r3.Vec{Y: 0.5 * dx, Z: 0.5 * dx}
	case n.Y != 0:
		trans = r3.Vec{X: 0.5 * dx, Z: 0.5 * dx}
	default:
		trans = r3.Vec{X: 0.5 * dx, Y: 0.5 * dx}
	}

	offset := r3.Add(c, r3.Scale(0.5*dx, n))
	return CellFace{
		Normal: n,
		Min:    r3.Sub(offset, trans),
		Max:    r3.Add(offset, trans),
	}
}

// FaceNormals lists the six outward unit normals in the -x, +x, -y, +y, -z,
// +z order used throughout the solver.
var FaceNormals = [6]r3.Vec{
	{X: -1}, {X: 1}, {Y: -1}, {Y: 1}, {Z: -1}, {Z: 1},
}

// PointOnFace returns true if p lies on the plane of f (within a small
// epsilon along the normal axis) and within the face's extent. The extent
// test is left-closed and right-open so that a point on a shared edge belongs
// to exactly one face.
func PointOnFace(p r3.Vec, f CellFace) bool {
	switch {
	case f.Normal.X != 0:
		return abs(p.X-f.Min.X) < faceEps &&
			p.Y >= f.Min.Y && p.Y < f.Max.Y && p.Z >= f.Min.Z && p.Z < f.Max.Z
	case f.Normal.Y != 0:
		return abs(p.Y-f.Min.Y) < faceEps &&
			p.X >= f.Min.X && p.X < f.Max.X && p.Z >= f.Min.Z && p.Z < f.Max.Z
	default:
		return abs(p.Z-f.Min.Z) < faceEps &&
			p.X >= f.Min.X && p.X < f.Max.X && p.Y >= f.Min.Y && p.Y < f.Max.Y
	}
}

// LineFaceIntersection intersects the line through p0 with direction dir
// against the plane of f and reports whether the intersection lands on the
// face. dir does not need to be normalized. A line parallel to the face
// reports no intersection.
func LineFaceIntersection(p0, dir r3.Vec, f CellFace) (r3.Vec, bool) {
	dot := r3.Dot(dir, f.Normal)
	if abs(dot) < 1e-30 {
		// dir is parallel to the face's plane
		return r3.Vec{}, false
	}

	d := r3.Dot(r3.Sub(f.Min, p0), f.Normal) / dot
	p := r3.Add(p0, r3.Scale(d, dir))

	if PointOnFace(p, f) {
		return p, true
	}
	return r3.Vec{}, false
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
