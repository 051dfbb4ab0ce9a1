package geom

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min  r3.Vec
	Size r3.Vec
}

// NewAABB returns a box with the given minimum corner and extents.
func NewAABB(min r3.Vec, w, h, d float64) AABB {
	return AABB{Min: min, Size: r3.Vec{X: w, Y: h, Z: d}}
}

// Contains returns true if p lies inside the box.
func (b AABB) Contains(p r3.Vec) bool {
	return p.X >= b.Min.X && p.X < b.Min.X+b.Size.X &&
		p.Y >= b.Min.Y && p.Y < b.Min.Y+b.Size.Y &&
		p.Z >= b.Min.Z && p.Z < b.Min.Z+b.Size.Z
}

// Expand grows the box by r in every direction.
func (b AABB) Expand(r float64) AABB {
	return AABB{
		Min:  r3.Sub(b.Min, r3.Vec{X: r, Y: r, Z: r}),
		Size: r3.Add(b.Size, r3.Vec{X: 2 * r, Y: 2 * r, Z: 2 * r}),
	}
}
