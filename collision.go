package gofluid

import (
	"fmt"
	"log"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/phil-mansfield/gofluid/geom"
	"github.com/phil-mansfield/gofluid/grid"
)

/* collision.go resolves trajectories that end inside solid cells. Given a
segment from a non-solid cell into a solid cell, it finds the point where the
segment crosses a solid cell face and the face's outward normal, so callers
can place the endpoint just outside the wall. */

// pointOnSolidBoundary checks whether p lies on a cell face that separates a
// solid cell from a non-solid cell. On success the returned face has its
// normal pointing away from the solid.
func (s *FluidSimulation) pointOnSolidBoundary(p r3.Vec) (geom.CellFace, bool) {
	i, j, k := s.positionToIndex(p)
	cellSolid := s.materials.IsSolid(i, j, k)

	for _, n := range geom.FaceNormals {
		f := geom.Face(i, j, k, n, s.dx)
		if !geom.PointOnFace(p, f) {
			continue
		}

		switch {
		case n.X == -1:
			if s.faceBordersSolidU(i, j, k) {
				if cellSolid {
					return f, true
				}
				return geom.Face(i-1, j, k, r3.Vec{X: 1}, s.dx), true
			}
		case n.X == 1:
			if s.faceBordersSolidU(i+1, j, k) {
				if cellSolid {
					return f, true
				}
				return geom.Face(i+1, j, k, r3.Vec{X: -1}, s.dx), true
			}
		case n.Y == -1:
			if s.faceBordersSolidV(i, j, k) {
				if cellSolid {
					return f, true
				}
				return geom.Face(i, j-1, k, r3.Vec{Y: 1}, s.dx), true
			}
		case n.Y == 1:
			if s.faceBordersSolidV(i, j+1, k) {
				if cellSolid {
					return f, true
				}
				return geom.Face(i, j+1, k, r3.Vec{Y: -1}, s.dx), true
			}
		case n.Z == -1:
			if s.faceBordersSolidW(i, j, k) {
				if cellSolid {
					return f, true
				}
				return geom.Face(i, j, k-1, r3.Vec{Z: 1}, s.dx), true
			}
		case n.Z == 1:
			if s.faceBordersSolidW(i, j, k+1) {
				if cellSolid {
					return f, true
				}
				return geom.Face(i, j, k+1, r3.Vec{Z: -1}, s.dx), true
			}
		}
	}

	return geom.CellFace{}, false
}

// neighborSolidFaceCandidates returns the faces of every solid cell in the
// 26-cell neighborhood of (i, j, k) whose normal forms an obtuse angle with
// dir. Only those faces can be crossed by a segment heading along dir.
func (s *FluidSimulation) neighborSolidFaceCandidates(i, j, k int, dir r3.Vec) []geom.CellFace {
	var neighbors [26]grid.Index
	grid.Neighbors26(i, j, k, &neighbors)

	var faces []geom.CellFace
	for _, c := range neighbors {
		if !s.materials.InRange(c.I, c.J, c.K) || !s.materials.IsSolid(c.I, c.J, c.K) {
			continue
		}
		for _, n := range geom.FaceNormals {
			if r3.Dot(n, dir) < 0 {
				faces = append(faces, geom.Face(c.I, c.J, c.K, n, s.dx))
			}
		}
	}

	return faces
}

// findFaceCollision intersects the segment p0 -> p1 against the candidate
// solid faces around p0 and returns the closest hit.
func (s *FluidSimulation) findFaceCollision(p0, p1 r3.Vec) (geom.CellFace, r3.Vec, bool) {
	i, j, k := s.positionToIndex(p0)
	dir := r3.Unit(r3.Sub(p1, p0))
	candidates := s.neighborSolidFaceCandidates(i, j, k, dir)

	var closestFace geom.CellFace
	var closestPoint r3.Vec
	minDistSq := 0.0
	found := false

	for _, f := range candidates {
		p, ok := geom.LineFaceIntersection(p0, dir, f)
		if !ok {
			continue
		}

		d := r3.Sub(p, p0)
		distSq := r3.Dot(d, d)
		if !found || distSq < minDistSq {
			minDistSq = distSq
			closestFace = f
			closestPoint = p
			found = true
		}
	}

	return closestFace, closestPoint, found
}

// solidCellCollision finds where the segment p0 -> p1 enters a solid cell.
// p0 must lie in a non-solid cell and p1 in a solid cell. Returns the
// collision point and the outward normal of the face that was hit; callers
// must nudge the point along the normal before converting it back to a cell
// index. Panics if the walk toward p1 does not terminate, which indicates a
// blown-up velocity field.
func (s *FluidSimulation) solidCellCollision(p0, p1 r3.Vec) (r3.Vec, r3.Vec) {
	// p0 can sit right on a boundary face, in which case its cell index may
	// already resolve to a solid cell
	if f, ok := s.pointOnSolidBoundary(p0); ok {
		return p0, f.Normal
	}

	fi, fj, fk := s.positionToIndex(p0)
	si, sj, sk := s.positionToIndex(p1)
	if s.materials.IsSolid(fi, fj, fk) {
		panic(fmt.Sprintf(
			"collision start (%g, %g, %g) is inside solid cell (%d, %d, %d)",
			p0.X, p0.Y, p0.Z, fi, fj, fk,
		))
	}
	if !s.materials.IsSolid(si, sj, sk) {
		panic(fmt.Sprintf(
			"collision end (%g, %g, %g) is not inside a solid cell",
			p1.X, p1.Y, p1.Z,
		))
	}

	// p0 and p1 may be many cells apart. Step back from p1 along the segment
	// until the two endpoints inhabit neighboring cells.
	dir := r3.Unit(r3.Sub(p1, p0))
	numSteps := 1
	for !grid.IsNeighbors26(grid.Index{I: fi, J: fj, K: fk}, grid.Index{I: si, J: sj, K: sk}) {
		p0 = r3.Sub(p1, r3.Scale(s.dx-1e-5, dir))
		ni, nj, nk := s.positionToIndex(p0)

		if s.materials.IsSolid(ni, nj, nk) {
			p1 = p0
			si, sj, sk = ni, nj, nk
		} else {
			fi, fj, fk = ni, nj, nk
		}

		numSteps++
		if numSteps >= 100 || (fi == si && fj == sj && fk == sk) {
			panic(fmt.Sprintf(
				"collision walk failed after %d steps: p0 (%g, %g, %g) cell "+
					"(%d, %d, %d), p1 (%g, %g, %g) cell (%d, %d, %d)",
				numSteps, p0.X, p0.Y, p0.Z, fi, fj, fk,
				p1.X, p1.Y, p1.Z, si, sj, sk,
			))
		}
	}

	face, point, found := s.findFaceCollision(p0, p1)
	if !found {
		log.Printf("collision not found: p0 (%g, %g, %g) cell (%d, %d, %d), "+
			"p1 (%g, %g, %g) cell (%d, %d, %d), dir (%g, %g, %g)",
			p0.X, p0.Y, p0.Z, fi, fj, fk,
			p1.X, p1.Y, p1.Z, si, sj, sk,
			dir.X, dir.Y, dir.Z)
		return p0, r3.Vec{}
	}

	check := r3.Add(point, r3.Scale(0.001*s.dx, face.Normal))
	ci, cj, ck := s.positionToIndex(check)
	if s.materials.IsSolid(ci, cj, ck) {
		panic(fmt.Sprintf(
			"post-collision point (%g, %g, %g) is still inside solid cell "+
				"(%d, %d, %d); segment (%g, %g, %g) -> (%g, %g, %g)",
			check.X, check.Y, check.Z, ci, cj, ck,
			p0.X, p0.Y, p0.Z, p1.X, p1.Y, p1.Z,
		))
	}

	return point, face.Normal
}
