package mesher

import (
	"gonum.org/v1/gonum/spatial/r3"
)

/* polygonize.go extracts the threshold isosurface of a scalar field as a
triangle mesh. Each lattice cube is split into six tetrahedra and each
tetrahedron contributes up to two triangles, with surface vertices placed by
linear interpolation along the crossing edges. Vertices are shared between
triangles through an edge cache. */

// cubeCorners lists the eight lattice offsets of a cube's corners.
var cubeCorners = [8][3]int{
	{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
}

// cubeTets decomposes a cube into six tetrahedra around the 0-6 diagonal.
var cubeTets = [6][4]int{
	{0, 5, 1, 6}, {0, 1, 2, 6}, {0, 2, 3, 6},
	{0, 3, 7, 6}, {0, 7, 4, 6}, {0, 4, 5, 6},
}

// Polygonizer extracts the isosurface of a scalar field.
type Polygonizer struct {
	field *ScalarField

	mesh      *TriangleMesh
	edgeCache map[[2]int]int
}

// NewPolygonizer returns a polygonizer over the given field.
func NewPolygonizer(field *ScalarField) *Polygonizer {
	return &Polygonizer{field: field}
}

// Polygonize walks every lattice cube and returns the extracted surface.
func (p *Polygonizer) Polygonize() *TriangleMesh {
	p.mesh = &TriangleMesh{}
	p.edgeCache = make(map[[2]int]int)

	f := p.field
	for k := 0; k < f.depth-1; k++ {
		for j := 0; j < f.height-1; j++ {
			for i := 0; i < f.width-1; i++ {
				p.polygonizeCube(i, j, k)
			}
		}
	}

	return p.mesh
}

func (p *Polygonizer) vertexID(i, j, k int) int {
	f := p.field
	return i + j*f.width + k*f.width*f.height
}

func (p *Polygonizer) polygonizeCube(i, j, k int) {
	var ids [8]int
	var inside [8]bool

	anyIn, anyOut := false, false
	for c, off := range cubeCorners {
		ci, cj, ck := i+off[0], j+off[1], k+off[2]
		ids[c] = p.vertexID(ci, cj, ck)
		inside[c] = p.field.Inside(ci, cj, ck)
		if inside[c] {
			anyIn = true
		} else {
			anyOut = true
		}
	}

	if !anyIn || !anyOut {
		return
	}

	for _, tet := range cubeTets {
		p.polygonizeTet(
			ids[tet[0]], ids[tet[1]], ids[tet[2]], ids[tet[3]],
			inside[tet[0]], inside[tet[1]], inside[tet[2]], inside[tet[3]],
		)
	}
}

// polygonizeTet emits the surface crossing one tetrahedron. One inside
// vertex yields a triangle, two yield a quad split into two triangles.
func (p *Polygonizer) polygonizeTet(a, b, c, d int, ina, inb, inc, ind bool) {
	verts := [4]int{a, b, c, d}
	in := [4]bool{ina, inb, inc, ind}

	var insiders, outsiders []int
	for idx := 0; idx < 4; idx++ {
		if in[idx] {
			insiders = append(insiders, verts[idx])
		} else {
			outsiders = append(outsiders, verts[idx])
		}
	}

	switch len(insiders) {
	case 1:
		v0 := p.edgeVertex(insiders[0], outsiders[0])
		v1 := p.edgeVertex(insiders[0], outsiders[1])
		v2 := p.edgeVertex(insiders[0], outsiders[2])
		p.mesh.AddTriangle(v0, v1, v2)
	case 2:
		v0 := p.edgeVertex(insiders[0], outsiders[0])
		v1 := p.edgeVertex(insiders[0], outsiders[1])
		v2 := p.edgeVertex(insiders[1], outsiders[1])
		v3 := p.edgeVertex(insiders[1], outsiders[0])
		p.mesh.AddTriangle(v0, v1, v2)
		p.mesh.AddTriangle(v0, v2, v3)
	case 3:
		v0 := p.edgeVertex(insiders[0], outsiders[0])
		v1 := p.edgeVertex(insiders[1], outsiders[0])
		v2 := p.edgeVertex(insiders[2], outsiders[0])
		p.mesh.AddTriangle(v0, v1, v2)
	}
}

// edgeVertex returns the mesh vertex where the surface crosses the lattice
// edge between vertices va and vb, creating it on first use.
func (p *Polygonizer) edgeVertex(va, vb int) int {
	key := [2]int{va, vb}
	if vb < va {
		key = [2]int{vb, va}
	}
	if idx, ok := p.edgeCache[key]; ok {
		return idx
	}

	f := p.field
	ai, aj, ak := p.vertexCoords(va)
	bi, bj, bk := p.vertexCoords(vb)

	fa := f.Value(ai, aj, ak)
	fb := f.Value(bi, bj, bk)

	t := 0.5
	if fb != fa {
		t = (surfaceThreshold - fa) / (fb - fa)
	}
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	pa := f.VertexPosition(ai, aj, ak)
	pb := f.VertexPosition(bi, bj, bk)
	pos := r3.Add(pa, r3.Scale(t, r3.Sub(pb, pa)))

	idx := p.mesh.AddVertex(pos)
	p.edgeCache[key] = idx
	return idx
}

func (p *Polygonizer) vertexCoords(id int) (i, j, k int) {
	f := p.field
	i = id % f.width
	j = (id / f.width) % f.height
	k = id / (f.width * f.height)
	return i, j, k
}
