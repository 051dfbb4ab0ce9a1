package mesher

import (
	"bytes"
	"fmt"
	"math"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/phil-mansfield/gofluid/grid"
)

// sphereParticles samples a dense shell of particles on a sphere.
func sphereParticles(center r3.Vec, radius float64, n int) []r3.Vec {
	particles := []r3.Vec{}
	for i := 0; i < n; i++ {
		theta := math.Pi * float64(i) / float64(n-1)
		for j := 0; j < n; j++ {
			phi := 2 * math.Pi * float64(j) / float64(n)
			particles = append(particles, r3.Vec{
				X: center.X + radius*math.Sin(theta)*math.Cos(phi),
				Y: center.Y + radius*math.Sin(theta)*math.Sin(phi),
				Z: center.Z + radius*math.Cos(theta),
			})
		}
	}
	return particles
}

func TestMeshParticlesSphere(t *testing.T) {
	width, height, depth := 8, 8, 8
	dx := 1.0

	materials := grid.NewMaterialGrid(width, height, depth)
	im := NewIsotropicMesher(width, height, depth, dx)

	particles := sphereParticles(r3.Vec{X: 4, Y: 4, Z: 4}, 1.5, 16)
	mesh, err := im.MeshParticles(particles, materials, 1.0)

	assert.NoError(t, err)
	assert.NotEmpty(t, mesh.Vertices)
	assert.NotEmpty(t, mesh.Triangles)

	// every triangle references valid vertices
	for _, tri := range mesh.Triangles {
		for _, v := range tri {
			assert.GreaterOrEqual(t, v, 0)
			assert.Less(t, v, len(mesh.Vertices))
		}
	}

	// the surface stays near the particle shell
	for _, v := range mesh.Vertices {
		d := r3.Norm(r3.Sub(v, r3.Vec{X: 4, Y: 4, Z: 4}))
		assert.Less(t, d, 3.0)
	}
}

func TestMeshParticlesSubdivision(t *testing.T) {
	materials := grid.NewMaterialGrid(8, 8, 8)
	particles := sphereParticles(r3.Vec{X: 4, Y: 4, Z: 4}, 1.5, 16)

	im := NewIsotropicMesher(8, 8, 8, 1.0)
	coarse, err := im.MeshParticles(particles, materials, 1.0)
	assert.NoError(t, err)

	assert.NoError(t, im.SetSubdivisionLevel(2))
	fine, err := im.MeshParticles(particles, materials, 1.0)
	assert.NoError(t, err)

	assert.Greater(t, len(fine.Triangles), len(coarse.Triangles))

	assert.Error(t, im.SetSubdivisionLevel(0))
}

func TestMeshParticlesValidation(t *testing.T) {
	im := NewIsotropicMesher(8, 8, 8, 1.0)

	_, err := im.MeshParticles(nil, grid.NewMaterialGrid(4, 4, 4), 1.0)
	assert.Error(t, err)

	_, err = im.MeshParticles(nil, grid.NewMaterialGrid(8, 8, 8), 0)
	assert.Error(t, err)
}

func TestSolidCellsAreMasked(t *testing.T) {
	materials := grid.NewMaterialGrid(8, 8, 8)
	im := NewIsotropicMesher(8, 8, 8, 1.0)

	// at subdivision 2 the blob's center is a field vertex whose surrounding
	// field cells all lie in solid cell (0, 0, 0), so only masking keeps it
	// from being inside
	assert.NoError(t, im.SetSubdivisionLevel(2))

	// a tight blob buried inside the wall produces no surface
	particles := []r3.Vec{{X: 0.5, Y: 0.5, Z: 0.5}}
	mesh, err := im.MeshParticles(particles, materials, 0.4)

	assert.NoError(t, err)
	assert.Empty(t, mesh.Triangles)
}

func TestWritePLY(t *testing.T) {
	mesh := &TriangleMesh{}
	a := mesh.AddVertex(r3.Vec{X: 0, Y: 0, Z: 0})
	b := mesh.AddVertex(r3.Vec{X: 1, Y: 0, Z: 0})
	c := mesh.AddVertex(r3.Vec{X: 0, Y: 1, Z: 0})
	mesh.AddTriangle(a, b, c)

	buf := &bytes.Buffer{}
	assert.NoError(t, mesh.WritePLY(buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "ply\n"))
	assert.Contains(t, out, "element vertex 3\n")
	assert.Contains(t, out, "element face 1\n")
	assert.Contains(t, out, "3 0 1 2\n")
}

func TestWritePLYFileCompressed(t *testing.T) {
	mesh := &TriangleMesh{}
	a := mesh.AddVertex(r3.Vec{X: 0, Y: 0, Z: 0})
	b := mesh.AddVertex(r3.Vec{X: 1, Y: 0, Z: 0})
	c := mesh.AddVertex(r3.Vec{X: 0, Y: 1, Z: 0})
	mesh.AddTriangle(a, b, c)

	dir := t.TempDir()
	assert.NoError(t, mesh.WritePLYFile(path.Join(dir, "mesh.ply")))
	assert.NoError(t, mesh.WritePLYFile(path.Join(dir, "mesh.ply.zst")))
}

func TestParticleSnapshotRoundTrip(t *testing.T) {
	particles := sphereParticles(r3.Vec{X: 2, Y: 2, Z: 2}, 1, 8)
	dir := t.TempDir()

	for _, name := range []string{"snap.dat", "snap.dat.zst"} {
		fname := path.Join(dir, name)
		assert.NoError(t, WriteParticleSnapshot(fname, particles))

		read, err := ReadParticleSnapshot(fname)
		assert.NoError(t, err, name)
		assert.Equal(t, len(particles), len(read), name)
		for i := range particles {
			assert.Equal(t, particles[i], read[i],
				fmt.Sprintf("%s particle %d", name, i))
		}
	}
}

func TestReadParticleSnapshotBadMagic(t *testing.T) {
	dir := t.TempDir()
	fname := path.Join(dir, "bad.dat")

	mesh := &TriangleMesh{}
	mesh.AddVertex(r3.Vec{})
	assert.NoError(t, mesh.WritePLYFile(fname))

	_, err := ReadParticleSnapshot(fname)
	assert.Error(t, err)
}
