package mesher

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/DataDog/zstd"
	"gonum.org/v1/gonum/spatial/r3"
)

// TriangleMesh is an indexed triangle surface.
type TriangleMesh struct {
	Vertices  []r3.Vec
	Triangles [][3]int
}

// AddVertex appends a vertex and returns its index.
func (m *TriangleMesh) AddVertex(p r3.Vec) int {
	m.Vertices = append(m.Vertices, p)
	return len(m.Vertices) - 1
}

// AddTriangle appends a triangle over three vertex indices.
func (m *TriangleMesh) AddTriangle(a, b, c int) {
	m.Triangles = append(m.Triangles, [3]int{a, b, c})
}

// WritePLY writes the mesh to w in ascii PLY format.
func (m *TriangleMesh) WritePLY(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "ply\nformat ascii 1.0\n")
	fmt.Fprintf(bw, "element vertex %d\n", len(m.Vertices))
	fmt.Fprintf(bw, "property float x\nproperty float y\nproperty float z\n")
	fmt.Fprintf(bw, "element face %d\n", len(m.Triangles))
	fmt.Fprintf(bw, "property list uchar int vertex_index\nend_header\n")

	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "%g %g %g\n", v.X, v.Y, v.Z)
	}
	for _, t := range m.Triangles {
		fmt.Fprintf(bw, "3 %d %d %d\n", t[0], t[1], t[2])
	}

	return bw.Flush()
}

// WritePLYFile writes the mesh to the named file. Paths ending in ".zst" are
// compressed with zstd.
func (m *TriangleMesh) WritePLYFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create mesh file: %v", err)
	}
	defer f.Close()

	if strings.HasSuffix(path, ".zst") {
		zw := zstd.NewWriter(f)
		if err := m.WritePLY(zw); err != nil {
			zw.Close()
			return err
		}
		return zw.Close()
	}

	return m.WritePLY(f)
}
