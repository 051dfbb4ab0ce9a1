/*package grid provides dense 3D arrays and index arithmetic for reasoning
over voxel grids.
*/
package grid

import (
	"fmt"
)

// Index is the (i, j, k) coordinate of a single cell.
type Index struct {
	I, J, K int
}

// Grid describes the geometry of a W x H x D cell grid and converts between
// cell indices, flat array offsets, and packed map keys.
type Grid struct {
	Width, Height, Depth int
	Area, Volume         int
}

// NewGrid returns a new Grid instance.
func NewGrid(width, height, depth int) *Grid {
	g := &Grid{}
	g.Init(width, height, depth)
	return g
}

// Init initializes a Grid instance.
func (g *Grid) Init(width, height, depth int) {
	g.Width = width
	g.Height = height
	g.Depth = depth
	g.Area = width * height
	g.Volume = width * height * depth
}

// Idx returns the flat offset corresponding to a set of cell coordinates.
func (g *Grid) Idx(i, j, k int) int {
	return i + j*g.Width + k*g.Area
}

// Coords returns the i, j, k coordinates of a cell from its flat offset.
func (g *Grid) Coords(idx int) (i, j, k int) {
	i = idx % g.Width
	j = (idx % g.Area) / g.Width
	k = idx / g.Area
	return i, j, k
}

// InRange returns true if the given coordinates are within the Grid and
// false otherwise.
func (g *Grid) InRange(i, j, k int) bool {
	return i >= 0 && j >= 0 && k >= 0 &&
		i < g.Width && j < g.Height && k < g.Depth
}

// Key packs cell coordinates into a single map key. The packing is
// i + W*j + W*H*k, so keys are unique for any grid shape.
func (g *Grid) Key(i, j, k int) int64 {
	return int64(i) + int64(g.Width)*(int64(j)+int64(g.Height)*int64(k))
}

// Neighbors6 writes the six face-adjacent cell indices of (i, j, k) into n.
// Returned indices may be out of range.
func Neighbors6(i, j, k int, n *[6]Index) {
	n[0] = Index{i - 1, j, k}
	n[1] = Index{i + 1, j, k}
	n[2] = Index{i, j - 1, k}
	n[3] = Index{i, j + 1, k}
	n[4] = Index{i, j, k - 1}
	n[5] = Index{i, j, k + 1}
}

// Neighbors26 writes the twenty-six adjacent cell indices of (i, j, k) into
// n. Returned indices may be out of range.
func Neighbors26(i, j, k int, n *[26]Index) {
	idx := 0
	for nk := k - 1; nk <= k+1; nk++ {
		for nj := j - 1; nj <= j+1; nj++ {
			for ni := i - 1; ni <= i+1; ni++ {
				if ni == i && nj == j && nk == k {
					continue
				}
				n[idx] = Index{ni, nj, nk}
				idx++
			}
		}
	}
}

// IsNeighbors26 returns true if the two cells are identical or within each
// other's 26-cell neighborhood.
func IsNeighbors26(a, b Index) bool {
	di, dj, dk := a.I-b.I, a.J-b.J, a.K-b.K
	return di >= -1 && di <= 1 && dj >= -1 && dj <= 1 && dk >= -1 && dk <= 1
}

func (g *Grid) boundsCheck(i, j, k int) {
	if !g.InRange(i, j, k) {
		panic(fmt.Sprintf(
			"grid: index (%d, %d, %d) out of range for %d x %d x %d grid",
			i, j, k, g.Width, g.Height, g.Depth,
		))
	}
}
