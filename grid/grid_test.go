package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdxCoordsRoundTrip(t *testing.T) {
	g := NewGrid(5, 7, 3)

	for k := 0; k < g.Depth; k++ {
		for j := 0; j < g.Height; j++ {
			for i := 0; i < g.Width; i++ {
				idx := g.Idx(i, j, k)
				ci, cj, ck := g.Coords(idx)
				assert.Equal(t, i, ci)
				assert.Equal(t, j, cj)
				assert.Equal(t, k, ck)
			}
		}
	}
}

func TestInRange(t *testing.T) {
	g := NewGrid(4, 5, 6)

	table := []struct {
		i, j, k int
		res     bool
	}{
		{0, 0, 0, true},
		{3, 4, 5, true},
		{-1, 0, 0, false},
		{0, -1, 0, false},
		{0, 0, -1, false},
		{4, 0, 0, false},
		{0, 5, 0, false},
		{0, 0, 6, false},
	}

	for i, test := range table {
		res := g.InRange(test.i, test.j, test.k)
		assert.Equal(t, test.res, res, "%d) InRange(%d, %d, %d)",
			i, test.i, test.j, test.k)
	}
}

func TestKeyUnique(t *testing.T) {
	g := NewGrid(4, 3, 5)

	seen := map[int64]bool{}
	for k := 0; k < g.Depth; k++ {
		for j := 0; j < g.Height; j++ {
			for i := 0; i < g.Width; i++ {
				key := g.Key(i, j, k)
				assert.False(t, seen[key], "duplicate key for (%d, %d, %d)",
					i, j, k)
				seen[key] = true
			}
		}
	}
}

func TestKeyMatchesIdx(t *testing.T) {
	g := NewGrid(6, 4, 3)

	for k := 0; k < g.Depth; k++ {
		for j := 0; j < g.Height; j++ {
			for i := 0; i < g.Width; i++ {
				assert.Equal(t, int64(g.Idx(i, j, k)), g.Key(i, j, k))
			}
		}
	}
}

func TestNeighbors6(t *testing.T) {
	var n [6]Index
	Neighbors6(2, 3, 4, &n)

	expected := []Index{
		{1, 3, 4}, {3, 3, 4}, {2, 2, 4}, {2, 4, 4}, {2, 3, 3}, {2, 3, 5},
	}
	assert.ElementsMatch(t, expected, n[:])
}

func TestNeighbors26(t *testing.T) {
	var n [26]Index
	Neighbors26(1, 1, 1, &n)

	seen := map[Index]bool{}
	for _, idx := range n {
		assert.NotEqual(t, Index{1, 1, 1}, idx)
		assert.True(t, IsNeighbors26(Index{1, 1, 1}, idx))
		assert.False(t, seen[idx], "duplicate neighbor %v", idx)
		seen[idx] = true
	}
	assert.Len(t, seen, 26)
}

func TestIsNeighbors26(t *testing.T) {
	table := []struct {
		a, b Index
		res  bool
	}{
		{Index{1, 1, 1}, Index{1, 1, 1}, true},
		{Index{1, 1, 1}, Index{2, 2, 2}, true},
		{Index{1, 1, 1}, Index{0, 0, 0}, true},
		{Index{1, 1, 1}, Index{3, 1, 1}, false},
		{Index{1, 1, 1}, Index{1, 3, 1}, false},
		{Index{1, 1, 1}, Index{1, 1, 3}, false},
	}

	for i, test := range table {
		assert.Equal(t, test.res, IsNeighbors26(test.a, test.b),
			"%d) IsNeighbors26(%v, %v)", i, test.a, test.b)
	}
}
