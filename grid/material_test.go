package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaterialGridBoundary(t *testing.T) {
	m := NewMaterialGrid(4, 5, 6)

	for k := 0; k < m.Depth; k++ {
		for j := 0; j < m.Height; j++ {
			for i := 0; i < m.Width; i++ {
				onBoundary := i == 0 || j == 0 || k == 0 ||
					i == m.Width-1 || j == m.Height-1 || k == m.Depth-1

				if onBoundary {
					assert.Equal(t, Solid, m.Get(i, j, k),
						"boundary cell (%d, %d, %d)", i, j, k)
				} else {
					assert.Equal(t, Air, m.Get(i, j, k),
						"interior cell (%d, %d, %d)", i, j, k)
				}
			}
		}
	}
}

func TestMaterialOutOfRange(t *testing.T) {
	m := NewMaterialGrid(4, 4, 4)

	assert.True(t, m.IsSolid(-1, 0, 0))
	assert.True(t, m.IsSolid(4, 0, 0))
	assert.True(t, m.IsSolid(0, 0, 100))

	assert.False(t, m.IsFluid(-1, 0, 0))
	assert.False(t, m.IsAir(-1, 0, 0))
}

func TestMaterialTransitions(t *testing.T) {
	m := NewMaterialGrid(4, 4, 4)

	m.Set(1, 1, 1, Fluid)
	assert.True(t, m.IsFluid(1, 1, 1))
	assert.False(t, m.IsAir(1, 1, 1))
	assert.False(t, m.IsSolid(1, 1, 1))

	m.Set(1, 1, 1, Air)
	assert.True(t, m.IsAir(1, 1, 1))
}

func TestFloat3dAccess(t *testing.T) {
	a := NewFloat3d(3, 3, 3, 1.5)

	assert.Equal(t, 1.5, a.Get(2, 2, 2))

	a.Set(1, 2, 0, 4.0)
	assert.Equal(t, 4.0, a.Get(1, 2, 0))

	a.Add(1, 2, 0, 0.5)
	assert.Equal(t, 4.5, a.Get(1, 2, 0))

	assert.Equal(t, 0.0, a.GetOrZero(-1, 0, 0))
	assert.Equal(t, 4.5, a.GetOrZero(1, 2, 0))

	assert.Panics(t, func() { a.Get(3, 0, 0) })
}

func TestInt3dFill(t *testing.T) {
	a := NewInt3d(2, 2, 2, -1)
	assert.Equal(t, -1, a.Get(1, 1, 1))

	a.Fill(7)
	assert.Equal(t, 7, a.Get(0, 0, 0))
}
