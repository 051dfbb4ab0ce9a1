package gofluid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestApplyPressureGradient(t *testing.T) {
	s, _ := New(8, 8, 8, 1.0, Config{Density: 20})
	s.particles = append(s.particles, particleAt(s, 4, 4, 4))
	s.updateFluidCells()

	dt := 0.01
	scale := dt / (s.cfg.Density * s.dx)

	s.pressure.Set(4, 4, 4, 100)
	s.applyPressure(dt)

	// pressure pushes outward through the cell's faces
	assert.InDelta(t, -scale*100, s.vel.U(4, 4, 4), 1e-12)
	assert.InDelta(t, scale*100, s.vel.U(5, 4, 4), 1e-12)
	assert.InDelta(t, -scale*100, s.vel.V(4, 4, 4), 1e-12)
	assert.InDelta(t, scale*100, s.vel.V(4, 5, 4), 1e-12)
	assert.InDelta(t, -scale*100, s.vel.W(4, 4, 4), 1e-12)
	assert.InDelta(t, scale*100, s.vel.W(4, 4, 5), 1e-12)

	// faces not bordering the fluid cell are untouched
	assert.Equal(t, 0.0, s.vel.U(3, 4, 4))
}

func TestApplyPressureZeroesSolidFaces(t *testing.T) {
	s, _ := New(8, 8, 8, 1.0, Config{Density: 20})
	s.particles = append(s.particles, particleAt(s, 1, 4, 4))
	s.updateFluidCells()

	// flow into the wall before projection
	s.vel.SetU(1, 4, 4, -3.0)
	s.pressure.Set(1, 4, 4, 50)

	s.applyPressure(0.01)

	// the synthesized solid pressure makes the wall-normal velocity vanish
	assert.InDelta(t, 0.0, s.vel.U(1, 4, 4), 1e-12)
}

func TestProjectionRemovesDivergence(t *testing.T) {
	s, _ := New(8, 8, 8, 0.5, Config{Seed: 1})
	s.AddFluidCuboid(r3.Vec{X: 1, Y: 1, Z: 1}, 1.5, 1.5, 1.5)
	s.Run()
	s.updateFluidCells()

	// inject divergence inside the fluid block
	for _, c := range s.fluidCells {
		s.vel.SetU(c.I, c.J, c.K, 1.0)
	}

	dt := 0.01
	stats := s.pressureSolver.Solve(
		s.materials, s.vel, s.fluidCells, s.cellLookup, dt, s.pressure,
	)
	assert.True(t, stats.Converged)

	s.applyPressure(dt)

	// after projection each fluid cell's net flux is within tolerance
	for _, c := range s.fluidCells {
		i, j, k := c.I, c.J, c.K
		div := s.vel.U(i+1, j, k) - s.vel.U(i, j, k) +
			s.vel.V(i, j+1, k) - s.vel.V(i, j, k) +
			s.vel.W(i, j, k+1) - s.vel.W(i, j, k)
		assert.InDelta(t, 0.0, div, 1e-5, "cell %v", c)
	}
}
