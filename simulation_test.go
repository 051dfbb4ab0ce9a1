package gofluid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/phil-mansfield/gofluid/grid"
)

func TestNewValidation(t *testing.T) {
	table := []struct {
		width, height, depth int
		dx                   float64
		ok                   bool
	}{
		{6, 6, 6, 0.5, true},
		{0, 6, 6, 0.5, false},
		{6, -1, 6, 0.5, false},
		{6, 6, 0, 0.5, false},
		{6, 6, 6, 0, false},
		{6, 6, 6, -0.5, false},
	}

	for i, test := range table {
		_, err := New(test.width, test.height, test.depth, test.dx, Config{})
		if test.ok {
			assert.NoError(t, err, "%d)", i)
		} else {
			assert.Error(t, err, "%d)", i)
		}
	}
}

func TestConfigDefaults(t *testing.T) {
	s, err := New(6, 6, 6, 0.5, Config{})
	assert.NoError(t, err)

	assert.Equal(t, DefaultCFL, s.cfg.CFL)
	assert.Equal(t, DefaultMinTimeStep, s.cfg.MinTimeStep)
	assert.Equal(t, DefaultMaxTimeStep, s.cfg.MaxTimeStep)
	assert.Equal(t, DefaultDensity, s.cfg.Density)
	assert.Equal(t, DefaultPressureTolerance, s.cfg.PressureSolveTolerance)
	assert.Equal(t, DefaultMaxPressureIterations, s.cfg.MaxPressureIterations)
	assert.Greater(t, s.cfg.Workers, 0)
}

func TestInitializeSeeding(t *testing.T) {
	s, _ := New(6, 6, 6, 1.0, Config{Seed: 1})
	s.AddFluidCuboid(r3.Vec{X: 1, Y: 1, Z: 1}, 2, 2, 2)
	s.Run()

	// the cuboid covers the centers of a 2 x 2 x 2 block of cells, each of
	// which is seeded with eight particles
	assert.Equal(t, 64, s.NumParticles())

	fluid := 0
	for k := 1; k < 5; k++ {
		for j := 1; j < 5; j++ {
			for i := 1; i < 5; i++ {
				if s.materials.IsFluid(i, j, k) {
					fluid++
				}
			}
		}
	}
	assert.Equal(t, 8, fluid)

	// the jitter is small enough that every particle starts inside its cell
	for _, mp := range s.particles {
		i, j, k := s.positionToIndex(mp.Position)
		assert.Equal(t, mp.Cell, grid.Index{I: i, J: j, K: k})
	}
}

func TestRunBeforeUpdate(t *testing.T) {
	s, _ := New(6, 6, 6, 1.0, Config{})
	s.AddFluidCuboid(r3.Vec{X: 1, Y: 1, Z: 1}, 2, 2, 2)

	// Update does nothing until Run is called
	s.Update(1.0 / 30)
	assert.Equal(t, 0, s.Frame())
	assert.Equal(t, 0, s.NumParticles())

	s.Run()
	s.Update(1.0 / 30)
	assert.Equal(t, 1, s.Frame())
}

func TestEmptySceneNeverSteps(t *testing.T) {
	s, _ := New(6, 6, 6, 1.0, Config{})
	s.Run()
	s.Update(1.0 / 30)

	assert.Equal(t, 0, s.Frame())
	assert.Equal(t, 0, s.NumParticles())
}

func TestPauseToggles(t *testing.T) {
	s, _ := New(6, 6, 6, 1.0, Config{})
	s.AddFluidCuboid(r3.Vec{X: 1, Y: 1, Z: 1}, 2, 2, 2)

	// Pause before Run does nothing
	s.Pause()
	s.Run()

	s.Pause()
	s.Update(1.0 / 30)
	assert.Equal(t, 0, s.Frame())

	s.Pause()
	s.Update(1.0 / 30)
	assert.Equal(t, 1, s.Frame())
}

func TestMarkerParticlesSkip(t *testing.T) {
	s, _ := New(6, 6, 6, 1.0, Config{})
	s.AddFluidCuboid(r3.Vec{X: 1, Y: 1, Z: 1}, 2, 2, 2)
	s.Run()

	all := s.MarkerParticles(1)
	assert.Len(t, all, 64)

	half := s.MarkerParticles(2)
	assert.Len(t, half, 32)
	assert.Equal(t, all[0], half[0])
	assert.Equal(t, all[2], half[1])

	// skip below 1 is treated as 1
	assert.Len(t, s.MarkerParticles(0), 64)
}

func TestBodyForceAccumulates(t *testing.T) {
	s, _ := New(6, 6, 6, 1.0, Config{})

	s.AddBodyForce(r3.Vec{Y: -9.8})
	s.AddBodyForce(r3.Vec{X: 1})
	assert.Equal(t, r3.Vec{X: 1, Y: -9.8}, s.bodyForce)

	s.SetBodyForce(r3.Vec{Y: -1})
	assert.Equal(t, r3.Vec{Y: -1}, s.bodyForce)
}
