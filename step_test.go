package gofluid

import (
	"io/ioutil"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestMain(m *testing.M) {
	log.SetOutput(ioutil.Discard)
	os.Exit(m.Run())
}

func TestNextTimeStepStillField(t *testing.T) {
	s, _ := New(6, 6, 6, 1.0, Config{})

	// a still field gives an unbounded CFL step, clamped to the maximum
	assert.Equal(t, DefaultMaxTimeStep, s.nextTimeStep())
}

func TestNextTimeStepFastField(t *testing.T) {
	s, _ := New(6, 6, 6, 1.0, Config{})
	s.vel.SetU(2, 2, 2, 1e6)

	assert.Equal(t, DefaultMinTimeStep, s.nextTimeStep())
}

func TestNextTimeStepCFLBound(t *testing.T) {
	s, _ := New(6, 6, 6, 1.0, Config{CFL: 5})
	s.vel.SetU(2, 2, 2, 100)

	// dt = CFL * dx / maxv
	assert.InDelta(t, 0.05, s.nextTimeStep(), 1e-12)
}

func TestUpdateStillFluid(t *testing.T) {
	s, _ := New(6, 6, 6, 1.0, Config{Seed: 1})
	s.AddFluidCuboid(r3.Vec{X: 1, Y: 1, Z: 1}, 2, 2, 2)
	s.Run()

	before := s.MarkerParticles(1)
	s.Update(1.0 / 30)

	// without body forces a still fluid stays still
	after := s.MarkerParticles(1)
	assert.Equal(t, len(before), len(after))
	for i := range before {
		assert.InDelta(t, before[i].X, after[i].X, 1e-9, "particle %d", i)
		assert.InDelta(t, before[i].Y, after[i].Y, 1e-9, "particle %d", i)
		assert.InDelta(t, before[i].Z, after[i].Z, 1e-9, "particle %d", i)
	}
}

func TestUpdateFallingFluid(t *testing.T) {
	s, _ := New(8, 8, 8, 0.5, Config{Seed: 1, Workers: 2})
	s.AddFluidCuboid(r3.Vec{X: 1, Y: 2, Z: 1}, 2, 1, 2)
	s.SetBodyForce(r3.Vec{Y: -9.8})
	s.Run()

	n := s.NumParticles()
	assert.Greater(t, n, 0)

	startY := 0.0
	for _, p := range s.MarkerParticles(1) {
		startY += p.Y
	}
	startY /= float64(n)

	for frame := 0; frame < 3; frame++ {
		s.Update(1.0 / 30)
	}
	assert.Equal(t, 3, s.Frame())

	// every particle stays inside the domain and out of the solid walls
	endY := 0.0
	for _, p := range s.MarkerParticles(1) {
		assert.True(t, s.inDomain(p), "particle at %v left the domain", p)
		i, j, k := s.positionToIndex(p)
		assert.False(t, s.materials.IsSolid(i, j, k),
			"particle at %v is inside a solid cell", p)
		endY += p.Y
	}
	endY /= float64(len(s.MarkerParticles(1)))

	// gravity pulls the center of mass down
	assert.Less(t, endY, startY)
}
