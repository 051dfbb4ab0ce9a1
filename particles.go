package gofluid

import (
	"log"

	"github.com/dgravesa/go-parallel/parallel"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/phil-mansfield/gofluid/grid"
)

// MarkerParticle is a massless tracer. Its cached cell index always matches
// its position and never refers to a solid cell.
type MarkerParticle struct {
	Position r3.Vec
	Cell     grid.Index
}

// NumParticles returns the number of marker particles in the simulation.
func (s *FluidSimulation) NumParticles() int { return len(s.particles) }

// MarkerParticles returns a copy of every skip-th marker particle position.
// skip = 1 returns all of them.
func (s *FluidSimulation) MarkerParticles(skip int) []r3.Vec {
	if skip < 1 {
		skip = 1
	}

	out := make([]r3.Vec, 0, (len(s.particles)+skip-1)/skip)
	for i := 0; i < len(s.particles); i += skip {
		out = append(out, s.particles[i].Position)
	}
	return out
}

// advanceParticles moves every marker particle through the corrected
// velocity field. The particle array is split into contiguous ranges, one
// per worker, so each goroutine mutates a disjoint slice.
func (s *FluidSimulation) advanceParticles(dt float64) {
	parallel.WithNumGoroutines(s.cfg.Workers).For(len(s.particles),
		func(idx, _ int) { s.advanceParticle(idx, dt) })
}

// advanceParticle integrates one particle forward by dt. Particles that
// leave the domain keep their old position; trajectories into solid cells
// are cut at the wall and nudged off the face.
func (s *FluidSimulation) advanceParticle(idx int, dt float64) {
	mp := s.particles[idx]

	v := s.vel.Evaluate(mp.Position)
	p := s.rk4(mp.Position, v, dt)

	if !s.inDomain(p) {
		return
	}

	i, j, k := s.positionToIndex(p)
	if s.materials.IsSolid(i, j, k) {
		point, normal := s.solidCellCollision(mp.Position, p)
		p = r3.Add(point, r3.Scale(0.001*s.dx, normal))
	}

	i, j, k = s.positionToIndex(p)
	if s.materials.IsSolid(i, j, k) {
		log.Printf("particle trapped against solid cell (%d, %d, %d): "+
			"position (%g, %g, %g), target (%g, %g, %g)",
			i, j, k, mp.Position.X, mp.Position.Y, mp.Position.Z, p.X, p.Y, p.Z)
		return
	}

	s.particles[idx].Position = p
	s.particles[idx].Cell = grid.Index{I: i, J: j, K: k}
}
