package gofluid

import (
	"log"
	"math"
)

// nextTimeStep returns the next substep duration, bounded by the CFL
// condition and clamped to the configured limits. A still velocity field
// yields the maximum step.
func (s *FluidSimulation) nextTimeStep() float64 {
	maxv := s.vel.MaxVelocityMagnitude()
	dt := s.cfg.CFL * s.dx / maxv

	dt = math.Max(s.cfg.MinTimeStep, dt)
	dt = math.Min(s.cfg.MaxTimeStep, dt)

	return dt
}

// Update advances the simulation by one frame of the given duration,
// splitting it into CFL-bounded substeps. It does nothing until Run has been
// called on a scene that contains fluid.
func (s *FluidSimulation) Update(dtFrame float64) {
	if !s.running || !s.initialized || !s.hasFluid {
		return
	}

	timeLeft := dtFrame
	for timeLeft > 0 {
		dt := s.nextTimeStep()
		if dt > timeLeft {
			dt = timeLeft
		}
		timeLeft -= dt

		s.stepFluid(dt)
	}

	s.frame++
}

// stepFluid runs one substep of the solver pipeline and logs a per-stage
// timing breakdown.
func (s *FluidSimulation) stepFluid(dt float64) {
	var timers [7]StopWatch

	log.Printf("frame %d: substep %.4fs", s.frame, dt)

	whole := StopWatch{}
	whole.Start()

	timers[0].Start()
	s.updateFluidCells()
	timers[0].Stop()

	timers[1].Start()
	s.extrapolateVelocities()
	timers[1].Stop()

	timers[2].Start()
	s.applyBodyForces(dt)
	timers[2].Stop()

	timers[3].Start()
	s.advectVelocityField(dt)
	timers[3].Stop()

	timers[4].Start()
	stats := s.pressureSolver.Solve(
		s.materials, s.vel, s.fluidCells, s.cellLookup, dt, s.pressure,
	)
	timers[4].Stop()

	timers[5].Start()
	s.applyPressure(dt)
	timers[5].Stop()

	timers[6].Start()
	s.advanceParticles(dt)
	timers[6].Stop()

	whole.Stop()

	names := [7]string{
		"update fluid cells",
		"extrapolate velocities",
		"apply body forces",
		"advect velocity field",
		"solve pressure",
		"apply pressure",
		"advance particles",
	}

	totalTime := whole.Seconds()
	log.Printf("  fluid cells: %d, pressure iterations: %d, converged: %t",
		len(s.fluidCells), stats.Iterations, stats.Converged)
	for i := range timers {
		t := timers[i].Seconds()
		pct := 0.0
		if totalTime > 0 {
			pct = 100 * t / totalTime
		}
		log.Printf("  %-22s %.4fs (%.1f%%)", names[i], t, pct)
	}
	log.Printf("  total %.4fs", totalTime)
}
