package gofluid

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"
)

/* advect.go moves the velocity field through itself. Each face bordering a
fluid cell is traced backwards through the current field and assigned the
velocity found at the traced point. The three component sweeps read the same
committed field and write disjoint temp buffers, so they run concurrently. */

// rk2 integrates one second-order Runge-Kutta step from p0 with initial
// velocity v0.
func (s *FluidSimulation) rk2(p0, v0 r3.Vec, dt float64) r3.Vec {
	k1 := v0
	k2 := s.vel.Evaluate(r3.Add(p0, r3.Scale(0.5*dt, k1)))
	return r3.Add(p0, r3.Scale(dt, k2))
}

// rk3 integrates one third-order Runge-Kutta step from p0 with initial
// velocity v0.
func (s *FluidSimulation) rk3(p0, v0 r3.Vec, dt float64) r3.Vec {
	k1 := v0
	k2 := s.vel.Evaluate(r3.Add(p0, r3.Scale(0.5*dt, k1)))
	k3 := s.vel.Evaluate(r3.Add(p0, r3.Scale(0.75*dt, k2)))

	sum := r3.Add(r3.Add(r3.Scale(2, k1), r3.Scale(3, k2)), r3.Scale(4, k3))
	return r3.Add(p0, r3.Scale(dt/9, sum))
}

// rk4 integrates one fourth-order Runge-Kutta step from p0 with initial
// velocity v0.
func (s *FluidSimulation) rk4(p0, v0 r3.Vec, dt float64) r3.Vec {
	k1 := v0
	k2 := s.vel.Evaluate(r3.Add(p0, r3.Scale(0.5*dt, k1)))
	k3 := s.vel.Evaluate(r3.Add(p0, r3.Scale(0.5*dt, k2)))
	k4 := s.vel.Evaluate(r3.Add(p0, r3.Scale(dt, k3)))

	sum := r3.Add(r3.Add(k1, r3.Scale(2, k2)), r3.Add(r3.Scale(2, k3), k4))
	return r3.Add(p0, r3.Scale(dt/6, sum))
}

// integrateVelocity advances p0 by one RK4 step. If the step lands in a
// solid cell the trajectory is cut at the wall and the returned point is
// nudged off the face; the second return value is false when that happens.
func (s *FluidSimulation) integrateVelocity(p0, v0 r3.Vec, dt float64) (r3.Vec, bool) {
	p1 := s.rk4(p0, v0, dt)

	i, j, k := s.positionToIndex(p1)
	if !s.materials.IsSolid(i, j, k) {
		return p1, true
	}

	point, normal := s.solidCellCollision(p0, p1)
	p1 = r3.Add(point, r3.Scale(0.01*s.dx, normal))

	i, j, k = s.positionToIndex(p1)
	if s.materials.IsSolid(i, j, k) {
		p1 = p0
	}

	return p1, false
}

// backTrace integrates backwards through the velocity field for time dt,
// subdividing so that no sub-step travels more than one cell. Returns the
// traced point and the velocity there. Tracing stops early at solid walls.
func (s *FluidSimulation) backTrace(p0, v0 r3.Vec, dt float64) (r3.Vec, r3.Vec) {
	p1, v1 := p0, v0

	timeLeft := dt
	for timeLeft > 0 {
		// a zero velocity gives an infinite step, which the min resolves
		step := math.Min(timeLeft, s.dx/r3.Norm(v0))

		var ok bool
		p1, ok = s.integrateVelocity(p0, v0, -step)
		v1 = s.vel.Evaluate(p1)
		if !ok {
			break
		}

		p0, v0 = p1, v1
		timeLeft -= step
	}

	return p1, v1
}

func (s *FluidSimulation) advectVelocityU(dt float64) {
	for k := 0; k < s.depth; k++ {
		for j := 0; j < s.height; j++ {
			for i := 0; i < s.width+1; i++ {
				if !s.faceBordersFluidU(i, j, k) {
					continue
				}
				p0 := s.vel.PositionU(i, j, k)
				v0 := s.vel.EvaluateFaceCenterU(i, j, k)
				_, v1 := s.backTrace(p0, v0, dt)
				s.vel.SetTempU(i, j, k, v1.X)
			}
		}
	}
}

func (s *FluidSimulation) advectVelocityV(dt float64) {
	for k := 0; k < s.depth; k++ {
		for j := 0; j < s.height+1; j++ {
			for i := 0; i < s.width; i++ {
				if !s.faceBordersFluidV(i, j, k) {
					continue
				}
				p0 := s.vel.PositionV(i, j, k)
				v0 := s.vel.EvaluateFaceCenterV(i, j, k)
				_, v1 := s.backTrace(p0, v0, dt)
				s.vel.SetTempV(i, j, k, v1.Y)
			}
		}
	}
}

func (s *FluidSimulation) advectVelocityW(dt float64) {
	for k := 0; k < s.depth+1; k++ {
		for j := 0; j < s.height; j++ {
			for i := 0; i < s.width; i++ {
				if !s.faceBordersFluidW(i, j, k) {
					continue
				}
				p0 := s.vel.PositionW(i, j, k)
				v0 := s.vel.EvaluateFaceCenterW(i, j, k)
				_, v1 := s.backTrace(p0, v0, dt)
				s.vel.SetTempW(i, j, k, v1.Z)
			}
		}
	}
}

// advectVelocityField runs the three component sweeps concurrently and
// commits the staged values once all of them finish.
func (s *FluidSimulation) advectVelocityField(dt float64) {
	s.vel.ResetTemp()

	wg := &sync.WaitGroup{}
	wg.Add(3)
	go func() { defer wg.Done(); s.advectVelocityU(dt) }()
	go func() { defer wg.Done(); s.advectVelocityV(dt) }()
	go func() { defer wg.Done(); s.advectVelocityW(dt) }()
	wg.Wait()

	s.vel.CommitTemp()
}
