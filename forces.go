package gofluid

import (
	"math"
)

// faceExtrapolatedU returns true if U face (i, j, k) touches a cell the
// extrapolation reached this substep.
func (s *FluidSimulation) faceExtrapolatedU(i, j, k int) bool {
	return (s.layers.InRange(i-1, j, k) && s.layers.Get(i-1, j, k) >= 1) ||
		(s.layers.InRange(i, j, k) && s.layers.Get(i, j, k) >= 1)
}

func (s *FluidSimulation) faceExtrapolatedV(i, j, k int) bool {
	return (s.layers.InRange(i, j-1, k) && s.layers.Get(i, j-1, k) >= 1) ||
		(s.layers.InRange(i, j, k) && s.layers.Get(i, j, k) >= 1)
}

func (s *FluidSimulation) faceExtrapolatedW(i, j, k int) bool {
	return (s.layers.InRange(i, j, k-1) && s.layers.Get(i, j, k-1) >= 1) ||
		(s.layers.InRange(i, j, k) && s.layers.Get(i, j, k) >= 1)
}

// applyBodyForces adds bodyForce * dt to every face velocity that borders a
// fluid cell or carries an extrapolated value. Axes with zero force are
// skipped.
func (s *FluidSimulation) applyBodyForces(dt float64) {
	if math.Abs(s.bodyForce.X) > 0 {
		for k := 0; k < s.depth; k++ {
			for j := 0; j < s.height; j++ {
				for i := 0; i < s.width+1; i++ {
					if s.faceBordersFluidU(i, j, k) || s.faceExtrapolatedU(i, j, k) {
						s.vel.AddU(i, j, k, s.bodyForce.X*dt)
					}
				}
			}
		}
	}

	if math.Abs(s.bodyForce.Y) > 0 {
		for k := 0; k < s.depth; k++ {
			for j := 0; j < s.height+1; j++ {
				for i := 0; i < s.width; i++ {
					if s.faceBordersFluidV(i, j, k) || s.faceExtrapolatedV(i, j, k) {
						s.vel.AddV(i, j, k, s.bodyForce.Y*dt)
					}
				}
			}
		}
	}

	if math.Abs(s.bodyForce.Z) > 0 {
		for k := 0; k < s.depth+1; k++ {
			for j := 0; j < s.height; j++ {
				for i := 0; i < s.width; i++ {
					if s.faceBordersFluidW(i, j, k) || s.faceExtrapolatedW(i, j, k) {
						s.vel.AddW(i, j, k, s.bodyForce.Z*dt)
					}
				}
			}
		}
	}
}
