package gofluid

// applyPressure subtracts the pressure gradient from every face velocity
// bordering a fluid cell. When one of the straddling cells is solid, a
// pressure is synthesized for it so that the face's normal velocity comes
// out exactly zero. Solids are stationary.
func (s *FluidSimulation) applyPressure(dt float64) {
	s.vel.ResetTemp()

	const uSolid = 0.0
	scale := dt / (s.cfg.Density * s.dx)
	invScale := 1.0 / scale

	for k := 0; k < s.depth; k++ {
		for j := 0; j < s.height; j++ {
			for i := 0; i < s.width+1; i++ {
				if !s.faceBordersFluidU(i, j, k) {
					continue
				}
				ci, cj, ck := i-1, j, k

				var p0, p1 float64
				switch {
				case !s.materials.IsSolid(ci, cj, ck) && !s.materials.IsSolid(ci+1, cj, ck):
					p0 = s.pressure.Get(ci, cj, ck)
					p1 = s.pressure.Get(ci+1, cj, ck)
				case s.materials.IsSolid(ci, cj, ck):
					p1 = s.pressure.Get(ci+1, cj, ck)
					p0 = p1 - invScale*(s.vel.U(i, j, k)-uSolid)
				default:
					p0 = s.pressure.Get(ci, cj, ck)
					p1 = p0 + invScale*(s.vel.U(i, j, k)-uSolid)
				}

				s.vel.SetTempU(i, j, k, s.vel.U(i, j, k)-scale*(p1-p0))
			}
		}
	}

	for k := 0; k < s.depth; k++ {
		for j := 0; j < s.height+1; j++ {
			for i := 0; i < s.width; i++ {
				if !s.faceBordersFluidV(i, j, k) {
					continue
				}
				ci, cj, ck := i, j-1, k

				var p0, p1 float64
				switch {
				case !s.materials.IsSolid(ci, cj, ck) && !s.materials.IsSolid(ci, cj+1, ck):
					p0 = s.pressure.Get(ci, cj, ck)
					p1 = s.pressure.Get(ci, cj+1, ck)
				case s.materials.IsSolid(ci, cj, ck):
					p1 = s.pressure.Get(ci, cj+1, ck)
					p0 = p1 - invScale*(s.vel.V(i, j, k)-uSolid)
				default:
					p0 = s.pressure.Get(ci, cj, ck)
					p1 = p0 + invScale*(s.vel.V(i, j, k)-uSolid)
				}

				s.vel.SetTempV(i, j, k, s.vel.V(i, j, k)-scale*(p1-p0))
			}
		}
	}

	for k := 0; k < s.depth+1; k++ {
		for j := 0; j < s.height; j++ {
			for i := 0; i < s.width; i++ {
				if !s.faceBordersFluidW(i, j, k) {
					continue
				}
				ci, cj, ck := i, j, k-1

				var p0, p1 float64
				switch {
				case !s.materials.IsSolid(ci, cj, ck) && !s.materials.IsSolid(ci, cj, ck+1):
					p0 = s.pressure.Get(ci, cj, ck)
					p1 = s.pressure.Get(ci, cj, ck+1)
				case s.materials.IsSolid(ci, cj, ck):
					p1 = s.pressure.Get(ci, cj, ck+1)
					p0 = p1 - invScale*(s.vel.W(i, j, k)-uSolid)
				default:
					p0 = s.pressure.Get(ci, cj, ck)
					p1 = p0 + invScale*(s.vel.W(i, j, k)-uSolid)
				}

				s.vel.SetTempW(i, j, k, s.vel.W(i, j, k)-scale*(p1-p0))
			}
		}
	}

	s.vel.CommitTemp()
}
