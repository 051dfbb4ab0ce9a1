package gofluid

import (
	"fmt"

	"github.com/phil-mansfield/gofluid/grid"
)

// updateFluidCells rederives the fluid classification from marker occupancy.
// Every fluid cell is reset to air, each particle's cell is marked fluid,
// and the ordered fluid cell list and its key lookup are rebuilt. Solid
// cells are untouched.
func (s *FluidSimulation) updateFluidCells() {
	for k := 0; k < s.depth; k++ {
		for j := 0; j < s.height; j++ {
			for i := 0; i < s.width; i++ {
				if s.materials.IsFluid(i, j, k) {
					s.materials.Set(i, j, k, grid.Air)
				}
			}
		}
	}

	for _, mp := range s.particles {
		c := mp.Cell
		if s.materials.IsSolid(c.I, c.J, c.K) {
			panic(fmt.Sprintf(
				"marker particle at (%g, %g, %g) is inside solid cell (%d, %d, %d)",
				mp.Position.X, mp.Position.Y, mp.Position.Z, c.I, c.J, c.K,
			))
		}
		s.materials.Set(c.I, c.J, c.K, grid.Fluid)
	}

	s.fluidCells = s.fluidCells[:0]
	for k := 0; k < s.depth; k++ {
		for j := 0; j < s.height; j++ {
			for i := 0; i < s.width; i++ {
				if s.materials.IsFluid(i, j, k) {
					s.fluidCells = append(s.fluidCells, grid.Index{I: i, J: j, K: k})
				}
			}
		}
	}

	for key := range s.cellLookup {
		delete(s.cellLookup, key)
	}
	g := &s.materials.Grid
	for idx, c := range s.fluidCells {
		s.cellLookup[g.Key(c.I, c.J, c.K)] = idx
	}
}

// faceBordersFluidU returns true if U face (i, j, k) touches a fluid cell.
func (s *FluidSimulation) faceBordersFluidU(i, j, k int) bool {
	return s.materials.IsFluid(i-1, j, k) || s.materials.IsFluid(i, j, k)
}

// faceBordersFluidV returns true if V face (i, j, k) touches a fluid cell.
func (s *FluidSimulation) faceBordersFluidV(i, j, k int) bool {
	return s.materials.IsFluid(i, j-1, k) || s.materials.IsFluid(i, j, k)
}

// faceBordersFluidW returns true if W face (i, j, k) touches a fluid cell.
func (s *FluidSimulation) faceBordersFluidW(i, j, k int) bool {
	return s.materials.IsFluid(i, j, k-1) || s.materials.IsFluid(i, j, k)
}

// faceBordersSolidU returns true if U face (i, j, k) touches a solid cell.
// Cells beyond the domain count as solid.
func (s *FluidSimulation) faceBordersSolidU(i, j, k int) bool {
	return s.materials.IsSolid(i-1, j, k) || s.materials.IsSolid(i, j, k)
}

func (s *FluidSimulation) faceBordersSolidV(i, j, k int) bool {
	return s.materials.IsSolid(i, j-1, k) || s.materials.IsSolid(i, j, k)
}

func (s *FluidSimulation) faceBordersSolidW(i, j, k int) bool {
	return s.materials.IsSolid(i, j, k-1) || s.materials.IsSolid(i, j, k)
}
