package gofluid

import (
	"math"

	"github.com/phil-mansfield/gofluid/grid"
)

/* extrapolate.go extends the velocity field from the fluid cells into a band
of surrounding air cells so that semi-Lagrangian traces and body forces near
the free surface sample meaningful values. The band is built breadth-first as
concentric layers, and each layer's faces are filled with the average of
their already-filled neighbors. */

// extrapolateVelocities zeroes every face not touching fluid, rebuilds the
// extrapolation layers, and fills the layers outward one at a time.
func (s *FluidSimulation) extrapolateVelocities() {
	s.resetExtrapolatedVelocities()
	numLayers := s.updateExtrapolationLayers()

	for layer := 1; layer <= numLayers; layer++ {
		s.extrapolateLayer(layer)
	}
}

// resetExtrapolatedVelocities zeroes every face velocity whose face does not
// border a fluid cell.
func (s *FluidSimulation) resetExtrapolatedVelocities() {
	for k := 0; k < s.depth; k++ {
		for j := 0; j < s.height; j++ {
			for i := 0; i < s.width+1; i++ {
				if !s.faceBordersFluidU(i, j, k) {
					s.vel.SetU(i, j, k, 0)
				}
			}
		}
	}

	for k := 0; k < s.depth; k++ {
		for j := 0; j < s.height+1; j++ {
			for i := 0; i < s.width; i++ {
				if !s.faceBordersFluidV(i, j, k) {
					s.vel.SetV(i, j, k, 0)
				}
			}
		}
	}

	for k := 0; k < s.depth+1; k++ {
		for j := 0; j < s.height; j++ {
			for i := 0; i < s.width; i++ {
				if !s.faceBordersFluidW(i, j, k) {
					s.vel.SetW(i, j, k, 0)
				}
			}
		}
	}
}

// updateExtrapolationLayers rebuilds the layer grid. Fluid cells are layer
// 0, each successive layer is the set of unreached non-solid 6-neighbors of
// the previous one, and -1 marks cells the extrapolation never reaches.
// Returns the number of layers built.
func (s *FluidSimulation) updateExtrapolationLayers() int {
	s.layers.Fill(-1)

	for _, c := range s.fluidCells {
		s.layers.Set(c.I, c.J, c.K, 0)
	}

	// two extra layers cover the neighborhoods read by interpolation
	numLayers := int(math.Ceil(s.cfg.CFL)) + 2
	for layer := 1; layer <= numLayers; layer++ {
		s.buildLayer(layer)
	}

	return numLayers
}

func (s *FluidSimulation) buildLayer(layer int) {
	var neighbors [6]grid.Index

	for k := 0; k < s.depth; k++ {
		for j := 0; j < s.height; j++ {
			for i := 0; i < s.width; i++ {
				if s.layers.Get(i, j, k) != layer-1 || s.materials.IsSolid(i, j, k) {
					continue
				}

				grid.Neighbors6(i, j, k, &neighbors)
				for _, n := range neighbors {
					if s.layers.InRange(n.I, n.J, n.K) &&
						s.layers.Get(n.I, n.J, n.K) == -1 &&
						!s.materials.IsSolid(n.I, n.J, n.K) {
						s.layers.Set(n.I, n.J, n.K, layer)
					}
				}
			}
		}
	}
}

// faceBordersLayerU returns true if either cell straddling U face (i, j, k)
// is in range and sits on the given extrapolation layer.
func (s *FluidSimulation) faceBordersLayerU(i, j, k, layer int) bool {
	return (s.layers.InRange(i-1, j, k) && s.layers.Get(i-1, j, k) == layer) ||
		(s.layers.InRange(i, j, k) && s.layers.Get(i, j, k) == layer)
}

func (s *FluidSimulation) faceBordersLayerV(i, j, k, layer int) bool {
	return (s.layers.InRange(i, j-1, k) && s.layers.Get(i, j-1, k) == layer) ||
		(s.layers.InRange(i, j, k) && s.layers.Get(i, j, k) == layer)
}

func (s *FluidSimulation) faceBordersLayerW(i, j, k, layer int) bool {
	return (s.layers.InRange(i, j, k-1) && s.layers.Get(i, j, k-1) == layer) ||
		(s.layers.InRange(i, j, k) && s.layers.Get(i, j, k) == layer)
}

// extrapolateLayer fills every face of the given layer with the average of
// its face neighbors from the previous layer. Values are staged in the temp
// buffers and committed together so a layer only reads the layer before it.
func (s *FluidSimulation) extrapolateLayer(layer int) {
	s.vel.ResetTemp()

	for k := 0; k < s.depth; k++ {
		for j := 0; j < s.height; j++ {
			for i := 0; i < s.width+1; i++ {
				if s.faceBordersLayerU(i, j, k, layer) &&
					!s.faceBordersLayerU(i, j, k, layer-1) &&
					!s.faceBordersSolidU(i, j, k) {
					s.vel.SetTempU(i, j, k, s.extrapolatedFaceU(i, j, k, layer))
				}
			}
		}
	}

	for k := 0; k < s.depth; k++ {
		for j := 0; j < s.height+1; j++ {
			for i := 0; i < s.width; i++ {
				if s.faceBordersLayerV(i, j, k, layer) &&
					!s.faceBordersLayerV(i, j, k, layer-1) &&
					!s.faceBordersSolidV(i, j, k) {
					s.vel.SetTempV(i, j, k, s.extrapolatedFaceV(i, j, k, layer))
				}
			}
		}
	}

	for k := 0; k < s.depth+1; k++ {
		for j := 0; j < s.height; j++ {
			for i := 0; i < s.width; i++ {
				if s.faceBordersLayerW(i, j, k, layer) &&
					!s.faceBordersLayerW(i, j, k, layer-1) &&
					!s.faceBordersSolidW(i, j, k) {
					s.vel.SetTempW(i, j, k, s.extrapolatedFaceW(i, j, k, layer))
				}
			}
		}
	}

	s.vel.CommitTemp()
}

// extrapolatedFaceU averages the values of the six adjacent U faces that
// border a cell one layer in, or 0 if none qualify.
func (s *FluidSimulation) extrapolatedFaceU(i, j, k, layer int) float64 {
	var neighbors [6]grid.Index
	grid.Neighbors6(i, j, k, &neighbors)

	sum, weight := 0.0, 0.0
	for _, n := range neighbors {
		if s.vel.InRangeU(n.I, n.J, n.K) &&
			s.faceBordersLayerU(n.I, n.J, n.K, layer-1) {
			sum += s.vel.U(n.I, n.J, n.K)
			weight++
		}
	}

	if weight == 0 {
		return 0
	}
	return sum / weight
}

func (s *FluidSimulation) extrapolatedFaceV(i, j, k, layer int) float64 {
	var neighbors [6]grid.Index
	grid.Neighbors6(i, j, k, &neighbors)

	sum, weight := 0.0, 0.0
	for _, n := range neighbors {
		if s.vel.InRangeV(n.I, n.J, n.K) &&
			s.faceBordersLayerV(n.I, n.J, n.K, layer-1) {
			sum += s.vel.V(n.I, n.J, n.K)
			weight++
		}
	}

	if weight == 0 {
		return 0
	}
	return sum / weight
}

func (s *FluidSimulation) extrapolatedFaceW(i, j, k, layer int) float64 {
	var neighbors [6]grid.Index
	grid.Neighbors6(i, j, k, &neighbors)

	sum, weight := 0.0, 0.0
	for _, n := range neighbors {
		if s.vel.InRangeW(n.I, n.J, n.K) &&
			s.faceBordersLayerW(n.I, n.J, n.K, layer-1) {
			sum += s.vel.W(n.I, n.J, n.K)
			weight++
		}
	}

	if weight == 0 {
		return 0
	}
	return sum / weight
}
