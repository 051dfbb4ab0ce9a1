/*package solver assembles and solves the pressure Poisson system that makes
the velocity field divergence free. The system has one unknown per fluid
cell and is solved with a conjugate gradient method preconditioned by a
modified incomplete Cholesky factorization, MIC(0).
*/
package solver

import (
	"log"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/gofluid/grid"
	"github.com/phil-mansfield/gofluid/mac"
)

const (
	// MIC(0) tuning and safety constants.
	micTau   = 0.97
	micSigma = 0.25
)

// Options are the tunable parameters of the pressure solve.
type Options struct {
	Density       float64
	Tolerance     float64
	MaxIterations int
}

// Stats reports how a pressure solve went.
type Stats struct {
	// Skipped is true if the velocity field was already divergence free to
	// within tolerance and no solve was run.
	Skipped    bool
	Converged  bool
	Iterations int
	Residual   float64
}

// PressureSolver holds the per-solve matrix and preconditioner grids. The
// grids are reused between substeps; everything else is scoped to one Solve.
type PressureSolver struct {
	opt Options

	width, height, depth int
	dx                   float64

	plusI, plusJ, plusK *grid.Float3d
	diag, precon        *grid.Float3d
	q, z                *grid.Float3d
}

// NewPressureSolver returns a solver for a width x height x depth grid with
// cell size dx.
func NewPressureSolver(width, height, depth int, dx float64, opt Options) *PressureSolver {
	return &PressureSolver{
		opt:   opt,
		width: width, height: height, depth: depth, dx: dx,
		plusI:  grid.NewFloat3d(width, height, depth, 0),
		plusJ:  grid.NewFloat3d(width, height, depth, 0),
		plusK:  grid.NewFloat3d(width, height, depth, 0),
		diag:   grid.NewFloat3d(width, height, depth, 0),
		precon: grid.NewFloat3d(width, height, depth, 0),
		q:      grid.NewFloat3d(width, height, depth, 0),
		z:      grid.NewFloat3d(width, height, depth, 0),
	}
}

// Solve computes pressures for the current fluid configuration and writes
// them into p, which is zeroed first. cells lists the fluid cells in
// lexicographic order and lookup maps packed cell keys to positions in that
// list.
func (ps *PressureSolver) Solve(
	m *grid.MaterialGrid, vel *mac.VelocityField,
	cells []grid.Index, lookup map[int64]int,
	dt float64, p *grid.Float3d,
) Stats {
	p.Fill(0)

	b := make([]float64, len(cells))
	maxDiv := ps.negativeDivergence(m, vel, cells, b)
	if maxDiv < ps.opt.Tolerance {
		// the field is already divergence free
		return Stats{Skipped: true, Converged: true, Residual: maxDiv}
	}

	ps.assemble(m, cells, dt)
	ps.computePreconditioner(cells)

	x, stats := ps.solvePCG(m, cells, lookup, b)

	for idx, c := range cells {
		p.Set(c.I, c.J, c.K, x[idx])
	}

	return stats
}

// negativeDivergence fills b with the negative discrete divergence of each
// fluid cell, with stationary-solid boundary terms folded in, and returns
// the largest magnitude written.
func (ps *PressureSolver) negativeDivergence(
	m *grid.MaterialGrid, vel *mac.VelocityField,
	cells []grid.Index, b []float64,
) float64 {
	scale := 1.0 / ps.dx

	// solid cells are stationary
	const uSolid = 0.0

	maxDiv := 0.0
	for idx, c := range cells {
		i, j, k := c.I, c.J, c.K

		value := -scale * (vel.U(i+1, j, k) - vel.U(i, j, k) +
			vel.V(i, j+1, k) - vel.V(i, j, k) +
			vel.W(i, j, k+1) - vel.W(i, j, k))

		if m.IsSolid(i-1, j, k) {
			value -= scale * (vel.U(i, j, k) - uSolid)
		}
		if m.IsSolid(i+1, j, k) {
			value += scale * (vel.U(i+1, j, k) - uSolid)
		}
		if m.IsSolid(i, j-1, k) {
			value -= scale * (vel.V(i, j, k) - uSolid)
		}
		if m.IsSolid(i, j+1, k) {
			value += scale * (vel.V(i, j+1, k) - uSolid)
		}
		if m.IsSolid(i, j, k-1) {
			value -= scale * (vel.W(i, j, k) - uSolid)
		}
		if m.IsSolid(i, j, k+1) {
			value += scale * (vel.W(i, j, k+1) - uSolid)
		}

		b[idx] = value
		maxDiv = math.Max(maxDiv, math.Abs(value))
	}

	return maxDiv
}

// assemble fills the off-diagonal coefficient grids and the diagonal. The
// matrix is symmetric and 7-point, so only the +i, +j, +k couplings are
// stored; the diagonal is scale times the cell's number of non-solid
// neighbors.
func (ps *PressureSolver) assemble(m *grid.MaterialGrid, cells []grid.Index, dt float64) {
	scale := dt / (ps.opt.Density * ps.dx * ps.dx)

	ps.plusI.Fill(0)
	ps.plusJ.Fill(0)
	ps.plusK.Fill(0)
	ps.diag.Fill(0)

	for _, c := range cells {
		i, j, k := c.I, c.J, c.K

		if m.IsFluid(i+1, j, k) {
			ps.plusI.Set(i, j, k, -scale)
		}
		if m.IsFluid(i, j+1, k) {
			ps.plusJ.Set(i, j, k, -scale)
		}
		if m.IsFluid(i, j, k+1) {
			ps.plusK.Set(i, j, k, -scale)
		}

		n := 0
		if !m.IsSolid(i-1, j, k) {
			n++
		}
		if !m.IsSolid(i+1, j, k) {
			n++
		}
		if !m.IsSolid(i, j-1, k) {
			n++
		}
		if !m.IsSolid(i, j+1, k) {
			n++
		}
		if !m.IsSolid(i, j, k-1) {
			n++
		}
		if !m.IsSolid(i, j, k+1) {
			n++
		}
		ps.diag.Set(i, j, k, float64(n)*scale)
	}
}

// computePreconditioner fills the MIC(0) preconditioner vector. Fluid cells
// must be visited in lexicographic order so that the lower-triangular sweep
// only reads values already computed.
func (ps *PressureSolver) computePreconditioner(cells []grid.Index) {
	ps.precon.Fill(0)

	for _, c := range cells {
		i, j, k := c.I, c.J, c.K

		v1 := ps.plusI.Get(i-1, j, k) * ps.precon.Get(i-1, j, k)
		v2 := ps.plusJ.Get(i, j-1, k) * ps.precon.Get(i, j-1, k)
		v3 := ps.plusK.Get(i, j, k-1) * ps.precon.Get(i, j, k-1)
		v4 := ps.precon.Get(i-1, j, k) * ps.precon.Get(i-1, j, k)
		v5 := ps.precon.Get(i, j-1, k) * ps.precon.Get(i, j-1, k)
		v6 := ps.precon.Get(i, j, k-1) * ps.precon.Get(i, j, k-1)

		diag := ps.diag.Get(i, j, k)
		e := diag - v1*v1 - v2*v2 - v3*v3 -
			micTau*(ps.plusI.Get(i-1, j, k)*(ps.plusJ.Get(i-1, j, k)+ps.plusK.Get(i-1, j, k))*v4+
				ps.plusJ.Get(i, j-1, k)*(ps.plusI.Get(i, j-1, k)+ps.plusK.Get(i, j-1, k))*v5+
				ps.plusK.Get(i, j, k-1)*(ps.plusI.Get(i, j, k-1)+ps.plusJ.Get(i, j, k-1))*v6)

		if e < micSigma*diag {
			e = diag
		}

		if math.Abs(e) > 1e-9 {
			ps.precon.Set(i, j, k, 1/math.Sqrt(e))
		}
	}
}

// applyPreconditioner computes z = M^-1 r with two triangular sweeps and
// returns it as a vector over the fluid cell list. The scratch grids only
// ever pair stale entries with zero coefficients, so they do not need to be
// cleared between calls.
func (ps *PressureSolver) applyPreconditioner(cells []grid.Index, r, z []float64) {
	// forward sweep: solve L q = r
	for idx, c := range cells {
		i, j, k := c.I, c.J, c.K

		t := r[idx] -
			ps.plusI.Get(i-1, j, k)*ps.precon.Get(i-1, j, k)*ps.q.Get(i-1, j, k) -
			ps.plusJ.Get(i, j-1, k)*ps.precon.Get(i, j-1, k)*ps.q.Get(i, j-1, k) -
			ps.plusK.Get(i, j, k-1)*ps.precon.Get(i, j, k-1)*ps.q.Get(i, j, k-1)

		ps.q.Set(i, j, k, t*ps.precon.Get(i, j, k))
	}

	// backward sweep: solve L^T z = q
	for idx := len(cells) - 1; idx >= 0; idx-- {
		c := cells[idx]
		i, j, k := c.I, c.J, c.K

		precon := ps.precon.Get(i, j, k)
		t := ps.q.Get(i, j, k) -
			ps.plusI.Get(i, j, k)*precon*ps.z.Get(i+1, j, k) -
			ps.plusJ.Get(i, j, k)*precon*ps.z.Get(i, j+1, k) -
			ps.plusK.Get(i, j, k)*precon*ps.z.Get(i, j, k+1)

		ps.z.Set(i, j, k, t*precon)
		z[idx] = t * precon
	}
}

// applyMatrix computes t = A s. The 7-point matrix is reconstructed on the
// fly from the stored +i/+j/+k couplings and the diagonal rather than being
// materialized.
func (ps *PressureSolver) applyMatrix(
	m *grid.MaterialGrid, g *grid.Grid,
	cells []grid.Index, lookup map[int64]int, s, t []float64,
) {
	for idx, c := range cells {
		i, j, k := c.I, c.J, c.K

		sum := ps.diag.Get(i, j, k) * s[idx]
		if m.IsFluid(i-1, j, k) {
			sum += ps.plusI.Get(i-1, j, k) * s[lookup[g.Key(i-1, j, k)]]
		}
		if m.IsFluid(i+1, j, k) {
			sum += ps.plusI.Get(i, j, k) * s[lookup[g.Key(i+1, j, k)]]
		}
		if m.IsFluid(i, j-1, k) {
			sum += ps.plusJ.Get(i, j-1, k) * s[lookup[g.Key(i, j-1, k)]]
		}
		if m.IsFluid(i, j+1, k) {
			sum += ps.plusJ.Get(i, j, k) * s[lookup[g.Key(i, j+1, k)]]
		}
		if m.IsFluid(i, j, k-1) {
			sum += ps.plusK.Get(i, j, k-1) * s[lookup[g.Key(i, j, k-1)]]
		}
		if m.IsFluid(i, j, k+1) {
			sum += ps.plusK.Get(i, j, k) * s[lookup[g.Key(i, j, k+1)]]
		}

		t[idx] = sum
	}
}

// solvePCG runs the preconditioned conjugate gradient loop and returns the
// pressure vector over the fluid cell list.
func (ps *PressureSolver) solvePCG(
	m *grid.MaterialGrid, cells []grid.Index, lookup map[int64]int, b []float64,
) ([]float64, Stats) {
	n := len(cells)
	g := &m.Grid

	x := make([]float64, n)
	r := make([]float64, n)
	copy(r, b)

	z := make([]float64, n)
	ps.applyPreconditioner(cells, r, z)

	s := make([]float64, n)
	copy(s, z)

	t := make([]float64, n)

	sigma := floats.Dot(z, r)

	for iter := 0; iter < ps.opt.MaxIterations; iter++ {
		ps.applyMatrix(m, g, cells, lookup, s, t)

		alpha := sigma / floats.Dot(t, s)
		floats.AddScaled(x, alpha, s)
		floats.AddScaled(r, -alpha, t)

		residual := maxAbs(r)
		if residual < ps.opt.Tolerance {
			return x, Stats{Converged: true, Iterations: iter + 1, Residual: residual}
		}

		ps.applyPreconditioner(cells, r, z)
		sigmaNew := floats.Dot(z, r)
		beta := sigmaNew / sigma
		floats.AddScaledTo(s, z, beta, s)
		sigma = sigmaNew
	}

	residual := maxAbs(r)
	log.Printf("solver: pressure solve hit %d iterations, residual %g",
		ps.opt.MaxIterations, residual)

	return x, Stats{Iterations: ps.opt.MaxIterations, Residual: residual}
}

func maxAbs(xs []float64) float64 {
	max := 0.0
	for _, x := range xs {
		max = math.Max(max, math.Abs(x))
	}
	return max
}
