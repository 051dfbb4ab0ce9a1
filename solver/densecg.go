package solver

/* densecg.go contains a dense fallback path for the pressure system. It
materializes the full matrix and solves it with gonum's Cholesky
factorization. It is far too slow for production grids but provides an
independent answer to check the PCG path against on small scenes. */

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/phil-mansfield/gofluid/grid"
	"github.com/phil-mansfield/gofluid/mac"
)

// SolveDense computes pressures the same way Solve does, but by assembling
// the full dense system and factoring it. The matrix has one row per fluid
// cell, so this is only practical when len(cells) is small.
func (ps *PressureSolver) SolveDense(
	m *grid.MaterialGrid, vel *mac.VelocityField,
	cells []grid.Index, lookup map[int64]int,
	dt float64, p *grid.Float3d,
) error {
	p.Fill(0)

	n := len(cells)
	if n == 0 {
		return nil
	}

	b := make([]float64, n)
	maxDiv := ps.negativeDivergence(m, vel, cells, b)
	if maxDiv < ps.opt.Tolerance {
		return nil
	}

	ps.assemble(m, cells, dt)

	a := ps.denseMatrix(m, cells, lookup)

	var chol mat.Cholesky
	if !chol.Factorize(a) {
		return fmt.Errorf("pressure matrix is not positive definite")
	}

	x := mat.NewVecDense(n, nil)
	if err := chol.SolveVecTo(x, mat.NewVecDense(n, b)); err != nil {
		return err
	}

	for idx, c := range cells {
		p.Set(c.I, c.J, c.K, x.AtVec(idx))
	}

	return nil
}

// denseMatrix expands the stored 7-point couplings into a full symmetric
// matrix over the fluid cell list.
func (ps *PressureSolver) denseMatrix(
	m *grid.MaterialGrid, cells []grid.Index, lookup map[int64]int,
) *mat.SymDense {
	n := len(cells)
	g := &m.Grid

	a := mat.NewSymDense(n, nil)
	for idx, c := range cells {
		i, j, k := c.I, c.J, c.K

		a.SetSym(idx, idx, ps.diag.Get(i, j, k))
		if m.IsFluid(i+1, j, k) {
			a.SetSym(idx, lookup[g.Key(i+1, j, k)], ps.plusI.Get(i, j, k))
		}
		if m.IsFluid(i, j+1, k) {
			a.SetSym(idx, lookup[g.Key(i, j+1, k)], ps.plusJ.Get(i, j, k))
		}
		if m.IsFluid(i, j, k+1) {
			a.SetSym(idx, lookup[g.Key(i, j, k+1)], ps.plusK.Get(i, j, k))
		}
	}
	return a
}
