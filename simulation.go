/*package gofluid simulates incompressible free-surface flow on a staggered
marker-and-cell grid. The fluid is represented jointly by face-centered
velocity components and a population of massless marker particles. Each
substep classifies fluid cells from marker occupancy, extrapolates velocities
into a band around the fluid, applies body forces, advects the velocity field
semi-Lagrangianly, solves a pressure Poisson system, projects the velocity
field to be divergence free, and advances the markers through the corrected
field.
*/
package gofluid

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/phil-mansfield/gofluid/geom"
	"github.com/phil-mansfield/gofluid/grid"
	"github.com/phil-mansfield/gofluid/implicit"
	"github.com/phil-mansfield/gofluid/mac"
	"github.com/phil-mansfield/gofluid/solver"
)

// Default simulation parameters.
const (
	DefaultCFL                   = 5.0
	DefaultMinTimeStep           = 1.0 / 1200.0
	DefaultMaxTimeStep           = 1.0 / 15.0
	DefaultDensity               = 20.0
	DefaultPressureTolerance     = 1e-6
	DefaultMaxPressureIterations = 200
)

// Config collects the tunable parameters of a simulation. The zero value of
// any field selects the corresponding default.
type Config struct {
	// CFL bounds the distance traveled per substep to CFL cells.
	CFL float64

	MinTimeStep float64
	MaxTimeStep float64

	// Density is the fluid density used in the pressure solve.
	Density float64

	PressureSolveTolerance float64
	MaxPressureIterations  int

	// Workers is the number of goroutines used to advance marker particles.
	Workers int

	// Seed seeds the jitter applied to marker particle starting positions.
	Seed int64
}

func (c *Config) applyDefaults() {
	if c.CFL == 0 {
		c.CFL = DefaultCFL
	}
	if c.MinTimeStep == 0 {
		c.MinTimeStep = DefaultMinTimeStep
	}
	if c.MaxTimeStep == 0 {
		c.MaxTimeStep = DefaultMaxTimeStep
	}
	if c.Density == 0 {
		c.Density = DefaultDensity
	}
	if c.PressureSolveTolerance == 0 {
		c.PressureSolveTolerance = DefaultPressureTolerance
	}
	if c.MaxPressureIterations == 0 {
		c.MaxPressureIterations = DefaultMaxPressureIterations
	}
	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}
}

// FluidSimulation owns every grid and the marker particle set. Methods are
// not safe for concurrent use; the internal parallelism of a substep is
// managed by the simulation itself.
type FluidSimulation struct {
	cfg Config

	width, height, depth int
	dx                   float64
	domain               geom.AABB

	materials *grid.MaterialGrid
	vel       *mac.VelocityField
	pressure  *grid.Float3d
	layers    *grid.Int3d

	field     *implicit.Field
	particles []MarkerParticle

	pressureSolver *solver.PressureSolver

	fluidCells []grid.Index
	cellLookup map[int64]int

	bodyForce r3.Vec

	rnd *rand.Rand

	initialized bool
	running     bool
	hasFluid    bool
	frame       int
}

// New returns a simulation over a width x height x depth grid of cubic cells
// with side dx.
func New(width, height, depth int, dx float64, cfg Config) (*FluidSimulation, error) {
	if width <= 0 || height <= 0 || depth <= 0 {
		return nil, fmt.Errorf(
			"grid dimensions must be positive, got %d x %d x %d",
			width, height, depth,
		)
	}
	if dx <= 0 {
		return nil, fmt.Errorf("cell size must be positive, got %g", dx)
	}

	cfg.applyDefaults()

	s := &FluidSimulation{
		cfg:   cfg,
		width: width, height: height, depth: depth, dx: dx,
		domain: geom.NewAABB(r3.Vec{},
			float64(width)*dx, float64(height)*dx, float64(depth)*dx),

		materials: grid.NewMaterialGrid(width, height, depth),
		vel:       mac.NewVelocityField(width, height, depth, dx),
		pressure:  grid.NewFloat3d(width, height, depth, 0),
		layers:    grid.NewInt3d(width, height, depth, -1),

		field: implicit.NewField(
			float64(width)*dx, float64(height)*dx, float64(depth)*dx,
		),

		cellLookup: make(map[int64]int),

		rnd: rand.New(rand.NewSource(cfg.Seed)),
	}

	s.pressureSolver = solver.NewPressureSolver(width, height, depth, dx,
		solver.Options{
			Density:       cfg.Density,
			Tolerance:     cfg.PressureSolveTolerance,
			MaxIterations: cfg.MaxPressureIterations,
		})

	return s, nil
}

// Dx returns the cell size.
func (s *FluidSimulation) Dx() float64 { return s.dx }

// Dimensions returns the cell counts along each axis.
func (s *FluidSimulation) Dimensions() (width, height, depth int) {
	return s.width, s.height, s.depth
}

// Frame returns the number of completed frames.
func (s *FluidSimulation) Frame() int { return s.frame }

// Materials returns the simulation's material grid.
func (s *FluidSimulation) Materials() *grid.MaterialGrid { return s.materials }

// AddBodyForce adds f to the body force applied on every substep.
func (s *FluidSimulation) AddBodyForce(f r3.Vec) {
	s.bodyForce = r3.Add(s.bodyForce, f)
}

// SetBodyForce replaces the body force applied on every substep.
func (s *FluidSimulation) SetBodyForce(f r3.Vec) {
	s.bodyForce = f
}

// AddImplicitFluidPoint adds a spherical fluid region to the initial scene.
func (s *FluidSimulation) AddImplicitFluidPoint(p r3.Vec, radius float64) {
	s.field.AddPoint(p, radius)
}

// AddFluidCuboid adds a box fluid region with minimum corner p to the
// initial scene.
func (s *FluidSimulation) AddFluidCuboid(p r3.Vec, w, h, d float64) {
	s.field.AddCuboid(p, w, h, d)
}

// AddFluidCuboidCorners adds a box fluid region spanning the two given
// corner points.
func (s *FluidSimulation) AddFluidCuboidCorners(p1, p2 r3.Vec) {
	min := r3.Vec{
		X: math.Min(p1.X, p2.X),
		Y: math.Min(p1.Y, p2.Y),
		Z: math.Min(p1.Z, p2.Z),
	}
	s.field.AddCuboid(min,
		math.Abs(p2.X-p1.X), math.Abs(p2.Y-p1.Y), math.Abs(p2.Z-p1.Z))
}

// FluidPoints returns the spherical fluid primitives added to the scene.
func (s *FluidSimulation) FluidPoints() []implicit.Point { return s.field.Points() }

// FluidCuboids returns the box fluid primitives added to the scene.
func (s *FluidSimulation) FluidCuboids() []implicit.Cuboid { return s.field.Cuboids() }

// Run starts the simulation, initializing the scene on the first call.
// Update is a no-op before Run.
func (s *FluidSimulation) Run() {
	if !s.initialized {
		s.initialize()
	}
	s.running = true
}

// Pause toggles the running state of an initialized simulation.
func (s *FluidSimulation) Pause() {
	if !s.initialized {
		return
	}
	s.running = !s.running
}

// Draw is a hook for callers that render between frames. The simulation
// itself draws nothing.
func (s *FluidSimulation) Draw() {}

// initialize seeds the material grid and marker particles from the implicit
// fluid field. Cells whose centers lie inside the field become fluid and
// receive eight jittered particles each.
func (s *FluidSimulation) initialize() {
	s.hasFluid = s.field.NumPoints() > 0 || s.field.NumCuboids() > 0
	if s.hasFluid {
		for k := 0; k < s.depth; k++ {
			for j := 0; j < s.height; j++ {
				for i := 0; i < s.width; i++ {
					c := s.cellCenter(i, j, k)
					if s.field.IsInside(c.X, c.Y, c.Z) && s.materials.IsAir(i, j, k) {
						s.materials.Set(i, j, k, grid.Fluid)
						s.seedCell(i, j, k)
					}
				}
			}
		}
	}
	s.initialized = true
}

// seedCell adds eight marker particles to cell (i, j, k), placed at the cell
// center offset by a quarter cell along each axis plus a uniform jitter.
func (s *FluidSimulation) seedCell(i, j, k int) {
	q := 0.25 * s.dx
	c := s.cellCenter(i, j, k)

	points := [8]r3.Vec{
		{X: c.X - q, Y: c.Y - q, Z: c.Z - q},
		{X: c.X + q, Y: c.Y - q, Z: c.Z - q},
		{X: c.X + q, Y: c.Y - q, Z: c.Z + q},
		{X: c.X - q, Y: c.Y - q, Z: c.Z + q},
		{X: c.X - q, Y: c.Y + q, Z: c.Z - q},
		{X: c.X + q, Y: c.Y + q, Z: c.Z - q},
		{X: c.X + q, Y: c.Y + q, Z: c.Z + q},
		{X: c.X - q, Y: c.Y + q, Z: c.Z + q},
	}

	jitter := 0.25*s.dx - 1e-5
	for _, p := range points {
		jit := r3.Vec{
			X: s.randomFloat(-jitter, jitter),
			Y: s.randomFloat(-jitter, jitter),
			Z: s.randomFloat(-jitter, jitter),
		}
		s.particles = append(s.particles, MarkerParticle{
			Position: r3.Add(p, jit),
			Cell:     grid.Index{I: i, J: j, K: k},
		})
	}
}

func (s *FluidSimulation) randomFloat(min, max float64) float64 {
	return min + s.rnd.Float64()*(max-min)
}

// cellCenter returns the world position of the center of cell (i, j, k).
func (s *FluidSimulation) cellCenter(i, j, k int) r3.Vec {
	return r3.Vec{
		X: (float64(i) + 0.5) * s.dx,
		Y: (float64(j) + 0.5) * s.dx,
		Z: (float64(k) + 0.5) * s.dx,
	}
}

// positionToIndex returns the cell containing p. The result may be out of
// range for positions outside the domain.
func (s *FluidSimulation) positionToIndex(p r3.Vec) (i, j, k int) {
	inv := 1.0 / s.dx
	return int(math.Floor(p.X * inv)),
		int(math.Floor(p.Y * inv)),
		int(math.Floor(p.Z * inv))
}

// inDomain returns true if p lies within the world volume covered by the
// grid.
func (s *FluidSimulation) inDomain(p r3.Vec) bool {
	return s.domain.Contains(p)
}
