package grid

// Material classifies a cell as air, fluid, or solid.
type Material uint8

const (
	Air Material = iota
	Fluid
	Solid
)

// MaterialGrid is a W x H x D grid of cell materials. The outermost shell of
// cells is solid for the lifetime of the simulation and never transitions.
// Fluid cells are rederived from marker occupancy every substep.
type MaterialGrid struct {
	Grid
	data []Material
}

// NewMaterialGrid returns a material grid with every cell set to Air and the
// outer boundary shell set to Solid.
func NewMaterialGrid(width, height, depth int) *MaterialGrid {
	m := &MaterialGrid{}
	m.Grid.Init(width, height, depth)
	m.data = make([]Material, m.Volume)
	m.fillBoundary()
	return m
}

func (m *MaterialGrid) fillBoundary() {
	for j := 0; j < m.Height; j++ {
		for i := 0; i < m.Width; i++ {
			m.Set(i, j, 0, Solid)
			m.Set(i, j, m.Depth-1, Solid)
		}
	}
	for k := 0; k < m.Depth; k++ {
		for i := 0; i < m.Width; i++ {
			m.Set(i, 0, k, Solid)
			m.Set(i, m.Height-1, k, Solid)
		}
	}
	for k := 0; k < m.Depth; k++ {
		for j := 0; j < m.Height; j++ {
			m.Set(0, j, k, Solid)
			m.Set(m.Width-1, j, k, Solid)
		}
	}
}

func (m *MaterialGrid) Get(i, j, k int) Material {
	m.boundsCheck(i, j, k)
	return m.data[m.Idx(i, j, k)]
}

func (m *MaterialGrid) Set(i, j, k int, mat Material) {
	m.boundsCheck(i, j, k)
	m.data[m.Idx(i, j, k)] = mat
}

// IsSolid returns true if the cell is solid. Out of range cells count as
// solid so that everything beyond the domain behaves like a wall.
func (m *MaterialGrid) IsSolid(i, j, k int) bool {
	if !m.InRange(i, j, k) {
		return true
	}
	return m.data[m.Idx(i, j, k)] == Solid
}

// IsFluid returns true if the cell is in range and fluid.
func (m *MaterialGrid) IsFluid(i, j, k int) bool {
	return m.InRange(i, j, k) && m.data[m.Idx(i, j, k)] == Fluid
}

// IsAir returns true if the cell is in range and air.
func (m *MaterialGrid) IsAir(i, j, k int) bool {
	return m.InRange(i, j, k) && m.data[m.Idx(i, j, k)] == Air
}
