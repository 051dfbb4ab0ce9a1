package grid

/* array3.go contains the dense grid types backing the simulation's scalar
fields. Accessors are bounds-checked: an out of range index is a programmer
error and panics. */

// Float3d is a dense W x H x D grid of float64 values.
type Float3d struct {
	Grid
	data []float64
}

// NewFloat3d returns a grid of the given shape with every value set to fill.
func NewFloat3d(width, height, depth int, fill float64) *Float3d {
	a := &Float3d{}
	a.Grid.Init(width, height, depth)
	a.data = make([]float64, a.Volume)
	if fill != 0 {
		a.Fill(fill)
	}
	return a
}

func (a *Float3d) Get(i, j, k int) float64 {
	a.boundsCheck(i, j, k)
	return a.data[a.Idx(i, j, k)]
}

func (a *Float3d) Set(i, j, k int, x float64) {
	a.boundsCheck(i, j, k)
	a.data[a.Idx(i, j, k)] = x
}

func (a *Float3d) Add(i, j, k int, x float64) {
	a.boundsCheck(i, j, k)
	a.data[a.Idx(i, j, k)] += x
}

// GetOrZero returns the stored value, or 0 if the index is out of range.
// Sampling kernels use this to treat everything outside the domain as still.
func (a *Float3d) GetOrZero(i, j, k int) float64 {
	if !a.InRange(i, j, k) {
		return 0
	}
	return a.data[a.Idx(i, j, k)]
}

// Fill sets every value in the grid to x.
func (a *Float3d) Fill(x float64) {
	for i := range a.data {
		a.data[i] = x
	}
}

// Data returns the underlying flat array.
func (a *Float3d) Data() []float64 { return a.data }

// Int3d is a dense W x H x D grid of int values.
type Int3d struct {
	Grid
	data []int
}

// NewInt3d returns a grid of the given shape with every value set to fill.
func NewInt3d(width, height, depth int, fill int) *Int3d {
	a := &Int3d{}
	a.Grid.Init(width, height, depth)
	a.data = make([]int, a.Volume)
	if fill != 0 {
		a.Fill(fill)
	}
	return a
}

func (a *Int3d) Get(i, j, k int) int {
	a.boundsCheck(i, j, k)
	return a.data[a.Idx(i, j, k)]
}

func (a *Int3d) Set(i, j, k int, x int) {
	a.boundsCheck(i, j, k)
	a.data[a.Idx(i, j, k)] = x
}

// Fill sets every value in the grid to x.
func (a *Int3d) Fill(x int) {
	for i := range a.data {
		a.data[i] = x
	}
}
