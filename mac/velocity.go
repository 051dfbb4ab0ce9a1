/*package mac implements a staggered marker-and-cell velocity field. The x
component of velocity lives on x-normal cell faces, the y component on
y-normal faces, and the z component on z-normal faces, so each component has
its own lattice.
*/
package mac

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// VelocityField stores the three face-centered velocity component grids for a
// W x H x D cell grid, along with parallel temporary grids used to stage new
// values while the current field is still being read. Temp writes are
// tracked, and CommitTemp copies only the faces written since the last
// ResetTemp, leaving every other face untouched.
//
// U has shape (W+1) x H x D, V has shape W x (H+1) x D, and W has shape
// W x H x (D+1). Reads outside these ranges return 0.
type VelocityField struct {
	Width, Height, Depth int
	dx                   float64

	u, v, w             []float64
	tempU, tempV, tempW []float64
	setU, setV, setW    []bool
}

// NewVelocityField returns a zeroed velocity field for a grid of
// width x height x depth cells of side dx.
func NewVelocityField(width, height, depth int, dx float64) *VelocityField {
	return &VelocityField{
		Width: width, Height: height, Depth: depth, dx: dx,
		u:     make([]float64, (width+1)*height*depth),
		v:     make([]float64, width*(height+1)*depth),
		w:     make([]float64, width*height*(depth+1)),
		tempU: make([]float64, (width+1)*height*depth),
		tempV: make([]float64, width*(height+1)*depth),
		tempW: make([]float64, width*height*(depth+1)),
		setU:  make([]bool, (width+1)*height*depth),
		setV:  make([]bool, width*(height+1)*depth),
		setW:  make([]bool, width*height*(depth+1)),
	}
}

// Dx returns the cell size the field was built with.
func (f *VelocityField) Dx() float64 { return f.dx }

func (f *VelocityField) InRangeU(i, j, k int) bool {
	return i >= 0 && j >= 0 && k >= 0 &&
		i < f.Width+1 && j < f.Height && k < f.Depth
}

func (f *VelocityField) InRangeV(i, j, k int) bool {
	return i >= 0 && j >= 0 && k >= 0 &&
		i < f.Width && j < f.Height+1 && k < f.Depth
}

func (f *VelocityField) InRangeW(i, j, k int) bool {
	return i >= 0 && j >= 0 && k >= 0 &&
		i < f.Width && j < f.Height && k < f.Depth+1
}

func (f *VelocityField) idxU(i, j, k int) int {
	return i + j*(f.Width+1) + k*(f.Width+1)*f.Height
}

func (f *VelocityField) idxV(i, j, k int) int {
	return i + j*f.Width + k*f.Width*(f.Height+1)
}

func (f *VelocityField) idxW(i, j, k int) int {
	return i + j*f.Width + k*f.Width*f.Height
}

// U returns the x velocity stored on face (i, j, k), or 0 out of range.
func (f *VelocityField) U(i, j, k int) float64 {
	if !f.InRangeU(i, j, k) {
		return 0
	}
	return f.u[f.idxU(i, j, k)]
}

// V returns the y velocity stored on face (i, j, k), or 0 out of range.
func (f *VelocityField) V(i, j, k int) float64 {
	if !f.InRangeV(i, j, k) {
		return 0
	}
	return f.v[f.idxV(i, j, k)]
}

// W returns the z velocity stored on face (i, j, k), or 0 out of range.
func (f *VelocityField) W(i, j, k int) float64 {
	if !f.InRangeW(i, j, k) {
		return 0
	}
	return f.w[f.idxW(i, j, k)]
}

func (f *VelocityField) SetU(i, j, k int, x float64) { f.u[f.idxU(i, j, k)] = x }
func (f *VelocityField) SetV(i, j, k int, x float64) { f.v[f.idxV(i, j, k)] = x }
func (f *VelocityField) SetW(i, j, k int, x float64) { f.w[f.idxW(i, j, k)] = x }

func (f *VelocityField) AddU(i, j, k int, x float64) { f.u[f.idxU(i, j, k)] += x }
func (f *VelocityField) AddV(i, j, k int, x float64) { f.v[f.idxV(i, j, k)] += x }
func (f *VelocityField) AddW(i, j, k int, x float64) { f.w[f.idxW(i, j, k)] += x }

func (f *VelocityField) SetTempU(i, j, k int, x float64) {
	idx := f.idxU(i, j, k)
	f.tempU[idx] = x
	f.setU[idx] = true
}

func (f *VelocityField) SetTempV(i, j, k int, x float64) {
	idx := f.idxV(i, j, k)
	f.tempV[idx] = x
	f.setV[idx] = true
}

func (f *VelocityField) SetTempW(i, j, k int, x float64) {
	idx := f.idxW(i, j, k)
	f.tempW[idx] = x
	f.setW[idx] = true
}

// ResetTemp zeroes the temporary grids and forgets which faces were written.
func (f *VelocityField) ResetTemp() {
	for i := range f.tempU {
		f.tempU[i] = 0
		f.setU[i] = false
	}
	for i := range f.tempV {
		f.tempV[i] = 0
		f.setV[i] = false
	}
	for i := range f.tempW {
		f.tempW[i] = 0
		f.setW[i] = false
	}
}

// CommitTemp copies every face written since the last ResetTemp into the
// live field. Unwritten faces keep their current values.
func (f *VelocityField) CommitTemp() {
	for i, set := range f.setU {
		if set {
			f.u[i] = f.tempU[i]
		}
	}
	for i, set := range f.setV {
		if set {
			f.v[i] = f.tempV[i]
		}
	}
	for i, set := range f.setW {
		if set {
			f.w[i] = f.tempW[i]
		}
	}
}

// PositionU returns the world position of the center of U face (i, j, k).
func (f *VelocityField) PositionU(i, j, k int) r3.Vec {
	return r3.Vec{
		X: float64(i) * f.dx,
		Y: (float64(j) + 0.5) * f.dx,
		Z: (float64(k) + 0.5) * f.dx,
	}
}

// PositionV returns the world position of the center of V face (i, j, k).
func (f *VelocityField) PositionV(i, j, k int) r3.Vec {
	return r3.Vec{
		X: (float64(i) + 0.5) * f.dx,
		Y: float64(j) * f.dx,
		Z: (float64(k) + 0.5) * f.dx,
	}
}

// PositionW returns the world position of the center of W face (i, j, k).
func (f *VelocityField) PositionW(i, j, k int) r3.Vec {
	return r3.Vec{
		X: (float64(i) + 0.5) * f.dx,
		Y: (float64(j) + 0.5) * f.dx,
		Z: float64(k) * f.dx,
	}
}

// trilerp interpolates the eight values read by get around the lattice point
// (x, y, z), where x, y, z are in lattice coordinates.
func trilerp(x, y, z float64, get func(i, j, k int) float64) float64 {
	i, j, k := int(math.Floor(x)), int(math.Floor(y)), int(math.Floor(z))
	fx, fy, fz := x-float64(i), y-float64(j), z-float64(k)

	v000 := get(i, j, k)
	v100 := get(i+1, j, k)
	v010 := get(i, j+1, k)
	v110 := get(i+1, j+1, k)
	v001 := get(i, j, k+1)
	v101 := get(i+1, j, k+1)
	v011 := get(i, j+1, k+1)
	v111 := get(i+1, j+1, k+1)

	v00 := v000 + (v100-v000)*fx
	v10 := v010 + (v110-v010)*fx
	v01 := v001 + (v101-v001)*fx
	v11 := v011 + (v111-v011)*fx

	v0 := v00 + (v10-v00)*fy
	v1 := v01 + (v11-v01)*fy

	return v0 + (v1-v0)*fz
}

// Evaluate returns the velocity at an arbitrary world position. Each
// component is trilinearly interpolated on its own face lattice, with faces
// outside the domain treated as 0.
func (f *VelocityField) Evaluate(p r3.Vec) r3.Vec {
	inv := 1.0 / f.dx
	x, y, z := p.X*inv, p.Y*inv, p.Z*inv

	return r3.Vec{
		X: trilerp(x, y-0.5, z-0.5, f.U),
		Y: trilerp(x-0.5, y, z-0.5, f.V),
		Z: trilerp(x-0.5, y-0.5, z, f.W),
	}
}

// EvaluateFaceCenterU returns the full velocity vector at the center of U
// face (i, j, k). The x component is the stored face value; the y and z
// components are averaged from the four nearest V and W faces.
func (f *VelocityField) EvaluateFaceCenterU(i, j, k int) r3.Vec {
	vy := 0.25 * (f.V(i-1, j, k) + f.V(i-1, j+1, k) + f.V(i, j, k) + f.V(i, j+1, k))
	vz := 0.25 * (f.W(i-1, j, k) + f.W(i-1, j, k+1) + f.W(i, j, k) + f.W(i, j, k+1))
	return r3.Vec{X: f.U(i, j, k), Y: vy, Z: vz}
}

// EvaluateFaceCenterV returns the full velocity vector at the center of V
// face (i, j, k).
func (f *VelocityField) EvaluateFaceCenterV(i, j, k int) r3.Vec {
	vx := 0.25 * (f.U(i, j-1, k) + f.U(i+1, j-1, k) + f.U(i, j, k) + f.U(i+1, j, k))
	vz := 0.25 * (f.W(i, j-1, k) + f.W(i, j-1, k+1) + f.W(i, j, k) + f.W(i, j, k+1))
	return r3.Vec{X: vx, Y: f.V(i, j, k), Z: vz}
}

// EvaluateFaceCenterW returns the full velocity vector at the center of W
// face (i, j, k).
func (f *VelocityField) EvaluateFaceCenterW(i, j, k int) r3.Vec {
	vx := 0.25 * (f.U(i, j, k-1) + f.U(i+1, j, k-1) + f.U(i, j, k) + f.U(i+1, j, k))
	vy := 0.25 * (f.V(i, j, k-1) + f.V(i, j+1, k-1) + f.V(i, j, k) + f.V(i, j+1, k))
	return r3.Vec{X: vx, Y: vy, Z: f.W(i, j, k)}
}

// MaxVelocityMagnitude returns the largest velocity magnitude found at any
// interior face center.
func (f *VelocityField) MaxVelocityMagnitude() float64 {
	maxsq := 0.0
	for k := 0; k < f.Depth; k++ {
		for j := 0; j < f.Height; j++ {
			for i := 1; i < f.Width; i++ {
				v := f.EvaluateFaceCenterU(i, j, k)
				maxsq = math.Max(maxsq, r3.Norm2(v))
			}
		}
	}
	for k := 0; k < f.Depth; k++ {
		for j := 1; j < f.Height; j++ {
			for i := 0; i < f.Width; i++ {
				v := f.EvaluateFaceCenterV(i, j, k)
				maxsq = math.Max(maxsq, r3.Norm2(v))
			}
		}
	}
	for k := 1; k < f.Depth; k++ {
		for j := 0; j < f.Height; j++ {
			for i := 0; i < f.Width; i++ {
				v := f.EvaluateFaceCenterW(i, j, k)
				maxsq = math.Max(maxsq, r3.Norm2(v))
			}
		}
	}
	return math.Sqrt(maxsq)
}
