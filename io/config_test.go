package io

import (
	"io/ioutil"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeConfig(t *testing.T, text string) string {
	fname := path.Join(t.TempDir(), "sim.config")
	err := ioutil.WriteFile(fname, []byte(text), 0644)
	assert.NoError(t, err)
	return fname
}

func TestReadSimulationFile(t *testing.T) {
	fname := writeConfig(t, `[Simulation]
Width = 16
Height = 24
Depth = 32
CellSize = 0.25
Frames = 60
GravityY = -9.8
Output = frames
CompressOutput = true

[FluidBall "drop"]
X = 2
Y = 4
Z = 2
Radius = 0.5

[FluidBox "pool"]
X = 0.25
Y = 0.25
Z = 0.25
XWidth = 3.5
YWidth = 1
ZWidth = 3.5`)

	sf, err := ReadSimulationFile(fname)
	assert.NoError(t, err)

	sim := &sf.Simulation
	assert.Equal(t, 16, sim.Width)
	assert.Equal(t, 24, sim.Height)
	assert.Equal(t, 32, sim.Depth)
	assert.Equal(t, 0.25, sim.CellSize)
	assert.Equal(t, 60, sim.Frames)
	assert.Equal(t, -9.8, sim.GravityY)
	assert.Equal(t, "frames", sim.Output)
	assert.True(t, sim.CompressOutput)

	// unset optional parameters pick up their defaults
	assert.Equal(t, 30, sim.FrameRate)
	assert.Equal(t, 1, sim.MeshSubdivision)

	assert.Len(t, sf.FluidBall, 1)
	ball := sf.FluidBall["drop"]
	assert.Equal(t, "drop", ball.Name)
	assert.Equal(t, 0.5, ball.Radius)

	assert.Len(t, sf.FluidBox, 1)
	box := sf.FluidBox["pool"]
	assert.Equal(t, "pool", box.Name)
	assert.Equal(t, 3.5, box.XWidth)
}

func TestReadSimulationFileErrors(t *testing.T) {
	table := []struct {
		name, text string
	}{
		{"missing width", `[Simulation]
Height = 16
Depth = 16
CellSize = 0.25

[FluidBall "drop"]
X = 2
Y = 2
Z = 2
Radius = 0.5`},
		{"missing cell size", `[Simulation]
Width = 16
Height = 16
Depth = 16

[FluidBall "drop"]
X = 2
Y = 2
Z = 2
Radius = 0.5`},
		{"negative frames", `[Simulation]
Width = 16
Height = 16
Depth = 16
CellSize = 0.25
Frames = -10

[FluidBall "drop"]
X = 2
Y = 2
Z = 2
Radius = 0.5`},
		{"no fluid sections", `[Simulation]
Width = 16
Height = 16
Depth = 16
CellSize = 0.25`},
		{"ball without radius", `[Simulation]
Width = 16
Height = 16
Depth = 16
CellSize = 0.25

[FluidBall "drop"]
X = 2
Y = 2
Z = 2`},
		{"ball outside grid", `[Simulation]
Width = 16
Height = 16
Depth = 16
CellSize = 0.25

[FluidBall "drop"]
X = 10
Y = 2
Z = 2
Radius = 0.5`},
		{"box without extent", `[Simulation]
Width = 16
Height = 16
Depth = 16
CellSize = 0.25

[FluidBox "pool"]
X = 1
Y = 1
Z = 1`},
		{"box outside grid", `[Simulation]
Width = 16
Height = 16
Depth = 16
CellSize = 0.25

[FluidBox "pool"]
X = 1
Y = -1
Z = 1
XWidth = 1
YWidth = 1
ZWidth = 1`},
		{"unknown variable", `[Simulation]
Width = 16
Height = 16
Depth = 16
CellSize = 0.25
Wdith = 16

[FluidBall "drop"]
X = 2
Y = 2
Z = 2
Radius = 0.5`},
	}

	for _, test := range table {
		fname := writeConfig(t, test.text)
		_, err := ReadSimulationFile(fname)
		assert.Error(t, err, test.name)
	}
}

func TestReadSimulationFileMissing(t *testing.T) {
	_, err := ReadSimulationFile(path.Join(t.TempDir(), "nope.config"))
	assert.Error(t, err)
}

func TestExampleSimulationFileParses(t *testing.T) {
	fname := writeConfig(t, ExampleSimulationFile)

	sf, err := ReadSimulationFile(fname)
	assert.NoError(t, err)
	assert.Equal(t, 32, sf.Simulation.Width)
	assert.NotEmpty(t, sf.FluidBall)
	assert.NotEmpty(t, sf.FluidBox)
}

func TestSimulationConfigExtent(t *testing.T) {
	sim := &SimulationConfig{Width: 16, Height: 8, Depth: 4, CellSize: 0.5}
	xw, yw, zw := sim.Extent()
	assert.Equal(t, 8.0, xw)
	assert.Equal(t, 4.0, yw)
	assert.Equal(t, 2.0, zw)
}
