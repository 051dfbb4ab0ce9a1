/*package io reads simulation config files. Config files use the gcfg ini
dialect: a [Simulation] section describing the grid and solver settings,
followed by any number of [FluidBall "name"] and [FluidBox "name"] sections
describing the initial fluid volumes.
*/
package io

import (
	"fmt"

	"gopkg.in/gcfg.v1"
)

type SimulationConfig struct {
	// Required
	Width, Height, Depth int
	CellSize             float64

	// Optional
	Frames    int
	FrameRate int

	GravityX, GravityY, GravityZ float64

	CFL         float64
	MinTimeStep float64
	MaxTimeStep float64
	Density     float64

	PressureSolveTolerance float64
	MaxPressureIterations  int

	Workers int
	Seed    int64

	Output          string
	MeshSubdivision int
	ParticleRadius  float64
	CompressOutput  bool

	LogFile string
}

func (sim *SimulationConfig) CheckInit() error {
	if sim.Width <= 0 {
		return fmt.Errorf(
			"Need to specify a positive Width in the [Simulation] section.",
		)
	} else if sim.Height <= 0 {
		return fmt.Errorf(
			"Need to specify a positive Height in the [Simulation] section.",
		)
	} else if sim.Depth <= 0 {
		return fmt.Errorf(
			"Need to specify a positive Depth in the [Simulation] section.",
		)
	}

	if sim.CellSize <= 0 {
		return fmt.Errorf(
			"Need to specify a positive CellSize in the [Simulation] section.",
		)
	}

	if sim.Frames == 0 {
		sim.Frames = 1
	} else if sim.Frames < 0 {
		return fmt.Errorf(
			"Frames must be positive, but is %d.", sim.Frames,
		)
	}

	if sim.FrameRate == 0 {
		sim.FrameRate = 30
	} else if sim.FrameRate < 0 {
		return fmt.Errorf(
			"FrameRate must be positive, but is %d.", sim.FrameRate,
		)
	}

	if sim.CFL < 0 {
		return fmt.Errorf("CFL must be positive, but is %g.", sim.CFL)
	}
	if sim.MinTimeStep < 0 {
		return fmt.Errorf(
			"MinTimeStep must be positive, but is %g.", sim.MinTimeStep,
		)
	}
	if sim.MaxTimeStep < 0 {
		return fmt.Errorf(
			"MaxTimeStep must be positive, but is %g.", sim.MaxTimeStep,
		)
	}
	if sim.Density < 0 {
		return fmt.Errorf("Density must be positive, but is %g.", sim.Density)
	}
	if sim.PressureSolveTolerance < 0 {
		return fmt.Errorf(
			"PressureSolveTolerance must be positive, but is %g.",
			sim.PressureSolveTolerance,
		)
	}
	if sim.MaxPressureIterations < 0 {
		return fmt.Errorf(
			"MaxPressureIterations must be positive, but is %d.",
			sim.MaxPressureIterations,
		)
	}
	if sim.Workers < 0 {
		return fmt.Errorf("Workers must be positive, but is %d.", sim.Workers)
	}

	if sim.MeshSubdivision == 0 {
		sim.MeshSubdivision = 1
	} else if sim.MeshSubdivision < 0 {
		return fmt.Errorf(
			"MeshSubdivision must be positive, but is %d.",
			sim.MeshSubdivision,
		)
	}

	if sim.ParticleRadius < 0 {
		return fmt.Errorf(
			"ParticleRadius must be positive, but is %g.", sim.ParticleRadius,
		)
	}

	return nil
}

// Extent returns the world-space extent of the simulation grid along each
// axis.
func (sim *SimulationConfig) Extent() (xw, yw, zw float64) {
	xw = float64(sim.Width) * sim.CellSize
	yw = float64(sim.Height) * sim.CellSize
	zw = float64(sim.Depth) * sim.CellSize
	return xw, yw, zw
}

type FluidBallConfig struct {
	// Required
	X, Y, Z, Radius float64

	// Optional
	Name string
}

func (ball *FluidBallConfig) CheckInit(name string, xw, yw, zw float64) error {
	if ball.Radius <= 0 {
		return fmt.Errorf(
			"Need to specify a positive Radius for FluidBall '%s'.", name,
		)
	}

	if ball.X >= xw || ball.X < 0 {
		return fmt.Errorf(
			"X center of FluidBall '%s' must be in range [0, %g), but is %g",
			name, xw, ball.X,
		)
	} else if ball.Y >= yw || ball.Y < 0 {
		return fmt.Errorf(
			"Y center of FluidBall '%s' must be in range [0, %g), but is %g",
			name, yw, ball.Y,
		)
	} else if ball.Z >= zw || ball.Z < 0 {
		return fmt.Errorf(
			"Z center of FluidBall '%s' must be in range [0, %g), but is %g",
			name, zw, ball.Z,
		)
	}

	ball.Name = name

	return nil
}

type FluidBoxConfig struct {
	// Required
	X, Y, Z                float64
	XWidth, YWidth, ZWidth float64

	// Optional
	Name string
}

func (box *FluidBoxConfig) CheckInit(name string, xw, yw, zw float64) error {
	if box.XWidth <= 0 {
		return fmt.Errorf(
			"Need to specify a positive XWidth for FluidBox '%s'.", name,
		)
	} else if box.YWidth <= 0 {
		return fmt.Errorf(
			"Need to specify a positive YWidth for FluidBox '%s'.", name,
		)
	} else if box.ZWidth <= 0 {
		return fmt.Errorf(
			"Need to specify a positive ZWidth for FluidBox '%s'.", name,
		)
	}

	if box.X >= xw || box.X < 0 {
		return fmt.Errorf(
			"X origin of FluidBox '%s' must be in range [0, %g), but is %g",
			name, xw, box.X,
		)
	} else if box.Y >= yw || box.Y < 0 {
		return fmt.Errorf(
			"Y origin of FluidBox '%s' must be in range [0, %g), but is %g",
			name, yw, box.Y,
		)
	} else if box.Z >= zw || box.Z < 0 {
		return fmt.Errorf(
			"Z origin of FluidBox '%s' must be in range [0, %g), but is %g",
			name, zw, box.Z,
		)
	}

	box.Name = name

	return nil
}

type SimulationFile struct {
	Simulation SimulationConfig
	FluidBall  map[string]*FluidBallConfig
	FluidBox   map[string]*FluidBoxConfig
}

func ReadSimulationFile(fname string) (*SimulationFile, error) {
	sf := &SimulationFile{}

	if err := gcfg.ReadFileInto(sf, fname); err != nil {
		return nil, err
	}

	if err := sf.Simulation.CheckInit(); err != nil {
		return nil, err
	}

	xw, yw, zw := sf.Simulation.Extent()
	for name, ball := range sf.FluidBall {
		if err := ball.CheckInit(name, xw, yw, zw); err != nil {
			return nil, err
		}
	}
	for name, box := range sf.FluidBox {
		if err := box.CheckInit(name, xw, yw, zw); err != nil {
			return nil, err
		}
	}

	if len(sf.FluidBall) == 0 && len(sf.FluidBox) == 0 {
		return nil, fmt.Errorf(
			"Config file '%s' does not contain any FluidBall or FluidBox " +
				"sections.", fname,
		)
	}

	return sf, nil
}
