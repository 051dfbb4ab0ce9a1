package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/phil-mansfield/gofluid"
	"github.com/phil-mansfield/gofluid/io"
	"github.com/phil-mansfield/gofluid/mesher"
)

func main() {
	// The main function manages input sanitization and calls the secondary
	// main functions for each mode. The code tries to fail gracefully if the
	// user provides incorrect input.

	var (
		simulate      string
		exampleConfig string
	)
	vars := map[string]*string{
		"Simulate":      &simulate,
		"ExampleConfig": &exampleConfig,
	}

	flag.StringVar(
		&simulate, "Simulate", "",
		"Configuration file for [Simulation] mode.",
	)
	flag.StringVar(
		&exampleConfig, "ExampleConfig", "",
		"Prints an example configuration file of the specified type to "+
			"stdout. The only accepted argument is 'Simulation'.",
	)

	flag.Parse()

	// Figure out the mode and fail with a descriptive error if the user gave
	// incorrect flags.
	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}

	switch modeName {
	case "Simulate":
		sf, err := io.ReadSimulationFile(simulate)
		if err != nil {
			log.Fatal(err.Error())
		}
		simulateMain(sf)
	case "ExampleConfig":
		switch exampleConfig {
		case "Simulation":
			fmt.Println(io.ExampleSimulationFile)
		default:
			log.Fatalf(
				"Unrecognized 'ExampleConfig' argument, '%s'.", exampleConfig,
			)
		}
	}
}

// getModeName returns the name of the single mode whose flag was set, and
// errors out if zero or several were.
func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}
	for name, val := range vars {
		if *val != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf(
			"No mode flag was set. Accepted flags are -Simulate and " +
				"-ExampleConfig.",
		)
	} else if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The flags -%s and -%s were both set, but only one mode can be "+
				"run at a time.", setNames[0], setNames[1],
		)
	}

	return setNames[0], nil
}

func simulateMain(sf *io.SimulationFile) {
	con := &sf.Simulation

	if con.LogFile != "" {
		f, err := os.Create(con.LogFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		defer f.Close()
		log.SetOutput(f)
	}

	sim, err := gofluid.New(
		con.Width, con.Height, con.Depth, con.CellSize,
		gofluid.Config{
			CFL:                    con.CFL,
			MinTimeStep:            con.MinTimeStep,
			MaxTimeStep:            con.MaxTimeStep,
			Density:                con.Density,
			PressureSolveTolerance: con.PressureSolveTolerance,
			MaxPressureIterations:  con.MaxPressureIterations,
			Workers:                con.Workers,
			Seed:                   con.Seed,
		},
	)
	if err != nil {
		log.Fatal(err.Error())
	}

	sim.SetBodyForce(r3.Vec{
		X: con.GravityX, Y: con.GravityY, Z: con.GravityZ,
	})

	for _, ball := range sf.FluidBall {
		sim.AddImplicitFluidPoint(
			r3.Vec{X: ball.X, Y: ball.Y, Z: ball.Z}, ball.Radius,
		)
	}
	for _, box := range sf.FluidBox {
		sim.AddFluidCuboid(
			r3.Vec{X: box.X, Y: box.Y, Z: box.Z},
			box.XWidth, box.YWidth, box.ZWidth,
		)
	}

	sim.Run()

	radius := con.ParticleRadius
	if radius == 0 {
		radius = con.CellSize
	}

	var im *mesher.IsotropicMesher
	if con.Output != "" {
		im = mesher.NewIsotropicMesher(
			con.Width, con.Height, con.Depth, con.CellSize,
		)
		if err := im.SetSubdivisionLevel(con.MeshSubdivision); err != nil {
			log.Fatal(err.Error())
		}
	}

	dtFrame := 1.0 / float64(con.FrameRate)
	for frame := 0; frame < con.Frames; frame++ {
		sim.Update(dtFrame)

		if im == nil {
			continue
		}
		if err := writeFrame(sim, im, con, radius, frame); err != nil {
			log.Fatal(err.Error())
		}
	}
}

// writeFrame writes the surface mesh and particle snapshot for one frame.
func writeFrame(
	sim *gofluid.FluidSimulation, im *mesher.IsotropicMesher,
	con *io.SimulationConfig, radius float64, frame int,
) error {
	particles := sim.MarkerParticles(1)

	mesh, err := im.MeshParticles(particles, sim.Materials(), radius)
	if err != nil {
		return err
	}

	ext := ""
	if con.CompressOutput {
		ext = ".zst"
	}

	meshPath := path.Join(con.Output, fmt.Sprintf("mesh_%04d.ply%s", frame, ext))
	if err := mesh.WritePLYFile(meshPath); err != nil {
		return err
	}

	snapPath := path.Join(
		con.Output, fmt.Sprintf("particles_%04d.dat%s", frame, ext),
	)
	return mesher.WriteParticleSnapshot(snapPath, particles)
}
