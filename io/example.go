package io

const (
	ExampleSimulationFile = `[Simulation]

#######################
# Required Parameters #
#######################

# Grid dimensions in cells. The outermost layer of cells is always solid, so
# the usable interior is two cells smaller along each axis.
Width = 32
Height = 32
Depth = 32

# World-space width of a single grid cell.
CellSize = 0.125

#######################
# Optional Parameters #
#######################

# Number of animation frames to simulate. Default is 1.
# Frames = 120

# Animation frame rate. Each frame advances the simulation by 1/FrameRate
# seconds. Default is 30.
# FrameRate = 30

# Body force applied to the fluid, typically gravity. Default is zero.
# GravityX = 0
# GravityY = -9.8
# GravityZ = 0

# Solver parameters. The defaults are reasonable for most scenes.
# CFL = 5.0
# MinTimeStep = 0.000833
# MaxTimeStep = 0.066667
# Density = 20.0
# PressureSolveTolerance = 1e-6
# MaxPressureIterations = 200

# Number of worker goroutines used when advancing particles. Defaults to the
# number of CPUs.
# Workers = 8

# Seed for the particle jitter RNG. Runs with the same seed reproduce.
# Seed = 0

# Directory which per-frame surface meshes and particle snapshots are written
# to. If unset, no output files are written.
# Output = path/to/output/dir

# Number of surface-reconstruction cells per simulation cell. Default is 1.
# MeshSubdivision = 2

# Kernel radius used when splatting particles into the surface field.
# Defaults to the cell size.
# ParticleRadius = 0.125

# Compress output files with zstd. Default is false.
# CompressOutput = true

# File which log output is written to. Defaults to stderr.
# LogFile = log.out

[FluidBall "drop"]

# World-space center and radius of a spherical fluid volume.
X = 2
Y = 3
Z = 2
Radius = 0.5

[FluidBox "pool"]

# World-space origin and extent of a box-shaped fluid volume.
X = 0.125
Y = 0.125
Z = 0.125
XWidth = 3.75
YWidth = 1
ZWidth = 3.75`
)
