package mesher

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/DataDog/zstd"
	"gonum.org/v1/gonum/spatial/r3"
)

// snapshotMagic marks the head of a particle snapshot stream.
const snapshotMagic = uint32(0x70736e70)

// WriteParticleSnapshot writes particle positions to the named file as a
// little-endian binary stream. Paths ending in ".zst" are compressed with
// zstd.
func WriteParticleSnapshot(path string, particles []r3.Vec) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create snapshot file: %v", err)
	}
	defer f.Close()

	if strings.HasSuffix(path, ".zst") {
		zw := zstd.NewWriter(f)
		if err := writeSnapshot(zw, particles); err != nil {
			zw.Close()
			return err
		}
		return zw.Close()
	}

	return writeSnapshot(f, particles)
}

func writeSnapshot(w io.Writer, particles []r3.Vec) error {
	bw := bufio.NewWriter(w)

	if err := binary.Write(bw, binary.LittleEndian, snapshotMagic); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint64(len(particles))); err != nil {
		return err
	}
	for _, p := range particles {
		coords := [3]float64{p.X, p.Y, p.Z}
		if err := binary.Write(bw, binary.LittleEndian, coords); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// ReadParticleSnapshot reads a snapshot written by WriteParticleSnapshot.
func ReadParticleSnapshot(path string) ([]r3.Vec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open snapshot file: %v", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		zr := zstd.NewReader(f)
		defer zr.Close()
		r = zr
	}

	br := bufio.NewReader(r)

	var magic uint32
	if err := binary.Read(br, binary.LittleEndian, &magic); err != nil {
		return nil, err
	}
	if magic != snapshotMagic {
		return nil, fmt.Errorf("%s is not a particle snapshot file", path)
	}

	var n uint64
	if err := binary.Read(br, binary.LittleEndian, &n); err != nil {
		return nil, err
	}

	particles := make([]r3.Vec, n)
	for i := range particles {
		var coords [3]float64
		if err := binary.Read(br, binary.LittleEndian, &coords); err != nil {
			return nil, err
		}
		particles[i] = r3.Vec{X: coords[0], Y: coords[1], Z: coords[2]}
	}

	return particles, nil
}
