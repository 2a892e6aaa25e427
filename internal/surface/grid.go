package surface

import (
	"errors"
	"fmt"
	"math"

	"revolve/internal/math3d"
)

var ErrInvalidStep = errors.New("grid step must be positive")

// HeightFunc gives the z displacement of the grid at (x, y).
type HeightFunc func(x, y float32) float32

// Wave is a separable sine/cosine height field.
func Wave(amplitude, frequency float32) HeightFunc {
	return func(x, y float32) float32 {
		return amplitude * float32(math.Sin(float64(frequency*x))*math.Cos(float64(frequency*y)))
	}
}

// GridMesh is a height-field mesh with one texture coordinate per vertex.
type GridMesh struct {
	Mesh
	TexCoords [][2]float32
}

// Grid builds a size×size lattice centred on the origin in the XY plane with
// spacing step. Vertex (i, j) sits at index i*size+j and carries texture
// coordinates (i, j)/(size-1). A nil height gives a flat sheet facing +Z.
// Fewer than two points per side produce an empty mesh.
func Grid(size int, step float32, height HeightFunc) (GridMesh, error) {
	if !(step > 0) {
		return GridMesh{}, fmt.Errorf("%w: got %g", ErrInvalidStep, step)
	}
	if size < 2 {
		return GridMesh{}, nil
	}
	if uint64(size)*uint64(size) > math.MaxUint32 {
		return GridMesh{}, fmt.Errorf("%w: %dx%d grid", ErrMeshTooLarge, size, size)
	}
	if height == nil {
		height = func(float32, float32) float32 { return 0 }
	}

	half := float32(size-1) / 2
	last := float32(size - 1)

	g := GridMesh{
		Mesh: Mesh{
			Vertices: make([]Vertex, 0, size*size),
			Indices:  make([]uint32, 0, (size-1)*(size-1)*6),
		},
		TexCoords: make([][2]float32, 0, size*size),
	}

	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			x := (float32(i) - half) * step
			y := (float32(j) - half) * step

			dzdx := (height(x+step, y) - height(x-step, y)) / (2 * step)
			dzdy := (height(x, y+step) - height(x, y-step)) / (2 * step)

			g.Vertices = append(g.Vertices, Vertex{
				Position: math3d.V3(x, y, height(x, y)),
				Normal:   math3d.V3(-dzdx, -dzdy, 1).Normalized(),
			})
			g.TexCoords = append(g.TexCoords, [2]float32{float32(i) / last, float32(j) / last})
		}
	}

	s := uint32(size)
	for i := uint32(0); i < s-1; i++ {
		for j := uint32(0); j < s-1; j++ {
			topLeft := i*s + j
			topRight := topLeft + 1
			bottomLeft := (i+1)*s + j
			bottomRight := bottomLeft + 1

			g.Indices = append(g.Indices,
				topLeft, bottomLeft, topRight,
				topRight, bottomLeft, bottomRight,
			)
		}
	}
	return g, nil
}
