package nurbsfit

import "github.com/ungerik/go3d/float64/vec3"

type Tri [3]int

// Quad lists four vertex indices counter-clockwise in parameter space:
// (i,j), (i+1,j), (i+1,j+1), (i,j+1).
type Quad [4]int

// Mesh is a structured quad mesh sampled from a surface. Vertex (i, j),
// with i counting u samples and j counting v samples, is stored at index
// i + j*DivsU.
type Mesh struct {
	Quads  []Quad
	Points []vec3.T
	UVs    []UV

	// number of samples along u and v
	DivsU, DivsV int
}

// Triangles splits every quad abcd into the triangles abc and acd.
func (this *Mesh) Triangles() []Tri {
	faces := make([]Tri, 0, 2*len(this.Quads))
	for _, q := range this.Quads {
		faces = append(faces, Tri{q[0], q[1], q[2]}, Tri{q[0], q[2], q[3]})
	}

	return faces
}

// Polyline is a curve sampled at increasing parameters, with a segment
// joining each pair of consecutive samples.
type Polyline struct {
	Points   []vec3.T
	Params   []float64
	Segments [][2]int
}
