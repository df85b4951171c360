package nurbsfit

import (
	"fmt"
	"math"

	"github.com/alexozer/nurbsfit/internal"
	"github.com/ungerik/go3d/float64/vec3"
)

// Tessellation limits. Spacings that would need more samples are rejected
// with ErrDegenerateInput rather than truncated.
const (
	// MaxSamplesPerAxis bounds the samples along one parameter direction.
	MaxSamplesPerAxis = 1 << 20

	// MaxMeshSamples bounds the vertex count of a surface mesh.
	MaxMeshSamples = 1 << 24
)

// sampleParams spreads ceil((max-min)/spacing) samples, at least two, evenly
// over [min, max].
func sampleParams(min, max, spacing float64) ([]float64, error) {
	if !(spacing > 0) {
		return nil, fmt.Errorf("sample spacing %v: %w", spacing, ErrDegenerateInput)
	}

	q := math.Ceil((max - min) / spacing)
	if math.IsNaN(q) || q > MaxSamplesPerAxis {
		return nil, fmt.Errorf("sample spacing %v needs %v samples, limit %d: %w", spacing, q, MaxSamplesPerAxis, ErrDegenerateInput)
	}

	n := int(q)
	if n < 2 {
		n = 2
	}

	return internal.LinSpace(min, max, n), nil
}

// rationalBasis evaluates all basis functions at us and folds in the
// weights, so that row s holds N_j(u_s)*w_j / sum_k N_k(u_s)*w_k.
func rationalBasis(knots internal.KnotVec, degree int, weights, us []float64, ws *internal.BasisWorkspace) (*internal.Dense, error) {
	N, err := internal.BasisMatrix(knots, degree, us, ws)
	if err != nil {
		return nil, err
	}

	for s := 0; s < N.Rows(); s++ {
		var denom float64
		for j := 0; j < N.Cols(); j++ {
			denom += N.At(s, j) * weights[j]
		}
		if denom == 0 {
			return nil, fmt.Errorf("sample %v outside the knot domain: %w", us[s], ErrDegenerateInput)
		}

		for j := 0; j < N.Cols(); j++ {
			N.Set(s, j, N.At(s, j)*weights[j]/denom)
		}
	}

	return N, nil
}

// GeneratePolyDataRepresentation samples the curve uniformly over its domain
// at roughly the given parameter spacing and joins the samples with line
// segments. The last sample lies exactly on the last control point.
func (this *Curve) GeneratePolyDataRepresentation(spacing float64) (*Polyline, error) {
	min, max := this.Domain()
	us, err := sampleParams(min, max, spacing)
	if err != nil {
		return nil, err
	}

	N, err := rationalBasis(this.knots, this.degree, this.Weights(), us, nil)
	if err != nil {
		return nil, err
	}

	pts, err := internal.Mul(N, internal.DenseFromPoints(this.ControlPoints()))
	if err != nil {
		return nil, err
	}

	segments := make([][2]int, len(us)-1)
	for i := range segments {
		segments[i] = [2]int{i, i + 1}
	}

	Logger().Debug("tessellated curve", "samples", len(us), "controlPoints", len(this.controlPoints))

	return &Polyline{pts.Points(), us, segments}, nil
}

// GeneratePolyDataRepresentation samples the surface on a regular grid of
// its parameter domain and connects the samples into quads. Vertex (i, j)
// sits at index i + j*DivsU.
func (this *Surface) GeneratePolyDataRepresentation(spacingU, spacingV float64) (*Mesh, error) {
	minU, maxU := this.DomainU()
	us, err := sampleParams(minU, maxU, spacingU)
	if err != nil {
		return nil, fmt.Errorf("u: %w", err)
	}
	minV, maxV := this.DomainV()
	vs, err := sampleParams(minV, maxV, spacingV)
	if err != nil {
		return nil, fmt.Errorf("v: %w", err)
	}

	if len(us)*len(vs) > MaxMeshSamples {
		return nil, fmt.Errorf("%dx%d mesh samples, limit %d: %w", len(us), len(vs), MaxMeshSamples, ErrDegenerateInput)
	}

	ws := internal.NewBasisWorkspace(max(len(us), len(vs)), max(this.degreeU, this.degreeV))
	NU, err := rationalBasis(this.knotsU, this.degreeU, this.weightsU, us, ws)
	if err != nil {
		return nil, err
	}
	NV, err := rationalBasis(this.knotsV, this.degreeV, this.weightsV, vs, ws)
	if err != nil {
		return nil, err
	}

	P, err := internal.DenseFromGrid(this.ControlPoints())
	if err != nil {
		return nil, err
	}
	tmp, err := internal.Mul(NU, P)
	if err != nil {
		return nil, err
	}
	samples, err := internal.Mul(tmp, NV.Transpose())
	if err != nil {
		return nil, err
	}

	nu, nv := len(us), len(vs)
	mesh := &Mesh{
		Quads:  make([]Quad, 0, (nu-1)*(nv-1)),
		Points: make([]vec3.T, nu*nv),
		UVs:    make([]UV, nu*nv),
		DivsU:  nu,
		DivsV:  nv,
	}

	for j := 0; j < nv; j++ {
		for i := 0; i < nu; i++ {
			mesh.Points[i+j*nu] = samples.PointAt(i, j)
			mesh.UVs[i+j*nu] = UV{us[i], vs[j]}
		}
	}

	for j := 0; j < nv-1; j++ {
		for i := 0; i < nu-1; i++ {
			id := i + j*nu
			mesh.Quads = append(mesh.Quads, Quad{id, id + 1, id + nu + 1, id + nu})
		}
	}

	Logger().Debug("tessellated surface", "samplesU", nu, "samplesV", nv, "quads", len(mesh.Quads))

	return mesh, nil
}
