package internal

import (
	"fmt"
	"math"

	"github.com/ungerik/go3d/float64/vec3"
)

// Dense is a row-major matrix whose entries are either scalars (arity 1) or
// xyz points (arity 3). Point matrices carry control points and samples
// through the same products as the scalar basis matrices.
type Dense struct {
	rows, cols int
	arity      int
	data       []float64
}

// NewDense allocates a zero matrix. A negative shape or an arity other than
// 1 or 3 is a programming error and panics.
func NewDense(rows, cols, arity int) *Dense {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("internal: negative shape %dx%d", rows, cols))
	}
	if arity != 1 && arity != 3 {
		panic(fmt.Sprintf("internal: unsupported arity %d", arity))
	}

	return &Dense{rows, cols, arity, make([]float64, rows*cols*arity)}
}

// DenseFromRows builds a scalar matrix from row slices.
func DenseFromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 {
		return NewDense(0, 0, 1), nil
	}

	cols := len(rows[0])
	this := NewDense(len(rows), cols, 1)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d entries, want %d: %w", i, len(row), cols, ErrDimensionMismatch)
		}
		copy(this.data[i*cols:], row)
	}

	return this, nil
}

// DenseFromPoints builds an n x 1 point matrix.
func DenseFromPoints(pts []vec3.T) *Dense {
	this := NewDense(len(pts), 1, 3)
	for i := range pts {
		this.SetPoint(i, 0, pts[i])
	}

	return this
}

// DenseFromGrid builds a point matrix whose entry (i, j) is grid[i][j].
func DenseFromGrid(grid [][]vec3.T) (*Dense, error) {
	if len(grid) == 0 {
		return NewDense(0, 0, 3), nil
	}

	cols := len(grid[0])
	this := NewDense(len(grid), cols, 3)
	for i, row := range grid {
		if len(row) != cols {
			return nil, fmt.Errorf("grid row %d has %d points, want %d: %w", i, len(row), cols, ErrDimensionMismatch)
		}
		for j := range row {
			this.SetPoint(i, j, row[j])
		}
	}

	return this, nil
}

func Identity(n int) *Dense {
	this := NewDense(n, n, 1)
	for i := 0; i < n; i++ {
		this.data[i*n+i] = 1
	}

	return this
}

func (this *Dense) Rows() int  { return this.rows }
func (this *Dense) Cols() int  { return this.cols }
func (this *Dense) Arity() int { return this.arity }

func (this *Dense) Clone() *Dense {
	return &Dense{this.rows, this.cols, this.arity, append([]float64(nil), this.data...)}
}

func (this *Dense) offset(i, j int) int {
	return (i*this.cols + j) * this.arity
}

// At returns the first component of entry (i, j); for scalar matrices that
// is the entry itself.
func (this *Dense) At(i, j int) float64 {
	return this.data[this.offset(i, j)]
}

func (this *Dense) Set(i, j int, v float64) {
	this.data[this.offset(i, j)] = v
}

func (this *Dense) PointAt(i, j int) vec3.T {
	o := this.offset(i, j)
	return vec3.T{this.data[o], this.data[o+1], this.data[o+2]}
}

func (this *Dense) SetPoint(i, j int, pt vec3.T) {
	o := this.offset(i, j)
	copy(this.data[o:o+3], pt[:])
}

// Row returns a copy of row i of a point matrix.
func (this *Dense) Row(i int) []vec3.T {
	row := make([]vec3.T, this.cols)
	for j := range row {
		row[j] = this.PointAt(i, j)
	}

	return row
}

// Col returns a copy of column j of a point matrix.
func (this *Dense) Col(j int) []vec3.T {
	col := make([]vec3.T, this.rows)
	for i := range col {
		col[i] = this.PointAt(i, j)
	}

	return col
}

func (this *Dense) SetRow(i int, pts []vec3.T) error {
	if this.arity != 3 || len(pts) != this.cols {
		return fmt.Errorf("SetRow: %d points into %dx%d (arity %d): %w", len(pts), this.rows, this.cols, this.arity, ErrDimensionMismatch)
	}
	for j := range pts {
		this.SetPoint(i, j, pts[j])
	}

	return nil
}

func (this *Dense) SetCol(j int, pts []vec3.T) error {
	if this.arity != 3 || len(pts) != this.rows {
		return fmt.Errorf("SetCol: %d points into %dx%d (arity %d): %w", len(pts), this.rows, this.cols, this.arity, ErrDimensionMismatch)
	}
	for i := range pts {
		this.SetPoint(i, j, pts[i])
	}

	return nil
}

// Points flattens a point matrix in row-major order.
func (this *Dense) Points() []vec3.T {
	pts := make([]vec3.T, 0, this.rows*this.cols)
	for i := 0; i < this.rows; i++ {
		for j := 0; j < this.cols; j++ {
			pts = append(pts, this.PointAt(i, j))
		}
	}

	return pts
}

// Grid returns a point matrix as rows of points.
func (this *Dense) Grid() [][]vec3.T {
	grid := make([][]vec3.T, this.rows)
	for i := range grid {
		grid[i] = this.Row(i)
	}

	return grid
}

func (this *Dense) Transpose() *Dense {
	t := NewDense(this.cols, this.rows, this.arity)
	for i := 0; i < this.rows; i++ {
		for j := 0; j < this.cols; j++ {
			copy(t.data[t.offset(j, i):t.offset(j, i)+this.arity], this.data[this.offset(i, j):])
		}
	}

	return t
}

// Mul returns a*b. Scalar operands broadcast across the three channels of a
// point operand; two point operands multiply channel by channel.
func Mul(a, b *Dense) (*Dense, error) {
	if a.cols != b.rows {
		return nil, fmt.Errorf("Mul: %dx%d by %dx%d: %w", a.rows, a.cols, b.rows, b.cols, ErrDimensionMismatch)
	}

	arity := max(a.arity, b.arity)
	out := NewDense(a.rows, b.cols, arity)

	// A zero stride keeps reading the single channel of a scalar operand.
	aStride, bStride := 1, 1
	if a.arity == 1 {
		aStride = 0
	}
	if b.arity == 1 {
		bStride = 0
	}

	for c := 0; c < arity; c++ {
		ac, bc := c*aStride, c*bStride
		for i := 0; i < a.rows; i++ {
			for k := 0; k < a.cols; k++ {
				aik := a.data[(i*a.cols+k)*a.arity+ac]
				if aik == 0 {
					continue
				}
				for j := 0; j < b.cols; j++ {
					out.data[(i*out.cols+j)*arity+c] += aik * b.data[(k*b.cols+j)*b.arity+bc]
				}
			}
		}
	}

	return out, nil
}

// Invert returns the inverse of a square scalar matrix, computed by Gaussian
// elimination with partial pivoting.
func (this *Dense) Invert() (*Dense, error) {
	if this.arity != 1 {
		return nil, fmt.Errorf("Invert: arity %d matrix: %w", this.arity, ErrDimensionMismatch)
	}
	if this.rows != this.cols {
		return nil, fmt.Errorf("Invert: %dx%d is not square: %w", this.rows, this.cols, ErrDimensionMismatch)
	}
	if this.rows == 0 {
		return nil, fmt.Errorf("Invert: empty matrix: %w", ErrDegenerateInput)
	}

	lu, err := newLUdecomp(this)
	if err != nil {
		return nil, err
	}

	n := this.rows
	inv := NewDense(n, n, 1)
	col := make([]float64, n)
	for j := 0; j < n; j++ {
		clear(col)
		col[j] = 1
		lu.solveInPlace(col)
		for i := 0; i < n; i++ {
			inv.data[i*n+j] = col[i]
		}
	}

	return inv, nil
}

type luDecomp struct {
	LU [][]float64
	P  []int
}

func newLUdecomp(mat *Dense) (*luDecomp, error) {
	n := mat.rows
	rows := make([][]float64, n)
	var scale float64
	for i := range rows {
		rows[i] = append([]float64(nil), mat.data[i*n:(i+1)*n]...)
		for _, v := range rows[i] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("Invert: non-finite entry in row %d: %w", i, ErrSingularSystem)
			}
			scale = max(scale, math.Abs(v))
		}
	}
	if scale == 0 {
		return nil, fmt.Errorf("Invert: zero matrix: %w", ErrSingularSystem)
	}
	tol := pivotEpsilon * scale

	P := make([]int, n)
	for k := 0; k < n; k++ {
		Pk := k
		Ak := rows[k]
		pivot := math.Abs(Ak[k])

		for j := k + 1; j < n; j++ {
			if abs := math.Abs(rows[j][k]); abs > pivot {
				pivot = abs
				Pk = j
			}
		}
		if pivot < tol {
			return nil, fmt.Errorf("Invert: pivot %g in column %d: %w", pivot, k, ErrSingularSystem)
		}
		P[k] = Pk

		if Pk != k {
			rows[k], rows[Pk] = rows[Pk], Ak
			Ak = rows[k]
		}

		Akk := Ak[k]
		for i := k + 1; i < n; i++ {
			Ai := rows[i]
			Ai[k] /= Akk
			if Ai[k] == 0 {
				continue
			}
			for j := k + 1; j < n; j++ {
				Ai[j] -= Ai[k] * Ak[j]
			}
		}
	}

	return &luDecomp{rows, P}, nil
}

// solveInPlace overwrites x with the solution of A x = b, where b is the
// incoming contents of x.
func (this *luDecomp) solveInPlace(x []float64) {
	LU, P := this.LU, this.P
	n := len(LU)

	for i := 0; i < n; i++ {
		if Pi := P[i]; Pi != i {
			x[i], x[Pi] = x[Pi], x[i]
		}

		LUi := LU[i]
		for j := 0; j < i; j++ {
			x[i] -= x[j] * LUi[j]
		}
	}

	for i := n - 1; i >= 0; i-- {
		LUi := LU[i]
		for j := i + 1; j < n; j++ {
			x[i] -= x[j] * LUi[j]
		}

		x[i] /= LUi[i]
	}
}
