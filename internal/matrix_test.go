package internal

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ungerik/go3d/float64/vec3"
	"gonum.org/v1/gonum/mat"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func mustRows(t *testing.T, rows [][]float64) *Dense {
	t.Helper()
	m, err := DenseFromRows(rows)
	require.NoError(t, err)
	return m
}

func scalars(m *Dense) [][]float64 {
	rows := make([][]float64, m.Rows())
	for i := range rows {
		rows[i] = make([]float64, m.Cols())
		for j := range rows[i] {
			rows[i][j] = m.At(i, j)
		}
	}
	return rows
}

func TestMulScalarScalar(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 2}, {3, 4}})
	b := mustRows(t, [][]float64{{5, 6}, {7, 8}})

	c, err := Mul(a, b)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Arity())
	diff(t, [][]float64{{19, 22}, {43, 50}}, scalars(c))
}

func TestMulScalarPoint(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 2}, {0, -1}})
	b := DenseFromPoints([]vec3.T{{1, 0, 2}, {0, 3, 1}})

	c, err := Mul(a, b)
	require.NoError(t, err)
	require.Equal(t, 3, c.Arity())
	diff(t, []vec3.T{{1, 6, 4}, {0, -3, -1}}, c.Points())
}

func TestMulPointScalar(t *testing.T) {
	a, err := DenseFromGrid([][]vec3.T{{{1, 2, 3}, {4, 5, 6}}})
	require.NoError(t, err)
	b := mustRows(t, [][]float64{{1}, {2}})

	c, err := Mul(a, b)
	require.NoError(t, err)
	diff(t, []vec3.T{{9, 12, 15}}, c.Points())
}

func TestMulPointPointIsComponentWise(t *testing.T) {
	a, err := DenseFromGrid([][]vec3.T{{{1, 2, 3}, {1, 1, 1}}})
	require.NoError(t, err)
	b := DenseFromPoints([]vec3.T{{2, 2, 2}, {1, 2, 3}})

	c, err := Mul(a, b)
	require.NoError(t, err)
	diff(t, []vec3.T{{3, 6, 9}}, c.Points())
}

func TestMulDimensionMismatch(t *testing.T) {
	a := NewDense(2, 3, 1)
	b := NewDense(2, 3, 3)

	_, err := Mul(a, b)
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestTransposePoints(t *testing.T) {
	m, err := DenseFromGrid([][]vec3.T{
		{{0, 0, 0}, {0, 1, 0}, {0, 2, 0}},
		{{1, 0, 0}, {1, 1, 0}, {1, 2, 0}},
	})
	require.NoError(t, err)

	tr := m.Transpose()
	require.Equal(t, 3, tr.Rows())
	require.Equal(t, 2, tr.Cols())
	assert.Equal(t, vec3.T{1, 2, 0}, tr.PointAt(2, 1))
	diff(t, m.Grid(), tr.Transpose().Grid())
}

func TestDenseFromGridRagged(t *testing.T) {
	_, err := DenseFromGrid([][]vec3.T{{{}, {}}, {{}}})
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestSetRowColShape(t *testing.T) {
	m := NewDense(2, 3, 3)
	require.NoError(t, m.SetRow(1, []vec3.T{{1, 0, 0}, {2, 0, 0}, {3, 0, 0}}))
	require.NoError(t, m.SetCol(0, []vec3.T{{9, 9, 9}, {8, 8, 8}}))
	assert.Equal(t, []vec3.T{{8, 8, 8}, {2, 0, 0}, {3, 0, 0}}, m.Row(1))

	require.ErrorIs(t, m.SetRow(0, make([]vec3.T, 2)), ErrDimensionMismatch)
	require.ErrorIs(t, m.SetCol(0, make([]vec3.T, 3)), ErrDimensionMismatch)
}

func TestInvertAgainstGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, n := range []int{1, 2, 5, 12} {
		data := make([]float64, n*n)
		rows := make([][]float64, n)
		for i := range rows {
			rows[i] = data[i*n : (i+1)*n]
			for j := range rows[i] {
				rows[i][j] = rng.Float64()*2 - 1
			}
			rows[i][i] += float64(n)
		}

		m := mustRows(t, rows)
		inv, err := m.Invert()
		require.NoError(t, err, "n=%d", n)

		var want mat.Dense
		require.NoError(t, want.Inverse(mat.NewDense(n, n, append([]float64(nil), data...))))
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				assert.InDelta(t, want.At(i, j), inv.At(i, j), 1e-9, "n=%d (%d,%d)", n, i, j)
			}
		}

		prod, err := Mul(m, inv)
		require.NoError(t, err)
		diff(t, scalars(Identity(n)), scalars(prod), cmpopts.EquateApprox(0, 1e-9))
	}
}

func TestInvertNeedsPivoting(t *testing.T) {
	m := mustRows(t, [][]float64{
		{0, 1, 0},
		{1, 0, 0},
		{0, 0, 2},
	})

	inv, err := m.Invert()
	require.NoError(t, err)
	diff(t, [][]float64{{0, 1, 0}, {1, 0, 0}, {0, 0, 0.5}}, scalars(inv), approx)
}

func TestInvertSingular(t *testing.T) {
	for name, rows := range map[string][][]float64{
		"zero row": {
			{1, 2, 3},
			{0, 0, 0},
			{4, 5, 6},
		},
		"dependent rows": {
			{1, 2, 3},
			{2, 4, 6},
			{0, 0, 1},
		},
		"zero": {
			{0, 0},
			{0, 0},
		},
		"tiny dependent rows": {
			{1e-14, 2e-14},
			{2e-14, 4e-14},
		},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := mustRows(t, rows).Invert()
			require.ErrorIs(t, err, ErrSingularSystem)
		})
	}
}

func TestInvertSmallMagnitude(t *testing.T) {
	for _, scale := range []float64{1e-13, 1e-20, 1e20} {
		m := mustRows(t, [][]float64{
			{2 * scale, scale, 0},
			{scale, 3 * scale, 0},
			{0, 0, scale},
		})

		inv, err := m.Invert()
		require.NoError(t, err, "scale %g", scale)

		prod, err := Mul(m, inv)
		require.NoError(t, err)
		diff(t, scalars(Identity(3)), scalars(prod), approx)
	}
}

func TestInvertShape(t *testing.T) {
	_, err := NewDense(2, 3, 1).Invert()
	require.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = NewDense(2, 2, 3).Invert()
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func BenchmarkInvert(b *testing.B) {
	const n = 40
	m := NewDense(n, n, 1)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			m.Set(i, j, 1/float64(i+j+1))
		}
		m.Set(i, i, m.At(i, i)+n)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.Invert(); err != nil {
			b.Fatal(err)
		}
	}
}
