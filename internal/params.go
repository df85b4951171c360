package internal

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ungerik/go3d/float64/vec3"
)

// ParamStrategy selects how parameter values are assigned to data points.
type ParamStrategy int

const (
	// ParamEqual spaces parameters uniformly.
	ParamEqual ParamStrategy = iota
	// ParamChord spaces parameters by cumulative chord length.
	ParamChord
	// ParamCentripetal spaces parameters by cumulative square-root chord length.
	ParamCentripetal
)

var paramStrategyNames = [...]string{
	ParamEqual:       "equal",
	ParamChord:       "chord",
	ParamCentripetal: "centripetal",
}

func (this ParamStrategy) String() string {
	if this < 0 || int(this) >= len(paramStrategyNames) {
		return fmt.Sprintf("ParamStrategy(%d)", int(this))
	}
	return paramStrategyNames[this]
}

// ParseParamStrategy maps a case-insensitive name onto a ParamStrategy.
func ParseParamStrategy(name string) (ParamStrategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range paramStrategyNames {
		if n == name {
			return ParamStrategy(s), nil
		}
	}
	return 0, fmt.Errorf("parameterization %q: %w", name, ErrUnknownStrategy)
}

// LinSpace returns num evenly spaced values over [min, max]. The last value
// is exactly max.
func LinSpace(min, max float64, num int) []float64 {
	if num <= 0 {
		return nil
	}
	if num == 1 {
		return []float64{min}
	}

	space := (max - min) / float64(num-1)
	values := make([]float64, num)
	for i := range values {
		values[i] = min + float64(i)*space
	}
	values[num-1] = max

	return values
}

// Parameterize assigns a parameter in [0, 1] to every point. The result is
// strictly increasing, starts at 0 and ends at exactly 1.
//
// **params**
// + ordered data points, at least two
// + spacing strategy
//
// **returns**
// + one parameter per point
func Parameterize(points []vec3.T, strategy ParamStrategy) ([]float64, error) {
	n := len(points)
	if n < 2 {
		return nil, fmt.Errorf("parameterize %d points: %w", n, ErrDegenerateInput)
	}

	var exponent float64
	switch strategy {
	case ParamEqual:
	case ParamChord:
		exponent = 1
	case ParamCentripetal:
		exponent = 0.5
	default:
		return nil, fmt.Errorf("parameterize: %v: %w", strategy, ErrUnknownStrategy)
	}

	dists := make([]float64, n-1)
	var total float64
	for i := range dists {
		d := vec3.Distance(&points[i], &points[i+1])
		if strategy != ParamEqual && d < Epsilon {
			return nil, fmt.Errorf("parameterize: points %d and %d coincide: %w", i, i+1, ErrDegenerateInput)
		}
		dists[i] = math.Pow(d, exponent)
		total += d
	}
	if total < Epsilon {
		return nil, fmt.Errorf("parameterize: all points coincide: %w", ErrDegenerateInput)
	}

	if strategy == ParamEqual {
		return LinSpace(0, 1, n), nil
	}

	var sum float64
	for _, d := range dists {
		sum += d
	}

	params := make([]float64, n)
	var acc float64
	for i := 1; i < n-1; i++ {
		acc += dists[i-1]
		params[i] = acc / sum
	}
	params[n-1] = 1

	return params, nil
}

// ParameterizeGrid assigns parameters along both axes of a point grid, where
// grid[i][j] has u index i and v index j. Each axis averages the parameters
// of every grid line running along it; lines that collapse to a point are
// skipped.
func ParameterizeGrid(grid [][]vec3.T, strategyU, strategyV ParamStrategy) (us, vs []float64, err error) {
	nU := len(grid)
	if nU == 0 {
		return nil, nil, fmt.Errorf("parameterize empty grid: %w", ErrDegenerateInput)
	}
	nV := len(grid[0])
	for i := range grid {
		if len(grid[i]) != nV {
			return nil, nil, fmt.Errorf("grid row %d has %d points, want %d: %w", i, len(grid[i]), nV, ErrDimensionMismatch)
		}
	}

	line := make([]vec3.T, nU)
	us, err = averageParams(nV, strategyU, func(j int) []vec3.T {
		for i := range line {
			line[i] = grid[i][j]
		}
		return line
	})
	if err != nil {
		return nil, nil, fmt.Errorf("u direction: %w", err)
	}

	vs, err = averageParams(nU, strategyV, func(i int) []vec3.T { return grid[i] })
	if err != nil {
		return nil, nil, fmt.Errorf("v direction: %w", err)
	}

	return us, vs, nil
}

func averageParams(lines int, strategy ParamStrategy, line func(int) []vec3.T) ([]float64, error) {
	var avg []float64
	var used int
	var lastErr error

	for l := 0; l < lines; l++ {
		params, err := Parameterize(line(l), strategy)
		if errors.Is(err, ErrDegenerateInput) {
			lastErr = err
			continue
		}
		if err != nil {
			return nil, err
		}

		if avg == nil {
			avg = make([]float64, len(params))
		}
		for i, u := range params {
			avg[i] += u
		}
		used++
	}

	if used == 0 {
		if lastErr == nil {
			lastErr = fmt.Errorf("no grid lines: %w", ErrDegenerateInput)
		}
		return nil, lastErr
	}

	for i := range avg {
		avg[i] /= float64(used)
	}
	avg[0], avg[len(avg)-1] = 0, 1

	return avg, nil
}
