// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nnls

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dropRows = [][]float64{
	{-3, -1, 0},
	{1, 2, 3},
	{1, 0, 2},
}

func TestSolver(t *testing.T) {
	a, m, n := colMajor(dropRows)
	orig := append([]float64(nil), a...)

	s, err := NewSolver(a, m, n)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Rows())
	assert.Equal(t, 3, s.Cols())
	assert.Equal(t, Mode(0), s.Mode())

	b := []float64{-5, 4, 1}
	x := make([]float64, n)
	rnorm, err := s.Solve(b, x)
	require.NoError(t, err)
	assert.Equal(t, Solved, s.Mode())
	assert.InDeltaSlice(t, []float64{7.0 / 6, 43.0 / 30, 0}, x, 1e-12)

	// The caller's matrix and right-hand side are preserved.
	assert.Equal(t, orig, a)
	assert.Equal(t, []float64{-5, 4, 1}, b)

	// Solving again against the pristine copy gives the same answer.
	y := make([]float64, n)
	again, err := s.Solve(b, y)
	require.NoError(t, err)
	assert.Equal(t, x, y)
	assert.Equal(t, rnorm, again)

	w := s.Dual()
	for _, v := range w {
		assert.LessOrEqual(t, v, zero)
	}
	w[0] = 42
	assert.NotEqual(t, 42.0, s.Dual()[0])
}

func TestSolverDeterminism(t *testing.T) {
	var gen randGen
	gen.next(-one)

	const m, n = 7, 5
	a := make([]float64, m*n)
	for i := range a {
		a[i] = gen.next(0.0001)
	}
	b := make([]float64, m)
	for i := range b {
		b[i] = gen.next(0.0001)
	}

	var first []float64
	var firstNorm float64
	for k := 0; k < 3; k++ {
		s, err := NewSolver(a, m, n)
		require.NoError(t, err)
		x := make([]float64, n)
		rnorm, err := s.Solve(b, x)
		require.NoError(t, err)
		if k == 0 {
			first, firstNorm = x, rnorm
			continue
		}
		assert.Equal(t, first, x)
		assert.Equal(t, firstNorm, rnorm)
	}
}

func TestSolverUpdate(t *testing.T) {
	var gen randGen
	gen.next(-one)

	const m, n = 6, 4
	a1 := make([]float64, m*n)
	a2 := make([]float64, m*n)
	for i := range a1 {
		a1[i] = gen.next(0.0001)
		a2[i] = gen.next(0.0001)
	}
	b := make([]float64, m)
	for i := range b {
		b[i] = gen.next(0.0001)
	}

	reused, err := NewSolver(a1, m, n)
	require.NoError(t, err)
	_, err = reused.Solve(b, make([]float64, n))
	require.NoError(t, err)
	require.NoError(t, reused.Update(a2))

	fresh, err := NewSolver(a2, m, n)
	require.NoError(t, err)

	x1, x2 := make([]float64, n), make([]float64, n)
	r1, err := reused.Solve(b, x1)
	require.NoError(t, err)
	r2, err := fresh.Solve(b, x2)
	require.NoError(t, err)

	assert.Equal(t, x2, x1)
	assert.Equal(t, r2, r1)
	assert.Equal(t, fresh.Dual(), reused.Dual())

	err = reused.Update(a2[:m*n-1])
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestSolverReshape(t *testing.T) {
	s, err := NewSolver([]float64{2}, 1, 1)
	require.NoError(t, err)

	x := make([]float64, 1)
	rnorm, err := s.Solve([]float64{4}, x)
	require.NoError(t, err)
	assert.Equal(t, []float64{2}, x)
	assert.Equal(t, zero, rnorm)

	a, m, n := colMajor(dropRows)
	require.NoError(t, s.Reshape(a, m, n))
	assert.Equal(t, m, s.Rows())
	assert.Equal(t, n, s.Cols())

	x = make([]float64, n)
	rnorm, err = s.Solve([]float64{-5, 4, 1}, x)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{7.0 / 6, 43.0 / 30, 0}, x, 1e-12)

	assert.ErrorIs(t, s.Reshape(a, 0, n), ErrInvalidDimensions)
	assert.ErrorIs(t, s.Reshape(a, 2, 2), ErrLengthMismatch)
	// a failed reshape keeps the previous shape
	assert.Equal(t, m, s.Rows())
}

func TestSolverErrors(t *testing.T) {
	_, err := NewSolver(nil, 0, 3)
	assert.ErrorIs(t, err, ErrInvalidDimensions)

	_, err = NewSolver([]float64{1, 2, 3}, 2, 2)
	assert.ErrorIs(t, err, ErrLengthMismatch)

	a, m, n := colMajor(dropRows)
	s, err := NewSolver(a, m, n)
	require.NoError(t, err)

	_, err = s.Solve([]float64{1, 2}, make([]float64, n))
	assert.ErrorIs(t, err, ErrLengthMismatch)
	_, err = s.Solve([]float64{1, 2, 3}, make([]float64, n+1))
	assert.ErrorIs(t, err, ErrLengthMismatch)
	assert.Equal(t, Mode(0), s.Mode())
}

func TestSolverIterationLimit(t *testing.T) {
	a, m, n := colMajor(dropRows)
	s, err := NewSolver(a, m, n, WithMaxIterations(1))
	require.NoError(t, err)

	x := []float64{-1, -1, -1}
	_, err = s.Solve([]float64{-5, 4, 1}, x)
	assert.ErrorIs(t, err, ErrIterationLimit)
	assert.Equal(t, IterationLimit, s.Mode())
	assert.Equal(t, []float64{-1, -1, -1}, x, "x must be left untouched")

	assert.Panics(t, func() { WithMaxIterations(-1) })
}

func TestSolverLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s, err := NewSolver([]float64{2, 0, 0, 4}, 2, 2, WithLogger(logger))
	require.NoError(t, err)
	_, err = s.Solve([]float64{2, -8}, make([]float64, 2))
	require.NoError(t, err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "nnls solved", rec["msg"])
	assert.Equal(t, "DEBUG", rec["level"])
	assert.EqualValues(t, 1, rec["active"])
	assert.EqualValues(t, 8, rec["rnorm"])

	// nil falls back to discarding
	s, err = NewSolver([]float64{2}, 1, 1, WithLogger(nil))
	require.NoError(t, err)
	_, err = s.Solve([]float64{4}, make([]float64, 1))
	require.NoError(t, err)
}
