// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nnls

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// NewSolverFromMatrix creates a Solver from any gonum matrix.
func NewSolverFromMatrix(a mat.Matrix, opts ...Option) (*Solver, error) {
	data, m, n := columnMajor(a)
	return NewSolver(data, m, n, opts...)
}

// UpdateMatrix replaces the matrix contents with a, which must keep the shape of the Solver.
func (s *Solver) UpdateMatrix(a mat.Matrix) error {
	if m, n := a.Dims(); m != s.m || n != s.n {
		return fmt.Errorf("%w: matrix is %d × %d, want %d × %d", ErrLengthMismatch, m, n, s.m, s.n)
	}
	data, _, _ := columnMajor(a)
	return s.Update(data)
}

// SolveVec is Solve for gonum vectors.
func (s *Solver) SolveVec(b mat.Vector) (x *mat.VecDense, rnorm float64, err error) {
	if b.Len() != s.m {
		return nil, 0, fmt.Errorf("%w: b has %d elements, want %d", ErrLengthMismatch, b.Len(), s.m)
	}
	bd := make([]float64, s.m)
	for i := range bd {
		bd[i] = b.AtVec(i)
	}
	xd := make([]float64, s.n)
	if rnorm, err = s.Solve(bd, xd); err != nil {
		return nil, rnorm, err
	}
	return mat.NewVecDense(s.n, xd), rnorm, nil
}

// SolveRows solves the problem given as row-major c (one slice per equation) and right-hand side d.
func SolveRows(c [][]float64, d []float64, opts ...Option) (x []float64, rnorm float64, err error) {
	m := len(c)
	if m == 0 || len(c[0]) == 0 {
		return nil, 0, fmt.Errorf("%w: empty matrix", ErrInvalidDimensions)
	}
	n := len(c[0])

	a := make([]float64, m*n)
	for i, row := range c {
		if len(row) != n {
			return nil, 0, fmt.Errorf("%w: row %d has %d elements, want %d", ErrLengthMismatch, i, len(row), n)
		}
		for j, v := range row {
			a[i+j*m] = v
		}
	}

	s, err := NewSolver(a, m, n, opts...)
	if err != nil {
		return nil, 0, err
	}
	x = make([]float64, n)
	if rnorm, err = s.Solve(d, x); err != nil {
		return nil, rnorm, err
	}
	return x, rnorm, nil
}

// Residual returns ‖ 𝐀𝐱 - 𝐛 ‖₂ for the m × n column-major matrix a.
func Residual(a []float64, m, n int, x, b []float64) (float64, error) {
	if m <= 0 || n <= 0 {
		return 0, fmt.Errorf("%w: %d × %d", ErrInvalidDimensions, m, n)
	}
	if len(a) != m*n || len(x) != n || len(b) != m {
		return 0, ErrLengthMismatch
	}
	// A column-major m × n matrix is the row-major storage of 𝐀ᵀ.
	at := mat.NewDense(n, m, a)
	var r mat.VecDense
	r.MulVec(at.T(), mat.NewVecDense(n, x))
	r.SubVec(&r, mat.NewVecDense(m, b))
	return mat.Norm(&r, 2), nil
}

func columnMajor(a mat.Matrix) (data []float64, m, n int) {
	m, n = a.Dims()
	data = make([]float64, m*n)
	for j := 0; j < n; j++ {
		for i := 0; i < m; i++ {
			data[i+j*m] = a.At(i, j)
		}
	}
	return
}
