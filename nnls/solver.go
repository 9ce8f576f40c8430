// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nnls

import (
	"context"
	"fmt"
	"log/slog"
)

// Solver owns the workspace of repeated NNLS solves against an m × n matrix.
//
// The matrix given to NewSolver, Update or Reshape is copied and never modified,
// each Solve runs on scratch copies of it and of the right-hand side.
//
// A Solver is not safe for concurrent use, callers solving in parallel need one Solver each.
type Solver struct {
	m, n int
	a    []float64 // pristine column-major m × n matrix

	opts options

	// scratch space of the engine
	wa    []float64 // m × n
	wb    []float64 // m
	x     []float64 // n
	w     []float64 // n
	zz    []float64 // m
	index []int     // n

	mode Mode
}

// NewSolver creates a Solver for the m × n column-major matrix a.
func NewSolver(a []float64, m, n int, opts ...Option) (*Solver, error) {
	s := &Solver{opts: gatherOptions(opts)}
	if err := s.Reshape(a, m, n); err != nil {
		return nil, err
	}
	return s, nil
}

// Rows returns m.
func (s *Solver) Rows() int { return s.m }

// Cols returns n.
func (s *Solver) Cols() int { return s.n }

// Update replaces the matrix contents keeping the shape, no memory is allocated.
func (s *Solver) Update(a []float64) error {
	if len(a) != len(s.a) {
		return fmt.Errorf("%w: matrix has %d elements, want %d", ErrLengthMismatch, len(a), len(s.a))
	}
	copy(s.a, a)
	return nil
}

// Reshape replaces both the shape and the contents of the matrix and reallocates the workspace.
func (s *Solver) Reshape(a []float64, m, n int) error {
	if m <= 0 || n <= 0 {
		return fmt.Errorf("%w: %d × %d", ErrInvalidDimensions, m, n)
	}
	if len(a) != m*n {
		return fmt.Errorf("%w: matrix has %d elements, want %d", ErrLengthMismatch, len(a), m*n)
	}

	s.m, s.n = m, n
	s.a = append([]float64(nil), a...)
	s.wa = make([]float64, m*n)
	s.wb = make([]float64, m)
	s.x = make([]float64, n)
	s.w = make([]float64, n)
	s.zz = make([]float64, m)
	s.index = make([]int, n)
	s.mode = 0
	return nil
}

// Solve computes x ≥ 0 minimizing ‖ 𝐀𝐱 - 𝐛 ‖₂ and returns the residual norm.
//
// b must have m elements and x must have n elements, neither is retained.
// A nil error means the engine terminated with Solved, on ErrIterationLimit x is left untouched.
func (s *Solver) Solve(b, x []float64) (rnorm float64, err error) {
	if len(b) != s.m {
		return 0, fmt.Errorf("%w: b has %d elements, want %d", ErrLengthMismatch, len(b), s.m)
	}
	if len(x) != s.n {
		return 0, fmt.Errorf("%w: x has %d elements, want %d", ErrLengthMismatch, len(x), s.n)
	}

	copy(s.wa, s.a)
	copy(s.wb, b)

	rnorm, s.mode = NNLS(s.m, s.n, s.wa, s.m, s.wb, s.x, s.w, s.zz, s.index, s.opts.maxIter)

	logger := s.opts.logger
	if err = s.mode.Err(); err != nil {
		logger.LogAttrs(context.Background(), slog.LevelWarn, "nnls solve failed",
			slog.Int("m", s.m), slog.Int("n", s.n), slog.String("mode", s.mode.String()))
		return rnorm, err
	}

	copy(x, s.x)
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		logger.LogAttrs(context.Background(), slog.LevelDebug, "nnls solved",
			slog.Int("m", s.m), slog.Int("n", s.n),
			slog.Int("active", s.active()), slog.Float64("rnorm", rnorm))
	}
	return rnorm, nil
}

// Mode returns the termination mode of the last Solve, zero before the first one.
func (s *Solver) Mode() Mode { return s.mode }

// Dual returns a copy of the dual vector 𝐰 = 𝐀ᵀ(𝐛 - 𝐀𝐱) left by the last Solve.
// After a successful solve every entry is ≤ 0, entries of the positive set
// and of columns rejected as dependent are zero.
func (s *Solver) Dual() []float64 {
	return append([]float64(nil), s.w...)
}

func (s *Solver) active() (k int) {
	for _, v := range s.x {
		if v > zero {
			k++
		}
	}
	return
}
