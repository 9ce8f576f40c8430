// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nnls

const (
	zero = 0.0
	one  = 1.0
	two  = 2.0
)

// Mode reports how the NNLS engine terminated.
type Mode int

const (
	// Solved the Kuhn-Tucker conditions are satisfied or all rows were triangularized.
	Solved Mode = iota + 1
	// InvalidDimensions m ≤ 0, n ≤ 0 or the workspace is undersized.
	InvalidDimensions
	// IterationLimit more than the maximum number of feasibility iterations.
	IterationLimit
)

func (m Mode) String() string {
	switch m {
	case Solved:
		return "solved"
	case InvalidDimensions:
		return "invalid dimensions"
	case IterationLimit:
		return "iteration limit exceeded"
	}
	return "unknown"
}

// Err maps the mode to its sentinel error, nil for Solved.
func (m Mode) Err() error {
	switch m {
	case Solved:
		return nil
	case InvalidDimensions:
		return ErrInvalidDimensions
	case IterationLimit:
		return ErrIterationLimit
	}
	return ErrUnknownMode
}
