// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nnls

import "errors"

// Sentinel errors. Callers match them with errors.Is, the Solver may wrap them
// with the offending sizes.
var (
	// ErrInvalidDimensions is returned when m ≤ 0 or n ≤ 0.
	ErrInvalidDimensions = errors.New("nnls: invalid dimensions")

	// ErrLengthMismatch is returned when a matrix or vector length disagrees with the stored shape.
	ErrLengthMismatch = errors.New("nnls: length mismatch")

	// ErrIterationLimit is returned when the feasibility loop exceeds its iteration cap.
	// The solution vector is not valid in this case.
	ErrIterationLimit = errors.New("nnls: iteration limit exceeded")

	// ErrUnknownMode signals a Mode value outside the known set.
	ErrUnknownMode = errors.New("nnls: unknown mode")
)
