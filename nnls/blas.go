// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nnls

import "math"

// ddot computes the dot product of the first n elements of x and y.
// The sum is accumulated strictly left to right so the dual vector is reproducible.
func ddot(n int, x, y []float64) (dot float64) {
	if n <= 0 {
		return zero
	}
	x, y = x[:n:n], y[:n:n]
	for i, v := range x {
		dot += v * y[i]
	}
	return dot
}

// daxpy computes y += α·x over the first n elements.
func daxpy(n int, alpha float64, x, y []float64) {
	if n <= 0 || alpha == zero {
		return
	}
	x, y = x[:n:n], y[:n:n]
	for i, v := range x {
		y[i] += alpha * v
	}
}

// dnrm2 computes the Euclidean norm of the first n elements of x
// with scaling to avoid destructive underflow and overflow.
func dnrm2(n int, x []float64) float64 {
	if n < 1 {
		return zero
	}
	if n > len(x) {
		panic("bound check error")
	}
	if n == 1 {
		return math.Abs(x[0])
	}

	scale, ssq := zero, one
	for _, v := range x[:n] {
		if absxi := math.Abs(v); absxi > 0 {
			if scale < absxi {
				sxi := scale / absxi
				ssq = 1 + ssq*sxi*sxi
				scale = absxi
			} else {
				sxi := absxi / scale
				ssq += sxi * sxi
			}
		}
	}
	return scale * math.Sqrt(ssq)
}

// dzero fills x with zero.
func dzero(x []float64) {
	for i := range x {
		x[i] = zero
	}
}
