// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nnls

import "math"

// Givens computes the 2×2 rotation matrix 𝐆
//
//	𝐆 ⎡a⎤ ≡ ⎡ c s⎤⎡a⎤ = ⎡(a²+b²)¹ᐟ²⎤ ≡ ⎡σ⎤
//	  ⎣b⎦   ⎣-s c⎦⎣b⎦   ⎣    ０    ⎦   ⎣0⎦
//
// The NNLS engine uses it to eliminate the sub-diagonal element left behind
// when a column is removed from the triangular factor.
// For a = b = 0 it returns c = 0, s = 1, σ = 0.
//
// C.L. Lawson, R.J. Hanson, 'Solving least squares problems' Prentice Hall, 1974. (revised 1995 edition)
// Chapters 3.
func Givens(a, b float64) (c, s, sig float64) {
	if xa, xb := math.Abs(a), math.Abs(b); xa > xb {
		r := b / a
		q := math.Sqrt(one + r*r)
		c = math.Copysign(one/q, a)
		s = c * r
		sig = xa * q
	} else if xb > zero {
		r := a / b
		q := math.Sqrt(one + r*r)
		s = math.Copysign(one/q, b)
		c = s * r
		sig = xb * q
	} else {
		s = one
	}
	return
}

// ApplyGivens applies the rotation computed by Givens to the pair (x, y).
//
//	𝐆 ⎡x⎤ =⎡ c s⎤⎡x⎤ = ⎡ cx + sy⎤
//	  ⎣y⎦  ⎣-s c⎦⎣y⎦   ⎣-sx + cy⎦
func ApplyGivens(c, s, x, y float64) (float64, float64) {
	return c*x + s*y, c*y - s*x
}
