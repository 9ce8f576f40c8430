// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nnls

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGivens(t *testing.T) {
	tests := []struct {
		name      string
		a, b      float64
		c, s, sig float64
	}{
		{"b dominates", 3, 4, 0.6, 0.8, 5},
		{"a dominates", 4, 3, 0.8, 0.6, 5},
		{"negative a", -4, 3, -0.8, 0.6, 5},
		{"negative b", 3, -4, 0.6, -0.8, 5},
		{"zero b", -3, 0, -1, 0, 3},
		{"zero a", 0, 2, 0, 1, 2},
		{"both zero", 0, 0, 0, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, s, sig := Givens(tt.a, tt.b)
			assert.InDelta(t, tt.c, c, 1e-15)
			assert.InDelta(t, tt.s, s, 1e-15)
			assert.InDelta(t, tt.sig, sig, 1e-15)
		})
	}
}

func TestApplyGivens(t *testing.T) {
	var gen randGen
	gen.next(-one)

	for k := 0; k < 20; k++ {
		a, b := gen.next(zero), gen.next(zero)
		c, s, sig := Givens(a, b)

		// 𝐆 maps (a, b) onto (σ, 0)
		r, z := ApplyGivens(c, s, a, b)
		assert.InDelta(t, sig, r, 1e-12*math.Max(one, sig))
		assert.InDelta(t, zero, z, 1e-12*math.Max(one, sig))

		// and preserves the length of any other pair
		x, y := gen.next(zero), gen.next(zero)
		xr, yr := ApplyGivens(c, s, x, y)
		assert.InDelta(t, math.Hypot(x, y), math.Hypot(xr, yr), 1e-12*math.Hypot(x, y))
	}
}
