// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nnls

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

// generate a random value with noise added.
type randGen struct {
	i, j int
	aj   float64
}

// generate next random value with noise added.
// anoise determines the level of "noise" to be added to the data,
// a negative anoise resets the sequence.
func (g *randGen) next(anoise float64) float64 {

	const (
		mi = 891
		mj = 457
	)

	if anoise < zero {
		g.i = 5
		g.j = 7
		g.aj = zero
		return zero
	}

	// The sequence of values of J is bounded between 1 and 996.
	if anoise > zero {
		g.j = g.j * mj
		g.j = g.j - 997*(g.j/997)
		g.aj = float64(g.j - 498)
	}

	// The sequence of values of I is bounded between 1 and 999.
	g.i = g.i * mi
	g.i = g.i - 1000*(g.i/1000)
	return float64(g.i-500) + g.aj*anoise
}

// colMajor flattens row-major rows into a column-major matrix.
func colMajor(rows [][]float64) (a []float64, m, n int) {
	m, n = len(rows), len(rows[0])
	a = make([]float64, m*n)
	for i, row := range rows {
		for j, v := range row {
			a[i+j*m] = v
		}
	}
	return
}

// gradient returns 𝐀ᵀ(𝐀𝐱 - 𝐛) and ‖ 𝐀𝐱 - 𝐛 ‖₂.
func gradient(a []float64, m, n int, x, b []float64) (*mat.VecDense, float64) {
	at := mat.NewDense(n, m, append([]float64(nil), a...))
	var r, g mat.VecDense
	r.MulVec(at.T(), mat.NewVecDense(n, append([]float64(nil), x...)))
	r.SubVec(&r, mat.NewVecDense(m, append([]float64(nil), b...)))
	g.MulVec(at, &r)
	return &g, mat.Norm(&r, 2)
}

// assertKKT checks feasibility, stationarity on the support and dual feasibility off the support.
// tol is relative to the magnitude of 𝐀 and 𝐛.
func assertKKT(t *testing.T, a []float64, m, n int, x, b []float64, rnorm, tol float64) {
	t.Helper()

	scale := one
	for _, v := range a {
		scale = math.Max(scale, math.Abs(v))
	}
	bmax := one
	for _, v := range b {
		bmax = math.Max(bmax, math.Abs(v))
	}
	scale *= bmax * float64(m)

	g, res := gradient(a, m, n, x, b)
	assert.InDelta(t, res, rnorm, tol*math.Max(one, res)*100, "residual norm")
	for j := 0; j < n; j++ {
		assert.GreaterOrEqual(t, x[j], -1e-9, "x[%d] negative", j)
		if x[j] > 1e-9 {
			assert.InDelta(t, zero, g.AtVec(j), tol*scale, "gradient on support at %d", j)
		} else {
			assert.GreaterOrEqual(t, g.AtVec(j), -tol*scale, "dual infeasible at %d", j)
		}
	}
}
