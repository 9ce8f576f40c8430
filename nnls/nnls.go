// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nnls

import (
	"math"
)

// NNLS (Non-Negative Least-Squares) solves 𝚖𝚒𝚗 ‖ 𝐀𝐱 - 𝐛 ‖₂ subject to 𝐱 ≥ 0 with the active-set method.
//   - 𝐀 is m × n column-major matrix stored with leading dimension mda ≥ m
//   - 𝐱 ∈ ℝⁿ
//   - 𝐛 ∈ ℝᵐ
//
// Either m ≥ n or m < n is permitted and there is no restriction on 𝚛𝚊𝚗𝚔(𝐀).
//
// There are two index set ℤ(zero) and ℙ(positive):
//   - 𝐱ⱼ = 0, j ∈ ℤ : variable indexed in ℤ is held at the value zero
//   - 𝐱ⱼ > 0, j ∈ ℙ : variable indexed in ℙ is free to take any positive value
//
// Both sets live in index: ℙ = index[:np] and ℤ = index[np:].
//
// The m × k matrix 𝐀ₖ is the subset columns of 𝐀 defined by ℙ.
// NNLS maintains a QR decomposition 𝐐𝐀ₖ = [𝐑ₖᵀ:O]ᵀ where 𝐑ₖ is k × k upper triangular,
// so the unconstrained solution over ℙ is given by 𝐬 = [𝐑ₖ⁻¹:O]𝐐𝐛
// and the norm of residual is ‖ 𝐐𝐛[k:m] ‖₂.
// Householder transformations triangularize each column entering ℙ,
// Givens rotations repair the triangle when a column leaves ℙ.
//
// # Optimality Conditions
//
// NNLS introduce a dual n-vector 𝐰 = 𝐀ᵀ(𝐛 - 𝐀𝐱) (the negative gradient of ½‖ 𝐀𝐱 - 𝐛 ‖₂²)
// and the Kuhn-Tucker conditions are given by:
//   - 𝐰ⱼ = 0, ∀j ∈ ℙ
//   - 𝐰ⱼ ≤ 0, ∀j ∈ ℤ
//
// While some 𝐰ⱼ > 0 (j ∈ ℤ), relaxing 𝐱ⱼ decreases the objective: the column with the
// largest 𝐰ⱼ is moved into ℙ provided it is numerically independent of 𝐀ₖ and its
// tentative coefficient is positive.
//
// When the new unconstrained solution 𝐬 is infeasible, a step 𝐱 + α(𝐬 - 𝐱) is taken with the
// largest α ∈ (0,1] keeping 𝐱 ≥ 0, and every coefficient driven to zero returns to ℤ.
//
// # Workspace
//
//   - a: on return contains the product 𝐐𝐀.
//   - b: on return contains the product 𝐐𝐛.
//   - x: on return contains the solution vector.
//   - w: on return contains the dual vector.
//   - zz: m-vector working space.
//   - index: n-vector working space, on return its leading entries list ℙ in pivot order.
//   - maxIter: the cap of feasibility iterations, 3n is used when maxIter ≤ 0.
//
// # References
//
//	C.L. Lawson, R.J. Hanson, 'Solving least squares problems' Prentice Hall, 1974. (revised 1995 edition)
//	Chapters 23, Algorithm 23.10.
func NNLS(m, n int, a []float64, mda int, b, x, w, zz []float64, index []int, maxIter int) (rnorm float64, mode Mode) {

	if m <= 0 || n <= 0 || mda < m ||
		len(a) < mda*(n-1)+m || len(b) < m || len(x) < n || len(w) < n || len(zz) < m || len(index) < n {
		return math.NaN(), InvalidDimensions
	}

	if maxIter <= 0 {
		maxIter = 3 * n
	}

	s := activeSet{
		m:       m,
		n:       n,
		mda:     mda,
		a:       a,
		b:       b[:m],
		x:       x[:n],
		w:       w[:n],
		zz:      zz[:m],
		index:   index[:n],
		maxIter: maxIter,
	}
	return s.run()
}

// activeSet holds the state of a single NNLS run.
type activeSet struct {
	m, n, mda int

	a, b, x, w, zz []float64
	index          []int

	np      int // num of elem in ℙ
	iter    int
	maxIter int
}

func (s *activeSet) run() (rnorm float64, mode Mode) {

	// Start from 𝐱 = O with all indices in ℤ.
	for i := range s.index {
		s.index[i] = i
	}
	dzero(s.x)

	mode = Solved

	// Quit when ℤ = ∅ or m columns of 𝐀 have been triangularized.
	for s.np < s.n && s.np < s.m {
		s.dual()
		if !s.activate() {
			break // Kuhn-Tucker conditions satisfied
		}
		if !s.restore() {
			mode = IterationLimit
			break
		}
	}

	if s.np < s.m {
		rnorm = dnrm2(s.m-s.np, s.b[s.np:]) // ‖ 𝐐𝐛[k:m] ‖₂
	} else {
		dzero(s.w)
	}
	return
}

// dual computes 𝐰ⱼ for j ∈ ℤ.
// Since 𝐐𝐛 has already absorbed 𝐀ₖ𝐱 in its leading np rows, 𝐰ⱼ = ∑ 𝐀ᵢⱼ𝐛ᵢ (np ≤ i < m).
func (s *activeSet) dual() {
	np, mda := s.np, s.mda
	for _, j := range s.index[np:] {
		s.w[j] = ddot(s.m-np, s.a[np+j*mda:], s.b[np:])
	}
}

// activate moves the best candidate from ℤ to ℙ.
// It reports false when no 𝐰ⱼ > 0 is left for an acceptable column.
func (s *activeSet) activate() bool {
	const factor = 0.01

	m, np, mda := s.m, s.np, s.mda
	for {
		// Find index t ∈ ℤ such that 𝐰ₜ = 𝚊𝚛𝚐 𝚖𝚊𝚡 { 𝐰ⱼ: j ∈ ℤ }
		wmax, iz := zero, -1
		for i, j := range s.index[np:] {
			if s.w[j] > wmax {
				wmax, iz = s.w[j], np+i
			}
		}
		if iz < 0 {
			return false
		}

		j := s.index[iz]
		aj := s.a[j*mda : j*mda+m : j*mda+m]

		asave := aj[np]
		up := Householder(np, np+1, m, aj, 1, nil, 0, 0, 0)

		// Reject columns whose new diagonal element is negligible against ‖ 𝐀[0:np,j] ‖₂.
		unorm := dnrm2(np, aj)
		if t := unorm + float64(math.Abs(aj[np])*factor); t-unorm > zero {
			copy(s.zz, s.b)
			ApplyHouseholder(np, np+1, m, aj, 1, up, s.zz, 1, 1, 1)
			// Tentative value of 𝐱ⱼ
			if ztest := s.zz[np] / aj[np]; ztest > zero {
				s.enter(iz, up)
				return true
			}
		}

		aj[np] = asave
		s.w[j] = zero
	}
}

// enter moves index[iz] from ℤ to ℙ once its column is accepted.
func (s *activeSet) enter(iz int, up float64) {
	m, mda := s.m, s.mda

	j := s.index[iz]
	aj := s.a[j*mda : j*mda+m : j*mda+m]

	copy(s.b, s.zz)

	s.index[iz] = s.index[s.np]
	s.index[s.np] = j
	s.np++

	// Apply the transformation to the columns left in ℤ.
	for _, jj := range s.index[s.np:] {
		ApplyHouseholder(s.np-1, s.np, m, aj, 1, up, s.a[jj*mda:], 1, mda, 1)
	}

	dzero(aj[s.np:])
	s.w[j] = zero
}

// solve computes 𝐬 = 𝐑ₖ⁻¹𝐳 by back-substitution, leaving 𝐬 in zz[:np].
func (s *activeSet) solve() {
	mda, zz := s.mda, s.zz
	for ip, jj := s.np-1, -1; ip >= 0; ip-- {
		if jj >= 0 {
			daxpy(ip+1, -zz[ip+1], s.a[jj*mda:], zz)
		}
		jj = s.index[ip]
		zz[ip] /= s.a[ip+jj*mda]
	}
}

// restore iterates until the unconstrained solution over ℙ is feasible.
// It reports false when the iteration cap is exceeded.
func (s *activeSet) restore() bool {
	x, zz := s.x, s.zz
	for {
		s.solve()

		if s.iter++; s.iter > s.maxIter {
			return false
		}

		// Find t ∈ ℙ such that 𝐱ₜ/(𝐱ₜ-𝐬ₜ) = 𝚊𝚛𝚐 𝚖𝚒𝚗 { 𝐱ⱼ/(𝐱ⱼ-𝐬ⱼ) : 𝐬ⱼ ≤ 0, j ∈ ℙ }
		alpha, jj := two, -1
		for ip, l := range s.index[:s.np] {
			if zz[ip] <= zero {
				if t := -x[l] / (zz[ip] - x[l]); alpha > t {
					alpha, jj = t, ip
				}
			}
		}

		if jj < 0 {
			for ip, l := range s.index[:s.np] {
				x[l] = zz[ip]
			}
			return true
		}

		// 𝐱 = 𝐱 + α(𝐬 - 𝐱)
		for ip, l := range s.index[:s.np] {
			x[l] += alpha * (zz[ip] - x[l])
		}

		// Move every non-positive coefficient from ℙ to ℤ.
		// Only index[jj] should qualify, others come from round-off.
		for jj >= 0 {
			s.leave(jj)
			jj = -1
			for ip, l := range s.index[:s.np] {
				if x[l] <= zero {
					jj = ip
					break
				}
			}
		}

		copy(zz, s.b)
	}
}

// leave moves index[jj] from ℙ to ℤ and re-triangularizes 𝐑ₖ with Givens rotations.
func (s *activeSet) leave(jj int) {
	mda := s.mda

	i := s.index[jj]
	s.x[i] = zero

	for j := jj + 1; j < s.np; j++ {
		ii := s.index[j]
		s.index[j-1] = ii

		ci := s.a[ii*mda:]
		var c, sn float64
		c, sn, ci[j-1] = Givens(ci[j-1], ci[j])
		ci[j] = zero
		for l := 0; l < s.n; l++ {
			if l != ii {
				cl := s.a[l*mda:]
				cl[j-1], cl[j] = ApplyGivens(c, sn, cl[j-1], cl[j])
			}
		}
		s.b[j-1], s.b[j] = ApplyGivens(c, sn, s.b[j-1], s.b[j])
	}

	s.np--
	s.index[s.np] = i
}
