// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nnls

import "math"

// Householder constructs an m×m Householder transformation 𝐐 = 𝐈ₘ + b⁻¹𝐮𝐮ᵀ (b = s𝐮ₚ)
// that maps the pivot vector 𝐯 onto [s 0 ··· 0] over rows {p} ∪ [l, m),
// then applies 𝐐 to ncv vectors of 𝐂 as ApplyHouseholder does.
//
// The index p of the pivot element must satisfy 0 ≤ p < l.
// When l ≥ m the transformation is the identity and up = 0 is returned.
//
// On input, u contains the pivot vector with storage increment iue.
// On output, u contains quantities defining the vector 𝐮 of the transformation:
// u[p] is replaced by s and the pivot component 𝐮ₚ is returned separately.
// A zero pivot vector leaves u untouched and returns up = 0 which makes
// every subsequent application a no-op.
//
// C.L. Lawson, R.J. Hanson, 'Solving least squares problems' Prentice Hall, 1974. (revised 1995 edition)
// Chapters 10.
func Householder(p, l, m int, u []float64, iue int, c []float64, ice, icv, ncv int) (up float64) {
	up = h1(p, l, m, u, iue)
	if ncv > 0 {
		ApplyHouseholder(p, l, m, u, iue, up, c, ice, icv, ncv)
	}
	return
}

func h1(p, l, m int, v []float64, ive int) (up float64) {
	if p < 0 || p >= l || l >= m {
		return
	}
	if ive <= 0 || p*ive >= len(v) || (m-1)*ive >= len(v) {
		panic("bound check error")
	}

	vp := &v[p*ive]

	// cl = max(|vₚ|, |vᵢ|) (l ≤ i < m)
	cl := math.Abs(*vp)
	for i := l * ive; i < m*ive; i += ive {
		cl = math.Max(math.Abs(v[i]), cl)
	}
	if cl <= zero {
		return
	}

	// Compute (vₚ² + ∑vᵢ²)¹ᐟ² with v normalized by cl
	clinv := one / cl
	t := *vp * clinv
	sm := t * t
	for i := l * ive; i < m*ive; i += ive {
		t = v[i] * clinv
		sm += t * t
	}

	// s = -σ(vₚ² + ∑vᵢ²)¹ᐟ² where σ = sgn(vₚ)
	s := cl * math.Sqrt(sm)
	if *vp > zero {
		s = -s
	}
	up = *vp - s // 𝐮ₚ = vₚ - s
	*vp = s
	return
}

// ApplyHouseholder applies the transformation 𝐐𝐜 = 𝐜 + b⁻¹(𝐮ᵀ𝐜)𝐮 previously constructed
// by Householder to ncv vectors of 𝐂.
//
//   - u, iue, up: the transformation as left by Householder.
//   - ice: the storage increment between elements of a vector in c.
//   - icv: the storage increment between vectors in c.
//   - ncv: the number of vectors to transform, nothing is done when ncv ≤ 0.
//
// When b = s𝐮ₚ ≥ 0 the transformation is treated as the identity.
func ApplyHouseholder(p, l, m int, u []float64, iue int, up float64, c []float64, ice, icv, ncv int) {
	if p < 0 || p >= l || l >= m || ncv <= 0 {
		return
	}

	b := u[p*iue] * up // b = s𝐮ₚ
	if b >= zero {
		return
	}
	b = one / b

	if iue <= 0 || (m-1)*iue >= len(u) ||
		ice <= 0 || p*ice+(ncv-1)*icv+(m-1-p)*ice >= len(c) {
		panic("bound check error")
	}

	for j := p * ice; ncv > 0; j, ncv = j+icv, ncv-1 {
		// The pivot element of the current vector is c[j]
		// and its i-th element is c[j+(i-p)·ice].
		base := j - p*ice

		// 𝐮ᵀ𝐜 = 𝐮ₚ𝐜ₚ + ∑𝐮ᵢ𝐜ᵢ (l ≤ i < m)
		sm := c[j] * up
		for i := l; i < m; i++ {
			sm += c[base+i*ice] * u[i*iue]
		}
		if sm == zero {
			continue
		}

		sm *= b // b⁻¹(𝐮ᵀ𝐜)
		c[j] += sm * up
		for i := l; i < m; i++ {
			c[base+i*ice] += sm * u[i*iue]
		}
	}
}
