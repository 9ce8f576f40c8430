// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nnls solves dense non-negative least-squares problems
//
//	𝚖𝚒𝚗 ‖ 𝐀𝐱 - 𝐛 ‖₂ subject to 𝐱 ≥ 0
//
// with the active-set algorithm of Lawson and Hanson.
//
// NNLS is the engine working in place on caller supplied storage.
// Solver wraps it with a persistent workspace for repeated solves against the same
// or a reshaped matrix, and SolveRows covers the one-shot row-major case.
// Householder and Givens expose the orthogonal transformations the engine is built on.
//
// Matrices are dense and column-major: element (i, j) of an m × n matrix is a[i+j*m].
package nnls
