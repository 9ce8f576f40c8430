// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nnls

import (
	"io"
	"log/slog"
)

// Option configures a Solver.
type Option func(*options)

type options struct {
	// maximum number of feasibility iterations, 0 means 3n.
	maxIter int
	logger  *slog.Logger
}

func gatherOptions(opts []Option) options {
	o := options{logger: discardLogger}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// WithMaxIterations caps the feasibility iterations of every solve.
// Zero restores the default 3n; negative values panic.
func WithMaxIterations(k int) Option {
	if k < 0 {
		panic("nnls: negative iteration cap")
	}
	return func(o *options) {
		o.maxIter = k
	}
}

// WithLogger sets the logger that receives one record per solve.
// A nil logger discards records.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = discardLogger
		}
		o.logger = l
	}
}
