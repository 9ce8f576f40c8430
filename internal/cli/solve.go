// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/curioloop/lsq/nnls"
)

// NewSolveCommand creates the solve command.
func NewSolveCommand(rootOpts *RootOptions) *cobra.Command {
	var maxIter int

	cmd := &cobra.Command{
		Use:   "solve <problem-file>",
		Short: "Solve a non-negative least-squares problem",
		Long: `Solve min ‖Ax - b‖₂ subject to x ≥ 0 for the problem described in a YAML or JSON file.

Use "-" to read the problem from stdin. The exit code is 0 when solved,
1 when the iteration limit was exceeded and 2 for unreadable or malformed problems.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(rootOpts, args[0], maxIter, cmd.Flags().Changed("max-iter"), cmd)
		},
	}

	cmd.Flags().IntVar(&maxIter, "max-iter", 0, "cap of feasibility iterations, 0 means 3n (overrides the problem file)")

	return cmd
}

func runSolve(opts *RootOptions, path string, maxIter int, override bool, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format: opts.Format,
		Writer: cmd.OutOrStdout(),
	}
	logger := newLogger(cmd, opts.Verbose)

	p, err := LoadProblem(path, cmd.InOrStdin())
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			return fail(formatter, ExitCommandError, loadErr.Code, loadErr.Message, err)
		}
		return fail(formatter, ExitCommandError, ErrCodeGeneric, err.Error(), err)
	}

	if !override {
		maxIter = p.MaxIterations
	}
	if maxIter < 0 {
		return fail(formatter, ExitCommandError, ErrCodeInvalidProblem, "max-iter must not be negative", nil)
	}

	logger.Debug("problem loaded", "path", path, "rows", len(p.A), "max_iterations", maxIter)

	x, rnorm, err := nnls.SolveRows(p.A, p.B, nnls.WithMaxIterations(maxIter), nnls.WithLogger(logger))
	switch {
	case errors.Is(err, nnls.ErrIterationLimit):
		return fail(formatter, ExitFailure, ErrCodeNotSolved, err.Error(), err)
	case err != nil:
		return fail(formatter, ExitCommandError, ErrCodeInvalidProblem, err.Error(), err)
	}

	return formatter.Solution(SolveResult{
		Mode:  nnls.Solved.String(),
		Rnorm: rnorm,
		X:     x,
	})
}

// fail reports the error through the formatter and returns the matching ExitError.
func fail(f *OutputFormatter, exitCode int, code, message string, err error) error {
	if outErr := f.Error(code, message); outErr != nil {
		return outErr
	}
	exitErr := WrapExitError(exitCode, message, err)
	exitErr.Reported = true
	return exitErr
}
