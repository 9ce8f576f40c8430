// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Problem is the on-disk description of an NNLS problem.
// YAML and JSON are both accepted.
//
//	a:              # row-major m × n matrix, one list per equation
//	  - [1, 0]
//	  - [0, 1]
//	b: [1, -1]      # right-hand side with m elements
//	max_iterations: 0
type Problem struct {
	A             [][]float64 `yaml:"a"`
	B             []float64   `yaml:"b"`
	MaxIterations int         `yaml:"max_iterations"`
}

// LoadError represents a problem file that could not be read or decoded.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadProblem reads a problem from path, "-" reads stdin.
func LoadProblem(path string, stdin io.Reader) (*Problem, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if errors.Is(err, os.ErrNotExist) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("problem file not found: %s", path)}
		}
		if err != nil {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error opening problem file: %v", err)}
		}
		defer f.Close()
		r = f
	}

	var p Problem
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Code: ErrCodeParse, Message: "empty problem"}
		}
		return nil, &LoadError{Code: ErrCodeParse, Message: err.Error()}
	}
	if p.MaxIterations < 0 {
		return nil, &LoadError{Code: ErrCodeInvalidProblem, Message: "max_iterations must not be negative"}
	}
	return &p, nil
}
