// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package segment

import (
	"context"
	"os/exec"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Spec is one prompt segment: an argv run once per render.
type Spec struct {
	Command []string `toml:"command" validate:"min=1,argv"`
}

func Shell(script string) Spec {
	return Spec{Command: []string{"sh", "-c", script}}
}

func (s Spec) String() string {
	return strings.Join(s.Command, " ")
}

type Result struct {
	Value string
	OK    bool
}

type Options struct {
	// Dir and Env default to the current process when empty.
	Dir   string
	Env   []string
	Limit int
}

func DefaultLimit() int {
	return runtime.NumCPU() * 2
}

// Evaluate runs every spec concurrently and returns results in spec order.
// A spawn failure, non-zero exit or blank output leaves the result empty.
func Evaluate(ctx context.Context, specs []Spec, opts Options) []Result {
	results := make([]Result, len(specs))
	if len(specs) == 0 {
		return results
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit()
	}
	var g errgroup.Group
	g.SetLimit(limit)
	for i, spec := range specs {
		g.Go(func() error {
			results[i] = run(ctx, spec, opts)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func run(ctx context.Context, spec Spec, opts Options) Result {
	if len(spec.Command) == 0 || strings.TrimSpace(spec.Command[0]) == "" {
		return Result{}
	}
	cmd := exec.CommandContext(ctx, spec.Command[0], spec.Command[1:]...)
	cmd.Dir = opts.Dir
	if len(opts.Env) > 0 {
		cmd.Env = opts.Env
	}
	out, err := cmd.Output()
	if err != nil {
		return Result{}
	}
	value := strings.TrimSpace(string(out))
	if value == "" {
		return Result{}
	}
	return Result{Value: value, OK: true}
}

// Values keeps the present results in order.
func Values(results []Result) []string {
	values := make([]string, 0, len(results))
	for _, result := range results {
		if result.OK {
			values = append(values, result.Value)
		}
	}
	return values
}
