// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prompt

import (
	"context"

	"github.com/shayne/infinite/internal/daemon"
	"github.com/shayne/infinite/internal/logger"
	"github.com/shayne/infinite/internal/segment"
	"github.com/shayne/infinite/internal/theme"
)

// Source produces the present segment values of one row side, in order.
type Source interface {
	Segments(ctx context.Context, row int, side theme.Side, specs []segment.Spec) []string
}

type SourceFunc func(ctx context.Context, row int, side theme.Side, specs []segment.Spec) []string

func (f SourceFunc) Segments(ctx context.Context, row int, side theme.Side, specs []segment.Spec) []string {
	return f(ctx, row, side, specs)
}

// LocalSource runs the commands in this process.
type LocalSource struct {
	Options segment.Options
}

func (s LocalSource) Segments(ctx context.Context, _ int, _ theme.Side, specs []segment.Spec) []string {
	return segment.Values(segment.Evaluate(ctx, specs, s.Options))
}

// DaemonSource asks the daemon first and evaluates locally when the daemon
// cannot answer.
type DaemonSource struct {
	Client   daemon.Client
	Dir      string
	Env      []string
	Fallback Source
	Logger   *logger.Logger
}

func (s DaemonSource) Segments(ctx context.Context, row int, side theme.Side, specs []segment.Spec) []string {
	if len(specs) == 0 {
		return []string{}
	}
	req := daemon.Request{
		Row:      row,
		Side:     side,
		Segments: make([][]string, 0, len(specs)),
		Dir:      s.Dir,
		Env:      s.Env,
	}
	for _, spec := range specs {
		req.Segments = append(req.Segments, spec.Command)
	}
	values, err := s.Client.Do(ctx, req)
	if err == nil {
		return values
	}
	s.Logger.WithErr(err).With("row", row).With("side", side.String()).Debug("daemon unavailable, evaluating locally")
	fallback := s.Fallback
	if fallback == nil {
		fallback = LocalSource{Options: segment.Options{Dir: s.Dir, Env: s.Env}}
	}
	return fallback.Segments(ctx, row, side, specs)
}
