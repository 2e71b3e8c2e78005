// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package daemon

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shayne/infinite/internal/logger"
	"github.com/shayne/infinite/internal/segment"
	"github.com/shayne/infinite/internal/theme"
)

type Evaluator func(ctx context.Context, specs []segment.Spec, opts segment.Options) []segment.Result

type Options struct {
	Socket   string
	Theme    theme.Theme
	Logger   *logger.Logger
	Evaluate Evaluator
	// Limit bounds concurrent commands per request.
	Limit int
}

// Server owns the listener and the theme it was started with. Connection
// handlers share nothing else.
type Server struct {
	socket   string
	theme    theme.Theme
	log      *logger.Logger
	evaluate Evaluator
	limit    int

	mu       sync.Mutex
	listener net.Listener
	conns    sync.WaitGroup
	nextConn atomic.Uint64
}

func NewServer(opts Options) (*Server, error) {
	if opts.Socket == "" {
		return nil, errors.New("daemon socket path is required")
	}
	evaluate := opts.Evaluate
	if evaluate == nil {
		evaluate = segment.Evaluate
	}
	return &Server{
		socket:   opts.Socket,
		theme:    opts.Theme,
		log:      opts.Logger,
		evaluate: evaluate,
		limit:    opts.Limit,
	}, nil
}

func (s *Server) Socket() string {
	return s.socket
}

// Listen removes a stale socket and binds a new one, readable only by the
// current user.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.socket), 0o700); err != nil {
		return fmt.Errorf("failed to create socket dir: %w", err)
	}
	if err := os.Remove(s.socket); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove stale socket: %w", err)
	}
	listener, err := net.Listen("unix", s.socket)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.socket, err)
	}
	if err := os.Chmod(s.socket, 0o600); err != nil {
		_ = listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}
	s.listener = listener
	return nil
}

// Serve accepts connections until ctx is done. Each connection is handled
// on its own goroutine.
func (s *Server) Serve(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	s.mu.Lock()
	listener := s.listener
	s.mu.Unlock()

	stop := context.AfterFunc(ctx, func() {
		_ = listener.Close()
	})
	defer stop()

	s.log.With("socket", s.socket).Info("daemon listening")
	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				s.conns.Wait()
				return nil
			}
			s.log.Error(err, "accept failed")
			time.Sleep(50 * time.Millisecond)
			continue
		}
		id := s.nextConn.Add(1)
		s.conns.Add(1)
		go func() {
			defer s.conns.Done()
			s.handle(ctx, conn, id)
		}()
	}
}

func (s *Server) handle(ctx context.Context, conn net.Conn, id uint64) {
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	log := s.log.With("conn", id)
	payload, err := ReadFrame(conn)
	if err != nil {
		log.WithErr(err).Warn("read request failed")
		return
	}
	req, err := DecodeRequest(payload)
	if err != nil {
		log.WithErr(err).Warn("decode request failed")
		return
	}
	log = log.WithFields(map[string]any{
		"row":        req.Row,
		"side":       req.Side.String(),
		"from_theme": req.FromTheme,
		"segments":   len(req.Segments),
	})
	out, err := Encode(Response{Version: ProtocolVersion, Segments: s.Resolve(ctx, req)})
	if err != nil {
		log.Error(err, "encode response failed")
		return
	}
	if err := WriteFrame(conn, out); err != nil {
		log.WithErr(err).Warn("write response failed")
		return
	}
	log.Debug("request served")
}

// Resolve evaluates the segments a request names. Nothing is cached.
func (s *Server) Resolve(ctx context.Context, req Request) []string {
	var specs []segment.Spec
	if req.FromTheme {
		if req.Row < 0 || req.Row >= len(s.theme.Rows) {
			return []string{}
		}
		specs = s.theme.Rows[req.Row].Specs(req.Side)
	} else {
		specs = make([]segment.Spec, 0, len(req.Segments))
		for _, argv := range req.Segments {
			specs = append(specs, segment.Spec{Command: argv})
		}
	}
	results := s.evaluate(ctx, specs, segment.Options{Dir: req.Dir, Env: req.Env, Limit: s.limit})
	return segment.Values(results)
}

// Close stops accepting and removes the socket file.
func (s *Server) Close() error {
	s.mu.Lock()
	listener := s.listener
	s.listener = nil
	s.mu.Unlock()
	if listener == nil {
		return nil
	}
	err := listener.Close()
	if errors.Is(err, net.ErrClosed) {
		err = nil
	}
	if rmErr := os.Remove(s.socket); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
		err = rmErr
	}
	return err
}
