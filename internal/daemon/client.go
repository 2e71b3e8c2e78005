// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package daemon

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/shayne/infinite/internal/logger"
)

const (
	DefaultDialTimeout = 100 * time.Millisecond
	DefaultTimeout     = 2 * time.Second
)

type Client struct {
	Socket      string
	DialTimeout time.Duration
	// Timeout bounds the whole exchange; zero means DefaultTimeout.
	Timeout time.Duration
	Logger  *logger.Logger
}

// Do sends one request and waits for its response.
func (c Client) Do(ctx context.Context, req Request) ([]string, error) {
	if c.Socket == "" {
		return nil, errors.New("daemon socket path is empty")
	}
	dialTimeout := c.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = DefaultDialTimeout
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "unix", c.Socket)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	deadline := time.Now().Add(timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return nil, err
	}
	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	req.Version = ProtocolVersion
	payload, err := Encode(req)
	if err != nil {
		return nil, err
	}
	if err := WriteFrame(conn, payload); err != nil {
		return nil, err
	}
	reply, err := ReadResponseFrame(conn)
	if err != nil {
		return nil, err
	}
	resp, err := DecodeResponse(reply)
	if err != nil {
		return nil, err
	}
	return resp.Segments, nil
}

// Request is Do with every failure collapsed into an empty result.
func (c Client) Request(ctx context.Context, req Request) []string {
	values, err := c.Do(ctx, req)
	if err != nil {
		log := c.Logger.WithErr(err)
		if errors.Is(err, ErrMalformed) || errors.Is(err, ErrVersion) {
			log.Warn("daemon reply rejected")
		} else {
			log.Debug("daemon unavailable")
		}
		return []string{}
	}
	return values
}

// Ping reports whether a daemon answers on the socket.
func (c Client) Ping(ctx context.Context) bool {
	_, err := c.Do(ctx, Request{})
	return err == nil
}
