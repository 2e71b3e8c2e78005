// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package daemon

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/shayne/infinite/internal/theme"
)

// ProtocolVersion is carried in every payload; peers reject any other value.
const ProtocolVersion = 1

const frameHeaderSize = 8

// MaxFrameSize bounds the request payloads the server reads. Responses are
// read at their advertised length.
const MaxFrameSize = 8 * 1024 * 1024

var (
	ErrFrameTooLarge = errors.New("frame too large")
	ErrMalformed     = errors.New("malformed payload")
	ErrVersion       = errors.New("protocol version mismatch")
)

// Request names the segments to evaluate. With FromTheme set the server
// evaluates Row/Side of the theme it loaded at startup; otherwise it runs
// Segments as given.
type Request struct {
	Version   int        `msgpack:"v"`
	FromTheme bool       `msgpack:"from_theme"`
	Row       int        `msgpack:"row"`
	Side      theme.Side `msgpack:"side"`
	Segments  [][]string `msgpack:"segments"`
	Dir       string     `msgpack:"dir"`
	Env       []string   `msgpack:"env"`
}

type Response struct {
	Version  int      `msgpack:"v"`
	Segments []string `msgpack:"segments"`
}

// WriteFrame writes an 8-byte little-endian length followed by payload.
func WriteFrame(w io.Writer, payload []byte) error {
	buf := make([]byte, frameHeaderSize+len(payload))
	binary.LittleEndian.PutUint64(buf[:frameHeaderSize], uint64(len(payload)))
	copy(buf[frameHeaderSize:], payload)
	_, err := w.Write(buf)
	return err
}

// ReadFrame reads exactly one frame of at most MaxFrameSize bytes. A short
// read is an error.
func ReadFrame(r io.Reader) ([]byte, error) {
	return readFrame(r, MaxFrameSize)
}

// ReadResponseFrame reads one frame and allocates whatever length the peer
// advertises.
func ReadResponseFrame(r io.Reader) ([]byte, error) {
	return readFrame(r, 0)
}

// readFrame reads one frame; limit 0 means no cap.
func readFrame(r io.Reader, limit uint64) ([]byte, error) {
	header := make([]byte, frameHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	length := binary.LittleEndian.Uint64(header)
	if (limit > 0 && length > limit) || length > math.MaxInt {
		return nil, fmt.Errorf("%w: %d", ErrFrameTooLarge, length)
	}
	payload := make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}
	}
	return payload, nil
}

func Encode(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

func DecodeRequest(payload []byte) (Request, error) {
	var req Request
	if err := msgpack.Unmarshal(payload, &req); err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if req.Version != ProtocolVersion {
		return Request{}, fmt.Errorf("%w: got %d, want %d", ErrVersion, req.Version, ProtocolVersion)
	}
	return req, nil
}

func DecodeResponse(payload []byte) (Response, error) {
	var resp Response
	if err := msgpack.Unmarshal(payload, &resp); err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if resp.Version != ProtocolVersion {
		return Response{}, fmt.Errorf("%w: got %d, want %d", ErrVersion, resp.Version, ProtocolVersion)
	}
	if resp.Segments == nil {
		resp.Segments = []string{}
	}
	return resp, nil
}
