// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package seq

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/shayne/infinite/internal/color"
)

type OpKind uint8

const (
	OpForeground OpKind = iota
	OpBackground
	OpLiteral
	OpBold
	OpEndBold
	OpEndForeground
	OpEndBackground
	OpReset
)

func (k OpKind) String() string {
	switch k {
	case OpForeground:
		return "fg"
	case OpBackground:
		return "bg"
	case OpLiteral:
		return "literal"
	case OpBold:
		return "bold"
	case OpEndBold:
		return "end-bold"
	case OpEndForeground:
		return "end-fg"
	case OpEndBackground:
		return "end-bg"
	case OpReset:
		return "reset"
	default:
		return fmt.Sprintf("op(%d)", uint8(k))
	}
}

// Op is one styling operation. Color is set for OpForeground and
// OpBackground, Text for OpLiteral.
type Op struct {
	Kind  OpKind
	Color color.Ref
	Text  string
}

// Builder is an append-only list of operations.
type Builder struct {
	ops []Op
}

func New() *Builder {
	return &Builder{}
}

func (b *Builder) add(op Op) *Builder {
	b.ops = append(b.ops, op)
	return b
}

func (b *Builder) Fg(c color.Ref) *Builder { return b.add(Op{Kind: OpForeground, Color: c}) }
func (b *Builder) Bg(c color.Ref) *Builder { return b.add(Op{Kind: OpBackground, Color: c}) }
func (b *Builder) Text(s string) *Builder  { return b.add(Op{Kind: OpLiteral, Text: s}) }
func (b *Builder) Bold() *Builder          { return b.add(Op{Kind: OpBold}) }
func (b *Builder) EndBold() *Builder       { return b.add(Op{Kind: OpEndBold}) }
func (b *Builder) EndFg() *Builder         { return b.add(Op{Kind: OpEndForeground}) }
func (b *Builder) EndBg() *Builder         { return b.add(Op{Kind: OpEndBackground}) }
func (b *Builder) Reset() *Builder         { return b.add(Op{Kind: OpReset}) }

// BoldIf wraps text in Bold/EndBold when bold is set.
func (b *Builder) BoldIf(bold bool, text string) *Builder {
	if !bold {
		return b.Text(text)
	}
	return b.Bold().Text(text).EndBold()
}

// Connect appends the operations of other. Nesting is not re-checked.
func (b *Builder) Connect(other *Builder) *Builder {
	if other == nil {
		return b
	}
	b.ops = append(b.ops, other.ops...)
	return b
}

// Width is the display width of the literal text.
func (b *Builder) Width() int {
	width := 0
	for _, op := range b.ops {
		if op.Kind == OpLiteral {
			width += runewidth.StringWidth(op.Text)
		}
	}
	return width
}

func (b *Builder) String() string {
	return b.Build(Zsh)
}

// Build serializes the operations. Colors behave as stacks: closing one
// resets the attribute and re-applies the enclosing color, if any.
func (b *Builder) Build(d Dialect) string {
	w := writerFor(d)
	var sb strings.Builder
	var fg, bg []color.Ref
	bold := 0
	for _, op := range b.ops {
		switch op.Kind {
		case OpForeground:
			fg = append(fg, op.Color)
			sb.WriteString(w.fg(op.Color))
		case OpBackground:
			bg = append(bg, op.Color)
			sb.WriteString(w.bg(op.Color))
		case OpLiteral:
			sb.WriteString(w.literal(op.Text))
		case OpBold:
			if bold == 0 {
				sb.WriteString(w.bold())
			}
			bold++
		case OpEndBold:
			if bold > 0 {
				bold--
			}
			if bold == 0 {
				sb.WriteString(w.endBold())
			}
		case OpEndForeground:
			if len(fg) > 0 {
				fg = fg[:len(fg)-1]
			}
			sb.WriteString(w.fg(color.Default))
			if len(fg) > 0 && !fg[len(fg)-1].IsDefault() {
				sb.WriteString(w.fg(fg[len(fg)-1]))
			}
		case OpEndBackground:
			if len(bg) > 0 {
				bg = bg[:len(bg)-1]
			}
			sb.WriteString(w.bg(color.Default))
			if len(bg) > 0 && !bg[len(bg)-1].IsDefault() {
				sb.WriteString(w.bg(bg[len(bg)-1]))
			}
		case OpReset:
			fg, bg, bold = fg[:0], bg[:0], 0
			sb.WriteString(w.reset())
		}
	}
	return sb.String()
}
