package codegen

import (
	"fmt"
	"strings"
)

// Stream accumulates generated source text while tracking an indent level
// and whether the cursor sits at the start of a line. Indentation is
// written exactly once per physical line, lazily, so multi-line strings
// passed to WriteString come out indented correctly and empty lines stay
// truly empty.
type Stream struct {
	buf         strings.Builder
	indentLevel int
	atLineStart bool
}

// NewStream returns an empty stream at indent level zero.
func NewStream() *Stream {
	return &Stream{atLineStart: true}
}

// Indent increases the indent level for subsequent lines.
func (s *Stream) Indent() {
	s.indentLevel++
}

// Unindent decreases the indent level. Unbalanced calls are a programming
// error.
func (s *Stream) Unindent() {
	if s.indentLevel == 0 {
		panic("codegen: unindent below zero")
	}
	s.indentLevel--
}

// WriteString appends text, splitting on newlines so each non-empty
// physical line is indented once.
func (s *Stream) WriteString(text string) {
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			s.newline()
		}
		if line == "" {
			continue
		}
		if s.atLineStart {
			s.atLineStart = false
			s.buf.WriteString(strings.Repeat("\t", s.indentLevel))
		}
		s.buf.WriteString(line)
	}
}

// Writef is WriteString with fmt formatting.
func (s *Stream) Writef(format string, args ...any) {
	s.WriteString(fmt.Sprintf(format, args...))
}

// Line writes text followed by a newline.
func (s *Stream) Line(text string) {
	s.WriteString(text)
	s.newline()
}

// Linef is Line with fmt formatting.
func (s *Stream) Linef(format string, args ...any) {
	s.Line(fmt.Sprintf(format, args...))
}

func (s *Stream) newline() {
	s.buf.WriteByte('\n')
	s.atLineStart = true
}

// String returns everything written so far.
func (s *Stream) String() string {
	return s.buf.String()
}
