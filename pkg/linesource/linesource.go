// Package linesource implements the pull-based line contract the SIML
// parser is built on: one physical line at a time, memory stable until
// the next pull, no trailing newline.
package linesource

import (
	"bufio"
	"bytes"
	"io"
)

// Reader is the contract the parser consumes. Next returns the next
// physical line with its terminator stripped, or ok == false at end of
// stream, or a non-nil error on I/O failure. The returned slice is
// only guaranteed valid until the next call to Next.
//
// Unlike a plain bufio.Scanner split on '\n', Next does not normalize
// line endings: a line ending in "\r\n" is returned with the trailing
// '\r' still attached, so the lexical guards (pkg/lexer) can tell CRLF
// apart from a lone CR and report CODE_CRLF / CODE_CR precisely.
type Reader interface {
	Next() (line []byte, ok bool, err error)
}

// reader is the concrete, bufio-backed implementation used by every
// driver; callers needing something else (e.g. an in-memory slice of
// pre-split lines for tests) can implement Reader directly.
type reader struct {
	br   *bufio.Reader
	line []byte
	eof  bool
}

// New wraps an io.Reader as a Reader. The underlying bufio.Reader has
// no fixed line-length cap of its own; pkg/lexer enforces the
// spec's 4608-byte line limit once a line is in hand.
func New(r io.Reader) Reader {
	return &reader{br: bufio.NewReaderSize(r, 4096)}
}

func (s *reader) Next() ([]byte, bool, error) {
	if s.eof {
		return nil, false, nil
	}

	line, err := s.br.ReadBytes('\n')
	if err != nil {
		if err != io.EOF {
			return nil, false, err
		}
		s.eof = true
		if len(line) == 0 {
			return nil, false, nil
		}
		// Last line with no trailing newline: return as-is.
		s.line = line
		return s.line, true, nil
	}

	s.line = bytes.TrimSuffix(line, []byte{'\n'})
	return s.line, true, nil
}

// FromLines adapts a pre-split slice of lines (already free of
// terminators) into a Reader. Used by tests and by drivers that have
// already buffered their whole input.
func FromLines(lines []string) Reader {
	return &sliceReader{lines: lines}
}

type sliceReader struct {
	lines []string
	pos   int
}

func (s *sliceReader) Next() ([]byte, bool, error) {
	if s.pos >= len(s.lines) {
		return nil, false, nil
	}
	l := s.lines[s.pos]
	s.pos++
	return []byte(l), true, nil
}
