// Package cliutil holds the plumbing shared by the three SIML
// command-line drivers: input resolution, the SIML_DEBUG tracer
// wiring, and the shared "FILE or -" convention (spec.md §6.2).
package cliutil

import (
	"io"
	"os"

	"github.com/Vorschreibung/siml/pkg/linesource"
	"github.com/Vorschreibung/siml/pkg/options"
	"github.com/Vorschreibung/siml/pkg/parser"
	"github.com/Vorschreibung/siml/pkg/tracer"
)

// nopCloser satisfies io.Closer for stdin, which callers must never
// close on our behalf.
type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenInput returns a linesource.Reader over path, or over stdin when
// path is "-". Close the returned io.Closer when done; it is a no-op
// for stdin.
func OpenInput(path string) (linesource.Reader, io.Closer, error) {
	if path == "-" {
		return linesource.New(os.Stdin), nopCloser{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return linesource.New(f), f, nil
}

// NewParser builds a parser.Parser reading path, with SIML_DEBUG
// wired into its tracer per spec.md §4.9.
func NewParser(path string, opts ...options.Option) (*parser.Parser, io.Closer, error) {
	src, closer, err := OpenInput(path)
	if err != nil {
		return nil, nil, err
	}
	all := append([]options.Option{options.WithTracer(tracer.FromEnv())}, opts...)
	return parser.New(src, all...), closer, nil
}
