// Package emit reconstructs SIML source text from an event stream,
// the mirror image of pkg/parser. It is what cmd/simlfmt uses for
// round-tripping.
package emit

import (
	"bytes"
	"fmt"
	"io"

	"github.com/Vorschreibung/siml/pkg/event"
)

// Options configures rendering, mirroring the teacher serializer's
// Options/DefaultOptions split.
type Options struct {
	// Indent is the number of spaces per nesting level. spec.md fixes
	// this at 2; Options exists so tooling built on this package can
	// still choose to render wider for display purposes.
	Indent int
}

// DefaultOptions returns spec-conforming 2-space indentation.
func DefaultOptions() *Options {
	return &Options{Indent: 2}
}

// frameKind mirrors parser.FrameKind without importing it, so this
// package stays decoupled from parser internals.
type frameKind int

const (
	frameMap frameKind = iota
	frameSeq
)

// frame tracks one open container. pendingDash is set on a mapping
// frame opened by the "- key: value" shorthand (spec.md §4.4.k): its
// first entry line is rendered with a "- " prefix at the parent's
// indent instead of a separate "-" header line, folding the sequence
// item's dash and the mapping's first entry onto one line.
type frame struct {
	kind        frameKind
	indent      int
	pendingDash bool
}

// flowLevel buffers one nesting level of an in-progress flow sequence
// until its matching sequence-end arrives.
type flowLevel struct {
	buf   bytes.Buffer
	count int
}

// Emitter consumes events (pkg/event) in the same order Parser.Next
// produces them and writes the equivalent SIML text.
type Emitter struct {
	w    io.Writer
	opts *Options

	stack       []*frame
	flowStack   []*flowLevel
	sawDocument bool
	err         error
}

// New builds an Emitter writing to w.
func New(w io.Writer, opts *Options) *Emitter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Emitter{w: w, opts: opts}
}

// Emit drains every event from next (as returned by Parser.Next) and
// writes the reconstructed source. It stops writing at the first error
// event or I/O failure, but keeps draining next() to completion.
func (e *Emitter) Emit(next func() (event.Event, bool)) error {
	for {
		ev, ok := next()
		if !ok {
			return e.err
		}
		if e.err != nil {
			continue
		}
		e.handle(ev)
	}
}

func (e *Emitter) handle(ev event.Event) {
	switch ev.Kind {
	case event.KindDocumentStart:
		if e.sawDocument {
			e.writeRaw("---\n")
		}
		e.sawDocument = true
	case event.KindDocumentEnd:
		// Nothing to write: the separator before a following document
		// is emitted lazily on the next KindDocumentStart, and no
		// trailing "---" follows the stream's final document.
	case event.KindMappingStart:
		owner := e.ownerKind()
		f := &frame{kind: frameMap, indent: e.pushIndent(owner)}
		if owner == ownerSeqItem && ev.Key == "" {
			f.pendingDash = true
		} else {
			e.writeOpener(owner, ev.Key)
		}
		e.stack = append(e.stack, f)
	case event.KindSequenceStart:
		if ev.SeqStyle == event.SeqStyleFlow {
			e.flowStack = append(e.flowStack, &flowLevel{})
			if len(e.flowStack) == 1 {
				e.writeFlowOpener(ev)
			}
			return
		}
		owner := e.ownerKind()
		e.writeOpener(owner, ev.Key)
		e.stack = append(e.stack, &frame{kind: frameSeq, indent: e.pushIndent(owner)})
	case event.KindMappingEnd, event.KindSequenceEnd:
		if ev.Kind == event.KindSequenceEnd && e.topIsFlow() {
			e.closeFlowLevel(ev)
			return
		}
		if len(e.stack) > 0 {
			e.stack = e.stack[:len(e.stack)-1]
		}
	case event.KindScalar:
		if e.topIsFlow() {
			e.flowElem(ev.Value)
			return
		}
		e.writeEntry(ev.Key, ev.Value, ev.Comment, ev.CommentAlign)
	case event.KindBlockScalarStart:
		owner := e.ownerKind()
		e.writeEntry(ev.Key, "|", ev.Comment, ev.CommentAlign)
		e.stack = append(e.stack, &frame{kind: frameMap, indent: e.pushIndent(owner)})
	case event.KindBlockScalarLine:
		if ev.Value == "" {
			e.writeRaw("\n")
		} else {
			e.writeLine(e.topIndent(), ev.Value)
		}
	case event.KindBlockScalarEnd:
		if len(e.stack) > 0 {
			e.stack = e.stack[:len(e.stack)-1]
		}
	case event.KindComment:
		e.writeLine(e.topIndent(), "# "+ev.Comment)
	case event.KindError:
		e.err = ev.Err
	}
}

// topIsFlow reports whether a flow sequence is currently being
// buffered; flow never interleaves with block-style events at the
// same nesting level, so any open flowStack belongs to this end.
func (e *Emitter) topIsFlow() bool { return len(e.flowStack) > 0 }

func (e *Emitter) flowElem(text string) {
	top := e.flowStack[len(e.flowStack)-1]
	if top.count > 0 {
		top.buf.WriteByte(',')
	}
	top.buf.WriteString(text)
	top.count++
}

func (e *Emitter) closeFlowLevel(ev event.Event) {
	level := e.flowStack[len(e.flowStack)-1]
	e.flowStack = e.flowStack[:len(e.flowStack)-1]
	rendered := "[" + level.buf.String() + "]"
	if len(e.flowStack) > 0 {
		e.flowElem(rendered)
		return
	}
	e.writeRaw(rendered)
	if ev.Comment != "" {
		e.writeRaw(fmt.Sprintf("%*s# %s", ev.CommentAlign, "", ev.Comment))
	}
	e.writeRaw("\n")
}

func (e *Emitter) writeFlowOpener(ev event.Event) {
	indent, prefix := e.linePrefix(e.ownerKind(), ev.Key)
	e.writeRaw(spaces(indent) + prefix)
}

// writeOpener writes a header-only line: "key:" for a mapping owner,
// "-" for a sequence-item owner, nothing for the document root.
func (e *Emitter) writeOpener(owner ownerKindT, key string) {
	switch owner {
	case ownerRoot:
		return
	case ownerKeyT:
		e.writeLine(e.topIndent(), key+":")
	case ownerSeqItem:
		e.writeLine(e.topIndent(), "-")
	}
}

// writeEntry writes one "key: value" / "- value" / "value" line,
// consuming a pending dash if the current frame owes one.
func (e *Emitter) writeEntry(key, value, comment string, align int) {
	indent, prefix := e.linePrefix(e.ownerKind(), key)
	line := prefix + value
	if comment != "" {
		line += fmt.Sprintf("%*s# %s", align, "", comment)
	}
	e.writeLine(indent, line)
}

func (e *Emitter) frameOwnerKind(f *frame) ownerKindT {
	if f.kind == frameMap {
		return ownerKeyT
	}
	return ownerSeqItem
}

// linePrefix computes the indent and textual prefix ("key: ", "- ",
// or "") for a line belonging to the current top frame, consuming
// (and clearing) a pending dash if one is owed.
func (e *Emitter) linePrefix(owner ownerKindT, key string) (int, string) {
	if len(e.stack) > 0 {
		top := e.stack[len(e.stack)-1]
		if top.pendingDash {
			top.pendingDash = false
			indent := top.indent - e.opts.Indent
			if owner == ownerKeyT {
				return indent, "- " + key + ": "
			}
			return indent, "- "
		}
	}
	indent := e.topIndent()
	switch owner {
	case ownerKeyT:
		return indent, key + ": "
	case ownerSeqItem:
		return indent, "- "
	default:
		return indent, ""
	}
}

type ownerKindT int

const (
	ownerRoot ownerKindT = iota
	ownerKeyT
	ownerSeqItem
)

func (e *Emitter) ownerKind() ownerKindT {
	if len(e.stack) == 0 {
		return ownerRoot
	}
	return e.frameOwnerKind(e.stack[len(e.stack)-1])
}

// topIndent is the indent of the innermost open frame: where an entry
// belonging to that frame is written.
func (e *Emitter) topIndent() int {
	if len(e.stack) == 0 {
		return 0
	}
	return e.stack[len(e.stack)-1].indent
}

// childIndent is the indent a newly-pushed frame takes: topIndent plus
// Options.Indent.
func (e *Emitter) childIndent() int {
	return e.topIndent() + e.opts.Indent
}

// pushIndent is the indent a newly-pushed container frame takes: 0 for
// the document root (mirroring pkg/parser/normal.go's
// pushFrame(lineNo, FrameMap, 0) for a root mapping/sequence), and
// childIndent() for anything nested inside an existing frame.
func (e *Emitter) pushIndent(owner ownerKindT) int {
	if owner == ownerRoot {
		return 0
	}
	return e.childIndent()
}

func (e *Emitter) writeLine(indent int, text string) {
	e.writeRaw(spaces(indent) + text + "\n")
}

func (e *Emitter) writeRaw(s string) {
	if e.err != nil {
		return
	}
	if _, err := io.WriteString(e.w, s); err != nil {
		e.err = err
	}
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
