// Package parser implements the SIML pull parser: Next returns one
// event at a time off a line source, per spec.md §4.
package parser

import (
	"github.com/Vorschreibung/siml/pkg/event"
	"github.com/Vorschreibung/siml/pkg/lexer"
	"github.com/Vorschreibung/siml/pkg/linesource"
	"github.com/Vorschreibung/siml/pkg/options"
	"github.com/Vorschreibung/siml/pkg/simlerr"
)

// Parser is a pull-based, single-pass SIML event source. It holds no
// more state than spec.md §3 requires: a container stack, the current
// sub-machine's state, a small queue of events already derived from
// the line in hand, and the first-error latch.
type Parser struct {
	src  linesource.Reader
	opts *options.Options

	started   bool
	lineCount int
	stash     []byte // a line pulled but not yet consumed, per spec.md §4.6 termination

	inDocument       bool
	everSeenDocument bool
	awaitingDocument bool

	mode          Mode
	stack         []*Frame
	pendingHeader *pendingHeader
	block         *blockState

	queue []event.Event

	errLatched       *simlerr.Error
	errStreamEndSent bool
	done             bool
}

// New builds a Parser reading from src, configured by opts (see
// pkg/options). The zero value of opts is options.DefaultOptions.
func New(src linesource.Reader, opts ...options.Option) *Parser {
	return &Parser{src: src, opts: options.Apply(opts...)}
}

// Next returns the next event in the stream, or ok == false once
// stream-end has been delivered. Every call after the first error
// event returns at most one further event (stream-end), per spec.md
// §4.8's first-error latch.
func (p *Parser) Next() (event.Event, bool) {
	for {
		if len(p.queue) > 0 {
			ev := p.queue[0]
			p.queue = p.queue[1:]
			return ev, true
		}
		if p.done {
			return event.Event{}, false
		}
		p.step()
	}
}

func (p *Parser) trace(line int, mode, msg string) {
	if p.opts.Tracer != nil {
		p.opts.Tracer.Trace(line, mode, msg)
	}
}

// step performs one unit of work — at most one physical line's worth
// of processing — appending zero or more events to the queue. Next
// loops it until the queue is non-empty or the stream is done.
func (p *Parser) step() {
	if !p.started {
		p.started = true
		p.enqueue(event.Event{Kind: event.KindStreamStart})
		return
	}

	if p.errLatched != nil {
		if !p.errStreamEndSent {
			p.errStreamEndSent = true
			p.enqueue(event.Event{Kind: event.KindStreamEnd})
		}
		p.done = true
		return
	}

	raw, ok, ioErr := p.pullOrStash()
	if ioErr != nil {
		p.latch(simlerr.New(simlerr.CodeIO, p.lineCount+1, ioErr.Error()))
		return
	}

	lineNo := p.lineCount
	if !ok {
		lineNo = p.lineCount + 1
	}

	if p.mode == ModeBlock {
		p.stepBlock(lineNo, raw, ok)
		if p.mode != ModeBlock {
			p.trace(lineNo, "normal", "block literal ended")
		}
		return
	}

	if !ok {
		p.handleEOF(lineNo)
		return
	}
	if err := lexer.CheckLine(lineNo, raw, false); err != nil {
		p.latch(err)
		return
	}
	p.processNormalLine(lineNo, raw)
	if p.mode == ModeBlock {
		p.trace(lineNo, "block", "block literal started")
	}
}

// pullOrStash returns a previously-stashed line (spec.md §4.6: a block
// terminator line "is not consumed" by the block machine, and is
// reprocessed by the normal machine on the very next step) before
// pulling a fresh one from src.
func (p *Parser) pullOrStash() ([]byte, bool, error) {
	if p.stash != nil {
		raw := p.stash
		p.stash = nil
		return raw, true, nil
	}
	raw, ok, err := p.src.Next()
	if err != nil {
		return nil, false, err
	}
	if ok {
		p.lineCount++
	}
	return raw, ok, nil
}

// enqueue appends ev to the queue. Once an error is latched, only the
// error event itself and the closing stream-end are accepted, so work
// still in progress on the erroring line emits nothing further.
func (p *Parser) enqueue(ev event.Event) {
	if p.errLatched != nil && ev.Kind != event.KindError && ev.Kind != event.KindStreamEnd {
		return
	}
	p.queue = append(p.queue, ev)
}

// latch records the first error and queues it as an error event, after
// any events already derived from the same line. Subsequent calls are
// no-ops: the latch never overwrites an earlier error.
func (p *Parser) latch(err *simlerr.Error) {
	if p.errLatched != nil {
		return
	}
	p.errLatched = err
	p.enqueue(event.Event{Kind: event.KindError, Err: err, Line: err.Line})
}

// pushFrame opens a new container frame, enforcing Options.MaxDepth
// (spec.md §3's nesting bound). On failure it latches
// CODE_NEST_TOO_DEEP itself and returns ok == false.
func (p *Parser) pushFrame(lineNo int, kind FrameKind, indent int) (*Frame, bool) {
	if len(p.stack) >= p.opts.MaxDepth {
		p.latch(simlerr.Newf(simlerr.CodeNestTooDeep, lineNo,
			"nesting depth exceeds the maximum of %d", p.opts.MaxDepth))
		return nil, false
	}
	f := &Frame{Kind: kind, Indent: indent}
	if kind == FrameMap {
		f.SeenKeys = make(map[string]struct{})
	}
	p.stack = append(p.stack, f)
	return f, true
}

// closeFramesAbove pops frames until len(stack)-1 == targetIdx,
// emitting the matching container-end event for each. targetIdx == -1
// closes every open frame.
func (p *Parser) closeFramesAbove(lineNo, targetIdx int) {
	for len(p.stack)-1 > targetIdx {
		top := p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1]
		kind := event.KindMappingEnd
		if top.Kind == FrameSeq {
			kind = event.KindSequenceEnd
		}
		p.enqueue(event.Event{Kind: kind, Line: lineNo})
	}
}

// findFrameIndex returns the stack index of the frame whose indent
// equals indent, or -1. Invariant 2 (spec.md §3) guarantees indents
// strictly increase from root to innermost, so there is at most one
// match.
func (p *Parser) findFrameIndex(indent int) int {
	for i, f := range p.stack {
		if f.Indent == indent {
			return i
		}
	}
	return -1
}

// closePendingHeaderOrAll is the shared closing operation used by both
// EOF (spec.md §4.4.c) and a document separator (§4.4.f): a dangling
// header-only node with no nested container is always an error,
// regardless of what triggered the close.
func (p *Parser) closePendingHeaderOrAll(lineNo int) (latched bool) {
	if p.pendingHeader != nil {
		code := simlerr.CodeHeaderSeqNoNested
		if p.pendingHeader.HasOwnerKey {
			code = simlerr.CodeHeaderMapNoNested
		}
		p.latch(simlerr.New(code, lineNo, "header-only node never received its nested mapping or sequence"))
		return true
	}
	p.closeFramesAbove(lineNo, -1)
	return false
}

// classifyLine reports whether rest structurally reads as a mapping
// entry ("map"), a sequence item ("seq"), or neither ("none"),
// without validating its grammar beyond the leading shape.
func classifyLine(rest []byte) string {
	if len(rest) > 0 && rest[0] == '-' && (len(rest) == 1 || rest[1] == ' ') {
		return "seq"
	}
	if lexer.LooksLikeFieldEntry(rest) {
		return "map"
	}
	return "none"
}

func keyOrEmpty(key string, hasKey bool) string {
	if hasKey {
		return key
	}
	return ""
}
