package parser

import (
	"github.com/Vorschreibung/siml/pkg/event"
	"github.com/Vorschreibung/siml/pkg/lexer"
	"github.com/Vorschreibung/siml/pkg/simlerr"
)

// processNormalLine is the Normal sub-machine's dispatch, spec.md
// §4.4 steps d–m, for one already guard-checked physical line.
func (p *Parser) processNormalLine(lineNo int, raw []byte) {
	indent, rest, err := lexer.Indent(lineNo, raw)
	if err != nil {
		p.latch(err)
		return
	}

	if len(rest) > 0 && rest[0] == '#' {
		p.handleComment(lineNo, indent, rest)
		return
	}

	if lexer.IsSeparatorCandidate(rest) {
		p.handleSeparator(lineNo, indent, rest)
		return
	}

	if p.pendingHeader != nil {
		p.continuePendingHeader(lineNo, indent, rest)
		return
	}

	if !p.inDocument {
		p.handleNewDocument(lineNo, indent, rest)
		return
	}

	top := p.stack[len(p.stack)-1]
	switch {
	case indent > top.Indent:
		p.latch(simlerr.Newf(simlerr.CodeIndentWrong, lineNo,
			"indent %d is deeper than the open container's indent %d", indent, top.Indent))
	case indent < top.Indent:
		idx := p.findFrameIndex(indent)
		if idx < 0 {
			p.latch(simlerr.Newf(simlerr.CodeIndentWrong, lineNo,
				"indent %d does not match any open container", indent))
			return
		}
		p.closeFramesAbove(lineNo, idx)
		p.processStructuralMember(lineNo, indent, rest, p.stack[idx])
	default:
		p.processStructuralMember(lineNo, indent, rest, top)
	}
}

// handleComment implements spec.md §4.4.e. A comment line closes down
// to whatever frame its indent matches (or is tolerated at a pending
// header's child indent without opening anything), then is emitted in
// place; it never itself opens or closes a container.
func (p *Parser) handleComment(lineNo, indent int, rest []byte) {
	text, err := lexer.ParseCommentLine(lineNo, rest)
	if err != nil {
		p.latch(err)
		return
	}

	if p.pendingHeader != nil && indent == p.pendingHeader.ChildIndent {
		p.enqueue(event.Event{Kind: event.KindComment, Comment: string(text), Line: lineNo})
		return
	}

	if !p.inDocument || len(p.stack) == 0 {
		p.latch(simlerr.New(simlerr.CodeCommentIndent, lineNo, "comment appears before any document has started"))
		return
	}

	top := p.stack[len(p.stack)-1]
	switch {
	case indent == top.Indent:
		p.enqueue(event.Event{Kind: event.KindComment, Comment: string(text), Line: lineNo})
	case indent < top.Indent:
		idx := p.findFrameIndex(indent)
		if idx < 0 {
			p.latch(simlerr.New(simlerr.CodeCommentIndent, lineNo, "comment indent does not match any open container"))
			return
		}
		p.closeFramesAbove(lineNo, idx)
		p.enqueue(event.Event{Kind: event.KindComment, Comment: string(text), Line: lineNo})
	default:
		p.latch(simlerr.New(simlerr.CodeCommentIndent, lineNo,
			"comment indent does not match any open container or pending header"))
	}
}

// handleSeparator implements spec.md §4.4.f.
func (p *Parser) handleSeparator(lineNo, indent int, rest []byte) {
	if err := lexer.ValidateSeparator(lineNo, indent, rest); err != nil {
		p.latch(err)
		return
	}
	if !p.inDocument {
		p.latch(simlerr.New(simlerr.CodeSeparatorPosition, lineNo,
			"document separator appears before the first document or after the last one"))
		return
	}
	if p.closePendingHeaderOrAll(lineNo) {
		return
	}
	p.enqueue(event.Event{Kind: event.KindDocumentEnd, Line: lineNo})
	p.inDocument = false
	p.awaitingDocument = true
}

// handleNewDocument implements spec.md §4.4.h.
func (p *Parser) handleNewDocument(lineNo, indent int, rest []byte) {
	if indent != 0 {
		p.latch(simlerr.Newf(simlerr.CodeIndentWrong, lineNo,
			"a document root must start at indent 0, got %d", indent))
		return
	}
	kind := classifyLine(rest)
	if kind == "none" {
		if !p.opts.Strict {
			p.inDocument = true
			p.everSeenDocument = true
			p.awaitingDocument = false
			p.enqueue(event.Event{Kind: event.KindDocumentStart, Line: lineNo})
			p.dispatchValue(lineNo, 0, "", false, rest)
			p.inDocument = false
			p.enqueue(event.Event{Kind: event.KindDocumentEnd, Line: lineNo})
			return
		}
		p.latch(simlerr.New(simlerr.CodeDocScalar, lineNo, "a document root must be a mapping or a sequence, not a scalar"))
		return
	}

	p.inDocument = true
	p.everSeenDocument = true
	p.awaitingDocument = false
	p.enqueue(event.Event{Kind: event.KindDocumentStart, Line: lineNo})

	var frame *Frame
	var ok bool
	if kind == "map" {
		frame, ok = p.pushFrame(lineNo, FrameMap, 0)
		if !ok {
			return
		}
		p.enqueue(event.Event{Kind: event.KindMappingStart, Line: lineNo})
	} else {
		frame, ok = p.pushFrame(lineNo, FrameSeq, 0)
		if !ok {
			return
		}
		p.enqueue(event.Event{Kind: event.KindSequenceStart, SeqStyle: event.SeqStyleBlock, Line: lineNo})
	}
	p.processStructuralMember(lineNo, indent, rest, frame)
}

// continuePendingHeader implements spec.md §4.4.g.
func (p *Parser) continuePendingHeader(lineNo, indent int, rest []byte) {
	ph := p.pendingHeader
	if indent != ph.ChildIndent {
		p.latch(simlerr.Newf(simlerr.CodeIndentWrong, lineNo,
			"expected nested content at indent %d, got %d", ph.ChildIndent, indent))
		return
	}

	kind := classifyLine(rest)
	if kind == "none" {
		code := simlerr.CodeHeaderSeqNoNested
		if ph.HasOwnerKey {
			code = simlerr.CodeHeaderMapNoNested
		}
		p.latch(simlerr.New(code, lineNo, "header-only node requires a nested mapping or sequence"))
		return
	}

	var frame *Frame
	var ok bool
	if kind == "map" {
		frame, ok = p.pushFrame(lineNo, FrameMap, indent)
		if !ok {
			return
		}
		p.enqueue(event.Event{Kind: event.KindMappingStart, Key: ph.keyOrEmpty(), Line: lineNo})
	} else {
		frame, ok = p.pushFrame(lineNo, FrameSeq, indent)
		if !ok {
			return
		}
		p.enqueue(event.Event{Kind: event.KindSequenceStart, SeqStyle: event.SeqStyleBlock, Key: ph.keyOrEmpty(), Line: lineNo})
	}
	p.pendingHeader = nil
	p.processStructuralMember(lineNo, indent, rest, frame)
}

// processStructuralMember implements spec.md §4.4.j/k's kind check:
// a line must match the kind of the frame it is a member of.
func (p *Parser) processStructuralMember(lineNo, indent int, rest []byte, frame *Frame) {
	switch classifyLine(rest) {
	case "none":
		p.latch(simlerr.New(simlerr.CodeFieldSyntax, lineNo,
			"expected a mapping entry (\"key: value\") or a sequence item (\"- value\")"))
	case "map":
		if frame.Kind != FrameMap {
			p.latch(simlerr.New(simlerr.CodeNodeKindMix, lineNo, "mapping entry found inside a sequence"))
			return
		}
		p.processMappingEntry(lineNo, indent, rest, frame)
	case "seq":
		if frame.Kind != FrameSeq {
			p.latch(simlerr.New(simlerr.CodeNodeKindMix, lineNo, "sequence item found inside a mapping"))
			return
		}
		p.processSequenceItem(lineNo, indent, rest, frame)
	}
}

// processMappingEntry implements spec.md §4.4.j.
func (p *Parser) processMappingEntry(lineNo, indent int, rest []byte, frame *Frame) {
	fv, err := lexer.ParseFieldValue(lineNo, rest)
	if err != nil {
		p.latch(err)
		return
	}

	if p.opts.DetectDuplicateKeys {
		key := string(fv.Key)
		if _, seen := frame.SeenKeys[key]; seen {
			p.latch(simlerr.Newf(simlerr.CodeDuplicateKey, lineNo, "duplicate key %q in mapping", key))
			return
		}
		frame.SeenKeys[key] = struct{}{}
	}

	if fv.CommentOnly {
		p.latch(simlerr.New(simlerr.CodeHeaderMapInlineComment, lineNo,
			"a header-only mapping entry must not carry an inline comment"))
		return
	}
	if fv.Header {
		p.pendingHeader = &pendingHeader{ChildIndent: indent + 2, OwnerKey: string(fv.Key), HasOwnerKey: true}
		return
	}
	p.dispatchValue(lineNo, indent, string(fv.Key), true, fv.Value)
}

// processSequenceItem implements spec.md §4.4.k, including the
// "- key: value" shorthand for a list of mappings: when a sequence
// item's inline value itself reads as a mapping entry, it opens an
// anonymous mapping frame and feeds that entry into it directly,
// rather than treating the whole thing as scalar text.
func (p *Parser) processSequenceItem(lineNo, indent int, rest []byte, frame *Frame) {
	sv, err := lexer.ParseSeqItem(lineNo, rest)
	if err != nil {
		p.latch(err)
		return
	}

	if sv.CommentOnly {
		p.latch(simlerr.New(simlerr.CodeHeaderSeqInlineComment, lineNo,
			"a header-only sequence item must not carry an inline comment"))
		return
	}
	if sv.Header {
		p.pendingHeader = &pendingHeader{ChildIndent: indent + 2}
		return
	}

	if lexer.LooksLikeFieldEntry(sv.Value) {
		inner, ok := p.pushFrame(lineNo, FrameMap, indent+2)
		if !ok {
			return
		}
		p.enqueue(event.Event{Kind: event.KindMappingStart, Line: lineNo})
		p.processMappingEntry(lineNo, indent+2, sv.Value, inner)
		return
	}

	p.dispatchValue(lineNo, indent, "", false, sv.Value)
}

// dispatchValue implements spec.md §4.4.l: an inline value is either a
// block-literal header, a flow sequence, or a plain scalar (after its
// optional inline comment is split off).
func (p *Parser) dispatchValue(lineNo, indent int, ownerKey string, hasKey bool, raw []byte) {
	if raw[0] == '[' {
		p.parseFlowInline(lineNo, indent, ownerKey, hasKey, raw)
		return
	}

	parts, err := lexer.SplitInlineValue(lineNo, raw)
	if err != nil {
		p.latch(err)
		return
	}

	if len(parts.Value) == 1 && parts.Value[0] == '|' {
		p.enterBlock(lineNo, indent, ownerKey, hasKey, string(parts.Comment), parts.CommentAlign)
		return
	}
	if len(parts.Value) > 0 && parts.Value[0] == '|' {
		p.latch(simlerr.New(simlerr.CodeFieldSyntax, lineNo, "a block literal header must be exactly \"|\""))
		return
	}

	if err := lexer.ValidateInlineValue(lineNo, parts.Value); err != nil {
		p.latch(err)
		return
	}
	p.enqueue(event.Event{
		Kind:         event.KindScalar,
		Key:          keyOrEmpty(ownerKey, hasKey),
		Value:        string(parts.Value),
		Comment:      string(parts.Comment),
		CommentAlign: parts.CommentAlign,
		Line:         lineNo,
	})
}

// handleEOF implements spec.md §4.4.c.
func (p *Parser) handleEOF(lineNo int) {
	if p.pendingHeader != nil {
		code := simlerr.CodeHeaderSeqNoNested
		if p.pendingHeader.HasOwnerKey {
			code = simlerr.CodeHeaderMapNoNested
		}
		p.latch(simlerr.New(code, lineNo, "header-only node never received its nested mapping or sequence"))
		return
	}
	if p.awaitingDocument {
		p.latch(simlerr.New(simlerr.CodeSeparatorAfterDoc, lineNo, "stream ends with a trailing document separator"))
		return
	}
	if !p.everSeenDocument {
		p.latch(simlerr.New(simlerr.CodeDocScalar, lineNo, "stream contains no document"))
		return
	}
	if p.inDocument {
		p.closeFramesAbove(lineNo, -1)
		p.enqueue(event.Event{Kind: event.KindDocumentEnd, Line: lineNo})
		p.inDocument = false
	}
	p.enqueue(event.Event{Kind: event.KindStreamEnd, Line: lineNo})
	p.done = true
}
