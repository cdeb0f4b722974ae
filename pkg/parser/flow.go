package parser

import (
	"github.com/Vorschreibung/siml/pkg/event"
	"github.com/Vorschreibung/siml/pkg/lexer"
	"github.com/Vorschreibung/siml/pkg/simlerr"
)

// parseFlowInline implements spec.md §4.5: a flow sequence is always
// fully resolved within the single line that opened it, emitting its
// whole nested event run (sequence-start/scalar/.../sequence-end) in
// one pass. raw[0] == '['.
func (p *Parser) parseFlowInline(lineNo, indent int, ownerKey string, hasKey bool, raw []byte) {
	end, derr := scanFlowRoot(raw)
	if derr != nil {
		p.latch(simlerr.New(derr.code, lineNo, derr.msg))
		return
	}

	bracketContent := raw[:end+1]
	tail := raw[end+1:]

	if idx := indexByte(tail, '['); idx >= 0 {
		p.latch(simlerr.New(simlerr.CodeFlowMultiLine, lineNo,
			"a second bracketed group follows a closed flow sequence; flow sequences may not continue"))
		return
	}

	var comment string
	var align int
	if trimmed := trimLeadingSpaces(tail); len(trimmed) > 0 {
		parts, err := lexer.SplitInlineValue(lineNo, tail)
		if err != nil {
			p.latch(err)
			return
		}
		if len(parts.Value) > 0 {
			p.latch(simlerr.New(simlerr.CodeFlowTrailingChars, lineNo,
				"unexpected characters after a closed flow sequence"))
			return
		}
		comment, align = string(parts.Comment), parts.CommentAlign
	}

	p.enqueue(event.Event{
		Kind:         event.KindSequenceStart,
		SeqStyle:     event.SeqStyleFlow,
		Key:          keyOrEmpty(ownerKey, hasKey),
		Comment:      comment,
		CommentAlign: align,
		Line:         lineNo,
	})
	p.emitFlowElements(lineNo, bracketContent[1:len(bracketContent)-1])
	p.enqueue(event.Event{Kind: event.KindSequenceEnd, Line: lineNo})
}

// emitFlowLevel recurses for a nested "[...]" group; unlike the root
// it carries no key or comment of its own.
func (p *Parser) emitFlowLevel(lineNo int, content []byte) {
	p.enqueue(event.Event{Kind: event.KindSequenceStart, SeqStyle: event.SeqStyleFlow, Line: lineNo})
	p.emitFlowElements(lineNo, content[1:len(content)-1])
	p.enqueue(event.Event{Kind: event.KindSequenceEnd, Line: lineNo})
}

// emitFlowElements walks the content between a validated, balanced
// pair of brackets (already whitespace-checked by scanFlowRoot),
// emitting one scalar or nested sequence per comma-separated element.
func (p *Parser) emitFlowElements(lineNo int, inner []byte) {
	pos := 0
	for pos < len(inner) {
		if inner[pos] == ',' {
			p.latch(simlerr.New(simlerr.CodeFlowEmptyElem, lineNo, "flow sequence has an empty element"))
			return
		}

		if inner[pos] == '[' {
			end := findMatchingBracket(inner, pos)
			if end < 0 {
				p.latch(simlerr.New(simlerr.CodeFlowUnterminatedBracket, lineNo, "nested flow bracket is never closed"))
				return
			}
			p.emitFlowLevel(lineNo, inner[pos:end+1])
			pos = end + 1
		} else {
			start := pos
			for pos < len(inner) && inner[pos] != ',' && inner[pos] != '[' {
				pos++
			}
			atom := inner[start:pos]
			if len(atom) == 0 {
				p.latch(simlerr.New(simlerr.CodeFlowEmptyElem, lineNo, "flow sequence has an empty element"))
				return
			}
			if len(atom) > lexer.MaxFlowAtomLen {
				p.latch(simlerr.Newf(simlerr.CodeFlowAtomTooLong, lineNo,
					"flow element length %d exceeds maximum of %d bytes", len(atom), lexer.MaxFlowAtomLen))
				return
			}
			p.enqueue(event.Event{Kind: event.KindScalar, Value: string(atom), Line: lineNo})
		}

		if pos >= len(inner) {
			return
		}
		if inner[pos] == '[' {
			p.latch(simlerr.New(simlerr.CodeFlowTrailingChars, lineNo, "flow elements must be separated by ','"))
			return
		}
		// inner[pos] == ','
		pos++
		if pos >= len(inner) {
			p.latch(simlerr.New(simlerr.CodeFlowTrailingComma, lineNo, "flow sequence must not end with a trailing ','"))
			return
		}
	}
}

type flowScanError struct {
	code simlerr.Code
	msg  string
}

// scanFlowRoot validates the bracket balance and no-internal-whitespace
// rule of spec.md §4.5 for the outermost "[...]" in raw, and returns
// the index of its matching ']'. It does not interpret comma-separated
// structure; emitFlowElements does that once the shape is confirmed
// sound.
func scanFlowRoot(raw []byte) (int, *flowScanError) {
	depth := 0
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case ' ':
			return 0, &flowScanError{simlerr.CodeFlowWhitespace, "flow sequences must not contain whitespace"}
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	if depth == 1 {
		return 0, &flowScanError{simlerr.CodeFlowUnterminatedLine, "flow sequence is never closed on its line"}
	}
	return 0, &flowScanError{simlerr.CodeFlowUnterminatedBracket, "a nested flow bracket is never closed"}
}

// findMatchingBracket returns the index of the ']' matching the '['
// at inner[start], assuming (as scanFlowRoot already guaranteed for
// the whole value) that the brackets are balanced.
func findMatchingBracket(inner []byte, start int) int {
	depth := 0
	for i := start; i < len(inner); i++ {
		switch inner[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func indexByte(b []byte, c byte) int {
	for i, x := range b {
		if x == c {
			return i
		}
	}
	return -1
}

func trimLeadingSpaces(b []byte) []byte {
	i := 0
	for i < len(b) && b[i] == ' ' {
		i++
	}
	return b[i:]
}
