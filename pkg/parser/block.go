package parser

import (
	"github.com/Vorschreibung/siml/pkg/event"
	"github.com/Vorschreibung/siml/pkg/lexer"
	"github.com/Vorschreibung/siml/pkg/simlerr"
)

// enterBlock implements the entry half of spec.md §4.6: "KEY: |" (or
// "- |") switches the parser into Block mode for every following line
// until one dedents below the content indent or EOF arrives.
func (p *Parser) enterBlock(lineNo, indent int, ownerKey string, hasKey bool, comment string, align int) {
	p.mode = ModeBlock
	p.block = &blockState{
		ContentIndent: indent + 2,
		StartLine:     lineNo,
	}
	p.enqueue(event.Event{
		Kind:         event.KindBlockScalarStart,
		Key:          keyOrEmpty(ownerKey, hasKey),
		Comment:      comment,
		CommentAlign: align,
		Line:         lineNo,
	})
}

// stepBlock implements the content half of spec.md §4.6.
func (p *Parser) stepBlock(lineNo int, raw []byte, ok bool) {
	if !ok {
		p.terminateBlock(lineNo, nil, false)
		return
	}

	if err := lexer.CheckLine(lineNo, raw, true); err != nil {
		p.latch(err)
		return
	}

	if len(raw) == 0 {
		p.block.PendingBlank = append(p.block.PendingBlank, lineNo)
		return
	}
	if isAllSpaces(raw) {
		p.latch(simlerr.New(simlerr.CodeBlockWhitespaceOnly, lineNo, "block content line must not be whitespace-only"))
		return
	}

	spaces := countLeadingSpaces(raw)
	if spaces < p.block.ContentIndent {
		p.terminateBlock(lineNo, raw, true)
		return
	}

	if len(p.block.PendingBlank) > 0 {
		if !p.block.SeenContent {
			p.latch(simlerr.New(simlerr.CodeBlockLeadingBlank, p.block.PendingBlank[0],
				"block literal must not begin with a blank line"))
			return
		}
		for _, bl := range p.block.PendingBlank {
			p.enqueue(event.Event{Kind: event.KindBlockScalarLine, Line: bl})
		}
		p.block.PendingBlank = nil
	}

	content := raw[p.block.ContentIndent:]
	if len(content) > lexer.MaxBlockLineLen {
		p.latch(simlerr.Newf(simlerr.CodeBlockLineTooLong, lineNo,
			"block content line length %d exceeds maximum of %d bytes", len(content), lexer.MaxBlockLineLen))
		return
	}
	p.block.SeenContent = true
	p.enqueue(event.Event{Kind: event.KindBlockScalarLine, Value: string(content), Line: lineNo})
}

// terminateBlock closes the block literal, whether triggered by a
// dedenting line (stashRaw, hasStash == true, reprocessed by the
// normal machine next) or by EOF (hasStash == false).
func (p *Parser) terminateBlock(lineNo int, stashRaw []byte, hasStash bool) {
	if len(p.block.PendingBlank) > 0 {
		p.latch(simlerr.New(simlerr.CodeBlockTrailingBlank, p.block.PendingBlank[0],
			"block literal must not end with a blank line"))
		return
	}
	if !p.block.SeenContent {
		p.latch(simlerr.New(simlerr.CodeBlockEmpty, p.block.StartLine,
			"block literal must have at least one content line"))
		return
	}

	p.enqueue(event.Event{Kind: event.KindBlockScalarEnd, Line: lineNo})
	p.mode = ModeNormal
	p.block = nil

	if hasStash {
		p.stash = stashRaw
		return
	}
	p.handleEOF(lineNo)
}

func countLeadingSpaces(b []byte) int {
	i := 0
	for i < len(b) && b[i] == ' ' {
		i++
	}
	return i
}

func isAllSpaces(b []byte) bool {
	for _, c := range b {
		if c != ' ' {
			return false
		}
	}
	return true
}
