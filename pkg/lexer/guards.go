package lexer

import (
	"bytes"

	"github.com/Vorschreibung/siml/pkg/simlerr"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CheckLine applies the lexical guards of spec.md §4.2 to one physical
// line, in order, short-circuiting on the first violation. lineNo is
// 1-based. inBlockContent must be true only when raw is a content line
// of an active block literal, not its owning "KEY: |" header line:
// block content may contain tabs and blank lines are handled by the
// block sub-parser instead of being rejected outright here.
func CheckLine(lineNo int, raw []byte, inBlockContent bool) *simlerr.Error {
	if len(raw) > MaxLineLen {
		return simlerr.Newf(simlerr.CodeLineTooLong, lineNo,
			"line length %d exceeds maximum of %d bytes", len(raw), MaxLineLen)
	}

	if lineNo == 1 && bytes.HasPrefix(raw, utf8BOM) {
		return simlerr.New(simlerr.CodeUTF8BOM, lineNo, "UTF-8 byte-order mark is not permitted")
	}

	if idx := bytes.IndexByte(raw, '\r'); idx >= 0 {
		if idx == len(raw)-1 {
			return simlerr.New(simlerr.CodeCRLF, lineNo, "CRLF line ending is not permitted, use LF")
		}
		return simlerr.New(simlerr.CodeCR, lineNo, "bare CR byte is not permitted")
	}

	if !inBlockContent {
		if bytes.IndexByte(raw, '\t') >= 0 {
			return simlerr.New(simlerr.CodeTabs, lineNo, "tab characters are not permitted outside block literal content")
		}
		if len(raw) == 0 {
			return simlerr.New(simlerr.CodeBlankLine, lineNo, "blank lines are not permitted outside block literal content")
		}
		if isAllSpaces(raw) {
			return simlerr.New(simlerr.CodeWhitespaceOnly, lineNo, "whitespace-only lines are not permitted outside block literal content")
		}
	}

	return nil
}

func isAllSpaces(b []byte) bool {
	for _, c := range b {
		if c != ' ' {
			return false
		}
	}
	return true
}
