package lexer

import "github.com/Vorschreibung/siml/pkg/simlerr"

// ParseCommentLine validates a full-line comment's text: rest must be
// "#" followed by exactly one space and 1..MaxCommentLen bytes of
// non-empty text with no trailing spaces.
func ParseCommentLine(lineNo int, rest []byte) (text []byte, err *simlerr.Error) {
	body := rest[1:] // caller has already confirmed rest[0] == '#'
	if len(body) == 0 || body[0] != ' ' {
		return nil, simlerr.New(simlerr.CodeEmptyComment, lineNo, "comment must have exactly one space after '#'")
	}
	if len(body) > 1 && body[1] == ' ' {
		return nil, simlerr.New(simlerr.CodeEmptyComment, lineNo, "comment must have exactly one space after '#'")
	}
	text = body[1:]
	if len(text) == 0 {
		return nil, simlerr.New(simlerr.CodeEmptyComment, lineNo, "comment text must not be empty")
	}
	if text[len(text)-1] == ' ' {
		return nil, simlerr.New(simlerr.CodeEmptyComment, lineNo, "comment text must not have trailing spaces")
	}
	if len(text) > MaxCommentLen {
		return nil, simlerr.Newf(simlerr.CodeCommentTooLong, lineNo,
			"comment length %d exceeds maximum of %d bytes", len(text), MaxCommentLen)
	}
	return text, nil
}
