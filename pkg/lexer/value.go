package lexer

import "github.com/Vorschreibung/siml/pkg/simlerr"

// InlineParts is the result of splitting an inline value from its
// optional trailing "  # comment".
type InlineParts struct {
	Value        []byte
	Comment      []byte
	CommentAlign int
}

// SplitInlineValue scans v (everything after "KEY: " or "- ") for a
// '#' that is immediately preceded by a space, per spec.md §4.4.m. If
// found, it validates the comment's spacing/length and returns the
// value trimmed of the spaces that introduced the comment. If not
// found, the value is simply trimmed of trailing spaces (invariant 6).
func SplitInlineValue(lineNo int, v []byte) (InlineParts, *simlerr.Error) {
	idx := -1
	for i := 1; i < len(v); i++ {
		if v[i] == '#' && v[i-1] == ' ' {
			idx = i
			break
		}
	}

	if idx < 0 {
		return InlineParts{Value: trimTrailingSpaces(v)}, nil
	}

	j := idx - 1
	for j >= 0 && v[j] == ' ' {
		j--
	}
	align := idx - 1 - j
	if align < 1 || align > 255 {
		return InlineParts{}, simlerr.Newf(simlerr.CodeInlineCommentAlign, lineNo,
			"inline comment alignment of %d spaces is out of range 1..255", align)
	}

	rest := v[idx+1:]
	if len(rest) == 0 || rest[0] != ' ' {
		return InlineParts{}, simlerr.New(simlerr.CodeInlineCommentSpace, lineNo,
			"inline comment must have exactly one space after '#'")
	}
	if len(rest) > 1 && rest[1] == ' ' {
		return InlineParts{}, simlerr.New(simlerr.CodeInlineCommentSpace, lineNo,
			"inline comment must have exactly one space after '#'")
	}
	text := rest[1:]
	if len(text) == 0 {
		return InlineParts{}, simlerr.New(simlerr.CodeEmptyComment, lineNo, "inline comment text must not be empty")
	}
	if len(text) > MaxInlineCommentLen {
		return InlineParts{}, simlerr.Newf(simlerr.CodeInlineCommentTooLong, lineNo,
			"inline comment length %d exceeds maximum of %d bytes", len(text), MaxInlineCommentLen)
	}

	return InlineParts{Value: v[:j+1], Comment: text, CommentAlign: align}, nil
}

func trimTrailingSpaces(b []byte) []byte {
	i := len(b)
	for i > 0 && b[i-1] == ' ' {
		i--
	}
	return b[:i]
}

// ValidateInlineValue checks a non-header scalar/flow/block value atom
// for emptiness and length, independent of any inline comment.
func ValidateInlineValue(lineNo int, v []byte) *simlerr.Error {
	if len(v) == 0 {
		return simlerr.New(simlerr.CodeInlineValueEmpty, lineNo, "inline value must not be empty")
	}
	if len(v) > MaxInlineValueLen {
		return simlerr.Newf(simlerr.CodeInlineValueTooLong, lineNo,
			"inline value length %d exceeds maximum of %d bytes", len(v), MaxInlineValueLen)
	}
	return nil
}
