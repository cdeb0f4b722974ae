package lexer

import "github.com/Vorschreibung/siml/pkg/simlerr"

// FieldValue is the result of parsing a mapping-entry line's "KEY:"
// prefix, per spec.md §4.4.j.
type FieldValue struct {
	Key []byte

	// Header is true when the colon has no inline value: either the
	// line ends right after it, or it is followed only by a comment
	// (CommentOnly distinguishes the two).
	Header bool

	// CommentOnly is true when a header-only entry's colon is followed
	// by "  # ..." instead of end-of-line — forbidden by spec.md §4.4.m,
	// latched by the caller as CODE_HEADER_MAP_INLINE_COMMENT /
	// CODE_HEADER_SEQ_INLINE_COMMENT.
	CommentOnly bool

	// Value holds everything after "KEY: " when !Header && !CommentOnly.
	// It has not yet been split for an inline comment.
	Value []byte
}

// LooksLikeFieldEntry reports whether rest begins with a syntactically
// valid key atom immediately followed by ':' and then either
// end-of-line or a single space. It does not validate the key's
// grammar beyond character class, and it does not distinguish
// header-only from header-with-forbidden-comment — it exists purely
// so callers (sequence-item inline dispatch) can tell a mapping entry
// apart from a plain scalar before committing to ParseFieldValue.
func LooksLikeFieldEntry(rest []byte) bool {
	n := ScanKey(rest)
	if n == 0 || n >= len(rest) || rest[n] != ':' {
		return false
	}
	if n+1 == len(rest) {
		return true
	}
	return rest[n+1] == ' '
}

// ParseFieldValue parses a mapping-entry line's "KEY:" prefix and
// whatever follows it, per spec.md §4.4.j/m. rest must already have
// been determined not to be a comment or a document separator.
func ParseFieldValue(lineNo int, rest []byte) (FieldValue, *simlerr.Error) {
	n := ScanKey(rest)
	if n == 0 {
		return FieldValue{}, simlerr.New(simlerr.CodeFieldSyntax, lineNo, "expected a key before ':'")
	}
	if n >= len(rest) || rest[n] != ':' {
		return FieldValue{}, simlerr.New(simlerr.CodeFieldSyntax, lineNo, "expected ':' after key")
	}
	key := rest[:n]
	if err := ValidateKey(lineNo, key); err != nil {
		return FieldValue{}, err
	}

	after := rest[n+1:]
	if len(after) == 0 {
		return FieldValue{Key: key, Header: true}, nil
	}
	sp := 0
	for sp < len(after) && after[sp] == ' ' {
		sp++
	}
	if sp > 0 && sp < len(after) && after[sp] == '#' {
		return FieldValue{Key: key, Header: true, CommentOnly: true}, nil
	}
	if after[0] != ' ' || (len(after) > 1 && after[1] == ' ') {
		return FieldValue{}, simlerr.New(simlerr.CodeFieldSyntax, lineNo,
			"colon must be followed by exactly one space then a value, or by end of line")
	}
	val := after[1:]
	if len(val) == 0 {
		return FieldValue{}, simlerr.New(simlerr.CodeFieldSyntax, lineNo,
			"colon followed by a space must be followed by a non-space value")
	}
	if val[0] == '#' {
		return FieldValue{Key: key, Header: true, CommentOnly: true}, nil
	}
	return FieldValue{Key: key, Value: val}, nil
}

// SeqValue is the result of parsing a sequence-item line's "-" prefix,
// the sequence-item mirror of FieldValue.
type SeqValue struct {
	Header      bool
	CommentOnly bool
	Value       []byte
}

// ParseSeqItem parses a sequence-item line. rest[0] must be '-',
// already confirmed by the caller's classification.
func ParseSeqItem(lineNo int, rest []byte) (SeqValue, *simlerr.Error) {
	after := rest[1:]
	if len(after) == 0 {
		return SeqValue{Header: true}, nil
	}
	sp := 0
	for sp < len(after) && after[sp] == ' ' {
		sp++
	}
	if sp > 0 && sp < len(after) && after[sp] == '#' {
		return SeqValue{Header: true, CommentOnly: true}, nil
	}
	if after[0] != ' ' || (len(after) > 1 && after[1] == ' ') {
		return SeqValue{}, simlerr.New(simlerr.CodeFieldSyntax, lineNo,
			"'-' must be followed by exactly one space then a value, or by end of line")
	}
	val := after[1:]
	if len(val) == 0 {
		return SeqValue{}, simlerr.New(simlerr.CodeFieldSyntax, lineNo,
			"'-' followed by a space must be followed by a non-space value")
	}
	if val[0] == '#' {
		return SeqValue{Header: true, CommentOnly: true}, nil
	}
	return SeqValue{Value: val}, nil
}
