package lexer

import "github.com/Vorschreibung/siml/pkg/simlerr"

// Indent computes the leading-space indent of a guard-clean line and
// returns it along with the remainder of the line (the part after the
// leading spaces). The indent must be even; an odd indent is
// CODE_INDENT_MULTIPLE.
func Indent(lineNo int, line []byte) (indent int, rest []byte, err *simlerr.Error) {
	i := 0
	for i < len(line) && line[i] == ' ' {
		i++
	}
	if i%2 != 0 {
		return 0, nil, simlerr.Newf(simlerr.CodeIndentMultiple, lineNo,
			"indent of %d spaces is not a multiple of 2", i)
	}
	return i, line[i:], nil
}

func isAlpha(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '_'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isKeyChar matches the body alphabet of a key atom:
// [A-Za-z0-9_.\-]. The first character additionally excludes digits,
// '.' and '-' (checked by ValidateKey).
func isKeyChar(c byte) bool {
	return isAlpha(c) || isDigit(c) || c == '.' || c == '-'
}

// ValidateKey checks a candidate key atom against the grammar
// [A-Za-z_][A-Za-z0-9_.\-]*, length <= MaxKeyLen.
func ValidateKey(lineNo int, key []byte) *simlerr.Error {
	if len(key) == 0 {
		return simlerr.New(simlerr.CodeKeyIllegal, lineNo, "key must not be empty")
	}
	if len(key) > MaxKeyLen {
		return simlerr.Newf(simlerr.CodeKeyTooLong, lineNo,
			"key length %d exceeds maximum of %d bytes", len(key), MaxKeyLen)
	}
	if !isAlpha(key[0]) {
		return simlerr.Newf(simlerr.CodeKeyIllegal, lineNo,
			"key %q must start with a letter or underscore", key)
	}
	for _, c := range key[1:] {
		if !isKeyChar(c) {
			return simlerr.Newf(simlerr.CodeKeyIllegal, lineNo,
				"key %q contains an illegal character %q", key, c)
		}
	}
	return nil
}

// ScanKey scans a key atom starting at the beginning of rest and
// returns its length. It stops at the first byte that cannot extend a
// key atom (so callers can locate the ':' that must immediately
// follow). It does not itself validate the grammar; call ValidateKey
// on the returned slice.
func ScanKey(rest []byte) int {
	i := 0
	for i < len(rest) && isKeyChar(rest[i]) {
		i++
	}
	return i
}
