package lexer

import "github.com/Vorschreibung/siml/pkg/simlerr"

// IsSeparatorCandidate reports whether rest (the line after its
// leading indent has been stripped) begins with the document
// separator marker "---". It does not validate position or trailing
// content; callers combine this with indent and ValidateSeparator.
func IsSeparatorCandidate(rest []byte) bool {
	return len(rest) >= 3 && rest[0] == '-' && rest[1] == '-' && rest[2] == '-'
}

// ValidateSeparator checks that a "---" candidate is a well-formed
// document separator: indent must be 0, there must be no trailing
// content, and no inline comment.
func ValidateSeparator(lineNo, indent int, rest []byte) *simlerr.Error {
	if indent != 0 {
		return simlerr.Newf(simlerr.CodeSeparatorIndent, lineNo,
			"document separator must be at indent 0, got %d", indent)
	}
	trailing := rest[3:]
	if len(trailing) == 0 {
		return nil
	}
	if trailing[0] == ' ' {
		afterSpaces := trailing
		i := 0
		for i < len(afterSpaces) && afterSpaces[i] == ' ' {
			i++
		}
		if i < len(afterSpaces) && afterSpaces[i] == '#' {
			return simlerr.New(simlerr.CodeSeparatorInlineComment, lineNo,
				"document separator must not carry an inline comment")
		}
	}
	return simlerr.New(simlerr.CodeSeparatorFormat, lineNo,
		"document separator must be exactly \"---\" with no trailing content")
}
