// Package event defines the SIML parser's output alphabet: a single
// tagged Event value returned by each call to Parser.Next.
package event

import "github.com/Vorschreibung/siml/pkg/simlerr"

// Kind identifies which member of the event alphabet a value carries.
type Kind int

const (
	KindNone Kind = iota
	KindStreamStart
	KindDocumentStart
	KindMappingStart
	KindSequenceStart
	KindScalar
	KindBlockScalarStart
	KindBlockScalarLine
	KindBlockScalarEnd
	KindSequenceEnd
	KindMappingEnd
	KindDocumentEnd
	KindStreamEnd
	KindComment
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindStreamStart:
		return "stream-start"
	case KindDocumentStart:
		return "document-start"
	case KindMappingStart:
		return "mapping-start"
	case KindSequenceStart:
		return "sequence-start"
	case KindScalar:
		return "scalar"
	case KindBlockScalarStart:
		return "block-scalar-start"
	case KindBlockScalarLine:
		return "block-scalar-line"
	case KindBlockScalarEnd:
		return "block-scalar-end"
	case KindSequenceEnd:
		return "sequence-end"
	case KindMappingEnd:
		return "mapping-end"
	case KindDocumentEnd:
		return "document-end"
	case KindStreamEnd:
		return "stream-end"
	case KindComment:
		return "comment"
	case KindError:
		return "error"
	default:
		return "none"
	}
}

// SeqStyle distinguishes a block sequence (`- item` lines) from a flow
// sequence (`[a,b,c]`). Only sequence-start events carry a meaningful
// style; it is otherwise SeqStyleNone.
type SeqStyle int

const (
	SeqStyleNone SeqStyle = iota
	SeqStyleBlock
	SeqStyleFlow
)

func (s SeqStyle) String() string {
	switch s {
	case SeqStyleBlock:
		return "block"
	case SeqStyleFlow:
		return "flow"
	default:
		return ""
	}
}

// Event is the single value type returned by Parser.Next. Fields that
// do not apply to a given Kind are left at their zero value.
//
// Key, Value and Comment are plain Go strings: the parser copies them
// out of the current line buffer (and, for pending header events,
// out of its small internal key buffer) before returning, so unlike
// the line buffer itself they remain valid indefinitely — there is no
// "valid until next call" borrow to track at this layer.
type Event struct {
	Kind Kind

	// Key is set on scalar/mapping-start/sequence-start/block-scalar-start
	// events that are owned by a mapping entry.
	Key string

	// Value holds the scalar text (KindScalar) or the content line
	// (KindBlockScalarLine, empty for a blank line), or is empty otherwise.
	// It never includes the inline comment, the spaces before '#', or
	// trailing spaces.
	Value string

	// Comment holds inline-comment text (without the leading "# ") for
	// events that carried one, and the comment text itself for
	// KindComment.
	Comment string

	// CommentAlign is the number of spaces between the value (or, for
	// a full comment line, is unused) and the '#' that introduced an
	// inline comment. Zero when there is no inline comment.
	CommentAlign int

	// SeqStyle is meaningful only on KindSequenceStart.
	SeqStyle SeqStyle

	// Line is the 1-based physical line number the event was produced
	// from.
	Line int

	// Err is non-nil only when Kind == KindError.
	Err *simlerr.Error
}
