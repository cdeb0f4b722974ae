// Package transform accumulates the codegen driver's per-record view
// of a document: one Record per item of the document's top-level
// sequence, its scalar fields, any nested sequence promoted to a flag
// list, and any block literal promoted to a description. It walks a
// raw event stream directly (the same Next shape parser.Parser
// exposes) rather than building an intermediate tree, in keeping with
// the pull parser's own no-AST design.
//
// Errors raised here describe shape problems in an otherwise
// grammatically valid document — an unknown field, a duplicate field,
// a record that isn't a mapping — and are never simlerr.Error values.
package transform

import (
	"fmt"
	"strings"

	"github.com/Vorschreibung/siml/pkg/event"
)

// Error is a driver-level error: a document that parsed cleanly but
// does not have the shape a record-oriented reader expects.
type Error struct {
	Line int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func newError(line int, format string, args ...interface{}) *Error {
	return &Error{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// Record is one item of the document's top-level sequence, folded
// into a flat field set plus two promoted views: Flags (the values of
// any nested sequence field, concatenated across all such fields in
// declaration order) and Description (the text of the last block
// literal field encountered).
type Record struct {
	Line        int
	Fields      map[string]string
	FieldOrder  []string
	Flags       []string
	Description string
}

// RecordSet is the result of a full Walk.
type RecordSet struct {
	Records []Record
}

// Options configures field-name validation. KnownFields, when
// non-nil, makes an unrecognized field name a driver error instead of
// being silently accepted; the zero Options accepts any field name.
type Options struct {
	KnownFields map[string]struct{}
}

// Walker drives Record accumulation off any event source shaped like
// parser.Parser.Next.
type Walker struct {
	next func() (event.Event, bool)
	opts Options
}

// NewWalker builds a Walker pulling from next.
func NewWalker(next func() (event.Event, bool), opts Options) *Walker {
	return &Walker{next: next, opts: opts}
}

func (w *Walker) pull() event.Event {
	ev, ok := w.next()
	if !ok {
		return event.Event{Kind: event.KindStreamEnd}
	}
	return ev
}

// Walk consumes the whole stream and returns one Record per item of
// the document's top-level sequence. The root must be a sequence:
// simlgen's record model has no notion of a single top-level mapping.
func (w *Walker) Walk() (*RecordSet, error) {
	if ev := w.pull(); ev.Kind != event.KindStreamStart {
		return nil, newError(ev.Line, "expected stream start, got %s", ev.Kind)
	}
	if ev := w.pull(); ev.Kind != event.KindDocumentStart {
		return nil, newError(ev.Line, "expected a document")
	}

	root := w.pull()
	switch root.Kind {
	case event.KindMappingStart:
		return nil, newError(root.Line, "document root must be a sequence of records, not a mapping")
	case event.KindError:
		return nil, newError(root.Line, "document failed to parse: %v", root.Err)
	case event.KindSequenceStart:
		// fall through
	default:
		return nil, newError(root.Line, "document root must be a sequence of records")
	}

	rs := &RecordSet{}
	for {
		ev := w.pull()
		switch ev.Kind {
		case event.KindSequenceEnd:
			return rs, nil
		case event.KindMappingStart:
			rec, err := w.walkRecord(ev.Line)
			if err != nil {
				return nil, err
			}
			rs.Records = append(rs.Records, *rec)
		case event.KindScalar:
			return nil, newError(ev.Line, "record %d is a bare scalar, not a mapping", len(rs.Records)+1)
		case event.KindComment:
			// standalone comments between records carry no field data
		case event.KindError:
			return nil, newError(ev.Line, "document failed to parse: %v", ev.Err)
		default:
			return nil, newError(ev.Line, "unexpected %s at record position", ev.Kind)
		}
	}
}

func (w *Walker) walkRecord(line int) (*Record, error) {
	rec := &Record{Line: line, Fields: map[string]string{}}
	for {
		ev := w.pull()
		switch ev.Kind {
		case event.KindMappingEnd:
			return rec, nil
		case event.KindScalar:
			if err := w.setField(rec, ev.Key, ev.Value, ev.Line); err != nil {
				return nil, err
			}
		case event.KindSequenceStart:
			flags, err := w.walkFlags()
			if err != nil {
				return nil, err
			}
			if err := w.setField(rec, ev.Key, strings.Join(flags, ","), ev.Line); err != nil {
				return nil, err
			}
			rec.Flags = append(rec.Flags, flags...)
		case event.KindBlockScalarStart:
			text, err := w.walkBlock()
			if err != nil {
				return nil, err
			}
			if err := w.setField(rec, ev.Key, text, ev.Line); err != nil {
				return nil, err
			}
			rec.Description = text
		case event.KindMappingStart:
			return nil, newError(ev.Line, "nested mapping fields are not supported in a record")
		case event.KindComment:
		case event.KindError:
			return nil, newError(ev.Line, "document failed to parse: %v", ev.Err)
		default:
			return nil, newError(ev.Line, "unexpected %s inside a record", ev.Kind)
		}
	}
}

func (w *Walker) walkFlags() ([]string, error) {
	var flags []string
	for {
		ev := w.pull()
		switch ev.Kind {
		case event.KindSequenceEnd:
			return flags, nil
		case event.KindScalar:
			flags = append(flags, ev.Value)
		case event.KindError:
			return nil, newError(ev.Line, "document failed to parse: %v", ev.Err)
		default:
			return nil, newError(ev.Line, "flag list fields may only contain scalars, got %s", ev.Kind)
		}
	}
}

func (w *Walker) walkBlock() (string, error) {
	var lines []string
	for {
		ev := w.pull()
		switch ev.Kind {
		case event.KindBlockScalarEnd:
			return strings.Join(lines, "\n"), nil
		case event.KindBlockScalarLine:
			lines = append(lines, ev.Value)
		case event.KindError:
			return "", newError(ev.Line, "document failed to parse: %v", ev.Err)
		default:
			return "", newError(ev.Line, "unexpected %s inside a block literal", ev.Kind)
		}
	}
}

func (w *Walker) setField(rec *Record, key, value string, line int) error {
	if w.opts.KnownFields != nil {
		if _, known := w.opts.KnownFields[key]; !known {
			return newError(line, "unknown field %q", key)
		}
	}
	if _, dup := rec.Fields[key]; dup {
		return newError(line, "duplicate field %q in record", key)
	}
	rec.Fields[key] = value
	rec.FieldOrder = append(rec.FieldOrder, key)
	return nil
}
