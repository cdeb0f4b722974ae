package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vorschreibung/siml/pkg/event"
	"github.com/Vorschreibung/siml/pkg/linesource"
	"github.com/Vorschreibung/siml/pkg/options"
	"github.com/Vorschreibung/siml/pkg/parser"
	"github.com/Vorschreibung/siml/pkg/simlerr"
)

func drain(p *parser.Parser) []event.Event {
	var evs []event.Event
	for {
		ev, ok := p.Next()
		if !ok {
			return evs
		}
		evs = append(evs, ev)
	}
}

func newParser(src string, opts ...options.Option) *parser.Parser {
	return parser.New(linesource.New(strings.NewReader(src)), opts...)
}

func lastError(evs []event.Event) *simlerr.Error {
	for i := range evs {
		if evs[i].Kind == event.KindError {
			return evs[i].Err
		}
	}
	return nil
}

func TestDuplicateKeyDetectedByDefault(t *testing.T) {
	evs := drain(newParser("name: a\nname: b\n"))
	err := lastError(evs)
	require.NotNil(t, err)
	assert.Equal(t, simlerr.CodeDuplicateKey, err.Code)
}

func TestDuplicateKeyAllowedWhenDisabled(t *testing.T) {
	evs := drain(newParser("name: a\nname: b\n", options.WithDuplicateKeyDetection(false)))
	assert.Nil(t, lastError(evs))
}

func TestDuplicateKeyScopedPerFrame(t *testing.T) {
	src := "a:\n  x: 1\nb:\n  x: 2\n"
	evs := drain(newParser(src))
	assert.Nil(t, lastError(evs))
}

func TestStrictRejectsScalarDocumentRoot(t *testing.T) {
	evs := drain(newParser("just a scalar\n"))
	err := lastError(evs)
	require.NotNil(t, err)
	assert.Equal(t, simlerr.CodeDocScalar, err.Code)
}

func TestNonStrictAcceptsScalarDocumentRoot(t *testing.T) {
	evs := drain(newParser("just a scalar\n", options.WithStrict(false)))
	require.Nil(t, lastError(evs))
	require.GreaterOrEqual(t, len(evs), 4)
	assert.Equal(t, event.KindDocumentStart, evs[1].Kind)
	assert.Equal(t, event.KindScalar, evs[2].Kind)
	assert.Equal(t, "just a scalar", evs[2].Value)
	assert.Equal(t, event.KindDocumentEnd, evs[3].Kind)
}

func TestMaxDepthOverride(t *testing.T) {
	src := "a:\n  b: 1\n"
	evs := drain(newParser(src, options.WithMaxDepth(1)))
	err := lastError(evs)
	require.NotNil(t, err)
	assert.Equal(t, simlerr.CodeNestTooDeep, err.Code)
}

func TestHeaderOnlyMappingWithoutNestedIsError(t *testing.T) {
	evs := drain(newParser("name:\n"))
	err := lastError(evs)
	require.NotNil(t, err)
	assert.Equal(t, simlerr.CodeHeaderMapNoNested, err.Code)
}

func TestSeparatorBeforeFirstDocumentIsError(t *testing.T) {
	evs := drain(newParser("---\nname: a\n"))
	err := lastError(evs)
	require.NotNil(t, err)
	assert.Equal(t, simlerr.CodeSeparatorPosition, err.Code)
}

func TestErrorLatchIsFollowedOnlyByStreamEnd(t *testing.T) {
	evs := drain(newParser("k:\tv\n"))
	require.Len(t, evs, 3)
	assert.Equal(t, event.KindStreamStart, evs[0].Kind)
	assert.Equal(t, event.KindError, evs[1].Kind)
	assert.Equal(t, event.KindStreamEnd, evs[2].Kind)
}
