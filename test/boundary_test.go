package test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vorschreibung/siml/pkg/event"
	"github.com/Vorschreibung/siml/pkg/lexer"
	"github.com/Vorschreibung/siml/pkg/simlerr"
)

func TestBoundaryKeyLength(t *testing.T) {
	ok := strings.Repeat("a", lexer.MaxKeyLen)
	assert.Nil(t, lexer.ValidateKey(1, []byte(ok)))

	tooLong := strings.Repeat("a", lexer.MaxKeyLen+1)
	err := lexer.ValidateKey(1, []byte(tooLong))
	require.Error(t, err)
	assert.Equal(t, simlerr.CodeKeyTooLong, err.Code)
}

func TestBoundaryLineLength(t *testing.T) {
	line := strings.Repeat("x", lexer.MaxLineLen)
	assert.Nil(t, lexer.CheckLine(1, []byte(line), false))

	tooLong := strings.Repeat("x", lexer.MaxLineLen+1)
	err := lexer.CheckLine(1, []byte(tooLong), false)
	require.Error(t, err)
	assert.Equal(t, simlerr.CodeLineTooLong, err.Code)
}

func TestBoundaryInlineValueLength(t *testing.T) {
	assert.Nil(t, lexer.ValidateInlineValue(1, []byte(strings.Repeat("x", lexer.MaxInlineValueLen))))

	err := lexer.ValidateInlineValue(1, []byte(strings.Repeat("x", lexer.MaxInlineValueLen+1)))
	require.Error(t, err)
	assert.Equal(t, simlerr.CodeInlineValueTooLong, err.Code)
}

func TestBoundaryFlowAtomLength(t *testing.T) {
	atom := strings.Repeat("a", lexer.MaxFlowAtomLen)
	src := fmt.Sprintf("flags: [%s]\n", atom)
	evs := runAll(src)
	require.Nil(t, findError(evs), "unexpected error: %+v", evs)

	tooLong := strings.Repeat("a", lexer.MaxFlowAtomLen+1)
	src = fmt.Sprintf("flags: [%s]\n", tooLong)
	evs = runAll(src)
	errEv := findError(evs)
	require.NotNil(t, errEv)
	assert.Equal(t, simlerr.CodeFlowAtomTooLong, errEv.Err.Code)
}

func TestBoundaryBlockLineLength(t *testing.T) {
	content := strings.Repeat("a", lexer.MaxBlockLineLen)
	src := "text: |\n  " + content + "\n"
	evs := runAll(src)
	require.Nil(t, findError(evs))

	tooLong := strings.Repeat("a", lexer.MaxBlockLineLen+1)
	src = "text: |\n  " + tooLong + "\n"
	evs = runAll(src)
	errEv := findError(evs)
	require.NotNil(t, errEv)
	assert.Equal(t, simlerr.CodeBlockLineTooLong, errEv.Err.Code)
}

func TestBoundaryInlineCommentAlign(t *testing.T) {
	for _, align := range []int{1, 255} {
		src := fmt.Sprintf("k: v%s# c\n", strings.Repeat(" ", align))
		evs := runAll(src)
		require.Nil(t, findError(evs), "align=%d: %+v", align, evs)
	}

	src := fmt.Sprintf("k: v%s# c\n", strings.Repeat(" ", 256))
	evs := runAll(src)
	errEv := findError(evs)
	require.NotNil(t, errEv)
	assert.Equal(t, simlerr.CodeInlineCommentAlign, errEv.Err.Code)
}

func TestBoundaryNestingDepth(t *testing.T) {
	// 32 levels of "k:\n  " nesting, innermost a real scalar, is
	// exactly lexer.MaxNestDepth and must be accepted.
	ok := nestedMapping(lexer.MaxNestDepth)
	evs := runAll(ok)
	assert.Nil(t, findError(evs), "depth %d: %+v", lexer.MaxNestDepth, evs)

	tooDeep := nestedMapping(lexer.MaxNestDepth + 1)
	evs = runAll(tooDeep)
	errEv := findError(evs)
	require.NotNil(t, errEv)
	assert.Equal(t, simlerr.CodeNestTooDeep, errEv.Err.Code)
}

// nestedMapping builds a document with exactly depth open mapping
// frames. Each header-only "k:" line causes the frame holding its
// value to be opened when the following line resolves it, so
// depth-1 headers plus one final "k: v" line yields depth pushes in
// total: the root push from the first header, depth-2 more from the
// following headers, and one more when "k: v" resolves the last one.
func nestedMapping(depth int) string {
	var b strings.Builder
	for i := 0; i < depth-1; i++ {
		b.WriteString(strings.Repeat("  ", i))
		b.WriteString("k:\n")
	}
	b.WriteString(strings.Repeat("  ", depth-1))
	b.WriteString("k: v\n")
	return b.String()
}

func findError(evs []event.Event) *event.Event {
	for i := range evs {
		if evs[i].Kind == event.KindError {
			return &evs[i]
		}
	}
	return nil
}
