package lexer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vorschreibung/siml/pkg/lexer"
	"github.com/Vorschreibung/siml/pkg/simlerr"
)

func TestSplitInlineValueNoComment(t *testing.T) {
	parts, err := lexer.SplitInlineValue(1, []byte("alice  "))
	require.Nil(t, err)
	assert.Equal(t, "alice", string(parts.Value))
	assert.Empty(t, parts.Comment)
}

func TestSplitInlineValueWithComment(t *testing.T) {
	parts, err := lexer.SplitInlineValue(1, []byte("alice # a note"))
	require.Nil(t, err)
	assert.Equal(t, "alice", string(parts.Value))
	assert.Equal(t, "a note", string(parts.Comment))
	assert.Equal(t, 1, parts.CommentAlign)
}

func TestSplitInlineValueAlignTooWide(t *testing.T) {
	v := "alice" + strings.Repeat(" ", 256) + "# note"
	_, err := lexer.SplitInlineValue(1, []byte(v))
	require.Error(t, err)
	assert.Equal(t, simlerr.CodeInlineCommentAlign, err.Code)
}

func TestSplitInlineValueCommentSpacing(t *testing.T) {
	_, err := lexer.SplitInlineValue(1, []byte("alice #no-space-after-hash"))
	require.Error(t, err)
	assert.Equal(t, simlerr.CodeInlineCommentSpace, err.Code)

	_, err = lexer.SplitInlineValue(1, []byte("alice #  double space"))
	require.Error(t, err)
	assert.Equal(t, simlerr.CodeInlineCommentSpace, err.Code)

	_, err = lexer.SplitInlineValue(1, []byte("alice #"))
	require.Error(t, err)
	assert.Equal(t, simlerr.CodeInlineCommentSpace, err.Code)
}

func TestSplitInlineValueEmptyCommentText(t *testing.T) {
	_, err := lexer.SplitInlineValue(1, []byte("alice # "))
	require.Error(t, err)
	assert.Equal(t, simlerr.CodeEmptyComment, err.Code)
}

func TestValidateInlineValue(t *testing.T) {
	assert.Nil(t, lexer.ValidateInlineValue(1, []byte("ok")))

	err := lexer.ValidateInlineValue(1, []byte(""))
	require.Error(t, err)
	assert.Equal(t, simlerr.CodeInlineValueEmpty, err.Code)

	err = lexer.ValidateInlineValue(1, []byte(strings.Repeat("a", lexer.MaxInlineValueLen+1)))
	require.Error(t, err)
	assert.Equal(t, simlerr.CodeInlineValueTooLong, err.Code)
}
