package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vorschreibung/siml/pkg/lexer"
	"github.com/Vorschreibung/siml/pkg/simlerr"
)

func TestLooksLikeFieldEntry(t *testing.T) {
	assert.True(t, lexer.LooksLikeFieldEntry([]byte("key: value")))
	assert.True(t, lexer.LooksLikeFieldEntry([]byte("key:")))
	assert.False(t, lexer.LooksLikeFieldEntry([]byte("just a scalar")))
	assert.False(t, lexer.LooksLikeFieldEntry([]byte(":value")))
}

func TestParseFieldValue(t *testing.T) {
	fv, err := lexer.ParseFieldValue(1, []byte("name: alice"))
	require.Nil(t, err)
	assert.Equal(t, "name", string(fv.Key))
	assert.False(t, fv.Header)
	assert.Equal(t, "alice", string(fv.Value))

	fv, err = lexer.ParseFieldValue(1, []byte("name:"))
	require.Nil(t, err)
	assert.True(t, fv.Header)
	assert.False(t, fv.CommentOnly)

	fv, err = lexer.ParseFieldValue(1, []byte("name:  # a comment"))
	require.Nil(t, err)
	assert.True(t, fv.Header)
	assert.True(t, fv.CommentOnly)

	_, err = lexer.ParseFieldValue(1, []byte("name:value"))
	require.Error(t, err)
	assert.Equal(t, simlerr.CodeFieldSyntax, err.Code)

	_, err = lexer.ParseFieldValue(1, []byte("name:  value"))
	require.Error(t, err)
	assert.Equal(t, simlerr.CodeFieldSyntax, err.Code)

	_, err = lexer.ParseFieldValue(1, []byte(": value"))
	require.Error(t, err)
	assert.Equal(t, simlerr.CodeFieldSyntax, err.Code)
}

func TestParseSeqItem(t *testing.T) {
	sv, err := lexer.ParseSeqItem(1, []byte("- a"))
	require.Nil(t, err)
	assert.Equal(t, "a", string(sv.Value))

	sv, err = lexer.ParseSeqItem(1, []byte("-"))
	require.Nil(t, err)
	assert.True(t, sv.Header)

	sv, err = lexer.ParseSeqItem(1, []byte("-  # note"))
	require.Nil(t, err)
	assert.True(t, sv.Header)
	assert.True(t, sv.CommentOnly)

	_, err = lexer.ParseSeqItem(1, []byte("-value"))
	require.Error(t, err)
	assert.Equal(t, simlerr.CodeFieldSyntax, err.Code)
}
