package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vorschreibung/siml/pkg/lexer"
	"github.com/Vorschreibung/siml/pkg/simlerr"
)

func TestIndent(t *testing.T) {
	indent, rest, err := lexer.Indent(1, []byte("    key: v"))
	require.Nil(t, err)
	assert.Equal(t, 4, indent)
	assert.Equal(t, "key: v", string(rest))

	_, _, err = lexer.Indent(1, []byte("   key: v"))
	require.NotNil(t, err)
	assert.Equal(t, simlerr.CodeIndentMultiple, err.Code)
}

func TestValidateKey(t *testing.T) {
	cases := []struct {
		name     string
		key      string
		wantCode simlerr.Code
	}{
		{"simple", "name", simlerr.CodeNone},
		{"underscored", "_private", simlerr.CodeNone},
		{"dotted path", "a.b-c_9", simlerr.CodeNone},
		{"empty", "", simlerr.CodeKeyIllegal},
		{"starts with digit", "9name", simlerr.CodeKeyIllegal},
		{"starts with dash", "-name", simlerr.CodeKeyIllegal},
		{"illegal char", "na me", simlerr.CodeKeyIllegal},
		{"too long", string(make([]byte, lexer.MaxKeyLen+1)), simlerr.CodeKeyTooLong},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			key := []byte(c.key)
			if c.name == "too long" {
				for i := range key {
					key[i] = 'a'
				}
			}
			err := lexer.ValidateKey(1, key)
			if c.wantCode == simlerr.CodeNone {
				assert.Nil(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, c.wantCode, err.Code)
		})
	}
}

func TestScanKey(t *testing.T) {
	assert.Equal(t, 4, lexer.ScanKey([]byte("name: value")))
	assert.Equal(t, 0, lexer.ScanKey([]byte(": value")))
	assert.Equal(t, 7, lexer.ScanKey([]byte("a.b-c_9")))
}
