package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vorschreibung/siml/pkg/lexer"
	"github.com/Vorschreibung/siml/pkg/simlerr"
)

func TestCheckLine(t *testing.T) {
	cases := []struct {
		name           string
		lineNo         int
		raw            string
		inBlockContent bool
		wantCode       simlerr.Code
	}{
		{"plain", 1, "key: value", false, simlerr.CodeNone},
		{"bom", 1, "\xEF\xBB\xBFkey: value", false, simlerr.CodeUTF8BOM},
		{"bom only on line one", 2, "\xEF\xBB\xBFkey: value", false, simlerr.CodeNone},
		{"crlf", 1, "key: value\r", false, simlerr.CodeCRLF},
		{"bare cr", 1, "key: va\rlue", false, simlerr.CodeCR},
		{"tab rejected outside block", 1, "key:\tvalue", false, simlerr.CodeTabs},
		{"tab allowed in block content", 1, "a\tb", true, simlerr.CodeNone},
		{"blank line rejected outside block", 1, "", false, simlerr.CodeBlankLine},
		{"blank line allowed in block content", 1, "", true, simlerr.CodeNone},
		{"whitespace only rejected outside block", 1, "   ", false, simlerr.CodeWhitespaceOnly},
		{"whitespace only allowed in block content", 1, "   ", true, simlerr.CodeNone},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := lexer.CheckLine(c.lineNo, []byte(c.raw), c.inBlockContent)
			if c.wantCode == simlerr.CodeNone {
				assert.Nil(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, c.wantCode, err.Code)
		})
	}
}
