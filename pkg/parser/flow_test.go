package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vorschreibung/siml/pkg/simlerr"
)

func TestFlowSequenceErrors(t *testing.T) {
	cases := []struct {
		name     string
		src      string
		wantCode simlerr.Code
	}{
		{"unterminated line", "flags: [a,b\n", simlerr.CodeFlowUnterminatedLine},
		{"unterminated nested bracket", "flags: [a,[b,c\n", simlerr.CodeFlowUnterminatedBracket},
		{"empty element", "flags: [a,,b]\n", simlerr.CodeFlowEmptyElem},
		{"trailing comma", "flags: [a,b,]\n", simlerr.CodeFlowTrailingComma},
		{"whitespace inside", "flags: [a, b]\n", simlerr.CodeFlowWhitespace},
		{"second bracket after close", "flags: [a,b] [c]\n", simlerr.CodeFlowMultiLine},
		{"trailing chars", "flags: [a,b]x\n", simlerr.CodeFlowTrailingChars},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			evs := drain(newParser(c.src))
			err := lastError(evs)
			require.NotNil(t, err, "expected error for %q", c.src)
			assert.Equal(t, c.wantCode, err.Code)
		})
	}
}

func TestFlowSequenceAccepted(t *testing.T) {
	evs := drain(newParser("flags: [a,b,c]\n"))
	assert.Nil(t, lastError(evs))
}
