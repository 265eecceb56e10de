package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Tokenize_dropsPunctuationAndLowercases(t *testing.T) {
	toks, err := Tokenize("What is 43 plus 21?")
	require.NoError(t, err)

	expect := []string{"what", "is", "43", "plus", "21"}
	require.Len(t, toks, len(expect))
	for i, want := range expect {
		assert.Equal(t, want, toks[i].Text, "token %d", i)
	}
}

func Test_Tokenize_spansAreVerbatim(t *testing.T) {
	s := "Minus THREE"
	toks, err := Tokenize(s)
	require.NoError(t, err)
	for _, tok := range toks {
		assert.NotEmpty(t, s[tok.Start:tok.End])
	}
	assert.Equal(t, "Minus", s[toks[0].Start:toks[0].End])
}

func Test_Tokenize_emptyAndWhitespace(t *testing.T) {
	for _, s := range []string{"", "   ", "\t\n"} {
		toks, err := Tokenize(s)
		require.NoError(t, err, "input %q", s)
		assert.Empty(t, toks, "input %q", s)
	}
}
