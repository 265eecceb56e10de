// Package tokenize provides the engine's default Tokenizer: a simple
// whitespace-splitting, punctuation-dropping, lowercasing scanner. It is not
// required by the core grammar/chart/ranking machinery, which accept any
// collaborator satisfying mtypes.Tokenizer, but it is what cmd/minnow and
// the test suites use when an application does not bring its own.
package tokenize

import (
	"regexp"
	"strings"

	"github.com/dekarrin/minnow/internal/mtypes"
)

// wordPattern matches a maximal run of letters, digits, or the apostrophe
// (so contractions like "don't" survive as one token), skipping everything
// else: whitespace and punctuation alike.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}']+`)

// Default is the package's default Tokenizer value.
var Default mtypes.Tokenizer = mtypes.TokenizerFunc(Tokenize)

// Tokenize splits s into tokens by repeatedly matching wordPattern,
// lowercasing each match. The span recorded for each token is the original,
// pre-lowercased byte range in s, so callers can still recover verbatim
// source text.
func Tokenize(s string) ([]mtypes.Token, error) {
	locs := wordPattern.FindAllStringIndex(s, -1)
	tokens := make([]mtypes.Token, 0, len(locs))

	for _, loc := range locs {
		start, end := loc[0], loc[1]
		tokens = append(tokens, mtypes.Token{
			Text:  strings.ToLower(s[start:end]),
			Start: start,
			End:   end,
		})
	}

	return tokens, nil
}
