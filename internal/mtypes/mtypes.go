// Package mtypes holds the shared vocabulary of the minnow engine: tokens,
// derivations, and the small collaborator interfaces (Tokenizer, SubParser)
// that the chart parser is built around. Splitting these out of the grammar
// and chart packages avoids an import cycle between them.
package mtypes

// KeySeparator joins canonical token texts into the lookup keys used by a
// normalized grammar's lexical table and into synthetic category names
// produced while lifting terminals out of mixed rules. It is one of the
// reserved characters of the rule DSL; grammar authors must not use it in
// their own non-terminal names.
const KeySeparator = "-"

// TokenKey joins canonical token texts with KeySeparator to form a lexical
// lookup key or a synthetic category suffix.
func TokenKey(tokens []string) string {
	key := ""
	for i, t := range tokens {
		if i > 0 {
			key += KeySeparator
		}
		key += t
	}
	return key
}

// Denotation is the machine-interpretable value produced by evaluating a
// Derivation's semantics. It carries no structure of its own; what it means
// is entirely up to the host application's rule semantics.
type Denotation = any

// Token is a single lexeme produced by a Tokenizer, together with the
// half-open byte span of the original source string it was read from.
type Token struct {
	Text  string
	Start int
	End   int
}

// Tokenizer splits an utterance into a sequence of Tokens. Implementations
// must guarantee that s[tok.Start:tok.End] is the pre-normalized source text
// of tok, so that derivations built above the returned tokens can recover
// verbatim spans.
type Tokenizer interface {
	Tokenize(s string) ([]Token, error)
}

// TokenizerFunc adapts a plain function to the Tokenizer interface.
type TokenizerFunc func(s string) ([]Token, error)

// Tokenize calls f(s).
func (f TokenizerFunc) Tokenize(s string) ([]Token, error) {
	return f(s)
}

// Derivation is a node in a parse forest: the witness that some span of the
// original utterance is derivable under the grammar (or under a sub-parser),
// together with a pure function from its children's denotations to its own.
//
// Derivations are immutable once returned from a parse. A derivation's
// ComputeDenotation is referentially transparent: calling it repeatedly on
// the same derivation returns the same value, recomputing from scratch each
// time rather than caching, since rule semantics are required to be pure.
type Derivation interface {
	// Tag is a free-form identifier carried over from the originating rule
	// (or assigned directly by a sub-parser), useful for featurization and
	// debugging. It is not required to be unique.
	Tag() string

	// Category is the non-terminal (or sub-parser category) that this
	// derivation was produced as.
	Category() string

	// Span is the verbatim substring of the original input covered by this
	// derivation.
	Span() string

	// Children is the ordered sequence of child derivations, empty for
	// lexical productions and sub-parser leaves.
	Children() []Derivation

	// ComputeDenotation evaluates this derivation's semantics over its
	// children's denotations. Failures from a user-supplied semantics
	// function surface here as a merrs.EvaluationError, never during
	// parsing.
	ComputeDenotation() (Denotation, error)
}

// SubParser is a pluggable collaborator that the chart parser consults for
// every span of the utterance, alongside the host grammar's own rules. Its
// output categories need not appear in the host grammar's non-terminal set;
// they are carried through the chart as opaque strings that may still feed
// unary and binary rules whose rhs references them.
type SubParser interface {
	Parse(s string) ([]Derivation, error)
}

// SubParserFunc adapts a plain function to the SubParser interface.
type SubParserFunc func(s string) ([]Derivation, error)

// Parse calls f(s).
func (f SubParserFunc) Parse(s string) ([]Derivation, error) {
	return f(s)
}
