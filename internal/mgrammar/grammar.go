// Package mgrammar rewrites author-friendly grammar rules, which may mix
// terminals and non-terminals, carry optional symbols, or compose more than
// two symbols at once, into the strict (lexical, unary, binary) form the
// chart parser requires.
package mgrammar

import (
	"github.com/dekarrin/minnow/internal/merrs"
	"github.com/dekarrin/minnow/internal/mtypes"
	"github.com/dekarrin/minnow/internal/rule"
	"github.com/dekarrin/minnow/internal/symbol"
	"github.com/dekarrin/minnow/internal/util"
)

// BinaryKey identifies a binary rule's two right-hand-side categories.
type BinaryKey struct {
	Left, Right string
}

// Grammar is a normalized grammar: three lookup tables over a rule set that
// has been expanded from the author's original rules so that every
// installed rule is lexical, unary, or binary.
type Grammar struct {
	lexical map[string][]rule.Rule
	unary   map[string][]rule.Rule
	binary  map[BinaryKey][]rule.Rule

	// nullary holds the zero-arity rules produced by omitting a symbol whose
	// entire rhs was that one optional symbol. The chart parser has no
	// epsilon-matching step, so these are never consulted during parsing;
	// they exist only so that Normalize's round-trip on a rule of the form
	// "$A -> ?x" is introspectable. See DESIGN.md.
	nullary map[string][]rule.Rule

	roots []string
}

// Lexical returns the rules keyed by the given canonical token-sequence key
// (see mtypes.TokenKey).
func (g *Grammar) Lexical(key string) []rule.Rule { return g.lexical[key] }

// Unary returns the rules whose sole rhs symbol is cat.
func (g *Grammar) Unary(cat string) []rule.Rule { return g.unary[cat] }

// Binary returns the rules whose rhs is exactly (left, right).
func (g *Grammar) Binary(left, right string) []rule.Rule {
	return g.binary[BinaryKey{Left: left, Right: right}]
}

// Nullary returns the zero-arity rules generated for lhs by optional
// omission. See the nullary field's doc comment.
func (g *Grammar) Nullary(lhs string) []rule.Rule { return g.nullary[lhs] }

// Roots returns the grammar's default root categories: the set of distinct
// left-hand sides among the rules given to Normalize, in first-seen order.
func (g *Grammar) Roots() []string {
	cp := make([]string, len(g.roots))
	copy(cp, g.roots)
	return cp
}

// pair is the denotation of a synthetic binarization rule "A_B -> A B": the
// two child denotations, held together until the residual rule above it
// destructures them back out.
type pair struct {
	a, b mtypes.Denotation
}

// Normalize expands authorRules into a Grammar ready for chart parsing.
// tok is used to compute canonical lexical keys and synthetic category
// names for terminals embedded in mixed rules; it should be the same
// Tokenizer the chart parser will later use over real input, so that the
// keys line up.
func Normalize(authorRules []rule.Rule, tok mtypes.Tokenizer) (*Grammar, error) {
	g := &Grammar{
		lexical: map[string][]rule.Rule{},
		unary:   map[string][]rule.Rule{},
		binary:  map[BinaryKey][]rule.Rule{},
		nullary: map[string][]rule.Rule{},
	}

	seenRoot := util.NewStringSet()
	for _, r := range authorRules {
		if !seenRoot.Has(r.LHS()) {
			seenRoot.Add(r.LHS())
			g.roots = append(g.roots, r.LHS())
		}
	}

	generatedLexicalKeys := util.NewStringSet()
	generatedBinarizationKeys := util.NewStringSet()

	queue := make([]rule.Rule, len(authorRules))
	copy(queue, authorRules)

	for len(queue) > 0 {
		r := queue[0]
		queue = queue[1:]

		switch {
		case r.HasOptionals():
			expanded, err := expandOptional(r)
			if err != nil {
				return nil, err
			}
			queue = append(queue, expanded...)

		case r.IsMixed():
			lifted, lexicalWrappers, err := liftFirstTerminal(r, tok, generatedLexicalKeys)
			if err != nil {
				return nil, err
			}
			queue = append(queue, lifted)
			queue = append(queue, lexicalWrappers...)

		case r.IsNary() && r.IsCategorical():
			binHead, residual, err := binarizeFirstPair(r, generatedBinarizationKeys)
			if err != nil {
				return nil, err
			}
			if binHead != nil {
				queue = append(queue, *binHead)
			}
			queue = append(queue, residual)

		case r.Arity() == 0:
			g.nullary[r.LHS()] = append(g.nullary[r.LHS()], r)

		case r.IsLexical():
			key := g.lexicalKey(r, tok)
			if key == "" && r.Arity() > 0 {
				return nil, merrs.InvalidGrammar(r.Tag(), "could not compute lexical key")
			}
			g.lexical[key] = append(g.lexical[key], r)

		case r.IsUnary() && symbol.IsNonTerminal(r.RHS()[0]):
			g.unary[r.RHS()[0]] = append(g.unary[r.RHS()[0]], r)

		case r.IsBinary() && r.IsCategorical():
			rhs := r.RHS()
			key := BinaryKey{Left: rhs[0], Right: rhs[1]}
			g.binary[key] = append(g.binary[key], r)

		default:
			return nil, merrs.InvalidGrammar(r.Tag(), "rule shape not recognized after expansion")
		}
	}

	return g, nil
}

// lexicalKey computes the token-sequence key for a fully-lexical rule by
// tokenizing each rhs terminal in turn and flattening the resulting token
// texts, so that the key lines up with the chart parser's own
// token-sequence key for a span of input (mtypes.TokenKey over that span's
// token texts).
func (g *Grammar) lexicalKey(r rule.Rule, tok mtypes.Tokenizer) string {
	var allTokens []string
	for _, term := range r.RHS() {
		toks, err := tok.Tokenize(term)
		if err != nil {
			return ""
		}
		for _, t := range toks {
			allTokens = append(allTokens, t.Text)
		}
	}
	return mtypes.TokenKey(allTokens)
}

// expandOptional locates the first optional symbol in r's rhs and replaces
// r with two rules: one with the optional symbol included (marker
// stripped), and one with it omitted entirely, whose semantics re-inserts a
// nil denotation at the omitted position before delegating to r's original
// semantics.
func expandOptional(r rule.Rule) ([]rule.Rule, error) {
	rhs := r.RHS()
	idx := -1
	for i, s := range rhs {
		if symbol.IsOptional(s) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, merrs.InvalidGrammar(r.Tag(), "HasOptionals true but no optional symbol found")
	}

	word := symbol.StripOptional(rhs[idx])

	includedRHS := make([]string, len(rhs))
	copy(includedRHS, rhs)
	includedRHS[idx] = word
	included, err := rule.New(r.Tag()+"_"+word, r.LHS(), includedRHS, r.Semantics())
	if err != nil {
		return nil, err
	}

	omittedRHS := make([]string, 0, len(rhs)-1)
	omittedRHS = append(omittedRHS, rhs[:idx]...)
	omittedRHS = append(omittedRHS, rhs[idx+1:]...)

	wrapped := func(children []mtypes.Denotation) (mtypes.Denotation, error) {
		full := make([]mtypes.Denotation, 0, len(children)+1)
		full = append(full, children[:idx]...)
		full = append(full, nil)
		full = append(full, children[idx:]...)
		return r.Semantics()(full)
	}

	omittedTag := r.Tag() + "_~" + word
	var omitted rule.Rule
	if len(omittedRHS) == 0 {
		omitted, err = rule.NewNullary(omittedTag, r.LHS(), wrapped)
	} else {
		omitted, err = rule.New(omittedTag, r.LHS(), omittedRHS, wrapped)
	}
	if err != nil {
		return nil, err
	}

	return []rule.Rule{included, omitted}, nil
}

// liftFirstTerminal replaces the first terminal symbol in a mixed rule's
// rhs with a synthetic non-terminal, and returns both the lifted rule (to
// be re-queued, since it may still contain other terminals) and any newly
// generated lexical wrapper rules "$@<key> -> w" needed to derive that
// synthetic non-terminal from the literal terminal text. Wrapper rules are
// deduplicated by key across the whole normalization run via seenKeys.
func liftFirstTerminal(r rule.Rule, tok mtypes.Tokenizer, seenKeys util.StringSet) (rule.Rule, []rule.Rule, error) {
	rhs := r.RHS()
	idx := -1
	for i, s := range rhs {
		if symbol.IsTerminal(s) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return rule.Rule{}, nil, merrs.InvalidGrammar(r.Tag(), "IsMixed true but no terminal symbol found")
	}

	w := rhs[idx]
	toks, err := tok.Tokenize(w)
	if err != nil {
		return rule.Rule{}, nil, merrs.Tokenization(w, err)
	}
	var tokenTexts []string
	for _, t := range toks {
		tokenTexts = append(tokenTexts, t.Text)
	}
	key := mtypes.TokenKey(tokenTexts)
	synthetic := "$@" + key

	liftedRHS := make([]string, len(rhs))
	copy(liftedRHS, rhs)
	liftedRHS[idx] = synthetic
	lifted, err := rule.New(r.Tag(), r.LHS(), liftedRHS, r.Semantics())
	if err != nil {
		return rule.Rule{}, nil, err
	}

	var wrappers []rule.Rule
	if !seenKeys.Has(key) {
		seenKeys.Add(key)
		literal := w
		wrapperSemantics := func(children []mtypes.Denotation) (mtypes.Denotation, error) {
			return literal, nil
		}
		wrapper, err := rule.New("lex_"+key, synthetic, []string{w}, wrapperSemantics)
		if err != nil {
			return rule.Rule{}, nil, err
		}
		wrappers = append(wrappers, wrapper)
	}

	return lifted, wrappers, nil
}

// binarizeFirstPair reduces a categorical n-ary rule (arity > 2) by one
// symbol: it synthesizes an intermediate category "A_B" for the first two
// rhs symbols, and returns a rule producing that intermediate category
// (nil if it was already generated in a previous call, per
// seenKeys) alongside the residual rule "lhs -> A_B rest..." whose
// semantics destructures the intermediate pair before calling the original
// semantics with the full, flattened child list. The residual rule's arity
// is one less than r's, so repeated calls binarize the whole rhs
// left-to-right.
func binarizeFirstPair(r rule.Rule, seenKeys util.StringSet) (*rule.Rule, rule.Rule, error) {
	rhs := r.RHS()
	a, b := rhs[0], rhs[1]
	intermediate := "$" + symbolBody(a) + "_" + symbolBody(b)

	var binHead *rule.Rule
	if !seenKeys.Has(intermediate) {
		seenKeys.Add(intermediate)
		pairSemantics := func(children []mtypes.Denotation) (mtypes.Denotation, error) {
			return pair{a: children[0], b: children[1]}, nil
		}
		head, err := rule.New(r.Tag()+"_bin:"+intermediate, intermediate, []string{a, b}, pairSemantics)
		if err != nil {
			return nil, rule.Rule{}, err
		}
		binHead = &head
	}

	residualRHS := make([]string, 0, len(rhs)-1)
	residualRHS = append(residualRHS, intermediate)
	residualRHS = append(residualRHS, rhs[2:]...)

	residualSemantics := func(children []mtypes.Denotation) (mtypes.Denotation, error) {
		p, ok := children[0].(pair)
		if !ok {
			return nil, merrs.InvalidGrammar(r.Tag(), "binarization pair has unexpected type")
		}
		full := make([]mtypes.Denotation, 0, len(children)+1)
		full = append(full, p.a, p.b)
		full = append(full, children[1:]...)
		return r.Semantics()(full)
	}

	residual, err := rule.New(r.Tag(), r.LHS(), residualRHS, residualSemantics)
	if err != nil {
		return nil, rule.Rule{}, err
	}

	return binHead, residual, nil
}

// symbolBody strips a leading non-terminal marker from s if present, so
// that callers constructing a synthetic category name do not end up with a
// doubled "$$" prefix when a or b was itself already a non-terminal.
func symbolBody(s string) string {
	if len(s) > 0 && s[0] == symbol.NonTerminalPrefix {
		return s[1:]
	}
	return s
}
