/*
Package minnow is a small domain-general semantic parsing engine: give it a
grammar of rules pairing surface syntax with denotation-producing semantics,
and it will normalize that grammar, parse utterances against it with a
CYK-style chart parser, and rank the resulting derivations with a trainable
Ranker so that ambiguous utterances resolve to the denotation most likely
intended.

A typical caller builds an Engine once with New, optionally calls Train
against labeled utterance/denotation pairs, and then calls Parse (or
TopDenotation) per utterance thereafter.
*/
package minnow

import (
	"github.com/dekarrin/minnow/internal/chart"
	"github.com/dekarrin/minnow/internal/feature"
	"github.com/dekarrin/minnow/internal/merrs"
	"github.com/dekarrin/minnow/internal/mgrammar"
	"github.com/dekarrin/minnow/internal/mtypes"
	"github.com/dekarrin/minnow/internal/rank"
	"github.com/dekarrin/minnow/internal/rule"
	"github.com/dekarrin/minnow/internal/tokenize"
)

// Re-exported types so callers never need to import minnow's internal
// packages directly.
type (
	// Rule is a single grammar production: a left-hand-side category, a
	// right-hand-side sequence of terminals and/or non-terminals, and the
	// semantics function that reduces matched children to a denotation.
	Rule = rule.Rule

	// Derivation is one parse of a span of input: the rule applied, the
	// category it produced, the exact substring it covers, and the child
	// derivations (if any) it was built from.
	Derivation = mtypes.Derivation

	// Denotation is the meaning a derivation reduces to. It carries no
	// required shape; engines built atop minnow are free to use ints,
	// strings, structs, or anything else their semantics functions return.
	Denotation = mtypes.Denotation

	// Tokenizer splits raw input into the Tokens a grammar's terminals are
	// matched against.
	Tokenizer = mtypes.Tokenizer

	// SubParser is an escape hatch for spans an Engine's own grammar cannot
	// describe (numbers, dates, quoted strings); it is consulted for every
	// span the chart considers, alongside the grammar's own lexical rules.
	SubParser = mtypes.SubParser

	// SubParserFunc adapts a plain function to the SubParser interface.
	SubParserFunc = mtypes.SubParserFunc

	// Featurizer extracts a sparse numeric feature map from a Derivation,
	// for a Ranker to score.
	Featurizer = feature.Featurizer

	// Ranker scores competing derivations for an utterance and picks the
	// best one, optionally learning to do so from labeled examples.
	Ranker = rank.Ranker
)

// NewRule constructs a Rule from a whitespace-separated rhs string. See
// github.com/dekarrin/minnow/internal/symbol for the full symbol grammar:
// terminals are bare words, non-terminals begin with '$', and a leading '?'
// marks a symbol as optional.
func NewRule(tag, lhs, rhs string, semantics func(children []Denotation) (Denotation, error)) (Rule, error) {
	return rule.NewFromString(tag, lhs, rhs, semantics)
}

// Engine ties together a normalized grammar, a tokenizer, optional
// sub-parsers, and a ranker into the parse-and-rank pipeline callers
// actually use.
type Engine struct {
	grammar    *mgrammar.Grammar
	tokenizer  mtypes.Tokenizer
	subParsers []mtypes.SubParser
	roots      []string
	ranker     rank.Ranker
	featurizer feature.Featurizer
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithTokenizer overrides the default Tokenizer (tokenize.Default).
func WithTokenizer(tok mtypes.Tokenizer) Option {
	return func(e *Engine) { e.tokenizer = tok }
}

// WithSubParsers registers sub-parsers to consult for every span alongside
// the grammar's own lexical rules.
func WithSubParsers(subParsers ...mtypes.SubParser) Option {
	return func(e *Engine) { e.subParsers = subParsers }
}

// WithRoots overrides the grammar's default root categories (the distinct
// left-hand sides of the rules given to New, in first-seen order).
func WithRoots(roots ...string) Option {
	return func(e *Engine) { e.roots = roots }
}

// WithRanker overrides the default ranker (rank.NewConstantRanker()).
func WithRanker(r rank.Ranker) Option {
	return func(e *Engine) { e.ranker = r }
}

// WithFeaturizer overrides the default featurizer
// (feature.Concat(feature.Counts, feature.Precedence, feature.Depths,
// feature.Lengths)).
func WithFeaturizer(f feature.Featurizer) Option {
	return func(e *Engine) { e.featurizer = f }
}

// New normalizes rules into a grammar and returns an Engine ready to parse.
func New(rules []Rule, opts ...Option) (*Engine, error) {
	e := &Engine{
		tokenizer: tokenize.Default,
		ranker:    rank.NewConstantRanker(),
		featurizer: feature.Concat(
			feature.Counts, feature.Precedence, feature.Depths, feature.Lengths,
		),
	}
	for _, opt := range opts {
		opt(e)
	}

	g, err := mgrammar.Normalize(rules, e.tokenizer)
	if err != nil {
		return nil, err
	}
	e.grammar = g

	if e.roots == nil {
		e.roots = g.Roots()
	}

	return e, nil
}

// Parse returns every derivation of utterance rooted in one of the engine's
// accepted categories, unranked and in chart insertion order. It returns a
// merrs.NoParseError if none exist.
func (e *Engine) Parse(utterance string) ([]Derivation, error) {
	derivations, err := chart.Parse(utterance, e.grammar, e.tokenizer, e.subParsers, e.roots)
	if err != nil {
		return nil, err
	}
	if len(derivations) == 0 {
		return nil, merrs.NoParse(utterance, e.roots...)
	}
	return derivations, nil
}

// TopParse returns the single highest-ranked derivation of utterance.
func (e *Engine) TopParse(utterance string) (Derivation, error) {
	derivations, err := e.Parse(utterance)
	if err != nil {
		return nil, err
	}
	top, _ := e.ranker.TopParse(derivations, e.featurizer)
	return top, nil
}

// TopDenotation returns the denotation of the single highest-ranked
// derivation of utterance.
func (e *Engine) TopDenotation(utterance string) (Denotation, error) {
	derivations, err := e.Parse(utterance)
	if err != nil {
		return nil, err
	}
	return e.ranker.TopDenotation(derivations, e.featurizer)
}

// Train fits the engine's ranker against labeled utterance/denotation
// pairs: utterances and denotations must be the same length, pairing
// utterances[i] with its known-correct denotations[i], or Train returns a
// merrs.LengthMismatchError. Utterances with no derivation rooted in an
// accepted category are skipped, since a ranker has nothing to learn from
// an utterance with zero candidates; a tokenizer or sub-parser error for
// any utterance is returned as-is. Utterances that parse but
// have no candidate matching their labeled denotation are left for the
// ranker itself to skip, per its own training policy.
func (e *Engine) Train(utterances []string, denotations []Denotation) error {
	if len(utterances) != len(denotations) {
		return merrs.LengthMismatch(len(utterances), len(denotations))
	}

	var examples []rank.Example
	for i, u := range utterances {
		derivations, err := chart.Parse(u, e.grammar, e.tokenizer, e.subParsers, e.roots)
		if err != nil {
			return err
		}
		if len(derivations) == 0 {
			continue
		}
		examples = append(examples, rank.Example{
			Parses: derivations,
			Gold:   denotations[i],
		})
	}

	return e.ranker.Fit(examples, e.featurizer)
}

// Grammar returns the engine's normalized grammar, mostly useful for
// diagnostics and tests.
func (e *Engine) Grammar() *mgrammar.Grammar { return e.grammar }
