// Package rule implements the author-level production rule: a left-hand-side
// non-terminal, a right-hand-side sequence of symbols, and a semantics
// function that combines the denotations of its children.
package rule

import (
	"strings"

	"github.com/dekarrin/minnow/internal/merrs"
	"github.com/dekarrin/minnow/internal/mtypes"
	"github.com/dekarrin/minnow/internal/symbol"
)

// Semantics computes a rule's denotation from the denotations of its
// children, in rhs order. It must be pure with respect to its arguments;
// the engine is free to call it multiple times for the same derivation.
type Semantics func(children []mtypes.Denotation) (mtypes.Denotation, error)

// Rule is an author-level production. Once constructed with New or
// NewFromString, a Rule is immutable; there is no way to mutate its lhs, rhs,
// tag, or semantics.
type Rule struct {
	tag       string
	lhs       string
	rhs       []string
	semantics Semantics
}

// New constructs a Rule from an explicit rhs symbol sequence. It fails with
// an *merrs.InvalidRuleError if lhs is not a non-terminal, rhs is empty, or
// semantics is nil.
func New(tag, lhs string, rhs []string, semantics Semantics) (Rule, error) {
	if !symbol.IsNonTerminal(lhs) {
		return Rule{}, merrs.InvalidRule(tag, "lhs "+lhs+" is not a non-terminal")
	}
	if len(rhs) == 0 {
		return Rule{}, merrs.InvalidRule(tag, "rhs must contain at least one symbol")
	}
	if semantics == nil {
		return Rule{}, merrs.InvalidRule(tag, "semantics must not be nil")
	}

	rhsCopy := make([]string, len(rhs))
	copy(rhsCopy, rhs)

	return Rule{
		tag:       tag,
		lhs:       lhs,
		rhs:       rhsCopy,
		semantics: semantics,
	}, nil
}

// NewFromString is like New, but accepts rhs as a single whitespace-separated
// string, as permitted by the rule DSL.
func NewFromString(tag, lhs, rhs string, semantics Semantics) (Rule, error) {
	return New(tag, lhs, strings.Fields(rhs), semantics)
}

// NewNullary constructs a zero-arity Rule. Arity-0 rules are forbidden for
// authored grammar rules (New and NewFromString both reject them), but the
// grammar normalizer produces exactly one legitimate zero-arity rule per
// author rule whose entire rhs is a single optional symbol: omitting that
// symbol leaves nothing behind. NewNullary exists so the normalizer can
// construct that rule without reaching into Rule's unexported fields; it is
// not part of the rule DSL available to grammar authors.
func NewNullary(tag, lhs string, semantics Semantics) (Rule, error) {
	if !symbol.IsNonTerminal(lhs) {
		return Rule{}, merrs.InvalidRule(tag, "lhs "+lhs+" is not a non-terminal")
	}
	if semantics == nil {
		return Rule{}, merrs.InvalidRule(tag, "semantics must not be nil")
	}
	return Rule{tag: tag, lhs: lhs, rhs: nil, semantics: semantics}, nil
}

// Tag returns the rule's free-form identifier.
func (r Rule) Tag() string { return r.tag }

// LHS returns the rule's left-hand-side non-terminal.
func (r Rule) LHS() string { return r.lhs }

// RHS returns a copy of the rule's right-hand-side symbol sequence.
func (r Rule) RHS() []string {
	cp := make([]string, len(r.rhs))
	copy(cp, r.rhs)
	return cp
}

// Semantics returns the rule's semantics function.
func (r Rule) Semantics() Semantics { return r.semantics }

// Arity returns the number of symbols in the rhs.
func (r Rule) Arity() int { return len(r.rhs) }

// IsUnary returns whether the rule has exactly one rhs symbol.
func (r Rule) IsUnary() bool { return r.Arity() == 1 }

// IsBinary returns whether the rule has exactly two rhs symbols.
func (r Rule) IsBinary() bool { return r.Arity() == 2 }

// IsNary returns whether the rule has more than two rhs symbols.
func (r Rule) IsNary() bool { return r.Arity() > 2 }

// IsLexical returns whether every rhs symbol is a terminal.
func (r Rule) IsLexical() bool {
	for _, s := range r.rhs {
		if symbol.IsNonTerminal(s) {
			return false
		}
	}
	return true
}

// IsCategorical returns whether every rhs symbol is a non-terminal.
func (r Rule) IsCategorical() bool {
	for _, s := range r.rhs {
		if symbol.IsTerminal(s) {
			return false
		}
	}
	return true
}

// IsMixed returns whether the rhs contains at least one terminal and at least
// one non-terminal.
func (r Rule) IsMixed() bool {
	return !r.IsLexical() && !r.IsCategorical()
}

// HasOptionals returns whether any rhs symbol carries the optional marker.
func (r Rule) HasOptionals() bool {
	for _, s := range r.rhs {
		if symbol.IsOptional(s) {
			return true
		}
	}
	return false
}

// String gives a compact human-readable rendering of the rule, useful for
// debugging normalization and chart traces.
func (r Rule) String() string {
	return r.tag + ": " + r.lhs + " -> " + strings.Join(r.rhs, " ")
}
