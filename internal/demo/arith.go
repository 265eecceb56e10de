// Package demo provides a small built-in grammar for cmd/minnow to parse
// against out of the box, so the CLI has something to demonstrate without
// requiring a caller to author their own rule set first. It is not meant to
// be a serious semantic parsing grammar, just large enough to exercise
// optional symbols, mixed rules, and n-ary rules all at once.
package demo

import (
	"strconv"
	"strings"

	"github.com/dekarrin/minnow"
)

var numberWords = []string{
	"zero", "one", "two", "three", "four", "five",
	"six", "seven", "eight", "nine", "ten",
}

// ArithGrammar returns the rule set for a tiny arithmetic phrase language:
// number words, plus/minus/times over two expressions, an optional leading
// "what is" question wrapper, and an optional trailing "please".
func ArithGrammar() []minnow.Rule {
	var rules []minnow.Rule

	for i, word := range numberWords {
		n := i
		r, err := minnow.NewRule("NUM_"+word, "$Expr", word, func(children []minnow.Denotation) (minnow.Denotation, error) {
			return n, nil
		})
		if err != nil {
			panic(err) // built-in grammar; a construction failure here is a programming error
		}
		rules = append(rules, r)
	}

	plus, err := minnow.NewRule("PLUS", "$Expr", "$Expr plus $Expr", func(c []minnow.Denotation) (minnow.Denotation, error) {
		// c[1] is the lifted literal "plus" itself; the operands are c[0]
		// and the last slot.
		return c[0].(int) + c[len(c)-1].(int), nil
	})
	if err != nil {
		panic(err)
	}
	minus, err := minnow.NewRule("MINUS", "$Expr", "$Expr minus $Expr", func(c []minnow.Denotation) (minnow.Denotation, error) {
		return c[0].(int) - c[len(c)-1].(int), nil
	})
	if err != nil {
		panic(err)
	}
	times, err := minnow.NewRule("TIMES", "$Expr", "$Expr times $Expr", func(c []minnow.Denotation) (minnow.Denotation, error) {
		return c[0].(int) * c[len(c)-1].(int), nil
	})
	if err != nil {
		panic(err)
	}
	negate, err := minnow.NewRule("NEGATE", "$Expr", "minus $Expr", func(c []minnow.Denotation) (minnow.Denotation, error) {
		return -c[len(c)-1].(int), nil
	})
	if err != nil {
		panic(err)
	}

	question, err := minnow.NewRule("QUESTION", "$Query", "?what ?is $Expr ?please", func(c []minnow.Denotation) (minnow.Denotation, error) {
		return c[len(c)-2], nil
	})
	if err != nil {
		panic(err)
	}

	rules = append(rules, plus, minus, times, negate, question)
	return rules
}

// numeralDerivation is a leaf derivation produced directly by
// NumeralSubParser, standing in for a digit string the grammar's own
// lexical rules have no entry for.
type numeralDerivation struct {
	span  string
	value int
}

func (d *numeralDerivation) Tag() string                   { return "NUMERAL" }
func (d *numeralDerivation) Category() string              { return "$Expr" }
func (d *numeralDerivation) Span() string                  { return d.span }
func (d *numeralDerivation) Children() []minnow.Derivation { return nil }
func (d *numeralDerivation) ComputeDenotation() (minnow.Denotation, error) {
	return d.value, nil
}

// NumeralSubParser recognizes a bare run of ASCII digits (optionally
// surrounded by whitespace, since the chart calls a sub-parser with the
// verbatim span including any interior spacing) as an $Expr, letting
// utterances mix digit strings like "43" with the grammar's own number
// words. It declines every other span by returning no derivations.
func NumeralSubParser() minnow.SubParser {
	return minnow.SubParserFunc(func(s string) ([]minnow.Derivation, error) {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			return nil, nil
		}
		for _, r := range trimmed {
			if r < '0' || r > '9' {
				return nil, nil
			}
		}
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return nil, nil
		}
		return []minnow.Derivation{&numeralDerivation{span: s, value: n}}, nil
	})
}
