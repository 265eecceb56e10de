// Package chart implements a CYK-style bottom-up parser over a normalized
// grammar, integrating sub-parser contributions and interleaving lexical,
// binary, and unary rule applications within each span.
package chart

import (
	"github.com/dekarrin/minnow/internal/merrs"
	"github.com/dekarrin/minnow/internal/mgrammar"
	"github.com/dekarrin/minnow/internal/mtypes"
	"github.com/dekarrin/minnow/internal/rule"
)

// derivation is the concrete mtypes.Derivation produced by applying a
// normalized rule, whether lexical (no children), unary, or binary. Its
// denotation is computed fresh on every call, per rule semantics being
// required pure.
type derivation struct {
	tag       string
	category  string
	span      string
	children  []mtypes.Derivation
	semantics rule.Semantics
}

func (d *derivation) Tag() string      { return d.tag }
func (d *derivation) Category() string { return d.category }
func (d *derivation) Span() string     { return d.span }
func (d *derivation) Children() []mtypes.Derivation {
	return d.children
}

func (d *derivation) ComputeDenotation() (mtypes.Denotation, error) {
	childDenotations := make([]mtypes.Denotation, len(d.children))
	for i, c := range d.children {
		den, err := c.ComputeDenotation()
		if err != nil {
			return nil, err
		}
		childDenotations[i] = den
	}

	result, err := d.semantics(childDenotations)
	if err != nil {
		return nil, merrs.Evaluation(d.tag, d.span, err)
	}
	return result, nil
}

// Chart holds, for every token-index interval seen so far, the ordered list
// of derivations found to span it. Cells are keyed by a packed (i, j)
// integer rather than a stringified pair, avoiding per-lookup allocation.
type Chart struct {
	tokenCount int
	cells      map[int][]mtypes.Derivation
}

func (c *Chart) key(i, j int) int {
	return i*(c.tokenCount+1) + j
}

func (c *Chart) get(i, j int) []mtypes.Derivation {
	return c.cells[c.key(i, j)]
}

func (c *Chart) set(i, j int, ds []mtypes.Derivation) {
	c.cells[c.key(i, j)] = ds
}

// Parse tokenizes s with tok, then runs the bottom-up CYK pass described by
// the chart parser component: sub-parsers first, then lexical matches,
// then binary combinations by split point, then a single unary pass over
// each cell in insertion order. It returns every derivation spanning the
// whole input whose category is in roots, or every such derivation if
// roots is empty.
func Parse(s string, g *mgrammar.Grammar, tok mtypes.Tokenizer, subParsers []mtypes.SubParser, roots []string) ([]mtypes.Derivation, error) {
	tokens, err := tok.Tokenize(s)
	if err != nil {
		return nil, merrs.Tokenization(s, err)
	}
	t := len(tokens)
	if t == 0 {
		return nil, nil
	}

	c := &Chart{tokenCount: t, cells: make(map[int][]mtypes.Derivation)}

	for length := 1; length <= t; length++ {
		for i := 0; i+length <= t; i++ {
			j := i + length
			span := s[tokens[i].Start:tokens[j-1].End]

			var cell []mtypes.Derivation

			for _, sp := range subParsers {
				ds, err := sp.Parse(span)
				if err != nil {
					return nil, err
				}
				cell = append(cell, ds...)
			}

			tokenTexts := make([]string, length)
			for k := i; k < j; k++ {
				tokenTexts[k-i] = tokens[k].Text
			}
			lexKey := mtypes.TokenKey(tokenTexts)
			for _, r := range g.Lexical(lexKey) {
				cell = append(cell, &derivation{
					tag:       r.Tag(),
					category:  r.LHS(),
					span:      span,
					semantics: r.Semantics(),
				})
			}

			for k := i + 1; k < j; k++ {
				left := c.get(i, k)
				right := c.get(k, j)
				for _, l := range left {
					for _, rgt := range right {
						for _, r := range g.Binary(l.Category(), rgt.Category()) {
							cell = append(cell, &derivation{
								tag:       r.Tag(),
								category:  r.LHS(),
								span:      span,
								children:  []mtypes.Derivation{l, rgt},
								semantics: r.Semantics(),
							})
						}
					}
				}
			}

			// Unary rules fire exactly once per cell, iterating over the
			// length the cell had when the pass began. A derivation created
			// by this pass is not itself fed back through unary lookup
			// within the same cell, so a chain of unary rules more than one
			// level deep (A -> B, B -> C) only produces the first level
			// here; this mirrors the single-pass, insertion-order policy
			// and intentionally does not closure to a fixed point.
			n := len(cell)
			for idx := 0; idx < n; idx++ {
				p := cell[idx]
				for _, r := range g.Unary(p.Category()) {
					cell = append(cell, &derivation{
						tag:       r.Tag(),
						category:  r.LHS(),
						span:      span,
						children:  []mtypes.Derivation{p},
						semantics: r.Semantics(),
					})
				}
			}

			c.set(i, j, cell)
		}
	}

	all := c.get(0, t)
	if len(roots) == 0 {
		return all, nil
	}

	rootSet := make(map[string]bool, len(roots))
	for _, r := range roots {
		rootSet[r] = true
	}

	var filtered []mtypes.Derivation
	for _, d := range all {
		if rootSet[d.Category()] {
			filtered = append(filtered, d)
		}
	}
	return filtered, nil
}
