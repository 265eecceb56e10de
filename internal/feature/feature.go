// Package feature extracts sparse numeric feature maps from derivation
// trees. Every featurizer here is a pure, deterministic function of the
// tree's shape (tags, categories, spans): none of them touch denotations,
// so they never need to evaluate rule semantics.
package feature

import (
	"fmt"

	"github.com/dekarrin/minnow/internal/mtypes"
)

// Map is a sparse feature vector: feature name to value. Absent keys are
// treated as zero by the rankers.
type Map map[string]float64

// Featurizer maps a derivation to a sparse feature Map.
type Featurizer interface {
	Featurize(d mtypes.Derivation) Map
}

// Func adapts a plain function to the Featurizer interface.
type Func func(d mtypes.Derivation) Map

// Featurize calls f(d).
func (f Func) Featurize(d mtypes.Derivation) Map { return f(d) }

// Counts increments counts[node.tag] for every node in the tree, visited
// pre-order.
var Counts Featurizer = Func(func(d mtypes.Derivation) Map {
	m := Map{}
	walkCounts(d, m)
	return m
})

func walkCounts(d mtypes.Derivation, m Map) {
	m[d.Tag()]++
	for _, c := range d.Children() {
		walkCounts(c, m)
	}
}

// Precedence maintains the set of ancestor tags on the current
// root-to-node path; at each node with tag t it increments features[a, t]
// for every ancestor tag a. The ancestor set is forked, not shared by
// reference, at each recursive descent, so that one child's additions to
// the path never leak into a sibling's.
var Precedence Featurizer = Func(func(d mtypes.Derivation) Map {
	m := Map{}
	walkPrecedence(d, nil, m)
	return m
})

func walkPrecedence(d mtypes.Derivation, ancestors []string, m Map) {
	t := d.Tag()
	for _, a := range ancestors {
		m[precedenceKey(a, t)]++
	}

	childAncestors := make([]string, len(ancestors)+1)
	copy(childAncestors, ancestors)
	childAncestors[len(ancestors)] = t

	for _, c := range d.Children() {
		// fork: each child gets its own copy of childAncestors, so that
		// mutations a sibling's subtree would otherwise make (there are
		// none here, since we only ever append to a fresh slice) cannot be
		// observed across siblings.
		siblingAncestors := make([]string, len(childAncestors))
		copy(siblingAncestors, childAncestors)
		walkPrecedence(c, siblingAncestors, m)
	}
}

func precedenceKey(ancestor, tag string) string {
	return ancestor + ">" + tag
}

// Depths records, for each tag, the minimum depth at which any node with
// that tag appears. The root is depth 0.
var Depths Featurizer = Func(func(d mtypes.Derivation) Map {
	m := Map{}
	walkDepths(d, 0, m)
	return m
})

func walkDepths(d mtypes.Derivation, depth int, m Map) {
	t := d.Tag()
	if existing, ok := m[t]; !ok || float64(depth) < existing {
		m[t] = float64(depth)
	}
	for _, c := range d.Children() {
		walkDepths(c, depth+1, m)
	}
}

// Lengths records, for each tag, the maximum character length of span
// across all nodes with that tag.
var Lengths Featurizer = Func(func(d mtypes.Derivation) Map {
	m := Map{}
	walkLengths(d, m)
	return m
})

func walkLengths(d mtypes.Derivation, m Map) {
	t := d.Tag()
	length := float64(len([]rune(d.Span())))
	if existing, ok := m[t]; !ok || length > existing {
		m[t] = length
	}
	for _, c := range d.Children() {
		walkLengths(c, m)
	}
}

// Concat runs each of fs in turn and namespaces its output keys with a
// "_i" suffix (i being the sub-featurizer's index), guaranteeing unique
// output keys even when sub-featurizers share key names.
func Concat(fs ...Featurizer) Featurizer {
	return Func(func(d mtypes.Derivation) Map {
		m := Map{}
		for i, f := range fs {
			sub := f.Featurize(d)
			suffix := fmt.Sprintf("_%d", i)
			for k, v := range sub {
				m[k+suffix] = v
			}
		}
		return m
	})
}
