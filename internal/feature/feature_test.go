package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/minnow/internal/mtypes"
)

// fakeDerivation is a minimal hand-built mtypes.Derivation fixture, sparing
// us a full chart/grammar round trip to exercise the featurizers, which only
// ever look at Tag, Span, and Children.
type fakeDerivation struct {
	tag      string
	span     string
	children []mtypes.Derivation
}

func (d *fakeDerivation) Tag() string                  { return d.tag }
func (d *fakeDerivation) Category() string             { return d.tag }
func (d *fakeDerivation) Span() string                 { return d.span }
func (d *fakeDerivation) Children() []mtypes.Derivation { return d.children }
func (d *fakeDerivation) ComputeDenotation() (mtypes.Denotation, error) {
	return nil, nil
}

// builds:
//
//	ROOT "1 plus 2"
//	├── NUM "1"
//	└── PLUS "plus 2"
//	    ├── OP "plus"
//	    └── NUM "2"
func sampleTree() mtypes.Derivation {
	num1 := &fakeDerivation{tag: "NUM", span: "1"}
	op := &fakeDerivation{tag: "OP", span: "plus"}
	num2 := &fakeDerivation{tag: "NUM", span: "2"}
	plus := &fakeDerivation{tag: "PLUS", span: "plus 2", children: []mtypes.Derivation{op, num2}}
	root := &fakeDerivation{tag: "ROOT", span: "1 plus 2", children: []mtypes.Derivation{num1, plus}}
	return root
}

func Test_Counts(t *testing.T) {
	m := Counts.Featurize(sampleTree())

	want := Map{"ROOT": 1, "NUM": 2, "PLUS": 1, "OP": 1}
	for k, v := range want {
		assert.Equal(t, v, m[k], "Counts[%q]", k)
	}
}

func Test_Precedence_forksAncestorsPerChild(t *testing.T) {
	m := Precedence.Featurize(sampleTree())

	// ROOT is an ancestor of both NUM (direct child) and, transitively, of
	// OP and the second NUM.
	assert.Equal(t, float64(2), m[precedenceKey("ROOT", "NUM")], "ROOT>NUM")
	assert.Equal(t, float64(1), m[precedenceKey("ROOT", "OP")], "ROOT>OP")
	// PLUS is an ancestor of OP and the second NUM only, never of the first.
	assert.Equal(t, float64(1), m[precedenceKey("PLUS", "OP")], "PLUS>OP")
	assert.Equal(t, float64(1), m[precedenceKey("PLUS", "NUM")], "PLUS>NUM")
	// NUM is never its own ancestor, and the first NUM is never an ancestor
	// of anything (it is a leaf sibling, not an ancestor of PLUS's subtree).
	_, ok := m[precedenceKey("NUM", "OP")]
	assert.False(t, ok, "NUM>OP should not exist, the leaf NUM has no descendants")
}

func Test_Depths_minimumAcrossOccurrences(t *testing.T) {
	m := Depths.Featurize(sampleTree())

	assert.Equal(t, float64(0), m["ROOT"])
	assert.Equal(t, float64(1), m["NUM"], "shallower NUM wins over the depth-2 one")
	assert.Equal(t, float64(2), m["OP"])
}

func Test_Lengths_maximumAcrossOccurrences(t *testing.T) {
	m := Lengths.Featurize(sampleTree())

	assert.Equal(t, float64(8), m["ROOT"])
	assert.Equal(t, float64(1), m["NUM"])
	assert.Equal(t, float64(6), m["PLUS"])
}

func Test_Concat_namespacesKeysByIndex(t *testing.T) {
	combined := Concat(Counts, Depths)
	m := combined.Featurize(sampleTree())

	assert.Contains(t, m, "ROOT_0", "Counts at index 0")
	assert.Contains(t, m, "ROOT_1", "Depths at index 1")
}
