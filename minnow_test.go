package minnow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/minnow/internal/merrs"
	"github.com/dekarrin/minnow/internal/rank"
)

func arithRules(t *testing.T) []Rule {
	t.Helper()

	one, err := NewRule("ONE", "$Expr", "one", func(c []Denotation) (Denotation, error) { return 1, nil })
	require.NoError(t, err, "ONE")
	two, err := NewRule("TWO", "$Expr", "two", func(c []Denotation) (Denotation, error) { return 2, nil })
	require.NoError(t, err, "TWO")
	plus, err := NewRule("PLUS", "$Expr", "$Expr plus $Expr", func(c []Denotation) (Denotation, error) {
		return c[0].(int) + c[len(c)-1].(int), nil
	})
	require.NoError(t, err, "PLUS")
	minus, err := NewRule("MINUS", "$Expr", "$Expr minus $Expr", func(c []Denotation) (Denotation, error) {
		return c[0].(int) - c[len(c)-1].(int), nil
	})
	require.NoError(t, err, "MINUS")

	return []Rule{one, two, plus, minus}
}

func Test_Engine_ParsesAndComputesDenotation(t *testing.T) {
	e, err := New(arithRules(t))
	require.NoError(t, err)

	den, err := e.TopDenotation("one plus two")
	require.NoError(t, err)
	assert.Equal(t, 3, den)
}

func Test_Engine_NoParseError(t *testing.T) {
	e, err := New(arithRules(t))
	require.NoError(t, err)

	_, err = e.Parse("completely unrelated gibberish")
	require.Error(t, err)
	assert.Contains(t, merrs.Friendly(err), "Expr")
}

func Test_Engine_TrainRejectsLengthMismatch(t *testing.T) {
	e, err := New(arithRules(t))
	require.NoError(t, err)

	err = e.Train([]string{"one plus two"}, []Denotation{3, 4})
	assert.Error(t, err)
}

func Test_Engine_TrainsLinearRanker(t *testing.T) {
	e, err := New(arithRules(t), WithRanker(rank.NewLinearRanker()))
	require.NoError(t, err)

	utterances := []string{"one plus two", "two minus one"}
	denotations := []Denotation{3, 1}
	require.NoError(t, e.Train(utterances, denotations))

	for i, u := range utterances {
		den, err := e.TopDenotation(u)
		require.NoError(t, err, "TopDenotation(%q)", u)
		assert.Equal(t, denotations[i], den, "TopDenotation(%q)", u)
	}
}
