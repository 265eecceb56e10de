package demo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dekarrin/minnow"
)

func newArithEngine(t *testing.T) *minnow.Engine {
	t.Helper()

	e, err := minnow.New(ArithGrammar(), minnow.WithSubParsers(NumeralSubParser()))
	require.NoError(t, err)
	return e
}

func Test_ArithGrammar_scenario1_bareNumberWord(t *testing.T) {
	e := newArithEngine(t)

	den, err := e.TopDenotation("one")
	require.NoError(t, err)
	require.Equal(t, 1, den)
}

func Test_ArithGrammar_scenario2_doubleNegation(t *testing.T) {
	e := newArithEngine(t)

	den, err := e.TopDenotation("minus minus three")
	require.NoError(t, err)
	require.Equal(t, 3, den)
}

func Test_ArithGrammar_scenario3_chainedPlusMinus(t *testing.T) {
	e := newArithEngine(t)

	den, err := e.TopDenotation("one plus two minus three")
	require.NoError(t, err)
	require.Equal(t, 0, den)
}

func Test_ArithGrammar_scenario4_questionWrapperWithDigitNumerals(t *testing.T) {
	e := newArithEngine(t)

	den, err := e.TopDenotation("What is 43 plus 21?")
	require.NoError(t, err)
	require.Equal(t, 64, den)
}
