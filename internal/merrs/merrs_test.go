package merrs

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_NoParse_friendlyListsRoots(t *testing.T) {
	err := NoParse("xyzzy", "$Expr", "$Query")

	assert.Equal(t, `no parse found for "xyzzy"`, err.Error())
	assert.Equal(t, "I don't understand that. Try asking about: $Expr and $Query.", Friendly(err))
}

func Test_NoParse_friendlyWithoutRoots(t *testing.T) {
	err := NoParse("xyzzy")

	assert.Equal(t, "I don't understand that.", Friendly(err))
}

func Test_Friendly_fallsBackToErrorForOtherKinds(t *testing.T) {
	err := InvalidSymbol("$$bad", "doubled sigil")

	assert.Equal(t, err.Error(), Friendly(err))
}

func Test_Friendly_unwrapsThroughWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("handling input: %w", NoParse("xyzzy"))

	assert.Equal(t, "I don't understand that.", Friendly(wrapped))
}
