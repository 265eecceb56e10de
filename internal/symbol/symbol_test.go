package symbol

import "testing"

func Test_IsNonTerminal(t *testing.T) {
	testCases := []struct {
		name   string
		symbol string
		expect bool
	}{
		{"multi-char non-terminal", "$NP", true},
		{"bare dollar is terminal", "$", false},
		{"plain word", "the", false},
		{"single char", "a", false},
		{"optional non-terminal is not classified as non-terminal", "?$NP", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := IsNonTerminal(tc.symbol)
			if actual != tc.expect {
				t.Errorf("IsNonTerminal(%q) = %v; expect %v", tc.symbol, actual, tc.expect)
			}
		})
	}
}

func Test_IsTerminal(t *testing.T) {
	if !IsTerminal("minus") {
		t.Error("expected \"minus\" to be terminal")
	}
	if IsTerminal("$NP") {
		t.Error("expected \"$NP\" to not be terminal")
	}
}

func Test_IsOptional(t *testing.T) {
	testCases := []struct {
		symbol string
		expect bool
	}{
		{"?the", true},
		{"?", false},
		{"$NP", false},
		{"?$NP", true},
	}

	for _, tc := range testCases {
		actual := IsOptional(tc.symbol)
		if actual != tc.expect {
			t.Errorf("IsOptional(%q) = %v; expect %v", tc.symbol, actual, tc.expect)
		}
	}
}

func Test_StripOptional(t *testing.T) {
	testCases := []struct {
		symbol string
		expect string
	}{
		{"?the", "the"},
		{"?$NP", "$NP"},
		{"$NP", "$NP"},
		{"the", "the"},
	}

	for _, tc := range testCases {
		actual := StripOptional(tc.symbol)
		if actual != tc.expect {
			t.Errorf("StripOptional(%q) = %q; expect %q", tc.symbol, actual, tc.expect)
		}

		// idempotence
		twice := StripOptional(actual)
		if twice != actual {
			t.Errorf("StripOptional not idempotent for %q: got %q then %q", tc.symbol, actual, twice)
		}
	}
}
