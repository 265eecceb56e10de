package util

// StringSet is a small set of strings, used by the grammar normalizer to
// track which synthetic lexical and binarization keys it has already
// generated so that repeated expansions of the same terminal or the same
// rhs prefix do not install duplicate rules.
type StringSet map[string]bool

// NewStringSet returns an empty StringSet.
func NewStringSet() StringSet {
	return StringSet{}
}

// Has returns whether value is in the set.
func (s StringSet) Has(value string) bool {
	return s[value]
}

// Add adds value to the set. Adding a value already present has no effect.
func (s StringSet) Add(value string) {
	s[value] = true
}
