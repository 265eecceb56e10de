package rank

import (
	"github.com/dekarrin/minnow/internal/feature"
	"github.com/dekarrin/minnow/internal/mtypes"
)

// ConstantRanker assigns every candidate the same score, so the "highest
// scoring" parse is always whichever one the chart happened to list first
// for that span. It trains on nothing; Fit is a no-op. Useful as a baseline
// to diff a trained ranker's behavior against, and as the default when no
// training data is available yet.
type ConstantRanker struct{}

// NewConstantRanker returns a ConstantRanker. It carries no state, so the
// zero value would do just as well; the constructor exists for symmetry
// with LinearRanker and SoftmaxRanker.
func NewConstantRanker() *ConstantRanker {
	return &ConstantRanker{}
}

// Fit does nothing. ConstantRanker has no parameters to learn.
func (r *ConstantRanker) Fit(examples []Example, featurizer feature.Featurizer) error {
	return nil
}

func (r *ConstantRanker) score(feature.Map) float64 { return 0 }

// ScoresAndParses returns every parse with score 0, in parser order (a
// stable sort over all-equal scores is a no-op).
func (r *ConstantRanker) ScoresAndParses(parses []mtypes.Derivation, featurizer feature.Featurizer) []ScoredParse {
	return scoresAndParses(parses, featurizer, r.score)
}

// ScoresAndDenotations returns each distinct denotation with score 0, in
// first-occurrence (parser) order.
func (r *ConstantRanker) ScoresAndDenotations(parses []mtypes.Derivation, featurizer feature.Featurizer) ([]ScoredDenotation, error) {
	return scoresAndDenotations(parses, featurizer, r.score)
}

// TopParse returns the first parse, since all scores tie.
func (r *ConstantRanker) TopParse(parses []mtypes.Derivation, featurizer feature.Featurizer) (mtypes.Derivation, bool) {
	return topParseByScore(parses, featurizer, r.score)
}

// TopDenotation returns the first distinct denotation, since all scores
// tie.
func (r *ConstantRanker) TopDenotation(parses []mtypes.Derivation, featurizer feature.Featurizer) (mtypes.Denotation, error) {
	return topDenotationByScore(parses, featurizer, r.score)
}
