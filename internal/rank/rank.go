// Package rank scores competing derivations for an utterance and picks the
// best one. A Ranker is trained against utterances whose correct denotation
// is already known; training never needs gold derivations, only a gold
// denotation to test each candidate's computed denotation against.
package rank

import (
	"reflect"
	"sort"

	"github.com/dekarrin/minnow/internal/feature"
	"github.com/dekarrin/minnow/internal/mtypes"
)

// Example is one training instance: the full set of candidate parses the
// chart produced for an utterance, paired with the denotation that
// utterance is known to mean. A parse is "correct" for training purposes
// when its computed denotation deep-equals Gold.
type Example struct {
	Parses []mtypes.Derivation
	Gold   mtypes.Denotation
}

// ScoredParse pairs a derivation with the score a Ranker gave it.
type ScoredParse struct {
	Score float64
	Parse mtypes.Derivation
}

// ScoredDenotation pairs a denotation with the score a Ranker gave it, after
// aggregating every candidate parse that reduced to an equal denotation.
type ScoredDenotation struct {
	Score      float64
	Denotation mtypes.Denotation
}

// Ranker scores a set of candidate parses for a single utterance and picks
// the highest-scoring one. Scores are only comparable within a single call
// to one ranker; they carry no meaning across rankers or across calls to a
// ranker mid-training.
type Ranker interface {
	// Fit trains the ranker's internal parameters against examples, using
	// featurizer to turn each candidate parse into a feature vector.
	Fit(examples []Example, featurizer feature.Featurizer) error

	// ScoresAndParses scores every parse and returns them sorted by
	// descending score; ties preserve parses's original relative order.
	ScoresAndParses(parses []mtypes.Derivation, featurizer feature.Featurizer) []ScoredParse

	// ScoresAndDenotations is ScoresAndParses, but with parses sharing an
	// equal computed denotation merged into one entry carrying the highest
	// of their scores, sorted by descending score. An error here is always
	// an EvaluationError surfaced by some candidate's semantics.
	ScoresAndDenotations(parses []mtypes.Derivation, featurizer feature.Featurizer) ([]ScoredDenotation, error)

	// TopParse returns the highest-scoring candidate. ok is false when
	// parses is empty.
	TopParse(parses []mtypes.Derivation, featurizer feature.Featurizer) (top mtypes.Derivation, ok bool)

	// TopDenotation returns the highest-scoring aggregated denotation.
	TopDenotation(parses []mtypes.Derivation, featurizer feature.Featurizer) (mtypes.Denotation, error)
}

func correctParses(parses []mtypes.Derivation, gold mtypes.Denotation) ([]mtypes.Derivation, error) {
	var correct []mtypes.Derivation
	for _, p := range parses {
		den, err := p.ComputeDenotation()
		if err != nil {
			return nil, err
		}
		if reflect.DeepEqual(den, gold) {
			correct = append(correct, p)
		}
	}
	return correct, nil
}

// scoresAndParses scores every parse with scoreFn and returns them sorted
// descending by score, stable on ties.
func scoresAndParses(parses []mtypes.Derivation, featurizer feature.Featurizer, scoreFn func(feature.Map) float64) []ScoredParse {
	scored := make([]ScoredParse, len(parses))
	for i, p := range parses {
		scored[i] = ScoredParse{Score: scoreFn(featurizer.Featurize(p)), Parse: p}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	return scored
}

// scoresAndDenotations reduces every parse to its computed denotation,
// merges parses sharing an equal (reflect.DeepEqual) denotation into one
// entry holding the best of their scores, and returns the result sorted
// descending by score, stable on ties (by first occurrence in parses).
func scoresAndDenotations(parses []mtypes.Derivation, featurizer feature.Featurizer, scoreFn func(feature.Map) float64) ([]ScoredDenotation, error) {
	var aggregated []ScoredDenotation

	for _, p := range parses {
		den, err := p.ComputeDenotation()
		if err != nil {
			return nil, err
		}
		score := scoreFn(featurizer.Featurize(p))

		merged := false
		for i := range aggregated {
			if reflect.DeepEqual(aggregated[i].Denotation, den) {
				if score > aggregated[i].Score {
					aggregated[i].Score = score
				}
				merged = true
				break
			}
		}
		if !merged {
			aggregated = append(aggregated, ScoredDenotation{Score: score, Denotation: den})
		}
	}

	sort.SliceStable(aggregated, func(i, j int) bool { return aggregated[i].Score > aggregated[j].Score })
	return aggregated, nil
}

func topParseByScore(parses []mtypes.Derivation, featurizer feature.Featurizer, scoreFn func(feature.Map) float64) (mtypes.Derivation, bool) {
	scored := scoresAndParses(parses, featurizer, scoreFn)
	if len(scored) == 0 {
		return nil, false
	}
	return scored[0].Parse, true
}

func topDenotationByScore(parses []mtypes.Derivation, featurizer feature.Featurizer, scoreFn func(feature.Map) float64) (mtypes.Denotation, error) {
	scored, err := scoresAndDenotations(parses, featurizer, scoreFn)
	if err != nil {
		return nil, err
	}
	if len(scored) == 0 {
		return nil, nil
	}
	return scored[0].Denotation, nil
}
