package rank

import (
	"math"
	"math/rand"

	"github.com/dekarrin/minnow/internal/feature"
	"github.com/dekarrin/minnow/internal/mtypes"
)

// LinearRanker scores a parse as the dot product of its feature vector with
// a learned weight vector, trained by structured-margin updates: for each
// training example, push the score of the best-scoring correct parse above
// the best-scoring incorrect parse by at least Margin, nudging weights
// toward the correct parse's features and away from the incorrect parse's.
//
// L2 regularization is applied lazily. Rather than decaying every weight on
// every update (expensive when most features are untouched by a given
// example), each weight remembers the clock tick it was last touched; the
// decay owed since then is folded in the next time that weight is read or
// written, via currentWeight.
type LinearRanker struct {
	weights     map[string]float64
	lastTouched map[string]int
	clock       int

	MaxEpochs int
	Tol       float64
	Eta       float64
	Lambda    float64
	Margin    float64
}

// NewLinearRanker returns a LinearRanker with the engine's default
// hyperparameters.
func NewLinearRanker() *LinearRanker {
	return &LinearRanker{
		weights:     map[string]float64{},
		lastTouched: map[string]int{},
		MaxEpochs:   100,
		Tol:         1e-2,
		Eta:         1e-2,
		Lambda:      1e-2,
		Margin:      1,
	}
}

func (r *LinearRanker) currentWeight(f string) float64 {
	w, ok := r.weights[f]
	if !ok {
		return 0
	}
	gap := r.clock - r.lastTouched[f]
	if gap > 0 {
		w *= math.Pow(1-r.Eta*r.Lambda, float64(gap))
	}
	return w
}

func (r *LinearRanker) touch(f string) float64 {
	w := r.currentWeight(f)
	r.weights[f] = w
	r.lastTouched[f] = r.clock
	return w
}

func (r *LinearRanker) score(m feature.Map) float64 {
	var s float64
	for f, v := range m {
		s += r.currentWeight(f) * v
	}
	return s
}

// applyUpdate nudges weights toward correct's features and away from
// incorrect's, each scaled by Eta, catching up lazy L2 decay on every
// feature touched by either side first.
func (r *LinearRanker) applyUpdate(correct, incorrect feature.Map) {
	for f, v := range correct {
		r.touch(f)
		r.weights[f] += r.Eta * v
	}
	for f, v := range incorrect {
		r.touch(f)
		r.weights[f] -= r.Eta * v
	}
}

// Fit runs up to MaxEpochs passes of shuffled structured-margin updates,
// stopping early once the epoch's summed margin loss differs from the
// previous epoch's by no more than Tol.
// Examples with no parse whose denotation matches Gold are skipped: there
// is nothing correct to push the weights toward.
func (r *LinearRanker) Fit(examples []Example, featurizer feature.Featurizer) error {
	order := make([]int, len(examples))
	for i := range order {
		order[i] = i
	}

	var prevLoss float64
	first := true

	for epoch := 0; epoch < r.MaxEpochs; epoch++ {
		rand.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		var epochLoss float64
		for _, idx := range order {
			ex := examples[idx]
			correct, err := correctParses(ex.Parses, ex.Gold)
			if err != nil {
				return err
			}
			if len(correct) == 0 {
				continue
			}

			featurized := make([]feature.Map, len(ex.Parses))
			scores := make([]float64, len(ex.Parses))
			for i, p := range ex.Parses {
				featurized[i] = featurizer.Featurize(p)
				scores[i] = r.score(featurized[i])
			}

			isCorrect := make(map[int]bool, len(correct))
			for _, cp := range correct {
				for i, p := range ex.Parses {
					if p == cp {
						isCorrect[i] = true
					}
				}
			}

			bestCorrect := -1
			for i := range ex.Parses {
				if isCorrect[i] && (bestCorrect == -1 || scores[i] > scores[bestCorrect]) {
					bestCorrect = i
				}
			}
			sStar := scores[bestCorrect]

			// violator set: every incorrect parse whose score comes within
			// Margin of the best correct parse's score.
			var violators []int
			for i := range ex.Parses {
				if isCorrect[i] {
					continue
				}
				if sStar-scores[i] < r.Margin {
					violators = append(violators, i)
				}
			}

			r.clock++
			for _, vi := range violators {
				loss := scores[vi] + r.Margin - sStar
				if loss > 0 {
					epochLoss += loss
				}
				r.applyUpdate(featurized[bestCorrect], featurized[vi])
			}
		}

		if !first && math.Abs(epochLoss-prevLoss) <= r.Tol {
			break
		}
		prevLoss = epochLoss
		first = false
	}
	return nil
}

// ScoresAndParses scores every parse and returns them sorted descending.
func (r *LinearRanker) ScoresAndParses(parses []mtypes.Derivation, featurizer feature.Featurizer) []ScoredParse {
	return scoresAndParses(parses, featurizer, r.score)
}

// ScoresAndDenotations aggregates parses by equal computed denotation,
// keeping each group's best score, and returns the result sorted
// descending.
func (r *LinearRanker) ScoresAndDenotations(parses []mtypes.Derivation, featurizer feature.Featurizer) ([]ScoredDenotation, error) {
	return scoresAndDenotations(parses, featurizer, r.score)
}

// TopParse returns the highest-scoring candidate.
func (r *LinearRanker) TopParse(parses []mtypes.Derivation, featurizer feature.Featurizer) (mtypes.Derivation, bool) {
	return topParseByScore(parses, featurizer, r.score)
}

// TopDenotation returns the highest-scoring aggregated denotation.
func (r *LinearRanker) TopDenotation(parses []mtypes.Derivation, featurizer feature.Featurizer) (mtypes.Denotation, error) {
	return topDenotationByScore(parses, featurizer, r.score)
}
