package rank

import (
	"math"
	"math/rand"

	"github.com/dekarrin/minnow/internal/feature"
	"github.com/dekarrin/minnow/internal/mtypes"
)

// SoftmaxRanker scores a parse the same way LinearRanker does — a dot
// product of features against learned weights — but trains by maximizing
// marginal likelihood: the softmax probability mass assigned to whichever
// parses are correct, summed, rather than a single best one. Where a
// training example has several correct parses (several derivations that
// happen to compute the same gold denotation), all of them share credit
// instead of only the highest-scoring one.
//
// Softmax probabilities are computed with the standard max-logit
// subtraction before exponentiating. The reference this engine's training
// loop is modeled on computes softmax directly on raw scores, which
// overflows once scores grow past a few hundred; stabilizing here is a
// deliberate deviation, not an oversight, and produces identical
// probabilities up to floating-point rounding.
type SoftmaxRanker struct {
	weights     map[string]float64
	lastTouched map[string]int
	clock       int

	MaxEpochs int
	Tol       float64
	Eta       float64
	Lambda    float64
}

// NewSoftmaxRanker returns a SoftmaxRanker with the engine's default
// hyperparameters.
func NewSoftmaxRanker() *SoftmaxRanker {
	return &SoftmaxRanker{
		weights:     map[string]float64{},
		lastTouched: map[string]int{},
		MaxEpochs:   100,
		Tol:         1e-4,
		Eta:         1e-3,
		Lambda:      1e-3,
	}
}

func (r *SoftmaxRanker) currentWeight(f string) float64 {
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

func (r *SoftmaxRanker) touch(f string) float64 {
	w := r.currentWeight(f)
	r.weights[f] = w
	r.lastTouched[f] = r.clock
	return w
}

func (r *SoftmaxRanker) score(m feature.Map) float64 {
	var s float64
	for f, v := range m {
		s += r.currentWeight(f) * v
	}
	return s
}

// softmax returns, for each score, exp(score-max)/sum(exp(scores-max)).
// Subtracting the max logit before exponentiating keeps every term in
// (0, 1] regardless of how large the raw scores are, without changing the
// resulting distribution.
func softmax(scores []float64) []float64 {
	if len(scores) == 0 {
		return nil
	}
	max := scores[0]
	for _, s := range scores[1:] {
		if s > max {
			max = s
		}
	}
	exps := make([]float64, len(scores))
	var sum float64
	for i, s := range scores {
		exps[i] = math.Exp(s - max)
		sum += exps[i]
	}
	for i := range exps {
		exps[i] /= sum
	}
	return exps
}

// Fit runs up to MaxEpochs passes of shuffled marginal-likelihood gradient
// ascent. For each example, the gradient with respect to the weights is
// E_q[features] - E_p[features]: the feature expectation under q, the
// distribution over just the correct parses (renormalized from p), minus
// the feature expectation under p, the full softmax distribution over
// every candidate. Examples with no correct parse are skipped.
func (r *SoftmaxRanker) Fit(examples []Example, featurizer feature.Featurizer) error {
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
			isCorrect := make(map[int]bool, len(correct))
			for _, cp := range correct {
				for i, p := range ex.Parses {
					if p == cp {
						isCorrect[i] = true
					}
				}
			}

			featurized := make([]feature.Map, len(ex.Parses))
			scores := make([]float64, len(ex.Parses))
			for i, p := range ex.Parses {
				featurized[i] = featurizer.Featurize(p)
				scores[i] = r.score(featurized[i])
			}
			p := softmax(scores)

			var zCorrect float64
			for i := range ex.Parses {
				if isCorrect[i] {
					zCorrect += p[i]
				}
			}
			if zCorrect == 0 {
				// every correct parse underflowed to exactly zero mass;
				// nothing to push toward.
				r.clock++
				continue
			}

			grad := feature.Map{}
			for i, m := range featurized {
				var coeff float64
				if isCorrect[i] {
					coeff = p[i]/zCorrect - p[i]
				} else {
					coeff = -p[i]
				}
				if coeff == 0 {
					continue
				}
				for f, v := range m {
					grad[f] += coeff * v
				}
			}

			r.clock++
			for f, g := range grad {
				r.touch(f)
				r.weights[f] += r.Eta * g
			}
			epochLoss += -math.Log(zCorrect)
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
func (r *SoftmaxRanker) ScoresAndParses(parses []mtypes.Derivation, featurizer feature.Featurizer) []ScoredParse {
	return scoresAndParses(parses, featurizer, r.score)
}

// ScoresAndDenotations aggregates parses by equal computed denotation,
// keeping each group's best score, and returns the result sorted
// descending.
func (r *SoftmaxRanker) ScoresAndDenotations(parses []mtypes.Derivation, featurizer feature.Featurizer) ([]ScoredDenotation, error) {
	return scoresAndDenotations(parses, featurizer, r.score)
}

// TopParse returns the highest-scoring candidate.
func (r *SoftmaxRanker) TopParse(parses []mtypes.Derivation, featurizer feature.Featurizer) (mtypes.Derivation, bool) {
	return topParseByScore(parses, featurizer, r.score)
}

// TopDenotation returns the highest-scoring aggregated denotation.
func (r *SoftmaxRanker) TopDenotation(parses []mtypes.Derivation, featurizer feature.Featurizer) (mtypes.Denotation, error) {
	return topDenotationByScore(parses, featurizer, r.score)
}
