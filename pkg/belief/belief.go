// Package belief implements Bayesian sight-level inference (C5): a discrete
// belief over how many plies deep an opponent is looking, updated from
// observed moves via a fixed link matrix.
package belief

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"k8s.io/klog/v2"
)

// Belief is a probability vector over sight levels 1..K (index 0 is level 1).
type Belief struct {
	vec *mat.VecDense
}

// NewUniformBelief returns a belief with equal mass on all K levels.
func NewUniformBelief(k int) Belief {
	data := make([]float64, k)
	for i := range data {
		data[i] = 1.0 / float64(k)
	}
	return Belief{vec: mat.NewVecDense(k, data)}
}

// NewBelief wraps an existing probability vector. It does not renormalize;
// callers passing raw evidence should use UpdatePrior instead.
func NewBelief(values []float64) Belief {
	return Belief{vec: mat.NewVecDense(len(values), append([]float64(nil), values...))}
}

// Len is the number of sight levels this belief ranges over (K).
func (b Belief) Len() int { return b.vec.Len() }

// At returns the probability mass on sight level (1-indexed) level.
func (b Belief) At(level int) float64 { return b.vec.AtVec(level - 1) }

// Values returns the belief as a plain slice, index i holding level i+1.
func (b Belief) Values() []float64 {
	out := make([]float64, b.vec.Len())
	for i := range out {
		out[i] = b.vec.AtVec(i)
	}
	return out
}

// LinkMatrix is the K x K likelihood matrix: L[i][j] is the probability
// that an opponent whose true sight level is i produces evidence consistent
// with level j. Rows are not required to sum to 1; UpdatePrior renormalizes
// the posterior.
type LinkMatrix struct {
	m *mat.Dense
	k int
}

// DefaultLinkMatrix is the reference 5-level matrix, diagonally dominant
// with 0.6 likelihood mass on the true level. Each of its columns sums to
// 1; its rows sum to between 0.9 and 1.1, so Validate (which checks rows)
// reports rows 0 through 4 of it as invalid.
func DefaultLinkMatrix() LinkMatrix {
	rows := [][]float64{
		{0.6, 0.15, 0.05, 0.05, 0.05},
		{0.2, 0.6, 0.15, 0.05, 0.05},
		{0.1, 0.15, 0.6, 0.15, 0.1},
		{0.05, 0.05, 0.15, 0.6, 0.2},
		{0.05, 0.05, 0.05, 0.15, 0.6},
	}
	return NewLinkMatrix(rows)
}

// NewLinkMatrix builds a link matrix from a dense K x K slice of rows.
func NewLinkMatrix(rows [][]float64) LinkMatrix {
	k := len(rows)
	flat := make([]float64, 0, k*k)
	for _, r := range rows {
		flat = append(flat, r...)
	}
	return LinkMatrix{m: mat.NewDense(k, k, flat), k: k}
}

// Validate reports every malformed row (not summing to ~1, negative entries)
// at once.
func (l LinkMatrix) Validate() error {
	var bad []int
	for i := 0; i < l.k; i++ {
		sum := 0.0
		for j := 0; j < l.k; j++ {
			v := l.m.At(i, j)
			if v < 0 {
				bad = append(bad, i)
				break
			}
			sum += v
		}
		if sum < 0.999 || sum > 1.001 {
			bad = append(bad, i)
		}
	}
	if len(bad) > 0 {
		return errors.Errorf("link matrix rows %v are not valid probability distributions", bad)
	}
	return nil
}

// LambdaEvidence is the observation likelihood vector passed to UpdatePrior:
// 1 at every sight level whose prediction matched the observed move, or
// all-ones ("no evidence") when none matched.
type LambdaEvidence struct {
	vec *mat.VecDense
}

// FromMatches builds the evidence vector directly from which sight levels
// agreed with the observed move: matched[i] is true when level i+1's
// prediction equals what the opponent actually played. Falls back to the
// all-ones "no evidence" vector if nothing matched.
func FromMatches(matched []bool) LambdaEvidence {
	k := len(matched)
	data := make([]float64, k)
	any := false
	for i, m := range matched {
		if m {
			data[i] = 1.0
			any = true
		}
	}
	if !any {
		for i := range data {
			data[i] = 1.0
		}
	}
	return LambdaEvidence{vec: mat.NewVecDense(k, data)}
}

// Observed builds a one-hot evidence vector with mass only at
// observedLevel (1-indexed). Exposed for tests and callers that already
// know a single matching level; production callers normally go through
// FromMatches, since spec.md's lambda evidence sets every matching level to
// 1, not just the first.
func Observed(k, observedLevel int) LambdaEvidence {
	data := make([]float64, k)
	data[observedLevel-1] = 1.0
	return LambdaEvidence{vec: mat.NewVecDense(k, data)}
}

// NoEvidence is the all-ones fallback used when the observed move matches
// no sight level's prediction (or none was observed).
func NoEvidence(k int) LambdaEvidence {
	data := make([]float64, k)
	for i := range data {
		data[i] = 1.0
	}
	return LambdaEvidence{vec: mat.NewVecDense(k, data)}
}

// UpdatePrior computes the Bayesian posterior over sight levels: message
// mu = lambda . L (lambda as a row vector against L), unnormalized
// posterior[j] = prior[j] * mu[j], renormalized to sum to 1.
func UpdatePrior(prior Belief, lambda LambdaEvidence, link LinkMatrix) (Belief, error) {
	k := prior.Len()
	if lambda.vec.Len() != k || link.k != k {
		return Belief{}, errors.Errorf("dimension mismatch: prior=%d lambda=%d link=%d", k, lambda.vec.Len(), link.k)
	}

	mu := mat.NewVecDense(k, nil)
	mu.MulVec(link.m.T(), lambda.vec)

	posterior := mat.NewVecDense(k, nil)
	sum := 0.0
	for j := 0; j < k; j++ {
		v := prior.At(j+1) * mu.AtVec(j)
		posterior.SetVec(j, v)
		sum += v
	}
	if sum <= 0 {
		return Belief{}, errors.New("posterior collapsed to zero mass")
	}
	for j := 0; j < k; j++ {
		posterior.SetVec(j, posterior.AtVec(j)/sum)
	}

	klog.V(1).Infof("belief: updated posterior=%v", posterior.RawVector().Data)
	return Belief{vec: posterior}, nil
}

// IsInferrable reports whether belief concentrates at least tau probability
// mass on some single sight level, and if so, the smallest such level
// (matching the reference implementation's left-to-right scan).
func IsInferrable(b Belief, tau float64) (int, bool) {
	for level := 1; level <= b.Len(); level++ {
		if b.At(level) >= tau {
			return level, true
		}
	}
	return 0, false
}
