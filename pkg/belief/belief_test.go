package belief

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdatePriorNormalizesToOne(t *testing.T) {
	prior := NewUniformBelief(5)
	link := DefaultLinkMatrix()
	lambda := Observed(5, 3)

	posterior, err := UpdatePrior(prior, lambda, link)
	require.NoError(t, err)

	sum := 0.0
	for _, v := range posterior.Values() {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestUpdatePriorSingleLevelMatchWeightsTowardsThatColumn(t *testing.T) {
	// With a one-hot lambda at level 3, mu[j] = L[3][j] (the third row of
	// the link matrix, 1-indexed), so the posterior over a uniform prior
	// is proportional to that row, peaking at its own diagonal entry.
	prior := NewUniformBelief(5)
	link := DefaultLinkMatrix()
	lambda := Observed(5, 3)

	posterior, err := UpdatePrior(prior, lambda, link)
	require.NoError(t, err)

	values := posterior.Values()
	maxIdx := 0
	for i, v := range values {
		if v > values[maxIdx] {
			maxIdx = i
		}
	}
	assert.Equal(t, 2, maxIdx, "peak should land on level 3 (index 2)")

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestUpdatePriorUnanimousAgreementIsUninformativeUnderColumnStochasticLink(t *testing.T) {
	// When every sight level predicts the same move the opponent actually
	// played, lambda evidence is all-ones: the reference link matrix is
	// column-stochastic, so this is mathematically indistinguishable from
	// "no evidence" and a uniform prior is left unchanged.
	prior := NewUniformBelief(5)
	link := DefaultLinkMatrix()

	agreement, err := UpdatePrior(prior, FromMatches([]bool{true, true, true, true, true}), link)
	require.NoError(t, err)
	noEvidence, err := UpdatePrior(prior, NoEvidence(5), link)
	require.NoError(t, err)

	for i := range agreement.Values() {
		assert.InDelta(t, noEvidence.At(i+1), agreement.At(i+1), 1e-9)
	}
}

func TestIsInferrableRequiresConcentration(t *testing.T) {
	b := NewBelief([]float64{0.2, 0.2, 0.2, 0.2, 0.2})
	_, ok := IsInferrable(b, 0.98)
	assert.False(t, ok)

	concentrated := NewBelief([]float64{0.0, 0.0, 0.99, 0.0, 0.01})
	level, ok := IsInferrable(concentrated, 0.98)
	assert.True(t, ok)
	assert.Equal(t, 3, level)
}

func TestIsInferrableReturnsSmallestQualifyingLevel(t *testing.T) {
	b := NewBelief([]float64{0.99, 0.0, 0.0, 0.0, 0.01})
	level, ok := IsInferrable(b, 0.98)
	require.True(t, ok)
	assert.Equal(t, 1, level)
}

func TestLinkMatrixValidateRejectsBadRows(t *testing.T) {
	bad := NewLinkMatrix([][]float64{
		{0.5, 0.5},
		{1.0, 1.0},
	})
	assert.Error(t, bad.Validate())

	good := NewLinkMatrix([][]float64{
		{0.5, 0.5},
		{0.3, 0.7},
	})
	assert.NoError(t, good.Validate())
}

func TestNoEvidenceProducesUnchangedRankOrdering(t *testing.T) {
	prior := NewBelief([]float64{0.4, 0.3, 0.2, 0.05, 0.05})
	link := DefaultLinkMatrix()
	lambda := NoEvidence(5)

	posterior, err := UpdatePrior(prior, lambda, link)
	require.NoError(t, err)

	// all-ones evidence makes mu[j] the sum of link matrix column j; every
	// column of the reference matrix sums to 1, so mu is all ones and the
	// posterior equals the prior. This test checks that the strongest prior
	// level stays on top.
	values := posterior.Values()
	maxIdx := 0
	for i, v := range values {
		if v > values[maxIdx] {
			maxIdx = i
		}
	}
	assert.Equal(t, 0, maxIdx)
}
