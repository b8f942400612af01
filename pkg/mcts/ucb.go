package mcts

import (
	"math"
	"math/rand"
)

// selectUCT returns the index of the child of parent with the highest UCB1
// score. An untried move is never reached here: expansion always happens
// before selection descends past a node with Untried moves remaining.
func selectUCT[M Move](parent *Node[M], c float64) int {
	best := -1
	bestScore := -1.0
	lnParentVisits := math.Log(float64(parent.Visits))

	for i := range parent.Children {
		child := &parent.Children[i]
		if child.Visits == 0 {
			return i
		}
		exploit := child.Wins / float64(child.Visits)
		explore := c * math.Sqrt(lnParentVisits/float64(child.Visits))
		score := exploit + explore
		if score > bestScore {
			bestScore = score
			best = i
		}
	}
	return best
}

// selectUniform returns the index of a uniformly random child, used by the
// Uniform tree policy to produce statistics unbiased by UCB's exploitation
// term (needed for backward induction to read an honest win rate off every
// node, not just the ones UCT favored).
func selectUniform[M Move](parent *Node[M], rng *rand.Rand) int {
	return rng.Intn(len(parent.Children))
}
