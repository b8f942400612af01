// Package backinduct implements the backward-induction evaluator (C4): a
// minimax reading of an MCTS-built statistical tree, and the sight array it
// underpins ("what would a depth-k opponent play here").
package backinduct

import (
	"math/rand"

	"github.com/catazza/sightmcts/pkg/mcts"
)

// ScoreFromBelow is the backward-induction value of node. The tree search
// itself (pkg/mcts) needs this same recursion internally for the adaptive
// tree policy's pruning decisions, so the recursion lives there; this
// function is the package boundary consumers of C4 are meant to use.
func ScoreFromBelow[M mcts.Move](node *mcts.Node[M], depthCap int, adaptiveCutoff bool) float64 {
	return mcts.ScoreFromBelow(node, depthCap, adaptiveCutoff)
}

// BestMove returns the backward-induction-optimal move at node, once its
// score has been computed with ScoreFromBelow.
func BestMove[M mcts.Move](node *mcts.Node[M]) (M, bool) {
	return mcts.BestMoveFromBelow(node)
}

// SightArray is the backward-induction-optimal root move for each sight
// level 1..K, computed over a single uniform-policy tree. Index i holds the
// move a depth-(i+1) opponent would play.
type SightArray[M mcts.Move] []M

// At returns the predicted move for sightLevel (1-indexed), and whether
// that level is in range.
func (s SightArray[M]) At(sightLevel int) (M, bool) {
	var zero M
	if sightLevel < 1 || sightLevel > len(s) {
		return zero, false
	}
	return s[sightLevel-1], true
}

// Compute builds a uniform-policy tree from state and evaluates it via
// backward induction at every depth from 1 to maxSight, one pass per level.
// noMove is the game's own "no move" sentinel (the zero value of M is never
// assumed to mean "no move"), used for every entry when the root itself has
// no legal moves.
func Compute[M mcts.Move](state mcts.State[M], opts *mcts.ComputeOptions, rng *rand.Rand, maxSight int, noMove M) SightArray[M] {
	root := mcts.BuildTreeUniform(state, opts, rng)
	out := make(SightArray[M], maxSight)
	for k := 1; k <= maxSight; k++ {
		resetAndScore(root, k)
		move, ok := mcts.BestMoveFromBelow(root)
		if !ok {
			if len(root.Children) > 0 {
				move = root.Children[0].Move
			} else {
				move = noMove
			}
		}
		out[k-1] = move
	}
	return out
}

func resetAndScore[M mcts.Move](root *mcts.Node[M], depthCap int) {
	mcts.ResetScores(root)
	mcts.ScoreFromBelow(root, depthCap, false)
}
