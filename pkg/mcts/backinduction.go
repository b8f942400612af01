package mcts

import "math/rand"

// ScoreFromBelow is the backward-induction (minimax) value of node: the
// empirical win rate at a true leaf, or 1 minus the best of its children's
// values otherwise (each ply flips perspective). Results are memoized on
// the node. depthCap, if non-zero, stops recursion at that many plies below
// node; adaptiveCutoff, if true, also stops recursion at any node that
// still has untried moves (used by the adaptive tree policy, where an
// incompletely expanded node's statistics aren't trustworthy yet).
func ScoreFromBelow[M Move](node *Node[M], depthCap int, adaptiveCutoff bool) float64 {
	return scoreFromBelow(node, depthCap, adaptiveCutoff, 0)
}

func scoreFromBelow[M Move](node *Node[M], depthCap int, adaptiveCutoff bool, ply int) float64 {
	if node.ScoreValid {
		return node.ScoreFromBelow
	}

	isLeaf := node.Terminal() ||
		len(node.Children) == 0 ||
		(depthCap > 0 && ply >= depthCap) ||
		(adaptiveCutoff && len(node.Untried) > 0)

	var score float64
	var biDepth int
	if isLeaf {
		score = node.WinRate()
		biDepth = 0
	} else {
		best := -1.0
		bestChildDepth := 0
		for i := range node.Children {
			child := &node.Children[i]
			childScore := scoreFromBelow(child, depthCap, adaptiveCutoff, ply+1)
			if childScore > best {
				best = childScore
				bestChildDepth = child.BIDepth
			}
		}
		score = 1 - best
		biDepth = bestChildDepth + 1
	}

	node.ScoreFromBelow = score
	node.BIDepth = biDepth
	node.ScoreValid = true
	return score
}

// roundsEqual implements the reference equality test for backward-induction
// scores: equal to 5 decimal digits.
func roundsEqual(a, b float64) bool {
	return round5(a) == round5(b)
}

func round5(x float64) int64 {
	return int64(x*1e5 + 0.5)
}

// BestMoveFromBelow walks node's children and returns the move whose score,
// from node's perspective (1 - child's score), equals node's own
// ScoreFromBelow, breaking ties in favor of the shallowest forced line
// (smallest BIDepth). node must already have ScoreFromBelow computed via
// ScoreFromBelow.
func BestMoveFromBelow[M Move](node *Node[M]) (M, bool) {
	var best M
	found := false
	bestDepth := -1

	for i := range node.Children {
		child := &node.Children[i]
		if !roundsEqual(child.ScoreFromBelow, 1-node.ScoreFromBelow) {
			continue
		}
		if !found || child.BIDepth < bestDepth {
			best = child.Move
			bestDepth = child.BIDepth
			found = true
		}
	}
	return best, found
}

// computeSightArray builds a uniform-policy tree from state and, for each
// sight level 1..maxSight, evaluates it by backward induction capped at
// that depth, returning the resulting optimal root move per level. It is
// the statistical core of "what would a depth-k opponent play here". noMove
// is the game's own "no move" sentinel, used in place of a move when the
// root has no children at all (a terminal root).
func computeSightArray[M Move](state State[M], opts *ComputeOptions, rng *rand.Rand, maxSight int, noMove M) []M {
	tree := BuildTreeUniform(state, opts, rng)
	out := make([]M, maxSight)
	for k := 1; k <= maxSight; k++ {
		resetScores(tree)
		ScoreFromBelow(tree, k, false)
		move, ok := BestMoveFromBelow(tree)
		if !ok {
			if len(tree.Children) > 0 {
				move = tree.Children[0].Move
			} else {
				move = noMove
			}
		}
		out[k-1] = move
	}
	return out
}

func resetScores[M Move](node *Node[M]) {
	node.ScoreValid = false
	for i := range node.Children {
		resetScores(&node.Children[i])
	}
}

// ResetScores clears every memoized ScoreFromBelow/BIDepth in the subtree
// rooted at node, so ScoreFromBelow can be recomputed with a different
// depthCap (the sight array evaluates the same tree at several depths).
func ResetScores[M Move](node *Node[M]) {
	resetScores(node)
}
