// Package engine implements the adaptive move selector (C6): the
// consumer-facing entry points that orchestrate search (pkg/mcts), backward
// induction (pkg/backinduct), and belief tracking (pkg/belief) into move
// decisions.
package engine

import (
	"math/rand"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/catazza/sightmcts/pkg/backinduct"
	"github.com/catazza/sightmcts/pkg/belief"
	"github.com/catazza/sightmcts/pkg/mcts"
)

// InferrabilityThreshold is the reference confidence tau at which a belief
// is considered concentrated enough on one sight level to switch to
// adaptive, opponent-pruning search.
const InferrabilityThreshold = 0.98

// MaxSightLevels is the reference default number of sight levels (K).
const MaxSightLevels = 5

// ComputeMove runs a plain root-parallel UCT search and returns the voted
// move.
func ComputeMove[M mcts.Move](state mcts.State[M], opts *mcts.ComputeOptions) (M, error) {
	return voteFrom(state, opts, mcts.BuildTree[M])
}

// ComputeMoveCapped runs a plain root-parallel UCT search, capped to
// opts.MaxLevel plies, and returns the voted move.
func ComputeMoveCapped[M mcts.Move](state mcts.State[M], opts *mcts.ComputeOptions) (M, error) {
	return voteFrom(state, opts, mcts.BuildTreeCapped[M])
}

func voteFrom[M mcts.Move](state mcts.State[M], opts *mcts.ComputeOptions, build mcts.BuildFn[M]) (M, error) {
	var zero M
	moves := state.LegalMoves()
	mcts.Attest(len(moves) > 0, "compute move called on a terminal state with no legal moves")
	mcts.Attest(state.PlayerToMove() == 0 || state.PlayerToMove() == 1, "player to move must be 0 or 1")
	if len(moves) == 1 {
		return moves[0], nil
	}
	if err := opts.Validate(); err != nil {
		return zero, errors.Wrap(err, "invalid compute options")
	}
	roots, err := mcts.BuildForest(state, opts, build)
	if err != nil {
		return zero, errors.Wrap(err, "root-parallel build failed")
	}
	move, ok := mcts.Vote(roots, opts.Verbose)
	if !ok {
		return zero, errors.New("no legal moves to vote over")
	}
	return move, nil
}

// SightArray computes the backward-induction-optimal root move for each
// sight level 1..maxSight ("what would a depth-k opponent play here").
// noMove is the game's own "no move" sentinel, used when the root itself has
// no legal moves.
func SightArray[M mcts.Move](state mcts.State[M], maxSight int, opts *mcts.ComputeOptions, rng *rand.Rand, noMove M) backinduct.SightArray[M] {
	return backinduct.Compute(state, opts, rng, maxSight, noMove)
}

// UpdatePrior folds an observed opponent move (or its absence) into prior:
// lambda evidence is set to 1 at every sight level whose prediction matches
// the observed move (not just the first), falling back to the all-ones "no
// evidence" vector when nothing matches.
func UpdatePrior[M mcts.Move](prior belief.Belief, sight backinduct.SightArray[M], observed M, link belief.LinkMatrix) (belief.Belief, error) {
	matched := make([]bool, len(sight))
	for level := 1; level <= len(sight); level++ {
		if predicted, ok := sight.At(level); ok && predicted == observed {
			matched[level-1] = true
		}
	}
	lambda := belief.FromMatches(matched)
	return belief.UpdatePrior(prior, lambda, link)
}

// IsInferrable reports whether b concentrates enough mass on a single sight
// level to switch to adaptive search, and if so, which level.
func IsInferrable(b belief.Belief) (int, bool) {
	return belief.IsInferrable(b, InferrabilityThreshold)
}

// ComputeAdaptiveMove is the engine's everyday entry point: if b is
// inferrable, it builds a root-parallel adaptive forest pruned to the
// inferred sight level; otherwise it falls back to plain ComputeMove. noMove
// is the game's own "no move" sentinel, threaded down to the sight-array
// probes the adaptive tree policy runs internally.
func ComputeAdaptiveMove[M mcts.Move](state mcts.State[M], maxSight int, b belief.Belief, opts *mcts.ComputeOptions, noMove M) (M, error) {
	moves := state.LegalMoves()
	mcts.Attest(len(moves) > 0, "compute move called on a terminal state with no legal moves")
	mcts.Attest(state.PlayerToMove() == 0 || state.PlayerToMove() == 1, "player to move must be 0 or 1")

	level, ok := IsInferrable(b)
	if !ok {
		return ComputeMove(state, opts)
	}

	klog.V(1).Infof("engine: belief inferrable at sight level %d, switching to adaptive search", level)

	var zero M
	if len(moves) == 1 {
		return moves[0], nil
	}
	if err := opts.Validate(); err != nil {
		return zero, errors.Wrap(err, "invalid compute options")
	}

	build := func(s mcts.State[M], o *mcts.ComputeOptions, rng *rand.Rand) *mcts.Node[M] {
		return mcts.BuildTreeAdaptive(s, o, rng, level, maxSight, noMove)
	}
	roots, err := mcts.BuildForest(state, opts, build)
	if err != nil {
		return zero, errors.Wrap(err, "adaptive root-parallel build failed")
	}
	move, found := mcts.Vote(roots, opts.Verbose)
	if !found {
		return zero, errors.New("no legal moves to vote over")
	}
	return move, nil
}
