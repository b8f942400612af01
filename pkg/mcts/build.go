package mcts

import (
	"math/rand"
	"time"

	"k8s.io/klog/v2"
)

// BuildTree runs MaxIterations UCT iterations from state and returns the
// resulting root node.
func BuildTree[M Move](state State[M], opts *ComputeOptions, rng *rand.Rand) *Node[M] {
	return buildTree(state, opts, rng, UCT, 0, 0, nil)
}

// BuildTreeCapped is BuildTree but never expands past MaxLevel plies from
// the root; nodes at the cap are treated as leaves for rollout purposes.
func BuildTreeCapped[M Move](state State[M], opts *ComputeOptions, rng *rand.Rand) *Node[M] {
	return buildTree(state, opts, rng, CappedUCT, opts.MaxLevel, 0, nil)
}

// BuildTreeUniform selects children uniformly at random instead of by UCB,
// giving backward induction statistics unbiased by exploitation (C4 relies
// on this for the sight array).
func BuildTreeUniform[M Move](state State[M], opts *ComputeOptions, rng *rand.Rand) *Node[M] {
	return buildTree(state, opts, rng, Uniform, 0, 0, nil)
}

// BuildTreeAdaptive is like BuildTree, but once the node one ply below the
// root has more than one legal reply, it computes (and caches) that node's
// sight array and prunes every reply except the one predicted for
// sightLevel, restarting the current iteration from the root after any such
// structural mutation. sightMaxLevel bounds how deep the sight array probe
// goes; it is normally the belief vector's K. noMove is the game's own "no
// move" sentinel, used only if a sight-array probe reaches an already
// terminal position.
func BuildTreeAdaptive[M Move](state State[M], opts *ComputeOptions, rng *rand.Rand, sightLevel, sightMaxLevel int, noMove M) *Node[M] {
	return buildTree(state, opts, rng, Adaptive, 0, sightLevel, &adaptiveParams[M]{maxSight: sightMaxLevel, noMove: noMove})
}

type adaptiveParams[M Move] struct {
	maxSight int
	noMove   M
}

func buildTree[M Move](state State[M], opts *ComputeOptions, rng *rand.Rand, policy TreePolicy, maxLevel, sightLevel int, adaptive *adaptiveParams[M]) *Node[M] {
	attest(opts.MaxIterations >= 0 || opts.MaxTime >= 0, "at least one of MaxIterations or MaxTime must be non-negative")
	attest(state.PlayerToMove() == 0 || state.PlayerToMove() == 1, "player to move must be 0 or 1")

	root := rootNode(state)

	var deadline time.Time
	if opts.MaxTime >= 0 {
		deadline = time.Now().Add(time.Duration(opts.MaxTime * float64(time.Second)))
	}

outer:
	for iter := 0; opts.MaxIterations < 0 || iter < opts.MaxIterations; iter++ {
		node := root
		st := state.Clone()
		depth := 0

		// Selection
		for !node.Terminal() && node.FullyExpanded() && len(node.Children) > 0 {
			if policy == CappedUCT && maxLevel > 0 && depth >= maxLevel {
				break
			}

			if policy == Adaptive && depth == 1 && len(node.Children) > 1 {
				if pruned := pruneToSightLevel(node, st, opts, rng, sightLevel, adaptive.maxSight, adaptive.noMove); pruned {
					continue outer
				}
			}

			var idx int
			switch policy {
			case Uniform:
				idx = selectUniform(node, rng)
			default:
				idx = selectUCT(node, opts.ExplorationParam)
			}
			node = &node.Children[idx]
			st.Apply(node.Move)
			depth++
		}

		// Expansion
		if !node.Terminal() && len(node.Untried) > 0 && !(policy == CappedUCT && maxLevel > 0 && depth >= maxLevel) {
			mi := rng.Intn(len(node.Untried))
			move := node.Untried[mi]
			node.Untried[mi] = node.Untried[len(node.Untried)-1]
			node.Untried = node.Untried[:len(node.Untried)-1]

			st.Apply(move)
			node.Children = append(node.Children, newChildNode(node, move, st))
			node = &node.Children[len(node.Children)-1]
			depth++
		}

		// Simulation / rollout
		for st.HasMoves() {
			st.ApplyRandom(rng)
		}

		// Backpropagation
		for n := node; n != nil; n = n.Parent {
			n.Visits++
			n.Wins += float64(st.Result(n.PlayerToMove))
		}

		if opts.Verbose {
			klog.V(1).Infof("mcts: iteration %d depth=%d policy=%s", iter, depth, policy)
		}

		if opts.MaxTime >= 0 && !time.Now().Before(deadline) {
			break
		}
	}

	return root
}

func rootNode[M Move](state State[M]) *Node[M] {
	n := newNode[M](nil, zeroMove[M](), state.PlayerToMove(), append([]M(nil), state.LegalMoves()...), !state.HasMoves())
	return &n
}

func newChildNode[M Move](parent *Node[M], move M, after State[M]) Node[M] {
	return newNode(parent, move, after.PlayerToMove(), append([]M(nil), after.LegalMoves()...), !after.HasMoves())
}

func zeroMove[M Move]() M {
	var m M
	return m
}

// pruneToSightLevel restricts node's children/untried moves to the single
// move predicted by node's cached sight array at sightLevel, returning true
// if it performed a structural mutation (requiring the caller to restart
// selection from the root, since any pointer into node's old Children is
// now stale).
func pruneToSightLevel[M Move](node *Node[M], state State[M], opts *ComputeOptions, rng *rand.Rand, sightLevel, maxSight int, noMove M) bool {
	if node.SightCache == nil {
		node.SightCache = computeSightArray(state, opts, rng, maxSight, noMove)
	}
	sight, ok := node.SightCache.([]M)
	if !ok || sightLevel < 1 || sightLevel > len(sight) {
		return false
	}
	predicted := sight[sightLevel-1]

	already := len(node.Children) == 1 && node.Children[0].Move == predicted && len(node.Untried) == 0
	if already {
		return false
	}

	var keepIdx = -1
	for i := range node.Children {
		if node.Children[i].Move == predicted {
			keepIdx = i
			break
		}
	}
	if keepIdx >= 0 {
		// Prune in place rather than copying the kept child into a fresh
		// slice: a copy would leave every grandchild's Parent pointing at
		// the old, now-detached node, so backpropagation through them would
		// update an orphaned copy instead of the live tree.
		node.Children[0] = node.Children[keepIdx]
		node.Children = node.Children[:1]
		node.Children[0].Parent = node
		for i := range node.Children[0].Children {
			node.Children[0].Children[i].Parent = &node.Children[0]
		}
		node.Untried = nil
		return true
	}

	// Not expanded yet: restrict the untried set to just the predicted move.
	for i := range node.Untried {
		if node.Untried[i] == predicted {
			node.Untried = []M{node.Untried[i]}
			node.Children = nil
			return true
		}
	}
	return false
}
