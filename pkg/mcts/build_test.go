package mcts

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nimState is a tiny deterministic game (subtraction game: take 1, 2, or 3
// from a pile; whoever takes the last object wins) used to exercise the
// search kernel against a hand-checkable optimal strategy.
type nimState struct {
	pile   int
	player int
}

func newNim(pile int) *nimState { return &nimState{pile: pile} }

func (s *nimState) PlayerToMove() int { return s.player }

func (s *nimState) LegalMoves() []int {
	if s.pile == 0 {
		return nil
	}
	moves := make([]int, 0, 3)
	for take := 1; take <= 3 && take <= s.pile; take++ {
		moves = append(moves, take)
	}
	return moves
}

func (s *nimState) HasMoves() bool { return s.pile > 0 }

func (s *nimState) Apply(m int) {
	s.pile -= m
	s.player = 1 - s.player
}

func (s *nimState) ApplyRandom(rng *rand.Rand) {
	moves := s.LegalMoves()
	s.Apply(moves[rng.Intn(len(moves))])
}

func (s *nimState) Result(forPlayer int) Result {
	// The player who cannot move lost: the mover who emptied the pile won.
	loser := s.player
	if forPlayer == loser {
		return 0
	}
	return 1
}

func (s *nimState) Clone() State[int] {
	c := *s
	return &c
}

func TestBuildTreeVisitCountsAreConsistent(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	opts := DefaultComputeOptions().WithIterations(500)
	root := BuildTree[int](newNim(10), opts, rng)

	assert.Equal(t, 500, root.Visits)

	sum := 0
	for i := range root.Children {
		sum += root.Children[i].Visits
	}
	// every iteration either expands a new child or selects an existing one
	assert.LessOrEqual(t, sum, root.Visits)
}

func TestBuildTreeLegalMovesPartitionChildren(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	opts := DefaultComputeOptions().WithIterations(200)
	root := BuildTree[int](newNim(4), opts, rng)

	seen := map[int]bool{}
	for i := range root.Children {
		seen[root.Children[i].Move] = true
	}
	for _, m := range newNim(4).LegalMoves() {
		assert.True(t, seen[m] || containsUntried(root.Untried, m))
	}
}

func containsUntried(untried []int, m int) bool {
	for _, u := range untried {
		if u == m {
			return true
		}
	}
	return false
}

func TestBuildTreeCappedNeverExceedsMaxLevel(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	opts := DefaultComputeOptions().WithIterations(300).WithMaxLevel(2)
	root := BuildTreeCapped[int](newNim(20), opts, rng)

	var maxDepth func(n *Node[int], depth int) int
	maxDepth = func(n *Node[int], depth int) int {
		best := depth
		for i := range n.Children {
			if d := maxDepth(&n.Children[i], depth+1); d > best {
				best = d
			}
		}
		return best
	}
	assert.LessOrEqual(t, maxDepth(root, 0), 2)
}

func TestCappedEqualsUncappedWhenCapExceedsGameDepth(t *testing.T) {
	rng1 := rand.New(rand.NewSource(7))
	rng2 := rand.New(rand.NewSource(7))
	opts := DefaultComputeOptions().WithIterations(400)
	cappedOpts := DefaultComputeOptions().WithIterations(400).WithMaxLevel(1000)

	a := BuildTree[int](newNim(4), opts, rng1)
	b := BuildTreeCapped[int](newNim(4), cappedOpts, rng2)

	assert.Equal(t, a.Visits, b.Visits)

	moveA, okA := Vote([]*Node[int]{a}, false)
	moveB, okB := Vote([]*Node[int]{b}, false)
	require.True(t, okA)
	require.True(t, okB)
	assert.Equal(t, moveA, moveB)
}

func TestVoteBreaksTiesByFirstScanned(t *testing.T) {
	root1 := &Node[int]{Children: []Node[int]{{Move: 1, Wins: 1, Visits: 1}, {Move: 2, Wins: 1, Visits: 1}}}
	move, ok := Vote([]*Node[int]{root1}, false)
	require.True(t, ok)
	assert.Equal(t, 1, move)
}

func TestVoteMergesAcrossWorkers(t *testing.T) {
	root1 := &Node[int]{Children: []Node[int]{{Move: 1, Wins: 8, Visits: 10}}}
	root2 := &Node[int]{Children: []Node[int]{{Move: 1, Wins: 1, Visits: 10}, {Move: 2, Wins: 9, Visits: 10}}}
	move, ok := Vote([]*Node[int]{root1, root2}, false)
	require.True(t, ok)
	// move 1: (8+1+1)/(10+10+2)=10/22=0.4545; move 2: (9+1)/(10+2)=10/12=0.833
	assert.Equal(t, 2, move)
}
