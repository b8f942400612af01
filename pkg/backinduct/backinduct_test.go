package backinduct

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catazza/sightmcts/pkg/mcts"
)

// countdownState is a trivial deterministic game used to make sight-array
// predictions checkable by hand: from n, a player may subtract 1 or 2;
// whoever reaches 0 wins.
type countdownState struct {
	n      int
	player int
}

func (s *countdownState) PlayerToMove() int { return s.player }
func (s *countdownState) HasMoves() bool    { return s.n > 0 }

func (s *countdownState) LegalMoves() []int {
	if s.n <= 0 {
		return nil
	}
	if s.n == 1 {
		return []int{1}
	}
	return []int{1, 2}
}

func (s *countdownState) Apply(m int) {
	s.n -= m
	s.player = 1 - s.player
}

func (s *countdownState) ApplyRandom(rng *rand.Rand) {
	moves := s.LegalMoves()
	s.Apply(moves[rng.Intn(len(moves))])
}

func (s *countdownState) Result(forPlayer int) mcts.Result {
	winner := 1 - s.player // the player who just moved to reach n == 0
	if forPlayer == winner {
		return 1
	}
	return 0
}

func (s *countdownState) Clone() mcts.State[int] {
	c := *s
	return &c
}

// countdownNoMove is the sentinel used in these tests: -1 is never a legal
// move of countdownState (moves are always 1 or 2).
const countdownNoMove = -1

func TestSightArrayHasRequestedLength(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	opts := mcts.DefaultComputeOptions().WithIterations(500)
	sight := Compute[int](&countdownState{n: 6}, opts, rng, 5, countdownNoMove)
	assert.Len(t, sight, 5)
}

func TestSightArrayEveryEntryIsALegalMove(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	opts := mcts.DefaultComputeOptions().WithIterations(500)
	state := &countdownState{n: 6}
	sight := Compute[int](state, opts, rng, 3, countdownNoMove)
	for _, m := range sight {
		assert.Contains(t, state.LegalMoves(), m)
	}
}

func TestSightArrayUsesSentinelWhenRootIsTerminal(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	opts := mcts.DefaultComputeOptions().WithIterations(10)
	state := &countdownState{n: 0}
	sight := Compute[int](state, opts, rng, 4, countdownNoMove)
	for _, m := range sight {
		assert.Equal(t, countdownNoMove, m)
	}
}

func TestBestMoveMatchesScoreFromBelow(t *testing.T) {
	root := &mcts.Node[int]{
		Children: []mcts.Node[int]{
			{Move: 1, Wins: 9, Visits: 10},
			{Move: 2, Wins: 1, Visits: 10},
		},
	}
	score := ScoreFromBelow(root, 0, false)
	assert.InDelta(t, 0.1, score, 1e-9)

	move, ok := BestMove(root)
	require.True(t, ok)
	assert.Equal(t, 1, move)
}
