package connectfour

import (
	"math/rand"

	"github.com/catazza/sightmcts/pkg/mcts"
)

// Board is a Connect Four position. It satisfies mcts.State[Move].
type Board struct {
	rows, cols int
	bitboards  [2]uint64
	heights    []int // next free row per column
	moveCount  int
	player     int // 0 or 1, whose turn it is
	lastMove   Move
	winner     int // NoWinner, Draw, or 0/1
}

// New returns an empty board of the given dimensions. (rows+1)*cols must
// fit in 64 bits; the standard 6x7 board and every reasonable variant do.
func New(rows, cols int) *Board {
	return &Board{
		rows:    rows,
		cols:    cols,
		heights: make([]int, cols),
		player:  0,
		lastMove: NoMove,
		winner:  NoWinner,
	}
}

// NewStandard returns an empty 6x7 board, the configuration the reference
// game uses.
func NewStandard() *Board {
	return New(DefaultRows, DefaultCols)
}

func (b *Board) bitIndex(col, row int) uint64 {
	return uint64(1) << uint(col*(b.rows+1)+row)
}

func (b *Board) PlayerToMove() int { return b.player }

func (b *Board) HasMoves() bool {
	return b.winner == NoWinner
}

func (b *Board) LegalMoves() []Move {
	if b.winner != NoWinner {
		return nil
	}
	moves := make([]Move, 0, b.cols)
	for c := 0; c < b.cols; c++ {
		if b.heights[c] < b.rows {
			moves = append(moves, c)
		}
	}
	return moves
}

func (b *Board) Apply(m Move) {
	row := b.heights[m]
	b.bitboards[b.player] |= b.bitIndex(m, row)
	b.heights[m]++
	b.moveCount++
	b.lastMove = m

	if b.hasFourInARow(b.player) {
		b.winner = b.player
	} else if b.moveCount == b.rows*b.cols {
		b.winner = Draw
	}

	b.player = 1 - b.player
}

func (b *Board) ApplyRandom(rng *rand.Rand) {
	moves := b.LegalMoves()
	b.Apply(moves[rng.Intn(len(moves))])
}

// Result reports the outcome relative to forPlayer: 1 for a win, 0 for a
// loss, 0.5 for a draw. Only meaningful once HasMoves is false.
func (b *Board) Result(forPlayer int) mcts.Result {
	switch b.winner {
	case Draw:
		return 0.5
	case forPlayer:
		return 1.0
	default:
		return 0.0
	}
}

func (b *Board) Clone() mcts.State[Move] {
	clone := &Board{
		rows:     b.rows,
		cols:     b.cols,
		heights:  append([]int(nil), b.heights...),
		moveCount: b.moveCount,
		player:   b.player,
		lastMove: b.lastMove,
		winner:   b.winner,
	}
	clone.bitboards = b.bitboards
	return clone
}

// LastMove is the most recently played column, or NoMove on an empty board.
func (b *Board) LastMove() Move { return b.lastMove }

// Winner returns NoWinner, Draw, or the winning player's index.
func (b *Board) Winner() int { return b.winner }

// Rows and Cols expose the board's configured dimensions.
func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

// Occupied reports whether player has a piece at (col, row).
func (b *Board) Occupied(player, col, row int) bool {
	return b.bitboards[player]&b.bitIndex(col, row) != 0
}
