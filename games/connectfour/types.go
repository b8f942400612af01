// Package connectfour implements Connect Four as an mcts.State[int], using
// one 64-bit bitboard per player (column-major, one padding row per column)
// the way the reference example game packages use flat bitboards for
// tic-tac-toe.
package connectfour

// Move is a column index, 0-based from the left.
type Move = int

// NoMove is the sentinel for "no move played"; column indices are always
// >= 0, so -1 never collides with a legal move.
const NoMove Move = -1

const (
	DefaultRows = 6
	DefaultCols = 7
)

// Winner values.
const (
	NoWinner = -1
	Draw     = -2
)
