package connectfour

import "strings"

// String renders the board top row first, bottom row last, '.' for empty,
// 'X'/'O' for players 0/1 — a plain-text fallback; cmd/connectfour renders
// the same data with color.
func (b *Board) String() string {
	var sb strings.Builder
	for row := b.rows - 1; row >= 0; row-- {
		for col := 0; col < b.cols; col++ {
			switch {
			case b.Occupied(0, col, row):
				sb.WriteByte('X')
			case b.Occupied(1, col, row):
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
