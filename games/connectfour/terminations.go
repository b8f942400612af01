package connectfour

// hasFourInARow checks the classic shift-and-mask way: shifting the
// bitboard by a direction's bit offset and ANDing with itself collapses
// runs of set bits, so two such passes at the same offset detect a run of
// four. The four offsets correspond to vertical, horizontal, and both
// diagonals in the column-major (col*(rows+1)+row) bit layout.
func (b *Board) hasFourInARow(player int) bool {
	bb := b.bitboards[player]
	offsets := [4]uint{1, uint(b.rows + 1), uint(b.rows + 2), uint(b.rows)}

	for _, dir := range offsets {
		m := bb & (bb >> dir)
		if m&(m>>(2*dir)) != 0 {
			return true
		}
	}
	return false
}
