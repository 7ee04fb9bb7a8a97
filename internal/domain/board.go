package domain

// Board holds the cards a player has permanently committed in prior turns,
// partitioned by row. It is reported by the server with every response and
// is read-only input to capacity calculations; the client never mutates it.
type Board struct {
	Front  []Card `json:"front"`
	Middle []Card `json:"middle"`
	Back   []Card `json:"back"`
}

// Row returns the committed cards in row r. The discard is turn-scoped and
// never appears on a board.
func (b Board) Row(r Row) []Card {
	switch r {
	case RowFront:
		return b.Front
	case RowMiddle:
		return b.Middle
	case RowBack:
		return b.Back
	}
	return nil
}

// Remaining returns how many more cards row r accepts this turn: the row
// capacity minus cards already committed, or exactly one for the discard.
func (b Board) Remaining(r Row) int {
	if r == RowDiscard {
		return 1
	}
	rem := r.Capacity() - len(b.Row(r))
	if rem < 0 {
		return 0
	}
	return rem
}

// Complete reports whether all thirteen board slots are filled.
func (b Board) Complete() bool {
	return len(b.Front) == RowFront.Capacity() &&
		len(b.Middle) == RowMiddle.Capacity() &&
		len(b.Back) == RowBack.Capacity()
}
