package domain

// Row is a destination a pending card can be assigned to. The three board
// rows are permanent once submitted; the discard only exists on draw turns
// and never accumulates across turns.
type Row string

const (
	RowFront   Row = "front"
	RowMiddle  Row = "middle"
	RowBack    Row = "back"
	RowDiscard Row = "discard"
)

// TurnKind distinguishes the opening placement from the later draw turns.
type TurnKind string

const (
	// KindOpening is the first turn: five cards, all placed, no discard.
	KindOpening TurnKind = "opening"
	// KindDraw is every later turn: three cards, two placed, one discarded.
	KindDraw TurnKind = "draw"
)

// Hand sizes dealt by the server per turn kind.
const (
	OpeningHandSize = 5
	DrawHandSize    = 3
)

// Capacity returns the total number of cards the row holds over a whole
// game. For the discard it is the per-turn allowance of one.
func (r Row) Capacity() int {
	switch r {
	case RowFront:
		return 3
	case RowMiddle, RowBack:
		return 5
	case RowDiscard:
		return 1
	}
	return 0
}

// HandSize returns the number of cards dealt for a turn of kind k.
func (k TurnKind) HandSize() int {
	if k == KindOpening {
		return OpeningHandSize
	}
	return DrawHandSize
}

// LegalRows returns the destinations a card may be assigned to on a turn of
// kind k, in display order.
func LegalRows(k TurnKind) []Row {
	if k == KindOpening {
		return []Row{RowFront, RowMiddle, RowBack}
	}
	return []Row{RowFront, RowMiddle, RowBack, RowDiscard}
}

// RowLegal reports whether r is a valid destination on a turn of kind k.
func RowLegal(r Row, k TurnKind) bool {
	switch r {
	case RowFront, RowMiddle, RowBack:
		return true
	case RowDiscard:
		return k == KindDraw
	}
	return false
}
