package domain

import "sort"

// Ledger is the pending, unconfirmed mapping from hand-card index to row for
// a single turn. An index absent from the ledger is unassigned ("in the
// pool"). The ledger never holds two rows for one index and is recreated
// empty at the start of every turn.
type Ledger struct {
	slots    map[int]Row
	handSize int
}

// NewLedger returns an empty ledger for a hand of handSize cards.
func NewLedger(handSize int) *Ledger {
	return &Ledger{
		slots:    make(map[int]Row, handSize),
		handSize: handSize,
	}
}

// Assign maps idx to row, relocating the card if it was assigned elsewhere.
// limit is the number of cards row accepts this turn; if the assignment
// would push the row past it, the ledger is unchanged and a *CapacityError
// is returned. Re-assigning an index to the row it already occupies always
// succeeds.
func (l *Ledger) Assign(idx int, row Row, limit int) error {
	if idx < 0 || idx >= l.handSize {
		return ErrIndexOutOfRange
	}
	if l.slots[idx] != row && l.CountFor(row) >= limit {
		return &CapacityError{Row: row, Limit: limit}
	}
	l.slots[idx] = row
	return nil
}

// Unassign returns idx to the pool. No-op if it was never assigned.
func (l *Ledger) Unassign(idx int) {
	delete(l.slots, idx)
}

// RowOf returns the row idx is currently assigned to, if any.
func (l *Ledger) RowOf(idx int) (Row, bool) {
	r, ok := l.slots[idx]
	return r, ok
}

// CountFor returns the number of pending cards assigned to row.
func (l *Ledger) CountFor(row Row) int {
	n := 0
	for _, r := range l.slots {
		if r == row {
			n++
		}
	}
	return n
}

// Assigned returns the number of indices with any assignment.
func (l *Ledger) Assigned() int {
	return len(l.slots)
}

// HandSize returns the hand size the ledger was created for.
func (l *Ledger) HandSize() int {
	return l.handSize
}

// Unassigned returns the pool: hand indices with no assignment, ascending.
func (l *Ledger) Unassigned() []int {
	out := make([]int, 0, l.handSize-len(l.slots))
	for i := 0; i < l.handSize; i++ {
		if _, ok := l.slots[i]; !ok {
			out = append(out, i)
		}
	}
	return out
}

// IndicesFor returns the indices assigned to row, ascending.
func (l *Ledger) IndicesFor(row Row) []int {
	var out []int
	for i, r := range l.slots {
		if r == row {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}

// Complete reports whether every hand index is assigned and, on a draw
// turn, exactly one of them to the discard.
func (l *Ledger) Complete(kind TurnKind) bool {
	if len(l.slots) != l.handSize {
		return false
	}
	if kind == KindDraw {
		return l.CountFor(RowDiscard) == 1
	}
	return true
}
