package domain

import "fmt"

// Placement is one card-to-row pair in a submitted play, using the server's
// wire field names.
type Placement struct {
	CardIdx int `json:"card_idx"`
	Row     Row `json:"row"`
}

// Turn orchestrates one turn's ledger against the phase rules: which rows
// are legal, how much room each has left, and when the pending placement is
// eligible for submission. It is the single mutation path to the ledger;
// input adapters (drag-and-drop, zone drops, row pickers) all reduce to
// Place and ReturnToPool calls.
type Turn struct {
	kind   TurnKind
	hand   []Card
	board  Board
	ledger *Ledger

	// capHint holds the last capacity rejection message until the next
	// successful mutation.
	capHint string
}

// NewTurn starts a fresh turn: the ledger is empty regardless of how the
// previous turn ended. board is the player's committed rows, used for
// capacity checks.
func NewTurn(kind TurnKind, hand []Card, board Board) *Turn {
	return &Turn{
		kind:   kind,
		hand:   hand,
		board:  board,
		ledger: NewLedger(len(hand)),
	}
}

func (t *Turn) Kind() TurnKind  { return t.kind }
func (t *Turn) Hand() []Card    { return t.hand }
func (t *Turn) Board() Board    { return t.board }
func (t *Turn) Ledger() *Ledger { return t.ledger }

// Place assigns the card at idx to row, relocating it if already placed
// elsewhere. A *CapacityError leaves the ledger unchanged and sets the hint;
// any other error means the input adapter passed something it should not
// have.
func (t *Turn) Place(idx int, row Row) error {
	if !RowLegal(row, t.kind) {
		return ErrRowNotAllowed
	}
	if err := t.ledger.Assign(idx, row, t.board.Remaining(row)); err != nil {
		if capErr, ok := err.(*CapacityError); ok {
			t.capHint = capErr.Error()
		}
		return err
	}
	t.capHint = ""
	return nil
}

// ReturnToPool unassigns the card at idx. Always succeeds.
func (t *Turn) ReturnToPool(idx int) {
	t.ledger.Unassign(idx)
	t.capHint = ""
}

// rowCount is the number of pending cards assigned to the three board rows.
func (t *Turn) rowCount() int {
	return t.ledger.Assigned() - t.ledger.CountFor(RowDiscard)
}

// Submittable reports whether the pending placement may be submitted.
// Opening turn: every card assigned to a row. Draw turn: all but one card
// assigned to rows, with the remaining card either explicitly on the
// discard or left unassigned; the two encodings are equivalent, and
// BuildSubmission materializes the latter as a discard. Row counts are
// re-validated against the board even though Place already enforces them.
func (t *Turn) Submittable() bool {
	for _, row := range []Row{RowFront, RowMiddle, RowBack} {
		if t.ledger.CountFor(row) > t.board.Remaining(row) {
			return false
		}
	}
	switch t.kind {
	case KindOpening:
		return t.ledger.Complete(KindOpening)
	case KindDraw:
		if t.rowCount() != len(t.hand)-1 {
			return false
		}
		return t.ledger.CountFor(RowDiscard) == 1 ||
			len(t.ledger.Unassigned()) == 1
	}
	return false
}

// BuildSubmission serializes the ledger into the placement list sent to the
// server, ordered by card index, covering every index exactly once. On a
// draw turn an index still in the pool becomes the discard; Submittable
// guarantees at most one such index exists. Calling this while not
// submittable is a programmer error.
func (t *Turn) BuildSubmission() ([]Placement, error) {
	if !t.Submittable() {
		return nil, ErrNotSubmittable
	}
	out := make([]Placement, 0, len(t.hand))
	for i := range t.hand {
		row, ok := t.ledger.RowOf(i)
		if !ok {
			row = RowDiscard
		}
		out = append(out, Placement{CardIdx: i, Row: row})
	}
	return out, nil
}

// Hint returns a short explanation of why submission is currently blocked,
// or "" when nothing blocks it. A capacity rejection sticks until the next
// successful mutation so the user sees why their drop bounced.
func (t *Turn) Hint() string {
	if t.capHint != "" {
		return t.capHint
	}
	if t.Submittable() {
		return ""
	}

	switch t.kind {
	case KindOpening:
		missing := len(t.hand) - t.ledger.Assigned()
		return fmt.Sprintf("place %d more %s", missing, cardWord(missing))
	case KindDraw:
		need := len(t.hand) - 1 - t.rowCount()
		if need > 0 {
			return fmt.Sprintf("place %d more %s; the last card is discarded automatically", need, cardWord(need))
		}
		// All cards sit on rows: one of them has to go.
		return "return one card to the pool to discard it"
	}
	return ""
}

func cardWord(n int) string {
	if n == 1 {
		return "card"
	}
	return "cards"
}
