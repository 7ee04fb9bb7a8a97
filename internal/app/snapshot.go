package app

import (
	"github.com/rodgzilla/pineapple-ofc-ai/internal/domain"
	"github.com/rodgzilla/pineapple-ofc-ai/internal/ports"
)

// Snapshot is a point-in-time, read-only view of the session for rendering:
// the hand, where each pending card sits, whether the turn can be
// submitted, and why not when it cannot.
type Snapshot struct {
	Phase       Phase
	GameID      string
	Kind        domain.TurnKind
	Hand        []domain.Card
	Rows        map[domain.Row][]int
	Unassigned  []int
	Submittable bool
	Hint        string
	PlayerBoard domain.Board
	AIBoard     domain.Board
	AIGoesFirst bool
	Result      *ports.GameResult
}

// Snapshot captures the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		Phase:       s.phase,
		GameID:      s.gameID,
		PlayerBoard: s.playerBoard,
		AIBoard:     s.aiBoard,
		AIGoesFirst: s.aiGoesFirst,
		Result:      s.result,
	}

	switch {
	case s.phase == PhaseError:
		snap.Hint = s.errMsg
	case s.turn != nil:
		snap.Kind = s.turn.Kind()
		snap.Hand = s.turn.Hand()
		snap.Unassigned = s.turn.Ledger().Unassigned()
		snap.Rows = make(map[domain.Row][]int, 4)
		for _, row := range domain.LegalRows(s.turn.Kind()) {
			snap.Rows[row] = s.turn.Ledger().IndicesFor(row)
		}
		snap.Submittable = s.turn.Submittable() &&
			(s.phase == PhasePlacingOpening || s.phase == PhasePlacingDraw)
		if s.rejectMsg != "" {
			snap.Hint = s.rejectMsg
		} else {
			snap.Hint = s.turn.Hint()
		}
	}
	return snap
}

// Subscribe registers a watcher that receives a snapshot after every state
// change, starting with the current one. The returned cancel func must be
// called when the watcher goes away. Slow watchers miss intermediate
// snapshots rather than blocking mutations.
func (s *Session) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 8)
	ch <- s.Snapshot()

	s.watchMu.Lock()
	s.watchers[ch] = struct{}{}
	s.watchMu.Unlock()

	cancel := func() {
		s.watchMu.Lock()
		delete(s.watchers, ch)
		s.watchMu.Unlock()
	}
	return ch, cancel
}

// notify fans the current snapshot out to all watchers without blocking.
func (s *Session) notify() {
	snap := s.Snapshot()
	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	for ch := range s.watchers {
		select {
		case ch <- snap:
		default:
		}
	}
}
