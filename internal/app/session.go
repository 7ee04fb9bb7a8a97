package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rodgzilla/pineapple-ofc-ai/internal/domain"
	"github.com/rodgzilla/pineapple-ofc-ai/internal/ports"
)

// Phase is the session lifecycle stage. Exactly one is active at a time.
type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhaseAwaitingHand   Phase = "awaiting_hand"
	PhasePlacingOpening Phase = "placing_opening"
	PhasePlacingDraw    Phase = "placing_draw"
	PhaseSubmitting     Phase = "submitting"
	PhaseGameOver       Phase = "game_over"
	PhaseError          Phase = "error"
)

// Session drives one game against the server: it owns the active turn,
// applies server responses to the phase machine, and exposes the mutators
// and queries the presentation adapters consume. All methods are safe for
// concurrent use; network calls run outside the lock so reads stay
// responsive while a request is in flight.
type Session struct {
	server ports.GameServer
	logger *slog.Logger

	mu          sync.Mutex
	phase       Phase
	gameID      string
	turn        *domain.Turn
	playerBoard domain.Board
	aiBoard     domain.Board
	aiGoesFirst bool
	result      *ports.GameResult

	// rejectMsg holds the server's wording for a rejected submission until
	// the next successful mutation.
	rejectMsg string
	// errMsg is the transport failure shown in the error phase.
	errMsg string

	// gen increments on every Start; responses captured under an older gen
	// belong to a superseded game and are dropped.
	gen uint64

	watchMu  sync.Mutex
	watchers map[chan Snapshot]struct{}
}

func NewSession(server ports.GameServer, logger *slog.Logger) *Session {
	return &Session{
		server:   server,
		logger:   logger,
		phase:    PhaseIdle,
		watchers: make(map[chan Snapshot]struct{}),
	}
}

// Start begins a new game: the first game, a rematch, or an abandonment of
// whatever was in progress. Bumping gen makes any response still in flight
// for the old game arrive stale and get dropped.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.phase = PhaseAwaitingHand
	s.turn = nil
	s.result = nil
	s.errMsg = ""
	s.rejectMsg = ""
	s.mu.Unlock()
	s.notify()

	upd, err := s.server.NewGame(ctx)

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		s.logger.Info("discarding superseded new_game response", "gen", gen)
		return nil
	}
	if err != nil {
		s.phase = PhaseError
		s.errMsg = err.Error()
		s.mu.Unlock()
		s.notify()
		return err
	}
	s.apply(upd)
	s.mu.Unlock()
	s.notify()
	return nil
}

// Place assigns the hand card at idx to row on the active turn.
func (s *Session) Place(idx int, row domain.Row) error {
	s.mu.Lock()
	turn, err := s.activeTurn()
	if err != nil {
		s.mu.Unlock()
		return err
	}
	err = turn.Place(idx, row)
	if err == nil {
		s.rejectMsg = ""
	}
	s.mu.Unlock()
	s.notify()
	return err
}

// ReturnToPool unassigns the hand card at idx on the active turn.
func (s *Session) ReturnToPool(idx int) error {
	s.mu.Lock()
	turn, err := s.activeTurn()
	if err != nil {
		s.mu.Unlock()
		return err
	}
	turn.ReturnToPool(idx)
	s.rejectMsg = ""
	s.mu.Unlock()
	s.notify()
	return nil
}

// Confirm submits the completed placement. Input is suspended (phase
// submitting) while the request is in flight. A server rejection returns to
// the placing phase with the ledger intact so the user can correct and
// retry without redoing their placements.
func (s *Session) Confirm(ctx context.Context) error {
	s.mu.Lock()
	turn, err := s.activeTurn()
	if err != nil {
		s.mu.Unlock()
		return err
	}
	placements, err := turn.BuildSubmission()
	if err != nil {
		s.mu.Unlock()
		return err
	}
	gen := s.gen
	gameID := s.gameID
	placingPhase := s.phase
	s.phase = PhaseSubmitting
	s.mu.Unlock()
	s.notify()

	upd, err := s.server.Play(ctx, gameID, placements)

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		s.logger.Info("discarding superseded play response", "game_id", gameID, "gen", gen)
		return nil
	}
	if err != nil {
		var rej *domain.RejectedError
		if errors.As(err, &rej) {
			// The server disagreed with our local validation. Re-enable
			// input on the same ledger and show its message verbatim.
			s.phase = placingPhase
			s.rejectMsg = rej.Message
		} else {
			s.phase = PhaseError
			s.errMsg = err.Error()
		}
		s.mu.Unlock()
		s.notify()
		return err
	}
	s.rejectMsg = ""
	s.apply(upd)
	s.mu.Unlock()
	s.notify()
	return nil
}

// activeTurn returns the turn when the session accepts placement input.
// Callers hold s.mu.
func (s *Session) activeTurn() (*domain.Turn, error) {
	if s.phase != PhasePlacingOpening && s.phase != PhasePlacingDraw {
		return nil, domain.ErrWrongPhase
	}
	return s.turn, nil
}

// apply transitions the session on a server response. Callers hold s.mu.
func (s *Session) apply(upd ports.GameUpdate) {
	s.gameID = upd.GameID
	s.playerBoard = upd.PlayerBoard
	s.aiBoard = upd.AIBoard
	s.aiGoesFirst = upd.AIGoesFirst

	switch upd.Phase {
	case ports.PhaseInitHuman:
		s.turn = domain.NewTurn(domain.KindOpening, upd.Cards, upd.PlayerBoard)
		s.phase = PhasePlacingOpening
	case ports.PhaseHumanTurn:
		s.turn = domain.NewTurn(domain.KindDraw, upd.Cards, upd.PlayerBoard)
		s.phase = PhasePlacingDraw
	case ports.PhaseGameOver:
		s.turn = nil
		s.result = upd.Result
		s.phase = PhaseGameOver
	default:
		s.turn = nil
		s.phase = PhaseError
		s.errMsg = fmt.Sprintf("server reported unknown phase %q", upd.Phase)
	}
}
