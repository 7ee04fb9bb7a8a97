package ports

import (
	"context"

	"github.com/rodgzilla/pineapple-ofc-ai/internal/domain"
)

// Server-reported game phases. The server only ever asks the client to act
// as the human player; "init_human" is the opening five-card placement and
// "human_turn" a three-card draw turn.
const (
	PhaseInitHuman = "init_human"
	PhaseHumanTurn = "human_turn"
	PhaseGameOver  = "game_over"
)

// GameUpdate is the state the server returns after starting a game or
// resolving a play: the next hand to place (if any), both boards, and the
// final result once the game is over.
type GameUpdate struct {
	GameID      string
	Phase       string
	Cards       []domain.Card
	PlayerBoard domain.Board
	AIBoard     domain.Board
	AIGoesFirst bool
	Result      *GameResult
}

// GameResult is the terminal scoring block of a finished game.
type GameResult struct {
	Scores      Totals               `json:"scores"`
	IsFoul      Fouls                `json:"is_foul"`
	HandResults map[string]RowResult `json:"hand_results"`
}

// Totals holds the final point totals for both players.
type Totals struct {
	Player int `json:"player"`
	AI     int `json:"ai"`
}

// Fouls flags players whose rows ended up mis-ordered.
type Fouls struct {
	Player bool `json:"player"`
	AI     bool `json:"ai"`
}

// RowResult describes one row's showdown: both hand-rank names, row
// bonuses, and who took the row.
type RowResult struct {
	Player      string `json:"player"`
	AI          string `json:"ai"`
	Winner      string `json:"winner"`
	PlayerBonus int    `json:"player_bonus"`
	AIBonus     int    `json:"ai_bonus"`
}

// GameServer is the authoritative game backend: it deals hands, validates
// and applies plays, runs the AI opponent, and scores finished games. The
// client validates placements locally only for immediate feedback; the
// server remains the source of truth.
type GameServer interface {
	// NewGame starts a session and deals the opening hand.
	NewGame(ctx context.Context) (GameUpdate, error)
	// Play submits a full turn's placements. A rejected play is returned
	// as a *domain.RejectedError; anything else is a transport failure.
	Play(ctx context.Context, gameID string, placements []domain.Placement) (GameUpdate, error)
}
