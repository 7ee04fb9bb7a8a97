package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rodgzilla/pineapple-ofc-ai/internal/domain"
	"github.com/rodgzilla/pineapple-ofc-ai/internal/ports"
)

// Client implements ports.GameServer against the game server's JSON API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

func NewClient(httpClient *http.Client, baseURL string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
	}
}

// playRequest mirrors the server's expected POST /api/play body.
type playRequest struct {
	GameID     string             `json:"game_id"`
	Placements []domain.Placement `json:"placements"`
}

// gameResponse mirrors the server's response shape for both endpoints. The
// scoring fields are only present on game_over; Error only on rejection.
type gameResponse struct {
	GameID      string                     `json:"game_id"`
	Phase       string                     `json:"phase"`
	Cards       []domain.Card              `json:"cards"`
	PlayerBoard domain.Board               `json:"player_board"`
	AIBoard     domain.Board               `json:"ai_board"`
	AIGoesFirst bool                       `json:"ai_goes_first"`
	Scores      *ports.Totals              `json:"scores"`
	IsFoul      *ports.Fouls               `json:"is_foul"`
	HandResults map[string]ports.RowResult `json:"hand_results"`
	Error       string                     `json:"error"`
}

func (c *Client) NewGame(ctx context.Context) (ports.GameUpdate, error) {
	return c.post(ctx, "/api/new_game", struct{}{})
}

func (c *Client) Play(ctx context.Context, gameID string, placements []domain.Placement) (ports.GameUpdate, error) {
	return c.post(ctx, "/api/play", playRequest{
		GameID:     gameID,
		Placements: placements,
	})
}

func (c *Client) post(ctx context.Context, path string, payload any) (ports.GameUpdate, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return ports.GameUpdate{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return ports.GameUpdate{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.GameUpdate{}, fmt.Errorf("%w: http call: %w", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return ports.GameUpdate{}, fmt.Errorf("%w: read response: %w", domain.ErrUpstream, err)
	}

	var decoded gameResponse
	if unmarshalErr := json.Unmarshal(respBody, &decoded); unmarshalErr != nil {
		if resp.StatusCode != http.StatusOK {
			return ports.GameUpdate{}, fmt.Errorf("%w: status %d: %s", domain.ErrUpstream, resp.StatusCode, respBody)
		}
		return ports.GameUpdate{}, fmt.Errorf("%w: decode response: %w", domain.ErrUpstream, unmarshalErr)
	}

	// A 4xx with an error body is the server refusing the play, not a
	// transport problem; its message is redisplayed to the user.
	if decoded.Error != "" {
		c.logger.WarnContext(ctx, "server rejected request", "path", path, "status", resp.StatusCode, "message", decoded.Error)
		return ports.GameUpdate{}, &domain.RejectedError{Message: decoded.Error}
	}
	if resp.StatusCode != http.StatusOK {
		return ports.GameUpdate{}, fmt.Errorf("%w: status %d: %s", domain.ErrUpstream, resp.StatusCode, respBody)
	}

	return toUpdate(decoded), nil
}

func toUpdate(r gameResponse) ports.GameUpdate {
	upd := ports.GameUpdate{
		GameID:      r.GameID,
		Phase:       r.Phase,
		Cards:       r.Cards,
		PlayerBoard: r.PlayerBoard,
		AIBoard:     r.AIBoard,
		AIGoesFirst: r.AIGoesFirst,
	}
	if r.Phase == ports.PhaseGameOver && r.Scores != nil && r.IsFoul != nil {
		upd.Result = &ports.GameResult{
			Scores:      *r.Scores,
			IsFoul:      *r.IsFoul,
			HandResults: r.HandResults,
		}
	}
	return upd
}
