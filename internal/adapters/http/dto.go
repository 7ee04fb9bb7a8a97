package http

import (
	"github.com/rodgzilla/pineapple-ofc-ai/internal/app"
	"github.com/rodgzilla/pineapple-ofc-ai/internal/domain"
	"github.com/rodgzilla/pineapple-ofc-ai/internal/ports"
)

// SnapshotResponse is the JSON view of a session returned by every
// endpoint and pushed over the state stream.
type SnapshotResponse struct {
	SessionID   string            `json:"session_id"`
	Phase       string            `json:"phase"`
	Turn        string            `json:"turn,omitempty"`
	Hand        []domain.Card     `json:"hand,omitempty"`
	Rows        map[string][]int  `json:"rows,omitempty"`
	Unassigned  []int             `json:"unassigned,omitempty"`
	Submittable bool              `json:"submittable"`
	Hint        string            `json:"hint,omitempty"`
	PlayerBoard domain.Board      `json:"player_board"`
	AIBoard     domain.Board      `json:"ai_board"`
	AIGoesFirst bool              `json:"ai_goes_first"`
	Result      *ports.GameResult `json:"result,omitempty"`
}

// PlaceRequest assigns one hand card to a row.
type PlaceRequest struct {
	Card int        `json:"card"`
	Row  domain.Row `json:"row"`
}

// ReturnRequest sends one hand card back to the pool.
type ReturnRequest struct {
	Card int `json:"card"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Hint  string `json:"hint,omitempty"`
}

// ToSnapshotResponse converts an app snapshot to its wire form.
func ToSnapshotResponse(id string, snap app.Snapshot) SnapshotResponse {
	resp := SnapshotResponse{
		SessionID:   id,
		Phase:       string(snap.Phase),
		Turn:        string(snap.Kind),
		Hand:        snap.Hand,
		Unassigned:  snap.Unassigned,
		Submittable: snap.Submittable,
		Hint:        snap.Hint,
		PlayerBoard: snap.PlayerBoard,
		AIBoard:     snap.AIBoard,
		AIGoesFirst: snap.AIGoesFirst,
		Result:      snap.Result,
	}
	if snap.Rows != nil {
		resp.Rows = make(map[string][]int, len(snap.Rows))
		for row, indices := range snap.Rows {
			resp.Rows[string(row)] = indices
		}
	}
	return resp
}
