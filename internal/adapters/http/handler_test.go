package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	gateway "github.com/rodgzilla/pineapple-ofc-ai/internal/adapters/http"
	"github.com/rodgzilla/pineapple-ofc-ai/internal/domain"
	"github.com/rodgzilla/pineapple-ofc-ai/internal/ports"
)

type fakeServer struct{}

func (fakeServer) NewGame(context.Context) (ports.GameUpdate, error) {
	return ports.GameUpdate{
		GameID: "g1",
		Phase:  ports.PhaseInitHuman,
		Cards: []domain.Card{
			{Height: "A", Suit: domain.Spades},
			{Height: "K", Suit: domain.Hearts},
			{Height: "Q", Suit: domain.Diamonds},
			{Height: "J", Suit: domain.Clubs},
			{Height: "T", Suit: domain.Spades},
		},
	}, nil
}

func (fakeServer) Play(_ context.Context, _ string, placements []domain.Placement) (ports.GameUpdate, error) {
	return ports.GameUpdate{
		GameID: "g1",
		Phase:  ports.PhaseHumanTurn,
		Cards: []domain.Card{
			{Height: "2", Suit: domain.Hearts},
			{Height: "3", Suit: domain.Hearts},
			{Height: "4", Suit: domain.Hearts},
		},
	}, nil
}

func newTestGateway() *echo.Echo {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := gateway.NewHub(fakeServer{}, logger)
	e := echo.New()
	gateway.NewHandler(hub).Register(e)
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var decoded map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("%s %s: invalid JSON response: %v (%s)", method, path, err, rec.Body.String())
	}
	return rec, decoded
}

func createSession(t *testing.T, e *echo.Echo) string {
	t.Helper()
	rec, body := doJSON(t, e, http.MethodPost, "/v1/sessions", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session: status %d: %s", rec.Code, rec.Body.String())
	}
	id, _ := body["session_id"].(string)
	if id == "" {
		t.Fatal("create session: missing session_id")
	}
	return id
}

func TestGateway_CreateSession(t *testing.T) {
	e := newTestGateway()
	rec, body := doJSON(t, e, http.MethodPost, "/v1/sessions", "")

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: %d", rec.Code)
	}
	if body["phase"] != "placing_opening" {
		t.Errorf("phase: %v", body["phase"])
	}
	cards, _ := body["hand"].([]any)
	if len(cards) != 5 {
		t.Errorf("hand: expected 5 cards, got %v", body["hand"])
	}
	if body["submittable"] != false {
		t.Errorf("submittable: %v", body["submittable"])
	}
}

func TestGateway_UnknownSession(t *testing.T) {
	e := newTestGateway()
	rec, _ := doJSON(t, e, http.MethodGet, "/v1/sessions/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status: expected 404, got %d", rec.Code)
	}
}

func TestGateway_PlaceAndCapacityConflict(t *testing.T) {
	e := newTestGateway()
	id := createSession(t, e)

	for i := 0; i < 3; i++ {
		rec, _ := doJSON(t, e, http.MethodPost, "/v1/sessions/"+id+"/place",
			fmt.Sprintf(`{"card": %d, "row": "front"}`, i))
		if rec.Code != http.StatusOK {
			t.Fatalf("place %d: status %d", i, rec.Code)
		}
	}

	rec, body := doJSON(t, e, http.MethodPost, "/v1/sessions/"+id+"/place",
		`{"card": 3, "row": "front"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if msg, _ := body["error"].(string); !strings.Contains(msg, "front") {
		t.Errorf("error should name the row: %v", body["error"])
	}
}

func TestGateway_BadPlacementRequests(t *testing.T) {
	e := newTestGateway()
	id := createSession(t, e)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"index out of range", `{"card": 9, "row": "front"}`, http.StatusBadRequest},
		{"discard on opening turn", `{"card": 0, "row": "discard"}`, http.StatusBadRequest},
		{"malformed body", `{"card": "zero"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := doJSON(t, e, http.MethodPost, "/v1/sessions/"+id+"/place", tt.body)
			if rec.Code != tt.want {
				t.Errorf("status: expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestGateway_ConfirmFlow(t *testing.T) {
	e := newTestGateway()
	id := createSession(t, e)

	// Confirming an incomplete placement conflicts and explains itself.
	rec, body := doJSON(t, e, http.MethodPost, "/v1/sessions/"+id+"/confirm", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if hint, _ := body["hint"].(string); hint == "" {
		t.Error("expected a hint explaining the block")
	}

	placements := []string{
		`{"card": 0, "row": "front"}`,
		`{"card": 1, "row": "front"}`,
		`{"card": 2, "row": "middle"}`,
		`{"card": 3, "row": "middle"}`,
		`{"card": 4, "row": "back"}`,
	}
	for _, p := range placements {
		rec, _ := doJSON(t, e, http.MethodPost, "/v1/sessions/"+id+"/place", p)
		if rec.Code != http.StatusOK {
			t.Fatalf("place: status %d", rec.Code)
		}
	}

	rec, body = doJSON(t, e, http.MethodPost, "/v1/sessions/"+id+"/confirm", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("confirm: status %d: %s", rec.Code, rec.Body.String())
	}
	if body["phase"] != "placing_draw" {
		t.Errorf("phase after confirm: %v", body["phase"])
	}
	cards, _ := body["hand"].([]any)
	if len(cards) != 3 {
		t.Errorf("draw hand: expected 3 cards, got %v", body["hand"])
	}
}

func TestGateway_ReturnToPool(t *testing.T) {
	e := newTestGateway()
	id := createSession(t, e)

	rec, _ := doJSON(t, e, http.MethodPost, "/v1/sessions/"+id+"/place", `{"card": 0, "row": "back"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("place: status %d", rec.Code)
	}

	rec, body := doJSON(t, e, http.MethodPost, "/v1/sessions/"+id+"/return", `{"card": 0}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("return: status %d", rec.Code)
	}
	unassigned, _ := body["unassigned"].([]any)
	if len(unassigned) != 5 {
		t.Errorf("expected all 5 cards back in the pool, got %v", body["unassigned"])
	}
}
