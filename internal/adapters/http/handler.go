package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rodgzilla/pineapple-ofc-ai/internal/adapters/ws"
	"github.com/rodgzilla/pineapple-ofc-ai/internal/app"
	"github.com/rodgzilla/pineapple-ofc-ai/internal/domain"
)

// Handler exposes the placement state machine over HTTP: one endpoint per
// Turn Controller mutator plus session lifecycle and a WebSocket state
// stream. It is the gesture boundary: a browser UI translates drags and
// clicks into these calls.
type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.POST("/v1/sessions", h.CreateSession)
	e.GET("/v1/sessions/:id", h.GetSession)
	e.POST("/v1/sessions/:id/place", h.Place)
	e.POST("/v1/sessions/:id/return", h.ReturnToPool)
	e.POST("/v1/sessions/:id/confirm", h.Confirm)
	e.POST("/v1/sessions/:id/restart", h.Restart)
	e.GET("/v1/sessions/:id/stream", h.Stream)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// CreateSession starts a new session and immediately asks the server for
// the opening deal. If the deal fails the session still exists, parked in
// the error phase, so the snapshot carries both the ID and the failure and
// the client can retry via restart.
func (h *Handler) CreateSession(c echo.Context) error {
	id, sess := h.hub.Create()
	if err := sess.Start(c.Request().Context()); err != nil {
		slog.Warn("opening deal failed", "session_id", id, "error", err)
	}
	return c.JSON(http.StatusCreated, ToSnapshotResponse(id, sess.Snapshot()))
}

func (h *Handler) GetSession(c echo.Context) error {
	id, sess, err := h.session(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ToSnapshotResponse(id, sess.Snapshot()))
}

func (h *Handler) Place(c echo.Context) error {
	id, sess, err := h.session(c)
	if err != nil {
		return err
	}
	var req PlaceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if err := sess.Place(req.Card, req.Row); err != nil {
		return mapError(c, id, sess, err)
	}
	return c.JSON(http.StatusOK, ToSnapshotResponse(id, sess.Snapshot()))
}

func (h *Handler) ReturnToPool(c echo.Context) error {
	id, sess, err := h.session(c)
	if err != nil {
		return err
	}
	var req ReturnRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if err := sess.ReturnToPool(req.Card); err != nil {
		return mapError(c, id, sess, err)
	}
	return c.JSON(http.StatusOK, ToSnapshotResponse(id, sess.Snapshot()))
}

func (h *Handler) Confirm(c echo.Context) error {
	id, sess, err := h.session(c)
	if err != nil {
		return err
	}
	if err := sess.Confirm(c.Request().Context()); err != nil {
		return mapError(c, id, sess, err)
	}
	return c.JSON(http.StatusOK, ToSnapshotResponse(id, sess.Snapshot()))
}

// Restart begins a rematch on an existing session.
func (h *Handler) Restart(c echo.Context) error {
	id, sess, err := h.session(c)
	if err != nil {
		return err
	}
	if err := sess.Start(c.Request().Context()); err != nil {
		return mapError(c, id, sess, err)
	}
	return c.JSON(http.StatusOK, ToSnapshotResponse(id, sess.Snapshot()))
}

// Stream upgrades to a WebSocket pushing a snapshot on connect and after
// every state change.
func (h *Handler) Stream(c echo.Context) error {
	id, sess, err := h.session(c)
	if err != nil {
		return err
	}
	ws.Serve(c.Response(), c.Request(), sess, func(snap app.Snapshot) any {
		return ToSnapshotResponse(id, snap)
	})
	return nil
}

func (h *Handler) session(c echo.Context) (string, *app.Session, error) {
	id := c.Param("id")
	sess, ok := h.hub.Get(id)
	if !ok {
		return "", nil, c.JSON(http.StatusNotFound, ErrorResponse{Error: "session not found"})
	}
	return id, sess, nil
}

// mapError translates the error taxonomy to HTTP statuses. Capacity and
// phase conflicts are user-recoverable; transport failures surface as 502.
func mapError(c echo.Context, id string, sess *app.Session, err error) error {
	var capErr *domain.CapacityError
	var rejErr *domain.RejectedError

	switch {
	case errors.As(err, &capErr):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: capErr.Error(), Hint: sess.Snapshot().Hint})
	case errors.As(err, &rejErr):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: rejErr.Message})
	case errors.Is(err, domain.ErrIndexOutOfRange), errors.Is(err, domain.ErrRowNotAllowed):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotSubmittable), errors.Is(err, domain.ErrWrongPhase):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Hint: sess.Snapshot().Hint})
	case errors.Is(err, domain.ErrUpstream):
		slog.Error("game server failure", "session_id", id, "error", err)
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "game server unavailable"})
	default:
		slog.Error("internal error", "session_id", id, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
