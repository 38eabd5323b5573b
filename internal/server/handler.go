package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/tickdeck/go-tickdeck/internal/session"
	"github.com/unrolled/render"
)

type Handler struct {
	log     zerolog.Logger
	render  *render.Render
	network *session.SessionNetwork
}

func NewHandler(log zerolog.Logger, render *render.Render, network *session.SessionNetwork) *Handler {
	return &Handler{
		log:     log,
		render:  render,
		network: network,
	}
}

// OpenSession upgrades to a websocket and attaches it to a timer session.
// A SessionID query param rejoins a live session; omitting it opens a new one.
func (h *Handler) OpenSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("SessionID")
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		writeJSONResponse(h.render, w, http.StatusInternalServerError, errorResponse{Message: "failed to upgrade websocket connection"})
		return
	}
	if err := h.network.OpenSession(session.OpenSessionOptions{
		SessionID: sessionID,
		Conn:      conn,
	}); err != nil {
		_ = conn.Close()
	}
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats := h.network.GetStats()
	writeJSONResponse(h.render, w, http.StatusOK, StatsResponse{
		SessionsCurrent: stats.ActiveSessions,
		TimersCurrent:   stats.ActiveTimers,
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(http.StatusText(http.StatusOK)))
}

type errorResponse struct {
	Message string
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}
