package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/wganko/liff-for-auto-responce/feed"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are enforced by the CORS settings of the HTTP routes; the feed
	// carries no secrets.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WebSocketHandler struct {
	hub *feed.Hub
}

func NewWebSocketHandler(hub *feed.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// ServeWs godoc
// @Summary Live attendance feed
// @Tags feed
// @Description Upgrades to a websocket that receives ATTENDANCE_RECORDED messages for one form.
// @Param formKey path string true "Form key"
// @Router /ws/forms/{formKey} [get]
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	formKey := chi.URLParam(r, "formKey")
	if formKey == "" {
		errorResponse(w, r, http.StatusBadRequest, "missing formKey")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already answered the client.
		slog.Warn("failed to upgrade feed connection", slog.String("form_key", formKey), slog.Any("error", err))
		return
	}

	client := feed.NewClient(h.hub, conn, feed.RoomForForm(formKey))
	if !h.hub.Join(client) {
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
