package feed

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/wganko/liff-for-auto-responce/models"
)

const MessageAttendanceRecorded = "ATTENDANCE_RECORDED"

// Message is the envelope pushed to dashboard clients.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	RoomID  string      `json:"room_id,omitempty"`
}

// AttendanceRecorded is the payload of MessageAttendanceRecorded.
type AttendanceRecorded struct {
	FormKey      string           `json:"formKey"`
	RosterNumber string           `json:"bambooNo"`
	Registered   bool             `json:"registered"`
	DisplayName  string           `json:"displayName,omitempty"`
	Attendance   string           `json:"attendance"`
	Tier         models.MatchTier `json:"tier,omitempty"`
	RecordedAt   time.Time        `json:"recordedAt"`
}

// Publisher broadcasts reconciliation outcomes of a form to its watchers.
type Publisher interface {
	PublishAttendance(formKey string, event AttendanceRecorded)
}

// RoomForForm names the room that watches a form.
func RoomForForm(formKey string) string {
	return "form_" + formKey
}

type Hub struct {
	Register   chan *Client
	Unregister chan *Client
	rooms      map[string]map[*Client]bool
	mu         sync.RWMutex
	stopped    chan struct{}
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
		stopped:    make(chan struct{}),
		logger:     logger,
	}
}

// Run serves register and unregister requests until done is closed.
func (h *Hub) Run(done <-chan struct{}) {
	defer close(h.stopped)
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.rooms[client.Room]; !ok {
				h.rooms[client.Room] = make(map[*Client]bool)
			}
			h.rooms[client.Room][client] = true
			h.logger.Debug("feed client registered", slog.String("room", client.Room), slog.Int("clients", len(h.rooms[client.Room])))
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if roomClients, ok := h.rooms[client.Room]; ok {
				if _, ok := roomClients[client]; ok {
					client.close()
					delete(roomClients, client)
					if len(roomClients) == 0 {
						delete(h.rooms, client.Room)
					}
					h.logger.Debug("feed client unregistered", slog.String("room", client.Room))
				}
			}
			h.mu.Unlock()

		case <-done:
			h.mu.Lock()
			for room, roomClients := range h.rooms {
				for client := range roomClients {
					client.close()
				}
				delete(h.rooms, room)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.stopped
}

// Join registers c with a running hub. It reports false when the hub has
// already stopped.
func (h *Hub) Join(c *Client) bool {
	select {
	case h.Register <- c:
		return true
	case <-h.stopped:
		return false
	}
}

// RoomSize reports how many clients watch a room.
func (h *Hub) RoomSize(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

// BroadcastToRoom sends message to every client of roomID. Slow clients whose
// buffer is full miss the message.
func (h *Hub) BroadcastToRoom(roomID string, message Message) {
	message.RoomID = roomID
	messageBytes, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("failed to marshal feed message", slog.String("room", roomID), slog.Any("error", err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.rooms[roomID] {
		client.send(messageBytes)
	}
}

func (h *Hub) PublishAttendance(formKey string, event AttendanceRecorded) {
	h.BroadcastToRoom(RoomForForm(formKey), Message{Type: MessageAttendanceRecorded, Payload: event})
}
