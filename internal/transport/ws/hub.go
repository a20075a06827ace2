package ws

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgAssessmentCompleted  MessageType = "assessment_completed"
	MsgPlanChanged          MessageType = "plan_changed"
	MsgAppointmentCompleted MessageType = "appointment_completed"
	MsgError                MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket connections keyed by patient. A patient's own
// connections receive patient events; doctor dashboards watching the same
// patient receive watcher events.
type Hub struct {
	patientConns map[string]map[*Connection]struct{}
	watcherConns map[string]map[*Connection]struct{}

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage

	logger zerolog.Logger
}

// Connection represents a WebSocket connection
type Connection struct {
	PatientID string
	UserID    string
	IsWatcher bool
	Send      chan []byte
	Hub       *Hub
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	PatientID  string
	ToWatchers bool
	Message    *Message
}

// NewHub creates a new WebSocket hub
func NewHub(logger zerolog.Logger) *Hub {
	h := &Hub{
		patientConns: make(map[string]map[*Connection]struct{}),
		watcherConns: make(map[string]map[*Connection]struct{}),
		register:     make(chan *Connection),
		unregister:   make(chan *Connection),
		broadcast:    make(chan *BroadcastMessage, 256),
		logger:       logger,
	}
	go h.run()
	return h
}

func (h *Hub) pool(isWatcher bool) map[string]map[*Connection]struct{} {
	if isWatcher {
		return h.watcherConns
	}
	return h.patientConns
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			pool := h.pool(conn.IsWatcher)
			if pool[conn.PatientID] == nil {
				pool[conn.PatientID] = make(map[*Connection]struct{})
			}
			pool[conn.PatientID][conn] = struct{}{}
			h.mu.Unlock()
			h.logger.Debug().
				Str("patientId", conn.PatientID).
				Str("userId", conn.UserID).
				Bool("watcher", conn.IsWatcher).
				Msg("ws connected")

		case conn := <-h.unregister:
			h.mu.Lock()
			pool := h.pool(conn.IsWatcher)
			if conns, ok := pool[conn.PatientID]; ok {
				if _, ok := conns[conn]; ok {
					delete(conns, conn)
					close(conn.Send)
				}
				if len(conns) == 0 {
					delete(pool, conn.PatientID)
				}
			}
			h.mu.Unlock()
			h.logger.Debug().
				Str("patientId", conn.PatientID).
				Str("userId", conn.UserID).
				Msg("ws disconnected")

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.pool(msg.ToWatchers)[msg.PatientID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToPatient sends a message to the patient's own connections
// (implements service.Broadcaster)
func (h *Hub) BroadcastToPatient(patientID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		PatientID: patientID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

// BroadcastToWatchers sends a message to doctor dashboards watching the
// patient (implements service.Broadcaster)
func (h *Hub) BroadcastToWatchers(patientID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		PatientID:  patientID,
		ToWatchers: true,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}
