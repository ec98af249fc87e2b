package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"TechAssist/entity"
)

// Responder runs one shopper question through the pipeline.
type Responder interface {
	Chat(ctx context.Context, req entity.ChatRequest) entity.ChatResponse
}

// Event represents a WebSocket event sent to chat clients.
type Event struct {
	Type string      `json:"type"` // "session", "typing", "answer"
	Data interface{} `json:"data"`
}

// Hub maintains the set of active chat connections, one per session.
type Hub struct {
	clients    map[string]*Client
	unregister chan *Client
	mu         sync.RWMutex
	responder  Responder
	log        *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		unregister: make(chan *Client),
		log:        log,
	}
}

// SetResponder sets the pipeline handling incoming questions.
func (h *Hub) SetResponder(responder Responder) {
	h.responder = responder
}

// attach makes a client reachable by its session id before any event is
// sent to it. A reconnect on the same session replaces the old connection.
func (h *Hub) attach(client *Client) {
	h.mu.Lock()
	if old, ok := h.clients[client.sessionID]; ok {
		close(old.send)
	}
	h.clients[client.sessionID] = client
	h.mu.Unlock()
}

// Run starts the hub's event loop. Should be called in a goroutine.
func (h *Hub) Run() {
	for client := range h.unregister {
		h.mu.Lock()
		if current, ok := h.clients[client.sessionID]; ok && current == client {
			delete(h.clients, client.sessionID)
			close(client.send)
		}
		h.mu.Unlock()
	}
}

// SendToSession delivers an event to one session, dropping it when the
// session is gone or its buffer is full.
func (h *Hub) SendToSession(sessionID string, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.mu.RLock()
	client, ok := h.clients[sessionID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	select {
	case client.send <- data:
	default:
	}
}

// clientEvent represents an incoming WebSocket message from a shopper.
type clientEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// HandleClientMessage parses and dispatches an incoming message.
func (h *Hub) HandleClientMessage(sessionID string, raw []byte) {
	if h.responder == nil {
		return
	}

	var event clientEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		h.log.Warn("failed to parse client ws message", slog.String("error", err.Error()))
		return
	}

	switch event.Type {
	case "question":
		var data struct {
			Question string `json:"question"`
			UserID   int    `json:"user_id"`
		}
		if err := json.Unmarshal(event.Data, &data); err != nil {
			h.log.Warn("failed to parse question data", slog.String("error", err.Error()))
			return
		}
		if data.Question == "" {
			return
		}
		go h.answer(sessionID, data.Question, data.UserID)
	}
}

// answer runs the pipeline and streams typing then the reply back to the
// asking session.
func (h *Hub) answer(sessionID, question string, userID int) {
	h.SendToSession(sessionID, &Event{Type: "typing", Data: map[string]bool{"typing": true}})

	resp := h.responder.Chat(context.Background(), entity.ChatRequest{
		Question:  question,
		UserID:    userID,
		SessionID: sessionID,
	})

	h.SendToSession(sessionID, &Event{Type: "answer", Data: resp})
}
