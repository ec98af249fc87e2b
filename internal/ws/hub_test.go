package ws

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"TechAssist/entity"
)

type fakeResponder struct {
	resp entity.ChatResponse
	got  chan entity.ChatRequest
}

func (f *fakeResponder) Chat(_ context.Context, req entity.ChatRequest) entity.ChatResponse {
	f.got <- req
	return f.resp
}

func testHub(responder Responder) *Hub {
	h := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	h.SetResponder(responder)
	return h
}

func addClient(h *Hub, sessionID string) *Client {
	client := &Client{hub: h, send: make(chan []byte, 8), sessionID: sessionID}
	h.attach(client)
	return client
}

func receiveEvent(t *testing.T, client *Client) Event {
	t.Helper()
	select {
	case data := <-client.send:
		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			t.Fatalf("bad event payload: %v", err)
		}
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
		return Event{}
	}
}

func TestHandleClientMessage_Question(t *testing.T) {
	responder := &fakeResponder{
		resp: entity.ChatResponse{Answer: "Dạ có ạ", Success: true},
		got:  make(chan entity.ChatRequest, 1),
	}
	h := testHub(responder)
	client := addClient(h, "session-1")

	raw := []byte(`{"type":"question","data":{"question":"có chuột gaming không","user_id":7}}`)
	h.HandleClientMessage("session-1", raw)

	typing := receiveEvent(t, client)
	if typing.Type != "typing" {
		t.Fatalf("expected typing event first, got %s", typing.Type)
	}

	answer := receiveEvent(t, client)
	if answer.Type != "answer" {
		t.Fatalf("expected answer event, got %s", answer.Type)
	}

	select {
	case req := <-responder.got:
		if req.Question != "có chuột gaming không" {
			t.Errorf("unexpected question: %q", req.Question)
		}
		if req.SessionID != "session-1" {
			t.Errorf("unexpected session: %q", req.SessionID)
		}
		if req.UserID != 7 {
			t.Errorf("unexpected user id: %d", req.UserID)
		}
	default:
		t.Fatal("responder never called")
	}
}

func TestHandleClientMessage_IgnoresGarbage(t *testing.T) {
	responder := &fakeResponder{got: make(chan entity.ChatRequest, 1)}
	h := testHub(responder)
	client := addClient(h, "session-1")

	h.HandleClientMessage("session-1", []byte(`not json`))
	h.HandleClientMessage("session-1", []byte(`{"type":"question","data":{"question":""}}`))
	h.HandleClientMessage("session-1", []byte(`{"type":"unknown","data":{}}`))

	select {
	case <-client.send:
		t.Fatal("unexpected event for garbage input")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSendToSession_UnknownSessionDropped(t *testing.T) {
	h := testHub(nil)

	h.SendToSession("nobody", &Event{Type: "typing"})
}

func TestAttach_SessionEventArrivesWithoutRunLoop(t *testing.T) {
	h := testHub(nil)
	client := addClient(h, "session-1")

	h.SendToSession("session-1", &Event{
		Type: "session",
		Data: map[string]string{"session_id": "session-1"},
	})

	event := receiveEvent(t, client)
	if event.Type != "session" {
		t.Fatalf("expected session event, got %s", event.Type)
	}
}

func TestAttach_ReplacesSameSession(t *testing.T) {
	h := testHub(nil)
	first := addClient(h, "session-1")
	second := addClient(h, "session-1")

	select {
	case _, open := <-first.send:
		if open {
			t.Fatal("expected the replaced client's channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("replaced client never closed")
	}

	h.SendToSession("session-1", &Event{Type: "typing"})
	if event := receiveEvent(t, second); event.Type != "typing" {
		t.Fatalf("expected typing on the new client, got %s", event.Type)
	}
}
