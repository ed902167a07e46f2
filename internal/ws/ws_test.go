package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestNotifier_BroadcastsProfileUpdated(t *testing.T) {
	hub := NewHub(nil)
	n := NewNotifier(hub)
	n.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	n.ProfileUpdated(" u1 ")
	n.ProfileUpdated("")

	select {
	case msg := <-hub.broadcast:
		var evt ProfileUpdatedEvent
		if err := json.Unmarshal(msg, &evt); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if evt.Type != EventProfileUpdated || evt.UserID != "u1" || evt.Timestamp != "2026-01-02T03:04:05Z" {
			t.Fatalf("unexpected event %+v", evt)
		}
	default:
		t.Fatalf("expected a queued broadcast")
	}

	if len(hub.broadcast) != 0 {
		t.Fatalf("expected blank user to be ignored")
	}
}

func TestHub_DeliversToRegisteredClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	client := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.Register(client)

	deadline := time.Now().Add(time.Second)
	for hub.ClientCount() != 1 {
		if time.Now().After(deadline) {
			t.Fatalf("client never registered")
		}
		time.Sleep(time.Millisecond)
	}

	hub.Broadcast([]byte("hello"))
	select {
	case msg := <-client.send:
		if string(msg) != "hello" {
			t.Fatalf("unexpected message %q", msg)
		}
	case <-time.After(time.Second):
		t.Fatalf("message not delivered")
	}

	hub.Unregister(client)
	select {
	case _, ok := <-client.send:
		if ok {
			t.Fatalf("expected send channel closed")
		}
	case <-time.After(time.Second):
		t.Fatalf("client not unregistered")
	}
}

func TestHub_NilSafe(t *testing.T) {
	var h *Hub
	h.Broadcast([]byte("x"))
	h.Register(nil)
	if h.ClientCount() != 0 {
		t.Fatalf("expected zero clients")
	}
	var n *Notifier
	n.ProfileUpdated("u1")
}
