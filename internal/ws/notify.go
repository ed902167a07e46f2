package ws

import (
	"encoding/json"
	"strings"
	"time"
)

const EventProfileUpdated = "profile_updated"

type ProfileUpdatedEvent struct {
	Type      string `json:"type"`
	UserID    string `json:"user_uid"`
	Timestamp string `json:"timestamp"`
}

// Notifier broadcasts profile events to every connected client.
type Notifier struct {
	hub *Hub
	now func() time.Time
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

func (n *Notifier) ProfileUpdated(userID string) {
	if n == nil || n.hub == nil {
		return
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return
	}

	evt := ProfileUpdatedEvent{
		Type:      EventProfileUpdated,
		UserID:    userID,
		Timestamp: n.now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}
