package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type ReadinessUpdatedEvent struct {
	Type       string `json:"type"`
	UserID     string `json:"user_id"`
	RoleID     string `json:"role_id"`
	SnapshotID string `json:"snapshot_id"`
	Tier       string `json:"tier"`
	Timestamp  string `json:"timestamp"`
}

// Notifier pushes snapshot-written events to connected clients. It satisfies
// the usecase notifier interface; a nil Notifier is a no-op so the engine
// works without a hub in tests.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) ReadinessUpdated(userID, roleID, snapshotID uuid.UUID, tier string) {
	if n == nil || n.hub == nil {
		return
	}

	evt := ReadinessUpdatedEvent{
		Type:       "readiness_updated",
		UserID:     userID.String(),
		RoleID:     roleID.String(),
		SnapshotID: snapshotID.String(),
		Tier:       tier,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	n.hub.Broadcast(b)
}
