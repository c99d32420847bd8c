package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type RequestUpdatedEvent struct {
	Type      string `json:"type"`
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifyRequestUpdated broadcasts a workflow transition. It is fire and
// forget: a missing hub or full buffer never affects the transition that
// triggered it.
func NotifyRequestUpdated(requestID uuid.UUID, status string) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	evt := RequestUpdatedEvent{
		Type:      "request_updated",
		RequestID: requestID.String(),
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
