package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const (
	EventApplicationSubmitted = "application_submitted"
	EventApplicationApproved  = "application_approved"
	EventApplicationRejected  = "application_rejected"
)

type ApplicationEvent struct {
	Type          string    `json:"type"`
	ApplicationID uuid.UUID `json:"application_id"`
	PropertyID    uuid.UUID `json:"property_id"`
	Status        string    `json:"status"`
	Timestamp     string    `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifyApplicationEvent broadcasts a lifecycle event to every connected
// dashboard. Best effort: no hub, no delivery.
func NotifyApplicationEvent(eventType string, applicationID, propertyID uuid.UUID, status string) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	evt := ApplicationEvent{
		Type:          eventType,
		ApplicationID: applicationID,
		PropertyID:    propertyID,
		Status:        status,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
