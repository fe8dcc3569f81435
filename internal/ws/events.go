package ws

import (
	"encoding/json"

	"lenslend-backend/internal/domain"
	"lenslend-backend/internal/logger"
)

const (
	TypeNewMessage     = "message.new"
	TypeBookingUpdated = "booking.updated"
)

// Event is the envelope pushed to clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// EventBroadcaster turns domain changes into per-user deliveries.
type EventBroadcaster struct {
	hub *Hub
}

// NewEventBroadcaster creates a broadcaster over the hub.
func NewEventBroadcaster(hub *Hub) *EventBroadcaster {
	return &EventBroadcaster{hub: hub}
}

// NotifyNewMessage pushes a new message to the recipient.
func (b *EventBroadcaster) NotifyNewMessage(recipientID int32, msg *domain.Message) {
	b.send(recipientID, Event{Type: TypeNewMessage, Payload: msg})
}

// NotifyBookingUpdated pushes a booking transition to the counterpart.
func (b *EventBroadcaster) NotifyBookingUpdated(recipientID int32, booking *domain.Booking) {
	b.send(recipientID, Event{Type: TypeBookingUpdated, Payload: booking})
}

func (b *EventBroadcaster) send(userID int32, evt Event) {
	payload, err := json.Marshal(evt)
	if err != nil {
		logger.Error("failed to marshal ws event", "type", evt.Type, "error", err)
		return
	}
	b.hub.SendToUser(userID, payload)
}
