package dto

import "github.com/google/uuid"

type MarkAsReadRequest struct {
	IDs []string `json:"ids"`
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}

// DeliverTaskPayload is the asynq task body for one delivery attempt.
type DeliverTaskPayload struct {
	NotificationID uuid.UUID `json:"notification_id"`
	EventID        int64     `json:"event_id"`
	EventName      string    `json:"event_name"`
	Kind           string    `json:"kind"`
}
