package entity

import (
	"time"

	"smartschedule-api/core/entity"
)

// Notification kinds, one per reminder stage.
const (
	KindPreReminder = "pre_reminder"
	KindOnTime      = "on_time"
)

// Notification is a persisted record of one reminder signal. It keeps its
// own copy of the event name and start so the log survives event deletion.
type Notification struct {
	EventID       int64      `db:"event_id" json:"event_id"`
	EventName     string     `db:"event_name" json:"event_name"`
	EventStart    time.Time  `db:"event_start" json:"event_start"`
	Kind          string     `db:"kind" json:"kind"`
	OffsetMinutes int        `db:"offset_minutes" json:"offset_minutes"`
	Delivered     bool       `db:"delivered" json:"delivered"`
	DeliveredAt   *time.Time `db:"delivered_at" json:"delivered_at,omitempty"`
	IsRead        bool       `db:"is_read" json:"is_read"`
	entity.BaseEntity
}

type PaginatedNotificationEntity = entity.Pagination[Notification]
