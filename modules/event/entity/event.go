package entity

import (
	"time"
)

// EventStatus tracks where an event sits in its notification lifecycle.
type EventStatus string

const (
	EventStatusPending  EventStatus = "pending"
	EventStatusReminded EventStatus = "reminded"
	EventStatusNotified EventStatus = "notified"
)

// CanTransitionTo enforces the monotonic lifecycle: pending may move to
// reminded or straight to notified, reminded only to notified.
func (s EventStatus) CanTransitionTo(next EventStatus) bool {
	switch s {
	case EventStatusPending:
		return next == EventStatusReminded || next == EventStatusNotified
	case EventStatusReminded:
		return next == EventStatusNotified
	default:
		return false
	}
}

// Event is a scheduled calendar entry. IDs are assigned by the events
// sequence and recycle back to 1 once the table empties.
type Event struct {
	ID              int64       `db:"id" json:"id"`
	Name            string      `db:"name" json:"name"`
	StartTime       time.Time   `db:"start_time" json:"start_time"`
	EndTime         *time.Time  `db:"end_time" json:"end_time,omitempty"`
	Location        *string     `db:"location" json:"location,omitempty"`
	ReminderMinutes int         `db:"reminder_minutes" json:"reminder_minutes"`
	Status          EventStatus `db:"status" json:"status"`
	CreatedAt       time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at" json:"updated_at"`
}

// ReminderAt is the instant the pre-reminder becomes due.
func (e *Event) ReminderAt() time.Time {
	return e.StartTime.Add(-time.Duration(e.ReminderMinutes) * time.Minute)
}

// WantsPreReminder reports whether a pre-reminder was requested. Zero means
// the event skips straight from pending to notified.
func (e *Event) WantsPreReminder() bool {
	return e.ReminderMinutes > 0
}
