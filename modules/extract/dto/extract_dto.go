package dto

import "time"

type ParseRequest struct {
	Text string `json:"text"`
}

// ParseResponse is the dry-run reading of a sentence: what an event created
// from it would look like, without touching storage.
type ParseResponse struct {
	Name            string     `json:"name"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	Location        *string    `json:"location,omitempty"`
	ReminderMinutes int        `json:"reminder_minutes"`
	Category        string     `json:"category"`
}
