package dto

import (
	"time"

	"smartschedule-api/core/constants"
	coreEntity "smartschedule-api/core/entity"
	"smartschedule-api/modules/event/entity"
)

type CreateEventRequest struct {
	Name            string     `json:"name"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	Location        string     `json:"location,omitempty"`
	ReminderMinutes int        `json:"reminder_minutes"`
}

type UpdateEventRequest struct {
	Name            *string    `json:"name,omitempty"`
	StartTime       *time.Time `json:"start_time,omitempty"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	Location        *string    `json:"location,omitempty"`
	ReminderMinutes *int       `json:"reminder_minutes,omitempty"`
}

type EventResponse struct {
	ID              int64              `json:"id"`
	Name            string             `json:"name"`
	StartTime       time.Time          `json:"start_time"`
	EndTime         *time.Time         `json:"end_time,omitempty"`
	Location        *string            `json:"location,omitempty"`
	ReminderMinutes int                `json:"reminder_minutes"`
	Status          entity.EventStatus `json:"status"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

type PaginatedEventResponse = coreEntity.Pagination[EventResponse]

// DuplicateEvent is the shape of a conflicting event surfaced to the caller.
type DuplicateEvent struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
}

// ConflictDetails is attached to a duplicate-time error. Duplicates is capped
// for presentation; TotalConflicts carries the size of the full set.
type ConflictDetails struct {
	StartTime      time.Time        `json:"start_time"`
	TotalConflicts int              `json:"total_conflicts"`
	Duplicates     []DuplicateEvent `json:"duplicates"`
}

func ToEventResponse(e *entity.Event) *EventResponse {
	return &EventResponse{
		ID:              e.ID,
		Name:            e.Name,
		StartTime:       e.StartTime,
		EndTime:         e.EndTime,
		Location:        e.Location,
		ReminderMinutes: e.ReminderMinutes,
		Status:          e.Status,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func ToConflictDetails(startTime time.Time, conflicts []entity.Event) *ConflictDetails {
	details := &ConflictDetails{
		StartTime:      startTime,
		TotalConflicts: len(conflicts),
	}
	for i, ev := range conflicts {
		if i >= constants.MaxSurfacedDuplicates {
			break
		}
		details.Duplicates = append(details.Duplicates, DuplicateEvent{
			ID:        ev.ID,
			Name:      ev.Name,
			StartTime: ev.StartTime,
		})
	}
	return details
}
