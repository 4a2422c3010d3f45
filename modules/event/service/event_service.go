package service

import (
	"context"
	"strings"
	"time"

	"smartschedule-api/core/errors"
	"smartschedule-api/modules/event/dto"
	"smartschedule-api/modules/event/entity"
	"smartschedule-api/modules/event/repository"
)

// EventService handles event business logic.
type EventService struct {
	repo  repository.EventRepositoryInterface
	guard ConflictGuardInterface
}

// EventServiceInterface defines the service contract.
type EventServiceInterface interface {
	Create(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError)
	GetByID(ctx context.Context, id int64) (*dto.EventResponse, *errors.AppError)
	List(ctx context.Context, date *time.Time) ([]dto.EventResponse, *errors.AppError)
	Update(ctx context.Context, id int64, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError)
	Delete(ctx context.Context, id int64) *errors.AppError
}

func NewEventService(repo repository.EventRepositoryInterface, guard ConflictGuardInterface) *EventService {
	return &EventService{
		repo:  repo,
		guard: guard,
	}
}

// Create validates and persists a new event behind the conflict guard.
func (s *EventService) Create(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError) {
	if appErr := validateCreate(req); appErr != nil {
		return nil, appErr
	}

	ev := &entity.Event{
		Name:            strings.TrimSpace(req.Name),
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		ReminderMinutes: req.ReminderMinutes,
		Status:          entity.EventStatusPending,
	}
	if loc := strings.TrimSpace(req.Location); loc != "" {
		ev.Location = &loc
	}

	created, conflicts, err := s.guard.ReserveInsert(ctx, ev)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create event", err)
	}
	if len(conflicts) > 0 {
		return nil, errors.NewAppError(errors.ErrDuplicateTime, "Another event already starts at this time", nil).
			WithDetails(dto.ToConflictDetails(req.StartTime, conflicts))
	}

	return dto.ToEventResponse(created), nil
}

func (s *EventService) GetByID(ctx context.Context, id int64) (*dto.EventResponse, *errors.AppError) {
	ev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get event", err)
	}
	if ev == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	return dto.ToEventResponse(ev), nil
}

func (s *EventService) List(ctx context.Context, date *time.Time) ([]dto.EventResponse, *errors.AppError) {
	var (
		events []entity.Event
		err    error
	)
	if date != nil {
		events, err = s.repo.ListByDate(ctx, *date)
	} else {
		events, err = s.repo.ListAll(ctx)
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list events", err)
	}

	result := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		result = append(result, *dto.ToEventResponse(&events[i]))
	}
	return result, nil
}

// Update applies a partial edit. A changed start time re-runs the conflict
// guard, excluding the event's own id so an unchanged minute still passes.
func (s *EventService) Update(ctx context.Context, id int64, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError) {
	ev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get event", err)
	}
	if ev == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Event name must not be empty", nil)
		}
		ev.Name = name
	}
	if req.StartTime != nil {
		ev.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		ev.EndTime = req.EndTime
	}
	if req.Location != nil {
		loc := strings.TrimSpace(*req.Location)
		if loc == "" {
			ev.Location = nil
		} else {
			ev.Location = &loc
		}
	}
	if req.ReminderMinutes != nil {
		if *req.ReminderMinutes < 0 {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Reminder minutes must not be negative", nil)
		}
		ev.ReminderMinutes = *req.ReminderMinutes
	}

	conflicts, err := s.guard.ReserveUpdate(ctx, ev)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to update event", err)
	}
	if len(conflicts) > 0 {
		return nil, errors.NewAppError(errors.ErrDuplicateTime, "Another event already starts at this time", nil).
			WithDetails(dto.ToConflictDetails(ev.StartTime, conflicts))
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil || updated == nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to reload event", err)
	}
	return dto.ToEventResponse(updated), nil
}

// Delete removes the event; the repository restarts the id sequence when the
// table becomes empty.
func (s *EventService) Delete(ctx context.Context, id int64) *errors.AppError {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to delete event", err)
	}
	if !deleted {
		return errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	return nil
}

func validateCreate(req *dto.CreateEventRequest) *errors.AppError {
	if strings.TrimSpace(req.Name) == "" {
		return errors.NewAppError(errors.ErrInvalidInput, "Event name is required", nil)
	}
	if req.StartTime.IsZero() {
		return errors.NewAppError(errors.ErrInvalidInput, "Event start time is required", nil)
	}
	if req.EndTime != nil && !req.EndTime.After(req.StartTime) {
		return errors.NewAppError(errors.ErrInvalidInput, "Event end time must be after start time", nil)
	}
	if req.ReminderMinutes < 0 {
		return errors.NewAppError(errors.ErrInvalidInput, "Reminder minutes must not be negative", nil)
	}
	return nil
}
