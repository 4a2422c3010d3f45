package service

import (
	"context"
	"strings"
	"time"

	"smartschedule-api/core/constants"
	"smartschedule-api/core/errors"
	"smartschedule-api/core/logger"
	eventdto "smartschedule-api/modules/event/dto"
	eventservice "smartschedule-api/modules/event/service"
	"smartschedule-api/modules/extract/dto"
)

type ExtractService struct {
	extractor *Extractor
	events    eventservice.EventServiceInterface
	timezone  *time.Location
}

type ExtractServiceInterface interface {
	Parse(ctx context.Context, req *dto.ParseRequest) (*dto.ParseResponse, *errors.AppError)
	CreateEvent(ctx context.Context, req *dto.ParseRequest) (*eventdto.EventResponse, *errors.AppError)
}

func NewExtractService(events eventservice.EventServiceInterface, timezone *time.Location) *ExtractService {
	return &ExtractService{
		extractor: NewExtractor(),
		events:    events,
		timezone:  timezone,
	}
}

// Parse reads a sentence and reports the event it describes without
// persisting anything.
func (s *ExtractService) Parse(ctx context.Context, req *dto.ParseRequest) (*dto.ParseResponse, *errors.AppError) {
	ext, appErr := s.extract(req.Text)
	if appErr != nil {
		return nil, appErr
	}
	return &dto.ParseResponse{
		Name:            ext.Name,
		StartTime:       ext.Start,
		EndTime:         ext.End,
		Location:        ext.Location,
		ReminderMinutes: ext.ReminderMinutes,
		Category:        ext.Category,
	}, nil
}

// CreateEvent parses the sentence and stores the event through the event
// service, so conflict detection applies exactly as it does for structured
// input.
func (s *ExtractService) CreateEvent(ctx context.Context, req *dto.ParseRequest) (*eventdto.EventResponse, *errors.AppError) {
	ext, appErr := s.extract(req.Text)
	if appErr != nil {
		return nil, appErr
	}

	createReq := &eventdto.CreateEventRequest{
		Name:            ext.Name,
		StartTime:       ext.Start,
		EndTime:         ext.End,
		ReminderMinutes: ext.ReminderMinutes,
	}
	if ext.Location != nil {
		createReq.Location = *ext.Location
	}

	resp, appErr := s.events.Create(ctx, createReq)
	if appErr != nil {
		return nil, appErr
	}
	logger.Info("ExtractService:CreateEvent", "event_id", resp.ID, "category", ext.Category)
	return resp, nil
}

func (s *ExtractService) extract(text string) (*Extraction, *errors.AppError) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Nội dung không được để trống", nil)
	}

	ext := s.extractor.Extract(text, time.Now().In(s.timezone))
	switch ext.Outcome {
	case ResolveNotFound:
		return nil, errors.NewAppError(errors.ErrTimeNotFound, "Không tìm thấy thời gian trong nội dung", nil)
	case ResolveAlreadyPast:
		return nil, errors.NewAppError(errors.ErrTimeInPast, "Thời gian đã trôi qua", nil)
	}
	if ext.Name == "" {
		ext.Name = constants.DefaultEventName
	}
	return &ext, nil
}
