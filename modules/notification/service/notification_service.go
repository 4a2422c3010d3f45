package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"smartschedule-api/core/constants"
	coreEntity "smartschedule-api/core/entity"
	"smartschedule-api/core/logger"
	"smartschedule-api/core/params"
	eventEntity "smartschedule-api/modules/event/entity"
	"smartschedule-api/modules/notification/dto"
	"smartschedule-api/modules/notification/entity"
	"smartschedule-api/modules/notification/repository"

	"github.com/hibiken/asynq"
)

type NotificationService struct {
	repo   repository.NotificationRepositoryInterface
	client *asynq.Client
}

func NewNotificationService(repo repository.NotificationRepositoryInterface, client *asynq.Client) *NotificationService {
	return &NotificationService{repo: repo, client: client}
}

// NotifyPreReminder records the advance-warning signal for an event and
// queues its delivery.
func (s *NotificationService) NotifyPreReminder(ctx context.Context, event *eventEntity.Event) error {
	return s.notify(ctx, event, entity.KindPreReminder)
}

// NotifyOnTime records the start-of-event signal and queues its delivery.
func (s *NotificationService) NotifyOnTime(ctx context.Context, event *eventEntity.Event) error {
	return s.notify(ctx, event, entity.KindOnTime)
}

func (s *NotificationService) notify(ctx context.Context, event *eventEntity.Event, kind string) error {
	notif := &entity.Notification{
		EventID:       event.ID,
		EventName:     event.Name,
		EventStart:    event.StartTime,
		Kind:          kind,
		OffsetMinutes: event.ReminderMinutes,
		BaseEntity: coreEntity.BaseEntity{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
	if err := s.repo.Create(ctx, notif); err != nil {
		return err
	}

	payload, err := json.Marshal(dto.DeliverTaskPayload{
		NotificationID: notif.ID,
		EventID:        event.ID,
		EventName:      event.Name,
		Kind:           kind,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(constants.TaskNotificationDeliver, payload)
	_, err = s.client.EnqueueContext(ctx, task,
		asynq.Queue(constants.QueueNotifications),
		// deterministic id: a rescan of the same event/stage never queues twice
		asynq.TaskID(fmt.Sprintf("event:%d:%s", event.ID, kind)),
		asynq.MaxRetry(3),
	)
	if err != nil && !stderrors.Is(err, asynq.ErrTaskIDConflict) {
		logger.Error("NotificationService:notify:Enqueue:Error:", err)
		return err
	}
	return nil
}

func (s *NotificationService) List(ctx context.Context, queryParams params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	return s.repo.List(ctx, queryParams)
}

func (s *NotificationService) CountUnread(ctx context.Context) (int, error) {
	return s.repo.CountUnread(ctx)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, ids []string) error {
	return s.repo.MarkAsRead(ctx, ids)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context) error {
	return s.repo.MarkAllAsRead(ctx)
}
