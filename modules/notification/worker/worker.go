package worker

import (
	"context"
	"encoding/json"
	"time"

	"smartschedule-api/core/logger"
	"smartschedule-api/modules/notification/dto"
	"smartschedule-api/modules/notification/repository"

	"github.com/hibiken/asynq"
)

// DeliveryWorker consumes queued notification tasks. Delivery here is the
// application's own channel (the unread feed); the worker marks the row
// delivered once the task lands.
type DeliveryWorker struct {
	repo repository.NotificationRepositoryInterface
}

func NewDeliveryWorker(repo repository.NotificationRepositoryInterface) *DeliveryWorker {
	return &DeliveryWorker{repo: repo}
}

func (w *DeliveryWorker) HandleDeliver(ctx context.Context, task *asynq.Task) error {
	var payload dto.DeliverTaskPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("DeliveryWorker:HandleDeliver:Unmarshal:Error:", err)
		return err
	}

	if err := w.repo.MarkDelivered(ctx, payload.NotificationID, time.Now()); err != nil {
		return err
	}

	logger.Info("DeliveryWorker:Delivered",
		"notification_id", payload.NotificationID,
		"event_id", payload.EventID,
		"kind", payload.Kind,
	)
	return nil
}
