package worker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"smartschedule-api/core/constants"
	"smartschedule-api/core/params"
	"smartschedule-api/modules/notification/dto"
	"smartschedule-api/modules/notification/entity"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotificationRepo struct {
	delivered map[uuid.UUID]time.Time
}

func (f *fakeNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	return nil
}
func (f *fakeNotificationRepo) List(ctx context.Context, p params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	return nil, nil
}
func (f *fakeNotificationRepo) CountUnread(ctx context.Context) (int, error) { return 0, nil }
func (f *fakeNotificationRepo) MarkAsRead(ctx context.Context, ids []string) error {
	return nil
}
func (f *fakeNotificationRepo) MarkAllAsRead(ctx context.Context) error { return nil }
func (f *fakeNotificationRepo) MarkDelivered(ctx context.Context, id uuid.UUID, deliveredAt time.Time) error {
	f.delivered[id] = deliveredAt
	return nil
}

func TestDeliveryWorker_HandleDeliver(t *testing.T) {
	repo := &fakeNotificationRepo{delivered: map[uuid.UUID]time.Time{}}
	w := NewDeliveryWorker(repo)

	id := uuid.New()
	payload, err := json.Marshal(dto.DeliverTaskPayload{
		NotificationID: id,
		EventID:        7,
		EventName:      "Họp nhóm",
		Kind:           entity.KindPreReminder,
	})
	require.NoError(t, err)

	task := asynq.NewTask(constants.TaskNotificationDeliver, payload)
	err = w.HandleDeliver(context.Background(), task)

	require.NoError(t, err)
	assert.Contains(t, repo.delivered, id)
}

func TestDeliveryWorker_HandleDeliver_BadPayload(t *testing.T) {
	repo := &fakeNotificationRepo{delivered: map[uuid.UUID]time.Time{}}
	w := NewDeliveryWorker(repo)

	task := asynq.NewTask(constants.TaskNotificationDeliver, []byte("not json"))
	err := w.HandleDeliver(context.Background(), task)

	assert.Error(t, err)
	assert.Empty(t, repo.delivered)
}
