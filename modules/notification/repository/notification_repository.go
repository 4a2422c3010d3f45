package repository

import (
	"context"
	"time"

	"smartschedule-api/core/database"
	"smartschedule-api/core/logger"
	"smartschedule-api/core/params"
	"smartschedule-api/modules/notification/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type NotificationRepository struct {
	db database.IDatabase
}

type NotificationRepositoryInterface interface {
	Create(ctx context.Context, notification *entity.Notification) error
	List(ctx context.Context, params params.QueryParams) (*entity.PaginatedNotificationEntity, error)
	CountUnread(ctx context.Context) (int, error)
	MarkAsRead(ctx context.Context, ids []string) error
	MarkAllAsRead(ctx context.Context) error
	MarkDelivered(ctx context.Context, id uuid.UUID, deliveredAt time.Time) error
}

func NewNotificationRepository(db database.IDatabase) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	query := `
		INSERT INTO notifications (event_id, event_name, event_start, kind, offset_minutes, delivered, is_read, created_at, updated_at)
		VALUES (:event_id, :event_name, :event_start, :kind, :offset_minutes, :delivered, :is_read, :created_at, :updated_at)
		RETURNING id
	`
	rows, err := r.db.NamedQueryContext(ctx, query, notification)
	if err != nil {
		logger.Error("NotificationRepository:Create:Error:", err)
		return err
	}
	defer rows.Close()

	if rows.Next() {
		return rows.Scan(&notification.ID)
	}
	return nil
}

func (r *NotificationRepository) List(ctx context.Context, params params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	offset := (params.PageNumber - 1) * params.PageSize

	var totalItems int
	err := r.db.GetContext(ctx, &totalItems, `SELECT COUNT(*) FROM notifications`)
	if err != nil {
		logger.Error("NotificationRepository:List:Count:Error:", err)
		return nil, err
	}

	query := `
		SELECT * FROM notifications
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	var notifications []entity.Notification
	err = r.db.SelectContext(ctx, &notifications, query, params.PageSize, offset)
	if err != nil {
		logger.Error("NotificationRepository:List:Select:Error:", err)
		return nil, err
	}

	return &entity.PaginatedNotificationEntity{
		Items:      notifications,
		TotalItems: totalItems,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE is_read = false`
	err := r.db.GetContext(ctx, &count, query)
	if err != nil {
		logger.Error("NotificationRepository:CountUnread:Error:", err)
		return 0, err
	}
	return count, nil
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`UPDATE notifications SET is_read = true WHERE id IN (?)`, ids)
	if err != nil {
		return err
	}

	query = r.db.SQLx().Rebind(query)
	err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.Error("NotificationRepository:MarkAsRead:Error:", err)
		return err
	}
	return nil
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context) error {
	query := `UPDATE notifications SET is_read = true WHERE is_read = false`
	err := r.db.ExecContext(ctx, query)
	if err != nil {
		logger.Error("NotificationRepository:MarkAllAsRead:Error:", err)
		return err
	}
	return nil
}

func (r *NotificationRepository) MarkDelivered(ctx context.Context, id uuid.UUID, deliveredAt time.Time) error {
	query := `UPDATE notifications SET delivered = true, delivered_at = $2, updated_at = $2 WHERE id = $1`
	err := r.db.ExecContext(ctx, query, id, deliveredAt)
	if err != nil {
		logger.Error("NotificationRepository:MarkDelivered:Error:", err)
		return err
	}
	return nil
}
