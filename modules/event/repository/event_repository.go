package repository

import (
	"context"
	"database/sql"
	"time"

	"smartschedule-api/core/database"
	"smartschedule-api/core/logger"
	"smartschedule-api/modules/event/entity"

	"github.com/jmoiron/sqlx"
)

const eventColumns = `id, name, start_time, end_time, location, reminder_minutes, status, created_at, updated_at`

// EventRepository handles event database operations.
type EventRepository struct {
	DB database.IDatabase
}

func NewEventRepository(db database.IDatabase) *EventRepository {
	return &EventRepository{DB: db}
}

// EventRepositoryInterface defines the repository contract.
type EventRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*entity.Event, error)
	ListAll(ctx context.Context) ([]entity.Event, error)
	ListByDate(ctx context.Context, day time.Time) ([]entity.Event, error)
	FindByExactMinute(ctx context.Context, ts time.Time, excludeID int64) ([]entity.Event, error)
	ListDueForReminder(ctx context.Context, now time.Time) ([]entity.Event, error)
	TransitionStatus(ctx context.Context, id int64, from, to entity.EventStatus) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)

	// Transactional primitives used by the conflict guard. The guard owns the
	// transaction so the duplicate check and the write share one scope.
	BeginTx(ctx context.Context) (*sqlx.Tx, error)
	LockMinuteTx(ctx context.Context, tx *sqlx.Tx, ts time.Time) error
	FindByExactMinuteTx(ctx context.Context, tx *sqlx.Tx, ts time.Time, excludeID int64) ([]entity.Event, error)
	InsertTx(ctx context.Context, tx *sqlx.Tx, ev *entity.Event) (*entity.Event, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, ev *entity.Event) (bool, error)
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	var ev entity.Event
	err := r.DB.GetContext(ctx, &ev, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetByID", err)
		return nil, err
	}
	return &ev, nil
}

func (r *EventRepository) ListAll(ctx context.Context) ([]entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY start_time`

	var events []entity.Event
	if err := r.DB.SelectContext(ctx, &events, query); err != nil {
		logger.Error("EventRepository:ListAll", err)
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) ListByDate(ctx context.Context, day time.Time) ([]entity.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE start_time >= $1 AND start_time < $2
		ORDER BY start_time
	`
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var events []entity.Event
	if err := r.DB.SelectContext(ctx, &events, query, dayStart, dayEnd); err != nil {
		logger.Error("EventRepository:ListByDate", err)
		return nil, err
	}
	return events, nil
}

// FindByExactMinute returns all events whose start matches ts at minute
// granularity. excludeID skips one event, used when editing against itself;
// pass 0 to exclude nothing.
func (r *EventRepository) FindByExactMinute(ctx context.Context, ts time.Time, excludeID int64) ([]entity.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE date_trunc('minute', start_time) = date_trunc('minute', $1::timestamptz)
		  AND ($2 = 0 OR id <> $2)
		ORDER BY id
	`

	var events []entity.Event
	if err := r.DB.SelectContext(ctx, &events, query, ts, excludeID); err != nil {
		logger.Error("EventRepository:FindByExactMinute", err)
		return nil, err
	}
	return events, nil
}

// ListDueForReminder returns every event due for some notification at now:
// pending events whose pre-reminder window opened, and pending/reminded
// events whose start has passed.
func (r *EventRepository) ListDueForReminder(ctx context.Context, now time.Time) ([]entity.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE status IN ('pending', 'reminded')
		  AND (
			start_time <= $1
			OR (status = 'pending' AND reminder_minutes > 0
				AND start_time - make_interval(mins => reminder_minutes) <= $1)
		  )
		ORDER BY start_time ASC
	`

	var events []entity.Event
	if err := r.DB.SelectContext(ctx, &events, query, now); err != nil {
		logger.Error("EventRepository:ListDueForReminder", err)
		return nil, err
	}
	return events, nil
}

// TransitionStatus applies a conditional status update. The from guard makes
// the transition exactly-once: a concurrent scan or edit that already moved
// the event leaves zero rows affected, and the caller must not emit a signal.
func (r *EventRepository) TransitionStatus(ctx context.Context, id int64, from, to entity.EventStatus) (bool, error) {
	if !from.CanTransitionTo(to) {
		return false, nil
	}

	query := `UPDATE events SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`
	res, err := r.DB.SQLx().ExecContext(ctx, query, id, from, to)
	if err != nil {
		logger.Error("EventRepository:TransitionStatus", err)
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// Delete removes the event and, when the table becomes empty, restarts the id
// sequence at 1 inside the same transaction, so a crash can never leave the
// table empty with a stale counter.
func (r *EventRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tx, err := r.DB.BeginTxx(ctx)
	if err != nil {
		logger.Error("EventRepository:Delete:Begin", err)
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		logger.Error("EventRepository:Delete", err)
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	var remaining int
	if err := tx.GetContext(ctx, &remaining, `SELECT COUNT(*) FROM events`); err != nil {
		logger.Error("EventRepository:Delete:Count", err)
		return false, err
	}
	if remaining == 0 {
		if _, err := tx.ExecContext(ctx, `ALTER SEQUENCE events_id_seq RESTART WITH 1`); err != nil {
			logger.Error("EventRepository:Delete:ResetSequence", err)
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("EventRepository:Delete:Commit", err)
		return false, err
	}
	return affected == 1, nil
}

// ===================== Transactional primitives =====================

func (r *EventRepository) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	return r.DB.BeginTxx(ctx)
}

// LockMinuteTx serializes writers targeting the same minute. The advisory
// lock is transaction-scoped and released on commit/rollback.
func (r *EventRepository) LockMinuteTx(ctx context.Context, tx *sqlx.Tx, ts time.Time) error {
	key := ts.Truncate(time.Minute).Unix()
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, key); err != nil {
		logger.Error("EventRepository:LockMinuteTx", err)
		return err
	}
	return nil
}

func (r *EventRepository) FindByExactMinuteTx(ctx context.Context, tx *sqlx.Tx, ts time.Time, excludeID int64) ([]entity.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE date_trunc('minute', start_time) = date_trunc('minute', $1::timestamptz)
		  AND ($2 = 0 OR id <> $2)
		ORDER BY id
	`

	var events []entity.Event
	if err := tx.SelectContext(ctx, &events, query, ts, excludeID); err != nil {
		logger.Error("EventRepository:FindByExactMinuteTx", err)
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) InsertTx(ctx context.Context, tx *sqlx.Tx, ev *entity.Event) (*entity.Event, error) {
	query := `
		INSERT INTO events (name, start_time, end_time, location, reminder_minutes, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + eventColumns + `
	`

	var created entity.Event
	err := tx.GetContext(ctx, &created, query,
		ev.Name, ev.StartTime, ev.EndTime, ev.Location, ev.ReminderMinutes, ev.Status)
	if err != nil {
		logger.Error("EventRepository:InsertTx", err)
		return nil, err
	}
	return &created, nil
}

// UpdateTx writes the editable columns only. Status never appears in the
// column list: transitions go through TransitionStatus, and an edit carrying
// a snapshot read before a concurrent scan must not roll the status backward.
func (r *EventRepository) UpdateTx(ctx context.Context, tx *sqlx.Tx, ev *entity.Event) (bool, error) {
	query := `
		UPDATE events
		SET name = $2, start_time = $3, end_time = $4, location = $5,
		    reminder_minutes = $6, updated_at = NOW()
		WHERE id = $1
	`

	res, err := tx.ExecContext(ctx, query,
		ev.ID, ev.Name, ev.StartTime, ev.EndTime, ev.Location, ev.ReminderMinutes)
	if err != nil {
		logger.Error("EventRepository:UpdateTx", err)
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}
