package service

import (
	"context"

	"smartschedule-api/core/logger"
	"smartschedule-api/modules/event/entity"
	"smartschedule-api/modules/event/repository"
)

// ConflictGuard rejects inserts and updates whose start time collides with an
// existing event at minute granularity. The duplicate check and the write run
// in one transaction, serialized per minute by an advisory lock, so two
// concurrent callers targeting the same minute cannot both pass the check.
type ConflictGuard struct {
	repo repository.EventRepositoryInterface
}

func NewConflictGuard(repo repository.EventRepositoryInterface) *ConflictGuard {
	return &ConflictGuard{repo: repo}
}

// ConflictGuardInterface defines the guard contract.
type ConflictGuardInterface interface {
	ReserveInsert(ctx context.Context, ev *entity.Event) (*entity.Event, []entity.Event, error)
	ReserveUpdate(ctx context.Context, ev *entity.Event) ([]entity.Event, error)
}

// ReserveInsert persists ev unless its minute is taken. On conflict it
// returns the full set of colliding events and no created row.
func (g *ConflictGuard) ReserveInsert(ctx context.Context, ev *entity.Event) (*entity.Event, []entity.Event, error) {
	tx, err := g.repo.BeginTx(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	if err := g.repo.LockMinuteTx(ctx, tx, ev.StartTime); err != nil {
		return nil, nil, err
	}

	conflicts, err := g.repo.FindByExactMinuteTx(ctx, tx, ev.StartTime, 0)
	if err != nil {
		return nil, nil, err
	}
	if len(conflicts) > 0 {
		logger.Info("ConflictGuard:ReserveInsert:Duplicate",
			"start_time", ev.StartTime,
			"conflicts", len(conflicts),
		)
		return nil, conflicts, nil
	}

	created, err := g.repo.InsertTx(ctx, tx, ev)
	if err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(); err != nil {
		logger.Error("ConflictGuard:ReserveInsert:Commit", err)
		return nil, nil, err
	}
	return created, nil, nil
}

// ReserveUpdate rewrites ev unless its (possibly new) minute is taken by a
// different event. The event's own id is excluded so self-edits pass.
func (g *ConflictGuard) ReserveUpdate(ctx context.Context, ev *entity.Event) ([]entity.Event, error) {
	tx, err := g.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := g.repo.LockMinuteTx(ctx, tx, ev.StartTime); err != nil {
		return nil, err
	}

	conflicts, err := g.repo.FindByExactMinuteTx(ctx, tx, ev.StartTime, ev.ID)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		logger.Info("ConflictGuard:ReserveUpdate:Duplicate",
			"event_id", ev.ID,
			"start_time", ev.StartTime,
			"conflicts", len(conflicts),
		)
		return conflicts, nil
	}

	if _, err := g.repo.UpdateTx(ctx, tx, ev); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		logger.Error("ConflictGuard:ReserveUpdate:Commit", err)
		return nil, err
	}
	return nil, nil
}
