package scheduler

import (
	"context"
	"time"

	"smartschedule-api/core/cache"
	"smartschedule-api/core/constants"
	"smartschedule-api/core/logger"
	"smartschedule-api/core/utils"
	"smartschedule-api/modules/event/entity"
	"smartschedule-api/modules/event/repository"

	"github.com/robfig/cron/v3"
)

// NotificationSink receives reminder signals. Emission happens at most once
// per event and stage; the sink may still deduplicate downstream.
type NotificationSink interface {
	NotifyPreReminder(ctx context.Context, event *entity.Event) error
	NotifyOnTime(ctx context.Context, event *entity.Event) error
}

// Scheduler drives the two-stage reminder lifecycle. Every cycle it walks
// the due events and advances each one through pending -> reminded ->
// notified, emitting a signal only when the status write actually happened.
type Scheduler struct {
	repo  repository.EventRepositoryInterface
	sink  NotificationSink
	cache cache.ICache
	cron  *cron.Cron
	now   func() time.Time
}

func NewScheduler(repo repository.EventRepositoryInterface, sink NotificationSink, c cache.ICache) *Scheduler {
	return &Scheduler{
		repo:  repo,
		sink:  sink,
		cache: c,
		cron:  cron.New(),
		now:   time.Now,
	}
}

// Start runs one immediate scan, then schedules the periodic one. The
// immediate scan picks up events that came due while the process was down.
func (s *Scheduler) Start(ctx context.Context) error {
	s.RunCycle(ctx)

	_, err := s.cron.AddFunc(constants.ReminderScanSpec, func() {
		s.RunCycle(ctx)
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	logger.Info("Scheduler:Started", "spec", constants.ReminderScanSpec)
	return nil
}

// Stop halts the scan loop and waits for a running cycle to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.Info("Scheduler:Stopped")
}

// RunCycle performs one scan. Transitions are conditional updates keyed on
// the expected current status, so concurrent cycles never double-emit.
func (s *Scheduler) RunCycle(ctx context.Context) {
	cycleID := utils.GenerateID()
	now := s.now()

	events, err := s.repo.ListDueForReminder(ctx, now)
	if err != nil {
		logger.Error("Scheduler:RunCycle:List:Error:", err)
		return
	}

	for i := range events {
		ev := &events[i]
		s.advance(ctx, ev, now, cycleID)
	}

	if err := s.cache.SetLastScanAt(ctx, now); err != nil {
		logger.Warn("Scheduler:RunCycle:SetLastScanAt", "error", err, "cycle", cycleID)
	}
}

func (s *Scheduler) advance(ctx context.Context, ev *entity.Event, now time.Time, cycleID string) {
	// Stage one: advance warning for events that asked for one. When both
	// instants are overdue (process was down), the stages still fire in
	// order, one cycle apart.
	if ev.Status == entity.EventStatusPending && ev.WantsPreReminder() && !now.Before(ev.ReminderAt()) {
		moved, err := s.repo.TransitionStatus(ctx, ev.ID, entity.EventStatusPending, entity.EventStatusReminded)
		if err != nil {
			logger.Error("Scheduler:advance:Remind:Error:", err)
			return
		}
		if moved {
			ev.Status = entity.EventStatusReminded
			if err := s.sink.NotifyPreReminder(ctx, ev); err != nil {
				logger.Error("Scheduler:advance:NotifyPreReminder:Error:", err)
			}
			logger.Info("Scheduler:Reminded", "event_id", ev.ID, "cycle", cycleID)
		}
		return
	}

	// Stage two: the event has started. Pending events with no advance
	// warning (or whose warning window was missed entirely) go straight to
	// notified.
	if now.Before(ev.StartTime) {
		return
	}
	from := ev.Status
	if from != entity.EventStatusPending && from != entity.EventStatusReminded {
		return
	}
	moved, err := s.repo.TransitionStatus(ctx, ev.ID, from, entity.EventStatusNotified)
	if err != nil {
		logger.Error("Scheduler:advance:Notify:Error:", err)
		return
	}
	if moved {
		ev.Status = entity.EventStatusNotified
		if err := s.sink.NotifyOnTime(ctx, ev); err != nil {
			logger.Error("Scheduler:advance:NotifyOnTime:Error:", err)
		}
		logger.Info("Scheduler:Notified", "event_id", ev.ID, "cycle", cycleID)
	}
}
