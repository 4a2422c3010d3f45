package scheduler

import (
	"context"
	"testing"
	"time"

	"smartschedule-api/modules/event/entity"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventRepo struct {
	events map[int64]*entity.Event
}

func newFakeEventRepo(events ...*entity.Event) *fakeEventRepo {
	m := map[int64]*entity.Event{}
	for _, ev := range events {
		m[ev.ID] = ev
	}
	return &fakeEventRepo{events: m}
}

func (f *fakeEventRepo) ListDueForReminder(ctx context.Context, now time.Time) ([]entity.Event, error) {
	var due []entity.Event
	for _, ev := range f.events {
		if ev.Status == entity.EventStatusNotified {
			continue
		}
		if !now.Before(ev.StartTime) ||
			(ev.Status == entity.EventStatusPending && ev.WantsPreReminder() && !now.Before(ev.ReminderAt())) {
			due = append(due, *ev)
		}
	}
	return due, nil
}

func (f *fakeEventRepo) TransitionStatus(ctx context.Context, id int64, from, to entity.EventStatus) (bool, error) {
	ev, ok := f.events[id]
	if !ok || ev.Status != from || !from.CanTransitionTo(to) {
		return false, nil
	}
	ev.Status = to
	return true, nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id int64) (*entity.Event, error) {
	return f.events[id], nil
}
func (f *fakeEventRepo) ListAll(ctx context.Context) ([]entity.Event, error)  { return nil, nil }
func (f *fakeEventRepo) ListByDate(ctx context.Context, day time.Time) ([]entity.Event, error) {
	return nil, nil
}
func (f *fakeEventRepo) FindByExactMinute(ctx context.Context, ts time.Time, excludeID int64) ([]entity.Event, error) {
	return nil, nil
}
func (f *fakeEventRepo) Delete(ctx context.Context, id int64) (bool, error) { return false, nil }
func (f *fakeEventRepo) BeginTx(ctx context.Context) (*sqlx.Tx, error)      { return nil, nil }
func (f *fakeEventRepo) LockMinuteTx(ctx context.Context, tx *sqlx.Tx, ts time.Time) error {
	return nil
}
func (f *fakeEventRepo) FindByExactMinuteTx(ctx context.Context, tx *sqlx.Tx, ts time.Time, excludeID int64) ([]entity.Event, error) {
	return nil, nil
}
func (f *fakeEventRepo) InsertTx(ctx context.Context, tx *sqlx.Tx, ev *entity.Event) (*entity.Event, error) {
	return ev, nil
}
func (f *fakeEventRepo) UpdateTx(ctx context.Context, tx *sqlx.Tx, ev *entity.Event) (bool, error) {
	return false, nil
}

type signal struct {
	eventID int64
	kind    string
}

type recordingSink struct {
	signals []signal
}

func (r *recordingSink) NotifyPreReminder(ctx context.Context, event *entity.Event) error {
	r.signals = append(r.signals, signal{event.ID, "pre_reminder"})
	return nil
}

func (r *recordingSink) NotifyOnTime(ctx context.Context, event *entity.Event) error {
	r.signals = append(r.signals, signal{event.ID, "on_time"})
	return nil
}

type noopCache struct{}

func (noopCache) IncrementLoginAttempt(ctx context.Context, key string) error { return nil }
func (noopCache) LoginAttempts(ctx context.Context, key string) (int, error)  { return 0, nil }
func (noopCache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return nil
}
func (noopCache) SetLastScanAt(ctx context.Context, at time.Time) error { return nil }
func (noopCache) LastScanAt(ctx context.Context) (time.Time, bool, error) {
	return time.Time{}, false, nil
}
func (noopCache) Close() error { return nil }

func newTestScheduler(repo *fakeEventRepo, sink *recordingSink, at time.Time) *Scheduler {
	s := NewScheduler(repo, sink, noopCache{})
	s.now = func() time.Time { return at }
	return s
}

func TestScheduler_TwoStageLifecycle(t *testing.T) {
	start := time.Date(2025, 11, 5, 10, 0, 0, 0, time.UTC)
	ev := &entity.Event{
		ID: 1, Name: "Họp nhóm", StartTime: start,
		ReminderMinutes: 15, Status: entity.EventStatusPending,
	}
	repo := newFakeEventRepo(ev)
	sink := &recordingSink{}

	// before the reminder window: nothing happens
	s := newTestScheduler(repo, sink, start.Add(-20*time.Minute))
	s.RunCycle(context.Background())
	assert.Empty(t, sink.signals)
	assert.Equal(t, entity.EventStatusPending, ev.Status)

	// inside the window: pre-reminder fires once
	s.now = func() time.Time { return start.Add(-10 * time.Minute) }
	s.RunCycle(context.Background())
	require.Equal(t, []signal{{1, "pre_reminder"}}, sink.signals)
	assert.Equal(t, entity.EventStatusReminded, ev.Status)

	// same window again: no second emission
	s.RunCycle(context.Background())
	assert.Len(t, sink.signals, 1)

	// start arrives: on-time signal, in order after the pre-reminder
	s.now = func() time.Time { return start.Add(time.Minute) }
	s.RunCycle(context.Background())
	require.Equal(t, []signal{{1, "pre_reminder"}, {1, "on_time"}}, sink.signals)
	assert.Equal(t, entity.EventStatusNotified, ev.Status)

	// terminal state: further cycles are silent
	s.RunCycle(context.Background())
	assert.Len(t, sink.signals, 2)
}

func TestScheduler_NoReminderGoesStraightToNotified(t *testing.T) {
	start := time.Date(2025, 11, 5, 10, 0, 0, 0, time.UTC)
	ev := &entity.Event{
		ID: 2, Name: "Ăn trưa", StartTime: start,
		ReminderMinutes: 0, Status: entity.EventStatusPending,
	}
	repo := newFakeEventRepo(ev)
	sink := &recordingSink{}

	s := newTestScheduler(repo, sink, start.Add(time.Minute))
	s.RunCycle(context.Background())

	require.Equal(t, []signal{{2, "on_time"}}, sink.signals)
	assert.Equal(t, entity.EventStatusNotified, ev.Status)
}

func TestScheduler_RestartRecoveryKeepsOrdering(t *testing.T) {
	// both instants passed while the process was down: the stages still
	// fire in order across consecutive cycles
	start := time.Date(2025, 11, 5, 10, 0, 0, 0, time.UTC)
	ev := &entity.Event{
		ID: 3, Name: "Khám răng", StartTime: start,
		ReminderMinutes: 30, Status: entity.EventStatusPending,
	}
	repo := newFakeEventRepo(ev)
	sink := &recordingSink{}

	s := newTestScheduler(repo, sink, start.Add(5*time.Minute))
	s.RunCycle(context.Background())
	require.Equal(t, []signal{{3, "pre_reminder"}}, sink.signals)
	assert.Equal(t, entity.EventStatusReminded, ev.Status)

	s.RunCycle(context.Background())
	require.Equal(t, []signal{{3, "pre_reminder"}, {3, "on_time"}}, sink.signals)
	assert.Equal(t, entity.EventStatusNotified, ev.Status)
}

func TestScheduler_ConcurrentCycleCannotDoubleEmit(t *testing.T) {
	start := time.Date(2025, 11, 5, 10, 0, 0, 0, time.UTC)
	ev := &entity.Event{
		ID: 4, Name: "Học tiếng Anh", StartTime: start,
		ReminderMinutes: 0, Status: entity.EventStatusPending,
	}
	repo := newFakeEventRepo(ev)
	sink := &recordingSink{}
	s := newTestScheduler(repo, sink, start.Add(time.Minute))

	// simulate a racing scan that already advanced the event: the stale
	// snapshot's conditional transition fails and no signal is emitted
	stale := *ev
	ev.Status = entity.EventStatusNotified
	s.advance(context.Background(), &stale, s.now(), "test")

	assert.Empty(t, sink.signals)
}
