package countdown

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tickdeck/go-tickdeck/pkg/scheduler"
)

const (
	// DefaultMaxTimers bounds the registry
	DefaultMaxTimers = 3
	// DefaultTickInterval is the countdown cadence
	DefaultTickInterval = time.Second
)

// EngineOptions are the options required to create a new engine
type EngineOptions struct {
	// MaxTimers bounds the registry, defaulting to DefaultMaxTimers
	MaxTimers int

	// TickInterval is the countdown cadence, defaulting to one second
	TickInterval time.Duration

	// Scheduler drives the periodic tick callbacks
	Scheduler scheduler.Scheduler

	// Presenter and Notifier are the outward collaborator interfaces
	Presenter Presenter
	Notifier  Notifier
}

type record struct {
	id        string
	total     int
	remaining int
	state     State
	handle    scheduler.Handle // non-nil only while Running
}

// Engine owns the bounded registry of timers and their lifecycle state
// machine. All mutation is serialized behind a single mutex so scheduler
// callbacks and collaborator calls behave as one logical thread.
type Engine struct {
	mu           sync.Mutex
	maxTimers    int
	tickInterval time.Duration
	scheduler    scheduler.Scheduler
	presenter    Presenter
	notifier     Notifier
	records      map[string]*record
	log          zerolog.Logger
}

func NewEngine(options EngineOptions, log zerolog.Logger) *Engine {
	if options.MaxTimers <= 0 {
		options.MaxTimers = DefaultMaxTimers
	}
	if options.TickInterval <= 0 {
		options.TickInterval = DefaultTickInterval
	}
	return &Engine{
		maxTimers:    options.MaxTimers,
		tickInterval: options.TickInterval,
		scheduler:    options.Scheduler,
		presenter:    options.Presenter,
		notifier:     options.Notifier,
		records:      make(map[string]*record),
		log:          log,
	}
}

// Add registers a new idle timer and returns its id. Adding beyond capacity
// creates nothing and re-signals that the registry is full.
func (e *Engine) Add() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.records) >= e.maxTimers {
		e.log.Debug().Msgf("add rejected, registry already holds %d timers", len(e.records))
		e.presenter.OnCapacityChanged(true)
		return "", ErrRegistryFull(e.maxTimers)
	}
	id := uuid.NewString()
	e.records[id] = &record{
		id:    id,
		state: Idle,
	}
	e.presenter.OnRecordCreated(id)
	if len(e.records) >= e.maxTimers {
		e.presenter.OnCapacityChanged(true)
	}
	return id, nil
}

// Configure stores the timer's duration. Only an idle timer accepts a new
// duration; negative components coerce to zero.
func (e *Engine) Configure(id string, hours, minutes, seconds int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	rec, ok := e.records[id]
	if !ok || rec.state != Idle {
		return
	}
	rec.total = ParseTime(hours, minutes, seconds)
}

// Start toggles the timer: an idle configured timer starts counting down, a
// running timer pauses, a paused timer resumes. Starting an unconfigured or
// completed timer is a no-op.
func (e *Engine) Start(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	rec, ok := e.records[id]
	if !ok {
		return
	}
	switch rec.state {
	case Running:
		e.cancel(rec)
		rec.state = Paused
		e.presenter.OnStateChanged(id, Paused)
	case Paused:
		rec.state = Running
		e.schedule(rec)
		e.presenter.OnStateChanged(id, Running)
	case Idle:
		if rec.total <= 0 {
			return
		}
		rec.remaining = rec.total
		rec.state = Running
		e.schedule(rec)
		e.presenter.OnStateChanged(id, Running)
	}
}

// Tick advances a running timer by one second. Ticks against removed or
// non-running timers are stale callbacks and are dropped.
func (e *Engine) Tick(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	rec, ok := e.records[id]
	if !ok || rec.state != Running {
		return
	}
	rec.remaining--
	display := rec.remaining
	if display < 0 {
		display = 0
	}
	e.presenter.OnTick(id, FormatTime(display), ProgressDegrees(rec.remaining, rec.total), SeverityFor(rec.remaining, rec.total))
	if rec.remaining <= 0 {
		e.cancel(rec)
		rec.state = Completed
		e.notifier.PlayAlarm(id)
		e.presenter.OnStateChanged(id, Completed)
	}
}

// Dismiss silences a completed timer's alarm. The timer stays Completed
// until reset or removed.
func (e *Engine) Dismiss(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	rec, ok := e.records[id]
	if !ok || rec.state != Completed {
		return
	}
	e.notifier.StopAlarm(id)
}

// Reset returns the timer to an unconfigured idle state from any state,
// cancelling the tick callback and silencing any alarm. Safe to repeat.
func (e *Engine) Reset(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	rec, ok := e.records[id]
	if !ok {
		return
	}
	e.cancel(rec)
	e.notifier.StopAlarm(id)
	rec.total = 0
	rec.remaining = 0
	rec.state = Idle
	e.presenter.OnStateChanged(id, Idle)
	e.presenter.OnTick(id, FormatTime(0), 360, SeverityNormal)
}

// Remove destroys the timer, cancelling its callback and alarm, and frees a
// registry slot if the registry was full.
func (e *Engine) Remove(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	rec, ok := e.records[id]
	if !ok {
		return
	}
	wasFull := len(e.records) >= e.maxTimers
	e.cancel(rec)
	e.notifier.StopAlarm(id)
	delete(e.records, id)
	e.presenter.OnRecordRemoved(id)
	if wasFull {
		e.presenter.OnCapacityChanged(false)
	}
}

// Close cancels every outstanding callback and alarm. Used on session end.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for id, rec := range e.records {
		e.cancel(rec)
		e.notifier.StopAlarm(id)
	}
}

// Snapshot returns a copy of the timer's current state
func (e *Engine) Snapshot(id string) (Record, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	rec, ok := e.records[id]
	if !ok {
		return Record{}, false
	}
	return Record{
		ID:               rec.id,
		TotalSeconds:     rec.total,
		RemainingSeconds: rec.remaining,
		State:            rec.state,
	}, true
}

// List returns a copy of every registered timer
func (e *Engine) List() []Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	records := make([]Record, 0, len(e.records))
	for _, rec := range e.records {
		records = append(records, Record{
			ID:               rec.id,
			TotalSeconds:     rec.total,
			RemainingSeconds: rec.remaining,
			State:            rec.state,
		})
	}
	return records
}

// Full reports whether the registry is at capacity
func (e *Engine) Full() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.records) >= e.maxTimers
}

// Count returns the number of registered timers
func (e *Engine) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.records)
}

// Stats returns the number of registered timers per state
func (e *Engine) Stats() map[State]int {
	e.mu.Lock()
	defer e.mu.Unlock()
	stats := make(map[State]int)
	for _, rec := range e.records {
		stats[rec.state]++
	}
	return stats
}

// schedule starts the periodic callback for rec. Callers hold e.mu; any
// prior callback must already be cancelled.
func (e *Engine) schedule(rec *record) {
	id := rec.id
	rec.handle = e.scheduler.Every(e.tickInterval, func() {
		e.Tick(id)
	})
}

// cancel stops rec's periodic callback before any state flip so a stale
// tick can never observe a half applied transition. Idempotent.
func (e *Engine) cancel(rec *record) {
	if rec.handle != nil {
		rec.handle.Stop()
		rec.handle = nil
	}
}
