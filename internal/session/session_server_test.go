package session

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tickdeck/go-tickdeck/internal/countdown"
	"github.com/tickdeck/go-tickdeck/pkg/logger"
	"github.com/tickdeck/go-tickdeck/pkg/scheduler"
)

func newTestSessionServer(t *testing.T) (*sessionServer, *scheduler.Manual) {
	t.Helper()
	logger.Log = zerolog.Nop()
	sched := scheduler.NewManual()
	s := newSessionServer("test-session", SessionNetworkOptions{
		MaxTimers:     3,
		TickInterval:  time.Second,
		ChimeInterval: 2 * time.Second,
	}, sched, nil)
	return s, sched
}

func action(t *testing.T, actionType string, details interface{}) *message {
	t.Helper()
	payload, err := json.Marshal(Action{ActionType: actionType, MoreDetails: details})
	require.NoError(t, err)
	return &message{payload: payload}
}

func TestHandleActionLifecycle(t *testing.T) {
	s, sched := newTestSessionServer(t)

	s.handleAction(action(t, ActionAdd, nil))
	require.Equal(t, 1, s.engine.Count())
	id := s.engine.List()[0].ID

	s.handleAction(action(t, ActionConfigure, map[string]interface{}{
		"TimerID": id, "Hours": 1, "Minutes": 30, "Seconds": 45,
	}))
	s.handleAction(action(t, ActionStart, map[string]interface{}{"TimerID": id}))

	rec, ok := s.engine.Snapshot(id)
	require.True(t, ok)
	assert.Equal(t, countdown.Running, rec.State)
	assert.Equal(t, 5445, rec.RemainingSeconds)

	sched.Advance(2)
	rec, _ = s.engine.Snapshot(id)
	assert.Equal(t, 5443, rec.RemainingSeconds)

	s.handleAction(action(t, ActionReset, map[string]interface{}{"TimerID": id}))
	rec, _ = s.engine.Snapshot(id)
	assert.Equal(t, countdown.Idle, rec.State)
	assert.Zero(t, rec.TotalSeconds)

	s.handleAction(action(t, ActionRemove, map[string]interface{}{"TimerID": id}))
	assert.Zero(t, s.engine.Count())
}

func TestHandleActionClampsDurationFields(t *testing.T) {
	s, _ := newTestSessionServer(t)

	s.handleAction(action(t, ActionAdd, nil))
	id := s.engine.List()[0].ID

	// out of range fields coerce to zero: hours 0-99, minutes/seconds 0-59
	s.handleAction(action(t, ActionConfigure, map[string]interface{}{
		"TimerID": id, "Hours": 120, "Minutes": 30, "Seconds": 75,
	}))
	s.handleAction(action(t, ActionStart, map[string]interface{}{"TimerID": id}))

	rec, _ := s.engine.Snapshot(id)
	assert.Equal(t, 1800, rec.TotalSeconds)
}

func TestHandleActionNumericStrings(t *testing.T) {
	s, _ := newTestSessionServer(t)

	s.handleAction(action(t, ActionAdd, nil))
	id := s.engine.List()[0].ID

	s.handleAction(action(t, ActionConfigure, map[string]interface{}{
		"TimerID": id, "Hours": "0", "Minutes": "5", "Seconds": "30",
	}))
	s.handleAction(action(t, ActionStart, map[string]interface{}{"TimerID": id}))

	rec, _ := s.engine.Snapshot(id)
	assert.Equal(t, 330, rec.TotalSeconds)
}

func TestHandleActionUnknownTypeAndBadPayload(t *testing.T) {
	s, _ := newTestSessionServer(t)

	// neither may panic or mutate the registry
	s.handleAction(action(t, "Teleport", nil))
	s.handleAction(&message{payload: []byte("not json")})
	assert.Zero(t, s.engine.Count())
}

func TestChimeLoopPerTimer(t *testing.T) {
	s, sched := newTestSessionServer(t)

	s.PlayAlarm("t1")
	assert.Equal(t, 1, sched.Active())
	s.PlayAlarm("t1") // already ringing, no second chime loop
	assert.Equal(t, 1, sched.Active())

	s.PlayAlarm("t2")
	assert.Equal(t, 2, sched.Active(), "alarms are independent per timer")

	s.StopAlarm("t1")
	assert.Equal(t, 1, sched.Active())
	s.StopAlarm("t1") // idempotent
	assert.Equal(t, 1, sched.Active())
	s.StopAlarm("t2")
	assert.Zero(t, sched.Active())
}

func TestCompletionStartsChime(t *testing.T) {
	s, sched := newTestSessionServer(t)

	s.handleAction(action(t, ActionAdd, nil))
	id := s.engine.List()[0].ID
	s.handleAction(action(t, ActionConfigure, map[string]interface{}{
		"TimerID": id, "Seconds": 2,
	}))
	s.handleAction(action(t, ActionStart, map[string]interface{}{"TimerID": id}))

	sched.Advance(2)
	rec, _ := s.engine.Snapshot(id)
	require.Equal(t, countdown.Completed, rec.State)
	assert.Equal(t, 1, sched.Active(), "tick callback gone, chime loop running")

	s.handleAction(action(t, ActionDismiss, map[string]interface{}{"TimerID": id}))
	assert.Zero(t, sched.Active())
}

func TestClampComponent(t *testing.T) {
	assert.Equal(t, 45, clampComponent(45, 59))
	assert.Equal(t, 0, clampComponent(-1, 59))
	assert.Equal(t, 0, clampComponent(60, 59))
	assert.Equal(t, 99, clampComponent(99, 99))
}
