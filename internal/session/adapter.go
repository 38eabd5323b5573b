package session

// EventAdapter allows for external events to be triggered on session and
// timer lifecycle events. This can be useful for logging, statistics, etc.
type EventAdapter interface {
	OnSessionStart(sessionID string)
	OnSessionEnd(sessionID string)
	OnTimerCompleted(sessionID, timerID string)
}
