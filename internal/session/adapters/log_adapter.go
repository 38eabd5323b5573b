package adapters

import (
	"github.com/rs/zerolog"
)

// LogAdapter records session and timer lifecycle events
type LogAdapter struct {
	log zerolog.Logger
}

func NewLogAdapter(log zerolog.Logger) *LogAdapter {
	return &LogAdapter{
		log: log,
	}
}

func (a *LogAdapter) OnSessionStart(sessionID string) {
	a.log.Info().Str("session", sessionID).Msg("session started")
}

func (a *LogAdapter) OnSessionEnd(sessionID string) {
	a.log.Info().Str("session", sessionID).Msg("session ended")
}

func (a *LogAdapter) OnTimerCompleted(sessionID, timerID string) {
	a.log.Info().Str("session", sessionID).Str("timer", timerID).Msg("timer completed")
}
