package session

import "fmt"

var (
	ErrMaxSessions = func(max int) error {
		return fmt.Errorf("session limit of %d reached", max)
	}

	ErrNoExistingSessionID = func(sessionID string) error {
		return fmt.Errorf("sessionID '%s' does not exist", sessionID)
	}

	ErrUnknownAction = func(actionType string) error {
		return fmt.Errorf("unknown action '%s'", actionType)
	}
)
