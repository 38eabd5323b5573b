package session

import (
	"github.com/tickdeck/go-tickdeck/internal/countdown"
	"github.com/tickdeck/go-tickdeck/pkg/scheduler"
)

// SessionNetwork is the entry point to the session layer
type SessionNetwork struct {
	hub *sessionHub
}

// SessionStats are point in time counts across every open session
type SessionStats struct {
	ActiveSessions int
	ActiveTimers   map[countdown.State]int
}

func NewSessionNetwork(options SessionNetworkOptions) *SessionNetwork {
	hub := newSessionHub(options, scheduler.NewTicker())
	go hub.Start()
	return &SessionNetwork{
		hub: hub,
	}
}

// OpenSession opens a new session for the connection, or reattaches it to a
// live session when options.SessionID is set
func (n *SessionNetwork) OpenSession(options OpenSessionOptions) error {
	return n.hub.Open(options)
}

func (n *SessionNetwork) GetStats() SessionStats {
	stats := SessionStats{
		ActiveTimers: make(map[countdown.State]int),
	}
	for _, server := range n.hub.sessions {
		stats.ActiveSessions++
		for state, count := range server.engine.Stats() {
			stats.ActiveTimers[state] += count
		}
	}
	return stats
}

func (n *SessionNetwork) Close() error {
	return n.hub.Close()
}
