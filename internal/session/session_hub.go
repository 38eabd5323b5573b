package session

import (
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/tickdeck/go-tickdeck/pkg/logger"
	"github.com/tickdeck/go-tickdeck/pkg/scheduler"
)

// sessionHub owns every open browser session
type sessionHub struct {
	options   SessionNetworkOptions
	scheduler scheduler.Scheduler
	sessions  map[string]*sessionServer // mapping from session ID to session server
	open      chan OpenSessionOptions
	cleanup   chan string
	errCh     chan error
	adapters  []EventAdapter
}

func newSessionHub(options SessionNetworkOptions, sched scheduler.Scheduler) *sessionHub {
	return &sessionHub{
		options:   options,
		scheduler: sched,
		sessions:  make(map[string]*sessionServer),
		open:      make(chan OpenSessionOptions),
		cleanup:   make(chan string),
		errCh:     make(chan error),
		adapters:  options.Adapters,
	}
}

func (h *sessionHub) Start() {
	// catch any panics and keep the hub alive
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error().Caller().Msgf("%v from session hub with stack trace %s", r, string(debug.Stack()))
		}
	}()

	go h.clean()
	for {
		select {
		case open := <-h.open:
			if open.SessionID != "" {
				server, ok := h.sessions[open.SessionID]
				if !ok {
					h.errCh <- ErrNoExistingSessionID(open.SessionID)
					continue
				}
				h.errCh <- server.Join(open)
				continue
			}
			if h.options.MaxSessions > 0 && len(h.sessions) >= h.options.MaxSessions {
				h.errCh <- ErrMaxSessions(h.options.MaxSessions)
				continue
			}
			sessionID := uuid.NewString()
			server := newSessionServer(sessionID, h.options, h.scheduler, h.adapters)
			go server.Start(h.cleanup)
			h.sessions[sessionID] = server
			for _, adapter := range h.adapters {
				adapter.OnSessionStart(sessionID)
			}
			h.errCh <- server.Join(open)
		case sessionID := <-h.cleanup:
			server, ok := h.sessions[sessionID]
			if !ok {
				continue
			}
			logger.Log.Debug().Caller().Msgf("cleaning up session with id %s", sessionID)
			server.Close()
			delete(h.sessions, sessionID)
			for _, adapter := range h.adapters {
				adapter.OnSessionEnd(sessionID)
			}
		}
	}
}

func (h *sessionHub) Open(options OpenSessionOptions) error {
	h.open <- options
	return <-h.errCh
}

// clean periodically sweeps sessions idle past SessionExpiry
func (h *sessionHub) clean() {
	for range time.Tick(time.Minute) {
		for sessionID, server := range h.sessions {
			expiry := server.updatedAt.Add(h.options.SessionExpiry)
			if time.Now().UTC().After(expiry) {
				logger.Log.Debug().Msgf("expiring session with id %s", sessionID)
				h.cleanup <- sessionID
			}
		}
	}
}

func (h *sessionHub) Close() error {
	for sessionID := range h.sessions {
		h.cleanup <- sessionID
	}
	return nil
}
