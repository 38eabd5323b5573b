package session

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/tickdeck/go-tickdeck/internal/countdown"
)

// SessionNetworkOptions are the options required to create a new network
type SessionNetworkOptions struct {
	// Adapters allow for external events to be triggered on session and timer events
	Adapters []EventAdapter

	// MaxSessions bounds how many browser sessions may be open at once
	MaxSessions int

	// SessionExpiry refers to how long an idle session lasts before removal
	SessionExpiry time.Duration

	// MaxTimers bounds each session's timer registry
	MaxTimers int

	// TickInterval is the countdown cadence, one second in the product
	TickInterval time.Duration

	// ChimeInterval is how often a completed timer's chime repeats until dismissed
	ChimeInterval time.Duration
}

// OpenSessionOptions are the fields necessary for opening or rejoining a session
type OpenSessionOptions struct {
	// SessionID rejoins an existing live session when set; blank opens a new one
	SessionID string

	Conn *websocket.Conn
}

// Actions sent by the browser to drive the timer registry
const (
	ActionAdd       = "Add"
	ActionConfigure = "Configure"
	ActionStart     = "Start"
	ActionReset     = "Reset"
	ActionRemove    = "Remove"
	ActionDismiss   = "Dismiss"
)

// Action is the inbound message envelope
type Action struct {
	ActionType  string
	MoreDetails interface{} `json:",omitempty"`
}

// ConfigureDetails carries the duration fields for the Configure action
type ConfigureDetails struct {
	TimerID string
	Hours   int
	Minutes int
	Seconds int
}

// TimerDetails identifies the timer an action applies to
type TimerDetails struct {
	TimerID string
}

// OutboundMessage is the message sent to the browser
type OutboundMessage struct {
	Type    string
	Payload interface{}
}

type createdPayload struct {
	TimerID string
}

type tickPayload struct {
	TimerID         string
	Display         string
	ProgressDegrees float64
	Severity        countdown.Severity
}

type statePayload struct {
	TimerID string
	State   countdown.State
}

type removedPayload struct {
	TimerID string
}

type capacityPayload struct {
	Full bool
}

type alarmPayload struct {
	TimerID string
	Ring    bool
}

// clampComponent coerces out of range duration fields to zero, mirroring the
// widget's input validation: hours 0-99, minutes and seconds 0-59
func clampComponent(v, max int) int {
	if v < 0 || v > max {
		return 0
	}
	return v
}
