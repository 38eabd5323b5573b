package server

import (
	"fmt"
	"time"

	"github.com/tickdeck/go-tickdeck/pkg/http"
	"github.com/tickdeck/go-tickdeck/pkg/logger"
)

type Config struct {
	Environment string
	Log         logger.Config
	Router      http.RouterConfig
	Server      http.ServerConfig
	Session     SessionOptions
}

type SessionOptions struct {
	// Adapters names the event adapters to enable
	Adapters []string

	// MaxSessions bounds how many browser sessions may be open at once
	MaxSessions int

	// SessionExpiry refers to how long an idle session lasts before removal
	SessionExpiry time.Duration

	// MaxTimers bounds each session's timer registry
	MaxTimers int

	// TickInterval is the countdown cadence
	TickInterval time.Duration

	// ChimeInterval is how often a completed timer's chime repeats
	ChimeInterval time.Duration
}

func (c Config) Str() string {
	return fmt.Sprintf("{Environment:%s Server:%+v Session:%+v}", c.Environment, c.Server, c.Session)
}
