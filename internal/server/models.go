package server

import "github.com/tickdeck/go-tickdeck/internal/countdown"

type StatsResponse struct {
	SessionsCurrent int
	TimersCurrent   map[countdown.State]int
}
