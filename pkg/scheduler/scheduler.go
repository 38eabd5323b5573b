// Package scheduler provides cancellable periodic callbacks. Stopping a
// handle is idempotent and safe even after the callback has already fired.
package scheduler

import (
	"sync"
	"time"
)

// Handle references an active periodic callback
type Handle interface {
	Stop()
}

// Scheduler runs a callback repeatedly at a fixed cadence
type Scheduler interface {
	Every(d time.Duration, fn func()) Handle
}

// Ticker is the real time.Ticker backed Scheduler
type Ticker struct{}

func NewTicker() *Ticker {
	return &Ticker{}
}

func (t *Ticker) Every(d time.Duration, fn func()) Handle {
	h := &tickerHandle{
		ticker: time.NewTicker(d),
		quit:   make(chan struct{}),
	}
	go func() {
		for {
			select {
			case <-h.ticker.C:
				fn()
			case <-h.quit:
				return
			}
		}
	}()
	return h
}

type tickerHandle struct {
	ticker *time.Ticker
	quit   chan struct{}
	once   sync.Once
}

func (h *tickerHandle) Stop() {
	h.once.Do(func() {
		h.ticker.Stop()
		close(h.quit)
	})
}
