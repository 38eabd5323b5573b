package scheduler

import (
	"sync"
	"time"
)

// Manual is a Scheduler driven by explicit Advance calls instead of wall
// clock time. Intended for tests that need deterministic ticks.
type Manual struct {
	mu      sync.Mutex
	nextID  int
	entries map[int]func()
}

func NewManual() *Manual {
	return &Manual{
		entries: make(map[int]func()),
	}
}

func (m *Manual) Every(d time.Duration, fn func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.entries[id] = fn
	return &manualHandle{scheduler: m, id: id}
}

// Advance fires every active callback n times, synchronously. A callback
// stopping its own handle mid-advance is not fired again.
func (m *Manual) Advance(n int) {
	for i := 0; i < n; i++ {
		m.mu.Lock()
		ids := make([]int, 0, len(m.entries))
		for id := range m.entries {
			ids = append(ids, id)
		}
		m.mu.Unlock()
		for _, id := range ids {
			m.mu.Lock()
			fn, ok := m.entries[id]
			m.mu.Unlock()
			if ok {
				fn()
			}
		}
	}
}

// Active reports how many callbacks have been scheduled and not yet stopped
func (m *Manual) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

type manualHandle struct {
	scheduler *Manual
	id        int
}

func (h *manualHandle) Stop() {
	h.scheduler.mu.Lock()
	defer h.scheduler.mu.Unlock()
	delete(h.scheduler.entries, h.id)
}
