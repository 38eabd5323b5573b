package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualAdvance(t *testing.T) {
	m := NewManual()

	var first, second int
	h1 := m.Every(time.Second, func() { first++ })
	m.Every(time.Second, func() { second++ })
	require.Equal(t, 2, m.Active())

	m.Advance(3)
	assert.Equal(t, 3, first)
	assert.Equal(t, 3, second)

	h1.Stop()
	assert.Equal(t, 1, m.Active())
	m.Advance(2)
	assert.Equal(t, 3, first)
	assert.Equal(t, 5, second)
}

func TestManualStopIsIdempotent(t *testing.T) {
	m := NewManual()
	h := m.Every(time.Second, func() {})
	h.Stop()
	h.Stop()
	assert.Zero(t, m.Active())
}

func TestManualCallbackStoppingOwnHandle(t *testing.T) {
	m := NewManual()

	var fired int
	var h Handle
	h = m.Every(time.Second, func() {
		fired++
		h.Stop()
	})

	m.Advance(5)
	assert.Equal(t, 1, fired, "a callback stopping its own handle fires once")
	assert.Zero(t, m.Active())
}

func TestTickerFiresAndStops(t *testing.T) {
	fired := make(chan struct{}, 1)
	h := NewTicker().Every(5*time.Millisecond, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("ticker never fired")
	}

	h.Stop()
	h.Stop() // safe to repeat, even after firing
}
