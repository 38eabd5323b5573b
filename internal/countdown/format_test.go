package countdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		name    string
		h, m, s int
		want    int
	}{
		{name: "zero", want: 0},
		{name: "seconds only", s: 45, want: 45},
		{name: "full decomposition", h: 1, m: 30, s: 45, want: 5445},
		{name: "max clamped inputs", h: 99, m: 59, s: 59, want: 359999},
		{name: "negative components coerce to zero", h: -1, m: -30, s: 45, want: 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTime(tt.h, tt.m, tt.s))
		})
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    string
	}{
		{name: "zero", seconds: 0, want: "00:00:00"},
		{name: "zero padded", seconds: 61, want: "00:01:01"},
		{name: "hours", seconds: 5445, want: "01:30:45"},
		{name: "negative clamps", seconds: -5, want: "00:00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTime(tt.seconds))
		})
	}
}

func TestFormatTimeRoundTrip(t *testing.T) {
	assert.Equal(t, "01:30:45", FormatTime(ParseTime(1, 30, 45)))
	assert.Equal(t, 5445, ParseTime(1, 30, 45))
}
