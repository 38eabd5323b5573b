package countdown

import "fmt"

// ParseTime converts hour, minute and second components into total seconds.
// Negative components coerce to zero.
func ParseTime(hours, minutes, seconds int) int {
	if hours < 0 {
		hours = 0
	}
	if minutes < 0 {
		minutes = 0
	}
	if seconds < 0 {
		seconds = 0
	}
	return hours*3600 + minutes*60 + seconds
}

// FormatTime renders total seconds as a zero padded "HH:MM:SS" clock string.
// Negative values clamp to "00:00:00".
func FormatTime(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", totalSeconds/3600, totalSeconds%3600/60, totalSeconds%60)
}
