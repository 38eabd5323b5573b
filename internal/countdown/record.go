package countdown

// State is the lifecycle state of a single timer
type State string

const (
	Idle      State = "Idle"
	Running   State = "Running"
	Paused    State = "Paused"
	Completed State = "Completed"
)

// Severity classifies the remaining fraction of a running timer
type Severity string

const (
	SeverityNormal  Severity = "normal"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// fractions of total time at or below which the severity band changes
const (
	warningFraction = 0.25
	dangerFraction  = 0.10
)

// Record is a read-only snapshot of a registered timer
type Record struct {
	ID               string
	TotalSeconds     int
	RemainingSeconds int
	State            State
}

// SeverityFor returns the severity band for remaining out of total seconds
func SeverityFor(remaining, total int) Severity {
	if total <= 0 {
		return SeverityNormal
	}
	ratio := float64(remaining) / float64(total)
	switch {
	case ratio <= dangerFraction:
		return SeverityDanger
	case ratio <= warningFraction:
		return SeverityWarning
	default:
		return SeverityNormal
	}
}

// ProgressDegrees returns the degrees of ring remaining, 0 through 360
func ProgressDegrees(remaining, total int) float64 {
	if total <= 0 {
		return 360
	}
	if remaining <= 0 {
		return 0
	}
	return float64(remaining) / float64(total) * 360
}
