package countdown

// Presenter receives presentation updates from the engine. Implementations
// render timer widgets however they like; the engine never reaches into a
// rendering tree.
type Presenter interface {
	OnRecordCreated(id string)
	OnTick(id string, display string, progressDegrees float64, severity Severity)
	OnStateChanged(id string, state State)
	OnRecordRemoved(id string)
	OnCapacityChanged(full bool)
}

// Notifier receives alarm start and stop signals. Each completed timer's
// alarm is independent; repetition cadence is the notifier's business.
// StopAlarm must be idempotent per id.
type Notifier interface {
	PlayAlarm(id string)
	StopAlarm(id string)
}
