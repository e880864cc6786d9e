package upload

// State is the lifecycle stage of a Coordinator.
type State int

const (
	Idle State = iota
	Signing
	Uploading
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Signing:
		return "signing"
	case Uploading:
		return "uploading"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Pending reports whether an upload is in flight.
func (s State) Pending() bool {
	return s == Signing || s == Uploading
}
