package form

// Phase is the controller lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseInvalid
	PhaseSubmitted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseValidating:
		return "validating"
	case PhaseInvalid:
		return "invalid"
	case PhaseSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}
