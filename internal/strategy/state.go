package strategy

// State of a context execution. Both strategies walk the same states:
//
//	Idle -> SettingUp -> Running(0..n-1) -> TearingDown -> Done
type State int

const (
	StateIdle State = iota
	StateSettingUp
	StateRunning
	StateTearingDown
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSettingUp:
		return "setting up"
	case StateRunning:
		return "running"
	case StateTearingDown:
		return "tearing down"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Done is terminal.
func (s State) IsTerminal() bool {
	return s == StateDone
}
