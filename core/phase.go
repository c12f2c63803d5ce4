package core

// Phase is the step of the relay loop the RelayService is currently executing
type Phase int32

const (
	PhaseIdle Phase = iota
	PhaseProbingHeights
	PhaseRelayingValsets
	PhaseRelayingBatches
	PhaseRelayingEvents
	PhasePacing
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseProbingHeights:
		return "ProbingHeights"
	case PhaseRelayingValsets:
		return "RelayingValsets"
	case PhaseRelayingBatches:
		return "RelayingBatches"
	case PhaseRelayingEvents:
		return "RelayingEvents"
	case PhasePacing:
		return "Pacing"
	default:
		return "Unknown"
	}
}

func phaseOf(kind RelayKind) Phase {
	switch kind {
	case RelayKindValsets:
		return PhaseRelayingValsets
	case RelayKindBatches:
		return PhaseRelayingBatches
	case RelayKindEvents:
		return PhaseRelayingEvents
	default:
		return PhaseIdle
	}
}
