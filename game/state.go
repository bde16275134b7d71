package game

type State uint8

const (
	// StateUnknown is the zero value, never reported by a Game.
	StateUnknown State = iota

	// StateInProgress is when the side to move has legal moves and is not in check.
	StateInProgress

	// StateCheck is when the side to move is in check but can still move.
	StateCheck

	// StateCheckmate is when the side to move is in check and has no legal move.
	StateCheckmate

	// StateStalemate is when the side to move is not in check and has no legal move.
	StateStalemate

	// StateDraw is when a draw rule of the policy fired, see DrawReason.
	StateDraw
)

// IsRunning reports whether further moves are accepted.
func (s State) IsRunning() bool {
	switch s {
	case StateInProgress, StateCheck:
		return true
	default:
		return false
	}
}

func (s State) IsTerminal() bool {
	switch s {
	case StateCheckmate, StateStalemate, StateDraw:
		return true
	default:
		return false
	}
}

func (s State) IsCheck() bool {
	return s == StateCheck || s == StateCheckmate
}

func (s State) String() string {
	switch s {
	case StateInProgress:
		return "InProgress"
	case StateCheck:
		return "Check"
	case StateCheckmate:
		return "Checkmate"
	case StateStalemate:
		return "Stalemate"
	case StateDraw:
		return "Draw"
	default:
		return "Unknown"
	}
}

type DrawReason uint8

const (
	DrawReasonNone DrawReason = iota
	DrawReasonFiftyMove
	DrawReasonRepetition
	DrawReasonInsufficientMaterial
)

func (r DrawReason) String() string {
	switch r {
	case DrawReasonFiftyMove:
		return "FiftyMove"
	case DrawReasonRepetition:
		return "Repetition"
	case DrawReasonInsufficientMaterial:
		return "InsufficientMaterial"
	default:
		return "None"
	}
}
