package protocol

import "irship/board"

// Receiver is a non-blocking byte source. TryReceive returns false when no
// byte is waiting.
type Receiver interface {
	TryReceive() (byte, bool)
}

// PollBoardID consumes at most one waiting byte and decodes it as a board-ID
// announcement. A byte of any other kind is dropped.
func PollBoardID(r Receiver) (uint8, bool) {
	b, ok := r.TryReceive()
	if !ok {
		return 0, false
	}
	return DecodeBoardID(b)
}

// PollTurnResult consumes at most one waiting byte and decodes it as a
// turn-result announcement. A byte of any other kind is dropped.
func PollTurnResult(r Receiver) (board.ShotResult, bool) {
	b, ok := r.TryReceive()
	if !ok {
		return 0, false
	}
	return DecodeTurnResult(b)
}
