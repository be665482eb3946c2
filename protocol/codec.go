// Package protocol encodes the single-byte announcements exchanged over the
// infrared link.
//
// Wire format:
//   - High nibble: message kind (0xA board ID, 0xB turn result)
//   - Low nibble: payload, 0-15
//
// There is no length, checksum or acknowledgement. A byte whose kind does
// not match what the receiver expects is not an error; the link is shared
// and may carry reflections of our own transmissions.
package protocol

import (
	"errors"
	"fmt"

	"irship/board"
)

const (
	PrefixBoardID    byte = 0xA0
	PrefixTurnResult byte = 0xB0

	kindMask    byte = 0xF0
	payloadMask byte = 0x0F

	// MaxPayload is the largest value a low nibble can carry.
	MaxPayload = 0x0F
)

var ErrPayloadRange = errors.New("payload does not fit in a nibble")

// EncodeBoardID builds a board-ID announcement for a catalog layout.
func EncodeBoardID(id uint8) (byte, error) {
	if id > MaxPayload {
		return 0, fmt.Errorf("board id %d: %w", id, ErrPayloadRange)
	}
	return PrefixBoardID | (id & payloadMask), nil
}

// DecodeBoardID returns the layout ID if b is a board-ID announcement.
func DecodeBoardID(b byte) (uint8, bool) {
	if b&kindMask != PrefixBoardID {
		return 0, false
	}
	return b & payloadMask, true
}

// EncodeTurnResult builds a turn-result announcement.
func EncodeTurnResult(r board.ShotResult) byte {
	return PrefixTurnResult | (byte(r) & payloadMask)
}

// DecodeTurnResult returns the shot result if b is a turn-result
// announcement carrying a known result tag.
func DecodeTurnResult(b byte) (board.ShotResult, bool) {
	if b&kindMask != PrefixTurnResult {
		return 0, false
	}
	r := board.ShotResult(b & payloadMask)
	if !r.Valid() {
		return 0, false
	}
	return r, true
}

// Describe renders a wire byte for debug logs, e.g. "board-id 3" or
// "turn-result hit". Unknown bytes are shown in hex.
func Describe(b byte) string {
	if id, ok := DecodeBoardID(b); ok {
		return fmt.Sprintf("board-id %d", id)
	}
	if r, ok := DecodeTurnResult(b); ok {
		return fmt.Sprintf("turn-result %s", r)
	}
	return fmt.Sprintf("foreign %#02x", b)
}
