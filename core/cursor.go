package core

import (
	"github.com/cockroachdb/errors"
)

// ErrOutOfOrderCursor is returned when a caller tries to move the event cursor backwards.
// It indicates a bug in the caller, not an operating condition.
var ErrOutOfOrderCursor = errors.New("out of order cursor")

// EventCursor holds the next Ethereum block height that has not been scanned for bridge events.
// Every height below the cursor has been relayed at least once.
//
// EventCursor is owned by a single RelayService and is not safe for concurrent use.
type EventCursor struct {
	height uint64
}

// NewEventCursor returns a cursor positioned at the given height
func NewEventCursor(height uint64) *EventCursor {
	return &EventCursor{height: height}
}

// Current returns the current cursor height
func (c *EventCursor) Current() uint64 {
	return c.height
}

// Advance moves the cursor forward to `to`.
// Advancing to the current height is a no-op. Advancing backwards fails with ErrOutOfOrderCursor
// and leaves the cursor unchanged.
func (c *EventCursor) Advance(to uint64) error {
	if to < c.height {
		return errors.Wrapf(ErrOutOfOrderCursor, "cannot move cursor from %d back to %d", c.height, to)
	}
	c.height = to
	return nil
}
