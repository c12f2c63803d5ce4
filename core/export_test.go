package core

import (
	"context"
	"time"
)

var PacingDelay = pacingDelay

// SetClock replaces the time source and the pacing sleep of the service
func (srv *RelayService) SetClock(now func() time.Time, sleep func(context.Context, time.Duration) error) {
	srv.now = now
	srv.sleep = sleep
}
