package game

import (
	"context"
	"time"
)

// RunTicks invokes tick on a fixed cadence until the context is canceled
// or the tick reports an error. Refuel and repair loops stop naturally
// this way: a full tank, a whole hull or an empty wallet all surface as
// the tick's error.
func RunTicks(ctx context.Context, interval time.Duration, tick func() error) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if err := tick(); err != nil {
				return err
			}
		}
	}
}
