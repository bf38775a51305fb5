package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunTicksStopsOnTickError(t *testing.T) {
	e := newTestEngine(t, 31)
	e.NewGame("Tester")
	s := e.state.Player.ActiveShip()
	s.AddFuel(-3)

	// Refueling tops the tank up in two ticks, then the full-tank failure
	// ends the loop.
	err := RunTicks(context.Background(), time.Millisecond, e.RefuelTick)
	assert.ErrorIs(t, err, ErrFuelCapacityExceeded)
	assert.Equal(t, s.MaxFuel, s.Fuel)
}

func TestRunTicksHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RunTicks(ctx, time.Millisecond, func() error { return nil })
	require.ErrorIs(t, err, context.Canceled)
}
