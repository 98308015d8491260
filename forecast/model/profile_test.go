package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "rocket-sim/simulator/model"
)

func TestForecastDefaultFlight(t *testing.T) {
	p, err := Forecast(context.Background(), DefaultRequest())
	require.NoError(t, err)

	assert.True(t, p.Landed)
	assert.True(t, p.Deployed)
	assert.Equal(t, 60.0, p.BurnoutTime)
	assert.Equal(t, 61.0, p.ApogeeTime)
	assert.InDelta(t, 368.2, p.Apogee, 1e-6)
	assert.Equal(t, 63.0, p.ParachuteTime)
	assert.Equal(t, 83.0, p.LandingTime)
	assert.InDelta(t, 17.4, p.LandingSpeed, 1e-6)
	assert.Equal(t, 83, p.Ticks)
}

func TestForecastIsDeterministic(t *testing.T) {
	req := DefaultRequest()
	req.Thrust, req.Duration, req.Dt = 14, 12.5, 0.3

	a, err := Forecast(context.Background(), req)
	require.NoError(t, err)
	b, err := Forecast(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestForecastUnderpoweredRocketLandsImmediately(t *testing.T) {
	req := DefaultRequest()
	req.Thrust = 5

	p, err := Forecast(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, p.Landed)
	assert.False(t, p.Deployed)
	assert.Equal(t, 1, p.Ticks)
	assert.Equal(t, 0.0, p.Apogee)
}

func TestForecastBudgetExhausted(t *testing.T) {
	req := DefaultRequest()
	req.Budget = 30

	p, err := Forecast(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, p.Landed)
	assert.Equal(t, 30, p.Ticks)
}

func TestForecastRejectsBadInput(t *testing.T) {
	for _, dt := range []float64{0, -1} {
		req := DefaultRequest()
		req.Dt = dt
		_, err := Forecast(context.Background(), req)
		assert.ErrorIs(t, err, sim.ErrInvalidTimestep)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Forecast(ctx, DefaultRequest())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestForecastBoundsTicks(t *testing.T) {
	// upward gravity keeps the rocket aloft forever, only the tick cap stops it
	req := DefaultRequest()
	req.Config.Gravity = sim.Vec(0, 1)
	req.Budget = 1e18
	_, err := Forecast(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooManyTicks)

	req.Budget = 50
	req.MaxTicks = 49
	_, err = Forecast(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooManyTicks)

	req.MaxTicks = 50
	p, err := Forecast(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, p.Landed)
	assert.Equal(t, 50, p.Ticks)

	req.MaxTicks = 0
	_, err = Forecast(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooManyTicks)
}
