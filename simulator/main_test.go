package main

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickInterval(t *testing.T) {
	for _, tc := range []struct {
		ms   float64
		want time.Duration
	}{
		{50, 50 * time.Millisecond},
		{1, time.Millisecond},
		{2.5, 2500 * time.Microsecond},
		{0, 50 * time.Millisecond},
		{0.5, 50 * time.Millisecond},
		{-10, 50 * time.Millisecond},
		{math.NaN(), 50 * time.Millisecond},
		{math.Inf(1), 50 * time.Millisecond},
		{1e300, 50 * time.Millisecond},
	} {
		got := tickInterval(tc.ms)
		assert.Equal(t, tc.want, got, "ms=%g", tc.ms)
		assert.Positive(t, int64(got))
	}
}

func TestDriverTimestep(t *testing.T) {
	assert.Equal(t, 0.25, driverTimestep(0.25))
	for _, dt := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		assert.Equal(t, 1.0, driverTimestep(dt), "dt=%g", dt)
	}
}
