package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRocketIsABody(t *testing.T) {
	var b Body = NewRocket(Vec(1, 2), DefaultRocketConfig(10, 60))
	assert.Equal(t, KindRocket, b.Kind())
	assert.Equal(t, Vec(1, 2), b.State().Pos)

	b = NewParticle(Vector{})
	assert.Equal(t, KindParticle, b.Kind())
}

func TestRocketThrustBurnsDown(t *testing.T) {
	r := NewRocket(Vec(0, 1000), DefaultRocketConfig(10, 2))

	burned := 0.0
	for k := 1; k <= 6; k++ {
		before := r.ThrustRemaining()
		require.NoError(t, r.Step(0.7))
		r.ResetForces()

		burn := before - r.ThrustRemaining()
		assert.GreaterOrEqual(t, burn, 0.0)
		assert.LessOrEqual(t, burn, 0.7+1e-12)
		burned += burn

		want := 2 - 0.7*float64(k)
		if want < 0 {
			want = 0
		}
		assert.InDelta(t, want, r.ThrustRemaining(), 1e-9, "tick %d", k)
		assert.GreaterOrEqual(t, r.ThrustRemaining(), 0.0)
	}
	assert.InDelta(t, 2.0, burned, 1e-9)
	assert.InDelta(t, 2.0, r.ThrustBurned(), 1e-9)
	assert.Equal(t, 0.0, r.ThrustRemaining())
}

func TestRocketPartialFinalBurn(t *testing.T) {
	r := NewRocket(Vec(0, 1000), DefaultRocketConfig(10, 0.5))

	require.NoError(t, r.Step(1))

	// thrust * burn = 10 * 0.5, integrated over dt = 1
	assert.InDelta(t, 5.0, r.Vel.Y, 1e-12)
	assert.Equal(t, 0.0, r.ThrustRemaining())
}

func TestRocketParachuteLatchesAndLags(t *testing.T) {
	r := NewRocket(Vec(0, 1000), DefaultRocketConfig(0, 0))
	r.Vel = Vec(0, -1)

	require.NoError(t, r.Step(1))
	r.ResetForces()
	assert.True(t, r.ParachuteDeployed())
	assert.Equal(t, -1.0, r.Vel.Y, "parachute must not pull on the tick it deploys")

	require.NoError(t, r.Step(1))
	r.ResetForces()
	assert.InDelta(t, 8.8, r.Vel.Y, 1e-12)

	r.Vel = Vec(0, 20)
	for i := 0; i < 5; i++ {
		require.NoError(t, r.Step(1))
		r.ResetForces()
		assert.True(t, r.ParachuteDeployed())
	}
}

func TestRocketParachuteNotDeployedWhileClimbing(t *testing.T) {
	r := NewRocket(Vec(0, 10), DefaultRocketConfig(20, 5))
	for i := 0; i < 5; i++ {
		r.ApplyForce(Vec(0, -9.8))
		require.NoError(t, r.Step(1))
		r.ResetForces()
		assert.False(t, r.ParachuteDeployed())
	}
}

func TestRocketRejectsBadTimestepWithoutBurning(t *testing.T) {
	r := NewRocket(Vec(0, 10), DefaultRocketConfig(10, 3))
	r.Vel = Vec(0, -1)

	assert.ErrorIs(t, r.Step(-1), ErrInvalidTimestep)
	assert.Equal(t, 3.0, r.ThrustRemaining())
	assert.False(t, r.ParachuteDeployed())
	assert.Equal(t, Vector{}, r.Acc)
}

func TestRocketNegativeDurationClamped(t *testing.T) {
	r := NewRocket(Vector{}, DefaultRocketConfig(10, -4))
	assert.Equal(t, 0.0, r.ThrustRemaining())
	assert.Equal(t, 0.0, r.ThrustBurned())
}
