package model

import "math"

var (
	// ThrustDirection is fixed straight up.
	ThrustDirection = Vector{X: 0, Y: 1}
	// DefaultParachute cancels standard gravity once deployed.
	DefaultParachute = Vector{X: 0, Y: 9.8}
)

type RocketConfig struct {
	Thrust         float64
	ThrustDuration float64
	Parachute      Vector
}

func DefaultRocketConfig(thrust, duration float64) RocketConfig {
	return RocketConfig{Thrust: thrust, ThrustDuration: duration, Parachute: DefaultParachute}
}

// Rocket is a Particle with a time-boxed thrust and a parachute that latches
// open the first tick it is seen falling.
type Rocket struct {
	Particle

	thrust          float64
	thrustDuration  float64
	thrustRemaining float64
	parachute       Vector
	deployed        bool
}

func NewRocket(pos Vector, cfg RocketConfig) *Rocket {
	remaining := math.Max(0, cfg.ThrustDuration)
	return &Rocket{
		Particle:        Particle{Pos: pos},
		thrust:          cfg.Thrust,
		thrustDuration:  remaining,
		thrustRemaining: remaining,
		parachute:       cfg.Parachute,
	}
}

func (r *Rocket) Kind() Kind { return KindRocket }

func (r *Rocket) State() *Particle { return &r.Particle }

func (r *Rocket) Thrust() float64 { return r.thrust }

func (r *Rocket) ThrustRemaining() float64 { return r.thrustRemaining }

// ThrustBurned is the total burn time applied so far.
func (r *Rocket) ThrustBurned() float64 { return r.thrustDuration - r.thrustRemaining }

func (r *Rocket) ParachuteDeployed() bool { return r.deployed }

// Step accumulates thrust and parachute forces, latches the parachute if the
// rocket is falling, then integrates. The latch is checked after the forces so
// a freshly deployed parachute first pulls on the following tick.
func (r *Rocket) Step(dt float64) error {
	if err := ValidateTimestep(dt); err != nil {
		return err
	}

	if r.thrustRemaining > 0 {
		burn := math.Min(dt, r.thrustRemaining)
		r.ApplyForce(ThrustDirection.Scale(r.thrust * burn))
		r.thrustRemaining = math.Max(0, r.thrustRemaining-burn)
	}
	if r.deployed {
		r.ApplyForce(ThrustDirection.Mul(r.parachute))
	}
	if r.Vel.Y < 0 {
		r.deployed = true
	}

	r.integrate(dt)
	return nil
}
