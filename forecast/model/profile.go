package model

import (
	"context"
	"errors"

	sim "rocket-sim/simulator/model"
	"rocket-sim/simulator/simulation"
)

// DefaultMaxTicks caps a single forecast. At the default dt of 1 it covers
// a budget two hundred times the default.
const DefaultMaxTicks = 100000

// ErrTooManyTicks is returned when Budget / Dt exceeds MaxTicks.
var ErrTooManyTicks = errors.New("forecast needs too many ticks")

// Request describes one rocket flight to forecast.
type Request struct {
	Thrust   float64
	Duration float64
	Dt       float64
	Budget   float64
	MaxTicks int
	Config   simulation.Config
}

func DefaultRequest() Request {
	return Request{
		Thrust:   10,
		Duration: 60,
		Dt:       1,
		Budget:   500,
		MaxTicks: DefaultMaxTicks,
		Config:   simulation.DefaultConfig(),
	}
}

// Profile summarises a simulated flight. Times are simulation time at the end
// of the tick the event was observed on.
type Profile struct {
	Apogee        float64 `json:"apogee"`
	ApogeeTime    float64 `json:"apogee_time"`
	BurnoutTime   float64 `json:"burnout_time"`
	ParachuteTime float64 `json:"parachute_time,omitempty"`
	Deployed      bool    `json:"deployed"`
	LandingTime   float64 `json:"landing_time,omitempty"`
	LandingSpeed  float64 `json:"landing_speed,omitempty"`
	Landed        bool    `json:"landed"`
	Ticks         int     `json:"ticks"`
}

// Forecast flies a single rocket from the origin in a private simulation.
func Forecast(ctx context.Context, req Request) (Profile, error) {
	if err := sim.ValidateTimestep(req.Dt); err != nil || req.Dt == 0 {
		return Profile{}, sim.ErrInvalidTimestep
	}
	// written negated so a NaN budget is rejected too
	if req.MaxTicks <= 0 || !(req.Budget/req.Dt <= float64(req.MaxTicks)) {
		return Profile{}, ErrTooManyTicks
	}

	s := simulation.New(req.Config)
	r := sim.NewRocket(sim.Vector{}, sim.DefaultRocketConfig(req.Thrust, req.Duration))
	s.AddParticle(r)

	var p Profile
	s.OnLanded = func(l simulation.Landing) {
		p.Landed = true
		p.LandingTime = l.Time
		p.LandingSpeed = l.Velocity.Length()
	}

	burning := r.ThrustRemaining() > 0
	for s.Len() > 0 && s.Time() < req.Budget && p.Ticks < req.MaxTicks {
		if err := ctx.Err(); err != nil {
			return Profile{}, err
		}
		if err := s.Step(req.Dt); err != nil {
			return Profile{}, err
		}
		p.Ticks++

		if r.Pos.Y > p.Apogee {
			p.Apogee = r.Pos.Y
			p.ApogeeTime = s.Time()
		}
		if burning && r.ThrustRemaining() == 0 {
			burning = false
			p.BurnoutTime = s.Time()
		}
		if !p.Deployed && r.ParachuteDeployed() {
			p.Deployed = true
			p.ParachuteTime = s.Time()
		}
	}
	return p, nil
}
