package simulation

import (
	"sync"

	"rocket-sim/simulator/model"
)

// Scenario describes the simulation the service starts with.
type Scenario struct {
	Config   Config
	Thrust   float64
	Duration float64
}

func DefaultScenario() Scenario {
	return Scenario{Config: DefaultConfig(), Thrust: 10.0, Duration: 60.0}
}

var (
	Current *Simulation
	Mutex   sync.Mutex
)

// InitSimulation replaces Current with a fresh simulation holding one rocket
// at the origin. Callers must hold Mutex if the service is already running.
func InitSimulation(sc Scenario) {
	Current = New(sc.Config)
	Current.AddParticle(model.NewRocket(model.Vector{}, model.DefaultRocketConfig(sc.Thrust, sc.Duration)))
}

type BodySnapshot struct {
	ID              int        `json:"id"`
	Kind            model.Kind `json:"kind"`
	X               float64    `json:"x"`
	Y               float64    `json:"y"`
	VX              float64    `json:"vx"`
	VY              float64    `json:"vy"`
	Parachute       bool       `json:"parachute,omitempty"`
	ThrustRemaining float64    `json:"thrust_remaining,omitempty"`
}

type Snapshot struct {
	Time   float64        `json:"time"`
	Count  int            `json:"count"`
	Bodies []BodySnapshot `json:"bodies"`
}

func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Time:   s.time,
		Count:  len(s.entries),
		Bodies: make([]BodySnapshot, 0, len(s.entries)),
	}
	for _, e := range s.entries {
		p := e.Body.State()
		bs := BodySnapshot{ID: e.ID, Kind: e.Body.Kind(), X: p.Pos.X, Y: p.Pos.Y, VX: p.Vel.X, VY: p.Vel.Y}
		if r, ok := e.Body.(*model.Rocket); ok {
			bs.Parachute = r.ParachuteDeployed()
			bs.ThrustRemaining = r.ThrustRemaining()
		}
		snap.Bodies = append(snap.Bodies, bs)
	}
	return snap
}
