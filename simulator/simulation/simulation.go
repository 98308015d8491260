package simulation

import (
	"context"

	"rocket-sim/simulator/model"
)

type Config struct {
	Gravity     model.Vector
	GroundLevel float64
}

func DefaultConfig() Config {
	return Config{Gravity: model.Vec(0, -9.8)}
}

// Entry is a body together with the id it was registered under.
type Entry struct {
	ID   int
	Body model.Body
}

// Landing records a body removed from the simulation after touching ground.
type Landing struct {
	BodyID   int          `json:"body_id"`
	Kind     model.Kind   `json:"kind"`
	Time     float64      `json:"time"`
	Position model.Vector `json:"position"`
	Velocity model.Vector `json:"velocity"`
}

// Simulation owns an ordered set of bodies and advances them in lockstep.
// It is not safe for concurrent use.
type Simulation struct {
	cfg     Config
	entries []Entry
	time    float64
	nextID  int
	landed  []Landing

	// OnLanded, if set, is called for every body removed by Step, after the
	// landed bodies have been dropped.
	OnLanded func(Landing)
}

func New(cfg Config) *Simulation {
	return &Simulation{cfg: cfg, nextID: 1}
}

func (s *Simulation) Config() Config { return s.cfg }

// AddParticle appends b and returns the id assigned to it.
func (s *Simulation) AddParticle(b model.Body) int {
	id := s.nextID
	s.nextID++
	s.entries = append(s.entries, Entry{ID: id, Body: b})
	return id
}

// Step applies gravity to every body, steps it and clears its forces, then
// advances time and drops every body at or below ground level.
func (s *Simulation) Step(dt float64) error {
	if err := model.ValidateTimestep(dt); err != nil {
		return err
	}

	for _, e := range s.entries {
		p := e.Body.State()
		p.ApplyForce(s.cfg.Gravity)
		if err := e.Body.Step(dt); err != nil {
			return err
		}
		p.ResetForces()
	}
	s.time += dt

	s.landed = s.landed[:0]
	live := s.entries[:0]
	for _, e := range s.entries {
		p := e.Body.State()
		if p.Pos.Y > s.cfg.GroundLevel {
			live = append(live, e)
			continue
		}
		s.landed = append(s.landed, Landing{BodyID: e.ID, Kind: e.Body.Kind(), Time: s.time, Position: p.Pos, Velocity: p.Vel})
	}
	for i := len(live); i < len(s.entries); i++ {
		s.entries[i] = Entry{}
	}
	s.entries = live

	// callbacks run on the compacted set so they may add bodies
	if s.OnLanded != nil {
		for _, l := range s.Landed() {
			s.OnLanded(l)
		}
	}
	return nil
}

// Landed returns the bodies removed by the most recent Step.
func (s *Simulation) Landed() []Landing {
	out := make([]Landing, len(s.landed))
	copy(out, s.landed)
	return out
}

func (s *Simulation) Time() float64 { return s.time }

func (s *Simulation) Len() int { return len(s.entries) }

// Entries returns a copy of the current bodies in insertion order.
func (s *Simulation) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Run steps the simulation until it is empty, time reaches budget or ctx is
// done. It returns the number of ticks taken. dt must be positive.
func (s *Simulation) Run(ctx context.Context, dt, budget float64) (int, error) {
	if err := model.ValidateTimestep(dt); err != nil || dt == 0 {
		return 0, model.ErrInvalidTimestep
	}
	ticks := 0
	for s.Len() > 0 && s.time < budget {
		if err := ctx.Err(); err != nil {
			return ticks, err
		}
		if err := s.Step(dt); err != nil {
			return ticks, err
		}
		ticks++
	}
	return ticks, nil
}
