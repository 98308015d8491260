package model

import (
	"errors"
	"math"
)

// ErrInvalidTimestep is returned by Step for negative or non-finite dt.
var ErrInvalidTimestep = errors.New("invalid timestep")

// Kind names the variant of a Body.
type Kind string

const (
	KindParticle Kind = "particle"
	KindRocket   Kind = "rocket"
)

// Body is anything the simulation can push around. Particle and Rocket both
// implement it; Rocket layers its own forces before the shared integration.
type Body interface {
	Kind() Kind
	State() *Particle
	Step(dt float64) error
}

// Particle is a point mass integrated with explicit Euler.
type Particle struct {
	Pos Vector
	Vel Vector
	Acc Vector
}

func NewParticle(pos Vector) *Particle {
	return &Particle{Pos: pos}
}

func (p *Particle) Kind() Kind { return KindParticle }

func (p *Particle) State() *Particle { return p }

// ApplyForce accumulates f into the acceleration for the current tick.
func (p *Particle) ApplyForce(f Vector) {
	p.Acc = p.Acc.Add(f)
}

func (p *Particle) ResetForces() {
	p.Acc = Vector{}
}

// Step advances velocity then position by dt and clamps the particle to the
// ground plane. Acc is left as is; clearing it is the caller's job.
func (p *Particle) Step(dt float64) error {
	if err := ValidateTimestep(dt); err != nil {
		return err
	}
	p.integrate(dt)
	return nil
}

func (p *Particle) integrate(dt float64) {
	p.Vel = p.Vel.Add(p.Acc.Scale(dt))
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	p.Pos.Y = math.Max(0, p.Pos.Y)
}

func ValidateTimestep(dt float64) error {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return ErrInvalidTimestep
	}
	return nil
}
