package model

import (
	"fmt"
	"math"
)

// Vector is an immutable 2D value. Every operation returns a new Vector.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func Vec(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

// AddTimes adds o to v n times, computed in one multiplication.
func (v Vector) AddTimes(o Vector, n int) Vector {
	t := float64(n)
	return Vector{X: v.X + o.X*t, Y: v.Y + o.Y*t}
}

func (v Vector) Scale(k float64) Vector {
	return Vector{X: v.X * k, Y: v.Y * k}
}

// Scale is the scalar-on-the-left form of Vector.Scale.
func Scale(k float64, v Vector) Vector {
	return v.Scale(k)
}

// Mul is the component-wise product.
func (v Vector) Mul(o Vector) Vector {
	return Vector{X: v.X * o.X, Y: v.Y * o.Y}
}

func (v Vector) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v Vector) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Equal compares components exactly, with no tolerance.
func (v Vector) Equal(o Vector) bool {
	return v.X == o.X && v.Y == o.Y
}

func (v Vector) String() string {
	return fmt.Sprintf("(%g %g)", v.X, v.Y)
}
