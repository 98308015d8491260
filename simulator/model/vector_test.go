package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVectorArithmetic(t *testing.T) {
	gravity := Vec(0, -9.8)

	assert.Equal(t, Vec(0, -19.6), gravity.Add(gravity))
	assert.Equal(t, Vec(0, -19.6), gravity.Scale(2))
	assert.Equal(t, Vec(0, -19.6), Scale(2, gravity))
	assert.Equal(t, Vec(2.5, -1), Vec(1, 2).AddTimes(Vec(0.5, -1), 3))
	assert.Equal(t, Vec(6, -8), Vec(2, 4).Mul(Vec(3, -2)))
}

func TestVectorLengthAndAngle(t *testing.T) {
	assert.Equal(t, 5.0, Vec(3, 4).Length())
	assert.Equal(t, 0.0, Vector{}.Length())
	assert.InDelta(t, math.Atan2(2, 1), Vec(1, 2).Angle(), 1e-12)
	assert.InDelta(t, math.Pi/2, Vec(0, 1).Angle(), 1e-12)
}

func TestVectorEqualIsExact(t *testing.T) {
	a := Vec(5.5, -9.8)
	b := Vec(5.5, -9.8)
	assert.True(t, a.Equal(b))
	assert.True(t, a == b)
	assert.False(t, a.Equal(Vec(5.5, -9.8+1e-12)))
	assert.False(t, Vec(0.1, 0).Add(Vec(0.2, 0)).Equal(Vec(0.3, 0)))
}

func TestVectorString(t *testing.T) {
	assert.Equal(t, "(0 -19.6)", Vec(0, -19.6).String())
}
