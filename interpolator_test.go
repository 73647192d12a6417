package lossrate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLerpEndpoints(t *testing.T) {
	a := assert.New(t)

	endpoints := [][2]float64{{0.10, 0.50}, {0.2, 1.2}, {0.05, 0.3}, {1.5, 0.25}, {-3, 7}}
	for _, e := range endpoints {
		a.Equal(e[0], Lerp(e[0], e[1], 0))
		a.Equal(e[1], Lerp(e[0], e[1], 1))
	}
}

func TestLerp(t *testing.T) {
	a := assert.New(t)

	a.Equal(0.391, Lerp(0, 1, 0.391))
	a.Equal(0.39, Round(Lerp(0, 1, 0.391), 2))

	ia := Lerp(0.10, 0.50, 0.391)
	a.InDelta(0.2564, ia, 1e-12)
	a.Equal(0.26, Round(ia, 2))

	a.True(math.IsNaN(Lerp(math.NaN(), 0.5, 0.391)))
	a.True(math.IsNaN(Lerp(0.1, math.NaN(), 0.391)))
	a.True(math.IsNaN(Lerp(math.NaN(), 0.5, 1)))
	a.True(math.IsNaN(Lerp(0.1, math.NaN(), 1)))
	a.True(math.IsNaN(Lerp(math.NaN(), 0.5, 0)))

	// no clamping
	a.InDelta(0.9, Lerp(0.1, 0.5, 2), 1e-12)
	a.InDelta(-0.3, Lerp(0.1, 0.5, -1), 1e-12)
}

func TestLerpMonotonic(t *testing.T) {
	a := assert.New(t)

	for _, e := range [][2]float64{{0.10, 0.50}, {0.05, 0.3}, {0.2, 1.2}, {0.4, 0.4}} {
		prev := Lerp(e[0], e[1], 0)
		for i := 1; i <= 1000; i++ {
			f := float64(i) / 1000
			v := Lerp(e[0], e[1], f)
			a.GreaterOrEqual(v, prev, "f=%v", f)
			a.True(InRange(v, e[0], e[1]), "f=%v", f)
			prev = v
		}
	}
}

func TestRound(t *testing.T) {
	a := assert.New(t)

	cases := []struct {
		in   float64
		want float64
	}{
		{0.2564, 0.26},
		{0.391, 0.39},
		{0.14775, 0.15},
		{0.125, 0.12},
		{0.135, 0.14},
		{0.575, 0.57},
		{0.591, 0.59},
		{-0.2564, -0.26},
		{3, 3},
	}
	for _, c := range cases {
		got := Round(c.in, 2)
		a.Equal(c.want, got, "%v", c.in)
		a.Equal(got, Round(got, 2), "idempotent %v", c.in)
	}
	a.True(math.IsNaN(Round(math.NaN(), 2)))
}
