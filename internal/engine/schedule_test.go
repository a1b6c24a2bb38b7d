package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEpsilonAt(t *testing.T) {
	cases := []struct {
		name     string
		epsilon0 float64
		episode  int
		want     float64
	}{
		{"First", 0.3, 0, 0.3},
		{"Tenth", 0.3, 10, math.Max(0.01, 0.3*math.Pow(0.98, 10))},
		{"Floor", 0.3, 1000, EpsilonFloor},
		{"FullExploration", 1, 1, 0.98},
		{"Greedy", 0, 25, 0},
		{"BelowFloor", 0.005, 40, 0.005},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, EpsilonAt(tc.epsilon0, tc.episode), 1e-12)
		})
	}
}

func TestEpsilonAtMonotone(t *testing.T) {
	prev := EpsilonAt(0.8, 0)
	for i := 1; i < 400; i++ {
		eps := EpsilonAt(0.8, i)
		assert.LessOrEqual(t, eps, prev)
		assert.GreaterOrEqual(t, eps, EpsilonFloor)
		prev = eps
	}
}
