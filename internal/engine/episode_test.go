package engine

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionParamsValidate(t *testing.T) {
	valid := DefaultSessionParams()
	require.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(p *SessionParams)
	}{
		{"AlphaZero", func(p *SessionParams) { p.Alpha = 0 }},
		{"AlphaAboveOne", func(p *SessionParams) { p.Alpha = 1.5 }},
		{"GammaOne", func(p *SessionParams) { p.Gamma = 1 }},
		{"GammaNegative", func(p *SessionParams) { p.Gamma = -0.1 }},
		{"EpsilonAboveOne", func(p *SessionParams) { p.Epsilon = 1.01 }},
		{"EpsilonNaN", func(p *SessionParams) { p.Epsilon = math.NaN() }},
		{"NoEpisodes", func(p *SessionParams) { p.Episodes = 0 }},
		{"TooManyEpisodes", func(p *SessionParams) { p.Episodes = MaxEpisodes + 1 }},
		{"NoSteps", func(p *SessionParams) { p.MaxSteps = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := valid
			tc.mutate(&p)
			assert.ErrorIs(t, p.Validate(), ErrInvalidParams)
		})
	}
}

func TestRunEpisodeRewardAccounting(t *testing.T) {
	m := newTestMaze(t, 5, 5, Position{Row: 1, Col: 1}, Position{Row: 2, Col: 3}, Position{Row: 3, Col: 1})
	q := NewQTable(5, 5)
	rng := rand.New(rand.NewSource(11))
	params := SessionParams{Alpha: 0.2, Gamma: 0.9, Epsilon: 0.6, Episodes: 200, MaxSteps: 100}

	var episodes []EpisodeMetrics
	_, err := RunSession(context.Background(), m, q, params, rng, func(e EpisodeMetrics) {
		episodes = append(episodes, e)
	})
	require.NoError(t, err)
	require.Len(t, episodes, 200)

	reached := 0
	for i, e := range episodes {
		goal := 0.0
		if e.ReachedGoal() {
			goal = 1
			reached++
		}
		want := DefaultGoalReward*goal + DefaultStepPenalty*(float64(e.Steps)-goal)
		assert.InDelta(t, want, e.TotalReward, 1e-9, "episode %d", i)
		assert.LessOrEqual(t, e.Steps, params.MaxSteps)
		assert.Equal(t, i, e.SessionEpisode)
		assert.InDelta(t, EpsilonAt(params.Epsilon, i), e.Epsilon, 1e-12)
	}
	assert.Positive(t, reached)
}

func TestRunEpisodeStuckStart(t *testing.T) {
	m := newTestMaze(t, 3, 3, Position{Row: 0, Col: 1}, Position{Row: 1, Col: 0})
	e := RunEpisode(m, NewQTable(3, 3), DefaultSessionParams(), 0.5, rand.New(rand.NewSource(1)))
	assert.Equal(t, OutcomeStuck, e.Outcome)
	assert.Zero(t, e.Steps)
	assert.Zero(t, e.TotalReward)
}

func TestRunEpisodeStepLimit(t *testing.T) {
	m := newTestMaze(t, 3, 3, Position{Row: 1, Col: 2}, Position{Row: 2, Col: 1})
	params := DefaultSessionParams()
	e := RunEpisode(m, NewQTable(3, 3), params, 0.3, rand.New(rand.NewSource(5)))
	assert.Equal(t, OutcomeStepLimit, e.Outcome)
	assert.Equal(t, params.MaxSteps, e.Steps)
	assert.InDelta(t, DefaultStepPenalty*float64(params.MaxSteps), e.TotalReward, 1e-9)
}

func TestGreedyUpdateContracts(t *testing.T) {
	m := newTestMaze(t, 1, 2)
	q := NewQTable(1, 2)
	params := SessionParams{Alpha: 0.5, Gamma: 0.9, Epsilon: 0, Episodes: 1, MaxSteps: 10}
	rng := rand.New(rand.NewSource(1))
	start := m.Start()

	optimal := DefaultGoalReward
	prevErr := math.Abs(q.Get(start, ActionRight) - optimal)
	for i := 0; i < 30; i++ {
		e := RunEpisode(m, q, params, 0, rng)
		require.True(t, e.ReachedGoal())
		require.Equal(t, 1, e.Steps)
		curErr := math.Abs(q.Get(start, ActionRight) - optimal)
		assert.LessOrEqual(t, curErr, prevErr, "episode %d", i)
		prevErr = curErr
	}
	assert.InDelta(t, optimal, q.Get(start, ActionRight), 1e-6)
	for _, a := range []Action{ActionUp, ActionDown, ActionLeft} {
		assert.Zero(t, q.Get(start, a))
	}
}

func TestSymmetricRoutesConverge(t *testing.T) {
	m := newTestMaze(t, 2, 2)
	q := NewQTable(2, 2)
	rng := rand.New(rand.NewSource(42))
	params := SessionParams{Alpha: 0.5, Gamma: 0.9, Epsilon: 1, Episodes: 300, MaxSteps: 100}

	for session := 0; session < 5; session++ {
		_, err := RunSession(context.Background(), m, q, params, rng, nil)
		require.NoError(t, err)
	}

	start := m.Start()
	optimal := DefaultStepPenalty + params.Gamma*DefaultGoalReward
	down := q.Get(start, ActionDown)
	right := q.Get(start, ActionRight)
	assert.InDelta(t, optimal, down, 0.05)
	assert.InDelta(t, optimal, right, 0.05)
	assert.InDelta(t, down, right, 0.05)
	assert.Zero(t, q.Get(start, ActionUp))
	assert.Zero(t, q.Get(start, ActionLeft))
	assert.Greater(t, down, q.Get(start, ActionUp))

	greedy := SessionParams{Alpha: 0.5, Gamma: 0.9, Epsilon: 0, Episodes: 1, MaxSteps: 100}
	e := RunEpisode(m, q, greedy, 0, rng)
	assert.True(t, e.ReachedGoal())
	assert.Equal(t, 2, e.Steps)
}

func TestRunSessionCancellation(t *testing.T) {
	m := newTestMaze(t, 4, 4)
	params := DefaultSessionParams()
	params.Episodes = 50

	t.Run("BeforeStart", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		calls := 0
		n, err := RunSession(ctx, m, NewQTable(4, 4), params, rand.New(rand.NewSource(1)), func(EpisodeMetrics) { calls++ })
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, n)
		assert.Zero(t, calls)
	})

	t.Run("BetweenEpisodes", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		var got []EpisodeMetrics
		n, err := RunSession(ctx, m, NewQTable(4, 4), params, rand.New(rand.NewSource(1)), func(e EpisodeMetrics) {
			got = append(got, e)
			if len(got) == 3 {
				cancel()
			}
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 3, n)
		assert.Len(t, got, 3)
	})
}
