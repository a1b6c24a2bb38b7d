package engine

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

const (
	DefaultAlpha    = 0.1
	DefaultGamma    = 0.9
	DefaultEpsilon  = 0.3
	DefaultEpisodes = 500
	DefaultMaxSteps = 100
	// MaxEpisodes bounds a single session.
	MaxEpisodes = 100000
)

const (
	OutcomeGoal      = "goal"
	OutcomeStuck     = "stuck"
	OutcomeStepLimit = "step_limit"
)

// SessionParams are the hyperparameters of one training session. They stay
// fixed while the session runs.
type SessionParams struct {
	Alpha    float64 `json:"alpha"`
	Gamma    float64 `json:"gamma"`
	Epsilon  float64 `json:"epsilon"`
	Episodes int     `json:"episodes"`
	MaxSteps int     `json:"maxSteps"`
}

// DefaultSessionParams returns alpha 0.1, gamma 0.9, epsilon 0.3, 500
// episodes of at most 100 steps.
func DefaultSessionParams() SessionParams {
	return SessionParams{
		Alpha:    DefaultAlpha,
		Gamma:    DefaultGamma,
		Epsilon:  DefaultEpsilon,
		Episodes: DefaultEpisodes,
		MaxSteps: DefaultMaxSteps,
	}
}

// Validate checks every parameter against its domain.
func (p SessionParams) Validate() error {
	switch {
	case !(p.Alpha > 0 && p.Alpha <= 1):
		return fmt.Errorf("%w: alpha must be in (0,1], got %v", ErrInvalidParams, p.Alpha)
	case !(p.Gamma >= 0 && p.Gamma < 1):
		return fmt.Errorf("%w: gamma must be in [0,1), got %v", ErrInvalidParams, p.Gamma)
	case !(p.Epsilon >= 0 && p.Epsilon <= 1):
		return fmt.Errorf("%w: epsilon must be in [0,1], got %v", ErrInvalidParams, p.Epsilon)
	case p.Episodes <= 0 || p.Episodes > MaxEpisodes:
		return fmt.Errorf("%w: episodes must be in [1,%d], got %d", ErrInvalidParams, MaxEpisodes, p.Episodes)
	case p.MaxSteps <= 0:
		return fmt.Errorf("%w: maxSteps must be positive, got %d", ErrInvalidParams, p.MaxSteps)
	}
	return nil
}

// EpisodeMetrics records one completed episode.
type EpisodeMetrics struct {
	Session uuid.UUID `json:"session"`
	// Episode is the position of the record in the trainer's metrics log.
	Episode int `json:"episode"`
	// SessionEpisode is the index within its session, the exponent of the
	// exploration schedule.
	SessionEpisode int     `json:"sessionEpisode"`
	TotalReward    float64 `json:"totalReward"`
	Steps          int     `json:"steps"`
	Epsilon        float64 `json:"epsilon"`
	Outcome        string  `json:"outcome"`
}

// ReachedGoal reports whether the episode ended at the goal.
func (e EpisodeMetrics) ReachedGoal() bool {
	return e.Outcome == OutcomeGoal
}

// RunEpisode runs one epsilon-greedy episode from the maze start, applying the
// Q-learning update after every step. It ends at the goal, at a cell with no
// valid action, or after params.MaxSteps steps; none of these is an error.
func RunEpisode(m *Maze, table *QTable, params SessionParams, epsilon float64, rng *rand.Rand) EpisodeMetrics {
	pos := m.Start()
	goal := m.Goal()
	metrics := EpisodeMetrics{Epsilon: epsilon, Outcome: OutcomeStepLimit}
	for pos != goal && metrics.Steps < params.MaxSteps {
		action, ok := SelectAction(pos, epsilon, table, m, rng)
		if !ok {
			metrics.Outcome = OutcomeStuck
			return metrics
		}
		next, reward := m.Step(pos, action)
		updateQLearning(table, m, params, pos, action, reward, next)
		metrics.TotalReward += reward
		metrics.Steps++
		pos = next
	}
	if pos == goal {
		metrics.Outcome = OutcomeGoal
	}
	return metrics
}

func updateQLearning(table *QTable, m *Maze, params SessionParams, state Position, action Action, reward float64, next Position) {
	current := table.Get(state, action)
	nextValue := table.MaxValue(next, m.Goal(), m.ValidActions(next))
	target := reward + params.Gamma*nextValue
	table.Set(state, action, current+params.Alpha*(target-current))
}

// RunSession runs params.Episodes episodes in order against m and table,
// decaying exploration from params.Epsilon with EpsilonAt. emit, if not nil,
// receives every completed episode. Cancellation is observed only between
// episodes; the number of completed episodes is returned with ctx.Err().
func RunSession(ctx context.Context, m *Maze, table *QTable, params SessionParams, rng *rand.Rand, emit func(EpisodeMetrics)) (int, error) {
	return runEpisodes(ctx, params, func(i int) EpisodeMetrics {
		metrics := RunEpisode(m, table, params, EpsilonAt(params.Epsilon, i), rng)
		metrics.Episode = i
		return metrics
	}, emit)
}

func runEpisodes(ctx context.Context, params SessionParams, episode func(i int) EpisodeMetrics, emit func(EpisodeMetrics)) (int, error) {
	for i := 0; i < params.Episodes; i++ {
		select {
		case <-ctx.Done():
			return i, ctx.Err()
		default:
		}
		metrics := episode(i)
		metrics.SessionEpisode = i
		if emit != nil {
			emit(metrics)
		}
	}
	return params.Episodes, nil
}
