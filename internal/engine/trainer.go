package engine

import (
	"context"
	"errors"
	"io"
	"log"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"qmaze/internal/config"
)

const DefaultMazeSize = 5

// Config describes the trainer's maze and the defaults applied to sessions.
type Config struct {
	Rows         int           `json:"rows"`
	Cols         int           `json:"cols"`
	Seed         int64         `json:"seed"`
	Rewards      Rewards       `json:"rewards"`
	PathMaxSteps int           `json:"pathMaxSteps"`
	Defaults     SessionParams `json:"defaults"`
}

// Snapshot is a consistent copy of the trainer state for rendering.
type Snapshot struct {
	Rows        int                     `json:"rows"`
	Cols        int                     `json:"cols"`
	Start       Position                `json:"start"`
	Goal        Position                `json:"goal"`
	Walls       []Position              `json:"walls"`
	StateValues [][]float64             `json:"stateValues"`
	QValues     [][][NumActions]float64 `json:"qValues"`
	Metrics     []EpisodeMetrics        `json:"metrics"`
	Path        *Path                   `json:"path,omitempty"`
	Running     bool                    `json:"running"`
	Session     uuid.UUID               `json:"session"`
}

// Option customises a Trainer.
type Option func(*Trainer)

// WithLogger sets the logger used for session lifecycle messages.
func WithLogger(l *log.Logger) Option {
	return func(t *Trainer) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithRand replaces the seeded random source.
func WithRand(r *rand.Rand) Option {
	return func(t *Trainer) {
		if r != nil {
			t.rng = r
		}
	}
}

// Trainer owns the maze, the Q-table and the metrics log, and runs at most
// one training session at a time. Maze edits are refused while a session runs.
type Trainer struct {
	mu      sync.RWMutex
	cfg     Config
	rng     *rand.Rand
	logger  *log.Logger
	maze    *Maze
	table   *QTable
	metrics []EpisodeMetrics
	path    *Path
	session *Session
}

// NewTrainer sanitises cfg and allocates a free maze with a zeroed table.
func NewTrainer(cfg Config, opts ...Option) (*Trainer, error) {
	if cfg.Rows <= 0 {
		cfg.Rows = DefaultMazeSize
	}
	if cfg.Cols <= 0 {
		cfg.Cols = DefaultMazeSize
	}
	if cfg.Rewards == (Rewards{}) {
		cfg.Rewards = DefaultRewards()
	}
	if cfg.PathMaxSteps <= 0 {
		cfg.PathMaxSteps = DefaultPathMaxSteps
	}
	cfg.Defaults = cfg.Defaults.withDefaults(DefaultSessionParams())
	if err := cfg.Defaults.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}
	maze, err := NewMaze(cfg.Rows, cfg.Cols, cfg.Rewards)
	if err != nil {
		return nil, err
	}
	t := &Trainer{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(seed)),
		logger: log.New(io.Discard, "", 0),
		maze:   maze,
		table:  NewQTable(cfg.Rows, cfg.Cols),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// withDefaults fills fields that have no valid zero value.
func (p SessionParams) withDefaults(d SessionParams) SessionParams {
	if p == (SessionParams{}) {
		return d
	}
	if p.Alpha == 0 {
		p.Alpha = d.Alpha
	}
	if p.Episodes == 0 {
		p.Episodes = d.Episodes
	}
	if p.MaxSteps == 0 {
		p.MaxSteps = d.MaxSteps
	}
	return p
}

// Config returns the sanitised configuration.
func (t *Trainer) Config() Config {
	return t.cfg
}

// Start launches a session on its own goroutine. Zero Alpha, Episodes and
// MaxSteps take the configured defaults; an all-zero params uses them all.
// It fails with ErrSessionActive if a session is already running.
func (t *Trainer) Start(ctx context.Context, params SessionParams) (*Session, error) {
	params = params.withDefaults(t.cfg.Defaults)
	if err := params.Validate(); err != nil {
		return nil, err
	}
	t.mu.Lock()
	if t.session != nil {
		t.mu.Unlock()
		return nil, ErrSessionActive
	}
	ctx, cancel := context.WithCancel(ctx)
	s := newSession(params, cancel)
	t.session = s
	t.path = nil
	t.mu.Unlock()

	t.logger.Printf("%s[INFO]%s session %s started: episodes=%d alpha=%.3f gamma=%.3f epsilon=%.3f maxSteps=%d",
		config.LogInfoColor, config.LogColorReset, s.ID, params.Episodes, params.Alpha, params.Gamma, params.Epsilon, params.MaxSteps)
	go t.run(ctx, s)
	return s, nil
}

func (t *Trainer) run(ctx context.Context, s *Session) {
	completed, err := runEpisodes(ctx, s.Params, func(i int) EpisodeMetrics {
		t.mu.Lock()
		defer t.mu.Unlock()
		m := RunEpisode(t.maze, t.table, s.Params, EpsilonAt(s.Params.Epsilon, i), t.rng)
		m.Session = s.ID
		m.SessionEpisode = i
		m.Episode = len(t.metrics)
		t.metrics = append(t.metrics, m)
		return m
	}, s.publish)

	stopped := errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
	if stopped {
		t.logger.Printf("%s[INFO]%s session %s stopped after %d episodes", config.LogInfoColor, config.LogColorReset, s.ID, completed)
	} else {
		t.logger.Printf("%s[INFO]%s session %s finished %d episodes", config.LogInfoColor, config.LogColorReset, s.ID, completed)
	}

	t.mu.Lock()
	t.session = nil
	t.mu.Unlock()
	s.finish(SessionResult{ID: s.ID, Episodes: completed, Stopped: stopped})
}

// Train runs a session to completion and returns its result.
func (t *Trainer) Train(ctx context.Context, params SessionParams) (SessionResult, error) {
	s, err := t.Start(ctx, params)
	if err != nil {
		return SessionResult{}, err
	}
	return s.Wait(), nil
}

// Running reports whether a session is in progress.
func (t *Trainer) Running() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.session != nil
}

// Session returns the running session, or nil when idle.
func (t *Trainer) Session() *Session {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.session
}

// ToggleWall flips a wall. It is a no-op returning false while a session
// runs, and for the start, the goal or an out-of-bounds position.
func (t *Trainer) ToggleWall(pos Position) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session != nil {
		return false
	}
	if !t.maze.ToggleWall(pos) {
		return false
	}
	t.path = nil
	return true
}

// Resize changes the maze and the table together, keeping their overlap.
func (t *Trainer) Resize(rows, cols int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session != nil {
		return ErrSessionActive
	}
	if err := t.maze.Resize(rows, cols); err != nil {
		return err
	}
	t.table.Resize(rows, cols)
	t.path = nil
	t.logger.Printf("%s[INFO]%s maze resized to %dx%d", config.LogInfoColor, config.LogColorReset, rows, cols)
	return nil
}

// ResetTraining zeroes the table and clears the metrics log. The maze is kept.
func (t *Trainer) ResetTraining() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session != nil {
		return ErrSessionActive
	}
	t.table.Reset()
	t.metrics = nil
	t.path = nil
	return nil
}

// ResetMaze removes every wall. The table and the metrics are kept.
func (t *Trainer) ResetMaze() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session != nil {
		return ErrSessionActive
	}
	t.maze.Clear()
	t.path = nil
	return nil
}

// ExtractPath computes and remembers the greedy route under the current table.
func (t *Trainer) ExtractPath() Path {
	t.mu.Lock()
	defer t.mu.Unlock()
	p := ExtractPath(t.table, t.maze, t.cfg.PathMaxSteps)
	t.path = &p
	return p
}

// LastPath returns the last extracted path if no edit has invalidated it.
func (t *Trainer) LastPath() (Path, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.path == nil {
		return Path{}, false
	}
	return *t.path, true
}

// Metrics returns a copy of the metrics log.
func (t *Trainer) Metrics() []EpisodeMetrics {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]EpisodeMetrics, len(t.metrics))
	copy(out, t.metrics)
	return out
}

// Maze returns a copy of the maze.
func (t *Trainer) Maze() *Maze {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.maze.Clone()
}

// Table returns a copy of the Q-table.
func (t *Trainer) Table() *QTable {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.table.Clone()
}

// Snapshot copies the whole trainer state.
func (t *Trainer) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	metrics := make([]EpisodeMetrics, len(t.metrics))
	copy(metrics, t.metrics)
	snap := Snapshot{
		Rows:        t.maze.Rows(),
		Cols:        t.maze.Cols(),
		Start:       t.maze.Start(),
		Goal:        t.maze.Goal(),
		Walls:       t.maze.Walls(),
		StateValues: t.table.StateValues(t.maze),
		QValues:     t.table.Values(),
		Metrics:     metrics,
		Running:     t.session != nil,
	}
	if t.path != nil {
		p := *t.path
		snap.Path = &p
	}
	if t.session != nil {
		snap.Session = t.session.ID
	}
	return snap
}
