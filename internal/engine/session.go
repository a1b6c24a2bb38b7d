package engine

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// SessionResult summarises a finished session.
type SessionResult struct {
	ID       uuid.UUID `json:"id"`
	Episodes int       `json:"episodes"`
	Stopped  bool      `json:"stopped"`
}

// Session is the handle of one training run started by Trainer.Start.
type Session struct {
	ID     uuid.UUID
	Params SessionParams

	cancel context.CancelFunc
	done   chan struct{}

	mu      sync.Mutex
	backlog []EpisodeMetrics
	subs    []chan EpisodeMetrics
	closed  bool
	result  SessionResult
}

func newSession(params SessionParams, cancel context.CancelFunc) *Session {
	return &Session{
		ID:     uuid.New(),
		Params: params,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// Subscribe returns a channel that replays the episodes completed so far and
// then receives each new one. It is closed when the session ends. Every
// subscriber has room for the whole session, so a slow reader never stalls
// training.
func (s *Session) Subscribe() <-chan EpisodeMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan EpisodeMetrics, s.Params.Episodes)
	for _, m := range s.backlog {
		ch <- m
	}
	if s.closed {
		close(ch)
		return ch
	}
	s.subs = append(s.subs, ch)
	return ch
}

// Episodes returns the episodes completed so far.
func (s *Session) Episodes() []EpisodeMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]EpisodeMetrics, len(s.backlog))
	copy(out, s.backlog)
	return out
}

// Stop asks the session to end. The episode in flight runs to completion.
func (s *Session) Stop() {
	s.cancel()
}

// Done is closed once the session has ended and the trainer is idle again.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the session ends.
func (s *Session) Wait() SessionResult {
	<-s.done
	return s.result
}

func (s *Session) publish(m EpisodeMetrics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backlog = append(s.backlog, m)
	for _, ch := range s.subs {
		ch <- m
	}
}

func (s *Session) finish(result SessionResult) {
	s.mu.Lock()
	s.closed = true
	s.result = result
	for _, ch := range s.subs {
		close(ch)
	}
	s.subs = nil
	s.mu.Unlock()
	s.cancel()
	close(s.done)
}
