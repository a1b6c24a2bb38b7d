// Package training exposes the maze trainer over HTTP.
package training

import (
	"github.com/google/uuid"

	"qmaze/internal/engine"
)

// SessionRequest starts a training session. Omitted fields take the
// trainer's defaults.
type SessionRequest struct {
	Alpha    *float64 `json:"alpha"`
	Gamma    *float64 `json:"gamma"`
	Epsilon  *float64 `json:"epsilon"`
	Episodes *int     `json:"episodes"`
	MaxSteps *int     `json:"maxSteps"`
}

func (r SessionRequest) params(defaults engine.SessionParams) engine.SessionParams {
	p := defaults
	if r.Alpha != nil {
		p.Alpha = *r.Alpha
	}
	if r.Gamma != nil {
		p.Gamma = *r.Gamma
	}
	if r.Epsilon != nil {
		p.Epsilon = *r.Epsilon
	}
	if r.Episodes != nil {
		p.Episodes = *r.Episodes
	}
	if r.MaxSteps != nil {
		p.MaxSteps = *r.MaxSteps
	}
	return p
}

// SessionResponse describes a session.
type SessionResponse struct {
	ID       uuid.UUID            `json:"id"`
	Params   engine.SessionParams `json:"params"`
	Running  bool                 `json:"running"`
	Episodes int                  `json:"episodes"`
	Stopped  bool                 `json:"stopped"`
}

// WallRequest toggles the wall at a cell.
type WallRequest struct {
	Row *int `json:"row" binding:"required"`
	Col *int `json:"col" binding:"required"`
}

// WallResponse reports whether the edit was applied.
type WallResponse struct {
	Toggled bool              `json:"toggled"`
	Walls   []engine.Position `json:"walls"`
}

// SizeRequest resizes the maze. Cols defaults to Rows.
type SizeRequest struct {
	Rows int `json:"rows" binding:"required"`
	Cols int `json:"cols"`
}
