package engine

import "errors"

var (
	// ErrInvalidSize indicates maze dimensions outside the supported range.
	ErrInvalidSize = errors.New("engine: invalid maze size")
	// ErrInvalidParams indicates session hyperparameters outside their domain.
	ErrInvalidParams = errors.New("engine: invalid session parameters")
	// ErrSessionActive is returned when an operation requires an idle trainer.
	ErrSessionActive = errors.New("engine: training session is running")
)
