package entities

import "errors"

var (
	ErrNoTableSelected      = errors.New("no table selected")
	ErrInvalidTable         = errors.New("table must be between 1 and 12")
	ErrInvalidQuestionCount = errors.New("question count must be between 1 and 12")
	ErrInvalidDifficulty    = errors.New("unknown difficulty")
	ErrWrongPhase           = errors.New("action not allowed in current phase")
	ErrStaleSession         = errors.New("quiz session is no longer active")
)
