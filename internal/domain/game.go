package domain

import (
	"time"

	"github.com/google/uuid"
)

type Outcome uint8

const (
	OutcomeWinA Outcome = iota
	OutcomeWinB
	OutcomeDraw
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWinA:
		return "win A"
	case OutcomeWinB:
		return "win B"
	default:
		return "draw"
	}
}

// Game is one raw game record as produced by the parser or storage.
type Game struct {
	ID       uuid.UUID
	PlayerA  string
	PlayerB  string
	Outcome  Outcome
	PlayedAt time.Time
}
