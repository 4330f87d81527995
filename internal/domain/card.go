package domain

import "time"

// PlayerCard is the player page view: the current snapshot plus the
// full rating history with the period dates.
type PlayerCard struct {
	Player  Player
	History []float64
	Dates   []time.Time
}
