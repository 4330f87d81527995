package domain

import "time"

// Player is a leaderboard snapshot of one competitor at some period.
type Player struct {
	ID           string
	Name         string
	RegisteredAt time.Time
	Rating       float64
	Deviation    float64
	RatingChange float64
	RatingRank   int
	GamesPlayed  int
	GameDays     int
}
