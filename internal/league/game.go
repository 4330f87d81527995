package league

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goserg/chessleague/internal/domain"
	"github.com/goserg/chessleague/internal/rating"
)

// Game is an immutable pairing of two players. It contributes to the
// rating update of exactly one period, the one matching its date.
type Game struct {
	id      uuid.UUID
	a       *Player
	b       *Player
	date    time.Time
	outcome domain.Outcome
	played  bool
}

func newGame(id uuid.UUID, a, b *Player, date time.Time, outcome domain.Outcome) *Game {
	return &Game{
		id:      id,
		a:       a,
		b:       b,
		date:    date.Truncate(24 * time.Hour),
		outcome: outcome,
	}
}

func (g *Game) Date() time.Time {
	return g.date
}

// OutcomeFor returns the score the game contributes to the given
// player's update. Calling it for a player not in the game breaks an
// engine invariant.
func (g *Game) OutcomeFor(p *Player) rating.Score {
	if p != g.a && p != g.b {
		panic(fmt.Sprintf("league: player %q is not in game %s", p.id, g.id))
	}
	switch g.outcome {
	case domain.OutcomeWinA:
		if p == g.a {
			return rating.Win
		}
		return rating.Loss
	case domain.OutcomeWinB:
		if p == g.b {
			return rating.Win
		}
		return rating.Loss
	default:
		return rating.Draw
	}
}

// OpponentOf returns the other participant.
func (g *Game) OpponentOf(p *Player) *Player {
	switch p {
	case g.a:
		return g.b
	case g.b:
		return g.a
	}
	panic(fmt.Sprintf("league: player %q is not in game %s", p.id, g.id))
}

// markPlayed flips the played flag. It reports false when the game was
// already played, so a replay never double-counts.
func (g *Game) markPlayed() bool {
	if g.played {
		return false
	}
	g.played = true
	return true
}

func (g *Game) snapshot() domain.Game {
	return domain.Game{
		ID:       g.id,
		PlayerA:  g.a.id,
		PlayerB:  g.b.id,
		Outcome:  g.outcome,
		PlayedAt: g.date,
	}
}
