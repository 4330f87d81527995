package league

import (
	"fmt"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/goserg/chessleague/internal/rating"
)

// Player holds one competitor's identity and the append-only time
// series of its rating and deviation, one entry per committed period.
type Player struct {
	id      string
	name    string
	kFactor float64
	cs      *rating.Constants

	ratings    []float64
	deviations []float64
	games      mapset.Set[*Game]

	// pending holds the staged but uncommitted next state. It is set by
	// StagePeriod and consumed by CommitPeriod; empty otherwise.
	pending *pendingUpdate
}

type pendingUpdate struct {
	rating    float64
	deviation float64
}

func newPlayer(id, name string, cs *rating.Constants) *Player {
	return &Player{
		id:         id,
		name:       name,
		kFactor:    cs.KFactor,
		cs:         cs,
		ratings:    []float64{cs.StartingRating},
		deviations: []float64{cs.StartingDeviation},
		games:      mapset.NewThreadUnsafeSet[*Game](),
	}
}

func (p *Player) ID() string {
	return p.id
}

func (p *Player) Name() string {
	return p.name
}

// Rating returns the last committed rating.
func (p *Player) Rating() float64 {
	return p.ratings[len(p.ratings)-1]
}

// Deviation returns the last committed rating deviation.
func (p *Player) Deviation() float64 {
	return p.deviations[len(p.deviations)-1]
}

// History returns a copy of the committed rating history, starting
// with the initial rating.
func (p *Player) History() []float64 {
	out := make([]float64, len(p.ratings))
	copy(out, p.ratings)
	return out
}

// ratingAt returns the committed rating after the given number of
// periods; 0 is the initial rating.
func (p *Player) ratingAt(i int) float64 {
	return p.ratings[i]
}

func (p *Player) deviationAt(i int) float64 {
	return p.deviations[i]
}

// ExpectedScore is the logistic expectation of p against other, using
// other's committed rating and deviation.
func (p *Player) ExpectedScore(other *Player) float64 {
	return p.cs.ExpectedScore(p.Rating(), other.Rating(), other.Deviation())
}

// RegisterGame adds the game to the player's set. Repeated
// registration is a no-op.
func (p *Player) RegisterGame(g *Game) {
	p.games.Add(g)
}

// gamesPlayedBefore counts games no later than the given date.
func (p *Player) gamesPlayedBefore(date time.Time) int {
	var n int
	p.games.Each(func(g *Game) bool {
		if !g.date.After(date) {
			n++
		}
		return false
	})
	return n
}

// gameDays counts the distinct dates no later than date the player
// has played on.
func (p *Player) gameDays(date time.Time) int {
	days := mapset.NewThreadUnsafeSet[time.Time]()
	p.games.Each(func(g *Game) bool {
		if !g.date.After(date) {
			days.Add(g.date)
		}
		return false
	})
	return days.Cardinality()
}

// lastPlayed returns the most recent game date, or false when the
// player has never played.
func (p *Player) lastPlayed() (time.Time, bool) {
	var last time.Time
	var ok bool
	p.games.Each(func(g *Game) bool {
		if !ok || g.date.After(last) {
			last = g.date
			ok = true
		}
		return false
	})
	return last, ok
}

// StagePeriod computes the player's next (rating, deviation) pair into
// the pending slot without mutating history. It reads only state
// committed before the period, its own and its opponents'. idlePeriods
// reports how many periods lie between a date and the period being
// staged.
//
// Staging twice without an intervening commit is reported as
// ErrAlreadyStaged and leaves the first staging in place.
func (p *Player) StagePeriod(now time.Time, idlePeriods func(last time.Time) int) error {
	if p.pending != nil {
		return fmt.Errorf("player %q: %w", p.id, ErrAlreadyStaged)
	}

	last, everPlayed := p.lastPlayed()
	next := pendingUpdate{rating: p.Rating(), deviation: p.Deviation()}

	switch {
	case !everPlayed:
		if p.cs.Mode == rating.ModeGlicko {
			next.rating -= p.cs.DecayPenalty(next.rating, 1)
		}
	case !last.Equal(now):
		idle := idlePeriods(last)
		next.deviation = p.cs.GrowDeviation(next.deviation, idle)
		next.rating -= p.cs.DecayPenalty(next.rating, idle)
	default:
		var results []rating.GameResult
		p.games.Each(func(g *Game) bool {
			if !g.date.Equal(now) {
				return false
			}
			opp := g.OpponentOf(p)
			results = append(results, rating.GameResult{
				OpponentRating:    opp.Rating(),
				OpponentDeviation: opp.Deviation(),
				Score:             g.OutcomeFor(p),
			})
			return false
		})
		next.rating, next.deviation = p.cs.Update(p.Rating(), p.Deviation(), p.kFactor, results)
	}

	p.pending = &next
	return nil
}

// CommitPeriod appends the pending state to the histories and clears
// the slot. Committing without a prior staging is a sequencing bug in
// the caller.
func (p *Player) CommitPeriod() error {
	if p.pending == nil {
		return fmt.Errorf("player %q: %w", p.id, ErrNotStaged)
	}
	p.ratings = append(p.ratings, p.pending.rating)
	p.deviations = append(p.deviations, p.pending.deviation)
	p.pending = nil
	return nil
}
