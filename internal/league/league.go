package league

import (
	"errors"
	"fmt"
	"sort"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"

	"github.com/goserg/chessleague/internal/domain"
	"github.com/goserg/chessleague/internal/rating"
)

var (
	ErrDuplicatePlayer = errors.New("duplicate player id")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrAlreadyStaged   = errors.New("period already staged")
	ErrNotStaged       = errors.New("commit without staged period")
	ErrNoSuchPeriod    = errors.New("period not processed")
	ErrFinished        = errors.New("all periods processed")
)

// Report aggregates the recoverable anomalies and the outcome tallies
// of a run.
type Report struct {
	ProcessedGames int
	DroppedGames   []domain.Game
	ReplayedGames  int
	DoubleStaged   int

	WinsA int
	WinsB int
	Draws int
}

// League owns the roster and the game log and drives the per-period
// simultaneous rating update.
type League struct {
	log *logrus.Logger
	cs  rating.Constants

	players map[string]*Player
	// roster holds the players in id order so that staging, committing
	// and tie-breaking are deterministic.
	roster []*Player

	games   []*Game
	periods []time.Time
	// periodIndex maps a date to its position in periods.
	periodIndex map[time.Time]int

	processed int
	report    Report
	// perPeriodGames[i] is the number of games processed in period i.
	perPeriodGames []int
}

// New builds a league from a roster and the full game log. Duplicate
// player ids are a fatal configuration error. Games referencing an
// unknown player id are dropped and reported, the rest of the log
// stands.
func New(cs rating.Constants, roster []domain.Player, games []domain.Game, log *logrus.Logger) (*League, error) {
	if err := cs.Validate(); err != nil {
		return nil, err
	}
	l := League{
		log:         log,
		cs:          cs,
		players:     make(map[string]*Player, len(roster)),
		periodIndex: make(map[time.Time]int),
	}
	for _, p := range roster {
		if _, ok := l.players[p.ID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePlayer, p.ID)
		}
		player := newPlayer(p.ID, p.Name, &l.cs)
		l.players[p.ID] = player
		l.roster = append(l.roster, player)
	}
	sort.Slice(l.roster, func(i, j int) bool {
		return l.roster[i].id < l.roster[j].id
	})

	dates := mapset.NewThreadUnsafeSet[time.Time]()
	for _, rec := range games {
		a, okA := l.players[rec.PlayerA]
		b, okB := l.players[rec.PlayerB]
		if !okA || !okB {
			l.report.DroppedGames = append(l.report.DroppedGames, rec)
			log.WithFields(logrus.Fields{
				"game":     rec.ID,
				"player_a": rec.PlayerA,
				"player_b": rec.PlayerB,
			}).Warn("game references unknown player, dropped")
			continue
		}
		g := newGame(rec.ID, a, b, rec.PlayedAt, rec.Outcome)
		l.games = append(l.games, g)
		dates.Add(g.date)
	}

	l.periods = dates.ToSlice()
	sort.Slice(l.periods, func(i, j int) bool {
		return l.periods[i].Before(l.periods[j])
	})
	for i, d := range l.periods {
		l.periodIndex[d] = i
	}
	l.perPeriodGames = make([]int, len(l.periods))
	return &l, nil
}

// Run processes every remaining period in chronological order.
func (l *League) Run() error {
	for l.processed < len(l.periods) {
		if err := l.ProcessNext(); err != nil {
			return err
		}
	}
	return nil
}

// ProcessNext processes the earliest unprocessed period: it marks the
// period's games played and registers them on both participants, then
// stages every player in the league, then commits every player. No
// staging reads a post-period value, and no leaderboard for the period
// is readable before the commit barrier completes.
func (l *League) ProcessNext() error {
	if l.processed >= len(l.periods) {
		return ErrFinished
	}
	date := l.periods[l.processed]

	for _, g := range l.games {
		if !g.date.Equal(date) {
			continue
		}
		if !g.markPlayed() {
			l.report.ReplayedGames++
			l.log.WithField("game", g.id).Warn("game already played, ignored")
			continue
		}
		g.a.RegisterGame(g)
		g.b.RegisterGame(g)
		l.report.ProcessedGames++
		l.perPeriodGames[l.processed]++
		switch g.outcome {
		case domain.OutcomeWinA:
			l.report.WinsA++
		case domain.OutcomeWinB:
			l.report.WinsB++
		default:
			l.report.Draws++
		}
	}

	idle := func(last time.Time) int {
		return l.processed - l.periodIndex[last]
	}
	for _, p := range l.roster {
		err := p.StagePeriod(date, idle)
		if errors.Is(err, ErrAlreadyStaged) {
			l.report.DoubleStaged++
			l.log.WithField("player", p.id).Warn("period staged twice, ignored")
			continue
		}
		if err != nil {
			return fmt.Errorf("period %d: %w", l.processed, err)
		}
	}
	for _, p := range l.roster {
		if err := p.CommitPeriod(); err != nil {
			return fmt.Errorf("period %d: %w", l.processed, err)
		}
	}
	l.processed++
	return nil
}

// Processed returns the number of committed periods.
func (l *League) Processed() int {
	return l.processed
}

// PeriodDates returns the ascending distinct dates of the game log.
func (l *League) PeriodDates() []time.Time {
	out := make([]time.Time, len(l.periods))
	copy(out, l.periods)
	return out
}

// GamesIn returns the number of games processed in the given period.
func (l *League) GamesIn(period int) (int, error) {
	if period < 0 || period >= l.processed {
		return 0, fmt.Errorf("%w: %d", ErrNoSuchPeriod, period)
	}
	return l.perPeriodGames[period], nil
}

// Leaderboard returns every player's snapshot after the given
// committed period, sorted by rating descending with ties broken by
// id.
func (l *League) Leaderboard(asOf int) ([]domain.Player, error) {
	if asOf < 0 || asOf >= l.processed {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchPeriod, asOf)
	}
	date := l.periods[asOf]
	out := make([]domain.Player, 0, len(l.roster))
	for _, p := range l.roster {
		out = append(out, domain.Player{
			ID:           p.id,
			Name:         p.name,
			Rating:       p.ratingAt(asOf + 1),
			Deviation:    p.deviationAt(asOf + 1),
			RatingChange: p.ratingAt(asOf+1) - p.ratingAt(asOf),
			GamesPlayed:  p.gamesPlayedBefore(date),
			GameDays:     p.gameDays(date),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].ID < out[j].ID
	})
	for i := range out {
		out[i].RatingRank = i + 1
	}
	return out, nil
}

// History returns the committed rating history of a player, starting
// with the initial rating.
func (l *League) History(id string) ([]float64, error) {
	p, ok := l.players[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPlayerNotFound, id)
	}
	return p.History(), nil
}

// Games returns the processed view of the game log, dropped games
// excluded.
func (l *League) Games() []domain.Game {
	out := make([]domain.Game, 0, len(l.games))
	for _, g := range l.games {
		out = append(out, g.snapshot())
	}
	return out
}

// Report returns the anomaly and outcome summary accumulated so far.
func (l *League) Report() Report {
	return l.report
}
