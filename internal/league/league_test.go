package league

import (
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goserg/chessleague/internal/domain"
	"github.com/goserg/chessleague/internal/rating"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func day(n int) time.Time {
	return time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func roster(ids ...string) []domain.Player {
	players := make([]domain.Player, 0, len(ids))
	for _, id := range ids {
		players = append(players, domain.Player{ID: id, Name: "Player " + id})
	}
	return players
}

func game(a, b string, outcome domain.Outcome, d time.Time) domain.Game {
	return domain.Game{
		ID:       uuid.New(),
		PlayerA:  a,
		PlayerB:  b,
		Outcome:  outcome,
		PlayedAt: d,
	}
}

func classicConstants() rating.Constants {
	return rating.Default()
}

func glickoConstants() rating.Constants {
	cs := rating.Default()
	cs.Mode = rating.ModeGlicko
	return cs
}

func TestClassicDecisiveGame(t *testing.T) {
	l, err := New(classicConstants(), roster("AA", "BB"), []domain.Game{
		game("AA", "BB", domain.OutcomeWinA, day(0)),
	}, testLogger())
	require.NoError(t, err)
	require.NoError(t, l.Run())

	board, err := l.Leaderboard(0)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, "AA", board[0].ID)
	assert.InDelta(t, 1510, board[0].Rating, 1e-9)
	assert.InDelta(t, 10, board[0].RatingChange, 1e-9)
	assert.Equal(t, 1, board[0].RatingRank)
	assert.Equal(t, "BB", board[1].ID)
	assert.InDelta(t, 1490, board[1].Rating, 1e-9)
	assert.InDelta(t, -10, board[1].RatingChange, 1e-9)
	assert.Equal(t, 2, board[1].RatingRank)
}

func TestClassicDraw(t *testing.T) {
	l, err := New(classicConstants(), roster("AA", "BB"), []domain.Game{
		game("AA", "BB", domain.OutcomeDraw, day(0)),
	}, testLogger())
	require.NoError(t, err)
	require.NoError(t, l.Run())

	board, err := l.Leaderboard(0)
	require.NoError(t, err)
	for _, p := range board {
		assert.InDelta(t, 1500, p.Rating, 1e-9)
	}
	// Equal ratings, ties broken by id.
	assert.Equal(t, "AA", board[0].ID)
	assert.Equal(t, "BB", board[1].ID)
}

func TestClassicRatingSumPreserved(t *testing.T) {
	games := []domain.Game{
		game("AA", "BB", domain.OutcomeWinA, day(0)),
		game("CC", "DD", domain.OutcomeWinB, day(0)),
		game("AA", "CC", domain.OutcomeDraw, day(1)),
		game("BB", "DD", domain.OutcomeWinA, day(2)),
	}
	l, err := New(classicConstants(), roster("AA", "BB", "CC", "DD"), games, testLogger())
	require.NoError(t, err)
	require.NoError(t, l.Run())

	for period := 0; period < l.Processed(); period++ {
		board, err := l.Leaderboard(period)
		require.NoError(t, err)
		var sum float64
		for _, p := range board {
			sum += p.Rating
		}
		assert.InDelta(t, 4*1500, sum, 1e-9, "period %d", period)
	}
}

func TestGlickoIdleDeviationReturnsToStart(t *testing.T) {
	games := []domain.Game{game("AA", "BB", domain.OutcomeWinA, day(0))}
	for i := 1; i <= 11; i++ {
		games = append(games, game("BB", "CC", domain.OutcomeDraw, day(i)))
	}
	l, err := New(glickoConstants(), roster("AA", "BB", "CC"), games, testLogger())
	require.NoError(t, err)
	require.NoError(t, l.Run())

	a := l.players["AA"]
	assert.Less(t, a.deviationAt(1), 350.0, "deviation must shrink in the played period")
	assert.InDelta(t, 350, a.Deviation(), 1e-9, "deviation must return to the starting value")
	for i := 2; i < len(a.deviations); i++ {
		assert.GreaterOrEqual(t, a.deviationAt(i), a.deviationAt(i-1),
			"idle deviation must not shrink")
	}
}

func TestGlickoDecayPenaltyBounded(t *testing.T) {
	cs := glickoConstants()
	cs.PenaltyRate = 0.05
	cs.PenaltyGrowth = 0.3
	cs.MaxPenalty = 15

	games := []domain.Game{game("AA", "BB", domain.OutcomeWinA, day(0))}
	for i := 1; i <= 8; i++ {
		games = append(games, game("BB", "CC", domain.OutcomeDraw, day(i)))
	}
	l, err := New(cs, roster("AA", "BB", "CC"), games, testLogger())
	require.NoError(t, err)
	require.NoError(t, l.Run())

	a := l.players["AA"]
	for i := 2; i < len(a.ratings); i++ {
		drop := a.ratingAt(i-1) - a.ratingAt(i)
		assert.GreaterOrEqual(t, drop, 0.0)
		assert.LessOrEqual(t, drop, cs.MaxPenalty+1e-9)
		assert.GreaterOrEqual(t, a.ratingAt(i), cs.PenaltyCutoff)
	}
}

func TestUnknownPlayerGameDropped(t *testing.T) {
	l, err := New(classicConstants(), roster("AA", "BB"), []domain.Game{
		game("AA", "BB", domain.OutcomeWinA, day(0)),
		game("AA", "ZZ", domain.OutcomeWinB, day(0)),
	}, testLogger())
	require.NoError(t, err)
	require.NoError(t, l.Run())

	rep := l.Report()
	require.Len(t, rep.DroppedGames, 1)
	assert.Equal(t, "ZZ", rep.DroppedGames[0].PlayerB)
	assert.Equal(t, 1, rep.ProcessedGames)
}

func TestDuplicatePlayerID(t *testing.T) {
	_, err := New(classicConstants(), roster("AA", "AA"), nil, testLogger())
	assert.ErrorIs(t, err, ErrDuplicatePlayer)
}

func TestInvalidConstants(t *testing.T) {
	cs := classicConstants()
	cs.DeviationFloor = -5
	_, err := New(cs, roster("AA"), nil, testLogger())
	assert.ErrorIs(t, err, rating.ErrBadDeviationFloor)
}

func TestPeriodsSortedFromUnsortedLog(t *testing.T) {
	games := []domain.Game{
		game("AA", "BB", domain.OutcomeWinA, day(5)),
		game("AA", "BB", domain.OutcomeWinB, day(1)),
		game("AA", "BB", domain.OutcomeDraw, day(3)),
		game("AA", "BB", domain.OutcomeDraw, day(1)),
	}
	l, err := New(classicConstants(), roster("AA", "BB"), games, testLogger())
	require.NoError(t, err)

	dates := l.PeriodDates()
	require.Len(t, dates, 3)
	for i := 1; i < len(dates); i++ {
		assert.True(t, dates[i-1].Before(dates[i]), "periods must be strictly ascending")
	}

	require.NoError(t, l.Run())
	assert.Equal(t, 3, l.Processed())
	assert.ErrorIs(t, l.ProcessNext(), ErrFinished)
}

func TestCommitIsAtomic(t *testing.T) {
	l, err := New(classicConstants(), roster("AA", "BB"), []domain.Game{
		game("AA", "BB", domain.OutcomeWinA, day(0)),
	}, testLogger())
	require.NoError(t, err)

	date := l.periods[0]
	for _, g := range l.games {
		require.True(t, g.markPlayed())
		g.a.RegisterGame(g)
		g.b.RegisterGame(g)
	}
	idle := func(time.Time) int { return 0 }
	for _, p := range l.roster {
		require.NoError(t, p.StagePeriod(date, idle))
	}

	// All staged, nothing committed: queries still see pre-period state.
	for _, id := range []string{"AA", "BB"} {
		history, err := l.History(id)
		require.NoError(t, err)
		assert.Equal(t, []float64{1500}, history)
	}

	for _, p := range l.roster {
		require.NoError(t, p.CommitPeriod())
	}
	historyA, err := l.History("AA")
	require.NoError(t, err)
	assert.Equal(t, []float64{1500, 1510}, historyA)
	historyB, err := l.History("BB")
	require.NoError(t, err)
	assert.Equal(t, []float64{1500, 1490}, historyB)
}

func TestDoubleStageReported(t *testing.T) {
	l, err := New(classicConstants(), roster("AA"), nil, testLogger())
	require.NoError(t, err)

	p := l.players["AA"]
	idle := func(time.Time) int { return 0 }
	require.NoError(t, p.StagePeriod(day(0), idle))
	assert.ErrorIs(t, p.StagePeriod(day(0), idle), ErrAlreadyStaged)
	require.NoError(t, p.CommitPeriod())
	assert.Equal(t, []float64{1500, 1500}, p.History())
}

func TestCommitWithoutStage(t *testing.T) {
	l, err := New(classicConstants(), roster("AA"), nil, testLogger())
	require.NoError(t, err)
	assert.ErrorIs(t, l.players["AA"].CommitPeriod(), ErrNotStaged)
}

func TestReplayedGameIgnored(t *testing.T) {
	l, err := New(classicConstants(), roster("AA", "BB"), []domain.Game{
		game("AA", "BB", domain.OutcomeWinA, day(0)),
	}, testLogger())
	require.NoError(t, err)

	require.True(t, l.games[0].markPlayed())
	require.NoError(t, l.Run())

	rep := l.Report()
	assert.Equal(t, 1, rep.ReplayedGames)
	assert.Equal(t, 0, rep.ProcessedGames)
	board, err := l.Leaderboard(0)
	require.NoError(t, err)
	for _, p := range board {
		assert.InDelta(t, 1500, p.Rating, 1e-9)
	}
}

func TestLeaderboardBeforeCommitRejected(t *testing.T) {
	l, err := New(classicConstants(), roster("AA", "BB"), []domain.Game{
		game("AA", "BB", domain.OutcomeWinA, day(0)),
	}, testLogger())
	require.NoError(t, err)

	_, err = l.Leaderboard(0)
	assert.ErrorIs(t, err, ErrNoSuchPeriod)
	require.NoError(t, l.Run())
	_, err = l.Leaderboard(1)
	assert.ErrorIs(t, err, ErrNoSuchPeriod)
}

func TestGlickoExpectedScoreAsymmetry(t *testing.T) {
	games := []domain.Game{
		// BB plays twice as much, its deviation drops faster.
		game("AA", "BB", domain.OutcomeDraw, day(0)),
		game("BB", "CC", domain.OutcomeDraw, day(0)),
	}
	l, err := New(glickoConstants(), roster("AA", "BB", "CC"), games, testLogger())
	require.NoError(t, err)
	require.NoError(t, l.Run())

	a := l.players["AA"]
	b := l.players["BB"]
	require.Less(t, b.Deviation(), a.Deviation())

	ea := a.ExpectedScore(b)
	eb := b.ExpectedScore(a)
	assert.Greater(t, ea, 0.0)
	assert.Less(t, ea, 1.0)
	// Equal ratings: both expectations are exactly one half regardless
	// of deviations, the asymmetry shows up off the diagonal.
	assert.InDelta(t, 0.5, ea, 1e-9)
	assert.InDelta(t, 0.5, eb, 1e-9)
}

func TestHistoryLengthsTrackPeriods(t *testing.T) {
	games := []domain.Game{
		game("AA", "BB", domain.OutcomeWinA, day(0)),
		game("AA", "BB", domain.OutcomeWinB, day(2)),
		game("AA", "BB", domain.OutcomeDraw, day(7)),
	}
	l, err := New(glickoConstants(), roster("AA", "BB", "CC"), games, testLogger())
	require.NoError(t, err)
	require.NoError(t, l.Run())

	for _, id := range []string{"AA", "BB", "CC"} {
		history, err := l.History(id)
		require.NoError(t, err)
		assert.Len(t, history, l.Processed()+1)
	}
	// CC never played: classic history would be flat, glicko applies
	// no change either since the penalty rate defaults to zero.
	historyC, err := l.History("CC")
	require.NoError(t, err)
	for _, r := range historyC {
		assert.InDelta(t, 1500, r, 1e-9)
	}
}

func TestGamesInAndSnapshots(t *testing.T) {
	games := []domain.Game{
		game("AA", "BB", domain.OutcomeWinA, day(0)),
		game("AA", "BB", domain.OutcomeWinA, day(0)),
		game("AA", "BB", domain.OutcomeWinB, day(1)),
	}
	l, err := New(classicConstants(), roster("AA", "BB"), games, testLogger())
	require.NoError(t, err)
	require.NoError(t, l.Run())

	n, err := l.GamesIn(0)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	n, err = l.GamesIn(1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	board, err := l.Leaderboard(0)
	require.NoError(t, err)
	for _, p := range board {
		assert.Equal(t, 2, p.GamesPlayed)
		assert.Equal(t, 1, p.GameDays)
	}
	board, err = l.Leaderboard(1)
	require.NoError(t, err)
	for _, p := range board {
		assert.Equal(t, 3, p.GamesPlayed)
		assert.Equal(t, 2, p.GameDays)
	}
}
