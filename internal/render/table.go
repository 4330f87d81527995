// Package render writes the per-period league tables and the rating
// chart.
package render

import (
	"fmt"
	"io"

	"github.com/goserg/chessleague/internal/domain"
	"github.com/goserg/chessleague/internal/league"
)

const rule = "---------------------------------------------------"

// Table writes one period's leaderboard. The glicko layout carries the
// deviation column, the classic one does not.
type Table struct {
	Glicko bool
}

func (t Table) Write(w io.Writer, day int, date string, gameCount int, players []domain.Player) {
	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "  Day %d, %-30s %d games\n\n", day, date+":", gameCount)
	if t.Glicko {
		fmt.Fprintf(w, "%-16s %12s %8s %6s\n", "Player", "Rating", "RD", "Days")
	} else {
		fmt.Fprintf(w, "%-16s %12s %6s\n", "Player", "Rating", "Days")
	}
	fmt.Fprintln(w, rule)
	for _, p := range players {
		ratings := fmt.Sprintf("%.0f (%+.0f)", p.Rating, p.RatingChange)
		if t.Glicko {
			fmt.Fprintf(w, "%-16s %12s %8.0f %6d\n", p.Name, ratings, p.Deviation, p.GameDays)
		} else {
			fmt.Fprintf(w, "%-16s %12s %6d\n", p.Name, ratings, p.GameDays)
		}
	}
	fmt.Fprintln(w, rule)
}

// Summary writes the whole-run outcome shares and the recoverable
// anomalies.
func Summary(w io.Writer, rep league.Report) {
	fmt.Fprintln(w, rule)
	total := rep.WinsA + rep.WinsB + rep.Draws
	if total > 0 {
		fmt.Fprintf(w, "%.2f%% white winning\n", float64(rep.WinsA)/float64(total)*100)
		fmt.Fprintf(w, "%.2f%% black winning\n", float64(rep.WinsB)/float64(total)*100)
		fmt.Fprintf(w, "%.2f%% draws in\n", float64(rep.Draws)/float64(total)*100)
		fmt.Fprintf(w, "%d games\n", total)
	}
	if len(rep.DroppedGames) > 0 {
		fmt.Fprintf(w, "%d game(s) dropped, unknown players:\n", len(rep.DroppedGames))
		for _, g := range rep.DroppedGames {
			fmt.Fprintf(w, "  %s vs %s on %s\n", g.PlayerA, g.PlayerB, g.PlayedAt.Format("2006-01-02"))
		}
	}
	if rep.ReplayedGames > 0 {
		fmt.Fprintf(w, "%d replayed game(s) ignored\n", rep.ReplayedGames)
	}
	if rep.DoubleStaged > 0 {
		fmt.Fprintf(w, "%d double staging(s) ignored\n", rep.DoubleStaged)
	}
}
