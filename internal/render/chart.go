package render

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/goserg/chessleague/internal/domain"
)

// Chart renders the rating history of every player as one PNG, one
// series per player, labeled with the final rating and the last
// change. histories is keyed by player id; the x axis is the period
// index.
func Chart(w io.Writer, players []domain.Player, histories map[string][]float64) error {
	graph := chart.Chart{
		Width:  1280,
		Height: 720,
		XAxis: chart.XAxis{
			Name: "Period",
		},
		YAxis: chart.YAxis{
			Name: "Rating",
		},
	}
	for _, p := range players {
		history := histories[p.ID]
		if len(history) == 0 {
			continue
		}
		xs := make([]float64, len(history))
		for i := range history {
			xs[i] = float64(i)
		}
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name:    fmt.Sprintf("%.0f (%+.0f): %s", p.Rating, p.RatingChange, p.Name),
			XValues: xs,
			YValues: history,
		})
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.PNG, w)
}
