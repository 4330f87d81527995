package parse

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goserg/chessleague/internal/domain"
)

func TestNames(t *testing.T) {
	input := `# short and full names
AA  Alice
BB  Bob Builder

CC  Carol
`
	players, err := Names(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, players, 3)
	assert.Equal(t, "AA", players[0].ID)
	assert.Equal(t, "Alice", players[0].Name)
	assert.Equal(t, "Bob Builder", players[1].Name)
	assert.Equal(t, "Carol", players[2].Name)
}

func TestNamesMalformed(t *testing.T) {
	_, err := Names(strings.NewReader("AA\n"))
	assert.Error(t, err)
}

func TestGames(t *testing.T) {
	input := `# a short season
20230301
AA BB 1 0
AA CC 0.5 0.5
20230305
BB CC 0 1
`
	games, err := Games(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, games, 3)

	first := games[0]
	assert.Equal(t, "AA", first.PlayerA)
	assert.Equal(t, "BB", first.PlayerB)
	assert.Equal(t, domain.OutcomeWinA, first.Outcome)
	assert.Equal(t, time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC), first.PlayedAt)

	assert.Equal(t, domain.OutcomeDraw, games[1].Outcome)

	last := games[2]
	assert.Equal(t, domain.OutcomeWinB, last.Outcome)
	assert.Equal(t, time.Date(2023, time.March, 5, 0, 0, 0, 0, time.UTC), last.PlayedAt)

	// Every parsed game gets a distinct id.
	assert.NotEqual(t, games[0].ID, games[1].ID)
}

func TestGamesErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "game before date header", input: "AA BB 1 0\n"},
		{name: "bad date", input: "2023XX01\n"},
		{name: "bad result", input: "20230301\nAA BB 1 x\n"},
		{name: "wrong field count", input: "20230301\nAA BB 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Games(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}
