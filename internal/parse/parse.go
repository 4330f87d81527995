// Package parse reads the plain-text roster and game log formats.
//
// The names file holds one player per line, short id followed by the
// display name. The games file holds date header lines in YYYYMMDD
// form followed by game lines "idA idB scoreA scoreB"; the second
// score column decides the outcome: 0 means A won, 1 means B won,
// anything else is a draw. Lines starting with # are comments.
package parse

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goserg/chessleague/internal/domain"
)

const dateLayout = "20060102"

func Names(r io.Reader) ([]domain.Player, error) {
	var players []domain.Player
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 2 {
			return nil, fmt.Errorf("names line %d: want id and display name, got %q", line, text)
		}
		players = append(players, domain.Player{
			ID:   fields[0],
			Name: strings.Join(fields[1:], " "),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read names: %w", err)
	}
	return players, nil
}

func Games(r io.Reader) ([]domain.Game, error) {
	var games []domain.Game
	var date time.Time
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		switch len(fields) {
		case 1:
			d, err := time.Parse(dateLayout, fields[0])
			if err != nil {
				return nil, fmt.Errorf("games line %d: bad date %q: %w", line, fields[0], err)
			}
			date = d
		case 4:
			if date.IsZero() {
				return nil, fmt.Errorf("games line %d: game before any date header", line)
			}
			outcome, err := parseOutcome(fields[3])
			if err != nil {
				return nil, fmt.Errorf("games line %d: %w", line, err)
			}
			games = append(games, domain.Game{
				ID:       uuid.New(),
				PlayerA:  fields[0],
				PlayerB:  fields[1],
				Outcome:  outcome,
				PlayedAt: date,
			})
		default:
			return nil, fmt.Errorf("games line %d: unrecognized line %q", line, text)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read games: %w", err)
	}
	return games, nil
}

func parseOutcome(scoreB string) (domain.Outcome, error) {
	v, err := strconv.ParseFloat(scoreB, 64)
	if err != nil {
		return 0, fmt.Errorf("bad result %q: %w", scoreB, err)
	}
	switch v {
	case 0:
		return domain.OutcomeWinA, nil
	case 1:
		return domain.OutcomeWinB, nil
	default:
		return domain.OutcomeDraw, nil
	}
}

func NamesFile(path string) ([]domain.Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Names(f)
}

func GamesFile(path string) ([]domain.Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Games(f)
}
