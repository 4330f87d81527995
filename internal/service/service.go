package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/goserg/chessleague/internal/cache/mem"
	"github.com/goserg/chessleague/internal/domain"
	"github.com/goserg/chessleague/internal/league"
	"github.com/goserg/chessleague/internal/rating"
	"github.com/goserg/chessleague/internal/storage"
)

var ErrNotComputed = errors.New("ratings not computed yet")

// RatingService loads the roster and game log from storage, runs the
// league pipeline and serves the results.
type RatingService struct {
	log *logrus.Logger
	cs  rating.Constants

	playerStorage storage.PlayerStorage
	gameStorage   storage.GameStorage

	cache  *mem.Cache
	league *league.League

	roster []domain.Player
	games  []domain.Game
}

func New(cs rating.Constants, playerStorage storage.PlayerStorage, gameStorage storage.GameStorage, log *logrus.Logger) *RatingService {
	return &RatingService{
		log:           log,
		cs:            cs,
		playerStorage: playerStorage,
		gameStorage:   gameStorage,
		cache:         mem.New(),
	}
}

// Rebuild reloads the roster and game log and replays every period.
func (s *RatingService) Rebuild() error {
	roster, err := s.playerStorage.ListPlayers()
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}
	games, err := s.gameStorage.ListGames()
	if err != nil {
		return fmt.Errorf("load games: %w", err)
	}
	l, err := league.New(s.cs, roster, games, s.log)
	if err != nil {
		return err
	}
	if err := l.Run(); err != nil {
		return err
	}
	s.roster = roster
	s.games = games
	s.league = l

	s.cache.Invalidate()
	if l.Processed() > 0 {
		ratings, err := l.Leaderboard(l.Processed() - 1)
		if err != nil {
			return err
		}
		s.cache.Update(ratings)
	}
	s.log.WithFields(logrus.Fields{
		"mode":    s.cs.Mode,
		"players": len(roster),
		"games":   l.Report().ProcessedGames,
		"periods": l.Processed(),
	}).Info("ratings computed")
	return nil
}

func (s *RatingService) Glicko() bool {
	return s.cs.Mode == rating.ModeGlicko
}

// GetRatings returns the leaderboard after the last period.
func (s *RatingService) GetRatings() []domain.Player {
	return s.cache.GetRatings()
}

// GetRatingsAt returns the leaderboard after the given period.
func (s *RatingService) GetRatingsAt(period int) ([]domain.Player, error) {
	if s.league == nil {
		return nil, ErrNotComputed
	}
	return s.league.Leaderboard(period)
}

func (s *RatingService) Get(id string) (domain.Player, error) {
	if player, ok := s.cache.GetPlayerByName(id); ok {
		return player, nil
	}
	return s.playerStorage.Get(id)
}

func (s *RatingService) GetByName(name string) (domain.Player, error) {
	player, ok := s.cache.GetPlayerByName(name)
	if !ok {
		return domain.Player{}, fmt.Errorf("player %q: %w", name, storage.ErrNotFound)
	}
	return player, nil
}

// History returns a player's rating history, initial rating first.
func (s *RatingService) History(id string) ([]float64, error) {
	if s.league == nil {
		return nil, ErrNotComputed
	}
	return s.league.History(id)
}

// PlayerCard joins a player's snapshot with its rating history for the
// player page.
func (s *RatingService) PlayerCard(id string) (domain.PlayerCard, error) {
	player, err := s.Get(id)
	if err != nil {
		return domain.PlayerCard{}, err
	}
	history, err := s.History(player.ID)
	if err != nil {
		return domain.PlayerCard{}, err
	}
	return domain.PlayerCard{
		Player:  player,
		History: history,
		Dates:   s.PeriodDates(),
	}, nil
}

func (s *RatingService) PeriodDates() []time.Time {
	if s.league == nil {
		return nil
	}
	return s.league.PeriodDates()
}

func (s *RatingService) GamesIn(period int) (int, error) {
	if s.league == nil {
		return 0, ErrNotComputed
	}
	return s.league.GamesIn(period)
}

func (s *RatingService) Report() league.Report {
	if s.league == nil {
		return league.Report{}
	}
	return s.league.Report()
}

// GetGames returns the processed game log, newest first.
func (s *RatingService) GetGames() []domain.Game {
	if s.league == nil {
		return nil
	}
	games := s.league.Games()
	reverse(games)
	return games
}

func reverse(games []domain.Game) {
	for i, j := 0, len(games)-1; i < j; i, j = i+1, j-1 {
		games[i], games[j] = games[j], games[i]
	}
}

const exportVersion = 1

type export struct {
	Version int
	Players []domain.Player
	Games   []domain.Game
}

// Export serializes the roster and game log.
func (s *RatingService) Export() ([]byte, error) {
	exportData := export{
		Version: exportVersion,
		Players: s.roster,
		Games:   s.games,
	}
	data, err := json.Marshal(exportData)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Import replaces the stored roster and game log and rebuilds.
func (s *RatingService) Import(data []byte) error {
	var importData export
	err := json.Unmarshal(data, &importData)
	if err != nil {
		return err
	}
	if importData.Version != exportVersion {
		return errors.New("invalid export file version")
	}
	err = s.playerStorage.ImportPlayers(importData.Players)
	if err != nil {
		return err
	}
	err = s.gameStorage.ImportGames(importData.Games)
	if err != nil {
		return err
	}
	return s.Rebuild()
}
