// Package file serves a roster and game log straight from the
// plain-text names and games files. It is read only; imports go to the
// sqlite storage.
package file

import (
	"errors"
	"fmt"

	"github.com/goserg/chessleague/internal/domain"
	"github.com/goserg/chessleague/internal/parse"
	"github.com/goserg/chessleague/internal/storage"
)

var ErrReadOnly = errors.New("file storage is read only")

type Storage struct {
	namesPath string
	gamesPath string
}

var _ storage.PlayerStorage = (*Storage)(nil)
var _ storage.GameStorage = (*Storage)(nil)

func New(namesPath, gamesPath string) *Storage {
	return &Storage{
		namesPath: namesPath,
		gamesPath: gamesPath,
	}
}

func (s *Storage) ListPlayers() ([]domain.Player, error) {
	return parse.NamesFile(s.namesPath)
}

func (s *Storage) Get(id string) (domain.Player, error) {
	players, err := s.ListPlayers()
	if err != nil {
		return domain.Player{}, err
	}
	for _, player := range players {
		if player.ID == id {
			return player, nil
		}
	}
	return domain.Player{}, fmt.Errorf("player %q: %w", id, storage.ErrNotFound)
}

func (s *Storage) Add(domain.Player) (domain.Player, error) {
	return domain.Player{}, ErrReadOnly
}

func (s *Storage) ImportPlayers([]domain.Player) error {
	return ErrReadOnly
}

func (s *Storage) ListGames() ([]domain.Game, error) {
	return parse.GamesFile(s.gamesPath)
}

func (s *Storage) Create(domain.Game) (domain.Game, error) {
	return domain.Game{}, ErrReadOnly
}

func (s *Storage) ImportGames([]domain.Game) error {
	return ErrReadOnly
}
