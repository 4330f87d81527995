package storage

import (
	"errors"

	"github.com/goserg/chessleague/internal/domain"
)

var ErrNotFound = errors.New("not found")

type PlayerStorage interface {
	ListPlayers() ([]domain.Player, error)
	Get(id string) (domain.Player, error)
	Add(domain.Player) (domain.Player, error)

	ImportPlayers([]domain.Player) error
}

type GameStorage interface {
	ListGames() ([]domain.Game, error)
	Create(domain.Game) (domain.Game, error)

	ImportGames([]domain.Game) error
}
