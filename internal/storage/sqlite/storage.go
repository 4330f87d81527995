package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"

	"github.com/goserg/chessleague/gen/model"
	"github.com/goserg/chessleague/gen/table"
	"github.com/goserg/chessleague/internal/domain"
	"github.com/goserg/chessleague/internal/storage"
)

type Storage struct {
	db *sql.DB
}

var _ storage.PlayerStorage = (*Storage)(nil)
var _ storage.GameStorage = (*Storage)(nil)

func New(path string) (*Storage, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?cache=shared")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	err = db.Ping()
	if err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

func (s *Storage) DB() *sql.DB {
	return s.db
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) ListPlayers() ([]domain.Player, error) {
	var players []model.Players
	err := table.Players.
		SELECT(table.Players.AllColumns).
		FROM(table.Players).
		ORDER_BY(table.Players.ID.ASC()).
		Query(s.db, &players)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return convertPlayersToDomain(players), nil
}

func (s *Storage) Get(id string) (domain.Player, error) {
	var player model.Players
	err := table.Players.
		SELECT(table.Players.AllColumns).
		FROM(table.Players).
		WHERE(table.Players.ID.EQ(sqlite.String(id))).
		Query(s.db, &player)
	if errors.Is(err, qrm.ErrNoRows) {
		return domain.Player{}, fmt.Errorf("player %q: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return domain.Player{}, fmt.Errorf("get player: %w", err)
	}
	return convertPlayerToDomain(player), nil
}

func (s *Storage) Add(player domain.Player) (domain.Player, error) {
	_, err := table.Players.
		INSERT(table.Players.AllColumns).
		MODEL(convertPlayerFromDomain(player)).
		Exec(s.db)
	if err != nil {
		return domain.Player{}, fmt.Errorf("add player: %w", err)
	}
	return player, nil
}

func (s *Storage) ImportPlayers(players []domain.Player) error {
	_, err := table.Players.DELETE().WHERE(sqlite.Bool(true)).Exec(s.db)
	if err != nil {
		return fmt.Errorf("clear players: %w", err)
	}
	for _, player := range players {
		_, err := s.Add(player)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Storage) ListGames() ([]domain.Game, error) {
	var games []model.Games
	err := table.Games.
		SELECT(table.Games.AllColumns).
		FROM(table.Games).
		ORDER_BY(table.Games.PlayedAt.ASC(), table.Games.CreatedAt.ASC()).
		Query(s.db, &games)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return convertGamesToDomain(games)
}

func (s *Storage) Create(game domain.Game) (domain.Game, error) {
	_, err := table.Games.
		INSERT(table.Games.AllColumns).
		MODEL(convertGameFromDomain(game)).
		Exec(s.db)
	if err != nil {
		return domain.Game{}, fmt.Errorf("create game: %w", err)
	}
	return game, nil
}

func (s *Storage) ImportGames(games []domain.Game) error {
	_, err := table.Games.DELETE().WHERE(sqlite.Bool(true)).Exec(s.db)
	if err != nil {
		return fmt.Errorf("clear games: %w", err)
	}
	for _, game := range games {
		_, err := s.Create(game)
		if err != nil {
			return err
		}
	}
	return nil
}
