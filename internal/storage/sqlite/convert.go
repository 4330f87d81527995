package sqlite

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goserg/chessleague/gen/model"
	"github.com/goserg/chessleague/internal/domain"
)

func convertPlayerToDomain(player model.Players) domain.Player {
	return domain.Player{
		ID:           player.ID,
		Name:         player.Name,
		RegisteredAt: player.CreatedAt,
	}
}

func convertPlayersToDomain(players []model.Players) []domain.Player {
	converted := make([]domain.Player, 0, len(players))
	for _, player := range players {
		converted = append(converted, convertPlayerToDomain(player))
	}
	return converted
}

func convertPlayerFromDomain(player domain.Player) model.Players {
	createdAt := player.RegisteredAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return model.Players{
		ID:        player.ID,
		Name:      player.Name,
		CreatedAt: createdAt,
	}
}

func convertGamesToDomain(games []model.Games) ([]domain.Game, error) {
	converted := make([]domain.Game, 0, len(games))
	for _, game := range games {
		id, err := uuid.Parse(game.ID)
		if err != nil {
			return nil, fmt.Errorf("game id %q: %w", game.ID, err)
		}
		converted = append(converted, domain.Game{
			ID:       id,
			PlayerA:  game.PlayerA,
			PlayerB:  game.PlayerB,
			Outcome:  domain.Outcome(game.Outcome),
			PlayedAt: game.PlayedAt,
		})
	}
	return converted, nil
}

func convertGameFromDomain(game domain.Game) model.Games {
	return model.Games{
		ID:        game.ID.String(),
		PlayerA:   game.PlayerA,
		PlayerB:   game.PlayerB,
		Outcome:   int32(game.Outcome),
		PlayedAt:  game.PlayedAt,
		CreatedAt: time.Now(),
	}
}
