package mem

import (
	"sync"

	"github.com/goserg/chessleague/internal/domain"
	"github.com/goserg/chessleague/internal/normalize"
)

// Cache holds the last computed leaderboard for name lookups by the
// web and bot surfaces.
type Cache struct {
	mu      sync.RWMutex
	valid   bool
	ratings []domain.Player
	byName  map[string]domain.Player
}

func New() *Cache {
	return &Cache{
		byName: make(map[string]domain.Player),
	}
}

// Update replaces the cached leaderboard. Players are expected in rank
// order.
func (c *Cache) Update(players []domain.Player) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ratings = make([]domain.Player, len(players))
	copy(c.ratings, players)
	c.byName = make(map[string]domain.Player, len(players))
	for i := range players {
		c.byName[normalize.Name(players[i].Name)] = players[i]
		c.byName[normalize.Name(players[i].ID)] = players[i]
	}
	c.valid = true
}

func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
}

func (c *Cache) Valid() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.valid
}

// GetPlayerByName looks a player up by display name or id, case
// insensitively.
func (c *Cache) GetPlayerByName(name string) (domain.Player, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	player, ok := c.byName[normalize.Name(name)]
	return player, ok
}

// GetRatings returns the cached leaderboard in rank order.
func (c *Cache) GetRatings() []domain.Player {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Player, len(c.ratings))
	copy(out, c.ratings)
	return out
}
