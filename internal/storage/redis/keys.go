package redis

import (
	"fmt"

	"github.com/mcoot/rpgroster/internal/model"
)

// keys builds the Redis key names under a prefix
type keys struct {
	prefix string
}

// player returns the key holding a Player record
func (k keys) player(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%d", k.prefix, id)
}

// playerIndex returns the key of the ZSET of stored player IDs, scored by ID
func (k keys) playerIndex() string {
	return fmt.Sprintf("%s:idx:players", k.prefix)
}

// playerSequence returns the key of the ID counter
func (k keys) playerSequence() string {
	return fmt.Sprintf("%s:seq:player", k.prefix)
}
