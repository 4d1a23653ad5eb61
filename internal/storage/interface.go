package storage

import (
	"context"

	"github.com/mcoot/rpgroster/internal/model"
	"github.com/mcoot/rpgroster/internal/query"
)

// Storage defines the interface for player persistence
type Storage interface {
	// SavePlayer inserts the player when its ID is zero, assigning a fresh ID,
	// and otherwise replaces the stored record with that ID. The stored record is returned.
	SavePlayer(ctx context.Context, player *model.Player) (*model.Player, error)
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	PlayerExists(ctx context.Context, id model.PlayerID) (bool, error)
	// DeletePlayer removes the record. Deleting an absent ID is not an error.
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// QueryPlayers returns one ordered page of the players matching q.Criteria
	QueryPlayers(ctx context.Context, q query.Query) ([]*model.Player, error)
	// CountPlayers returns the number of players matching c, ignoring paging
	CountPlayers(ctx context.Context, c query.Criteria) (int, error)

	Close() error
}
