package roster

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mcoot/rpgroster/internal/model"
	"github.com/mcoot/rpgroster/internal/query"
)

// PlayerService is the subset of the player service used for importing
type PlayerService interface {
	Create(ctx context.Context, candidate model.PlayerPatch) (*model.Player, error)
	Count(ctx context.Context, c query.Criteria) (int, error)
}

// Importer creates players from candidates
type Importer struct {
	players PlayerService
	logger  *slog.Logger
}

// NewImporter creates a new importer
func NewImporter(players PlayerService, logger *slog.Logger) *Importer {
	return &Importer{players: players, logger: logger}
}

// Import creates every candidate in order, stopping at the first failure.
// It returns the number of players created.
func (im *Importer) Import(ctx context.Context, candidates []model.PlayerPatch) (int, error) {
	for i, c := range candidates {
		if _, err := im.players.Create(ctx, c); err != nil {
			return i, fmt.Errorf("import candidate %d: %w", i, err)
		}
	}
	return len(candidates), nil
}

// ImportIfEmpty imports candidates only when the store holds no players.
// It reports how many players were created.
func (im *Importer) ImportIfEmpty(ctx context.Context, candidates []model.PlayerPatch) (int, error) {
	existing, err := im.players.Count(ctx, query.Criteria{})
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		im.logger.InfoContext(ctx, "store not empty, skipping seed", slog.Int("players", existing))
		return 0, nil
	}

	n, err := im.Import(ctx, candidates)
	if err != nil {
		return n, err
	}
	im.logger.InfoContext(ctx, "seeded roster", slog.Int("players", n))
	return n, nil
}
