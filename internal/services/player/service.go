// Package player implements the player record operations on top of a storage backend.
package player

import (
	"context"
	"log/slog"

	"github.com/mcoot/rpgroster/internal/model"
	"github.com/mcoot/rpgroster/internal/query"
	"github.com/mcoot/rpgroster/internal/services/validation"
	"github.com/mcoot/rpgroster/internal/storage"
)

// Service handles player record operations
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new player service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Create validates a candidate and stores it as a new player
func (s *Service) Create(ctx context.Context, candidate model.PlayerPatch) (*model.Player, error) {
	if err := validation.ValidateForCreate(candidate); err != nil {
		return nil, err
	}

	p := FromCandidate(candidate)
	saved, err := s.storage.SavePlayer(ctx, &p)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "player created", "player_id", saved.ID, "name", saved.Name)
	return saved, nil
}

// Get returns the player with the given ID
func (s *Service) Get(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return s.storage.GetPlayer(ctx, id)
}

// Update applies patch to the stored player. An empty patch returns the
// current record unchanged.
//
// The read and the write are separate storage calls; concurrent updates to the
// same player rely on the backend providing at least read-committed isolation.
func (s *Service) Update(ctx context.Context, id model.PlayerID, patch model.PlayerPatch) (*model.Player, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return s.storage.GetPlayer(ctx, id)
	}
	if err := validation.ValidateForUpdate(patch); err != nil {
		return nil, err
	}

	existing, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := Merge(*existing, patch)
	saved, err := s.storage.SavePlayer(ctx, &updated)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "player updated", "player_id", saved.ID)
	return saved, nil
}

// Delete removes the player with the given ID
func (s *Service) Delete(ctx context.Context, id model.PlayerID) error {
	if err := checkID(id); err != nil {
		return err
	}

	exists, err := s.storage.PlayerExists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrPlayerNotFound
	}

	if err := s.storage.DeletePlayer(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "player deleted", "player_id", id)
	return nil
}

// List returns one page of players matching q
func (s *Service) List(ctx context.Context, q query.Query) ([]*model.Player, error) {
	if q.Order == "" {
		q.Order = query.OrderID
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return s.storage.QueryPlayers(ctx, q)
}

// Count returns the number of players matching c
func (s *Service) Count(ctx context.Context, c query.Criteria) (int, error) {
	return s.storage.CountPlayers(ctx, c)
}

func checkID(id model.PlayerID) error {
	if id <= 0 {
		return model.InvalidField("id", "must be greater than zero")
	}
	return nil
}
