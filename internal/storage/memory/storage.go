package memory

import (
	"context"
	"sync"

	"github.com/mcoot/rpgroster/internal/model"
	"github.com/mcoot/rpgroster/internal/query"
	"github.com/mcoot/rpgroster/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players map[model.PlayerID]*model.Player
	nextID  model.PlayerID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players: make(map[model.PlayerID]*model.Player),
		nextID:  1,
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *player
	if stored.ID == 0 {
		stored.ID = s.nextID
		s.nextID++
	} else if stored.ID >= s.nextID {
		s.nextID = stored.ID + 1
	}
	s.players[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	out := *player
	return &out, nil
}

func (s *Storage) PlayerExists(ctx context.Context, id model.PlayerID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.players[id]
	return ok, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	return nil
}

func (s *Storage) QueryPlayers(ctx context.Context, q query.Query) ([]*model.Player, error) {
	page := query.Apply(q, s.snapshot())
	return page, nil
}

func (s *Storage) CountPlayers(ctx context.Context, c query.Criteria) (int, error) {
	return len(query.Filter(c, s.snapshot())), nil
}

func (s *Storage) Close() error {
	return nil
}

// snapshot copies every record so callers never alias stored state
func (s *Storage) snapshot() []*model.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]*model.Player, 0, len(s.players))
	for _, p := range s.players {
		cp := *p
		all = append(all, &cp)
	}
	return all
}
