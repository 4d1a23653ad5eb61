package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/rpgroster/internal/model"
	"github.com/mcoot/rpgroster/internal/query"
	"github.com/mcoot/rpgroster/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Records are JSON strings; filtering and ordering run in-process over the full set.
type Storage struct {
	client *redis.Client
	cfg    Config
	keys   keys
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = DefaultConfig().KeyPrefix
	}
	return &Storage{
		client: client,
		cfg:    cfg,
		keys:   keys{prefix: prefix},
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) (*model.Player, error) {
	stored := *player
	if stored.ID == 0 {
		id, err := s.client.Incr(ctx, s.keys.playerSequence()).Result()
		if err != nil {
			return nil, fmt.Errorf("allocate player id: %w", err)
		}
		stored.ID = model.PlayerID(id)
	}

	data, err := json.Marshal(toRecord(&stored))
	if err != nil {
		return nil, err
	}

	// Record and index change together
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.keys.player(stored.ID), data, 0)
		pipe.ZAdd(ctx, s.keys.playerIndex(), redis.Z{Score: float64(stored.ID), Member: int64(stored.ID)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, s.keys.player(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var rec playerRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.keys.player(id), err)
	}
	return rec.toModel(), nil
}

func (s *Storage) PlayerExists(ctx context.Context, id model.PlayerID) (bool, error) {
	n, err := s.client.Exists(ctx, s.keys.player(id)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.keys.player(id))
		pipe.ZRem(ctx, s.keys.playerIndex(), int64(id))
		return nil
	})
	return err
}

func (s *Storage) QueryPlayers(ctx context.Context, q query.Query) ([]*model.Player, error) {
	all, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	return query.Apply(q, all), nil
}

func (s *Storage) CountPlayers(ctx context.Context, c query.Criteria) (int, error) {
	all, err := s.loadAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(query.Filter(c, all)), nil
}

// loadAll fetches every indexed player in ID order
func (s *Storage) loadAll(ctx context.Context) ([]*model.Player, error) {
	members, err := s.client.ZRange(ctx, s.keys.playerIndex(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return []*model.Player{}, nil
	}

	playerKeys := make([]string, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt player index entry %q: %w", m, err)
		}
		playerKeys = append(playerKeys, s.keys.player(model.PlayerID(id)))
	}

	// Fetch all records in one round trip using MGET
	values, err := s.client.MGet(ctx, playerKeys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for i, val := range values {
		str, ok := val.(string)
		if !ok {
			continue // Record deleted between ZRANGE and MGET
		}
		var rec playerRecord
		if err := json.Unmarshal([]byte(str), &rec); err != nil {
			return nil, fmt.Errorf("decode %s: %w", playerKeys[i], err)
		}
		players = append(players, rec.toModel())
	}
	return players, nil
}
