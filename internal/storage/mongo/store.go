// Package mongo provides a MongoDB-backed player storage implementation.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mcoot/rpgroster/internal/model"
	"github.com/mcoot/rpgroster/internal/query"
	"github.com/mcoot/rpgroster/internal/storage"
)

const (
	playersCollection  = "players"
	countersCollection = "counters"
	playerSequenceID   = "player"
)

// Store persists players in a MongoDB collection.
// IDs come from a counter document incremented with $inc.
type Store struct {
	client   *mongo.Client
	players  *mongo.Collection
	counters *mongo.Collection
}

// Ensure Store implements the interface
var _ storage.Storage = (*Store)(nil)

// Open connects to MongoDB and verifies the connection
func Open(ctx context.Context, cfg Config) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return NewWithClient(client, cfg.Database), nil
}

// NewWithClient creates a store over an existing client
func NewWithClient(client *mongo.Client, database string) *Store {
	db := client.Database(database)
	return &Store{
		client:   client,
		players:  db.Collection(playersCollection),
		counters: db.Collection(countersCollection),
	}
}

// Close disconnects the client
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) nextID(ctx context.Context) (model.PlayerID, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": playerSequenceID},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("allocate player id: %w", err)
	}
	return model.PlayerID(counter.Seq), nil
}

func (s *Store) SavePlayer(ctx context.Context, player *model.Player) (*model.Player, error) {
	stored := *player
	if stored.ID == 0 {
		id, err := s.nextID(ctx)
		if err != nil {
			return nil, err
		}
		stored.ID = id
	}

	opts := options.Replace().SetUpsert(true)
	_, err := s.players.ReplaceOne(ctx, bson.M{"_id": int64(stored.ID)}, toDocument(&stored), opts)
	if err != nil {
		return nil, fmt.Errorf("save player %d: %w", stored.ID, err)
	}
	return &stored, nil
}

func (s *Store) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var doc playerDocument
	err := s.players.FindOne(ctx, bson.M{"_id": int64(id)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("get player %d: %w", id, err)
	}
	return doc.toModel()
}

func (s *Store) PlayerExists(ctx context.Context, id model.PlayerID) (bool, error) {
	n, err := s.players.CountDocuments(ctx, bson.M{"_id": int64(id)}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("check player %d: %w", id, err)
	}
	return n > 0, nil
}

func (s *Store) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	if _, err := s.players.DeleteOne(ctx, bson.M{"_id": int64(id)}); err != nil {
		return fmt.Errorf("delete player %d: %w", id, err)
	}
	return nil
}

func (s *Store) QueryPlayers(ctx context.Context, q query.Query) ([]*model.Player, error) {
	opts := options.Find().
		SetSort(sortDocument(q.Order)).
		SetSkip(int64(q.Page.Offset())).
		SetLimit(int64(q.Page.Size))

	cursor, err := s.players.Find(ctx, filterDocument(q.Criteria), opts)
	if err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []playerDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}

	players := make([]*model.Player, 0, len(docs))
	for _, doc := range docs {
		p, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, nil
}

func (s *Store) CountPlayers(ctx context.Context, c query.Criteria) (int, error) {
	n, err := s.players.CountDocuments(ctx, filterDocument(c))
	if err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}
	return int(n), nil
}
