package factory

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/rpgroster/internal/dependencies/clock"
	"github.com/mcoot/rpgroster/internal/dependencies/random"
	"github.com/mcoot/rpgroster/internal/roster"
	"github.com/mcoot/rpgroster/internal/services/player"
	"github.com/mcoot/rpgroster/internal/storage"
	"github.com/mcoot/rpgroster/internal/storage/memory"
	mongostorage "github.com/mcoot/rpgroster/internal/storage/mongo"
	redisstorage "github.com/mcoot/rpgroster/internal/storage/redis"
	sqlitestorage "github.com/mcoot/rpgroster/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
	StorageTypeMongo  = "mongo"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage     storage.Storage
	StorageType string

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	PlayerService *player.Service
	Generator     *roster.Generator
	Importer      *roster.Importer
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend
	// If empty, defaults to "memory"
	StorageType string
	// Backend settings; each is required only when its StorageType is selected
	RedisConfig  *redisstorage.Config
	SQLiteConfig *sqlitestorage.Config
	MongoConfig  *mongostorage.Config
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	store, err := openStorage(ctx, storageType, cfg)
	if err != nil {
		return nil, err
	}

	app := newWithDependencies(store, clock.New(), random.New(), logger)
	app.StorageType = storageType
	return app, nil
}

func openStorage(ctx context.Context, storageType string, cfg Config) (storage.Storage, error) {
	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, fmt.Errorf("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	case StorageTypeSQLite:
		if cfg.SQLiteConfig == nil {
			return nil, fmt.Errorf("SQLiteConfig required when StorageType is sqlite")
		}
		return sqlitestorage.Open(*cfg.SQLiteConfig)
	case StorageTypeMongo:
		if cfg.MongoConfig == nil {
			return nil, fmt.Errorf("MongoConfig required when StorageType is mongo")
		}
		return mongostorage.Open(ctx, *cfg.MongoConfig)
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be memory, redis, sqlite or mongo", storageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	playerService := player.New(store, logger)

	return &App{
		Storage:       store,
		StorageType:   StorageTypeMemory,
		Clock:         clk,
		Random:        rnd,
		PlayerService: playerService,
		Generator:     roster.NewGenerator(rnd, clk),
		Importer:      roster.NewImporter(playerService, logger),
	}
}

// Close releases the storage backend
func (a *App) Close() error {
	return a.Storage.Close()
}
