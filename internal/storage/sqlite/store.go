// Package sqlite provides a SQLite-backed player storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/mcoot/rpgroster/internal/model"
	"github.com/mcoot/rpgroster/internal/query"
	"github.com/mcoot/rpgroster/internal/storage"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// Config holds SQLite settings
type Config struct {
	// Path is the database file, or ":memory:"
	Path string `yaml:"path" env:"PATH"`
}

// DefaultConfig returns the default SQLite configuration
func DefaultConfig() Config {
	return Config{Path: "roster.db"}
}

// Store persists players in SQLite
type Store struct {
	db *sqlx.DB
}

// Ensure Store implements the interface
var _ storage.Storage = (*Store)(nil)

// Open opens a SQLite player store and ensures the schema exists
func Open(cfg Config) (*Store, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := path
	if path != MemoryPath {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if path == MemoryPath {
		// Every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the SQLite handle
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) SavePlayer(ctx context.Context, player *model.Player) (*model.Player, error) {
	row := toRow(player)

	if row.ID == 0 {
		res, err := s.db.NamedExecContext(ctx,
			`INSERT INTO players (name, title, race, profession, experience, level, until_next_level, birthday, banned)
			 VALUES (:name, :title, :race, :profession, :experience, :level, :until_next_level, :birthday, :banned)`,
			row)
		if err != nil {
			return nil, fmt.Errorf("insert player: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("insert player: %w", err)
		}
		row.ID = id
	} else {
		_, err := s.db.NamedExecContext(ctx,
			`INSERT INTO players (`+playerColumns+`)
			 VALUES (:id, :name, :title, :race, :profession, :experience, :level, :until_next_level, :birthday, :banned)
			 ON CONFLICT (id) DO UPDATE SET
			   name = excluded.name,
			   title = excluded.title,
			   race = excluded.race,
			   profession = excluded.profession,
			   experience = excluded.experience,
			   level = excluded.level,
			   until_next_level = excluded.until_next_level,
			   birthday = excluded.birthday,
			   banned = excluded.banned`,
			row)
		if err != nil {
			return nil, fmt.Errorf("update player %d: %w", row.ID, err)
		}
	}

	return row.toModel()
}

func (s *Store) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var row playerRow
	err := s.db.GetContext(ctx, &row, `SELECT `+playerColumns+` FROM players WHERE id = ?`, int64(id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("get player %d: %w", id, err)
	}
	return row.toModel()
}

func (s *Store) PlayerExists(ctx context.Context, id model.PlayerID) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM players WHERE id = ?)`, int64(id))
	if err != nil {
		return false, fmt.Errorf("check player %d: %w", id, err)
	}
	return exists, nil
}

func (s *Store) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, int64(id)); err != nil {
		return fmt.Errorf("delete player %d: %w", id, err)
	}
	return nil
}

func (s *Store) QueryPlayers(ctx context.Context, q query.Query) ([]*model.Player, error) {
	where, args := whereClause(q.Criteria)
	stmt := fmt.Sprintf(`SELECT %s FROM players %s %s LIMIT ? OFFSET ?`,
		playerColumns, where, orderClause(q.Order))
	args = append(args, q.Page.Size, q.Page.Offset())

	var rows []playerRow
	if err := s.db.SelectContext(ctx, &rows, stmt, args...); err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}

	players := make([]*model.Player, 0, len(rows))
	for _, row := range rows {
		p, err := row.toModel()
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, nil
}

func (s *Store) CountPlayers(ctx context.Context, c query.Criteria) (int, error) {
	where, args := whereClause(c)
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM players `+where, args...); err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}
	return n, nil
}

func toRow(p *model.Player) playerRow {
	return playerRow{
		ID:             int64(p.ID),
		Name:           p.Name,
		Title:          p.Title,
		Race:           p.Race.String(),
		Profession:     p.Profession.String(),
		Experience:     p.Experience,
		Level:          p.Level,
		UntilNextLevel: p.UntilNextLevel,
		Birthday:       p.Birthday.UTC().UnixMilli(),
		Banned:         p.Banned,
	}
}

func (r playerRow) toModel() (*model.Player, error) {
	race, err := model.ParseRace(r.Race)
	if err != nil {
		return nil, fmt.Errorf("player %d: %w", r.ID, err)
	}
	profession, err := model.ParseProfession(r.Profession)
	if err != nil {
		return nil, fmt.Errorf("player %d: %w", r.ID, err)
	}
	return &model.Player{
		ID:             model.PlayerID(r.ID),
		Name:           r.Name,
		Title:          r.Title,
		Race:           race,
		Profession:     profession,
		Experience:     r.Experience,
		Level:          r.Level,
		UntilNextLevel: r.UntilNextLevel,
		Birthday:       time.UnixMilli(r.Birthday).UTC(),
		Banned:         r.Banned,
	}, nil
}
