package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/rpgroster/internal/model"
	"github.com/mcoot/rpgroster/internal/query"
	"github.com/mcoot/rpgroster/internal/storage"
	"github.com/mcoot/rpgroster/internal/storage/storagetest"
)

type StoreSuite struct {
	storagetest.Suite
}

func TestStoreSuite(t *testing.T) {
	s := &StoreSuite{}
	s.NewStorage = func() storage.Storage {
		store, err := Open(Config{Path: MemoryPath})
		s.Require().NoError(err)
		return store
	}
	suite.Run(t, s)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(Config{Path: "  "})
	assert.Error(t, err)
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.db")

	store, err := Open(Config{Path: path})
	require.NoError(t, err)
	saved, err := store.SavePlayer(t.Context(), storagetest.Player("Treebeard", 0, 0, time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := Open(Config{Path: path})
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetPlayer(t.Context(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Treebeard", got.Name)
}

func TestWhereClause(t *testing.T) {
	name := "Bil"
	race := model.RaceHobbit
	lo := 100
	after := time.UnixMilli(1000).UTC()
	before := time.UnixMilli(2000).UTC()

	where, args := whereClause(query.Criteria{Name: &name, Race: &race, MinExperience: &lo, After: &after, Before: &before})
	assert.Equal(t, "WHERE instr(name, ?) > 0 AND race = ? AND birthday >= ? AND birthday <= ? AND experience >= ?", where)
	assert.Equal(t, []any{"Bil", "HOBBIT", int64(1000), int64(2000), 100}, args)

	where, args = whereClause(query.Criteria{After: &after})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestOrderClause(t *testing.T) {
	assert.Equal(t, "ORDER BY id", orderClause(query.OrderID))
	assert.Equal(t, "ORDER BY level, id", orderClause(query.OrderLevel))
	assert.Equal(t, "ORDER BY id", orderClause(""))
}
