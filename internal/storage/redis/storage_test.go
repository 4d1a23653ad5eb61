package redis

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/rpgroster/internal/query"
	"github.com/mcoot/rpgroster/internal/storage"
	"github.com/mcoot/rpgroster/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
	mini *miniredis.Miniredis
}

func TestStorageSuite(t *testing.T) {
	s := &StorageSuite{}
	s.NewStorage = func() storage.Storage {
		s.mini = miniredis.RunT(s.T())
		client := redis.NewClient(&redis.Options{
			Addr: s.mini.Addr(),
		})
		return NewWithClient(client, DefaultConfig())
	}
	suite.Run(t, s)
}

func (s *StorageSuite) TestKeysUsePrefix() {
	saved, err := s.Storage.SavePlayer(s.Ctx, storagetest.Player("Elrond", 0, 0, time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)))
	s.Require().NoError(err)

	s.True(s.mini.Exists("roster:player:1"))
	s.True(s.mini.Exists("roster:idx:players"))
	s.Equal(int64(1), int64(saved.ID))

	seq, err := s.mini.Get("roster:seq:player")
	s.Require().NoError(err)
	s.Equal("1", seq)
}

func (s *StorageSuite) TestRecordStoresBirthdayAsMillis() {
	birthday := time.Date(2100, time.February, 3, 4, 5, 6, 0, time.UTC)
	_, err := s.Storage.SavePlayer(s.Ctx, storagetest.Player("Cirdan", 0, 0, birthday))
	s.Require().NoError(err)

	raw, err := s.mini.Get("roster:player:1")
	s.Require().NoError(err)
	s.Contains(raw, `"birthday":4105310706000`)
	s.Contains(raw, `"race":"HUMAN"`)
}

func (s *StorageSuite) TestDeleteRemovesIndexEntry() {
	saved, err := s.Storage.SavePlayer(s.Ctx, storagetest.Player("Celeborn", 0, 0, time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)))
	s.Require().NoError(err)
	s.Require().NoError(s.Storage.DeletePlayer(s.Ctx, saved.ID))

	members, err := s.mini.ZMembers("roster:idx:players")
	if err == nil {
		s.Empty(members)
	}
	s.False(s.mini.Exists("roster:player:1"))
}

func (s *StorageSuite) TestQuerySkipsDanglingIndexEntries() {
	_, err := s.Storage.SavePlayer(s.Ctx, storagetest.Player("Haldir", 0, 0, time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)))
	s.Require().NoError(err)
	_, err = s.mini.ZAdd("roster:idx:players", 99, "99")
	s.Require().NoError(err)

	count, err := s.Storage.CountPlayers(s.Ctx, query.Criteria{})
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *StorageSuite) TestListAndCountReportUndecodableRecord() {
	_, err := s.Storage.SavePlayer(s.Ctx, storagetest.Player("Beregond", 0, 0, time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)))
	s.Require().NoError(err)
	s.Require().NoError(s.mini.Set("roster:player:1", "{not json"))

	_, err = s.Storage.GetPlayer(s.Ctx, 1)
	s.ErrorContains(err, "decode roster:player:1")

	_, err = s.Storage.QueryPlayers(s.Ctx, query.New(query.Criteria{}))
	s.ErrorContains(err, "decode roster:player:1")

	_, err = s.Storage.CountPlayers(s.Ctx, query.Criteria{})
	s.ErrorContains(err, "decode roster:player:1")
}

func (s *StorageSuite) TestListReportsCorruptIndexEntry() {
	_, err := s.Storage.SavePlayer(s.Ctx, storagetest.Player("Imrahil", 0, 0, time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)))
	s.Require().NoError(err)
	_, err = s.mini.ZAdd("roster:idx:players", 2, "two")
	s.Require().NoError(err)

	_, err = s.Storage.QueryPlayers(s.Ctx, query.New(query.Criteria{}))
	s.ErrorContains(err, `corrupt player index entry "two"`)

	_, err = s.Storage.CountPlayers(s.Ctx, query.Criteria{})
	s.Error(err)
}
