// Package storagetest holds behaviour every storage backend must share.
package storagetest

import (
	"context"
	"math"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/rpgroster/internal/model"
	"github.com/mcoot/rpgroster/internal/query"
	"github.com/mcoot/rpgroster/internal/storage"
)

// Suite runs the storage contract against a backend.
// Each backend package embeds it and sets NewStorage.
type Suite struct {
	suite.Suite

	// NewStorage returns an empty store for a single test
	NewStorage func() storage.Storage

	Storage storage.Storage
	Ctx     context.Context
}

func (s *Suite) SetupTest() {
	s.Require().NotNil(s.NewStorage, "NewStorage must be set")
	s.Storage = s.NewStorage()
	s.Ctx = context.Background()
}

func (s *Suite) TearDownTest() {
	if s.Storage != nil {
		_ = s.Storage.Close()
	}
}

// Player builds a valid, unsaved player for fixtures
func Player(name string, exp, level int, birthday time.Time) *model.Player {
	return &model.Player{
		Name:           name,
		Title:          "Adventurer",
		Race:           model.RaceHuman,
		Profession:     model.ProfessionWarrior,
		Experience:     exp,
		Level:          level,
		UntilNextLevel: 50*(level+1)*(level+2) - exp,
		Birthday:       birthday,
	}
}

func (s *Suite) save(p *model.Player) *model.Player {
	saved, err := s.Storage.SavePlayer(s.Ctx, p)
	s.Require().NoError(err)
	return saved
}

func (s *Suite) TestSaveAssignsIncreasingIDs() {
	first := s.save(Player("Frodo", 0, 0, time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)))
	second := s.save(Player("Sam", 0, 0, time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)))

	s.Positive(int64(first.ID))
	s.Greater(second.ID, first.ID)
}

func (s *Suite) TestSaveAndGetRoundTrip() {
	birthday := time.Date(2345, time.June, 7, 8, 9, 10, 123_000_000, time.UTC)
	p := Player("Galadriel", 1500, 5, birthday)
	p.Title = "Lady of Lorien"
	p.Race = model.RaceElf
	p.Profession = model.ProfessionSorcerer
	p.Banned = true

	saved := s.save(p)

	got, err := s.Storage.GetPlayer(s.Ctx, saved.ID)
	s.Require().NoError(err)
	s.Equal(saved.ID, got.ID)
	s.Equal("Galadriel", got.Name)
	s.Equal("Lady of Lorien", got.Title)
	s.Equal(model.RaceElf, got.Race)
	s.Equal(model.ProfessionSorcerer, got.Profession)
	s.Equal(1500, got.Experience)
	s.Equal(5, got.Level)
	s.Equal(600, got.UntilNextLevel)
	s.True(got.Banned)
	s.True(birthday.Equal(got.Birthday), "birthday %v != %v", got.Birthday, birthday)
}

func (s *Suite) TestSaveExistingReplacesRecord() {
	saved := s.save(Player("Pippin", 10, 0, time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)))

	saved.Name = "Peregrin"
	saved.Experience = 300
	saved.Level = 2
	updated := s.save(saved)
	s.Equal(saved.ID, updated.ID)

	got, err := s.Storage.GetPlayer(s.Ctx, saved.ID)
	s.Require().NoError(err)
	s.Equal("Peregrin", got.Name)
	s.Equal(300, got.Experience)

	count, err := s.Storage.CountPlayers(s.Ctx, query.Criteria{})
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *Suite) TestGetPlayerNotFound() {
	_, err := s.Storage.GetPlayer(s.Ctx, 9999)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *Suite) TestPlayerExists() {
	saved := s.save(Player("Merry", 0, 0, time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)))

	ok, err := s.Storage.PlayerExists(s.Ctx, saved.ID)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.Storage.PlayerExists(s.Ctx, saved.ID+100)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *Suite) TestDeletePlayer() {
	saved := s.save(Player("Boromir", 0, 0, time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)))

	s.Require().NoError(s.Storage.DeletePlayer(s.Ctx, saved.ID))

	_, err := s.Storage.GetPlayer(s.Ctx, saved.ID)
	s.ErrorIs(err, model.ErrPlayerNotFound)

	// Deleting again is a no-op
	s.NoError(s.Storage.DeletePlayer(s.Ctx, saved.ID))
}

func (s *Suite) TestIDsAreNotReused() {
	first := s.save(Player("Theoden", 0, 0, time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)))
	s.Require().NoError(s.Storage.DeletePlayer(s.Ctx, first.ID))

	second := s.save(Player("Theodred", 0, 0, time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)))
	s.NotEqual(first.ID, second.ID)
}

func (s *Suite) seedRoster() []*model.Player {
	fixtures := []*model.Player{
		Player("Bilbo", 10, 0, time.Date(2001, time.May, 1, 0, 0, 0, 0, time.UTC)),
		Player("Gimli", 500, 2, time.Date(2003, time.June, 2, 0, 0, 0, 0, time.UTC)),
		Player("Legolas", 10000, 13, time.Date(2002, time.July, 3, 0, 0, 0, 0, time.UTC)),
		Player("Aragorn", 1200, 4, time.Date(2010, time.August, 4, 0, 0, 0, 0, time.UTC)),
		Player("Azog", 500, 2, time.Date(2500, time.September, 5, 0, 0, 0, 0, time.UTC)),
		Player("Bert", 90, 0, time.Date(2999, time.October, 6, 0, 0, 0, 0, time.UTC)),
		Player("Eowyn", 3000, 7, time.Date(2020, time.November, 7, 0, 0, 0, 0, time.UTC)),
	}
	fixtures[1].Race = model.RaceDwarf
	fixtures[2].Race = model.RaceElf
	fixtures[2].Banned = true
	fixtures[2].Title = "Prince of Mirkwood"
	fixtures[4].Race = model.RaceOrc
	fixtures[4].Profession = model.ProfessionWarlock
	fixtures[4].Banned = true
	fixtures[5].Race = model.RaceTroll

	saved := make([]*model.Player, 0, len(fixtures))
	for _, p := range fixtures {
		saved = append(saved, s.save(p))
	}
	return saved
}

func names(players []*model.Player) []string {
	out := make([]string, 0, len(players))
	for _, p := range players {
		out = append(out, p.Name)
	}
	return out
}

func (s *Suite) TestQueryDefaultPage() {
	s.seedRoster()

	page, err := s.Storage.QueryPlayers(s.Ctx, query.New(query.Criteria{}))
	s.Require().NoError(err)
	s.Equal([]string{"Bilbo", "Gimli", "Legolas"}, names(page))
}

func (s *Suite) TestQueryPastTheEnd() {
	s.seedRoster()

	q := query.New(query.Criteria{})
	q.Page = query.Page{Number: 2, Size: 3}
	page, err := s.Storage.QueryPlayers(s.Ctx, q)
	s.Require().NoError(err)
	s.Equal([]string{"Eowyn"}, names(page))

	q.Page.Number = 3
	page, err = s.Storage.QueryPlayers(s.Ctx, q)
	s.Require().NoError(err)
	s.Empty(page)
}

func (s *Suite) TestQueryPageNumberBeyondIntRange() {
	s.seedRoster()

	q := query.New(query.Criteria{})
	q.Page = query.Page{Number: math.MaxInt/3 + 1, Size: 3}
	page, err := s.Storage.QueryPlayers(s.Ctx, q)
	s.Require().NoError(err)
	s.Empty(page)

	q.Page = query.Page{Number: math.MaxInt, Size: math.MaxInt}
	page, err = s.Storage.QueryPlayers(s.Ctx, q)
	s.Require().NoError(err)
	s.Empty(page)
}

func (s *Suite) TestQueryOrdering() {
	s.seedRoster()

	tests := []struct {
		order query.Order
		want  []string
	}{
		{query.OrderName, []string{"Aragorn", "Azog", "Bert", "Bilbo", "Eowyn", "Gimli", "Legolas"}},
		{query.OrderExperience, []string{"Bilbo", "Bert", "Gimli", "Azog", "Aragorn", "Eowyn", "Legolas"}},
		{query.OrderBirthday, []string{"Bilbo", "Legolas", "Gimli", "Aragorn", "Eowyn", "Azog", "Bert"}},
		{query.OrderLevel, []string{"Bilbo", "Bert", "Gimli", "Azog", "Aragorn", "Eowyn", "Legolas"}},
	}

	for _, tt := range tests {
		s.Run(string(tt.order), func() {
			q := query.New(query.Criteria{})
			q.Order = tt.order
			q.Page.Size = 10
			page, err := s.Storage.QueryPlayers(s.Ctx, q)
			s.Require().NoError(err)
			s.Equal(tt.want, names(page))
		})
	}
}

func (s *Suite) TestQueryFilters() {
	s.seedRoster()

	str := func(v string) *string { return &v }
	num := func(v int) *int { return &v }
	flag := func(v bool) *bool { return &v }
	race := func(v model.Race) *model.Race { return &v }
	prof := func(v model.Profession) *model.Profession { return &v }
	at := func(y int, m time.Month, d int) *time.Time {
		t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &t
	}

	tests := []struct {
		name     string
		criteria query.Criteria
		want     []string
	}{
		{"name substring", query.Criteria{Name: str("B")}, []string{"Bilbo", "Bert"}},
		{"name is case sensitive", query.Criteria{Name: str("bilbo")}, []string{}},
		{"title substring", query.Criteria{Title: str("Mirk")}, []string{"Legolas"}},
		{"race", query.Criteria{Race: race(model.RaceDwarf)}, []string{"Gimli"}},
		{"profession", query.Criteria{Profession: prof(model.ProfessionWarlock)}, []string{"Azog"}},
		{"banned", query.Criteria{Banned: flag(true)}, []string{"Legolas", "Azog"}},
		{"experience range", query.Criteria{MinExperience: num(100), MaxExperience: num(1000)}, []string{"Gimli", "Azog"}},
		{"level range", query.Criteria{MinLevel: num(4), MaxLevel: num(7)}, []string{"Aragorn", "Eowyn"}},
		{"birthday range inclusive", query.Criteria{After: at(2001, time.May, 1), Before: at(2003, time.June, 2)}, []string{"Bilbo", "Gimli", "Legolas"}},
		{"birthday needs both bounds", query.Criteria{After: at(2400, time.January, 1)}, []string{"Bilbo", "Gimli", "Legolas", "Aragorn", "Azog", "Bert", "Eowyn"}},
		{"combined", query.Criteria{Name: str("o"), Banned: flag(false), MaxLevel: num(4)}, []string{"Bilbo", "Aragorn"}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			q := query.New(tt.criteria)
			q.Page.Size = 10
			page, err := s.Storage.QueryPlayers(s.Ctx, q)
			s.Require().NoError(err)
			s.Equal(tt.want, names(page))

			count, err := s.Storage.CountPlayers(s.Ctx, tt.criteria)
			s.Require().NoError(err)
			s.Equal(len(tt.want), count)
		})
	}
}

func (s *Suite) TestCountIgnoresPaging() {
	s.seedRoster()

	count, err := s.Storage.CountPlayers(s.Ctx, query.Criteria{})
	s.Require().NoError(err)
	s.Equal(7, count)
}
