package query

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/rpgroster/internal/model"
)

func ptr[T any](v T) *T { return &v }

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func roster() []*model.Player {
	return []*model.Player{
		{ID: 1, Name: "Bilbo", Title: "Burglar", Race: model.RaceHobbit, Profession: model.ProfessionRogue, Experience: 10, Level: 0, Birthday: day(2001, time.May, 1)},
		{ID: 2, Name: "Gimli", Title: "Son of Gloin", Race: model.RaceDwarf, Profession: model.ProfessionWarrior, Experience: 500, Level: 2, Birthday: day(2003, time.June, 2)},
		{ID: 3, Name: "Legolas", Title: "Prince of Mirkwood", Race: model.RaceElf, Profession: model.ProfessionDruid, Experience: 10000, Level: 13, Birthday: day(2002, time.July, 3), Banned: true},
		{ID: 4, Name: "Aragorn", Title: "King of Gondor", Race: model.RaceHuman, Profession: model.ProfessionPaladin, Experience: 1200, Level: 4, Birthday: day(2010, time.August, 4)},
		{ID: 5, Name: "Azog", Title: "Defiler", Race: model.RaceOrc, Profession: model.ProfessionWarlock, Experience: 500, Level: 2, Birthday: day(2500, time.September, 5), Banned: true},
		{ID: 6, Name: "Bert", Title: "Stone Troll", Race: model.RaceTroll, Profession: model.ProfessionWarrior, Experience: 90, Level: 0, Birthday: day(2999, time.October, 6)},
		{ID: 7, Name: "Eowyn", Title: "Shieldmaiden of Rohan", Race: model.RaceHuman, Profession: model.ProfessionWarrior, Experience: 3000, Level: 7, Birthday: day(2020, time.November, 7)},
	}
}

func ids(players []*model.Player) []model.PlayerID {
	out := make([]model.PlayerID, 0, len(players))
	for _, p := range players {
		out = append(out, p.ID)
	}
	return out
}

func TestPaginationPastTheEnd(t *testing.T) {
	players := roster()

	q := New(Criteria{})
	q.Page = Page{Number: 2, Size: 3}
	assert.Equal(t, []model.PlayerID{7}, ids(Apply(q, players)))

	q.Page = Page{Number: 3, Size: 3}
	page := Apply(q, players)
	require.NotNil(t, page)
	assert.Empty(t, page)
}

func TestDefaultPageIsFirstThreeByID(t *testing.T) {
	assert.Equal(t, []model.PlayerID{1, 2, 3}, ids(Apply(New(Criteria{}), roster())))
}

func TestExperienceRangeIsInclusive(t *testing.T) {
	players := []*model.Player{
		{ID: 1, Experience: 10},
		{ID: 2, Experience: 500},
		{ID: 3, Experience: 10000},
	}
	c := Criteria{MinExperience: ptr(100), MaxExperience: ptr(1000)}
	assert.Equal(t, []model.PlayerID{2}, ids(Filter(c, players)))

	c = Criteria{MinExperience: ptr(500), MaxExperience: ptr(500)}
	assert.Equal(t, []model.PlayerID{2}, ids(Filter(c, players)))
}

func TestSubstringMatchIsCaseSensitive(t *testing.T) {
	players := roster()

	assert.Equal(t, []model.PlayerID{1, 6}, ids(Filter(Criteria{Name: ptr("B")}, players)))
	assert.Empty(t, Filter(Criteria{Name: ptr("bilbo")}, players))
	assert.Equal(t, []model.PlayerID{2, 3, 4, 7}, ids(Filter(Criteria{Title: ptr("of")}, players)))
}

func TestEnumAndBannedFilters(t *testing.T) {
	players := roster()

	assert.Equal(t, []model.PlayerID{4, 7}, ids(Filter(Criteria{Race: ptr(model.RaceHuman)}, players)))
	assert.Equal(t, []model.PlayerID{2, 6, 7}, ids(Filter(Criteria{Profession: ptr(model.ProfessionWarrior)}, players)))
	assert.Equal(t, []model.PlayerID{3, 5}, ids(Filter(Criteria{Banned: ptr(true)}, players)))
	assert.Len(t, Filter(Criteria{Banned: ptr(false)}, players), 5)
}

func TestBirthdayRangeNeedsBothBounds(t *testing.T) {
	players := roster()

	onlyAfter := Criteria{After: ptr(day(2400, time.January, 1))}
	assert.Len(t, Filter(onlyAfter, players), len(players))

	both := Criteria{After: ptr(day(2001, time.May, 1)), Before: ptr(day(2003, time.June, 2))}
	assert.Equal(t, []model.PlayerID{1, 2, 3}, ids(Filter(both, players)))
}

func TestOrderingBreaksTiesByID(t *testing.T) {
	players := roster()

	tests := []struct {
		order Order
		want  []model.PlayerID
	}{
		{OrderID, []model.PlayerID{1, 2, 3, 4, 5, 6, 7}},
		{OrderName, []model.PlayerID{4, 5, 6, 1, 7, 2, 3}},
		{OrderExperience, []model.PlayerID{1, 6, 2, 5, 4, 7, 3}},
		{OrderBirthday, []model.PlayerID{1, 3, 2, 4, 7, 5, 6}},
		{OrderLevel, []model.PlayerID{1, 6, 2, 5, 4, 7, 3}},
	}

	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			q := New(Criteria{})
			q.Order = tt.order
			q.Page = Page{Number: 0, Size: 100}
			assert.Equal(t, tt.want, ids(Apply(q, players)))
		})
	}
}

func TestParseOrder(t *testing.T) {
	o, err := ParseOrder("")
	require.NoError(t, err)
	assert.Equal(t, OrderID, o)

	o, err = ParseOrder("level")
	require.NoError(t, err)
	assert.Equal(t, OrderLevel, o)

	_, err = ParseOrder("TITLE")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestPageValidate(t *testing.T) {
	assert.NoError(t, DefaultPage().Validate())
	assert.ErrorIs(t, Page{Number: -1, Size: 3}.Validate(), model.ErrInvalidInput)
	assert.ErrorIs(t, Page{Number: 0, Size: 0}.Validate(), model.ErrInvalidInput)
	assert.Equal(t, 6, Page{Number: 2, Size: 3}.Offset())
}

func TestOffsetSaturates(t *testing.T) {
	huge := Page{Number: math.MaxInt/3 + 1, Size: 3}
	assert.Equal(t, math.MaxInt, huge.Offset())
	assert.Equal(t, math.MaxInt, Page{Number: math.MaxInt, Size: math.MaxInt}.Offset())

	q := New(Criteria{})
	q.Page = huge
	page := Apply(q, roster())
	require.NotNil(t, page)
	assert.Empty(t, page)
}
