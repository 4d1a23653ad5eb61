package request

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/rpgroster/internal/model"
	"github.com/mcoot/rpgroster/internal/query"
)

func TestParseQueryDefaults(t *testing.T) {
	q, err := ParseQuery(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, query.New(query.Criteria{}), q)
}

func TestParseQueryAllParameters(t *testing.T) {
	values := url.Values{
		"name":          {"Bil"},
		"title":         {" of "},
		"race":          {"HOBBIT"},
		"profession":    {"rogue"},
		"after":         {"946684800000"},
		"before":        {"1262304000000"},
		"banned":        {"false"},
		"minExperience": {"100"},
		"maxExperience": {"1000"},
		"minLevel":      {"1"},
		"maxLevel":      {"4"},
		"order":         {"EXPERIENCE"},
		"pageNumber":    {"2"},
		"pageSize":      {"10"},
	}

	q, err := ParseQuery(values)
	require.NoError(t, err)

	c := q.Criteria
	assert.Equal(t, "Bil", *c.Name)
	assert.Equal(t, " of ", *c.Title)
	assert.Equal(t, model.RaceHobbit, *c.Race)
	assert.Equal(t, model.ProfessionRogue, *c.Profession)
	assert.True(t, c.After.Equal(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, c.Before.Equal(time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, *c.Banned)
	assert.Equal(t, 100, *c.MinExperience)
	assert.Equal(t, 1000, *c.MaxExperience)
	assert.Equal(t, 1, *c.MinLevel)
	assert.Equal(t, 4, *c.MaxLevel)
	assert.Equal(t, query.OrderExperience, q.Order)
	assert.Equal(t, query.Page{Number: 2, Size: 10}, q.Page)
}

func TestParseQueryBlankParametersAreAbsent(t *testing.T) {
	q, err := ParseQuery(url.Values{"name": {""}, "minLevel": {" "}, "order": {""}})
	require.NoError(t, err)
	assert.Nil(t, q.Criteria.Name)
	assert.Nil(t, q.Criteria.MinLevel)
	assert.Equal(t, query.OrderID, q.Order)
}

func TestParseQueryRejectsMalformed(t *testing.T) {
	tests := []url.Values{
		{"race": {"VULCAN"}},
		{"profession": {"BARD"}},
		{"after": {"yesterday"}},
		{"banned": {"maybe"}},
		{"minExperience": {"1.5"}},
		{"order": {"TITLE"}},
		{"pageNumber": {"-1"}},
		{"pageSize": {"0"}},
		{"filter": {`name = "a" OR name = "b"`}},
	}

	for _, values := range tests {
		t.Run(values.Encode(), func(t *testing.T) {
			_, err := ParseQuery(values)
			assert.ErrorIs(t, err, model.ErrInvalidInput)
		})
	}
}

func TestParseCriteriaFoldsFilter(t *testing.T) {
	c, err := ParseCriteria(url.Values{
		"minExperience": {"100"},
		"filter":        {`experience >= 500 AND race = "ELF"`},
	})
	require.NoError(t, err)
	assert.Equal(t, 500, *c.MinExperience)
	assert.Equal(t, model.RaceElf, *c.Race)
}

func TestDecodePlayer(t *testing.T) {
	req, err := DecodePlayer(strings.NewReader(`{"name":"Sam","race":"hobbit","birthday":946684800000,"level":99,"id":5}`))
	require.NoError(t, err)

	patch, err := req.ToPatch()
	require.NoError(t, err)
	assert.Equal(t, "Sam", *patch.Name)
	assert.Equal(t, model.RaceHobbit, *patch.Race)
	assert.True(t, patch.Birthday.Equal(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Nil(t, patch.Title)
	assert.Nil(t, patch.Banned)
}

func TestDecodePlayerEmptyBody(t *testing.T) {
	for _, body := range []string{"", "{}", "null"} {
		req, err := DecodePlayer(strings.NewReader(body))
		require.NoError(t, err, body)
		patch, err := req.ToPatch()
		require.NoError(t, err)
		assert.True(t, patch.IsEmpty(), body)
	}
}

func TestDecodePlayerRejects(t *testing.T) {
	_, err := DecodePlayer(strings.NewReader(`{"name":`))
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = DecodePlayer(strings.NewReader(`{"experience":"lots"}`))
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	req, err := DecodePlayer(strings.NewReader(`{"profession":"BARD"}`))
	require.NoError(t, err)
	_, err = req.ToPatch()
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	req, err = DecodePlayer(strings.NewReader(`{"birthday":-1}`))
	require.NoError(t, err)
	_, err = req.ToPatch()
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}
