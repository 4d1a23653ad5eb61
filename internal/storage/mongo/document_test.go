package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mcoot/rpgroster/internal/model"
	"github.com/mcoot/rpgroster/internal/query"
)

func TestFilterDocumentEmpty(t *testing.T) {
	assert.Equal(t, bson.M{}, filterDocument(query.Criteria{}))
}

func TestFilterDocument(t *testing.T) {
	name := "a.b"
	prof := model.ProfessionCleric
	banned := false
	hi := 7
	after := time.UnixMilli(1000).UTC()
	before := time.UnixMilli(5000).UTC()

	got := filterDocument(query.Criteria{
		Name:       &name,
		Profession: &prof,
		Banned:     &banned,
		MaxLevel:   &hi,
		After:      &after,
		Before:     &before,
	})

	assert.Equal(t, bson.M{
		"name":       bson.M{"$regex": `a\.b`},
		"profession": "CLERIC",
		"banned":     false,
		"level":      bson.M{"$lte": 7},
		"birthday":   bson.M{"$gte": int64(1000), "$lte": int64(5000)},
	}, got)
}

func TestFilterDocumentIgnoresHalfBirthdayRange(t *testing.T) {
	after := time.UnixMilli(1000).UTC()
	assert.NotContains(t, filterDocument(query.Criteria{After: &after}), "birthday")
}

func TestSortDocument(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "_id", Value: 1}}, sortDocument(query.OrderID))
	assert.Equal(t, bson.D{{Key: "birthday", Value: 1}, {Key: "_id", Value: 1}}, sortDocument(query.OrderBirthday))
}

func TestDocumentRoundTrip(t *testing.T) {
	p := &model.Player{
		ID:             12,
		Name:           "Sauron",
		Title:          "Dark Lord",
		Race:           model.RaceGiant,
		Profession:     model.ProfessionNazgul,
		Experience:     99,
		UntilNextLevel: 1,
		Birthday:       time.Date(2222, time.February, 2, 0, 0, 0, 0, time.UTC),
		Banned:         true,
	}

	doc := toDocument(p)
	assert.Equal(t, "GIANT", doc.Race)

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)
	var decoded playerDocument
	require.NoError(t, bson.Unmarshal(raw, &decoded))

	back, err := decoded.toModel()
	require.NoError(t, err)
	assert.Equal(t, p, back)
}
