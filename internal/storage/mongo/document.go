package mongo

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/mcoot/rpgroster/internal/model"
	"github.com/mcoot/rpgroster/internal/query"
)

// playerDocument is the stored shape of a player. Birthday is epoch milliseconds.
type playerDocument struct {
	ID             int64  `bson:"_id"`
	Name           string `bson:"name"`
	Title          string `bson:"title"`
	Race           string `bson:"race"`
	Profession     string `bson:"profession"`
	Experience     int    `bson:"experience"`
	Level          int    `bson:"level"`
	UntilNextLevel int    `bson:"untilNextLevel"`
	Birthday       int64  `bson:"birthday"`
	Banned         bool   `bson:"banned"`
}

func toDocument(p *model.Player) playerDocument {
	return playerDocument{
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

func (d playerDocument) toModel() (*model.Player, error) {
	race, err := model.ParseRace(d.Race)
	if err != nil {
		return nil, err
	}
	profession, err := model.ParseProfession(d.Profession)
	if err != nil {
		return nil, err
	}
	return &model.Player{
		ID:             model.PlayerID(d.ID),
		Name:           d.Name,
		Title:          d.Title,
		Race:           race,
		Profession:     profession,
		Experience:     d.Experience,
		Level:          d.Level,
		UntilNextLevel: d.UntilNextLevel,
		Birthday:       time.UnixMilli(d.Birthday).UTC(),
		Banned:         d.Banned,
	}, nil
}

// filterDocument translates c into a find filter
func filterDocument(c query.Criteria) bson.M {
	filter := bson.M{}

	if c.Name != nil {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(*c.Name)}
	}
	if c.Title != nil {
		filter["title"] = bson.M{"$regex": regexp.QuoteMeta(*c.Title)}
	}
	if c.Race != nil {
		filter["race"] = c.Race.String()
	}
	if c.Profession != nil {
		filter["profession"] = c.Profession.String()
	}
	if after, before, ok := c.BirthdayRange(); ok {
		filter["birthday"] = bson.M{"$gte": after.UnixMilli(), "$lte": before.UnixMilli()}
	}
	if c.Banned != nil {
		filter["banned"] = *c.Banned
	}
	if r := intRange(c.MinExperience, c.MaxExperience); r != nil {
		filter["experience"] = r
	}
	if r := intRange(c.MinLevel, c.MaxLevel); r != nil {
		filter["level"] = r
	}
	return filter
}

func intRange(lo, hi *int) bson.M {
	if lo == nil && hi == nil {
		return nil
	}
	r := bson.M{}
	if lo != nil {
		r["$gte"] = *lo
	}
	if hi != nil {
		r["$lte"] = *hi
	}
	return r
}

// sortDocument orders by the key for o, with _id as the tie-breaker
func sortDocument(o query.Order) bson.D {
	var field string
	switch o {
	case query.OrderName:
		field = "name"
	case query.OrderExperience:
		field = "experience"
	case query.OrderBirthday:
		field = "birthday"
	case query.OrderLevel:
		field = "level"
	default:
		return bson.D{{Key: "_id", Value: 1}}
	}
	return bson.D{{Key: field, Value: 1}, {Key: "_id", Value: 1}}
}
