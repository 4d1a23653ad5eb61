package redis

import (
	"time"

	"github.com/mcoot/rpgroster/internal/model"
)

// playerRecord is the JSON document stored per player.
// Birthday is kept as epoch milliseconds.
type playerRecord struct {
	ID             int64            `json:"id"`
	Name           string           `json:"name"`
	Title          string           `json:"title"`
	Race           model.Race       `json:"race"`
	Profession     model.Profession `json:"profession"`
	Experience     int              `json:"experience"`
	Level          int              `json:"level"`
	UntilNextLevel int              `json:"untilNextLevel"`
	Birthday       int64            `json:"birthday"`
	Banned         bool             `json:"banned"`
}

func toRecord(p *model.Player) playerRecord {
	return playerRecord{
		ID:             int64(p.ID),
		Name:           p.Name,
		Title:          p.Title,
		Race:           p.Race,
		Profession:     p.Profession,
		Experience:     p.Experience,
		Level:          p.Level,
		UntilNextLevel: p.UntilNextLevel,
		Birthday:       p.Birthday.UnixMilli(),
		Banned:         p.Banned,
	}
}

func (r playerRecord) toModel() *model.Player {
	return &model.Player{
		ID:             model.PlayerID(r.ID),
		Name:           r.Name,
		Title:          r.Title,
		Race:           r.Race,
		Profession:     r.Profession,
		Experience:     r.Experience,
		Level:          r.Level,
		UntilNextLevel: r.UntilNextLevel,
		Birthday:       time.UnixMilli(r.Birthday).UTC(),
		Banned:         r.Banned,
	}
}
