package response

import (
	"github.com/mcoot/rpgroster/internal/model"
)

// Player represents a player in API responses. Birthday is epoch milliseconds.
type Player struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Title          string `json:"title"`
	Race           string `json:"race"`
	Profession     string `json:"profession"`
	Experience     int    `json:"experience"`
	Level          int    `json:"level"`
	UntilNextLevel int    `json:"untilNextLevel"`
	Birthday       int64  `json:"birthday"`
	Banned         bool   `json:"banned"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:             int64(p.ID),
		Name:           p.Name,
		Title:          p.Title,
		Race:           p.Race.String(),
		Profession:     p.Profession.String(),
		Experience:     p.Experience,
		Level:          p.Level,
		UntilNextLevel: p.UntilNextLevel,
		Birthday:       p.Birthday.UnixMilli(),
		Banned:         p.Banned,
	}
}

// PlayersFromModel converts a page of players; an empty page encodes as []
func PlayersFromModel(players []*model.Player) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = PlayerFromModel(p)
	}
	return out
}

// Health is the response of the health endpoint
type Health struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}
