package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/mcoot/rpgroster/internal/model"
)

// MaxBodyBytes bounds the size of a player request body
const MaxBodyBytes = 1 << 16

// PlayerRequest is the request body for creating or updating a player.
// Absent fields stay nil. id, level and untilNextLevel are ignored if sent.
type PlayerRequest struct {
	Name       *string `json:"name"`
	Title      *string `json:"title"`
	Race       *string `json:"race"`
	Profession *string `json:"profession"`
	Experience *int    `json:"experience"`
	Birthday   *int64  `json:"birthday"` // epoch milliseconds
	Banned     *bool   `json:"banned"`
}

// DecodePlayer reads a PlayerRequest from body. An empty body decodes to an empty request.
func DecodePlayer(body io.Reader) (PlayerRequest, error) {
	var req PlayerRequest
	err := json.NewDecoder(io.LimitReader(body, MaxBodyBytes)).Decode(&req)
	if err != nil && !errors.Is(err, io.EOF) {
		return PlayerRequest{}, fmt.Errorf("%w: malformed request body: %s", model.ErrInvalidInput, err.Error())
	}
	return req, nil
}

// ToPatch converts the request to a model.PlayerPatch, parsing enumerated values
func (r PlayerRequest) ToPatch() (model.PlayerPatch, error) {
	patch := model.PlayerPatch{
		Name:       r.Name,
		Title:      r.Title,
		Experience: r.Experience,
		Banned:     r.Banned,
	}
	if r.Race != nil {
		race, err := model.ParseRace(*r.Race)
		if err != nil {
			return model.PlayerPatch{}, err
		}
		patch.Race = &race
	}
	if r.Profession != nil {
		profession, err := model.ParseProfession(*r.Profession)
		if err != nil {
			return model.PlayerPatch{}, err
		}
		patch.Profession = &profession
	}
	if r.Birthday != nil {
		if *r.Birthday < 0 {
			return model.PlayerPatch{}, model.InvalidField("birthday", "must not be before the epoch")
		}
		b := time.UnixMilli(*r.Birthday).UTC()
		patch.Birthday = &b
	}
	return patch, nil
}
