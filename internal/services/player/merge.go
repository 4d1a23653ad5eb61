package player

import (
	"github.com/mcoot/rpgroster/internal/model"
	"github.com/mcoot/rpgroster/internal/services/leveling"
)

// Merge overwrites the fields of existing that patch supplies and recomputes
// the derived levels. The ID is never changed. existing is not modified.
func Merge(existing model.Player, patch model.PlayerPatch) model.Player {
	updated := existing
	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	if patch.Title != nil {
		updated.Title = *patch.Title
	}
	if patch.Race != nil {
		updated.Race = *patch.Race
	}
	if patch.Profession != nil {
		updated.Profession = *patch.Profession
	}
	if patch.Experience != nil {
		updated.Experience = *patch.Experience
	}
	if patch.Birthday != nil {
		updated.Birthday = patch.Birthday.UTC()
	}
	if patch.Banned != nil {
		updated.Banned = *patch.Banned
	}
	leveling.Apply(&updated)
	return updated
}

// FromCandidate builds a new, unsaved player from a validated create candidate.
// An absent banned flag defaults to false.
func FromCandidate(c model.PlayerPatch) model.Player {
	return Merge(model.Player{}, c)
}
