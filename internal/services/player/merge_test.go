package player

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/rpgroster/internal/model"
)

func ptr[T any](v T) *T { return &v }

func existingPlayer() model.Player {
	return model.Player{
		ID:             7,
		Name:           "Faramir",
		Title:          "Captain of Gondor",
		Race:           model.RaceHuman,
		Profession:     model.ProfessionWarrior,
		Experience:     300,
		Level:          2,
		UntilNextLevel: 300,
		Birthday:       time.Date(2015, time.March, 3, 0, 0, 0, 0, time.UTC),
		Banned:         true,
	}
}

func TestMergeEmptyPatchIsIdentity(t *testing.T) {
	existing := existingPlayer()
	assert.Equal(t, existing, Merge(existing, model.PlayerPatch{}))
}

func TestMergeIsFieldwiseSelective(t *testing.T) {
	existing := existingPlayer()

	tests := []struct {
		name   string
		patch  model.PlayerPatch
		expect func(p *model.Player)
	}{
		{"name", model.PlayerPatch{Name: ptr("Steward")}, func(p *model.Player) { p.Name = "Steward" }},
		{"title", model.PlayerPatch{Title: ptr("Prince of Ithilien")}, func(p *model.Player) { p.Title = "Prince of Ithilien" }},
		{"race", model.PlayerPatch{Race: ptr(model.RaceElf)}, func(p *model.Player) { p.Race = model.RaceElf }},
		{"profession", model.PlayerPatch{Profession: ptr(model.ProfessionRogue)}, func(p *model.Player) { p.Profession = model.ProfessionRogue }},
		{"birthday", model.PlayerPatch{Birthday: ptr(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))}, func(p *model.Player) {
			p.Birthday = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		}},
		{"banned false is applied", model.PlayerPatch{Banned: ptr(false)}, func(p *model.Player) { p.Banned = false }},
		{"experience recomputes levels", model.PlayerPatch{Experience: ptr(1000)}, func(p *model.Player) {
			p.Experience = 1000
			p.Level = 4
			p.UntilNextLevel = 500
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := existing
			tt.expect(&want)
			assert.Equal(t, want, Merge(existing, tt.patch))
		})
	}
}

func TestMergeNeverChangesID(t *testing.T) {
	got := Merge(existingPlayer(), model.PlayerPatch{Name: ptr("Other"), Experience: ptr(0)})
	assert.Equal(t, model.PlayerID(7), got.ID)
	assert.Equal(t, 0, got.Level)
	assert.Equal(t, 100, got.UntilNextLevel)
}

func TestFromCandidateDefaultsBannedToFalse(t *testing.T) {
	p := FromCandidate(model.PlayerPatch{
		Name:       ptr("Rosie"),
		Title:      ptr("Innkeeper"),
		Race:       ptr(model.RaceHobbit),
		Profession: ptr(model.ProfessionCleric),
		Experience: ptr(99),
		Birthday:   ptr(time.Date(2003, 4, 5, 0, 0, 0, 0, time.UTC)),
	})

	assert.False(t, p.Banned)
	assert.Zero(t, p.ID)
	assert.Equal(t, 0, p.Level)
	assert.Equal(t, 1, p.UntilNextLevel)
}
