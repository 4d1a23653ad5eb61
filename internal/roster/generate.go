package roster

import (
	"time"

	"github.com/mcoot/rpgroster/internal/dependencies/clock"
	"github.com/mcoot/rpgroster/internal/dependencies/random"
	"github.com/mcoot/rpgroster/internal/model"
)

// Name parts are short enough that any pairing fits the 12 character limit
var (
	namePrefixes = []string{"Ara", "Bal", "Cel", "Dor", "Eo", "Fin", "Gal", "Hal", "Ith", "Leg", "Mor", "Thra"}
	nameSuffixes = []string{"gorn", "in", "ebrin", "wyn", "dir", "olas", "ion", "dor", "ith", "mir"}

	titles = []string{
		"Wanderer",
		"Keeper of the Gate",
		"Slayer of Trolls",
		"Lord of the Marches",
		"Herald of Dawn",
		"Scout of the North",
		"Bearer of Secrets",
		"Captain of the Guard",
	}
)

// maxGeneratedExperience keeps generated players within the first few dozen levels
const maxGeneratedExperience = 100_000

// bannedPercent is the share of generated players that start banned
const bannedPercent = 10

// Generator produces random, valid player candidates
type Generator struct {
	random random.Random
	clock  clock.Clock
}

// NewGenerator creates a generator. Birthdays fall between the earliest
// accepted birthday and the clock's current time.
func NewGenerator(rnd random.Random, clk clock.Clock) *Generator {
	return &Generator{random: rnd, clock: clk}
}

// Generate returns n candidates
func (g *Generator) Generate(n int) []model.PlayerPatch {
	candidates := make([]model.PlayerPatch, 0, n)
	for i := 0; i < n; i++ {
		candidates = append(candidates, g.one())
	}
	return candidates
}

func (g *Generator) one() model.PlayerPatch {
	name := namePrefixes[g.random.Intn(len(namePrefixes))] + nameSuffixes[g.random.Intn(len(nameSuffixes))]
	title := titles[g.random.Intn(len(titles))]

	races := model.Races()
	race := races[g.random.Intn(len(races))]
	professions := model.Professions()
	profession := professions[g.random.Intn(len(professions))]

	experience := g.random.Intn(maxGeneratedExperience + 1)
	birthday := g.birthday()
	banned := g.random.Percent(bannedPercent)

	return model.PlayerPatch{
		Name:       &name,
		Title:      &title,
		Race:       &race,
		Profession: &profession,
		Experience: &experience,
		Birthday:   &birthday,
		Banned:     &banned,
	}
}

func (g *Generator) birthday() time.Time {
	latest := g.clock.Now().UTC()
	if latest.Before(model.EarliestBirthday) || latest.After(model.LatestBirthday) {
		latest = model.LatestBirthday
	}
	days := int(latest.Sub(model.EarliestBirthday) / (24 * time.Hour))
	return model.EarliestBirthday.AddDate(0, 0, g.random.Intn(days+1))
}
