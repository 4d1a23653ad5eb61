// Package roster produces player candidates for seeding a store, either from a
// YAML roster file or from a random generator, and imports them.
package roster

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mcoot/rpgroster/internal/model"
)

// File is the YAML document layout of a roster file
type File struct {
	Players []Entry `yaml:"players"`
}

// Entry is one player in a roster file. Birthday accepts a YAML date or timestamp.
type Entry struct {
	Name       *string    `yaml:"name"`
	Title      *string    `yaml:"title"`
	Race       *string    `yaml:"race"`
	Profession *string    `yaml:"profession"`
	Experience *int       `yaml:"experience"`
	Birthday   *time.Time `yaml:"birthday"`
	Banned     *bool      `yaml:"banned"`
}

// LoadFile reads a roster file and converts its entries to candidates
func LoadFile(path string) ([]model.PlayerPatch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a roster document. Field values are checked only for shape;
// the player service validates them on import.
func Parse(data []byte) ([]model.PlayerPatch, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}

	candidates := make([]model.PlayerPatch, 0, len(f.Players))
	for i, e := range f.Players {
		c, err := e.toPatch()
		if err != nil {
			return nil, fmt.Errorf("roster entry %d: %w", i, err)
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

func (e Entry) toPatch() (model.PlayerPatch, error) {
	patch := model.PlayerPatch{
		Name:       e.Name,
		Title:      e.Title,
		Experience: e.Experience,
		Banned:     e.Banned,
	}
	if e.Race != nil {
		race, err := model.ParseRace(*e.Race)
		if err != nil {
			return model.PlayerPatch{}, err
		}
		patch.Race = &race
	}
	if e.Profession != nil {
		profession, err := model.ParseProfession(*e.Profession)
		if err != nil {
			return model.PlayerPatch{}, err
		}
		patch.Profession = &profession
	}
	if e.Birthday != nil {
		b := e.Birthday.UTC()
		patch.Birthday = &b
	}
	return patch, nil
}
