package model

import (
	"fmt"
	"strings"
)

// Race is one of a fixed set of character races.
// The zero value is not a valid race.
type Race uint8

const (
	RaceHuman Race = iota + 1
	RaceDwarf
	RaceElf
	RaceGiant
	RaceOrc
	RaceTroll
	RaceHobbit
)

var raceNames = map[Race]string{
	RaceHuman:  "HUMAN",
	RaceDwarf:  "DWARF",
	RaceElf:    "ELF",
	RaceGiant:  "GIANT",
	RaceOrc:    "ORC",
	RaceTroll:  "TROLL",
	RaceHobbit: "HOBBIT",
}

// Races returns every valid race in declaration order
func Races() []Race {
	return []Race{RaceHuman, RaceDwarf, RaceElf, RaceGiant, RaceOrc, RaceTroll, RaceHobbit}
}

// ParseRace converts a race name (case-insensitive) to a Race
func ParseRace(s string) (Race, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for r, name := range raceNames {
		if name == upper {
			return r, nil
		}
	}
	return 0, InvalidField("race", fmt.Sprintf("%q is not a known race", s))
}

// Valid reports whether r is one of the declared races
func (r Race) Valid() bool {
	_, ok := raceNames[r]
	return ok
}

func (r Race) String() string {
	if name, ok := raceNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Race(%d)", uint8(r))
}

// MarshalText implements encoding.TextMarshaler
func (r Race) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, InvalidField("race", "is not set")
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *Race) UnmarshalText(text []byte) error {
	parsed, err := ParseRace(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Profession is one of a fixed set of character professions.
// The zero value is not a valid profession.
type Profession uint8

const (
	ProfessionWarrior Profession = iota + 1
	ProfessionRogue
	ProfessionSorcerer
	ProfessionCleric
	ProfessionPaladin
	ProfessionNazgul
	ProfessionWarlock
	ProfessionDruid
)

var professionNames = map[Profession]string{
	ProfessionWarrior:  "WARRIOR",
	ProfessionRogue:    "ROGUE",
	ProfessionSorcerer: "SORCERER",
	ProfessionCleric:   "CLERIC",
	ProfessionPaladin:  "PALADIN",
	ProfessionNazgul:   "NAZGUL",
	ProfessionWarlock:  "WARLOCK",
	ProfessionDruid:    "DRUID",
}

// Professions returns every valid profession in declaration order
func Professions() []Profession {
	return []Profession{
		ProfessionWarrior, ProfessionRogue, ProfessionSorcerer, ProfessionCleric,
		ProfessionPaladin, ProfessionNazgul, ProfessionWarlock, ProfessionDruid,
	}
}

// ParseProfession converts a profession name (case-insensitive) to a Profession
func ParseProfession(s string) (Profession, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for p, name := range professionNames {
		if name == upper {
			return p, nil
		}
	}
	return 0, InvalidField("profession", fmt.Sprintf("%q is not a known profession", s))
}

// Valid reports whether p is one of the declared professions
func (p Profession) Valid() bool {
	_, ok := professionNames[p]
	return ok
}

func (p Profession) String() string {
	if name, ok := professionNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Profession(%d)", uint8(p))
}

// MarshalText implements encoding.TextMarshaler
func (p Profession) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, InvalidField("profession", "is not set")
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *Profession) UnmarshalText(text []byte) error {
	parsed, err := ParseProfession(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
