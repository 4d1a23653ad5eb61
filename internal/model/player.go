package model

import "time"

// PlayerID uniquely identifies a player record. Zero means "not yet stored".
type PlayerID int64

// Player is a stored roster record
type Player struct {
	ID             PlayerID
	Name           string
	Title          string
	Race           Race
	Profession     Profession
	Experience     int
	Level          int // derived from Experience
	UntilNextLevel int // derived from Experience
	Birthday       time.Time
	Banned         bool
}

// PlayerPatch carries client-supplied player fields.
// A nil field means the client did not supply it.
// The same shape is used for create candidates and update patches.
type PlayerPatch struct {
	Name       *string
	Title      *string
	Race       *Race
	Profession *Profession
	Experience *int
	Birthday   *time.Time
	Banned     *bool
}

// IsEmpty reports whether no field was supplied
func (p PlayerPatch) IsEmpty() bool {
	return p.Name == nil &&
		p.Title == nil &&
		p.Race == nil &&
		p.Profession == nil &&
		p.Experience == nil &&
		p.Birthday == nil &&
		p.Banned == nil
}

// Birthdays must fall within the years 2000-3000 inclusive (UTC)
var (
	EarliestBirthday = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	LatestBirthday   = time.Date(3001, time.January, 1, 0, 0, 0, 0, time.UTC).Add(-time.Millisecond)
)
