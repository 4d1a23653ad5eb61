// Package validation holds the field rules shared by player creation and update.
package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mcoot/rpgroster/internal/model"
)

const (
	MaxNameLength  = 12
	MaxTitleLength = 30
	MaxExperience  = 10_000_000

	MinBirthYear = 2000
	MaxBirthYear = 3000
)

// ValidateForCreate checks that every required field is present and well-formed
func ValidateForCreate(p model.PlayerPatch) error {
	if p.IsEmpty() {
		return model.ErrEmptyBody
	}

	required := []struct {
		name    string
		present bool
	}{
		{"name", p.Name != nil},
		{"title", p.Title != nil},
		{"race", p.Race != nil},
		{"profession", p.Profession != nil},
		{"experience", p.Experience != nil},
		{"birthday", p.Birthday != nil},
	}
	for _, f := range required {
		if !f.present {
			return model.InvalidField(f.name, "is required")
		}
	}

	return validateFields(p)
}

// ValidateForUpdate checks the fields present in p; absent fields are skipped.
// An empty patch is valid.
func ValidateForUpdate(p model.PlayerPatch) error {
	return validateFields(p)
}

func validateFields(p model.PlayerPatch) error {
	if p.Name != nil {
		if err := ValidateName(*p.Name); err != nil {
			return err
		}
	}
	if p.Title != nil {
		if err := ValidateTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.Race != nil && !p.Race.Valid() {
		return model.InvalidField("race", "is not a known race")
	}
	if p.Profession != nil && !p.Profession.Valid() {
		return model.InvalidField("profession", "is not a known profession")
	}
	if p.Experience != nil {
		if err := ValidateExperience(*p.Experience); err != nil {
			return err
		}
	}
	if p.Birthday != nil {
		if err := ValidateBirthday(*p.Birthday); err != nil {
			return err
		}
	}
	return nil
}

// ValidateName checks the name is 1-12 characters
func ValidateName(name string) error {
	return validateText("name", name, MaxNameLength)
}

// ValidateTitle checks the title is 1-30 characters
func ValidateTitle(title string) error {
	return validateText("title", title, MaxTitleLength)
}

func validateText(field, value string, maxLen int) error {
	n := utf8.RuneCountInString(value)
	if n == 0 {
		return model.InvalidField(field, "must not be empty")
	}
	if n > maxLen {
		return model.InvalidField(field, fmt.Sprintf("must be at most %d characters", maxLen))
	}
	return nil
}

// ValidateExperience checks experience is within [0, 10000000]
func ValidateExperience(exp int) error {
	if exp < 0 || exp > MaxExperience {
		return model.InvalidField("experience", fmt.Sprintf("must be between 0 and %d", MaxExperience))
	}
	return nil
}

// ValidateBirthday checks the birthday falls within the years 2000-3000 (UTC)
func ValidateBirthday(b time.Time) error {
	if b.UnixMilli() < 0 {
		return model.InvalidField("birthday", "must not be before the epoch")
	}
	if b.Before(model.EarliestBirthday) || b.After(model.LatestBirthday) {
		return model.InvalidField("birthday", fmt.Sprintf("must fall within the years %d-%d", MinBirthYear, MaxBirthYear))
	}
	return nil
}

// ParseID parses a player identifier, which must be an integer greater than zero
func ParseID(raw string) (model.PlayerID, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, model.InvalidField("id", fmt.Sprintf("%q is not an integer", raw))
	}
	if id <= 0 {
		return 0, model.InvalidField("id", "must be greater than zero")
	}
	return model.PlayerID(id), nil
}
