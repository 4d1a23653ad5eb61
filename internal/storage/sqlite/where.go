package sqlite

import (
	"strings"

	"github.com/mcoot/rpgroster/internal/query"
)

// whereClause renders c as a SQL condition and its positional arguments.
// An empty condition is returned when c imposes no constraint.
func whereClause(c query.Criteria) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		conds = append(conds, cond)
		args = append(args, arg)
	}

	// instr is case-sensitive, unlike LIKE
	if c.Name != nil {
		add("instr(name, ?) > 0", *c.Name)
	}
	if c.Title != nil {
		add("instr(title, ?) > 0", *c.Title)
	}
	if c.Race != nil {
		add("race = ?", c.Race.String())
	}
	if c.Profession != nil {
		add("profession = ?", c.Profession.String())
	}
	if after, before, ok := c.BirthdayRange(); ok {
		add("birthday >= ?", after.UnixMilli())
		add("birthday <= ?", before.UnixMilli())
	}
	if c.Banned != nil {
		add("banned = ?", *c.Banned)
	}
	if c.MinExperience != nil {
		add("experience >= ?", *c.MinExperience)
	}
	if c.MaxExperience != nil {
		add("experience <= ?", *c.MaxExperience)
	}
	if c.MinLevel != nil {
		add("level >= ?", *c.MinLevel)
	}
	if c.MaxLevel != nil {
		add("level <= ?", *c.MaxLevel)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// orderClause returns the ORDER BY clause for o, with id as the tie-breaker
func orderClause(o query.Order) string {
	switch o {
	case query.OrderName:
		return "ORDER BY name, id"
	case query.OrderExperience:
		return "ORDER BY experience, id"
	case query.OrderBirthday:
		return "ORDER BY birthday, id"
	case query.OrderLevel:
		return "ORDER BY level, id"
	default:
		return "ORDER BY id"
	}
}
