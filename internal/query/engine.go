package query

import (
	"sort"
	"strings"

	"github.com/mcoot/rpgroster/internal/model"
)

// Match reports whether p satisfies every supplied criterion
func Match(c Criteria, p *model.Player) bool {
	if c.Name != nil && !strings.Contains(p.Name, *c.Name) {
		return false
	}
	if c.Title != nil && !strings.Contains(p.Title, *c.Title) {
		return false
	}
	if c.Race != nil && p.Race != *c.Race {
		return false
	}
	if c.Profession != nil && p.Profession != *c.Profession {
		return false
	}
	if after, before, ok := c.BirthdayRange(); ok {
		if p.Birthday.Before(after) || p.Birthday.After(before) {
			return false
		}
	}
	if c.Banned != nil && p.Banned != *c.Banned {
		return false
	}
	if !inRange(p.Experience, c.MinExperience, c.MaxExperience) {
		return false
	}
	if !inRange(p.Level, c.MinLevel, c.MaxLevel) {
		return false
	}
	return true
}

func inRange(v int, lo, hi *int) bool {
	if lo != nil && v < *lo {
		return false
	}
	if hi != nil && v > *hi {
		return false
	}
	return true
}

// Less orders a before b by the given key, breaking ties by ascending ID
func Less(order Order, a, b *model.Player) bool {
	switch order {
	case OrderName:
		if a.Name != b.Name {
			return a.Name < b.Name
		}
	case OrderExperience:
		if a.Experience != b.Experience {
			return a.Experience < b.Experience
		}
	case OrderBirthday:
		if !a.Birthday.Equal(b.Birthday) {
			return a.Birthday.Before(b.Birthday)
		}
	case OrderLevel:
		if a.Level != b.Level {
			return a.Level < b.Level
		}
	}
	return a.ID < b.ID
}

// Filter returns the players matching c, in input order
func Filter(c Criteria, players []*model.Player) []*model.Player {
	matched := make([]*model.Player, 0, len(players))
	for _, p := range players {
		if Match(c, p) {
			matched = append(matched, p)
		}
	}
	return matched
}

// Apply filters, sorts and pages players according to q.
// A page past the end yields an empty, non-nil slice.
func Apply(q Query, players []*model.Player) []*model.Player {
	matched := Filter(q.Criteria, players)

	order := q.Order
	if order == "" {
		order = OrderID
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return Less(order, matched[i], matched[j])
	})

	return Paginate(q.Page, matched)
}

// Paginate returns the slice of players belonging to page
func Paginate(page Page, players []*model.Player) []*model.Player {
	if page.Size <= 0 {
		return []*model.Player{}
	}
	start := page.Offset()
	if start < 0 || start >= len(players) {
		return []*model.Player{}
	}
	end := start + page.Size
	if end > len(players) {
		end = len(players)
	}
	return players[start:end]
}
