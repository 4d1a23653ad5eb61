// Package leveling derives a player's level from accumulated experience.
package leveling

import (
	"math"

	"github.com/mcoot/rpgroster/internal/model"
)

// Level returns floor((sqrt(2500 + 200*experience) - 50) / 100).
// Negative experience is treated as zero.
func Level(experience int) int {
	if experience < 0 {
		experience = 0
	}
	root := isqrt(2500 + 200*int64(experience))
	return int((root - 50) / 100)
}

// UntilNextLevel returns the experience still needed to reach the next level
func UntilNextLevel(experience int) int {
	lvl := Level(experience)
	return 50*(lvl+1)*(lvl+2) - experience
}

// Apply recomputes the derived level fields of p from its experience.
// It is the only place those fields are written.
func Apply(p *model.Player) {
	p.Level = Level(p.Experience)
	p.UntilNextLevel = UntilNextLevel(p.Experience)
}

// isqrt returns floor(sqrt(n)) exactly, correcting float rounding at perfect squares
func isqrt(n int64) int64 {
	r := int64(math.Sqrt(float64(n)))
	for r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}
