// internal/rank/rank.go
//
// Rank table for the puzzle: named tiers reached once the earned points
// cross a fraction of the total points.
package rank

import "math"

// Tier is one named rank and the fraction of total points it requires.
type Tier struct {
	Name     string  `json:"name"`
	Fraction float64 `json:"fraction"`
}

// Table lists the tiers in ascending order of Fraction.
var Table = []Tier{
	{"Beginner", 0},
	{"Good Start", 0.02},
	{"Moving Up", 0.05},
	{"Good", 0.08},
	{"Solid", 0.15},
	{"Nice", 0.25},
	{"Great", 0.40},
	{"Amazing", 0.50},
	{"Genius", 0.70},
	{"Queen Bee", 1},
}

// Required returns the points needed to reach t out of total.
func Required(t Tier, total int) int {
	return int(math.Round(float64(total) * t.Fraction))
}

// For returns the highest tier whose required points do not exceed earned.
// When several tiers need the same points the later one wins.
func For(earned, total int) Tier {
	return Table[index(earned, total)]
}

// Progress describes where a player stands in the table.
type Progress struct {
	Current Tier  `json:"current"`
	Next    *Tier `json:"next,omitempty"` // nil at the top tier
	ToNext  int   `json:"toNext"`         // points still needed for Next
}

// ProgressFor returns the current tier and the distance to the next one.
func ProgressFor(earned, total int) Progress {
	i := index(earned, total)
	pr := Progress{Current: Table[i]}
	if i+1 < len(Table) {
		next := Table[i+1]
		pr.Next = &next
		pr.ToNext = Required(next, total) - earned
	}
	return pr
}

func index(earned, total int) int {
	best := 0
	for i, t := range Table {
		if Required(t, total) <= earned {
			best = i
		}
	}
	return best
}
