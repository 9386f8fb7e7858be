package catalog

import (
	"math"
	"strconv"
	"strings"
)

// Wildcard is the external filter value meaning "match any".
const Wildcard = "All"

// Constraint is an optional exact-match filter on one garment attribute.
type Constraint struct {
	value string
	set   bool
}

func Any() Constraint { return Constraint{} }

func Exactly(v string) Constraint { return Constraint{value: v, set: true} }

// ParseConstraint turns a query value into a constraint. Empty values and the
// wildcard impose none.
func ParseConstraint(raw string) Constraint {
	if raw == "" || raw == Wildcard {
		return Any()
	}
	return Exactly(raw)
}

func (c Constraint) IsSet() bool { return c.set }

func (c Constraint) Value() string { return c.value }

// Matches compares case-sensitively, without normalization.
func (c Constraint) Matches(v string) bool {
	return !c.set || c.value == v
}

func FilterByAttributes(records []Garment, gender, season Constraint) []Garment {
	out := make([]Garment, 0, len(records))
	for _, g := range records {
		if gender.Matches(g.Gender) && season.Matches(g.Season) {
			out = append(out, g)
		}
	}
	return out
}

// FilterByMaxPrice keeps garments priced at or below maxPrice. A value that
// does not parse to a positive number leaves the records unfiltered.
func FilterByMaxPrice(records []Garment, maxPrice string) []Garment {
	limit, ok := parseMaxPrice(maxPrice)

	out := make([]Garment, 0, len(records))
	for _, g := range records {
		if !ok || g.Price <= limit {
			out = append(out, g)
		}
	}
	return out
}

func parseMaxPrice(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || v <= 0 {
		return 0, false
	}
	return v, true
}
