package travel

import (
	"math"

	"github.com/vraelian/experimental-sub000/internal/catalog"
	"github.com/vraelian/experimental-sub000/internal/rng"
)

// Route is the base cost of one ordered (from, to) hop before perk and
// event modifiers.
type Route struct {
	Days int `json:"days"`
	Fuel int `json:"fuel"`
}

// Table maps from-location → to-location → route cost. It is regenerated
// deterministically in shape (randomized in value) at every game start and
// is never persisted; a resumed game re-derives it from the catalog.
type Table map[string]map[string]Route

// GenerateTable builds route costs for every ordered location pair.
// Distance is the difference of catalog indexes. The two adjacent "near"
// locations get a 1-3 day short hop; everything else runs 15 days plus 10
// per distance unit with a little jitter. Fuel grows with distance and with
// how deep into the catalog the destination sits.
func GenerateTable(cat *catalog.Catalog, src rng.Source) Table {
	locs := cat.Locations
	count := len(locs)
	scalar := cat.Constants.FuelScalar

	t := make(Table, count)
	for fromIdx, from := range locs {
		t[from.ID] = make(map[string]Route, count-1)
		for toIdx, to := range locs {
			if from.ID == to.ID {
				continue
			}
			dist := fromIdx - toIdx
			if dist < 0 {
				dist = -dist
			}

			var days int
			if fromIdx+toIdx == 1 {
				// The first two catalog locations sit close enough for a
				// short hop.
				days = rng.Between(src, 1, 3)
			} else {
				days = 15 + dist*10 + src.Intn(4)
			}

			jitter := rng.Uniform(src, 0, 1.5)
			fuel := int(math.Round((float64(dist)*2 + jitter) * scalar * (1 + float64(toIdx)/float64(count)*0.5)))
			if fuel < 1 {
				fuel = 1
			}

			t[from.ID][to.ID] = Route{Days: days, Fuel: fuel}
		}
	}
	return t
}

// Pending is the suspended-in-flight travel record: the destination plus
// the modifier accumulator an interrupting event writes into. It exists
// only while an event choice is awaited and is serializable, which is what
// makes resuming after a reload safe.
type Pending struct {
	DestinationID string `json:"destination_id"`
	EventID       string `json:"event_id"`

	ExtraDays     int     `json:"extra_days"`
	DayMultPct    int     `json:"day_mult_pct"`  // additional percent, +50 means ×1.5
	OverrideDays  int     `json:"override_days"` // 0 means no override
	HullDamagePct float64 `json:"hull_damage_pct"`
}

// ModifiedDays applies the accumulated time modifiers to a base day count
// in fixed precedence: additive, then percent, then absolute override.
// Never returns less than one day.
func (p *Pending) ModifiedDays(base int) int {
	days := base + p.ExtraDays
	if p.DayMultPct != 0 {
		days = int(math.Round(float64(days) * (1 + float64(p.DayMultPct)/100)))
	}
	if p.OverrideDays > 0 {
		days = p.OverrideDays
	}
	if days < 1 {
		days = 1
	}
	return days
}
