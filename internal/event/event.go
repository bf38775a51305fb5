package event

import (
	"github.com/vraelian/experimental-sub000/internal/catalog"
	"github.com/vraelian/experimental-sub000/internal/market"
	"github.com/vraelian/experimental-sub000/internal/player"
	"github.com/vraelian/experimental-sub000/internal/rng"
	"github.com/vraelian/experimental-sub000/internal/ship"
	"github.com/vraelian/experimental-sub000/internal/travel"
)

// Context is everything a predicate or effect may read or mutate, passed
// explicitly so neither ever captures outer mutable state.
type Context struct {
	Day        int
	LocationID string
	Player     *player.Player
	Ship       *ship.State
	Spec       catalog.ShipSpec
	Cargo      *ship.Inventory
	Market     *market.State
	Pending    *travel.Pending
	Catalog    *catalog.Catalog
	RNG        rng.Source
}

// Predicate decides whether an event is eligible against the current state
// and active ship. Predicates are pure: same context, same answer.
type Predicate func(Context) bool

// Outcome is one weighted result of a choice. Weights within a choice sum
// to 1.0.
type Outcome struct {
	Weight  float64
	Text    string
	Effects []Effect
}

type Choice struct {
	Label    string
	Outcomes []Outcome
}

// Event is a random encounter that can interrupt travel.
type Event struct {
	ID       string
	Title    string
	Scenario string
	Eligible Predicate
	Choices  []Choice
}

// Roll decides whether an encounter interrupts a departure. Unless forced,
// most departures roll under the event chance and return nil. Otherwise the
// table is filtered by eligibility and one eligible event is picked
// uniformly; nil when none qualify.
func Roll(events []Event, ctx Context, chance float64, force bool) *Event {
	if !force && ctx.RNG.Float64() >= chance {
		return nil
	}
	eligible := make([]*Event, 0, len(events))
	for i := range events {
		ev := &events[i]
		if ev.Eligible == nil || ev.Eligible(ctx) {
			eligible = append(eligible, ev)
		}
	}
	if len(eligible) == 0 {
		return nil
	}
	return eligible[ctx.RNG.Intn(len(eligible))]
}

// PickOutcome selects an outcome by cumulative-weight sampling: walk the
// outcomes in order, selecting the first whose weight exceeds the remaining
// draw, subtracting as we go. Floating-point drift that leaves a remainder
// falls through to the last outcome, so a selection is always made and each
// outcome's long-run frequency matches its declared weight.
func PickOutcome(c Choice, draw float64) Outcome {
	r := draw
	for _, o := range c.Outcomes {
		if r < o.Weight {
			return o
		}
		r -= o.Weight
	}
	return c.Outcomes[len(c.Outcomes)-1]
}
