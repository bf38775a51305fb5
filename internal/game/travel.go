package game

import (
	"fmt"
	"math"

	"github.com/vraelian/experimental-sub000/internal/catalog"
	"github.com/vraelian/experimental-sub000/internal/event"
	"github.com/vraelian/experimental-sub000/internal/player"
	"github.com/vraelian/experimental-sub000/internal/ship"
	"github.com/vraelian/experimental-sub000/internal/telemetry"
	"github.com/vraelian/experimental-sub000/internal/travel"
)

// EventView is the presentation-safe slice of an interrupting event: the
// scenario text and choice labels, never the weights or effects behind them.
type EventView struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Scenario string   `json:"scenario"`
	Choices  []string `json:"choices"`
}

// TravelResult reports a departure. Either Arrived is true and the journey
// totals are filled in, or Event is set and the journey is suspended until
// ResolveChoice.
type TravelResult struct {
	DestinationID string     `json:"destination_id"`
	Days          int        `json:"days"`
	FuelSpent     int        `json:"fuel_spent"`
	HullDamage    float64    `json:"hull_damage"`
	Arrived       bool       `json:"arrived"`
	Event         *EventView `json:"event,omitempty"`
}

// TravelTo departs for a destination. Selecting the current location is a
// view switch, not a journey. A journey the active ship could never fuel
// is rejected outright; one it merely cannot fuel yet fails with the
// shortfall left for the player to fix.
func (e *Engine) TravelTo(destID string) (TravelResult, error) {
	if err := e.guard(); err != nil {
		return TravelResult{}, err
	}
	st := e.state
	if destID == st.CurrentLocationID {
		return TravelResult{DestinationID: destID, Arrived: true}, nil
	}
	if _, ok := e.Catalog.Location(destID); !ok || !st.Player.UnlockedLocations[destID] {
		return TravelResult{}, ErrInvalidCommand
	}

	route := e.routes[st.CurrentLocationID][destID]
	fuel := e.fuelNeeded(route)
	s := st.Player.ActiveShip()
	if fuel > s.MaxFuel {
		return TravelResult{}, ErrFuelCapacityExceeded
	}
	if fuel > s.Fuel {
		return TravelResult{}, ErrInsufficientFuel
	}

	pending := &travel.Pending{DestinationID: destID}
	ev := event.Roll(e.Events, e.eventContext(pending), e.Catalog.Constants.RandomEventChance, false)
	if ev != nil {
		pending.EventID = ev.ID
		st.Pending = pending
		e.notify(telemetry.KindEventTriggered, ev.Title, map[string]any{"event_id": ev.ID})
		return TravelResult{DestinationID: destID, Event: viewOf(ev)}, nil
	}
	return e.commitTravel(pending)
}

// ResolveChoice answers the event suspending the current journey: one
// outcome is drawn by weight, its effects applied, and travel resumes
// toward whatever destination the effects left in place. The caller names
// the event it is answering so a stale client cannot resolve a newer one.
func (e *Engine) ResolveChoice(eventID string, choiceIdx int) (TravelResult, error) {
	st := e.state
	if st == nil || st.GameOver || st.Pending == nil || st.Pending.EventID == "" {
		return TravelResult{}, ErrInvalidCommand
	}
	if eventID != st.Pending.EventID {
		return TravelResult{}, ErrInvalidCommand
	}
	ev := e.findEvent(st.Pending.EventID)
	if ev == nil || choiceIdx < 0 || choiceIdx >= len(ev.Choices) {
		return TravelResult{}, ErrInvalidCommand
	}

	outcome := event.PickOutcome(ev.Choices[choiceIdx], e.RNG.Float64())
	ctx := e.eventContext(st.Pending)
	text := outcome.Text
	for _, fx := range outcome.Effects {
		extra, err := event.Apply(fx, ctx)
		if err != nil {
			return TravelResult{}, err
		}
		if extra != "" {
			text += " " + extra
		}
	}
	e.notify(telemetry.KindEventOutcome, text, map[string]any{"event_id": ev.ID})

	st.Pending.EventID = ""
	return e.commitTravel(st.Pending)
}

// ResumeTravel re-commits a suspended journey whose event is already
// resolved, the path taken after restoring a mid-travel save.
func (e *Engine) ResumeTravel() (TravelResult, error) {
	st := e.state
	if st == nil || st.GameOver || st.Pending == nil {
		return TravelResult{}, ErrInvalidCommand
	}
	if st.Pending.EventID != "" {
		return TravelResult{}, ErrInvalidCommand
	}
	return e.commitTravel(st.Pending)
}

// PendingEvent exposes the event awaiting a choice, if any.
func (e *Engine) PendingEvent() *EventView {
	st := e.state
	if st == nil || st.Pending == nil || st.Pending.EventID == "" {
		return nil
	}
	ev := e.findEvent(st.Pending.EventID)
	if ev == nil {
		return nil
	}
	return viewOf(ev)
}

// commitTravel finishes a journey: modified duration, fuel, attrition,
// then the day clock. Fuel is re-checked here because event effects may
// have drained the tank since departure; a shortfall cancels the journey
// in place rather than stranding the ship in transit.
func (e *Engine) commitTravel(pending *travel.Pending) (TravelResult, error) {
	st := e.state
	p := st.Player
	s := p.ActiveShip()
	route := e.routes[st.CurrentLocationID][pending.DestinationID]

	days := int(math.Round(float64(route.Days) * e.perkFactor(p, func(pk catalog.Perk) float64 { return pk.TravelTimeMod })))
	if days < 1 {
		days = 1
	}
	days = pending.ModifiedDays(days)

	fuel := e.fuelNeeded(route)
	if fuel > s.Fuel {
		st.Pending = nil
		return TravelResult{}, ErrInsufficientFuel
	}
	s.AddFuel(-fuel)

	k := e.Catalog.Constants
	decay := float64(days) * k.HullDecayPerDay * e.perkFactor(p, func(pk catalog.Perk) float64 { return pk.HullDecayMod })
	damage := decay + pending.HullDamagePct*float64(s.MaxHealth)/100
	halfBefore, quarterBefore := s.AlertHalf, s.AlertQuarter
	s.Damage(damage)
	if s.Destroyed() {
		st.Pending = nil
		e.handleDestruction()
		return TravelResult{DestinationID: pending.DestinationID, Days: days, FuelSpent: fuel, HullDamage: damage}, nil
	}

	st.Pending = nil
	st.CurrentLocationID = pending.DestinationID
	e.AdvanceDays(days)

	loc, _ := e.Catalog.Location(pending.DestinationID)
	e.notify(telemetry.KindArrival,
		fmt.Sprintf("Docked at %s after %d days.", loc.Name, days),
		map[string]any{"location_id": loc.ID, "days": days, "fuel_spent": fuel, "hull_damage": damage})
	if s.AlertQuarter && !quarterBefore {
		e.notify(telemetry.KindHullAlert, "Hull integrity critical, below one quarter.", map[string]any{"threshold": 25})
	} else if s.AlertHalf && !halfBefore {
		e.notify(telemetry.KindHullAlert, "Hull integrity below half.", map[string]any{"threshold": 50})
	}
	return TravelResult{DestinationID: pending.DestinationID, Days: days, FuelSpent: fuel, HullDamage: damage, Arrived: true}, nil
}

// handleDestruction strips the destroyed active vessel and its cargo. The
// fleet survives the loss unless it was the last hull.
func (e *Engine) handleDestruction() {
	st := e.state
	p := st.Player
	lost := p.ActiveShipID
	lostName := e.shipName(p.ActiveShip())
	replacement := p.RemoveShip(lost)
	if replacement == "" {
		e.notify(telemetry.KindShipDestroyed,
			fmt.Sprintf("The %s breaks up in transit. Hull integrity lost.", lostName),
			map[string]any{"ship_id": lost})
		st.GameOver = true
		e.notify(telemetry.KindGameOver, "With no vessel left to your name, your trading days are over.", nil)
		return
	}
	e.notify(telemetry.KindShipDestroyed,
		fmt.Sprintf("The %s breaks up in transit. Command transfers to the %s.", lostName, e.shipName(p.Ships[replacement])),
		map[string]any{"ship_id": lost, "replacement_ship_id": replacement})
}

// shipName resolves a vessel's spec name, falling back to the spec id for
// specs no longer in the catalog.
func (e *Engine) shipName(s *ship.State) string {
	if spec, ok := e.Catalog.Ship(s.SpecID); ok {
		return spec.Name
	}
	return s.SpecID
}

// fuelNeeded applies the fleet's fuel-efficiency perks to a route cost.
func (e *Engine) fuelNeeded(route travel.Route) int {
	mod := e.perkFactor(e.state.Player, func(pk catalog.Perk) float64 { return pk.FuelMod })
	fuel := int(math.Round(float64(route.Fuel) * mod))
	if fuel < 1 {
		fuel = 1
	}
	return fuel
}

// perkFactor multiplies the selected modifier across every perk held.
// Unset modifiers contribute nothing.
func (e *Engine) perkFactor(p *player.Player, pick func(catalog.Perk) float64) float64 {
	factor := 1.0
	for id := range p.Perks {
		pk, ok := e.Catalog.Perk(id)
		if !ok {
			continue
		}
		if v := pick(pk); v > 0 {
			factor *= v
		}
	}
	return factor
}

func (e *Engine) eventContext(pending *travel.Pending) event.Context {
	st := e.state
	p := st.Player
	s := p.ActiveShip()
	spec, _ := e.Catalog.Ship(s.SpecID)
	return event.Context{
		Day:        st.Day,
		LocationID: st.CurrentLocationID,
		Player:     p,
		Ship:       s,
		Spec:       spec,
		Cargo:      p.ActiveCargo(),
		Market:     st.Market,
		Pending:    pending,
		Catalog:    e.Catalog,
		RNG:        e.RNG,
	}
}

func (e *Engine) findEvent(id string) *event.Event {
	for i := range e.Events {
		if e.Events[i].ID == id {
			return &e.Events[i]
		}
	}
	return nil
}

func viewOf(ev *event.Event) *EventView {
	labels := make([]string, len(ev.Choices))
	for i, c := range ev.Choices {
		labels[i] = c.Label
	}
	return &EventView{ID: ev.ID, Title: ev.Title, Scenario: ev.Scenario, Choices: labels}
}
