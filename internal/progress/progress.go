package progress

import (
	"errors"

	"github.com/vraelian/experimental-sub000/internal/catalog"
	"github.com/vraelian/experimental-sub000/internal/player"
	"github.com/vraelian/experimental-sub000/internal/ship"
)

var ErrUnknownChoice = errors.New("unknown age event or choice")

// Tracker evaluates wealth milestones and age-triggered life events against
// the catalog.
type Tracker struct {
	Catalog *catalog.Catalog
}

// MilestoneResult reports one newly reached milestone and what it unlocked.
type MilestoneResult struct {
	MilestoneID      string `json:"milestone_id"`
	Message          string `json:"message"`
	UnlockedTier     int    `json:"unlocked_tier,omitempty"`
	UnlockedLocation string `json:"unlocked_location,omitempty"`
}

// CheckMilestones fires every unseen milestone whose threshold current
// credits meet, applying its tier and location unlocks. A milestone with no
// unlock fields still fires once for its message.
func (t Tracker) CheckMilestones(p *player.Player) []MilestoneResult {
	var results []MilestoneResult
	for _, m := range t.Catalog.Milestones {
		if p.SeenMilestones[m.ID] {
			continue
		}
		if p.Credits < float64(m.Threshold) {
			continue
		}
		p.SeenMilestones[m.ID] = true
		res := MilestoneResult{MilestoneID: m.ID, Message: m.Message}
		if m.UnlockTier > p.UnlockedTier {
			p.UnlockedTier = m.UnlockTier
			res.UnlockedTier = m.UnlockTier
		}
		if m.UnlockLocation != "" && !p.UnlockedLocations[m.UnlockLocation] {
			p.UnlockedLocations[m.UnlockLocation] = true
			res.UnlockedLocation = m.UnlockLocation
		}
		results = append(results, res)
	}
	return results
}

// PendingAgeEvents returns the unseen age events whose day or credit
// trigger has been met, in catalog order. They are marked seen by
// ApplyAgeChoice, not here, so an event stays pending until the player
// answers it.
func (t Tracker) PendingAgeEvents(p *player.Player, day int) []catalog.AgeEvent {
	var due []catalog.AgeEvent
	for _, ev := range t.Catalog.AgeEvents {
		if p.SeenAgeEvents[ev.ID] {
			continue
		}
		if ev.TriggerDay > 0 && day >= ev.TriggerDay {
			due = append(due, ev)
			continue
		}
		if ev.TriggerCredits > 0 && p.Credits >= float64(ev.TriggerCredits) {
			due = append(due, ev)
		}
	}
	return due
}

// ApplyAgeChoice resolves one age event with the selected choice, granting
// any perk, title or ship it names. Returns the id of a granted ship, if
// any, so the caller can announce it.
func (t Tracker) ApplyAgeChoice(p *player.Player, eventID string, choiceIdx int, newShipID func() string) (grantedShip string, err error) {
	var ev catalog.AgeEvent
	found := false
	for _, candidate := range t.Catalog.AgeEvents {
		if candidate.ID == eventID {
			ev = candidate
			found = true
			break
		}
	}
	if !found || p.SeenAgeEvents[eventID] || choiceIdx < 0 || choiceIdx >= len(ev.Choices) {
		return "", ErrUnknownChoice
	}

	choice := ev.Choices[choiceIdx]
	p.SeenAgeEvents[eventID] = true

	if choice.GrantPerkID != "" {
		p.Perks[choice.GrantPerkID] = true
	}
	if choice.GrantTitle != "" {
		p.Title = choice.GrantTitle
	}
	if choice.GrantShipID != "" {
		spec, ok := t.Catalog.Ship(choice.GrantShipID)
		if ok {
			id := newShipID()
			p.AddShip(id, ship.New(spec.ID, spec.MaxHealth, spec.MaxFuel))
			grantedShip = id
		}
	}
	return grantedShip, nil
}
