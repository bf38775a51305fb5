package game

import (
	"encoding/json"
	"fmt"

	"github.com/vraelian/experimental-sub000/internal/market"
	"github.com/vraelian/experimental-sub000/internal/player"
	"github.com/vraelian/experimental-sub000/internal/travel"
)

// State is the whole mutable simulation: one value, owned by the engine,
// passed explicitly into everything that mutates it. There is no ambient
// game state anywhere.
type State struct {
	Day int `json:"day"`

	Player *player.Player `json:"player"`
	Market *market.State  `json:"market"`

	CurrentLocationID string          `json:"current_location_id"`
	Pending           *travel.Pending `json:"pending,omitempty"`

	Intel          *market.Intel   `json:"intel,omitempty"`
	IntelAvailable map[string]bool `json:"intel_available"`

	// AnnouncedAgeEvents keeps each life event's notice to one emission;
	// the event itself stays pending until the player answers it.
	AnnouncedAgeEvents map[string]bool `json:"announced_age_events"`

	LastMarketDay   int `json:"last_market_day"`
	LastInterestDay int `json:"last_interest_day"`

	GameOver bool `json:"game_over"`

	// ShipSeq numbers owned-ship instance ids.
	ShipSeq int `json:"ship_seq"`
}

// Snapshot is the read-only copy of the full state handed to the
// presentation and persistence collaborators. The route table is excluded
// on purpose: it is re-derived from the catalog on restore.
type Snapshot struct {
	State
}

// Snapshot deep-copies the current state. Returns a zero snapshot before a
// game has started.
func (e *Engine) Snapshot() Snapshot {
	if e.state == nil {
		return Snapshot{}
	}
	b, err := json.Marshal(e.state)
	if err != nil {
		return Snapshot{}
	}
	var out State
	if err := json.Unmarshal(b, &out); err != nil {
		return Snapshot{}
	}
	return Snapshot{State: out}
}

// Restore replaces the running state with a persisted snapshot and
// regenerates the route table from the catalog.
func (e *Engine) Restore(snap Snapshot) error {
	if snap.Player == nil || snap.Market == nil {
		return fmt.Errorf("snapshot is incomplete")
	}
	st := snap.State
	// Snapshots written before a field existed decode its map as nil;
	// the day loop writes into these without checking.
	if st.AnnouncedAgeEvents == nil {
		st.AnnouncedAgeEvents = map[string]bool{}
	}
	if st.IntelAvailable == nil {
		st.IntelAvailable = map[string]bool{}
	}
	e.state = &st
	e.routes = travel.GenerateTable(e.Catalog, e.RNG)
	return nil
}

// Started reports whether a game is in progress (or over).
func (e *Engine) Started() bool {
	return e.state != nil
}
