package player

import (
	"github.com/vraelian/experimental-sub000/internal/ship"
)

// FinanceEntry is one point in the bounded finance-history log used for
// charting: the credit balance after the transaction, what kind it was, and
// its signed amount.
type FinanceEntry struct {
	Credits float64 `json:"credits"`
	Kind    string  `json:"kind"`
	Amount  float64 `json:"amount"`
}

// Player is the full dynamic player aggregate: identity, money, vessels and
// progression flags. It is mutated only through engine command handlers.
type Player struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Age   int    `json:"age"`

	Credits        float64 `json:"credits"`
	Debt           int     `json:"debt"`
	WeeklyInterest int     `json:"weekly_interest"`
	LoanStartDay   int     `json:"loan_start_day"` // 0 means no active loan

	GarnishmentWarned bool `json:"garnishment_warned"`
	PaidOffOnce       bool `json:"paid_off_once"`

	ActiveShipID string                     `json:"active_ship_id"`
	ShipOrder    []string                   `json:"ship_order"`
	Ships        map[string]*ship.State     `json:"ships"`
	Cargo        map[string]*ship.Inventory `json:"cargo"`

	UnlockedLocations map[string]bool `json:"unlocked_locations"`
	UnlockedTier      int             `json:"unlocked_tier"`
	SeenMilestones    map[string]bool `json:"seen_milestones"`
	SeenAgeEvents     map[string]bool `json:"seen_age_events"`
	Perks             map[string]bool `json:"perks"`

	// BirthdayBonus accumulates the per-birthday trade-profit bonus.
	BirthdayBonus float64 `json:"birthday_bonus"`

	FinanceLog []FinanceEntry `json:"finance_log"`
}

// New returns a player with empty holdings; starting money and the first
// ship are seeded by the game engine from the catalog.
func New(name string) *Player {
	return &Player{
		Name:              name,
		Title:             "Trader",
		UnlockedTier:      1,
		Ships:             map[string]*ship.State{},
		Cargo:             map[string]*ship.Inventory{},
		UnlockedLocations: map[string]bool{},
		SeenMilestones:    map[string]bool{},
		SeenAgeEvents:     map[string]bool{},
		Perks:             map[string]bool{},
	}
}

// ActiveShip returns the active vessel's state, or nil after game over.
func (p *Player) ActiveShip() *ship.State {
	return p.Ships[p.ActiveShipID]
}

// ActiveCargo returns the active vessel's hold, or nil after game over.
func (p *Player) ActiveCargo() *ship.Inventory {
	return p.Cargo[p.ActiveShipID]
}

// AddShip registers a new vessel with an empty hold. The first ship added
// becomes active.
func (p *Player) AddShip(id string, s *ship.State) {
	p.Ships[id] = s
	p.Cargo[id] = ship.NewInventory()
	p.ShipOrder = append(p.ShipOrder, id)
	if p.ActiveShipID == "" {
		p.ActiveShipID = id
	}
}

// RemoveShip deletes a vessel and its cargo. If it was active, the next
// remaining owned ship becomes active; with none left the active id clears
// and the caller decides game over. Returns the replacement active id.
func (p *Player) RemoveShip(id string) string {
	delete(p.Ships, id)
	delete(p.Cargo, id)
	order := p.ShipOrder[:0]
	for _, sid := range p.ShipOrder {
		if sid != id {
			order = append(order, sid)
		}
	}
	p.ShipOrder = order
	if p.ActiveShipID == id {
		p.ActiveShipID = ""
		if len(p.ShipOrder) > 0 {
			p.ActiveShipID = p.ShipOrder[0]
		}
	}
	return p.ActiveShipID
}

// OwnsShip reports whether the player owns the given vessel.
func (p *Player) OwnsShip(id string) bool {
	_, ok := p.Ships[id]
	return ok
}

// HasPerk reports whether a perk is active.
func (p *Player) HasPerk(id string) bool {
	return p.Perks[id]
}

// RecordTransaction appends to the finance log, trimming the front beyond
// cap entries.
func (p *Player) RecordTransaction(kind string, amount float64, cap int) {
	p.FinanceLog = append(p.FinanceLog, FinanceEntry{
		Credits: p.Credits,
		Kind:    kind,
		Amount:  amount,
	})
	if cap > 0 && len(p.FinanceLog) > cap {
		p.FinanceLog = p.FinanceLog[len(p.FinanceLog)-cap:]
	}
}
