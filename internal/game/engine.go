package game

import (
	"fmt"

	"github.com/vraelian/experimental-sub000/internal/catalog"
	"github.com/vraelian/experimental-sub000/internal/event"
	"github.com/vraelian/experimental-sub000/internal/finance"
	"github.com/vraelian/experimental-sub000/internal/market"
	"github.com/vraelian/experimental-sub000/internal/player"
	"github.com/vraelian/experimental-sub000/internal/progress"
	"github.com/vraelian/experimental-sub000/internal/rng"
	"github.com/vraelian/experimental-sub000/internal/ship"
	"github.com/vraelian/experimental-sub000/internal/telemetry"
	"github.com/vraelian/experimental-sub000/internal/travel"
)

// Engine is the simulation core: one method per player or system command.
// Every command either fully applies and emits notices, or returns a typed
// failure leaving state untouched.
type Engine struct {
	Catalog *catalog.Catalog
	RNG     rng.Source
	Notices telemetry.Repository
	Events  []event.Event

	Mkt     market.Engine
	Ledger  finance.Ledger
	Tracker progress.Tracker

	state   *State
	routes  travel.Table
	emitted []telemetry.Notice
}

// New wires an engine from its catalog, random source and notice sink.
func New(cat *catalog.Catalog, src rng.Source, notices telemetry.Repository) *Engine {
	return &Engine{
		Catalog: cat,
		RNG:     src,
		Notices: notices,
		Events:  event.Builtin(),
		Mkt:     market.Engine{Catalog: cat, RNG: src},
		Ledger:  finance.Ledger{Catalog: cat},
		Tracker: progress.Tracker{Catalog: cat},
	}
}

// NewGame initializes a fresh simulation for the named player: seeded
// market, starting ship, starting loan, everything at catalog defaults.
func (e *Engine) NewGame(name string) Snapshot {
	k := e.Catalog.Constants

	p := player.New(name)
	p.Age = 24
	p.Credits = k.StartingCredits
	p.Debt = k.StartingDebt
	p.LoanStartDay = k.StartDay
	for _, loc := range e.Catalog.Locations {
		if !loc.StartsLocked {
			p.UnlockedLocations[loc.ID] = true
		}
	}

	st := &State{
		Day:                k.StartDay,
		Player:             p,
		Market:             market.NewState(e.Catalog),
		CurrentLocationID:  k.StartLocation,
		IntelAvailable:     map[string]bool{},
		AnnouncedAgeEvents: map[string]bool{},
		LastMarketDay:      k.StartDay,
		LastInterestDay:    k.StartDay,
	}
	for _, loc := range e.Catalog.Locations {
		st.IntelAvailable[loc.ID] = true
	}
	e.state = st

	if spec, ok := e.Catalog.Ship(k.StartShip); ok {
		p.AddShip(e.nextShipID(), ship.New(spec.ID, spec.MaxHealth, spec.MaxFuel))
	}

	e.Mkt.SeedPrices(st.Market)
	e.Mkt.SeedStock(st.Market)
	e.Mkt.RecordHistory(st.Market, st.Day)

	e.routes = travel.GenerateTable(e.Catalog, e.RNG)

	// Synthetic first entry so the finance chart never starts empty.
	e.Ledger.Record(p, finance.TxStart, 0)

	return e.Snapshot()
}

func (e *Engine) nextShipID() string {
	e.state.ShipSeq++
	return fmt.Sprintf("v%d", e.state.ShipSeq)
}

// guard rejects commands outside a running, unsuspended game.
func (e *Engine) guard() error {
	if e.state == nil || e.state.GameOver {
		return ErrInvalidCommand
	}
	if e.state.Pending != nil {
		return ErrInvalidCommand
	}
	return nil
}

func (e *Engine) notify(kind telemetry.Kind, msg string, meta map[string]any) {
	n := e.Notices.Record(kind, e.state.Day, msg, meta)
	e.emitted = append(e.emitted, n)
}

// DrainNotices returns and clears the notices emitted since the last
// drain. The presentation layer calls this after every command.
func (e *Engine) DrainNotices() []telemetry.Notice {
	out := e.emitted
	e.emitted = nil
	return out
}

// Quote returns the current transaction price for a commodity at the
// player's location, buy or sell side.
func (e *Engine) Quote(commodityID string, selling bool) int {
	st := e.state
	return e.Mkt.Quote(st.Market, st.CurrentLocationID, commodityID, selling, st.Intel)
}

// TradeResult summarizes a completed buy or sell.
type TradeResult struct {
	CommodityID string  `json:"commodity_id"`
	Quantity    int     `json:"quantity"`
	UnitPrice   int     `json:"unit_price"`
	Total       float64 `json:"total"`
	Credits     float64 `json:"credits"`
	AvgCost     float64 `json:"avg_cost"`
}

// Buy purchases qty units at the quoted price, bounded by market stock,
// hold capacity and funds.
func (e *Engine) Buy(commodityID string, qty int) (TradeResult, error) {
	if err := e.guard(); err != nil {
		return TradeResult{}, err
	}
	if qty <= 0 {
		return TradeResult{}, ErrInvalidCommand
	}
	com, ok := e.Catalog.Commodity(commodityID)
	if !ok || com.Tier > e.state.Player.UnlockedTier {
		return TradeResult{}, ErrInvalidCommand
	}

	st := e.state
	p := st.Player
	stock := st.Market.Stock[st.CurrentLocationID][commodityID]
	if stock <= 0 {
		return TradeResult{}, ErrMarketSoldOut
	}
	if qty > stock {
		return TradeResult{}, ErrLimitedStock
	}

	price := e.Quote(commodityID, false)
	cost := float64(price) * float64(qty)
	if p.Credits < cost {
		return TradeResult{}, ErrInsufficientFunds
	}

	spec, _ := e.Catalog.Ship(p.ActiveShip().SpecID)
	cargo := p.ActiveCargo()
	if cargo.Used()+qty > spec.CargoCapacity {
		return TradeResult{}, ErrCargoHoldFull
	}

	p.Credits -= cost
	st.Market.Stock[st.CurrentLocationID][commodityID] = stock - qty
	cargo.Add(commodityID, qty, float64(price))
	e.Ledger.Record(p, finance.TxTrade, -cost)
	e.afterWealthChange()

	return TradeResult{
		CommodityID: commodityID,
		Quantity:    qty,
		UnitPrice:   price,
		Total:       -cost,
		Credits:     p.Credits,
		AvgCost:     cargo.AvgCost(commodityID),
	}, nil
}

// Sell disposes qty units at the quoted price. Only the profit portion
// above average cost is multiplied by the player's stacking profit
// bonuses; principal passes through untouched.
func (e *Engine) Sell(commodityID string, qty int) (TradeResult, error) {
	if err := e.guard(); err != nil {
		return TradeResult{}, err
	}
	st := e.state
	p := st.Player
	cargo := p.ActiveCargo()
	if qty <= 0 || cargo.Qty(commodityID) < qty {
		return TradeResult{}, ErrInvalidCommand
	}

	price := e.Quote(commodityID, true)
	principal := cargo.AvgCost(commodityID) * float64(qty)
	gross := float64(price) * float64(qty)
	proceeds := gross
	if gross > principal {
		proceeds = principal + (gross-principal)*e.Ledger.ProfitBonus(p)
	}

	cargo.Remove(commodityID, qty)
	p.Credits += proceeds
	st.Market.Stock[st.CurrentLocationID][commodityID] += qty
	e.Ledger.Record(p, finance.TxTrade, proceeds)
	e.afterWealthChange()

	return TradeResult{
		CommodityID: commodityID,
		Quantity:    qty,
		UnitPrice:   price,
		Total:       proceeds,
		Credits:     p.Credits,
		AvgCost:     cargo.AvgCost(commodityID),
	}, nil
}

// afterWealthChange re-evaluates wealth milestones after any credit
// mutation, emitting a notice per newly reached milestone.
func (e *Engine) afterWealthChange() {
	for _, res := range e.Tracker.CheckMilestones(e.state.Player) {
		e.notify(telemetry.KindMilestone, res.Message, map[string]any{
			"milestone_id":      res.MilestoneID,
			"unlocked_tier":     res.UnlockedTier,
			"unlocked_location": res.UnlockedLocation,
		})
	}
}

// PayOffDebt clears the whole outstanding debt in one payment.
func (e *Engine) PayOffDebt() error {
	if err := e.guard(); err != nil {
		return err
	}
	first, err := e.Ledger.PayOffDebt(e.state.Player)
	if err != nil {
		return err
	}
	if first {
		loc, _ := e.Catalog.Location(e.Catalog.Constants.PayoffUnlockLocation)
		e.notify(telemetry.KindDebtPaid,
			fmt.Sprintf("Debt cleared. The registry takes note, and %s opens its docks to you.", loc.Name),
			map[string]any{"unlocked_location": loc.ID})
	} else {
		e.notify(telemetry.KindDebtPaid, "Debt cleared.", nil)
	}
	return nil
}

// TakeLoan accepts a loan offer.
func (e *Engine) TakeLoan(offer finance.LoanOffer) error {
	if err := e.guard(); err != nil {
		return err
	}
	return e.Ledger.TakeLoan(e.state.Player, offer, e.state.Day)
}

// PurchaseIntel buys a market tip at the current location: a random
// (location, commodity) pair will run hot or crash for a fixed window.
// Each location sells intel once; only one record may be active.
func (e *Engine) PurchaseIntel() (*market.Intel, error) {
	if err := e.guard(); err != nil {
		return nil, err
	}
	st := e.state
	p := st.Player
	if st.Intel != nil || !st.IntelAvailable[st.CurrentLocationID] {
		return nil, ErrInvalidCommand
	}
	k := e.Catalog.Constants
	if p.Credits < k.IntelCost {
		return nil, ErrInsufficientFunds
	}

	targets := []string{}
	for _, loc := range e.Catalog.Locations {
		if loc.ID != st.CurrentLocationID && p.UnlockedLocations[loc.ID] {
			targets = append(targets, loc.ID)
		}
	}
	if len(targets) == 0 {
		return nil, ErrInvalidCommand
	}
	target := targets[e.RNG.Intn(len(targets))]
	com := e.Catalog.Commodities[e.RNG.Intn(len(e.Catalog.Commodities))]
	direction := market.IntelDemand
	if e.RNG.Float64() < 0.5 {
		direction = market.IntelCrash
	}

	p.Credits -= k.IntelCost
	st.Intel = &market.Intel{
		LocationID:  target,
		CommodityID: com.ID,
		Direction:   direction,
		StartDay:    st.Day,
		EndDay:      st.Day + k.IntelDurationDays,
	}
	st.IntelAvailable[st.CurrentLocationID] = false
	e.Ledger.Record(p, finance.TxIntel, -k.IntelCost)
	return st.Intel, nil
}

// BuyShip purchases a vessel at its sale location.
func (e *Engine) BuyShip(specID string) (string, error) {
	if err := e.guard(); err != nil {
		return "", err
	}
	st := e.state
	p := st.Player
	spec, ok := e.Catalog.Ship(specID)
	if !ok || spec.SaleLocationID != st.CurrentLocationID {
		return "", ErrInvalidCommand
	}
	if p.Credits < float64(spec.Price) {
		return "", ErrInsufficientFunds
	}
	p.Credits -= float64(spec.Price)
	id := e.nextShipID()
	p.AddShip(id, ship.New(spec.ID, spec.MaxHealth, spec.MaxFuel))
	e.Ledger.Record(p, finance.TxShip, -float64(spec.Price))
	return id, nil
}

// SellShip sells an owned vessel at the catalog resale rate. The last
// ship, the active ship and any ship with cargo aboard are all blocked.
func (e *Engine) SellShip(shipID string) error {
	if err := e.guard(); err != nil {
		return err
	}
	st := e.state
	p := st.Player
	s := p.Ships[shipID]
	if s == nil {
		return ErrInvalidCommand
	}
	if len(p.ShipOrder) == 1 || shipID == p.ActiveShipID || p.Cargo[shipID].Used() > 0 {
		return ErrShipSaleBlocked
	}
	spec, _ := e.Catalog.Ship(s.SpecID)
	proceeds := float64(spec.Price) * e.Catalog.Constants.ShipResaleRate
	p.Credits += proceeds
	p.RemoveShip(shipID)
	e.Ledger.Record(p, finance.TxShip, proceeds)
	e.afterWealthChange()
	return nil
}

// SelectShip makes an owned vessel the active one.
func (e *Engine) SelectShip(shipID string) error {
	if err := e.guard(); err != nil {
		return err
	}
	if !e.state.Player.OwnsShip(shipID) {
		return ErrInvalidCommand
	}
	e.state.Player.ActiveShipID = shipID
	return nil
}

// RefuelTick buys one increment of fuel at the local price. Fails at a
// full tank or empty pockets, which is how the held-control maintenance
// loop knows to stop.
func (e *Engine) RefuelTick() error {
	if err := e.guard(); err != nil {
		return err
	}
	st := e.state
	p := st.Player
	s := p.ActiveShip()
	if s.Fuel >= s.MaxFuel {
		return ErrFuelCapacityExceeded
	}
	units := e.Catalog.Constants.RefuelTickUnits
	if s.Fuel+units > s.MaxFuel {
		units = s.MaxFuel - s.Fuel
	}
	loc, _ := e.Catalog.Location(st.CurrentLocationID)
	cost := loc.FuelPrice * float64(units)
	if p.Credits < cost {
		return ErrInsufficientFunds
	}
	p.Credits -= cost
	s.AddFuel(units)
	e.Ledger.Record(p, finance.TxFuel, -cost)
	return nil
}

// RepairTick restores one increment of hull at the catalog rate.
func (e *Engine) RepairTick() error {
	if err := e.guard(); err != nil {
		return err
	}
	st := e.state
	p := st.Player
	s := p.ActiveShip()
	if s.Health >= float64(s.MaxHealth) {
		return ErrInvalidCommand
	}
	k := e.Catalog.Constants
	amount := k.RepairTickPct * float64(s.MaxHealth)
	cost := k.RepairCostPerPct * k.RepairTickPct * 100
	if p.Credits < cost {
		return ErrInsufficientFunds
	}
	p.Credits -= cost
	s.Repair(amount)
	e.Ledger.Record(p, finance.TxRepair, -cost)
	return nil
}

// ResolveAgeChoice answers a pending age-triggered life event.
func (e *Engine) ResolveAgeChoice(eventID string, choiceIdx int) error {
	if e.state == nil || e.state.GameOver {
		return ErrInvalidCommand
	}
	granted, err := e.Tracker.ApplyAgeChoice(e.state.Player, eventID, choiceIdx, e.nextShipID)
	if err != nil {
		return ErrInvalidCommand
	}
	if granted != "" {
		e.notify(telemetry.KindAgeEvent, "A new vessel joins your registry.", map[string]any{"ship_id": granted})
	}
	return nil
}

// PendingAgeEvents lists life events awaiting an answer.
func (e *Engine) PendingAgeEvents() []catalog.AgeEvent {
	if e.state == nil {
		return nil
	}
	return e.Tracker.PendingAgeEvents(e.state.Player, e.state.Day)
}
