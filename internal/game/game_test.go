package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vraelian/experimental-sub000/internal/catalog"
	"github.com/vraelian/experimental-sub000/internal/finance"
	"github.com/vraelian/experimental-sub000/internal/rng"
	"github.com/vraelian/experimental-sub000/internal/telemetry"
)

func newTestEngine(t *testing.T, seed int64) *Engine {
	t.Helper()
	cat := catalog.Default()
	require.NoError(t, cat.Validate())
	return New(cat, rng.NewSeeded(seed), telemetry.NewMemoryRepository(cat.Constants.NoticeLogCap))
}

// quiet replaces the engine's random source with one that never rolls an
// encounter, so travel commits deterministically.
func quiet(e *Engine) {
	e.RNG = &rng.Fixed{Floats: []float64{0.9}, Ints: []int{0}}
}

func TestNewGameDefaults(t *testing.T) {
	e := newTestEngine(t, 1)
	snap := e.NewGame("Tester")

	assert.Equal(t, 1, snap.Day)
	assert.Equal(t, "loc_earth", snap.CurrentLocationID)

	p := snap.Player
	assert.Equal(t, 8000.0, p.Credits)
	assert.Equal(t, 25000, p.Debt)
	assert.Equal(t, 24, p.Age)
	assert.Equal(t, "ship_wanderer", p.Ships[p.ActiveShipID].SpecID)

	assert.True(t, p.UnlockedLocations["loc_earth"])
	assert.True(t, p.UnlockedLocations["loc_luna"])
	assert.False(t, p.UnlockedLocations["loc_saturn"])
	assert.False(t, p.UnlockedLocations["loc_kepler"])

	require.Len(t, p.FinanceLog, 1)
	assert.Equal(t, finance.TxStart, p.FinanceLog[0].Kind)
}

func TestInterestChargesOnSchedule(t *testing.T) {
	e := newTestEngine(t, 1)
	e.NewGame("Tester")

	e.AdvanceDays(6)
	assert.Equal(t, 25000, e.state.Player.Debt)

	e.AdvanceDays(1)
	assert.Equal(t, 8, e.state.Day)
	assert.Equal(t, 25125, e.state.Player.Debt)
	assert.Equal(t, 8, e.state.LastInterestDay)
}

func TestBuySellRoundTrip(t *testing.T) {
	e := newTestEngine(t, 3)
	e.NewGame("Tester")
	p := e.state.Player

	stock := e.state.Market.Stock["loc_earth"]["com_water"]
	require.GreaterOrEqual(t, stock, 2)

	buyPrice := e.Quote("com_water", false)
	res, err := e.Buy("com_water", 2)
	require.NoError(t, err)
	assert.Equal(t, buyPrice, res.UnitPrice)
	assert.Equal(t, 8000-2*float64(buyPrice), p.Credits)
	assert.Equal(t, stock-2, e.state.Market.Stock["loc_earth"]["com_water"])
	assert.Equal(t, float64(buyPrice), p.ActiveCargo().AvgCost("com_water"))

	sellPrice := e.Quote("com_water", true)
	_, err = e.Sell("com_water", 2)
	require.NoError(t, err)
	assert.Equal(t, 8000-2*float64(buyPrice)+2*float64(sellPrice), p.Credits)
	assert.Equal(t, stock, e.state.Market.Stock["loc_earth"]["com_water"])
	assert.Equal(t, 0, p.ActiveCargo().Qty("com_water"))
}

func TestBuyRejectsBeyondStock(t *testing.T) {
	e := newTestEngine(t, 3)
	e.NewGame("Tester")

	stock := e.state.Market.Stock["loc_earth"]["com_water"]
	before := e.state.Player.Credits

	_, err := e.Buy("com_water", stock+1)
	assert.ErrorIs(t, err, ErrLimitedStock)
	assert.Equal(t, before, e.state.Player.Credits)
	assert.Equal(t, stock, e.state.Market.Stock["loc_earth"]["com_water"])
}

func TestBuyRejectsLockedTier(t *testing.T) {
	e := newTestEngine(t, 3)
	e.NewGame("Tester")

	_, err := e.Buy("com_cybernetics", 1)
	assert.ErrorIs(t, err, ErrInvalidCommand)
}

func TestTravelCommitsWithoutEvent(t *testing.T) {
	e := newTestEngine(t, 5)
	e.NewGame("Tester")
	quiet(e)
	s := e.state.Player.ActiveShip()
	fuelBefore := s.Fuel

	res, err := e.TravelTo("loc_luna")
	require.NoError(t, err)
	require.True(t, res.Arrived)

	assert.Equal(t, "loc_luna", e.state.CurrentLocationID)
	assert.Equal(t, 1+res.Days, e.state.Day)
	assert.Equal(t, fuelBefore-res.FuelSpent, s.Fuel)
	assert.Less(t, s.Health, float64(s.MaxHealth))
	assert.Nil(t, e.state.Pending)

	arrivals := e.Notices.Since(0, []telemetry.Kind{telemetry.KindArrival})
	require.Len(t, arrivals, 1)
	assert.Contains(t, arrivals[0].Metadata, `"fuel_spent"`)
	assert.Contains(t, arrivals[0].Metadata, `"hull_damage"`)
}

func TestTravelToCurrentLocationIsViewSwitch(t *testing.T) {
	e := newTestEngine(t, 5)
	e.NewGame("Tester")

	res, err := e.TravelTo("loc_earth")
	require.NoError(t, err)
	assert.True(t, res.Arrived)
	assert.Equal(t, 1, e.state.Day)
}

func TestTravelRejectsInsufficientFuel(t *testing.T) {
	e := newTestEngine(t, 5)
	e.NewGame("Tester")
	s := e.state.Player.ActiveShip()
	s.AddFuel(-s.Fuel)

	_, err := e.TravelTo("loc_luna")
	assert.ErrorIs(t, err, ErrInsufficientFuel)
	assert.Equal(t, "loc_earth", e.state.CurrentLocationID)
	assert.Equal(t, 1, e.state.Day)
}

func TestTravelRejectsLockedDestination(t *testing.T) {
	e := newTestEngine(t, 5)
	e.NewGame("Tester")

	_, err := e.TravelTo("loc_saturn")
	assert.ErrorIs(t, err, ErrInvalidCommand)
}

func TestEventInterruptsTravel(t *testing.T) {
	e := newTestEngine(t, 7)
	e.NewGame("Tester")

	// Force the encounter roll and fix every pick at the first option.
	e.RNG = &rng.Fixed{Floats: []float64{0}, Ints: []int{0}}

	res, err := e.TravelTo("loc_luna")
	require.NoError(t, err)
	require.NotNil(t, res.Event)
	assert.False(t, res.Arrived)
	assert.Equal(t, "evt_pirates", res.Event.ID)
	require.NotNil(t, e.state.Pending)

	// Every normal command is suspended until the choice is made.
	_, err = e.Buy("com_water", 1)
	assert.ErrorIs(t, err, ErrInvalidCommand)
	_, err = e.TravelTo("loc_earth")
	assert.ErrorIs(t, err, ErrInvalidCommand)

	// Answering a different event than the one pending is rejected.
	_, err = e.ResolveChoice("evt_derelict", 0)
	assert.ErrorIs(t, err, ErrInvalidCommand)

	// Choice 0 pays the toll: a single flat-credit outcome, then the
	// journey resumes and lands.
	out, err := e.ResolveChoice("evt_pirates", 0)
	require.NoError(t, err)
	assert.True(t, out.Arrived)
	assert.Equal(t, 6500.0, e.state.Player.Credits)
	assert.Equal(t, "loc_luna", e.state.CurrentLocationID)
	assert.Nil(t, e.state.Pending)
}

func TestResolveChoiceRejectsWithoutPendingEvent(t *testing.T) {
	e := newTestEngine(t, 7)
	e.NewGame("Tester")

	_, err := e.ResolveChoice("evt_pirates", 0)
	assert.ErrorIs(t, err, ErrInvalidCommand)
}

func TestGarnishmentBeginsAfterGraceWindow(t *testing.T) {
	e := newTestEngine(t, 9)
	e.NewGame("Tester")
	p := e.state.Player

	e.AdvanceDays(179)
	assert.False(t, p.GarnishmentWarned)

	e.AdvanceDays(30)
	assert.True(t, p.GarnishmentWarned)
	assert.Less(t, p.Credits, 8000.0)

	notices := e.Notices.Since(0, []telemetry.Kind{telemetry.KindGarnishment})
	assert.NotEmpty(t, notices)
}

func TestPayOffDebtUnlocksPayoffLocation(t *testing.T) {
	e := newTestEngine(t, 9)
	e.NewGame("Tester")
	p := e.state.Player
	p.Credits = 40000

	require.NoError(t, e.PayOffDebt())
	assert.Equal(t, 0, p.Debt)
	assert.True(t, p.PaidOffOnce)
	assert.True(t, p.UnlockedLocations["loc_kepler"])
	assert.Equal(t, 15000.0, p.Credits)

	// No further interest accrues on a cleared slate.
	e.AdvanceDays(7)
	assert.Equal(t, 0, p.Debt)
}

func TestShipPurchaseAndResale(t *testing.T) {
	e := newTestEngine(t, 11)
	e.NewGame("Tester")
	p := e.state.Player
	p.Credits = 20000

	id, err := e.BuyShip("ship_wanderer")
	require.NoError(t, err)
	assert.Equal(t, 5000.0, p.Credits)
	assert.Len(t, p.ShipOrder, 2)

	// The newcomer is idle and empty, so it can be sold right back.
	require.NoError(t, e.SellShip(id))
	assert.Equal(t, 5000.0+15000*0.75, p.Credits)
	assert.Len(t, p.ShipOrder, 1)
}

func TestShipSaleBlockedForLastAndActive(t *testing.T) {
	e := newTestEngine(t, 11)
	e.NewGame("Tester")
	p := e.state.Player

	assert.ErrorIs(t, e.SellShip(p.ActiveShipID), ErrShipSaleBlocked)

	_, err := e.BuyShip("ship_stalwart")
	assert.ErrorIs(t, err, ErrInvalidCommand) // sold elsewhere
}

func TestRefuelTickStopsAtFullTank(t *testing.T) {
	e := newTestEngine(t, 13)
	e.NewGame("Tester")
	p := e.state.Player
	s := p.ActiveShip()

	assert.ErrorIs(t, e.RefuelTick(), ErrFuelCapacityExceeded)

	s.AddFuel(-5)
	before := p.Credits
	require.NoError(t, e.RefuelTick())
	assert.Equal(t, s.MaxFuel-3, s.Fuel)
	assert.Equal(t, before-8, p.Credits) // 2 units at earth's 4 per unit
}

func TestRepairTickRestoresHull(t *testing.T) {
	e := newTestEngine(t, 13)
	e.NewGame("Tester")
	p := e.state.Player
	s := p.ActiveShip()

	assert.ErrorIs(t, e.RepairTick(), ErrInvalidCommand)

	s.Damage(10)
	before := p.Credits
	require.NoError(t, e.RepairTick())
	assert.InDelta(t, float64(s.MaxHealth)-8, s.Health, 1e-9)
	assert.Equal(t, before-120, p.Credits)
}

func TestDestructionOfLastShipEndsGame(t *testing.T) {
	e := newTestEngine(t, 15)
	e.NewGame("Tester")
	quiet(e)
	s := e.state.Player.ActiveShip()
	s.Health = 0.5

	res, err := e.TravelTo("loc_luna")
	require.NoError(t, err)
	assert.False(t, res.Arrived)
	assert.True(t, e.state.GameOver)
	assert.Empty(t, e.state.Player.ShipOrder)

	_, err = e.Buy("com_water", 1)
	assert.ErrorIs(t, err, ErrInvalidCommand)

	notices := e.Notices.Since(0, []telemetry.Kind{telemetry.KindGameOver})
	assert.Len(t, notices, 1)
}

func TestDestructionHandsCommandToSurvivingShip(t *testing.T) {
	e := newTestEngine(t, 16)
	e.NewGame("Tester")
	quiet(e)
	e.state.Player.Credits = 20000

	spare, err := e.BuyShip("ship_wanderer")
	require.NoError(t, err)
	e.state.Player.ActiveShip().Health = 0.5

	res, err := e.TravelTo("loc_luna")
	require.NoError(t, err)
	assert.False(t, res.Arrived)
	assert.False(t, e.state.GameOver)
	assert.Equal(t, spare, e.state.Player.ActiveShipID)
	assert.Equal(t, []string{spare}, e.state.Player.ShipOrder)

	// The loss notice names both hulls so the player knows what they
	// are flying now.
	notices := e.Notices.Since(0, []telemetry.Kind{telemetry.KindShipDestroyed})
	require.Len(t, notices, 1)
	assert.Contains(t, notices[0].Message, "Command transfers")
	assert.Contains(t, notices[0].Metadata, `"replacement_ship_id"`)
	assert.Contains(t, notices[0].Metadata, spare)
}

func TestIntelPurchaseAndExpiry(t *testing.T) {
	e := newTestEngine(t, 17)
	e.NewGame("Tester")
	p := e.state.Player

	intel, err := e.PurchaseIntel()
	require.NoError(t, err)
	require.NotNil(t, intel)
	assert.Equal(t, 8000-750.0, p.Credits)
	assert.Equal(t, intel.StartDay+28, intel.EndDay)
	assert.False(t, e.state.IntelAvailable["loc_earth"])

	// Only one tip at a time, and each broker sells once.
	_, err = e.PurchaseIntel()
	assert.ErrorIs(t, err, ErrInvalidCommand)

	e.AdvanceDays(29)
	assert.Nil(t, e.state.Intel)
	notices := e.Notices.Since(0, []telemetry.Kind{telemetry.KindIntelExpired})
	assert.Len(t, notices, 1)
}

func TestBirthdayGrantsProfitBonus(t *testing.T) {
	e := newTestEngine(t, 19)
	e.NewGame("Tester")
	p := e.state.Player

	e.AdvanceDays(213) // day 214 is the birthday
	assert.Equal(t, 25, p.Age)
	assert.InDelta(t, 0.01, p.BirthdayBonus, 1e-9)

	notices := e.Notices.Since(0, []telemetry.Kind{telemetry.KindBirthday})
	assert.Len(t, notices, 1)
}

func TestMilestoneFiresOnceOnWealth(t *testing.T) {
	e := newTestEngine(t, 19)
	e.NewGame("Tester")
	p := e.state.Player
	p.Credits = 30000

	e.AdvanceDays(1)
	assert.Equal(t, 2, p.UnlockedTier)
	assert.True(t, p.SeenMilestones["ms_25k"])

	before := len(e.Notices.Since(0, []telemetry.Kind{telemetry.KindMilestone}))
	e.AdvanceDays(1)
	after := len(e.Notices.Since(0, []telemetry.Kind{telemetry.KindMilestone}))
	assert.Equal(t, before, after)
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	e := newTestEngine(t, 21)
	e.NewGame("Tester")
	snap := e.Snapshot()

	e.AdvanceDays(30)
	e.state.Player.Credits = 123

	require.NoError(t, e.Restore(snap))
	assert.Equal(t, 1, e.state.Day)
	assert.Equal(t, 8000.0, e.state.Player.Credits)

	// A restored game keeps working: the route table was rebuilt.
	quiet(e)
	res, err := e.TravelTo("loc_luna")
	require.NoError(t, err)
	assert.True(t, res.Arrived)
}

func TestRestoredStateSurvivesAgeEventDay(t *testing.T) {
	e := newTestEngine(t, 22)
	e.NewGame("Tester")
	require.NoError(t, e.Restore(e.Snapshot()))

	// A snapshot that decoded its bookkeeping maps as nil must not take
	// the day loop down when a life event comes due.
	e.state.Player.Credits = 300000
	e.AdvanceDays(1)

	assert.True(t, e.state.AnnouncedAgeEvents["age_commission"])
	notices := e.Notices.Since(0, []telemetry.Kind{telemetry.KindAgeEvent})
	assert.Len(t, notices, 1)
}

func TestRestoreReinitializesLegacyNilMaps(t *testing.T) {
	e := newTestEngine(t, 22)
	e.NewGame("Tester")
	snap := e.Snapshot()
	snap.AnnouncedAgeEvents = nil
	snap.IntelAvailable = nil

	require.NoError(t, e.Restore(snap))
	assert.NotNil(t, e.state.AnnouncedAgeEvents)
	assert.NotNil(t, e.state.IntelAvailable)
}

func TestDrainNoticesClears(t *testing.T) {
	e := newTestEngine(t, 23)
	e.NewGame("Tester")

	e.AdvanceDays(213)
	first := e.DrainNotices()
	assert.NotEmpty(t, first)
	assert.Empty(t, e.DrainNotices())
}
