package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vraelian/experimental-sub000/internal/catalog"
	"github.com/vraelian/experimental-sub000/internal/rng"
)

func seededMarket(t *testing.T, seed int64) (Engine, *State) {
	t.Helper()
	cat := catalog.Default()
	require.NoError(t, cat.Validate())
	e := Engine{Catalog: cat, RNG: rng.NewSeeded(seed)}
	s := NewState(cat)
	e.SeedPrices(s)
	e.SeedStock(s)
	return e, s
}

func TestSeedPricesStayWithinSpread(t *testing.T) {
	e, s := seededMarket(t, 1)
	spread := e.Catalog.Constants.SeedSpread

	for _, loc := range e.Catalog.Locations {
		for _, com := range e.Catalog.Commodities {
			price := s.Prices[loc.ID][com.ID]
			require.GreaterOrEqual(t, price, 1)
			baseline := float64(s.Averages[com.ID]) * loc.Modifier(com.ID)
			assert.InDelta(t, baseline, float64(price), baseline*spread+1)
		}
	}
}

func TestSeedStockZeroAtSpecialDemand(t *testing.T) {
	e, s := seededMarket(t, 2)

	// Mars runs on imported grain; it never stocks its own.
	assert.Equal(t, 0, s.Stock["loc_mars"]["com_grain"])

	for _, loc := range e.Catalog.Locations {
		for _, com := range e.Catalog.Commodities {
			if _, special := loc.SpecialDemand[com.ID]; special {
				continue
			}
			assert.GreaterOrEqual(t, s.Stock[loc.ID][com.ID], 4)
		}
	}
}

func TestEvolveWeeklyNeverBreaksPriceFloor(t *testing.T) {
	e, s := seededMarket(t, 3)

	for i := 0; i < 500; i++ {
		e.EvolveWeekly(s)
	}
	for _, loc := range e.Catalog.Locations {
		for _, com := range e.Catalog.Commodities {
			assert.GreaterOrEqual(t, s.Prices[loc.ID][com.ID], 1)
		}
	}
}

func TestEvolveWeeklyRevertsTowardBaseline(t *testing.T) {
	e, s := seededMarket(t, 4)

	// Pin one price far above its baseline; reversion must pull it back
	// faster than volatility can push it away.
	s.Prices["loc_earth"]["com_water"] = 10000
	baseline := float64(s.Averages["com_water"]) * 1.0

	for i := 0; i < 200; i++ {
		e.EvolveWeekly(s)
	}
	final := float64(s.Prices["loc_earth"]["com_water"])
	assert.Less(t, final, 10000.0)
	assert.InDelta(t, baseline, final, baseline*3)
}

func TestRecordHistoryTrimsToCap(t *testing.T) {
	e, s := seededMarket(t, 5)
	limit := e.Catalog.Constants.PriceHistoryCap

	for day := 1; day <= limit+25; day++ {
		e.RecordHistory(s, day)
	}
	ring := s.History["loc_earth"]["com_water"]
	require.Len(t, ring, limit)
	assert.Equal(t, 26, ring[0].Day)
	assert.Equal(t, limit+25, ring[len(ring)-1].Day)
}

func TestQuoteSpecialDemandBonusOnSellOnly(t *testing.T) {
	e, s := seededMarket(t, 6)
	stored := s.Prices["loc_mars"]["com_grain"]

	buy := e.Quote(s, "loc_mars", "com_grain", false, nil)
	sell := e.Quote(s, "loc_mars", "com_grain", true, nil)

	assert.Equal(t, stored, buy)
	assert.Equal(t, int(float64(stored)*1.6+0.5), sell)
	// The stored price is untouched by quoting.
	assert.Equal(t, stored, s.Prices["loc_mars"]["com_grain"])
}

func TestQuoteIntelDistortsExactPairOnly(t *testing.T) {
	e, s := seededMarket(t, 7)
	intel := &Intel{LocationID: "loc_luna", CommodityID: "com_water", Direction: IntelDemand, StartDay: 1, EndDay: 29}

	stored := s.Prices["loc_luna"]["com_water"]
	boosted := e.Quote(s, "loc_luna", "com_water", false, intel)
	assert.Equal(t, int(float64(stored)*e.Catalog.Constants.IntelDemandFactor+0.5), boosted)

	other := s.Prices["loc_luna"]["com_grain"]
	assert.Equal(t, other, e.Quote(s, "loc_luna", "com_grain", false, intel))
	elsewhere := s.Prices["loc_earth"]["com_water"]
	assert.Equal(t, elsewhere, e.Quote(s, "loc_earth", "com_water", false, intel))
}

func TestQuoteCrashFloorsAtOne(t *testing.T) {
	e, s := seededMarket(t, 8)
	s.Prices["loc_luna"]["com_water"] = 2
	intel := &Intel{LocationID: "loc_luna", CommodityID: "com_water", Direction: IntelCrash, StartDay: 1, EndDay: 29}

	assert.Equal(t, 1, e.Quote(s, "loc_luna", "com_water", false, intel))
}
