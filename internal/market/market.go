package market

import (
	"math"

	"github.com/vraelian/experimental-sub000/internal/catalog"
	"github.com/vraelian/experimental-sub000/internal/rng"
)

// PricePoint is one entry in a commodity's bounded price history.
type PricePoint struct {
	Day   int `json:"day"`
	Price int `json:"price"`
}

// Intel is a purchasable hint that transiently amplifies or depresses one
// commodity's quoted price at one location. At most one is active.
type Intel struct {
	LocationID  string `json:"location_id"`
	CommodityID string `json:"commodity_id"`
	Direction   string `json:"direction"` // "demand" or "crash"
	StartDay    int    `json:"start_day"`
	EndDay      int    `json:"end_day"`
}

const (
	IntelDemand = "demand"
	IntelCrash  = "crash"
)

// State holds everything the economy owns: stored prices, remaining stock,
// galactic averages and per-pair price-history rings. No other component
// writes to it.
type State struct {
	Prices   map[string]map[string]int          `json:"prices"`
	Stock    map[string]map[string]int          `json:"stock"`
	Averages map[string]int                     `json:"averages"`
	History  map[string]map[string][]PricePoint `json:"history"`
}

// NewState builds an empty market shell with averages taken from the
// catalog. Prices and stock are filled by SeedPrices/SeedStock.
func NewState(cat *catalog.Catalog) *State {
	s := &State{
		Prices:   map[string]map[string]int{},
		Stock:    map[string]map[string]int{},
		Averages: map[string]int{},
		History:  map[string]map[string][]PricePoint{},
	}
	for _, l := range cat.Locations {
		s.Prices[l.ID] = map[string]int{}
		s.Stock[l.ID] = map[string]int{}
		s.History[l.ID] = map[string][]PricePoint{}
	}
	for _, c := range cat.Commodities {
		s.Averages[c.ID] = c.GalacticAverage()
	}
	return s
}

// Engine evolves the market. It is stateless itself; all mutable data lives
// in State and the random source is injected.
type Engine struct {
	Catalog *catalog.Catalog
	RNG     rng.Source
}

// SeedPrices sets every (location, commodity) price to the galactic average
// skewed by a uniform spread and the location modifier, floored at 1.
// Called once at game start.
func (e Engine) SeedPrices(s *State) {
	spread := e.Catalog.Constants.SeedSpread
	for _, loc := range e.Catalog.Locations {
		for _, com := range e.Catalog.Commodities {
			skew := 1 + rng.Uniform(e.RNG, -spread, spread)
			price := int(math.Round(float64(s.Averages[com.ID]) * skew * loc.Modifier(com.ID)))
			if price < 1 {
				price = 1
			}
			s.Prices[loc.ID][com.ID] = price
		}
	}
}

// SeedStock draws initial per-location stock from a tier-skewed
// distribution: higher tiers roll on narrower, smaller ranges and skew
// toward the low end. Stock is boosted where the location modifier favors
// the commodity and forced to zero where the location has special demand
// for it.
func (e Engine) SeedStock(s *State) {
	for _, loc := range e.Catalog.Locations {
		for _, com := range e.Catalog.Commodities {
			if _, special := loc.SpecialDemand[com.ID]; special {
				s.Stock[loc.ID][com.ID] = 0
				continue
			}
			lo, hi := stockRange(com.Tier)
			skew := 1 + float64(com.Tier)*0.35
			qty := lo + int(math.Pow(e.RNG.Float64(), skew)*float64(hi-lo+1))
			if qty > hi {
				qty = hi
			}
			if loc.Modifier(com.ID) > 1 {
				qty = int(float64(qty) * e.Catalog.Constants.SpecialStockBoost)
			}
			s.Stock[loc.ID][com.ID] = qty
		}
	}
}

func stockRange(tier int) (int, int) {
	lo := 80 - 10*tier
	hi := 140 - 18*tier
	if lo < 4 {
		lo = 4
	}
	if hi < lo+4 {
		hi = lo + 4
	}
	return lo, hi
}

// EvolveWeekly advances every stored price one market tick: random
// volatility around the current price plus mean reversion toward the
// location-specific baseline, clamped to at least 1.
func (e Engine) EvolveWeekly(s *State) {
	k := e.Catalog.Constants
	for _, loc := range e.Catalog.Locations {
		for _, com := range e.Catalog.Commodities {
			price := float64(s.Prices[loc.ID][com.ID])
			baseline := float64(s.Averages[com.ID]) * loc.Modifier(com.ID)
			volatility := rng.Uniform(e.RNG, -1, 1) * k.DailyVolatility
			next := int(math.Round(price + price*volatility + (baseline-price)*k.MeanReversion))
			if next < 1 {
				next = 1
			}
			s.Prices[loc.ID][com.ID] = next
		}
	}
}

// RecordHistory appends the current price of every pair to its ring,
// trimming from the front beyond the catalog cap. Called right after
// seeding and after each weekly evolution.
func (e Engine) RecordHistory(s *State, day int) {
	limit := e.Catalog.Constants.PriceHistoryCap
	for _, loc := range e.Catalog.Locations {
		for _, com := range e.Catalog.Commodities {
			ring := append(s.History[loc.ID][com.ID], PricePoint{Day: day, Price: s.Prices[loc.ID][com.ID]})
			if len(ring) > limit {
				ring = ring[len(ring)-limit:]
			}
			s.History[loc.ID][com.ID] = ring
		}
	}
}

// Quote returns the display/transaction price for one pair. Selling into a
// special-demand location applies its bonus; an active intel record
// targeting exactly this pair distorts the quote transiently. The stored
// price is never touched.
func (e Engine) Quote(s *State, locationID, commodityID string, selling bool, intel *Intel) int {
	price := float64(s.Prices[locationID][commodityID])

	loc, ok := e.Catalog.Location(locationID)
	if !ok {
		return 1
	}
	if selling {
		if sd, special := loc.SpecialDemand[commodityID]; special {
			price *= sd.Bonus
		}
	}
	if intel != nil && intel.LocationID == locationID && intel.CommodityID == commodityID {
		switch intel.Direction {
		case IntelDemand:
			price *= e.Catalog.Constants.IntelDemandFactor
		case IntelCrash:
			price *= e.Catalog.Constants.IntelCrashFactor
		}
	}

	quoted := int(math.Round(price))
	if quoted < 1 {
		quoted = 1
	}
	return quoted
}
