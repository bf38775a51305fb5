package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is the immutable static data the simulation runs on: locations,
// commodities, ships, perks, milestones, age events and tuning constants.
// It is loaded once at startup and never mutated.
type Catalog struct {
	Locations   []Location  `yaml:"locations" json:"locations"`
	Commodities []Commodity `yaml:"commodities" json:"commodities"`
	Ships       []ShipSpec  `yaml:"ships" json:"ships"`
	Perks       []Perk      `yaml:"perks" json:"perks"`
	Milestones  []Milestone `yaml:"milestones" json:"milestones"`
	AgeEvents   []AgeEvent  `yaml:"age_events" json:"age_events"`
	Constants   Constants   `yaml:"constants" json:"constants"`
}

// SpecialDemand zeroes a commodity's purchasable stock at a location and
// grants a sell-price bonus there instead.
type SpecialDemand struct {
	Bonus float64 `yaml:"bonus" json:"bonus"`
	Lore  string  `yaml:"lore" json:"lore"`
}

type Location struct {
	ID            string                   `yaml:"id" json:"id"`
	Name          string                   `yaml:"name" json:"name"`
	FuelPrice     float64                  `yaml:"fuel_price" json:"fuel_price"`
	Modifiers     map[string]float64       `yaml:"modifiers" json:"modifiers"`
	SpecialDemand map[string]SpecialDemand `yaml:"special_demand" json:"special_demand"`
	StartsLocked  bool                     `yaml:"starts_locked" json:"starts_locked"`
}

// Modifier returns the location's price multiplier for a commodity,
// defaulting to 1.0 when the location has no opinion.
func (l Location) Modifier(commodityID string) float64 {
	if m, ok := l.Modifiers[commodityID]; ok && m > 0 {
		return m
	}
	return 1.0
}

type Commodity struct {
	ID      string `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	Tier    int    `yaml:"tier" json:"tier"`
	BaseMin int    `yaml:"base_min" json:"base_min"`
	BaseMax int    `yaml:"base_max" json:"base_max"`
}

// GalacticAverage is the catalog-defined midpoint price, used as the
// mean-reversion anchor for every location's price series.
func (c Commodity) GalacticAverage() int {
	return (c.BaseMin + c.BaseMax) / 2
}

type ShipSpec struct {
	ID             string `yaml:"id" json:"id"`
	Name           string `yaml:"name" json:"name"`
	Class          string `yaml:"class" json:"class"`
	Price          int    `yaml:"price" json:"price"`
	MaxHealth      int    `yaml:"max_health" json:"max_health"`
	MaxFuel        int    `yaml:"max_fuel" json:"max_fuel"`
	CargoCapacity  int    `yaml:"cargo_capacity" json:"cargo_capacity"`
	Rare           bool   `yaml:"rare" json:"rare"`
	SaleLocationID string `yaml:"sale_location" json:"sale_location"`
}

// Perk is a permanent modifier granted by a progression choice. Multipliers
// default to 1.0 (no effect) when zero.
type Perk struct {
	ID            string  `yaml:"id" json:"id"`
	Name          string  `yaml:"name" json:"name"`
	Description   string  `yaml:"description" json:"description"`
	TravelTimeMod float64 `yaml:"travel_time_mod" json:"travel_time_mod"`
	FuelMod       float64 `yaml:"fuel_mod" json:"fuel_mod"`
	HullDecayMod  float64 `yaml:"hull_decay_mod" json:"hull_decay_mod"`
	ProfitBonus   float64 `yaml:"profit_bonus" json:"profit_bonus"`
}

type Milestone struct {
	ID             string `yaml:"id" json:"id"`
	Threshold      int    `yaml:"threshold" json:"threshold"`
	UnlockTier     int    `yaml:"unlock_tier" json:"unlock_tier"`
	UnlockLocation string `yaml:"unlock_location" json:"unlock_location"`
	Message        string `yaml:"message" json:"message"`
}

// AgeEvent is a one-time life event triggered by the day counter or by
// wealth, presenting a choice that can grant a perk, a title or a ship.
type AgeEvent struct {
	ID             string      `yaml:"id" json:"id"`
	TriggerDay     int         `yaml:"trigger_day" json:"trigger_day"`
	TriggerCredits int         `yaml:"trigger_credits" json:"trigger_credits"`
	Title          string      `yaml:"title" json:"title"`
	Scenario       string      `yaml:"scenario" json:"scenario"`
	Choices        []AgeChoice `yaml:"choices" json:"choices"`
}

type AgeChoice struct {
	Label       string `yaml:"label" json:"label"`
	GrantPerkID string `yaml:"grant_perk" json:"grant_perk"`
	GrantTitle  string `yaml:"grant_title" json:"grant_title"`
	GrantShipID string `yaml:"grant_ship" json:"grant_ship"`
}

// Constants holds every tunable the engines read. Values here are the
// balance knobs; zero fields are filled from defaults on load.
type Constants struct {
	StartingCredits  float64 `yaml:"starting_credits" json:"starting_credits"`
	StartingDebt     int     `yaml:"starting_debt" json:"starting_debt"`
	StartingInterest int     `yaml:"starting_interest" json:"starting_interest"`
	StartDay         int     `yaml:"start_day" json:"start_day"`
	StartLocation    string  `yaml:"start_location" json:"start_location"`
	StartShip        string  `yaml:"start_ship" json:"start_ship"`

	DailyVolatility   float64 `yaml:"daily_volatility" json:"daily_volatility"`
	MeanReversion     float64 `yaml:"mean_reversion" json:"mean_reversion"`
	SeedSpread        float64 `yaml:"seed_spread" json:"seed_spread"`
	PriceHistoryCap   int     `yaml:"price_history_cap" json:"price_history_cap"`
	SpecialStockBoost float64 `yaml:"special_stock_boost" json:"special_stock_boost"`

	RandomEventChance float64 `yaml:"random_event_chance" json:"random_event_chance"`

	InterestRate         float64 `yaml:"interest_rate" json:"interest_rate"`
	GarnishmentDelayDays int     `yaml:"garnishment_delay_days" json:"garnishment_delay_days"`
	GarnishmentRate      float64 `yaml:"garnishment_rate" json:"garnishment_rate"`
	TransactionLogCap    int     `yaml:"transaction_log_cap" json:"transaction_log_cap"`
	PayoffUnlockLocation string  `yaml:"payoff_unlock_location" json:"payoff_unlock_location"`

	FuelScalar       float64 `yaml:"fuel_scalar" json:"fuel_scalar"`
	HullDecayPerDay  float64 `yaml:"hull_decay_per_day" json:"hull_decay_per_day"`
	PassiveRepairPct float64 `yaml:"passive_repair_pct" json:"passive_repair_pct"`
	RefuelTickUnits  int     `yaml:"refuel_tick_units" json:"refuel_tick_units"`
	RepairTickPct    float64 `yaml:"repair_tick_pct" json:"repair_tick_pct"`
	RepairCostPerPct float64 `yaml:"repair_cost_per_pct" json:"repair_cost_per_pct"`
	ShipResaleRate   float64 `yaml:"ship_resale_rate" json:"ship_resale_rate"`

	IntelCost         float64 `yaml:"intel_cost" json:"intel_cost"`
	IntelDurationDays int     `yaml:"intel_duration_days" json:"intel_duration_days"`
	IntelDemandFactor float64 `yaml:"intel_demand_factor" json:"intel_demand_factor"`
	IntelCrashFactor  float64 `yaml:"intel_crash_factor" json:"intel_crash_factor"`

	MarketIntervalDays   int `yaml:"market_interval_days" json:"market_interval_days"`
	InterestIntervalDays int `yaml:"interest_interval_days" json:"interest_interval_days"`

	DaysPerYear         int     `yaml:"days_per_year" json:"days_per_year"`
	BirthdayDayOfYear   int     `yaml:"birthday_day_of_year" json:"birthday_day_of_year"`
	BirthdayProfitBonus float64 `yaml:"birthday_profit_bonus" json:"birthday_profit_bonus"`

	RaceWagerRate float64            `yaml:"race_wager_rate" json:"race_wager_rate"`
	RaceOdds      map[string]float64 `yaml:"race_odds" json:"race_odds"`

	NoticeLogCap int `yaml:"notice_log_cap" json:"notice_log_cap"`
}

// Location looks up a location by id.
func (c *Catalog) Location(id string) (Location, bool) {
	for _, l := range c.Locations {
		if l.ID == id {
			return l, true
		}
	}
	return Location{}, false
}

// LocationIndex returns the position of a location in catalog order.
// Route distance is the difference between two locations' indexes.
func (c *Catalog) LocationIndex(id string) int {
	for i, l := range c.Locations {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// Commodity looks up a commodity by id.
func (c *Catalog) Commodity(id string) (Commodity, bool) {
	for _, cm := range c.Commodities {
		if cm.ID == id {
			return cm, true
		}
	}
	return Commodity{}, false
}

// Ship looks up a ship spec by id.
func (c *Catalog) Ship(id string) (ShipSpec, bool) {
	for _, s := range c.Ships {
		if s.ID == id {
			return s, true
		}
	}
	return ShipSpec{}, false
}

// Perk looks up a perk by id.
func (c *Catalog) Perk(id string) (Perk, bool) {
	for _, p := range c.Perks {
		if p.ID == id {
			return p, true
		}
	}
	return Perk{}, false
}

// Validate checks cross-references so a bad catalog file fails at startup
// instead of mid-game.
func (c *Catalog) Validate() error {
	if len(c.Locations) < 2 {
		return fmt.Errorf("catalog needs at least two locations")
	}
	if _, ok := c.Location(c.Constants.StartLocation); !ok {
		return fmt.Errorf("unknown start location: %s", c.Constants.StartLocation)
	}
	if _, ok := c.Ship(c.Constants.StartShip); !ok {
		return fmt.Errorf("unknown start ship: %s", c.Constants.StartShip)
	}
	for _, s := range c.Ships {
		if _, ok := c.Location(s.SaleLocationID); !ok {
			return fmt.Errorf("ship %s sold at unknown location %s", s.ID, s.SaleLocationID)
		}
	}
	for _, m := range c.Milestones {
		if m.UnlockLocation != "" {
			if _, ok := c.Location(m.UnlockLocation); !ok {
				return fmt.Errorf("milestone %s unlocks unknown location %s", m.ID, m.UnlockLocation)
			}
		}
	}
	for _, l := range c.Locations {
		for cid := range l.SpecialDemand {
			if _, ok := c.Commodity(cid); !ok {
				return fmt.Errorf("location %s has special demand for unknown commodity %s", l.ID, cid)
			}
		}
	}
	return nil
}

// Load reads a catalog override file. Sections left empty in the file fall
// back to the built-in defaults; a missing file yields the defaults alone.
func Load(path string) (*Catalog, error) {
	def := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return def, nil
		}
		return nil, err
	}

	var loaded Catalog
	if err := yaml.Unmarshal(b, &loaded); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if len(loaded.Locations) == 0 {
		loaded.Locations = def.Locations
	}
	if len(loaded.Commodities) == 0 {
		loaded.Commodities = def.Commodities
	}
	if len(loaded.Ships) == 0 {
		loaded.Ships = def.Ships
	}
	if len(loaded.Perks) == 0 {
		loaded.Perks = def.Perks
	}
	if len(loaded.Milestones) == 0 {
		loaded.Milestones = def.Milestones
	}
	if len(loaded.AgeEvents) == 0 {
		loaded.AgeEvents = def.AgeEvents
	}
	loaded.Constants.applyDefaults(def.Constants)
	if err := loaded.Validate(); err != nil {
		return nil, err
	}
	return &loaded, nil
}

func (k *Constants) applyDefaults(def Constants) {
	if k.StartingCredits == 0 {
		k.StartingCredits = def.StartingCredits
	}
	if k.StartingDebt == 0 {
		k.StartingDebt = def.StartingDebt
	}
	if k.StartingInterest == 0 {
		k.StartingInterest = def.StartingInterest
	}
	if k.StartDay == 0 {
		k.StartDay = def.StartDay
	}
	if k.StartLocation == "" {
		k.StartLocation = def.StartLocation
	}
	if k.StartShip == "" {
		k.StartShip = def.StartShip
	}
	if k.DailyVolatility == 0 {
		k.DailyVolatility = def.DailyVolatility
	}
	if k.MeanReversion == 0 {
		k.MeanReversion = def.MeanReversion
	}
	if k.SeedSpread == 0 {
		k.SeedSpread = def.SeedSpread
	}
	if k.PriceHistoryCap == 0 {
		k.PriceHistoryCap = def.PriceHistoryCap
	}
	if k.SpecialStockBoost == 0 {
		k.SpecialStockBoost = def.SpecialStockBoost
	}
	if k.RandomEventChance == 0 {
		k.RandomEventChance = def.RandomEventChance
	}
	if k.InterestRate == 0 {
		k.InterestRate = def.InterestRate
	}
	if k.GarnishmentDelayDays == 0 {
		k.GarnishmentDelayDays = def.GarnishmentDelayDays
	}
	if k.GarnishmentRate == 0 {
		k.GarnishmentRate = def.GarnishmentRate
	}
	if k.TransactionLogCap == 0 {
		k.TransactionLogCap = def.TransactionLogCap
	}
	if k.PayoffUnlockLocation == "" {
		k.PayoffUnlockLocation = def.PayoffUnlockLocation
	}
	if k.FuelScalar == 0 {
		k.FuelScalar = def.FuelScalar
	}
	if k.HullDecayPerDay == 0 {
		k.HullDecayPerDay = def.HullDecayPerDay
	}
	if k.PassiveRepairPct == 0 {
		k.PassiveRepairPct = def.PassiveRepairPct
	}
	if k.RefuelTickUnits == 0 {
		k.RefuelTickUnits = def.RefuelTickUnits
	}
	if k.RepairTickPct == 0 {
		k.RepairTickPct = def.RepairTickPct
	}
	if k.RepairCostPerPct == 0 {
		k.RepairCostPerPct = def.RepairCostPerPct
	}
	if k.ShipResaleRate == 0 {
		k.ShipResaleRate = def.ShipResaleRate
	}
	if k.IntelCost == 0 {
		k.IntelCost = def.IntelCost
	}
	if k.IntelDurationDays == 0 {
		k.IntelDurationDays = def.IntelDurationDays
	}
	if k.IntelDemandFactor == 0 {
		k.IntelDemandFactor = def.IntelDemandFactor
	}
	if k.IntelCrashFactor == 0 {
		k.IntelCrashFactor = def.IntelCrashFactor
	}
	if k.MarketIntervalDays == 0 {
		k.MarketIntervalDays = def.MarketIntervalDays
	}
	if k.InterestIntervalDays == 0 {
		k.InterestIntervalDays = def.InterestIntervalDays
	}
	if k.DaysPerYear == 0 {
		k.DaysPerYear = def.DaysPerYear
	}
	if k.BirthdayDayOfYear == 0 {
		k.BirthdayDayOfYear = def.BirthdayDayOfYear
	}
	if k.BirthdayProfitBonus == 0 {
		k.BirthdayProfitBonus = def.BirthdayProfitBonus
	}
	if k.RaceWagerRate == 0 {
		k.RaceWagerRate = def.RaceWagerRate
	}
	if len(k.RaceOdds) == 0 {
		k.RaceOdds = def.RaceOdds
	}
	if k.NoticeLogCap == 0 {
		k.NoticeLogCap = def.NoticeLogCap
	}
}
