package catalog

// Default returns the built-in catalog. A YAML override file can replace any
// section wholesale; see Load.
func Default() *Catalog {
	return &Catalog{
		Locations: []Location{
			{
				ID:        "loc_earth",
				Name:      "Earth Orbital Yards",
				FuelPrice: 4,
				Modifiers: map[string]float64{
					"com_grain": 0.85,
					"com_water": 1.1,
				},
			},
			{
				ID:        "loc_luna",
				Name:      "Luna Freeport",
				FuelPrice: 5,
				Modifiers: map[string]float64{
					"com_plasteel": 0.9,
					"com_medkits":  1.15,
				},
			},
			{
				ID:        "loc_mars",
				Name:      "Mars Uplands",
				FuelPrice: 6,
				Modifiers: map[string]float64{
					"com_water":    1.3,
					"com_plasteel": 0.8,
				},
				SpecialDemand: map[string]SpecialDemand{
					"com_grain": {Bonus: 1.6, Lore: "The dome farms failed two seasons running; grain sells at a premium."},
				},
			},
			{
				ID:        "loc_belt",
				Name:      "Ceres Belt Exchange",
				FuelPrice: 7,
				Modifiers: map[string]float64{
					"com_cells":   0.85,
					"com_water":   1.25,
					"com_medkits": 1.2,
				},
			},
			{
				ID:        "loc_io",
				Name:      "Io Foundries",
				FuelPrice: 9,
				Modifiers: map[string]float64{
					"com_plasteel":    1.2,
					"com_cybernetics": 0.85,
				},
				SpecialDemand: map[string]SpecialDemand{
					"com_water": {Bonus: 1.5, Lore: "Ice never lasts long under Io's furnaces."},
				},
			},
			{
				ID:        "loc_saturn",
				Name:      "Saturn Ring Resorts",
				FuelPrice: 11,
				Modifiers: map[string]float64{
					"com_relics": 1.25,
					"com_grain":  1.2,
				},
				SpecialDemand: map[string]SpecialDemand{
					"com_xeno": {Bonus: 1.8, Lore: "The resort conservatories pay absurdly for living xenoflora."},
				},
				StartsLocked: true,
			},
			{
				ID:        "loc_uranus",
				Name:      "Uranus Deepworks",
				FuelPrice: 13,
				Modifiers: map[string]float64{
					"com_antimatter": 0.85,
					"com_grain":      1.35,
				},
				StartsLocked: true,
			},
			{
				ID:        "loc_kepler",
				Name:      "Kepler Starport",
				FuelPrice: 15,
				Modifiers: map[string]float64{
					"com_xeno":   0.8,
					"com_relics": 0.9,
				},
				StartsLocked: true,
			},
		},
		Commodities: []Commodity{
			{ID: "com_water", Name: "Water Ice", Tier: 1, BaseMin: 18, BaseMax: 30},
			{ID: "com_grain", Name: "Hydro Grain", Tier: 1, BaseMin: 24, BaseMax: 40},
			{ID: "com_plasteel", Name: "Plasteel", Tier: 2, BaseMin: 60, BaseMax: 100},
			{ID: "com_medkits", Name: "Med Kits", Tier: 2, BaseMin: 90, BaseMax: 150},
			{ID: "com_cells", Name: "Fusion Cells", Tier: 3, BaseMin: 200, BaseMax: 320},
			{ID: "com_cybernetics", Name: "Cybernetics", Tier: 4, BaseMin: 550, BaseMax: 850},
			{ID: "com_relics", Name: "Pre-Collapse Relics", Tier: 5, BaseMin: 1500, BaseMax: 2400},
			{ID: "com_xeno", Name: "Xeno Botanicals", Tier: 6, BaseMin: 4200, BaseMax: 6600},
			{ID: "com_antimatter", Name: "Antimatter", Tier: 7, BaseMin: 12000, BaseMax: 20000},
		},
		Ships: []ShipSpec{
			{ID: "ship_wanderer", Name: "Wanderer", Class: "C", Price: 15000, MaxHealth: 100, MaxFuel: 80, CargoCapacity: 50, SaleLocationID: "loc_earth"},
			{ID: "ship_stalwart", Name: "Stalwart", Class: "B", Price: 45000, MaxHealth: 140, MaxFuel: 100, CargoCapacity: 120, SaleLocationID: "loc_mars"},
			{ID: "ship_pathfinder", Name: "Pathfinder", Class: "B", Price: 60000, MaxHealth: 120, MaxFuel: 160, CargoCapacity: 80, SaleLocationID: "loc_belt"},
			{ID: "ship_majestic", Name: "Majestic", Class: "A", Price: 140000, MaxHealth: 200, MaxFuel: 140, CargoCapacity: 200, Rare: true, SaleLocationID: "loc_saturn"},
			{ID: "ship_vindicator", Name: "Vindicator", Class: "A", Price: 180000, MaxHealth: 260, MaxFuel: 180, CargoCapacity: 150, Rare: true, SaleLocationID: "loc_kepler"},
		},
		Perks: []Perk{
			{ID: "perk_navigator", Name: "Navigator", Description: "Charts tighter burns; journeys run 10% shorter.", TravelTimeMod: 0.9},
			{ID: "perk_miser", Name: "Fuel Miser", Description: "Tuned injectors burn 15% less fuel.", FuelMod: 0.85},
			{ID: "perk_shipwright", Name: "Shipwright", Description: "Reinforced plating slows hull wear by 20%.", HullDecayMod: 0.8},
			{ID: "perk_captain", Name: "Captain's Commission", Description: "A commissioned captain commands 5% better margins.", ProfitBonus: 0.05},
		},
		Milestones: []Milestone{
			{ID: "ms_25k", Threshold: 25000, UnlockTier: 2, Message: "Word of your dealings spreads. Tier 2 goods are now on offer."},
			{ID: "ms_75k", Threshold: 75000, UnlockTier: 3, UnlockLocation: "loc_io", Message: "The Io Foundries open their docks to you. Tier 3 goods unlocked."},
			{ID: "ms_150k", Threshold: 150000, UnlockTier: 4, UnlockLocation: "loc_saturn", Message: "An invitation arrives from the Ring Resorts. Tier 4 goods unlocked."},
			{ID: "ms_500k", Threshold: 500000, UnlockTier: 5, UnlockLocation: "loc_uranus", Message: "The Deepworks consortium extends a berth. Tier 5 goods unlocked."},
			{ID: "ms_1m5", Threshold: 1500000, UnlockTier: 6, Message: "Xeno-botanical brokers now return your calls. Tier 6 goods unlocked."},
			{ID: "ms_5m", Threshold: 5000000, UnlockTier: 7, Message: "Antimatter licenses clear. There is nothing left they won't sell you."},
		},
		AgeEvents: []AgeEvent{
			{
				ID:         "age_veteran",
				TriggerDay: 730,
				Title:      "Two Years Out",
				Scenario:   "Two years of hard burns leave their mark. What did the void teach you?",
				Choices: []AgeChoice{
					{Label: "Read the currents", GrantPerkID: "perk_navigator"},
					{Label: "Stretch every cell", GrantPerkID: "perk_miser"},
				},
			},
			{
				ID:             "age_commission",
				TriggerCredits: 200000,
				Title:          "The Commission",
				Scenario:       "A merchant guild offers you a captain's commission. Accept the title, or take their surplus freighter instead?",
				Choices: []AgeChoice{
					{Label: "Accept the commission", GrantPerkID: "perk_captain", GrantTitle: "Captain"},
					{Label: "Take the freighter", GrantShipID: "ship_stalwart"},
				},
			},
			{
				ID:         "age_decade",
				TriggerDay: 3650,
				Title:      "Ten Years Under Thrust",
				Scenario:   "A decade of trading. The yards offer a retrofit in honor of the run.",
				Choices: []AgeChoice{
					{Label: "Reinforce the hull", GrantPerkID: "perk_shipwright"},
				},
			},
		},
		Constants: Constants{
			StartingCredits:  8000,
			StartingDebt:     25000,
			StartingInterest: 125,
			StartDay:         1,
			StartLocation:    "loc_earth",
			StartShip:        "ship_wanderer",

			DailyVolatility:   0.15,
			MeanReversion:     0.10,
			SeedSpread:        0.25,
			PriceHistoryCap:   50,
			SpecialStockBoost: 1.5,

			RandomEventChance: 0.07,

			InterestRate:         0.01,
			GarnishmentDelayDays: 180,
			GarnishmentRate:      0.14,
			TransactionLogCap:    10,
			PayoffUnlockLocation: "loc_kepler",

			FuelScalar:       1.6,
			HullDecayPerDay:  0.8,
			PassiveRepairPct: 0.01,
			RefuelTickUnits:  2,
			RepairTickPct:    0.02,
			RepairCostPerPct: 60,
			ShipResaleRate:   0.75,

			IntelCost:         750,
			IntelDurationDays: 28,
			IntelDemandFactor: 1.8,
			IntelCrashFactor:  0.35,

			MarketIntervalDays:   7,
			InterestIntervalDays: 7,

			DaysPerYear:         365,
			BirthdayDayOfYear:   214,
			BirthdayProfitBonus: 0.01,

			RaceWagerRate: 0.80,
			RaceOdds: map[string]float64{
				"A": 0.60,
				"B": 0.45,
				"C": 0.35,
			},

			NoticeLogCap: 256,
		},
	}
}
