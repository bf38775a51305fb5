package event

// Builtin returns the stock encounter table. Predicates read only the
// context they are handed.
func Builtin() []Event {
	return []Event{
		{
			ID:       "evt_pirates",
			Title:    "Pirate Ambush",
			Scenario: "A gutted hauler drifts across your vector, then lights up: pirates, and they have your engine signature.",
			Eligible: func(ctx Context) bool {
				return ctx.Cargo.Used() > 0 || ctx.Player.Credits > 2000
			},
			Choices: []Choice{
				{
					Label: "Pay them off",
					Outcomes: []Outcome{
						{Weight: 1.0, Text: "They take the credits and peel away without a word.", Effects: []Effect{
							{Kind: KindCredits, Amount: -1500},
						}},
					},
				},
				{
					Label: "Stand and fight",
					Outcomes: []Outcome{
						{Weight: 0.6, Text: "Your point-defense holds. You limp clear, plating scorched.", Effects: []Effect{
							{Kind: KindHullDamageRange, MinAmount: 5, MaxAmount: 15},
						}},
						{Weight: 0.4, Text: "They board, strip a cargo bay and leave you venting atmosphere.", Effects: []Effect{
							{Kind: KindLoseCargoPct, Amount: 50},
							{Kind: KindHullDamageRange, MinAmount: 10, MaxAmount: 25},
						}},
					},
				},
				{
					Label: "Run for it",
					Outcomes: []Outcome{
						{Weight: 0.7, Text: "You burn hard off-lane and lose them in the shimmer, days off course.", Effects: []Effect{
							{Kind: KindTravelAdd, Amount: 3},
							{Kind: KindHullDamage, Amount: 3},
						}},
						{Weight: 0.3, Text: "A parting shot catches your tanks before you shake them.", Effects: []Effect{
							{Kind: KindHullDamageRange, MinAmount: 8, MaxAmount: 18},
							{Kind: KindFuel, Amount: -10},
						}},
					},
				},
			},
		},
		{
			ID:       "evt_derelict",
			Title:    "Derelict Freighter",
			Scenario: "Transponder dead, holds sealed. The derelict answers no hails.",
			Choices: []Choice{
				{
					Label: "Board it",
					Outcomes: []Outcome{
						{Weight: 0.4, Text: "The forward hold is intact. You transfer what your racks can take.", Effects: []Effect{
							{Kind: KindAddCargo, CommodityID: "com_plasteel", Qty: 8},
						}},
						{Weight: 0.25, Text: "The captain's safe gives up a lockbox of hard currency.", Effects: []Effect{
							{Kind: KindCredits, Amount: 1200},
						}},
						{Weight: 0.15, Text: "Her tanks still hold pressure. You siphon them dry.", Effects: []Effect{
							{Kind: KindFuel, Amount: 15},
						}},
						{Weight: 0.2, Text: "A rigged airlock blows. You cut loose and run, trailing debris.", Effects: []Effect{
							{Kind: KindHullDamageRange, MinAmount: 10, MaxAmount: 20},
							{Kind: KindTravelAdd, Amount: 2},
						}},
					},
				},
				{
					Label: "Leave it be",
					Outcomes: []Outcome{
						{Weight: 1.0, Text: "Some doors are better left sealed. You hold your course."},
					},
				},
			},
		},
		{
			ID:       "evt_flare",
			Title:    "Solar Flare",
			Scenario: "The forecast buoys scream in unison: a flare front is sweeping your lane.",
			Choices: []Choice{
				{
					Label: "Ride it out in the shadow of a rock",
					Outcomes: []Outcome{
						{Weight: 0.7, Text: "You wait out the storm in a planetesimal's lee. Slow, but clean.", Effects: []Effect{
							{Kind: KindTravelAdd, Amount: 2},
						}},
						{Weight: 0.3, Text: "The front shifts. Radiation scours your dorsal plating.", Effects: []Effect{
							{Kind: KindHullDamageRange, MinAmount: 5, MaxAmount: 12},
						}},
					},
				},
				{
					Label: "Burn around the front",
					Outcomes: []Outcome{
						{Weight: 1.0, Text: "A wide, expensive detour. The tanks pay for your caution.", Effects: []Effect{
							{Kind: KindFuel, Amount: -8},
							{Kind: KindTravelPct, Amount: 25},
						}},
					},
				},
			},
		},
		{
			ID:       "evt_race",
			Title:    "The Regatta",
			Scenario: "A smugglers' regatta forms up off your bow, and the bookmaker's skiff is already alongside: 80% of your holdings, winner takes double.",
			Eligible: func(ctx Context) bool {
				return ctx.Player.Credits >= 1000
			},
			Choices: []Choice{
				{
					Label: "Take the wager",
					Outcomes: []Outcome{
						{Weight: 1.0, Effects: []Effect{
							{Kind: KindRace},
						}},
					},
				},
				{
					Label: "Decline politely",
					Outcomes: []Outcome{
						{Weight: 1.0, Text: "The field lights off without you. Your credits stay where they are."},
					},
				},
			},
		},
		{
			ID:       "evt_rescue",
			Title:    "Stranded Passenger",
			Scenario: "A suit beacon pulses from a cracked lifepod. Someone is alive in there, and your detour will not be free.",
			Eligible: func(ctx Context) bool {
				return ctx.Ship.Fuel > 10
			},
			Choices: []Choice{
				{
					Label: "Bring them aboard",
					Outcomes: []Outcome{
						{Weight: 1.0, Effects: []Effect{
							{Kind: KindRescue, FuelCost: 10, CommodityID: "com_medkits", Qty: 6, DebtForgiveness: 2000, CreditGift: 400},
						}},
					},
				},
				{
					Label: "Mark the position and move on",
					Outcomes: []Outcome{
						{Weight: 1.0, Text: "You flag the pod for the patrol net and try not to think about the timestamp."},
					},
				},
			},
		},
		{
			ID:       "evt_customs",
			Title:    "Customs Interdiction",
			Scenario: "A revenue cutter matches your burn and orders you to cut thrust for inspection.",
			Eligible: func(ctx Context) bool {
				return ctx.Cargo.Used() > 0
			},
			Choices: []Choice{
				{
					Label: "Submit to the search",
					Outcomes: []Outcome{
						{Weight: 0.7, Text: "Papers in order. They wave you through after a tedious day.", Effects: []Effect{
							{Kind: KindTravelAdd, Amount: 1},
						}},
						{Weight: 0.3, Text: "An inspector takes exception to a manifest line and a quarter of the stack it names.", Effects: []Effect{
							{Kind: KindLoseCargoPct, Amount: 25},
						}},
					},
				},
				{
					Label: "Grease the right palm",
					Outcomes: []Outcome{
						{Weight: 1.0, Text: "The cutter develops sensor trouble and drifts away.", Effects: []Effect{
							{Kind: KindCredits, Amount: -800},
						}},
					},
				},
			},
		},
		{
			ID:       "evt_slipstream",
			Title:    "Slipstream Anomaly",
			Scenario: "Your nav plot folds in on itself: a slipstream filament has opened across the lane.",
			Choices: []Choice{
				{
					Label: "Thread the filament",
					Outcomes: []Outcome{
						{Weight: 0.45, Text: "The filament holds. Weeks of burn collapse into a single day.", Effects: []Effect{
							{Kind: KindTravelSet, Amount: 1},
						}},
						{Weight: 0.35, Text: "It collapses mid-transit and hurls you somewhere else entirely.", Effects: []Effect{
							{Kind: KindRerollDestination},
							{Kind: KindTravelAdd, Amount: 4},
						}},
						{Weight: 0.2, Text: "You surface with charts no registry has seen, and a long way still to go.", Effects: []Effect{
							{Kind: KindUnlockLocation, LocationID: "loc_saturn"},
							{Kind: KindTravelAdd, Amount: 6},
						}},
					},
				},
				{
					Label: "Go around",
					Outcomes: []Outcome{
						{Weight: 1.0, Text: "You give the shimmer a respectful berth.", Effects: []Effect{
							{Kind: KindTravelAdd, Amount: 1},
						}},
					},
				},
			},
		},
		{
			ID:       "evt_buyer",
			Title:    "Desperate Buyer",
			Scenario: "A fast yacht hails you mid-lane. Its owner needs what you are carrying, today, and names a number well above market.",
			Eligible: func(ctx Context) bool {
				return ctx.Cargo.Used() > 0
			},
			Choices: []Choice{
				{
					Label: "Sell the stack",
					Outcomes: []Outcome{
						{Weight: 1.0, Effects: []Effect{
							{Kind: KindForcedSale, SaleMultiplier: 2.5},
						}},
					},
				},
				{
					Label: "Refuse",
					Outcomes: []Outcome{
						{Weight: 1.0, Text: "The yacht burns off sunward. You wonder what that was about."},
					},
				},
			},
		},
	}
}
