package event

import (
	"fmt"
	"math"

	"github.com/vraelian/experimental-sub000/internal/rng"
)

// Kind enumerates the closed set of effect variants. Every kind has exactly
// one handler in Apply; adding a kind without a handler fails loudly at the
// first roll instead of silently doing nothing.
type Kind int

const (
	KindCredits Kind = iota
	KindFuel
	KindHullDamage
	KindHullDamageRange
	KindTravelAdd
	KindTravelPct
	KindTravelSet
	KindDebt
	KindUnlockLocation
	KindAddCargo
	KindRemoveCargo
	KindLoseCargoPct
	KindForcedSale
	KindRerollDestination
	KindRace
	KindRescue
)

// Effect is one typed mutation of player/ship/world state or of the
// pending-travel modifier accumulator. Which fields matter depends on Kind.
type Effect struct {
	Kind Kind

	Amount    float64 // credits, debt, fuel units, days, percents
	MinAmount float64 // ranged hull damage lower bound
	MaxAmount float64 // ranged hull damage upper bound

	CommodityID    string
	Qty            int
	LocationID     string
	SaleMultiplier float64

	// rescue resolution
	FuelCost        int
	DebtForgiveness int
	CreditGift      float64
}

// Apply mutates the context per the effect. It returns an optional
// narrative fragment for outcomes whose result is decided at apply time
// (wagers, forced sales, rescues).
func Apply(fx Effect, ctx Context) (string, error) {
	switch fx.Kind {
	case KindCredits:
		ctx.Player.Credits += fx.Amount
		return "", nil

	case KindFuel:
		ctx.Ship.AddFuel(int(fx.Amount))
		return "", nil

	case KindHullDamage:
		ctx.Pending.HullDamagePct += fx.Amount
		return "", nil

	case KindHullDamageRange:
		ctx.Pending.HullDamagePct += rng.Uniform(ctx.RNG, fx.MinAmount, fx.MaxAmount)
		return "", nil

	case KindTravelAdd:
		ctx.Pending.ExtraDays += int(fx.Amount)
		return "", nil

	case KindTravelPct:
		ctx.Pending.DayMultPct += int(fx.Amount)
		return "", nil

	case KindTravelSet:
		ctx.Pending.OverrideDays = int(fx.Amount)
		return "", nil

	case KindDebt:
		ctx.Player.Debt += int(fx.Amount)
		if ctx.Player.Debt < 0 {
			ctx.Player.Debt = 0
		}
		return "", nil

	case KindUnlockLocation:
		ctx.Player.UnlockedLocations[fx.LocationID] = true
		return "", nil

	case KindAddCargo:
		// Capacity-checked; quietly drops the gift if it will not fit.
		if ctx.Cargo.Used()+fx.Qty <= ctx.Spec.CargoCapacity {
			ctx.Cargo.Add(fx.CommodityID, fx.Qty, 0)
		}
		return "", nil

	case KindRemoveCargo:
		held := ctx.Cargo.Qty(fx.CommodityID)
		qty := fx.Qty
		if qty > held {
			qty = held
		}
		ctx.Cargo.Remove(fx.CommodityID, qty)
		return "", nil

	case KindLoseCargoPct:
		return applyLoseCargo(fx, ctx), nil

	case KindForcedSale:
		return applyForcedSale(fx, ctx), nil

	case KindRerollDestination:
		return applyReroll(ctx), nil

	case KindRace:
		return applyRace(ctx), nil

	case KindRescue:
		return applyRescue(fx, ctx), nil
	}
	return "", fmt.Errorf("unhandled effect kind %d", fx.Kind)
}

func applyLoseCargo(fx Effect, ctx Context) string {
	stacks := ctx.Cargo.NonEmpty()
	if len(stacks) == 0 {
		return ""
	}
	id := stacks[ctx.RNG.Intn(len(stacks))]
	held := ctx.Cargo.Qty(id)
	lost := int(math.Round(float64(held) * fx.Amount / 100))
	if lost < 1 {
		lost = 1
	}
	if lost > held {
		lost = held
	}
	ctx.Cargo.Remove(id, lost)
	return fmt.Sprintf("Lost %d units of %s from the hold.", lost, commodityName(ctx, id))
}

// applyForcedSale sells one randomly chosen stack at a premium over the
// galactic average, crediting the player and zeroing the stack.
func applyForcedSale(fx Effect, ctx Context) string {
	stacks := ctx.Cargo.NonEmpty()
	if len(stacks) == 0 {
		return ""
	}
	id := stacks[ctx.RNG.Intn(len(stacks))]
	held := ctx.Cargo.Qty(id)
	unit := float64(ctx.Market.Averages[id]) * fx.SaleMultiplier
	proceeds := unit * float64(held)
	ctx.Player.Credits += proceeds
	ctx.Cargo.Remove(id, held)
	return fmt.Sprintf("The buyer takes all %d units of %s for %.0f credits.", held, commodityName(ctx, id), proceeds)
}

func applyReroll(ctx Context) string {
	options := []string{}
	for _, loc := range ctx.Catalog.Locations {
		if loc.ID == ctx.LocationID {
			continue
		}
		if ctx.Player.UnlockedLocations[loc.ID] {
			options = append(options, loc.ID)
		}
	}
	if len(options) == 0 {
		return ""
	}
	dest := options[ctx.RNG.Intn(len(options))]
	ctx.Pending.DestinationID = dest
	if loc, ok := ctx.Catalog.Location(dest); ok {
		return fmt.Sprintf("The anomaly spits you out on a heading for %s.", loc.Name)
	}
	return ""
}

// applyRace stakes 80% of current credits on a wager whose win probability
// comes from the house-odds table for the active ship's class. A loss can
// take credits negative.
func applyRace(ctx Context) string {
	k := ctx.Catalog.Constants
	wager := ctx.Player.Credits * k.RaceWagerRate
	odds := k.RaceOdds[ctx.Spec.Class]
	if ctx.RNG.Float64() < odds {
		ctx.Player.Credits += wager
		return fmt.Sprintf("The %s crosses the line first. You collect %.0f credits.", ctx.Spec.Name, wager)
	}
	ctx.Player.Credits -= wager
	return fmt.Sprintf("You watch the field pull away. The bookies collect %.0f credits.", wager)
}

// applyRescue pays a fixed fuel cost up front, then settles the passenger's
// gratitude three ways: cargo if the hold has room, else partial debt
// forgiveness if any debt is owed, else a small credit gift.
func applyRescue(fx Effect, ctx Context) string {
	ctx.Ship.AddFuel(-fx.FuelCost)

	if ctx.Cargo.Used()+fx.Qty <= ctx.Spec.CargoCapacity {
		ctx.Cargo.Add(fx.CommodityID, fx.Qty, 0)
		return fmt.Sprintf("The passenger leaves %d units of %s as thanks.", fx.Qty, commodityName(ctx, fx.CommodityID))
	}
	if ctx.Player.Debt > 0 {
		forgiven := fx.DebtForgiveness
		if forgiven > ctx.Player.Debt {
			forgiven = ctx.Player.Debt
		}
		ctx.Player.Debt -= forgiven
		return fmt.Sprintf("A call gets made. %d credits vanish from your debt.", forgiven)
	}
	ctx.Player.Credits += fx.CreditGift
	return fmt.Sprintf("The passenger presses %.0f credits into your hand.", fx.CreditGift)
}

func commodityName(ctx Context, id string) string {
	if c, ok := ctx.Catalog.Commodity(id); ok {
		return c.Name
	}
	return id
}
