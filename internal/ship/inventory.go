package ship

import "sort"

// Lot is one cargo stack: how many units are aboard and what they cost on
// average to acquire.
type Lot struct {
	Qty     int     `json:"qty"`
	AvgCost float64 `json:"avg_cost"`
}

// Inventory is a ship's cargo hold, keyed by commodity id.
type Inventory struct {
	Lots map[string]Lot `json:"lots"`
}

func NewInventory() *Inventory {
	return &Inventory{Lots: map[string]Lot{}}
}

// Used returns the number of cargo units aboard.
func (inv *Inventory) Used() int {
	total := 0
	for _, lot := range inv.Lots {
		total += lot.Qty
	}
	return total
}

// Qty returns the held quantity of one commodity.
func (inv *Inventory) Qty(commodityID string) int {
	return inv.Lots[commodityID].Qty
}

// AvgCost returns the average acquisition cost of one commodity's stack.
func (inv *Inventory) AvgCost(commodityID string) float64 {
	return inv.Lots[commodityID].AvgCost
}

// Add folds qty units bought at unitCost into the stack, recomputing the
// weighted average cost. Capacity is the caller's concern.
func (inv *Inventory) Add(commodityID string, qty int, unitCost float64) {
	if qty <= 0 {
		return
	}
	lot := inv.Lots[commodityID]
	totalCost := float64(lot.Qty)*lot.AvgCost + float64(qty)*unitCost
	lot.Qty += qty
	lot.AvgCost = totalCost / float64(lot.Qty)
	inv.Lots[commodityID] = lot
}

// Remove takes qty units out of the stack. The average cost resets to zero
// exactly when the stack empties. Reports false if the stack is short.
func (inv *Inventory) Remove(commodityID string, qty int) bool {
	if qty <= 0 {
		return true
	}
	lot := inv.Lots[commodityID]
	if lot.Qty < qty {
		return false
	}
	lot.Qty -= qty
	if lot.Qty == 0 {
		lot.AvgCost = 0
		delete(inv.Lots, commodityID)
		return true
	}
	inv.Lots[commodityID] = lot
	return true
}

// NonEmpty returns the ids of commodities with at least one unit aboard,
// in stable order so random stack picks are reproducible under a seeded
// source.
func (inv *Inventory) NonEmpty() []string {
	ids := make([]string, 0, len(inv.Lots))
	for id, lot := range inv.Lots {
		if lot.Qty > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
