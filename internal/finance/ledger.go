package finance

import (
	"errors"
	"math"

	"github.com/vraelian/experimental-sub000/internal/catalog"
	"github.com/vraelian/experimental-sub000/internal/player"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrLoanUnavailable   = errors.New("a loan is already outstanding")
)

// Transaction kinds recorded in the bounded finance log.
const (
	TxStart       = "start"
	TxTrade       = "trade"
	TxLoan        = "loan"
	TxPayoff      = "payoff"
	TxGarnishment = "garnishment"
	TxFuel        = "fuel"
	TxRepair      = "repair"
	TxShip        = "ship"
	TxIntel       = "intel"
	TxEvent       = "event"
)

// LoanOffer is the static shape of a loan the presentation layer offers:
// principal received, arrangement fee paid up front, and the fixed weekly
// interest charged while the principal is outstanding.
type LoanOffer struct {
	Amount         int `json:"amount"`
	Fee            int `json:"fee"`
	WeeklyInterest int `json:"weekly_interest"`
}

// Ledger owns credits, debt, interest, loans and garnishment. All mutations
// go through the player aggregate it is handed.
type Ledger struct {
	Catalog *catalog.Catalog
}

// WeeklyInterest evaluates the interest due for one 7-day boundary: zero
// without debt; the loan's stored rate when one is set; the fixed starting
// rate while the debt still equals the starting debt; otherwise 1% of the
// outstanding principal, rounded up.
func (l Ledger) WeeklyInterest(p *player.Player) int {
	if p.Debt <= 0 {
		return 0
	}
	if p.WeeklyInterest > 0 {
		return p.WeeklyInterest
	}
	if p.Debt == l.Catalog.Constants.StartingDebt {
		return l.Catalog.Constants.StartingInterest
	}
	return int(math.Ceil(float64(p.Debt) * l.Catalog.Constants.InterestRate))
}

// TakeLoan issues a loan: fee deducted, principal credited, debt opened at
// the offer's weekly rate. Only one loan may be outstanding.
func (l Ledger) TakeLoan(p *player.Player, offer LoanOffer, day int) error {
	if p.Debt > 0 {
		return ErrLoanUnavailable
	}
	if p.Credits < float64(offer.Fee) {
		return ErrInsufficientFunds
	}
	p.Credits -= float64(offer.Fee)
	p.Credits += float64(offer.Amount)
	p.Debt += offer.Amount
	p.WeeklyInterest = offer.WeeklyInterest
	p.LoanStartDay = day
	p.GarnishmentWarned = false
	l.Record(p, TxLoan, float64(offer.Amount-offer.Fee))
	return nil
}

// PayOffDebt clears the full outstanding debt in one payment. Reports
// whether this was the player's first-ever payoff, which unlocks the
// starport.
func (l Ledger) PayOffDebt(p *player.Player) (first bool, err error) {
	if p.Credits < float64(p.Debt) {
		return false, ErrInsufficientFunds
	}
	amount := float64(p.Debt)
	p.Credits -= amount
	p.Debt = 0
	p.WeeklyInterest = 0
	p.LoanStartDay = 0
	l.Record(p, TxPayoff, -amount)

	if !p.PaidOffOnce {
		p.PaidOffOnce = true
		p.UnlockedLocations[l.Catalog.Constants.PayoffUnlockLocation] = true
		return true, nil
	}
	return false, nil
}

// ApplyGarnishment seizes a fixed share of current credits once the debt
// has been delinquent past the grace window. Returns the amount seized (0
// when nothing fires) and whether this was the first seizure, which earns
// the player a one-time warning. Credits are not floored at zero.
func (l Ledger) ApplyGarnishment(p *player.Player, day int) (seized float64, firstWarning bool) {
	k := l.Catalog.Constants
	if p.Debt <= 0 || p.LoanStartDay == 0 {
		return 0, false
	}
	if day-p.LoanStartDay < k.GarnishmentDelayDays {
		return 0, false
	}
	seized = p.Credits * k.GarnishmentRate
	p.Credits -= seized
	l.Record(p, TxGarnishment, -seized)
	if !p.GarnishmentWarned {
		p.GarnishmentWarned = true
		return seized, true
	}
	return seized, false
}

// Record appends to the player's bounded finance log.
func (l Ledger) Record(p *player.Player, kind string, amount float64) {
	p.RecordTransaction(kind, amount, l.Catalog.Constants.TransactionLogCap)
}

// ProfitBonus is the multiplier applied to the profit portion of a sale:
// 1.0 plus the captain's-commission perk bonus plus the accumulated
// per-birthday bonus. Principal is never multiplied.
func (l Ledger) ProfitBonus(p *player.Player) float64 {
	bonus := 1.0
	for id := range p.Perks {
		if perk, ok := l.Catalog.Perk(id); ok {
			bonus += perk.ProfitBonus
		}
	}
	bonus += p.BirthdayBonus
	return bonus
}
