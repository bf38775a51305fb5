package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vraelian/experimental-sub000/internal/catalog"
	"github.com/vraelian/experimental-sub000/internal/player"
)

func testLedger(t *testing.T) (Ledger, *player.Player) {
	t.Helper()
	cat := catalog.Default()
	require.NoError(t, cat.Validate())
	p := player.New("Debtor")
	p.Credits = cat.Constants.StartingCredits
	p.Debt = cat.Constants.StartingDebt
	p.LoanStartDay = 1
	return Ledger{Catalog: cat}, p
}

func TestWeeklyInterestTiers(t *testing.T) {
	l, p := testLedger(t)

	// The starting debt carries the fixed starting rate.
	assert.Equal(t, 125, l.WeeklyInterest(p))

	// Once the principal drifts, the 1% ceiling rule takes over.
	p.Debt = 25125
	assert.Equal(t, 252, l.WeeklyInterest(p))

	// A loan's own rate wins over both.
	p.WeeklyInterest = 300
	assert.Equal(t, 300, l.WeeklyInterest(p))

	p.Debt = 0
	assert.Equal(t, 0, l.WeeklyInterest(p))
}

func TestTakeLoan(t *testing.T) {
	l, p := testLedger(t)
	offer := LoanOffer{Amount: 10000, Fee: 500, WeeklyInterest: 200}

	// Blocked while the starting debt is open.
	assert.ErrorIs(t, l.TakeLoan(p, offer, 10), ErrLoanUnavailable)

	p.Debt = 0
	p.GarnishmentWarned = true
	require.NoError(t, l.TakeLoan(p, offer, 10))
	assert.Equal(t, 8000-500+10000.0, p.Credits)
	assert.Equal(t, 10000, p.Debt)
	assert.Equal(t, 200, p.WeeklyInterest)
	assert.Equal(t, 10, p.LoanStartDay)
	assert.False(t, p.GarnishmentWarned)
}

func TestTakeLoanRequiresFeeInHand(t *testing.T) {
	l, p := testLedger(t)
	p.Debt = 0
	p.Credits = 100

	err := l.TakeLoan(p, LoanOffer{Amount: 10000, Fee: 500}, 1)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, 100.0, p.Credits)
}

func TestPayOffDebtFirstTimeUnlocksStarport(t *testing.T) {
	l, p := testLedger(t)
	p.Credits = 30000

	first, err := l.PayOffDebt(p)
	require.NoError(t, err)
	assert.True(t, first)
	assert.Equal(t, 0, p.Debt)
	assert.Equal(t, 0, p.LoanStartDay)
	assert.Equal(t, 5000.0, p.Credits)
	assert.True(t, p.UnlockedLocations["loc_kepler"])

	// A later payoff is routine.
	p.Debt = 1000
	first, err = l.PayOffDebt(p)
	require.NoError(t, err)
	assert.False(t, first)
}

func TestPayOffDebtRequiresFullAmount(t *testing.T) {
	l, p := testLedger(t)
	p.Credits = 24999

	_, err := l.PayOffDebt(p)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, 25000, p.Debt)
}

func TestGarnishmentSeizesFourteenPercent(t *testing.T) {
	l, p := testLedger(t)
	p.Credits = 10000
	p.LoanStartDay = 1

	// Inside the grace window nothing fires.
	seized, _ := l.ApplyGarnishment(p, 180)
	assert.Equal(t, 0.0, seized)

	seized, warned := l.ApplyGarnishment(p, 181)
	assert.Equal(t, 1400.0, seized)
	assert.True(t, warned)
	assert.Equal(t, 8600.0, p.Credits)

	// The warning fires exactly once.
	_, warned = l.ApplyGarnishment(p, 188)
	assert.False(t, warned)
}

func TestGarnishmentSkipsWithoutOpenLoan(t *testing.T) {
	l, p := testLedger(t)
	p.LoanStartDay = 0

	seized, _ := l.ApplyGarnishment(p, 400)
	assert.Equal(t, 0.0, seized)
}

func TestProfitBonusStacks(t *testing.T) {
	l, p := testLedger(t)
	assert.Equal(t, 1.0, l.ProfitBonus(p))

	p.Perks["perk_captain"] = true
	assert.InDelta(t, 1.05, l.ProfitBonus(p), 1e-9)

	p.BirthdayBonus = 0.03
	assert.InDelta(t, 1.08, l.ProfitBonus(p), 1e-9)
}

func TestRecordTrimsToRing(t *testing.T) {
	l, p := testLedger(t)
	for i := 0; i < 25; i++ {
		l.Record(p, TxTrade, float64(i))
	}
	assert.Len(t, p.FinanceLog, 10)
	assert.Equal(t, 24.0, p.FinanceLog[9].Amount)
}
