package game

import (
	"fmt"

	"github.com/vraelian/experimental-sub000/internal/telemetry"
)

// AdvanceClock is the command-surface wrapper around AdvanceDays: it
// refuses to move time while a journey is suspended or the game is over.
func (e *Engine) AdvanceClock(n int) error {
	if err := e.guard(); err != nil {
		return err
	}
	e.AdvanceDays(n)
	return nil
}

// AdvanceDays moves the simulation clock forward one day at a time. The
// per-day order is fixed: birthday, life events and milestones, the
// periodic market tick with garnishment, intel expiry, passive repair of
// idle hulls, then the periodic interest charge. Systems later in the
// order see the same day's earlier mutations.
func (e *Engine) AdvanceDays(n int) {
	st := e.state
	if st == nil {
		return
	}
	p := st.Player
	k := e.Catalog.Constants

	for i := 0; i < n; i++ {
		if st.GameOver {
			return
		}
		st.Day++

		if st.Day%k.DaysPerYear == k.BirthdayDayOfYear {
			p.Age++
			p.BirthdayBonus += k.BirthdayProfitBonus
			e.notify(telemetry.KindBirthday,
				fmt.Sprintf("Another year out here. You turn %d.", p.Age),
				map[string]any{"age": p.Age})
		}

		for _, ev := range e.Tracker.PendingAgeEvents(p, st.Day) {
			if st.AnnouncedAgeEvents[ev.ID] {
				continue
			}
			st.AnnouncedAgeEvents[ev.ID] = true
			e.notify(telemetry.KindAgeEvent, ev.Title, map[string]any{"age_event_id": ev.ID})
		}
		e.afterWealthChange()

		if st.Day-st.LastMarketDay >= k.MarketIntervalDays {
			e.Mkt.EvolveWeekly(st.Market)
			e.Mkt.RecordHistory(st.Market, st.Day)
			seized, firstWarning := e.Ledger.ApplyGarnishment(p, st.Day)
			if firstWarning {
				e.notify(telemetry.KindGarnishment,
					"Your creditor has begun garnishing your earnings. Pay off the debt to stop it.",
					map[string]any{"seized": seized})
			} else if seized > 0 {
				e.notify(telemetry.KindGarnishment,
					fmt.Sprintf("Garnishment: %.0f credits seized.", seized),
					map[string]any{"seized": seized})
			}
			st.LastMarketDay = st.Day
		}

		if st.Intel != nil && st.Day > st.Intel.EndDay {
			e.notify(telemetry.KindIntelExpired, "Your market tip has gone stale.", map[string]any{
				"location_id":  st.Intel.LocationID,
				"commodity_id": st.Intel.CommodityID,
			})
			st.Intel = nil
		}

		// Idle hulls mend slowly at dock speed; the active ship only
		// heals when paid for.
		for _, id := range p.ShipOrder {
			if id == p.ActiveShipID {
				continue
			}
			s := p.Ships[id]
			s.Repair(k.PassiveRepairPct * float64(s.MaxHealth))
		}

		if st.Day-st.LastInterestDay >= k.InterestIntervalDays {
			if charge := e.Ledger.WeeklyInterest(p); charge > 0 {
				p.Debt += charge
			}
			st.LastInterestDay = st.Day
		}
	}
}
