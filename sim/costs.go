package sim

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DayCosts holds one distributor-day of the economic ledger. Monetary
// amounts use decimal so that the additivity invariant
// Total == Storage + sum(Delivery) holds exactly even with fractional
// lead-time hours.
type DayCosts struct {
	Delivery map[Product]decimal.Decimal // per-product delivery cost accrued this day
	Storage  decimal.Decimal             // holding cost accrued this day
	Total    decimal.Decimal             // settled at the end of the daily settlement
}

// CostLedger is the per-distributor, day-indexed cost ledger. It is pure
// derived state: only the daily settlement writes it, and it never touches
// stock or orders.
type CostLedger struct {
	days []*DayCosts
}

// NewCostLedger creates a ledger covering days [0, totalDays).
func NewCostLedger(totalDays int) *CostLedger {
	days := make([]*DayCosts, totalDays)
	for d := range days {
		days[d] = &DayCosts{Delivery: make(map[Product]decimal.Decimal)}
	}
	return &CostLedger{days: days}
}

// Day returns the ledger entry for the given day.
func (l *CostLedger) Day(day int) *DayCosts {
	return l.days[day]
}

// Days returns the number of days the ledger covers.
func (l *CostLedger) Days() int {
	return len(l.days)
}

// AccrueStorage charges the day's holding cost: rate per unit held.
func (l *CostLedger) AccrueStorage(day int, units int, rate float64) {
	cost := decimal.NewFromFloat(rate).Mul(decimal.NewFromInt(int64(units)))
	entry := l.days[day]
	entry.Storage = entry.Storage.Add(cost)
}

// AccrueDelivery charges a delivery cost for the product on the given day.
func (l *CostLedger) AccrueDelivery(day int, p Product, cost decimal.Decimal) {
	entry := l.days[day]
	entry.Delivery[p] = entry.Delivery[p].Add(cost)
}

// SettleDay fixes the day's total as storage plus all delivery charges.
func (l *CostLedger) SettleDay(day int) {
	entry := l.days[day]
	total := entry.Storage
	for _, cost := range entry.Delivery {
		total = total.Add(cost)
	}
	entry.Total = total
}

// TotalCost sums the settled totals over all days.
func (l *CostLedger) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, entry := range l.days {
		total = total.Add(entry.Total)
	}
	return total
}

// DeliveryCost computes the charge for shipping over the given lead time:
// rate per lead-time hour, independent of quantity.
func DeliveryCost(rate, leadHours float64) decimal.Decimal {
	return decimal.NewFromFloat(rate).Mul(decimal.NewFromFloat(leadHours))
}

func (c *DayCosts) String() string {
	return fmt.Sprintf("{storage=%s delivery=%d products total=%s}", c.Storage, len(c.Delivery), c.Total)
}
