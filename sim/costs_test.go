package sim

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestDeliveryCost_ExactWithFractionalLead(t *testing.T) {
	// 10 per lead-hour over 16.5 hours must be exactly 165
	require.True(t, DeliveryCost(10, 16.5).Equal(decimal.NewFromInt(165)))
	require.True(t, DeliveryCost(10, 12).Equal(decimal.NewFromInt(120)))
}

func TestCostLedger_DayAdditivity(t *testing.T) {
	l := NewCostLedger(30)

	l.AccrueStorage(8, 37, 1)
	l.AccrueDelivery(8, "p1", DeliveryCost(10, 16.5))
	l.AccrueDelivery(8, "p2", DeliveryCost(10, 12))
	l.AccrueDelivery(8, "p1", DeliveryCost(10, 16.5)) // second order, same product
	l.SettleDay(8)

	day := l.Day(8)
	require.True(t, day.Storage.Equal(decimal.NewFromInt(37)))
	require.True(t, day.Delivery["p1"].Equal(decimal.NewFromInt(330)))
	require.True(t, day.Delivery["p2"].Equal(decimal.NewFromInt(120)))

	// total == storage + sum of per-product delivery costs, exactly
	want := decimal.NewFromInt(37 + 330 + 120)
	require.True(t, day.Total.Equal(want), "got %s want %s", day.Total, want)
}

func TestCostLedger_TotalCostSumsSettledDays(t *testing.T) {
	l := NewCostLedger(30)
	l.AccrueStorage(7, 10, 1)
	l.SettleDay(7)
	l.AccrueStorage(8, 20, 1)
	l.AccrueDelivery(8, "p1", DeliveryCost(10, 13))
	l.SettleDay(8)

	require.True(t, l.TotalCost().Equal(decimal.NewFromInt(10+20+130)))
}

func TestCostLedger_UnsettledDaysCountNothing(t *testing.T) {
	l := NewCostLedger(30)
	l.AccrueStorage(8, 20, 1)
	// no SettleDay
	require.True(t, l.TotalCost().IsZero())
}

func TestRun_CostAdditivityHoldsEveryDay(t *testing.T) {
	for _, policyName := range []string{PolicySingleTarget, PolicyLeadTimePriority} {
		t.Run(policyName, func(t *testing.T) {
			policy, err := NewPolicy(policyName)
			require.NoError(t, err)
			s, err := NewSimulator(DefaultNetwork(), policy, 17)
			require.NoError(t, err)
			require.NoError(t, s.Run())

			for name, d := range s.Distributors {
				for day := 0; day < d.Ledger.Days(); day++ {
					entry := d.Ledger.Day(day)
					sum := entry.Storage
					for _, cost := range entry.Delivery {
						sum = sum.Add(cost)
					}
					require.True(t, entry.Total.Equal(sum),
						"%s day %d: total %s != storage+delivery %s", name, day, entry.Total, sum)
				}
			}
		})
	}
}
