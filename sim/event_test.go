package sim

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestDailySettlement_BootstrapDay(t *testing.T) {
	// GIVEN all stocks at zero entering day 7, and stale missed-demand state
	s, err := NewSimulator(DefaultNetwork(), &LeadTimePriorityPolicy{}, 1)
	require.NoError(t, err)
	s.Distributors["D2"].Missed["p1"] = 50

	settle := &DailySettlementEvent{time: float64(BootstrapDay) * 24, Day: BootstrapDay}
	s.Clock = settle.Timestamp()
	require.NoError(t, settle.Execute(s))

	// THEN each distributor emitted exactly one order per product, quantity
	// 10, regardless of the missed-demand state; with empty factories the
	// priority policy postponed all of them whole
	for name, d := range s.Distributors {
		require.Len(t, d.PendingOrders, 12, "distributor %s", name)
		for _, o := range d.PendingOrders {
			require.Equal(t, 10, o.Quantity)
			require.Equal(t, BootstrapDay, o.DayPlaced)
		}
		// empty stock means zero storage cost and no delivery charges
		require.True(t, d.Ledger.Day(BootstrapDay).Total.IsZero())
	}
}

func TestDailySettlement_StorageCostFromSnapshot(t *testing.T) {
	s, err := NewSimulator(DefaultNetwork(), &LeadTimePriorityPolicy{}, 1)
	require.NoError(t, err)
	d := s.Distributors["D1"]
	d.Stock["p1"] = 20
	d.Stock["p7"] = 17

	settle := &DailySettlementEvent{time: 8 * 24, Day: 8}
	s.Clock = settle.Timestamp()
	require.NoError(t, settle.Execute(s))

	// storage cost is one per unit held at the snapshot
	require.True(t, d.Ledger.Day(8).Storage.Equal(decimal.NewFromInt(37)))
	require.Equal(t, []int{37}, d.StockTotalPerDay)
}

func TestDailySettlement_RoutesConvertedDemand(t *testing.T) {
	// single-target: converted demand is routed and charged the same day
	s, err := NewSimulator(DefaultNetwork(), &SingleTargetPolicy{}, 1)
	require.NoError(t, err)
	d := s.Distributors["D1"]
	d.Missed["p1"] = 4
	d.Sales[8]["p1"] = 2
	s.Factories["F1"].Stock["p1"] = 10

	settle := &DailySettlementEvent{time: 9 * 24, Day: 9}
	s.Clock = settle.Timestamp()
	require.NoError(t, settle.Execute(s))

	// order of 6 routed to F1 (D1's assigned factory, lead 16h):
	// charged 160 at send, committed by the drain in the same settlement
	require.True(t, d.Ledger.Day(9).Delivery["p1"].Equal(decimal.NewFromInt(160)))
	require.Equal(t, 4, s.Factories["F1"].Stock["p1"])
	require.Empty(t, s.Factories["F1"].Backorders)
	require.Equal(t, 0, d.Missed["p1"])

	// the day's total was settled before the drain ran, per the fixed order
	require.True(t, d.Ledger.Day(9).Total.Equal(decimal.NewFromInt(160)))
}

func TestProductionEvent_AddsStockAndReschedules(t *testing.T) {
	s, err := NewSimulator(DefaultNetwork(), &SingleTargetPolicy{}, 1)
	require.NoError(t, err)

	ev := &ProductionEvent{time: 5, Factory: "F1"}
	s.Clock = 5
	before := s.events.Len()
	require.NoError(t, ev.Execute(s))

	require.Equal(t, 1, s.Factories["F1"].TotalStock())
	require.Equal(t, 1, s.Factories["F1"].ProductionPerDay[0])
	require.Equal(t, before+1, s.events.Len(), "successor production not scheduled")
}

func TestWholesalerOrderEvent_Reschedules(t *testing.T) {
	s, err := NewSimulator(DefaultNetwork(), &SingleTargetPolicy{}, 1)
	require.NoError(t, err)

	ev := &WholesalerOrderEvent{time: 200}
	s.Clock = 200
	before := s.events.Len()
	require.NoError(t, ev.Execute(s))

	total := 0
	for _, d := range s.Distributors {
		total += d.WholesalerOrders[8]
	}
	require.Equal(t, 1, total, "exactly one distributor saw the demand")
	require.Equal(t, before+1, s.events.Len(), "successor order not scheduled")
}

func TestDeliveryEvent_UnknownDistributor(t *testing.T) {
	s, err := NewSimulator(DefaultNetwork(), &SingleTargetPolicy{}, 1)
	require.NoError(t, err)

	ev := &DeliveryEvent{time: 300, Distributor: "D9", Product: "p1", Quantity: 1}
	s.Clock = 300
	err = ev.Execute(s)
	require.Error(t, err)
	require.IsType(t, &UnknownEntityError{}, err)
}
