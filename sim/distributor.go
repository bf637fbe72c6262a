package sim

import "fmt"

// Distributor serves wholesaler demand from its stock and replenishes by
// ordering from factories once per daily settlement. Stock only increases
// via ReceiveDelivery and only decreases via ReceiveWholesalerOrder.
type Distributor struct {
	Name string

	// Stock maps product to units on hand.
	Stock map[Product]int

	// Missed counts wholesaler demand that arrived while stock was empty,
	// per product, since the last demand conversion. Unmet wholesaler demand
	// is never queued: it is lost, and recovered only as a signal that
	// inflates the next day's replenishment order.
	Missed map[Product]int

	// PendingOrders holds replenishment orders awaiting routing. The daily
	// settlement fills it (bootstrap or demand conversion) and the policy
	// consumes it; under the priority policy unfulfilled orders stay here,
	// postponed whole to the next day.
	PendingOrders []*Order

	// Day-indexed reporting series.
	Sales             []map[Product]int
	DeliveriesPerDay  []map[Product]int
	WholesalerOrders  []int
	MissedDemand      []int
	StockTotalPerDay  []int

	// Ledger is the distributor's cost ledger, written only by the daily
	// settlement.
	Ledger *CostLedger
}

// NewDistributor creates a distributor with empty stock over the catalog.
func NewDistributor(name string, catalog []Product, totalDays int) *Distributor {
	stock := make(map[Product]int, len(catalog))
	missed := make(map[Product]int, len(catalog))
	for _, p := range catalog {
		stock[p] = 0
		missed[p] = 0
	}
	sales := make([]map[Product]int, totalDays)
	deliveries := make([]map[Product]int, totalDays)
	for d := 0; d < totalDays; d++ {
		sales[d] = make(map[Product]int)
		deliveries[d] = make(map[Product]int)
	}
	return &Distributor{
		Name:             name,
		Stock:            stock,
		Missed:           missed,
		Sales:            sales,
		DeliveriesPerDay: deliveries,
		WholesalerOrders: make([]int, totalDays),
		MissedDemand:     make([]int, totalDays),
		Ledger:           NewCostLedger(totalDays),
	}
}

// ReceiveWholesalerOrder handles one unit of wholesaler demand for p at the
// given day. Demand is immediate-or-lost: a unit in stock becomes a sale,
// otherwise the miss is counted. Returns whether a sale happened.
func (d *Distributor) ReceiveWholesalerOrder(p Product, day int) (bool, error) {
	if _, ok := d.Stock[p]; !ok {
		return false, fmt.Errorf("distributor %s: wholesaler order for unknown product %q", d.Name, p)
	}
	d.WholesalerOrders[day]++
	if d.Stock[p] > 0 {
		d.Stock[p]--
		d.Sales[day][p]++
		return true, nil
	}
	d.Missed[p]++
	d.MissedDemand[day]++
	return false, nil
}

// ReceiveDelivery credits qty units of p that arrived from a factory.
func (d *Distributor) ReceiveDelivery(p Product, qty int, day int) error {
	if _, ok := d.Stock[p]; !ok {
		return fmt.Errorf("distributor %s: delivery of unknown product %q", d.Name, p)
	}
	if qty <= 0 {
		return fmt.Errorf("distributor %s: delivery of non-positive quantity %d of %q", d.Name, qty, p)
	}
	d.Stock[p] += qty
	d.DeliveriesPerDay[day][p] += qty
	return nil
}

// PlanBootstrapOrders queues the initial stock order: a fixed quantity of
// every product in the catalog, regardless of prior missed-demand state.
func (d *Distributor) PlanBootstrapOrders(catalog []Product, qty, day int) {
	for _, p := range catalog {
		d.PendingOrders = append(d.PendingOrders, &Order{
			Distributor: d.Name,
			Product:     p,
			Quantity:    qty,
			DayPlaced:   day,
		})
	}
}

// ConvertDemandToOrders turns the accumulated demand signal into new
// replenishment orders: per product, missed demand since the last
// conversion plus the previous day's realized sales. The coupling to
// recent sales is deliberate; it is a noisy demand signal, not a moving
// average. Missed counters reset immediately after conversion.
//
// Orders already postponed from earlier days are left in place; new orders
// for the same product are queued alongside them, not merged.
func (d *Distributor) ConvertDemandToOrders(catalog []Product, day int) {
	for _, p := range catalog {
		qty := d.Missed[p]
		if day > 0 {
			qty += d.Sales[day-1][p]
		}
		if qty > 0 {
			d.PendingOrders = append(d.PendingOrders, &Order{
				Distributor: d.Name,
				Product:     p,
				Quantity:    qty,
				DayPlaced:   day,
			})
		}
		d.Missed[p] = 0
	}
}

// TotalStock returns the units on hand summed over all products.
func (d *Distributor) TotalStock() int {
	total := 0
	for _, units := range d.Stock {
		total += units
	}
	return total
}

// TotalSales returns units sold summed over all days and products.
func (d *Distributor) TotalSales() int {
	total := 0
	for _, day := range d.Sales {
		for _, units := range day {
			total += units
		}
	}
	return total
}
