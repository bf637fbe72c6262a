package sim

import "fmt"

// Order is a request from a distributor for a quantity of one product.
// Orders are ephemeral: created on the distributor side, consumed on the
// factory side by being fulfilled into a delivery, or retained (backorder /
// postponement) for the next day's settlement.
type Order struct {
	Distributor string
	Product     Product
	Quantity    int
	DayPlaced   int
}

func (o *Order) String() string {
	return fmt.Sprintf("%s<-%dx%s(day %d)", o.Distributor, o.Quantity, o.Product, o.DayPlaced)
}

// Factory produces units into its stock and commits stock against orders.
// Stock never goes negative: a commit debits stock atomically with the
// delivery being scheduled.
type Factory struct {
	Name       string
	Producible []Product

	// Stock maps product to units on hand.
	Stock map[Product]int

	// Backorders holds orders received but not yet covered by stock, in
	// arrival order. Only the single-target policy routes orders here; it
	// drains them first-come-first-served once per daily settlement.
	Backorders []*Order

	// ProductionPerDay counts units produced per day, for reporting.
	ProductionPerDay []int
}

// NewFactory creates a factory with empty stock.
func NewFactory(name string, producible []Product, totalDays int) *Factory {
	stock := make(map[Product]int, len(producible))
	for _, p := range producible {
		stock[p] = 0
	}
	return &Factory{
		Name:             name,
		Producible:       producible,
		Stock:            stock,
		ProductionPerDay: make([]int, totalDays),
	}
}

// Produce adds one unit of p to stock and records it against the day.
func (f *Factory) Produce(p Product, day int) error {
	if _, ok := f.Stock[p]; !ok {
		return fmt.Errorf("factory %s: cannot produce unknown product %q", f.Name, p)
	}
	f.Stock[p]++
	f.ProductionPerDay[day]++
	return nil
}

// ReceiveOrder appends an order to the backorder book.
func (f *Factory) ReceiveOrder(o *Order) {
	f.Backorders = append(f.Backorders, o)
}

// CanCover reports whether current stock fully covers qty units of p.
func (f *Factory) CanCover(p Product, qty int) bool {
	return f.Stock[p] >= qty
}

// Commit debits qty units of p from stock. The caller must schedule the
// matching delivery in the same causal step; a commit is a realized
// transfer in flight, not a reservation. Committing more than is on hand
// is an invariant violation and aborts the replication.
func (f *Factory) Commit(p Product, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("factory %s: commit of non-positive quantity %d of %q", f.Name, qty, p)
	}
	if f.Stock[p] < qty {
		return fmt.Errorf("factory %s: commit of %d units of %q exceeds stock %d", f.Name, qty, p, f.Stock[p])
	}
	f.Stock[p] -= qty
	return nil
}

// TotalStock returns the units on hand summed over all products.
func (f *Factory) TotalStock() int {
	total := 0
	for _, units := range f.Stock {
		total += units
	}
	return total
}
