package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events.
// Each event has a due time in simulated hours and an Execute method that
// advances simulation state when invoked. Events are immutable once
// scheduled and consumed exactly once by the run loop.
type Event interface {
	Timestamp() float64
	Execute(*Simulator) error
}

// ProductionEvent is one unit of production at a factory. Each execution
// adds a uniformly chosen producible product to the factory's stock, then
// schedules its own successor, keeping the chain alive until the horizon.
type ProductionEvent struct {
	time    float64
	Factory string
}

// Timestamp returns the scheduled time of the ProductionEvent.
func (e *ProductionEvent) Timestamp() float64 {
	return e.time
}

// Execute adds one produced unit to factory stock and schedules the next
// production.
func (e *ProductionEvent) Execute(s *Simulator) error {
	f := s.Factories[e.Factory]
	p := s.Rand.PickProduct(f.Producible)
	logrus.Debugf("<< Production: %s makes one %s at hour %.3f", e.Factory, p, e.time)
	if err := f.Produce(p, s.DayIndex()); err != nil {
		return err
	}
	s.ScheduleNextProduction(e.Factory, e.time)
	return nil
}

// WholesalerOrderEvent is one unit of wholesaler demand. It picks a
// distributor and a product uniformly, delivers the demand immediately
// (sale or miss), and schedules its own successor.
type WholesalerOrderEvent struct {
	time float64
}

// Timestamp returns the scheduled time of the WholesalerOrderEvent.
func (e *WholesalerOrderEvent) Timestamp() float64 {
	return e.time
}

// Execute routes one unit of demand to a random distributor.
func (e *WholesalerOrderEvent) Execute(s *Simulator) error {
	name := s.Rand.PickName(s.distributorNames)
	p := s.Rand.PickProduct(s.Network.Products)
	d := s.Distributors[name]

	sold, err := d.ReceiveWholesalerOrder(p, s.DayIndex())
	if err != nil {
		return err
	}
	logrus.Debugf("<< WholesalerOrder: %s for %s at hour %.3f (sold=%v)", name, p, e.time, sold)
	if sold {
		s.recordStockTrace(name)
	}
	s.ScheduleNextWholesalerOrder(e.time)
	return nil
}

// DeliveryEvent is goods in flight arriving at a distributor. The quantity
// was debited from factory stock when the delivery was committed; arrival
// credits the distributor by exactly that quantity.
type DeliveryEvent struct {
	time        float64
	Distributor string
	Product     Product
	Quantity    int
}

// Timestamp returns the scheduled arrival time of the DeliveryEvent.
func (e *DeliveryEvent) Timestamp() float64 {
	return e.time
}

// Execute credits the arrived goods to the distributor's stock.
func (e *DeliveryEvent) Execute(s *Simulator) error {
	d, ok := s.Distributors[e.Distributor]
	if !ok {
		return &UnknownEntityError{Kind: "distributor", Name: e.Distributor}
	}
	logrus.Debugf("<< Delivery: %dx%s arrives at %s at hour %.3f", e.Quantity, e.Product, e.Distributor, e.time)
	if err := d.ReceiveDelivery(e.Product, e.Quantity, s.DayIndex()); err != nil {
		return err
	}
	s.recordStockTrace(e.Distributor)
	return nil
}

// DailySettlementEvent runs once per day at hour Day*24, from the bootstrap
// day to the end of the horizon. It performs, strictly in this order:
// storage cost accrual, order generation (bootstrap or demand conversion),
// order routing through the fulfillment policy, daily cost settlement, and
// the factory backorder drain.
type DailySettlementEvent struct {
	time float64
	Day  int
}

// Timestamp returns the scheduled time of the DailySettlementEvent.
func (e *DailySettlementEvent) Timestamp() float64 {
	return e.time
}

// Execute runs the daily settlement.
func (e *DailySettlementEvent) Execute(s *Simulator) error {
	logrus.Debugf("<< DailySettlement: day %d", e.Day)

	// 1. snapshot stock and accrue the day's holding cost
	for _, name := range s.distributorNames {
		d := s.Distributors[name]
		total := d.TotalStock()
		d.StockTotalPerDay = append(d.StockTotalPerDay, total)
		d.Ledger.AccrueStorage(e.Day, total, s.Network.StorageCostRate)
	}

	// 2. generate replenishment orders
	for _, name := range s.distributorNames {
		d := s.Distributors[name]
		if e.Day == BootstrapDay {
			d.PlanBootstrapOrders(s.Network.Products, s.Network.BootstrapQuantity, e.Day)
		} else {
			d.ConvertDemandToOrders(s.Network.Products, e.Day)
		}
	}

	// 3. route orders to factories
	for _, name := range s.distributorNames {
		if err := s.Policy.RouteOrders(s, s.Distributors[name], e.Day); err != nil {
			return err
		}
	}

	// 4. settle the day's total cost
	for _, name := range s.distributorNames {
		s.Distributors[name].Ledger.SettleDay(e.Day)
	}

	// 5. factories drain retained orders against current stock
	for _, name := range s.factoryNames {
		if err := s.Policy.DrainBackorders(s, s.Factories[name], e.Day); err != nil {
			return err
		}
	}
	return nil
}

// UnknownEntityError reports an event referencing an entity the simulation
// does not own. It indicates a programming-logic error, not bad input.
type UnknownEntityError struct {
	Kind string
	Name string
}

func (e *UnknownEntityError) Error() string {
	return "unknown " + e.Kind + " " + e.Name
}
