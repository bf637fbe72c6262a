package sim

import (
	"container/heap"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// queuedEvent pairs an event with its scheduling sequence number. The
// sequence breaks ties between equal-time events so that dispatch order is
// exactly scheduling order, which keeps replications reproducible.
type queuedEvent struct {
	event Event
	seq   uint64
}

// eventQueue implements heap.Interface ordered by (timestamp, sequence).
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type eventQueue []queuedEvent

func (eq eventQueue) Len() int { return len(eq) }

func (eq eventQueue) Less(i, j int) bool {
	if eq[i].event.Timestamp() != eq[j].event.Timestamp() {
		return eq[i].event.Timestamp() < eq[j].event.Timestamp()
	}
	return eq[i].seq < eq[j].seq
}

func (eq eventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *eventQueue) Push(x any) {
	*eq = append(*eq, x.(queuedEvent))
}

func (eq *eventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// StockSample is one point of the continuous stock trace: total units held
// by the traced distributor at the instant a sale or delivery changed it.
type StockSample struct {
	Hour  float64
	Units int
}

// Simulator is one replication: it owns the clock, the event queue, every
// factory and distributor, the fulfillment policy, and the replication's
// random source. Nothing is shared across Simulators.
type Simulator struct {
	Clock   float64 // current simulated time in hours
	Horizon float64 // TotalDays * 24; events past it are never dispatched

	Network *Network
	Policy  FulfillmentPolicy
	Rand    *RandomSource

	Factories    map[string]*Factory
	Distributors map[string]*Distributor

	// TraceDistributor, when set, enables the continuous stock trace for
	// that distributor.
	TraceDistributor string
	StockTrace       []StockSample

	// sorted iteration orders; map iteration would break determinism
	factoryNames     []string
	distributorNames []string

	events eventQueue
	seq    uint64
}

// NewSimulator validates the network and builds a fresh replication with
// its own seeded random source. Configuration errors surface here, before
// any event runs.
func NewSimulator(network *Network, policy FulfillmentPolicy, seed int64) (*Simulator, error) {
	if err := network.Validate(); err != nil {
		return nil, err
	}
	if policy == nil {
		return nil, fmt.Errorf("sim: nil fulfillment policy")
	}

	s := &Simulator{
		Horizon:      network.Horizon(),
		Network:      network,
		Policy:       policy,
		Rand:         NewRandomSource(seed),
		Factories:    make(map[string]*Factory),
		Distributors: make(map[string]*Distributor),
		events:       make(eventQueue, 0),
	}

	for _, name := range network.FactoryNames() {
		s.Factories[name] = NewFactory(name, network.FactoryProducts[name], network.TotalDays)
		s.factoryNames = append(s.factoryNames, name)
	}
	s.distributorNames = append(s.distributorNames, network.Distributors...)
	sort.Strings(s.distributorNames)
	for _, name := range s.distributorNames {
		s.Distributors[name] = NewDistributor(name, network.Products, network.TotalDays)
	}
	return s, nil
}

// Schedule inserts an event into the timeline. Events due past the horizon
// are discarded here; they must never be dispatched, not even to be thrown
// away after side effects.
func (s *Simulator) Schedule(ev Event) {
	if ev.Timestamp() > s.Horizon {
		logrus.Debugf("[hour %08.3f] Discarding %T past horizon (due %.3f)", s.Clock, ev, ev.Timestamp())
		return
	}
	s.seq++
	heap.Push(&s.events, queuedEvent{event: ev, seq: s.seq})
}

// Run schedules the initial events and drives the pop-dispatch loop until
// the queue drains or the next event is past the horizon. The first
// invariant violation aborts the replication with an error.
func (s *Simulator) Run() error {
	s.scheduleInitialEvents()

	for s.events.Len() > 0 {
		item := heap.Pop(&s.events).(queuedEvent)
		if item.event.Timestamp() > s.Horizon {
			break
		}
		s.Clock = item.event.Timestamp()
		logrus.Debugf("[hour %08.3f] Executing %T", s.Clock, item.event)
		if err := item.event.Execute(s); err != nil {
			return fmt.Errorf("sim: at hour %.3f: %w", s.Clock, err)
		}
	}
	logrus.Debugf("[hour %08.3f] Simulation ended", s.Clock)
	return nil
}

// scheduleInitialEvents seeds the timeline: one self-sustaining production
// chain per factory from hour 0, the fixed daily settlements from the
// bootstrap day to the horizon, and the wholesaler demand chain starting
// the day after bootstrap.
func (s *Simulator) scheduleInitialEvents() {
	for _, name := range s.factoryNames {
		s.ScheduleNextProduction(name, 0)
	}
	for day := BootstrapDay; day < s.Network.TotalDays; day++ {
		s.Schedule(&DailySettlementEvent{time: float64(day) * 24, Day: day})
	}
	s.ScheduleNextWholesalerOrder(float64(BootstrapDay+1) * 24)

	if d, ok := s.Distributors[s.TraceDistributor]; ok {
		s.StockTrace = append(s.StockTrace, StockSample{Hour: 0, Units: d.TotalStock()})
	}
}

// ScheduleNextProduction schedules the factory's next unit-production event
// after an exponential gap (mean productionMeanGapSeconds), making
// production a Poisson process per factory.
func (s *Simulator) ScheduleNextProduction(factory string, base float64) {
	gap := s.Rand.Exponential(productionMeanGapSeconds) / secondsPerHour
	s.Schedule(&ProductionEvent{time: base + gap, Factory: factory})
}

// ScheduleNextWholesalerOrder schedules the next demand arrival after a
// uniform gap in [demandMinGapSeconds, demandMaxGapSeconds].
func (s *Simulator) ScheduleNextWholesalerOrder(base float64) {
	gap := s.Rand.Uniform(demandMinGapSeconds, demandMaxGapSeconds) / secondsPerHour
	s.Schedule(&WholesalerOrderEvent{time: base + gap})
}

// ScheduleDelivery debits the factory's stock and schedules the arrival at
// the distributor after the lead time. Commit and scheduling happen
// atomically from the model's point of view: by the time this returns, the
// stock is gone and the goods are in flight.
func (s *Simulator) ScheduleDelivery(f *Factory, o *Order, leadHours float64) error {
	if err := f.Commit(o.Product, o.Quantity); err != nil {
		return err
	}
	s.Schedule(&DeliveryEvent{
		time:        s.Clock + leadHours,
		Distributor: o.Distributor,
		Product:     o.Product,
		Quantity:    o.Quantity,
	})
	return nil
}

// DayIndex converts the current clock to a day index, clamped to the last
// day so that arrivals at exactly the horizon land in the final ledger day.
func (s *Simulator) DayIndex() int {
	day := int(s.Clock / 24)
	if day >= s.Network.TotalDays {
		day = s.Network.TotalDays - 1
	}
	return day
}

// DistributorNames returns the distributor names in iteration (sorted) order.
func (s *Simulator) DistributorNames() []string {
	return s.distributorNames
}

// FactoryNames returns the factory names in iteration (sorted) order.
func (s *Simulator) FactoryNames() []string {
	return s.factoryNames
}

// recordStockTrace appends a trace sample if name is the traced distributor.
func (s *Simulator) recordStockTrace(name string) {
	if name != s.TraceDistributor {
		return
	}
	s.StockTrace = append(s.StockTrace, StockSample{
		Hour:  s.Clock,
		Units: s.Distributors[name].TotalStock(),
	})
}

const (
	secondsPerHour = 3600.0

	// productionMeanGapSeconds is the mean of the exponential gap between
	// unit productions at one factory.
	productionMeanGapSeconds = 600.0

	// demandMinGapSeconds and demandMaxGapSeconds bound the uniform gap
	// between wholesaler order arrivals.
	demandMinGapSeconds = 600.0
	demandMaxGapSeconds = 3600.0
)
