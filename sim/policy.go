package sim

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// FulfillmentPolicy decides, once per daily settlement, how distributor
// replenishment orders become factory commitments. RouteOrders consumes the
// distributor's pending orders; DrainBackorders lets a factory work off
// orders it retained on earlier days. Policies hold no per-replication
// state; everything they touch lives on the Simulator.
type FulfillmentPolicy interface {
	Name() string
	RouteOrders(s *Simulator, d *Distributor, day int) error
	DrainBackorders(s *Simulator, f *Factory, day int) error
}

// Policy names accepted by NewPolicy.
const (
	PolicySingleTarget     = "single-target"
	PolicyLeadTimePriority = "lead-time-priority"
)

// NewPolicy returns the named fulfillment policy.
func NewPolicy(name string) (FulfillmentPolicy, error) {
	switch name {
	case PolicySingleTarget:
		return &SingleTargetPolicy{}, nil
	case PolicyLeadTimePriority:
		return &LeadTimePriorityPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown fulfillment policy %q (want %q or %q)",
			name, PolicySingleTarget, PolicyLeadTimePriority)
	}
}

// SingleTargetPolicy sends every (distributor, product) order to the one
// statically assigned factory. Orders the factory cannot cover wait there
// as backorders and are retried unmodified each following day. Delivery
// cost is charged at send time, whether or not the order is ever filled.
type SingleTargetPolicy struct{}

// Name returns the policy name.
func (p *SingleTargetPolicy) Name() string { return PolicySingleTarget }

// RouteOrders forwards all pending orders to their assigned factories and
// charges the delivery cost for each.
func (p *SingleTargetPolicy) RouteOrders(s *Simulator, d *Distributor, day int) error {
	for _, o := range d.PendingOrders {
		target := s.Network.DefaultFactory[d.Name][o.Product]
		f, ok := s.Factories[target]
		if !ok {
			return &UnknownEntityError{Kind: "factory", Name: target}
		}
		f.ReceiveOrder(o)
		lead := s.Network.LeadTime(d.Name, target)
		d.Ledger.AccrueDelivery(day, o.Product, DeliveryCost(s.Network.DeliveryCostRate, lead))
		logrus.Debugf("   route: %v -> %s (lead %.1fh)", o, target, lead)
	}
	d.PendingOrders = nil
	return nil
}

// DrainBackorders fulfills the factory's backorders first-come-first-served
// against current stock. A covered order commits atomically and ships; the
// rest stay queued for the next day.
func (p *SingleTargetPolicy) DrainBackorders(s *Simulator, f *Factory, day int) error {
	var retained []*Order
	for _, o := range f.Backorders {
		if !f.CanCover(o.Product, o.Quantity) {
			retained = append(retained, o)
			continue
		}
		lead := s.Network.LeadTime(o.Distributor, f.Name)
		if err := s.ScheduleDelivery(f, o, lead); err != nil {
			return err
		}
		logrus.Debugf("   ship: %v from %s, arrives hour %.3f", o, f.Name, s.Clock+lead)
	}
	f.Backorders = retained
	return nil
}

// LeadTimePriorityPolicy offers each order to every factory able to produce
// the product, ranked ascending by the distributor's lead time. The first
// candidate whose stock fully covers the quantity commits the whole order;
// partial fills and splits are not permitted. If no candidate can cover it,
// the order is postponed whole to the next day's settlement. Delivery cost
// is charged only on commitment, at the winning candidate's lead time.
type LeadTimePriorityPolicy struct{}

// Name returns the policy name.
func (p *LeadTimePriorityPolicy) Name() string { return PolicyLeadTimePriority }

// RouteOrders routes pending orders by lead-time rank, postponing those no
// candidate can fully cover.
func (p *LeadTimePriorityPolicy) RouteOrders(s *Simulator, d *Distributor, day int) error {
	var postponed []*Order
	for _, o := range d.PendingOrders {
		candidates := s.Network.ProducersOf(o.Product)
		sort.SliceStable(candidates, func(i, j int) bool {
			return s.Network.LeadTime(d.Name, candidates[i]) < s.Network.LeadTime(d.Name, candidates[j])
		})

		committed := false
		for _, name := range candidates {
			f := s.Factories[name]
			if !f.CanCover(o.Product, o.Quantity) {
				continue
			}
			lead := s.Network.LeadTime(d.Name, name)
			if err := s.ScheduleDelivery(f, o, lead); err != nil {
				return err
			}
			d.Ledger.AccrueDelivery(day, o.Product, DeliveryCost(s.Network.DeliveryCostRate, lead))
			logrus.Debugf("   ship: %v from %s (lead %.1fh)", o, name, lead)
			committed = true
			break
		}
		if !committed {
			postponed = append(postponed, o)
			logrus.Debugf("   postpone: %v to day %d", o, day+1)
		}
	}
	d.PendingOrders = postponed
	return nil
}

// DrainBackorders is a no-op: this policy never leaves orders at factories.
func (p *LeadTimePriorityPolicy) DrainBackorders(s *Simulator, f *Factory, day int) error {
	return nil
}
