package sim

import (
	"fmt"
	"sort"
)

// Product identifies a SKU in the catalog.
type Product string

// Network is the static configuration surface of the supply chain: who can
// produce what, how far every factory is from every distributor, and the
// cost coefficients. It is consumed, never mutated, by the simulation.
type Network struct {
	// Products is the SKU catalog, in catalog order. Order matters: uniform
	// product choices and daily demand conversion iterate it as given, which
	// keeps replications deterministic.
	Products []Product `yaml:"products"`

	// FactoryProducts maps factory name to its producible product set.
	FactoryProducts map[string][]Product `yaml:"factory_products"`

	// Distributors lists the distributor names.
	Distributors []string `yaml:"distributors"`

	// LeadTimes maps distributor -> factory -> lead time in hours between a
	// factory committing stock and the goods arriving. Entries may be
	// fractional and must be present for every (distributor, factory) pair.
	LeadTimes map[string]map[string]float64 `yaml:"lead_times"`

	// DefaultFactory maps distributor -> product -> the statically assigned
	// factory. Only the single-target policy reads it.
	DefaultFactory map[string]map[Product]string `yaml:"default_factory"`

	// TotalDays is the simulated horizon in days; the horizon in hours is
	// TotalDays * 24.
	TotalDays int `yaml:"total_days"`

	// BootstrapQuantity is the per-product order quantity each distributor
	// places on the bootstrap day.
	BootstrapQuantity int `yaml:"bootstrap_quantity"`

	// StorageCostRate is the holding cost per unit per day.
	StorageCostRate float64 `yaml:"storage_cost_rate"`

	// DeliveryCostRate is the delivery cost per lead-time hour.
	DeliveryCostRate float64 `yaml:"delivery_cost_rate"`
}

// BootstrapDay is the day index on which distributors place their initial
// stock orders. Wholesaler demand starts the following day; before that the
// simulation is a pure production ramp-up.
const BootstrapDay = 7

// Horizon returns the simulated-time cutoff in hours.
func (n *Network) Horizon() float64 {
	return float64(n.TotalDays) * 24
}

// FactoryNames returns the factory names in sorted order.
func (n *Network) FactoryNames() []string {
	names := make([]string, 0, len(n.FactoryProducts))
	for name := range n.FactoryProducts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ProducersOf returns the names of all factories able to produce p, in
// sorted name order. The priority policy re-ranks this list by lead time;
// starting from sorted names keeps equal-lead-time ranking deterministic.
func (n *Network) ProducersOf(p Product) []string {
	var producers []string
	for _, name := range n.FactoryNames() {
		for _, candidate := range n.FactoryProducts[name] {
			if candidate == p {
				producers = append(producers, name)
				break
			}
		}
	}
	return producers
}

// LeadTime returns the lead time in hours between the distributor and the
// factory. Validate guarantees the entry exists.
func (n *Network) LeadTime(distributor, factory string) float64 {
	return n.LeadTimes[distributor][factory]
}

// Validate fails fast on an invalid input model: a product no factory can
// produce, a missing lead-time entry, or an incomplete single-target
// assignment. These are configuration errors and must surface at
// construction, not at first use mid-replication.
func (n *Network) Validate() error {
	if len(n.Products) == 0 {
		return fmt.Errorf("network: empty product catalog")
	}
	if len(n.FactoryProducts) == 0 {
		return fmt.Errorf("network: no factories")
	}
	if len(n.Distributors) == 0 {
		return fmt.Errorf("network: no distributors")
	}
	if n.TotalDays <= BootstrapDay {
		return fmt.Errorf("network: total_days must exceed the bootstrap day %d, got %d", BootstrapDay, n.TotalDays)
	}
	if n.BootstrapQuantity <= 0 {
		return fmt.Errorf("network: bootstrap_quantity must be positive, got %d", n.BootstrapQuantity)
	}
	if n.StorageCostRate < 0 || n.DeliveryCostRate < 0 {
		return fmt.Errorf("network: cost rates must be non-negative")
	}

	catalog := make(map[Product]bool, len(n.Products))
	for _, p := range n.Products {
		if catalog[p] {
			return fmt.Errorf("network: duplicate product %q in catalog", p)
		}
		catalog[p] = true
	}

	for factory, products := range n.FactoryProducts {
		if len(products) == 0 {
			return fmt.Errorf("network: factory %q produces nothing", factory)
		}
		for _, p := range products {
			if !catalog[p] {
				return fmt.Errorf("network: factory %q produces unknown product %q", factory, p)
			}
		}
	}

	for _, p := range n.Products {
		if len(n.ProducersOf(p)) == 0 {
			return fmt.Errorf("network: product %q has no capable factory", p)
		}
	}

	for _, d := range n.Distributors {
		leads, ok := n.LeadTimes[d]
		if !ok {
			return fmt.Errorf("network: no lead times for distributor %q", d)
		}
		for _, f := range n.FactoryNames() {
			lead, ok := leads[f]
			if !ok {
				return fmt.Errorf("network: missing lead time for (%s, %s)", d, f)
			}
			if lead <= 0 {
				return fmt.Errorf("network: lead time for (%s, %s) must be positive, got %v", d, f, lead)
			}
		}
	}

	for _, d := range n.Distributors {
		assignments, ok := n.DefaultFactory[d]
		if !ok {
			return fmt.Errorf("network: no default factory assignment for distributor %q", d)
		}
		for _, p := range n.Products {
			factory, ok := assignments[p]
			if !ok {
				return fmt.Errorf("network: no default factory for (%s, %s)", d, p)
			}
			if _, ok := n.FactoryProducts[factory]; !ok {
				return fmt.Errorf("network: default factory %q for (%s, %s) does not exist", factory, d, p)
			}
			producible := false
			for _, candidate := range n.FactoryProducts[factory] {
				if candidate == p {
					producible = true
					break
				}
			}
			if !producible {
				return fmt.Errorf("network: default factory %q cannot produce %q (assigned for %s)", factory, p, d)
			}
		}
	}
	return nil
}

// DefaultNetwork returns the reference configuration: 12 SKUs, four
// factories each producing half the catalog, four distributors, and the
// fixed lead-time and assignment tables.
func DefaultNetwork() *Network {
	products := []Product{"p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8", "p9", "p10", "p11", "p12"}

	assignD12 := map[Product]string{
		"p1": "F1", "p2": "F1", "p3": "F1", "p4": "F1", "p5": "F1", "p6": "F1",
		"p7": "F2", "p8": "F2", "p9": "F2", "p10": "F2", "p11": "F2", "p12": "F2",
	}
	assignD34 := map[Product]string{
		"p1": "F4", "p2": "F4", "p3": "F4", "p10": "F4", "p11": "F4", "p12": "F4",
		"p4": "F3", "p5": "F3", "p6": "F3", "p7": "F3", "p8": "F3", "p9": "F3",
	}

	return &Network{
		Products: products,
		FactoryProducts: map[string][]Product{
			"F1": {"p1", "p2", "p3", "p4", "p5", "p6"},
			"F2": {"p7", "p8", "p9", "p10", "p11", "p12"},
			"F3": {"p4", "p5", "p6", "p7", "p8", "p9"},
			"F4": {"p10", "p11", "p12", "p1", "p2", "p3"},
		},
		Distributors: []string{"D1", "D2", "D3", "D4"},
		LeadTimes: map[string]map[string]float64{
			"D1": {"F1": 16, "F2": 22, "F3": 20, "F4": 12},
			"D2": {"F1": 15, "F2": 16, "F3": 13, "F4": 19},
			"D3": {"F1": 14, "F2": 16.5, "F3": 20, "F4": 17},
			"D4": {"F1": 22, "F2": 13, "F3": 16.5, "F4": 18},
		},
		DefaultFactory: map[string]map[Product]string{
			"D1": assignD12,
			"D2": assignD12,
			"D3": assignD34,
			"D4": assignD34,
		},
		TotalDays:         30,
		BootstrapQuantity: 10,
		StorageCostRate:   1,
		DeliveryCostRate:  10,
	}
}
