// Read-only reporting surface over a finished replication: day-indexed
// series and end-of-run aggregates for downstream tabulation or plotting.

package sim

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DistributorReport aggregates one distributor's run outcome.
type DistributorReport struct {
	Name         string
	UnitsSold    int
	MissedDemand int
	Deliveries   int // units received over the whole run
	FinalStock   int
	TotalCost    decimal.Decimal
}

// Report builds the end-of-run aggregate for one distributor.
func (s *Simulator) Report(distributor string) (*DistributorReport, error) {
	d, ok := s.Distributors[distributor]
	if !ok {
		return nil, &UnknownEntityError{Kind: "distributor", Name: distributor}
	}
	delivered := 0
	for _, day := range d.DeliveriesPerDay {
		for _, units := range day {
			delivered += units
		}
	}
	missed := 0
	for _, count := range d.MissedDemand {
		missed += count
	}
	return &DistributorReport{
		Name:         d.Name,
		UnitsSold:    d.TotalSales(),
		MissedDemand: missed,
		Deliveries:   delivered,
		FinalStock:   d.TotalStock(),
		TotalCost:    d.Ledger.TotalCost(),
	}, nil
}

// PrintSummary displays per-entity aggregates at the end of a replication.
func (s *Simulator) PrintSummary() {
	fmt.Println("=== Simulation Summary ===")
	fmt.Printf("Seed                 : %d\n", s.Rand.Seed())
	fmt.Printf("Policy               : %s\n", s.Policy.Name())
	fmt.Printf("Horizon              : %.0f hours (%d days)\n", s.Horizon, s.Network.TotalDays)
	for _, name := range s.factoryNames {
		f := s.Factories[name]
		produced := 0
		for _, units := range f.ProductionPerDay {
			produced += units
		}
		fmt.Printf("%s: produced %d units, %d in stock, %d backorders\n",
			name, produced, f.TotalStock(), len(f.Backorders))
	}
	for _, name := range s.distributorNames {
		r, _ := s.Report(name)
		fmt.Printf("%s: sold %d, missed %d, received %d, stock %d, cost %s\n",
			r.Name, r.UnitsSold, r.MissedDemand, r.Deliveries, r.FinalStock, r.TotalCost)
	}
}
