package sim

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// ReplicationResult is one independently seeded run's outcome for the
// focus distributor: total cost C, units sold N, and cost per unit R.
// R is +Inf when the replication sold nothing; that is a valid outcome,
// not an error.
type ReplicationResult struct {
	Seed        int64
	TotalCost   decimal.Decimal // C
	UnitsSold   int             // N
	CostPerUnit float64         // R = C/N, +Inf when N == 0
}

// ReplicationError records a replication that aborted, and on which seed,
// so a bad run is reportable without corrupting the others.
type ReplicationError struct {
	Seed int64
	Err  error
}

func (e ReplicationError) Error() string {
	return fmt.Sprintf("replication seed %d: %v", e.Seed, e.Err)
}

// Summary aggregates replication results for one strategy. R statistics
// are computed over finite ratios only; Degenerate counts the zero-sales
// replications excluded from them.
type Summary struct {
	Strategy     string
	Replications int
	Failed       []ReplicationError
	Degenerate   int

	CMean, CStdDev float64
	NMean, NStdDev float64
	RMean, RStdDev float64
}

// Experiment drives N replications per strategy over a fixed seed sequence.
// The same sequence is used for every strategy compared, so the only source
// of variation between strategies is the policy itself.
type Experiment struct {
	Network *Network
	Seeds   []int64

	// Focus is the distributor whose {C, N, R} the experiment measures.
	// Empty means the first distributor in sorted order.
	Focus string
}

// SeedSequence returns n consecutive deterministic seeds starting at start.
func SeedSequence(n int, start int64) []int64 {
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = start + int64(i)
	}
	return seeds
}

// Run executes every seed under the named policy and aggregates the
// results. A replication that fails is recorded with its seed and excluded
// from the statistics; the remaining replications are unaffected.
func (e *Experiment) Run(policyName string) (*Summary, error) {
	if len(e.Seeds) == 0 {
		return nil, fmt.Errorf("experiment: empty seed sequence")
	}
	summary := &Summary{Strategy: policyName}
	var results []ReplicationResult
	for _, seed := range e.Seeds {
		res, err := e.runReplication(policyName, seed)
		if err != nil {
			summary.Failed = append(summary.Failed, ReplicationError{Seed: seed, Err: err})
			continue
		}
		results = append(results, *res)
	}
	summary.Replications = len(results)
	summarize(summary, results)
	return summary, nil
}

// Compare runs the same seed sequence through each named policy.
func (e *Experiment) Compare(policyNames []string) ([]*Summary, error) {
	summaries := make([]*Summary, 0, len(policyNames))
	for _, name := range policyNames {
		s, err := e.Run(name)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// runReplication builds and runs one fresh Simulator. A panic inside the
// run loop is an invariant violation; it is converted to an error so the
// offending seed terminates alone.
func (e *Experiment) runReplication(policyName string, seed int64) (result *ReplicationResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("invariant violation: %v", r)
		}
	}()

	policy, err := NewPolicy(policyName)
	if err != nil {
		return nil, err
	}
	s, err := NewSimulator(e.Network, policy, seed)
	if err != nil {
		return nil, err
	}
	if err := s.Run(); err != nil {
		return nil, err
	}

	focus := e.Focus
	if focus == "" {
		focus = s.DistributorNames()[0]
	}
	d, ok := s.Distributors[focus]
	if !ok {
		return nil, &UnknownEntityError{Kind: "distributor", Name: focus}
	}

	c := d.Ledger.TotalCost()
	n := d.TotalSales()
	r := math.Inf(1)
	if n > 0 {
		r = c.InexactFloat64() / float64(n)
	}
	return &ReplicationResult{Seed: seed, TotalCost: c, UnitsSold: n, CostPerUnit: r}, nil
}

// summarize fills the summary's mean and population standard deviation
// columns.
func summarize(summary *Summary, results []ReplicationResult) {
	if len(results) == 0 {
		summary.RMean = math.NaN()
		summary.RStdDev = math.NaN()
		return
	}
	costs := make([]float64, len(results))
	sold := make([]float64, len(results))
	var ratios []float64
	for i, res := range results {
		costs[i] = res.TotalCost.InexactFloat64()
		sold[i] = float64(res.UnitsSold)
		if math.IsInf(res.CostPerUnit, 0) {
			summary.Degenerate++
			continue
		}
		ratios = append(ratios, res.CostPerUnit)
	}
	summary.CMean = stat.Mean(costs, nil)
	summary.CStdDev = stat.PopStdDev(costs, nil)
	summary.NMean = stat.Mean(sold, nil)
	summary.NStdDev = stat.PopStdDev(sold, nil)
	if len(ratios) > 0 {
		summary.RMean = stat.Mean(ratios, nil)
		summary.RStdDev = stat.PopStdDev(ratios, nil)
	} else {
		summary.RMean = math.Inf(1)
		summary.RStdDev = math.NaN()
	}
}
