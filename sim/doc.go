// Package sim provides the core discrete-event simulation engine for the
// supply chain model: factories producing into stock, distributors serving
// wholesaler demand, and interchangeable order-fulfillment policies compared
// over Monte-Carlo replications.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - event.go: Event types that drive the simulation (Production, Delivery, WholesalerOrder, DailySettlement)
//   - simulator.go: The event queue, clock, and pop-dispatch run loop
//   - policy.go: The two order-fulfillment policies under comparison
//
// # Architecture
//
// A Simulator owns every Factory and Distributor exclusively; events and
// policies receive the Simulator and mutate entity state through it. One
// Simulator is one replication: it carries its own seeded random source
// (rng.go) and shares nothing with other replications, which is what makes
// the experiment harness (harness.go) safe to extend with an outer parallel
// loop.
//
// Time is measured in simulated hours over a fixed horizon of
// TotalDays x 24. Events are dispatched in non-decreasing time order, with
// equal-time events dispatched in scheduling order, so a replication is
// fully deterministic given its seed.
package sim
