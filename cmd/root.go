package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/supply-sim/supply-sim/sim"
)

var (
	// CLI flags shared by the subcommands
	seed        int64  // Seed for the replication's random source
	policyName  string // Fulfillment policy to simulate
	logLevel    string // Log verbosity level
	networkPath string // Optional YAML network configuration override
	traceName   string // Distributor to record the continuous stock trace for
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "supply-sim",
	Short: "Discrete-event simulator for multi-tier supply chains",
}

// runCmd executes a single replication and prints its summary
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one simulation replication",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		network, err := loadNetwork(networkPath)
		if err != nil {
			logrus.Fatalf("Failed to load network configuration: %v", err)
		}
		policy, err := sim.NewPolicy(policyName)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		logrus.Infof("Starting replication: policy=%s seed=%d days=%d", policyName, seed, network.TotalDays)

		s, err := sim.NewSimulator(network, policy, seed)
		if err != nil {
			logrus.Fatalf("Failed to construct simulation: %v", err)
		}
		s.TraceDistributor = traceName
		if err := s.Run(); err != nil {
			logrus.Fatalf("Replication aborted: %v", err)
		}
		s.PrintSummary()

		logrus.Info("Simulation complete.")
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 0, "Seed for the replication's random source")
	runCmd.Flags().StringVar(&policyName, "policy", sim.PolicySingleTarget, "Fulfillment policy (single-target, lead-time-priority)")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&networkPath, "network", "", "Path to YAML network configuration (default: built-in reference network)")
	runCmd.Flags().StringVar(&traceName, "trace", "", "Distributor name to record the continuous stock trace for")

	rootCmd.AddCommand(runCmd)
}
