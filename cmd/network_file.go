package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/supply-sim/supply-sim/sim"
)

// loadNetwork returns the built-in reference network, or the one parsed
// from the given YAML file. Validation happens later, in NewSimulator, so
// a broken file fails with the same error surface as a broken default.
func loadNetwork(path string) (*sim.Network, error) {
	if path == "" {
		return sim.DefaultNetwork(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read network config: %w", err)
	}
	var network sim.Network
	if err := yaml.Unmarshal(data, &network); err != nil {
		return nil, fmt.Errorf("parse network config %s: %w", path, err)
	}
	return &network, nil
}
