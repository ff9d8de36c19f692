package main

import (
	"fmt"

	"github.com/fwojciec/permitsearch"
)

// Run executes the states command.
func (c *StatesCmd) Run(deps *Dependencies) error {
	for _, info := range permitsearch.States() {
		status := "available"
		if !info.Available {
			status = "coming soon"
		}
		zipcodes := 0
		if d, ok := deps.Registry.StateData(info.Code); ok {
			zipcodes = len(d.ZipcodeToCounty)
		}
		fmt.Fprintf(deps.Stdout, "%s  %-8s  %-11s  %d zipcodes\n", info.Code, info.Name, status, zipcodes)
	}
	return nil
}
