package main

import "fmt"

// Run executes the check command. Tables are validated when the registry
// is loaded, so reaching here means they passed.
func (c *CheckCmd) Run(deps *Dependencies) error {
	for _, s := range deps.Registry.States() {
		d, _ := deps.Registry.StateData(s)
		fmt.Fprintf(deps.Stdout, "%s  %d zipcodes  %d counties\n", s, len(d.ZipcodeToCounty), len(d.CountyToURL))
	}
	fmt.Fprintf(deps.Stdout, "checksum  %s\n", deps.Registry.Checksum())
	fmt.Fprintln(deps.Stdout, "ok")
	return nil
}
