package main

import (
	"fmt"

	"github.com/fwojciec/permitsearch"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	platform, err := permitsearch.ParsePlatform(c.Platform)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", permitsearch.ErrorMessage(err))
		return err
	}

	u, err := permitsearch.BuildSearchURL(platform, c.Address)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", permitsearch.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, u)
	return nil
}
