package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/permitsearch"
)

// Run executes the lookup command.
func (c *LookupCmd) Run(deps *Dependencies) error {
	state := permitsearch.State(strings.ToUpper(strings.TrimSpace(c.State)))
	if state.Supported() && !state.Available() && !c.All {
		fmt.Fprintf(deps.Stderr, "error: %s is coming soon. Use --all to search it anyway.\n", state.Name())
		return permitsearch.Errorf(permitsearch.EINVALID, "state %s is not available", state)
	}

	data, err := deps.Resolver.Resolve(state, c.Zipcode)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", permitsearch.ErrorMessage(err))
		return err
	}

	row := func(label, value string) {
		if value != "" {
			fmt.Fprintf(deps.Stdout, "%-12s%s\n", label+":", value)
		}
	}
	row("State", string(state))
	row("Zipcode", data.Zipcode)
	row("County", data.County)
	row("Note", data.Note)
	row("Difficulty", data.Difficulty.Label())
	if data.OfflineOnly {
		row("Status", "Offline Only")
	}
	row("Permit URL", data.PermitURL)
	row("Tax bill", data.TaxBillURL)
	return nil
}
