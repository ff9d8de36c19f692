package main

import (
	"fmt"

	"github.com/fwojciec/permitsearch"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	if deps.Store == nil {
		fmt.Fprintln(deps.Stderr, "error: no database configured. Use --db to choose one.")
		return permitsearch.Errorf(permitsearch.EINVALID, "database path required")
	}

	if err := deps.Store.SaveRegistry(deps.Ctx, deps.Registry); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", permitsearch.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Imported %d states (checksum %s)\n", len(deps.Registry.States()), deps.Registry.Checksum())
	return nil
}
