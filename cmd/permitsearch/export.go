package main

import (
	"fmt"

	"github.com/fwojciec/permitsearch"
	"github.com/fwojciec/permitsearch/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	if err := fs.NewWriter(c.Dir).WriteRegistry(deps.Ctx, deps.Registry); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", permitsearch.ErrorMessage(err))
		return err
	}

	for _, s := range deps.Registry.States() {
		fmt.Fprintf(deps.Stdout, "Wrote %s\n", fs.FileName(s))
	}
	return nil
}
