package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/permitsearch"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Config   Config
	Registry *permitsearch.Registry
	Resolver permitsearch.Resolver
	Store    permitsearch.RegistryStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config   string `short:"C" name:"config" help:"Config file (default: ./permitsearch.yaml)" type:"path"`
	DB       string `name:"db" help:"SQLite database holding the registry tables" type:"path"`
	Data     string `name:"data" help:"Directory of per-state JSON tables" type:"path"`
	LogLevel string `name:"log-level" help:"Log level (debug, info, warn, error)"`

	States StatesCmd `cmd:"" help:"List supported states"`
	Lookup LookupCmd `cmd:"" help:"Look up the county permit office for a zipcode"`
	Search SearchCmd `cmd:"" help:"Build a property search URL for an address"`
	Check  CheckCmd  `cmd:"" help:"Validate the registry tables"`
	Import ImportCmd `cmd:"" help:"Import the registry tables into the SQLite database"`
	Export ExportCmd `cmd:"" help:"Write the registry tables as JSON files"`
	Serve  ServeCmd  `cmd:"" help:"Serve the lookup page and JSON API"`
}

// StatesCmd is the "states" subcommand.
type StatesCmd struct{}

// LookupCmd is the "lookup" subcommand.
type LookupCmd struct {
	State   string `arg:"" help:"State code (FL, TX, GA)"`
	Zipcode string `arg:"" help:"5-digit zipcode"`
	All     bool   `short:"a" help:"Allow states that are not yet available"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Address  string `arg:"" help:"Property address"`
	Platform string `short:"p" default:"zillow" help:"Listing site (zillow, redfin)"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct{}

// ImportCmd is the "import" subcommand.
type ImportCmd struct{}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir string `arg:"" help:"Output directory" type:"path"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `help:"Listen address (overrides listen_addr)"`
}
