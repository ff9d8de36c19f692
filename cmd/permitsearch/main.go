package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/permitsearch"
	"github.com/fwojciec/permitsearch/fs"
	psslog "github.com/fwojciec/permitsearch/slog"
	"github.com/fwojciec/permitsearch/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database, opened when a database path is configured.
	DB *sqlite.DB

	// Registry loaded for the current run.
	Registry *permitsearch.Registry
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("permitsearch"),
		kong.Description("Find county permit offices by state and zipcode."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'permitsearch --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	cfg, err := LoadConfig(cli.Config)
	if err != nil {
		return err
	}
	if cli.DB != "" {
		cfg.DBPath = cli.DB
	}
	if cli.Data != "" {
		cfg.DataDir = cli.Data
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}
	deps.Config = cfg

	logger, err := newLogger(stderr, cfg.LogLevel, cmd)
	if err != nil {
		return err
	}
	deps.Logger = logger

	if cfg.DBPath != "" {
		m.DB = sqlite.NewDB(cfg.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set PERMITSEARCH_DB_PATH or --db to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", cfg.DBPath, err)
		}
		defer m.Close()
		deps.Store = sqlite.NewRegistryStore(m.DB)
	}

	// The import command writes the database, so its registry comes from files.
	if cmd == "import" || deps.Store == nil {
		m.Registry, err = loadFileRegistry(cfg.DataDir)
	} else {
		m.Registry, err = deps.Store.LoadRegistry(ctx)
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", permitsearch.ErrorMessage(err))
		return err
	}
	deps.Registry = m.Registry
	deps.Resolver = psslog.NewLoggingResolver(m.Registry, logger)

	return kongCtx.Run(deps)
}

func loadFileRegistry(dir string) (*permitsearch.Registry, error) {
	if dir == "" {
		return fs.DefaultRegistry()
	}
	return fs.LoadRegistry(os.DirFS(dir))
}

// newLogger builds a text logger on w. An empty level means info for the
// server and warn for one-shot commands.
func newLogger(w io.Writer, level, cmd string) (*slog.Logger, error) {
	if level == "" {
		level = "warn"
		if cmd == "serve" {
			level = "info"
		}
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, permitsearch.Errorf(permitsearch.EINVALID, "invalid log level %q", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
