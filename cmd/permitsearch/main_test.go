package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/permitsearch"
	main "github.com/fwojciec/permitsearch/cmd/permitsearch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI against the embedded tables.
func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err = main.NewMain().Run(context.Background(), args, &out, &errOut)
	return out.String(), errOut.String(), err
}

func TestMain_Run_Lookup(t *testing.T) {
	t.Parallel()

	t.Run("prints county for florida zipcode", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := run(t, "lookup", "FL", "33101")

		require.NoError(t, err)
		assert.Contains(t, stdout, "Miami-Dade County")
		assert.Contains(t, stdout, "https://example.com/fl-miami-dade-permits")
		assert.Contains(t, stdout, "Tax bill:")
	})

	t.Run("refuses unavailable state", func(t *testing.T) {
		t.Parallel()

		_, stderr, err := run(t, "lookup", "GA", "30301")

		require.Error(t, err)
		assert.Contains(t, stderr, "Georgia is coming soon")
	})

	t.Run("looks up unavailable state with --all", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := run(t, "lookup", "--all", "GA", "30301")

		require.NoError(t, err)
		assert.Contains(t, stdout, "Fulton County")
	})

	t.Run("reports bad zipcode format", func(t *testing.T) {
		t.Parallel()

		_, stderr, err := run(t, "lookup", "FL", "331")

		assert.Equal(t, permitsearch.EZIPFORMAT, permitsearch.ErrorCode(err))
		assert.Contains(t, stderr, "Please enter a valid 5-digit zipcode")
	})

	t.Run("logs lookups at debug level", func(t *testing.T) {
		t.Parallel()

		_, stderr, err := run(t, "--log-level", "debug", "lookup", "FL", "33101")

		require.NoError(t, err)
		assert.Contains(t, stderr, "msg=lookup")
		assert.Contains(t, stderr, "outcome=resolved")
	})

	t.Run("rejects unknown log level", func(t *testing.T) {
		t.Parallel()

		_, _, err := run(t, "--log-level", "loud", "lookup", "FL", "33101")

		assert.Equal(t, permitsearch.EINVALID, permitsearch.ErrorCode(err))
	})
}

func TestMain_Run_Search(t *testing.T) {
	t.Parallel()

	t.Run("prints zillow URL by default", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := run(t, "search", "1600 Amphitheatre Pkwy, Mountain View, CA")

		require.NoError(t, err)
		assert.Equal(t, "https://www.zillow.com/homes/1600%20Amphitheatre%20Pkwy%2C%20Mountain%20View%2C%20CA\n", stdout)
	})

	t.Run("prints redfin URL", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := run(t, "search", "--platform", "redfin", "12 Oak Ave")

		require.NoError(t, err)
		assert.Equal(t, "https://www.redfin.com/stingray/do/search?search-input=12%20Oak%20Ave\n", stdout)
	})

	t.Run("rejects blank address", func(t *testing.T) {
		t.Parallel()

		_, stderr, err := run(t, "search", "   ")

		assert.Equal(t, permitsearch.EEMPTYADDRESS, permitsearch.ErrorCode(err))
		assert.Contains(t, stderr, "Please enter a property address.")
	})

	t.Run("rejects unknown platform", func(t *testing.T) {
		t.Parallel()

		_, stderr, err := run(t, "search", "--platform", "trulia", "12 Oak Ave")

		assert.Equal(t, permitsearch.EINVALID, permitsearch.ErrorCode(err))
		assert.Contains(t, stderr, "unsupported platform")
	})
}

func TestMain_Run_States(t *testing.T) {
	t.Parallel()

	stdout, _, err := run(t, "states")

	require.NoError(t, err)
	assert.Contains(t, stdout, "FL  Florida   available")
	assert.Contains(t, stdout, "TX  Texas     coming soon")
	assert.Contains(t, stdout, "GA  Georgia   coming soon")
}

func TestMain_Run_Check(t *testing.T) {
	t.Parallel()

	stdout, _, err := run(t, "check")

	require.NoError(t, err)
	assert.Contains(t, stdout, "GA  15 zipcodes  3 counties")
	assert.Contains(t, stdout, "checksum  ")
	assert.Contains(t, stdout, "ok\n")
}

func TestMain_Run_ImportAndLoadFromDB(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "permits.db")

	stdout, _, err := run(t, "--db", dbPath, "import")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Imported 3 states")

	stdout, _, err = run(t, "--db", dbPath, "lookup", "FL", "32801")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Orange County")
}

func TestMain_Run_LookupFromEmptyDB(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "empty.db")

	_, stderr, err := run(t, "--db", dbPath, "lookup", "FL", "32801")

	assert.Equal(t, permitsearch.EINVALID, permitsearch.ErrorCode(err))
	assert.Contains(t, stderr, "run import first")
}

func TestMain_Run_ImportWithoutDB(t *testing.T) {
	t.Parallel()

	_, stderr, err := run(t, "import")

	require.Error(t, err)
	assert.Contains(t, stderr, "--db")
}

func TestMain_Run_ExportAndLoadFromData(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "tables")

	stdout, _, err := run(t, "export", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote florida.json")

	// Drop Florida from the exported tables and load from the directory.
	require.NoError(t, os.Remove(filepath.Join(dir, "florida.json")))

	_, stderr, err := run(t, "--data", dir, "lookup", "FL", "33101")
	assert.Equal(t, permitsearch.ENOTFOUND, permitsearch.ErrorCode(err))
	assert.Contains(t, stderr, "No permit information found for zipcode 33101 in FL")
}

func TestMain_Run_ConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "permits.db")
	cfgPath := filepath.Join(dir, "permitsearch.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("db_path: "+dbPath+"\n"), 0644))

	_, _, err := run(t, "--config", cfgPath, "import")
	require.NoError(t, err)

	assert.FileExists(t, dbPath)
}

func TestMain_Run_Serve(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	err := main.NewMain().Run(ctx, []string{"serve", "--addr", "127.0.0.1:0"}, &stdout, &stderr)

	require.NoError(t, err)
}
