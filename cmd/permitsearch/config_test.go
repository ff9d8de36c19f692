package main_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/permitsearch"
	main "github.com/fwojciec/permitsearch/cmd/permitsearch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("uses defaults without a config file", func(t *testing.T) {
		cfg, err := main.LoadConfig("")

		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.ListenAddr)
		assert.Empty(t, cfg.DBPath)
		assert.Equal(t, 5.0, cfg.RateLimit)
		assert.Equal(t, 10, cfg.RateBurst)
		assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
		assert.False(t, cfg.TrustProxy)
	})

	t.Run("reads yaml file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "permitsearch.yaml")
		require.NoError(t, os.WriteFile(path, []byte(
			"listen_addr: \":9000\"\nrate_limit: 2.5\nsession_ttl: 5m\nlog_level: debug\n",
		), 0644))

		cfg, err := main.LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, ":9000", cfg.ListenAddr)
		assert.Equal(t, 2.5, cfg.RateLimit)
		assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("PERMITSEARCH_LISTEN_ADDR", ":7070")

		cfg, err := main.LoadConfig("")

		require.NoError(t, err)
		assert.Equal(t, ":7070", cfg.ListenAddr)
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		_, err := main.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))

		require.Error(t, err)
	})

	t.Run("rejects non-positive session ttl", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "permitsearch.yaml")
		require.NoError(t, os.WriteFile(path, []byte("session_ttl: 0s\n"), 0644))

		_, err := main.LoadConfig(path)

		require.Error(t, err)
		assert.Equal(t, permitsearch.EINVALID, permitsearch.ErrorCode(err))
	})
}
