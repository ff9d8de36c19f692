package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/permitsearch"
	"github.com/fwojciec/permitsearch/fs"
	"github.com/fwojciec/permitsearch/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRegistryStore(t *testing.T) {
	t.Parallel()

	t.Run("load after save returns identical registry", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		store := sqlite.NewRegistryStore(openTestDB(t))
		reg, err := fs.DefaultRegistry()
		require.NoError(t, err)

		require.NoError(t, store.SaveRegistry(ctx, reg))
		loaded, err := store.LoadRegistry(ctx)

		require.NoError(t, err)
		assert.Equal(t, reg.Checksum(), loaded.Checksum())

		got, err := loaded.Resolve(permitsearch.FL, "33101")
		require.NoError(t, err)
		assert.Equal(t, "Miami-Dade County", got.County)
		assert.Equal(t, permitsearch.DifficultyHard, got.Difficulty)
		assert.NotEmpty(t, got.TaxBillURL)
	})

	t.Run("save replaces previous tables", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		store := sqlite.NewRegistryStore(openTestDB(t))
		full, err := fs.DefaultRegistry()
		require.NoError(t, err)
		require.NoError(t, store.SaveRegistry(ctx, full))

		small, err := permitsearch.NewRegistry(map[permitsearch.State]permitsearch.StateData{
			permitsearch.GA: {
				ZipcodeToCounty: map[string]string{"30301": "Fulton County"},
				CountyToURL: map[string]permitsearch.CountyInfo{
					"Fulton County": {URL: "https://example.com/fulton", OfflineOnly: true},
				},
			},
		})
		require.NoError(t, err)
		require.NoError(t, store.SaveRegistry(ctx, small))

		loaded, err := store.LoadRegistry(ctx)

		require.NoError(t, err)
		assert.Equal(t, []permitsearch.State{permitsearch.GA}, loaded.States())
		got, err := loaded.Resolve(permitsearch.GA, "30301")
		require.NoError(t, err)
		assert.True(t, got.OfflineOnly)
	})

	t.Run("load from empty database returns EINVALID", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewRegistryStore(openTestDB(t))

		_, err := store.LoadRegistry(context.Background())

		assert.Equal(t, permitsearch.EINVALID, permitsearch.ErrorCode(err))
	})

	t.Run("schema rejects zipcode without county", func(t *testing.T) {
		t.Parallel()

		db := openTestDB(t)
		ctx := context.Background()
		tx, err := db.BeginTx(ctx)
		require.NoError(t, err)
		defer tx.Rollback()

		_, err = tx.ExecContext(ctx, `INSERT INTO zipcodes (state, zipcode, county) VALUES ('GA', '30301', 'Nowhere County')`)

		assert.Error(t, err)
	})
}
