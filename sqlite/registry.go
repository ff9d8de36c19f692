package sqlite

import (
	"context"
	"fmt"

	"github.com/fwojciec/permitsearch"
)

// Compile-time interface verification.
var _ permitsearch.RegistryStore = (*RegistryStore)(nil)

// RegistryStore implements permitsearch.RegistryStore using SQLite.
type RegistryStore struct {
	db *DB
}

// NewRegistryStore creates a new RegistryStore.
func NewRegistryStore(db *DB) *RegistryStore {
	return &RegistryStore{db: db}
}

// SaveRegistry replaces all stored tables with the registry's contents in a
// single transaction.
func (s *RegistryStore) SaveRegistry(ctx context.Context, reg *permitsearch.Registry) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM zipcodes`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM counties`); err != nil {
		return err
	}

	for state, d := range reg.Data() {
		for name, info := range d.CountyToURL {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO counties (state, name, url, note, difficulty, offline_only, tax_bill_url)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, string(state), name, info.URL, info.Note, string(info.Difficulty), info.OfflineOnly, info.TaxBillURL); err != nil {
				return fmt.Errorf("failed to insert county %q: %w", name, err)
			}
		}
		for zip, county := range d.ZipcodeToCounty {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO zipcodes (state, zipcode, county) VALUES (?, ?, ?)
			`, string(state), zip, county); err != nil {
				return fmt.Errorf("failed to insert zipcode %s: %w", zip, err)
			}
		}
	}

	return tx.Commit()
}

// LoadRegistry reads all stored tables and validates them into a Registry.
// Returns EINVALID if the database holds no tables.
func (s *RegistryStore) LoadRegistry(ctx context.Context) (*permitsearch.Registry, error) {
	data := make(map[permitsearch.State]permitsearch.StateData)
	stateData := func(state string) permitsearch.StateData {
		d, ok := data[permitsearch.State(state)]
		if !ok {
			d = permitsearch.StateData{
				ZipcodeToCounty: make(map[string]string),
				CountyToURL:     make(map[string]permitsearch.CountyInfo),
			}
			data[permitsearch.State(state)] = d
		}
		return d
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT state, name, url, note, difficulty, offline_only, tax_bill_url
		FROM counties
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var state, name, difficulty string
		var info permitsearch.CountyInfo
		if err := rows.Scan(&state, &name, &info.URL, &info.Note, &difficulty, &info.OfflineOnly, &info.TaxBillURL); err != nil {
			return nil, err
		}
		info.Difficulty = permitsearch.Difficulty(difficulty)
		stateData(state).CountyToURL[name] = info
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	zipRows, err := s.db.QueryContext(ctx, `SELECT state, zipcode, county FROM zipcodes`)
	if err != nil {
		return nil, err
	}
	defer zipRows.Close()

	for zipRows.Next() {
		var state, zip, county string
		if err := zipRows.Scan(&state, &zip, &county); err != nil {
			return nil, err
		}
		stateData(state).ZipcodeToCounty[zip] = county
	}
	if err := zipRows.Err(); err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, permitsearch.Errorf(permitsearch.EINVALID, "database has no registry tables; run import first")
	}
	return permitsearch.NewRegistry(data)
}
