// Package fs loads and writes registry tables as per-state JSON files.
package fs

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/permitsearch"
)

//go:embed data/*.json
var embedded embed.FS

// FileName returns the table file name for a state, e.g. "florida.json".
func FileName(s permitsearch.State) string {
	return strings.ToLower(s.Name()) + ".json"
}

// DefaultRegistry returns the registry built from the tables compiled into
// the binary.
func DefaultRegistry() (*permitsearch.Registry, error) {
	sub, err := iofs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return LoadRegistry(sub)
}

// LoadRegistry reads one table file per supported state from fsys.
// States without a file are skipped. Returns EINVALID if no table is found
// or the tables fail validation.
func LoadRegistry(fsys iofs.FS) (*permitsearch.Registry, error) {
	data := make(map[permitsearch.State]permitsearch.StateData)
	for _, info := range permitsearch.States() {
		name := FileName(info.Code)
		b, err := iofs.ReadFile(fsys, name)
		if errors.Is(err, iofs.ErrNotExist) {
			continue
		} else if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}

		var d permitsearch.StateData
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			return nil, permitsearch.Errorf(permitsearch.EINVALID, "%s: %v", name, err)
		}
		data[info.Code] = d
	}

	if len(data) == 0 {
		return nil, permitsearch.Errorf(permitsearch.EINVALID, "no registry tables found")
	}
	return permitsearch.NewRegistry(data)
}

// Writer writes registry tables as JSON files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteRegistry writes one file per state in the registry. Each file is
// written to a temporary name and renamed into place.
func (w *Writer) WriteRegistry(ctx context.Context, reg *permitsearch.Registry) error {
	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return err
	}

	for _, s := range reg.States() {
		if err := ctx.Err(); err != nil {
			return err
		}

		d, _ := reg.StateData(s)
		b, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return err
		}
		b = append(b, '\n')

		path := filepath.Join(w.baseDir, FileName(s))
		tmp := path + ".tmp"
		if err := os.WriteFile(tmp, b, 0644); err != nil {
			return err
		}
		if err := os.Rename(tmp, path); err != nil {
			_ = os.Remove(tmp)
			return err
		}
	}
	return nil
}
