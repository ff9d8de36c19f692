package permitsearch

import (
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// zipcodePattern matches exactly five ASCII digits.
var zipcodePattern = regexp.MustCompile(`^[0-9]{5}$`)

// ValidZipcode reports whether s is exactly five decimal digits.
func ValidZipcode(s string) bool {
	return zipcodePattern.MatchString(s)
}

// StateData holds one state's lookup tables.
type StateData struct {
	ZipcodeToCounty map[string]string     `json:"zipcodeToCounty"`
	CountyToURL     map[string]CountyInfo `json:"countyToUrl"`
}

// Validate returns an error if the tables are malformed or a zipcode maps
// to a county with no CountyInfo.
func (d *StateData) Validate() error {
	for _, zip := range slices.Sorted(maps.Keys(d.ZipcodeToCounty)) {
		county := d.ZipcodeToCounty[zip]
		if !ValidZipcode(zip) {
			return Errorf(EINVALID, "zipcode %q is not 5 digits", zip)
		}
		if county == "" {
			return Errorf(EINVALID, "zipcode %s has no county", zip)
		}
		if _, ok := d.CountyToURL[county]; !ok {
			return Errorf(EINVALID, "county %q (zipcode %s) has no permit info", county, zip)
		}
	}
	for _, county := range slices.Sorted(maps.Keys(d.CountyToURL)) {
		info := d.CountyToURL[county]
		if err := info.Validate(); err != nil {
			return Errorf(EINVALID, "county %q: %s", county, ErrorMessage(err))
		}
	}
	return nil
}

func (d *StateData) clone() StateData {
	return StateData{
		ZipcodeToCounty: maps.Clone(d.ZipcodeToCounty),
		CountyToURL:     maps.Clone(d.CountyToURL),
	}
}

// Resolver resolves a state and zipcode to county permit data.
type Resolver interface {
	// Resolve returns the county data for the zipcode in the state.
	// Returns ENOSTATE, EEMPTYZIP, EZIPFORMAT or ENOTFOUND on failure.
	Resolve(state State, zipcode string) (*CountyData, error)
}

// RegistryStore persists registry tables outside the binary.
type RegistryStore interface {
	// SaveRegistry replaces the stored tables with the registry's contents.
	SaveRegistry(ctx context.Context, reg *Registry) error

	// LoadRegistry builds a validated registry from the stored tables.
	LoadRegistry(ctx context.Context) (*Registry, error)
}

// Ensure Registry implements Resolver at compile time.
var _ Resolver = (*Registry)(nil)

// Registry is the immutable set of lookup tables for all supported states.
// It is safe for concurrent use.
type Registry struct {
	data map[State]StateData
}

// NewRegistry validates the tables and returns a registry holding its own
// copy of them. Later changes to data do not affect the registry.
func NewRegistry(data map[State]StateData) (*Registry, error) {
	r := &Registry{data: make(map[State]StateData, len(data))}
	for _, s := range slices.Sorted(maps.Keys(data)) {
		if !s.Supported() {
			return nil, Errorf(EINVALID, "unsupported state %q", s)
		}
		d := data[s]
		if err := d.Validate(); err != nil {
			return nil, Errorf(EINVALID, "%s: %s", s, ErrorMessage(err))
		}
		r.data[s] = d.clone()
	}
	return r, nil
}

// Resolve implements Resolver. Checks run in order and stop at the first
// failure: state, empty zipcode, zipcode format, table membership.
func (r *Registry) Resolve(state State, zipcode string) (*CountyData, error) {
	if !state.Supported() {
		return nil, Errorf(ENOSTATE, "Please select a state first")
	}

	zipcode = strings.TrimSpace(zipcode)
	if zipcode == "" {
		return nil, Errorf(EEMPTYZIP, "Please enter a zipcode")
	}
	if !ValidZipcode(zipcode) {
		return nil, Errorf(EZIPFORMAT, "Please enter a valid 5-digit zipcode")
	}

	d, ok := r.data[state]
	if !ok {
		return nil, &NotFoundError{Zipcode: zipcode, State: state}
	}
	county, ok := d.ZipcodeToCounty[zipcode]
	if !ok {
		return nil, &NotFoundError{Zipcode: zipcode, State: state}
	}

	info := d.CountyToURL[county]
	return &CountyData{
		Zipcode:     zipcode,
		County:      county,
		PermitURL:   info.URL,
		Note:        info.Note,
		Difficulty:  info.Difficulty,
		OfflineOnly: info.OfflineOnly,
		TaxBillURL:  info.TaxBillURL,
	}, nil
}

// States returns the states that have tables, sorted by code.
func (r *Registry) States() []State {
	return slices.Sorted(maps.Keys(r.data))
}

// StateData returns a copy of a state's tables.
func (r *Registry) StateData(state State) (StateData, bool) {
	d, ok := r.data[state]
	if !ok {
		return StateData{}, false
	}
	return d.clone(), true
}

// Data returns a copy of all tables keyed by state.
func (r *Registry) Data() map[State]StateData {
	out := make(map[State]StateData, len(r.data))
	for s, d := range r.data {
		out[s] = d.clone()
	}
	return out
}

// Checksum returns a stable hex digest of the registry contents.
// Registries with equal tables have equal checksums.
func (r *Registry) Checksum() string {
	h := xxhash.New()
	for _, s := range r.States() {
		d := r.data[s]
		_, _ = h.WriteString("state\x00" + string(s) + "\n")
		for _, zip := range slices.Sorted(maps.Keys(d.ZipcodeToCounty)) {
			_, _ = h.WriteString(zip + "\x00" + d.ZipcodeToCounty[zip] + "\n")
		}
		for _, county := range slices.Sorted(maps.Keys(d.CountyToURL)) {
			info := d.CountyToURL[county]
			_, _ = h.WriteString(strings.Join([]string{
				county,
				info.URL,
				info.Note,
				string(info.Difficulty),
				strconv.FormatBool(info.OfflineOnly),
				info.TaxBillURL,
			}, "\x00") + "\n")
		}
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
