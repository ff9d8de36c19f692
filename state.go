package permitsearch

import "strings"

// State is a supported US state code. The zero value means no state is selected.
type State string

// Supported states.
const (
	FL State = "FL"
	TX State = "TX"
	GA State = "GA"
)

// StateInfo describes a selectable state. Available is static configuration:
// unavailable states are listed but cannot be selected.
type StateInfo struct {
	Code      State  `json:"code"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// states is listed in display order.
var states = []StateInfo{
	{Code: FL, Name: "Florida", Available: true},
	{Code: TX, Name: "Texas", Available: false},
	{Code: GA, Name: "Georgia", Available: false},
}

// States returns every supported state in display order.
func States() []StateInfo {
	out := make([]StateInfo, len(states))
	copy(out, states)
	return out
}

// LookupState returns the static info for a state code.
func LookupState(s State) (StateInfo, bool) {
	for _, info := range states {
		if info.Code == s {
			return info, true
		}
	}
	return StateInfo{}, false
}

// Supported reports whether s is a member of the supported state set.
func (s State) Supported() bool {
	_, ok := LookupState(s)
	return ok
}

// Available reports whether s may be selected.
func (s State) Available() bool {
	info, ok := LookupState(s)
	return ok && info.Available
}

// Name returns the state's full name, or the empty string if unsupported.
func (s State) Name() string {
	info, _ := LookupState(s)
	return info.Name
}

// ParseState parses a state code case-insensitively.
// Returns EINVALID for codes outside the supported set.
func ParseState(code string) (State, error) {
	s := State(strings.ToUpper(strings.TrimSpace(code)))
	if !s.Supported() {
		return "", Errorf(EINVALID, "unsupported state %q", code)
	}
	return s, nil
}
