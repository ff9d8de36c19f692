package permitsearch

import "strings"

// ZipcodeMaxLen is the longest zipcode input accepted from the user.
const ZipcodeMaxLen = 5

// Session is the per-user lookup state: the selected state, the zipcode text
// as typed, and the outcome of the last search. At most one of Result and
// Err is set. Handlers take a Session and return the next one; a Session is
// never mutated in place.
type Session struct {
	State   State       `json:"state,omitempty"`
	Zipcode string      `json:"zipcode,omitempty"`
	Result  *CountyData `json:"result,omitempty"`
	Err     error       `json:"-"`
}

// SelectState makes state the active state and clears the previous outcome.
// Unsupported or unavailable states leave the session unchanged.
func SelectState(s Session, state State) Session {
	if !state.Available() {
		return s
	}
	s.State = state
	s.Result = nil
	s.Err = nil
	return s
}

// SetZipcode stores the zipcode text, truncated to ZipcodeMaxLen characters.
func SetZipcode(s Session, text string) Session {
	if r := []rune(text); len(r) > ZipcodeMaxLen {
		text = string(r[:ZipcodeMaxLen])
	}
	s.Zipcode = text
	return s
}

// Search resolves the session's zipcode and stores the outcome, replacing
// whatever the previous search produced.
func Search(s Session, resolver Resolver) Session {
	result, err := resolver.Resolve(s.State, s.Zipcode)
	s.Result = result
	s.Err = err
	if err != nil {
		s.Result = nil
	}
	return s
}

// CanSearch reports whether the session has a selected state and a
// non-blank zipcode.
func (s Session) CanSearch() bool {
	return s.State != "" && strings.TrimSpace(s.Zipcode) != ""
}

// ErrorMessage returns the message for the last failed search, if any.
func (s Session) ErrorMessage() string {
	return ErrorMessage(s.Err)
}
