package permitsearch

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Difficulty rates how hard it is to obtain a permit from a county office.
// The zero value means the difficulty is not known.
type Difficulty string

// Difficulty constants.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is empty or one of the known difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case "", DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Label returns the capitalized difficulty for display, e.g. "Medium".
func (d Difficulty) Label() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}

// CountyInfo is the static permit metadata attached to a county.
type CountyInfo struct {
	URL         string     `json:"url"`
	Note        string     `json:"note,omitempty"`
	Difficulty  Difficulty `json:"difficulty,omitempty"`
	OfflineOnly bool       `json:"offlineOnly,omitempty"`
	TaxBillURL  string     `json:"taxBillUrl,omitempty"`
}

// Validate returns an error if the county info contains invalid fields.
func (c *CountyInfo) Validate() error {
	if c.URL == "" {
		return Errorf(EINVALID, "permit URL required")
	}
	if err := validateURL(c.URL); err != nil {
		return err
	}
	if c.TaxBillURL != "" {
		if err := validateURL(c.TaxBillURL); err != nil {
			return err
		}
	}
	if !c.Difficulty.Valid() {
		return Errorf(EINVALID, "unknown difficulty %q", c.Difficulty)
	}
	return nil
}

// validateURL requires an absolute http(s) URL on a registrable domain.
func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return Errorf(EINVALID, "invalid URL %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "URL %q must be absolute http or https", raw)
	}
	host := u.Hostname()
	if host == "" {
		return Errorf(EINVALID, "URL %q has no host", raw)
	}
	if _, err := publicsuffix.EffectiveTLDPlusOne(host); err != nil {
		return Errorf(EINVALID, "URL %q has no registrable domain", raw)
	}
	return nil
}

// CountyData is the result of a successful lookup. It lives only until the
// next interaction replaces or clears it.
type CountyData struct {
	Zipcode     string     `json:"zipcode"`
	County      string     `json:"county"`
	PermitURL   string     `json:"permitUrl"`
	Note        string     `json:"note,omitempty"`
	Difficulty  Difficulty `json:"difficulty,omitempty"`
	OfflineOnly bool       `json:"offlineOnly,omitempty"`
	TaxBillURL  string     `json:"taxBillUrl,omitempty"`
}
