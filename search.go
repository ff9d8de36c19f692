package permitsearch

import (
	"fmt"
	"strings"
)

// Platform is a third-party real estate listing site.
type Platform string

// Supported platforms.
const (
	PlatformZillow Platform = "zillow"
	PlatformRedfin Platform = "redfin"
)

// DefaultPlatform is used when an address is submitted without choosing a site.
const DefaultPlatform = PlatformZillow

// searchTemplates maps each platform to its search URL prefix; the encoded
// address is appended.
var searchTemplates = map[Platform]string{
	PlatformZillow: "https://www.zillow.com/homes/",
	PlatformRedfin: "https://www.redfin.com/stingray/do/search?search-input=",
}

// Platforms returns the supported platforms in display order.
func Platforms() []Platform {
	return []Platform{PlatformZillow, PlatformRedfin}
}

// Label returns the platform's display name.
func (p Platform) Label() string {
	switch p {
	case PlatformZillow:
		return "Zillow"
	case PlatformRedfin:
		return "Redfin"
	}
	return string(p)
}

// ParsePlatform parses a platform name case-insensitively.
// Returns EINVALID for unsupported names.
func ParsePlatform(name string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := searchTemplates[p]; !ok {
		return "", Errorf(EINVALID, "unsupported platform %q", name)
	}
	return p, nil
}

// BuildSearchURL returns the platform's search URL for the address.
// Returns EEMPTYADDRESS if the address is blank, whatever the platform.
// Panics if platform is not supported; parse untrusted input with
// ParsePlatform first.
func BuildSearchURL(platform Platform, address string) (string, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", Errorf(EEMPTYADDRESS, "Please enter a property address.")
	}

	prefix, ok := searchTemplates[platform]
	if !ok {
		panic(fmt.Sprintf("permitsearch: unsupported platform %q", platform))
	}

	return prefix + EncodeURIComponent(address), nil
}

// EncodeURIComponent percent-encodes every byte of s except ASCII letters,
// digits and -_.!~*'() so the result is safe as a path segment or query value.
func EncodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreservedComponent(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func unreservedComponent(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
