// Package addressing converts free-text shipping addresses into the shape
// the carrier API requires: ISO country/state codes, bounded street lines
// and a phone number the carrier will accept.
package addressing

import (
	"strings"
	"unicode"

	"github.com/zayrajewels/zayra-golang/internal/models"
)

const (
	// MaxStreetLines and MaxStreetLineLen are carrier limits on recipient
	// street text. Anything beyond 3 computed lines is dropped.
	MaxStreetLines   = 3
	MaxStreetLineLen = 35

	minPhoneDigits = 10
)

// Normalized is an address in carrier form.
type Normalized struct {
	FullName    string
	StreetLines []string
	City        string
	StateCode   string
	PostalCode  string
	CountryCode string
	PhoneNumber string
}

// Normalizer maps customer addresses to carrier addresses using the static
// country reference data.
type Normalizer struct {
	placeholderPhone string
}

func NewNormalizer(placeholderPhone string) *Normalizer {
	return &Normalizer{placeholderPhone: placeholderPhone}
}

// Normalize converts addr to carrier form. It never fails: unknown countries
// fall back to FallbackCountryCode and unknown states pass through as free
// text, because the shipment must still be attempted.
func (n *Normalizer) Normalize(addr models.Address) Normalized {
	country, found := LookupCountry(addr.Country)
	countryCode := FallbackCountryCode
	if found {
		countryCode = country.Code
	}

	stateCode := addr.State
	if found {
		if code, ok := LookupStateCode(country, addr.State); ok {
			stateCode = code
		}
	}

	line2 := ""
	if addr.AddressLine2 != nil {
		line2 = *addr.AddressLine2
	}

	return Normalized{
		FullName:    addr.FullName,
		StreetLines: SplitStreetLines(addr.AddressLine1, line2),
		City:        addr.City,
		StateCode:   stateCode,
		PostalCode:  addr.ZipCode,
		CountryCode: countryCode,
		PhoneNumber: n.SanitizePhone(addr.PhoneNumber, countryCode),
	}
}

// LookupCountry resolves a free-text country name case-insensitively.
func LookupCountry(name string) (Country, bool) {
	needle := strings.TrimSpace(name)
	for _, c := range Countries {
		if strings.EqualFold(c.Name, needle) {
			return c, true
		}
	}
	return Country{}, false
}

// LookupStateCode resolves a state name within a resolved country.
func LookupStateCode(country Country, stateName string) (string, bool) {
	needle := strings.TrimSpace(stateName)
	for _, s := range country.States {
		if strings.EqualFold(s.Name, needle) {
			return s.Code, true
		}
	}
	return "", false
}

// SplitStreetLines packs up to two free-text address lines into at most
// MaxStreetLines lines of at most MaxStreetLineLen characters, breaking on
// whitespace and comma boundaries without splitting words. Overflow beyond
// the third line is silently truncated.
func SplitStreetLines(line1, line2 string) []string {
	var words []string
	for _, raw := range []string{line1, line2} {
		// keep commas attached to the preceding word so "Flat 4B," stays intact
		cleaned := strings.ReplaceAll(raw, ",", ", ")
		words = append(words, strings.Fields(cleaned)...)
	}

	var lines []string
	current := ""
	for _, w := range words {
		// a single word longer than a line has to be hard-cut
		if len(w) > MaxStreetLineLen {
			w = w[:MaxStreetLineLen]
		}

		if current == "" {
			current = w
			continue
		}
		if len(current)+1+len(w) <= MaxStreetLineLen {
			current += " " + w
			continue
		}

		lines = append(lines, current)
		current = w
		if len(lines) == MaxStreetLines {
			break
		}
	}
	if current != "" && len(lines) < MaxStreetLines {
		lines = append(lines, current)
	}
	if len(lines) > MaxStreetLines {
		lines = lines[:MaxStreetLines]
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

// SanitizePhone strips everything but digits, drops the Indian trunk zero,
// and substitutes the configured placeholder when too few digits remain.
// Failing the whole shipment over a bad phone number is worse than shipping
// with a placeholder.
func (n *Normalizer) SanitizePhone(raw, countryCode string) string {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if countryCode == "IN" && len(digits) == 11 && strings.HasPrefix(digits, "0") {
		digits = digits[1:]
	}

	if len(digits) < minPhoneDigits {
		return n.placeholderPhone
	}
	return digits
}
