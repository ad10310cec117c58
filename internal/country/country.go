// Package country resolves a user-supplied country identifier (ISO
// alpha-2 code, full name, or calling code) to a canonical region.
package country

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/biter777/countries"
	"github.com/zarlcorp/zdial/internal/numplan"
)

// Country is a resolved region with its calling code and display name.
type Country struct {
	Region      string // ISO alpha-2, upper case
	CallingCode int
	Name        string
}

// UnknownError means the identifier matched no country.
type UnknownError struct {
	Input string
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("cannot resolve country from %q; try an ISO code (US), a full name (United States), or a calling code (+1)", e.Input)
}

// Examples returns valid identifier samples for user feedback.
func (e *UnknownError) Examples() []string {
	return []string{"US", "GB", "United States", "Pakistan", "+1", "44"}
}

// matcher tries one identifier format. The matchers run in order and
// the first hit wins.
type matcher func(string) (Country, bool)

var matchers = []matcher{matchISO, matchCallingCode, matchName}

// Resolve maps an identifier to a Country. Calling codes shared by
// several regions resolve to the primary region for that code.
func Resolve(identifier string) (Country, error) {
	ident := strings.TrimSpace(identifier)
	if ident == "" {
		return Country{}, &UnknownError{Input: identifier}
	}

	for _, m := range matchers {
		if c, ok := m(ident); ok {
			return c, nil
		}
	}

	return Country{}, &UnknownError{Input: ident}
}

func matchISO(ident string) (Country, bool) {
	if len(ident) != 2 || !isLetters(ident) {
		return Country{}, false
	}

	region := strings.ToUpper(ident)
	code := numplan.CallingCode(region)
	if code == 0 {
		return Country{}, false
	}

	return Country{Region: region, CallingCode: code, Name: displayName(region)}, true
}

func matchCallingCode(ident string) (Country, bool) {
	s := strings.TrimPrefix(ident, "+")
	if s == "" || !isDigits(s) {
		return Country{}, false
	}

	code, err := strconv.Atoi(s)
	if err != nil {
		return Country{}, false
	}

	region, ok := numplan.RegionForCallingCode(code)
	if !ok {
		return Country{}, false
	}

	return Country{Region: region, CallingCode: code, Name: displayName(region)}, true
}

func matchName(ident string) (Country, bool) {
	c := countries.ByName(ident)
	if !c.IsValid() {
		return Country{}, false
	}

	region := c.Alpha2()
	code := numplan.CallingCode(region)
	if code == 0 {
		return Country{}, false
	}

	return Country{Region: region, CallingCode: code, Name: c.String()}, true
}

// displayName looks up the English name for a region, falling back to
// the region code itself.
func displayName(region string) string {
	if c := countries.ByName(region); c.IsValid() {
		return c.String()
	}
	return region
}

func isLetters(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
