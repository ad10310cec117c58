// Package numplan wraps the embedded international numbering-plan
// metadata: region/calling-code mapping, local-length advice, and
// candidate number validation.
package numplan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// unknownRegion is the library's marker for "no such region".
const unknownRegion = "ZZ"

// CallingCode returns the calling code for an ISO region, or 0 if the
// region has no numbering plan.
func CallingCode(region string) int {
	return phonenumbers.GetCountryCodeForRegion(strings.ToUpper(region))
}

// RegionForCallingCode returns the primary region for a calling code.
// Codes shared by several regions (e.g. +1) resolve to the main one.
func RegionForCallingCode(code int) (string, bool) {
	if code <= 0 {
		return "", false
	}
	region := phonenumbers.GetRegionCodeForCountryCode(code)
	if region == "" || region == unknownRegion {
		return "", false
	}
	return region, true
}

// Advice reports whether a requested local-part length is plausible for
// a region.
type Advice struct {
	Atypical bool
	Hint     string // human-readable, e.g. "typical local length for US is 10"
}

// LengthError is the strict-mode failure for an atypical local length.
type LengthError struct {
	Region string
	Length int
	Hint   string
}

func (e *LengthError) Error() string {
	msg := fmt.Sprintf("local length %d is not realistic for region %s", e.Length, e.Region)
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

// AdviseLength probes the region's length rules with a synthetic number
// of the requested width.
func AdviseLength(region string, localLength int) Advice {
	code := CallingCode(region)
	if code == 0 || localLength <= 0 {
		return Advice{Atypical: true, Hint: "region has no numbering plan"}
	}

	probe := "+" + strconv.Itoa(code) + strings.Repeat("5", localLength)
	num, err := phonenumbers.Parse(probe, region)
	if err != nil {
		return Advice{Atypical: true, Hint: typicalHint(region)}
	}

	if phonenumbers.IsPossibleNumberWithReason(num) == phonenumbers.IS_POSSIBLE {
		return Advice{}
	}
	return Advice{Atypical: true, Hint: typicalHint(region)}
}

// Err converts an atypical advice into a LengthError, for strict mode.
func (a Advice) Err(region string, localLength int) error {
	if !a.Atypical {
		return nil
	}
	return &LengthError{Region: region, Length: localLength, Hint: a.Hint}
}

// typicalHint derives a typical local length from the region's example
// number.
func typicalHint(region string) string {
	ex := phonenumbers.GetExampleNumber(region)
	if ex == nil {
		return ""
	}
	n := len(phonenumbers.GetNationalSignificantNumber(ex))
	return fmt.Sprintf("typical local length for %s is %d", strings.ToUpper(region), n)
}

// Plan validates candidate numbers against the numbering plan. It is
// the production implementation of the generator's Checker.
type Plan struct{}

// Check parses a candidate (full international form, "+<cc><local>")
// and reports whether the plan considers it a real number for the
// region. On success it returns the canonical E.164 string and the
// national significant number.
func (Plan) Check(candidate, region string) (e164, national string, ok bool) {
	num, err := phonenumbers.Parse(candidate, region)
	if err != nil {
		return "", "", false
	}
	if !phonenumbers.IsPossibleNumber(num) || !phonenumbers.IsValidNumber(num) {
		return "", "", false
	}
	return phonenumbers.Format(num, phonenumbers.E164),
		phonenumbers.GetNationalSignificantNumber(num),
		true
}
