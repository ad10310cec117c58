// Package generate produces country-valid synthetic phone numbers.
// All randomness uses crypto/rand; no math/rand, no side effects.
package generate

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/zarlcorp/zdial/internal/serial"
)

const digitChars = "0123456789"

// attemptsPerNumber bounds the retry budget: at most this many
// candidates are tried per requested number.
const attemptsPerNumber = 10

// Checker validates a candidate against a numbering plan. The
// production implementation is numplan.Plan.
type Checker interface {
	Check(candidate, region string) (e164, national string, ok bool)
}

// ProgressFunc receives live counts during a run. May be nil.
type ProgressFunc func(valid, attempts int)

// Request describes one generation run.
type Request struct {
	Region      string
	CallingCode int
	Count       int
	LocalLength int
	Serial      serial.Config
}

// Record is one validated number. Immutable once produced; all records
// of a run share the same timestamp.
type Record struct {
	E164        string
	National    string
	Region      string
	CallingCode int
	GeneratedAt time.Time
}

// Result is the outcome of a run. Partial means the attempt budget ran
// out before Count unique valid numbers were found, a reported
// condition, not an error.
type Result struct {
	Records  []Record
	Attempts int
	Partial  bool
}

// Run executes the generation loop: compose a candidate local part,
// format it as +<cc><local>, validate via the checker, deduplicate on
// the E.164 form, and repeat until the request is met or the attempt
// budget is exhausted.
func Run(req Request, chk Checker, progress ProgressFunc) (Result, error) {
	if err := validate(req); err != nil {
		return Result{}, err
	}

	ctr := serial.NewCounter(req.Serial)
	maxAttempts := req.Count * attemptsPerNumber
	stamp := time.Now().UTC().Truncate(time.Second)
	ccPrefix := "+" + strconv.Itoa(req.CallingCode)

	seen := make(map[string]struct{}, req.Count)
	records := make([]Record, 0, req.Count)
	attempts := 0

	for len(records) < req.Count && attempts < maxAttempts {
		attempts++

		local, err := localPart(req.LocalLength, req.Serial, ctr)
		if err != nil {
			// serial outgrew the digit budget, stop with what we have
			break
		}

		e164, national, ok := chk.Check(ccPrefix+local, req.Region)
		if !ok {
			continue
		}
		if _, dup := seen[e164]; dup {
			continue
		}

		seen[e164] = struct{}{}
		records = append(records, Record{
			E164:        e164,
			National:    national,
			Region:      req.Region,
			CallingCode: req.CallingCode,
			GeneratedAt: stamp,
		})

		if progress != nil {
			progress(len(records), attempts)
		}
	}

	return Result{
		Records:  records,
		Attempts: attempts,
		Partial:  len(records) < req.Count,
	}, nil
}

func validate(req Request) error {
	if req.Region == "" {
		return errors.New("generate: region is required")
	}
	if req.CallingCode <= 0 {
		return fmt.Errorf("generate: calling code must be positive, got %d", req.CallingCode)
	}
	if req.Count <= 0 {
		return fmt.Errorf("generate: count must be positive, got %d", req.Count)
	}
	if req.LocalLength <= 0 {
		return fmt.Errorf("generate: local length must be positive, got %d", req.LocalLength)
	}
	return req.Serial.Validate(req.LocalLength)
}

// localPart composes one candidate local part of exactly length digits.
func localPart(length int, cfg serial.Config, ctr *serial.Counter) (string, error) {
	if !cfg.Enabled {
		return randomDigits(length), nil
	}

	// fixed-prefix mode: constant prefix, random rest, counter untouched
	if cfg.FixedPrefixLen > 0 {
		prefix := cfg.FixedPrefix()
		return prefix + randomDigits(length-len(prefix)), nil
	}

	s, err := ctr.Next(length)
	if err != nil {
		return "", err
	}

	if cfg.SequentialOnly {
		return zfill(s, length), nil
	}

	rest := randomDigits(length - len(s))
	if cfg.Placement == serial.PlacePrefix {
		return s + rest, nil
	}
	return rest + s, nil
}

// zfill left-pads s with zeros to width.
func zfill(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// randomDigits returns n uniformly random decimal digits.
func randomDigits(n int) string {
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = digitChars[randIntn(len(digitChars))]
	}
	return string(buf)
}

// randIntn returns a cryptographically random int in [0, n).
func randIntn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand failure is unrecoverable
		panic("crypto/rand: " + err.Error())
	}
	return int(v.Int64())
}
