// Package extract pulls the e164_number column out of a CSV and
// normalizes it to +-prefixed text lines. Purely a text transform, no
// numbering validation.
package extract

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Column is the required CSV column name.
const Column = "e164_number"

// ErrMissingColumn means the input CSV header has no e164_number column.
var ErrMissingColumn = errors.New(`csv is missing the "` + Column + `" column`)

// DefaultOutput is the output filename when none is given.
const DefaultOutput = "numbers.txt"

// OutputPath returns override if set, otherwise DefaultOutput beside
// the input CSV.
func OutputPath(csvPath, override string) string {
	if override != "" {
		return override
	}
	return filepath.Join(filepath.Dir(csvPath), DefaultOutput)
}

// Extract reads CSV from r and writes one normalized number per line to
// w. Empty values are skipped; a "+" is prepended only when absent.
// Returns the number of lines written. Nothing is written unless the
// header contains the required column.
func Extract(r io.Reader, w io.Writer) (int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, ErrMissingColumn
		}
		return 0, fmt.Errorf("read csv header: %w", err)
	}

	col := -1
	for i, h := range header {
		if strings.TrimSpace(h) == Column {
			col = i
			break
		}
	}
	if col < 0 {
		return 0, fmt.Errorf("%w (header: %s)", ErrMissingColumn, strings.Join(header, ", "))
	}

	bw := bufio.NewWriter(w)
	n := 0

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return n, fmt.Errorf("read csv row: %w", err)
		}
		if col >= len(rec) {
			continue
		}

		raw := strings.TrimSpace(rec[col])
		if raw == "" {
			continue
		}
		if !strings.HasPrefix(raw, "+") {
			raw = "+" + raw
		}

		if _, err := bw.WriteString(raw + "\n"); err != nil {
			return n, fmt.Errorf("write output: %w", err)
		}
		n++
	}

	if err := bw.Flush(); err != nil {
		return n, fmt.Errorf("flush output: %w", err)
	}
	return n, nil
}
