// Package export writes generated records to CSV.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/zdial/internal/generate"
)

// Columns is the fixed CSV column order.
var Columns = []string{
	"e164_number",
	"national_number",
	"country_iso",
	"country_calling_code",
	"generation_timestamp",
}

// Filename builds the default output name:
// <prefix>_<REGION><callingcode>_<yyyymmdd_hhmmss>.csv
func Filename(prefix, region string, callingCode int, now time.Time) string {
	if prefix == "" {
		prefix = "numbers"
	}
	return fmt.Sprintf("%s_%s%d_%s.csv",
		prefix,
		strings.ToUpper(region),
		callingCode,
		now.Format("20060102_150405"),
	)
}

// Write serializes records to name on the filesystem, header first.
func Write(fsys zfilesystem.ReadWriteFileFS, name string, records []generate.Record) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.E164,
			r.National,
			r.Region,
			strconv.Itoa(r.CallingCode),
			r.GeneratedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	if err := fsys.WriteFile(name, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	return nil
}

// Exists reports whether name is already present on the filesystem.
func Exists(fsys zfilesystem.ReadWriteFileFS, name string) bool {
	_, err := fsys.ReadFile(name)
	return err == nil
}
