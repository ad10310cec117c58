package cli

import (
	"os"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/zarlcorp/zdial/internal/preset"
	"github.com/zarlcorp/zdial/internal/serial"
)

func TestDataDir(t *testing.T) {
	tests := []struct {
		name string
		xdg  string
		want string
	}{
		{
			name: "xdg set",
			xdg:  "/custom/data",
			want: "/custom/data/zdial",
		},
		{
			name: "xdg empty falls back to home",
			xdg:  "",
			want: "/.local/share/zdial",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv("XDG_DATA_HOME", tt.xdg)
			defer os.Unsetenv("XDG_DATA_HOME")

			got := DataDir()
			if tt.xdg != "" {
				if got != tt.want {
					t.Errorf("DataDir() = %s, want %s", got, tt.want)
				}
			} else {
				if !strings.HasSuffix(got, tt.want) {
					t.Errorf("DataDir() = %s, want suffix %s", got, tt.want)
				}
			}
		})
	}
}

func TestHasFlag(t *testing.T) {
	tests := []struct {
		name string
		args []string
		flag string
		want bool
	}{
		{"present", []string{"--json"}, "--json", true},
		{"absent", []string{"--force"}, "--json", false},
		{"empty", nil, "--json", false},
		{"case insensitive", []string{"--JSON"}, "--json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hasFlag(tt.args, tt.flag)
			if got != tt.want {
				t.Errorf("hasFlag(%v, %s) = %v, want %v", tt.args, tt.flag, got, tt.want)
			}
		})
	}
}

func generateFlags(t *testing.T, args []string) (*pflag.FlagSet, preset.Preset) {
	t.Helper()

	fs := pflag.NewFlagSet("generate", pflag.ContinueOnError)
	countryID := fs.String("country", "", "")
	count := fs.Int("count", 0, "")
	localLength := fs.Int("local-length", 0, "")
	serialEnabled := fs.Bool("serial-enabled", false, "")
	serialStart := fs.Uint64("serial-start", 0, "")
	fs.String("serial-placement", "suffix", "")
	fs.Uint64("serial-step", 1, "")
	fs.Bool("sequential-only", false, "")
	fs.Int("fixed-prefix-len", 0, "")
	fs.Bool("strict-length", false, "")
	fs.String("filename-prefix", "numbers", "")

	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse: %v", err)
	}

	return fs, preset.Preset{
		Country:     *countryID,
		Count:       *count,
		LocalLength: *localLength,
		Serial: serial.Config{
			Enabled: *serialEnabled,
			Start:   *serialStart,
		},
	}
}

func TestMergeFlagsKeepsPresetDefaults(t *testing.T) {
	fs, flags := generateFlags(t, []string{"--count", "200"})

	base := preset.Preset{
		Country:     "PK",
		Count:       50,
		LocalLength: 10,
		Serial:      serial.Config{Enabled: true, Start: 3000000000, FixedPrefixLen: 3},
	}

	got := mergeFlags(base, fs, flags)

	if got.Count != 200 {
		t.Errorf("count = %d, want explicit flag value 200", got.Count)
	}
	if got.Country != "PK" {
		t.Errorf("country = %q, want preset value PK", got.Country)
	}
	if got.LocalLength != 10 {
		t.Errorf("local length = %d, want preset value 10", got.LocalLength)
	}
	if !got.Serial.Enabled || got.Serial.Start != 3000000000 || got.Serial.FixedPrefixLen != 3 {
		t.Errorf("serial config not preserved from preset: %+v", got.Serial)
	}
}

func TestMergeFlagsOverridesSerial(t *testing.T) {
	fs, flags := generateFlags(t, []string{"--serial-enabled", "--serial-start", "42"})

	base := preset.Preset{Country: "US", Count: 10, LocalLength: 10}

	got := mergeFlags(base, fs, flags)

	if !got.Serial.Enabled {
		t.Error("serial should be enabled by flag")
	}
	if got.Serial.Start != 42 {
		t.Errorf("serial start = %d, want 42", got.Serial.Start)
	}
}
