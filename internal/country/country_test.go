package country

import (
	"errors"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		wantRegion string
		wantCode   int
	}{
		{"iso upper", "US", "US", 1},
		{"iso lower", "gb", "GB", 44},
		{"iso with spaces", "  pk  ", "PK", 92},
		{"calling code with plus", "+1", "US", 1},
		{"calling code bare", "44", "GB", 44},
		{"calling code pakistan", "+92", "PK", 92},
		{"full name", "United States", "US", 1},
		{"full name case-insensitive", "pakistan", "PK", 92},
		{"full name germany", "Germany", "DE", 49},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Resolve(tt.identifier)
			if err != nil {
				t.Fatalf("Resolve(%q): %v", tt.identifier, err)
			}
			if c.Region != tt.wantRegion {
				t.Errorf("region = %q, want %q", c.Region, tt.wantRegion)
			}
			if c.CallingCode != tt.wantCode {
				t.Errorf("calling code = %d, want %d", c.CallingCode, tt.wantCode)
			}
			if c.Name == "" {
				t.Error("display name is empty")
			}
		})
	}
}

func TestResolveUnknown(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"gibberish", "Atlantis"},
		{"bad iso", "XQ"},
		{"bad calling code", "+99999"},
		{"plus only", "+"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.identifier)
			if err == nil {
				t.Fatalf("Resolve(%q) should fail", tt.identifier)
			}

			var uerr *UnknownError
			if !errors.As(err, &uerr) {
				t.Fatalf("expected *UnknownError, got %T", err)
			}
			if len(uerr.Examples()) == 0 {
				t.Error("Examples() should offer valid inputs")
			}
		})
	}
}

func TestResolveISOBeatsName(t *testing.T) {
	// "IN" is both an ISO code (India) and a word; the ISO matcher
	// must win.
	c, err := Resolve("IN")
	if err != nil {
		t.Fatalf("Resolve(IN): %v", err)
	}
	if c.Region != "IN" || c.CallingCode != 91 {
		t.Errorf("got %+v, want region IN with code 91", c)
	}
}
