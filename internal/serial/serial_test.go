package serial

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		localLength int
		wantErr     bool
	}{
		{
			name:        "disabled ignores everything else",
			cfg:         Config{Enabled: false, FixedPrefixLen: 99},
			localLength: 10,
		},
		{
			name:        "plain serial fits",
			cfg:         Config{Enabled: true, Placement: PlaceSuffix, Start: 1000, Step: 1},
			localLength: 10,
		},
		{
			name:        "empty placement defaults",
			cfg:         Config{Enabled: true, Start: 1, Step: 1},
			localLength: 10,
		},
		{
			name:        "bad placement",
			cfg:         Config{Enabled: true, Placement: "middle", Start: 1, Step: 1},
			localLength: 10,
			wantErr:     true,
		},
		{
			name:        "zero step",
			cfg:         Config{Enabled: true, Start: 1, Step: 0},
			localLength: 10,
			wantErr:     true,
		},
		{
			name:        "start wider than budget",
			cfg:         Config{Enabled: true, Start: 12345678901, Step: 1},
			localLength: 10,
			wantErr:     true,
		},
		{
			name:        "sequential start fits exactly",
			cfg:         Config{Enabled: true, SequentialOnly: true, Start: 5550000000, Step: 1},
			localLength: 10,
		},
		{
			name:        "sequential start too wide",
			cfg:         Config{Enabled: true, SequentialOnly: true, Start: 55500000000, Step: 1},
			localLength: 10,
			wantErr:     true,
		},
		{
			name:        "fixed prefix fits",
			cfg:         Config{Enabled: true, Start: 3000000000, FixedPrefixLen: 3},
			localLength: 10,
		},
		{
			name:        "fixed prefix wider than start",
			cfg:         Config{Enabled: true, Start: 300, FixedPrefixLen: 4},
			localLength: 10,
			wantErr:     true,
		},
		{
			name:        "fixed prefix wider than budget",
			cfg:         Config{Enabled: true, Start: 3000000000, FixedPrefixLen: 5},
			localLength: 4,
			wantErr:     true,
		},
		{
			name:        "fixed prefix negative",
			cfg:         Config{Enabled: true, Start: 300, FixedPrefixLen: -1},
			localLength: 10,
			wantErr:     true,
		},
		{
			name:        "fixed prefix with sequential-only",
			cfg:         Config{Enabled: true, Start: 300, FixedPrefixLen: 2, SequentialOnly: true},
			localLength: 10,
			wantErr:     true,
		},
		{
			name:        "zero local length",
			cfg:         Config{},
			localLength: 0,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate(tt.localLength)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("error %v does not wrap ErrInvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestFixedPrefix(t *testing.T) {
	cfg := Config{Enabled: true, Start: 3000000000, FixedPrefixLen: 3}
	if err := cfg.Validate(10); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got := cfg.FixedPrefix(); got != "300" {
		t.Errorf("FixedPrefix() = %q, want %q", got, "300")
	}
}

func TestCounterSequence(t *testing.T) {
	c := NewCounter(Config{Start: 5550000000, Step: 1})

	want := []string{"5550000000", "5550000001", "5550000002"}
	for i, w := range want {
		got, err := c.Next(10)
		if err != nil {
			t.Fatalf("Next #%d: %v", i, err)
		}
		if got != w {
			t.Errorf("Next #%d = %q, want %q", i, got, w)
		}
	}
}

func TestCounterStep(t *testing.T) {
	c := NewCounter(Config{Start: 100, Step: 25})

	for _, w := range []string{"100", "125", "150"} {
		got, err := c.Next(5)
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if got != w {
			t.Errorf("Next = %q, want %q", got, w)
		}
	}
}

func TestCounterOverflow(t *testing.T) {
	c := NewCounter(Config{Start: 98, Step: 1})

	for _, w := range []string{"98", "99"} {
		got, err := c.Next(2)
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if got != w {
			t.Errorf("Next = %q, want %q", got, w)
		}
	}

	if _, err := c.Next(2); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
}
