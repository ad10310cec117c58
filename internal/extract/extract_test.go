package extract

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		wantN int
	}{
		{
			name:  "plus kept as-is",
			input: "name,e164_number\nBob,+19876543210\n",
			want:  "+19876543210\n",
			wantN: 1,
		},
		{
			name:  "plus prepended",
			input: "name,e164_number\nAlice,1234567890\n",
			want:  "+1234567890\n",
			wantN: 1,
		},
		{
			name:  "mixed rows",
			input: "name,e164_number\nBob,+19876543210\nAlice,1234567890\n",
			want:  "+19876543210\n+1234567890\n",
			wantN: 2,
		},
		{
			name:  "empty values skipped",
			input: "e164_number\n+15550001111\n\n   \n+15550002222\n",
			want:  "+15550001111\n+15550002222\n",
			wantN: 2,
		},
		{
			name:  "column position does not matter",
			input: "e164_number,name\n+4477001234,Eve\n",
			want:  "+4477001234\n",
			wantN: 1,
		},
		{
			name:  "values are trimmed",
			input: "e164_number\n  19876543210  \n",
			want:  "+19876543210\n",
			wantN: 1,
		},
		{
			name:  "header only",
			input: "e164_number\n",
			want:  "",
			wantN: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			n, err := Extract(strings.NewReader(tt.input), &out)
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if n != tt.wantN {
				t.Errorf("count = %d, want %d", n, tt.wantN)
			}
			if out.String() != tt.want {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestExtractMissingColumn(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"wrong column", "name,phone\nBob,+19876543210\n"},
		{"near miss", "e164,number\nBob,+19876543210\n"},
		{"empty input", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			_, err := Extract(strings.NewReader(tt.input), &out)
			if !errors.Is(err, ErrMissingColumn) {
				t.Fatalf("expected ErrMissingColumn, got %v", err)
			}
			if out.Len() != 0 {
				t.Errorf("nothing should be written on failure, got %q", out.String())
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		csvPath  string
		override string
		want     string
	}{
		{"default beside input", filepath.Join("data", "in.csv"), "", filepath.Join("data", "numbers.txt")},
		{"bare filename", "in.csv", "", "numbers.txt"},
		{"override wins", filepath.Join("data", "in.csv"), filepath.Join("other", "out.txt"), filepath.Join("other", "out.txt")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutputPath(tt.csvPath, tt.override); got != tt.want {
				t.Errorf("OutputPath = %q, want %q", got, tt.want)
			}
		})
	}
}
