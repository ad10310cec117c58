package numplan

import (
	"strings"
	"testing"
)

func TestCallingCode(t *testing.T) {
	tests := []struct {
		region string
		want   int
	}{
		{"US", 1},
		{"us", 1},
		{"GB", 44},
		{"PK", 92},
		{"XX", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			if got := CallingCode(tt.region); got != tt.want {
				t.Errorf("CallingCode(%q) = %d, want %d", tt.region, got, tt.want)
			}
		})
	}
}

func TestRegionForCallingCode(t *testing.T) {
	tests := []struct {
		code   int
		want   string
		wantOK bool
	}{
		{1, "US", true},
		{44, "GB", true},
		{92, "PK", true},
		{0, "", false},
		{-5, "", false},
		{99999, "", false},
	}

	for _, tt := range tests {
		region, ok := RegionForCallingCode(tt.code)
		if ok != tt.wantOK || region != tt.want {
			t.Errorf("RegionForCallingCode(%d) = %q, %v; want %q, %v",
				tt.code, region, ok, tt.want, tt.wantOK)
		}
	}
}

func TestAdviseLength(t *testing.T) {
	if adv := AdviseLength("US", 10); adv.Atypical {
		t.Errorf("10 digits should be typical for US, got hint %q", adv.Hint)
	}

	adv := AdviseLength("US", 3)
	if !adv.Atypical {
		t.Fatal("3 digits should be atypical for US")
	}
	if !strings.Contains(adv.Hint, "US") {
		t.Errorf("hint %q should name the region", adv.Hint)
	}
}

func TestAdviseLengthUnknownRegion(t *testing.T) {
	if adv := AdviseLength("XX", 10); !adv.Atypical {
		t.Error("unknown region should be atypical")
	}
}

func TestAdviceErr(t *testing.T) {
	if err := (Advice{}).Err("US", 10); err != nil {
		t.Errorf("typical advice should not error, got %v", err)
	}

	err := (Advice{Atypical: true, Hint: "typical local length for US is 10"}).Err("US", 3)
	if err == nil {
		t.Fatal("atypical advice should error in strict mode")
	}
	var lerr *LengthError
	if !asLengthError(err, &lerr) {
		t.Fatalf("expected *LengthError, got %T", err)
	}
	if lerr.Region != "US" || lerr.Length != 3 {
		t.Errorf("LengthError = %+v", lerr)
	}
}

func asLengthError(err error, target **LengthError) bool {
	le, ok := err.(*LengthError)
	if ok {
		*target = le
	}
	return ok
}

func TestPlanCheckValid(t *testing.T) {
	e164, national, ok := Plan{}.Check("+12025550123", "US")
	if !ok {
		t.Fatal("expected +12025550123 to be valid for US")
	}
	if e164 != "+12025550123" {
		t.Errorf("e164 = %q, want +12025550123", e164)
	}
	if national != "2025550123" {
		t.Errorf("national = %q, want 2025550123", national)
	}
}

func TestPlanCheckRejects(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		region    string
	}{
		{"too short", "+1202", "US"},
		{"garbage", "+1abcdefghij", "US"},
		{"empty", "", "US"},
		{"wrong length for region", "+4412345", "GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, ok := (Plan{}).Check(tt.candidate, tt.region); ok {
				t.Errorf("Check(%q, %q) unexpectedly ok", tt.candidate, tt.region)
			}
		})
	}
}
