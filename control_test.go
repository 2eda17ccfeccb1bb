package cameractrls

import (
	"reflect"
	"testing"
)

func TestIntegerResolveValue(t *testing.T) {
	ctrl := &IntegerControl{Min: 0, Max: 255, Step: 1, Default: 50}
	for _, tt := range []struct {
		in   string
		want int32
	}{
		{"default", 50},
		{"0%", 0},
		{"50%", 50},
		{"100%", 100},
		// Percentages above 100 keep scaling until the range clamps them.
		{"200%", 200},
		{"300%", 255},
		{"128", 128},
		// Bare integers are passed through unclamped.
		{"999", 999},
		{"-4", -4},
	} {
		got, err := ctrl.resolveValue(tt.in)
		if err != nil {
			t.Fatalf("resolveValue(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("resolveValue(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIntegerResolveValueOffsetRange(t *testing.T) {
	// An asymmetric range: 50% must land on the default, not the midpoint.
	ctrl := &IntegerControl{Min: -64, Max: 64, Step: 1, Default: 0}
	for _, tt := range []struct {
		in   string
		want int32
	}{
		{"0%", -64},
		{"50%", 0},
		{"100%", 64},
		{"25%", -32},
	} {
		got, err := ctrl.resolveValue(tt.in)
		if err != nil {
			t.Fatalf("resolveValue(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("resolveValue(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIntegerResolveValueErrors(t *testing.T) {
	ctrl := &IntegerControl{Min: 0, Max: 100, Default: 50}
	for _, in := range []string{"abc", "12.5", "x%", ""} {
		if _, err := ctrl.resolveValue(in); err == nil {
			t.Errorf("resolveValue(%q): expected error", in)
		}
	}
}

func TestParseBool(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want bool
	}{
		{"1", true},
		{"true", true},
		{"True", true},
		{"YES", true},
		{"on", true},
		{"t", true},
		{"y", true},
		{"0", false},
		{"false", false},
		{"off", false},
		{"", false},
		{"2", false},
	} {
		if got := parseBool(tt.in); got != tt.want {
			t.Errorf("parseBool(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseBatch(t *testing.T) {
	var warns Warnings
	got := ParseBatch("brightness=128,auto_exposure=default,gamma=50%", &warns)
	want := Batch{
		{Name: "brightness", Value: "128"},
		{Name: "auto_exposure", Value: "default"},
		{Name: "gamma", Value: "50%"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseBatch = %v, want %v", got, want)
	}
	if len(warns) != 0 {
		t.Errorf("warnings = %v, want none", warns)
	}
}

func TestParseBatchMalformed(t *testing.T) {
	var warns Warnings
	got := ParseBatch("brightness=1,bogus,contrast=2", &warns)
	want := Batch{
		{Name: "brightness", Value: "1"},
		{Name: "contrast", Value: "2"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseBatch = %v, want %v", got, want)
	}
	if len(warns) != 1 {
		t.Fatalf("warnings = %v, want 1", warns)
	}
}

func TestDisplayHintFormatValue(t *testing.T) {
	for _, tt := range []struct {
		hint DisplayHint
		v    int32
		want string
	}{
		{DisplayTemperature, 4600, "4600 K"},
		{DisplayExposure, 156, "15600 µs"},
		{DisplayGain, 64, "64"},
		{DisplayDefault, -3, "-3"},
	} {
		if got := tt.hint.FormatValue(tt.v); got != tt.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestControlStateSwap(t *testing.T) {
	c := &IntegerControl{Min: 0, Max: 100, Default: 50}
	c.meta = ControlMeta{ID: "brightness", Name: "Brightness"}
	if s := c.State(); s.Valid {
		t.Fatalf("zero state Valid = true, want false")
	}
	c.setState(State{Value: 42, Valid: true})
	c.update(func(s *State) { s.Inactive = true })
	s := c.State()
	if s.Value != 42 || !s.Valid || !s.Inactive {
		t.Errorf("state = %+v, want value 42, valid, inactive", s)
	}
}

func TestFindEntry(t *testing.T) {
	entries := []MenuEntry{
		{ID: "manual_mode", Value: 1, Valid: true},
		{ID: "aperture_priority_mode", Value: 3, Valid: true},
		{ID: "zero_coded", Value: 0, Valid: true},
		{ID: "uncoded"},
	}
	if e := findEntry(entries, "aperture_priority_mode"); e == nil || e.Value != 3 {
		t.Errorf("findEntry(aperture_priority_mode) = %+v", e)
	}
	if e := findEntry(entries, "missing"); e != nil {
		t.Errorf("findEntry(missing) = %+v, want nil", e)
	}
	if e := findEntryByValue(entries, 0); e == nil || e.ID != "zero_coded" {
		t.Errorf("findEntryByValue(0) = %+v, want zero_coded", e)
	}
	// Entries without a numeric code never match by value.
	if e := findEntryByValue(entries, 2); e != nil {
		t.Errorf("findEntryByValue(2) = %+v, want nil", e)
	}
}
