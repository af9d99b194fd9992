package eligibility

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{name: "valid date", input: "2010-01-01", ok: true},
		{name: "valid date with spaces", input: "  1995-06-15 ", ok: true},
		{name: "empty", input: "", ok: false},
		{name: "whitespace only", input: "   ", ok: false},
		{name: "wrong layout", input: "01/01/2010", ok: false},
		{name: "garbage", input: "not-a-date", ok: false},
		{name: "impossible day", input: "2010-02-30", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ParseDate(tt.input)
			if ok != tt.ok {
				t.Errorf("ParseDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
		})
	}
}

func TestAgeAt(t *testing.T) {
	ref := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		dob     string
		want    int
		wantOK  bool
	}{
		{name: "birthday today", dob: "2007-06-15", want: 18, wantOK: true},
		{name: "day before birthday", dob: "2007-06-16", want: 17, wantOK: true},
		{name: "day after birthday", dob: "2007-06-14", want: 18, wantOK: true},
		{name: "earlier month", dob: "2007-01-01", want: 18, wantOK: true},
		{name: "later month", dob: "2007-12-31", want: 17, wantOK: true},
		{name: "same year", dob: "2025-01-01", want: 0, wantOK: true},
		{name: "missing dob", dob: "", wantOK: false},
		{name: "malformed dob", dob: "15-06-2007", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AgeAt(tt.dob, ref)
			if ok != tt.wantOK {
				t.Fatalf("AgeAt(%q) ok = %v, want %v", tt.dob, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("AgeAt(%q) = %d, want %d", tt.dob, got, tt.want)
			}
		})
	}
}
