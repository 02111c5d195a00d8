package middleware

import (
	"testing"
	"time"
)

func TestParseRequestAt(t *testing.T) {
	cases := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"1736123456", time.Unix(1736123456, 0).UTC(), false},
		{"1736123456789", time.UnixMilli(1736123456789).UTC(), false},
		{"2026-08-30T10:00:00Z", time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC), false},
		{"2026-08-30T10:00:00+07:00", time.Date(2026, 8, 30, 3, 0, 0, 0, time.UTC), false},
		{"2026-08-30T10:00:00", time.Time{}, true}, // no timezone
		{"", time.Time{}, true},
		{"yesterday", time.Time{}, true},
	}
	for _, tc := range cases {
		got, err := parseRequestAt(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseRequestAt(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseRequestAt(%q): %v", tc.in, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("parseRequestAt(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestValidReqID(t *testing.T) {
	if !validReqID("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa") {
		t.Error("hex32 rejected")
	}
	if !validReqID("a3bb1890-36c1-4b66-93b1-a3c5ffd90210") {
		t.Error("uuid rejected")
	}
	if validReqID("short") || validReqID("") {
		t.Error("garbage accepted")
	}
}

func TestBuildKey(t *testing.T) {
	got := buildKey("POST", "/borrowers", "abc")
	if got != "idemp:post:/borrowers:abc" {
		t.Errorf("buildKey = %q", got)
	}
}
