package core

import (
	"testing"
	"time"
)

func TestCanonicalDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{name: "canonical passthrough", input: "2025-03-07", want: "2025-03-07", ok: true},
		{name: "unpadded", input: "2025-3-7", want: "2025-03-07", ok: true},
		{name: "slash separated", input: "2025/03/07", want: "2025-03-07", ok: true},
		{name: "us style", input: "03/07/2025", want: "2025-03-07", ok: true},
		{name: "us style unpadded", input: "3/7/2025", want: "2025-03-07", ok: true},
		{name: "timestamp without zone", input: "2025-03-07T14:30:00", want: "2025-03-07", ok: true},
		{name: "whitespace trimmed", input: " 2025-03-07 ", want: "2025-03-07", ok: true},
		{name: "empty", input: "", ok: false},
		{name: "nonsense", input: "not-a-date", ok: false},
		{name: "month out of range", input: "2025-13-01", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CanonicalDate(tt.input)
			if ok != tt.ok {
				t.Fatalf("CanonicalDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("CanonicalDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCanonicalDateIsIdempotent(t *testing.T) {
	first, ok := CanonicalDate("3/7/2025")
	if !ok {
		t.Fatal("first normalization failed")
	}
	second, ok := CanonicalDate(first)
	if !ok || second != first {
		t.Errorf("CanonicalDate(CanonicalDate(x)) = %q, want %q", second, first)
	}
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2025, time.March, 7, 23, 59, 0, 0, time.Local)
	if got := FormatDate(ts); got != "2025-03-07" {
		t.Errorf("FormatDate = %q, want 2025-03-07", got)
	}
}
