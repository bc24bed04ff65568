package sheets

import "testing"

func TestRowRange(t *testing.T) {
	if got := RowRange('G', 5); got != "A5:G5" {
		t.Errorf("RowRange('G', 5) = %q, want A5:G5", got)
	}
	if got := RowRange('E', 2); got != "A2:E2" {
		t.Errorf("RowRange('E', 2) = %q, want A2:E2", got)
	}
}

func TestColumnSpan(t *testing.T) {
	if got := ColumnSpan('G'); got != "A:G" {
		t.Errorf("ColumnSpan('G') = %q, want A:G", got)
	}
}

func TestRowBounds(t *testing.T) {
	tests := []struct {
		spec       string
		start, end int
		ok         bool
	}{
		{spec: "A:G", start: 0, end: 0, ok: true},
		{spec: "A5:G5", start: 5, end: 5, ok: true},
		{spec: "A2:G10", start: 2, end: 10, ok: true},
		{spec: "B3", start: 3, end: 3, ok: true},
		{spec: "A10:G2", ok: false},
		{spec: "5:7", ok: false},
		{spec: "", ok: false},
	}
	for _, tt := range tests {
		start, end, ok := RowBounds(tt.spec)
		if ok != tt.ok {
			t.Errorf("RowBounds(%q) ok = %v, want %v", tt.spec, ok, tt.ok)
			continue
		}
		if ok && (start != tt.start || end != tt.end) {
			t.Errorf("RowBounds(%q) = (%d, %d), want (%d, %d)", tt.spec, start, end, tt.start, tt.end)
		}
	}
}
