package core

import (
	"encoding/json"
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "integer", input: "10", want: 1000},
		{name: "two decimals", input: "10.50", want: 1050},
		{name: "one decimal", input: "10.5", want: 1050},
		{name: "comma separator", input: "10,50", want: 1050},
		{name: "rounds half up", input: "10.005", want: 1001},
		{name: "rounds down below half", input: "10.004", want: 1000},
		{name: "leading dot", input: ".50", want: 50},
		{name: "whitespace trimmed", input: " 12.34 ", want: 1234},
		{name: "zero", input: "0", want: 0},
		{name: "empty", input: "", wantErr: true},
		{name: "negative rejected", input: "-5", wantErr: true},
		{name: "explicit plus rejected", input: "+5", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "two separators", input: "1.2.3", wantErr: true},
		{name: "mixed digits and letters", input: "12a", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecimalToCents(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDecimalToCents(%q) = %d, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDecimalToCents(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDecimalToCents(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseMoneyRejectsNonPositive(t *testing.T) {
	for _, input := range []string{"0", "0.00", "-1"} {
		if _, err := ParseMoney(input); err == nil {
			t.Errorf("ParseMoney(%q) succeeded, want error", input)
		}
	}
	m, err := ParseMoney("42.10")
	if err != nil {
		t.Fatalf("ParseMoney(42.10) unexpected error: %v", err)
	}
	if m.Cents != 4210 {
		t.Errorf("ParseMoney(42.10) = %d cents, want 4210", m.Cents)
	}
}

func TestMoneyFromCellValueCoercesToZero(t *testing.T) {
	if got := MoneyFromCellValue("garbage"); got.Cents != 0 {
		t.Errorf("MoneyFromCellValue(garbage) = %d, want 0", got.Cents)
	}
	if got := MoneyFromCellValue("3.14"); got.Cents != 314 {
		t.Errorf("MoneyFromCellValue(3.14) = %d, want 314", got.Cents)
	}
}

func TestMoneyString(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{cents: 0, want: "0.00"},
		{cents: 5, want: "0.05"},
		{cents: 1050, want: "10.50"},
		{cents: 100000, want: "1000.00"},
		{cents: -250, want: "-2.50"},
	}
	for _, tt := range tests {
		if got := (Money{Cents: tt.cents}).String(); got != tt.want {
			t.Errorf("Money{%d}.String() = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	out, err := json.Marshal(Money{Cents: 1050})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != "10.5" {
		t.Errorf("marshal = %s, want 10.5", out)
	}

	var m Money
	if err := json.Unmarshal([]byte("10.50"), &m); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if m.Cents != 1050 {
		t.Errorf("unmarshal number = %d cents, want 1050", m.Cents)
	}

	if err := json.Unmarshal([]byte(`"10.50"`), &m); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if m.Cents != 1050 {
		t.Errorf("unmarshal string = %d cents, want 1050", m.Cents)
	}

	if err := json.Unmarshal([]byte("-3"), &m); err == nil {
		t.Error("unmarshal of negative number succeeded, want error")
	}
	if err := json.Unmarshal([]byte("true"), &m); err == nil {
		t.Error("unmarshal of bool succeeded, want error")
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := Money{Cents: 1050}
	b := Money{Cents: 250}
	if got := a.Add(b).Cents; got != 1300 {
		t.Errorf("Add = %d, want 1300", got)
	}
	if got := a.Sub(b).Cents; got != 800 {
		t.Errorf("Sub = %d, want 800", got)
	}
	if got := b.Sub(a).Cents; got != -800 {
		t.Errorf("Sub negative = %d, want -800", got)
	}
}
