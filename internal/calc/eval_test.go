package calc_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/yourorg/calcctl/internal/calc"
)

func mustEval(t *testing.T, input string) decimal.Decimal {
	t.Helper()
	got, err := calc.Evaluate(input)
	if err != nil {
		t.Fatalf("Evaluate(%q) returned error: %v", input, err)
	}
	return got
}

func TestEvaluateIntegers(t *testing.T) {
	cases := []struct {
		input string
		want  int64
	}{
		{"3 + 4", 7},
		{"3 * 4", 12},
		{"3 ^ 4", 81},
		{"-5 * 4", -20},
		{"-5 + (-5)", -10},
		{"-(-3 * 2)", 6},
		{"--5", 5},
		{"-5 * -2", 10},
		{"3 + 4 * 5", 23},
		{"(3 + 4) * 5", 35},
		{"3 + 4 * 5 / 2", 13},
		{"2^3 + 1", 9},
		{"2^(3 + 1)", 16},
		{"1/2 * 10 * 2^2 + 1", 21},
		{"10 % 3", 1},
		{"10 % 3 * 2", 2},
		{"1.2e3", 1200},
	}

	for _, tc := range cases {
		got := mustEval(t, tc.input)
		if want := decimal.NewFromInt(tc.want); !got.Equal(want) {
			t.Fatalf("Evaluate(%q) = %s, want %s", tc.input, got, want)
		}
	}
}

func TestEvaluateDecimals(t *testing.T) {
	cases := []struct {
		input string
		round int32
		want  string
	}{
		{"3 / 4", 2, "0.75"},
		{"(3 + 4) * 5 / 2", 1, "17.5"},
		{"2.5 * 5.2 / 3.1", 2, "4.19"},
		{"2.5 ^ 2", 2, "6.25"},
		{"(-2.5) ^ 2", 2, "6.25"},
		{"2.5 ^ (2 + 2)", 4, "39.0625"},
		{"4.2e-2", 3, "0.042"},
		{"1.5e2 + 2.5e-1", 2, "150.25"},
		{"2 ^ (-2)", 2, "0.25"},
	}

	for _, tc := range cases {
		got := mustEval(t, tc.input)
		if s := got.Round(tc.round).String(); s != tc.want {
			t.Fatalf("Evaluate(%q) = %s, want %s", tc.input, s, tc.want)
		}
	}
}

func TestEvaluateConstants(t *testing.T) {
	for _, c := range calc.Constants() {
		got := mustEval(t, c.String())
		if !got.Equal(c.Value()) {
			t.Fatalf("Evaluate(%q) = %s, want %s", c.String(), got, c.Value())
		}
	}

	pi := mustEval(t, "pi * 2")
	if want := calc.ConstPi.Value().Mul(decimal.NewFromInt(2)); !pi.Equal(want) {
		t.Fatalf("pi * 2 = %s, want %s", pi, want)
	}

	ratio := mustEval(t, "tau / pi")
	if !ratio.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("tau / pi = %s, want 2", ratio)
	}

	upper := mustEval(t, "PI")
	if !upper.Equal(calc.ConstPi.Value()) {
		t.Fatalf("constant lookup should be case-insensitive, got %s", upper)
	}
}

func TestEvaluateErrors(t *testing.T) {
	cases := []struct {
		input   string
		wantErr string
	}{
		{"1 / 0", "division by zero"},
		{"1 % 0", "modulo by zero"},
		{"2 ^ 0.5", "exponent must be an integer"},
		{"2 ^ 1e9", "exponent is out of range"},
		{"(1 + 2", "mismatched parentheses"},
		{"1 + 2)", "mismatched parentheses"},
		{"1 +", "not enough operands"},
		{"* 2", "unexpected operator placement"},
		{"1 $ 2", "unexpected character"},
		{"bogus", "unknown math constant"},
	}

	for _, tc := range cases {
		if _, err := calc.Evaluate(tc.input); err == nil {
			t.Fatalf("Evaluate(%q) expected error containing %q, got nil", tc.input, tc.wantErr)
		} else if !strings.Contains(err.Error(), tc.wantErr) {
			t.Fatalf("Evaluate(%q) error = %q, want substring %q", tc.input, err, tc.wantErr)
		}
	}
}
