package clock

import (
	"errors"
	"testing"
	"time"
)

func TestSimulatedAdvance(t *testing.T) {
	start := time.Date(2023, time.November, 24, 10, 0, 0, 0, time.UTC)
	clk := NewSimulated(start)

	clk.AdvanceMinutes(20)
	if got, exp := clk.Now(), start.Add(20*time.Minute); !got.Equal(exp) {
		t.Fatalf("expected %v, but got %v", exp, got)
	}

	clk.Set(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	exp := MonthOfYear{Month: time.January, Year: 2024}
	if got := clk.MonthOfYear(); got != exp {
		t.Fatalf("expected %v, but got %v", exp, got)
	}
}

func TestParseMonthOfYear(t *testing.T) {
	tests := []struct {
		in  string
		exp MonthOfYear
		err bool
	}{
		{in: "112023", exp: MonthOfYear{Month: time.November, Year: 2023}},
		{in: "012030", exp: MonthOfYear{Month: time.January, Year: 2030}},
		{in: "1120", err: true},
		{in: "132023", err: true},
		{in: "002023", err: true},
		{in: "ab2023", err: true},
		{in: "", err: true},
	}

	for _, tt := range tests {
		got, err := ParseMonthOfYear(tt.in)
		if tt.err {
			if !errors.Is(err, ErrInvalidMonthOfYear) {
				t.Fatalf("%q: expected %v, but got %v", tt.in, ErrInvalidMonthOfYear, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.in, err)
		}
		if got != tt.exp {
			t.Fatalf("%q: expected %v, but got %v", tt.in, tt.exp, got)
		}
		if got.String() != tt.in {
			t.Fatalf("expected round trip %q, but got %q", tt.in, got.String())
		}
	}
}

func TestMonthOfYearOrdering(t *testing.T) {
	nov := MonthOfYear{Month: time.November, Year: 2023}

	if !nov.Prev().Before(nov) {
		t.Fatalf("expected previous month to be before %v", nov)
	}
	if nov.Before(nov) {
		t.Fatalf("expected a month not to be before itself")
	}
	if nov.Next().Next().Before(nov) {
		t.Fatalf("expected January of next year to be after %v", nov)
	}
	if got := nov.Next().Next(); got != (MonthOfYear{Month: time.January, Year: 2024}) {
		t.Fatalf("expected 012024, but got %v", got)
	}
	if got := (MonthOfYear{Month: time.January, Year: 2024}).Prev(); got != (MonthOfYear{Month: time.December, Year: 2023}) {
		t.Fatalf("expected 122023, but got %v", got)
	}
}
