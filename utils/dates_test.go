package utils

import (
	"testing"
)

func TestAddMonth_ClipsToMonthEnd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		months int
		want   string
	}{
		{"2024-01-31", 1, "2024-02-29"},
		{"2023-01-31", 1, "2023-02-28"},
		{"2024-03-31", -1, "2024-02-29"},
		{"2024-08-31", 1, "2024-09-30"},
		{"2024-01-15", 12, "2025-01-15"},
		{"2024-11-30", 3, "2025-02-28"},
	}
	for _, tc := range tests {
		got := AddMonth(MustParseDate(tc.in), tc.months)
		if !got.Equal(MustParseDate(tc.want)) {
			t.Fatalf("AddMonth(%s, %d) = %s, want %s", tc.in, tc.months, got.Format(DateLayout), tc.want)
		}
	}
}

func TestParseDate_Invalid(t *testing.T) {
	t.Parallel()

	if _, err := ParseDate("2025-13-01"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestYearFraction(t *testing.T) {
	t.Parallel()

	start := MustParseDate("2025-01-31")
	end := MustParseDate("2025-07-31")

	if got := YearFraction(start, end, Act360); got != 181.0/360.0 {
		t.Fatalf("ACT/360 = %v", got)
	}
	if got := YearFraction(start, end, Act365F); got != 181.0/365.0 {
		t.Fatalf("ACT/365F = %v", got)
	}
	if got := YearFraction(start, end, ThirtyE360); got != 0.5 {
		t.Fatalf("30E/360 = %v", got)
	}
}
