package calendar

import (
	"testing"
	"time"

	"github.com/meenmo/mocurve/utils"
)

func d(s string) time.Time { return utils.MustParseDate(s) }

func TestEasterSunday(t *testing.T) {
	t.Parallel()

	want := map[int]string{2024: "2024-03-31", 2025: "2025-04-20", 2026: "2026-04-05"}
	for year, s := range want {
		if got := easterSunday(year); !got.Equal(d(s)) {
			t.Fatalf("easterSunday(%d) = %s, want %s", year, got.Format(utils.DateLayout), s)
		}
	}
}

func TestHolidays(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cal     CalendarID
		date    string
		holiday bool
	}{
		{TARGET, "2025-04-18", true},
		{TARGET, "2025-04-21", true},
		{TARGET, "2025-12-26", true},
		{TARGET, "2025-07-04", false},
		{USD, "2025-11-27", true},
		{USD, "2026-07-03", true},
		{USD, "2025-06-19", true},
		{USD, "2025-12-26", false},
		{JPN, "2025-01-13", true},
		{JPN, "2025-03-20", true},
		{JPN, "2025-09-23", true},
		{JPN, "2025-11-24", true},
		{JPN, "2025-11-25", false},
		{KRW, "2025-10-06", true},
		{KRW, "2025-03-04", false},
	}
	for _, tc := range tests {
		if got := IsHoliday(tc.cal, d(tc.date)); got != tc.holiday {
			t.Fatalf("IsHoliday(%s, %s) = %v, want %v", tc.cal, tc.date, got, tc.holiday)
		}
	}
}

func TestAdjust(t *testing.T) {
	t.Parallel()

	// Saturday at month end rolls back under Modified Following.
	if got := Adjust(TARGET, d("2025-05-31")); !got.Equal(d("2025-05-30")) {
		t.Fatalf("Adjust = %s", got.Format(utils.DateLayout))
	}
	if got := AdjustFollowing(TARGET, d("2025-05-31")); !got.Equal(d("2025-06-02")) {
		t.Fatalf("AdjustFollowing = %s", got.Format(utils.DateLayout))
	}
	// Good Friday followed by Easter Monday.
	if got := Adjust(TARGET, d("2025-04-18")); !got.Equal(d("2025-04-22")) {
		t.Fatalf("Adjust over Easter = %s", got.Format(utils.DateLayout))
	}
}

func TestAddBusinessDays(t *testing.T) {
	t.Parallel()

	if got := AddBusinessDays(TARGET, d("2025-04-17"), 2); !got.Equal(d("2025-04-23")) {
		t.Fatalf("AddBusinessDays(+2) = %s", got.Format(utils.DateLayout))
	}
	if got := AddBusinessDays(TARGET, d("2025-04-23"), -2); !got.Equal(d("2025-04-17")) {
		t.Fatalf("AddBusinessDays(-2) = %s", got.Format(utils.DateLayout))
	}
	if got := AddBusinessDays(WeekendsOnly, d("2025-01-01"), 1); !got.Equal(d("2025-01-02")) {
		t.Fatalf("WeekendsOnly = %s", got.Format(utils.DateLayout))
	}
}

func TestEndOfMonth(t *testing.T) {
	t.Parallel()

	if got := LastBusinessDayOfMonth(USD, d("2025-08-10")); !got.Equal(d("2025-08-29")) {
		t.Fatalf("LastBusinessDayOfMonth = %s", got.Format(utils.DateLayout))
	}
	if !IsEndOfMonth(USD, d("2025-08-29")) {
		t.Fatalf("expected end of month")
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	if _, err := Parse("TARGET"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Parse("XYZ"); err == nil {
		t.Fatalf("expected error")
	}
}
