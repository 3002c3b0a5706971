package calendar

import "time"

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// easterSunday uses the anonymous Gregorian algorithm.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return date(year, time.Month(month), day)
}

// nthWeekday returns the n-th weekday of a month; n = -1 selects the last one.
func nthWeekday(year int, month time.Month, wd time.Weekday, n int) time.Time {
	if n < 0 {
		last := date(year, month+1, 0)
		offset := (int(last.Weekday()) - int(wd) + 7) % 7
		return last.AddDate(0, 0, -offset)
	}
	first := date(year, month, 1)
	offset := (int(wd) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+7*(n-1))
}

// observedUS moves a Saturday holiday to Friday and a Sunday holiday to Monday.
func observedUS(t time.Time) time.Time {
	switch t.Weekday() {
	case time.Saturday:
		return t.AddDate(0, 0, -1)
	case time.Sunday:
		return t.AddDate(0, 0, 1)
	default:
		return t
	}
}

func targetHolidays(year int) []time.Time {
	easter := easterSunday(year)
	return []time.Time{
		date(year, time.January, 1),
		easter.AddDate(0, 0, -2),
		easter.AddDate(0, 0, 1),
		date(year, time.May, 1),
		date(year, time.December, 25),
		date(year, time.December, 26),
	}
}

// usdHolidays follows the SIFMA recommended US bond market closures.
func usdHolidays(year int) []time.Time {
	days := []time.Time{
		observedUS(date(year, time.January, 1)),
		nthWeekday(year, time.January, time.Monday, 3),
		nthWeekday(year, time.February, time.Monday, 3),
		easterSunday(year).AddDate(0, 0, -2),
		nthWeekday(year, time.May, time.Monday, -1),
		observedUS(date(year, time.July, 4)),
		nthWeekday(year, time.September, time.Monday, 1),
		nthWeekday(year, time.October, time.Monday, 2),
		observedUS(date(year, time.November, 11)),
		nthWeekday(year, time.November, time.Thursday, 4),
		observedUS(date(year, time.December, 25)),
	}
	if year >= 2022 {
		days = append(days, observedUS(date(year, time.June, 19)))
	}
	return days
}

func vernalEquinoxDay(year int) int {
	return int(20.8431+0.242194*float64(year-1980)) - (year-1980)/4
}

func autumnalEquinoxDay(year int) int {
	return int(23.2488+0.242194*float64(year-1980)) - (year-1980)/4
}

// jpnHolidays covers Tokyo bank holidays including the year-end closure.
func jpnHolidays(year int) []time.Time {
	national := []time.Time{
		date(year, time.January, 1),
		nthWeekday(year, time.January, time.Monday, 2),
		date(year, time.February, 11),
		date(year, time.March, vernalEquinoxDay(year)),
		date(year, time.April, 29),
		date(year, time.May, 3),
		date(year, time.May, 4),
		date(year, time.May, 5),
		nthWeekday(year, time.July, time.Monday, 3),
		date(year, time.August, 11),
		nthWeekday(year, time.September, time.Monday, 3),
		date(year, time.September, autumnalEquinoxDay(year)),
		nthWeekday(year, time.October, time.Monday, 2),
		date(year, time.November, 3),
		date(year, time.November, 23),
	}
	if year >= 2020 {
		national = append(national, date(year, time.February, 23))
	}

	set := make(map[time.Time]struct{}, len(national))
	for _, d := range national {
		set[d] = struct{}{}
	}
	days := append([]time.Time{}, national...)
	// A holiday on Sunday moves to the next day that is not already a holiday.
	for _, d := range national {
		if d.Weekday() != time.Sunday {
			continue
		}
		sub := d.AddDate(0, 0, 1)
		for {
			if _, ok := set[sub]; !ok {
				break
			}
			sub = sub.AddDate(0, 0, 1)
		}
		set[sub] = struct{}{}
		days = append(days, sub)
	}
	return append(days,
		date(year, time.January, 2),
		date(year, time.January, 3),
		date(year, time.December, 31),
	)
}

// krwLunar lists the lunar calendar holidays (Seollal, Buddha's Birthday, Chuseok)
// together with their substitute days.
var krwLunar = map[int][]string{
	2024: {"2024-02-09", "2024-02-12", "2024-05-15", "2024-09-16", "2024-09-17", "2024-09-18"},
	2025: {"2025-01-28", "2025-01-29", "2025-01-30", "2025-05-05", "2025-05-06", "2025-10-06", "2025-10-07", "2025-10-08"},
	2026: {"2026-02-16", "2026-02-17", "2026-02-18", "2026-05-25", "2026-09-24", "2026-09-25"},
	2027: {"2027-02-08", "2027-02-09", "2027-05-13", "2027-09-14", "2027-09-15", "2027-09-16"},
}

func krwHolidays(year int) []time.Time {
	days := []time.Time{
		date(year, time.January, 1),
		date(year, time.March, 1),
		date(year, time.May, 1),
		date(year, time.May, 5),
		date(year, time.June, 6),
		date(year, time.August, 15),
		date(year, time.October, 3),
		date(year, time.October, 9),
		date(year, time.December, 25),
		date(year, time.December, 31),
	}
	for _, s := range krwLunar[year] {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			days = append(days, t)
		}
	}
	return days
}
