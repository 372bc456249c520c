package week

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMondayBounds(t *testing.T) {
	cases := []struct {
		name  string
		in    time.Time
		start time.Time
		end   time.Time
	}{
		{"monday stays put", date(2024, time.January, 15), date(2024, time.January, 15), date(2024, time.January, 21)},
		{"wednesday rewinds to monday", date(2024, time.January, 17), date(2024, time.January, 15), date(2024, time.January, 21)},
		{"sunday belongs to the preceding week", date(2024, time.January, 21), date(2024, time.January, 15), date(2024, time.January, 21)},
		{"saturday", date(2024, time.January, 20), date(2024, time.January, 15), date(2024, time.January, 21)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := MondayBounds(tc.in)
			if !start.Equal(tc.start) || !end.Equal(tc.end) {
				t.Fatalf("MondayBounds(%s) = (%s, %s), want (%s, %s)",
					tc.in.Format("2006-01-02"), start.Format("2006-01-02"), end.Format("2006-01-02"),
					tc.start.Format("2006-01-02"), tc.end.Format("2006-01-02"))
			}
		})
	}
}

func TestISOWeek(t *testing.T) {
	cases := []struct {
		in   time.Time
		year int
		week int
	}{
		{date(2024, time.January, 15), 2024, 3},
		{date(2024, time.January, 1), 2024, 1},
		// 2023-12-31 est un dimanche : son jeudi tombe en 2023, semaine 52
		{date(2023, time.December, 31), 2023, 52},
		// 2024-12-30 est un lundi : son jeudi tombe en 2025, semaine 1
		{date(2024, time.December, 30), 2025, 1},
		{date(2026, time.September, 1), 2026, 36},
	}

	for _, tc := range cases {
		year, week := ISOWeek(tc.in)
		if year != tc.year || week != tc.week {
			t.Errorf("ISOWeek(%s) = (%d, %d), want (%d, %d)",
				tc.in.Format("2006-01-02"), year, week, tc.year, tc.week)
		}
	}
}

func TestResolveAnchorsOnEarliestDate(t *testing.T) {
	res, err := Resolve([]string{"2024-01-17", "2024-01-15", "2024-01-16"})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	if !res.Start.Equal(date(2024, time.January, 15)) {
		t.Errorf("Start = %s, want 2024-01-15", res.Start.Format("2006-01-02"))
	}
	if !res.End.Equal(date(2024, time.January, 21)) {
		t.Errorf("End = %s, want 2024-01-21", res.End.Format("2006-01-02"))
	}
	if res.WeekNumber != 3 || res.Year != 2024 {
		t.Errorf("WeekNumber/Year = %d/%d, want 3/2024", res.WeekNumber, res.Year)
	}
}

func TestResolveErrors(t *testing.T) {
	if _, err := Resolve(nil); err == nil {
		t.Error("Resolve(nil) should fail")
	}
	if _, err := Resolve([]string{"not-a-date"}); err == nil {
		t.Error("Resolve with an invalid date should fail")
	}
}

func TestResolutionDates(t *testing.T) {
	res := FromDate(date(2024, time.January, 17))
	days := res.Dates()

	if len(days) != 7 {
		t.Fatalf("Dates() returned %d days, want 7", len(days))
	}
	if !days[0].Equal(res.Start) {
		t.Errorf("first day = %s, want week start %s", days[0], res.Start)
	}
	if !days[6].Equal(res.End) {
		t.Errorf("last day = %s, want week end %s", days[6], res.End)
	}
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) != 24*time.Hour {
			t.Errorf("days %d and %d are not consecutive", i-1, i)
		}
	}
}

func TestDatesBetween(t *testing.T) {
	dates := DatesBetween(date(2024, time.January, 15), date(2024, time.January, 21))
	if len(dates) != 7 {
		t.Fatalf("DatesBetween over a full week returned %d dates, want 7", len(dates))
	}

	single := DatesBetween(date(2024, time.January, 15), date(2024, time.January, 15))
	if len(single) != 1 {
		t.Fatalf("DatesBetween over one day returned %d dates, want 1", len(single))
	}
}
