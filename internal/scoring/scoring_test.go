package scoring

import (
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func TestRankWeekInverseRankPoints(t *testing.T) {
	entries := []WeekStanding{
		{EntryID: "e1", ParticipantID: "p1", Steps: 5000, JoinedAt: day(1)},
		{EntryID: "e2", ParticipantID: "p2", Steps: 9000, JoinedAt: day(2)},
		{EntryID: "e3", ParticipantID: "p3", Steps: 7000, JoinedAt: day(3)},
	}

	ranked := RankWeek(entries)

	want := []struct {
		id     string
		rank   int
		points int
	}{
		{"e2", 1, 3},
		{"e3", 2, 2},
		{"e1", 3, 1},
	}
	for i, w := range want {
		if ranked[i].EntryID != w.id || ranked[i].Rank != w.rank || ranked[i].Points != w.points {
			t.Errorf("ranked[%d] = {%s rank=%d points=%d}, want {%s rank=%d points=%d}",
				i, ranked[i].EntryID, ranked[i].Rank, ranked[i].Points, w.id, w.rank, w.points)
		}
	}

	// L'entrée d'origine ne doit pas être modifiée
	if entries[0].Rank != 0 || entries[0].Points != 0 {
		t.Error("RankWeek mutated its input")
	}
}

func TestRankWeekTieBreak(t *testing.T) {
	entries := []WeekStanding{
		{EntryID: "e1", ParticipantID: "p-b", Steps: 8000, JoinedAt: day(5)},
		{EntryID: "e2", ParticipantID: "p-a", Steps: 8000, JoinedAt: day(2)},
		{EntryID: "e3", ParticipantID: "p-c", Steps: 8000, JoinedAt: day(2)},
	}

	ranked := RankWeek(entries)

	// Égalité de pas : le plus ancien d'abord, puis l'id le plus petit
	wantOrder := []string{"p-a", "p-c", "p-b"}
	for i, id := range wantOrder {
		if ranked[i].ParticipantID != id {
			t.Errorf("ranked[%d].ParticipantID = %s, want %s", i, ranked[i].ParticipantID, id)
		}
	}
}

func TestRankWeekEmpty(t *testing.T) {
	if got := RankWeek(nil); got != nil {
		t.Errorf("RankWeek(nil) = %v, want nil", got)
	}
}

func TestDistributeTotalEvenSplit(t *testing.T) {
	dates := []time.Time{day(15), day(16), day(17), day(18), day(19), day(20), day(21)}
	amounts := DistributeTotal(700, 7.0, dates)

	if len(amounts) != 7 {
		t.Fatalf("got %d amounts, want 7", len(amounts))
	}
	for i, a := range amounts {
		if a.Steps != 100 {
			t.Errorf("amounts[%d].Steps = %d, want 100", i, a.Steps)
		}
		if a.Distance != 1.0 {
			t.Errorf("amounts[%d].Distance = %v, want 1.0", i, a.Distance)
		}
	}
}

func TestDistributeTotalRemainderGoesToEarliestDays(t *testing.T) {
	// Dates volontairement dans le désordre : la ventilation doit trier
	dates := []time.Time{day(17), day(15), day(21), day(16), day(19), day(18), day(20)}
	amounts := DistributeTotal(703, 0, dates)

	sum := 0
	for i, a := range amounts {
		sum += a.Steps
		want := 100
		if i < 3 {
			want = 101
		}
		if a.Steps != want {
			t.Errorf("amounts[%d] (%s) = %d steps, want %d", i, a.Date.Format("2006-01-02"), a.Steps, want)
		}
		if i > 0 && a.Date.Before(amounts[i-1].Date) {
			t.Errorf("amounts not sorted by date at index %d", i)
		}
	}
	if sum != 703 {
		t.Errorf("distributed sum = %d, want 703", sum)
	}
}

func TestDistributeTotalNoDates(t *testing.T) {
	if got := DistributeTotal(100, 1.0, nil); got != nil {
		t.Errorf("DistributeTotal with no dates = %v, want nil", got)
	}
}

func TestOverallTotals(t *testing.T) {
	rows := []OverallRow{
		{ParticipantID: "p1", ParticipantName: "Alice", JoinedAt: day(1), Steps: 50000, Distance: 35, Points: 3},
		{ParticipantID: "p2", ParticipantName: "Bob", JoinedAt: day(2), Steps: 40000, Distance: 28, Points: 2},
		{ParticipantID: "p1", ParticipantName: "Alice", JoinedAt: day(1), Steps: 30000, Distance: 21, Points: 1},
		{ParticipantID: "p2", ParticipantName: "Bob", JoinedAt: day(2), Steps: 45000, Distance: 31, Points: 3},
	}

	totals := OverallTotals(rows)

	if len(totals) != 2 {
		t.Fatalf("got %d totals, want 2", len(totals))
	}

	// Bob cumule 5 points contre 4 pour Alice
	if totals[0].ParticipantID != "p2" || totals[0].Rank != 1 {
		t.Errorf("totals[0] = %s rank=%d, want p2 rank=1", totals[0].ParticipantID, totals[0].Rank)
	}
	if totals[0].TotalPoints != 5 || totals[0].TotalSteps != 85000 || totals[0].WeeksPlayed != 2 {
		t.Errorf("Bob totals = %d points, %d steps, %d weeks; want 5, 85000, 2",
			totals[0].TotalPoints, totals[0].TotalSteps, totals[0].WeeksPlayed)
	}
	if totals[1].ParticipantID != "p1" || totals[1].Rank != 2 {
		t.Errorf("totals[1] = %s rank=%d, want p1 rank=2", totals[1].ParticipantID, totals[1].Rank)
	}
}

func TestOverallTotalsTieBreakByJoinDate(t *testing.T) {
	rows := []OverallRow{
		{ParticipantID: "p2", ParticipantName: "Bob", JoinedAt: day(2), Steps: 100, Points: 2},
		{ParticipantID: "p1", ParticipantName: "Alice", JoinedAt: day(1), Steps: 100, Points: 2},
	}

	totals := OverallTotals(rows)
	if totals[0].ParticipantID != "p1" {
		t.Errorf("tie on points should rank the earliest joiner first, got %s", totals[0].ParticipantID)
	}
}
