package analytics

import (
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func series(id, name string, days ...DayPoint) Series {
	return Series{ParticipantID: id, Name: name, Days: days}
}

func TestWeeklyStats(t *testing.T) {
	input := []Series{
		series("p1", "Alice",
			DayPoint{day(15), 12000}, DayPoint{day(16), 11000}, DayPoint{day(17), 13000},
			DayPoint{day(18), 12000}, DayPoint{day(19), 11500}, DayPoint{day(20), 9000},
			DayPoint{day(21), 8000}),
		series("p2", "Bob",
			DayPoint{day(15), 4000}, DayPoint{day(16), 15000}, DayPoint{day(17), 5000},
			DayPoint{day(18), 6000}, DayPoint{day(19), 14000}, DayPoint{day(20), 16000},
			DayPoint{day(21), 17000}),
	}

	stats := Weekly(input)

	// Record du jour : Bob avec 17000 le 21
	if stats.DailyChampion == nil {
		t.Fatal("DailyChampion is nil")
	}
	if stats.DailyChampion.ParticipantName != "Bob" || stats.DailyChampion.Steps != 17000 || stats.DailyChampion.Date != "2024-01-21" {
		t.Errorf("DailyChampion = %+v", stats.DailyChampion)
	}

	// Alice a la plus faible variance
	if stats.MostConsistent.Name != "Alice" {
		t.Errorf("MostConsistent = %+v, want Alice", stats.MostConsistent)
	}

	// Progression premier->dernier jour : Bob +13000, Alice -4000
	if stats.BiggestImprover.Name != "Bob" || stats.BiggestImprover.Value != 13000 {
		t.Errorf("BiggestImprover = %+v, want Bob +13000", stats.BiggestImprover)
	}

	// Week-end : Bob 33000 contre Alice 17000
	if stats.WeekendLeader.Name != "Bob" {
		t.Errorf("WeekendLeader = %+v, want Bob", stats.WeekendLeader)
	}
	// Semaine : Alice 59500 contre Bob 44000
	if stats.WeekdayLeader.Name != "Alice" {
		t.Errorf("WeekdayLeader = %+v, want Alice", stats.WeekdayLeader)
	}

	// Jour le plus actif : le 19 (25500) est battu par le 20 (25000) ? Non :
	// 15:16000, 16:26000, 17:18000, 18:18000, 19:25500, 20:25000, 21:25000
	if stats.MostActiveDay != "2024-01-16" || stats.MostActiveDaySum != 26000 {
		t.Errorf("MostActiveDay = %s (%d), want 2024-01-16 (26000)", stats.MostActiveDay, stats.MostActiveDaySum)
	}

	// Les deux participants ont leurs 7 jours
	if stats.ParticipationRate != 100 {
		t.Errorf("ParticipationRate = %v, want 100", stats.ParticipationRate)
	}

	// Moyenne des 3 premières dates : 20000 ; des 3 dernières : 25166.67 -> up
	if stats.Momentum != "up" {
		t.Errorf("Momentum = %q, want up", stats.Momentum)
	}

	// 9 des 14 couples (participant, jour) atteignent 10000 pas
	wantGoal := 9.0 / 14.0 * 100
	if diff := stats.GoalRate - wantGoal; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("GoalRate = %v, want %v", stats.GoalRate, wantGoal)
	}

	// Victoires : Alice les 15, 17, 18 ; Bob les 16, 19, 20, 21
	if len(stats.DailyWins) != 2 {
		t.Fatalf("DailyWins = %+v", stats.DailyWins)
	}
	if stats.DailyWins[0].ParticipantName != "Bob" || stats.DailyWins[0].Wins != 4 {
		t.Errorf("DailyWins[0] = %+v, want Bob with 4", stats.DailyWins[0])
	}
	if stats.DailyWins[1].ParticipantName != "Alice" || stats.DailyWins[1].Wins != 3 {
		t.Errorf("DailyWins[1] = %+v, want Alice with 3", stats.DailyWins[1])
	}
}

func TestWeeklyStatsEmpty(t *testing.T) {
	stats := Weekly(nil)

	if stats.DailyChampion != nil {
		t.Errorf("DailyChampion = %+v, want nil", stats.DailyChampion)
	}
	if stats.MostConsistent.Name != "N/A" {
		t.Errorf("MostConsistent = %+v, want N/A", stats.MostConsistent)
	}
	if stats.Momentum != "steady" {
		t.Errorf("Momentum = %q, want steady", stats.Momentum)
	}
	if stats.ParticipationRate != 0 || stats.GoalRate != 0 {
		t.Errorf("rates = %v / %v, want 0 / 0", stats.ParticipationRate, stats.GoalRate)
	}
}

func TestLowestVarianceRequiresEnoughDays(t *testing.T) {
	input := []Series{
		series("p1", "Alice", DayPoint{day(15), 5000}, DayPoint{day(16), 5000}),
	}
	if got := lowestVariance(input, 3); got.Name != "N/A" {
		t.Errorf("lowestVariance with 2 days = %+v, want N/A", got)
	}
	if got := lowestVariance(input, 2); got.Name != "Alice" || got.Value != 0 {
		t.Errorf("lowestVariance = %+v, want Alice with 0", got)
	}
}

func TestLowestVarianceTieIsNA(t *testing.T) {
	input := []Series{
		series("p1", "Alice", DayPoint{day(15), 5000}, DayPoint{day(16), 5000}, DayPoint{day(17), 5000}),
		series("p2", "Bob", DayPoint{day(15), 7000}, DayPoint{day(16), 7000}, DayPoint{day(17), 7000}),
	}
	if got := lowestVariance(input, 3); got.Name != "N/A" {
		t.Errorf("tied variance = %+v, want N/A", got)
	}
}

func TestTiedDaysHaveNoWinnerAndBreakStreaks(t *testing.T) {
	input := []Series{
		series("p1", "Alice",
			DayPoint{day(15), 9000}, DayPoint{day(16), 8000}, DayPoint{day(17), 9000},
			DayPoint{day(18), 9000}),
		series("p2", "Bob",
			DayPoint{day(15), 5000}, DayPoint{day(16), 8000}, DayPoint{day(17), 5000},
			DayPoint{day(18), 5000}),
	}

	winners := winnerByDate(input)
	if _, ok := winners["2024-01-16"]; ok {
		t.Error("a tied day must not have a winner")
	}

	// La série d'Alice est cassée par l'égalité du 16 : 15 seul, puis 17-18
	streak := longestWinStreak(input)
	if streak.ParticipantName != "Alice" || streak.Length != 2 {
		t.Errorf("streak = %+v, want Alice with 2", streak)
	}
}

func TestLongestWinStreakAcrossWeeks(t *testing.T) {
	// Les dates consécutives comptent même à cheval sur deux semaines
	input := []Series{
		series("p1", "Alice",
			DayPoint{day(20), 9000}, DayPoint{day(21), 9000}, DayPoint{day(22), 9000},
			DayPoint{day(25), 9000}),
		series("p2", "Bob",
			DayPoint{day(20), 5000}, DayPoint{day(21), 5000}, DayPoint{day(22), 5000},
			DayPoint{day(25), 5000}),
	}

	streak := longestWinStreak(input)
	if streak.ParticipantName != "Alice" || streak.Length != 3 {
		t.Errorf("streak = %+v, want Alice with 3 (the 25th is not consecutive)", streak)
	}
}

func TestMomentumDown(t *testing.T) {
	input := []Series{
		series("p1", "Alice",
			DayPoint{day(15), 20000}, DayPoint{day(16), 20000}, DayPoint{day(17), 20000},
			DayPoint{day(18), 10000}, DayPoint{day(19), 5000}, DayPoint{day(20), 5000},
			DayPoint{day(21), 5000}),
	}
	if got := momentum(input); got != "down" {
		t.Errorf("momentum = %q, want down", got)
	}
}

func TestMomentumSteadyWithinThreshold(t *testing.T) {
	input := []Series{
		series("p1", "Alice",
			DayPoint{day(15), 10000}, DayPoint{day(16), 10000}, DayPoint{day(17), 10000},
			DayPoint{day(18), 10000}, DayPoint{day(19), 10200}, DayPoint{day(20), 10200},
			DayPoint{day(21), 10000}),
	}
	if got := momentum(input); got != "steady" {
		t.Errorf("momentum = %q, want steady (2%% change is below the threshold)", got)
	}
}

func TestAllTimeStats(t *testing.T) {
	input := []Series{
		series("p1", "Alice",
			DayPoint{day(15), 12000}, DayPoint{day(16), 11000}, DayPoint{day(17), 13000},
			DayPoint{day(18), 12000}, DayPoint{day(19), 11500}, DayPoint{day(20), 9000},
			DayPoint{day(21), 8000}),
		series("p2", "Bob",
			DayPoint{day(15), 4000}, DayPoint{day(16), 5000}, DayPoint{day(17), 5000}),
	}

	stats := AllTime(input)

	if stats.DailyChampion == nil || stats.DailyChampion.ParticipantName != "Alice" || stats.DailyChampion.Steps != 13000 {
		t.Errorf("DailyChampion = %+v", stats.DailyChampion)
	}

	// Alice gagne toutes les dates communes puis les siennes : 7 consécutives
	if stats.LongestWinStreak.ParticipantName != "Alice" || stats.LongestWinStreak.Length != 7 {
		t.Errorf("LongestWinStreak = %+v, want Alice with 7", stats.LongestWinStreak)
	}

	// Bob n'a que 3 jours : sous le minimum de 7 pour la régularité cumulée
	if stats.ConsistencyChampion.Name != "Alice" {
		t.Errorf("ConsistencyChampion = %+v, want Alice", stats.ConsistencyChampion)
	}

	// Assiduité : Alice 7/7 jours actifs
	if stats.DedicationLeader.Name != "Alice" || stats.DedicationLeader.Value != 100 {
		t.Errorf("DedicationLeader = %+v, want Alice at 100", stats.DedicationLeader)
	}

	// Jour de pointe : mercredi 17 (13000+5000) bat les autres jours
	if stats.PeakWeekday != "Wednesday" || stats.PeakWeekdaySum != 18000 {
		t.Errorf("PeakWeekday = %s (%d), want Wednesday (18000)", stats.PeakWeekday, stats.PeakWeekdaySum)
	}
}

func TestDedicationLeaderEmpty(t *testing.T) {
	if got := dedicationLeader(nil); got.Name != "N/A" {
		t.Errorf("dedicationLeader(nil) = %+v, want N/A", got)
	}
}
