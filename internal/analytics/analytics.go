// Package analytics calcule les statistiques dérivées des pas journaliers :
// champion du jour, régularité, progression, répartition semaine/week-end,
// momentum, taux d'objectif et victoires journalières. Toutes les fonctions
// opèrent sur les DailyStepRecord, jamais sur l'agrégat hebdomadaire.
package analytics

import (
	"sort"
	"time"

	model "github.com/landrzz/StepUpLeaderboard/internal/models"
)

// Objectif journalier utilisé pour le taux d'atteinte.
const dailyGoalSteps = 10000

// Seuil relatif au-delà duquel le momentum est considéré en hausse/baisse.
const momentumThreshold = 0.05

const dateLayout = "2006-01-02"

// DayPoint est un jour d'activité d'un participant.
type DayPoint struct {
	Date  time.Time
	Steps int
}

// Series est l'historique journalier d'un participant, trié
// chronologiquement par l'appelant ou via Normalize.
type Series struct {
	ParticipantID string
	Name          string
	Days          []DayPoint
}

// Normalize trie les jours de chaque série par date croissante.
func Normalize(series []Series) {
	for i := range series {
		days := series[i].Days
		sort.Slice(days, func(a, b int) bool { return days[a].Date.Before(days[b].Date) })
	}
}

// Weekly calcule les statistiques d'une semaine de challenge.
func Weekly(series []Series) *model.WeeklyStats {
	Normalize(series)

	stats := &model.WeeklyStats{
		DailyChampion:   dailyChampion(series),
		MostConsistent:  lowestVariance(series, 3),
		BiggestImprover: biggestImprover(series),
		Momentum:        momentum(series),
		GoalRate:        goalRate(series),
		DailyWins:       dailyWins(series),
	}

	stats.WeekendLeader, stats.WeekdayLeader = weekendSplit(series)
	stats.MostActiveDay, stats.MostActiveDaySum = mostActiveDay(series)
	stats.ParticipationRate = participationRate(series)

	return stats
}

// AllTime calcule les statistiques sur tout l'historique du groupe.
func AllTime(series []Series) *model.AllTimeStats {
	Normalize(series)

	stats := &model.AllTimeStats{
		DailyChampion:       dailyChampion(series),
		ConsistencyChampion: lowestVariance(series, 7),
		DedicationLeader:    dedicationLeader(series),
		GoalRate:            goalRate(series),
		DailyWins:           dailyWins(series),
	}

	stats.LongestWinStreak = longestWinStreak(series)
	stats.PeakWeekday, stats.PeakWeekdaySum = peakWeekday(series)

	return stats
}

// dailyChampion retourne le couple (participant, jour) au plus grand nombre
// de pas. Égalité départagée par date puis nom pour rester déterministe.
func dailyChampion(series []Series) *model.DayAward {
	var best *model.DayAward
	for _, s := range series {
		for _, d := range s.Days {
			if best == nil ||
				d.Steps > best.Steps ||
				(d.Steps == best.Steps && d.Date.Format(dateLayout) < best.Date) {
				best = &model.DayAward{
					ParticipantName: s.Name,
					Date:            d.Date.Format(dateLayout),
					Steps:           d.Steps,
				}
			}
		}
	}
	return best
}

// lowestVariance retourne le participant à la plus faible variance de
// population parmi ceux ayant au moins minDays jours enregistrés.
// Données insuffisantes ou égalité parfaite : "N/A".
func lowestVariance(series []Series, minDays int) model.NamedValue {
	result := model.NamedValue{Name: "N/A"}
	bestSet := false
	tied := false

	for _, s := range series {
		if len(s.Days) < minDays {
			continue
		}
		v := populationVariance(s.Days)
		switch {
		case !bestSet || v < result.Value:
			result = model.NamedValue{Name: s.Name, Value: v}
			bestSet = true
			tied = false
		case v == result.Value:
			tied = true
		}
	}

	if !bestSet || tied {
		return model.NamedValue{Name: "N/A"}
	}
	return result
}

func populationVariance(days []DayPoint) float64 {
	mean := 0.0
	for _, d := range days {
		mean += float64(d.Steps)
	}
	mean /= float64(len(days))

	variance := 0.0
	for _, d := range days {
		diff := float64(d.Steps) - mean
		variance += diff * diff
	}
	return variance / float64(len(days))
}

// biggestImprover compare les pas du premier et du dernier jour enregistrés
// (ordre chronologique, pas min/max) pour chaque participant ayant au moins
// 2 jours, et retourne la plus grande progression.
func biggestImprover(series []Series) model.NamedValue {
	result := model.NamedValue{Name: "N/A"}
	bestSet := false

	for _, s := range series {
		if len(s.Days) < 2 {
			continue
		}
		delta := float64(s.Days[len(s.Days)-1].Steps - s.Days[0].Steps)
		if !bestSet || delta > result.Value {
			result = model.NamedValue{Name: s.Name, Value: delta}
			bestSet = true
		}
	}
	return result
}

// weekendSplit partitionne les jours en week-end (samedi/dimanche) et
// semaine, puis retourne le meilleur participant de chaque partition.
func weekendSplit(series []Series) (weekend, weekday model.NamedValue) {
	weekend = model.NamedValue{Name: "N/A"}
	weekday = model.NamedValue{Name: "N/A"}

	for _, s := range series {
		weekendTotal, weekdayTotal := 0, 0
		for _, d := range s.Days {
			if d.Date.Weekday() == time.Saturday || d.Date.Weekday() == time.Sunday {
				weekendTotal += d.Steps
			} else {
				weekdayTotal += d.Steps
			}
		}
		if weekendTotal > 0 && float64(weekendTotal) > weekend.Value {
			weekend = model.NamedValue{Name: s.Name, Value: float64(weekendTotal)}
		}
		if weekdayTotal > 0 && float64(weekdayTotal) > weekday.Value {
			weekday = model.NamedValue{Name: s.Name, Value: float64(weekdayTotal)}
		}
	}
	return weekend, weekday
}

// mostActiveDay retourne la date dont la somme des pas de tous les
// participants est la plus élevée.
func mostActiveDay(series []Series) (string, int) {
	totals := groupTotalsByDate(series)
	if len(totals) == 0 {
		return "", 0
	}

	bestDate := ""
	bestSum := 0
	for _, t := range totals {
		if t.sum > bestSum || (t.sum == bestSum && (bestDate == "" || t.date < bestDate)) {
			bestDate = t.date
			bestSum = t.sum
		}
	}
	return bestDate, bestSum
}

// participationRate : jours actifs cumulés sur (participants × 7 jours).
func participationRate(series []Series) float64 {
	if len(series) == 0 {
		return 0
	}
	active := 0
	for _, s := range series {
		active += len(s.Days)
	}
	return float64(active) / float64(len(series)*7) * 100
}

type dateTotal struct {
	date string
	sum  int
}

// groupTotalsByDate somme les pas de tous les participants par date,
// trié par date croissante.
func groupTotalsByDate(series []Series) []dateTotal {
	byDate := make(map[string]int)
	for _, s := range series {
		for _, d := range s.Days {
			byDate[d.Date.Format(dateLayout)] += d.Steps
		}
	}

	totals := make([]dateTotal, 0, len(byDate))
	for date, sum := range byDate {
		totals = append(totals, dateTotal{date: date, sum: sum})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].date < totals[j].date })
	return totals
}

// momentum compare la moyenne des totaux de groupe des 3 premières dates
// enregistrées à celle des 3 dernières : "up", "down" ou "steady".
func momentum(series []Series) string {
	totals := groupTotalsByDate(series)
	if len(totals) < 2 {
		return "steady"
	}

	window := 3
	if len(totals) < window {
		window = len(totals)
	}

	first, last := 0.0, 0.0
	for i := 0; i < window; i++ {
		first += float64(totals[i].sum)
		last += float64(totals[len(totals)-window+i].sum)
	}
	first /= float64(window)
	last /= float64(window)

	if first == 0 {
		if last > 0 {
			return "up"
		}
		return "steady"
	}

	change := (last - first) / first
	switch {
	case change > momentumThreshold:
		return "up"
	case change < -momentumThreshold:
		return "down"
	default:
		return "steady"
	}
}

// goalRate : pourcentage des couples (participant, jour) à au moins
// 10 000 pas.
func goalRate(series []Series) float64 {
	total, reached := 0, 0
	for _, s := range series {
		for _, d := range s.Days {
			total++
			if d.Steps >= dailyGoalSteps {
				reached++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(reached) / float64(total) * 100
}

// winnerByDate retourne pour chaque date le participant au plus grand nombre
// de pas. Les dates où deux participants sont à égalité n'ont pas de
// vainqueur et cassent les séries.
func winnerByDate(series []Series) map[string]string {
	type contender struct {
		name  string
		steps int
		tied  bool
	}
	byDate := make(map[string]contender)

	for _, s := range series {
		for _, d := range s.Days {
			key := d.Date.Format(dateLayout)
			cur, ok := byDate[key]
			switch {
			case !ok || d.Steps > cur.steps:
				byDate[key] = contender{name: s.Name, steps: d.Steps}
			case d.Steps == cur.steps:
				cur.tied = true
				byDate[key] = cur
			}
		}
	}

	winners := make(map[string]string, len(byDate))
	for date, c := range byDate {
		if !c.tied {
			winners[date] = c.name
		}
	}
	return winners
}

// dailyWins compte les victoires journalières par participant, trié par
// nombre de victoires décroissant puis par nom.
func dailyWins(series []Series) []model.WinCount {
	winners := winnerByDate(series)
	counts := make(map[string]int)
	for _, name := range winners {
		counts[name]++
	}

	wins := make([]model.WinCount, 0, len(counts))
	for name, n := range counts {
		wins = append(wins, model.WinCount{ParticipantName: name, Wins: n})
	}
	sort.Slice(wins, func(i, j int) bool {
		if wins[i].Wins != wins[j].Wins {
			return wins[i].Wins > wins[j].Wins
		}
		return wins[i].ParticipantName < wins[j].ParticipantName
	})
	return wins
}

// longestWinStreak retourne la plus longue série de dates calendaires
// consécutives remportées par un même participant.
func longestWinStreak(series []Series) model.StreakAward {
	winners := winnerByDate(series)
	if len(winners) == 0 {
		return model.StreakAward{ParticipantName: "N/A"}
	}

	dates := make([]string, 0, len(winners))
	for d := range winners {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	best := model.StreakAward{ParticipantName: "N/A"}
	currentName := ""
	currentLen := 0
	var prevDate time.Time

	for _, ds := range dates {
		d, err := time.Parse(dateLayout, ds)
		if err != nil {
			continue
		}
		name := winners[ds]

		if name == currentName && currentLen > 0 && d.Sub(prevDate) == 24*time.Hour {
			currentLen++
		} else {
			currentName = name
			currentLen = 1
		}
		prevDate = d

		if currentLen > best.Length {
			best = model.StreakAward{ParticipantName: currentName, Length: currentLen}
		}
	}
	return best
}

// dedicationLeader : jours actifs du participant rapportés au maximum de
// jours actifs du groupe, le plus assidu gagne (taux de 100 par définition).
func dedicationLeader(series []Series) model.NamedValue {
	maxDays := 0
	for _, s := range series {
		if len(s.Days) > maxDays {
			maxDays = len(s.Days)
		}
	}
	if maxDays == 0 {
		return model.NamedValue{Name: "N/A"}
	}

	best := model.NamedValue{Name: "N/A"}
	for _, s := range series {
		rate := float64(len(s.Days)) / float64(maxDays) * 100
		if rate > best.Value {
			best = model.NamedValue{Name: s.Name, Value: rate}
		}
	}
	return best
}

// peakWeekday retourne le jour de semaine (lundi-dimanche) au plus grand
// total historique de pas.
func peakWeekday(series []Series) (string, int) {
	totals := make(map[time.Weekday]int)
	for _, s := range series {
		for _, d := range s.Days {
			totals[d.Date.Weekday()] += d.Steps
		}
	}
	if len(totals) == 0 {
		return "", 0
	}

	order := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	bestDay := ""
	bestSum := -1
	for _, wd := range order {
		if sum, ok := totals[wd]; ok && sum > bestSum {
			bestDay = wd.String()
			bestSum = sum
		}
	}
	return bestDay, bestSum
}
