// Package scoring implémente le calcul des rangs et des points d'une semaine
// de challenge, ainsi que l'agrégation du classement cumulé.
//
// Barème à rang inversé : sur N entrées, le premier reçoit N points et le
// dernier exactement 1 point. Le recalcul porte toujours sur la semaine
// entière : modifier les pas d'un seul participant change le rang et les
// points de tous les autres.
package scoring

import (
	"cmp"
	"slices"
	"time"
)

// WeekStanding est une entrée de classement hebdomadaire en cours de calcul.
// JoinedAt est la date de création du participant : c'est la clé de
// départage des égalités de pas (le plus ancien d'abord, puis l'id).
type WeekStanding struct {
	EntryID       string
	ParticipantID string
	Steps         int
	JoinedAt      time.Time
	Rank          int
	Points        int
}

// RankWeek trie les entrées par pas décroissants et assigne rang et points.
// Retourne une copie triée ; l'entrée d'origine n'est pas modifiée.
func RankWeek(entries []WeekStanding) []WeekStanding {
	if len(entries) == 0 {
		return nil
	}

	ranked := make([]WeekStanding, len(entries))
	copy(ranked, entries)

	slices.SortFunc(ranked, func(a, b WeekStanding) int {
		if c := cmp.Compare(b.Steps, a.Steps); c != 0 {
			return c
		}
		// Égalité de pas : départage déterministe par ancienneté puis id
		if !a.JoinedAt.Equal(b.JoinedAt) {
			if a.JoinedAt.Before(b.JoinedAt) {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.ParticipantID, b.ParticipantID)
	})

	total := len(ranked)
	for i := range ranked {
		ranked[i].Rank = i + 1
		ranked[i].Points = total - i
	}
	return ranked
}

// DailyAmount est la part journalière issue de la ventilation d'un total
// hebdomadaire saisi manuellement.
type DailyAmount struct {
	Date     time.Time
	Steps    int
	Distance float64
}

// DistributeTotal ventile un total hebdomadaire sur les dates fournies :
// floor(total/n) pas par jour, le reste (total mod n) ajouté un par un aux
// jours les plus anciens, et la distance divisée à parts égales. La somme
// des parts redonne exactement le total, ce qui garde DailyStepRecord comme
// source de vérité même pour les saisies manuelles.
func DistributeTotal(totalSteps int, totalDistance float64, days []time.Time) []DailyAmount {
	if len(days) == 0 {
		return nil
	}

	sorted := make([]time.Time, len(days))
	copy(sorted, days)
	slices.SortFunc(sorted, func(a, b time.Time) int { return a.Compare(b) })

	base := totalSteps / len(sorted)
	remainder := totalSteps % len(sorted)
	perDayDistance := totalDistance / float64(len(sorted))

	amounts := make([]DailyAmount, len(sorted))
	for i, d := range sorted {
		steps := base
		if i < remainder {
			steps++
		}
		amounts[i] = DailyAmount{Date: d, Steps: steps, Distance: perDayDistance}
	}
	return amounts
}

// OverallRow est une ligne (participant, semaine) utilisée pour le
// classement cumulé.
type OverallRow struct {
	ParticipantID   string
	ParticipantName string
	JoinedAt        time.Time
	Steps           int
	Distance        float64
	Points          int
}

// OverallTotals groupe les lignes hebdomadaires par participant, somme pas,
// distance et points, compte les semaines jouées puis classe par points
// décroissants (départage : ancienneté puis id, comme RankWeek).
// Pur repli de lecture : recalculé à chaque consultation.
func OverallTotals(rows []OverallRow) []OverallTotal {
	byParticipant := make(map[string]*OverallTotal)
	order := make([]string, 0)

	for _, row := range rows {
		acc, ok := byParticipant[row.ParticipantID]
		if !ok {
			acc = &OverallTotal{
				ParticipantID:   row.ParticipantID,
				ParticipantName: row.ParticipantName,
				JoinedAt:        row.JoinedAt,
			}
			byParticipant[row.ParticipantID] = acc
			order = append(order, row.ParticipantID)
		}
		acc.TotalSteps += row.Steps
		acc.TotalDistance += row.Distance
		acc.TotalPoints += row.Points
		acc.WeeksPlayed++
	}

	totals := make([]OverallTotal, 0, len(order))
	for _, id := range order {
		totals = append(totals, *byParticipant[id])
	}

	slices.SortFunc(totals, func(a, b OverallTotal) int {
		if c := cmp.Compare(b.TotalPoints, a.TotalPoints); c != 0 {
			return c
		}
		if !a.JoinedAt.Equal(b.JoinedAt) {
			if a.JoinedAt.Before(b.JoinedAt) {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.ParticipantID, b.ParticipantID)
	})

	for i := range totals {
		totals[i].Rank = i + 1
	}
	return totals
}

// OverallTotal est le cumul d'un participant sur toutes ses semaines.
type OverallTotal struct {
	ParticipantID   string
	ParticipantName string
	JoinedAt        time.Time
	TotalSteps      int
	TotalDistance   float64
	TotalPoints     int
	WeeksPlayed     int
	Rank            int
}
