// Package week dérive les bornes canoniques lundi-dimanche et le numéro de
// semaine ISO à partir d'un ensemble de dates calendaires.
package week

import (
	"fmt"
	"sort"
	"time"
)

const dateLayout = "2006-01-02"

// Resolution décrit la semaine cible d'un upload ou d'une saisie manuelle.
type Resolution struct {
	Start      time.Time
	End        time.Time
	WeekNumber int
	Year       int
}

// Dates retourne les 7 dates de la semaine, du lundi au dimanche.
func (r Resolution) Dates() []time.Time {
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = r.Start.AddDate(0, 0, i)
	}
	return days
}

// isoWeekday retourne le jour de semaine en convention ISO : lundi=1 ... dimanche=7.
func isoWeekday(d time.Time) int {
	wd := int(d.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// MondayBounds calcule le lundi et le dimanche de la semaine contenant d.
// Un dimanche est rattaché à la semaine qui le précède (lundi = d - 6 jours).
func MondayBounds(d time.Time) (time.Time, time.Time) {
	d = truncate(d)
	var start time.Time
	if d.Weekday() == time.Sunday {
		start = d.AddDate(0, 0, -6)
	} else {
		start = d.AddDate(0, 0, -(isoWeekday(d) - 1))
	}
	return start, start.AddDate(0, 0, 6)
}

// ISOWeek calcule le numéro de semaine ISO et l'année associée en décalant la
// date vers son jeudi : c'est l'année du jeudi qui compte, ce qui gère
// correctement les semaines à cheval sur deux années.
func ISOWeek(d time.Time) (year, weekNumber int) {
	d = truncate(d)
	thursday := d.AddDate(0, 0, 4-isoWeekday(d))
	weekNumber = (thursday.YearDay() + 6) / 7
	return thursday.Year(), weekNumber
}

// Resolve détermine la semaine cible à partir des dates (format YYYY-MM-DD)
// issues des colonnes d'un CSV. La date la plus ancienne sert d'ancre.
// Un ensemble vide est une erreur : on ne devine jamais la semaine d'un
// upload sans dates.
func Resolve(dates []string) (Resolution, error) {
	if len(dates) == 0 {
		return Resolution{}, fmt.Errorf("no dates to resolve a week from")
	}

	parsed := make([]time.Time, 0, len(dates))
	for _, s := range dates {
		d, err := time.Parse(dateLayout, s)
		if err != nil {
			return Resolution{}, fmt.Errorf("invalid date %q: %w", s, err)
		}
		parsed = append(parsed, d)
	}
	sort.Slice(parsed, func(i, j int) bool { return parsed[i].Before(parsed[j]) })

	return FromDate(parsed[0]), nil
}

// FromDate résout la semaine contenant la date donnée (utilisé pour les
// saisies manuelles sans dates : l'appelant passe la date courante).
func FromDate(d time.Time) Resolution {
	start, end := MondayBounds(d)
	year, number := ISOWeek(d)
	return Resolution{Start: start, End: end, WeekNumber: number, Year: year}
}

// DatesBetween liste les dates d'une période incluse (utilisé pour la
// ventilation des saisies manuelles sur les 7 jours d'un challenge).
func DatesBetween(start, end time.Time) []time.Time {
	var dates []time.Time
	for d := truncate(start); !d.After(truncate(end)); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

func truncate(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
