package store

import (
	"context"

	"github.com/landrzz/StepUpLeaderboard/internal/analytics"
	"github.com/landrzz/StepUpLeaderboard/internal/database"
	"github.com/landrzz/StepUpLeaderboard/internal/scanner"
)

// GetWeekSeries retourne les séries journalières d'une semaine, une par
// participant non-seed, via array_agg de tableaux parallèles (pas, dates)
// ordonnés par date.
func GetWeekSeries(ctx context.Context, challengeID string) ([]analytics.Series, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT d.participant_id, p.name,
			array_agg(d.steps ORDER BY d.step_date),
			array_agg(to_char(d.step_date, 'YYYY-MM-DD') ORDER BY d.step_date)
		FROM daily_steps d
		JOIN participants p ON p.id = d.participant_id
		WHERE d.challenge_id = $1 AND NOT p.is_seed
		GROUP BY d.participant_id, p.name
	`, challengeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSeries(rows)
}

// GetGroupSeries retourne les séries journalières de tout l'historique d'un
// groupe, toutes semaines confondues, pour les statistiques cumulées.
func GetGroupSeries(ctx context.Context, groupID string) ([]analytics.Series, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT d.participant_id, p.name,
			array_agg(d.steps ORDER BY d.step_date),
			array_agg(to_char(d.step_date, 'YYYY-MM-DD') ORDER BY d.step_date)
		FROM daily_steps d
		JOIN participants p ON p.id = d.participant_id
		JOIN weekly_challenges c ON c.id = d.challenge_id
		WHERE c.group_id = $1 AND NOT p.is_seed
		GROUP BY d.participant_id, p.name
	`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSeries(rows)
}

type seriesRows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

func collectSeries(rows seriesRows) ([]analytics.Series, error) {
	var series []analytics.Series
	for rows.Next() {
		s, err := scanner.ScanDailySeries(rows)
		if err != nil {
			return nil, err
		}
		series = append(series, *s)
	}
	return series, rows.Err()
}
