package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/landrzz/StepUpLeaderboard/internal/database"
	model "github.com/landrzz/StepUpLeaderboard/internal/models"
	"github.com/landrzz/StepUpLeaderboard/internal/scanner"
)

// UpsertDailySteps écrit les pas journaliers d'un participant pour une
// semaine, ligne par ligne en succès partiel : une ligne en échec est
// consignée et la boucle continue (l'appelant peut rejouer le sous-ensemble
// en échec). Clé d'upsert : (challenge_id, participant_id, step_date), donc
// re-uploader les mêmes dates met à jour au lieu de dupliquer.
func UpsertDailySteps(ctx context.Context, challengeID, participantID string, days []model.DailyStepRecord) BatchResult {
	var result BatchResult

	for _, day := range days {
		key := day.StepDate.Format("2006-01-02")
		_, err := database.DB.Exec(ctx, `
			INSERT INTO daily_steps(id, challenge_id, participant_id, step_date, steps, distance)
			VALUES($1, $2, $3, $4, $5, $6)
			ON CONFLICT (challenge_id, participant_id, step_date)
			DO UPDATE SET steps = EXCLUDED.steps, distance = EXCLUDED.distance
		`, uuid.NewString(), challengeID, participantID, day.StepDate, day.Steps, day.Distance)

		if err != nil {
			result.fail(key, err)
			continue
		}
		result.ok(key)
	}

	return result
}

// DeleteDailySteps supprime les pas journaliers d'un participant pour une
// semaine (avant re-ventilation d'un total saisi manuellement).
func DeleteDailySteps(ctx context.Context, challengeID, participantID string) error {
	_, err := database.DB.Exec(ctx, `
		DELETE FROM daily_steps
		WHERE challenge_id = $1 AND participant_id = $2
	`, challengeID, participantID)
	if err != nil {
		return fmt.Errorf("could not delete daily steps: %w", err)
	}
	return nil
}

// SumDailySteps retourne la somme des pas et distances journaliers d'un
// participant pour une semaine. C'est la valeur de vérité de l'entrée de
// classement correspondante.
func SumDailySteps(ctx context.Context, challengeID, participantID string) (int, float64, error) {
	var steps int
	var distance float64
	err := database.DB.QueryRow(ctx, `
		SELECT COALESCE(SUM(steps), 0), COALESCE(SUM(distance), 0)
		FROM daily_steps
		WHERE challenge_id = $1 AND participant_id = $2
	`, challengeID, participantID).Scan(&steps, &distance)
	if err != nil {
		return 0, 0, err
	}
	return steps, distance, nil
}

// ListDailySteps retourne les pas journaliers d'un participant pour une
// semaine, triés par date.
func ListDailySteps(ctx context.Context, challengeID, participantID string) ([]model.DailyStepRecord, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT id, challenge_id, participant_id, step_date, steps, distance
		FROM daily_steps
		WHERE challenge_id = $1 AND participant_id = $2
		ORDER BY step_date ASC
	`, challengeID, participantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.DailyStepRecord
	for rows.Next() {
		d, err := scanner.ScanDailyStep(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *d)
	}
	return records, rows.Err()
}
