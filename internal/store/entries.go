package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/landrzz/StepUpLeaderboard/internal/database"
	model "github.com/landrzz/StepUpLeaderboard/internal/models"
	"github.com/landrzz/StepUpLeaderboard/internal/scanner"
	"github.com/landrzz/StepUpLeaderboard/internal/scoring"
)

// UpsertEntry écrit l'entrée de classement d'un participant pour une semaine.
// Clé d'upsert : (challenge_id, participant_id), donc un participant a au
// plus une entrée par semaine. Rang et points restent à zéro ici : ils sont
// posés par le recalcul de la semaine entière.
func UpsertEntry(ctx context.Context, challengeID, participantID string, steps int, distance float64) (*model.LeaderboardEntry, error) {
	row := database.DB.QueryRow(ctx, `
		INSERT INTO leaderboard_entries(id, challenge_id, participant_id, steps, distance, points, rank, created_at, updated_at)
		VALUES($1, $2, $3, $4, $5, 0, 0, NOW(), NOW())
		ON CONFLICT (challenge_id, participant_id)
		DO UPDATE SET steps = EXCLUDED.steps, distance = EXCLUDED.distance, updated_at = NOW()
		RETURNING id, challenge_id, participant_id, NULL::text, steps, distance, points, rank, created_at, updated_at`,
		uuid.NewString(), challengeID, participantID, steps, distance,
	)

	e, err := scanner.ScanEntry(row)
	if err != nil {
		return nil, fmt.Errorf("could not upsert leaderboard entry: %w", err)
	}
	return e, nil
}

// EntryExists indique si le participant a déjà une entrée pour la semaine.
func EntryExists(ctx context.Context, challengeID, participantID string) (bool, error) {
	var exists bool
	err := database.DB.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM leaderboard_entries
			WHERE challenge_id = $1 AND participant_id = $2
		)
	`, challengeID, participantID).Scan(&exists)
	return exists, err
}

// GetEntry retourne une entrée de classement par id, nom du participant
// joint. ErrEntryNotFound si l'id n'existe pas.
func GetEntry(ctx context.Context, entryID string) (*model.LeaderboardEntry, error) {
	row := database.DB.QueryRow(ctx, `
		SELECT e.id, e.challenge_id, e.participant_id, p.name,
			e.steps, e.distance, e.points, e.rank,
			e.created_at, e.updated_at
		FROM leaderboard_entries e
		JOIN participants p ON p.id = e.participant_id
		WHERE e.id = $1
	`, entryID)

	e, err := scanner.ScanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return e, nil
}

// GetWeeklyBoard retourne le classement d'une semaine, trié par rang, noms
// joints. Les participants seed sont exclus de tous les classements.
func GetWeeklyBoard(ctx context.Context, challengeID string) ([]model.LeaderboardEntry, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT e.id, e.challenge_id, e.participant_id, p.name,
			e.steps, e.distance, e.points, e.rank,
			e.created_at, e.updated_at
		FROM leaderboard_entries e
		JOIN participants p ON p.id = e.participant_id
		WHERE e.challenge_id = $1 AND NOT p.is_seed
		ORDER BY e.rank ASC
	`, challengeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.LeaderboardEntry
	for rows.Next() {
		e, err := scanner.ScanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// GetStandings retourne les entrées d'une semaine avec l'ancienneté du
// participant, prêtes pour le recalcul des rangs. Même filtre seed que le
// classement : un seed ne doit ni apparaître ni décaler les rangs.
func GetStandings(ctx context.Context, challengeID string) ([]scoring.WeekStanding, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT e.id, e.participant_id, e.steps, p.created_at
		FROM leaderboard_entries e
		JOIN participants p ON p.id = e.participant_id
		WHERE e.challenge_id = $1 AND NOT p.is_seed
	`, challengeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var standings []scoring.WeekStanding
	for rows.Next() {
		s, err := scanner.ScanStanding(rows)
		if err != nil {
			return nil, err
		}
		standings = append(standings, *s)
	}
	return standings, rows.Err()
}

// UpdateEntryScore persiste le rang et les points recalculés d'une entrée.
func UpdateEntryScore(ctx context.Context, entryID string, rank, points int) error {
	tag, err := database.DB.Exec(ctx, `
		UPDATE leaderboard_entries
		SET rank = $2, points = $3, updated_at = NOW()
		WHERE id = $1
	`, entryID, rank, points)
	if err != nil {
		return fmt.Errorf("could not update entry score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// GetOverallRows retourne toutes les lignes (participant, semaine) d'un
// groupe pour l'agrégation du classement cumulé, seeds exclus.
func GetOverallRows(ctx context.Context, groupID string) ([]scoring.OverallRow, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT e.participant_id, p.name, p.created_at,
			e.steps, e.distance, e.points
		FROM leaderboard_entries e
		JOIN participants p ON p.id = e.participant_id
		JOIN weekly_challenges c ON c.id = e.challenge_id
		WHERE c.group_id = $1 AND NOT p.is_seed
	`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var overall []scoring.OverallRow
	for rows.Next() {
		o, err := scanner.ScanOverallRow(rows)
		if err != nil {
			return nil, err
		}
		overall = append(overall, *o)
	}
	return overall, rows.Err()
}
