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
)

const groupColumns = `id, name, description, created_by, is_active, created_at, updated_at`

// CreateGroup insère un nouveau groupe actif.
func CreateGroup(ctx context.Context, name, description, createdBy string) (*model.Group, error) {
	row := database.DB.QueryRow(ctx, `
		INSERT INTO groups(id, name, description, created_by, is_active, created_at, updated_at)
		VALUES($1, $2, NULLIF($3, ''), $4, true, NOW(), NOW())
		RETURNING `+groupColumns,
		uuid.NewString(), name, description, createdBy,
	)

	group, err := scanner.ScanGroup(row)
	if err != nil {
		return nil, fmt.Errorf("could not create group: %w", err)
	}
	return group, nil
}

// GetGroup retourne un groupe par id.
func GetGroup(ctx context.Context, groupID string) (*model.Group, error) {
	row := database.DB.QueryRow(ctx, `
		SELECT `+groupColumns+`
		FROM groups
		WHERE id = $1
	`, groupID)

	group, err := scanner.ScanGroup(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

// DeleteGroup supprime un groupe. La cascade vers participants, challenges
// et entrées est assurée par le schéma (ON DELETE CASCADE), contrairement à
// la suppression d'un participant qui est explicite.
func DeleteGroup(ctx context.Context, groupID string) error {
	tag, err := database.DB.Exec(ctx, `DELETE FROM groups WHERE id = $1`, groupID)
	if err != nil {
		return fmt.Errorf("could not delete group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrGroupNotFound
	}
	return nil
}

// ListChallenges retourne les semaines d'un groupe, la plus récente d'abord.
func ListChallenges(ctx context.Context, groupID string) ([]model.WeeklyChallenge, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT id, group_id, title, week_start_date, week_end_date,
			week_number, year, is_active, created_at
		FROM weekly_challenges
		WHERE group_id = $1
		ORDER BY year DESC, week_number DESC
	`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var challenges []model.WeeklyChallenge
	for rows.Next() {
		c, err := scanner.ScanChallenge(rows)
		if err != nil {
			return nil, err
		}
		challenges = append(challenges, *c)
	}
	return challenges, rows.Err()
}
