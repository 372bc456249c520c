package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/landrzz/StepUpLeaderboard/internal/database"
	"github.com/landrzz/StepUpLeaderboard/internal/logger"
	model "github.com/landrzz/StepUpLeaderboard/internal/models"
	"github.com/landrzz/StepUpLeaderboard/internal/scanner"
	"github.com/landrzz/StepUpLeaderboard/internal/week"
)

const challengeColumns = `id, group_id, title, week_start_date, week_end_date, week_number, year, is_active, created_at`

// GetChallenge retourne une semaine de challenge par id.
func GetChallenge(ctx context.Context, challengeID string) (*model.WeeklyChallenge, error) {
	row := database.DB.QueryRow(ctx, `
		SELECT `+challengeColumns+`
		FROM weekly_challenges
		WHERE id = $1
	`, challengeID)

	c, err := scanner.ScanChallenge(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWeekNotFound
		}
		return nil, err
	}
	return c, nil
}

// FindOrCreateChallenge localise la semaine (group_id, week_number, year) ou
// la crée avec les bornes calculées. Les uploads sont idempotents : retomber
// sur une semaine existante est normal et juste signalé en warning.
func FindOrCreateChallenge(ctx context.Context, groupID string, res week.Resolution) (*model.WeeklyChallenge, error) {
	row := database.DB.QueryRow(ctx, `
		SELECT `+challengeColumns+`
		FROM weekly_challenges
		WHERE group_id = $1 AND week_number = $2 AND year = $3
	`, groupID, res.WeekNumber, res.Year)

	c, err := scanner.ScanChallenge(row)
	if err == nil {
		logger.Warning("Week %d/%d already exists for group %s, updating instead of duplicating", res.WeekNumber, res.Year, groupID)
		return c, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	title := fmt.Sprintf("Week %d, %d", res.WeekNumber, res.Year)
	row = database.DB.QueryRow(ctx, `
		INSERT INTO weekly_challenges(id, group_id, title, week_start_date, week_end_date, week_number, year, is_active, created_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, true, NOW())
		ON CONFLICT (group_id, week_number, year)
		DO UPDATE SET is_active = true
		RETURNING `+challengeColumns,
		uuid.NewString(), groupID, title, res.Start, res.End, res.WeekNumber, res.Year,
	)

	c, err = scanner.ScanChallenge(row)
	if err != nil {
		return nil, fmt.Errorf("could not create weekly challenge: %w", err)
	}

	logger.Success("Created challenge %q for group %s", title, groupID)
	return c, nil
}
