package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/landrzz/StepUpLeaderboard/internal/database"
	"github.com/landrzz/StepUpLeaderboard/internal/logger"
	model "github.com/landrzz/StepUpLeaderboard/internal/models"
	"github.com/landrzz/StepUpLeaderboard/internal/scanner"
)

const participantColumns = `id, group_id, user_id, name, email, is_seed, created_at`

// Domaines réservés des emails synthétiques. Seuls les participants marqués
// is_seed sont exclus des classements ; ces domaines ne servent qu'à tracer
// l'origine d'un enregistrement.
const (
	uploadedEmailDomain  = "uploaded.com"
	generatedEmailDomain = "generated.com"
)

// ListParticipants retourne les participants d'un groupe par ordre
// d'arrivée.
func ListParticipants(ctx context.Context, groupID string) ([]model.Participant, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT `+participantColumns+`
		FROM participants
		WHERE group_id = $1
		ORDER BY created_at ASC
	`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []model.Participant
	for rows.Next() {
		p, err := scanner.ScanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, *p)
	}
	return participants, rows.Err()
}

// GetParticipant retourne un participant du groupe donné.
// ErrParticipantNotFound si l'id n'existe pas ou appartient à un autre
// groupe.
func GetParticipant(ctx context.Context, groupID, participantID string) (*model.Participant, error) {
	row := database.DB.QueryRow(ctx, `
		SELECT `+participantColumns+`
		FROM participants
		WHERE id = $1 AND group_id = $2
	`, participantID, groupID)

	p, err := scanner.ScanParticipant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}
	return p, nil
}

// CreateParticipant insère un participant manuel. Sans email fourni, un
// email synthétique @generated.com est posé pour la traçabilité.
func CreateParticipant(ctx context.Context, groupID, name, email string, userID *string) (*model.Participant, error) {
	if email == "" {
		email = syntheticEmail(name, generatedEmailDomain)
	}

	row := database.DB.QueryRow(ctx, `
		INSERT INTO participants(id, group_id, user_id, name, email, is_seed, created_at)
		VALUES($1, $2, $3, $4, $5, false, NOW())
		ON CONFLICT (group_id, user_id) WHERE user_id IS NOT NULL
		DO UPDATE SET name = EXCLUDED.name
		RETURNING `+participantColumns,
		uuid.NewString(), groupID, userID, name, email,
	)

	p, err := scanner.ScanParticipant(row)
	if err != nil {
		return nil, fmt.Errorf("could not create participant: %w", err)
	}
	return p, nil
}

// FindOrCreateParticipantByName cherche un participant par nom (insensible à
// la casse, au mieux : les noms ne sont pas garantis uniques dans un groupe)
// et le crée avec un email synthétique @uploaded.com s'il est inconnu.
// Utilisé par l'ingestion CSV.
func FindOrCreateParticipantByName(ctx context.Context, groupID, name string) (*model.Participant, error) {
	row := database.DB.QueryRow(ctx, `
		SELECT `+participantColumns+`
		FROM participants
		WHERE group_id = $1 AND LOWER(name) = LOWER($2)
		ORDER BY created_at ASC
		LIMIT 1
	`, groupID, name)

	p, err := scanner.ScanParticipant(row)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	return CreateParticipant(ctx, groupID, name, syntheticEmail(name, uploadedEmailDomain), nil)
}

// DeleteParticipant supprime un participant et toutes ses données, dans
// l'ordre imposé : daily_steps, puis leaderboard_entries, puis le
// participant (cascade explicite, pas de ON DELETE CASCADE ici).
// Retourne les ids des semaines touchées : chacune doit être recalculée par
// l'appelant puisque les rangs de tous les autres participants changent.
func DeleteParticipant(ctx context.Context, groupID, participantID string) ([]string, error) {
	if _, err := GetParticipant(ctx, groupID, participantID); err != nil {
		return nil, err
	}

	rows, err := database.DB.Query(ctx, `
		SELECT DISTINCT challenge_id
		FROM leaderboard_entries
		WHERE participant_id = $1
	`, participantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var touched []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		touched = append(touched, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if _, err := database.DB.Exec(ctx, `DELETE FROM daily_steps WHERE participant_id = $1`, participantID); err != nil {
		return nil, fmt.Errorf("could not delete daily steps: %w", err)
	}
	if _, err := database.DB.Exec(ctx, `DELETE FROM leaderboard_entries WHERE participant_id = $1`, participantID); err != nil {
		return nil, fmt.Errorf("could not delete leaderboard entries: %w", err)
	}
	if _, err := database.DB.Exec(ctx, `DELETE FROM participants WHERE id = $1`, participantID); err != nil {
		return nil, fmt.Errorf("could not delete participant: %w", err)
	}

	logger.Info("Deleted participant %s from group %s (%d weeks to recalculate)", participantID, groupID, len(touched))

	return touched, nil
}

// syntheticEmail construit un email traçable à partir du nom.
func syntheticEmail(name, domain string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '.'
		}
	}, slug)
	slug = strings.Trim(slug, ".")
	if slug == "" {
		slug = "participant"
	}
	return fmt.Sprintf("%s@%s", slug, domain)
}
