package store

import (
	"context"

	"github.com/landrzz/StepUpLeaderboard/internal/logger"
	"github.com/landrzz/StepUpLeaderboard/internal/scoring"
)

// RecalculateWeek recalcule rangs et points de toutes les entrées d'une
// semaine. Toujours la semaine entière : toute mutation (upload, saisie,
// édition, suppression d'un participant) change potentiellement le rang de
// tout le monde. Persistance en succès partiel : une entrée en échec
// n'empêche pas les autres d'être mises à jour.
func RecalculateWeek(ctx context.Context, challengeID string) (BatchResult, error) {
	var result BatchResult

	standings, err := GetStandings(ctx, challengeID)
	if err != nil {
		return result, err
	}
	if len(standings) == 0 {
		logger.Warning("No entries to rank for challenge %s", challengeID)
		return result, nil
	}

	ranked := scoring.RankWeek(standings)
	for _, s := range ranked {
		if err := UpdateEntryScore(ctx, s.EntryID, s.Rank, s.Points); err != nil {
			result.fail(s.EntryID, err)
			continue
		}
		result.ok(s.EntryID)
	}

	logger.Info("Recalculated challenge %s: %d entries ranked, %d failed", challengeID, len(result.Succeeded), len(result.Failed))

	return result, nil
}
