package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/landrzz/StepUpLeaderboard/internal/cache"
	model "github.com/landrzz/StepUpLeaderboard/internal/models"
	"github.com/landrzz/StepUpLeaderboard/internal/scoring"
	"github.com/landrzz/StepUpLeaderboard/internal/store"
	"github.com/landrzz/StepUpLeaderboard/internal/utils"
)

// GetWeeklyLeaderboard récupère le classement d'une semaine de challenge,
// trié par rang
func GetWeeklyLeaderboard(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	challengeID := vars["id"]

	ctx := context.Background()
	if _, err := store.GetChallenge(ctx, challengeID); err != nil {
		if errors.Is(err, store.ErrWeekNotFound) {
			utils.ErrorSimple(w, http.StatusNotFound, "week not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not fetch challenge week", err)
		return
	}

	entries, err := store.GetWeeklyBoard(ctx, challengeID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query leaderboard", err)
		return
	}

	utils.Success(w, entries)
}

// GetOverallLeaderboard récupère le classement cumulé d'un groupe : totaux de
// pas, distance et points sur toutes les semaines jouées. Recalculé à la
// demande depuis les entrées hebdomadaires, avec lecture à travers le cache
// quand redis est configuré.
func GetOverallLeaderboard(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	groupID := vars["id"]

	ctx := context.Background()
	if _, err := store.GetGroup(ctx, groupID); err != nil {
		if errors.Is(err, store.ErrGroupNotFound) {
			utils.ErrorSimple(w, http.StatusNotFound, "group not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not fetch group", err)
		return
	}

	if entries, ok := cache.GetOverall(ctx, groupID); ok {
		utils.Success(w, entries)
		return
	}

	rows, err := store.GetOverallRows(ctx, groupID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query overall leaderboard", err)
		return
	}

	totals := scoring.OverallTotals(rows)
	entries := make([]model.OverallEntry, 0, len(totals))
	for _, t := range totals {
		entries = append(entries, model.OverallEntry{
			ParticipantID:   t.ParticipantID,
			ParticipantName: t.ParticipantName,
			TotalSteps:      t.TotalSteps,
			TotalDistance:   t.TotalDistance,
			TotalPoints:     t.TotalPoints,
			WeeksPlayed:     t.WeeksPlayed,
			Rank:            t.Rank,
		})
	}

	cache.SetOverall(ctx, groupID, entries)
	utils.Success(w, entries)
}
