package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/landrzz/StepUpLeaderboard/internal/analytics"
	"github.com/landrzz/StepUpLeaderboard/internal/store"
	"github.com/landrzz/StepUpLeaderboard/internal/utils"
)

// GetWeeklyStats calcule les statistiques d'une semaine de challenge depuis
// les pas journaliers : champion du jour, régularité, progression, momentum,
// répartition week-end/semaine et victoires journalières
func GetWeeklyStats(w http.ResponseWriter, r *http.Request) {
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

	series, err := store.GetWeekSeries(ctx, challengeID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query daily steps", err)
		return
	}

	utils.Success(w, analytics.Weekly(series))
}

// GetAllTimeStats calcule les statistiques cumulées d'un groupe sur tout son
// historique : record journalier, plus longue série de victoires, assiduité
// et jour de pointe
func GetAllTimeStats(w http.ResponseWriter, r *http.Request) {
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

	series, err := store.GetGroupSeries(ctx, groupID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query daily steps", err)
		return
	}

	utils.Success(w, analytics.AllTime(series))
}
