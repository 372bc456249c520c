package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/landrzz/StepUpLeaderboard/internal/store"
	"github.com/landrzz/StepUpLeaderboard/internal/utils"
)

// ListParticipantDays récupère les pas journaliers d'un participant pour une
// semaine de challenge, triés par date. C'est la lecture de contrôle après
// un upload ou une saisie : la somme de ces jours doit redonner l'entrée de
// classement du participant.
func ListParticipantDays(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	challengeID := vars["challengeId"]
	participantID := vars["id"]

	ctx := context.Background()
	challenge, err := store.GetChallenge(ctx, challengeID)
	if err != nil {
		if errors.Is(err, store.ErrWeekNotFound) {
			utils.ErrorSimple(w, http.StatusNotFound, "week not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not fetch challenge week", err)
		return
	}

	if _, err := store.GetParticipant(ctx, challenge.GroupID, participantID); err != nil {
		if errors.Is(err, store.ErrParticipantNotFound) {
			utils.ErrorSimple(w, http.StatusNotFound, "participant not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not fetch participant", err)
		return
	}

	days, err := store.ListDailySteps(ctx, challengeID, participantID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query daily steps", err)
		return
	}

	utils.Success(w, days)
}
