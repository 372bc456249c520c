package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/landrzz/StepUpLeaderboard/internal/cache"
	"github.com/landrzz/StepUpLeaderboard/internal/store"
	"github.com/landrzz/StepUpLeaderboard/internal/utils"
)

// CreateGroup crée un nouveau groupe
func CreateGroup(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		CreatedBy   string `json:"createdBy"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if payload.Name == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "name is required")
		return
	}
	if payload.CreatedBy == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "createdBy is required")
		return
	}

	ctx := context.Background()
	group, err := store.CreateGroup(ctx, payload.Name, payload.Description, payload.CreatedBy)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create group", err)
		return
	}

	utils.Success(w, group)
}

// GetGroup récupère un groupe par son ID
func GetGroup(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	groupID := vars["id"]

	ctx := context.Background()
	group, err := store.GetGroup(ctx, groupID)
	if err != nil {
		if errors.Is(err, store.ErrGroupNotFound) {
			utils.ErrorSimple(w, http.StatusNotFound, "group not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not fetch group", err)
		return
	}

	utils.Success(w, group)
}

// DeleteGroup supprime un groupe et toutes ses données
func DeleteGroup(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	groupID := vars["id"]

	ctx := context.Background()
	if err := store.DeleteGroup(ctx, groupID); err != nil {
		if errors.Is(err, store.ErrGroupNotFound) {
			utils.ErrorSimple(w, http.StatusNotFound, "group not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not delete group", err)
		return
	}

	cache.InvalidateOverall(ctx, groupID)
	utils.Message(w, "group deleted successfully")
}

// ListParticipants récupère les participants d'un groupe
func ListParticipants(w http.ResponseWriter, r *http.Request) {
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

	participants, err := store.ListParticipants(ctx, groupID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query participants", err)
		return
	}

	utils.Success(w, participants)
}

// CreateParticipant ajoute un participant manuel à un groupe
func CreateParticipant(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	groupID := vars["id"]

	var payload struct {
		Name   string  `json:"name"`
		Email  string  `json:"email"`
		UserID *string `json:"userId"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if payload.Name == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "name is required")
		return
	}

	ctx := context.Background()
	if _, err := store.GetGroup(ctx, groupID); err != nil {
		if errors.Is(err, store.ErrGroupNotFound) {
			utils.ErrorSimple(w, http.StatusNotFound, "group not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not fetch group", err)
		return
	}

	participant, err := store.CreateParticipant(ctx, groupID, payload.Name, payload.Email, payload.UserID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create participant", err)
		return
	}

	utils.Success(w, participant)
}

// DeleteParticipant supprime un participant et recalcule toutes les semaines
// où il apparaissait : son retrait change le rang et les points de tous les
// autres participants de ces semaines.
func DeleteParticipant(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	groupID := vars["groupId"]
	participantID := vars["id"]

	ctx := context.Background()
	touched, err := store.DeleteParticipant(ctx, groupID, participantID)
	if err != nil {
		if errors.Is(err, store.ErrParticipantNotFound) {
			utils.ErrorSimple(w, http.StatusNotFound, "participant not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not delete participant", err)
		return
	}

	for _, challengeID := range touched {
		if _, err := store.RecalculateWeek(ctx, challengeID); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not recalculate week after deletion", err)
			return
		}
	}
	cache.InvalidateOverall(ctx, groupID)

	utils.Message(w, "participant deleted successfully")
}

// ListWeeks récupère les semaines de challenge d'un groupe, la plus récente
// d'abord
func ListWeeks(w http.ResponseWriter, r *http.Request) {
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

	weeks, err := store.ListChallenges(ctx, groupID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query weeks", err)
		return
	}

	utils.Success(w, weeks)
}
