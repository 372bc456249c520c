package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/landrzz/StepUpLeaderboard/internal/cache"
	model "github.com/landrzz/StepUpLeaderboard/internal/models"
	"github.com/landrzz/StepUpLeaderboard/internal/scoring"
	"github.com/landrzz/StepUpLeaderboard/internal/store"
	"github.com/landrzz/StepUpLeaderboard/internal/utils"
	"github.com/landrzz/StepUpLeaderboard/internal/week"
)

// CreateManualEntry enregistre un total hebdomadaire saisi à la main pour un
// participant. Le total est ventilé sur les 7 jours de la semaine cible pour
// que les pas journaliers restent la source de vérité, puis la semaine est
// recalculée.
func CreateManualEntry(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	groupID := vars["id"]

	var payload struct {
		ParticipantID string  `json:"participantId"`
		Name          string  `json:"name"`
		TotalSteps    int     `json:"totalSteps"`
		TotalDistance float64 `json:"totalDistance"`
		Date          string  `json:"date"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if payload.ParticipantID == "" && payload.Name == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "participantId or name is required")
		return
	}
	if payload.TotalSteps < 0 || payload.TotalDistance < 0 {
		utils.ErrorSimple(w, http.StatusBadRequest, "totalSteps and totalDistance must be non-negative")
		return
	}

	// Semaine cible : celle de la date fournie, ou la semaine courante
	anchor := time.Now().UTC()
	if payload.Date != "" {
		parsed, err := time.Parse("2006-01-02", payload.Date)
		if err != nil {
			utils.ErrorSimple(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		anchor = parsed
	}

	ctx := context.Background()

	// Résolution du participant : par id, ou par nom avec création à la
	// volée (même règle que l'import CSV)
	var participant *model.Participant
	var err error
	if payload.ParticipantID != "" {
		participant, err = store.GetParticipant(ctx, groupID, payload.ParticipantID)
	} else {
		participant, err = store.FindOrCreateParticipantByName(ctx, groupID, payload.Name)
	}
	if err != nil {
		if errors.Is(err, store.ErrParticipantNotFound) {
			utils.ErrorSimple(w, http.StatusNotFound, "participant not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not resolve participant", err)
		return
	}

	res := week.FromDate(anchor)
	challenge, err := store.FindOrCreateChallenge(ctx, groupID, res)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create weekly challenge", err)
		return
	}

	entry, err := writeDistributedEntry(ctx, challenge.ID, participant.ID,
		payload.TotalSteps, payload.TotalDistance, res.Dates())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not write entry", err)
		return
	}

	if _, err := store.RecalculateWeek(ctx, challenge.ID); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not recalculate week", err)
		return
	}
	cache.InvalidateOverall(ctx, groupID)

	// Relire l'entrée : rang et points viennent d'être posés par le recalcul
	entry, err = store.GetEntry(ctx, entry.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch entry", err)
		return
	}

	utils.Success(w, entry)
}

// EditEntry corrige le total d'une entrée existante. Le total corrigé est
// re-ventilé sur la semaine de l'entrée, puis rangs et points de toute la
// semaine sont recalculés.
func EditEntry(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entryID := vars["id"]

	var payload struct {
		ParticipantID string  `json:"participantId"`
		TotalSteps    int     `json:"totalSteps"`
		TotalDistance float64 `json:"totalDistance"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if payload.TotalSteps < 0 || payload.TotalDistance < 0 {
		utils.ErrorSimple(w, http.StatusBadRequest, "totalSteps and totalDistance must be non-negative")
		return
	}

	ctx := context.Background()
	entry, err := store.GetEntry(ctx, entryID)
	if err != nil {
		if errors.Is(err, store.ErrEntryNotFound) {
			utils.ErrorSimple(w, http.StatusNotFound, "entry not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not fetch entry", err)
		return
	}

	// Garde-fou de propriété : si un participant est précisé, l'entrée doit
	// lui appartenir
	if payload.ParticipantID != "" && payload.ParticipantID != entry.ParticipantID {
		utils.ErrorSimple(w, http.StatusNotFound, "entry not found")
		return
	}

	challenge, err := store.GetChallenge(ctx, entry.ChallengeID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch challenge week", err)
		return
	}

	dates := week.DatesBetween(challenge.WeekStartDate, challenge.WeekEndDate)
	if _, err := writeDistributedEntry(ctx, challenge.ID, entry.ParticipantID,
		payload.TotalSteps, payload.TotalDistance, dates); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not write entry", err)
		return
	}

	if _, err := store.RecalculateWeek(ctx, challenge.ID); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not recalculate week", err)
		return
	}
	cache.InvalidateOverall(ctx, challenge.GroupID)

	entry, err = store.GetEntry(ctx, entryID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch entry", err)
		return
	}

	utils.Success(w, entry)
}

// writeDistributedEntry remplace les pas journaliers du participant par la
// ventilation du total fourni, puis écrit l'entrée agrégée correspondante.
func writeDistributedEntry(ctx context.Context, challengeID, participantID string, totalSteps int, totalDistance float64, dates []time.Time) (*model.LeaderboardEntry, error) {
	if err := store.DeleteDailySteps(ctx, challengeID, participantID); err != nil {
		return nil, err
	}

	var days []model.DailyStepRecord
	for _, amount := range scoring.DistributeTotal(totalSteps, totalDistance, dates) {
		days = append(days, model.DailyStepRecord{
			StepDate: amount.Date,
			Steps:    amount.Steps,
			Distance: amount.Distance,
		})
	}

	batch := store.UpsertDailySteps(ctx, challengeID, participantID, days)
	if len(batch.Failed) > 0 {
		return nil, errors.New("could not write daily steps: " + batch.Failed[0].Err)
	}

	return store.UpsertEntry(ctx, challengeID, participantID, totalSteps, totalDistance)
}
