package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/landrzz/StepUpLeaderboard/internal/cache"
	"github.com/landrzz/StepUpLeaderboard/internal/logger"
	model "github.com/landrzz/StepUpLeaderboard/internal/models"
	"github.com/landrzz/StepUpLeaderboard/internal/parser"
	"github.com/landrzz/StepUpLeaderboard/internal/store"
	"github.com/landrzz/StepUpLeaderboard/internal/utils"
	"github.com/landrzz/StepUpLeaderboard/internal/week"
)

const maxUploadSize = 10 << 20 // 10 MB

// UploadCSV ingère un export CSV de pas pour un groupe : parsing, résolution
// de la semaine cible depuis les colonnes de dates, puis écriture participant
// par participant en succès partiel. La semaine est recalculée une seule fois
// à la fin, quel que soit le nombre de lignes importées.
func UploadCSV(w http.ResponseWriter, r *http.Request) {
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

	raw, err := readUpload(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "could not read uploaded file", err)
		return
	}

	result, err := parser.Parse(raw)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	res, err := week.Resolve(result.Dates)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "could not resolve target week", err)
		return
	}

	challenge, err := store.FindOrCreateChallenge(ctx, groupID, res)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create weekly challenge", err)
		return
	}

	report := model.UploadReport{
		ChallengeID: challenge.ID,
		WeekNumber:  challenge.WeekNumber,
		Year:        challenge.Year,
	}

	// Une ligne en échec est consignée dans le rapport et n'empêche pas les
	// autres participants d'être importés
	for _, row := range result.Rows {
		created, err := importRow(ctx, groupID, challenge.ID, row)
		if err != nil {
			logger.Error("Upload: could not import %q: %v", row.Name, err)
			report.Failed = append(report.Failed, row.Name)
			continue
		}
		if created {
			report.Created = append(report.Created, row.Name)
		} else {
			report.Updated = append(report.Updated, row.Name)
		}
	}

	if _, err := store.RecalculateWeek(ctx, challenge.ID); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not recalculate week", err)
		return
	}
	cache.InvalidateOverall(ctx, groupID)

	logger.Success("Upload for group %s: %d created, %d updated, %d failed (week %d/%d)",
		groupID, len(report.Created), len(report.Updated), len(report.Failed), report.WeekNumber, report.Year)

	utils.Success(w, report)
}

// importRow écrit les données d'un participant : résolution par nom, pas
// journaliers puis entrée de classement agrégée. Retourne true si l'entrée
// hebdomadaire vient d'être créée, false si elle existait et a été écrasée.
//
// L'entrée est toujours dérivée de la somme des pas journaliers en base,
// jamais du total du fichier : un re-upload partiel (un sous-ensemble des
// dates déjà importées) conserve les jours non couverts, et l'entrée doit
// rester égale à la somme de tous les jours de la semaine.
func importRow(ctx context.Context, groupID, challengeID string, row parser.ParticipantRow) (bool, error) {
	participant, err := store.FindOrCreateParticipantByName(ctx, groupID, row.Name)
	if err != nil {
		return false, err
	}

	existed, err := store.EntryExists(ctx, challengeID, participant.ID)
	if err != nil {
		return false, err
	}

	var days []model.DailyStepRecord
	for _, d := range row.DailyData {
		date, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			continue
		}
		days = append(days, model.DailyStepRecord{
			StepDate: date,
			Steps:    d.Steps,
			Distance: d.Distance,
		})
	}

	batch := store.UpsertDailySteps(ctx, challengeID, participant.ID, days)
	if len(batch.Failed) > 0 {
		return false, errors.New("could not write daily steps: " + batch.Failed[0].Err)
	}

	steps, distance, err := store.SumDailySteps(ctx, challengeID, participant.ID)
	if err != nil {
		return false, err
	}

	if _, err := store.UpsertEntry(ctx, challengeID, participant.ID, steps, distance); err != nil {
		return false, err
	}
	return !existed, nil
}

// readUpload lit le contenu CSV depuis le champ multipart "file" s'il est
// présent, sinon depuis le corps brut de la requête.
func readUpload(r *http.Request) (string, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			return "", err
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return "", err
		}
		defer file.Close()

		raw, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxUploadSize))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
