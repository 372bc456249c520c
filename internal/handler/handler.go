package handler

import (
	"net/http"

	"github.com/landrzz/StepUpLeaderboard/internal/utils"
)

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.Message(w, "ok")
}
