package api

import (
	"net/http"

	"github.com/fatih/color"
	"github.com/gorilla/mux"
	"github.com/landrzz/StepUpLeaderboard/internal/handler"
	"github.com/landrzz/StepUpLeaderboard/internal/middleware"
	"github.com/landrzz/StepUpLeaderboard/internal/utils"
)

func SetupRouter() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.LoggerMiddleware)

	// Root - API documentation
	r.HandleFunc("/", handler.RootHandler).Methods(http.MethodGet)

	// Groups
	r.HandleFunc("/groups", handler.CreateGroup).Methods(http.MethodPost)
	r.HandleFunc("/groups/{id}", handler.GetGroup).Methods(http.MethodGet)
	r.HandleFunc("/groups/{id}", handler.DeleteGroup).Methods(http.MethodDelete)
	r.HandleFunc("/groups/{id}/weeks", handler.ListWeeks).Methods(http.MethodGet)

	// Participants
	r.HandleFunc("/groups/{id}/participants", handler.ListParticipants).Methods(http.MethodGet)
	r.HandleFunc("/groups/{id}/participants", handler.CreateParticipant).Methods(http.MethodPost)
	r.HandleFunc("/groups/{groupId}/participants/{id}", handler.DeleteParticipant).Methods(http.MethodDelete)

	// Step data ingestion
	r.HandleFunc("/groups/{id}/upload", handler.UploadCSV).Methods(http.MethodPost)
	r.HandleFunc("/groups/{id}/entries", handler.CreateManualEntry).Methods(http.MethodPost)
	r.HandleFunc("/entries/{id}", handler.EditEntry).Methods(http.MethodPatch)

	// Leaderboards
	r.HandleFunc("/challenges/{challengeId}/participants/{id}/days", handler.ListParticipantDays).Methods(http.MethodGet)
	r.HandleFunc("/challenges/{id}/leaderboard", handler.GetWeeklyLeaderboard).Methods(http.MethodGet)
	r.HandleFunc("/groups/{id}/leaderboard/overall", handler.GetOverallLeaderboard).Methods(http.MethodGet)

	// Stats
	r.HandleFunc("/challenges/{id}/stats", handler.GetWeeklyStats).Methods(http.MethodGet)
	r.HandleFunc("/groups/{id}/stats/alltime", handler.GetAllTimeStats).Methods(http.MethodGet)

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.LogError("404 Not Found: %s %s", r.Method, r.URL.Path)
		color.Yellow("[404] %s %s (route non trouvée)", r.Method, r.URL.Path)
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
