package handler

import (
	"net/http"

	"github.com/landrzz/StepUpLeaderboard/internal/utils"
)

// RootHandler affiche toutes les routes disponibles de l'API
func RootHandler(w http.ResponseWriter, r *http.Request) {
	routes := map[string]interface{}{
		"name":    "StepUp Leaderboard API",
		"version": "1.0.0",
		"status":  "running",
		"routes": map[string]interface{}{
			"groups": []map[string]string{
				{"method": "POST", "path": "/groups", "description": "Créer un groupe"},
				{"method": "GET", "path": "/groups/{id}", "description": "Récupérer un groupe par ID"},
				{"method": "DELETE", "path": "/groups/{id}", "description": "Supprimer un groupe et toutes ses données"},
				{"method": "GET", "path": "/groups/{id}/weeks", "description": "Semaines de challenge d'un groupe"},
			},
			"participants": []map[string]string{
				{"method": "GET", "path": "/groups/{id}/participants", "description": "Participants d'un groupe"},
				{"method": "POST", "path": "/groups/{id}/participants", "description": "Ajouter un participant"},
				{"method": "DELETE", "path": "/groups/{groupId}/participants/{id}", "description": "Supprimer un participant (recalcule ses semaines)"},
			},
			"entries": []map[string]string{
				{"method": "POST", "path": "/groups/{id}/upload", "description": "Importer un CSV de pas (une colonne par date)"},
				{"method": "POST", "path": "/groups/{id}/entries", "description": "Saisie manuelle d'un total hebdomadaire"},
				{"method": "PATCH", "path": "/entries/{id}", "description": "Corriger le total d'une entrée"},
				{"method": "GET", "path": "/challenges/{challengeId}/participants/{id}/days", "description": "Pas journaliers d'un participant pour une semaine"},
			},
			"leaderboards": []map[string]string{
				{"method": "GET", "path": "/challenges/{id}/leaderboard", "description": "Classement d'une semaine"},
				{"method": "GET", "path": "/groups/{id}/leaderboard/overall", "description": "Classement cumulé d'un groupe"},
			},
			"stats": []map[string]string{
				{"method": "GET", "path": "/challenges/{id}/stats", "description": "Statistiques d'une semaine"},
				{"method": "GET", "path": "/groups/{id}/stats/alltime", "description": "Statistiques cumulées d'un groupe"},
			},
			"health": []map[string]string{
				{"method": "GET", "path": "/health", "description": "Health check de l'API"},
			},
		},
	}

	utils.Success(w, routes)
}
