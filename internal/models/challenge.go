package model

import (
	"time"
)

// WeeklyChallenge représente une semaine de compétition (lundi-dimanche)
// identifiée de manière unique par (group_id, week_number, year).
// Créée paresseusement par le premier upload ou la première saisie manuelle
// dont les dates tombent dans une semaine non couverte.
type WeeklyChallenge struct {
	ID            string    `json:"id"`
	GroupID       string    `json:"groupId"`
	Title         string    `json:"title"`
	WeekStartDate time.Time `json:"weekStartDate"`
	WeekEndDate   time.Time `json:"weekEndDate"`
	WeekNumber    int       `json:"weekNumber"`
	Year          int       `json:"year"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
}
