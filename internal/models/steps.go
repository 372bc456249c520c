package model

import (
	"time"
)

// DailyStepRecord représente le nombre de pas d'un participant pour un jour
// calendaire donné au sein d'une semaine de challenge.
// Clé unique : (challenge_id, participant_id, step_date).
type DailyStepRecord struct {
	ID            string    `json:"id,omitempty"`
	ChallengeID   string    `json:"challengeId"`
	ParticipantID string    `json:"participantId"`
	StepDate      time.Time `json:"stepDate"`
	Steps         int       `json:"steps"`
	Distance      float64   `json:"distance"`
}

// LeaderboardEntry est l'agrégat hebdomadaire dérivé des DailyStepRecord.
// Steps doit toujours être recomputable comme la somme des pas journaliers
// de la semaine ; rank et points sont recalculés pour la semaine entière à
// chaque mutation d'une entrée de cette semaine.
type LeaderboardEntry struct {
	ID              string    `json:"id"`
	ChallengeID     string    `json:"challengeId"`
	ParticipantID   string    `json:"participantId"`
	ParticipantName string    `json:"participantName,omitempty"`
	Steps           int       `json:"steps"`
	Distance        float64   `json:"distance"`
	Points          int       `json:"points"`
	Rank            int       `json:"rank"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
