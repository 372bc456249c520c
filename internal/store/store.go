// Package store est l'adaptateur de persistance du moteur : toutes les
// lectures/écritures contre les cinq tables (groups, participants,
// weekly_challenges, leaderboard_entries, daily_steps) passent par ici.
// Les clés uniques documentées servent de garde-fou de concurrence : les
// écritures répétées ou concurrentes convergent par upsert au lieu de
// dupliquer.
package store

import (
	"errors"
)

// Erreurs métier de l'adaptateur, comparables avec errors.Is.
var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrEntryNotFound       = errors.New("entry not found")
	ErrWeekNotFound        = errors.New("week not found")
	ErrGroupNotFound       = errors.New("group not found")
)

// FailedRow identifie une ligne dont l'écriture a échoué lors d'une boucle
// en succès partiel.
type FailedRow struct {
	Key string `json:"key"`
	Err string `json:"error"`
}

// BatchResult rend explicite la politique de succès partiel des boucles
// d'écriture : l'appelant sait exactement quelles lignes rejouer.
type BatchResult struct {
	Succeeded []string    `json:"succeeded"`
	Failed    []FailedRow `json:"failed,omitempty"`
}

func (b *BatchResult) ok(key string) {
	b.Succeeded = append(b.Succeeded, key)
}

func (b *BatchResult) fail(key string, err error) {
	b.Failed = append(b.Failed, FailedRow{Key: key, Err: err.Error()})
}
