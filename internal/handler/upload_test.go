package handler

import (
	"context"
	"testing"

	"github.com/landrzz/StepUpLeaderboard/internal/config"
	"github.com/landrzz/StepUpLeaderboard/internal/database"
	"github.com/landrzz/StepUpLeaderboard/internal/parser"
	"github.com/landrzz/StepUpLeaderboard/internal/store"
	"github.com/landrzz/StepUpLeaderboard/internal/week"
)

// connectTestDB saute le test quand aucune base n'est configurée : ces tests
// exercent le chemin d'écriture réel et ont besoin d'un Postgres vivant.
func connectTestDB(t *testing.T) {
	t.Helper()

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Skipf("database not configured: %v", err)
	}
	if _, err := database.ConnectPostgres(cfg); err != nil {
		t.Skipf("database unreachable: %v", err)
	}
}

// Un re-upload couvrant un sous-ensemble des dates déjà importées doit
// laisser l'entrée hebdomadaire égale à la somme de TOUS les jours en base,
// pas au total du second fichier.
func TestPartialReuploadKeepsEntryEqualToDailySum(t *testing.T) {
	connectTestDB(t)
	ctx := context.Background()

	group, err := store.CreateGroup(ctx, "Sync Check", "", "tester")
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	defer func() { _ = store.DeleteGroup(ctx, group.ID) }()

	res, err := week.Resolve([]string{"2024-01-15"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	challenge, err := store.FindOrCreateChallenge(ctx, group.ID, res)
	if err != nil {
		t.Fatalf("FindOrCreateChallenge: %v", err)
	}

	// Premier upload : la semaine complète, 1000 pas par jour
	full := parser.ParticipantRow{
		Name:       "Alice",
		TotalSteps: 7000,
		DailyData: []parser.DailyData{
			{Date: "2024-01-15", Steps: 1000},
			{Date: "2024-01-16", Steps: 1000},
			{Date: "2024-01-17", Steps: 1000},
			{Date: "2024-01-18", Steps: 1000},
			{Date: "2024-01-19", Steps: 1000},
			{Date: "2024-01-20", Steps: 1000},
			{Date: "2024-01-21", Steps: 1000},
		},
	}
	created, err := importRow(ctx, group.ID, challenge.ID, full)
	if err != nil {
		t.Fatalf("importRow (full week): %v", err)
	}
	if !created {
		t.Error("first upload should create the entry")
	}

	// Second upload : seulement le mercredi, corrigé à 5000 pas. Les six
	// autres jours du premier fichier restent en base.
	partial := parser.ParticipantRow{
		Name:       "Alice",
		TotalSteps: 5000,
		DailyData: []parser.DailyData{
			{Date: "2024-01-17", Steps: 5000},
		},
	}
	created, err = importRow(ctx, group.ID, challenge.ID, partial)
	if err != nil {
		t.Fatalf("importRow (partial): %v", err)
	}
	if created {
		t.Error("second upload should update the existing entry, not create one")
	}

	participant, err := store.FindOrCreateParticipantByName(ctx, group.ID, "Alice")
	if err != nil {
		t.Fatalf("FindOrCreateParticipantByName: %v", err)
	}

	sum, _, err := store.SumDailySteps(ctx, challenge.ID, participant.ID)
	if err != nil {
		t.Fatalf("SumDailySteps: %v", err)
	}
	if sum != 11000 {
		t.Errorf("daily sum = %d, want 11000 (6 days kept at 1000 + wednesday at 5000)", sum)
	}

	board, err := store.GetWeeklyBoard(ctx, challenge.ID)
	if err != nil {
		t.Fatalf("GetWeeklyBoard: %v", err)
	}
	if len(board) != 1 {
		t.Fatalf("board has %d entries, want 1", len(board))
	}
	if board[0].Steps != sum {
		t.Errorf("entry steps = %d, daily sum = %d; the entry must equal the sum of its week's daily rows", board[0].Steps, sum)
	}

	days, err := store.ListDailySteps(ctx, challenge.ID, participant.ID)
	if err != nil {
		t.Fatalf("ListDailySteps: %v", err)
	}
	if len(days) != 7 {
		t.Errorf("got %d daily rows, want 7 (partial re-upload must not drop uncovered days)", len(days))
	}
}
