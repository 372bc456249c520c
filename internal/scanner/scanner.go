package scanner

import (
	"database/sql"
	"time"

	"github.com/landrzz/StepUpLeaderboard/internal/analytics"
	model "github.com/landrzz/StepUpLeaderboard/internal/models"
	"github.com/landrzz/StepUpLeaderboard/internal/scoring"
	"github.com/landrzz/StepUpLeaderboard/internal/utils"
	"github.com/lib/pq"
)

// Row est l'interface commune de pgx.Row et pgx.Rows.
type Row interface {
	Scan(dest ...interface{}) error
}

// ScanGroup scanne une ligne SQL vers un Group
func ScanGroup(r Row) (*model.Group, error) {
	var g model.Group
	var description sql.NullString

	err := r.Scan(
		&g.ID, &g.Name, &description, &g.CreatedBy, &g.IsActive,
		&g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	g.Description = utils.NullStringToString(description)

	return &g, nil
}

// ScanParticipant scanne une ligne SQL vers un Participant
func ScanParticipant(r Row) (*model.Participant, error) {
	var p model.Participant
	var userID sql.NullString

	err := r.Scan(
		&p.ID, &p.GroupID, &userID, &p.Name, &p.Email, &p.IsSeed, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.UserID = utils.NullStringToPointer(userID)

	return &p, nil
}

// ScanChallenge scanne une ligne SQL vers un WeeklyChallenge
func ScanChallenge(r Row) (*model.WeeklyChallenge, error) {
	var c model.WeeklyChallenge

	err := r.Scan(
		&c.ID, &c.GroupID, &c.Title, &c.WeekStartDate, &c.WeekEndDate,
		&c.WeekNumber, &c.Year, &c.IsActive, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// ScanEntry scanne une ligne SQL vers un LeaderboardEntry (nom du
// participant joint optionnel)
func ScanEntry(r Row) (*model.LeaderboardEntry, error) {
	var e model.LeaderboardEntry
	var name sql.NullString

	err := r.Scan(
		&e.ID, &e.ChallengeID, &e.ParticipantID, &name,
		&e.Steps, &e.Distance, &e.Points, &e.Rank,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.ParticipantName = utils.NullStringToString(name)

	return &e, nil
}

// ScanDailyStep scanne une ligne SQL vers un DailyStepRecord
func ScanDailyStep(r Row) (*model.DailyStepRecord, error) {
	var d model.DailyStepRecord

	err := r.Scan(
		&d.ID, &d.ChallengeID, &d.ParticipantID, &d.StepDate, &d.Steps, &d.Distance,
	)
	if err != nil {
		return nil, err
	}

	return &d, nil
}

// ScanStanding scanne une ligne (entrée + ancienneté du participant) vers
// une WeekStanding prête pour le recalcul des rangs
func ScanStanding(r Row) (*scoring.WeekStanding, error) {
	var s scoring.WeekStanding

	err := r.Scan(&s.EntryID, &s.ParticipantID, &s.Steps, &s.JoinedAt)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// ScanOverallRow scanne une ligne (entrée jointe au participant) vers une
// OverallRow du classement cumulé
func ScanOverallRow(r Row) (*scoring.OverallRow, error) {
	var o scoring.OverallRow

	err := r.Scan(
		&o.ParticipantID, &o.ParticipantName, &o.JoinedAt,
		&o.Steps, &o.Distance, &o.Points,
	)
	if err != nil {
		return nil, err
	}

	return &o, nil
}

// ScanDailySeries scanne une ligne agrégée (array_agg des pas et des dates,
// ordonnés par date) vers une série journalière pour l'analytics.
// Utilise pq.Array pour les colonnes tableau.
func ScanDailySeries(r Row) (*analytics.Series, error) {
	var s analytics.Series
	var steps pq.Int64Array
	var dates pq.StringArray

	err := r.Scan(&s.ParticipantID, &s.Name, &steps, &dates)
	if err != nil {
		return nil, err
	}

	// Conversion des tableaux parallèles en points journaliers
	for i := range steps {
		if i >= len(dates) {
			break
		}
		date, err := time.Parse("2006-01-02", dates[i])
		if err != nil {
			continue
		}
		s.Days = append(s.Days, analytics.DayPoint{Date: date, Steps: int(steps[i])})
	}

	return &s, nil
}
