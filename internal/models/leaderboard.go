package model

// OverallEntry est une ligne du classement cumulé d'un groupe : totaux par
// participant sur toutes les semaines jouées. Pur résultat de lecture,
// jamais persisté.
type OverallEntry struct {
	ParticipantID   string  `json:"participantId"`
	ParticipantName string  `json:"participantName"`
	TotalSteps      int     `json:"totalSteps"`
	TotalDistance   float64 `json:"totalDistance"`
	TotalPoints     int     `json:"totalPoints"`
	WeeksPlayed     int     `json:"weeksPlayed"`
	Rank            int     `json:"rank"`
}

// UploadReport résume le résultat d'un upload CSV : la semaine ciblée et le
// détail par participant (politique de succès partiel). Created liste les
// participants dont l'entrée hebdomadaire vient d'être créée, Updated ceux
// dont l'entrée existait déjà et a été écrasée.
type UploadReport struct {
	ChallengeID string   `json:"challengeId"`
	WeekNumber  int      `json:"weekNumber"`
	Year        int      `json:"year"`
	Created     []string `json:"created"`
	Updated     []string `json:"updated"`
	Failed      []string `json:"failed,omitempty"`
}
