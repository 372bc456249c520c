package model

// DayAward récompense la meilleure journée individuelle : le couple
// (participant, jour) avec le plus de pas.
type DayAward struct {
	ParticipantName string `json:"participantName"`
	Date            string `json:"date"`
	Steps           int    `json:"steps"`
}

// NamedValue associe un participant à une valeur dérivée (variance,
// progression, total...). Name vaut "N/A" quand les données sont
// insuffisantes ou qu'une égalité empêche de départager.
type NamedValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// WinCount compte les victoires journalières d'un participant.
type WinCount struct {
	ParticipantName string `json:"participantName"`
	Wins            int    `json:"wins"`
}

// WeeklyStats regroupe les statistiques dérivées d'une semaine de challenge,
// calculées à partir des pas journaliers (jamais de l'agrégat hebdomadaire).
type WeeklyStats struct {
	DailyChampion     *DayAward  `json:"dailyChampion,omitempty"`
	MostConsistent    NamedValue `json:"mostConsistent"`
	BiggestImprover   NamedValue `json:"biggestImprover"`
	WeekendLeader     NamedValue `json:"weekendLeader"`
	WeekdayLeader     NamedValue `json:"weekdayLeader"`
	MostActiveDay     string     `json:"mostActiveDay,omitempty"`
	MostActiveDaySum  int        `json:"mostActiveDaySteps,omitempty"`
	ParticipationRate float64    `json:"participationRate"`
	Momentum          string     `json:"momentum"`
	GoalRate          float64    `json:"goalAchievementRate"`
	DailyWins         []WinCount `json:"dailyWins,omitempty"`
}

// StreakAward décrit la plus longue série de victoires journalières sur des
// dates calendaires consécutives.
type StreakAward struct {
	ParticipantName string `json:"participantName"`
	Length          int    `json:"length"`
}

// AllTimeStats regroupe les statistiques calculées sur tout l'historique
// du groupe.
type AllTimeStats struct {
	DailyChampion       *DayAward   `json:"dailyChampion,omitempty"`
	LongestWinStreak    StreakAward `json:"longestWinStreak"`
	ConsistencyChampion NamedValue  `json:"consistencyChampion"`
	DedicationLeader    NamedValue  `json:"dedicationLeader"`
	PeakWeekday         string      `json:"peakWeekday,omitempty"`
	PeakWeekdaySum      int         `json:"peakWeekdaySteps,omitempty"`
	GoalRate            float64     `json:"goalAchievementRate"`
	DailyWins           []WinCount  `json:"dailyWins,omitempty"`
}
