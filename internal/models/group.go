package model

import (
	"time"
)

type Group struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"createdBy"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Participant représente un membre d'un groupe.
// UserID est nil pour les participants importés via CSV ou créés manuellement.
// IsSeed marque les participants insérés par le seed de démo : ils sont
// exclus des classements et des statistiques.
type Participant struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"groupId"`
	UserID    *string   `json:"userId,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsSeed    bool      `json:"isSeed"`
	CreatedAt time.Time `json:"createdAt"`
}
