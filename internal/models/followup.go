package models

import "time"

// Cycle de vie commercial d'un suivi client.
const (
	SuiviProspect  = "prospect"
	SuiviARelancer = "a_relancer"
	SuiviActif     = "actif"
	SuiviInactif   = "inactif"
)

const (
	PrioriteBasse   = "low"
	PrioriteMoyenne = "medium"
	PrioriteHaute   = "high"
)

// ClientFollowUp : exactement une fiche de suivi par client (upsert, jamais dupliquée).
type ClientFollowUp struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ClientID    uint       `gorm:"not null;uniqueIndex" json:"client_id"`
	LastContact *time.Time `json:"last_contact"`
	NextContact *time.Time `json:"next_contact"`
	ContactType string     `gorm:"not null;default:'email'" json:"contact_type"` // email, sms, call, meeting
	Statut      string     `gorm:"not null;default:'prospect'" json:"statut"`
	Priorite    string     `gorm:"not null;default:'medium'" json:"priorite"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
