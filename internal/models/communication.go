package models

import "time"

const (
	CanalEmail      = "email"
	CanalSMS        = "sms"
	CanalAppel      = "call"
	CanalRendezVous = "meeting"
)

const (
	EnvoiSent      = "sent"
	EnvoiDelivered = "delivered"
	EnvoiFailed    = "failed"
)

// CommunicationTemplate : modèle de message réutilisable. Le contenu supporte
// les variables {prenom}, {nom}, {nom_complet} et, pour les SMS, {heure}.
type CommunicationTemplate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nom       string    `gorm:"not null;unique" json:"nom"`
	Canal     string    `gorm:"not null" json:"canal"` // email ou sms
	Sujet     string    `json:"sujet,omitempty"`
	Contenu   string    `gorm:"not null" json:"contenu"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommunicationLog : journal en écriture seule. Le statut est fixé à la
// création d'après le résultat de l'envoi et n'est jamais modifié ensuite.
type CommunicationLog struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ClientID   uint   `gorm:"not null;index" json:"client_id"`
	TemplateID *uint  `json:"template_id"`
	Canal      string `gorm:"not null" json:"canal"`
	Sujet      string `json:"sujet,omitempty"`
	Contenu    string `json:"contenu"`
	Statut     string `gorm:"not null" json:"statut"` // sent, delivered, failed
	// Identifiant fourni par le transporteur (sid Twilio, message-id SendGrid).
	MessageID string    `json:"message_id,omitempty"`
	Erreur    string    `json:"erreur,omitempty"`
	SentAt    time.Time `gorm:"not null" json:"sent_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
