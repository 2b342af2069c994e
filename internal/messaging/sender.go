// Package messaging délègue l'envoi effectif des emails et SMS aux fonctions
// externes (proxys SendGrid/Twilio). Un seul appel par envoi, pas de retry :
// l'échec est rendu tel quel et journalisé par l'appelant.
package messaging

import "context"

// Resultat d'un envoi, aligné sur le contrat des fonctions externes.
type Resultat struct {
	Success bool   `json:"success"`
	Status  string `json:"status"` // delivered ou failed
	// Message humain côté email, identifiant transporteur (sid) côté SMS.
	Message string `json:"message,omitempty"`
	SID     string `json:"sid,omitempty"`
	Erreur  string `json:"error,omitempty"`
}

// Email tel qu'attendu par la fonction d'envoi email.
type Email struct {
	To         string `json:"to"`
	Subject    string `json:"subject"`
	Content    string `json:"content"`
	ClientName string `json:"clientName"`
}

// SMS tel qu'attendu par la fonction d'envoi SMS.
type SMS struct {
	To         string `json:"to"`
	Content    string `json:"content"`
	ClientName string `json:"clientName"`
}

type EmailSender interface {
	SendEmail(ctx context.Context, msg Email) (Resultat, error)
}

type SMSSender interface {
	SendSMS(ctx context.Context, msg SMS) (Resultat, error)
}
