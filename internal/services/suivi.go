package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diewo77/gestion-pro/internal/messaging"
	"github.com/diewo77/gestion-pro/internal/models"
	"gorm.io/gorm"
)

var (
	ErrClientIntrouvable = errors.New("client introuvable")
	ErrCanalInconnu      = errors.New("canal d'envoi inconnu")
	ErrContactManquant   = errors.New("coordonnée de contact manquante")
)

// SuiviService couvre le suivi commercial : upsert de la fiche par client,
// journal des communications, et envoi délégué aux fonctions externes.
type SuiviService struct {
	db    *gorm.DB
	email messaging.EmailSender
	sms   messaging.SMSSender
}

func NewSuiviService(db *gorm.DB, email messaging.EmailSender, sms messaging.SMSSender) *SuiviService {
	return &SuiviService{db: db, email: email, sms: sms}
}

// SuiviInput : champs optionnels d'un upsert. Seuls les champs non nil sont
// fusionnés dans la fiche existante.
type SuiviInput struct {
	ClientID    uint       `json:"client_id"`
	LastContact *time.Time `json:"last_contact"`
	NextContact *time.Time `json:"next_contact"`
	ContactType *string    `json:"contact_type"`
	Statut      *string    `json:"statut"`
	Priorite    *string    `json:"priorite"`
	Notes       *string    `json:"notes"`
}

// Upsert crée ou met à jour la fiche de suivi du client — jamais de doublon.
// Défauts à la création : contact_type=email, statut=prospect, priorite=medium.
func (s *SuiviService) Upsert(ctx context.Context, in SuiviInput) (*models.ClientFollowUp, error) {
	if in.ClientID == 0 {
		return nil, errors.New("client_id requis")
	}
	var suivi models.ClientFollowUp
	err := s.db.WithContext(ctx).Where("client_id = ?", in.ClientID).First(&suivi).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		suivi = models.ClientFollowUp{
			ClientID:    in.ClientID,
			ContactType: models.CanalEmail,
			Statut:      models.SuiviProspect,
			Priorite:    models.PrioriteMoyenne,
		}
	case err != nil:
		return nil, fmt.Errorf("chargement suivi: %w", err)
	}
	if in.LastContact != nil {
		suivi.LastContact = in.LastContact
	}
	if in.NextContact != nil {
		suivi.NextContact = in.NextContact
	}
	if in.ContactType != nil {
		suivi.ContactType = *in.ContactType
	}
	if in.Statut != nil {
		suivi.Statut = *in.Statut
	}
	if in.Priorite != nil {
		suivi.Priorite = *in.Priorite
	}
	if in.Notes != nil {
		suivi.Notes = *in.Notes
	}
	if err := s.db.WithContext(ctx).Save(&suivi).Error; err != nil {
		return nil, fmt.Errorf("enregistrement suivi: %w", err)
	}
	return &suivi, nil
}

// LogCommunication ajoute une entrée au journal (écriture seule) et tamponne
// last_contact sur la fiche de suivi du client.
func (s *SuiviService) LogCommunication(ctx context.Context, entry models.CommunicationLog) (*models.CommunicationLog, error) {
	if entry.SentAt.IsZero() {
		entry.SentAt = time.Now()
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("journal communication: %w", err)
	}
	if _, err := s.Upsert(ctx, SuiviInput{ClientID: entry.ClientID, LastContact: &entry.SentAt}); err != nil {
		// L'entrée de journal est déjà écrite ; le suivi rattrapera au prochain contact.
		return &entry, fmt.Errorf("tampon last_contact: %w", err)
	}
	return &entry, nil
}

// EnvoiInput décrit une demande d'envoi vers un client.
type EnvoiInput struct {
	ClientID   uint   `json:"client_id"`
	Canal      string `json:"canal"` // email ou sms
	Sujet      string `json:"sujet"`
	Contenu    string `json:"contenu"`
	TemplateID *uint  `json:"template_id"`
}

// Envoyer invoque la fonction externe puis journalise la tentative dans les
// deux branches : statut delivered en cas de succès, failed sur toute erreur
// (transport compris). Chaque appel laisse donc exactement une entrée de
// journal, même quand l'envoi échoue.
func (s *SuiviService) Envoyer(ctx context.Context, in EnvoiInput) (*models.CommunicationLog, error) {
	var client models.Client
	if err := s.db.WithContext(ctx).First(&client, in.ClientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientIntrouvable
		}
		return nil, fmt.Errorf("chargement client: %w", err)
	}

	now := time.Now()
	contenu := messaging.Substituer(in.Contenu, client.NomComplet(), now)
	sujet := messaging.Substituer(in.Sujet, client.NomComplet(), now)

	var res messaging.Resultat
	var envoiErr error
	switch in.Canal {
	case models.CanalEmail:
		if client.Email == "" {
			envoiErr = ErrContactManquant
		} else {
			res, envoiErr = s.email.SendEmail(ctx, messaging.Email{
				To: client.Email, Subject: sujet, Content: contenu, ClientName: client.NomComplet(),
			})
		}
	case models.CanalSMS:
		if client.Telephone == "" {
			envoiErr = ErrContactManquant
		} else {
			res, envoiErr = s.sms.SendSMS(ctx, messaging.SMS{
				To: client.Telephone, Content: contenu, ClientName: client.NomComplet(),
			})
		}
	default:
		return nil, ErrCanalInconnu
	}

	entry := models.CommunicationLog{
		ClientID:   in.ClientID,
		TemplateID: in.TemplateID,
		Canal:      in.Canal,
		Sujet:      sujet,
		Contenu:    contenu,
		Statut:     models.EnvoiDelivered,
		MessageID:  res.SID,
		SentAt:     now,
	}
	if envoiErr != nil {
		entry.Statut = models.EnvoiFailed
		entry.Erreur = envoiErr.Error()
	}
	logged, logErr := s.LogCommunication(ctx, entry)
	if logErr != nil && logged == nil {
		return nil, logErr
	}
	return logged, envoiErr
}

// Journal liste les communications d'un client, plus récentes d'abord.
func (s *SuiviService) Journal(ctx context.Context, clientID uint) ([]models.CommunicationLog, error) {
	var logs []models.CommunicationLog
	q := s.db.WithContext(ctx).Order("sent_at desc")
	if clientID != 0 {
		q = q.Where("client_id = ?", clientID)
	}
	if err := q.Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}
	return logs, nil
}
