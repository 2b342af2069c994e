package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatutPaiementComplete = "completed"
	StatutPaiementPartiel  = "partial"
	StatutPaiementAttente  = "pending"
)

// DetailsImmobilier porte les champs propres aux paiements du secteur immobilier.
type DetailsImmobilier struct {
	Propriete string `json:"propriete,omitempty"`
	Adresse   string `json:"adresse,omitempty"`
	Periode   string `json:"periode,omitempty"` // ex: "2026-08" pour un loyer
}

// DetailsVoyage porte les champs propres aux paiements du secteur voyage.
type DetailsVoyage struct {
	Destination       string `json:"destination,omitempty"`
	NumeroReservation string `json:"numero_reservation,omitempty"`
	NbVoyageurs       int    `json:"nb_voyageurs,omitempty"`
}

// DetailsAssurance porte les champs propres aux paiements du secteur assurance.
type DetailsAssurance struct {
	Vehicule        string `json:"vehicule,omitempty"`
	Immatriculation string `json:"immatriculation,omitempty"`
	NumeroPolice    string `json:"numero_police,omitempty"`
}

// DetailsPaiement est une union discriminée par Payment.Secteur : une seule
// des trois branches est renseignée pour un paiement donné. Stockée en
// colonne texte JSON.
type DetailsPaiement struct {
	Immobilier *DetailsImmobilier `json:"immobilier,omitempty"`
	Voyage     *DetailsVoyage     `json:"voyage,omitempty"`
	Assurance  *DetailsAssurance  `json:"assurance,omitempty"`
}

func (d DetailsPaiement) Value() (driver.Value, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (d *DetailsPaiement) Scan(src any) error {
	if src == nil {
		*d = DetailsPaiement{}
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("DetailsPaiement: type inattendu %T", src)
	}
	if len(raw) == 0 {
		*d = DetailsPaiement{}
		return nil
	}
	return json.Unmarshal(raw, d)
}

func (DetailsPaiement) GormDataType() string { return "text" }

// Vide vérifie qu'aucune branche n'est renseignée.
func (d DetailsPaiement) Vide() bool {
	return d.Immobilier == nil && d.Voyage == nil && d.Assurance == nil
}

// Coherente vérifie que la branche renseignée correspond au secteur donné.
func (d DetailsPaiement) Coherente(secteur string) bool {
	switch secteur {
	case SecteurImmobilier:
		return d.Voyage == nil && d.Assurance == nil
	case SecteurVoyage:
		return d.Immobilier == nil && d.Assurance == nil
	case SecteurAssurance:
		return d.Immobilier == nil && d.Voyage == nil
	}
	return false
}

// Payment appartient à un secteur et, optionnellement, à un client.
type Payment struct {
	ID       uint  `gorm:"primaryKey" json:"id"`
	ClientID *uint `gorm:"index" json:"client_id"`
	// Référence lisible, générée si absente.
	Reference    string          `gorm:"size:40;index" json:"reference"`
	Secteur      string          `gorm:"not null;index" json:"secteur"`
	Montant      float64         `gorm:"not null" json:"montant"`
	Methode      string          `json:"methode"` // virement, CB, chèque, espèces
	Statut       string          `gorm:"not null;default:'pending'" json:"statut"`
	DatePaiement time.Time       `gorm:"not null" json:"date_paiement"`
	Details      DetailsPaiement `gorm:"type:text" json:"details"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// BeforeCreate attribue une référence unique quand l'appelant n'en fournit pas.
func (p *Payment) BeforeCreate(*gorm.DB) error {
	if p.Reference == "" {
		p.Reference = "PAY-" + uuid.NewString()[:8]
	}
	return nil
}
