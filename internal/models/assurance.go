package models

import "time"

// AssuranceAuto : police d'assurance automobile.
type AssuranceAuto struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	ClientID        *uint      `gorm:"index" json:"client_id"`
	NumeroPolice    string     `gorm:"size:40;index" json:"numero_police"`
	Vehicule        string     `gorm:"not null" json:"vehicule"`
	Immatriculation string     `json:"immatriculation"`
	TypeCouverture  string     `json:"type_couverture"` // tiers, tous_risques
	PrimeMensuelle  float64    `json:"prime_mensuelle"`
	DateDebut       time.Time  `json:"date_debut"`
	DateEcheance    *time.Time `json:"date_echeance"`
	Statut          string     `gorm:"not null;default:'active'" json:"statut"` // active, suspendue, resiliee
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (AssuranceAuto) TableName() string { return "assurances_auto" }
