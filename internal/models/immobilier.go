package models

import "time"

// Propriete gérée pour le compte d'un client propriétaire (nullable : un bien
// peut être saisi avant d'être rattaché).
type Propriete struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ClientID     *uint     `gorm:"index" json:"client_id"`
	Nom          string    `gorm:"not null" json:"nom"`
	Adresse      string    `json:"adresse"`
	Ville        string    `json:"ville"`
	Type         string    `json:"type"` // appartement, maison, local commercial
	Surface      float64   `json:"surface"`
	LoyerMensuel float64   `json:"loyer_mensuel"`
	Statut       string    `gorm:"not null;default:'disponible'" json:"statut"` // disponible, loue, en_travaux
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Contrat de location ou de gestion liant un client à une propriété.
type Contrat struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ClientID    *uint      `gorm:"index" json:"client_id"`
	ProprieteID *uint      `gorm:"index" json:"propriete_id"`
	Type        string     `gorm:"not null" json:"type"` // location, gestion, vente
	DateDebut   time.Time  `json:"date_debut"`
	DateFin     *time.Time `json:"date_fin"`
	Montant     float64    `json:"montant"`
	Statut      string     `gorm:"not null;default:'actif'" json:"statut"` // actif, expire, resilie
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Maintenance : intervention sur une propriété.
type Maintenance struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	ProprieteID      *uint      `gorm:"index" json:"propriete_id"`
	Description      string     `gorm:"not null" json:"description"`
	Statut           string     `gorm:"not null;default:'planifiee'" json:"statut"` // planifiee, en_cours, terminee
	Cout             float64    `json:"cout"`
	DateIntervention *time.Time `json:"date_intervention"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (Maintenance) TableName() string { return "maintenance" }
