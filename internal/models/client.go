package models

import "time"

// Secteurs d'activité. Un client peut appartenir à plusieurs secteurs à la fois.
const (
	SecteurImmobilier = "immobilier"
	SecteurVoyage     = "voyage"
	SecteurAssurance  = "assurance"
)

// Secteurs liste les secteurs reconnus, dans l'ordre d'affichage.
var Secteurs = []string{SecteurImmobilier, SecteurVoyage, SecteurAssurance}

const (
	StatutClientActif    = "actif"
	StatutClientInactif  = "inactif"
	StatutClientSuspendu = "suspendu"
)

// Client multi-secteurs.
type Client struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Nom       string `gorm:"not null;index" json:"nom"`
	Prenom    string `gorm:"index" json:"prenom"`
	Email     string `gorm:"index" json:"email"`
	Telephone string `json:"telephone"`
	Adresse   string `json:"adresse"`
	Ville     string `json:"ville"`
	// Tags secteur, colonne texte JSON (voir StringList).
	Secteurs StringList `gorm:"type:text" json:"secteurs"`
	Statut   string     `gorm:"not null;default:'actif'" json:"statut"`
	// Champs optionnels spécifiques à un secteur.
	Profession      string    `json:"profession,omitempty"`
	TypeVoyageur    string    `json:"type_voyageur,omitempty"` // affaires, loisirs, famille
	NumeroPasseport string    `json:"numero_passeport,omitempty"`
	NumeroPermis    string    `json:"numero_permis,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DansSecteur teste l'appartenance du client à un secteur.
func (c *Client) DansSecteur(secteur string) bool { return c.Secteurs.Contains(secteur) }

// NomComplet retourne "Prénom Nom" en ignorant les champs vides.
func (c *Client) NomComplet() string {
	if c.Prenom == "" {
		return c.Nom
	}
	return c.Prenom + " " + c.Nom
}

// SecteurValide vérifie qu'un tag secteur fait partie des secteurs reconnus.
func SecteurValide(s string) bool {
	for _, v := range Secteurs {
		if v == s {
			return true
		}
	}
	return false
}
