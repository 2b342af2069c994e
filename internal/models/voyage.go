package models

import "time"

// ReservationVol : réservation aérienne pour un client du secteur voyage.
type ReservationVol struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ClientID    *uint      `gorm:"index" json:"client_id"`
	Destination string     `gorm:"not null" json:"destination"`
	Compagnie   string     `json:"compagnie"`
	NumeroVol   string     `json:"numero_vol"`
	DateDepart  time.Time  `json:"date_depart"`
	DateRetour  *time.Time `json:"date_retour"`
	Prix        float64    `json:"prix"`
	Statut      string     `gorm:"not null;default:'confirmee'" json:"statut"` // confirmee, annulee, terminee
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (ReservationVol) TableName() string { return "reservations_vols" }

// ReservationHotel : séjour hôtelier.
type ReservationHotel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClientID  *uint     `gorm:"index" json:"client_id"`
	Hotel     string    `gorm:"not null" json:"hotel"`
	Ville     string    `json:"ville"`
	CheckIn   time.Time `json:"check_in"`
	CheckOut  time.Time `json:"check_out"`
	Prix      float64   `json:"prix"`
	Statut    string    `gorm:"not null;default:'confirmee'" json:"statut"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ReservationHotel) TableName() string { return "reservations_hotels" }

// LocationVehicule : location de véhicule.
type LocationVehicule struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ClientID        *uint     `gorm:"index" json:"client_id"`
	Vehicule        string    `gorm:"not null" json:"vehicule"`
	Immatriculation string    `json:"immatriculation"`
	DateDebut       time.Time `json:"date_debut"`
	DateFin         time.Time `json:"date_fin"`
	Prix            float64   `json:"prix"`
	Statut          string    `gorm:"not null;default:'en_cours'" json:"statut"` // en_cours, terminee, annulee
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (LocationVehicule) TableName() string { return "locations_vehicules" }
