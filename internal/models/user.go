package models

import "time"

// User & rôles (authentification du back-office).
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"unique;not null;index" json:"email"`
	Password  string    `gorm:"not null" json:"-"` // hashé (bcrypt)
	Nom       string    `gorm:"index" json:"nom"`
	Prenom    string    `gorm:"index" json:"prenom"`
	RoleID    uint      `json:"role_id"` // clé étrangère vers Role
	Role      Role      `gorm:"foreignKey:RoleID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Role struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"unique;not null" json:"name"` // admin, manager, user
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
