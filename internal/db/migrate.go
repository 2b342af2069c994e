package db

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// The following blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/diewo77/gestion-pro/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectAndMigrate ouvre la connexion Postgres puis applique le schéma :
// migrations SQL (golang-migrate) si MIGRATIONS=1, AutoMigrate sinon.
func ConnectAndMigrate() (*gorm.DB, error) {
	dsn := GetNormalizedDSN()
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_DSN est vide, vérifiez la configuration de l'environnement")
	}
	var db *gorm.DB
	var err error
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}
	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(dsn), cfg)
		if err == nil {
			break
		}
		fmt.Println("Retrying DB connection...", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}

	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	// DSN masqué dans les logs de démarrage
	masked := dsn
	if strings.Contains(masked, "password=") {
		re := regexp.MustCompile(`(password=)([^\s]+)`)
		masked = re.ReplaceAllString(masked, `${1}***`)
	}
	fmt.Println("[DB] Using DSN:", masked)

	if v := strings.ToLower(os.Getenv("MIGRATIONS")); v == "1" || v == "true" || v == "yes" {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		if err := AutoMigrate(db); err != nil {
			return nil, err
		}
	}

	// sanity check: ensure required core tables exist
	for _, table := range []string{"clients", "payments", "client_follow_ups"} {
		if !db.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}
	if v := strings.ToLower(os.Getenv("DB_SEED")); v == "1" || v == "true" || v == "yes" {
		Seed(db)
	}
	return db, nil
}

// AutoMigrate applique le schéma de toutes les entités.
func AutoMigrate(db *gorm.DB) error {
	modelsToMigrate := []interface{}{
		&models.Role{}, &models.User{},
		&models.Client{}, &models.Payment{},
		&models.Propriete{}, &models.Contrat{}, &models.Maintenance{},
		&models.ReservationVol{}, &models.ReservationHotel{}, &models.LocationVehicule{},
		&models.AssuranceAuto{},
		&models.ClientFollowUp{}, &models.CommunicationTemplate{}, &models.CommunicationLog{},
	}
	for _, m := range modelsToMigrate {
		if migErr := db.AutoMigrate(m); migErr != nil {
			return fmt.Errorf("automigrate %T: %w", m, migErr)
		}
	}
	return nil
}

// Seed insère les données de référence idempotentes (rôles, modèles de
// communication par défaut).
func Seed(db *gorm.DB) {
	baseRoles := []models.Role{
		{Name: "admin", Description: "Administration complète"},
		{Name: "user", Description: "Utilisateur standard"},
	}
	for _, r := range baseRoles {
		var existing models.Role
		if err := db.Where("name = ?", r.Name).First(&existing).Error; err == gorm.ErrRecordNotFound {
			db.Create(&r)
		}
	}
	baseTemplates := []models.CommunicationTemplate{
		{Nom: "relance_email", Canal: models.CanalEmail, Sujet: "Votre dossier",
			Contenu: "Bonjour {prenom},\n\nNous revenons vers vous au sujet de votre dossier. N'hésitez pas à nous recontacter.\n\nCordialement"},
		{Nom: "bienvenue_email", Canal: models.CanalEmail, Sujet: "Bienvenue",
			Contenu: "Bonjour {nom_complet},\n\nBienvenue parmi nos clients !"},
		{Nom: "rappel_sms", Canal: models.CanalSMS,
			Contenu: "Bonjour {prenom}, rappel de votre rendez-vous. Message envoyé à {heure}."},
	}
	for _, t := range baseTemplates {
		var existing models.CommunicationTemplate
		if err := db.Where("nom = ?", t.Nom).First(&existing).Error; err == gorm.ErrRecordNotFound {
			db.Create(&t)
		}
	}
}

// runSQLMigrations executes migrations in ./migrations using golang-migrate file source.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
