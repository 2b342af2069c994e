package handlers

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/gestion-pro/internal/models"
	"github.com/diewo77/gestion-pro/internal/store"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// base mémoire unique par nom de test pour éviter les fuites via le cache partagé
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Client{}, &models.Payment{}, &models.ClientFollowUp{},
		&models.CommunicationTemplate{}, &models.CommunicationLog{},
		&models.Propriete{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func setupRepo(t *testing.T) *store.Repository {
	return store.NewRepository(setupTestDB(t), store.NopReporter{})
}
