package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/gestion-pro/internal/models"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Client{}, &models.Payment{}, &models.ClientFollowUp{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestStoreCRUD(t *testing.T) {
	db := setupTestDB(t, t.Name())
	clients := New[models.Client](db, "clients", NopReporter{})
	ctx := context.Background()

	created, err := clients.Insert(ctx, &models.Client{Nom: "Durand", Prenom: "Alice", Statut: models.StatutClientActif})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("id non attribué")
	}

	got, err := clients.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Nom != "Durand" {
		t.Fatalf("lecture inattendue: %+v", got)
	}

	updated, err := clients.Update(ctx, created.ID, map[string]any{"nom": "Dupont"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Nom != "Dupont" || updated.Prenom != "Alice" {
		t.Fatalf("le patch doit être partiel: %+v", updated)
	}

	if err := clients.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := clients.Get(ctx, created.ID); KindOf(err) != KindIntrouvable {
		t.Fatalf("attendu KindIntrouvable, obtenu %v", err)
	}
}

func TestStoreListOrdreCreation(t *testing.T) {
	db := setupTestDB(t, t.Name())
	clients := New[models.Client](db, "clients", NopReporter{})
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		c := models.Client{Nom: fmt.Sprintf("C%d", i), CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := db.Create(&c).Error; err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	rows, err := clients.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("attendu 3 lignes, obtenu %d", len(rows))
	}
	if rows[0].Nom != "C2" || rows[2].Nom != "C0" {
		t.Fatalf("tri created_at desc attendu: %s, %s, %s", rows[0].Nom, rows[1].Nom, rows[2].Nom)
	}
}

func TestStoreIntrouvable(t *testing.T) {
	db := setupTestDB(t, t.Name())
	clients := New[models.Client](db, "clients", NopReporter{})
	ctx := context.Background()

	if _, err := clients.Update(ctx, 404, map[string]any{"nom": "x"}); KindOf(err) != KindIntrouvable {
		t.Fatalf("update inexistant: attendu KindIntrouvable, obtenu %v", err)
	}
	if err := clients.Delete(ctx, 404); KindOf(err) != KindIntrouvable {
		t.Fatalf("delete inexistant: attendu KindIntrouvable, obtenu %v", err)
	}

	var serr *Error
	_, err := clients.Get(ctx, 404)
	if !errors.As(err, &serr) {
		t.Fatalf("erreur typée attendue, obtenu %T", err)
	}
	if serr.Table != "clients" || serr.Op != "get" {
		t.Fatalf("contexte d'erreur incomplet: %+v", serr)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("la cause d'origine doit rester accessible")
	}
}

func TestStoreSuppressionSansCascade(t *testing.T) {
	db := setupTestDB(t, t.Name())
	ctx := context.Background()
	clients := New[models.Client](db, "clients", NopReporter{})
	paiements := New[models.Payment](db, "payments", NopReporter{})

	c, err := clients.Insert(ctx, &models.Client{Nom: "Sow"})
	if err != nil {
		t.Fatalf("insert client: %v", err)
	}
	p, err := paiements.Insert(ctx, &models.Payment{
		ClientID: &c.ID, Montant: 1000, Secteur: models.SecteurVoyage,
		Methode: "especes", Statut: models.StatutPaiementComplete,
	})
	if err != nil {
		t.Fatalf("insert paiement: %v", err)
	}

	if err := clients.Delete(ctx, c.ID); err != nil {
		t.Fatalf("delete client: %v", err)
	}

	// le paiement survit, orphelin
	survivant, err := paiements.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("paiement perdu après suppression du client: %v", err)
	}
	if survivant.ClientID == nil || *survivant.ClientID != c.ID {
		t.Fatalf("référence orpheline attendue: %+v", survivant.ClientID)
	}
}

func TestRepositoryPartageLaConnexion(t *testing.T) {
	db := setupTestDB(t, t.Name())
	repo := NewRepository(db, NopReporter{})
	if repo.DB() != db {
		t.Fatalf("le dépôt doit exposer la connexion d'origine")
	}
	if repo.Clients == nil || repo.Paiements == nil || repo.Suivis == nil {
		t.Fatalf("magasins non initialisés")
	}
}
