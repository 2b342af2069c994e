package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/diewo77/gestion-pro/internal/models"
	"github.com/diewo77/gestion-pro/internal/services"
)

func setupDashboard(t *testing.T) (*DashboardHandler, *services.Rafraichisseur) {
	repo := setupRepo(t)
	centre := services.NewCentre()
	refresh := services.NewRafraichisseur(repo, centre, 0)
	return NewDashboardHandler(repo, refresh, centre), refresh
}

func TestDashboardStatsEtBilan(t *testing.T) {
	h, refresh := setupDashboard(t)

	c := models.Client{Nom: "Durand", Secteurs: models.StringList{models.SecteurImmobilier}, Statut: models.StatutClientActif}
	if err := h.DB.Create(&c).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	p := models.Payment{Secteur: models.SecteurVoyage, Montant: 850000, Statut: models.StatutPaiementComplete}
	if err := h.DB.Create(&p).Error; err != nil {
		t.Fatalf("seed paiement: %v", err)
	}
	if err := refresh.Tick(httptest.NewRequest(http.MethodGet, "/", nil).Context()); err != nil {
		t.Fatalf("tick: %v", err)
	}

	resp := httptest.NewRecorder()
	h.Stats(resp, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var out struct {
		Stats struct {
			Clients   int64 `json:"clients"`
			Paiements int64 `json:"paiements"`
		} `json:"stats"`
		Bilan services.BilanFinancier `json:"bilan"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Stats.Clients != 1 || out.Stats.Paiements != 1 {
		t.Fatalf("compteurs: %+v", out.Stats)
	}
	// 1 client immobilier + un paiement voyage completed
	if out.Bilan.Revenus.Immobilier != services.ValeurMoyenneBien {
		t.Fatalf("revenus immobilier: %v", out.Bilan.Revenus.Immobilier)
	}
	if out.Bilan.Revenus.Voyage != 850000 {
		t.Fatalf("revenus voyage: %v", out.Bilan.Revenus.Voyage)
	}
}

func TestDashboardNotificationsCycle(t *testing.T) {
	h, refresh := setupDashboard(t)

	c := models.Client{Nom: "Neuf", Secteurs: models.StringList{models.SecteurVoyage}, Statut: models.StatutClientActif}
	if err := h.DB.Create(&c).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := refresh.Tick(httptest.NewRequest(http.MethodGet, "/", nil).Context()); err != nil {
		t.Fatalf("tick: %v", err)
	}

	list := httptest.NewRecorder()
	h.Notifications(list, httptest.NewRequest(http.MethodGet, "/notifications", nil))
	var page struct {
		Items   []services.Notification `json:"items"`
		NonLues int                     `json:"non_lues"`
	}
	if err := json.Unmarshal(list.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(page.Items) == 0 || page.NonLues == 0 {
		t.Fatalf("notifications attendues: %+v", page)
	}
	id := page.Items[0].ID

	lue := httptest.NewRecorder()
	h.MarquerLue(lue, httptest.NewRequest(http.MethodPost, "/notifications/lue?id="+id, nil))
	if lue.Code != http.StatusOK {
		t.Fatalf("marquer lue: expected 200 got %d", lue.Code)
	}

	inconnue := httptest.NewRecorder()
	h.MarquerLue(inconnue, httptest.NewRequest(http.MethodPost, "/notifications/lue?id=fantome", nil))
	if inconnue.Code != http.StatusNotFound {
		t.Fatalf("id inconnu: expected 404 got %d", inconnue.Code)
	}

	del := httptest.NewRecorder()
	h.Supprimer(del, httptest.NewRequest(http.MethodPost, "/notifications/supprimer?id="+id, nil))
	if del.Code != http.StatusOK {
		t.Fatalf("supprimer: expected 200 got %d", del.Code)
	}

	get := httptest.NewRecorder()
	h.MarquerLue(get, httptest.NewRequest(http.MethodGet, "/notifications/lue?id=x", nil))
	if get.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET refusé: expected 405 got %d", get.Code)
	}
}
