package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diewo77/gestion-pro/internal/messaging"
	"github.com/diewo77/gestion-pro/internal/models"
	"github.com/diewo77/gestion-pro/internal/services"
	"github.com/diewo77/gestion-pro/internal/store"
)

func setupSuivi(t *testing.T) (*SuiviHandler, *store.Repository) {
	repo := setupRepo(t)
	// les URLs de fonctions vides font échouer tout envoi réel
	fc := messaging.NewFunctionClient("", "")
	svc := services.NewSuiviService(repo.DB(), fc, fc)
	return NewSuiviHandler(repo.Suivis, svc), repo
}

func TestSuiviUpsertHTTP(t *testing.T) {
	h, repo := setupSuivi(t)

	c := models.Client{Nom: "Durand", Secteurs: models.StringList{models.SecteurVoyage}, Statut: models.StatutClientActif}
	if err := repo.DB().Create(&c).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	resp := httptest.NewRecorder()
	h.Upsert(resp, httptest.NewRequest(http.MethodPost, "/suivis",
		strings.NewReader(`{"client_id":1,"priorite":"high"}`)))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", resp.Code, resp.Body.String())
	}
	var suivi models.ClientFollowUp
	if err := json.Unmarshal(resp.Body.Bytes(), &suivi); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if suivi.Priorite != models.PrioriteHaute || suivi.Statut != models.SuiviProspect {
		t.Fatalf("fusion défauts: %+v", suivi)
	}

	sans := httptest.NewRecorder()
	h.Upsert(sans, httptest.NewRequest(http.MethodPost, "/suivis", strings.NewReader(`{"priorite":"high"}`)))
	if sans.Code != http.StatusBadRequest {
		t.Fatalf("client_id manquant: expected 400 got %d", sans.Code)
	}

	invalide := httptest.NewRecorder()
	h.Upsert(invalide, httptest.NewRequest(http.MethodPost, "/suivis",
		strings.NewReader(`{"client_id":1,"statut":"perdu"}`)))
	if invalide.Code != http.StatusBadRequest {
		t.Fatalf("statut invalide: expected 400 got %d", invalide.Code)
	}
}

func TestSuiviEnvoyerEchecTransport(t *testing.T) {
	h, repo := setupSuivi(t)

	c := models.Client{Nom: "Sow", Email: "sow@example.com", Secteurs: models.StringList{models.SecteurVoyage}, Statut: models.StatutClientActif}
	if err := repo.DB().Create(&c).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	resp := httptest.NewRecorder()
	h.Envoyer(resp, httptest.NewRequest(http.MethodPost, "/communications/envoyer",
		strings.NewReader(`{"client_id":1,"canal":"email","contenu":"Bonjour {prenom}"}`)))
	// transport en échec : 502 avec l'entrée de journal failed
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 got %d body=%s", resp.Code, resp.Body.String())
	}
	var entry models.CommunicationLog
	if err := json.Unmarshal(resp.Body.Bytes(), &entry); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if entry.Statut != models.EnvoiFailed || entry.ID == 0 {
		t.Fatalf("entrée failed attendue: %+v", entry)
	}

	journal := httptest.NewRecorder()
	h.Journal(journal, httptest.NewRequest(http.MethodGet, "/communications?client_id=1", nil))
	if journal.Code != http.StatusOK || !strings.Contains(journal.Body.String(), `"total":1`) {
		t.Fatalf("journal: %d %s", journal.Code, journal.Body.String())
	}
}

func TestSuiviEnvoyerValidation(t *testing.T) {
	h, _ := setupSuivi(t)

	cases := []string{
		`{"canal":"email","contenu":"x"}`,
		`{"client_id":1,"canal":"pigeon","contenu":"x"}`,
		`{"client_id":1,"canal":"email"}`,
	}
	for _, body := range cases {
		resp := httptest.NewRecorder()
		h.Envoyer(resp, httptest.NewRequest(http.MethodPost, "/communications/envoyer", strings.NewReader(body)))
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 got %d", body, resp.Code)
		}
	}

	introuvable := httptest.NewRecorder()
	h.Envoyer(introuvable, httptest.NewRequest(http.MethodPost, "/communications/envoyer",
		strings.NewReader(`{"client_id":99,"canal":"email","contenu":"x"}`)))
	if introuvable.Code != http.StatusNotFound {
		t.Fatalf("client inconnu: expected 404 got %d", introuvable.Code)
	}
}
