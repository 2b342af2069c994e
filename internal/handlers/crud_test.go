package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diewo77/gestion-pro/internal/models"
	"github.com/diewo77/gestion-pro/internal/validation"
)

func TestResourceCycleComplet(t *testing.T) {
	repo := setupRepo(t)
	res := NewResource(repo.Proprietes, func(p *models.Propriete) validation.Violations {
		v := validation.Violations{}
		validation.Required("nom", p.Nom, v)
		return v
	})
	mux := http.NewServeMux()
	res.Register(mux, "/proprietes", func(h http.Handler) http.Handler { return h })

	// validation en création
	bad := httptest.NewRecorder()
	mux.ServeHTTP(bad, httptest.NewRequest(http.MethodPost, "/proprietes", strings.NewReader(`{"ville":"Lyon"}`)))
	if bad.Code != http.StatusBadRequest {
		t.Fatalf("nom manquant: expected 400 got %d", bad.Code)
	}

	create := httptest.NewRecorder()
	mux.ServeHTTP(create, httptest.NewRequest(http.MethodPost, "/proprietes",
		strings.NewReader(`{"nom":"T3 Centre","ville":"Lyon","loyer_mensuel":900}`)))
	if create.Code != http.StatusCreated {
		t.Fatalf("create: expected 201 got %d body=%s", create.Code, create.Body.String())
	}
	var created models.Propriete
	if err := json.Unmarshal(create.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Statut != "disponible" {
		t.Fatalf("statut par défaut: %q", created.Statut)
	}

	// patch libre, champs système filtrés
	update := httptest.NewRecorder()
	mux.ServeHTTP(update, httptest.NewRequest(http.MethodPost, "/proprietes/update?id=1",
		strings.NewReader(`{"statut":"loue","id":999,"created_at":"2020-01-01T00:00:00Z"}`)))
	if update.Code != http.StatusOK {
		t.Fatalf("update: expected 200 got %d body=%s", update.Code, update.Body.String())
	}
	var updated models.Propriete
	if err := json.Unmarshal(update.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.ID != created.ID || updated.Statut != "loue" {
		t.Fatalf("patch: %+v", updated)
	}

	list := httptest.NewRecorder()
	mux.ServeHTTP(list, httptest.NewRequest(http.MethodGet, "/proprietes", nil))
	if list.Code != http.StatusOK || !strings.Contains(list.Body.String(), `"total":1`) {
		t.Fatalf("list: %d %s", list.Code, list.Body.String())
	}

	del := httptest.NewRecorder()
	mux.ServeHTTP(del, httptest.NewRequest(http.MethodPost, "/proprietes/delete?id=1", nil))
	if del.Code != http.StatusOK {
		t.Fatalf("delete: expected 200 got %d", del.Code)
	}
	encore := httptest.NewRecorder()
	mux.ServeHTTP(encore, httptest.NewRequest(http.MethodPost, "/proprietes/delete?id=1", nil))
	if encore.Code != http.StatusNotFound {
		t.Fatalf("delete répété: expected 404 got %d", encore.Code)
	}
}
