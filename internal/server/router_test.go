package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/gestion-pro/internal/auth"
	"github.com/diewo77/gestion-pro/internal/db"
	"github.com/diewo77/gestion-pro/internal/messaging"
	"github.com/diewo77/gestion-pro/internal/models"
	"github.com/diewo77/gestion-pro/internal/services"
	"github.com/diewo77/gestion-pro/internal/store"
)

func setupRouter(t *testing.T) (http.Handler, *gorm.DB) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	dbi, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("db open: %v", err)
	}
	if err := db.AutoMigrate(dbi); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	repo := store.NewRepository(dbi, store.NopReporter{})
	fc := messaging.NewFunctionClient("", "")
	suiviSvc := services.NewSuiviService(dbi, fc, fc)
	centre := services.NewCentre()
	refresh := services.NewRafraichisseur(repo, centre, 0)
	return New(repo, suiviSvc, refresh, centre), dbi
}

func TestHealthz(t *testing.T) {
	h, _ := setupRouter(t)
	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
}

func TestRoutesProtegees(t *testing.T) {
	h, _ := setupRouter(t)
	for _, route := range []string{"/clients", "/paiements", "/suivis", "/dashboard", "/notifications", "/rapports/clients"} {
		r := httptest.NewRequest(http.MethodGet, route, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s sans session: expected 401 got %d", route, w.Code)
		}
	}
}

func TestRouteAvecSession(t *testing.T) {
	h, dbi := setupRouter(t)

	user := models.User{Email: "tester@example.com", Password: "hash"}
	if err := dbi.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	sessW := httptest.NewRecorder()
	auth.CreateSession(sessW, user.ID)
	cookie := sessW.Result().Cookies()[0]

	r := httptest.NewRequest(http.MethodGet, "/clients", nil)
	r.AddCookie(cookie)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	// session orpheline (utilisateur supprimé) rejetée
	if err := dbi.Delete(&models.User{}, user.ID).Error; err != nil {
		t.Fatalf("delete user: %v", err)
	}
	again := httptest.NewRecorder()
	r2 := httptest.NewRequest(http.MethodGet, "/clients", nil)
	r2.AddCookie(cookie)
	h.ServeHTTP(again, r2)
	if again.Code != http.StatusUnauthorized {
		t.Fatalf("session orpheline: expected 401 got %d", again.Code)
	}
}
