package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/diewo77/gestion-pro/internal/auth"
	"github.com/diewo77/gestion-pro/internal/handlers"
	"github.com/diewo77/gestion-pro/internal/httpx"
	"github.com/diewo77/gestion-pro/internal/middleware"
	"github.com/diewo77/gestion-pro/internal/models"
	"github.com/diewo77/gestion-pro/internal/services"
	"github.com/diewo77/gestion-pro/internal/store"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(repo *store.Repository, suiviSvc *services.SuiviService, refresh *services.Rafraichisseur, centre *services.Centre) http.Handler {
	db := repo.DB()
	mux := http.NewServeMux()

	// RequireAuth vérifie que la session pointe toujours vers un utilisateur réel.
	auth.SetUserVerifier(func(_ context.Context, uid uint) bool {
		var count int64
		if err := db.Model(&models.User{}).Where("id = ?", uid).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})

	protect := func(h http.Handler) http.Handler { return auth.Middleware(auth.RequireAuth(h)) }

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"degraded"}`))
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth endpoints
	authHandler := handlers.NewAuthHandler(db)
	authHandler.Register(mux)
	mux.Handle("/profile/password", auth.Middleware(http.HandlerFunc(authHandler.ChangePassword)))

	// Clients
	ch := handlers.NewClientHandler(repo.Clients)
	mux.Handle("/clients", protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ch.List(w, r)
		case http.MethodPost:
			ch.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})))
	mux.Handle("/clients/update", protect(http.HandlerFunc(ch.Update)))
	mux.Handle("/clients/delete", protect(http.HandlerFunc(ch.Delete)))

	// Paiements
	ph := handlers.NewPaiementHandler(repo.Paiements)
	mux.Handle("/paiements", protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ph.List(w, r)
		case http.MethodPost:
			ph.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})))
	mux.Handle("/paiements/update", protect(http.HandlerFunc(ph.Update)))
	mux.Handle("/paiements/delete", protect(http.HandlerFunc(ph.Delete)))

	// Entités CRUD simples, un cycle identique par secteur
	handlers.NewResource(repo.Proprietes, nil).Register(mux, "/proprietes", protect)
	handlers.NewResource(repo.Contrats, nil).Register(mux, "/contrats", protect)
	handlers.NewResource(repo.Maintenance, nil).Register(mux, "/maintenance", protect)
	handlers.NewResource(repo.ReservationsVols, nil).Register(mux, "/reservations/vols", protect)
	handlers.NewResource(repo.ReservationsHotels, nil).Register(mux, "/reservations/hotels", protect)
	handlers.NewResource(repo.LocationsVehicules, nil).Register(mux, "/locations/vehicules", protect)
	handlers.NewResource(repo.AssurancesAuto, nil).Register(mux, "/assurances/auto", protect)
	handlers.NewResource(repo.Templates, nil).Register(mux, "/communications/templates", protect)

	// Suivi commercial & communications
	sh := handlers.NewSuiviHandler(repo.Suivis, suiviSvc)
	mux.Handle("/suivis", protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			sh.List(w, r)
		case http.MethodPost:
			sh.Upsert(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})))
	mux.Handle("/communications", protect(http.HandlerFunc(sh.Journal)))
	mux.Handle("/communications/envoyer", protect(http.HandlerFunc(sh.Envoyer)))

	// Dashboard, bilan & notifications
	dh := handlers.NewDashboardHandler(repo, refresh, centre)
	mux.Handle("/dashboard", protect(http.HandlerFunc(dh.Stats)))
	mux.Handle("/dashboard/bilan", protect(http.HandlerFunc(dh.Bilan)))
	mux.Handle("/notifications", protect(http.HandlerFunc(dh.Notifications)))
	mux.Handle("/notifications/lue", protect(http.HandlerFunc(dh.MarquerLue)))
	mux.Handle("/notifications/supprimer", protect(http.HandlerFunc(dh.Supprimer)))

	// Rapports (PDF / Excel)
	rh := handlers.NewRapportHandler(repo, refresh)
	mux.Handle("/rapports/clients", protect(http.HandlerFunc(rh.Clients)))
	mux.Handle("/rapports/paiements", protect(http.HandlerFunc(rh.Paiements)))
	mux.Handle("/rapports/bilan", protect(http.HandlerFunc(rh.Bilan)))

	// Racine : index texte sommaire
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Gestion Pro API"))
	})

	return middleware.Prefs(withRecover(withLogging(mux)))
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
