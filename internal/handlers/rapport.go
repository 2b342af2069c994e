package handlers

import (
	"net/http"
	"time"

	"github.com/diewo77/gestion-pro/internal/httpx"
	"github.com/diewo77/gestion-pro/internal/report"
	"github.com/diewo77/gestion-pro/internal/services"
	"github.com/diewo77/gestion-pro/internal/store"
	"github.com/google/uuid"
)

// RapportHandler exporte les collections en PDF ou classeur Excel, livré en
// téléchargement direct. Rien n'est conservé côté serveur.
type RapportHandler struct {
	Repo    *store.Repository
	Refresh *services.Rafraichisseur
}

func NewRapportHandler(repo *store.Repository, refresh *services.Rafraichisseur) *RapportHandler {
	return &RapportHandler{Repo: repo, Refresh: refresh}
}

// Clients : GET /rapports/clients?format=pdf|excel
func (h *RapportHandler) Clients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Repo.Clients.List(r.Context())
	if err != nil {
		httpx.JSONError(w, statusFor(err), "list_failed", nil)
		return
	}
	h.livrer(w, r, report.TableauClients(clients, time.Now()), "clients")
}

// Paiements : GET /rapports/paiements?format=pdf|excel
func (h *RapportHandler) Paiements(w http.ResponseWriter, r *http.Request) {
	paiements, err := h.Repo.Paiements.List(r.Context())
	if err != nil {
		httpx.JSONError(w, statusFor(err), "list_failed", nil)
		return
	}
	h.livrer(w, r, report.TableauPaiements(paiements, time.Now()), "paiements")
}

// Bilan : GET /rapports/bilan?format=pdf|excel — bilan dérivé courant.
func (h *RapportHandler) Bilan(w http.ResponseWriter, r *http.Request) {
	if err := h.Refresh.Tick(r.Context()); err != nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, "bilan_unavailable", nil)
		return
	}
	h.livrer(w, r, report.TableauBilan(h.Refresh.Bilan()), "bilan")
}

func (h *RapportHandler) livrer(w http.ResponseWriter, r *http.Request, t report.Tableau, nom string) {
	// suffixe unique pour que les téléchargements successifs ne s'écrasent pas
	fichier := nom + "-" + time.Now().Format("20060102") + "-" + uuid.NewString()[:8]
	switch r.URL.Query().Get("format") {
	case "excel", "xlsx":
		data, err := report.Classeur(t)
		if err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "excel_generation_failed", nil)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="`+fichier+`.xlsx"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	default:
		data, err := report.PDF(t)
		if err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="`+fichier+`.pdf"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
