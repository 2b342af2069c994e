package handlers

import (
	"net/http"

	"github.com/diewo77/gestion-pro/internal/httpx"
	"github.com/diewo77/gestion-pro/internal/models"
	"github.com/diewo77/gestion-pro/internal/services"
	"github.com/diewo77/gestion-pro/internal/store"
	"gorm.io/gorm"
)

// DashboardHandler sert les vues dérivées : compteurs, bilan financier et
// notifications. Rien ici n'est persisté ; tout vient du rafraîchisseur.
type DashboardHandler struct {
	DB      *gorm.DB
	Repo    *store.Repository
	Refresh *services.Rafraichisseur
	Centre  *services.Centre
}

func NewDashboardHandler(repo *store.Repository, refresh *services.Rafraichisseur, centre *services.Centre) *DashboardHandler {
	return &DashboardHandler{DB: repo.DB(), Repo: repo, Refresh: refresh, Centre: centre}
}

// Stats : GET /dashboard — compteurs par entité, derniers enregistrements et bilan.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	var clientCount, paiementCount, suiviCount int64
	h.DB.Model(&models.Client{}).Count(&clientCount)
	h.DB.Model(&models.Payment{}).Count(&paiementCount)
	h.DB.Model(&models.ClientFollowUp{}).Count(&suiviCount)

	var recentsClients []models.Client
	h.DB.Order("created_at desc").Limit(5).Find(&recentsClients)
	var recentsPaiements []models.Payment
	h.DB.Order("created_at desc").Limit(5).Find(&recentsPaiements)

	httpx.JSON(w, http.StatusOK, map[string]any{
		"stats": map[string]any{
			"clients":   clientCount,
			"paiements": paiementCount,
			"suivis":    suiviCount,
		},
		"clients_recents":   recentsClients,
		"paiements_recents": recentsPaiements,
		"bilan":             h.Refresh.Bilan(),
	})
}

// Bilan : GET /dashboard/bilan — recalcul à la demande puis dernier état.
func (h *DashboardHandler) Bilan(w http.ResponseWriter, r *http.Request) {
	if err := h.Refresh.Tick(r.Context()); err != nil {
		// dernier état connu servi malgré l'échec de lecture
		httpx.JSON(w, http.StatusOK, h.Refresh.Bilan())
		return
	}
	httpx.JSON(w, http.StatusOK, h.Refresh.Bilan())
}

// Notifications : GET /notifications — liste dérivée courante.
func (h *DashboardHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items":    h.Centre.Liste(),
		"non_lues": h.Centre.NonLues(),
	})
}

// MarquerLue : POST /notifications/lue?id=...
func (h *DashboardHandler) MarquerLue(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		h.Centre.MarquerToutesLues()
		httpx.JSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}
	if !h.Centre.MarquerLue(id) {
		httpx.JSONError(w, http.StatusNotFound, "notification_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"ok": true})
}

// Supprimer : POST /notifications/supprimer?id=...
func (h *DashboardHandler) Supprimer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" || !h.Centre.Supprimer(id) {
		httpx.JSONError(w, http.StatusNotFound, "notification_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"ok": true})
}
