package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/diewo77/gestion-pro/internal/httpx"
	"github.com/diewo77/gestion-pro/internal/models"
	"github.com/diewo77/gestion-pro/internal/services"
	"github.com/diewo77/gestion-pro/internal/store"
	"github.com/diewo77/gestion-pro/internal/validation"
)

// SuiviHandler expose le suivi commercial : fiches de suivi (upsert),
// journal des communications et envoi.
type SuiviHandler struct {
	Store *store.Store[models.ClientFollowUp]
	Svc   *services.SuiviService
}

func NewSuiviHandler(s *store.Store[models.ClientFollowUp], svc *services.SuiviService) *SuiviHandler {
	return &SuiviHandler{Store: s, Svc: svc}
}

func (h *SuiviHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Store.List(r.Context())
	if err != nil {
		httpx.JSONError(w, statusFor(err), "list_failed", nil)
		return
	}
	statut := r.URL.Query().Get("statut")
	if statut != "" {
		filtered := rows[:0]
		for _, s := range rows {
			if s.Statut == statut {
				filtered = append(filtered, s)
			}
		}
		rows = filtered
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "total": len(rows)})
}

// Upsert : POST /suivis. Crée ou fusionne la fiche du client, jamais de doublon.
func (h *SuiviHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var in services.SuiviInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if in.ClientID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed",
			validation.Violations{"client_id": "required"})
		return
	}
	v := validation.Violations{}
	if in.Statut != nil {
		validation.OneOf("statut", *in.Statut, []string{
			models.SuiviProspect, models.SuiviARelancer, models.SuiviActif, models.SuiviInactif,
		}, v)
	}
	if in.Priorite != nil {
		validation.OneOf("priorite", *in.Priorite, []string{
			models.PrioriteBasse, models.PrioriteMoyenne, models.PrioriteHaute,
		}, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	suivi, err := h.Svc.Upsert(r.Context(), in)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "suivi_upsert_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, suivi)
}

// Envoyer : POST /communications/envoyer. Une entrée de journal est écrite
// quelle que soit l'issue ; l'échec d'envoi est signalé avec le journal.
func (h *SuiviHandler) Envoyer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	var in services.EnvoiInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	if in.ClientID == 0 {
		v["client_id"] = "required"
	}
	validation.OneOf("canal", in.Canal, []string{models.CanalEmail, models.CanalSMS}, v)
	validation.Required("contenu", in.Contenu, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	entry, err := h.Svc.Envoyer(r.Context(), in)
	switch {
	case errors.Is(err, services.ErrClientIntrouvable):
		httpx.JSONError(w, http.StatusNotFound, "client_not_found", nil)
	case errors.Is(err, services.ErrCanalInconnu):
		httpx.JSONError(w, http.StatusBadRequest, "invalid_canal", nil)
	case err != nil:
		// envoi en échec : l'entrée de journal existe, on la retourne avec le statut failed
		httpx.JSON(w, http.StatusBadGateway, entry)
	default:
		httpx.JSON(w, http.StatusOK, entry)
	}
}

// Journal : GET /communications?client_id=N
func (h *SuiviHandler) Journal(w http.ResponseWriter, r *http.Request) {
	clientID, _ := strconv.Atoi(r.URL.Query().Get("client_id"))
	logs, err := h.Svc.Journal(r.Context(), uint(clientID))
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "journal_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": logs, "total": len(logs)})
}
