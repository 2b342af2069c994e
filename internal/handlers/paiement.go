package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/diewo77/gestion-pro/internal/httpx"
	"github.com/diewo77/gestion-pro/internal/i18n"
	"github.com/diewo77/gestion-pro/internal/middleware"
	"github.com/diewo77/gestion-pro/internal/models"
	"github.com/diewo77/gestion-pro/internal/store"
	"github.com/diewo77/gestion-pro/internal/validation"
)

// PaiementHandler : CRUD paiements. Le bloc de détails est une union
// discriminée par le secteur ; une branche d'un autre secteur est rejetée.
type PaiementHandler struct {
	Store *store.Store[models.Payment]
}

func NewPaiementHandler(s *store.Store[models.Payment]) *PaiementHandler {
	return &PaiementHandler{Store: s}
}

var statutsPaiement = []string{
	models.StatutPaiementComplete, models.StatutPaiementPartiel, models.StatutPaiementAttente,
}

func validerPaiement(p *models.Payment) validation.Violations {
	v := validation.Violations{}
	validation.OneOf("secteur", p.Secteur, models.Secteurs, v)
	validation.PositiveFloat("montant", p.Montant, v)
	validation.OneOf("statut", p.Statut, statutsPaiement, v)
	validation.RequiredDate("date_paiement", p.DatePaiement, v)
	if _, ok := v["secteur"]; !ok && !p.Details.Vide() && !p.Details.Coherente(p.Secteur) {
		v["details"] = "invalid_value"
	}
	return v
}

func (h *PaiementHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Store.List(r.Context())
	if err != nil {
		httpx.JSONError(w, statusFor(err), "list_failed", nil)
		return
	}
	secteur := strings.TrimSpace(r.URL.Query().Get("secteur"))
	if secteur != "" {
		filtered := rows[:0]
		for _, p := range rows {
			if p.Secteur == secteur {
				filtered = append(filtered, p)
			}
		}
		rows = filtered
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "total": len(rows)})
}

func (h *PaiementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p models.Payment
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if p.Statut == "" {
		p.Statut = models.StatutPaiementAttente
	}
	if v := validerPaiement(&p); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	created, err := h.Store.Insert(r.Context(), &p)
	if err != nil {
		httpx.JSONError(w, statusFor(err), "paiement_create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

// Update : seuls le statut, la méthode et les détails évoluent après saisie.
// Le montant et le secteur d'un paiement enregistré ne changent pas.
func (h *PaiementHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodPut && r.Method != http.MethodPatch {
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	id := idFrom(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	existant, err := h.Store.Get(r.Context(), id)
	if err != nil {
		httpx.JSONError(w, statusFor(err), "not_found", nil)
		return
	}
	var body struct {
		Statut  *string                 `json:"statut"`
		Methode *string                 `json:"methode"`
		Details *models.DetailsPaiement `json:"details"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	patch := map[string]any{}
	if body.Statut != nil {
		v := validation.Violations{}
		validation.OneOf("statut", *body.Statut, statutsPaiement, v)
		if !v.Empty() {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
			return
		}
		patch["statut"] = *body.Statut
	}
	if body.Methode != nil {
		patch["methode"] = *body.Methode
	}
	if body.Details != nil {
		if !body.Details.Vide() && !body.Details.Coherente(existant.Secteur) {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed",
				validation.Violations{"details": "invalid_value"})
			return
		}
		patch["details"] = *body.Details
	}
	if len(patch) == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "empty_patch", nil)
		return
	}
	updated, err := h.Store.Update(r.Context(), id, patch)
	if err != nil {
		httpx.JSONError(w, statusFor(err), "paiement_update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *PaiementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	id := idFrom(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Store.Delete(r.Context(), id); err != nil {
		httpx.JSONError(w, statusFor(err), "paiement_delete_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"deleted": id,
		"message": i18n.T(middleware.LangFrom(r), "deleted"),
	})
}
