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

// ClientHandler : CRUD clients avec validation des tags secteur et du statut.
type ClientHandler struct {
	Store *store.Store[models.Client]
}

func NewClientHandler(s *store.Store[models.Client]) *ClientHandler { return &ClientHandler{Store: s} }

func validerClient(c *models.Client) validation.Violations {
	v := validation.Violations{}
	validation.Required("nom", c.Nom, v)
	if len(c.Secteurs) == 0 {
		v["secteurs"] = "required"
	}
	for _, s := range c.Secteurs {
		if !models.SecteurValide(s) {
			v["secteurs"] = "invalid_value"
			break
		}
	}
	if c.Statut != "" {
		validation.OneOf("statut", c.Statut, []string{
			models.StatutClientActif, models.StatutClientInactif, models.StatutClientSuspendu,
		}, v)
	}
	return v
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Store.List(r.Context())
	if err != nil {
		httpx.JSONError(w, statusFor(err), "list_failed", nil)
		return
	}
	// filtres optionnels ?secteur= & ?statut=
	secteur := strings.TrimSpace(r.URL.Query().Get("secteur"))
	statut := strings.TrimSpace(r.URL.Query().Get("statut"))
	if secteur != "" || statut != "" {
		filtered := rows[:0]
		for _, c := range rows {
			if secteur != "" && !c.DansSecteur(secteur) {
				continue
			}
			if statut != "" && c.Statut != statut {
				continue
			}
			filtered = append(filtered, c)
		}
		rows = filtered
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "total": len(rows)})
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c models.Client
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if c.Statut == "" {
		c.Statut = models.StatutClientActif
	}
	if v := validerClient(&c); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	created, err := h.Store.Insert(r.Context(), &c)
	if err != nil {
		httpx.JSONError(w, statusFor(err), "client_create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodPut && r.Method != http.MethodPatch {
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	id := idFrom(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var body struct {
		Nom       *string            `json:"nom"`
		Prenom    *string            `json:"prenom"`
		Email     *string            `json:"email"`
		Telephone *string            `json:"telephone"`
		Adresse   *string            `json:"adresse"`
		Ville     *string            `json:"ville"`
		Secteurs  *models.StringList `json:"secteurs"`
		Statut    *string            `json:"statut"`
		Notes     *string            `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	patch := map[string]any{}
	if body.Nom != nil {
		patch["nom"] = *body.Nom
	}
	if body.Prenom != nil {
		patch["prenom"] = *body.Prenom
	}
	if body.Email != nil {
		patch["email"] = *body.Email
	}
	if body.Telephone != nil {
		patch["telephone"] = *body.Telephone
	}
	if body.Adresse != nil {
		patch["adresse"] = *body.Adresse
	}
	if body.Ville != nil {
		patch["ville"] = *body.Ville
	}
	if body.Secteurs != nil {
		v := validation.Violations{}
		for _, s := range *body.Secteurs {
			if !models.SecteurValide(s) {
				v["secteurs"] = "invalid_value"
			}
		}
		if !v.Empty() {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
			return
		}
		patch["secteurs"] = *body.Secteurs
	}
	if body.Statut != nil {
		v := validation.Violations{}
		validation.OneOf("statut", *body.Statut, []string{
			models.StatutClientActif, models.StatutClientInactif, models.StatutClientSuspendu,
		}, v)
		if !v.Empty() {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
			return
		}
		patch["statut"] = *body.Statut
	}
	if body.Notes != nil {
		patch["notes"] = *body.Notes
	}
	if len(patch) == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "empty_patch", nil)
		return
	}
	updated, err := h.Store.Update(r.Context(), id, patch)
	if err != nil {
		httpx.JSONError(w, statusFor(err), "client_update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

// Delete supprime le client (action "rejeter le prospect"). Les paiements et
// suivis déjà créés ne sont pas supprimés en cascade.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
		httpx.JSONError(w, statusFor(err), "client_delete_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"deleted": id,
		"message": i18n.T(middleware.LangFrom(r), "deleted"),
	})
}
