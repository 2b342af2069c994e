package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/diewo77/gestion-pro/internal/httpx"
	"github.com/diewo77/gestion-pro/internal/i18n"
	"github.com/diewo77/gestion-pro/internal/middleware"
	"github.com/diewo77/gestion-pro/internal/store"
	"github.com/diewo77/gestion-pro/internal/validation"
)

// statusFor mappe la taxonomie d'erreurs du magasin sur les statuts HTTP.
func statusFor(err error) int {
	switch store.KindOf(err) {
	case store.KindIntrouvable:
		return http.StatusNotFound
	case store.KindValidation:
		return http.StatusBadRequest
	case store.KindPermission:
		return http.StatusForbidden
	case store.KindConnexion:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func idFrom(r *http.Request) uint {
	idStr := r.URL.Query().Get("id")
	if idStr == "" {
		idStr = r.FormValue("id")
	}
	id, _ := strconv.Atoi(idStr)
	if id < 0 {
		return 0
	}
	return uint(id)
}

// Resource : handler CRUD générique par entité, toutes les entités simples
// (propriétés, contrats, réservations...) partagent exactement ce cycle.
// Les entités à logique propre (clients, paiements, suivis) ont leur handler.
type Resource[T any] struct {
	Store   *store.Store[T]
	Valider func(*T) validation.Violations // optionnel
}

func NewResource[T any](s *store.Store[T], valider func(*T) validation.Violations) *Resource[T] {
	return &Resource[T]{Store: s, Valider: valider}
}

// Register câble la ressource sur /base, /base/update et /base/delete,
// chaque route passant par le wrapper fourni (auth).
func (h *Resource[T]) Register(mux *http.ServeMux, base string, wrap func(http.Handler) http.Handler) {
	mux.Handle(base, wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.List(w, r)
		case http.MethodPost:
			h.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})))
	mux.Handle(base+"/update", wrap(http.HandlerFunc(h.Update)))
	mux.Handle(base+"/delete", wrap(http.HandlerFunc(h.Delete)))
}

func (h *Resource[T]) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Store.List(r.Context())
	if err != nil {
		httpx.JSONError(w, statusFor(err), "list_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "total": len(rows)})
}

func (h *Resource[T]) Create(w http.ResponseWriter, r *http.Request) {
	var row T
	if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if h.Valider != nil {
		if v := h.Valider(&row); !v.Empty() {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
			return
		}
	}
	created, err := h.Store.Insert(r.Context(), &row)
	if err != nil {
		httpx.JSONError(w, statusFor(err), "create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Resource[T]) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodPut && r.Method != http.MethodPatch {
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	id := idFrom(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	// champs non modifiables par patch
	delete(patch, "id")
	delete(patch, "created_at")
	delete(patch, "updated_at")
	if len(patch) == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "empty_patch", nil)
		return
	}
	updated, err := h.Store.Update(r.Context(), id, patch)
	if err != nil {
		httpx.JSONError(w, statusFor(err), "update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Resource[T]) Delete(w http.ResponseWriter, r *http.Request) {
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
		httpx.JSONError(w, statusFor(err), "delete_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"deleted": id,
		"message": i18n.T(middleware.LangFrom(r), "deleted"),
	})
}
