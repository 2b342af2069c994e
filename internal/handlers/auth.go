package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/diewo77/gestion-pro/internal/auth"
	"github.com/diewo77/gestion-pro/internal/httpx"
	"github.com/diewo77/gestion-pro/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ensureDefaultRole fetches or creates the base "user" role.
func ensureDefaultRole(db *gorm.DB) (*models.Role, error) {
	var role models.Role
	if err := db.Where("name = ?", "user").First(&role).Error; err == nil {
		return &role, nil
	}
	role = models.Role{Name: "user", Description: "Default user role"}
	if err := db.Create(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

type AuthHandler struct{ DB *gorm.DB }

func NewAuthHandler(db *gorm.DB) *AuthHandler { return &AuthHandler{DB: db} }

func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/signup", h.signup)
	mux.HandleFunc("/login", h.login)
	mux.HandleFunc("/logout", h.logout)
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Nom      string `json:"nom"`
		Prenom   string `json:"prenom"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))
	if email == "" || body.Password == "" {
		httpx.JSONError(w, http.StatusBadRequest, "email_password_required", nil)
		return
	}
	var count int64
	h.DB.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httpx.JSONError(w, http.StatusConflict, "email_already_used", nil)
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "hash_failed", nil)
		return
	}
	role, err := ensureDefaultRole(h.DB)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "role_failed", nil)
		return
	}
	user := models.User{Email: email, Password: string(hash), Nom: strings.TrimSpace(body.Nom), Prenom: strings.TrimSpace(body.Prenom), RoleID: role.ID}
	if err := h.DB.Create(&user).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "signup_failed", nil)
		return
	}
	auth.CreateSession(w, user.ID)
	httpx.JSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	var user models.User
	if err := h.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(body.Email))).First(&user).Error; err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	auth.CreateSession(w, user.ID)
	httpx.JSON(w, http.StatusOK, user)
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	httpx.JSON(w, http.StatusOK, map[string]any{"ok": true})
}

// ChangePassword : POST /profile/password, session requise.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok || uid == 0 {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var body struct {
		Current string `json:"current_password"`
		New     string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if len(body.New) < 8 {
		httpx.JSONError(w, http.StatusBadRequest, "password_too_short", nil)
		return
	}
	var user models.User
	if err := h.DB.First(&user, uid).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "user_not_found", nil)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Current)); err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(body.New), bcrypt.DefaultCost)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "hash_failed", nil)
		return
	}
	if err := h.DB.Model(&user).Update("password", string(hash)).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"ok": true})
}
