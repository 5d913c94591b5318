package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/adityalohuni/AutoBlog/internal/api"
	"github.com/adityalohuni/AutoBlog/internal/api/middleware"
)

// AuthHandler validates admin credentials so clients can check a login
// before issuing mutating requests.
type AuthHandler struct {
	validator middleware.CredentialValidator
}

func NewAuthHandler(validator middleware.CredentialValidator) *AuthHandler {
	return &AuthHandler{validator: validator}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Username string `json:"username"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateCredentials(req.Username, req.Password); err != nil {
		api.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	api.Success(w, http.StatusOK, LoginResponse{Username: req.Username})
}
