package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/adityalohuni/AutoBlog/internal/api"
	"github.com/adityalohuni/AutoBlog/internal/domain"
)

type PromptStore interface {
	Templates() (map[string]domain.PromptTemplate, error)
	Template(category string) (*domain.PromptTemplate, error)
}

// PromptHandler serves the prompt template catalog read-only.
type PromptHandler struct {
	store PromptStore
}

func NewPromptHandler(store PromptStore) *PromptHandler {
	return &PromptHandler{store: store}
}

func (h *PromptHandler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.store.Templates()
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, templates)
}

func (h *PromptHandler) Get(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if category == "" {
		api.Error(w, http.StatusBadRequest, "category is required")
		return
	}

	tpl, err := h.store.Template(category)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, tpl)
}
