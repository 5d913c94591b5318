package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/adityalohuni/AutoBlog/internal/api"
	"github.com/adityalohuni/AutoBlog/internal/domain"
	"github.com/adityalohuni/AutoBlog/internal/service"
)

type ArticleService interface {
	Create(ctx context.Context, input service.CreateArticleInput) (*domain.Article, error)
	Get(ctx context.Context, id int64) (*domain.Article, error)
	List(ctx context.Context, input service.ListArticlesInput) (*service.ListArticlesOutput, error)
	Update(ctx context.Context, input service.UpdateArticleInput) (*domain.Article, error)
	Delete(ctx context.Context, id int64) error
	Related(ctx context.Context, id int64, limit int) ([]*domain.Article, error)
}

type ArticleHandler struct {
	svc ArticleService
}

func NewArticleHandler(svc ArticleService) *ArticleHandler {
	return &ArticleHandler{svc: svc}
}

type CreateArticleRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type UpdateArticleRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type ArticleResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

func articleToResponse(a *domain.Article) *ArticleResponse {
	return &ArticleResponse{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		CreatedAt: a.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func articleID(r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	article, err := h.svc.Create(r.Context(), service.CreateArticleInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusCreated, articleToResponse(article))
}

func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := articleID(r)
	if !ok {
		api.Error(w, http.StatusBadRequest, "invalid article id")
		return
	}

	article, err := h.svc.Get(r.Context(), id)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, articleToResponse(article))
}

func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := articleID(r)
	if !ok {
		api.Error(w, http.StatusBadRequest, "invalid article id")
		return
	}

	var req UpdateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	article, err := h.svc.Update(r.Context(), service.UpdateArticleInput{
		ID:      id,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, articleToResponse(article))
}

func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := articleID(r)
	if !ok {
		api.Error(w, http.StatusBadRequest, "invalid article id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusNoContent, nil)
}

type ArticleListResponse struct {
	Items   []*ArticleResponse `json:"items"`
	Cursor  string             `json:"cursor,omitempty"`
	HasMore bool               `json:"has_more"`
}

func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	cursor := r.URL.Query().Get("cursor")
	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	output, err := h.svc.List(r.Context(), service.ListArticlesInput{
		Cursor: cursor,
		Limit:  limit,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	responses := make([]*ArticleResponse, len(output.Items))
	for i, a := range output.Items {
		responses[i] = articleToResponse(a)
	}

	api.Success(w, http.StatusOK, ArticleListResponse{
		Items:   responses,
		Cursor:  output.Cursor,
		HasMore: output.HasMore,
	})
}

type RelatedArticlesResponse struct {
	Items []*ArticleResponse `json:"items"`
}

func (h *ArticleHandler) Related(w http.ResponseWriter, r *http.Request) {
	id, ok := articleID(r)
	if !ok {
		api.Error(w, http.StatusBadRequest, "invalid article id")
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	related, err := h.svc.Related(r.Context(), id, limit)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	responses := make([]*ArticleResponse, len(related))
	for i, a := range related {
		responses[i] = articleToResponse(a)
	}

	api.Success(w, http.StatusOK, RelatedArticlesResponse{Items: responses})
}
