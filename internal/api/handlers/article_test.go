package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/adityalohuni/AutoBlog/internal/domain"
	"github.com/adityalohuni/AutoBlog/internal/service"
)

type MockArticleService struct {
	mock.Mock
}

func (m *MockArticleService) Create(ctx context.Context, input service.CreateArticleInput) (*domain.Article, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockArticleService) Get(ctx context.Context, id int64) (*domain.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockArticleService) List(ctx context.Context, input service.ListArticlesInput) (*service.ListArticlesOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListArticlesOutput), args.Error(1)
}

func (m *MockArticleService) Update(ctx context.Context, input service.UpdateArticleInput) (*domain.Article, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockArticleService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockArticleService) Related(ctx context.Context, id int64, limit int) ([]*domain.Article, error) {
	args := m.Called(ctx, id, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Article), args.Error(1)
}

func newArticleRouter(svc ArticleService) http.Handler {
	h := NewArticleHandler(svc)
	r := chi.NewRouter()
	r.Get("/articles", h.List)
	r.Post("/articles", h.Create)
	r.Get("/articles/{id}", h.Get)
	r.Put("/articles/{id}", h.Update)
	r.Delete("/articles/{id}", h.Delete)
	r.Get("/articles/{id}/related", h.Related)
	return r
}

func TestArticleHandler_Create_Success(t *testing.T) {
	mockSvc := new(MockArticleService)
	created := &domain.Article{ID: 1, Title: "Kelp Forests", Content: "Kelp grows fast.", CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	mockSvc.On("Create", mock.Anything, service.CreateArticleInput{Title: "Kelp Forests", Content: "Kelp grows fast."}).Return(created, nil)

	body, _ := json.Marshal(CreateArticleRequest{Title: "Kelp Forests", Content: "Kelp grows fast."})
	req := httptest.NewRequest(http.MethodPost, "/articles", bytes.NewReader(body))
	w := httptest.NewRecorder()

	newArticleRouter(mockSvc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data ArticleResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Data.ID)
	assert.Equal(t, "Kelp Forests", resp.Data.Title)
	assert.Equal(t, "2026-03-01T10:00:00Z", resp.Data.CreatedAt)
	mockSvc.AssertExpectations(t)
}

func TestArticleHandler_Create_InvalidBody(t *testing.T) {
	mockSvc := new(MockArticleService)

	req := httptest.NewRequest(http.MethodPost, "/articles", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()

	newArticleRouter(mockSvc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestArticleHandler_Create_ValidationError(t *testing.T) {
	mockSvc := new(MockArticleService)
	mockSvc.On("Create", mock.Anything, mock.Anything).Return(nil, domain.ErrMissingTitle)

	body, _ := json.Marshal(CreateArticleRequest{Title: "", Content: "c"})
	req := httptest.NewRequest(http.MethodPost, "/articles", bytes.NewReader(body))
	w := httptest.NewRecorder()

	newArticleRouter(mockSvc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "title is required")
}

func TestArticleHandler_Get_Success(t *testing.T) {
	mockSvc := new(MockArticleService)
	article := &domain.Article{ID: 42, Title: "T", Content: "C", CreatedAt: time.Now().UTC()}
	mockSvc.On("Get", mock.Anything, int64(42)).Return(article, nil)

	req := httptest.NewRequest(http.MethodGet, "/articles/42", nil)
	w := httptest.NewRecorder()

	newArticleRouter(mockSvc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestArticleHandler_Get_NotFound(t *testing.T) {
	mockSvc := new(MockArticleService)
	mockSvc.On("Get", mock.Anything, int64(99)).Return(nil, domain.ErrArticleNotFound)

	req := httptest.NewRequest(http.MethodGet, "/articles/99", nil)
	w := httptest.NewRecorder()

	newArticleRouter(mockSvc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestArticleHandler_Get_InvalidID(t *testing.T) {
	mockSvc := new(MockArticleService)

	req := httptest.NewRequest(http.MethodGet, "/articles/abc", nil)
	w := httptest.NewRecorder()

	newArticleRouter(mockSvc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestArticleHandler_Update_Success(t *testing.T) {
	mockSvc := new(MockArticleService)
	updated := &domain.Article{ID: 3, Title: "New", Content: "New body", CreatedAt: time.Now().UTC()}
	mockSvc.On("Update", mock.Anything, service.UpdateArticleInput{ID: 3, Title: "New", Content: "New body"}).Return(updated, nil)

	body, _ := json.Marshal(UpdateArticleRequest{Title: "New", Content: "New body"})
	req := httptest.NewRequest(http.MethodPut, "/articles/3", bytes.NewReader(body))
	w := httptest.NewRecorder()

	newArticleRouter(mockSvc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestArticleHandler_Delete_Success(t *testing.T) {
	mockSvc := new(MockArticleService)
	mockSvc.On("Delete", mock.Anything, int64(5)).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/articles/5", nil)
	w := httptest.NewRecorder()

	newArticleRouter(mockSvc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestArticleHandler_Delete_NotFound(t *testing.T) {
	mockSvc := new(MockArticleService)
	mockSvc.On("Delete", mock.Anything, int64(5)).Return(domain.ErrArticleNotFound)

	req := httptest.NewRequest(http.MethodDelete, "/articles/5", nil)
	w := httptest.NewRecorder()

	newArticleRouter(mockSvc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestArticleHandler_List_DefaultLimit(t *testing.T) {
	mockSvc := new(MockArticleService)
	output := &service.ListArticlesOutput{
		Items:   []*domain.Article{{ID: 2, Title: "b"}, {ID: 1, Title: "a"}},
		Cursor:  "next",
		HasMore: true,
	}
	mockSvc.On("List", mock.Anything, service.ListArticlesInput{Limit: 20}).Return(output, nil)

	req := httptest.NewRequest(http.MethodGet, "/articles", nil)
	w := httptest.NewRecorder()

	newArticleRouter(mockSvc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data ArticleListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Items, 2)
	assert.Equal(t, "next", resp.Data.Cursor)
	assert.True(t, resp.Data.HasMore)
	mockSvc.AssertExpectations(t)
}

func TestArticleHandler_List_WithCursorAndLimit(t *testing.T) {
	mockSvc := new(MockArticleService)
	output := &service.ListArticlesOutput{Items: nil, HasMore: false}
	mockSvc.On("List", mock.Anything, service.ListArticlesInput{Cursor: "abc", Limit: 5}).Return(output, nil)

	req := httptest.NewRequest(http.MethodGet, "/articles?cursor=abc&limit=5", nil)
	w := httptest.NewRecorder()

	newArticleRouter(mockSvc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestArticleHandler_Related(t *testing.T) {
	mockSvc := new(MockArticleService)
	mockSvc.On("Related", mock.Anything, int64(1), 3).Return([]*domain.Article{{ID: 2, Title: "near"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/articles/1/related?limit=3", nil)
	w := httptest.NewRecorder()

	newArticleRouter(mockSvc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data RelatedArticlesResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Items, 1)
	mockSvc.AssertExpectations(t)
}
