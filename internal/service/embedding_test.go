package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/adityalohuni/AutoBlog/internal/domain"
)

// MockEmbeddingClient is a mock implementation of EmbeddingClient
type MockEmbeddingClient struct {
	mock.Mock
}

func (m *MockEmbeddingClient) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

// MockEmbeddingArticleRepository is a mock implementation of EmbeddingArticleRepository
type MockEmbeddingArticleRepository struct {
	mock.Mock
}

func (m *MockEmbeddingArticleRepository) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockEmbeddingArticleRepository) UpdateEmbedding(ctx context.Context, id int64, embedding []float32) error {
	args := m.Called(ctx, id, embedding)
	return args.Error(0)
}

func TestEmbeddingService_GenerateArticleEmbedding_Success(t *testing.T) {
	mockClient := new(MockEmbeddingClient)
	mockRepo := new(MockEmbeddingArticleRepository)

	article := &domain.Article{ID: 1, Title: "Deep Sea", Content: "The deep sea is dark."}
	vector := []float32{0.1, 0.2, 0.3}

	mockRepo.On("GetByID", mock.Anything, int64(1)).Return(article, nil)
	mockClient.On("GenerateEmbedding", mock.Anything, "Deep Sea\n\nThe deep sea is dark.").Return(vector, nil)
	mockRepo.On("UpdateEmbedding", mock.Anything, int64(1), vector).Return(nil)

	svc := NewEmbeddingService(mockClient, mockRepo)
	err := svc.GenerateArticleEmbedding(context.Background(), 1)

	require.NoError(t, err)
	mockClient.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestEmbeddingService_GenerateArticleEmbedding_ArticleNotFound(t *testing.T) {
	mockClient := new(MockEmbeddingClient)
	mockRepo := new(MockEmbeddingArticleRepository)

	mockRepo.On("GetByID", mock.Anything, int64(9)).Return(nil, domain.ErrArticleNotFound)

	svc := NewEmbeddingService(mockClient, mockRepo)
	err := svc.GenerateArticleEmbedding(context.Background(), 9)

	assert.ErrorIs(t, err, domain.ErrArticleNotFound)
	mockClient.AssertNotCalled(t, "GenerateEmbedding", mock.Anything, mock.Anything)
}

func TestEmbeddingService_GenerateArticleEmbedding_ClientFailure(t *testing.T) {
	mockClient := new(MockEmbeddingClient)
	mockRepo := new(MockEmbeddingArticleRepository)

	article := &domain.Article{ID: 1, Title: "T", Content: "C"}
	mockRepo.On("GetByID", mock.Anything, int64(1)).Return(article, nil)
	mockClient.On("GenerateEmbedding", mock.Anything, mock.Anything).Return(nil, errors.New("model unavailable"))

	svc := NewEmbeddingService(mockClient, mockRepo)
	err := svc.GenerateArticleEmbedding(context.Background(), 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate embedding")
	mockRepo.AssertNotCalled(t, "UpdateEmbedding", mock.Anything, mock.Anything, mock.Anything)
}
