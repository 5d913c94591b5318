package service

import (
	"context"
	"fmt"

	"github.com/adityalohuni/AutoBlog/internal/domain"
	"github.com/adityalohuni/AutoBlog/internal/telemetry"
)

// EmbeddingClient defines the interface for generating embeddings
type EmbeddingClient interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// EmbeddingArticleRepository defines the repository interface for embedding operations
type EmbeddingArticleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Article, error)
	UpdateEmbedding(ctx context.Context, id int64, embedding []float32) error
}

// EmbeddingService computes and stores article embeddings. It is called by
// the background worker, never from a request path.
type EmbeddingService struct {
	client EmbeddingClient
	repo   EmbeddingArticleRepository
}

// NewEmbeddingService creates a new EmbeddingService instance
func NewEmbeddingService(client EmbeddingClient, repo EmbeddingArticleRepository) *EmbeddingService {
	return &EmbeddingService{
		client: client,
		repo:   repo,
	}
}

// GenerateArticleEmbedding generates and stores an embedding for the given
// article ID.
func (s *EmbeddingService) GenerateArticleEmbedding(ctx context.Context, articleID int64) error {
	ctx, span := telemetry.StartSpan(ctx, "EmbeddingService.GenerateArticleEmbedding", telemetry.SpanAttributes{
		ArticleID: articleID,
		Operation: "embed",
	})
	defer span.End()

	article, err := s.repo.GetByID(ctx, articleID)
	if err != nil {
		return err
	}

	embedding, err := s.client.GenerateEmbedding(ctx, buildEmbeddingText(article))
	if err != nil {
		return fmt.Errorf("failed to generate embedding: %w", err)
	}

	if err := s.repo.UpdateEmbedding(ctx, articleID, embedding); err != nil {
		return fmt.Errorf("failed to update embedding: %w", err)
	}

	return nil
}

func buildEmbeddingText(a *domain.Article) string {
	if a.Content == "" {
		return a.Title
	}
	return a.Title + "\n\n" + a.Content
}
