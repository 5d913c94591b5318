package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/adityalohuni/AutoBlog/internal/domain"
	"github.com/adityalohuni/AutoBlog/internal/pagination"
	"github.com/adityalohuni/AutoBlog/internal/telemetry"
)

// ArticleRepositoryInterface defines the repository interface for article persistence
type ArticleRepositoryInterface interface {
	Create(ctx context.Context, a *domain.Article) error
	GetByID(ctx context.Context, id int64) (*domain.Article, error)
	List(ctx context.Context) ([]*domain.Article, error)
	ListWithCursor(ctx context.Context, cursor *pagination.Cursor, limit int) (*ArticlePageResult, error)
	Update(ctx context.Context, a *domain.Article) error
	Delete(ctx context.Context, id int64) error
	ListRelated(ctx context.Context, id int64, limit int) ([]*domain.Article, error)
}

type ArticlePageResult struct {
	Items      []*domain.Article
	NextCursor string
	HasMore    bool
}

// EmbeddingJobRepositoryInterface defines the repository interface for embedding job persistence
type EmbeddingJobRepositoryInterface interface {
	Create(ctx context.Context, job *domain.EmbeddingJob) error
}

// UUIDGenerator defines interface for UUID generation (for testing)
type UUIDGenerator interface {
	NewString() string
}

// DefaultUUIDGenerator is the default UUID generator using google/uuid
type DefaultUUIDGenerator struct{}

// NewString generates a new UUID string
func (g *DefaultUUIDGenerator) NewString() string {
	return uuid.NewString()
}

// ArticleService handles business logic for articles. Create and Update run
// in a transaction so the article write and its embedding job enqueue commit
// together.
type ArticleService struct {
	articleRepo ArticleRepositoryInterface
	txRunner    TxRunner
	uuidGen     UUIDGenerator
}

// NewArticleService creates a new ArticleService instance
func NewArticleService(articleRepo ArticleRepositoryInterface, txRunner TxRunner) *ArticleService {
	return &ArticleService{
		articleRepo: articleRepo,
		txRunner:    txRunner,
		uuidGen:     &DefaultUUIDGenerator{},
	}
}

// NewArticleServiceWithUUIDGen creates a new ArticleService with custom UUID generator (for testing)
func NewArticleServiceWithUUIDGen(articleRepo ArticleRepositoryInterface, txRunner TxRunner, uuidGen UUIDGenerator) *ArticleService {
	return &ArticleService{
		articleRepo: articleRepo,
		txRunner:    txRunner,
		uuidGen:     uuidGen,
	}
}

// CreateArticleInput represents the input for creating an article
type CreateArticleInput struct {
	Title   string
	Content string
}

// UpdateArticleInput represents the input for updating an article
type UpdateArticleInput struct {
	ID      int64
	Title   string
	Content string
}

type ListArticlesInput struct {
	Cursor string
	Limit  int
}

type ListArticlesOutput struct {
	Items   []*domain.Article
	Cursor  string
	HasMore bool
}

// Create validates the input, persists the article, and queues an embedding
// job for it in the same transaction.
func (s *ArticleService) Create(ctx context.Context, input CreateArticleInput) (*domain.Article, error) {
	ctx, span := telemetry.StartSpan(ctx, "ArticleService.Create", telemetry.SpanAttributes{
		Operation: "create",
	})
	defer span.End()

	if err := domain.ValidateArticleInput(input.Title, input.Content); err != nil {
		return nil, err
	}

	article := &domain.Article{
		Title:     input.Title,
		Content:   input.Content,
		CreatedAt: time.Now().UTC(),
	}

	err := s.txRunner.WithTx(ctx, func(repos TxRepositories) error {
		if err := repos.Articles().Create(ctx, article); err != nil {
			return err
		}
		return repos.EmbeddingJobs().Create(ctx, s.newEmbeddingJob(article.ID))
	})
	if err != nil {
		return nil, err
	}

	return article, nil
}

// Update replaces the article's title and content and re-queues its embedding
// job, since the stored vector no longer matches the text.
func (s *ArticleService) Update(ctx context.Context, input UpdateArticleInput) (*domain.Article, error) {
	ctx, span := telemetry.StartSpan(ctx, "ArticleService.Update", telemetry.SpanAttributes{
		ArticleID: input.ID,
		Operation: "update",
	})
	defer span.End()

	if err := domain.ValidateArticleInput(input.Title, input.Content); err != nil {
		return nil, err
	}

	article, err := s.articleRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	article.Title = input.Title
	article.Content = input.Content

	err = s.txRunner.WithTx(ctx, func(repos TxRepositories) error {
		if err := repos.Articles().Update(ctx, article); err != nil {
			return err
		}
		return repos.EmbeddingJobs().Create(ctx, s.newEmbeddingJob(article.ID))
	})
	if err != nil {
		return nil, err
	}

	return article, nil
}

// Get returns one article by id.
func (s *ArticleService) Get(ctx context.Context, id int64) (*domain.Article, error) {
	return s.articleRepo.GetByID(ctx, id)
}

// List returns a page of articles, newest first.
func (s *ArticleService) List(ctx context.Context, input ListArticlesInput) (*ListArticlesOutput, error) {
	cursor, err := pagination.DecodeCursor(input.Cursor)
	if err != nil {
		return nil, domain.NewDomainError(domain.ErrCodeValidation, "invalid cursor")
	}

	page, err := s.articleRepo.ListWithCursor(ctx, cursor, input.Limit)
	if err != nil {
		return nil, err
	}

	return &ListArticlesOutput{
		Items:   page.Items,
		Cursor:  page.NextCursor,
		HasMore: page.HasMore,
	}, nil
}

// Delete removes an article.
func (s *ArticleService) Delete(ctx context.Context, id int64) error {
	ctx, span := telemetry.StartSpan(ctx, "ArticleService.Delete", telemetry.SpanAttributes{
		ArticleID: id,
		Operation: "delete",
	})
	defer span.End()

	return s.articleRepo.Delete(ctx, id)
}

// Related returns the articles nearest to the given one by embedding
// distance.
func (s *ArticleService) Related(ctx context.Context, id int64, limit int) ([]*domain.Article, error) {
	ctx, span := telemetry.StartSpan(ctx, "ArticleService.Related", telemetry.SpanAttributes{
		ArticleID: id,
		Operation: "related",
	})
	defer span.End()

	if limit <= 0 {
		limit = 5
	}
	if _, err := s.articleRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.articleRepo.ListRelated(ctx, id, limit)
}

func (s *ArticleService) newEmbeddingJob(articleID int64) *domain.EmbeddingJob {
	return &domain.EmbeddingJob{
		ID:        s.uuidGen.NewString(),
		ArticleID: articleID,
		Status:    domain.EmbeddingJobStatusPending,
		CreatedAt: time.Now().UTC(),
	}
}
