package domain

import (
	"strings"
	"time"
)

// MaxTitleLength bounds article titles at the API surface.
const MaxTitleLength = 500

// Article represents a persisted blog article
type Article struct {
	ID        int64
	Title     string
	Content   string
	CreatedAt time.Time
}

// GeneratedArticle is the output of the generation pipeline before it is
// persisted. It becomes an Article once the repository assigns id/created_at.
type GeneratedArticle struct {
	Title   string
	Content string
}

// GenerationRequest carries the caller-supplied inputs for article generation.
// Title is optional: when empty the orchestrator fabricates a working topic
// and later extracts a title from the generated text.
type GenerationRequest struct {
	Title   string
	Context string
	Model   string
}

// NewArticle creates a new Article instance
func NewArticle(id int64, title, content string, createdAt time.Time) *Article {
	return &Article{
		ID:        id,
		Title:     title,
		Content:   content,
		CreatedAt: createdAt,
	}
}

// ValidateArticleInput validates caller-supplied title/content before
// persistence.
func ValidateArticleInput(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return ErrMissingTitle
	}
	if len(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if strings.TrimSpace(content) == "" {
		return ErrMissingContent
	}
	return nil
}
