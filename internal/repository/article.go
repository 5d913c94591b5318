package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/adityalohuni/AutoBlog/internal/domain"
	"github.com/adityalohuni/AutoBlog/internal/pagination"
	"github.com/adityalohuni/AutoBlog/internal/service"
)

type ArticleRepository struct {
	db dbtx
}

func NewArticleRepository(pool *pgxpool.Pool) *ArticleRepository {
	return &ArticleRepository{db: pool}
}

func NewArticleRepositoryWithTx(tx pgx.Tx) *ArticleRepository {
	return &ArticleRepository{db: tx}
}

func (r *ArticleRepository) Create(ctx context.Context, a *domain.Article) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO articles (title, content, created_at)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		a.Title, a.Content, a.CreatedAt,
	).Scan(&a.ID, &a.CreatedAt)
}

func (r *ArticleRepository) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	var a domain.Article
	err := r.db.QueryRow(ctx,
		`SELECT id, title, content, created_at FROM articles WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.Title, &a.Content, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *ArticleRepository) List(ctx context.Context) ([]*domain.Article, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, title, content, created_at FROM articles ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArticleRows(rows)
}

func (r *ArticleRepository) ListWithCursor(ctx context.Context, cursor *pagination.Cursor, limit int) (*service.ArticlePageResult, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows pgx.Rows
	var err error

	if cursor != nil {
		rows, err = r.db.Query(ctx,
			`SELECT id, title, content, created_at
			 FROM articles
			 WHERE (created_at, id) < ($1, $2)
			 ORDER BY created_at DESC, id DESC
			 LIMIT $3`,
			cursor.Timestamp, cursor.LastID, limit+1,
		)
	} else {
		rows, err = r.db.Query(ctx,
			`SELECT id, title, content, created_at
			 FROM articles
			 ORDER BY created_at DESC, id DESC
			 LIMIT $1`,
			limit+1,
		)
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := scanArticleRows(rows)
	if err != nil {
		return nil, err
	}

	hasMore := len(items) > limit
	if hasMore {
		items = items[:limit]
	}

	var nextCursor string
	if hasMore && len(items) > 0 {
		lastItem := items[len(items)-1]
		nextCursor = pagination.EncodeCursor(lastItem.ID, lastItem.CreatedAt)
	}

	return &service.ArticlePageResult{
		Items:      items,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}

func (r *ArticleRepository) Update(ctx context.Context, a *domain.Article) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE articles SET title = $1, content = $2 WHERE id = $3`,
		a.Title, a.Content, a.ID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM articles WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

func (r *ArticleRepository) UpdateEmbedding(ctx context.Context, id int64, embedding []float32) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE articles SET embedding = $1 WHERE id = $2`,
		pgvector.NewVector(embedding), id,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

// ListRelated returns the articles closest to the given one by cosine
// distance over stored embeddings. Articles without an embedding (including
// the source article before its job completes) are excluded.
func (r *ArticleRepository) ListRelated(ctx context.Context, id int64, limit int) ([]*domain.Article, error) {
	if limit <= 0 {
		limit = 5
	}

	var source pgvector.Vector
	err := r.db.QueryRow(ctx,
		`SELECT embedding FROM articles WHERE id = $1 AND embedding IS NOT NULL`,
		id,
	).Scan(&source)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, title, content, created_at
		 FROM articles
		 WHERE id <> $1 AND embedding IS NOT NULL
		 ORDER BY embedding <=> $2
		 LIMIT $3`,
		id, source, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArticleRows(rows)
}

func scanArticleRows(rows pgx.Rows) ([]*domain.Article, error) {
	var results []*domain.Article
	for rows.Next() {
		var a domain.Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, &a)
	}
	return results, rows.Err()
}
