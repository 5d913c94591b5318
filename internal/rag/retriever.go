// Package rag implements retrieval-augmented generation support: fan-out
// passage retrieval from external knowledge sources and embedding-based
// re-ranking of the candidates.
package rag

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"
)

// DefaultResultsPerSource bounds how many passages each source is asked for,
// to limit cost and latency.
const DefaultResultsPerSource = 2

// PassageSource is an external knowledge source that returns zero or more
// passages of plain text for a query.
type PassageSource interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]string, error)
}

// Retriever queries every configured source concurrently and pools the
// results. A failing source contributes nothing; retrieval itself never
// fails. Duplicates are kept: re-ranking demotes redundant entries.
type Retriever struct {
	sources   []PassageSource
	perSource int
}

// NewRetriever creates a Retriever over the given sources.
func NewRetriever(sources ...PassageSource) *Retriever {
	return &Retriever{sources: sources, perSource: DefaultResultsPerSource}
}

// NewRetrieverWithLimit creates a Retriever requesting up to perSource
// results from each source.
func NewRetrieverWithLimit(perSource int, sources ...PassageSource) *Retriever {
	if perSource <= 0 {
		perSource = DefaultResultsPerSource
	}
	return &Retriever{sources: sources, perSource: perSource}
}

// Retrieve queries all sources concurrently and returns the pooled passages.
// An empty result is not an error condition.
func (r *Retriever) Retrieve(ctx context.Context, query string) []string {
	if len(r.sources) == 0 || query == "" {
		return nil
	}

	results := make([][]string, len(r.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, source := range r.sources {
		g.Go(func() error {
			passages, err := source.Search(gctx, query, r.perSource)
			if err != nil {
				log.Printf("passage source %s failed: %v", source.Name(), err)
				return nil
			}
			results[i] = passages
			return nil
		})
	}
	// Source goroutines absorb their own failures.
	_ = g.Wait()

	var pooled []string
	for _, passages := range results {
		for _, p := range passages {
			if p != "" {
				pooled = append(pooled, p)
			}
		}
	}
	return pooled
}
