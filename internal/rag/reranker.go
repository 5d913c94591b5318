package rag

import (
	"context"
	"log"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/adityalohuni/AutoBlog/internal/engine"
	"github.com/adityalohuni/AutoBlog/internal/textproc"
)

// ScoredPassage pairs a candidate segment with its cosine similarity to the
// query. Scores are internal to re-ranking but exposed for testability.
type ScoredPassage struct {
	Text  string
	Score float64
}

// Reranker orders candidate passages by embedding similarity to a query.
type Reranker struct {
	embedder  engine.Embedder
	chunkSize int
}

// NewReranker creates a Reranker over the given embedder. chunkSize bounds
// the segments candidates are re-chunked into before embedding; zero selects
// the default.
func NewReranker(embedder engine.Embedder, chunkSize int) *Reranker {
	if chunkSize <= 0 {
		chunkSize = textproc.DefaultEmbeddingChunkChars
	}
	return &Reranker{embedder: embedder, chunkSize: chunkSize}
}

// Rerank re-chunks the passages into bounded segments, embeds the query and
// every segment concurrently, and returns the segment texts ordered by
// descending cosine similarity to the query (ties keep original order). If
// embedding fails the un-scored segments are returned in their original
// order instead; re-ranking never aborts the pipeline.
func (r *Reranker) Rerank(ctx context.Context, query string, passages []string) []string {
	scored, err := r.RerankScored(ctx, query, passages)
	if err != nil {
		log.Printf("re-ranking failed, keeping original passage order: %v", err)
		return r.segment(passages)
	}

	texts := make([]string, len(scored))
	for i, sp := range scored {
		texts[i] = sp.Text
	}
	return texts
}

// RerankScored is Rerank with scores attached. Unlike Rerank it reports the
// embedding failure instead of falling back, so callers and tests can
// distinguish the degraded path.
func (r *Reranker) RerankScored(ctx context.Context, query string, passages []string) ([]ScoredPassage, error) {
	if len(passages) == 0 {
		return nil, nil
	}

	segments := r.segment(passages)
	if len(segments) == 0 {
		return nil, nil
	}

	var queryVec []float32
	segmentVecs := make([][]float32, len(segments))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		vec, err := r.embedder.GenerateEmbedding(gctx, query)
		if err != nil {
			return err
		}
		queryVec = vec
		return nil
	})
	for i, segment := range segments {
		g.Go(func() error {
			vec, err := r.embedder.GenerateEmbedding(gctx, segment)
			if err != nil {
				return err
			}
			segmentVecs[i] = vec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	scored := make([]ScoredPassage, len(segments))
	for i, segment := range segments {
		scored[i] = ScoredPassage{
			Text:  segment,
			Score: cosineSimilarity(queryVec, segmentVecs[i]),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored, nil
}

// segment re-chunks passages into embedding-sized pieces. Long source
// passages must not exceed the embedding model's effective input size, and
// smaller segments improve match granularity.
func (r *Reranker) segment(passages []string) []string {
	var segments []string
	for _, passage := range passages {
		segments = append(segments, textproc.Chunk(passage, r.chunkSize)...)
	}
	return segments
}

// cosineSimilarity computes dot(a,b) / (|a| * |b|), range ~[-1, 1].
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
