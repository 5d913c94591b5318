package rag

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// vectorEmbedder returns canned unit vectors per text so similarity to the
// query is fully controlled.
type vectorEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   atomic.Int32
}

func (e *vectorEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	e.calls.Add(1)
	if e.err != nil {
		return nil, e.err
	}
	vec, ok := e.vectors[text]
	if !ok {
		return []float32{0, 0, 1}, nil
	}
	return vec, nil
}

func TestReranker_OrdersByDescendingSimilarity(t *testing.T) {
	embedder := &vectorEmbedder{vectors: map[string][]float32{
		"query": {1, 0, 0},
		"A":     {0.5, 0.5, 0},  // sim ~0.707
		"B":     {1, 0.01, 0},   // sim ~1.0
		"C":     {0.1, 0.99, 0}, // sim ~0.1
	}}

	r := NewReranker(embedder, 400)
	got := r.Rerank(context.Background(), "query", []string{"A", "B", "C"})

	assert.Equal(t, []string{"B", "A", "C"}, got)
}

func TestReranker_EmptyInputMakesNoEmbeddingCalls(t *testing.T) {
	embedder := &vectorEmbedder{}

	r := NewReranker(embedder, 400)
	got := r.Rerank(context.Background(), "query", nil)

	assert.Empty(t, got)
	assert.Equal(t, int32(0), embedder.calls.Load())
}

func TestReranker_EmbeddingFailureFallsBackToOriginalOrder(t *testing.T) {
	embedder := &vectorEmbedder{err: errors.New("model unavailable")}

	r := NewReranker(embedder, 400)
	got := r.Rerank(context.Background(), "query", []string{"first", "second", "third"})

	assert.Equal(t, []string{"first", "second", "third"}, got)
}

func TestReranker_StableTieBreakKeepsOriginalOrder(t *testing.T) {
	same := []float32{1, 0, 0}
	embedder := &vectorEmbedder{vectors: map[string][]float32{
		"query": {1, 0, 0},
		"one":   same,
		"two":   same,
		"three": same,
	}}

	r := NewReranker(embedder, 400)
	got := r.Rerank(context.Background(), "query", []string{"one", "two", "three"})

	assert.Equal(t, []string{"one", "two", "three"}, got)
}

func TestReranker_SingleCandidateReturnedUnchanged(t *testing.T) {
	embedder := &vectorEmbedder{vectors: map[string][]float32{
		"octopus intelligence": {1, 0, 0},
	}}

	r := NewReranker(embedder, 400)
	got := r.Rerank(context.Background(), "octopus intelligence",
		[]string{"Octopuses have decentralized nervous systems."})

	require.Len(t, got, 1)
	assert.Equal(t, "Octopuses have decentralized nervous systems.", got[0])
}

func TestReranker_RechunksLongPassages(t *testing.T) {
	long := "First part of a very long passage. Second part continues the thought. Third part wraps it up."
	embedder := &vectorEmbedder{vectors: map[string][]float32{"query": {1, 0, 0}}}

	r := NewReranker(embedder, 40)
	got := r.Rerank(context.Background(), "query", []string{long})

	require.Greater(t, len(got), 1)
	for _, segment := range got {
		assert.LessOrEqual(t, len(segment), 40)
	}
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.Zero(t, cosineSimilarity([]float32{1, 0}, []float32{1, 0, 0}))
	assert.Zero(t, cosineSimilarity(nil, nil))
}
