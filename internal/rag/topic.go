package rag

import (
	"context"
	"log"
	"net/http"
)

const randomSummaryURL = "https://en.wikipedia.org/api/rest_v1/page/random/summary"

// FallbackTopic is returned when the random-topic lookup fails.
const FallbackTopic = "Random Topic"

// TopicSource supplies a random topic for title-less generation requests.
// It always succeeds.
type TopicSource interface {
	RandomTopic(ctx context.Context) string
}

// WikipediaTopicSource fetches a random page title from the Wikipedia REST
// API, falling back to a fixed literal on any failure.
type WikipediaTopicSource struct {
	client  *http.Client
	baseURL string
}

// NewWikipediaTopicSource creates a Wikipedia-backed topic source.
func NewWikipediaTopicSource() *WikipediaTopicSource {
	return &WikipediaTopicSource{client: defaultHTTPClient(), baseURL: randomSummaryURL}
}

// NewWikipediaTopicSourceWithClient is used by tests to point at a fake server.
func NewWikipediaTopicSourceWithClient(client *http.Client, baseURL string) *WikipediaTopicSource {
	return &WikipediaTopicSource{client: client, baseURL: baseURL}
}

type randomSummaryResponse struct {
	Title string `json:"title"`
}

// RandomTopic returns a random article title, or FallbackTopic if the lookup
// fails.
func (s *WikipediaTopicSource) RandomTopic(ctx context.Context) string {
	var payload randomSummaryResponse
	if err := getJSON(ctx, s.client, s.baseURL, &payload); err != nil {
		log.Printf("random topic lookup failed: %v", err)
		return FallbackTopic
	}
	if payload.Title == "" {
		return FallbackTopic
	}
	return payload.Title
}
