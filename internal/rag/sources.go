package rag

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/adityalohuni/AutoBlog/internal/textproc"
)

const (
	europePMCBaseURL = "https://www.ebi.ac.uk/europepmc/webservices/rest/search"
	wikipediaBaseURL = "https://en.wikipedia.org/w/api.php"
)

func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: 15 * time.Second}
}

// sourceLimiter keeps requests to a public API polite: 2 rps, small burst.
func sourceLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Limit(2), 2)
}

// EuropePMCSource searches the Europe PMC literature REST API and returns
// article abstracts.
type EuropePMCSource struct {
	client  *http.Client
	limiter *rate.Limiter
	baseURL string
}

// NewEuropePMCSource creates a Europe PMC passage source.
func NewEuropePMCSource() *EuropePMCSource {
	return &EuropePMCSource{
		client:  defaultHTTPClient(),
		limiter: sourceLimiter(),
		baseURL: europePMCBaseURL,
	}
}

// NewEuropePMCSourceWithClient is used by tests to point at a fake server.
func NewEuropePMCSourceWithClient(client *http.Client, baseURL string) *EuropePMCSource {
	return &EuropePMCSource{client: client, limiter: sourceLimiter(), baseURL: baseURL}
}

func (s *EuropePMCSource) Name() string { return "europepmc" }

type europePMCResponse struct {
	ResultList struct {
		Result []struct {
			AbstractText string `json:"abstractText"`
		} `json:"result"`
	} `json:"resultList"`
}

// Search returns up to limit abstracts matching the query.
func (s *EuropePMCSource) Search(ctx context.Context, query string, limit int) ([]string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("format", "json")
	params.Set("pageSize", fmt.Sprintf("%d", limit))

	var payload europePMCResponse
	if err := s.getJSON(ctx, s.baseURL+"?"+params.Encode(), &payload); err != nil {
		return nil, err
	}

	var passages []string
	for _, result := range payload.ResultList.Result {
		if result.AbstractText != "" {
			passages = append(passages, result.AbstractText)
		}
	}
	return passages, nil
}

func (s *EuropePMCSource) getJSON(ctx context.Context, rawURL string, out any) error {
	return getJSON(ctx, s.client, rawURL, out)
}

// WikipediaSource searches the Wikipedia action API and returns search
// snippets with markup stripped.
type WikipediaSource struct {
	client  *http.Client
	limiter *rate.Limiter
	baseURL string
}

// NewWikipediaSource creates a Wikipedia passage source.
func NewWikipediaSource() *WikipediaSource {
	return &WikipediaSource{
		client:  defaultHTTPClient(),
		limiter: sourceLimiter(),
		baseURL: wikipediaBaseURL,
	}
}

// NewWikipediaSourceWithClient is used by tests to point at a fake server.
func NewWikipediaSourceWithClient(client *http.Client, baseURL string) *WikipediaSource {
	return &WikipediaSource{client: client, limiter: sourceLimiter(), baseURL: baseURL}
}

func (s *WikipediaSource) Name() string { return "wikipedia" }

type wikipediaSearchResponse struct {
	Query struct {
		Search []struct {
			Snippet string `json:"snippet"`
		} `json:"search"`
	} `json:"query"`
}

// Search returns up to limit search snippets matching the query.
func (s *WikipediaSource) Search(ctx context.Context, query string, limit int) ([]string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("format", "json")
	params.Set("utf8", "")
	params.Set("srlimit", fmt.Sprintf("%d", limit))
	params.Set("srsearch", query)

	var payload wikipediaSearchResponse
	if err := getJSON(ctx, s.client, s.baseURL+"?"+params.Encode(), &payload); err != nil {
		return nil, err
	}

	var passages []string
	for _, result := range payload.Query.Search {
		if snippet := textproc.StripHTMLTags(result.Snippet); snippet != "" {
			passages = append(passages, snippet)
		}
	}
	return passages, nil
}

func getJSON(ctx context.Context, client *http.Client, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
