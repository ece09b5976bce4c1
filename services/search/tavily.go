// Package search wraps the Tavily web search API used for questions
// about Canadian taxes and attractions.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"taxline/models"
)

const (
	defaultEndpoint = "https://api.tavily.com/search"
	maxResults      = 3
	snippetLength   = 200
)

// SearchService returns web results for a query.
type SearchService interface {
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
}

// TavilyClient implements SearchService against the Tavily REST API.
type TavilyClient struct {
	APIKey     string
	Endpoint   string
	HTTPClient *http.Client
}

func NewTavilyClient(apiKey string, httpClient *http.Client) *TavilyClient {
	return &TavilyClient{
		APIKey:     apiKey,
		Endpoint:   defaultEndpoint,
		HTTPClient: httpClient,
	}
}

type tavilyRequest struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type tavilyResponse struct {
	Results []models.SearchResult `json:"results"`
}

func (c *TavilyClient) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	payload, err := json.Marshal(tavilyRequest{
		APIKey:     c.APIKey,
		Query:      query,
		MaxResults: maxResults,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach search service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search service returned status %d", resp.StatusCode)
	}

	var out tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return out.Results, nil
}

// FormatSnippets renders results as a numbered markdown block with
// each link preserved, ready to hand to the summarizer.
func FormatSnippets(results []models.SearchResult) string {
	var lines []string
	for i, r := range results {
		title := strings.TrimSpace(r.Title)
		content := strings.ReplaceAll(r.Content, "\n", " ")
		snippet := truncateSnippet(content, snippetLength)
		url := strings.TrimSpace(r.URL)
		if url != "" {
			lines = append(lines, fmt.Sprintf("%d. **[%s](%s)** - %s", i+1, title, url, snippet))
		} else {
			lines = append(lines, fmt.Sprintf("%d. **%s** - %s", i+1, title, snippet))
		}
	}
	return strings.Join(lines, "\n\n")
}

// truncateSnippet cuts s to at most n characters, backing up to the
// last full word so nothing is split mid-word.
func truncateSnippet(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := s[:n]
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
