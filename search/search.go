// Package search wraps the web-search API: one-shot searches with optional
// page content retrieval, as opposed to the asynchronous webset searches.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/websetkit/websets-mcp/cache"
	"github.com/websetkit/websets-mcp/client"
)

const opSearch = "search.web"

// Request is a web search request.
type Request struct {
	Query          string        `json:"query"`
	NumResults     int           `json:"numResults,omitempty"`
	Type           string        `json:"type,omitempty"` // neural|keyword|auto
	Category       string        `json:"category,omitempty"`
	IncludeDomains []string      `json:"includeDomains,omitempty"`
	ExcludeDomains []string      `json:"excludeDomains,omitempty"`
	Contents       *ContentsOpts `json:"contents,omitempty"`
}

// ContentsOpts selects what page content to return with each result.
type ContentsOpts struct {
	Text       bool `json:"text,omitempty"`
	Highlights bool `json:"highlights,omitempty"`
	Summary    bool `json:"summary,omitempty"`
}

// Result is one search hit.
type Result struct {
	ID            string   `json:"id"`
	URL           string   `json:"url"`
	Title         string   `json:"title"`
	Author        string   `json:"author,omitempty"`
	PublishedDate string   `json:"publishedDate,omitempty"`
	Score         float64  `json:"score,omitempty"`
	Text          string   `json:"text,omitempty"`
	Highlights    []string `json:"highlights,omitempty"`
	Summary       string   `json:"summary,omitempty"`
}

// Response is the search response envelope.
type Response struct {
	RequestID string   `json:"requestId"`
	Results   []Result `json:"results"`
}

// Service exposes web search over the resilient client.
type Service struct {
	client *client.Client
	cache  *cache.ReadThrough
	logger zerolog.Logger
}

// NewService creates a Service. rt may be nil to disable caching.
func NewService(c *client.Client, rt *cache.ReadThrough, logger zerolog.Logger) *Service {
	return &Service{
		client: c,
		cache:  rt,
		logger: logger.With().Str("component", "search").Logger(),
	}
}

// Search runs a web search. Identical concurrent queries collapse into one
// upstream call and repeated queries are served from cache.
func (s *Service) Search(ctx context.Context, req Request) (*Response, error) {
	if req.NumResults <= 0 {
		req.NumResults = 10
	}

	data, hit, err := s.cache.Get(ctx, opSearch, req, func(ctx context.Context) ([]byte, error) {
		resp, err := s.client.Request(ctx, client.Opts{
			Method: http.MethodPost,
			Path:   "/search",
			Body:   req,
		})
		if err != nil {
			return nil, err
		}
		return resp.Data, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("query", req.Query).Bool("cache_hit", hit).Msg("search served")

	var out Response
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("search: decode response: %w", err)
	}
	return &out, nil
}
