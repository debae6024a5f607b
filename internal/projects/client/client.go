// Package client fetches projects from a running portfolio API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/devfolio/portfolio-api/internal/projects/domain"
)

// DefaultTimeout bounds a single fetch.
const DefaultTimeout = 30 * time.Second

// ListOptions mirrors the list endpoint's query parameters. Zero values are omitted.
type ListOptions struct {
	Category   string
	Technology string
	// IncludeUnpublished sends published=false.
	IncludeUnpublished bool
}

// Fetcher calls GET /api/projects.
type Fetcher struct {
	baseURL string
	http    *http.Client
}

// NewFetcher creates a fetcher for the API at baseURL, e.g. "http://localhost:8080".
// A nil client gets DefaultTimeout.
func NewFetcher(baseURL string, hc *http.Client) *Fetcher {
	if hc == nil {
		hc = &http.Client{Timeout: DefaultTimeout}
	}
	return &Fetcher{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

type listResponse struct {
	Projects []domain.Project `json:"projects"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// List returns the projects the server selects for opts.
func (f *Fetcher) List(ctx context.Context, opts ListOptions) ([]domain.Project, error) {
	q := url.Values{}
	if opts.Category != "" {
		q.Set("category", opts.Category)
	}
	if opts.Technology != "" {
		q.Set("technology", opts.Technology)
	}
	if opts.IncludeUnpublished {
		q.Set("published", "false")
	}

	u := f.baseURL + "/api/projects"
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e errorResponse
		if json.Unmarshal(body, &e) == nil && e.Message != "" {
			return nil, fmt.Errorf("failed to load projects: %s (status %d)", e.Message, resp.StatusCode)
		}
		return nil, fmt.Errorf("failed to load projects: status %d", resp.StatusCode)
	}

	var out listResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}
	if out.Projects == nil {
		out.Projects = []domain.Project{}
	}
	return out.Projects, nil
}
