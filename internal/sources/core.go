// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mashutosh934755/bennett-ashu-ai/internal/httputil"
	"github.com/mashutosh934755/bennett-ashu-ai/pkg/types"
)

// coreAPIBase is the CORE works search endpoint. Declared as a var so tests
// can substitute an httptest server.
var coreAPIBase = "https://api.core.ac.uk/v3/search/works"

// COREConnector queries the CORE open-access aggregator. Requires a Bearer
// API key.
type COREConnector struct {
	Client    *http.Client
	APIKey    string
	UserAgent string
}

// Name returns the connector identifier.
func (c *COREConnector) Name() string { return "core" }

// Search queries CORE and maps each work into a ResultItem. The download
// URL is preferred over the generic landing-page URL when both are present.
func (c *COREConnector) Search(ctx context.Context, topic string, limit int) ([]types.ResultItem, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("core: %w", ErrMissingCredential)
	}

	params := url.Values{
		"q":     {topic},
		"limit": {fmt.Sprintf("%d", limit)},
	}
	reqURL := coreAPIBase + "?" + params.Encode()
	headers := map[string]string{"Authorization": "Bearer " + c.APIKey}

	var cr coreResponse
	if err := httputil.GetJSON(ctx, c.Client, reqURL, c.UserAgent, headers, &cr); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}

	var items []types.ResultItem
	for _, work := range cr.Results {
		link := work.DownloadURL
		if link == "" && len(work.URLs) > 0 {
			link = work.URLs[0].URL
		}
		year := work.CreatedDate
		if len(year) > 4 {
			year = year[:4]
		}
		items = append(items, types.ResultItem{
			Title: orDefault(work.Title, "No Title"),
			URL:   orDefault(link, "#"),
			Year:  year,
		})
	}
	return capItems(items, limit), nil
}

// CORE API JSON structures.
type coreResponse struct {
	Results []coreWork `json:"results"`
}

type coreWork struct {
	Title       string    `json:"title"`
	DownloadURL string    `json:"downloadUrl"`
	URLs        []coreURL `json:"urls"`
	CreatedDate string    `json:"createdDate"`
}

type coreURL struct {
	URL string `json:"url"`
}
