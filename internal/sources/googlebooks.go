// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/mashutosh934755/bennett-ashu-ai/internal/httputil"
	"github.com/mashutosh934755/bennett-ashu-ai/pkg/types"
)

// googleBooksAPIBase is the Google Books volumes endpoint. Declared as a
// var so tests can substitute an httptest server.
var googleBooksAPIBase = "https://www.googleapis.com/books/v1/volumes"

// GoogleBooksConnector queries the Google Books volumes API for book
// metadata. Requires an API key.
type GoogleBooksConnector struct {
	Client    *http.Client
	APIKey    string
	UserAgent string
}

// Name returns the connector identifier.
func (c *GoogleBooksConnector) Name() string { return "google_books" }

// Search queries Google Books and maps each volume into a ResultItem.
func (c *GoogleBooksConnector) Search(ctx context.Context, topic string, limit int) ([]types.ResultItem, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("google books: %w", ErrMissingCredential)
	}

	params := url.Values{
		"q":          {topic},
		"maxResults": {fmt.Sprintf("%d", limit)},
		"key":        {c.APIKey},
	}
	reqURL := googleBooksAPIBase + "?" + params.Encode()

	var gbr googleBooksResponse
	if err := httputil.GetJSON(ctx, c.Client, reqURL, c.UserAgent, nil, &gbr); err != nil {
		return nil, fmt.Errorf("google books: %w", err)
	}

	var items []types.ResultItem
	for _, volume := range gbr.Items {
		info := volume.VolumeInfo
		year := info.PublishedDate
		if len(year) > 4 {
			year = year[:4]
		}
		items = append(items, types.ResultItem{
			Title:     orDefault(info.Title, "No Title"),
			URL:       orDefault(info.InfoLink, "#"),
			Authors:   strings.Join(info.Authors, ", "),
			Publisher: info.Publisher,
			Year:      year,
		})
	}
	return capItems(items, limit), nil
}

// Google Books API JSON structures.
type googleBooksResponse struct {
	TotalItems int                `json:"totalItems"`
	Items      []googleBooksVolume `json:"items"`
}

type googleBooksVolume struct {
	VolumeInfo googleBooksVolumeInfo `json:"volumeInfo"`
}

type googleBooksVolumeInfo struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	InfoLink      string   `json:"infoLink"`
	Publisher     string   `json:"publisher"`
	PublishedDate string   `json:"publishedDate"`
}
