// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mashutosh934755/bennett-ashu-ai/internal/httputil"
	"github.com/mashutosh934755/bennett-ashu-ai/pkg/types"
)

// dataciteAPIBase is the DataCite DOI search endpoint. Declared as a var so
// tests can substitute an httptest server.
var dataciteAPIBase = "https://api.datacite.org/dois"

// DataCiteConnector queries the DataCite DOI registry for research datasets
// and articles. No credential required.
type DataCiteConnector struct {
	Client    *http.Client
	UserAgent string
}

// Name returns the connector identifier.
func (c *DataCiteConnector) Name() string { return "datacite" }

// Search queries DataCite and maps each DOI record into a ResultItem. The
// registry's publisher is rendered in the journal position, matching how
// the widget has always displayed DataCite hits.
func (c *DataCiteConnector) Search(ctx context.Context, topic string, limit int) ([]types.ResultItem, error) {
	params := url.Values{
		"query":      {topic},
		"page[size]": {fmt.Sprintf("%d", limit)},
	}
	reqURL := dataciteAPIBase + "?" + params.Encode()

	var dcr dataciteResponse
	if err := httputil.GetJSON(ctx, c.Client, reqURL, c.UserAgent, nil, &dcr); err != nil {
		return nil, fmt.Errorf("datacite: %w", err)
	}

	var items []types.ResultItem
	for _, doi := range dcr.Data {
		attrs := doi.Attributes
		title := ""
		if len(attrs.Titles) > 0 {
			title = attrs.Titles[0].Title
		}
		year := ""
		if attrs.PublicationYear > 0 {
			year = strconv.Itoa(attrs.PublicationYear)
		}
		items = append(items, types.ResultItem{
			Title:   orDefault(title, "No Title"),
			URL:     orDefault(attrs.URL, "#"),
			Journal: attrs.Publisher,
			Year:    year,
		})
	}
	return capItems(items, limit), nil
}

// DataCite API JSON structures.
type dataciteResponse struct {
	Data []dataciteDOI `json:"data"`
}

type dataciteDOI struct {
	Attributes dataciteAttributes `json:"attributes"`
}

type dataciteAttributes struct {
	Titles          []dataciteTitle `json:"titles"`
	URL             string          `json:"url"`
	Publisher       string          `json:"publisher"`
	PublicationYear int             `json:"publicationYear"`
}

type dataciteTitle struct {
	Title string `json:"title"`
}
