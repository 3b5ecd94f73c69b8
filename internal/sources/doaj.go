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

// doajAPIBase is the DOAJ article search endpoint. Declared as a var so
// tests can substitute an httptest server.
var doajAPIBase = "https://doaj.org/api/search/articles"

// DOAJConnector queries the Directory of Open Access Journals. No
// credential required.
type DOAJConnector struct {
	Client    *http.Client
	UserAgent string
}

// Name returns the connector identifier.
func (c *DOAJConnector) Name() string { return "doaj" }

// Search queries DOAJ by title and maps each article's bibjson record into
// a ResultItem. DOAJ has no per-request limit parameter for this search
// path, so results are truncated client-side.
func (c *DOAJConnector) Search(ctx context.Context, topic string, limit int) ([]types.ResultItem, error) {
	reqURL := fmt.Sprintf("%s/%s", doajAPIBase, url.PathEscape("title:"+topic))

	var dr doajResponse
	if err := httputil.GetJSON(ctx, c.Client, reqURL, c.UserAgent, nil, &dr); err != nil {
		return nil, fmt.Errorf("doaj: %w", err)
	}

	var items []types.ResultItem
	for _, art := range dr.Results {
		bib := art.Bibjson
		link := ""
		if len(bib.Links) > 0 {
			link = bib.Links[0].URL
		}
		items = append(items, types.ResultItem{
			Title:   orDefault(bib.Title, "No Title"),
			URL:     orDefault(link, "#"),
			Journal: bib.Journal.Title,
			Year:    bib.Year,
		})
	}
	return capItems(items, limit), nil
}

// DOAJ API JSON structures.
type doajResponse struct {
	Results []doajArticle `json:"results"`
}

type doajArticle struct {
	Bibjson doajBibjson `json:"bibjson"`
}

type doajBibjson struct {
	Title   string      `json:"title"`
	Links   []doajLink  `json:"link"`
	Journal doajJournal `json:"journal"`
	Year    string      `json:"year"`
}

type doajLink struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

type doajJournal struct {
	Title string `json:"title"`
}
