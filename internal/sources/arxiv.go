// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/mashutosh934755/bennett-ashu-ai/pkg/types"
)

// arxivAPIBase is the arXiv Atom query endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// ArxivConnector queries the arXiv preprint feed. No credential required.
type ArxivConnector struct {
	Client    *http.Client
	UserAgent string
}

// Name returns the connector identifier.
func (c *ArxivConnector) Name() string { return "arxiv" }

// Search queries arXiv and maps each Atom entry into a ResultItem. The PDF
// link is preferred; entries without one fall back to the abstract page.
func (c *ArxivConnector) Search(ctx context.Context, topic string, limit int) ([]types.ResultItem, error) {
	reqURL := fmt.Sprintf("%s?search_query=all:%s&start=0&max_results=%d",
		arxivAPIBase, url.QueryEscape(topic), limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("arxiv: creating request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arxiv: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arxiv: HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("arxiv: parsing feed: %w", err)
	}

	var items []types.ResultItem
	for _, entry := range feed.Entries {
		year := entry.Published
		if len(year) > 4 {
			year = year[:4]
		}
		items = append(items, types.ResultItem{
			Title: orDefault(collapseSpace(entry.Title), "No Title"),
			URL:   orDefault(entry.bestLink(), "#"),
			Year:  year,
		})
	}
	return capItems(items, limit), nil
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID        string      `xml:"id"`
	Title     string      `xml:"title"`
	Published string      `xml:"published"`
	Links     []arxivLink `xml:"link"`
}

type arxivLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

// bestLink picks the PDF link when present, then the alternate (abstract
// page) link, then the entry ID URL.
func (e arxivEntry) bestLink() string {
	for _, l := range e.Links {
		if l.Type == "application/pdf" {
			return l.Href
		}
	}
	for _, l := range e.Links {
		if l.Rel == "alternate" {
			return l.Href
		}
	}
	return e.ID
}

// collapseSpace normalizes the newline-wrapped titles arXiv returns.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
