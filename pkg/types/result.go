// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the assistant.
// Everything here is a transient, request-scoped value object; nothing
// is persisted across query turns.
package types

// Intent is the classified purpose of a user query.
type Intent string

const (
	// BookSearch is a request to look up book metadata ("find books on X").
	BookSearch Intent = "book_search"

	// ArticleSearch is a request for research articles, preprints,
	// journals, or datasets.
	ArticleSearch Intent = "article_search"

	// AccountFines is a lookup of the patron's outstanding fines.
	AccountFines Intent = "account_fines"

	// AccountCheckouts is a lookup of the patron's current checkouts.
	AccountCheckouts Intent = "account_checkouts"

	// GeneralFAQ is everything else; answered by the generative fallback.
	GeneralFAQ Intent = "general_faq"
)

// ResultItem is the normalized representation of one search hit, uniform
// across all providers. Absent fields are empty strings, never null, so
// downstream formatting never branches on nil.
type ResultItem struct {
	// Title is the item title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// URL links to the item (info page or direct download, provider-dependent).
	URL string `json:"url" yaml:"url"`

	// Authors is a comma-joined author list, in source order.
	Authors string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Publisher is the publishing house or data publisher.
	Publisher string `json:"publisher,omitempty" yaml:"publisher,omitempty"`

	// Journal is the journal title for journal-indexed sources.
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`

	// Year is a 4-digit publication year, or empty when unknown.
	Year string `json:"year,omitempty" yaml:"year,omitempty"`
}

// SourceResponse pairs a source name with its ordered result list. An empty
// Items list is a valid, expected outcome: the provider returned zero
// matches or the request failed. Callers cannot distinguish the two.
type SourceResponse struct {
	SourceName string       `json:"source_name" yaml:"source_name"`
	Items      []ResultItem `json:"items" yaml:"items"`
}
